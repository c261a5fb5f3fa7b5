package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"optimesheet/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  optimesheet config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		}
		fmt.Println("Configuration:")
		fmt.Printf("openproject.base_url: %s\n", cfg.OpenProject.BaseURL)
		fmt.Printf("openproject.api_key: %s\n", maskSecret(cfg.OpenProject.APIKey))
		fmt.Printf("export.user: %s\n", cfg.Export.User)
		fmt.Printf("export.page_size: %d\n", cfg.Export.PageSize)
		fmt.Printf("export.location_field: %s\n", cfg.Export.LocationField)
	},
}

func maskSecret(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-4)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
