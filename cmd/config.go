package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage optimesheet configuration file values.",
	Long: `Create and display the optimesheet configuration file.

The configuration stores the OpenProject connection and export defaults:
- openproject.base_url / openproject.api_key
- export.user / export.page_size / export.location_field`,
	Example: `
  # Create default config in $HOME/.optimesheet.yaml
  optimesheet config create

  # Show active config and source file
  optimesheet config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
