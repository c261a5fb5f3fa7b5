package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"optimesheet/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "optimesheet",
	Short: "Export monthly OpenProject time entries into a formatted timesheet.",
	Long: `
**********************************************
*              OPTIMESHEET                   *
**********************************************

This CLI pulls one month of your OpenProject time entries through the v3 API,
normalizes them into flat timesheet rows, and writes a styled Excel or CSV file.

Connection settings come from the config file or the OPENPROJECT_* environment
variables (OPENPROJECT_BASE_URL, OPENPROJECT_API_KEY, OPENPROJECT_USER,
OPENPROJECT_LOCATION_CF).
`,
	Example: `
  # Create configuration file
  optimesheet config create

  # Export the current month to ./timesheet-YYYY-MM.xlsx
  optimesheet export

  # Export March 2024 to a specific file
  optimesheet export --month 2024-03 --output ./march.xlsx

  # Export as CSV
  optimesheet export --month 2024-03 --output ./march.csv
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.optimesheet.yaml, then ./.optimesheet.yaml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	return cmd != nil && cmd.Name() == "export"
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".optimesheet" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".optimesheet")
	}

	config.BindEnv()
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in. Environment variables alone are
	// enough to run, so a missing file is only worth a hint.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: optimesheet config create")
	}
}
