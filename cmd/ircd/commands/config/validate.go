package config

import (
	"fmt"

	"github.com/marmos91/ircd/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate an ircd configuration file.

Loads the configuration (file, environment overrides, defaults) and runs the
full validation pass, reporting every invalid field.

Examples:
  # Validate the default config file
  ircd config validate

  # Validate a specific file
  ircd config validate --config /etc/ircd/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	if _, err := config.MustLoad(configPath); err != nil {
		return err
	}

	fmt.Println("Configuration is valid.")
	return nil
}
