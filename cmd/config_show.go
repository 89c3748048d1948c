package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"archivio/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Defaults and
ARCHIVIO_ environment overrides are included in the output.`,
	Example: `
  # Show active configuration
  archivio config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		rendered, err := renderConfig(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Fprintln(out, "Config file loaded from:", configPath)
		} else {
			fmt.Fprintln(out, "No config file loaded; showing defaults.")
		}
		fmt.Fprintln(out, "Configuration:")
		fmt.Fprint(out, rendered)
		return nil
	},
}

func renderConfig(cfg *config.Config) (string, error) {
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("render config: %w", err)
	}
	return string(content), nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
