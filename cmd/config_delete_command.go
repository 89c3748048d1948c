package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by archivio.

The file given by --configFile takes precedence over the discovered one. If no
configuration file is active, the command returns an error.`,
	Example: `
  # Delete active config
  archivio config delete

  # Delete config at a custom path
  archivio --configFile ./custom-archivio.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := strings.TrimSpace(cfgFile)
		if configPath == "" {
			configPath = viper.ConfigFileUsed()
		}
		return deleteConfigFile(cmd.OutOrStdout(), configPath)
	},
}

func deleteConfigFile(out io.Writer, configPath string) error {
	if strings.TrimSpace(configPath) == "" {
		return fmt.Errorf("no configuration file found")
	}

	if err := os.Remove(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("configuration file %s does not exist", configPath)
		}
		return fmt.Errorf("error deleting configuration file: %w", err)
	}

	fmt.Fprintf(out, "Configuration file successfully deleted: %s\n", configPath)
	return nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
