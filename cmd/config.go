package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage archivio configuration file values.",
	Long: `Create, edit, display, and delete the archivio configuration file.

The configuration stores:
- paths.source / paths.images / paths.output
- images.prefix / images.fallback_extension / images.extensions
- columns.* (exact header text of the archive export)
- convert.mapper / convert.format / convert.trace_limit
- log.level / log.format

Every key can also be set through an ARCHIVIO_ environment variable, e.g.
ARCHIVIO_PATHS_SOURCE, optionally from a .env file in the working directory.`,
	Example: `
  # Create default config in $HOME/.archivio.yaml
  archivio config create

  # Show active config and source file
  archivio config show

  # Open active config in editor (creates example if missing)
  archivio config edit

  # Delete active config file
  archivio config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
