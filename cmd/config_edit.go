package cmd

import (
	"archivio/config"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active archivio config file in your editor.

Editor selection order:
1) $ARCHIVIO_EDITOR
2) $VISUAL
3) $EDITOR
4) vi

If no config file exists yet, this command creates one with an example template first.
After the editor exits, the content is validated as archivio YAML config.`,
	Example: `
  # Edit active config
  archivio config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		editor := resolveEditor(os.Getenv("ARCHIVIO_EDITOR"), os.Getenv("VISUAL"), os.Getenv("EDITOR"))
		return editConfigFile(cmd.OutOrStdout(), configPath, editor)
	},
}

// editConfigFile opens configPath in editor, creating it from the template
// first when missing, and validates the saved content.
func editConfigFile(out io.Writer, configPath, editor string) error {
	created, err := ensureConfigFileWithTemplate(configPath)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "No config file found. Created example config at: %s\n", configPath)
	}

	editorCommand, err := buildEditorCommand(editor, configPath)
	if err != nil {
		return err
	}
	editorCommand.Stdin = os.Stdin
	editorCommand.Stdout = out
	editorCommand.Stderr = os.Stderr
	if err := editorCommand.Run(); err != nil {
		return fmt.Errorf("opening editor failed: %w", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading edited config failed: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return fmt.Errorf("config validation failed in %s: %w", configPath, err)
	}

	fmt.Fprintf(out, "Configuration saved and validated: %s\n", configPath)
	for _, warning := range missingPathWarnings(cfg.Paths) {
		fmt.Fprintln(out, "Warning:", warning)
	}
	return nil
}

func resolveConfigEditPath(configFileFlag, configFileUsed string) (string, error) {
	if strings.TrimSpace(configFileFlag) != "" {
		return configFileFlag, nil
	}
	if strings.TrimSpace(configFileUsed) != "" {
		return configFileUsed, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".archivio.yaml"), nil
}

func ensureConfigFileWithTemplate(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("creating example config failed: %w", err)
	}

	return true, nil
}

// missingPathWarnings lists the run paths that convert would need from flags.
func missingPathWarnings(paths config.PathsConfig) []string {
	warnings := make([]string, 0, 3)
	if strings.TrimSpace(paths.Source) == "" {
		warnings = append(warnings, "paths.source is empty; pass --source to convert")
	}
	if strings.TrimSpace(paths.Images) == "" {
		warnings = append(warnings, "paths.images is empty; pass --images to convert")
	}
	if strings.TrimSpace(paths.Output) == "" {
		warnings = append(warnings, "paths.output is empty; pass --output to convert")
	}
	return warnings
}

// resolveEditor returns the first non-blank candidate, or vi.
func resolveEditor(candidates ...string) string {
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "vi"
}

func buildEditorCommand(editorValue, configPath string) (*exec.Cmd, error) {
	fields := strings.Fields(strings.TrimSpace(editorValue))
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}

	args := append(fields[1:], configPath)
	return exec.Command(fields[0], args...), nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
