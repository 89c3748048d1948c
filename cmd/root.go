/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"archivio/config"
	"archivio/internal/logging"
)

const version = "0.1.0"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "archivio",
	Short: "Convert the artworks archive spreadsheet into the gallery JSON catalog.",
	Long: `
**********************************************
*                 ARCHIVIO                   *
**********************************************

This CLI reads the artworks archive export (CSV or Excel), resolves every artwork
to an image in the image directory and writes the catalog consumed by the gallery.

Image lookup order for each row:
1. exact filename match (case-insensitive)
2. filename match ignoring spaces and underscores
3. "<artist last name>_<title>" match
4. the filename column plus the fallback extension (not verified)
`,
	Example: `
  # Create configuration file
  archivio config create

  # Convert using paths from the configuration file
  archivio convert

  # Convert with explicit paths
  archivio convert --source ./archivio.csv --images ./public/drive-opere --output ./src/data/opere.json

  # Report catalog entries whose image is missing on disk
  archivio check

  # Preview the catalog and images over HTTP
  archivio serve --port 8080
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version))
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.archivio.yaml, then ./.archivio.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Load .env file if present (ignore errors)
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".archivio")
	}

	viper.SetEnvPrefix("ARCHIVIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults and flags. Create one with: archivio config create")
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
}
