// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the elot743 CLI: Greek to Latin
// transliteration (ELOT 743) from the command line, over files, or as an
// HTTP service.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/elot743/internal/logging"
	"github.com/pdiddy/elot743/internal/secrets"
	"github.com/pdiddy/elot743/internal/translit"
	"github.com/pdiddy/elot743/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the elot743 CLI.
var rootCmd = &cobra.Command{
	Use:   "elot743",
	Short: "Transliterate Greek text to Latin script (ELOT 743)",
	Long: `elot743 converts Greek text into its Latin transliteration following
ELOT 743. Digraphs such as ου, μπ and ντ are matched before single letters,
μπ and the αυ/ευ/ηυ diphthongs are resolved from their neighbours, and the
capitalization of the input is mirrored in the output.

Use convert for text and files, serve to run the HTTP endpoint, and history
to inspect recorded conversions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./elot743.yaml or ~/.config/elot743/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of secret files (elot743-api-token)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	setDefaults(viper.GetViper())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("elot743")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "elot743"))
		}
	}

	viper.SetEnvPrefix("ELOT743")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged configuration and fills tokens from the
// secrets directory when the config leaves them empty.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Server.Token = secrets.Lookup(loadedSecrets, secrets.APIToken, cfg.Server.Token)
	cfg.Client.Token = secrets.Lookup(loadedSecrets, secrets.APIToken, cfg.Client.Token)
	return cfg, nil
}

func newLogger(cfg types.Config) (zerolog.Logger, error) {
	return logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
}

func newTransliterator(cfg types.Config) *translit.Transliterator {
	var opts []translit.Option
	if cfg.Transliteration.NFC {
		opts = append(opts, translit.WithNFC())
	}
	return translit.New(opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
