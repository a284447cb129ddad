// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// setDefaults registers every config key so that environment variables
// (ELOT743_SERVER_ADDR, ...) are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("transliteration.nfc", false)

	v.SetDefault("server.addr", ":8743")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_text_bytes", 64*1024)
	v.SetDefault("server.token", "")

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.db_path", "data/history.db")
	v.SetDefault("history.max_results", 20)

	v.SetDefault("batch.output_dir", "latin")
	v.SetDefault("batch.ext", ".txt")
	v.SetDefault("batch.force", false)

	v.SetDefault("client.base_url", "")
	v.SetDefault("client.timeout", 30*time.Second)
	v.SetDefault("client.user_agent", "elot743/"+version)
	v.SetDefault("client.max_retries", 5)
	v.SetDefault("client.token", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// bindFlags binds command flags to config keys. Several commands expose the
// same key, so binding happens when the command runs rather than in init.
func bindFlags(cmd *cobra.Command, bindings map[string]string) error {
	for flag, key := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %q: %w", flag, err)
		}
	}
	return nil
}
