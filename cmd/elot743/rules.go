// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/elot743/internal/translit"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the transliteration rules in match priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return writeRules(cmd.OutOrStdout(), translit.DefaultTable().Rules(), format)
	},
}

func writeRules(w io.Writer, rules []translit.Rule, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(rules)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rules); err != nil {
			return err
		}
		return enc.Close()
	case "", "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tPATTERN\tKIND\tOUTPUT")
		for i, r := range rules {
			out := r.Output
			switch r.Kind {
			case translit.VoicedStop:
				out = "b | mp"
			case translit.Diphthong:
				out = "<vowel>v | <vowel>f"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, r.Pattern, r.Kind, out)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}

func init() {
	rulesCmd.Flags().String("format", "table", "output format: table, json or yaml")
	rootCmd.AddCommand(rulesCmd)
}
