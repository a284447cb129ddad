// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/elot743/internal/history"
	"github.com/pdiddy/elot743/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded conversions",
	Long: `History reads the SQLite database written by "serve --history" and
"convert --record". Entries are listed newest first.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return bindFlags(cmd, map[string]string{"db": "history.db_path"})
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, opts, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Query(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			for _, e := range entries {
				if err := writeConversion(cmd.OutOrStdout(), e, true); err != nil {
					return err
				}
			}
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CREATED\tSOURCE\tGREEK\tLATIN")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Source, oneLine(e.GreekText), oneLine(e.LatinText))
		}
		return tw.Flush()
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export recorded conversions to YAML or JSON",
	Long: `Export writes the matching conversions to a file. The format follows
the file extension: .json writes JSON, anything else writes YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, opts, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		path := args[0]
		export := store.ExportYAML
		if strings.EqualFold(filepath.Ext(path), ".json") {
			export = store.ExportJSON
		}
		n, err := export(cmd.Context(), opts, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d conversion(s) to %s\n", n, path)
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest conversions",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 0 {
			return fmt.Errorf("--keep must be >= 0, got %d", keep)
		}
		store, _, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Prune(cmd.Context(), keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d conversion(s), kept at most %d\n", n, keep)
		return nil
	},
}

// openHistory opens the configured store and reads the shared query flags.
func openHistory(cmd *cobra.Command) (*history.Store, history.QueryOptions, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, history.QueryOptions{}, err
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		return nil, history.QueryOptions{}, err
	}

	var opts history.QueryOptions
	if f := cmd.Flags().Lookup("contains"); f != nil {
		opts.Contains = f.Value.String()
	}
	if f := cmd.Flags().Lookup("source"); f != nil {
		opts.Source = types.ConversionSource(f.Value.String())
	}
	if limit, err := cmd.Flags().GetInt("limit"); err == nil && limit > 0 {
		opts.MaxResults = limit
	}
	return store, opts, nil
}

// oneLine collapses whitespace so multi-line texts fit a table row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func init() {
	historyCmd.PersistentFlags().String("db", "data/history.db", "history database path")

	for _, c := range []*cobra.Command{historyListCmd, historyExportCmd} {
		c.Flags().String("contains", "", "only entries whose Greek or Latin text contains this")
		c.Flags().String("source", "", "only entries from this source (http, cli, batch)")
		c.Flags().Int("limit", 0, "maximum entries (default: history.max_results; export: all)")
	}
	historyListCmd.Flags().Bool("json", false, "print one JSON object per line")
	historyPruneCmd.Flags().Int("keep", 1000, "number of newest conversions to keep")

	historyCmd.AddCommand(historyListCmd, historyExportCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
