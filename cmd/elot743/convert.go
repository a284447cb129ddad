// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/elot743/internal/client"
	"github.com/pdiddy/elot743/internal/convert"
	"github.com/pdiddy/elot743/internal/history"
	"github.com/pdiddy/elot743/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [text...]",
	Short: "Transliterate text, stdin, or files",
	Long: `Convert transliterates Greek text to Latin script. Arguments are joined
with spaces; with no arguments the text is read from stdin.

With --file or --dir each input file is converted as a whole and written to
the output directory under the same name. Existing outputs are skipped unless
--force is given.

With --remote the conversion runs on an elot743 server instead of locally.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"nfc":    "transliteration.nfc",
		"remote": "client.base_url",
		"out":    "batch.output_dir",
		"ext":    "batch.ext",
		"force":  "batch.force",
	}); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var tr convert.Transliterator = newTransliterator(cfg)
	if cfg.Client.BaseURL != "" {
		tr = client.New(cfg.Client)
	}

	files, _ := cmd.Flags().GetStringSlice("file")
	dir, _ := cmd.Flags().GetString("dir")
	if len(files) > 0 || dir != "" {
		return runConvertBatch(cmd.OutOrStdout(), tr, cfg.Batch, files, dir)
	}

	text, err := inputText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	out, err := tr.Transliterate(text)
	if err != nil {
		return err
	}

	if record, _ := cmd.Flags().GetBool("record"); record {
		if err := recordConversion(cmd.Context(), cfg.History, text, out); err != nil {
			return err
		}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return writeConversion(cmd.OutOrStdout(), types.Conversion{GreekText: text, LatinText: out}, jsonOutput)
}

func runConvertBatch(w io.Writer, tr convert.Transliterator, cfg types.BatchConfig, files []string, dir string) error {
	paths := append([]string(nil), files...)
	if dir != "" {
		found, err := convert.CollectInputs(dir, cfg.Ext)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input files found")
	}

	result := convert.ConvertBatch(tr, paths, cfg.OutputDir, cfg.Force, w)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// inputText joins args, or reads all of r when there are none.
func inputText(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func writeConversion(w io.Writer, c types.Conversion, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(c)
	}
	_, err := fmt.Fprintln(w, c.LatinText)
	return err
}

func recordConversion(ctx context.Context, cfg types.HistoryConfig, text, out string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, &types.Conversion{GreekText: text, LatinText: out, Source: types.SourceCLI})
}

func init() {
	convertCmd.Flags().Bool("json", false, "print {greektext, elot743text} as JSON")
	convertCmd.Flags().Bool("nfc", false, "normalize input to NFC before transliterating")
	convertCmd.Flags().String("remote", "", "convert on an elot743 server at this base URL")
	convertCmd.Flags().Bool("record", false, "record the conversion in the history database")
	convertCmd.Flags().StringSlice("file", nil, "input file to convert (repeatable)")
	convertCmd.Flags().String("dir", "", "convert every matching file in this directory")
	convertCmd.Flags().String("out", "latin", "output directory for file conversion")
	convertCmd.Flags().String("ext", ".txt", "input file extension in --dir mode")
	convertCmd.Flags().Bool("force", false, "overwrite existing output files")

	rootCmd.AddCommand(convertCmd)
}
