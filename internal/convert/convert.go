// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert transliterates text files in batches.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/elot743/pkg/types"
)

// Transliterator converts Greek text. Both the local engine and the remote
// client implement it.
type Transliterator interface {
	Transliterate(text string) (string, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns where the transliteration of inPath is written.
func OutputPath(inPath, outDir string) string {
	return filepath.Join(outDir, filepath.Base(inPath))
}

// ConvertFile transliterates the whole content of inPath into outDir under
// the same file name. The file is converted in one call so context rules
// see line breaks exactly as in a single string. Existing output is
// skipped unless force is set.
func ConvertFile(t Transliterator, inPath, outDir string, force bool, w io.Writer) types.ConversionStatus {
	base := filepath.Base(inPath)
	outPath := OutputPath(inPath, outDir)

	if samePath(inPath, outPath) {
		fmt.Fprintf(w, "failed:  %s (output would overwrite input)\n", base)
		return types.ConversionFailed
	}

	if !force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return types.ConversionNone
		}
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	out, err := t.Transliterate(string(data))
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return types.ConversionDone
}

// ConvertBatch processes paths in order, printing per-file status to w and
// returning a summary.
func ConvertBatch(t Transliterator, paths []string, outDir string, force bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch ConvertFile(t, p, outDir, force, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// CollectInputs lists regular files in dir whose name ends with ext, sorted
// by name. An empty ext matches every file.
func CollectInputs(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if ext != "" && !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
