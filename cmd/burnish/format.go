package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"burnish/internal/diagfmt"
	"burnish/internal/driver"
	"burnish/internal/ui"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format Pawn source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that would change without rewriting them")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Int("jobs", 0, "number of files formatted in parallel (0 = all CPUs)")
	fmtCmd.Flags().Bool("no-cache", false, "skip the on-disk result cache")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !noCache {
		// Недоступный кэш не мешает форматированию.
		cache, _ = driver.OpenDiskCache("burnish")
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Config:         cfg,
		Check:          check,
		Stdout:         writeToStdout,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Cache:          cache,
	})
	if err != nil {
		return err
	}

	switch outputFormat {
	case "text":
		useColor, colorErr := colorEnabled(cmd, os.Stderr)
		if colorErr != nil {
			return colorErr
		}
		printDiagnostics(results, maxDiagnostics, useColor)
	case "json":
		// Диагностики едут внутри JSON-результата, не в stderr.
		return renderFmtJSON(results, check)
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if writeToStdout {
		var hasErrors bool
		for _, res := range results {
			if res.Err != nil {
				hasErrors = true
				fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
				continue
			}
			_, _ = os.Stdout.Write(res.Formatted)
		}
		if hasErrors {
			return fmt.Errorf("fmt: failed to format some files")
		}
		return nil
	}

	summary := ui.Summary{Total: len(results)}
	for _, res := range results {
		if res.Err != nil {
			summary.Failed = append(summary.Failed, res.Path)
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Changed {
			summary.Changed = append(summary.Changed, res.Path)
		}
	}

	if check {
		if !quiet {
			colorize, colorErr := colorEnabled(cmd, os.Stdout)
			if colorErr != nil {
				return colorErr
			}
			summary.Render(os.Stdout, terminalWidth(), colorize)
		}
		if len(summary.Failed) > 0 {
			return fmt.Errorf("fmt: failed to format some files")
		}
		if len(summary.Changed) > 0 {
			return fmt.Errorf("fmt: formatting changes required")
		}
		return nil
	}

	if !quiet {
		for _, path := range summary.Changed {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", path)
		}
	}
	if len(summary.Failed) > 0 {
		return fmt.Errorf("fmt: failed to format some files")
	}
	return nil
}

func printDiagnostics(results []driver.FormatResult, limit int, useColor bool) {
	printed := 0
	for _, res := range results {
		if res.Bag == nil || res.Bag.Len() == 0 {
			continue
		}
		if printed >= limit {
			return
		}
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:   useColor,
			Context: 2,
		})
		printed += res.Bag.Len()
	}
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path        string          `json:"path"`
		Changed     bool            `json:"changed"`
		Error       string          `json:"error,omitempty"`
		CheckRun    bool            `json:"check"`
		Diagnostics json.RawMessage `json:"diagnostics,omitempty"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		if res.Bag != nil && res.Bag.Len() > 0 {
			var buf bytes.Buffer
			if err := diagfmt.JSON(&buf, res.Bag, res.FileSet, diagfmt.JSONOpts{IncludePositions: true}); err != nil {
				return err
			}
			jr.Diagnostics = bytes.TrimSpace(buf.Bytes())
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return err
	}
	for _, res := range results {
		if res.Err != nil {
			return fmt.Errorf("fmt: failed to format some files")
		}
	}
	if check {
		for _, res := range results {
			if res.Changed {
				return fmt.Errorf("fmt: formatting changes required")
			}
		}
	}
	return nil
}

func terminalWidth() int {
	if w, _, err := termSize(os.Stdout); err == nil && w > 0 {
		return w
	}
	return 80
}
