package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"burnish/internal/diag"
	"burnish/internal/diagfmt"
	"burnish/internal/driver"
	"burnish/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Dump the annotated chunk stream of a source file",
	Long:  `Tokenize runs the structural passes and prints every chunk with its level, preprocessor depth, and virtual markers.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	bag := diag.NewBag(maxDiagnostics)
	rows := driver.Tokenize(fileSet, id, cfg, bag)

	if bag.Len() > 0 {
		if format == "json" {
			if err := diagfmt.JSON(os.Stderr, bag, fileSet, diagfmt.JSONOpts{IncludePositions: true, Max: maxDiagnostics}); err != nil {
				return err
			}
		} else {
			useColor, colorErr := colorEnabled(cmd, os.Stderr)
			if colorErr != nil {
				return colorErr
			}
			diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{Color: useColor, Context: 2})
		}
	}

	switch format {
	case "pretty":
		for _, r := range rows {
			marker := " "
			if r.Invisible {
				marker = "i"
			} else if r.Virtual {
				marker = "v"
			}
			fmt.Fprintf(os.Stdout, "%4d:%-3d %s L%d P%d %-12s %-6s %q\n",
				r.Line, r.Col, marker, r.Level, r.PPLevel, r.Kind, r.Parent, r.Text)
		}
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	default:
		return fmt.Errorf("tokenize: unsupported output format %q", format)
	}
	return nil
}
