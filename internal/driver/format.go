package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"burnish/internal/config"
	"burnish/internal/diag"
	"burnish/internal/layout"
	"burnish/internal/lexer"
	"burnish/internal/preproc"
	"burnish/internal/source"
	"burnish/internal/vbrace"
)

// FormatOptions configures a formatting run.
type FormatOptions struct {
	Config config.Config
	// Check reports which files would change without touching them.
	Check bool
	// Stdout returns formatted content in the results instead of writing.
	Stdout bool
	// Jobs caps parallelism; non-positive means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	// Cache, when non-nil, short-circuits files formatted before with the
	// same content and settings.
	Cache *DiskCache
}

// FormatResult captures the outcome for a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	Bag       *diag.Bag
	// FileSet resolves the spans in Bag. Nil when the file never got
	// lexed (IO error, cache hit).
	FileSet *source.FileSet
}

// FormatBytes runs the full pipeline over one buffer. The passes are gated by
// the configuration; diagnostics from the lexer land in bag when it is non-nil.
func FormatBytes(name string, data []byte, cfg config.Config, bag *diag.Bag) []byte {
	fileSet := source.NewFileSet()
	return formatSource(fileSet, fileSet.AddVirtual(name, data), cfg, bag)
}

// formatSource форматирует один уже загруженный файл.
func formatSource(fileSet *source.FileSet, id source.FileID, cfg config.Config, bag *diag.Bag) []byte {
	sf := fileSet.Get(id)

	var reporter lexer.Reporter
	if bag != nil {
		reporter = &lexer.ReporterAdapter{Bag: bag}
	}
	s := lexer.Scan(sf, lexer.Options{Reporter: reporter})

	if cfg.Format.VirtualBraces {
		vbrace.Prescan(s)
		vbrace.AddVirtualSemicolons(s)
		vbrace.ScrubVSemi(s)
	}
	if cfg.Format.SqueezeIfdef {
		preproc.Squeeze(s)
	}

	return layout.Render(s, layout.Options{
		IndentWidth:   cfg.Format.IndentWidth,
		UseTabs:       cfg.Format.UseTabs,
		MaxBlankLines: cfg.Format.MaxBlankLines,
		CommentColumn: cfg.Format.CommentColumn,
	})
}

// FormatPaths formats the provided files and directories in parallel.
// Result order follows the sorted file list regardless of scheduling.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(ctx, paths, opts.Config.Files)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = formatOneFile(path, opts, maxDiag)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOneFile(path string, opts FormatOptions, maxDiag int) FormatResult {
	res := FormatResult{Path: path, Bag: diag.NewBag(maxDiag)}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  "failed to load file: " + err.Error(),
		})
		return res
	}

	key := formatDigest(opts.Config.Format, data)
	var formatted []byte
	var payload cachePayload
	if ok, cacheErr := opts.Cache.Get(key, &payload); cacheErr == nil && ok {
		formatted = payload.Formatted
	} else {
		fileSet := source.NewFileSet()
		res.FileSet = fileSet
		formatted = formatSource(fileSet, fileSet.AddVirtual(path, data), opts.Config, res.Bag)
		// Кэшируем только чистые файлы: попадание в кэш не должно
		// скрывать диагностики. Ошибка записи не влияет на результат.
		if res.Bag.Len() == 0 {
			_ = opts.Cache.Put(key, &cachePayload{Schema: cacheSchemaVersion, Formatted: formatted})
		}
	}

	changed := !bytes.Equal(data, formatted)

	if opts.Check {
		res.Changed = changed
		return res
	}
	if opts.Stdout {
		res.Changed = changed
		res.Formatted = formatted
		return res
	}
	if changed {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			res.Err = err
			return res
		}
		res.Changed = true
	}
	return res
}
