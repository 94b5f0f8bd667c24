package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"burnish/internal/config"
)

// collectSourceFiles resolves the given files and directories into a sorted,
// deduplicated list of source paths. Directories are walked recursively;
// exclude globs are matched against the path relative to the walked root.
func collectSourceFiles(ctx context.Context, paths []string, files config.FilesConfig) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	roots, err := expandPatterns(paths)
	if err != nil {
		return nil, err
	}

	for _, p := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if hasSourceExt(p, files.Extensions) {
				addFile(p)
			}
			continue
		}

		root := p
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			if d.IsDir() {
				if rel != "." && excluded(rel, files.Exclude) {
					return fs.SkipDir
				}
				return nil
			}
			if hasSourceExt(path, files.Extensions) && !excluded(rel, files.Exclude) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(out)
	return out, nil
}

// expandPatterns resolves glob arguments (src/**/*.pwn) into concrete paths.
// Plain paths pass through untouched so a missing file still fails loudly.
func expandPatterns(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if !strings.ContainsAny(p, "*?[{") {
			out = append(out, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func hasSourceExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func excluded(rel string, globs []string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range globs {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
	}
	return false
}
