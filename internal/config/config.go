package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest searched for upward from the working directory.
const FileName = "burnish.toml"

// Config is the full formatter configuration.
type Config struct {
	Format FormatConfig `toml:"format"`
	Files  FilesConfig  `toml:"files"`
}

// FormatConfig controls the rendered shape of the output.
type FormatConfig struct {
	IndentWidth   int  `toml:"indent_width"`
	UseTabs       bool `toml:"use_tabs"`
	MaxBlankLines int  `toml:"max_blank_lines"`
	CommentColumn int  `toml:"comment_column"`
	VirtualBraces bool `toml:"virtual_braces"`
	SqueezeIfdef  bool `toml:"squeeze_ifdef"`
}

// FilesConfig controls which files the formatter picks up.
type FilesConfig struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
}

// Default returns the configuration used when no manifest is found.
func Default() Config {
	return Config{
		Format: FormatConfig{
			IndentWidth:   4,
			MaxBlankLines: 2,
			VirtualBraces: true,
			SqueezeIfdef:  true,
		},
		Files: FilesConfig{
			Extensions: []string{".pwn", ".inc", ".sma", ".p"},
		},
	}
}

// Find walks from startDir toward the filesystem root looking for the
// manifest. The second result reports whether one was found.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the manifest at path on top of the defaults, so that keys the
// manifest omits keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the manifest for startDir, falling back to the
// defaults when none exists.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

func (c Config) validate() error {
	if c.Format.IndentWidth < 1 || c.Format.IndentWidth > 16 {
		return fmt.Errorf("indent_width must be in [1, 16], got %d", c.Format.IndentWidth)
	}
	if c.Format.MaxBlankLines < 0 {
		return fmt.Errorf("max_blank_lines must be non-negative, got %d", c.Format.MaxBlankLines)
	}
	if c.Format.CommentColumn < 0 {
		return fmt.Errorf("comment_column must be non-negative, got %d", c.Format.CommentColumn)
	}
	if len(c.Files.Extensions) == 0 {
		return errors.New("files.extensions must not be empty")
	}
	for _, ext := range c.Files.Extensions {
		if ext == "" || ext[0] != '.' {
			return fmt.Errorf("files.extensions entries must start with '.', got %q", ext)
		}
	}
	return nil
}
