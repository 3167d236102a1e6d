// Package config handles the optional bfir.toml configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/containerd/errdefs"

	"github.com/MarcinKonowalczyk/bfir/bf"
)

// Filename is looked up in the working directory when no -config is given.
const Filename = "bfir.toml"

// Output formats understood by the CLI.
const (
	FormatTree   = "tree"
	FormatSource = "source"
	FormatCBOR   = "cbor"
)

type Config struct {
	Parse  Parse  `toml:"parse"`
	Output Output `toml:"output"`
	Log    Log    `toml:"log"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type Parse struct {
	Strategy string `toml:"strategy"`
}

type Output struct {
	Format string `toml:"format"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func Default() *Config {
	return &Config{
		Parse:  Parse{Strategy: string(bf.Recursive)},
		Output: Output{Format: FormatTree},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load reads a config file. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if _, err := toml.Decode(string(data), c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w: %w", path, errdefs.ErrInvalidArgument, err)
	}
	c.Path = path

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Find loads bfir.toml from dir, falling back to defaults when the file
// does not exist.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, Filename)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return Load(path)
}

func (c *Config) Validate() error {
	if _, err := bf.ParseStrategy(c.Parse.Strategy); err != nil {
		return err
	}

	switch c.Output.Format {
	case FormatTree, FormatSource, FormatCBOR:
	default:
		return fmt.Errorf("unknown output format %q: %w", c.Output.Format, errdefs.ErrInvalidArgument)
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("unknown log level %q: %w", c.Log.Level, errdefs.ErrInvalidArgument)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q: %w", c.Log.Format, errdefs.ErrInvalidArgument)
	}
	return nil
}
