package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by SaveTo when the target already exists.
var ErrConfigExists = errors.New("config file already exists")

const savedHeader = "# Lightfall configuration. Edit and pass with -config.\n"

// Encode writes the config as commented YAML.
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(savedHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// SaveTo writes the config to path, or to stdout when path is "-".
// An existing file is never overwritten.
func (c *Config) SaveTo(path string) error {
	if path == "-" {
		return c.Encode(os.Stdout)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err != nil {
		return err
	}

	if err := c.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
