package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cleichner/rotide/internal/input/mode"
)

// Format is a keymap file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor returns the format implied by a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// fileConfig is the on-disk structure shared by YAML and TOML:
//
//	name: mine
//	bindings:
//	  normal:
//	    "<C-s>": mode.escape
type fileConfig struct {
	Name     string                       `yaml:"name" toml:"name"`
	Bindings map[string]map[string]string `yaml:"bindings" toml:"bindings"`
}

// LoadFile reads a YAML or TOML keymap file.
func LoadFile(path string) (*Keymap, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := LoadReader(f, format)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	km.Source = path
	return km, nil
}

// LoadReader decodes a keymap in the given format.
func LoadReader(r io.Reader, format Format) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}

	var cfg fileConfig
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ParseError{Message: err.Error(), Err: err}
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			msg := err.Error()
			var de *toml.DecodeError
			if errors.As(err, &de) {
				row, col := de.Position()
				msg = fmt.Sprintf("line %d, column %d: %s", row, col, de.Error())
			}
			return nil, &ParseError{Message: msg, Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return cfg.keymap()
}

// keymap converts the decoded maps into ordered entries.
// Modes and keys are sorted so loading is deterministic.
func (c fileConfig) keymap() (*Keymap, error) {
	km := NewKeymap(c.Name)

	modeNames := make([]string, 0, len(c.Bindings))
	for name := range c.Bindings {
		modeNames = append(modeNames, name)
	}
	sort.Strings(modeNames)

	for _, name := range modeNames {
		m, err := mode.Parse(name)
		if err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("bindings.%s: %v", name, err), Err: err}
		}
		keys := make([]string, 0, len(c.Bindings[name]))
		for k := range c.Bindings[name] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			km.Add(m, k, c.Bindings[name][k])
		}
	}
	return km, nil
}
