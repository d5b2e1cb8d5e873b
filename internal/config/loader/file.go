package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format struct {
	Name       string
	Extensions []string

	unmarshal func(data []byte, v any) error
	// position extracts a 1-based line and column from a decode error;
	// zero means unknown.
	position  func(err error) (line, column int)
}

// Supported formats.
var (
	TOML = Format{
		Name:       "toml",
		Extensions: []string{".toml"},
		unmarshal:  toml.Unmarshal,
		position: func(err error) (int, int) {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				return derr.Position()
			}
			return 0, 0
		},
	}

	YAML = Format{
		Name:       "yaml",
		Extensions: []string{".yaml", ".yml"},
		unmarshal:  yaml.Unmarshal,
		position: func(err error) (int, int) {
			// yaml.v3 syntax errors read "yaml: line N: ...".
			var line int
			if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil {
				return line, 0
			}
			return 0, 0
		},
	}
)

var formats = []Format{TOML, YAML}

// FormatFor returns the format for path's extension.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		if slices.Contains(f.Extensions, ext) {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// decode parses data into a map, reporting failures as *ParseError with
// source as the path.
func (f Format) decode(source string, data []byte) (map[string]any, error) {
	config := make(map[string]any)
	if err := f.unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		perr.Line, perr.Column = f.position(err)
		return nil, perr
	}
	return config, nil
}

// File loads a configuration file in one format.
type File struct {
	fs     FileSystem
	path   string
	format Format
}

// NewFile creates a loader for path in format.
func NewFile(path string, format Format) *File {
	return &File{fs: OSFS{}, path: path, format: format}
}

// ForPath creates a loader for path, choosing the format by extension.
func ForPath(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return NewFile(path, format), nil
}

// WithFS replaces the file system the loader reads from.
func (f *File) WithFS(fsys FileSystem) *File {
	f.fs = fsys
	return f
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Format returns the file format.
func (f *File) Format() Format { return f.format }

// Load implements Loader.
func (f *File) Load() (map[string]any, error) {
	data, err := readFile(f.fs, f.path)
	if err != nil || data == nil {
		return nil, err
	}
	return f.format.decode(f.path, data)
}

// Decode parses configuration read from r.
func (f *File) Decode(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return f.format.decode("<reader>", data)
}

var _ Loader = (*File)(nil)
