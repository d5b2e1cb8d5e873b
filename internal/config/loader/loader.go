// Package loader reads configuration sources into generic maps.
//
// File loaders parse TOML or YAML; the environment loader maps prefixed
// variables onto dotted setting paths. Maps from several sources combine
// with DeepMerge.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrUnsupportedFormat indicates a config file extension no Format reads.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader produces one configuration layer. A source that does not exist
// yields a nil map and no error.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem reads files. Tests substitute an in-memory one.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// readFile reads path, reporting a missing file as nil data.
func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return data, nil
}

// ParseError reports a configuration file that could not be decoded.
// Line and Column are 1-based; zero means the decoder did not say.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		where = fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return "config " + where + ": " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge overlays src onto dst and returns dst. Nested maps merge key
// by key; any other value in src replaces the one in dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				dst[k] = DeepMerge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
	return dst
}

// GetByPath looks up a dotted path such as "editor.tab_width".
func GetByPath(data map[string]any, path string) (any, bool) {
	head, rest, nested := strings.Cut(path, ".")
	v, ok := data[head]
	if !ok || !nested {
		return v, ok
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return GetByPath(sub, rest)
}

// setByPath stores value at a dotted path, creating intermediate maps and
// replacing non-map values in the way.
func setByPath(data map[string]any, path string, value any) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		data[head] = value
		return
	}
	sub, ok := data[head].(map[string]any)
	if !ok {
		sub = make(map[string]any)
		data[head] = sub
	}
	setByPath(sub, rest, value)
}
