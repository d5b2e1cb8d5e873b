package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/quill/internal/engine/rope"
)

// Open reads the file at path into a new document. Bytes are kept as they
// are, line terminators included.
func Open(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	text, err := rope.FromReader(f)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	d := newDocument(text, opts...)
	d.filePath = path
	d.fileName = filepath.Base(path)
	return d, nil
}

// OpenOrCreate opens the file at path, or returns an empty document that
// will be saved to path if the file does not exist yet.
func OpenOrCreate(path string, opts ...Option) (*Document, error) {
	d, err := Open(path, opts...)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return d, err
	}

	d = newDocument(rope.New(), opts...)
	d.filePath = path
	d.fileName = filepath.Base(path)
	return d, nil
}

// Save writes the text back to the file it was opened from. The write goes
// to a temporary file that is renamed over the original.
func (d *Document) Save() error {
	if d.filePath == "" {
		return ErrFileNotOpen
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(d.filePath); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "stat", Path: d.filePath, Err: err}
	}

	tempPath := d.filePath + ".tmp"
	if err := os.WriteFile(tempPath, d.text.Bytes(), mode); err != nil {
		return &IOError{Op: "write", Path: tempPath, Err: err}
	}
	if err := os.Rename(tempPath, d.filePath); err != nil {
		os.Remove(tempPath)
		return &IOError{Op: "rename", Path: d.filePath, Err: err}
	}

	d.lastSaved = d.text
	return nil
}

// SaveAs points the document at path and saves it there.
func (d *Document) SaveAs(path string) error {
	if path == "" {
		return ErrInvalidInput
	}
	prevPath, prevName := d.filePath, d.fileName
	d.filePath = path
	d.fileName = filepath.Base(path)
	if err := d.Save(); err != nil {
		d.filePath, d.fileName = prevPath, prevName
		return err
	}
	return nil
}
