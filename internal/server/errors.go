package server

import "errors"

var (
	// ErrServerClosed is returned by Serve after Close.
	ErrServerClosed = errors.New("server: closed")

	// ErrNotOpen is sent to a client whose first request is not file.open.
	ErrNotOpen = errors.New("server: no open file, send file.open first")

	// ErrWatcherClosed is returned by Watcher.Watch after Close.
	ErrWatcherClosed = errors.New("watcher is closed")
)
