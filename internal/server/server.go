package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/logging"
)

// Server accepts client connections and feeds their requests to a
// dispatcher.
type Server struct {
	dispatcher *dispatcher.Dispatcher
	logger     *logging.Logger

	mu        sync.Mutex
	listener  net.Listener
	conns     map[net.Conn]struct{}
	closed    bool
	sessionWg sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server for d.
func New(d *dispatcher.Dispatcher, opts ...Option) *Server {
	s := &Server{
		dispatcher: d,
		logger:     logging.Null(),
		conns:      make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("server")
	return s
}

// ListenAndServe listens on the Unix socket at path and serves until ctx
// is done or Close is called. A stale socket file left by a previous run
// is removed first.
func (s *Server) ListenAndServe(ctx context.Context, path string) error {
	if err := removeStaleSocket(path); err != nil {
		return err
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return fmt.Errorf("listen %s: %w", path, err)
	}
	s.logger.Info("listening on %s", path)
	return s.Serve(ctx, ln)
}

// removeStaleSocket deletes path if it is a socket nobody answers on.
func removeStaleSocket(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("%s exists and is not a socket", path)
	}
	if conn, err := net.Dial("unix", path); err == nil {
		_ = conn.Close()
		return fmt.Errorf("%s is in use by another server", path)
	}
	return os.Remove(path)
}

// Serve accepts connections on ln until ctx is done or Close is called.
// It always returns a non-nil error; after a shutdown that error is
// ErrServerClosed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = ln.Close()
		return ErrServerClosed
	}
	s.listener = ln
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { _ = s.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.logger.Warn("accept: %v", err)
				continue
			}
			return err
		}

		if !s.track(conn) {
			_ = conn.Close()
			return ErrServerClosed
		}

		s.sessionWg.Add(1)
		go func() {
			defer s.sessionWg.Done()
			defer s.untrack(conn)
			newSession(conn, s.dispatcher, s.logger).serve()
		}()
	}
}

// Close stops accepting connections, closes open ones and waits for their
// documents to be released.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	s.sessionWg.Wait()
	s.logMetrics()
	return err
}

// Connections returns the number of open connections.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

// logMetrics writes a dispatch summary when metrics are enabled.
func (s *Server) logMetrics() {
	m := s.dispatcher.Metrics()
	if m == nil {
		return
	}

	snap := m.Snapshot()
	s.logger.Info("dispatched %d actions, %d failed, %d panics, avg %s",
		snap.TotalDispatches, snap.TotalFailures, snap.TotalPanics, snap.AverageDuration)
	for _, am := range m.TopActions(5) {
		s.logger.Debug("  %-28s %6d calls  %5.1f%% failed  avg %s  max %s",
			am.Name, am.DispatchCount, am.FailureRate(), am.AverageDuration(), am.MaxDuration)
	}
}
