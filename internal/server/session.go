package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/dispatcher/action"
	"github.com/dshills/quill/internal/dispatcher/handlers/file"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/logging"
)

// session serves one connection.
type session struct {
	conn   net.Conn
	client editor.ClientID
	reader *bufio.Reader
	enc    *json.Encoder

	dispatcher *dispatcher.Dispatcher
	logger     *logging.Logger

	opened bool
}

func newSession(conn net.Conn, d *dispatcher.Dispatcher, logger *logging.Logger) *session {
	client := editor.NewClientID()
	return &session{
		conn:       conn,
		client:     client,
		reader:     bufio.NewReaderSize(conn, 64*1024),
		enc:        json.NewEncoder(conn),
		dispatcher: d,
		logger:     logger.WithField("client", client),
	}
}

// serve answers requests until the peer disconnects or the connection is
// closed, then releases the client's document.
func (s *session) serve() {
	s.logger.Info("connected")
	defer s.close()

	for {
		line, err := s.reader.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			if werr := s.enc.Encode(s.handle(line)); werr != nil {
				s.logger.Warn("write response: %v", werr)
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.logger.Warn("read request: %v", err)
			}
			return
		}
	}
}

func (s *session) handle(line []byte) dispatcher.Response {
	var a action.Action
	if err := json.Unmarshal(line, &a); err != nil {
		return dispatcher.Failed(fmt.Errorf("malformed request: %w", err))
	}

	if !s.opened && a.Name != file.ActionOpen {
		return dispatcher.Failed(ErrNotOpen)
	}

	resp := s.dispatcher.Dispatch(s.client, a)
	if resp.Kind == dispatcher.KindFileOpened {
		s.opened = true
		s.logger.Info("opened %s", resp.FileName)
	}
	return resp
}

func (s *session) close() {
	if s.opened {
		if err := s.dispatcher.Close(s.client); err != nil {
			s.logger.Warn("close document: %v", err)
		}
	}
	_ = s.conn.Close()
	s.logger.Info("disconnected")
}
