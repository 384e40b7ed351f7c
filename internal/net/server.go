package net

import (
	"net"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Server accepts TCP connections and runs one handler goroutine per
// connection. Blocking socket reads are the only suspension points; closing
// the socket is the only cancellation primitive.
type Server struct {
	listener     net.Listener
	nextID       atomic.Uint64
	writeTimeout time.Duration
	log          *zap.Logger
	closeCh      chan struct{}
}

func NewServer(bindAddr string, writeTimeout time.Duration, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener:     ln,
		writeTimeout: writeTimeout,
		log:          log,
		closeCh:      make(chan struct{}),
	}, nil
}

// Serve runs the accept loop until Shutdown, spawning handle on a fresh
// goroutine for every accepted connection.
func (s *Server) Serve(handle func(*Session)) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return // server shutting down
			default:
			}
			s.log.Error("連線接受失敗", zap.Error(err))
			continue
		}

		id := s.nextID.Add(1)
		sess := NewSession(conn, id, s.writeTimeout, s.log)
		s.log.Info("玩家連線", zap.Uint64("session", id), zap.String("ip", sess.IP))

		go func() {
			defer sess.Close()
			handle(sess)
		}()
	}
}

// Shutdown stops accepting new connections.
func (s *Server) Shutdown() {
	close(s.closeCh)
	s.listener.Close()
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
