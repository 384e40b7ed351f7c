package net

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/boutgo/server/internal/net/packet"
	"go.uber.org/zap"
)

// Session represents a single client connection. All reads happen on the
// session's own goroutine; writes may come from other sessions (lobby
// broadcasts) and are serialized by a mutex with a bounded deadline.
type Session struct {
	ID   uint64
	conn net.Conn

	state atomic.Int32 // packet.SessionState stored as int32

	// AccountName is the resolved account, or the "a" sentinel before the
	// session reaches Active.
	AccountName string
	IP          string

	writeMu      sync.Mutex
	writeTimeout time.Duration

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	closed    atomic.Bool

	log *zap.Logger
}

func NewSession(conn net.Conn, id uint64, writeTimeout time.Duration, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:           id,
		conn:         conn,
		AccountName:  "a",
		IP:           remoteHost(conn),
		writeTimeout: writeTimeout,
		ctx:          ctx,
		cancel:       cancel,
		log:          log.With(zap.Uint64("session", id)),
	}
	s.state.Store(int32(packet.StateConnecting))
	return s
}

func (s *Session) State() packet.SessionState {
	return packet.SessionState(s.state.Load())
}

func (s *Session) SetState(st packet.SessionState) {
	s.state.Store(int32(st))
}

// Context is canceled when the session closes.
func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) Log() *zap.Logger {
	return s.log
}

// Read blocks for the next frame from the peer.
func (s *Session) Read() (packet.Cmd, []byte, error) {
	return ReadFrame(s.conn)
}

// SendPacket writes one frame to the connection. Safe for concurrent use;
// the write deadline keeps a stalled peer from blocking lobby broadcasts
// indefinitely.
func (s *Session) SendPacket(p *packet.Writer) error {
	if s.closed.Load() {
		return net.ErrClosed
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.writeTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if err := WriteFrame(s.conn, p); err != nil {
		if !s.closed.Load() {
			s.log.Debug("寫入錯誤", zap.Error(err))
		}
		return err
	}
	return nil
}

// Close tears the session down exactly once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.SetState(packet.StateClosing)
		s.cancel()
		s.conn.Close()
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// remoteHost strips the port from the peer address, the key the accounts
// table is looked up by.
func remoteHost(conn net.Conn) string {
	addr := conn.RemoteAddr().String()
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
