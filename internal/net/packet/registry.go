package packet

import (
	"fmt"

	"go.uber.org/zap"
)

// SessionState represents the session's current protocol phase.
type SessionState int

const (
	StateConnecting SessionState = iota
	StateAuthenticating
	StateActive
	StateClosing
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "Connecting"
	case StateAuthenticating:
		return "Authenticating"
	case StateActive:
		return "Active"
	case StateClosing:
		return "Closing"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Cmd is the (major, minor) opcode pair of a frame, major byte first.
type Cmd uint16

func MakeCmd(maj, min byte) Cmd {
	return Cmd(uint16(maj)<<8 | uint16(min))
}

func (c Cmd) String() string {
	return fmt.Sprintf("0x%04X", uint16(c))
}

// HandlerFunc is the callback signature for packet handlers. The session
// pointer is passed as an opaque interface to avoid import cycles.
type HandlerFunc func(sess any, r *Reader)

type handlerEntry struct {
	fn            HandlerFunc
	allowedStates map[SessionState]bool
}

// Registry maps commands to handlers with state-based access control.
type Registry struct {
	handlers map[Cmd]*handlerEntry
	fallback HandlerFunc
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[Cmd]*handlerEntry),
		log:      log,
	}
}

// Register maps a command to a handler, restricted to the given session states.
func (reg *Registry) Register(cmd Cmd, states []SessionState, fn HandlerFunc) {
	allowed := make(map[SessionState]bool, len(states))
	for _, s := range states {
		allowed[s] = true
	}
	reg.handlers[cmd] = &handlerEntry{
		fn:            fn,
		allowedStates: allowed,
	}
}

// SetFallback installs the handler called for unrecognized commands.
func (reg *Registry) SetFallback(fn HandlerFunc) {
	reg.fallback = fn
}

// Dispatch finds the handler for cmd, validates the session state, and
// calls the handler. Unknown commands go to the fallback handler.
func (reg *Registry) Dispatch(sess any, state SessionState, cmd Cmd, payload []byte) error {
	reg.log.Debug("收到封包",
		zap.String("cmd", cmd.String()),
		zap.Int("size", len(payload)),
		zap.String("state", state.String()),
	)

	entry, ok := reg.handlers[cmd]
	if !ok {
		if reg.fallback != nil {
			return reg.safeCall(reg.fallback, sess, NewReader(payload), cmd)
		}
		reg.log.Debug("未知操作碼", zap.String("cmd", cmd.String()))
		return nil
	}

	if !entry.allowedStates[state] {
		reg.log.Warn("操作碼在此狀態下不允許",
			zap.String("cmd", cmd.String()),
			zap.String("state", state.String()),
		)
		return fmt.Errorf("cmd %s not allowed in state %s", cmd, state)
	}

	return reg.safeCall(entry.fn, sess, NewReader(payload), cmd)
}

// safeCall executes a handler with panic recovery so a single bad packet
// cannot take down the session goroutine's caller.
func (reg *Registry) safeCall(fn HandlerFunc, sess any, r *Reader, cmd Cmd) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("處理器 panic 已恢復",
				zap.String("cmd", cmd.String()),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for cmd %s: %v", cmd, rec)
		}
	}()
	fn(sess, r)
	return nil
}
