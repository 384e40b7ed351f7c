package world

import (
	"errors"
	"testing"

	"github.com/boutgo/server/internal/net/packet"
	"go.uber.org/zap"
)

type recordConn struct {
	frames []*packet.Writer
	fail   bool
}

func (c *recordConn) SendPacket(p *packet.Writer) error {
	if c.fail {
		return errors.New("dead socket")
	}
	c.frames = append(c.frames, p)
	return nil
}

func TestLobbyJoinBroadcast(t *testing.T) {
	l := NewLobby(zap.NewNop())
	a := &recordConn{}
	b := &recordConn{}

	l.Join("Alpha", 1, a)
	if len(a.frames) != 0 {
		t.Fatalf("joiner received %d frames for own join", len(a.frames))
	}

	l.Join("Beta", 2, b)
	if len(a.frames) != 1 {
		t.Fatalf("Alpha received %d frames, want 1 join notice", len(a.frames))
	}
	if len(b.frames) != 0 {
		t.Fatalf("Beta received %d frames for own join", len(b.frames))
	}

	payload := a.frames[0].Payload()
	if payload[0] != 0x01 || payload[1] != 0x00 {
		t.Fatalf("notice head = % X", payload[:2])
	}
	last := payload[len(payload)-1]
	if last != 0x01 {
		t.Fatalf("join notice status = %#x, want 0x01", last)
	}
}

func TestLobbyLeaveBroadcastsDeparture(t *testing.T) {
	l := NewLobby(zap.NewNop())
	a := &recordConn{}
	l.Join("Alpha", 1, a)
	l.Join("Beta", 2, &recordConn{})

	l.Leave("Beta")
	if len(a.frames) != 2 {
		t.Fatalf("Alpha received %d frames, want join + leave", len(a.frames))
	}
	payload := a.frames[1].Payload()
	if payload[len(payload)-1] != 0xFF {
		t.Fatalf("leave notice status = %#x, want 0xFF", payload[len(payload)-1])
	}

	// Leaving again is a no-op.
	l.Leave("Beta")
	if len(a.frames) != 2 {
		t.Fatal("repeated leave must not broadcast")
	}
	if l.Count() != 1 {
		t.Fatalf("Count = %d, want 1", l.Count())
	}
}

func TestLobbySnapshot(t *testing.T) {
	l := NewLobby(zap.NewNop())
	l.Join("Alpha", 1, &recordConn{})
	l.Join("Beta", 2, &recordConn{})

	p := l.Snapshot()
	payload := p.Payload()
	if payload[0] != 0x01 || payload[1] != 0x00 {
		t.Fatalf("snapshot head = % X", payload[:2])
	}
	count := int(payload[2]) | int(payload[3])<<8
	if count != 2 {
		t.Fatalf("snapshot count = %d, want 2", count)
	}
	// Two 17-byte member entries after the 4-byte head.
	if len(payload) != 4+2*17 {
		t.Fatalf("snapshot len = %d, want %d", len(payload), 4+2*17)
	}
}

func TestLobbySlotReuse(t *testing.T) {
	l := NewLobby(zap.NewNop())
	l.Join("Alpha", 1, &recordConn{})
	l.Join("Beta", 1, &recordConn{})
	l.Join("Gamma", 1, &recordConn{})

	l.Leave("Beta")
	l.Join("Delta", 1, &recordConn{})

	// Delta takes Beta's vacated slot, so the high-water count stays put.
	if l.Count() != 3 {
		t.Fatalf("Count = %d, want 3", l.Count())
	}
}

func TestLobbyMessageSkipsDeadConn(t *testing.T) {
	l := NewLobby(zap.NewNop())
	healthy := &recordConn{}
	l.Join("Alpha", 1, &recordConn{fail: true})
	l.Join("Beta", 1, healthy)

	l.Message("hello", 3)
	if len(healthy.frames) != 1 {
		t.Fatalf("Beta received %d frames, want 1 message", len(healthy.frames))
	}
}

func TestLobbyFullDropsJoin(t *testing.T) {
	l := NewLobby(zap.NewNop())
	for i := 0; i < LobbyCapacity; i++ {
		l.Join("", 1, nil)
	}
	if l.Count() != LobbyCapacity {
		t.Fatalf("Count = %d, want %d", l.Count(), LobbyCapacity)
	}
	l.Join("Overflow", 1, &recordConn{})
	if l.Count() != LobbyCapacity {
		t.Fatalf("Count = %d after overflow join, want %d", l.Count(), LobbyCapacity)
	}
}
