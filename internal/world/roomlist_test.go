package world

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

type fakeRoomStore struct{ creates int }

func (f *fakeRoomStore) CreateRoom(_ context.Context, _ string) error {
	f.creates++
	return nil
}

func TestRoomCreateSeatsOwner(t *testing.T) {
	store := &fakeRoomStore{}
	l := NewRoomList(store, nil, zap.NewNop())

	id, room := l.Create(context.Background(), []int{0}, "arena", "", 5, "Alpha", "1.2.3.4", &recordConn{})
	if room == nil || id == 0 {
		t.Fatal("create failed")
	}
	if room.Players[0] != "Alpha" || !room.Ready[0] {
		t.Fatalf("owner seat = %q ready %v", room.Players[0], room.Ready[0])
	}
	if room.Typ != RoomTypeSector {
		t.Fatalf("room type = %d, want sector", room.Typ)
	}
	if store.creates != 1 {
		t.Fatalf("store creates = %d, want 1", store.creates)
	}
	if l.Count() != 1 {
		t.Fatalf("Count = %d, want 1", l.Count())
	}
}

func TestRoomCreateWhileSeatedDenied(t *testing.T) {
	l := NewRoomList(&fakeRoomStore{}, nil, zap.NewNop())
	l.Create(context.Background(), []int{1}, "one", "", 1, "Alpha", "1.2.3.4", &recordConn{})

	if id, room := l.Create(context.Background(), []int{1}, "two", "", 1, "Alpha", "1.2.3.4", &recordConn{}); room != nil || id != 0 {
		t.Fatal("seated player opened a second room")
	}
}

func TestRoomJoinAndLeave(t *testing.T) {
	l := NewRoomList(&fakeRoomStore{}, nil, zap.NewNop())
	owner := &recordConn{}
	id, _ := l.Create(context.Background(), []int{1}, "arena", "", 1, "Alpha", "1.2.3.4", owner)

	if !l.Join(id, "Beta", &recordConn{}) {
		t.Fatal("join failed")
	}
	if l.Join(99, "Gamma", &recordConn{}) {
		t.Fatal("join to unknown room succeeded")
	}

	l.Leave("Beta")
	if l.Count() != 1 {
		t.Fatalf("Count = %d, want room still open", l.Count())
	}
	// Owner saw Beta's slot-departure frame.
	if len(owner.frames) != 1 {
		t.Fatalf("owner received %d frames, want 1", len(owner.frames))
	}
	payload := owner.frames[0].Payload()
	slot := int(payload[0]) | int(payload[1])<<8
	if slot != 1 {
		t.Fatalf("quit slot = %d, want 1", slot)
	}
}

func TestRoomOwnerLeaveClosesRoom(t *testing.T) {
	l := NewRoomList(&fakeRoomStore{}, nil, zap.NewNop())
	id, _ := l.Create(context.Background(), []int{1}, "arena", "", 1, "Alpha", "1.2.3.4", &recordConn{})
	l.Join(id, "Beta", &recordConn{})

	l.Leave("Alpha")
	if l.Count() != 0 {
		t.Fatalf("Count = %d, want room reaped", l.Count())
	}

	// Leaving again is a no-op.
	l.Leave("Alpha")
}
