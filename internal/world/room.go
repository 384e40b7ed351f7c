package world

import (
	"context"

	"github.com/boutgo/server/internal/data"
	"github.com/boutgo/server/internal/net/packet"
	"go.uber.org/zap"
)

// Room game modes, selected by the first room-number byte.
const (
	RoomTypeSector = 2
	RoomTypeMatch  = 0
	RoomTypeBase   = 3
)

// RoomStore records pending rooms so the discovery side-channel can attach
// the observed UDP port later.
type RoomStore interface {
	CreateRoom(ctx context.Context, ip string) error
}

// Room is an 8-player match room composed over the lobby's write handles.
type Room struct {
	Num    []int
	Name   string
	Pass   string
	Level  int
	Owner  string
	IP     string
	Typ    int
	Status int
	Map    int

	Players     [8]string
	Conns       [8]Conn
	Ready       [8]bool
	ReadyToPlay [8]bool
	Ports       [8]int

	Sector *data.SectorTable
}

// NewRoom creates a room owned by the given player and registers the
// pending row for the UDP port recorder. Room creation survives a storage
// failure; the row is only needed for match discovery.
func NewRoom(ctx context.Context, num []int, name, pass string, level int, owner, ip string, conn Conn, store RoomStore, sectors *data.SectorTable, log *zap.Logger) *Room {
	r := &Room{
		Num:    num,
		Name:   name,
		Pass:   pass,
		Level:  level,
		Owner:  owner,
		IP:     ip,
		Typ:    -1,
		Status: 1,
		Map:    -1,
	}
	r.Players[0] = owner
	r.Conns[0] = conn
	r.Ready[0] = true

	if len(num) > 0 {
		switch num[0] {
		case 0:
			r.Typ = RoomTypeSector
			r.Sector = sectors
		case 1:
			r.Typ = RoomTypeMatch
		case 2:
			r.Typ = RoomTypeBase
		}
	}

	if store != nil {
		if err := store.CreateRoom(ctx, ip); err != nil {
			log.Warn("房間寫入失敗", zap.String("owner", owner), zap.Error(err))
		}
	}
	return r
}

// IsEmpty reports whether the room has no owner.
func (r *Room) IsEmpty() bool {
	return r.Owner == ""
}

// AddPlayer seats a player in the first free slot.
func (r *Room) AddPlayer(player string, conn Conn) bool {
	for idx, name := range r.Players {
		if name == "" {
			r.Players[idx] = player
			r.Conns[idx] = conn
			return true
		}
	}
	return false
}

// SlotOf returns the player's seat index, -1 when absent.
func (r *Room) SlotOf(player string) int {
	if player == "" {
		return -1
	}
	for idx, name := range r.Players {
		if name == player {
			return idx
		}
	}
	return -1
}

// RemovePlayer clears the player's slot and reports whether the room is
// now empty.
func (r *Room) RemovePlayer(player string) bool {
	for idx, name := range r.Players {
		if name != player {
			continue
		}
		r.Players[idx] = ""
		r.Conns[idx] = nil
		r.Ready[idx] = false
		break
	}
	for _, name := range r.Players {
		if name != "" {
			return false
		}
	}
	return true
}

// QuitPacket builds the slot-departure notice for the remaining players.
func (r *Room) QuitPacket(slot int) *packet.Writer {
	p := packet.NewWriter(packet.S_RoomQuitMaj, packet.S_RoomQuitMin)
	p.WriteH(uint16(slot))
	return p
}
