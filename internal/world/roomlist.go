package world

import (
	"context"
	"sync"

	"github.com/boutgo/server/internal/data"
	"go.uber.org/zap"
)

// RoomList tracks the open match rooms by id. Like the lobby, one mutex
// covers allocation and the departure broadcast.
type RoomList struct {
	mu      sync.Mutex
	rooms   map[int]*Room
	nextID  int
	store   RoomStore
	sectors *data.SectorTable
	log     *zap.Logger
}

func NewRoomList(store RoomStore, sectors *data.SectorTable, log *zap.Logger) *RoomList {
	return &RoomList{
		rooms:   make(map[int]*Room),
		nextID:  1,
		store:   store,
		sectors: sectors,
		log:     log,
	}
}

// Create opens a room owned by the given player and returns its id. A
// player already seated somewhere cannot open a second room.
func (l *RoomList) Create(ctx context.Context, num []int, name, pass string, level int, owner, ip string, conn Conn) (int, *Room) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, _, ok := l.findLocked(owner); ok {
		return 0, nil
	}

	room := NewRoom(ctx, num, name, pass, level, owner, ip, conn, l.store, l.sectors, l.log)
	id := l.nextID
	l.nextID++
	l.rooms[id] = room
	l.log.Info("房間已建立", zap.Int("room", id), zap.String("owner", owner))
	return id, room
}

// Join seats the player in an existing room.
func (l *RoomList) Join(id int, player string, conn Conn) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	room, ok := l.rooms[id]
	if !ok {
		return false
	}
	if _, _, seated := l.findLocked(player); seated {
		return false
	}
	return room.AddPlayer(player, conn)
}

// Leave removes the player from whatever room holds them, notifies the
// remaining occupants with the slot-departure frame, and reaps the room
// when it empties. Safe to call for players not in any room.
func (l *RoomList) Leave(player string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, room, ok := l.findLocked(player)
	if !ok {
		return
	}
	slot := room.SlotOf(player)
	empty := room.RemovePlayer(player)

	quit := room.QuitPacket(slot)
	for _, conn := range room.Conns {
		if conn == nil {
			continue
		}
		if err := conn.SendPacket(quit); err != nil {
			l.log.Debug("房間廣播失敗", zap.Int("room", id), zap.Error(err))
		}
	}

	if empty || player == room.Owner {
		delete(l.rooms, id)
		l.log.Info("房間已關閉", zap.Int("room", id))
	}
}

// Count returns the number of open rooms.
func (l *RoomList) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rooms)
}

func (l *RoomList) findLocked(player string) (int, *Room, bool) {
	for id, room := range l.rooms {
		if room.SlotOf(player) != -1 {
			return id, room, true
		}
	}
	return 0, nil, false
}
