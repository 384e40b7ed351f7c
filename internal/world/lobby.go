package world

import (
	"sync"

	"github.com/boutgo/server/internal/net/packet"
	"go.uber.org/zap"
)

// LobbyCapacity is the fixed size of the lobby slot table.
const LobbyCapacity = 300

// Conn is the outbound write handle a lobby member registers with.
type Conn interface {
	SendPacket(p *packet.Writer) error
}

// LobbyUser is one occupied lobby slot. Identity is the name; the slot
// index is an allocation detail that is stable only within a session.
type LobbyUser struct {
	Name   string
	Bot    int32
	Status byte
	conn   Conn
}

// Lobby is the fixed-capacity registry of connected players. One mutex
// covers slot allocation, the high-water count and the accompanying
// broadcast so no session ever observes a partially-registered view.
type Lobby struct {
	mu    sync.Mutex
	users [LobbyCapacity]*LobbyUser
	count int
	log   *zap.Logger
}

func NewLobby(log *zap.Logger) *Lobby {
	return &Lobby{log: log}
}

// Join inserts the player into the first empty slot and tells everyone
// else. A full table drops the join silently, matching the fixed-capacity
// contract.
func (l *Lobby) Join(name string, bot int32, conn Conn) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for idx := 0; idx < LobbyCapacity; idx++ {
		if l.users[idx] != nil {
			continue
		}
		l.users[idx] = &LobbyUser{Name: name, Bot: bot, Status: 1, conn: conn}
		if idx+1 > l.count {
			l.count = idx + 1
		}
		l.log.Info("玩家進入大廳", zap.String("name", name), zap.Int("slot", idx))
		l.broadcastLocked(name, l.noticePacket(idx, l.users[idx].Status))
		return
	}
	l.log.Warn("大廳已滿", zap.String("name", name))
}

// Leave broadcasts the departure and clears the slot. Calling it for a
// name that is not present is a no-op, so session teardown can always
// call it.
func (l *Lobby) Leave(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOfLocked(name)
	if idx == -1 {
		return
	}
	l.broadcastLocked(name, l.noticePacket(idx, 0xFF))
	l.users[idx] = nil
	if idx+1 == l.count {
		l.count--
	}
	l.log.Info("玩家離開大廳", zap.String("name", name))
}

// Count returns the current high-water member count.
func (l *Lobby) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Snapshot builds the full roster frame for initial sync.
func (l *Lobby) Snapshot() *packet.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := packet.NewWriter(packet.S_RosterMaj, packet.S_RosterMin)
	p.WriteC2(0x01, 0x00)
	p.WriteH(uint16(l.count))
	for idx := 0; idx < l.count; idx++ {
		user := l.users[idx]
		if user == nil {
			continue // stale trailing gap below the high-water mark
		}
		p.WriteSPad(user.Name, 15)
		p.WriteC2(byte(user.Bot), user.Status)
	}
	return p
}

// Message sends a lobby announcement frame to every registered writer.
func (l *Lobby) Message(msg string, color uint16) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := packet.NewWriter(packet.S_ChatMaj, packet.S_ChatMin)
	p.WriteBytes([]byte{0x00, 0x00, 0x00, 0x00})
	p.WriteH(color)
	p.WriteS("[Server] " + msg)
	p.WriteC(0x00)

	for idx := 0; idx < l.count; idx++ {
		user := l.users[idx]
		if user == nil {
			continue
		}
		l.sendLocked(user, p)
	}
}

// Relay forwards a player-originated frame to every member, sender
// included, so the speaker sees their own line echoed like everyone else.
func (l *Lobby) Relay(p *packet.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for idx := 0; idx < l.count; idx++ {
		user := l.users[idx]
		if user == nil {
			continue
		}
		l.sendLocked(user, p)
	}
}

// noticePacket builds the join/leave notice for the user at idx. Status
// 0xFF marks a departure.
func (l *Lobby) noticePacket(idx int, status byte) *packet.Writer {
	user := l.users[idx]
	p := packet.NewWriter(packet.S_NoticeMaj, packet.S_NoticeMin)
	p.WriteC2(0x01, 0x00)
	p.WriteS(user.Name)
	p.WriteC(0x00)
	p.PadTo(0xCC, 17)
	p.WriteC2(byte(user.Bot), status)
	return p
}

// broadcastLocked delivers a frame to every member except the named one.
// Write failures are logged and skipped so one dead socket cannot starve
// the rest of the roster.
func (l *Lobby) broadcastLocked(except string, p *packet.Writer) {
	for idx := 0; idx < l.count; idx++ {
		user := l.users[idx]
		if user == nil || user.Name == except {
			continue
		}
		l.sendLocked(user, p)
	}
}

func (l *Lobby) sendLocked(user *LobbyUser, p *packet.Writer) {
	if user.conn == nil {
		return
	}
	if err := user.conn.SendPacket(p); err != nil {
		l.log.Debug("大廳廣播失敗", zap.String("name", user.Name), zap.Error(err))
	}
}

func (l *Lobby) indexOfLocked(name string) int {
	for idx := 0; idx < l.count; idx++ {
		if user := l.users[idx]; user != nil && user.Name == name {
			return idx
		}
	}
	return -1
}
