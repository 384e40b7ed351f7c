package handler

import (
	"github.com/boutgo/server/internal/net"
	"github.com/boutgo/server/internal/net/packet"
	"github.com/boutgo/server/internal/persist"
	"github.com/boutgo/server/internal/scripting"
	"github.com/boutgo/server/internal/world"
	"go.uber.org/zap"
)

// Deps bundles the shared services every packet handler reaches for.
type Deps struct {
	Accounts   *persist.AccountRepo
	Characters *persist.CharacterRepo
	Items      world.ItemCatalog
	Lobby      *world.Lobby
	Rooms      *world.RoomList
	Scripts    *scripting.Engine
	Registry   *packet.Registry
	Log        *zap.Logger
}

// Ctx is the per-session handler context the registry dispatches against.
// It is only ever touched by the session's own goroutine.
type Ctx struct {
	Sess *net.Session
	Bot  *world.Bot
	Deps *Deps
}

// RegisterAll wires every command to its handler. All gameplay commands
// require an Active session; the registry drops anything earlier.
func RegisterAll(reg *packet.Registry) {
	active := []packet.SessionState{packet.StateActive}

	reg.Register(packet.C_Handshake, active, onHandshake)
	reg.Register(packet.C_CharInfo, active, onCharInfo)
	reg.Register(packet.C_Create, active, onCreate)
	reg.Register(packet.C_Roster, active, onRoster)
	reg.Register(packet.C_Chat, active, onChat)
	reg.Register(packet.C_KeepAlive, active, onKeepAlive)

	reg.Register(packet.C_EquipPart, active, equipHandler(world.PartBody))
	reg.Register(packet.C_EquipGear, active, equipHandler(world.PartGear))
	reg.Register(packet.C_EquipPack, active, equipHandler(world.PartPack))
	reg.Register(packet.C_DeequipPart, active, deequipHandler(world.PartBody))
	reg.Register(packet.C_DeequipGear, active, deequipHandler(world.PartGear))
	reg.Register(packet.C_DeequipPack, active, deequipHandler(world.PartPack))

	reg.Register(packet.C_RoomCreate, active, onRoomCreate)
	reg.Register(packet.C_RoomJoin, active, onRoomJoin)
	reg.Register(packet.C_RoomLeave, active, onRoomLeave)

	reg.Register(packet.C_ShopBuy, active, onShopBuy)
	reg.Register(packet.C_ShopSell, active, onShopSell)
	reg.Register(packet.C_ShopBuyCoin, active, onShopBuyCoin)

	reg.SetFallback(onUnknown)
}

// send writes a response frame, logging but otherwise swallowing write
// failures; the read loop notices the dead socket on its next turn.
func (c *Ctx) send(p *packet.Writer) {
	if err := c.Sess.SendPacket(p); err != nil {
		c.Sess.Log().Debug("回應傳送失敗", zap.Error(err))
	}
}
