package handler

import (
	"github.com/boutgo/server/internal/net/packet"
	"github.com/boutgo/server/internal/system"
	"github.com/boutgo/server/internal/world"
	"go.uber.org/zap"
)

// Character-creation status codes carried in the second response byte.
const (
	createStatusError = 0x33
	createStatusTaken = 0x36
	charInfoMissing   = 0x35
)

func onHandshake(sess any, _ *packet.Reader) {
	c := sess.(*Ctx)
	p := packet.NewWriter(packet.S_HandshakeMaj, packet.S_HandshakeMin)
	p.WriteBytes([]byte{0x01, 0x00, 0x01, 0x00})
	c.send(p)
}

func onCharInfo(sess any, _ *packet.Reader) {
	c := sess.(*Ctx)
	p := packet.NewWriter(packet.S_CharInfoMaj, packet.S_CharInfoMin)
	if !c.Bot.Exists() {
		p.WriteC2(0x00, charInfoMissing)
		p.Fill(0x00, world.CharInfoSize-2)
		c.send(p)
		return
	}
	p.WriteC2(0x01, 0x00)
	p.WriteBytes(c.Bot.CharInfo(c.Sess.Context()))
	c.send(p)
}

func onCreate(sess any, r *packet.Reader) {
	c := sess.(*Ctx)
	ctx := c.Sess.Context()

	name := r.ReadS()
	botType := int32(r.ReadC())

	p := packet.NewWriter(packet.S_CreateMaj, packet.S_CreateMin)
	switch {
	case c.Bot.Exists() || name == "" || len(name) > 15:
		p.WriteC2(0x00, createStatusError)
	default:
		taken, err := c.Deps.Characters.NameTaken(ctx, name)
		switch {
		case err != nil:
			c.Sess.Log().Error("角色名稱查詢失敗", zap.Error(err))
			p.WriteC2(0x00, createStatusError)
		case taken:
			p.WriteC2(0x00, createStatusTaken)
		default:
			if err := c.Deps.Characters.Create(ctx, c.Bot.Account, name, botType); err != nil {
				c.Sess.Log().Error("角色建立失敗", zap.String("name", name), zap.Error(err))
				p.WriteC2(0x00, createStatusError)
				break
			}
			c.Sess.Log().Info("角色已建立", zap.String("name", name), zap.Int32("bot", botType))
			c.Bot.Load(ctx)
			c.Deps.Lobby.Join(c.Bot.Name, c.Bot.Type, c.Sess)
			p.WriteC2(0x01, 0x00)
		}
	}
	c.send(p)
}

func onRoster(sess any, _ *packet.Reader) {
	c := sess.(*Ctx)
	c.send(c.Deps.Lobby.Snapshot())
}

// onChat validates that the bracketed speaker name in the chat line is the
// session's own character before relaying the frame to the lobby. A forged
// name drops the frame.
func onChat(sess any, r *packet.Reader) {
	c := sess.(*Ctx)

	raw := r.ReadBytes(r.Remaining())
	name, ok := chatSpeaker(raw)
	if !ok || name != c.Bot.Name {
		c.Sess.Log().Warn("聊天名稱偽造",
			zap.String("claimed", name),
			zap.String("actual", c.Bot.Name),
		)
		return
	}

	p := packet.NewWriter(packet.S_ChatMaj, packet.S_ChatMin)
	p.SetPayload(raw)
	c.Deps.Lobby.Relay(p)
}

// chatSpeaker extracts the name between the [brackets] at the head of the
// chat text. Layout: 4 routing bytes, 2 color bytes, then "[Name] message".
func chatSpeaker(raw []byte) (string, bool) {
	if len(raw) < 8 || raw[6] != '[' {
		return "", false
	}
	for i := 7; i < len(raw) && i < 7+16; i++ {
		if raw[i] == ']' {
			return string(raw[7:i]), true
		}
	}
	return "", false
}

func onKeepAlive(sess any, _ *packet.Reader) {
	c := sess.(*Ctx)
	c.send(ackPacket())
}

// onUnknown answers anything unmapped with the generic ack so the client's
// request/response pump keeps turning.
func onUnknown(sess any, _ *packet.Reader) {
	c := sess.(*Ctx)
	c.send(ackPacket())
}

func ackPacket() *packet.Writer {
	p := packet.NewWriter(packet.S_AckMaj, packet.S_AckMin)
	p.WriteC(0x01)
	p.Fill(0x00, 31)
	return p
}

func equipHandler(epart int) packet.HandlerFunc {
	return func(sess any, r *packet.Reader) {
		c := sess.(*Ctx)
		slot := int(r.ReadC())
		c.send(c.Bot.Equip(c.Sess.Context(), slot, epart))
	}
}

func deequipHandler(epart int) packet.HandlerFunc {
	return func(sess any, r *packet.Reader) {
		c := sess.(*Ctx)
		slot := int(r.ReadC())
		c.send(c.Bot.Deequip(c.Sess.Context(), slot, epart))
	}
}

func onShopBuy(sess any, r *packet.Reader) {
	c := sess.(*Ctx)
	itemID := r.ReadD()
	shop := system.NewShop(c.Bot, c.Deps.Items)
	c.send(shop.Buy(c.Sess.Context(), itemID))
}

func onShopSell(sess any, r *packet.Reader) {
	c := sess.(*Ctx)
	itemID := r.ReadD()
	slot := int(r.ReadC())
	shop := system.NewShop(c.Bot, c.Deps.Items)
	c.send(shop.Sell(c.Sess.Context(), itemID, slot))
}

func onShopBuyCoin(sess any, r *packet.Reader) {
	c := sess.(*Ctx)
	itemID := r.ReadD()
	shop := system.NewShop(c.Bot, c.Deps.Items)
	c.send(shop.BuyCoin(c.Sess.Context(), itemID))
}
