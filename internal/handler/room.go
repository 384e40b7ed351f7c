package handler

import (
	"github.com/boutgo/server/internal/net/packet"
)

func onRoomCreate(sess any, r *packet.Reader) {
	c := sess.(*Ctx)

	mode := int(r.ReadC())
	level := int(r.ReadC())
	name := r.ReadS()
	pass := r.ReadS()

	p := packet.NewWriter(packet.S_RoomMaj, packet.S_RoomMin)
	if !c.Bot.Exists() {
		p.WriteC2(0x00, 0x00)
		c.send(p)
		return
	}

	id, room := c.Deps.Rooms.Create(c.Sess.Context(), []int{mode}, name, pass, level,
		c.Bot.Name, c.Sess.IP, c.Sess)
	if room == nil {
		p.WriteC2(0x00, 0x00)
		c.send(p)
		return
	}
	c.Bot.Room = [2]int{id, 0}

	p.WriteC2(0x01, 0x00)
	p.WriteH(uint16(id))
	c.send(p)
}

func onRoomJoin(sess any, r *packet.Reader) {
	c := sess.(*Ctx)
	id := int(r.ReadH())

	p := packet.NewWriter(packet.S_RoomMaj, packet.S_RoomMin)
	if !c.Bot.Exists() || !c.Deps.Rooms.Join(id, c.Bot.Name, c.Sess) {
		p.WriteC2(0x00, 0x00)
		c.send(p)
		return
	}
	c.Bot.Room = [2]int{id, -1}

	p.WriteC2(0x01, 0x00)
	p.WriteH(uint16(id))
	c.send(p)
}

func onRoomLeave(sess any, _ *packet.Reader) {
	c := sess.(*Ctx)
	if c.Bot.Exists() {
		c.Deps.Rooms.Leave(c.Bot.Name)
	}
	c.Bot.Room = [2]int{-1, -1}
	c.send(ackPacket())
}
