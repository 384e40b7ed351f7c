package world

import (
	"context"
	"encoding/binary"

	"github.com/boutgo/server/internal/net/packet"
	"go.uber.org/zap"
)

// Equipment categories. Slot indices are the flat part numbers the item
// table carries: body parts own 0-2, gear 3-10, pack 11-16, coin 0-1.
const (
	PartBody = 1
	PartGear = 2
	PartPack = 3
	PartCoin = 4
)

// Equip status codes returned in-band to the client.
const (
	EquipStatusFail     = 0x60 // empty slot, unknown item, wrong bot type
	EquipStatusNoSlot   = 0x61 // no free inventory slot on deequip
	EquipStatusLowLevel = 0x65 // level requirement not met
)

// CharInfoSize is the wire size of the character-info payload. The layout
// is a client contract and must stay byte-exact.
const CharInfoSize = 1374

// equipRejectLen pads equip/deequip rejections to the generic ack body size.
const equipRejectLen = 32

// Bot owns one player's character state: stats, equipment, inventory and
// currency. It is exclusively owned by its session goroutine; every
// mutation is written back to storage immediately (fail-soft on error).
type Bot struct {
	Account string
	IP      string

	Name   string
	Type   int32
	Exp    int32
	Level  int32
	HP     int32
	Gigas  int32
	Coins  int32
	Stract int32

	AttMin      int32
	AttMax      int32
	AttMinTrans int32
	AttMaxTrans int32
	TransGauge  int32
	Crit        int32
	Evade       int32
	SpecTrans   int32
	Speed       int32
	TransDef    int32
	TransBotAtt int32
	TransSpeed  int32
	RangeAtt    int32
	Luk         int32

	EquipPart [3]int32
	EquipGear [8]int32
	EquipPack [6]int32
	EquipCoin [2]int32
	Invent    [10]int32

	Bonus BonusStats

	// Room is the (room number, slot) the bot currently sits in, -1 = lobby.
	Room [2]int

	store Store
	items ItemCatalog
	log   *zap.Logger
}

func NewBot(account, ip string, store Store, items ItemCatalog, log *zap.Logger) *Bot {
	return &Bot{
		Account: account,
		IP:      ip,
		Room:    [2]int{-1, -1},
		store:   store,
		items:   items,
		log:     log,
	}
}

// Load pulls the character row, inventory row and coin balance from
// storage. Absent rows leave the zero values in place; a character that
// does not exist is exactly this default state.
func (b *Bot) Load(ctx context.Context) {
	rec, err := b.store.LoadCharacter(ctx, b.Account)
	if err != nil {
		b.log.Warn("角色讀取失敗", zap.String("account", b.Account), zap.Error(err))
	}
	if rec != nil {
		b.Name = rec.Name
		b.Type = rec.Type
		b.Exp = rec.Exp
		b.Level = rec.Level
		b.HP = rec.HP
		b.Gigas = rec.Gigas
		b.AttMin = rec.AttMin
		b.AttMax = rec.AttMax
		b.AttMinTrans = rec.AttMinTrans
		b.AttMaxTrans = rec.AttMaxTrans
		b.TransGauge = rec.TransGauge
		b.Crit = rec.Crit
		b.Evade = rec.Evade
		b.SpecTrans = rec.SpecTrans
		b.Speed = rec.Speed
		b.TransDef = rec.TransDef
		b.TransBotAtt = rec.TransBotAtt
		b.TransSpeed = rec.TransSpeed
		b.RangeAtt = rec.RangeAtt
		b.Luk = rec.Luk
		b.Stract = rec.Stract
		b.EquipPart = rec.EquipPart
		b.EquipGear = rec.EquipGear
		b.EquipPack = rec.EquipPack
		b.EquipCoin = rec.EquipCoin
	}

	inv, err := b.store.LoadInventory(ctx, b.Name)
	if err != nil {
		b.log.Warn("背包讀取失敗", zap.String("name", b.Name), zap.Error(err))
	}
	if inv != nil {
		b.Invent = *inv
	}

	coins, err := b.store.LoadCoins(ctx, b.Account)
	if err != nil {
		b.log.Warn("代幣讀取失敗", zap.String("account", b.Account), zap.Error(err))
	} else {
		b.Coins = coins
	}
}

// Exists reports whether a character row was found for this account.
func (b *Bot) Exists() bool {
	return b.Name != ""
}

// LoadEquipBonus resets the bonus stats and re-folds every equipped item's
// stat script, iterating body parts, gear, pack and coin slots in that
// fixed order.
func (b *Bot) LoadEquipBonus(ctx context.Context) {
	b.Bonus = BonusStats{}
	for _, group := range [][]int32{b.EquipPart[:], b.EquipGear[:], b.EquipPack[:], b.EquipCoin[:]} {
		for _, id := range group {
			if id == 0 {
				continue
			}
			if script := b.items.Script(ctx, id); script != "" {
				b.Bonus.ParseScript(script)
			}
		}
	}
}

// GetEquip returns the item id at a flat part index, or -1 when the
// category/index pair is invalid.
func (b *Bot) GetEquip(epart, part int) int32 {
	switch epart {
	case PartBody:
		if part >= 0 && part < 3 {
			return b.EquipPart[part]
		}
	case PartGear:
		if part >= 3 && part < 11 {
			return b.EquipGear[part-3]
		}
	case PartPack:
		if part >= 11 && part < 17 {
			return b.EquipPack[part-11]
		}
	case PartCoin:
		if part >= 0 && part < 2 {
			return b.EquipCoin[part]
		}
	}
	return -1
}

// SetEquip places an item id at a flat part index and persists the
// equipment columns.
func (b *Bot) SetEquip(ctx context.Context, itemID int32, epart, part int) {
	switch epart {
	case PartBody:
		if part >= 0 && part < 3 {
			b.EquipPart[part] = itemID
		}
	case PartGear:
		if part >= 3 && part < 11 {
			b.EquipGear[part-3] = itemID
		}
	case PartPack:
		if part >= 11 && part < 17 {
			b.EquipPack[part-11] = itemID
		}
	case PartCoin:
		if part >= 0 && part < 2 {
			b.EquipCoin[part] = itemID
		}
	}
	if err := b.store.SaveEquip(ctx, b); err != nil {
		b.log.Warn("裝備寫入失敗", zap.String("name", b.Name), zap.Error(err))
	}
}

// SlotAvailable returns the lowest free inventory slot, or -1 when full.
func (b *Bot) SlotAvailable() int {
	for i, v := range b.Invent {
		if v == 0 {
			return i
		}
	}
	return -1
}

// SetInvent writes one inventory slot and persists the inventory row.
func (b *Bot) SetInvent(ctx context.Context, itemID int32, slot int) {
	if slot < 0 || slot >= len(b.Invent) {
		return
	}
	b.Invent[slot] = itemID
	if err := b.store.SaveInventory(ctx, b); err != nil {
		b.log.Warn("背包寫入失敗", zap.String("name", b.Name), zap.Error(err))
	}
}

// SetGigas updates the gigas balance and persists the character stats.
func (b *Bot) SetGigas(ctx context.Context, gigas int32) {
	b.Gigas = gigas
	if err := b.store.SaveStats(ctx, b); err != nil {
		b.log.Warn("角色寫入失敗", zap.String("name", b.Name), zap.Error(err))
	}
}

// SetCoins updates the premium coin balance and persists it.
func (b *Bot) SetCoins(ctx context.Context, coins int32) {
	b.Coins = coins
	if err := b.store.SaveCoins(ctx, b.Account, coins); err != nil {
		b.log.Warn("代幣寫入失敗", zap.String("account", b.Account), zap.Error(err))
	}
}

// Equip moves the inventory item at slot into its equipment slot,
// returning the equipped item (if any) to the vacated inventory slot.
// Failures are in-band status packets, never errors.
func (b *Bot) Equip(ctx context.Context, slot, epart int) *packet.Writer {
	var p *packet.Writer
	switch epart {
	case PartBody:
		p = packet.NewWriter(0xE4, 0x2E)
	case PartGear:
		p = packet.NewWriter(0x19, 0x2F)
	default:
		p = packet.NewWriter(0x1B, 0x2F)
	}

	if slot < 0 || slot >= len(b.Invent) {
		return equipReject(p, EquipStatusFail)
	}
	aid := b.Invent[slot]
	if aid == 0 {
		return equipReject(p, EquipStatusFail)
	}

	info := b.items.Info(ctx, aid)
	if info == nil {
		return equipReject(p, EquipStatusFail)
	}
	if info.ReqLevel > b.Level {
		return equipReject(p, EquipStatusLowLevel)
	}
	if info.Bot != 0 && info.Bot != b.Type {
		return equipReject(p, EquipStatusFail)
	}

	part := int(info.Part) - 1
	// Coin items carry part codes past the pack range.
	if part == 17 {
		epart = PartCoin
		part = 0
	} else if part == 18 {
		epart = PartCoin
		part = 1
	}

	old := b.GetEquip(epart, part)
	// Paired slot: when 15 is taken but 16 is free, equip into 16 and keep
	// the occupant of 15 where it is.
	if part == 15 && old != 0 {
		if b.GetEquip(epart, part+1) == 0 {
			old = 0
			part++
		}
	}

	if old == -1 {
		return equipReject(p, EquipStatusFail)
	}

	b.SetInvent(ctx, old, slot)
	b.SetEquip(ctx, aid, epart, part)
	p.SetPayload(b.CharInfo(ctx))
	return p
}

// Deequip moves an equipped item back into the first free inventory slot.
func (b *Bot) Deequip(ctx context.Context, slot, epart int) *packet.Writer {
	var p *packet.Writer
	switch epart {
	case PartBody:
		p = packet.NewWriter(0xE5, 0x2E)
		if slot == 0 && b.EquipCoin[0] != 0 {
			epart = PartCoin
		}
	case PartGear:
		p = packet.NewWriter(0x1A, 0x2F)
		if slot == 0 && b.EquipCoin[1] != 0 {
			epart = PartCoin
			slot = 1
		} else {
			slot += 3
		}
	default:
		p = packet.NewWriter(0x1C, 0x2F)
		slot += 11
	}

	aid := b.GetEquip(epart, slot)
	if aid == 0 || aid == -1 {
		return equipReject(p, EquipStatusFail)
	}

	islot := b.SlotAvailable()
	if islot == -1 {
		return equipReject(p, EquipStatusNoSlot)
	}

	b.SetInvent(ctx, aid, islot)
	b.SetEquip(ctx, 0, epart, slot)
	p.SetPayload(b.CharInfo(ctx))
	return p
}

func equipReject(p *packet.Writer, status byte) *packet.Writer {
	p.WriteC2(0x00, status)
	p.PadTo(0xCC, equipRejectLen)
	return p
}

// InventPacket builds the standard inventory-update response under the
// given major opcode: 0x01 marker, ten 9-byte item blocks, gigas.
func (b *Bot) InventPacket(headMaj byte) *packet.Writer {
	p := packet.NewWriter(headMaj, 0x2E)
	p.WriteC2(0x01, 0x00)
	p.WriteC(0x01)
	for _, id := range b.Invent {
		p.WriteD(id)
		if id == 0 {
			p.WriteBytes([]byte{0x00, 0x00, 0x00, 0x00})
		} else {
			p.WriteBytes([]byte{0xFF, 0xFF, 0xFF, 0xFF})
		}
		p.WriteC(0x00)
	}
	p.WriteD(b.Gigas)
	return p
}

// CharInfo serializes the canonical 1374-byte character-info payload.
// Field order, the literal 800, the pad runs and the per-slot blocks are a
// legacy wire contract and must not change.
func (b *Bot) CharInfo(ctx context.Context) []byte {
	b.LoadEquipBonus(ctx)

	buf := make([]byte, 0, CharInfoSize)
	buf = appendPaddedName(buf, b.Name, 15)
	buf = appendLE(buf, uint32(b.Type), 2)
	buf = appendLE(buf, uint32(b.Exp), 4)
	buf = appendLE(buf, uint32(b.Level), 2)
	buf = appendLE(buf, uint32(b.HP+b.Bonus.HP), 2)
	buf = appendLE(buf, uint32(b.Gigas), 4)
	buf = appendLE(buf, uint32(b.AttMin+b.Bonus.AttMin), 2)
	buf = appendLE(buf, uint32(b.AttMax+b.Bonus.AttMax), 2)
	buf = appendLE(buf, uint32(b.AttMinTrans+b.Bonus.AttMinTrans), 2)
	buf = appendLE(buf, uint32(b.AttMaxTrans+b.Bonus.AttMaxTrans), 2)
	buf = appendLE(buf, 800, 2)
	buf = appendLE(buf, uint32(b.TransGauge+b.Bonus.TransGauge), 2)
	buf = appendLE(buf, uint32(b.Crit+b.Bonus.Crit), 2)
	buf = appendLE(buf, uint32(b.Evade+b.Bonus.Evade), 2)
	buf = appendLE(buf, uint32(b.SpecTrans+b.Bonus.SpecTrans), 2)
	buf = appendLE(buf, uint32(b.Speed+b.Bonus.Speed), 2)
	buf = appendLE(buf, uint32(b.TransDef+b.Bonus.TransDef), 2)
	buf = appendLE(buf, uint32(b.TransBotAtt+b.Bonus.TransBotAtt), 2)
	buf = appendLE(buf, uint32(b.TransSpeed+b.Bonus.TransSpeed), 2)
	buf = appendLE(buf, uint32(b.RangeAtt+b.Bonus.RangeAtt), 2)
	buf = appendLE(buf, uint32(b.Luk+b.Bonus.Luk), 2)
	buf = appendLE(buf, uint32(b.Stract), 4)

	buf = appendZeros(buf, 16)

	for _, id := range b.EquipPart {
		buf = appendItemBlock(buf, id)
	}

	buf = append(buf, 0x01)

	for _, id := range b.Invent {
		buf = appendItemBlock(buf, id)
	}

	buf = appendLE(buf, uint32(b.Gigas), 4)
	buf = appendZeros(buf, 12)

	buf = appendZeros(buf, 230)

	for _, id := range b.EquipGear {
		buf = appendItemBlock(buf, id)
	}
	for _, id := range b.EquipPack {
		buf = appendItemBlock(buf, id)
	}

	buf = appendZeros(buf, 200)

	for _, id := range b.EquipCoin {
		buf = appendItemBlock(buf, id)
	}

	for len(buf) < CharInfoSize {
		buf = append(buf, 0)
	}
	return buf
}

// appendItemBlock writes one equipment/inventory slot: 8 zero bytes when
// empty, otherwise the item id plus the 0xFFFFFFFF marker, then one pad byte.
func appendItemBlock(buf []byte, id int32) []byte {
	if id == 0 {
		buf = appendZeros(buf, 8)
	} else {
		buf = appendLE(buf, uint32(id), 4)
		buf = append(buf, 0xFF, 0xFF, 0xFF, 0xFF)
	}
	return append(buf, 0x00)
}

func appendLE(buf []byte, v uint32, n int) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:n]...)
}

func appendZeros(buf []byte, n int) []byte {
	for i := 0; i < n; i++ {
		buf = append(buf, 0)
	}
	return buf
}

func appendPaddedName(buf []byte, name string, n int) []byte {
	raw := []byte(name)
	if len(raw) > n {
		raw = raw[:n]
	}
	buf = append(buf, raw...)
	return appendZeros(buf, n-len(raw))
}
