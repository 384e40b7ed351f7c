package world

import "context"

// ItemInfo is the catalog metadata the equip checks need.
type ItemInfo struct {
	ReqLevel int32
	Bot      int32 // owning bot type restriction, 0 = any
	Part     int32 // 1-based equip slot classification
}

// ItemCatalog resolves item ids against the bout_items table. Lookups fail
// soft: a storage error reads as "no such item".
type ItemCatalog interface {
	// Info returns equip metadata, or nil when the item is unknown.
	Info(ctx context.Context, itemID int32) *ItemInfo
	// Script returns the stat-bonus script text, "" when absent.
	Script(ctx context.Context, itemID int32) string
	// BuyPrice returns the gigas price, -1 when not purchasable.
	BuyPrice(ctx context.Context, itemID int32) int32
	// CoinPrice returns the coin price, -1 when not coin-purchasable.
	CoinPrice(ctx context.Context, itemID int32) int32
	// SellPrice returns the sell value, -1 when the item cannot be sold.
	SellPrice(ctx context.Context, itemID int32) int32
}

// CharacterRecord is one bout_characters row as the engine consumes it.
type CharacterRecord struct {
	Name        string
	Type        int32
	Exp         int32
	Level       int32
	HP          int32
	Gigas       int32
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
	Stract      int32

	EquipPart [3]int32
	EquipGear [8]int32
	EquipPack [6]int32
	EquipCoin [2]int32
}

// Store persists one character's state. Reads return nil for absent rows;
// callers treat write errors as fail-soft (log and move on).
type Store interface {
	LoadCharacter(ctx context.Context, account string) (*CharacterRecord, error)
	LoadInventory(ctx context.Context, name string) (*[10]int32, error)
	LoadCoins(ctx context.Context, account string) (int32, error)

	SaveStats(ctx context.Context, b *Bot) error
	SaveEquip(ctx context.Context, b *Bot) error
	SaveInventory(ctx context.Context, b *Bot) error
	SaveCoins(ctx context.Context, account string, coins int32) error
}
