package system

import (
	"context"
	"testing"

	"github.com/boutgo/server/internal/world"
	"go.uber.org/zap"
)

type nopStore struct{ rec *world.CharacterRecord }

func (s *nopStore) LoadCharacter(_ context.Context, _ string) (*world.CharacterRecord, error) {
	return s.rec, nil
}
func (s *nopStore) LoadInventory(_ context.Context, _ string) (*[10]int32, error) { return nil, nil }
func (s *nopStore) LoadCoins(_ context.Context, _ string) (int32, error)          { return 0, nil }
func (s *nopStore) SaveStats(_ context.Context, _ *world.Bot) error               { return nil }
func (s *nopStore) SaveEquip(_ context.Context, _ *world.Bot) error               { return nil }
func (s *nopStore) SaveInventory(_ context.Context, _ *world.Bot) error           { return nil }
func (s *nopStore) SaveCoins(_ context.Context, _ string, _ int32) error          { return nil }

type priceCatalog struct {
	buy  map[int32]int32
	coin map[int32]int32
	sell map[int32]int32
}

func (c *priceCatalog) Info(_ context.Context, _ int32) *world.ItemInfo { return nil }
func (c *priceCatalog) Script(_ context.Context, _ int32) string        { return "" }
func (c *priceCatalog) BuyPrice(_ context.Context, id int32) int32      { return lookup(c.buy, id) }
func (c *priceCatalog) CoinPrice(_ context.Context, id int32) int32     { return lookup(c.coin, id) }
func (c *priceCatalog) SellPrice(_ context.Context, id int32) int32     { return lookup(c.sell, id) }

func lookup(m map[int32]int32, id int32) int32 {
	if v, ok := m[id]; ok {
		return v
	}
	return -1
}

func shopBot(t *testing.T, gigas, coins int32, invent [10]int32, items world.ItemCatalog) *world.Bot {
	t.Helper()
	b := world.NewBot("acct", "1.2.3.4", &nopStore{rec: &world.CharacterRecord{Name: "Ace", Gigas: gigas}}, items, zap.NewNop())
	b.Load(context.Background())
	b.Invent = invent
	b.Coins = coins
	return b
}

func TestBuyExactFunds(t *testing.T) {
	items := &priceCatalog{buy: map[int32]int32{42: 100}}
	b := shopBot(t, 100, 0, [10]int32{}, items)
	shop := NewShop(b, items)

	p := shop.Buy(context.Background(), 42)

	if b.Gigas != 0 {
		t.Fatalf("gigas = %d, want 0", b.Gigas)
	}
	if b.Invent[0] != 42 {
		t.Fatalf("invent = %v, want item in lowest slot", b.Invent)
	}
	payload := p.Payload()
	if payload[0] != 0x01 || payload[1] != 0x00 {
		t.Fatalf("success head = % X, want 01 00", payload[:2])
	}
}

func TestBuyFillsLowestFreeSlot(t *testing.T) {
	items := &priceCatalog{buy: map[int32]int32{42: 10}}
	b := shopBot(t, 50, 0, [10]int32{1, 0, 3}, items)
	shop := NewShop(b, items)

	shop.Buy(context.Background(), 42)
	if b.Invent[1] != 42 {
		t.Fatalf("invent = %v, want item at slot 1", b.Invent)
	}
}

func TestBuyRejections(t *testing.T) {
	items := &priceCatalog{buy: map[int32]int32{42: 100}}
	full := [10]int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name   string
		gigas  int32
		invent [10]int32
		itemID int32
		want   byte
	}{
		{"insufficient funds", 99, [10]int32{}, 42, ShopStatusNoFunds},
		{"unknown item", 500, [10]int32{}, 7, ShopStatusNoItem},
		{"inventory full", 500, full, 42, ShopStatusNoSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := shopBot(t, tt.gigas, 0, tt.invent, items)
			p := NewShop(b, items).Buy(context.Background(), tt.itemID)

			payload := p.Payload()
			if payload[0] != 0x00 || payload[1] != tt.want {
				t.Fatalf("status = % X, want 00 %02X", payload[:2], tt.want)
			}
			if len(payload) != 97 {
				t.Fatalf("error len = %d, want 97", len(payload))
			}
			if b.Gigas != tt.gigas || b.Invent != tt.invent {
				t.Fatal("rejection must not mutate the bot")
			}
		})
	}
}

func TestBuyCoinUsesCoinBalance(t *testing.T) {
	items := &priceCatalog{coin: map[int32]int32{42: 30}}
	b := shopBot(t, 1000, 50, [10]int32{}, items)
	shop := NewShop(b, items)

	shop.BuyCoin(context.Background(), 42)
	if b.Coins != 20 {
		t.Fatalf("coins = %d, want 20", b.Coins)
	}
	if b.Gigas != 1000 {
		t.Fatalf("gigas = %d, must be untouched", b.Gigas)
	}
	if b.Invent[0] != 42 {
		t.Fatalf("invent = %v", b.Invent)
	}
}

func TestSellCreditsPrice(t *testing.T) {
	items := &priceCatalog{sell: map[int32]int32{42: 25}}
	b := shopBot(t, 10, 0, [10]int32{0, 42}, items)
	shop := NewShop(b, items)

	shop.Sell(context.Background(), 42, 1)
	if b.Gigas != 35 {
		t.Fatalf("gigas = %d, want 35", b.Gigas)
	}
	if b.Invent[1] != 0 {
		t.Fatalf("invent = %v, want slot 1 cleared", b.Invent)
	}
}

func TestSellSlotMismatch(t *testing.T) {
	items := &priceCatalog{sell: map[int32]int32{42: 25}}
	b := shopBot(t, 10, 0, [10]int32{0, 42}, items)
	shop := NewShop(b, items)

	tests := []struct {
		name string
		id   int32
		slot int
	}{
		{"wrong slot", 42, 0},
		{"slot out of range", 42, 10},
		{"unsellable item", 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := shop.Sell(context.Background(), tt.id, tt.slot)
			payload := p.Payload()
			if payload[0] != 0x00 || payload[1] != ShopStatusNoItem {
				t.Fatalf("status = % X, want 00 42", payload[:2])
			}
			if b.Gigas != 10 || b.Invent[1] != 42 {
				t.Fatal("rejection must not mutate the bot")
			}
		})
	}
}
