package system

import (
	"context"

	"github.com/boutgo/server/internal/net/packet"
	"github.com/boutgo/server/internal/world"
)

// Shop response majors and status codes.
const (
	ShopHeadBuy      = 0xEA
	ShopHeadSell     = 0xEB
	ShopHeadBuyCoins = 0xEC

	ShopStatusNoFunds = 0x41
	ShopStatusNoItem  = 0x42
	ShopStatusNoSlot  = 0x44
)

// Shop is the stateless transaction logic over one bot and the item
// catalog. Rejections are in-band status packets; success responses are
// the standard inventory-update packet.
type Shop struct {
	bot   *world.Bot
	items world.ItemCatalog
}

func NewShop(bot *world.Bot, items world.ItemCatalog) *Shop {
	return &Shop{bot: bot, items: items}
}

// Buy purchases an item with gigas.
func (s *Shop) Buy(ctx context.Context, itemID int32) *packet.Writer {
	price := s.items.BuyPrice(ctx, itemID)
	if price == -1 {
		return shopError(ShopHeadBuy, ShopStatusNoItem)
	}
	if s.bot.Gigas < price {
		return shopError(ShopHeadBuy, ShopStatusNoFunds)
	}
	slot := s.bot.SlotAvailable()
	if slot == -1 {
		return shopError(ShopHeadBuy, ShopStatusNoSlot)
	}
	s.bot.SetGigas(ctx, s.bot.Gigas-price)
	s.bot.SetInvent(ctx, itemID, slot)
	return s.bot.InventPacket(ShopHeadBuy)
}

// BuyCoin is the same flow against the premium coin balance.
func (s *Shop) BuyCoin(ctx context.Context, itemID int32) *packet.Writer {
	price := s.items.CoinPrice(ctx, itemID)
	if price == -1 {
		return shopError(ShopHeadBuyCoins, ShopStatusNoItem)
	}
	if s.bot.Coins < price {
		return shopError(ShopHeadBuyCoins, ShopStatusNoFunds)
	}
	slot := s.bot.SlotAvailable()
	if slot == -1 {
		return shopError(ShopHeadBuyCoins, ShopStatusNoSlot)
	}
	s.bot.SetCoins(ctx, s.bot.Coins-price)
	s.bot.SetInvent(ctx, itemID, slot)
	return s.bot.InventPacket(ShopHeadBuyCoins)
}

// Sell credits the sell price and clears the slot, provided the slot
// actually holds the claimed item.
func (s *Shop) Sell(ctx context.Context, itemID int32, slot int) *packet.Writer {
	price := s.items.SellPrice(ctx, itemID)
	if price == -1 || !s.itemAtSlot(itemID, slot) {
		return shopError(ShopHeadSell, ShopStatusNoItem)
	}
	s.bot.SetGigas(ctx, s.bot.Gigas+price)
	s.bot.SetInvent(ctx, 0, slot)
	return s.bot.InventPacket(ShopHeadSell)
}

func (s *Shop) itemAtSlot(itemID int32, slot int) bool {
	if slot < 0 || slot >= len(s.bot.Invent) {
		return false
	}
	return s.bot.Invent[slot] == itemID
}

func shopError(headMaj byte, status byte) *packet.Writer {
	p := packet.NewWriter(headMaj, 0x2E)
	p.WriteC2(0x00, status)
	p.Fill(0xCC, 95)
	return p
}
