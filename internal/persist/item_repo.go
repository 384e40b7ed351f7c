package persist

import (
	"context"
	"errors"

	"github.com/boutgo/server/internal/world"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ItemRepo reads the bout_items catalog. It implements world.ItemCatalog:
// every lookup fails soft, a storage error reads as "no such item" and is
// logged here rather than surfaced to the protocol layer.
type ItemRepo struct {
	db  *DB
	log *zap.Logger
}

func NewItemRepo(db *DB, log *zap.Logger) *ItemRepo {
	return &ItemRepo{db: db, log: log}
}

// Info returns the equip metadata for an item, nil when unknown.
func (r *ItemRepo) Info(ctx context.Context, itemID int32) *world.ItemInfo {
	info := &world.ItemInfo{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT reqlevel, bot, part FROM bout_items WHERE id = $1`, itemID,
	).Scan(&info.ReqLevel, &info.Bot, &info.Part)
	if err != nil {
		r.logMiss("item info", itemID, err)
		return nil
	}
	return info
}

// Script returns the stat-bonus script, "" when absent.
func (r *ItemRepo) Script(ctx context.Context, itemID int32) string {
	var script string
	err := r.db.Pool.QueryRow(ctx,
		`SELECT script FROM bout_items WHERE id = $1`, itemID,
	).Scan(&script)
	if err != nil {
		r.logMiss("item script", itemID, err)
		return ""
	}
	return script
}

// BuyPrice returns the gigas price, -1 when the item is not purchasable.
func (r *ItemRepo) BuyPrice(ctx context.Context, itemID int32) int32 {
	var price int32
	var buyable bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT buy, buyable FROM bout_items WHERE id = $1`, itemID,
	).Scan(&price, &buyable)
	if err != nil {
		r.logMiss("buy price", itemID, err)
		return -1
	}
	if !buyable {
		return -1
	}
	return price
}

// CoinPrice returns the premium coin price, -1 when not coin-purchasable.
func (r *ItemRepo) CoinPrice(ctx context.Context, itemID int32) int32 {
	var price int32
	var coinable bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT coins, coinable FROM bout_items WHERE id = $1`, itemID,
	).Scan(&price, &coinable)
	if err != nil {
		r.logMiss("coin price", itemID, err)
		return -1
	}
	if !coinable {
		return -1
	}
	return price
}

// SellPrice returns the sell value, -1 when the item cannot be sold.
func (r *ItemRepo) SellPrice(ctx context.Context, itemID int32) int32 {
	var price int32
	err := r.db.Pool.QueryRow(ctx,
		`SELECT sell FROM bout_items WHERE id = $1`, itemID,
	).Scan(&price)
	if err != nil {
		r.logMiss("sell price", itemID, err)
		return -1
	}
	return price
}

// Name returns the item's display name, "" when unknown.
func (r *ItemRepo) Name(ctx context.Context, itemID int32) string {
	var name string
	err := r.db.Pool.QueryRow(ctx,
		`SELECT name FROM bout_items WHERE id = $1`, itemID,
	).Scan(&name)
	if err != nil {
		r.logMiss("item name", itemID, err)
		return ""
	}
	return name
}

func (r *ItemRepo) logMiss(what string, itemID int32, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return
	}
	r.log.Warn("道具查詢失敗", zap.String("what", what), zap.Int32("item", itemID), zap.Error(err))
}
