package persist

import (
	"context"
	"errors"

	"github.com/boutgo/server/internal/world"
	"github.com/jackc/pgx/v5"
)

// CharacterRepo persists bout_characters, bout_inventory and the users'
// coin balance. It implements world.Store.
type CharacterRepo struct {
	db *DB
}

func NewCharacterRepo(db *DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

// LoadCharacter returns the character row for an account, nil when the
// account has no character yet.
func (r *CharacterRepo) LoadCharacter(ctx context.Context, account string) (*world.CharacterRecord, error) {
	c := &world.CharacterRecord{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT name, bot, exp, level, hp, gigas,
		        attmin, attmax, attmintrans, attmaxtrans, transgauge,
		        crit, evade, specialtrans, speed, transdef,
		        transbotatt, transspeed, rangeatt, luk, botstract,
		        equiphead, equipbody, equiparm,
		        equipminibot, equipgun, equipefield, equipwing,
		        equipshield, equiparmpart, equipflag1, equipflag2,
		        equippassivskill, equipaktivskill, equippack,
		        equiptransbot, equipmerc, equipmerc2,
		        equipheadcoin, equipminibotcoin
		 FROM bout_characters WHERE username = $1 LIMIT 1`, account,
	).Scan(
		&c.Name, &c.Type, &c.Exp, &c.Level, &c.HP, &c.Gigas,
		&c.AttMin, &c.AttMax, &c.AttMinTrans, &c.AttMaxTrans, &c.TransGauge,
		&c.Crit, &c.Evade, &c.SpecTrans, &c.Speed, &c.TransDef,
		&c.TransBotAtt, &c.TransSpeed, &c.RangeAtt, &c.Luk, &c.Stract,
		&c.EquipPart[0], &c.EquipPart[1], &c.EquipPart[2],
		&c.EquipGear[0], &c.EquipGear[1], &c.EquipGear[2], &c.EquipGear[3],
		&c.EquipGear[4], &c.EquipGear[5], &c.EquipGear[6], &c.EquipGear[7],
		&c.EquipPack[0], &c.EquipPack[1], &c.EquipPack[2],
		&c.EquipPack[3], &c.EquipPack[4], &c.EquipPack[5],
		&c.EquipCoin[0], &c.EquipCoin[1],
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// LoadInventory returns the ten inventory slots keyed by character name,
// nil when no row exists.
func (r *CharacterRepo) LoadInventory(ctx context.Context, name string) (*[10]int32, error) {
	var inv [10]int32
	err := r.db.Pool.QueryRow(ctx,
		`SELECT item1, item2, item3, item4, item5, item6, item7, item8, item9, item10
		 FROM bout_inventory WHERE name = $1 LIMIT 1`, name,
	).Scan(
		&inv[0], &inv[1], &inv[2], &inv[3], &inv[4],
		&inv[5], &inv[6], &inv[7], &inv[8], &inv[9],
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// LoadCoins returns the premium coin balance of an account.
func (r *CharacterRepo) LoadCoins(ctx context.Context, account string) (int32, error) {
	var coins int32
	err := r.db.Pool.QueryRow(ctx,
		`SELECT coins FROM bout_users WHERE username = $1`, account,
	).Scan(&coins)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return coins, nil
}

// SaveStats writes the mutable character stats back, keyed by name.
func (r *CharacterRepo) SaveStats(ctx context.Context, b *world.Bot) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE bout_characters
		 SET bot = $1, exp = $2, level = $3, hp = $4, gigas = $5,
		     attmin = $6, attmax = $7, attmintrans = $8, attmaxtrans = $9,
		     specialtrans = $10, rangeatt = $11, botstract = $12
		 WHERE name = $13`,
		b.Type, b.Exp, b.Level, b.HP, b.Gigas,
		b.AttMin, b.AttMax, b.AttMinTrans, b.AttMaxTrans,
		b.SpecTrans, b.RangeAtt, b.Stract, b.Name,
	)
	return err
}

// SaveEquip writes all nineteen equipment columns back.
func (r *CharacterRepo) SaveEquip(ctx context.Context, b *world.Bot) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE bout_characters
		 SET equiphead = $1, equipbody = $2, equiparm = $3,
		     equipminibot = $4, equipgun = $5, equipefield = $6, equipwing = $7,
		     equipshield = $8, equiparmpart = $9, equipflag1 = $10, equipflag2 = $11,
		     equippassivskill = $12, equipaktivskill = $13, equippack = $14,
		     equiptransbot = $15, equipmerc = $16, equipmerc2 = $17,
		     equipheadcoin = $18, equipminibotcoin = $19
		 WHERE name = $20`,
		b.EquipPart[0], b.EquipPart[1], b.EquipPart[2],
		b.EquipGear[0], b.EquipGear[1], b.EquipGear[2], b.EquipGear[3],
		b.EquipGear[4], b.EquipGear[5], b.EquipGear[6], b.EquipGear[7],
		b.EquipPack[0], b.EquipPack[1], b.EquipPack[2],
		b.EquipPack[3], b.EquipPack[4], b.EquipPack[5],
		b.EquipCoin[0], b.EquipCoin[1], b.Name,
	)
	return err
}

// SaveInventory writes the ten inventory slots back.
func (r *CharacterRepo) SaveInventory(ctx context.Context, b *world.Bot) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE bout_inventory
		 SET item1 = $1, item2 = $2, item3 = $3, item4 = $4, item5 = $5,
		     item6 = $6, item7 = $7, item8 = $8, item9 = $9, item10 = $10
		 WHERE name = $11`,
		b.Invent[0], b.Invent[1], b.Invent[2], b.Invent[3], b.Invent[4],
		b.Invent[5], b.Invent[6], b.Invent[7], b.Invent[8], b.Invent[9],
		b.Name,
	)
	return err
}

// SaveCoins writes the premium coin balance back to the account row.
func (r *CharacterRepo) SaveCoins(ctx context.Context, account string, coins int32) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE bout_users SET coins = $2 WHERE username = $1`,
		account, coins,
	)
	return err
}

// NameTaken reports whether a character name is already in use.
func (r *CharacterRepo) NameTaken(ctx context.Context, name string) (bool, error) {
	var id int32
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id FROM bout_characters WHERE name = $1 LIMIT 1`, name,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts the character row and its empty inventory row.
func (r *CharacterRepo) Create(ctx context.Context, account, name string, botType int32) error {
	if _, err := r.db.Pool.Exec(ctx,
		`INSERT INTO bout_characters (username, name, bot) VALUES ($1, $2, $3)`,
		account, name, botType,
	); err != nil {
		return err
	}
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO bout_inventory (name) VALUES ($1)`, name,
	)
	return err
}
