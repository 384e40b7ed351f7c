package persist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type AccountRow struct {
	ID           int32
	Username     string
	PasswordHash string
	Banned       bool
	Online       bool
	Coins        int32
	CurrentIP    string
	LastIP       string
	LoginCount   int32
	LastLogin    *time.Time
}

type AccountRepo struct {
	db *DB
}

func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Load returns the account by username, (nil, nil) when absent.
func (r *AccountRepo) Load(ctx context.Context, username string) (*AccountRow, error) {
	row := &AccountRow{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, username, password_hash, banned, online, coins,
		        current_ip, last_ip, logincount, lastlogin
		 FROM bout_users WHERE username = $1`, username,
	).Scan(
		&row.ID, &row.Username, &row.PasswordHash, &row.Banned, &row.Online, &row.Coins,
		&row.CurrentIP, &row.LastIP, &row.LoginCount, &row.LastLogin,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FindByIP resolves the account currently bound to a peer address, the
// channel server's authentication step. (nil, nil) when no account matches.
func (r *AccountRepo) FindByIP(ctx context.Context, ip string) (*AccountRow, error) {
	row := &AccountRow{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, username, password_hash, banned, online, coins,
		        current_ip, last_ip, logincount, lastlogin
		 FROM bout_users WHERE current_ip = $1 LIMIT 1`, ip,
	).Scan(
		&row.ID, &row.Username, &row.PasswordHash, &row.Banned, &row.Online, &row.Coins,
		&row.CurrentIP, &row.LastIP, &row.LoginCount, &row.LastLogin,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Create stores a new account. The token is the 32-hex md5 digest the
// client presents at login; only its bcrypt hash is kept at rest.
func (r *AccountRepo) Create(ctx context.Context, username, token string) (*AccountRow, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	row := &AccountRow{Username: username, PasswordHash: string(hash)}
	err = r.db.Pool.QueryRow(ctx,
		`INSERT INTO bout_users (username, password_hash) VALUES ($1, $2) RETURNING id`,
		row.Username, row.PasswordHash,
	).Scan(&row.ID)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ValidateToken compares a presented login token against the stored hash.
func (r *AccountRepo) ValidateToken(hash, token string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}

// RecordLogin bumps the login bookkeeping after a successful login.
func (r *AccountRepo) RecordLogin(ctx context.Context, username, ip string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE bout_users
		 SET current_ip = $2, last_ip = $2, logincount = logincount + 1, lastlogin = NOW()
		 WHERE username = $1`,
		username, ip,
	)
	return err
}

// SetOnline flips the online flag.
func (r *AccountRepo) SetOnline(ctx context.Context, username string, online bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE bout_users SET online = $2 WHERE username = $1`,
		username, online,
	)
	return err
}
