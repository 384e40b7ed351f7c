package persist

import "context"

// RoomRepo tracks pending match rooms for the UDP discovery side-channel.
type RoomRepo struct {
	db *DB
}

func NewRoomRepo(db *DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// CreateRoom inserts a pending room row for the owner's IP with port 0.
func (r *RoomRepo) CreateRoom(ctx context.Context, ip string) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO rooms (ip) VALUES ($1)`, ip,
	)
	return err
}

// SetPort records the observed UDP port against the pending room for this
// IP. The port-0 guard makes repeated datagrams from the same host a no-op
// once the port is known.
func (r *RoomRepo) SetPort(ctx context.Context, ip string, port int) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE rooms SET port = $2 WHERE ip = $1 AND port = 0`,
		ip, port,
	)
	return err
}
