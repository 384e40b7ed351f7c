package login

import (
	"context"
	"net"

	"github.com/boutgo/server/internal/persist"
	"go.uber.org/zap"
)

// portProbe is the 2-byte marker at the head of a room port probe.
var portProbe = [2]byte{0xC9, 0x00}

// PortRecorder listens for the UDP probe a room host fires after opening
// its peer-to-peer port, and attaches the observed source port to the
// host's pending room row.
type PortRecorder struct {
	conn  *net.UDPConn
	rooms *persist.RoomRepo
	log   *zap.Logger
}

func NewPortRecorder(bindAddr string, rooms *persist.RoomRepo, log *zap.Logger) (*PortRecorder, error) {
	addr, err := net.ResolveUDPAddr("udp", bindAddr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, err
	}
	return &PortRecorder{conn: conn, rooms: rooms, log: log}, nil
}

// Serve reads datagrams until the socket closes. Anything that is not a
// probe is dropped.
func (p *PortRecorder) Serve(ctx context.Context) {
	buf := make([]byte, 64)
	for {
		n, addr, err := p.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		if n < 2 || buf[0] != portProbe[0] || buf[1] != portProbe[1] {
			continue
		}
		ip := addr.IP.String()
		if err := p.rooms.SetPort(ctx, ip, addr.Port); err != nil {
			p.log.Warn("房間埠口紀錄失敗", zap.String("ip", ip), zap.Int("port", addr.Port), zap.Error(err))
			continue
		}
		p.log.Info("房間埠口已記錄", zap.String("ip", ip), zap.Int("port", addr.Port))
	}
}

func (p *PortRecorder) Close() {
	p.conn.Close()
}
