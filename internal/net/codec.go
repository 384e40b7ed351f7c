package net

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/boutgo/server/internal/net/packet"
)

// ReadFrame reads one BOUT frame from r.
// Wire format: [1B opcode major][1B opcode minor][2B LE payload length][payload].
// The read blocks until the full header and payload arrive; a short or
// closed read is the peer-disconnected condition, surfaced as the wrapped
// io error.
func ReadFrame(r io.Reader) (packet.Cmd, []byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, fmt.Errorf("read frame header: %w", err)
	}

	cmd := packet.MakeCmd(header[0], header[1])
	payloadLen := int(binary.LittleEndian.Uint16(header[2:]))

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, fmt.Errorf("read frame payload (%d bytes): %w", payloadLen, err)
	}
	return cmd, payload, nil
}

// WriteFrame writes one frame to w: the packet's 4-byte header (which
// finalizes the length field) followed by the payload.
func WriteFrame(w io.Writer, p *packet.Writer) error {
	header := p.Header()
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if _, err := w.Write(p.Payload()); err != nil {
		return fmt.Errorf("write frame payload: %w", err)
	}
	return nil
}
