package net

import (
	"bytes"
	"testing"

	"github.com/boutgo/server/internal/net/packet"
)

func TestFrameRoundTrip(t *testing.T) {
	p := packet.NewWriter(0xE0, 0x2E)
	p.WriteBytes([]byte{0x01, 0x00, 0x01, 0x00})

	var buf bytes.Buffer
	if err := WriteFrame(&buf, p); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	cmd, payload, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if cmd != packet.MakeCmd(0xE0, 0x2E) {
		t.Fatalf("cmd = %v, want 0xE02E", cmd)
	}
	if !bytes.Equal(payload, []byte{0x01, 0x00, 0x01, 0x00}) {
		t.Fatalf("payload = % X", payload)
	}
}

func TestReadFrameEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, packet.NewWriter(0x74, 0x2B)); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	cmd, payload, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if cmd != packet.MakeCmd(0x74, 0x2B) || len(payload) != 0 {
		t.Fatalf("cmd = %v payload = % X, want 0x742B and empty", cmd, payload)
	}
}

func TestReadFrameTruncated(t *testing.T) {
	// Header promises 10 bytes, stream carries 2.
	buf := bytes.NewReader([]byte{0xE0, 0x2E, 0x0A, 0x00, 0x01, 0x02})
	if _, _, err := ReadFrame(buf); err == nil {
		t.Fatal("expected error for truncated payload")
	}
	if _, _, err := ReadFrame(bytes.NewReader(nil)); err == nil {
		t.Fatal("expected error for empty stream")
	}
}
