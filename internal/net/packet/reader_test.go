package packet

import "testing"

func TestReaderScalars(t *testing.T) {
	r := NewReader([]byte{0x05, 0x34, 0x12, 0xFF, 0xFF, 0xFF, 0xFF})
	if got := r.ReadC(); got != 0x05 {
		t.Fatalf("ReadC = %#x, want 0x05", got)
	}
	if got := r.ReadH(); got != 0x1234 {
		t.Fatalf("ReadH = %#x, want 0x1234", got)
	}
	if got := r.ReadD(); got != -1 {
		t.Fatalf("ReadD = %d, want -1", got)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", r.Remaining())
	}
}

func TestReaderIntReverse(t *testing.T) {
	r := NewReader([]byte{0x12, 0x34})
	if got := r.ReadInt(2, true); got != 0x1234 {
		t.Fatalf("reverse ReadInt = %#x, want 0x1234", got)
	}
}

func TestReaderShortPayload(t *testing.T) {
	r := NewReader([]byte{0x01})
	if got := r.ReadD(); got != 0 {
		t.Fatalf("short ReadD = %d, want 0", got)
	}
	if got := r.ReadC(); got != 0 {
		t.Fatalf("exhausted ReadC = %#x, want 0", got)
	}
}

func TestReaderStrings(t *testing.T) {
	r := NewReader([]byte{'h', 'i', 0x00, 'x', 'y'})
	if got := r.ReadS(); got != "hi" {
		t.Fatalf("ReadS = %q, want %q", got, "hi")
	}
	if got := r.ReadS(); got != "xy" {
		t.Fatalf("unterminated ReadS = %q, want %q", got, "xy")
	}
}

func TestReaderSFixed(t *testing.T) {
	r := NewReader([]byte{'a', 'b', 0x00, 0x00, 'z'})
	if got := r.ReadSFixed(4); got != "ab" {
		t.Fatalf("ReadSFixed = %q, want %q", got, "ab")
	}
	if got := r.ReadC(); got != 'z' {
		t.Fatalf("cursor after ReadSFixed = %q, want 'z'", got)
	}
}

func TestMakeCmd(t *testing.T) {
	if got := MakeCmd(0xE0, 0x2E); got != Cmd(0xE02E) {
		t.Fatalf("MakeCmd = %#x, want 0xE02E", uint16(got))
	}
}
