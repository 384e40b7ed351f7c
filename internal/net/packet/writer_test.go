package packet

import (
	"bytes"
	"testing"
)

func TestWriterLittleEndianFields(t *testing.T) {
	w := NewWriter(0xE1, 0x2E)
	w.WriteC(0x01)
	w.WriteH(0x1234)
	w.WriteD(-1)

	want := []byte{0x01, 0x34, 0x12, 0xFF, 0xFF, 0xFF, 0xFF}
	if !bytes.Equal(w.Payload(), want) {
		t.Fatalf("payload = % X, want % X", w.Payload(), want)
	}
}

func TestWriterHeaderLength(t *testing.T) {
	w := NewWriter(0xF2, 0x2E)
	w.WriteBytes(make([]byte, 0x0201))

	h := w.Header()
	if h[0] != 0xF2 || h[1] != 0x2E {
		t.Fatalf("opcode bytes = %02X %02X, want F2 2E", h[0], h[1])
	}
	if h[2] != 0x01 || h[3] != 0x02 {
		t.Fatalf("length bytes = %02X %02X, want 01 02", h[2], h[3])
	}
}

func TestWriterPanicsAfterHeaderFinalized(t *testing.T) {
	w := NewWriter(0x46, 0x2F)
	w.WriteC(0x01)
	w.Header()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing after Header")
		}
	}()
	w.WriteC(0x02)
}

func TestWriterSPad(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want []byte
	}{
		{"pads short", "ab", 4, []byte{'a', 'b', 0, 0}},
		{"truncates long", "abcdef", 3, []byte{'a', 'b', 'c'}},
		{"exact", "abc", 3, []byte{'a', 'b', 'c'}},
		{"empty", "", 2, []byte{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(0x27, 0x27)
			w.WriteSPad(tt.in, tt.n)
			if !bytes.Equal(w.Payload(), tt.want) {
				t.Fatalf("payload = % X, want % X", w.Payload(), tt.want)
			}
		})
	}
}

func TestWriterPadTo(t *testing.T) {
	w := NewWriter(0xE4, 0x2E)
	w.WriteC2(0x00, 0x60)
	w.PadTo(0xCC, 5)

	want := []byte{0x00, 0x60, 0xCC, 0xCC, 0xCC}
	if !bytes.Equal(w.Payload(), want) {
		t.Fatalf("payload = % X, want % X", w.Payload(), want)
	}

	// Already long enough: no change.
	w.PadTo(0xCC, 3)
	if w.Len() != 5 {
		t.Fatalf("Len = %d after no-op pad, want 5", w.Len())
	}
}
