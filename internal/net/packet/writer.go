package packet

import (
	"encoding/binary"

	"golang.org/x/text/encoding/charmap"
)

// Writer builds one BOUT server packet. The 2-byte opcode header is fixed at
// construction; the 2-byte little-endian length is appended lazily the first
// time Header is called and must not change afterwards.
type Writer struct {
	maj, min byte
	length   uint16
	calced   bool
	buf      []byte
}

func NewWriter(maj, min byte) *Writer {
	return &Writer{maj: maj, min: min, buf: make([]byte, 0, 64)}
}

// WriteC writes 1 byte.
func (w *Writer) WriteC(v byte) {
	w.checkOpen()
	w.buf = append(w.buf, v)
}

// WriteC2 writes 2 bytes verbatim (the classic packet-head pair).
func (w *Writer) WriteC2(b1, b2 byte) {
	w.checkOpen()
	w.buf = append(w.buf, b1, b2)
}

// WriteH writes 2 bytes little-endian.
func (w *Writer) WriteH(v uint16) {
	w.checkOpen()
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteD writes 4 bytes little-endian (signed or unsigned via cast).
func (w *Writer) WriteD(v int32) {
	w.checkOpen()
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	w.buf = append(w.buf, b[:]...)
}

// WriteS writes a latin-1 string without terminator, converting from UTF-8.
func (w *Writer) WriteS(s string) {
	w.checkOpen()
	w.buf = append(w.buf, latin1Bytes(s)...)
}

// WriteSPad writes a latin-1 string zero-padded (or truncated) to n bytes.
func (w *Writer) WriteSPad(s string, n int) {
	w.checkOpen()
	raw := latin1Bytes(s)
	if len(raw) > n {
		raw = raw[:n]
	}
	w.buf = append(w.buf, raw...)
	for i := len(raw); i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.checkOpen()
	w.buf = append(w.buf, b...)
}

// Fill appends v repeated n times.
func (w *Writer) Fill(v byte, n int) {
	w.checkOpen()
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, v)
	}
}

// PadTo appends v until the payload is n bytes long.
func (w *Writer) PadTo(v byte, n int) {
	w.checkOpen()
	for len(w.buf) < n {
		w.buf = append(w.buf, v)
	}
}

// Len returns the current payload length.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Opcode returns the (major, minor) header pair.
func (w *Writer) Opcode() (byte, byte) {
	return w.maj, w.min
}

// Header returns the 4-byte frame header. The length field is computed on
// the first call and frozen; further payload writes are a programming error.
func (w *Writer) Header() [4]byte {
	if !w.calced {
		w.length = uint16(len(w.buf))
		w.calced = true
	}
	var h [4]byte
	h[0] = w.maj
	h[1] = w.min
	binary.LittleEndian.PutUint16(h[2:], w.length)
	return h
}

// Payload returns the accumulated payload bytes.
func (w *Writer) Payload() []byte {
	return w.buf
}

// SetPayload replaces the payload wholesale (pre-serialized bodies).
func (w *Writer) SetPayload(b []byte) {
	w.checkOpen()
	w.buf = b
}

func (w *Writer) checkOpen() {
	if w.calced {
		panic("packet: write after header finalized")
	}
}

// latin1Bytes converts a UTF-8 string to latin-1 bytes. Pure ASCII passes
// through unchanged; characters outside latin-1 fall back to raw bytes.
func latin1Bytes(s string) []byte {
	allASCII := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return []byte(s)
	}
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return encoded
}
