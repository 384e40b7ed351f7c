package packet

import (
	"golang.org/x/text/encoding/charmap"
)

// Reader reads BOUT packet fields from a frame payload (header stripped).
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadC reads 1 unsigned byte.
func (r *Reader) ReadC() byte {
	if r.off >= len(r.data) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

// ReadInt reads n bytes (1, 2 or 4) as a little-endian unsigned integer.
// With reverse set, the bytes are interpreted most-significant-first, the
// legacy big-endian-style read some client fields use.
func (r *Reader) ReadInt(n int, reverse bool) uint32 {
	if r.off+n > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	var v uint32
	if reverse {
		for i := 0; i < n; i++ {
			v = v<<8 | uint32(r.data[r.off+i])
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint32(r.data[r.off+i])
		}
	}
	r.off += n
	return v
}

// ReadH reads 2 bytes as little-endian uint16.
func (r *Reader) ReadH() uint16 {
	return uint16(r.ReadInt(2, false))
}

// ReadD reads 4 bytes as little-endian int32.
func (r *Reader) ReadD() int32 {
	return int32(r.ReadInt(4, false))
}

// ReadS reads a null-terminated latin-1 string and returns UTF-8. A missing
// terminator consumes the rest of the payload.
func (r *Reader) ReadS() string {
	start := r.off
	for r.off < len(r.data) {
		if r.data[r.off] == 0 {
			raw := r.data[start:r.off]
			r.off++ // skip null terminator
			return latin1String(raw)
		}
		r.off++
	}
	return latin1String(r.data[start:r.off])
}

// ReadSFixed reads exactly n bytes as a latin-1 string, stopping at the
// first null byte inside the window.
func (r *Reader) ReadSFixed(n int) string {
	raw := r.ReadBytes(n)
	for i, b := range raw {
		if b == 0 {
			raw = raw[:i]
			break
		}
	}
	return latin1String(raw)
}

// ReadBytes reads n raw bytes.
func (r *Reader) ReadBytes(n int) []byte {
	if r.off+n > len(r.data) {
		remaining := r.data[r.off:]
		r.off = len(r.data)
		return remaining
	}
	b := make([]byte, n)
	copy(b, r.data[r.off:r.off+n])
	r.off += n
	return b
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// latin1String converts latin-1 bytes to a UTF-8 string. Pure ASCII passes
// through unchanged.
func latin1String(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	allASCII := true
	for _, b := range raw {
		if b >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
