package login

import (
	"bufio"
	"bytes"
	"testing"
)

func TestIsHexToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"lowercase digest", "d41d8cd98f00b204e9800998ecf8427e", true},
		{"uppercase digest", "D41D8CD98F00B204E9800998ECF8427E", true},
		{"too short", "d41d8cd98f00b204", false},
		{"too long", "d41d8cd98f00b204e9800998ecf8427e00", false},
		{"non-hex character", "g41d8cd98f00b204e9800998ecf8427e", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHexToken(tt.token); got != tt.want {
				t.Fatalf("isHexToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestReadLine(t *testing.T) {
	br := bufio.NewReader(bytes.NewReader([]byte("Hplayer\x00token\x00")))

	first, err := readLine(br)
	if err != nil {
		t.Fatalf("readLine: %v", err)
	}
	if first != "Hplayer" {
		t.Fatalf("first line = %q, want %q", first, "Hplayer")
	}

	second, err := readLine(br)
	if err != nil {
		t.Fatalf("readLine: %v", err)
	}
	if second != "token" {
		t.Fatalf("second line = %q, want %q", second, "token")
	}

	if _, err := readLine(br); err == nil {
		t.Fatal("expected error at stream end")
	}
}
