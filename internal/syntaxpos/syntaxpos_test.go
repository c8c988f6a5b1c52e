package syntaxpos

import (
	"testing"

	"github.com/coregx/pcrex/native"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		pattern string
		code    int
		offset  int
	}{
		{"*", native.ErrorQuantifierInvalid, 0},
		{"ab**", native.ErrorQuantifierInvalid, 2},
		{"(a", native.ErrorMissingClosingParen, 2},
		{"a)", native.ErrorUnmatchedClosingParen, 1},
		{`\)a)`, native.ErrorUnmatchedClosingParen, 3},
		{"[a", native.ErrorMissingSquareBracket, 2},
		{"[z-a]", native.ErrorClassRangeOrder, 1},
		{`a\`, native.ErrorEndBackslash, 2},
		{`\q`, native.ErrorUnknownEscape, 0},
		{"a{3,2}", native.ErrorQuantifierOutOfOrder, 1},
		{"(?<=a)", native.ErrorGroupNameInvalid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			code, off, ok := Locate(tt.pattern)
			if !ok {
				t.Fatalf("Locate(%q) accepted the pattern", tt.pattern)
			}
			if code != tt.code || off != tt.offset {
				t.Errorf("Locate(%q) = %d at %d, want %d at %d", tt.pattern, code, off, tt.code, tt.offset)
			}
		})
	}
}

func TestLocateAccepts(t *testing.T) {
	for _, p := range []string{"", "a", `\d+`, "(a)(b)", "[()]"} {
		if _, _, ok := Locate(p); ok {
			t.Errorf("Locate(%q) rejected a valid pattern", p)
		}
	}
}

func TestStrayParen(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"a)b", 1},
		{"(a))", 3},
		{`[)]\))`, 5},
		{"()", 0},
	}
	for _, tt := range tests {
		if got := strayParen(tt.pattern); got != tt.want {
			t.Errorf("strayParen(%q) = %d, want %d", tt.pattern, got, tt.want)
		}
	}
}
