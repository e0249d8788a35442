package core

import "testing"

func TestNormalizeSender(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maria Gonzalez en Teams", "Maria Gonzalez"},
		{"John Smith in Teams", "John Smith"},
		{"Hans Meyer auf Teams", "Hans Meyer"},
		{"Claire Dubois sur Teams", "Claire Dubois"},
		{"Luca Rossi su Teams", "Luca Rossi"},
		{"Maria Gonzalez EN TEAMS", "Maria Gonzalez"}, // case-insensitive
		{"Maria Gonzalez", "Maria Gonzalez"},          // no suffix
		{"Karen teams", "Ka"},                         // separator char dropped even when not a space
		{"en Teams", ""},                              // name is exactly a variant
		{"Teams Working Group", "Teams Working Group"}, // not a suffix
		{"in Teams we trust", "in Teams we trust"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := NormalizeSender(tc.in); got != tc.want {
			t.Errorf("NormalizeSender(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
