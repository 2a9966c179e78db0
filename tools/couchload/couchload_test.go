package main

import "testing"

func TestEscapeTitle(t *testing.T) {
	tests := []struct{ in, exp string }{
		{"Film", "Film"},
		{"AC/DC", "AC%2fDC"},
		{"C++", "C%2b%2b"},
	}
	for _, test := range tests {
		if got := escapeTitle(test.in); got != test.exp {
			t.Errorf("Expected %q for %q, got %q", test.exp, test.in, got)
		}
	}
}
