package blaze

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "The Quick Fox", "the quick fox"},
		{"strips punctuation", "Hello, World!", "hello world"},
		{"collapses whitespace", "a   b\t c\n d", "a b c d"},
		{"trims edges", "  padded  ", "padded"},
		{"empty string", "", ""},
		{"only punctuation", "!!!...???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Hello, World!", "  THE Quick   Brown Fox.  ", ""}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
