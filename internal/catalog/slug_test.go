package catalog

import "testing"

func TestThemeID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"My Theme! #1", "my-theme-1"},
		{"Neon Nights", "neon-nights"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
		{"dash--runs---here", "dash-runs-here"},
		{"--edges--", "edges"},
		{"Ünïcode Çity", "ncode-ity"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range tests {
		if got := ThemeID(tc.name); got != tc.want {
			t.Errorf("ThemeID(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestThemeIDIdempotent(t *testing.T) {
	inputs := []string{"My Theme! #1", "Neon Nights", "a  b--c", "Product Launch 2026"}
	for _, name := range inputs {
		once := ThemeID(name)
		twice := ThemeID(once)
		if once != twice {
			t.Errorf("ThemeID not idempotent for %q: %q != %q", name, once, twice)
		}
	}
}
