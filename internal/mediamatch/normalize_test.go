package mediamatch

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "FOLKLORE", "folklore"},
		{"punctuation to space", "Speak Now (Taylor's Version)", "speak now taylor s version"},
		{"collapse runs", "red  --  album", "red album"},
		{"trim edges", "  1989!  ", "1989"},
		{"digits survive", "1989 (Deluxe)", "1989 deluxe"},
		{"only punctuation", "?!#", ""},
		{"empty", "", ""},
		{"non ascii dropped", "café society", "caf society"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Red (Taylor's Version)", "THE TORTURED POETS DEPARTMENT", "  mixed -- Case 42  "}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
