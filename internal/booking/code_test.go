package booking

import (
	"strings"
	"testing"
)

func TestShortCodeGenerate(t *testing.T) {
	gen := ShortCode{}

	code, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(code) != CodeLength {
		t.Errorf("Generate() length = %d, want %d", len(code), CodeLength)
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			t.Errorf("Generate() produced character %q outside the alphabet", r)
		}
	}
}

func TestShortCodeGenerateVaries(t *testing.T) {
	gen := ShortCode{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		seen[code] = true
	}
	// 100 draws from a 62^6 space colliding down to a handful would mean
	// the randomness is broken.
	if len(seen) < 95 {
		t.Errorf("Generate() produced only %d distinct codes out of 100", len(seen))
	}
}
