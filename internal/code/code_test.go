package code

import "testing"

func TestIsCode(t *testing.T) {
	valid := []string{"A100", "D100", "X", "RESULT1", "A1234567"}
	for _, s := range valid {
		if !IsCode(s) {
			t.Errorf("IsCode(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "a100", "1A00", "A 100", "A100.1", "A12345678"}
	for _, s := range invalid {
		if IsCode(s) {
			t.Errorf("IsCode(%q) = true, want false", s)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  a100 "); got != "A100" {
		t.Fatalf("Normalize = %q, want A100", got)
	}
	if got := Normalize("r100"); got != "R100" {
		t.Fatalf("Normalize = %q, want R100", got)
	}
}
