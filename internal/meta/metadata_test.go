package meta

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	ok := New(map[string]string{"source": "import", "batch": "2024-06"})
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tooMany := Metadata{}
	for i := 0; i < MaxPairs+1; i++ {
		tooMany[strings.Repeat("k", i+1)] = "v"
	}
	if err := tooMany.Validate(); err == nil {
		t.Fatal("expected error for too many pairs")
	}
	if err := (Metadata{"": "v"}).Validate(); err == nil {
		t.Fatal("expected error for empty key")
	}
	if err := (Metadata{strings.Repeat("k", MaxKeyLen+1): "v"}).Validate(); err == nil {
		t.Fatal("expected error for oversized key")
	}
	if err := (Metadata{"k": strings.Repeat("v", MaxValLen+1)}).Validate(); err == nil {
		t.Fatal("expected error for oversized value")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := Metadata{"source": "import"}
	cp := orig.Clone()
	cp["source"] = "manual"
	if orig["source"] != "import" {
		t.Fatal("Clone aliased the original map")
	}
	if got := Metadata(nil).Clone(); got == nil {
		t.Fatal("Clone of nil should return an empty map")
	}
}
