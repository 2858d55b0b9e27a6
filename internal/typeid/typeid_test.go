package typeid

import (
	"strings"
	"testing"
)

func TestNewIDsCarryPrefix(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"shape", NewShapeID, PrefixShape},
		{"node", NewNodeID, PrefixNode},
		{"board", NewBoardID, PrefixBoard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.gen()
			if !strings.HasPrefix(id, tt.prefix+"_") {
				t.Errorf("id %q does not start with %q", id, tt.prefix+"_")
			}
			if err := Validate(id, tt.prefix); err != nil {
				t.Errorf("Validate(%q, %q) = %v, want nil", id, tt.prefix, err)
			}
		})
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewNodeID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = true
	}
}

func TestValidateRejectsWrongPrefix(t *testing.T) {
	id := NewShapeID()
	if err := Validate(id, PrefixBoard); err == nil {
		t.Errorf("Validate(%q, %q) = nil, want error", id, PrefixBoard)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := Validate("not an id", PrefixBoard); err == nil {
		t.Error("Validate(garbage) = nil, want error")
	}
}
