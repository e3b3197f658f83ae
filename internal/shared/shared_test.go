package shared

import "testing"

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty identifiers")
	}

	if a == b {
		t.Error("expected distinct identifiers")
	}

	if len(a) != 36 {
		t.Errorf("expected canonical UUID length 36, got %d", len(a))
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(nil)
	if logger == nil {
		t.Fatal("expected logger")
	}

	child := WithLogger(logger, "component", "test")
	if child == nil {
		t.Fatal("expected child logger")
	}
}
