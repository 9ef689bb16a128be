package phone

import "testing"

func TestNormalizeE164Spanish(t *testing.T) {
	got := NormalizeE164("612 34 56 78")
	if got != "+34612345678" {
		t.Fatalf("expected +34612345678, got %q", got)
	}
}

func TestNormalizeE164KeepsUnparseable(t *testing.T) {
	got := NormalizeE164("  ext. 42  ")
	if got != "ext. 42" {
		t.Fatalf("expected trimmed input back, got %q", got)
	}
}

func TestNormalizeE164Empty(t *testing.T) {
	if NormalizeE164("   ") != "" {
		t.Fatal("expected empty output for whitespace input")
	}
}
