package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"expodesk_backend/platform/logger"
)

func TestLoadLowercasesCodes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prices.json")
	if err := os.WriteFile(path, []byte(`{"REF-100": 12.50, "ref-200": 8}`), 0o600); err != nil {
		t.Fatal(err)
	}

	table := Load(path, logger.New("development"))

	price, ok := table.UnitPrice("ref-100")
	if !ok || price.String() != "12.5" {
		t.Fatalf("expected 12.5 for ref-100, got %v (%v)", price, ok)
	}
	if _, ok := table.UnitPrice("REF-200"); !ok {
		t.Fatal("lookup must be case-insensitive")
	}
}

func TestLoadMissingFileYieldsEmptyTable(t *testing.T) {
	table := Load(filepath.Join(t.TempDir(), "absent.json"), logger.New("development"))
	if _, ok := table.UnitPrice("ref-100"); ok {
		t.Fatal("empty table must not resolve prices")
	}
}

func TestLoadMalformedFileYieldsEmptyTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prices.json")
	if err := os.WriteFile(path, []byte(`not json`), 0o600); err != nil {
		t.Fatal(err)
	}

	table := Load(path, logger.New("development"))
	if _, ok := table.UnitPrice("ref-100"); ok {
		t.Fatal("malformed file must not yield prices")
	}
}
