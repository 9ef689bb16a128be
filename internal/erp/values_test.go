package erp

import "testing"

func TestAsStringFalseMeansAbsent(t *testing.T) {
	record := map[string]interface{}{
		"email": false,
		"name":  "Clinica Sol",
	}

	if got := AsString(record, "email"); got != "" {
		t.Fatalf("expected empty string for false field, got %q", got)
	}
	if got := AsString(record, "name"); got != "Clinica Sol" {
		t.Fatalf("expected name, got %q", got)
	}
	if got := AsString(record, "missing"); got != "" {
		t.Fatalf("expected empty string for missing field, got %q", got)
	}
}

func TestMany2One(t *testing.T) {
	record := map[string]interface{}{
		"partner_id": []interface{}{int64(7), "Clinica Sol"},
		"state_id":   false,
	}

	id, display, ok := Many2One(record, "partner_id")
	if !ok || id != 7 || display != "Clinica Sol" {
		t.Fatalf("unexpected decode: %d %q %v", id, display, ok)
	}

	if _, _, ok := Many2One(record, "state_id"); ok {
		t.Fatal("expected false field to decode as unset")
	}
}

func TestAsIDList(t *testing.T) {
	ids := AsIDList([]interface{}{int64(2), int64(319), "bogus", int64(403)})
	if len(ids) != 3 || ids[0] != 2 || ids[1] != 319 || ids[2] != 403 {
		t.Fatalf("unexpected ids: %v", ids)
	}

	if AsIDList(false) != nil {
		t.Fatal("expected nil for non-list value")
	}
}

func TestFirstRecord(t *testing.T) {
	value := []interface{}{
		map[string]interface{}{"id": int64(1)},
		map[string]interface{}{"id": int64(2)},
	}

	record, ok := FirstRecord(value)
	if !ok {
		t.Fatal("expected a record")
	}
	if id, _ := AsID(record["id"]); id != 1 {
		t.Fatalf("expected first record, got id %d", id)
	}

	if _, ok := FirstRecord([]interface{}{}); ok {
		t.Fatal("expected no record for empty result")
	}
}
