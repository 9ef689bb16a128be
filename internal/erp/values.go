package erp

// The ERP encodes absent fields as boolean false and relational fields as
// [id, display] pairs. These helpers normalize that loosely typed shape.

// AsString reads a string field from a record. Boolean false means absent.
func AsString(record map[string]interface{}, field string) string {
	value, ok := record[field]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return text
}

// AsFloat reads a numeric field from a record.
func AsFloat(record map[string]interface{}, field string) float64 {
	switch v := record[field].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

// AsID normalizes the integer shapes the XML-RPC decoder may produce.
func AsID(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// AsIDList decodes a list of ids (e.g. a search result or a tag id field).
func AsIDList(value interface{}) []int64 {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if id, ok := AsID(item); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Many2One reads a relational field. The ERP encodes it as [id, display] and
// as boolean false when unset.
func Many2One(record map[string]interface{}, field string) (int64, string, bool) {
	pair, ok := record[field].([]interface{})
	if !ok || len(pair) < 2 {
		return 0, "", false
	}
	id, ok := AsID(pair[0])
	if !ok {
		return 0, "", false
	}
	display, _ := pair[1].(string)
	return id, display, true
}

// AsRecords decodes the result of a read/search_read call.
func AsRecords(value interface{}) []map[string]interface{} {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]interface{}); ok {
			records = append(records, record)
		}
	}
	return records
}

// FirstRecord returns the first record of a read result, if any.
func FirstRecord(value interface{}) (map[string]interface{}, bool) {
	records := AsRecords(value)
	if len(records) == 0 {
		return nil, false
	}
	return records[0], true
}

// AsBool reads the boolean result of a write-style call.
func AsBool(value interface{}) bool {
	b, ok := value.(bool)
	return ok && b
}
