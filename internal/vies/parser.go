package vies

import "strings"

// The address returned by the service is free text with no contractual shape.
// Parsing is positional and known to be fragile for non-standard formats:
// line 0 is the street, line 1 the city, and the last line supplies the zip
// (first whitespace-separated token) only when three or more lines exist.
// Unknown formats degrade to empty fields, never to errors.

// SplitVATID splits a candidate tax id into an upper-cased 2-letter country
// code and the remaining number. Ids shorter than 3 characters are rejected.
func SplitVATID(vatID string) (countryCode, number string, ok bool) {
	trimmed := strings.TrimSpace(vatID)
	if len(trimmed) < 3 {
		return "", "", false
	}
	return strings.ToUpper(trimmed[:2]), trimmed[2:], true
}

// ParseAddress splits a newline-delimited postal address into street, city
// and zip following the positional rules above.
func ParseAddress(address string) (street, city, zip string) {
	lines := strings.Split(address, "\n")

	if len(lines) > 0 {
		street = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		city = strings.TrimSpace(lines[1])
	}
	if len(lines) > 2 {
		last := strings.TrimSpace(lines[len(lines)-1])
		if last != "" {
			zip = strings.Fields(last)[0]
		}
	}

	return street, city, zip
}

// CountryDisplayName maps the country codes seen at the event to display
// names. Other codes yield an empty name.
func CountryDisplayName(code string) string {
	switch code {
	case "PT":
		return "Portugal"
	case "ES":
		return "Spain"
	case "IT":
		return "Italy"
	case "FR":
		return "France"
	default:
		return ""
	}
}
