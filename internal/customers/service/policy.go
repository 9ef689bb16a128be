package service

import (
	"strings"

	"expodesk_backend/platform/config"
)

// partnerTagIDs returns the classification tag followed by the tags every
// event customer carries.
func partnerTagIDs(cfg *config.Config, classification string) []int64 {
	ids := make([]int64, 0, 1+len(cfg.MandatoryTagIDs))
	ids = append(ids, cfg.ClassificationTagID(classification))
	ids = append(ids, cfg.MandatoryTagIDs...)
	return ids
}

// pricelistFor selects the wholesale pricelist for mayorista customers and
// the default pricelist for everyone else.
func pricelistFor(cfg *config.Config, classificationTagID int64) int64 {
	if classificationTagID == cfg.TagMayoristaID {
		return cfg.PricelistMayorista
	}
	return cfg.PricelistDefault
}

// persistableTaxID decides whether a tax id is stored on the customer record.
// Only ids of at least four characters whose first two characters are letters
// (a country prefix) are kept; anything else clears the stored value.
func persistableTaxID(vatID string) (string, bool) {
	trimmed := strings.TrimSpace(vatID)
	if len(trimmed) < 4 {
		return "", false
	}
	if !isLetter(trimmed[0]) || !isLetter(trimmed[1]) {
		return "", false
	}
	return trimmed, true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
