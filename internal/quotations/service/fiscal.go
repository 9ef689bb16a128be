package service

import (
	"context"

	"expodesk_backend/internal/vies"
)

// Warnings attached to a quotation when domestic VAT is applied as a
// fallback.
const (
	warnTaxIDInvalid    = "tax id is not valid, domestic VAT applied"
	warnTaxIDUnverified = "tax id could not be verified, domestic VAT applied"
)

// deriveFiscalPosition decides the tax treatment of a quotation from the
// customer's tax id. Spanish ids and ids too short to carry a country prefix
// get the domestic position without a registry call. Other EU ids are checked
// against the registry: a valid id gets the intra-EU position, an invalid
// one falls back to domestic with a warning, and a registry outage also
// falls back to domestic with a warning. The warning is user-visible either
// way; the request never fails on the registry's account.
func (s *Service) deriveFiscalPosition(ctx context.Context, vatID string) (positionID int64, warning string) {
	countryCode, number, ok := vies.SplitVATID(vatID)
	if !ok || countryCode == "ES" {
		return s.cfg.FiscalPosDomesticID, ""
	}

	result, err := s.vat.CheckVAT(ctx, countryCode, number)
	if err != nil {
		s.log.RemoteCallError("vies", "deriveFiscalPosition", err)
		return s.cfg.FiscalPosDomesticID, warnTaxIDUnverified
	}
	if result.Valid {
		return s.cfg.FiscalPosIntraEUID, ""
	}
	return s.cfg.FiscalPosDomesticID, warnTaxIDInvalid
}
