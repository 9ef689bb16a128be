package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the immutable application configuration, built once at startup
// and passed into every component. No package reads the environment after Load.
type Config struct {
	Env      string
	HTTPAddr string

	// ERP (Odoo-style XML-RPC backend)
	ERPURL      string
	ERPDatabase string
	ERPUsername string
	ERPPassword string

	// CRM (Clientify-style REST API)
	CRMEnabled bool
	CRMBaseURL string
	CRMAPIKey  string

	// VIES VAT validation service
	VIESURL string

	// Event identity. EventTag is the umbrella marker written to every
	// record; EventTagVariant is the date-qualified tag added to newly
	// created CRM contacts.
	EventTag        string
	EventTagVariant string

	// ERP sales configuration
	SalesTeamID         int64
	PricelistOrderID    int64
	PricelistMayorista  int64
	PricelistDefault    int64
	TagMayoristaID      int64
	TagClinicaDentalID  int64
	TagLaboratorioID    int64
	TagEstudianteID     int64
	TagOtrosID          int64
	MandatoryTagIDs     []int64
	WarehouseID         int64
	PaymentTermCashID   int64
	PaymentTermCardID   int64
	EmailTemplateID     int64
	FiscalPosDomesticID int64
	FiscalPosIntraEUID  int64

	// Per-event price overrides (JSON file, product code -> unit price)
	PriceOverridesPath string

	// Customer flow token (replaces the old cookie session)
	FlowTokenSecret string
	FlowTokenTTL    time.Duration

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	mandatoryTags, err := parseIDList(getEnv("MANDATORY_TAG_IDS", "319,403"))
	if err != nil {
		return nil, fmt.Errorf("MANDATORY_TAG_IDS: %w", err)
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		ERPURL:      getEnv("ERP_URL", ""),
		ERPDatabase: getEnv("ERP_DB", ""),
		ERPUsername: getEnv("ERP_USERNAME", ""),
		ERPPassword: getEnv("ERP_PASSWORD", ""),

		CRMEnabled: strings.EqualFold(getEnv("CRM_ENABLED", "true"), "true"),
		CRMBaseURL: getEnv("CRM_BASE_URL", "https://api.clientify.net/v1/"),
		CRMAPIKey:  getEnv("CRM_API_KEY", ""),

		VIESURL: getEnv("VIES_URL", "https://ec.europa.eu/taxation_customs/vies/services/checkVatService"),

		EventTag:        getEnv("EVENT_TAG", "Expodental 2026"),
		EventTagVariant: getEnv("EVENT_TAG_VARIANT", "Expodental-2026"),

		SalesTeamID:         mustID(getEnv("SALES_TEAM_ID", "22")),
		PricelistOrderID:    mustID(getEnv("PRICELIST_ORDER_ID", "48")),
		PricelistMayorista:  mustID(getEnv("PRICELIST_MAYORISTA_ID", "32")),
		PricelistDefault:    mustID(getEnv("PRICELIST_DEFAULT_ID", "33")),
		TagMayoristaID:      mustID(getEnv("TAG_MAYORISTA_ID", "2")),
		TagClinicaDentalID:  mustID(getEnv("TAG_CLINICA_DENTAL_ID", "3")),
		TagLaboratorioID:    mustID(getEnv("TAG_LABORATORIO_ID", "4")),
		TagEstudianteID:     mustID(getEnv("TAG_ESTUDIANTE_ID", "5")),
		TagOtrosID:          mustID(getEnv("TAG_OTROS_ID", "15")),
		MandatoryTagIDs:     mandatoryTags,
		WarehouseID:         mustID(getEnv("WAREHOUSE_ID", "19")),
		PaymentTermCashID:   mustID(getEnv("PAYMENT_TERM_CASH_ID", "33")),
		PaymentTermCardID:   mustID(getEnv("PAYMENT_TERM_CARD_ID", "34")),
		EmailTemplateID:     mustID(getEnv("EMAIL_TEMPLATE_ID", "162")),
		FiscalPosDomesticID: mustID(getEnv("FISCAL_POSITION_DOMESTIC_ID", "1")),
		FiscalPosIntraEUID:  mustID(getEnv("FISCAL_POSITION_INTRA_EU_ID", "4")),

		PriceOverridesPath: getEnv("PRICE_OVERRIDES_PATH", "price_list_feria.json"),

		FlowTokenSecret: getEnv("FLOW_TOKEN_SECRET", ""),
		FlowTokenTTL:    mustDuration(getEnv("FLOW_TOKEN_TTL", "2h")),

		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
	}

	if cfg.ERPURL == "" || cfg.ERPDatabase == "" || cfg.ERPUsername == "" || cfg.ERPPassword == "" {
		return nil, fmt.Errorf("ERP_URL, ERP_DB, ERP_USERNAME and ERP_PASSWORD are required")
	}
	if cfg.CRMEnabled && cfg.CRMAPIKey == "" {
		return nil, fmt.Errorf("CRM_API_KEY is required when CRM_ENABLED is true")
	}
	if cfg.FlowTokenSecret == "" {
		return nil, fmt.Errorf("FLOW_TOKEN_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

// ClassificationTagID maps a classification label to its ERP tag id.
// Unknown labels fall back to the "otros" tag.
func (c *Config) ClassificationTagID(classification string) int64 {
	switch classification {
	case "mayorista":
		return c.TagMayoristaID
	case "clinica_dental":
		return c.TagClinicaDentalID
	case "laboratorio":
		return c.TagLaboratorioID
	case "estudiante":
		return c.TagEstudianteID
	default:
		return c.TagOtrosID
	}
}

// ClassificationForTagID is the reverse mapping, used when recovering a
// customer's classification from the tag ids stored in the ERP.
func (c *Config) ClassificationForTagID(tagID int64) (string, bool) {
	switch tagID {
	case c.TagMayoristaID:
		return "mayorista", true
	case c.TagClinicaDentalID:
		return "clinica_dental", true
	case c.TagLaboratorioID:
		return "laboratorio", true
	case c.TagEstudianteID:
		return "estudiante", true
	case c.TagOtrosID:
		return "otros", true
	default:
		return "", false
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustID(value string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func parseIDList(value string) ([]int64, error) {
	parts := splitCSV(value)
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
