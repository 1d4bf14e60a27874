// Package goldsync mirrors the three Gold reference tables into local
// snapshots and builds the in-memory lookup index the diff engine matches
// elab rows against.
package goldsync

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Gold source tables, exactly three, mirrored as whole sets.
const (
	TableOrdiniRossetto = "dbo.t_OrdiniRossetto"
	TableRossetto       = "dbo.t_Rossetto"
	TableEan            = "dbo.t_t_Ean"
)

var GoldTables = []string{TableOrdiniRossetto, TableRossetto, TableEan}

// TableSyncSummary is the per-table result of one resync run.
type TableSyncSummary struct {
	RowsFetched int              `json:"rows_fetched"`
	Preview     []map[string]any `json:"preview"`
}

// ArticleMaster is the typed view of one dbo.t_Rossetto snapshot row. The
// raw column map from the snapshot never travels past this constructor.
type ArticleMaster struct {
	CodArtFo  string
	CodArt    string
	DescrArt  string
	Stato     string
	DtaAggio  string
	Sett      string
	Rep       string
	Srep      string
	Ccom      string
	DescrCcom string

	// PracqRaw keeps the Gold decimal exactly as mirrored; Pracq is the
	// parsed value used for comparison.
	PracqRaw string
	Pracq    *decimal.Decimal
	Iva      *int

	PzXCrt *int
	Strato *int
	Pallet *int

	// EticEan reports whether the article's label carries the EAN
	// (Gold ETICEAN = 1). It gates the units-per-carton comparison.
	EticEan bool
}

func articleFromPayload(p map[string]any) ArticleMaster {
	pracqRaw := payloadString(p, "PRACQ")

	return ArticleMaster{
		CodArtFo:  payloadString(p, "CODARTFO", "CodArtFo"),
		CodArt:    payloadString(p, "CODART", "CodArt"),
		DescrArt:  payloadString(p, "DESCRART", "DescrArt"),
		Stato:     payloadString(p, "STATO", "Stato"),
		DtaAggio:  payloadString(p, "DTAAGGIO", "DtaAggio"),
		Sett:      payloadString(p, "SETT"),
		Rep:       payloadString(p, "REP"),
		Srep:      payloadString(p, "SREP"),
		Ccom:      payloadString(p, "CCOM", "Ccom"),
		DescrCcom: payloadString(p, "DESCRCCOM", "DescrCCOM"),
		PracqRaw:  pracqRaw,
		Pracq:     decimalFromString(pracqRaw),
		Iva:       payloadInt(p, "IVA"),
		PzXCrt:    payloadInt(p, "PZXCRT"),
		Strato:    payloadInt(p, "STRATO"),
		Pallet:    payloadInt(p, "PALLET"),
		EticEan:   intOrZero(payloadInt(p, "ETICEAN")) == 1,
	}
}

// payloadValue returns the first matching column from a snapshot payload,
// falling back to a case-insensitive lookup. The two systems disagree on
// column-name casing depending on which export produced the table.
func payloadValue(p map[string]any, keys ...string) any {
	if len(p) == 0 {
		return nil
	}
	for _, k := range keys {
		if v, ok := p[k]; ok {
			return v
		}
	}
	lower := make(map[string]string, len(p))
	for k := range p {
		lower[strings.ToLower(k)] = k
	}
	for _, k := range keys {
		if orig, ok := lower[strings.ToLower(k)]; ok {
			return p[orig]
		}
	}
	return nil
}

func payloadString(p map[string]any, keys ...string) string {
	switch v := payloadValue(p, keys...).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}

func payloadInt(p map[string]any, keys ...string) *int {
	switch v := payloadValue(p, keys...).(type) {
	case nil:
		return nil
	case float64:
		n := int(v)
		return &n
	case int64:
		n := int(v)
		return &n
	case int:
		return &v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if n, err := strconv.Atoi(s); err == nil {
			return &n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			n := int(f)
			return &n
		}
		return nil
	default:
		return nil
	}
}

func decimalFromString(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
