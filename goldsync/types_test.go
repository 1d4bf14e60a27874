package goldsync

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPayloadValue_CaseInsensitive(t *testing.T) {
	p := map[string]any{"CodArtFo": "A1", "pracq": "9.9900"}

	if got := payloadString(p, "CODARTFO"); got != "A1" {
		t.Fatalf("expected case-insensitive hit A1, got %q", got)
	}
	if got := payloadString(p, "PRACQ"); got != "9.9900" {
		t.Fatalf("expected 9.9900, got %q", got)
	}
	if got := payloadString(p, "MISSING"); got != "" {
		t.Fatalf("expected empty string for missing column, got %q", got)
	}
}

func TestPayloadString_NumericColumns(t *testing.T) {
	// JSON round trips turn numeric columns into float64.
	p := map[string]any{"CODART": float64(7), "REP": int64(12)}
	if got := payloadString(p, "CODART"); got != "7" {
		t.Fatalf("expected \"7\" from float64 code, got %q", got)
	}
	if got := payloadString(p, "REP"); got != "12" {
		t.Fatalf("expected \"12\" from int64, got %q", got)
	}
}

func TestPayloadInt_Forms(t *testing.T) {
	cases := []struct {
		in       any
		expected *int
	}{
		{nil, nil},
		{float64(12), intp(12)},
		{int64(6), intp(6)},
		{"50", intp(50)},
		{"12.0", intp(12)},
		{"", nil},
		{"boh", nil},
	}
	for _, tc := range cases {
		got := payloadInt(map[string]any{"X": tc.in}, "X")
		if (got == nil) != (tc.expected == nil) {
			t.Fatalf("payloadInt(%v) nil mismatch: got %v want %v", tc.in, got, tc.expected)
		}
		if got != nil && *got != *tc.expected {
			t.Fatalf("payloadInt(%v) expected %d, got %d", tc.in, *tc.expected, *got)
		}
	}
}

func TestArticleFromPayload(t *testing.T) {
	p := map[string]any{
		"CODARTFO":  "007",
		"CODART":    "1234",
		"DESCRART":  "Widget",
		"STATO":     "A",
		"DTAAGGIO":  "2025-01-31",
		"SETT":      "S1",
		"REP":       "R1",
		"SREP":      "SR1",
		"CCOM":      "C9",
		"DESCRCCOM": "Commercial",
		"PRACQ":     "10.0000",
		"IVA":       float64(22),
		"PZXCRT":    float64(12),
		"STRATO":    float64(6),
		"PALLET":    float64(50),
		"ETICEAN":   float64(1),
	}

	art := articleFromPayload(p)
	if art.CodArtFo != "007" || art.CodArt != "1234" || art.DescrArt != "Widget" {
		t.Fatalf("identity fields wrong: %+v", art)
	}
	if art.PracqRaw != "10.0000" {
		t.Fatalf("raw gold price must be preserved verbatim, got %q", art.PracqRaw)
	}
	if art.Pracq == nil || !art.Pracq.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("parsed gold price wrong: %v", art.Pracq)
	}
	if art.Iva == nil || *art.Iva != 22 {
		t.Fatalf("IVA wrong: %v", art.Iva)
	}
	if art.PzXCrt == nil || *art.PzXCrt != 12 || art.Strato == nil || *art.Strato != 6 || art.Pallet == nil || *art.Pallet != 50 {
		t.Fatalf("packaging fields wrong: %+v", art)
	}
	if !art.EticEan {
		t.Fatalf("ETICEAN=1 must set EticEan")
	}
}

func TestArticleFromPayload_MissingColumns(t *testing.T) {
	art := articleFromPayload(map[string]any{"CODARTFO": "X"})
	if art.Pracq != nil || art.Iva != nil || art.PzXCrt != nil {
		t.Fatalf("missing columns must stay nil: %+v", art)
	}
	if art.EticEan {
		t.Fatalf("missing ETICEAN must read as false")
	}
}

func intp(n int) *int { return &n }
