package goldsync

import "testing"

func articlePayload(codArtFo, pracq string) map[string]any {
	return map[string]any{"CODARTFO": codArtFo, "PRACQ": pracq, "DESCRART": "desc " + codArtFo}
}

func TestBuildIndex_VariantKeys(t *testing.T) {
	idx := BuildIndex([]map[string]any{articlePayload("007", "1.00")}, nil)

	for _, code := range []string{"007", "7", "0007", "7.0"} {
		if idx.Get(code) == nil {
			t.Fatalf("lookup by %q must reach article indexed under 007", code)
		}
	}
	if idx.Get("70") != nil {
		t.Fatalf("70 must not match 007")
	}
}

func TestBuildIndex_LastRowWins(t *testing.T) {
	idx := BuildIndex([]map[string]any{
		articlePayload("7", "1.00"),
		articlePayload("007", "2.00"),
	}, nil)

	art := idx.Get("7")
	if art == nil {
		t.Fatalf("expected a match for 7")
	}
	if art.CodArtFo != "007" {
		t.Fatalf("later snapshot row must win the key, got %q", art.CodArtFo)
	}
}

func TestBuildIndex_EmptyCodeSkipped(t *testing.T) {
	idx := BuildIndex([]map[string]any{articlePayload("  ", "1.00")}, nil)
	if len(idx.byCode) != 0 {
		t.Fatalf("blank supplier code must not be indexed, got %d keys", len(idx.byCode))
	}
}

func TestBuildIndex_Eans(t *testing.T) {
	idx := BuildIndex(nil, []map[string]any{
		{"EANA": " 8001234567890 "},
		{"EANA": ""},
		{"Ean": "8009999999999"},
	})

	if !idx.HasEan("8001234567890") {
		t.Fatalf("trimmed EAN must be known")
	}
	if !idx.HasEan(" 8009999999999 ") {
		t.Fatalf("lookup must trim before matching")
	}
	if idx.HasEan("") {
		t.Fatalf("empty EAN must never be registered")
	}
}

func TestGet_VariantOrder(t *testing.T) {
	// Both the literal code and its stripped form are indexed; the literal
	// variant is tried first.
	idx := BuildIndex([]map[string]any{
		articlePayload("07", "1.00"),
		articlePayload("7", "2.00"),
	}, nil)

	art := idx.Get("07")
	if art == nil || art.CodArtFo != "07" {
		t.Fatalf("exact key must win over stripped variant, got %+v", art)
	}
}
