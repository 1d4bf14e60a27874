package intermediate_test

import (
	"reflect"
	"testing"

	"bitbucket.org/cidacdata/elab_backend/elab"
	"bitbucket.org/cidacdata/elab_backend/goldsync"
	"bitbucket.org/cidacdata/elab_backend/intermediate"
	"bitbucket.org/cidacdata/elab_backend/models"
	"github.com/shopspring/decimal"
)

func goldArticle(codArtFo string, overrides map[string]any) map[string]any {
	p := map[string]any{
		"CODARTFO": codArtFo,
		"CODART":   "9001",
		"DESCRART": "Widget Gold",
		"STATO":    "A",
		"PRACQ":    "10.0000",
		"IVA":      22,
		"PZXCRT":   12,
		"STRATO":   6,
		"PALLET":   50,
		"ETICEAN":  1,
	}
	for k, v := range overrides {
		p[k] = v
	}
	return p
}

func rowsFromElab(t *testing.T, text string) []models.ImportRow {
	t.Helper()
	var rows []models.ImportRow
	for _, p := range elab.Parse(text) {
		rows = append(rows, models.ImportRow{
			BatchId:             1,
			LineNumber:          p.LineNumber,
			CodArtFo:            p.CodArtFo,
			DescrizioneArticolo: p.DescrizioneArticolo,
			Iva:                 p.Iva,
			PrzAcq:              p.PrzAcq,
			Campo5:              p.Campo5,
			PzXCrt:              p.PzXCrt,
			CrtXStr:             p.CrtXStr,
			StrXPlt:             p.StrXPlt,
			TotColli:            p.TotColli,
			Ean:                 p.Ean,
		})
	}
	return rows
}

func TestBuildDiffs_EndToEnd(t *testing.T) {
	idx := goldsync.BuildIndex(
		[]map[string]any{goldArticle("ABC", nil)},
		nil,
	)
	rows := rowsFromElab(t, "ABC;Widget;22;10,50;;12;6;50;600;8001234567890\nXYZ;Gadget;22;5,00;;24;4;40;3840;\n")

	sets := intermediate.BuildDiffs(rows, idx)

	if len(sets.Price) != 1 {
		t.Fatalf("expected one price mismatch, got %d", len(sets.Price))
	}
	price := sets.Price[0]
	if price.GoldPrice != "10.0000" {
		t.Fatalf("gold price must be the verbatim mirrored string, got %q", price.GoldPrice)
	}
	if price.ElabPrice == nil || !price.ElabPrice.Equal(decimal.RequireFromString("10.50")) {
		t.Fatalf("elab price wrong: %v", price.ElabPrice)
	}
	if price.Azione != models.DiffActionUpdate {
		t.Fatalf("price action must be %q, got %q", models.DiffActionUpdate, price.Azione)
	}

	if len(sets.Ean) != 1 || sets.Ean[0].Ean != "8001234567890" {
		t.Fatalf("expected the unknown EAN to be reported, got %+v", sets.Ean)
	}

	// Packaging matches the gold article exactly, and the unmatched XYZ
	// row appears nowhere.
	if len(sets.Logistics) != 0 {
		t.Fatalf("expected no packaging mismatches, got %+v", sets.Logistics)
	}
}

func TestBuildDiffs_Deterministic(t *testing.T) {
	idx := goldsync.BuildIndex(
		[]map[string]any{goldArticle("ABC", nil)},
		[]map[string]any{{"EANA": "8009999999999"}},
	)
	rows := rowsFromElab(t, "ABC;Widget;22;10,50;;10;5;40;400;8001234567890\n")

	first := intermediate.BuildDiffs(rows, idx)
	second := intermediate.BuildDiffs(rows, idx)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same rows and index must produce identical sets")
	}
}

func TestBuildDiffs_PriceExactness(t *testing.T) {
	idx := goldsync.BuildIndex([]map[string]any{goldArticle("ABC", nil)}, nil)

	equal := rowsFromElab(t, "ABC;Widget;22;10,00;;12;6;50;600;\n")
	if sets := intermediate.BuildDiffs(equal, idx); len(sets.Price) != 0 {
		t.Fatalf("10,00 vs 10.0000 are the same decimal, got %+v", sets.Price)
	}

	cent := rowsFromElab(t, "ABC;Widget;22;10,01;;12;6;50;600;\n")
	if sets := intermediate.BuildDiffs(cent, idx); len(sets.Price) != 1 {
		t.Fatalf("a one-cent difference must be reported")
	}
}

func TestBuildDiffs_PriceNilSides(t *testing.T) {
	// Elab price missing.
	idx := goldsync.BuildIndex([]map[string]any{goldArticle("ABC", nil)}, nil)
	noElab := rowsFromElab(t, "ABC;Widget;22;;;12;6;50;600;\n")
	if sets := intermediate.BuildDiffs(noElab, idx); len(sets.Price) != 0 {
		t.Fatalf("missing elab price must not be a mismatch")
	}

	// Gold price missing.
	idx = goldsync.BuildIndex([]map[string]any{goldArticle("ABC", map[string]any{"PRACQ": ""})}, nil)
	rows := rowsFromElab(t, "ABC;Widget;22;10,00;;12;6;50;600;\n")
	if sets := intermediate.BuildDiffs(rows, idx); len(sets.Price) != 0 {
		t.Fatalf("missing gold price must not be a mismatch")
	}
}

func TestBuildDiffs_KnownEanNotReported(t *testing.T) {
	idx := goldsync.BuildIndex(
		[]map[string]any{goldArticle("ABC", nil)},
		[]map[string]any{{"EANA": "8001234567890"}},
	)
	rows := rowsFromElab(t, "ABC;Widget;22;10,00;;12;6;50;600;8001234567890\n")

	if sets := intermediate.BuildDiffs(rows, idx); len(sets.Ean) != 0 {
		t.Fatalf("an EAN already in the registry must not be reported")
	}
}

func TestBuildDiffs_LogisticsGating(t *testing.T) {
	// ETICEAN=0: a units-per-carton difference alone is not reported.
	idx := goldsync.BuildIndex([]map[string]any{goldArticle("ABC", map[string]any{"ETICEAN": 0})}, nil)
	pzOnly := rowsFromElab(t, "ABC;Widget;22;10,00;;10;6;50;600;\n")
	if sets := intermediate.BuildDiffs(pzOnly, idx); len(sets.Logistics) != 0 {
		t.Fatalf("pz_x_crt difference without ETICEAN must be suppressed, got %+v", sets.Logistics)
	}

	// A cartons-per-layer difference is reported regardless of ETICEAN,
	// and the record still marks every differing field.
	both := rowsFromElab(t, "ABC;Widget;22;10,00;;10;5;50;500;\n")
	sets := intermediate.BuildDiffs(both, idx)
	if len(sets.Logistics) != 1 {
		t.Fatalf("expected one packaging record, got %d", len(sets.Logistics))
	}
	rec := sets.Logistics[0]
	if rec.AggPzXCrt != "AGG" {
		t.Fatalf("pz_x_crt marker must still be set when the field differs, got %q", rec.AggPzXCrt)
	}
	if rec.AggCrtXStr != "AGG" || rec.AggStrXPlt != "" {
		t.Fatalf("markers wrong: crt=%q str=%q", rec.AggCrtXStr, rec.AggStrXPlt)
	}
	if rec.GoldCrtXStr == nil || *rec.GoldCrtXStr != 6 || rec.ElabCrtXStr == nil || *rec.ElabCrtXStr != 5 {
		t.Fatalf("record must carry both sides: %+v", rec)
	}
}

func TestBuildDiffs_LogisticsEticEan(t *testing.T) {
	idx := goldsync.BuildIndex([]map[string]any{goldArticle("ABC", nil)}, nil)
	rows := rowsFromElab(t, "ABC;Widget;22;10,00;;10;6;50;600;\n")

	sets := intermediate.BuildDiffs(rows, idx)
	if len(sets.Logistics) != 1 {
		t.Fatalf("with ETICEAN the pz_x_crt difference alone must be reported")
	}
	if sets.Logistics[0].AggPzXCrt != "AGG" || sets.Logistics[0].AggCrtXStr != "" {
		t.Fatalf("markers wrong: %+v", sets.Logistics[0])
	}
}

func TestBuildDiffs_NormalizedCodeMatch(t *testing.T) {
	idx := goldsync.BuildIndex([]map[string]any{goldArticle("7", nil)}, nil)
	rows := rowsFromElab(t, "007;Widget;22;10,50;;12;6;50;600;\n")

	sets := intermediate.BuildDiffs(rows, idx)
	if len(sets.Price) != 1 {
		t.Fatalf("leading-zero supplier code must match the gold article")
	}
	if sets.Price[0].CodArtFo != "007" {
		t.Fatalf("the record keeps the elab spelling of the code, got %q", sets.Price[0].CodArtFo)
	}
}

func TestBuildDiffs_UnmatchedRowsExcluded(t *testing.T) {
	idx := goldsync.BuildIndex([]map[string]any{goldArticle("ABC", nil)}, nil)
	rows := rowsFromElab(t, ";NoCode;22;1,00;;1;1;1;1;123\nZZZ;Unknown;22;1,00;;1;1;1;1;456\n")

	sets := intermediate.BuildDiffs(rows, idx)
	if len(sets.Price)+len(sets.Ean)+len(sets.Logistics) != 0 {
		t.Fatalf("rows without a gold counterpart must appear in no set: %+v", sets)
	}
}
