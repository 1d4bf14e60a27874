// Package intermediate derives the three discrepancy sets of an import
// batch: purchase-price mismatches, EANs missing from the Gold registry,
// and packaging mismatches. They are the Go equivalents of the legacy
// Access queries q_AggPrAcqu, q_AggiornaEan and q_AggiornamentiVari.
package intermediate

import (
	"strings"

	"bitbucket.org/cidacdata/elab_backend/goldsync"
	"bitbucket.org/cidacdata/elab_backend/models"
)

// DiffSets carries the three derived result sets of one batch.
type DiffSets struct {
	Price     []models.DiffPriceRecord
	Ean       []models.DiffEanRecord
	Logistics []models.DiffLogisticsRecord
}

const markerAgg = "AGG"

// BuildDiffs evaluates every import row against the Gold index and
// returns the three disjoint result sets. Rows with an empty supplier
// code, or without a Gold counterpart under any normalized code variant,
// are not comparable and appear in none of the sets (the legacy
// inner-join semantics). The function is pure: the same rows and the same
// index always produce identical sets, in row order.
func BuildDiffs(rows []models.ImportRow, idx *goldsync.ArticleIndex) DiffSets {
	var sets DiffSets

	for _, row := range rows {
		codArtFo := strings.TrimSpace(row.CodArtFo)
		if codArtFo == "" {
			continue
		}
		art := idx.Get(codArtFo)
		if art == nil {
			continue
		}

		// Price: both sides known and exactly unequal. No epsilon; these
		// are decimals, not floats.
		if art.Pracq != nil && row.PrzAcq != nil && !art.Pracq.Equal(*row.PrzAcq) {
			sets.Price = append(sets.Price, models.DiffPriceRecord{
				BatchId:   row.BatchId,
				DtaAggio:  art.DtaAggio,
				CodArtFo:  codArtFo,
				CodArt:    art.CodArt,
				DescrArt:  art.DescrArt,
				Stato:     art.Stato,
				GoldPrice: art.PracqRaw,
				Azione:    models.DiffActionUpdate,
				ElabPrice: row.PrzAcq,
				Sett:      art.Sett,
				Rep:       art.Rep,
				Srep:      art.Srep,
				Ccom:      art.Ccom,
				DescrCcom: art.DescrCcom,
				ElabIva:   row.Iva,
				GoldIva:   art.Iva,
			})
		}

		// EAN: the elab file carries a code the Gold registry lacks.
		ean := strings.TrimSpace(row.Ean)
		if ean != "" && !idx.HasEan(ean) {
			sets.Ean = append(sets.Ean, models.DiffEanRecord{
				BatchId:             row.BatchId,
				CodArtFo:            codArtFo,
				DescrizioneArticolo: row.DescrizioneArticolo,
				Ean:                 ean,
				CodArt:              art.CodArt,
				Stato:               art.Stato,
			})
		}

		// Logistics: three independent nullable-aware comparisons. The
		// units-per-carton difference only counts when the label carries
		// the EAN (ETICEAN); the other two multipliers are ungated.
		diffPzXCrt := intsDiffer(row.PzXCrt, art.PzXCrt)
		diffCrtXStr := intsDiffer(row.CrtXStr, art.Strato)
		diffStrXPlt := intsDiffer(row.StrXPlt, art.Pallet)

		if (diffPzXCrt && art.EticEan) || diffCrtXStr || diffStrXPlt {
			sets.Logistics = append(sets.Logistics, models.DiffLogisticsRecord{
				BatchId:             row.BatchId,
				CodArtFo:            codArtFo,
				CodArt:              art.CodArt,
				DescrizioneArticolo: row.DescrizioneArticolo,
				Ean:                 ean,
				Stato:               art.Stato,
				GoldPzXCrt:          art.PzXCrt,
				AggPzXCrt:           marker(diffPzXCrt),
				ElabPzXCrt:          row.PzXCrt,
				GoldCrtXStr:         art.Strato,
				AggCrtXStr:          marker(diffCrtXStr),
				ElabCrtXStr:         row.CrtXStr,
				GoldStrXPlt:         art.Pallet,
				AggStrXPlt:          marker(diffStrXPlt),
				ElabStrXPlt:         row.StrXPlt,
			})
		}
	}

	return sets
}

// intsDiffer is the nullable-aware comparison: a field with an unknown
// side is neither equal nor different.
func intsDiffer(a, b *int) bool {
	return a != nil && b != nil && *a != *b
}

func marker(needsUpdate bool) string {
	if needsUpdate {
		return markerAgg
	}
	return ""
}
