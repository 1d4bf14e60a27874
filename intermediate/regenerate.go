package intermediate

import (
	"context"

	"bitbucket.org/cidacdata/elab_backend/config"
	"bitbucket.org/cidacdata/elab_backend/goldsync"
	"bitbucket.org/cidacdata/elab_backend/models"
	"gorm.io/gorm"
)

// Counts reports how many records each category produced, keyed in the
// responses by the legacy query names the operators know.
type Counts struct {
	Price     int `json:"q_AggPrAcqu"`
	Ean       int `json:"q_AggiornaEan"`
	Logistics int `json:"q_AggiornamentiVari"`
}

const bulkInsertBatchSize = 1000

// Regenerate rebuilds the three diff sets of one batch from its rows and
// the Gold snapshots current at this moment. Any prior sets are replaced
// in the same transaction as the insert, so the batch never exposes a
// half-regenerated state. Re-running with unchanged inputs produces
// identical sets.
func Regenerate(ctx context.Context, batchID uint) (*Counts, error) {
	batch, err := models.GetImportBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	rows, err := models.GetBatchRows(ctx, batch.ID, "")
	if err != nil {
		return nil, err
	}

	idx, err := goldsync.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}

	sets := BuildDiffs(rows, idx)

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("batch_id = ?", batch.ID).Delete(&models.DiffPriceRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("batch_id = ?", batch.ID).Delete(&models.DiffEanRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("batch_id = ?", batch.ID).Delete(&models.DiffLogisticsRecord{}).Error; err != nil {
			return err
		}

		if len(sets.Price) > 0 {
			if err := tx.CreateInBatches(sets.Price, bulkInsertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(sets.Ean) > 0 {
			if err := tx.CreateInBatches(sets.Ean, bulkInsertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(sets.Logistics) > 0 {
			if err := tx.CreateInBatches(sets.Logistics, bulkInsertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Counts{
		Price:     len(sets.Price),
		Ean:       len(sets.Ean),
		Logistics: len(sets.Logistics),
	}, nil
}

// LoadDiffSets returns a batch's persisted diff sets in the orderings the
// legacy reports use. A positive limit caps each category (preview mode).
func LoadDiffSets(ctx context.Context, batchID uint, limit int) (*DiffSets, error) {
	if _, err := models.GetImportBatch(ctx, batchID); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var sets DiffSets

	price := db.WithContext(ctx).Where("batch_id = ?", batchID).
		Order("rep, srep, ccom, cod_art_fo")
	if limit > 0 {
		price = price.Limit(limit)
	}
	if err := price.Find(&sets.Price).Error; err != nil {
		return nil, err
	}

	ean := db.WithContext(ctx).Where("batch_id = ?", batchID).
		Order("descrizione_articolo, cod_art_fo")
	if limit > 0 {
		ean = ean.Limit(limit)
	}
	if err := ean.Find(&sets.Ean).Error; err != nil {
		return nil, err
	}

	logistics := db.WithContext(ctx).Where("batch_id = ?", batchID).
		Order("cod_art_fo")
	if limit > 0 {
		logistics = logistics.Limit(limit)
	}
	if err := logistics.Find(&sets.Logistics).Error; err != nil {
		return nil, err
	}

	return &sets, nil
}
