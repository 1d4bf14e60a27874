package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/cidacdata/elab_backend/config"
	"bitbucket.org/cidacdata/elab_backend/elab"
	"bitbucket.org/cidacdata/elab_backend/utils"
	"gorm.io/gorm"
)

// ImportBatch is one uploaded elab file. The decoded text is kept verbatim
// so a batch can always be re-parsed and audited. ImportDir and
// ImportSavedName point at the optional server-side copy of the upload.
type ImportBatch struct {
	ID              uint      `gorm:"primary_key" json:"id"`
	Filename        string    `gorm:"size:255;not null" json:"filename"`
	UploadedAt      time.Time `gorm:"autoCreateTime;index" json:"uploaded_at"`
	RawContent      string    `gorm:"type:longtext" json:"-"`
	ImportDir       string    `gorm:"size:500" json:"import_dir"`
	ImportSavedName string    `gorm:"size:255" json:"import_saved_name"`
}

// BatchSummary is the flat shape handed to the rendering layer.
type BatchSummary struct {
	ID         uint      `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	RowCount   int64     `json:"row_count"`
}

const bulkInsertBatchSize = 1000

// CreateImportBatch decodes and parses the uploaded bytes and persists the
// batch together with all of its rows in one transaction. An empty payload
// is the only hard failure; individual field errors degrade to NULLs at
// parse time.
func CreateImportBatch(ctx context.Context, filename string, raw []byte) (*ImportBatch, int, error) {
	if len(raw) == 0 {
		return nil, 0, errors.New("uploaded file is empty")
	}

	text := elab.Decode(raw)
	parsed := elab.Parse(text)

	batch := ImportBatch{
		Filename:   filename,
		RawContent: text,
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}
		rows := make([]ImportRow, 0, len(parsed))
		for _, p := range parsed {
			rows = append(rows, importRowFromParsed(batch.ID, p))
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, bulkInsertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	// Server-side copy of the original upload. Failure to copy never fails
	// the import; the batch simply keeps empty storage metadata.
	if dir, savedName, copyErr := utils.SaveImportFileCopy(batch.ID, filename, raw); copyErr == nil {
		batch.ImportDir = dir
		batch.ImportSavedName = savedName
		_ = db.WithContext(ctx).Model(&ImportBatch{}).Where("id = ?", batch.ID).
			Updates(map[string]interface{}{"import_dir": dir, "import_saved_name": savedName}).Error
	} else {
		config.LogError(config.GetLogger(), "importBatch.go", "CreateImportBatch", "SaveImportFileCopy", batch.ID, copyErr)
	}

	return &batch, len(parsed), nil
}

// GetImportBatch fetches one batch (may return ErrorRecordNotFound).
func GetImportBatch(ctx context.Context, id uint) (*ImportBatch, error) {
	db := config.GetDB()
	var batch ImportBatch
	if err := db.WithContext(ctx).First(&batch, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &batch, nil
}

// ListImportBatches returns summaries of the most recent batches, newest
// first, with their row counts.
func ListImportBatches(ctx context.Context, limit int) ([]BatchSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	db := config.GetDB()

	var batches []ImportBatch
	if err := db.WithContext(ctx).Order("uploaded_at DESC").Limit(limit).Find(&batches).Error; err != nil {
		return nil, err
	}

	out := make([]BatchSummary, 0, len(batches))
	for _, b := range batches {
		var count int64
		if err := db.WithContext(ctx).Model(&ImportRow{}).Where("batch_id = ?", b.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		out = append(out, BatchSummary{
			ID:         b.ID,
			Filename:   b.Filename,
			UploadedAt: b.UploadedAt,
			RowCount:   count,
		})
	}
	return out, nil
}

// DeleteImportBatch removes the batch, its rows and all three diff result
// sets in one transaction. Other batches and the Gold snapshots are never
// touched.
func DeleteImportBatch(ctx context.Context, id uint) error {
	db := config.GetDB()

	var batch ImportBatch
	if err := db.WithContext(ctx).First(&batch, id).Error; err != nil {
		return utils.ErrorRecordNotFound
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("batch_id = ?", id).Delete(&DiffPriceRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("batch_id = ?", id).Delete(&DiffEanRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("batch_id = ?", id).Delete(&DiffLogisticsRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("batch_id = ?", id).Delete(&ImportRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ImportBatch{}, id).Error
	})
}
