package models

import (
	"context"
	"strings"

	"bitbucket.org/cidacdata/elab_backend/config"
	"bitbucket.org/cidacdata/elab_backend/elab"
	"github.com/shopspring/decimal"
)

// ImportRow is one parsed line of an elab file. The original line is kept
// for audit; the ten typed fields mirror the file's column layout. Rows
// are immutable after bulk insert and live exactly as long as their batch.
type ImportRow struct {
	ID         uint   `gorm:"primary_key" json:"id"`
	BatchId    uint   `gorm:"index;not null" json:"batch_id"`
	LineNumber int    `gorm:"not null" json:"line_number"`
	RawLine    string `gorm:"type:text" json:"raw_line"`

	CodArtFo            string           `gorm:"size:50;index" json:"cod_art_fo"`
	DescrizioneArticolo string           `gorm:"size:255" json:"descrizione_articolo"`
	Iva                 *int             `json:"iva"`
	PrzAcq              *decimal.Decimal `gorm:"type:decimal(12,4)" json:"prz_acq"`
	Campo5              *decimal.Decimal `gorm:"type:decimal(12,4)" json:"campo5"`
	PzXCrt              *int             `json:"pz_x_crt"`
	CrtXStr             *int             `json:"crt_x_str"`
	StrXPlt             *int             `json:"str_x_plt"`
	TotColli            *int             `json:"tot_colli"`
	Ean                 string           `gorm:"size:32" json:"ean"`
}

func importRowFromParsed(batchID uint, p elab.ParsedRow) ImportRow {
	return ImportRow{
		BatchId:             batchID,
		LineNumber:          p.LineNumber,
		RawLine:             p.RawLine,
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
	}
}

// GetBatchRows returns a batch's rows in line order. A non-empty q filters
// on article code, description or EAN (substring match, the dashboard's
// search box).
func GetBatchRows(ctx context.Context, batchID uint, q string) ([]ImportRow, error) {
	db := config.GetDB()

	query := db.WithContext(ctx).Where("batch_id = ?", batchID)
	q = strings.TrimSpace(q)
	if q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"cod_art_fo LIKE ? OR descrizione_articolo LIKE ? OR ean LIKE ?",
			like, like, like,
		)
	}

	var rows []ImportRow
	if err := query.Order("line_number ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
