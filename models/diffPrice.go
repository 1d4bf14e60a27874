package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiffPriceRecord is one purchase-price mismatch between the elab file and
// Gold for a batch (the legacy q_AggPrAcqu result). GoldPrice keeps the
// Gold PRACQ string verbatim so no float rounding can creep into reports.
type DiffPriceRecord struct {
	ID      uint `gorm:"primary_key" json:"id"`
	BatchId uint `gorm:"index;not null" json:"batch_id"`

	DtaAggio  string           `gorm:"size:32" json:"dta_aggio"`
	CodArtFo  string           `gorm:"size:50;index" json:"cod_art_fo"`
	CodArt    string           `gorm:"size:50" json:"codart"`
	DescrArt  string           `gorm:"size:255" json:"descrart"`
	Stato     string           `gorm:"size:32" json:"stato"`
	GoldPrice string           `gorm:"size:64" json:"gold_price"`
	Azione    string           `gorm:"size:8" json:"azione"`
	ElabPrice *decimal.Decimal `gorm:"type:decimal(12,4)" json:"elab_price"`

	Sett      string `gorm:"size:32" json:"sett"`
	Rep       string `gorm:"size:32" json:"rep"`
	Srep      string `gorm:"size:32" json:"srep"`
	Ccom      string `gorm:"size:32" json:"ccom"`
	DescrCcom string `gorm:"size:255" json:"descr_ccom"`

	ElabIva *int `json:"elab_iva"`
	GoldIva *int `json:"gold_iva"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// DiffActionUpdate is the marker the downstream update procedure expects.
const DiffActionUpdate = "Agg"
