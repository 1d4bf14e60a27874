package models

import "time"

// DiffEanRecord flags an elab EAN that is missing from the Gold EAN
// registry (the legacy q_AggiornaEan result). It signals an absent code,
// not a mismatched one.
type DiffEanRecord struct {
	ID      uint `gorm:"primary_key" json:"id"`
	BatchId uint `gorm:"index;not null" json:"batch_id"`

	CodArtFo            string `gorm:"size:50;index" json:"cod_art_fo"`
	DescrizioneArticolo string `gorm:"size:255" json:"descrizione_articolo"`
	Ean                 string `gorm:"size:32;index" json:"ean"`
	CodArt              string `gorm:"size:50" json:"codart"`
	Stato               string `gorm:"size:32" json:"stato"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
