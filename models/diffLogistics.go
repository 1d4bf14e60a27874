package models

import "time"

// DiffLogisticsRecord is one packaging mismatch between the elab file and
// Gold (the legacy q_AggiornamentiVari result): units per carton, cartons
// per layer, layers per pallet. Each triple carries both sides plus an
// "Agg" marker when that field needs updating; the record exists when at
// least one marker is set.
type DiffLogisticsRecord struct {
	ID      uint `gorm:"primary_key" json:"id"`
	BatchId uint `gorm:"index;not null" json:"batch_id"`

	CodArtFo            string `gorm:"size:50;index" json:"cod_art_fo"`
	CodArt              string `gorm:"size:50" json:"codart"`
	DescrizioneArticolo string `gorm:"size:255" json:"descrizione_articolo"`
	Ean                 string `gorm:"size:32" json:"ean"`
	Stato               string `gorm:"size:32" json:"stato"`

	GoldPzXCrt *int   `json:"gold_pz_x_crt"`
	AggPzXCrt  string `gorm:"size:8" json:"agg_pz_x_crt"`
	ElabPzXCrt *int   `json:"elab_pz_x_crt"`

	GoldCrtXStr *int   `json:"gold_crt_x_str"`
	AggCrtXStr  string `gorm:"size:8" json:"agg_crt_x_str"`
	ElabCrtXStr *int   `json:"elab_crt_x_str"`

	GoldStrXPlt *int   `json:"gold_str_x_plt"`
	AggStrXPlt  string `gorm:"size:8" json:"agg_str_x_plt"`
	ElabStrXPlt *int   `json:"elab_str_x_plt"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
