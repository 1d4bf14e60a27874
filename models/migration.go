package models

import (
	"log"

	"bitbucket.org/cidacdata/elab_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&ImportBatch{}, &ImportRow{},
		&GoldTableSnapshot{},
		&DiffPriceRecord{}, &DiffEanRecord{}, &DiffLogisticsRecord{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
