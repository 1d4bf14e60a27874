package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bitbucket.org/cidacdata/elab_backend/config"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GoldTableSnapshot is one locally mirrored row of a Gold source table.
// The payload is the raw column map with every cell converted to a
// JSON-safe scalar (decimals as strings so price precision survives).
// A table's snapshot rows are only ever replaced as a whole set.
type GoldTableSnapshot struct {
	ID          uint           `gorm:"primary_key" json:"id"`
	SourceTable string         `gorm:"size:128;index;not null" json:"source_table"`
	Payload     datatypes.JSON `json:"payload"`
	SyncedAt    time.Time      `gorm:"index" json:"synced_at"`
}

// ReplaceTableSnapshot swaps the full snapshot of one source table inside
// a single transaction, so concurrent readers observe either the old or
// the new complete set, never a mix.
func ReplaceTableSnapshot(ctx context.Context, sourceTable string, payloads []map[string]any, syncedAt time.Time) error {
	rows := make([]GoldTableSnapshot, 0, len(payloads))
	for _, p := range payloads {
		encoded, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode %s snapshot row: %w", sourceTable, err)
		}
		rows = append(rows, GoldTableSnapshot{
			SourceTable: sourceTable,
			Payload:     datatypes.JSON(encoded),
			SyncedAt:    syncedAt,
		})
	}

	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_table = ?", sourceTable).Delete(&GoldTableSnapshot{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, bulkInsertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadSnapshotPayloads returns every mirrored row of one source table as a
// decoded column map, in insertion order.
func LoadSnapshotPayloads(ctx context.Context, sourceTable string) ([]map[string]any, error) {
	db := config.GetDB()

	var out []map[string]any
	var chunk []GoldTableSnapshot
	err := db.WithContext(ctx).
		Where("source_table = ?", sourceTable).
		Order("id ASC").
		FindInBatches(&chunk, 2000, func(tx *gorm.DB, _ int) error {
			for _, snap := range chunk {
				var payload map[string]any
				if err := json.Unmarshal(snap.Payload, &payload); err != nil {
					return fmt.Errorf("decode %s snapshot row %d: %w", sourceTable, snap.ID, err)
				}
				out = append(out, payload)
			}
			return nil
		}).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SnapshotPreview returns the first rows of one table's local snapshot.
func SnapshotPreview(ctx context.Context, sourceTable string, limit int) ([]map[string]any, error) {
	if limit <= 0 {
		limit = 5
	}
	db := config.GetDB()

	var snaps []GoldTableSnapshot
	if err := db.WithContext(ctx).
		Where("source_table = ?", sourceTable).
		Order("id ASC").Limit(limit).
		Find(&snaps).Error; err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(snaps))
	for _, snap := range snaps {
		var payload map[string]any
		if err := json.Unmarshal(snap.Payload, &payload); err != nil {
			return nil, err
		}
		out = append(out, payload)
	}
	return out, nil
}

// SnapshotSyncedAt returns the sync timestamp of one table's current
// snapshot, or nil when the table has never been mirrored.
func SnapshotSyncedAt(ctx context.Context, sourceTable string) (*time.Time, error) {
	db := config.GetDB()

	var snap GoldTableSnapshot
	err := db.WithContext(ctx).
		Where("source_table = ?", sourceTable).
		Order("id ASC").
		First(&snap).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &snap.SyncedAt, nil
}
