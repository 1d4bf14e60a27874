package goldsync

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/cidacdata/elab_backend/models"
)

const previewRows = 5

// SyncGoldTables mirrors the three Gold tables into local snapshots. Each
// table is fetched first and only then swapped in a single transaction, so
// a fetch failure leaves that table's previous snapshot intact. Tables
// already replaced in the same run stay committed; the error carries the
// name of the table that failed, together with the partial summaries.
// Every run is a full replacement and is safe to repeat.
func SyncGoldTables(ctx context.Context, limit int) (map[string]TableSyncSummary, error) {
	client, err := newGoldClient()
	if err != nil {
		return nil, err
	}

	summaries := make(map[string]TableSyncSummary, len(GoldTables))

	for _, table := range GoldTables {
		payloads, err := client.fetchTable(ctx, table, limit)
		if err != nil {
			return summaries, fmt.Errorf("fetch gold table %s: %w", table, err)
		}

		if err := models.ReplaceTableSnapshot(ctx, table, payloads, time.Now()); err != nil {
			return summaries, fmt.Errorf("replace snapshot of %s: %w", table, err)
		}

		preview := payloads
		if len(preview) > previewRows {
			preview = preview[:previewRows]
		}
		summaries[table] = TableSyncSummary{
			RowsFetched: len(payloads),
			Preview:     preview,
		}
	}

	return summaries, nil
}
