// gold-sync runs one full mirror resynchronization of the three Gold
// tables and exits. Meant for cron or manual operations use.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bitbucket.org/cidacdata/elab_backend/config"
	"bitbucket.org/cidacdata/elab_backend/goldsync"
	"bitbucket.org/cidacdata/elab_backend/models"
)

func main() {
	config.ConnectDatabaseWithRetry()
	if err := config.ConnectGoldDatabase(); err != nil {
		fmt.Fprintf(os.Stderr, "gold-sync: %v\n", err)
		os.Exit(1)
	}

	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	}

	limit := 0
	if v := strings.TrimSpace(os.Getenv("GOLD_SYNC_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	summaries, err := goldsync.SyncGoldTables(context.Background(), limit)
	for table, summary := range summaries {
		fmt.Printf("%s: %d rows\n", table, summary.RowsFetched)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "gold-sync: %v\n", err)
		os.Exit(1)
	}
}
