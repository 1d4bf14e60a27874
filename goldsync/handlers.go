package goldsync

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/cidacdata/elab_backend/config"
	"bitbucket.org/cidacdata/elab_backend/models"
	"bitbucket.org/cidacdata/elab_backend/utils"
	"github.com/gin-gonic/gin"
)

// SyncHandler triggers a full mirror resync. It is manual and safe to
// re-run; the shared sync lock keeps it from racing a diff regeneration.
func SyncHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		release, err := utils.AcquireSyncLock(c.Request.Context(), "goldsync", "goldsync", "SyncHandler")
		if err != nil {
			if errors.Is(err, utils.ErrorLockNotObtained) {
				c.JSON(http.StatusConflict, gin.H{"error": "a sync or regeneration is already running"})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		defer release()

		limit := 0
		if v := strings.TrimSpace(os.Getenv("GOLD_SYNC_LIMIT")); v != "" {
			if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 {
				limit = n
			}
		}

		summaries, err := SyncGoldTables(c.Request.Context(), limit)
		if err != nil {
			config.LogError(config.GetLogger(), "goldsync", "SyncHandler", "SyncGoldTables", nil, err)
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     err.Error(),
				"summaries": summaries,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"synced_at": time.Now().Format(time.RFC3339),
			"summaries": summaries,
		})
	}
}

// PreviewHandler returns the first rows of each table's local snapshot
// plus its sync timestamp, for operational visibility.
func PreviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		limit := previewRows
		if v := strings.TrimSpace(c.Query("limit")); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		type tablePreview struct {
			SyncedAt *time.Time       `json:"synced_at"`
			Rows     []map[string]any `json:"rows"`
		}

		out := make(map[string]tablePreview, len(GoldTables))
		for _, table := range GoldTables {
			rows, err := models.SnapshotPreview(ctx, table, limit)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			syncedAt, err := models.SnapshotSyncedAt(ctx, table)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			out[table] = tablePreview{SyncedAt: syncedAt, Rows: rows}
		}

		c.JSON(http.StatusOK, out)
	}
}
