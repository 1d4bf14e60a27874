package intermediate

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bitbucket.org/cidacdata/elab_backend/config"
	"bitbucket.org/cidacdata/elab_backend/utils"
	"github.com/gin-gonic/gin"
)

// RegenerateHandler rebuilds a batch's three diff sets. It shares the
// goldsync lock so a regeneration never reads snapshots mid-replacement.
func RegenerateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		batchID, err := batchIDParam(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch id"})
			return
		}

		release, err := utils.AcquireSyncLock(c.Request.Context(), "goldsync", "intermediate", "RegenerateHandler")
		if err != nil {
			if errors.Is(err, utils.ErrorLockNotObtained) {
				c.JSON(http.StatusConflict, gin.H{"error": "a sync or regeneration is already running"})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		defer release()

		counts, err := Regenerate(c.Request.Context(), batchID)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
				return
			}
			config.LogError(config.GetLogger(), "intermediate", "RegenerateHandler", "Regenerate", batchID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"batch_id": batchID, "counts": counts})
	}
}

// DiffsHandler returns a batch's persisted diff sets; ?limit= caps each
// category for previews.
func DiffsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		batchID, err := batchIDParam(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch id"})
			return
		}

		limit := 0
		if v := strings.TrimSpace(c.Query("limit")); v != "" {
			if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 {
				limit = n
			}
		}

		sets, err := LoadDiffSets(c.Request.Context(), batchID, limit)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"batch_id":            batchID,
			"q_AggPrAcqu":         sets.Price,
			"q_AggiornaEan":       sets.Ean,
			"q_AggiornamentiVari": sets.Logistics,
		})
	}
}

func batchIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
