package main

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"bitbucket.org/cidacdata/elab_backend/config"
	"bitbucket.org/cidacdata/elab_backend/models"
	"bitbucket.org/cidacdata/elab_backend/utils"
	"github.com/gin-gonic/gin"
)

const maxUploadSizeBytes int64 = 20 * 1024 * 1024

// uploadElabHandler accepts a multipart .elab upload, parses it and
// persists the batch with its rows. Decode/parse never rejects individual
// bad fields; only an empty or missing file is an error.
func uploadElabHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		if fileHeader.Size > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 20MB limit"})
			return
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if ext != ".elab" && ext != ".txt" && ext != ".csv" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}
		defer f.Close()

		raw, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}

		batch, rowCount, err := models.CreateImportBatch(c.Request.Context(), filepath.Base(fileHeader.Filename), raw)
		if err != nil {
			config.LogError(config.GetLogger(), "imports.go", "uploadElabHandler", "CreateImportBatch", fileHeader.Filename, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":          batch.ID,
			"filename":    batch.Filename,
			"uploaded_at": batch.UploadedAt,
			"row_count":   rowCount,
		})
	}
}

type listBatchesQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

func listBatchesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var query listBatchesQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
			return
		}

		batches, err := models.ListImportBatches(c.Request.Context(), query.Limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"batches": batches})
	}
}

func batchDetailHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch id"})
			return
		}

		batch, err := models.GetImportBatch(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}

		rows, err := models.GetBatchRows(c.Request.Context(), batch.ID, c.Query("q"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":          batch.ID,
			"filename":    batch.Filename,
			"uploaded_at": batch.UploadedAt,
			"row_count":   len(rows),
			"rows":        rows,
		})
	}
}

func deleteBatchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch id"})
			return
		}

		if err := models.DeleteImportBatch(c.Request.Context(), uint(id)); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
