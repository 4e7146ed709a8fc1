package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"orientinsight/internal/importer"
	"orientinsight/internal/model"
)

// Import ingests a batch of uploaded manifest workbooks and returns the
// consolidated import summary.
// POST /api/import  (multipart, field "files")
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		// single-file clients use "file"
		uploads = form.File["file"]
	}
	if len(uploads) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no uploaded files"})
		return
	}
	if max := h.cfg.Import.MaxFiles; max > 0 && len(uploads) > max {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("too many files, limit is %d", max)})
		return
	}

	maxBytes := h.cfg.Import.MaxFileSizeMB * 1024 * 1024
	files := make([]importer.UploadedFile, 0, len(uploads))
	var failures []model.FileFailure
	for _, upload := range uploads {
		if maxBytes > 0 && upload.Size > maxBytes {
			failures = append(failures, model.FileFailure{
				File:   upload.Filename,
				Reason: model.FailureImportFailed,
				Detail: fmt.Sprintf("file exceeds %d MB", h.cfg.Import.MaxFileSizeMB),
			})
			continue
		}

		src, err := upload.Open()
		if err != nil {
			failures = append(failures, model.FileFailure{
				File:   upload.Filename,
				Reason: model.FailureImportFailed,
				Detail: err.Error(),
			})
			continue
		}

		workbook, err := excelize.OpenReader(src)
		src.Close()
		if err != nil {
			failures = append(failures, model.FileFailure{
				File:   upload.Filename,
				Reason: model.FailureImportFailed,
				Detail: "not a readable workbook",
			})
			continue
		}
		files = append(files, importer.UploadedFile{Name: upload.Filename, File: workbook})
	}
	defer func() {
		for _, f := range files {
			f.File.Close()
		}
	}()

	summary, err := importer.NewOrchestrator(h.store).ImportBatch(files)
	if err != nil {
		// snapshot read against the store failed; the batch never started
		_, _ = h.store.RecordImport(&model.ImportSummary{TotalFiles: len(uploads)}, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary.TotalFiles = len(uploads)
	summary.Failures = append(summary.Failures, failures...)

	// best effort; the import itself already succeeded
	_, _ = h.store.RecordImport(summary, "")

	c.JSON(http.StatusOK, summary)
}

// ListImports returns recent batch logs.
// GET /api/imports
func (h *Handler) ListImports(c *gin.Context) {
	logs, err := h.store.ListImportLogs(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}
