package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medingen/recon_api/internal/service"
	"github.com/medingen/recon_api/internal/utils"
)

// ReconcileHandler exposes the bulk reconciliation workflow: workbook
// upload, tabbed row access, auto-match reruns and the report export.
type ReconcileHandler struct {
	reconcileService *service.ReconcileService
}

// NewReconcileHandler constructs a ReconcileHandler.
func NewReconcileHandler(reconcileService *service.ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{reconcileService: reconcileService}
}

// Upload ingests a multipart spreadsheet and runs the auto-match pass.
// An empty or unreadable workbook is reported without touching the
// previously loaded row set.
func (h *ReconcileHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "No file provided")
		return
	}
	defer file.Close()

	name := strings.ToLower(header.Filename)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
		utils.Error(c, 400, "INVALID_FILE_TYPE", "Invalid file type. Please upload Excel file")
		return
	}

	workbook, err := io.ReadAll(file)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Failed to read uploaded file")
		return
	}

	rows, err := h.reconcileService.Upload(c.Request.Context(), workbook)
	if err != nil {
		if errors.Is(err, utils.ErrEmptyWorkbook) {
			utils.Error(c, 422, "EMPTY_WORKBOOK", "No valid products found in any sheet. Please check column headers")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to process workbook")
		return
	}

	utils.Success(c, 200, "Workbook loaded", gin.H{
		"rows":  rows,
		"count": len(rows),
	})
}

// GetRows returns the row set filtered by the tab query parameter.
func (h *ReconcileHandler) GetRows(c *gin.Context) {
	tab := c.DefaultQuery("tab", service.TabAll)
	rows := h.reconcileService.Rows(tab)
	utils.Success(c, 200, "Rows retrieved successfully", gin.H{
		"rows":  rows,
		"count": len(rows),
	})
}

// AutoMatch reruns the bulk auto-match pass over the loaded rows.
func (h *ReconcileHandler) AutoMatch(c *gin.Context) {
	if err := h.reconcileService.AutoMatch(c.Request.Context()); err != nil {
		if errors.Is(err, utils.ErrNoRowsLoaded) {
			utils.Error(c, 409, "NO_ROWS_LOADED", "Upload a workbook before running auto-match")
			return
		}
		utils.Error(c, 502, "GATEWAY_ERROR", err.Error())
		return
	}
	rows := h.reconcileService.Rows(service.TabAll)
	utils.Success(c, 200, "Auto-match completed", gin.H{
		"rows":  rows,
		"count": len(rows),
	})
}

// ExportRows downloads the current row set as a spreadsheet.
func (h *ReconcileHandler) ExportRows(c *gin.Context) {
	blob, err := h.reconcileService.ExportRows()
	if err != nil {
		if errors.Is(err, utils.ErrNoRowsLoaded) {
			utils.Error(c, 409, "NO_ROWS_LOADED", "Upload a workbook before exporting")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to render export")
		return
	}

	filename := fmt.Sprintf("reconciliation_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", blob)
}
