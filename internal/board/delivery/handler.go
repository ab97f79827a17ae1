package delivery

import (
	"net/http"
	"strconv"

	boarddomain "mailboard/internal/board/domain"
	boarddto "mailboard/internal/board/dto"
	"mailboard/internal/board/usecase"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardUsecase usecase.BoardUsecase
	refresher    *usecase.Refresher
}

func NewBoardHandler(boardUsecase usecase.BoardUsecase, refresher *usecase.Refresher) *BoardHandler {
	return &BoardHandler{
		boardUsecase: boardUsecase,
		refresher:    refresher,
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case boarddomain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case boarddomain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func configResponse(columns []boarddomain.Column, report *usecase.MigrationReport) boarddto.ConfigResponse {
	resp := boarddto.ConfigResponse{
		Success: true,
		Data:    boarddto.ConfigData{Columns: columns},
	}
	if !report.Empty() {
		resp.Migrations = report.Results
		if pf := report.PartialFailure(); pf != nil {
			resp.Warnings = pf.Failures
		}
	}
	return resp
}

// GetConfig returns the owner's columns, seeding defaults on first access.
func (h *BoardHandler) GetConfig(c *gin.Context) {
	ownerID := c.GetString("ownerID")

	columns, err := h.boardUsecase.ListColumns(ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, configResponse(columns, nil))
}

// ReplaceConfig validates and commits a whole new column set, running the
// status migration flow first. Migration failures are reported as warnings,
// never as a failed save.
func (h *BoardHandler) ReplaceConfig(c *gin.Context) {
	ownerID := c.GetString("ownerID")

	var req boarddto.ReplaceConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columns, report, err := h.boardUsecase.ReplaceColumns(ownerID, req.Columns, req.StatusMigrations)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, configResponse(columns, report))
}

// AddColumn appends a single column.
func (h *BoardHandler) AddColumn(c *gin.Context) {
	ownerID := c.GetString("ownerID")

	var col boarddomain.Column
	if err := c.ShouldBindJSON(&col); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columns, err := h.boardUsecase.AddColumn(ownerID, col)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, configResponse(columns, nil))
}

// DeleteColumn removes a column. Emails keep their now-orphaned status.
func (h *BoardHandler) DeleteColumn(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	columnID := c.Param("id")

	columns, err := h.boardUsecase.RemoveColumn(ownerID, columnID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, configResponse(columns, nil))
}

// PatchColumn merges a partial update; the id is immutable.
func (h *BoardHandler) PatchColumn(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	columnID := c.Param("id")

	var patch usecase.ColumnPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	col, report, err := h.boardUsecase.PatchColumn(ownerID, columnID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"success": true, "data": col}
	if !report.Empty() {
		resp["migrations"] = report.Results
		if pf := report.PartialFailure(); pf != nil {
			resp["warnings"] = pf.Failures
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetLabels lists the provider labels available for column bindings.
func (h *BoardHandler) GetLabels(c *gin.Context) {
	ownerID := c.GetString("ownerID")

	labels, err := h.boardUsecase.ListProviderLabels(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": labels})
}

// GetBoard re-projects the owner's board with per-request filter and sort
// policies.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	ownerID := c.GetString("ownerID")

	opts := usecase.ProjectionOptions{
		SortAscending: c.Query("sort") == "asc",
	}
	if v, err := strconv.ParseBool(c.DefaultQuery("unread", "false")); err == nil {
		opts.UnreadOnly = v
	}
	if v, err := strconv.ParseBool(c.DefaultQuery("attachments", "false")); err == nil {
		opts.HasAttachments = v
	}

	snapshot, err := h.refresher.Refresh(ownerID, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": snapshot})
}

// MoveEmail handles Kanban drag & drop.
func (h *BoardHandler) MoveEmail(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	emailID := c.Param("id")

	var req boarddto.MoveEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.boardUsecase.MoveEmail(c.Request.Context(), ownerID, emailID, req.ColumnID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, boarddto.EmailResponse{Success: true, Data: email})
}

// SnoozeEmail defers an email; missing or zero hours means one hour.
func (h *BoardHandler) SnoozeEmail(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	emailID := c.Param("id")

	var req boarddto.SnoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.boardUsecase.SnoozeEmail(c.Request.Context(), ownerID, emailID, req.Hours)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, boarddto.EmailResponse{Success: true, Data: email})
}

// UnsnoozeEmail clears the snooze and restores the email to the first
// column.
func (h *BoardHandler) UnsnoozeEmail(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	emailID := c.Param("id")

	email, err := h.boardUsecase.UnsnoozeEmail(c.Request.Context(), ownerID, emailID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, boarddto.EmailResponse{Success: true, Data: email})
}
