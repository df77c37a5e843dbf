package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/actiondesk/action-tracker/errors"
	dto "github.com/actiondesk/action-tracker/internal/adapter/dto/actionitem"
	"github.com/actiondesk/action-tracker/internal/adapter/presenter"
	"github.com/actiondesk/action-tracker/internal/domain/entities"
	"github.com/actiondesk/action-tracker/internal/domain/repositories"
	"github.com/actiondesk/action-tracker/internal/usecase/actionitem"
)

const (
	dueDateLayout = "2006-01-02"

	// defaultPageSize bounds list responses when no limit is given
	defaultPageSize = 50
)

// ActionItem handles action item HTTP requests
type ActionItem struct {
	service actionitem.Service
	logger  *zap.Logger
}

// NewActionItemHandler creates a new action item handler
func NewActionItemHandler(service actionitem.Service, logger *zap.Logger) *ActionItem {
	return &ActionItem{
		service: service,
		logger:  logger,
	}
}

// CreateActionItem handles POST /action-items
// @Summary      Create an action item
// @Description  Creates an action item under an existing meeting
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        request  body      actionitem.CreateActionItemRequest  true  "Action item creation request"
// @Success      201      {object}  actionitem.ActionItemResponse  "Action item created"
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /action-items [post]
func (h *ActionItem) CreateActionItem(c echo.Context) error {
	var req dto.CreateActionItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	input := actionitem.CreateInput{
		MeetingID:   req.MeetingID,
		Title:       req.Title,
		Description: req.Description,
		Owner:       req.Owner,
		DueDate:     dueDate,
		Priority:    req.Priority,
	}

	item, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToActionItemResponse(item))
}

// GetActionItem handles GET /action-items/:id
// @Summary      Get an action item
// @Description  Gets a single action item by id; soft-deleted items are not found
// @Tags         ActionItems
// @Produce      json
// @Param        id   path      int  true  "Action item ID"
// @Success      200  {object}  actionitem.ActionItemResponse  "Action item"
// @Failure      400  {object}  map[string]interface{}  "Invalid id"
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id} [get]
func (h *ActionItem) GetActionItem(c echo.Context) error {
	id, err := parsePathID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToActionItemResponse(item))
}

// ListActionItems handles GET /action-items
// @Summary      List action items
// @Description  Lists action items with optional filters, newest first
// @Tags         ActionItems
// @Produce      json
// @Param        meeting_id       query     int     false  "Filter by meeting"
// @Param        status           query     string  false  "Filter by status (todo/in_progress/done/cancelled)"
// @Param        include_deleted  query     bool    false  "Include soft-deleted items"
// @Param        limit            query     int     false  "Items per page (default: 50)"
// @Param        offset           query     int     false  "Offset into the result set"
// @Success      200  {object}  actionitem.ActionItemListResponse  "List of action items"
// @Failure      400  {object}  map[string]interface{}  "Invalid request"
// @Router       /action-items [get]
func (h *ActionItem) ListActionItems(c echo.Context) error {
	var req dto.ListActionItemsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if req.Limit == 0 {
		req.Limit = defaultPageSize
	}

	filters := repositories.ActionItemFilters{
		MeetingID:      req.MeetingID,
		IncludeDeleted: req.IncludeDeleted,
		Limit:          req.Limit,
		Offset:         req.Offset,
	}
	if req.Status != nil {
		status, ok := entities.ParseActionItemStatus(*req.Status)
		if !ok {
			return HandleError(h.logger, c, errors.ErrInvalidStatus(*req.Status))
		}
		filters.Status = &status
	}

	items, err := h.service.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToActionItemListResponse(items))
}

// UpdateActionItem handles PUT /action-items/:id
// @Summary      Update an action item
// @Description  Applies a partial update; fields absent from the body are left untouched, fields set to null are cleared
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        id       path      int                                 true  "Action item ID"
// @Param        request  body      actionitem.UpdateActionItemRequest  true  "Fields to update"
// @Success      200      {object}  actionitem.ActionItemResponse  "Updated action item"
// @Failure      400      {object}  map[string]interface{}  "Invalid request or rejected status transition"
// @Failure      404      {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id} [put]
func (h *ActionItem) UpdateActionItem(c echo.Context) error {
	id, err := parsePathID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	patch, err := h.readPatch(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.service.Update(c.Request().Context(), id, patch)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToActionItemResponse(item))
}

// readPatch decodes the body twice: once into the typed request and
// once into a raw key map, so an explicit null is distinguishable
// from an absent key.
func (h *ActionItem) readPatch(c echo.Context) (actionitem.Patch, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return actionitem.Patch{}, errors.ErrInvalidPayload()
	}

	var req dto.UpdateActionItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return actionitem.Patch{}, errors.ErrInvalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return actionitem.Patch{}, errors.ErrInvalidArgument(err.Error())
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		return actionitem.Patch{}, errors.ErrInvalidPayload()
	}

	patch := actionitem.Patch{
		Title:    req.Title,
		Status:   req.Status,
		Priority: req.Priority,
	}
	if _, ok := present["description"]; ok {
		patch.Description = req.Description
		patch.DescriptionSet = true
	}
	if _, ok := present["owner"]; ok {
		patch.Owner = req.Owner
		patch.OwnerSet = true
	}
	if _, ok := present["notes"]; ok {
		patch.Notes = req.Notes
		patch.NotesSet = true
	}
	if _, ok := present["due_date"]; ok {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return actionitem.Patch{}, err
		}
		patch.DueDate = dueDate
		patch.DueDateSet = true
	}

	return patch, nil
}

// UpdateStatus handles PATCH /action-items/:id/status
// @Summary      Change an action item's status
// @Description  Moves the item to a new status; the hop is validated against the transition rules
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        id       path      int                             true  "Action item ID"
// @Param        request  body      actionitem.UpdateStatusRequest  true  "Target status"
// @Success      200      {object}  actionitem.ActionItemResponse  "Updated action item"
// @Failure      400      {object}  map[string]interface{}  "Invalid status or rejected transition"
// @Failure      404      {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id}/status [patch]
func (h *ActionItem) UpdateStatus(c echo.Context) error {
	id, err := parsePathID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.service.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToActionItemResponse(item))
}

// BatchUpdateStatus handles PATCH /action-items/batch/status
// @Summary      Change status for a batch of action items
// @Description  Force-sets the status on every existing, non-deleted item in ids; transition rules are not applied on this path
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        request  body      actionitem.BatchUpdateStatusRequest  true  "Ids and target status"
// @Success      200      {object}  actionitem.BatchUpdateStatusResponse  "Batch outcome"
// @Failure      400      {object}  map[string]interface{}  "Invalid request, duplicate ids, or batch too large"
// @Router       /action-items/batch/status [patch]
func (h *ActionItem) BatchUpdateStatus(c echo.Context) error {
	var req dto.BatchUpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	count, err := h.service.BatchUpdateStatus(c.Request().Context(), req.IDs, req.Status)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, &dto.BatchUpdateStatusResponse{
		UpdatedCount: count,
		IDs:          req.IDs,
		Message:      "batch status update applied",
	})
}

// DeleteActionItem handles DELETE /action-items/:id
// @Summary      Delete an action item
// @Description  Soft-deletes the item; it disappears from reads but stays in storage
// @Tags         ActionItems
// @Produce      json
// @Param        id   path      int  true  "Action item ID"
// @Success      204  "Action item deleted"
// @Failure      400  {object}  map[string]interface{}  "Invalid id"
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id} [delete]
func (h *ActionItem) DeleteActionItem(c echo.Context) error {
	id, err := parsePathID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	due, err := time.Parse(dueDateLayout, *raw)
	if err != nil {
		return nil, errors.ErrInvalidArgument("due_date must be formatted as YYYY-MM-DD")
	}
	return &due, nil
}
