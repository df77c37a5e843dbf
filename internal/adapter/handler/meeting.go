package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "github.com/actiondesk/action-tracker/internal/adapter/dto/meeting"
	"github.com/actiondesk/action-tracker/internal/adapter/presenter"
	"github.com/actiondesk/action-tracker/internal/domain/repositories"
	"github.com/actiondesk/action-tracker/internal/usecase/actionitem"
	"github.com/actiondesk/action-tracker/internal/usecase/meeting"
)

// Meeting handles meeting HTTP requests
type Meeting struct {
	meetingService meeting.Service
	itemService    actionitem.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meeting.Service, itemService actionitem.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		itemService:    itemService,
		logger:         logger,
	}
}

// CreateMeeting handles POST /meetings
// @Summary      Create a meeting
// @Description  Registers a meeting with its transcript and participants
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting creation request"
// @Success      201      {object}  meeting.MeetingResponse  "Meeting created"
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req dto.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meeting.CreateInput{
		Title:        req.Title,
		Transcript:   req.Transcript,
		Participants: req.Participants,
		StartedAt:    req.StartedAt,
	}

	m, err := h.meetingService.Create(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToMeetingResponse(m))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get a meeting
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse  "Meeting"
// @Failure      400  {object}  map[string]interface{}  "Invalid id"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parsePathID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(m))
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Tags         Meetings
// @Produce      json
// @Param        limit   query     int  false  "Items per page (default: 50)"
// @Param        offset  query     int  false  "Offset into the result set"
// @Success      200     {object}  meeting.MeetingListResponse  "List of meetings"
// @Failure      400     {object}  map[string]interface{}  "Invalid request"
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req dto.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if req.Limit == 0 {
		req.Limit = defaultPageSize
	}

	meetings, err := h.meetingService.List(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingListResponse(meetings))
}

// ListMeetingActionItems handles GET /meetings/:id/action-items
// @Summary      List a meeting's action items
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  actionitem.ActionItemListResponse  "Action items for the meeting"
// @Failure      400  {object}  map[string]interface{}  "Invalid id"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/action-items [get]
func (h *Meeting) ListMeetingActionItems(c echo.Context) error {
	id, err := parsePathID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if _, err := h.meetingService.Get(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.itemService.List(c.Request().Context(), repositories.ActionItemFilters{
		MeetingID: &id,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToActionItemListResponse(items))
}

// ExtractActionItems handles POST /meetings/:id/action-items/extract
// @Summary      Extract action items from a meeting transcript
// @Description  Runs the extraction model over the transcript and saves every candidate as a todo item; one run per meeting at a time
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      201  {object}  actionitem.ExtractionResponse  "Extracted action items"
// @Failure      400  {object}  map[string]interface{}  "Meeting has no transcript"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      409  {object}  map[string]interface{}  "Extraction already in progress"
// @Failure      502  {object}  map[string]interface{}  "Extraction failed"
// @Router       /meetings/{id}/action-items/extract [post]
func (h *Meeting) ExtractActionItems(c echo.Context) error {
	id, err := parsePathID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.itemService.ExtractFromMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToExtractionResponse(id, items))
}
