package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/actiondesk/action-tracker/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	actionItemHandler *ActionItem
	meetingHandler    *Meeting
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, actionItemHandler *ActionItem, meetingHandler *Meeting) *Router {
	return &Router{
		cfg:               cfg,
		actionItemHandler: actionItemHandler,
		meetingHandler:    meetingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupActionItemRoutes(v1)
	rt.setupMeetingRoutes(v1)
}

// setupActionItemRoutes configures action item routes
func (rt *Router) setupActionItemRoutes(g *echo.Group) {
	itemGroup := g.Group("/action-items")

	if rt.actionItemHandler == nil {
		itemGroup.Any("", notImplemented)
		itemGroup.Any("/*", notImplemented)
		return
	}

	itemGroup.GET("", rt.actionItemHandler.ListActionItems)
	itemGroup.POST("", rt.actionItemHandler.CreateActionItem)
	// The batch route must register before /:id so "batch" is not
	// swallowed as an id.
	itemGroup.PATCH("/batch/status", rt.actionItemHandler.BatchUpdateStatus)
	itemGroup.GET("/:id", rt.actionItemHandler.GetActionItem)
	itemGroup.PUT("/:id", rt.actionItemHandler.UpdateActionItem)
	itemGroup.DELETE("/:id", rt.actionItemHandler.DeleteActionItem)
	itemGroup.PATCH("/:id/status", rt.actionItemHandler.UpdateStatus)
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	if rt.meetingHandler == nil {
		meetingGroup.Any("", notImplemented)
		meetingGroup.Any("/*", notImplemented)
		return
	}

	meetingGroup.GET("", rt.meetingHandler.ListMeetings)
	meetingGroup.POST("", rt.meetingHandler.CreateMeeting)
	meetingGroup.GET("/:id", rt.meetingHandler.GetMeeting)
	meetingGroup.GET("/:id/action-items", rt.meetingHandler.ListMeetingActionItems)
	meetingGroup.POST("/:id/action-items/extract", rt.meetingHandler.ExtractActionItems)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
