package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/newsbridge/backend/internal/models"
	"github.com/newsbridge/backend/internal/services"
)

// EventHandler handles the event endpoints.
type EventHandler struct {
	events services.EventService
	dev    bool
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events services.EventService, dev bool) *EventHandler {
	return &EventHandler{events: events, dev: dev}
}

// RegisterPublicRoutes registers the public event routes.
func (h *EventHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/events", h.ListEvents)
	g.GET("/events/:slug", h.GetEvent)
	g.GET("/events/:slug/related", h.GetRelatedEvents)
	g.POST("/events/:slug/view", h.RecordView)
}

// RegisterAdminRoutes registers the authenticated event routes.
func (h *EventHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/events", h.CreateEvent)
}

// ListEvents lists events with optional lang/category/status/featured filters.
func (h *EventHandler) ListEvents(c echo.Context) error {
	filter := models.EventFilter{
		Language: c.QueryParam("lang"),
		Category: c.QueryParam("category"),
		Status:   models.EventStatus(c.QueryParam("status")),
	}
	if v := c.QueryParam("featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.Featured = &featured
	}
	filter.Limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	events, err := h.events.ListEvents(c.Request().Context(), filter)
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent returns an event by slug. The view counter is not touched here;
// the client reports the view through RecordView.
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.events.GetEventBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusOK, event)
}

// GetRelatedEvents lists other events in the same category.
func (h *EventHandler) GetRelatedEvents(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	related, err := h.events.GetRelatedEvents(c.Request().Context(), c.Param("slug"), limit)
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusOK, related)
}

// RecordView bumps the event view counter.
func (h *EventHandler) RecordView(c echo.Context) error {
	if err := h.events.IncrementViews(c.Request().Context(), c.Param("slug")); err != nil {
		return httpError(err, h.dev)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateEvent creates a new event.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req models.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.events.CreateEvent(c.Request().Context(), &req)
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusCreated, event)
}
