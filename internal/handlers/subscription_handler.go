package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newsbridge/backend/internal/models"
	"github.com/newsbridge/backend/internal/services"
)

// SubscriptionHandler handles newsletter signups and the contact form.
type SubscriptionHandler struct {
	subscriptions services.SubscriptionService
	dev           bool
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptions services.SubscriptionService, dev bool) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, dev: dev}
}

// RegisterPublicRoutes registers the subscription and contact routes.
func (h *SubscriptionHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/subscriptions", h.Subscribe)
	g.DELETE("/subscriptions/:email", h.Unsubscribe)
	g.POST("/contact", h.SubmitContact)
}

// Subscribe registers a newsletter subscription.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	var req models.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sub, err := h.subscriptions.Subscribe(&req)
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusCreated, sub)
}

// Unsubscribe deactivates a newsletter subscription.
func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	if err := h.subscriptions.Unsubscribe(c.Param("email")); err != nil {
		return httpError(err, h.dev)
	}
	return c.NoContent(http.StatusNoContent)
}

// SubmitContact stores a contact-form submission.
func (h *SubscriptionHandler) SubmitContact(c echo.Context) error {
	var req models.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.subscriptions.SubmitContact(&req)
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusCreated, msg)
}
