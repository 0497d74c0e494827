package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newsbridge/backend/internal/models"
	"github.com/newsbridge/backend/internal/services"
)

// AdminPostHandler handles the authenticated post CRUD endpoints.
type AdminPostHandler struct {
	content services.ContentService
	dev     bool
}

// NewAdminPostHandler creates a new AdminPostHandler.
func NewAdminPostHandler(content services.ContentService, dev bool) *AdminPostHandler {
	return &AdminPostHandler{content: content, dev: dev}
}

// RegisterAdminRoutes registers the post CRUD routes.
func (h *AdminPostHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:slug", h.UpdatePost)
	g.PATCH("/posts/:slug", h.UpdatePost)
	g.DELETE("/posts/:slug", h.DeletePost)
}

// CreatePost creates a new post.
func (h *AdminPostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.content.CreatePost(c.Request().Context(), &req)
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost partially updates a post identified by slug.
func (h *AdminPostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.content.UpdatePostBySlug(c.Request().Context(), c.Param("slug"), &req)
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost hard-deletes a post identified by slug.
func (h *AdminPostHandler) DeletePost(c echo.Context) error {
	if err := h.content.DeletePostBySlug(c.Request().Context(), c.Param("slug")); err != nil {
		return httpError(err, h.dev)
	}
	return c.NoContent(http.StatusNoContent)
}
