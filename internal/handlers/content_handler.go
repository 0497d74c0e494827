package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/newsbridge/backend/internal/services"
)

// ContentHandler handles the public content aggregation endpoints.
type ContentHandler struct {
	content services.ContentService
	dev     bool
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content services.ContentService, dev bool) *ContentHandler {
	return &ContentHandler{content: content, dev: dev}
}

// RegisterPublicRoutes registers the public content routes.
func (h *ContentHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/feed", h.GetHomeFeed)
	g.GET("/posts/:slug", h.GetPostDetail)
	g.GET("/categories/:idOrName", h.GetCategoryDetail)
}

// GetHomeFeed returns the four ranked home page lists.
func (h *ContentHandler) GetHomeFeed(c echo.Context) error {
	lang := c.QueryParam("lang")
	if lang == "" {
		lang = "en"
	}
	location := c.QueryParam("location")
	if location == "" {
		location = "all"
	}
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	feed, err := h.content.GetHomeFeed(c.Request().Context(), lang, location, limit)
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusOK, feed)
}

// GetPostDetail returns a post by slug, its navigation siblings and the
// trending categories. Fetching counts as a view.
func (h *ContentHandler) GetPostDetail(c echo.Context) error {
	detail, err := h.content.GetPostDetail(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusOK, detail)
}

// GetCategoryDetail returns a category with its three ranked post slices.
func (h *ContentHandler) GetCategoryDetail(c echo.Context) error {
	detail, err := h.content.GetCategoryDetail(c.Request().Context(), c.Param("idOrName"), c.QueryParam("lang"))
	if err != nil {
		return httpError(err, h.dev)
	}
	return c.JSON(http.StatusOK, detail)
}
