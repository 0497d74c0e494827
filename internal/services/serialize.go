package services

import (
	"github.com/newsbridge/backend/internal/models"
)

// CategoryView is the outbound representation of a category.
type CategoryView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// PostView is the outbound representation of a post. Identity and the
// category reference are plain string ids; when the category join was
// expanded it is exposed under both the canonical capitalized key and a
// lowercase alias for caller compatibility. Internal-only fields
// (publish state, legacy spellings) are omitted.
type PostView struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	CategoryID string `json:"category_id"`
	// Category and CategoryAlias always point at the same value; older
	// consumers read the lowercase key.
	Category      *CategoryView `json:"Category,omitempty"`
	CategoryAlias *CategoryView `json:"category,omitempty"`

	ContentType string   `json:"content_type"`
	Language    string   `json:"language"`
	Location    string   `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	Title          string `json:"title"`
	Content        string `json:"content"`
	Excerpt        string `json:"excerpt,omitempty"`
	BannerImageURL string `json:"banner_image_url"`
	VideoURL       string `json:"video_url,omitempty"`

	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	OGImage         string `json:"og_image,omitempty"`
	StructuredData  string `json:"structured_data,omitempty"`

	QuoteText         string `json:"quote_text,omitempty"`
	WhyThisMatters    string `json:"why_this_matters,omitempty"`
	WhatsExpectedNext string `json:"whats_expected_next,omitempty"`

	ViewsCount  int64  `json:"views_count"`
	SharesCount int64  `json:"shares_count"`
	PublishDate string `json:"publish_date,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// serializeCategory maps a category onto its outbound form.
func serializeCategory(c *models.Category) *CategoryView {
	if c == nil {
		return nil
	}
	return &CategoryView{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		IsActive:    c.IsActive,
	}
}

// serializePost maps a post onto its outbound form. Applying it to the same
// post repeatedly yields identical output; ids are already strings and the
// category alias keys stay consistent.
func serializePost(p *models.Post) PostView {
	p.Normalize()

	view := PostView{
		ID:         p.ID.Hex(),
		Slug:       p.Slug,
		CategoryID: p.CategoryID.Hex(),

		ContentType: string(p.ContentType),
		Language:    p.Language,
		Location:    p.Location,
		Tags:        p.Tags,

		Title:          p.Title,
		Content:        p.Content,
		Excerpt:        p.Excerpt,
		BannerImageURL: p.BannerImageURL,
		VideoURL:       p.VideoURL,

		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		OGImage:         p.OGImage,
		StructuredData:  p.StructuredData,

		QuoteText:         p.QuoteText,
		WhyThisMatters:    p.WhyThisMatters,
		WhatsExpectedNext: p.WhatsExpectedNext,

		ViewsCount:  p.ViewsCount,
		SharesCount: p.SharesCount,
		CreatedAt:   p.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:   p.UpdatedAt.UTC().Format(timeLayout),
	}
	if p.PublishDate != nil {
		view.PublishDate = p.PublishDate.UTC().Format(timeLayout)
	}
	if p.Category != nil {
		cv := serializeCategory(p.Category)
		view.Category = cv
		view.CategoryAlias = cv
	}
	return view
}

// serializePosts maps a slice of posts, always returning a non-nil slice.
func serializePosts(posts []models.Post) []PostView {
	views := make([]PostView, len(posts))
	for i := range posts {
		views[i] = serializePost(&posts[i])
	}
	return views
}

const timeLayout = "2006-01-02T15:04:05.000Z"
