package services

import (
	"context"

	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/newsbridge/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatePost validates the request, derives a slug when none was supplied,
// enforces slug uniqueness and the category reference, and inserts the post.
func (s *contentService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*PostView, error) {
	if err := req.Validate(s.now()); err != nil {
		return nil, err
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return nil, apperrors.NewValidation("category_id", "must be a valid id")
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewValidation("category_id", "references an unknown category")
		}
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}
	if slug == "" {
		return nil, apperrors.NewValidation("slug", "could not derive a slug from the title")
	}
	inUse, err := s.posts.SlugInUse(ctx, slug, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, apperrors.ErrConflict
	}

	post := &models.Post{
		Slug:           slug,
		CategoryID:     categoryID,
		ContentType:    models.ContentType(req.ContentType),
		Language:       req.Language,
		Location:       req.Location,
		Tags:           req.Tags,
		PublishStatus:  models.PublishStatus(req.PublishStatus),
		Visibility:     models.Visibility(req.Visibility),
		PublishDate:    req.PublishDate,
		Title:          req.Title,
		Content:        req.Content,
		Excerpt:        req.Excerpt,
		BannerImageURL: req.BannerImageURL,
		VideoURL:       req.VideoURL,

		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		OGImage:         req.OGImage,
		StructuredData:  req.StructuredData,

		QuoteText:         req.QuoteText,
		WhyThisMatters:    req.WhyThisMatters,
		WhatsExpectedNext: req.WhatsExpectedNext,
	}
	if post.ContentType == "" {
		post.ContentType = models.ContentArticle
	}
	if post.Language == "" {
		post.Language = "en"
	}
	if post.PublishStatus == "" {
		post.PublishStatus = models.StatusDraft
	}
	if post.Visibility == "" {
		post.Visibility = models.VisibilityPublic
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	view := serializePost(post)
	return &view, nil
}

// UpdatePostBySlug applies a partial update. Validation and the
// slug-collision check run before any field is mutated.
func (s *contentService) UpdatePostBySlug(ctx context.Context, slug string, req *models.UpdatePostRequest) (*PostView, error) {
	current, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(current, s.now()); err != nil {
		return nil, err
	}

	fields := bson.M{}

	if req.Slug != nil && *req.Slug != current.Slug {
		inUse, err := s.posts.SlugInUse(ctx, *req.Slug, current.ID)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, apperrors.ErrConflict
		}
		fields["slug"] = *req.Slug
	}
	if req.CategoryID != nil {
		categoryID, err := primitive.ObjectIDFromHex(*req.CategoryID)
		if err != nil {
			return nil, apperrors.NewValidation("category_id", "must be a valid id")
		}
		if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
			if isNotFound(err) {
				return nil, apperrors.NewValidation("category_id", "references an unknown category")
			}
			return nil, err
		}
		fields["category_id"] = categoryID
	}

	setString := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setString("title", req.Title)
	setString("content", req.Content)
	setString("excerpt", req.Excerpt)
	setString("content_type", req.ContentType)
	setString("language", req.Language)
	setString("location", req.Location)
	setString("publish_status", req.PublishStatus)
	setString("visibility", req.Visibility)
	setString("banner_image_url", req.BannerImageURL)
	setString("video_url", req.VideoURL)
	setString("meta_title", req.MetaTitle)
	setString("meta_description", req.MetaDescription)
	setString("og_image", req.OGImage)
	setString("structured_data", req.StructuredData)
	setString("quote_text", req.QuoteText)
	setString("why_this_matters", req.WhyThisMatters)
	setString("whats_expected_next", req.WhatsExpectedNext)
	if req.Tags != nil {
		fields["tags"] = req.Tags
	}
	if req.PublishDate != nil {
		fields["publish_date"] = *req.PublishDate
	}

	if err := s.posts.UpdateBySlug(ctx, slug, fields); err != nil {
		return nil, err
	}

	updatedSlug := slug
	if newSlug, ok := fields["slug"].(string); ok {
		updatedSlug = newSlug
	}
	updated, err := s.posts.GetBySlug(ctx, updatedSlug)
	if err != nil {
		return nil, err
	}
	view := serializePost(updated)
	return &view, nil
}

// DeletePostBySlug removes the post. Hard delete, no tombstone.
func (s *contentService) DeletePostBySlug(ctx context.Context, slug string) error {
	return s.posts.DeleteBySlug(ctx, slug)
}
