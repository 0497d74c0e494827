package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PublishStatus is the editorial state of a post.
type PublishStatus string

const (
	StatusDraft     PublishStatus = "draft"
	StatusReview    PublishStatus = "review"
	StatusScheduled PublishStatus = "scheduled"
	StatusPublished PublishStatus = "published"
)

// Visibility controls who may see a post.
type Visibility string

const (
	VisibilityPublic      Visibility = "public"
	VisibilityPrivate     Visibility = "private"
	VisibilityInternal    Visibility = "internal"
	VisibilityMembersOnly Visibility = "members-only"
)

// ContentType distinguishes the kinds of content items.
type ContentType string

const (
	ContentArticle  ContentType = "article"
	ContentVideo    ContentType = "video"
	ContentMagazine ContentType = "magazine"
)

// Post represents a content item stored in MongoDB.
type Post struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Slug       string             `json:"slug" bson:"slug"`
	CategoryID primitive.ObjectID `json:"category_id" bson:"category_id"`
	// Category is populated when the category join was expanded; it is not
	// stored on the post document itself.
	Category *Category `json:"-" bson:"-"`

	ContentType ContentType `json:"content_type" bson:"content_type"`
	Language    string      `json:"language" bson:"language"`
	Location    string      `json:"location,omitempty" bson:"location,omitempty"`
	Tags        []string    `json:"tags,omitempty" bson:"tags,omitempty"`

	PublishStatus PublishStatus `json:"publish_status" bson:"publish_status"`
	Visibility    Visibility    `json:"visibility" bson:"visibility"`
	PublishDate   *time.Time    `json:"publish_date,omitempty" bson:"publish_date,omitempty"`

	Title          string `json:"title" bson:"title"`
	Content        string `json:"content" bson:"content"`
	Excerpt        string `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	BannerImageURL string `json:"banner_image_url" bson:"banner_image_url"`
	VideoURL       string `json:"video_url,omitempty" bson:"video_url,omitempty"`
	// LegacyVideoURL carries the camelCase field older documents were written
	// with; the store adapter folds it into VideoURL on read.
	LegacyVideoURL string `json:"-" bson:"videoUrl,omitempty"`

	MetaTitle       string `json:"meta_title,omitempty" bson:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty" bson:"meta_description,omitempty"`
	OGImage         string `json:"og_image,omitempty" bson:"og_image,omitempty"`
	StructuredData  string `json:"structured_data,omitempty" bson:"structured_data,omitempty"`

	QuoteText         string `json:"quote_text,omitempty" bson:"quote_text,omitempty"`
	WhyThisMatters    string `json:"why_this_matters,omitempty" bson:"why_this_matters,omitempty"`
	WhatsExpectedNext string `json:"whats_expected_next,omitempty" bson:"whats_expected_next,omitempty"`

	ViewsCount  int64 `json:"views_count" bson:"views_count"`
	SharesCount int64 `json:"shares_count" bson:"shares_count"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Normalize folds legacy field spellings onto the canonical schema. Applied
// once at the store-adapter boundary instead of re-checking alternates at
// every call site.
func (p *Post) Normalize() {
	if p.VideoURL == "" && p.LegacyVideoURL != "" {
		p.VideoURL = p.LegacyVideoURL
	}
	p.LegacyVideoURL = ""
	if p.Language == "" {
		p.Language = "en"
	}
}

// HasVideo reports whether the post belongs in the video feed.
func (p *Post) HasVideo() bool {
	return p.ContentType == ContentVideo || p.VideoURL != "" || p.LegacyVideoURL != ""
}

// CreatePostRequest defines the request body for creating a new post.
type CreatePostRequest struct {
	Slug           string     `json:"slug,omitempty" validate:"omitempty,max=200"`
	Title          string     `json:"title" validate:"required,min=1,max=300"`
	Content        string     `json:"content" validate:"required,min=1"`
	Excerpt        string     `json:"excerpt,omitempty"`
	CategoryID     string     `json:"category_id" validate:"required"`
	ContentType    string     `json:"content_type,omitempty" validate:"omitempty,oneof=article video magazine"`
	Language       string     `json:"language,omitempty"`
	Location       string     `json:"location,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	PublishStatus  string     `json:"publish_status,omitempty" validate:"omitempty,oneof=draft review scheduled published"`
	Visibility     string     `json:"visibility,omitempty" validate:"omitempty,oneof=public private internal members-only"`
	PublishDate    *time.Time `json:"publish_date,omitempty"`
	BannerImageURL string     `json:"banner_image_url" validate:"required,url,startswith=http"`
	VideoURL       string     `json:"video_url,omitempty" validate:"omitempty,url,startswith=http"`

	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	OGImage         string `json:"og_image,omitempty" validate:"omitempty,url"`
	StructuredData  string `json:"structured_data,omitempty"`

	QuoteText         string `json:"quote_text,omitempty"`
	WhyThisMatters    string `json:"why_this_matters,omitempty"`
	WhatsExpectedNext string `json:"whats_expected_next,omitempty"`
}

// Validate applies the cross-field rules struct tags cannot express.
func (r *CreatePostRequest) Validate(now time.Time) error {
	if r.StructuredData != "" && !json.Valid([]byte(r.StructuredData)) {
		return errInvalidStructuredData
	}
	if PublishStatus(r.PublishStatus) == StatusScheduled {
		if r.PublishDate == nil {
			return errScheduledNeedsDate
		}
		if !r.PublishDate.After(now) {
			return errScheduledPastDate
		}
	}
	return nil
}

// UpdatePostRequest defines the request body for a partial post update.
// Nil pointers mean "leave unchanged".
type UpdatePostRequest struct {
	Slug           *string    `json:"slug,omitempty" validate:"omitempty,max=200"`
	Title          *string    `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Content        *string    `json:"content,omitempty" validate:"omitempty,min=1"`
	Excerpt        *string    `json:"excerpt,omitempty"`
	CategoryID     *string    `json:"category_id,omitempty"`
	ContentType    *string    `json:"content_type,omitempty" validate:"omitempty,oneof=article video magazine"`
	Language       *string    `json:"language,omitempty"`
	Location       *string    `json:"location,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	PublishStatus  *string    `json:"publish_status,omitempty" validate:"omitempty,oneof=draft review scheduled published"`
	Visibility     *string    `json:"visibility,omitempty" validate:"omitempty,oneof=public private internal members-only"`
	PublishDate    *time.Time `json:"publish_date,omitempty"`
	BannerImageURL *string    `json:"banner_image_url,omitempty" validate:"omitempty,url,startswith=http"`
	VideoURL       *string    `json:"video_url,omitempty" validate:"omitempty,url,startswith=http"`

	MetaTitle       *string `json:"meta_title,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
	OGImage         *string `json:"og_image,omitempty" validate:"omitempty,url"`
	StructuredData  *string `json:"structured_data,omitempty"`

	QuoteText         *string `json:"quote_text,omitempty"`
	WhyThisMatters    *string `json:"why_this_matters,omitempty"`
	WhatsExpectedNext *string `json:"whats_expected_next,omitempty"`
}

// Validate applies the cross-field rules against the post state that would
// result from the update.
func (r *UpdatePostRequest) Validate(current *Post, now time.Time) error {
	if r.StructuredData != nil && *r.StructuredData != "" && !json.Valid([]byte(*r.StructuredData)) {
		return errInvalidStructuredData
	}

	status := current.PublishStatus
	if r.PublishStatus != nil {
		status = PublishStatus(*r.PublishStatus)
	}
	date := current.PublishDate
	if r.PublishDate != nil {
		date = r.PublishDate
	}
	if status == StatusScheduled {
		if date == nil {
			return errScheduledNeedsDate
		}
		if !date.After(now) {
			return errScheduledPastDate
		}
	}
	return nil
}
