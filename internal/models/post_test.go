package models

import (
	"testing"
	"time"

	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRequest_ScheduledDateRules(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	req := &CreatePostRequest{PublishStatus: string(StatusScheduled)}
	err := req.Validate(now)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	req.PublishDate = &yesterday
	err = req.Validate(now)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	req.PublishDate = &tomorrow
	assert.NoError(t, req.Validate(now))
}

func TestCreatePostRequest_StructuredDataMustBeJSON(t *testing.T) {
	now := time.Now()

	req := &CreatePostRequest{StructuredData: `{"@type": "NewsArticle"}`}
	assert.NoError(t, req.Validate(now))

	req.StructuredData = `{"@type": `
	err := req.Validate(now)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdatePostRequest_ScheduledRulesUseResultingState(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	// Moving an already-scheduled post's date into the past is rejected.
	current := &Post{PublishStatus: StatusScheduled, PublishDate: &tomorrow}
	req := &UpdatePostRequest{PublishDate: &yesterday}
	err := req.Validate(current, now)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	// Flipping a draft to scheduled needs a future date from somewhere.
	scheduled := string(StatusScheduled)
	current = &Post{PublishStatus: StatusDraft}
	req = &UpdatePostRequest{PublishStatus: &scheduled}
	require.Error(t, req.Validate(current, now))

	req.PublishDate = &tomorrow
	assert.NoError(t, req.Validate(current, now))
}

func TestPostNormalize(t *testing.T) {
	p := Post{LegacyVideoURL: "https://videos.example.com/old.mp4"}
	p.Normalize()
	assert.Equal(t, "https://videos.example.com/old.mp4", p.VideoURL)
	assert.Empty(t, p.LegacyVideoURL)
	assert.Equal(t, "en", p.Language)

	// Canonical field wins when both are present.
	p = Post{VideoURL: "https://videos.example.com/new.mp4", LegacyVideoURL: "https://videos.example.com/old.mp4"}
	p.Normalize()
	assert.Equal(t, "https://videos.example.com/new.mp4", p.VideoURL)
}

func TestPostHasVideo(t *testing.T) {
	assert.True(t, (&Post{ContentType: ContentVideo}).HasVideo())
	assert.True(t, (&Post{VideoURL: "https://v.example.com/a.mp4"}).HasVideo())
	assert.True(t, (&Post{LegacyVideoURL: "https://v.example.com/a.mp4"}).HasVideo())
	assert.False(t, (&Post{ContentType: ContentArticle}).HasVideo())
}
