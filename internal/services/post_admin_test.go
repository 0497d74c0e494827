package services

import (
	"context"
	"testing"
	"time"

	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/newsbridge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validCreateRequest(categoryID primitive.ObjectID) *models.CreatePostRequest {
	return &models.CreatePostRequest{
		Title:          "Budget Vote Delayed Again",
		Content:        "The committee postponed the vote.",
		CategoryID:     categoryID.Hex(),
		BannerImageURL: "https://cdn.example.com/banner.jpg",
	}
}

func TestCreatePost_DerivesSlugAndDefaults(t *testing.T) {
	newsID := primitive.NewObjectID()
	repo := &fakePostRepo{}
	categories := &fakeCategoryRepo{categories: []models.Category{{ID: newsID, Name: "News", IsActive: true}}}
	svc := newTestContentService(repo, categories)

	view, err := svc.CreatePost(context.Background(), validCreateRequest(newsID))
	require.NoError(t, err)

	assert.Equal(t, "budget-vote-delayed-again", view.Slug)
	assert.Equal(t, string(models.ContentArticle), view.ContentType)
	assert.Equal(t, "en", view.Language)

	stored, err := repo.GetBySlug(context.Background(), "budget-vote-delayed-again")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, stored.PublishStatus)
	assert.Equal(t, models.VisibilityPublic, stored.Visibility)
}

func TestCreatePost_ScheduledRequiresFutureDate(t *testing.T) {
	newsID := primitive.NewObjectID()
	categories := &fakeCategoryRepo{categories: []models.Category{{ID: newsID, Name: "News", IsActive: true}}}
	svc := newTestContentService(&fakePostRepo{}, categories)

	yesterday := time.Now().Add(-24 * time.Hour)
	req := validCreateRequest(newsID)
	req.PublishStatus = string(models.StatusScheduled)
	req.PublishDate = &yesterday

	_, err := svc.CreatePost(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	tomorrow := time.Now().Add(24 * time.Hour)
	req.PublishDate = &tomorrow
	_, err = svc.CreatePost(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreatePost_UnknownCategoryRejected(t *testing.T) {
	svc := newTestContentService(&fakePostRepo{}, &fakeCategoryRepo{})

	_, err := svc.CreatePost(context.Background(), validCreateRequest(primitive.NewObjectID()))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreatePost_DuplicateSlugConflicts(t *testing.T) {
	newsID := primitive.NewObjectID()
	repo := &fakePostRepo{}
	categories := &fakeCategoryRepo{categories: []models.Category{{ID: newsID, Name: "News", IsActive: true}}}
	svc := newTestContentService(repo, categories)

	_, err := svc.CreatePost(context.Background(), validCreateRequest(newsID))
	require.NoError(t, err)

	_, err = svc.CreatePost(context.Background(), validCreateRequest(newsID))
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestUpdatePost_SlugCollisionLeavesPostUntouched(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakePostRepo{posts: []models.Post{
		publishedPost("first", base, nil),
		publishedPost("second", base.Add(time.Hour), nil),
	}}
	svc := newTestContentService(repo, &fakeCategoryRepo{})

	newSlug := "first"
	newTitle := "Renamed"
	_, err := svc.UpdatePostBySlug(context.Background(), "second", &models.UpdatePostRequest{
		Slug:  &newSlug,
		Title: &newTitle,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	unchanged, err := repo.GetBySlug(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, "second", unchanged.Title)
}

func TestUpdatePost_PartialUpdate(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakePostRepo{posts: []models.Post{publishedPost("story", base, nil)}}
	svc := newTestContentService(repo, &fakeCategoryRepo{})

	newTitle := "Updated Headline"
	view, err := svc.UpdatePostBySlug(context.Background(), "story", &models.UpdatePostRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Updated Headline", view.Title)
	assert.Equal(t, "story", view.Slug)
}

func TestUpdatePost_InvalidStructuredDataRejected(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakePostRepo{posts: []models.Post{publishedPost("story", base, nil)}}
	svc := newTestContentService(repo, &fakeCategoryRepo{})

	bad := "{not json"
	_, err := svc.UpdatePostBySlug(context.Background(), "story", &models.UpdatePostRequest{StructuredData: &bad})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDeletePost(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakePostRepo{posts: []models.Post{publishedPost("story", base, nil)}}
	svc := newTestContentService(repo, &fakeCategoryRepo{})

	require.NoError(t, svc.DeletePostBySlug(context.Background(), "story"))

	err := svc.DeletePostBySlug(context.Background(), "story")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
