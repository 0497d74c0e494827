package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/newsbridge/backend/internal/models"
	"github.com/newsbridge/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakePostRepo is an in-memory PostRepository mirroring the Mongo query
// semantics closely enough for service tests.
type fakePostRepo struct {
	mu    sync.Mutex
	posts []models.Post

	failFind       error
	failEngagement error
}

func (f *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == post.Slug {
			return apperrors.ErrConflict
		}
	}
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostRepo) GetBySlug(_ context.Context, slug string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakePostRepo) GetBySlugAndIncrementViews(_ context.Context, slug string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			f.posts[i].ViewsCount++
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakePostRepo) FindPublished(_ context.Context, q repositories.PostQuery) ([]models.Post, error) {
	if f.failFind != nil {
		return nil, f.failFind
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Post
	for _, p := range f.posts {
		if p.PublishStatus != models.StatusPublished || p.Visibility != models.VisibilityPublic {
			continue
		}
		if q.Language != "" && p.Language != q.Language {
			continue
		}
		if q.Location != "" && p.Location != q.Location {
			continue
		}
		if q.CategoryID != nil && p.CategoryID != *q.CategoryID {
			continue
		}
		if q.VideoOnly && !p.HasVideo() {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch q.Sort {
		case repositories.SortTrending:
			if out[i].SharesCount != out[j].SharesCount {
				return out[i].SharesCount > out[j].SharesCount
			}
		case repositories.SortMostViewed:
			if out[i].ViewsCount != out[j].ViewsCount {
				return out[i].ViewsCount > out[j].ViewsCount
			}
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakePostRepo) UpdateBySlug(_ context.Context, slug string, fields bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			if title, ok := fields["title"].(string); ok {
				f.posts[i].Title = title
			}
			if newSlug, ok := fields["slug"].(string); ok {
				f.posts[i].Slug = newSlug
			}
			f.posts[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakePostRepo) DeleteBySlug(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakePostRepo) SlugInUse(_ context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug && p.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostRepo) CategoryEngagement(_ context.Context, limit int64) ([]repositories.CategoryEngagement, error) {
	if f.failEngagement != nil {
		return nil, f.failEngagement
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	byCategory := map[primitive.ObjectID]*repositories.CategoryEngagement{}
	for _, p := range f.posts {
		if p.PublishStatus != models.StatusPublished || p.Visibility != models.VisibilityPublic {
			continue
		}
		row, ok := byCategory[p.CategoryID]
		if !ok {
			row = &repositories.CategoryEngagement{CategoryID: p.CategoryID}
			byCategory[p.CategoryID] = row
		}
		row.TotalViews += p.ViewsCount
		row.PostCount++
	}

	rows := make([]repositories.CategoryEngagement, 0, len(byCategory))
	for _, row := range byCategory {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalViews != rows[j].TotalViews {
			return rows[i].TotalViews > rows[j].TotalViews
		}
		return rows[i].PostCount > rows[j].PostCount
	})
	if limit > 0 && int64(len(rows)) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakePostRepo) TopPostsInCategory(ctx context.Context, categoryID primitive.ObjectID, since time.Time, limit int64) ([]models.Post, error) {
	posts, err := f.FindPublished(ctx, repositories.PostQuery{
		CategoryID: &categoryID,
		Sort:       repositories.SortMostViewed,
	})
	if err != nil {
		return nil, err
	}
	var out []models.Post
	for _, p := range posts {
		if !since.IsZero() && p.CreatedAt.Before(since) {
			continue
		}
		out = append(out, p)
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeCategoryRepo is an in-memory CategoryRepository.
type fakeCategoryRepo struct {
	categories []models.Category
	failList   error
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCategoryRepo) GetByName(_ context.Context, name string) (*models.Category, error) {
	for i := range f.categories {
		if strings.EqualFold(f.categories[i].Name, name) {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCategoryRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Category, error) {
	byID := map[primitive.ObjectID]models.Category{}
	for _, id := range ids {
		for i := range f.categories {
			if f.categories[i].ID == id {
				byID[id] = f.categories[i]
			}
		}
	}
	return byID, nil
}

func (f *fakeCategoryRepo) ListActive(_ context.Context) ([]models.Category, error) {
	if f.failList != nil {
		return nil, f.failList
	}
	var out []models.Category
	for _, c := range f.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}
