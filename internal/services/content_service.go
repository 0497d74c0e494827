package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/newsbridge/backend/internal/models"
	"github.com/newsbridge/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 50
	// minVideoLimit is the floor of the video feed; it always gets at least
	// this many items regardless of the caller's requested limit.
	minVideoLimit = 10
	// neighborWindow caps the posts scanned for prev/next siblings.
	neighborWindow = 100
	// trendingCategoryCount is how many categories the detail page surfaces.
	trendingCategoryCount = 9
	// trendingPostsPerCategory is the per-category post slice size.
	trendingPostsPerCategory = 5
	// trendingRecencyWindow bounds the per-category top-post lookup to
	// recent content.
	trendingRecencyWindow = 30 * 24 * time.Hour
)

// knownLanguages are the content languages the platform publishes in.
// Anything else degrades to "no language filter" rather than erroring.
var knownLanguages = map[string]bool{
	"en": true, "es": true, "fr": true, "de": true,
	"pt": true, "ar": true, "hi": true, "zh": true,
}

// HomeFeed is the four-list home page payload.
type HomeFeed struct {
	Newest     []PostView `json:"newest"`
	Trending   []PostView `json:"trending"`
	MostViewed []PostView `json:"most_viewed"`
	VideoPosts []PostView `json:"video_posts"`
}

// TrendingCategory is one entry of the trending-categories block: a category
// with its engagement rollup and its own top posts.
type TrendingCategory struct {
	Category   CategoryView `json:"category"`
	TotalViews int64        `json:"total_views"`
	PostCount  int64        `json:"post_count"`
	Posts      []PostView   `json:"posts"`
}

// PostDetail is a serialized post enriched with navigation siblings and the
// trending-categories block.
type PostDetail struct {
	PostView
	PrevPost           *PostView          `json:"prev_post"`
	NextPost           *PostView          `json:"next_post"`
	TrendingCategories []TrendingCategory `json:"trending_categories"`
}

// CategoryDetail is a category with its three ranked post slices and the
// active category list for navigation.
type CategoryDetail struct {
	Category        CategoryView   `json:"category"`
	Posts           []PostView     `json:"posts"`
	TrendingPosts   []PostView     `json:"trending_posts"`
	MostViewedPosts []PostView     `json:"most_viewed_posts"`
	AllCategories   []CategoryView `json:"all_categories"`
}

// ContentService aggregates published content for the public pages and
// carries the admin write path for posts.
type ContentService interface {
	GetHomeFeed(ctx context.Context, lang, location string, limit int64) (*HomeFeed, error)
	GetPostDetail(ctx context.Context, slug string) (*PostDetail, error)
	GetCategoryDetail(ctx context.Context, idOrName, lang string) (*CategoryDetail, error)

	CreatePost(ctx context.Context, req *models.CreatePostRequest) (*PostView, error)
	UpdatePostBySlug(ctx context.Context, slug string, req *models.UpdatePostRequest) (*PostView, error)
	DeletePostBySlug(ctx context.Context, slug string) error
}

type contentService struct {
	posts      repositories.PostRepository
	categories repositories.CategoryRepository
	now        func() time.Time
}

// NewContentService creates the content aggregation service.
func NewContentService(posts repositories.PostRepository, categories repositories.CategoryRepository) ContentService {
	return &contentService{
		posts:      posts,
		categories: categories,
		now:        time.Now,
	}
}

// languageFilter degrades unknown or wildcard languages to "no filter".
func languageFilter(lang string) string {
	if !knownLanguages[lang] {
		return ""
	}
	return lang
}

// locationFilter degrades the "all" wildcard to "no filter".
func locationFilter(location string) string {
	if location == "all" {
		return ""
	}
	return location
}

func clampLimit(limit int64) int64 {
	if limit <= 0 {
		return defaultFeedLimit
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}

// GetHomeFeed runs the four ranked queries concurrently. All four must
// succeed; a store failure fails the whole call so callers can tell "no
// content" from "service down".
func (s *contentService) GetHomeFeed(ctx context.Context, lang, location string, limit int64) (*HomeFeed, error) {
	limit = clampLimit(limit)
	base := repositories.PostQuery{
		Language: languageFilter(lang),
		Location: locationFilter(location),
		Limit:    limit,
	}

	videoLimit := limit
	if videoLimit < minVideoLimit {
		videoLimit = minVideoLimit
	}

	feed := &HomeFeed{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q := base
		q.Sort = repositories.SortNewest
		posts, err := s.posts.FindPublished(gctx, q)
		if err != nil {
			return err
		}
		feed.Newest = serializePosts(posts)
		return nil
	})
	g.Go(func() error {
		q := base
		q.Sort = repositories.SortTrending
		posts, err := s.posts.FindPublished(gctx, q)
		if err != nil {
			return err
		}
		feed.Trending = serializePosts(posts)
		return nil
	})
	g.Go(func() error {
		q := base
		q.Sort = repositories.SortMostViewed
		posts, err := s.posts.FindPublished(gctx, q)
		if err != nil {
			return err
		}
		feed.MostViewed = serializePosts(posts)
		return nil
	})
	g.Go(func() error {
		q := base
		q.Sort = repositories.SortNewest
		q.VideoOnly = true
		q.Limit = videoLimit
		posts, err := s.posts.FindPublished(gctx, q)
		if err != nil {
			return err
		}
		feed.VideoPosts = serializePosts(posts)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return feed, nil
}

// GetPostDetail atomically fetches-and-increments the post, then computes
// navigation siblings and the trending-categories block. The auxiliary
// lookups degrade to empty values on failure; only the primary fetch can
// fail the call.
func (s *contentService) GetPostDetail(ctx context.Context, slug string) (*PostDetail, error) {
	post, err := s.posts.GetBySlugAndIncrementViews(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Expand the category join; a miss or failure leaves it unexpanded.
	if category, err := s.categories.GetByID(ctx, post.CategoryID); err == nil {
		post.Category = category
	} else if !isNotFound(err) {
		log.Printf("post detail: category expansion degraded: %v", err)
	}

	detail := &PostDetail{
		PostView:           serializePost(post),
		TrendingCategories: []TrendingCategory{},
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		prev, next, err := s.neighbors(ctx, slug)
		if err != nil {
			log.Printf("post detail: neighbor lookup degraded: %v", err)
			return
		}
		detail.PrevPost = prev
		detail.NextPost = next
	}()

	go func() {
		defer wg.Done()
		trending, err := s.trendingCategories(ctx)
		if err != nil {
			log.Printf("post detail: trending categories degraded: %v", err)
			return
		}
		detail.TrendingCategories = trending
	}()

	wg.Wait()
	return detail, nil
}

// neighbors locates slug in the newest-first listing and returns its
// immediate neighbors in that ordering, nil at either boundary.
func (s *contentService) neighbors(ctx context.Context, slug string) (prev, next *PostView, err error) {
	posts, err := s.posts.FindPublished(ctx, repositories.PostQuery{
		Sort:  repositories.SortNewest,
		Limit: neighborWindow,
	})
	if err != nil {
		return nil, nil, err
	}

	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		if i > 0 {
			v := serializePost(&posts[i-1])
			prev = &v
		}
		if i < len(posts)-1 {
			v := serializePost(&posts[i+1])
			next = &v
		}
		break
	}
	return prev, next, nil
}

// trendingCategories ranks active categories by aggregate engagement and
// attaches each one's recent top posts. The per-category lookups run
// concurrently; a failed lookup leaves that category's list empty.
func (s *contentService) trendingCategories(ctx context.Context) ([]TrendingCategory, error) {
	rows, err := s.posts.CategoryEngagement(ctx, trendingCategoryCount)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []TrendingCategory{}, nil
	}

	ids := make([]primitive.ObjectID, len(rows))
	for i, row := range rows {
		ids[i] = row.CategoryID
	}
	byID, err := s.categories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	since := s.now().Add(-trendingRecencyWindow)
	trending := make([]TrendingCategory, 0, len(rows))
	for _, row := range rows {
		category, ok := byID[row.CategoryID]
		if !ok || !category.IsActive {
			continue
		}
		trending = append(trending, TrendingCategory{
			Category:   *serializeCategory(&category),
			TotalViews: row.TotalViews,
			PostCount:  row.PostCount,
			Posts:      []PostView{},
		})
	}

	var wg sync.WaitGroup
	for i := range trending {
		wg.Add(1)
		go func(tc *TrendingCategory) {
			defer wg.Done()
			id, err := primitive.ObjectIDFromHex(tc.Category.ID)
			if err != nil {
				return
			}
			posts, err := s.posts.TopPostsInCategory(ctx, id, since, trendingPostsPerCategory)
			if err != nil {
				log.Printf("post detail: top posts for category %s degraded: %v", tc.Category.Name, err)
				return
			}
			tc.Posts = serializePosts(posts)
		}(&trending[i])
	}
	wg.Wait()

	return trending, nil
}

// GetCategoryDetail resolves the category by id or case-insensitive name and
// assembles its three ranked slices. A missing category yields an empty
// shell echoing the input name; content may reference categories before they
// exist.
func (s *contentService) GetCategoryDetail(ctx context.Context, idOrName, lang string) (*CategoryDetail, error) {
	detail := &CategoryDetail{
		Posts:           []PostView{},
		TrendingPosts:   []PostView{},
		MostViewedPosts: []PostView{},
		AllCategories:   []CategoryView{},
	}

	// Navigation list failure must not fail the call.
	if all, err := s.categories.ListActive(ctx); err != nil {
		log.Printf("category detail: active category list degraded: %v", err)
	} else {
		views := make([]CategoryView, len(all))
		for i := range all {
			views[i] = *serializeCategory(&all[i])
		}
		detail.AllCategories = views
	}

	category, err := s.resolveCategory(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	if category == nil {
		detail.Category = CategoryView{Name: idOrName}
		return detail, nil
	}
	detail.Category = *serializeCategory(category)

	base := repositories.PostQuery{
		Language:   languageFilter(lang),
		CategoryID: &category.ID,
		Limit:      defaultFeedLimit,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := base
		q.Sort = repositories.SortNewest
		posts, err := s.posts.FindPublished(gctx, q)
		if err != nil {
			return err
		}
		detail.Posts = serializePosts(posts)
		return nil
	})
	g.Go(func() error {
		q := base
		q.Sort = repositories.SortTrending
		posts, err := s.posts.FindPublished(gctx, q)
		if err != nil {
			return err
		}
		detail.TrendingPosts = serializePosts(posts)
		return nil
	})
	g.Go(func() error {
		q := base
		q.Sort = repositories.SortMostViewed
		posts, err := s.posts.FindPublished(gctx, q)
		if err != nil {
			return err
		}
		detail.MostViewedPosts = serializePosts(posts)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// resolveCategory tries the input as a hex id first, then as a
// case-insensitive exact name. A miss returns (nil, nil), not an error.
func (s *contentService) resolveCategory(ctx context.Context, idOrName string) (*models.Category, error) {
	if id, err := primitive.ObjectIDFromHex(idOrName); err == nil {
		category, err := s.categories.GetByID(ctx, id)
		if err == nil {
			return category, nil
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	category, err := s.categories.GetByName(ctx, idOrName)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}
