package repositories

import (
	"context"
	"time"

	"github.com/newsbridge/backend/internal/apperrors"
	"github.com/newsbridge/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// queryTimeout bounds every store query so a stuck cursor surfaces as an
// infrastructure error instead of hanging the caller.
const queryTimeout = 5 * time.Second

// PostSort selects the ranking applied to a published-post listing.
type PostSort int

const (
	// SortNewest orders by creation time descending.
	SortNewest PostSort = iota
	// SortTrending orders by shares descending, creation time breaking ties.
	SortTrending
	// SortMostViewed orders by views descending, creation time breaking ties.
	SortMostViewed
)

// PostQuery narrows a published-post listing. Zero values mean "no filter".
type PostQuery struct {
	Language   string
	Location   string
	CategoryID *primitive.ObjectID
	VideoOnly  bool
	Sort       PostSort
	Limit      int64
}

// CategoryEngagement is one row of the per-category engagement rollup used
// for the trending-categories block on post detail pages.
type CategoryEngagement struct {
	CategoryID primitive.ObjectID `bson:"_id"`
	TotalViews int64              `bson:"total_views"`
	PostCount  int64              `bson:"post_count"`
}

// PostRepository defines the post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	// GetBySlugAndIncrementViews atomically bumps views_count by one and
	// returns the updated document, so concurrent readers never lose an
	// increment.
	GetBySlugAndIncrementViews(ctx context.Context, slug string) (*models.Post, error)
	FindPublished(ctx context.Context, q PostQuery) ([]models.Post, error)
	UpdateBySlug(ctx context.Context, slug string, fields bson.M) error
	DeleteBySlug(ctx context.Context, slug string) error
	SlugInUse(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error)
	CategoryEngagement(ctx context.Context, limit int64) ([]CategoryEngagement, error)
	TopPostsInCategory(ctx context.Context, categoryID primitive.ObjectID, since time.Time, limit int64) ([]models.Post, error)
}

// MongoPostRepository implements PostRepository for MongoDB.
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository.
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// publishedFilter is the base filter every public listing shares.
func publishedFilter() bson.M {
	return bson.M{
		"publish_status": models.StatusPublished,
		"visibility":     models.VisibilityPublic,
	}
}

func (q PostQuery) filter() bson.M {
	filter := publishedFilter()
	if q.Language != "" {
		filter["language"] = q.Language
	}
	if q.Location != "" {
		filter["location"] = q.Location
	}
	if q.CategoryID != nil {
		filter["category_id"] = *q.CategoryID
	}
	if q.VideoOnly {
		filter["$or"] = bson.A{
			bson.M{"content_type": models.ContentVideo},
			bson.M{"video_url": bson.M{"$nin": bson.A{nil, ""}}},
			bson.M{"videoUrl": bson.M{"$nin": bson.A{nil, ""}}},
		}
	}
	return filter
}

func (q PostQuery) sort() bson.D {
	switch q.Sort {
	case SortTrending:
		return bson.D{{Key: "shares_count", Value: -1}, {Key: "created_at", Value: -1}}
	case SortMostViewed:
		return bson.D{{Key: "views_count", Value: -1}, {Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// Create inserts a new post.
func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrConflict
		}
		return apperrors.Infra("insert post", err)
	}
	return nil
}

// GetBySlug retrieves a post by slug without touching its counters.
func (r *MongoPostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Infra("find post by slug", err)
	}
	post.Normalize()
	return &post, nil
}

// GetBySlugAndIncrementViews finds the post and bumps views_count in one
// atomic operation, returning the post as it looks after the increment.
func (r *MongoPostRepository) GetBySlugAndIncrementViews(ctx context.Context, slug string) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$inc": bson.M{"views_count": 1}}

	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opts).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Infra("increment post views", err)
	}
	post.Normalize()
	return &post, nil
}

// FindPublished lists published, public posts matching q in q's ranking.
func (r *MongoPostRepository) FindPublished(ctx context.Context, q PostQuery) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	findOptions := options.Find().
		SetSort(q.sort()).
		SetMaxTime(queryTimeout)
	if q.Limit > 0 {
		findOptions.SetLimit(q.Limit)
	}

	cursor, err := r.collection.Find(ctx, q.filter(), findOptions)
	if err != nil {
		return nil, apperrors.Infra("find published posts", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, apperrors.Infra("decode published posts", err)
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

// UpdateBySlug applies a $set update to the post with the given slug.
func (r *MongoPostRepository) UpdateBySlug(ctx context.Context, slug string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	fields["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"slug": slug}, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrConflict
		}
		return apperrors.Infra("update post", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBySlug removes the post with the given slug. Hard delete.
func (r *MongoPostRepository) DeleteBySlug(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return apperrors.Infra("delete post", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SlugInUse reports whether a different post already owns the slug.
func (r *MongoPostRepository) SlugInUse(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"slug": slug}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, apperrors.Infra("count posts by slug", err)
	}
	return count > 0, nil
}

// CategoryEngagement aggregates total views and post count per category over
// published, public posts, ranked by views then post count.
func (r *MongoPostRepository) CategoryEngagement(ctx context.Context, limit int64) ([]CategoryEngagement, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: publishedFilter()}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$category_id",
			"total_views": bson.M{"$sum": "$views_count"},
			"post_count":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "total_views", Value: -1},
			{Key: "post_count", Value: -1},
		}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Infra("aggregate category engagement", err)
	}
	defer cursor.Close(ctx)

	rows := []CategoryEngagement{}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, apperrors.Infra("decode category engagement", err)
	}
	return rows, nil
}

// TopPostsInCategory lists the category's published posts created since the
// given time, ranked by views then recency.
func (r *MongoPostRepository) TopPostsInCategory(ctx context.Context, categoryID primitive.ObjectID, since time.Time, limit int64) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := publishedFilter()
	filter["category_id"] = categoryID
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gte": since}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "views_count", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetMaxTime(queryTimeout)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, apperrors.Infra("find top posts in category", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, apperrors.Infra("decode top posts in category", err)
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

// EnsureIndexes creates the unique slug index and the listing indexes.
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "publish_status", Value: 1}, {Key: "visibility", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}, {Key: "views_count", Value: -1}}},
	})
	if err != nil {
		return apperrors.Infra("create post indexes", err)
	}
	return nil
}
