package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spotsolve-be/models"
)

var ErrNotFound = errors.New("not found")

// IssueFilter narrows an issue listing. Zero fields do not filter.
type IssueFilter struct {
	UserID          *primitive.ObjectID
	Status          models.IssueStatus
	Department      models.Department
	Search          string
	WithCoordinates bool
	Skip            int64
	Limit           int64
}

func (f IssueFilter) query() bson.M {
	q := bson.M{}
	if f.UserID != nil {
		q["userId"] = *f.UserID
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Department != "" {
		q["department"] = f.Department
	}
	if f.Search != "" {
		q["$or"] = []bson.M{
			{"title": bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}}},
			{"description": bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}}},
		}
	}
	if f.WithCoordinates {
		q["latitude"] = bson.M{"$exists": true, "$ne": nil}
		q["longitude"] = bson.M{"$exists": true, "$ne": nil}
	}
	return q
}

type IssueRepository struct {
	coll *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{coll: db.Collection("issues")}
}

// EnsureIndexes creates the indexes the listing queries rely on.
func (r *IssueRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create issue indexes: %w", err)
	}
	return nil
}

// List returns issues matching f, newest first.
func (r *IssueRepository) List(ctx context.Context, f IssueFilter) ([]models.Issue, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := r.coll.Find(ctx, f.query(), opts)
	if err != nil {
		return nil, fmt.Errorf("find issues: %w", err)
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return issues, nil
}

// Count returns the number of issues matching f, ignoring paging.
func (r *IssueRepository) Count(ctx context.Context, f IssueFilter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, f.query())
	if err != nil {
		return 0, fmt.Errorf("count issues: %w", err)
	}
	return n, nil
}

func (r *IssueRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	var issue models.Issue
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find issue %s: %w", id.Hex(), err)
	}
	return &issue, nil
}

func (r *IssueRepository) Create(ctx context.Context, issue *models.Issue) error {
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, issue); err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

// UpdateStatus sets the status and stamps updatedAt.
func (r *IssueRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("update issue %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
