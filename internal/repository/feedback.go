package repository

import (
	"context"

	"clientbook/internal/model"
	"clientbook/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IFeedbackRepository defines the append-only feedback log
type IFeedbackRepository interface {
	Create(ctx context.Context, f *model.Feedback) error
	FindAll(ctx context.Context) ([]*model.Feedback, error)
}

type FeedbackRepository struct {
	*generic.MongoBaseRepository[*model.Feedback]
}

func NewFeedbackRepository(db *mongo.Database) IFeedbackRepository {
	return &FeedbackRepository{generic.NewBaseRepository[*model.Feedback](db.Collection(CollectionFeedback))}
}

// FindAll returns every entry, newest first.
func (r *FeedbackRepository) FindAll(ctx context.Context) ([]*model.Feedback, error) {
	return r.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
}
