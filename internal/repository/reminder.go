package repository

import (
	"context"

	"clientbook/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IReminderRepository remembers which appointments were already reminded.
type IReminderRepository interface {
	MarkSent(ctx context.Context, entry *model.ReminderLog) (bool, error)
	Release(ctx context.Context, key string) error
}

type ReminderRepository struct {
	collection *mongo.Collection
}

func NewReminderRepository(db *mongo.Database) IReminderRepository {
	return &ReminderRepository{collection: db.Collection(CollectionReminders)}
}

// MarkSent claims entry.Key. It returns false when the key was already
// claimed, so concurrent sweeps send one reminder.
func (r *ReminderRepository) MarkSent(ctx context.Context, entry *model.ReminderLog) (bool, error) {
	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Release drops a claim whose reminder could not be queued.
func (r *ReminderRepository) Release(ctx context.Context, key string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
