package repository

import (
	"context"

	"clientbook/internal/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// MailRepository writes outbound messages to the mail queue collection read
// by the delivery worker.
type MailRepository struct {
	collection *mongo.Collection
}

func NewMailRepository(db *mongo.Database, collection string) *MailRepository {
	if collection == "" {
		collection = CollectionMail
	}
	return &MailRepository{collection: db.Collection(collection)}
}

func (r *MailRepository) Enqueue(ctx context.Context, msg *model.MailMessage) error {
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}
