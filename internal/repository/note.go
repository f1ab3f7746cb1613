package repository

import (
	"context"

	"clientbook/internal/model"
	"clientbook/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// INoteRepository defines client note persistence
type INoteRepository interface {
	Create(ctx context.Context, n *model.ClientNote) error
	FindByClient(ctx context.Context, clientID string) ([]*model.ClientNote, error)
	Delete(ctx context.Context, clientID, noteID string) (bool, error)
	DeleteByClient(ctx context.Context, clientID string) (int64, error)
}

type NoteRepository struct {
	*generic.MongoBaseRepository[*model.ClientNote]
}

func NewNoteRepository(db *mongo.Database) INoteRepository {
	return &NoteRepository{generic.NewBaseRepository[*model.ClientNote](db.Collection(CollectionNotes))}
}

// FindByClient returns the notes of a client, newest first.
func (r *NoteRepository) FindByClient(ctx context.Context, clientID string) ([]*model.ClientNote, error) {
	ids := objectIDs(clientID)
	if len(ids) == 0 {
		return []*model.ClientNote{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.Find(ctx, bson.M{"clientId": ids[0]}, opts)
}

// Delete removes a note only when it belongs to clientID.
func (r *NoteRepository) Delete(ctx context.Context, clientID, noteID string) (bool, error) {
	ids := objectIDs(clientID, noteID)
	if len(ids) != 2 {
		return false, nil
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": ids[1], "clientId": ids[0]})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DeleteByClient removes every note of a client and returns the count.
func (r *NoteRepository) DeleteByClient(ctx context.Context, clientID string) (int64, error) {
	ids := objectIDs(clientID)
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.Collection.DeleteMany(ctx, bson.M{"clientId": ids[0]})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
