package repository

import (
	"context"

	"clientbook/internal/model"
	"clientbook/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IClientRepository defines client persistence. Ordering of the Find*
// results is not guaranteed.
type IClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, id string) (*model.Client, error)
	FindByTeam(ctx context.Context, teamID string) ([]*model.Client, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Client, error)
	Update(ctx context.Context, c *model.Client) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ClientRepository struct {
	*generic.MongoBaseRepository[*model.Client]
}

func NewClientRepository(db *mongo.Database) IClientRepository {
	return &ClientRepository{generic.NewBaseRepository[*model.Client](db.Collection(CollectionClients))}
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	return r.GetByID(ctx, id)
}

func (r *ClientRepository) FindByTeam(ctx context.Context, teamID string) ([]*model.Client, error) {
	return r.Find(ctx, bson.M{"teamId": teamID})
}

func (r *ClientRepository) FindByUser(ctx context.Context, userID string) ([]*model.Client, error) {
	return r.Find(ctx, bson.M{"userId": userID})
}

// Update overwrites the editable fields of c. The id, owner, team and
// creation time are never written. It reports whether c exists.
func (r *ClientRepository) Update(ctx context.Context, c *model.Client) (bool, error) {
	set, unset := clientUpdate(c)
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": c.ID}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.DeleteByID(ctx, id)
}

// clientUpdate builds the $set and $unset documents for an overwrite. Empty
// optional fields are removed rather than stored as blanks.
func clientUpdate(c *model.Client) (bson.M, bson.M) {
	set := bson.M{
		"name":   c.Name,
		"email":  c.Email,
		"status": c.Status,
	}
	unset := bson.M{}
	optional := map[string]string{
		"phone":               c.Phone,
		"address":             c.Address,
		"postalCode":          c.PostalCode,
		"nationality":         c.Nationality,
		"dateOfBirth":         c.DateOfBirth,
		"appointmentDateTime": c.AppointmentDateTime,
	}
	for field, v := range optional {
		if v == "" {
			unset[field] = ""
		} else {
			set[field] = v
		}
	}
	if len(c.Interests) == 0 {
		unset["interests"] = ""
	} else {
		set["interests"] = c.Interests
	}
	return set, unset
}

// objectIDs converts hex ids, skipping malformed ones.
func objectIDs(ids ...string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
