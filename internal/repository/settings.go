package repository

import (
	"context"

	"clientbook/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ISettingsRepository defines user settings persistence
type ISettingsRepository interface {
	FindByID(ctx context.Context, userID string) (*model.UserSettings, error)
	FindByEmail(ctx context.Context, email string) (*model.UserSettings, error)
	Merge(ctx context.Context, userID string, patch *model.SettingsPatch) error
	CreateIfAbsent(ctx context.Context, s *model.UserSettings) (bool, error)
	List(ctx context.Context) ([]*model.UserSettings, error)
}

// SettingsRepository stores one document per user, keyed by user id.
type SettingsRepository struct {
	collection *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) ISettingsRepository {
	return &SettingsRepository{collection: db.Collection(CollectionSettings)}
}

func (r *SettingsRepository) FindByID(ctx context.Context, userID string) (*model.UserSettings, error) {
	return r.findOne(ctx, bson.M{"_id": userID})
}

func (r *SettingsRepository) FindByEmail(ctx context.Context, email string) (*model.UserSettings, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *SettingsRepository) findOne(ctx context.Context, filter bson.M) (*model.UserSettings, error) {
	var s *model.UserSettings
	err := r.collection.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// Merge writes only the fields present in patch, creating the document when
// it does not exist. An empty patch writes nothing.
func (r *SettingsRepository) Merge(ctx context.Context, userID string, patch *model.SettingsPatch) error {
	set, unset := settingsUpdate(patch)
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if len(update) == 0 {
		return nil
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update, options.Update().SetUpsert(true))
	return err
}

// CreateIfAbsent inserts s unless a document with the same id exists. It
// reports whether the document was created.
func (r *SettingsRepository) CreateIfAbsent(ctx context.Context, s *model.UserSettings) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": s.UserID},
		bson.M{"$setOnInsert": s},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// lost a race against a concurrent insert of the same user
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (r *SettingsRepository) List(ctx context.Context) ([]*model.UserSettings, error) {
	cur, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	out := []*model.UserSettings{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// settingsUpdate splits a patch into $set and $unset documents. A TeamID
// holding "" removes the team pointer.
func settingsUpdate(p *model.SettingsPatch) (bson.M, bson.M) {
	set, unset := bson.M{}, bson.M{}
	if p == nil {
		return set, unset
	}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.CompanyName != nil {
		set["companyName"] = *p.CompanyName
	}
	if p.Timezone != nil {
		set["timezone"] = *p.Timezone
	}
	if p.AccountType != nil {
		set["accountType"] = *p.AccountType
	}
	if p.NotificationHours != nil {
		set["notificationHours"] = *p.NotificationHours
	}
	if p.TeamID != nil {
		if *p.TeamID == "" {
			unset["teamId"] = ""
		} else {
			set["teamId"] = *p.TeamID
		}
	}
	return set, unset
}
