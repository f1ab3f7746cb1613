package repository

import (
	"context"

	"clientbook/internal/model"
	"clientbook/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ITeamRepository defines team persistence. Roster mutations are keyed by
// member uid.
type ITeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	FindByID(ctx context.Context, id string) (*model.Team, error)
	AddMember(ctx context.Context, teamID string, member model.TeamMember) (bool, error)
	RemoveMember(ctx context.Context, teamID, uid string) (bool, error)
}

type TeamRepository struct {
	*generic.MongoBaseRepository[*model.Team]
}

func NewTeamRepository(db *mongo.Database) ITeamRepository {
	return &TeamRepository{generic.NewBaseRepository[*model.Team](db.Collection(CollectionTeams))}
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*model.Team, error) {
	return r.GetByID(ctx, id)
}

// AddMember pushes member unless the roster already holds its uid. It
// reports whether the roster changed.
func (r *TeamRepository) AddMember(ctx context.Context, teamID string, member model.TeamMember) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return false, nil
	}
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": oid, "members.uid": bson.M{"$ne": member.UID}},
		bson.M{"$push": bson.M{"members": member}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveMember pulls every non-owner entry with uid. It reports whether the
// team exists; removing an absent uid is not an error.
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, uid string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return false, nil
	}
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"members": bson.M{"uid": uid, "role": bson.M{"$ne": model.RoleOwner}}}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
