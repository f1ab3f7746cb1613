package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team roles
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// TeamMember is a roster entry, keyed by UID.
type TeamMember struct {
	UID   string `bson:"uid" json:"uid"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
	Role  string `bson:"role" json:"role"`
}

// Team groups users that share client visibility. Exactly one member has
// RoleOwner and it matches OwnerID.
type Team struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   string             `bson:"ownerId" json:"ownerId"`
	Members   []TeamMember       `bson:"members" json:"members"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func (t *Team) GetID() primitive.ObjectID   { return t.ID }
func (t *Team) SetID(id primitive.ObjectID) { t.ID = id }
func (t *Team) SetCreatedAt(ts time.Time)   { t.CreatedAt = ts }

// Member returns the roster entry for uid.
func (t *Team) Member(uid string) (TeamMember, bool) {
	for _, m := range t.Members {
		if m.UID == uid {
			return m, true
		}
	}
	return TeamMember{}, false
}

// IsOwner reports whether uid owns the team.
func (t *Team) IsOwner(uid string) bool {
	return t.OwnerID == uid
}

// InviteRequest names the user to add to the caller's team.
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}
