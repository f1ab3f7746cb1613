package generic

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity is a document whose id and creation time are assigned on insert
type Entity interface {
	GetID() primitive.ObjectID
	SetID(primitive.ObjectID)
	SetCreatedAt(time.Time)
}
