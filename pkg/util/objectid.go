package util

import (
	"clientbook/internal/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID converts a hex document id, reporting a malformed one as a
// validation error on field.
func ParseID(field, id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid(field, "malformed id")
	}
	return objID, nil
}
