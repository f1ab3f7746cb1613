package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is an append-only rating left by a user.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func (f *Feedback) GetID() primitive.ObjectID   { return f.ID }
func (f *Feedback) SetID(id primitive.ObjectID) { f.ID = id }
func (f *Feedback) SetCreatedAt(t time.Time)    { f.CreatedAt = t }

// FeedbackInput is a feedback submission.
type FeedbackInput struct {
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"omitempty,max=5000"`
	UserEmail string `json:"userEmail" validate:"required,email"`
}
