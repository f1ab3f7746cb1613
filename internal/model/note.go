package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxNoteLength is the longest note text accepted, in characters.
const MaxNoteLength = 500

// ClientNote is an append-only note attached to a client.
type ClientNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"`
	Text      string             `bson:"text" json:"text"`
	UserID    string             `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func (n *ClientNote) GetID() primitive.ObjectID   { return n.ID }
func (n *ClientNote) SetID(id primitive.ObjectID) { n.ID = id }
func (n *ClientNote) SetCreatedAt(t time.Time)    { n.CreatedAt = t }

// NoteInput is the body of a new note.
type NoteInput struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
