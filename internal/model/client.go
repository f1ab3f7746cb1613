package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client status values
const (
	ClientStatusActive   = "Active"
	ClientStatusInactive = "Inactive"
)

// Layouts for the timezone-naive date strings stored on a client.
const (
	DateLayout        = "2006-01-02"
	AppointmentLayout = "2006-01-02T15:04"
)

// Interests a client can be tagged with
var Interests = []string{"services", "suppliers", "customers", "learning", "promotion", "mentoring"}

// Client is a client/appointment record. Visibility follows TeamID when set,
// otherwise UserID only.
type Client struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Phone               string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address             string             `bson:"address,omitempty" json:"address,omitempty"`
	PostalCode          string             `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Nationality         string             `bson:"nationality,omitempty" json:"nationality,omitempty"`
	DateOfBirth         string             `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	AppointmentDateTime string             `bson:"appointmentDateTime,omitempty" json:"appointmentDateTime,omitempty"`
	Interests           []string           `bson:"interests,omitempty" json:"interests,omitempty"`
	Status              string             `bson:"status" json:"status"`

	UserID    string    `bson:"userId" json:"userId"`
	TeamID    *string   `bson:"teamId" json:"teamId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

func (c *Client) GetID() primitive.ObjectID   { return c.ID }
func (c *Client) SetID(id primitive.ObjectID) { c.ID = id }
func (c *Client) SetCreatedAt(t time.Time)    { c.CreatedAt = t }

// AppointmentIn interprets the naive appointment datetime in loc.
func (c *Client) AppointmentIn(loc *time.Location) (time.Time, bool) {
	if c.AppointmentDateTime == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(AppointmentLayout, c.AppointmentDateTime, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ClientInput carries the user-editable fields of a client.
type ClientInput struct {
	Name                string   `json:"name" validate:"required,min=2,max=200"`
	Email               string   `json:"email" validate:"required,email,max=254"`
	Phone               string   `json:"phone" validate:"omitempty,max=40"`
	Address             string   `json:"address" validate:"omitempty,max=300"`
	PostalCode          string   `json:"postalCode" validate:"omitempty,max=20"`
	Nationality         string   `json:"nationality" validate:"omitempty,max=100"`
	DateOfBirth         string   `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	AppointmentDateTime string   `json:"appointmentDateTime" validate:"omitempty,datetime=2006-01-02T15:04"`
	Interests           []string `json:"interests" validate:"omitempty,dive,oneof=services suppliers customers learning promotion mentoring"`
	Status              string   `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// Apply copies the input onto c, leaving ownership fields alone.
func (in *ClientInput) Apply(c *Client) {
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.PostalCode = in.PostalCode
	c.Nationality = in.Nationality
	c.DateOfBirth = in.DateOfBirth
	c.AppointmentDateTime = in.AppointmentDateTime
	c.Interests = in.Interests
	if in.Status != "" {
		c.Status = in.Status
	}
}

// ContactInput is an e-mail composed for a client.
type ContactInput struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=20000"`
}
