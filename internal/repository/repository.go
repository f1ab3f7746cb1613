package repository

import "go.mongodb.org/mongo-driver/mongo"

// Repositories bundles every store the services depend on.
type Repositories struct {
	Settings  ISettingsRepository
	Teams     ITeamRepository
	Clients   IClientRepository
	Notes     INoteRepository
	Feedback  IFeedbackRepository
	Reminders IReminderRepository
}

// NewMongo builds the Mongo-backed repositories over db.
func NewMongo(db *mongo.Database) *Repositories {
	return &Repositories{
		Settings:  NewSettingsRepository(db),
		Teams:     NewTeamRepository(db),
		Clients:   NewClientRepository(db),
		Notes:     NewNoteRepository(db),
		Feedback:  NewFeedbackRepository(db),
		Reminders: NewReminderRepository(db),
	}
}
