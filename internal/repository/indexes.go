package repository

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	CollectionClients   = "clients"
	CollectionNotes     = "notes"
	CollectionSettings  = "userSettings"
	CollectionTeams     = "teams"
	CollectionFeedback  = "feedback"
	CollectionMail      = "mail"
	CollectionReminders = "reminders"
)

var indexes = map[string][]mongo.IndexModel{
	CollectionSettings: {
		{Keys: bson.D{{Key: "email", Value: 1}}},
	},
	CollectionClients: {
		{Keys: bson.D{{Key: "teamId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	},
	CollectionNotes: {
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "createdAt", Value: -1}}},
	},
	CollectionTeams: {
		{Keys: bson.D{{Key: "members.uid", Value: 1}}},
	},
	CollectionFeedback: {
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	},
	CollectionReminders: {
		{Keys: bson.D{{Key: "sentAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(60 * 60 * 24 * 90)},
	},
}

// EnsureIndexes creates the secondary indexes every query relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range indexes {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		log.Printf("[indexes] %s: %v", coll, names)
	}
	return nil
}
