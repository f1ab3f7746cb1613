package notify

import (
	"context"
	"fmt"

	"clientbook/internal/model"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// FirestoreQueue writes to a Firestore collection watched by the Firebase
// Trigger Email extension.
type FirestoreQueue struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreQueue connects to projectID. Without a credentials file the
// application default credentials are used.
func NewFirestoreQueue(ctx context.Context, projectID, credentialsFile, collection string) (*FirestoreQueue, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}
	if collection == "" {
		collection = "mail"
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreQueue{client: client, collection: collection}, nil
}

func (q *FirestoreQueue) Enqueue(ctx context.Context, msg *model.MailMessage) error {
	_, _, err := q.client.Collection(q.collection).Add(ctx, msg)
	return err
}

func (q *FirestoreQueue) Close() error {
	return q.client.Close()
}
