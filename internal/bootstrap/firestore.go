package bootstrap

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
)

func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, errors.New("PROJECTID is required")
	}
	return firestore.NewClient(ctx, projectID)
}
