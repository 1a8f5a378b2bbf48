package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
)

type preferenceDoc struct {
	Theme     models.Theme `firestore:"theme"`
	UpdatedAt time.Time    `firestore:"updatedAt"`
}

type preferenceStore struct {
	client *firestore.Client
}

func NewPreferenceStore(client *firestore.Client) *preferenceStore {
	return &preferenceStore{client: client}
}

func (s *preferenceStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid).Collection("preferences").Doc("display")
}

// GetTheme returns the stored theme and whether one was stored at all.
func (s *preferenceStore) GetTheme(ctx context.Context, uid string) (models.Theme, bool, error) {
	snap, err := s.doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.NewDatabaseError("read", "failed to get preferences", err)
	}

	var pref preferenceDoc
	if err := snap.DataTo(&pref); err != nil {
		return "", false, errs.NewDatabaseError("read", "failed to parse preferences", err)
	}
	if !pref.Theme.Valid() {
		return "", false, nil
	}
	return pref.Theme, true, nil
}

func (s *preferenceStore) SetTheme(ctx context.Context, uid string, theme models.Theme) error {
	// MergeAll only accepts map data
	_, err := s.doc(uid).Set(ctx, map[string]any{
		"theme":     string(theme),
		"updatedAt": time.Now(),
	}, firestore.MergeAll)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save theme", err)
	}
	return nil
}
