package localstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
)

type PreferenceStore struct {
	db *sql.DB
}

func NewPreferenceStore(db *sql.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

func (s *PreferenceStore) GetTheme(ctx context.Context, owner string) (models.Theme, bool, error) {
	var theme string
	err := s.db.QueryRowContext(ctx, `SELECT theme FROM preferences WHERE owner = ?`, owner).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.NewDatabaseError("read", "failed to get preferences", err)
	}
	if t := models.Theme(theme); t.Valid() {
		return t, true, nil
	}
	return "", false, nil
}

func (s *PreferenceStore) SetTheme(ctx context.Context, owner string, theme models.Theme) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (owner, theme, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(owner) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at`,
		owner, string(theme), time.Now().UTC().Format(timeLayout))
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save theme", err)
	}
	return nil
}
