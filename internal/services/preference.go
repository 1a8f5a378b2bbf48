package services

import (
	"context"

	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
	"github.com/GregMSThompson/luongnho/pkg/logger"
)

type preferenceStore interface {
	GetTheme(ctx context.Context, owner string) (models.Theme, bool, error)
	SetTheme(ctx context.Context, owner string, theme models.Theme) error
}

type preferenceService struct {
	store preferenceStore
}

func NewPreferenceService(store preferenceStore) *preferenceService {
	return &preferenceService{store: store}
}

// Theme resolves the owner's theme: stored preference, else the system
// hint, else light. A resolved value is written back so later visits are stable.
func (s *preferenceService) Theme(ctx context.Context, owner string, systemHint models.Theme) (models.Theme, error) {
	theme, ok, err := s.store.GetTheme(ctx, owner)
	if err != nil {
		return "", err
	}
	if ok {
		return theme, nil
	}

	theme = models.ThemeLight
	if systemHint.Valid() {
		theme = systemHint
	}
	if err := s.store.SetTheme(ctx, owner, theme); err != nil {
		return "", err
	}
	return theme, nil
}

func (s *preferenceService) SetTheme(ctx context.Context, owner string, theme models.Theme) (models.Theme, error) {
	if !theme.Valid() {
		return "", errs.NewValidationError("theme must be light or dark")
	}
	if err := s.store.SetTheme(ctx, owner, theme); err != nil {
		return "", err
	}
	logger.FromContext(ctx).Info("theme updated", "theme", theme)
	return theme, nil
}

func (s *preferenceService) ToggleTheme(ctx context.Context, owner string, systemHint models.Theme) (models.Theme, error) {
	current, err := s.Theme(ctx, owner, systemHint)
	if err != nil {
		return "", err
	}
	return s.SetTheme(ctx, owner, current.Toggle())
}
