package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/models"
)

type stubPreferenceService struct {
	hint models.Theme
	set  models.Theme
}

func (s *stubPreferenceService) Theme(ctx context.Context, owner string, systemHint models.Theme) (models.Theme, error) {
	s.hint = systemHint
	return models.ThemeDark, nil
}

func (s *stubPreferenceService) SetTheme(ctx context.Context, owner string, theme models.Theme) (models.Theme, error) {
	s.set = theme
	return theme, nil
}

func (s *stubPreferenceService) ToggleTheme(ctx context.Context, owner string, systemHint models.Theme) (models.Theme, error) {
	s.hint = systemHint
	return models.ThemeLight, nil
}

func TestSystemTheme(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		header string
		want   models.Theme
	}{
		{name: "none", want: ""},
		{name: "query", query: "?system=dark", want: models.ThemeDark},
		{name: "client hint", header: `"dark"`, want: models.ThemeDark},
		{name: "query beats header", query: "?system=light", header: "dark", want: models.ThemeLight},
		{name: "garbage", query: "?system=neon", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Sec-CH-Prefers-Color-Scheme", tc.header)
			}
			if got := systemTheme(req); got != tc.want {
				t.Fatalf("systemTheme = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestThemeRoutes(t *testing.T) {
	svc := &stubPreferenceService{}
	resp := &stubResponseHandler{}
	router := NewPreferenceHandlers(&Deps{ResponseHandler: resp, PreferenceSvc: svc}).ThemeRoutes()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, withUID(httptest.NewRequest(http.MethodGet, "/?system=dark", nil), "uid-1"))
	if svc.hint != models.ThemeDark {
		t.Fatalf("hint = %q", svc.hint)
	}
	if got := resp.writeSuccessData.(dto.ThemeResponse); got.Theme != models.ThemeDark {
		t.Fatalf("theme = %q", got.Theme)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, withUID(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"theme":"light"}`)), "uid-1"))
	if svc.set != models.ThemeLight {
		t.Fatalf("set = %q", svc.set)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, withUID(httptest.NewRequest(http.MethodPost, "/toggle", nil), "uid-1"))
	if got := resp.writeSuccessData.(dto.ThemeResponse); got.Theme != models.ThemeLight {
		t.Fatalf("toggle theme = %q", got.Theme)
	}
}
