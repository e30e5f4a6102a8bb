package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/port"
)

var _ port.ThemeSwitcher = (*SessionService)(nil)

// SessionService carries the ambient per-session state the
// storefront UI reads everywhere: the color theme and the signed-in
// user. It is constructed once and injected explicitly, never held
// in package-level state.
type SessionService struct {
	mu     sync.Mutex
	theme  domain.Theme
	user   *domain.User
	themes port.ThemeRepository
}

// NewSession restores the persisted theme preference. Missing or
// unreadable state falls back to the light theme.
func NewSession(ctx context.Context, themes port.ThemeRepository) *SessionService {
	const op = "SessionService.New"

	theme, err := themes.ReadTheme(ctx)
	if err != nil || !theme.Valid() {
		if err != nil {
			slog.With("op", op).Warn("falling back to default theme", "err", err)
		}
		theme = domain.ThemeLight
	}
	return &SessionService{theme: theme, themes: themes}
}

func (s *SessionService) Theme() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *SessionService) SetTheme(ctx context.Context, theme domain.Theme) error {
	const op = "SessionService.SetTheme"

	if !theme.Valid() {
		return fmt.Errorf("%s: %w: %q", op, domain.ErrInvalidTheme, theme)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme
	if err := s.themes.WriteTheme(ctx, theme); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *SessionService) SignIn(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

func (s *SessionService) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *SessionService) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}
