package localstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/port"
)

const themeKey = "theme"

var _ port.ThemeRepository = ThemeRepository{}

// ThemeRepository persists the session's theme preference as a bare
// string under a fixed key.
type ThemeRepository struct {
	store Store
}

func NewThemeRepository(store Store) ThemeRepository {
	return ThemeRepository{store}
}

func (r ThemeRepository) ReadTheme(ctx context.Context) (domain.Theme, error) {
	const op = "ThemeRepository.ReadTheme"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	b, err := r.store.Get(themeKey)
	if err != nil {
		if errors.Is(err, ErrNoValue) {
			return domain.ThemeLight, nil
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return domain.Theme(strings.TrimSpace(string(b))), nil
}

func (r ThemeRepository) WriteTheme(ctx context.Context, theme domain.Theme) error {
	const op = "ThemeRepository.WriteTheme"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.store.Set(themeKey, []byte(theme)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
