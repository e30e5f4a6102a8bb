package port

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/threadline/storefront/internal/core/domain"
)

// CatalogProvider supplies the session catalog, standing in for the
// network fetch of a real product API.
type CatalogProvider interface {
	Catalog(context.Context) ([]domain.Product, error)
}

type ProductsBrowser interface {
	Browse(context.Context, domain.FilterConfig) ([]domain.Product, error)
}

type ProductFinder interface {
	FindProduct(ctx context.Context, productID string) (domain.Product, error)
}

type CartMutator interface {
	Add(ctx context.Context, p domain.Product, quantity int, size, color string) (domain.AddOutcome, error)
	Remove(context.Context, domain.LineKey) error
	SetQuantity(ctx context.Context, key domain.LineKey, quantity int) error
	Clear(context.Context) error
}

type CartReader interface {
	Items() []domain.CartItem
	Total() decimal.Decimal
	ItemCount() int
}

// CartRepository persists the whole cart under a fixed key,
// write-through after every mutation.
type CartRepository interface {
	ReadItems(context.Context) ([]domain.CartItem, error)
	WriteItems(context.Context, []domain.CartItem) error
}

type EventSink interface {
	Record(context.Context, domain.SessionEvent) error
}

type ThemeRepository interface {
	ReadTheme(context.Context) (domain.Theme, error)
	WriteTheme(context.Context, domain.Theme) error
}

type ThemeSwitcher interface {
	Theme() domain.Theme
	SetTheme(context.Context, domain.Theme) error
}
