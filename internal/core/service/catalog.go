package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/port"
)

var ErrProductNotFound = errors.New("product not found")

var _ port.ProductsBrowser = (*CatalogService)(nil)
var _ port.ProductFinder = (*CatalogService)(nil)

// CatalogService holds the catalog loaded once at session start and
// answers browse requests by running the filter pipeline over it.
type CatalogService struct {
	products []domain.Product
	byID     map[string]domain.Product
}

func NewCatalog(ctx context.Context, provider port.CatalogProvider) (*CatalogService, error) {
	const op = "CatalogService.New"

	ps, err := provider.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[string]domain.Product, len(ps))
	for _, p := range ps {
		byID[p.ID] = p
	}

	slog.With("op", op).Info("catalog is loaded", "nProducts", len(ps))
	return &CatalogService{products: ps, byID: byID}, nil
}

// Browse validates the filter configuration and returns the derived,
// ordered product list. An empty result is a valid outcome, not an
// error.
func (s *CatalogService) Browse(
	ctx context.Context, cfg domain.FilterConfig,
) ([]domain.Product, error) {
	const op = "CatalogService.Browse"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ApplyFilters(s.products, cfg), nil
}

func (s *CatalogService) FindProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "CatalogService.FindProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, ok := s.byID[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("%s: %w: %s", op, ErrProductNotFound, productID)
	}
	return p, nil
}
