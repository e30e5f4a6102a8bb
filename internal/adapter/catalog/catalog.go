// Package catalog supplies the session's product catalog. The
// reference data ships as an embedded fixture; a real product API is
// out of scope, so loading simulates the fetch with a fixed delay.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/port"
	"github.com/threadline/storefront/pkg/retry"
)

//go:embed products.json
var fixtureJSON []byte

type productRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"created_at"`
}

var _ port.CatalogProvider = Provider{}

type Provider struct {
	fs          afero.Fs
	fixtureFile string
	delay       time.Duration
}

// NewProvider returns a catalog provider reading fixtureFile, or the
// embedded fixture when fixtureFile is empty. delay is the simulated
// network latency applied once per load.
func NewProvider(fsys afero.Fs, fixtureFile string, delay time.Duration) Provider {
	return Provider{fs: fsys, fixtureFile: fixtureFile, delay: delay}
}

func (p Provider) Catalog(ctx context.Context) ([]domain.Product, error) {
	const op = "catalog.Provider.Catalog"

	if err := p.wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	raw := fixtureJSON
	if p.fixtureFile != "" {
		var err error
		raw, err = p.readFixtureFile(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	var recs []productRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("%s: failed to decode fixture: %w", op, err)
	}

	ps := make([]domain.Product, 0, len(recs))
	for _, rec := range recs {
		ps = append(ps, rec.toDomain())
	}
	return ps, nil
}

func (p Provider) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p Provider) readFixtureFile(ctx context.Context) ([]byte, error) {
	cfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.LinearBackoff(50 * time.Millisecond),
	}
	return retry.DoWithResult(ctx, cfg, func() ([]byte, error) {
		return afero.ReadFile(p.fs, p.fixtureFile)
	})
}

func (rec productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       rec.Price,
		Category:    domain.Category(rec.Category),
		Images:      rec.Images,
		Sizes:       rec.Sizes,
		Colors:      rec.Colors,
		Stock:       rec.Stock,
		Rating:      rec.Rating,
		ReviewCount: rec.ReviewCount,
		Featured:    rec.Featured,
		CreatedAt:   rec.CreatedAt,
	}
}
