package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/port"
)

// cartKey is the fixed storage key the whole cart is serialized
// under. A format change requires a full-store reset.
const cartKey = "cart"

// ErrMalformedCart marks persisted cart content that cannot be
// decoded. Callers treat it as an absent cart.
var ErrMalformedCart = errors.New("malformed persisted cart")

type (
	cartRecord struct {
		Product  productRecord `json:"product"`
		Quantity int           `json:"quantity"`
		Size     string        `json:"size"`
		Color    string        `json:"color"`
	}

	productRecord struct {
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
)

var _ port.CartRepository = CartRepository{}

type CartRepository struct {
	store Store
}

func NewCartRepository(store Store) CartRepository {
	return CartRepository{store}
}

// ReadItems restores the persisted cart. An absent key yields an
// empty cart and no error; undecodable content yields
// [ErrMalformedCart].
func (r CartRepository) ReadItems(ctx context.Context) ([]domain.CartItem, error) {
	const op = "CartRepository.ReadItems"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b, err := r.store.Get(cartKey)
	if err != nil {
		if errors.Is(err, ErrNoValue) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var recs []cartRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrMalformedCart, err)
	}

	items := make([]domain.CartItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, rec.toDomain())
	}
	return items, nil
}

func (r CartRepository) WriteItems(ctx context.Context, items []domain.CartItem) error {
	const op = "CartRepository.WriteItems"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	recs := make([]cartRecord, 0, len(items))
	for _, item := range items {
		recs = append(recs, toRecord(item))
	}

	b, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.store.Set(cartKey, b); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (rec cartRecord) toDomain() domain.CartItem {
	p := rec.Product
	return domain.CartItem{
		Product: domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    domain.Category(p.Category),
			Images:      p.Images,
			Sizes:       p.Sizes,
			Colors:      p.Colors,
			Stock:       p.Stock,
			Rating:      p.Rating,
			ReviewCount: p.ReviewCount,
			Featured:    p.Featured,
			CreatedAt:   p.CreatedAt,
		},
		Quantity: rec.Quantity,
		Size:     rec.Size,
		Color:    rec.Color,
	}
}

func toRecord(item domain.CartItem) cartRecord {
	p := item.Product
	return cartRecord{
		Product: productRecord{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    string(p.Category),
			Images:      p.Images,
			Sizes:       p.Sizes,
			Colors:      p.Colors,
			Stock:       p.Stock,
			Rating:      p.Rating,
			ReviewCount: p.ReviewCount,
			Featured:    p.Featured,
			CreatedAt:   p.CreatedAt,
		},
		Quantity: item.Quantity,
		Size:     item.Size,
		Color:    item.Color,
	}
}
