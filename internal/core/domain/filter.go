package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortNewest:
		return true
	}
	return false
}

var (
	ErrInvalidCategory    = errors.New("unknown category")
	ErrInvalidSubcategory = errors.New("unknown subcategory")
	ErrInvalidSortKey     = errors.New("unknown sort key")
	ErrInvalidPriceRange  = errors.New("invalid price range")
	ErrInvalidRating      = errors.New("rating threshold out of range")
)

// DefaultPriceMax caps the default browsing price range, matching
// the price slider bounds of the storefront UI.
var DefaultPriceMax = decimal.NewFromInt(200)

// FilterConfig is the complete set of narrowing and sorting criteria
// for one browse request. It is a closed record: every recognized
// dimension has its own field and is validated independently.
type FilterConfig struct {
	Search      string
	Category    Category
	Subcategory Subcategory
	Sizes       []string
	Colors      []string
	PriceMin    decimal.Decimal
	PriceMax    decimal.Decimal
	MinRating   float64
	Sort        SortKey
}

// NewFilterConfig returns the configuration an untouched filter
// panel represents: everything matches, featured products first.
func NewFilterConfig() FilterConfig {
	return FilterConfig{
		Category:    CategoryAll,
		Subcategory: SubcategoryAll,
		PriceMin:    decimal.Zero,
		PriceMax:    DefaultPriceMax,
		Sort:        SortFeatured,
	}
}

func (c FilterConfig) Validate() error {
	if !c.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c.Category)
	}
	if !c.Subcategory.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSubcategory, c.Subcategory)
	}
	if !c.Sort.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, c.Sort)
	}
	if c.PriceMin.IsNegative() || c.PriceMax.LessThan(c.PriceMin) {
		return fmt.Errorf("%w: [%s, %s]", ErrInvalidPriceRange, c.PriceMin, c.PriceMax)
	}
	if c.MinRating < 0 || c.MinRating > 5 {
		return fmt.Errorf("%w: %v", ErrInvalidRating, c.MinRating)
	}
	return nil
}
