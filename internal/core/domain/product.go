package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryAll         Category = "all"
	CategoryMen         Category = "men"
	CategoryWomen       Category = "women"
	CategoryKids        Category = "kids"
	CategoryAccessories Category = "accessories"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAll, CategoryMen, CategoryWomen, CategoryKids, CategoryAccessories:
		return true
	}
	return false
}

// Product is immutable for the lifetime of a session once the
// catalog is loaded.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    Category
	Images      []string
	Sizes       []string
	Colors      []string
	Stock       int
	Rating      float64
	ReviewCount int
	Featured    bool
	CreatedAt   time.Time
}

func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
