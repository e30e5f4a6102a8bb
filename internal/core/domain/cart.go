package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrSizeNotOffered  = errors.New("size not offered for product")
	ErrColorNotOffered = errors.New("color not offered for product")
)

// LineKey identifies a cart line item. Two additions with the same
// key merge into one line by summing quantities.
type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

// CartItem holds a snapshot copy of the product, not a live link
// back to the catalog.
type CartItem struct {
	Product  Product
	Quantity int
	Size     string
	Color    string
}

func (i CartItem) Key() LineKey {
	return LineKey{ProductID: i.Product.ID, Size: i.Size, Color: i.Color}
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AddOutcome distinguishes appending a new line item from merging
// into an existing one.
type AddOutcome string

const (
	OutcomeAdded   AddOutcome = "added"
	OutcomeUpdated AddOutcome = "updated"
)
