package httphandler

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/threadline/storefront/internal/core/domain"
)

type (
	Product struct {
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

	ProductsResponse struct {
		Products      []Product `json:"products"`
		ProductsFound int       `json:"products_found"`
	}
)

type (
	CartLine struct {
		Product  Product         `json:"product"`
		Quantity int             `json:"quantity"`
		Size     string          `json:"size"`
		Color    string          `json:"color"`
		Subtotal decimal.Decimal `json:"subtotal"`
	}

	CartResponse struct {
		Items     []CartLine      `json:"items"`
		Total     decimal.Decimal `json:"total"`
		ItemCount int             `json:"item_count"`
	}

	AddItemRequest struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}

	AddItemResponse struct {
		Outcome   string `json:"outcome"`
		ItemCount int    `json:"item_count"`
	}

	SetQuantityRequest struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
		Quantity  int    `json:"quantity"`
	}
)

type ThemeBody struct {
	Theme string `json:"theme"`
}

func toWireProduct(p domain.Product) Product {
	return Product{
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
	}
}

func toWireProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toWireProduct(p))
	}
	return out
}

func toWireCartLine(item domain.CartItem) CartLine {
	return CartLine{
		Product:  toWireProduct(item.Product),
		Quantity: item.Quantity,
		Size:     item.Size,
		Color:    item.Color,
		Subtotal: item.Subtotal(),
	}
}
