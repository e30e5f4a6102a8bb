package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadline/storefront/internal/adapter/httphandler"
	"github.com/threadline/storefront/internal/adapter/localstore"
	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/service"
)

type stubProvider struct {
	products []domain.Product
}

func (p stubProvider) Catalog(context.Context) ([]domain.Product, error) {
	return p.products, nil
}

// stubCartReader reports aggregates that disagree with its lines, so
// a response computed from the line snapshot is distinguishable from
// one assembled out of separate reader calls.
type stubCartReader struct {
	items []domain.CartItem
}

func (r stubCartReader) Items() []domain.CartItem { return r.items }
func (r stubCartReader) Total() decimal.Decimal   { return decimal.NewFromInt(-1) }
func (r stubCartReader) ItemCount() int           { return -1 }

func catalogFixture() []domain.Product {
	return []domain.Product{
		{
			ID:       "p1",
			Name:     "Classic Denim Jacket",
			Price:    decimal.NewFromFloat(89.99),
			Category: domain.CategoryMen,
			Sizes:    []string{"M", "L"},
			Colors:   []string{"Blue"},
			Rating:   4.6,
			Featured: true,
		},
		{
			ID:       "p2",
			Name:     "Premium Cotton T-Shirt",
			Price:    decimal.NewFromFloat(29.99),
			Category: domain.CategoryMen,
			Sizes:    []string{"S", "M"},
			Colors:   []string{"White", "Black"},
			Rating:   4.5,
		},
		{
			ID:       "p3",
			Name:     "Elegant Summer Dress",
			Price:    decimal.NewFromFloat(59.99),
			Category: domain.CategoryWomen,
			Sizes:    []string{"XS", "S"},
			Colors:   []string{"Red"},
			Rating:   4.8,
		},
	}
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	catalogSvc, err := service.NewCatalog(
		t.Context(), stubProvider{catalogFixture()},
	)
	require.NoError(t, err)

	store, err := localstore.New(afero.NewMemMapFs(), "session")
	require.NoError(t, err)

	cartSvc, err := service.NewCart(
		t.Context(), localstore.NewCartRepository(store), localstore.NewEventJournal(store),
	)
	require.NoError(t, err)

	sessionSvc := service.NewSession(t.Context(), localstore.NewThemeRepository(store))

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, catalogSvc)
	httphandler.RegisterCart(mux, catalogSvc, cartSvc, cartSvc)
	httphandler.RegisterTheme(mux, sessionSvc)
	return mux
}

func doJSON(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetProducts(t *testing.T) {

	t.Run("AllProducts", func(t *testing.T) {
		mux := newTestMux(t)

		rec := doJSON(mux, http.MethodGet, "/v1/products", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httphandler.ProductsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.ProductsFound)
		assert.Len(t, resp.Products, 3)
	})

	t.Run("CategoryPathParam", func(t *testing.T) {
		mux := newTestMux(t)

		rec := doJSON(mux, http.MethodGet, "/v1/products/women", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httphandler.ProductsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.ProductsFound)
		assert.Equal(t, "p3", resp.Products[0].ID)
	})

	t.Run("FilterAndSortParams", func(t *testing.T) {
		mux := newTestMux(t)

		rec := doJSON(mux, http.MethodGet,
			"/v1/products/men?sort=price-low&min_rating=4.5", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httphandler.ProductsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, 2, resp.ProductsFound)
		assert.Equal(t, "p2", resp.Products[0].ID)
		assert.Equal(t, "p1", resp.Products[1].ID)
	})

	t.Run("NoMatchesIsDistinctEmptyResult", func(t *testing.T) {
		mux := newTestMux(t)

		rec := doJSON(mux, http.MethodGet, "/v1/products?search=nonexistent", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httphandler.ProductsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.ProductsFound)
		assert.Empty(t, resp.Products)
	})

	t.Run("UnknownFilterParamRejected", func(t *testing.T) {
		mux := newTestMux(t)

		rec := doJSON(mux, http.MethodGet, "/v1/products?discount=50", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownSortKeyRejected", func(t *testing.T) {
		mux := newTestMux(t)

		rec := doJSON(mux, http.MethodGet, "/v1/products?sort=cheapest", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartEndpoints(t *testing.T) {

	t.Run("AddThenMergeOutcomes", func(t *testing.T) {
		mux := newTestMux(t)
		body := `{"product_id":"p2","quantity":2,"size":"M","color":"Black"}`

		rec := doJSON(mux, http.MethodPost, "/v1/cart/items", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httphandler.AddItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "added", resp.Outcome)
		assert.Equal(t, 2, resp.ItemCount)

		rec = doJSON(mux, http.MethodPost, "/v1/cart/items", body)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "updated", resp.Outcome)
		assert.Equal(t, 4, resp.ItemCount)
	})

	t.Run("AddUnknownProduct", func(t *testing.T) {
		mux := newTestMux(t)
		body := `{"product_id":"ghost","quantity":1,"size":"M","color":"Black"}`

		rec := doJSON(mux, http.MethodPost, "/v1/cart/items", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("AddSizeNotOffered", func(t *testing.T) {
		mux := newTestMux(t)
		body := `{"product_id":"p2","quantity":1,"size":"XXL","color":"Black"}`

		rec := doJSON(mux, http.MethodPost, "/v1/cart/items", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("GetCartTotals", func(t *testing.T) {
		mux := newTestMux(t)

		doJSON(mux, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p2","quantity":2,"size":"M","color":"Black"}`)
		doJSON(mux, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p1","quantity":1,"size":"L","color":"Blue"}`)

		rec := doJSON(mux, http.MethodGet, "/v1/cart", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httphandler.CartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Items, 2)
		assert.Equal(t, 3, resp.ItemCount)
		assert.True(t, resp.Total.Equal(decimal.NewFromFloat(149.97)),
			"total = %s", resp.Total)
	})

	t.Run("TotalsComeFromItemSnapshot", func(t *testing.T) {
		products := catalogFixture()
		reader := stubCartReader{items: []domain.CartItem{
			{Product: products[0], Quantity: 1, Size: "L", Color: "Blue"},
			{Product: products[1], Quantity: 2, Size: "M", Color: "Black"},
		}}

		mux := http.NewServeMux()
		httphandler.RegisterCart(mux, nil, nil, reader)

		rec := doJSON(mux, http.MethodGet, "/v1/cart", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp httphandler.CartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.ItemCount)
		assert.True(t, resp.Total.Equal(decimal.NewFromFloat(149.97)),
			"total = %s", resp.Total)
	})

	t.Run("SetQuantityZeroRemovesLine", func(t *testing.T) {
		mux := newTestMux(t)

		doJSON(mux, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p2","quantity":2,"size":"M","color":"Black"}`)

		rec := doJSON(mux, http.MethodPut, "/v1/cart/items",
			`{"product_id":"p2","size":"M","color":"Black","quantity":0}`)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(mux, http.MethodGet, "/v1/cart", "")
		var resp httphandler.CartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Items)
		assert.Equal(t, 0, resp.ItemCount)
	})

	t.Run("RemoveByQueryKey", func(t *testing.T) {
		mux := newTestMux(t)

		doJSON(mux, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p2","quantity":1,"size":"M","color":"Black"}`)

		rec := doJSON(mux, http.MethodDelete,
			"/v1/cart/items?product_id=p2&size=M&color=Black", "")
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("RemoveRequiresProductID", func(t *testing.T) {
		mux := newTestMux(t)

		rec := doJSON(mux, http.MethodDelete, "/v1/cart/items", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ClearCart", func(t *testing.T) {
		mux := newTestMux(t)

		doJSON(mux, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p2","quantity":5,"size":"M","color":"Black"}`)

		rec := doJSON(mux, http.MethodDelete, "/v1/cart", "")
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(mux, http.MethodGet, "/v1/cart", "")
		var resp httphandler.CartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.ItemCount)
		assert.True(t, resp.Total.IsZero())
	})
}

func TestThemeEndpoints(t *testing.T) {

	t.Run("DefaultTheme", func(t *testing.T) {
		mux := newTestMux(t)

		rec := doJSON(mux, http.MethodGet, "/v1/theme", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body httphandler.ThemeBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "light", body.Theme)
	})

	t.Run("SwitchTheme", func(t *testing.T) {
		mux := newTestMux(t)

		rec := doJSON(mux, http.MethodPut, "/v1/theme", `{"theme":"dark"}`)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(mux, http.MethodGet, "/v1/theme", "")
		var body httphandler.ThemeBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "dark", body.Theme)
	})

	t.Run("UnknownThemeRejected", func(t *testing.T) {
		mux := newTestMux(t)

		rec := doJSON(mux, http.MethodPut, "/v1/theme", `{"theme":"sepia"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAllowJSON(t *testing.T) {

	t.Run("RejectsNonJSONBody", func(t *testing.T) {
		handler := httphandler.AllowJSON(newTestMux(t))

		req := httptest.NewRequest(
			http.MethodPost, "/v1/cart/items", strings.NewReader("plain text"),
		)
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("PassesBodylessRequests", func(t *testing.T) {
		handler := httphandler.AllowJSON(newTestMux(t))

		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
