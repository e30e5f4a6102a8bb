package httphandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/port"
)

// GET /v1/products                — browse the whole catalog
// GET /v1/products/{category}     — category page, route param is the
//                                   initial category selector
//
// Filter query parameters: search, category, subcategory, size,
// color, price_min, price_max, min_rating, sort. Anything else is
// rejected with 400.

var allowedFilterParams = map[string]struct{}{
	"search":      {},
	"category":    {},
	"subcategory": {},
	"size":        {},
	"color":       {},
	"price_min":   {},
	"price_max":   {},
	"min_rating":  {},
	"sort":        {},
}

type ProductsHandler struct {
	browser port.ProductsBrowser
}

func RegisterProducts(mux *http.ServeMux, browser port.ProductsBrowser) {
	h := ProductsHandler{browser}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{category}", h.GetProducts)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	cfg, err := parseFilterConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Warn("rejected filter query", "err", err)
		return
	}

	ps, err := h.browser.Browse(r.Context(), cfg)
	if err != nil {
		http.Error(w, "invalid filter configuration", http.StatusBadRequest)
		log.Warn("failed to browse catalog", "err", err)
		return
	}

	resp := ProductsResponse{
		Products:      toWireProducts(ps),
		ProductsFound: len(ps),
	}
	writeJSON(w, http.StatusOK, resp, log)
}

func parseFilterConfig(r *http.Request) (domain.FilterConfig, error) {
	cfg := domain.NewFilterConfig()

	query := r.URL.Query()
	for key := range query {
		if _, ok := allowedFilterParams[key]; !ok {
			return cfg, fmt.Errorf("unknown filter parameter %q", key)
		}
	}

	if c := r.PathValue("category"); c != "" {
		cfg.Category = domain.Category(c)
	} else if c := query.Get("category"); c != "" {
		cfg.Category = domain.Category(c)
	}

	cfg.Search = query.Get("search")
	if sub := query.Get("subcategory"); sub != "" {
		cfg.Subcategory = domain.Subcategory(sub)
	}
	cfg.Sizes = query["size"]
	cfg.Colors = query["color"]

	if err := parsePriceRange(query, &cfg); err != nil {
		return cfg, err
	}

	if v := query.Get("min_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid min_rating %q", v)
		}
		cfg.MinRating = rating
	}

	if v := query.Get("sort"); v != "" {
		cfg.Sort = domain.SortKey(v)
	}

	return cfg, nil
}

func parsePriceRange(query url.Values, cfg *domain.FilterConfig) error {
	if v := query.Get("price_min"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid price_min %q", v)
		}
		cfg.PriceMin = d
	}
	if v := query.Get("price_max"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid price_max %q", v)
		}
		cfg.PriceMax = d
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
