package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/threadline/storefront/internal/core/domain"
)

// ApplyFilters narrows the product list by every active filter
// dimension, then orders the survivors by the sort key. Pure: the
// input slice is never mutated and the result is always a fresh
// slice, possibly empty.
//
// The filter stages are independent of each other; only the sort is
// order-sensitive and runs last.
func ApplyFilters(ps []domain.Product, cfg domain.FilterConfig) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if matchesFilters(p, cfg) {
			out = append(out, p)
		}
	}
	sortProducts(out, cfg.Sort)
	return out
}

func matchesFilters(p domain.Product, cfg domain.FilterConfig) bool {
	return matchesSearch(p, cfg.Search) &&
		matchesCategory(p, cfg.Category) &&
		cfg.Subcategory.Matches(p) &&
		intersects(p.Sizes, cfg.Sizes) &&
		intersects(p.Colors, cfg.Colors) &&
		inPriceRange(p, cfg) &&
		p.Rating >= cfg.MinRating
}

func matchesSearch(p domain.Product, search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), s) ||
		strings.Contains(strings.ToLower(p.Description), s)
}

func matchesCategory(p domain.Product, c domain.Category) bool {
	return c == "" || c == domain.CategoryAll || p.Category == c
}

// intersects reports whether the product offers at least one of the
// accepted values. An empty accepted set means no constraint.
func intersects(offered, accepted []string) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, v := range offered {
		if slices.Contains(accepted, v) {
			return true
		}
	}
	return false
}

func inPriceRange(p domain.Product, cfg domain.FilterConfig) bool {
	return p.Price.GreaterThanOrEqual(cfg.PriceMin) &&
		p.Price.LessThanOrEqual(cfg.PriceMax)
}

func sortProducts(ps []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceLow:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case domain.SortPriceHigh:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case domain.SortRating:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case domain.SortNewest:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	default:
		// Featured tier first; stability keeps the prior relative
		// order inside each tier, no secondary tiebreak.
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return boolToInt(b.Featured) - boolToInt(a.Featured)
		})
	}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
