package domain

import "strings"

// Subcategory is a derived grouping used by the category page.
// Products are classified by keyword-matching the product name,
// which is heuristic only: a product whose name lacks the expected
// keyword is never matched.
type Subcategory string

const (
	SubcategoryAll         Subcategory = "all"
	SubcategoryTops        Subcategory = "tops"
	SubcategoryBottoms     Subcategory = "bottoms"
	SubcategoryOuterwear   Subcategory = "outerwear"
	SubcategoryAccessories Subcategory = "accessories"
)

var subcategoryKeywords = map[Subcategory][]string{
	SubcategoryTops:        {"shirt", "sweater", "t-shirt"},
	SubcategoryBottoms:     {"chinos", "joggers", "pants"},
	SubcategoryOuterwear:   {"jacket", "parka", "coat"},
	SubcategoryAccessories: {"shoes", "belt", "watch"},
}

func (s Subcategory) Valid() bool {
	if s == SubcategoryAll {
		return true
	}
	_, ok := subcategoryKeywords[s]
	return ok
}

// Matches reports whether the product belongs to the subcategory.
// An "all" or unknown subcategory matches every product.
func (s Subcategory) Matches(p Product) bool {
	keywords, ok := subcategoryKeywords[s]
	if !ok {
		return true
	}
	name := strings.ToLower(p.Name)
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
