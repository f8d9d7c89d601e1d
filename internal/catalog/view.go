package catalog

import (
	"slices"
	"strings"

	"shopease/internal/model"

	"github.com/montanaflynn/stats"
	"golang.org/x/text/cases"
)

// SortKey selects the ordering of a catalogue view.
type SortKey string

const (
	SortNone       SortKey = ""
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingAsc  SortKey = "rating-asc"
	SortRatingDesc SortKey = "rating-desc"
)

// ParseSortKey maps a request value onto a SortKey; unknown values sort nothing.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceAsc, SortPriceDesc, SortRatingAsc, SortRatingDesc:
		return k
	default:
		return SortNone
	}
}

// Query describes a filtered, sorted view of the catalogue.
type Query struct {
	Search   string
	Category string
	Sort     SortKey
}

// Stats summarises the catalogue.
type Stats struct {
	Count         int     `json:"count"`
	CategoryCount int     `json:"categoryCount"`
	AveragePrice  float64 `json:"averagePrice"`
}

// Apply filters then sorts products according to q.
func Apply(products []model.Product, q Query) []model.Product {
	return Sort(Filter(products, q.Search, q.Category), q.Sort)
}

// Categories returns the distinct categories in first-seen order.
func Categories(products []model.Product) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Filter keeps products whose title contains search, ignoring case, and
// whose category equals category. Empty arguments match everything.
func Filter(products []model.Product, search, category string) []model.Product {
	fold := cases.Fold()
	needle := fold.String(search)

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(p.Title), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort returns a stably sorted copy of products.
func Sort(products []model.Product, key SortKey) []model.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []model.Product{}
	}

	var cmp func(a, b model.Product) int
	switch key {
	case SortPriceAsc:
		cmp = func(a, b model.Product) int { return compareFloat(a.Price, b.Price) }
	case SortPriceDesc:
		cmp = func(a, b model.Product) int { return compareFloat(b.Price, a.Price) }
	case SortRatingAsc:
		cmp = func(a, b model.Product) int { return compareFloat(a.Rating.Rate, b.Rating.Rate) }
	case SortRatingDesc:
		cmp = func(a, b model.Product) int { return compareFloat(b.Rating.Rate, a.Rating.Rate) }
	default:
		return out
	}

	slices.SortStableFunc(out, cmp)
	return out
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Statistics computes the product count, category count and the average
// price rounded to two decimals. An empty catalogue averages to zero.
func Statistics(products []model.Product) Stats {
	st := Stats{
		Count:         len(products),
		CategoryCount: len(Categories(products)),
	}
	if len(products) == 0 {
		return st
	}

	prices := make(stats.Float64Data, len(products))
	for i, p := range products {
		prices[i] = p.Price
	}

	mean, err := stats.Mean(prices)
	if err != nil {
		return st
	}
	avg, err := stats.Round(mean, 2)
	if err != nil {
		return st
	}
	st.AveragePrice = avg
	return st
}
