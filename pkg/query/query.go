// Package query is the client-side pipeline over a fetched product list:
// text filter, price range, sort, then pagination.
package query

import (
	"regexp"
	"sort"
	"strings"

	"catalog/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultPageSize is used when Params.PageSize is not positive.
const DefaultPageSize = 8

// Sort orders the filtered list.
type Sort string

const (
	SortDefault   Sort = "default"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
)

// ParseSort accepts the three sort names; anything else means SortDefault.
func ParseSort(s string) Sort {
	switch Sort(strings.TrimSpace(strings.ToLower(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortDefault
	}
}

// Params are the pipeline inputs. Price bounds are kept as the raw text a user
// typed; a bound that does not start with a number is ignored.
type Params struct {
	Query    string
	MinPrice string
	MaxPrice string
	Sort     Sort
	Page     int
	PageSize int
}

// Result is one page of the filtered, sorted list.
type Result struct {
	Items      []models.Product
	Page       int
	PageSize   int
	TotalPages int
	Total      int
}

// Apply runs the pipeline. It never mutates items.
func Apply(items []models.Product, p Params) Result {
	filtered := Filter(items, p.Query, p.MinPrice, p.MaxPrice)
	sorted := SortProducts(filtered, p.Sort)
	pageItems, page, totalPages := Paginate(sorted, p.Page, p.PageSize)

	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return Result{
		Items:      pageItems,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		Total:      len(sorted),
	}
}

// Filter keeps products whose name or description contains text (case-insensitive)
// and whose price lies within the parsed bounds.
func Filter(items []models.Product, text, minPrice, maxPrice string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(text))
	lo, hasLo := ParseBound(minPrice)
	hi, hasHi := ParseBound(maxPrice)

	out := make([]models.Product, 0, len(items))
	for _, p := range items {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if hasLo && p.Price.LessThan(lo) {
			continue
		}
		if hasHi && p.Price.GreaterThan(hi) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts returns a stably sorted copy.
func SortProducts(items []models.Product, s Sort) []models.Product {
	out := make([]models.Product, len(items))
	copy(out, items)

	switch s {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	}
	return out
}

// TotalPages is max(1, ceil(count/pageSize)).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the requested page after clamping, with the clamped page number.
func Paginate(items []models.Product, page, pageSize int) ([]models.Product, int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := TotalPages(len(items), pageSize)
	page = ClampPage(page, totalPages)

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page, totalPages
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseBound reads the leading number of s, the way a browser's parseFloat does:
// "15" and "15abc" give 15, while "", "abc" and "-" give no bound.
func ParseBound(s string) (decimal.Decimal, bool) {
	m := numberPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
