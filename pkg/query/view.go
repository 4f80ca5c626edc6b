package query

import "catalog/internal/models"

// View holds the browsing state of one client: the last fetched list plus the
// filter, sort and page selection. Changing any filter input returns to the
// first page. A View is not safe for concurrent use.
type View struct {
	items    []models.Product
	query    string
	minPrice string
	maxPrice string
	sort     Sort
	page     int
	pageSize int
}

// NewView returns an empty view on page 1 with DefaultPageSize.
func NewView() *View {
	return &View{
		sort:     SortDefault,
		page:     1,
		pageSize: DefaultPageSize,
	}
}

// SetItems replaces the product list and returns to page 1.
func (v *View) SetItems(items []models.Product) {
	v.items = append([]models.Product(nil), items...)
	v.page = 1
}

// Items returns the unfiltered list.
func (v *View) Items() []models.Product {
	return append([]models.Product(nil), v.items...)
}

func (v *View) SetQuery(q string) {
	if q != v.query {
		v.query = q
		v.page = 1
	}
}

func (v *View) SetMinPrice(s string) {
	if s != v.minPrice {
		v.minPrice = s
		v.page = 1
	}
}

func (v *View) SetMaxPrice(s string) {
	if s != v.maxPrice {
		v.maxPrice = s
		v.page = 1
	}
}

func (v *View) SetSort(s Sort) {
	if s != v.sort {
		v.sort = s
		v.page = 1
	}
}

// SetPageSize changes the page size; non-positive sizes fall back to DefaultPageSize.
func (v *View) SetPageSize(n int) {
	if n <= 0 {
		n = DefaultPageSize
	}
	if n != v.pageSize {
		v.pageSize = n
		v.page = 1
	}
}

// SetPage moves to page n, clamped to the pages the current filters produce.
func (v *View) SetPage(n int) {
	v.page = v.Result().clamp(n)
}

// NextPage and PrevPage step one page, staying within bounds.
func (v *View) NextPage() { v.SetPage(v.page + 1) }
func (v *View) PrevPage() { v.SetPage(v.page - 1) }

// ResetFilters clears the price bounds and the sort, and returns to page 1.
// The text query is kept.
func (v *View) ResetFilters() {
	v.minPrice = ""
	v.maxPrice = ""
	v.sort = SortDefault
	v.page = 1
}

// Params reports the current selection.
func (v *View) Params() Params {
	return Params{
		Query:    v.query,
		MinPrice: v.minPrice,
		MaxPrice: v.maxPrice,
		Sort:     v.sort,
		Page:     v.page,
		PageSize: v.pageSize,
	}
}

// Result runs the pipeline over the current items.
func (v *View) Result() Result {
	return Apply(v.items, v.Params())
}

func (r Result) clamp(page int) int {
	return ClampPage(page, r.TotalPages)
}
