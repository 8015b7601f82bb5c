// Package listutil parses list-view query parameters and computes the
// pagination controls for lists paged by the coaching API.
package listutil

import (
	"net/url"
	"strconv"
	"strings"
)

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page int // 1-indexed page number
	Size int // rows per page, forwarded to the API as "size"
}

// FilterParams carries search and filter parameters.
type FilterParams struct {
	Search  string            // free-text search, trimmed
	Filters map[string]string // exact-match filters (e.g. status=set)
}

// Get returns a filter value or "".
func (f FilterParams) Get(key string) string {
	return f.Filters[key]
}

// ListParams combines all list view parameters.
type ListParams struct {
	PageParams
	FilterParams
}

// DefaultSize is the default number of rows per page.
const DefaultSize = 50

// SizeOptions are the allowed rows-per-page values.
var SizeOptions = []int{20, 50, 100, 200}

// ParsePageParams extracts page and size from URL query values.
// PRE: none
// POST: returns valid PageParams with defaults applied
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(q.Get("size"))
	if !isValidSize(size) {
		size = DefaultSize
	}
	return PageParams{Page: page, Size: size}
}

// ParseFilterParams extracts the search term ("q") and named filters.
// PRE: filterKeys lists the allowed filter parameter names
// POST: returns FilterParams with only recognised, non-blank keys
func ParseFilterParams(q url.Values, filterKeys []string) FilterParams {
	fp := FilterParams{
		Search:  strings.TrimSpace(q.Get("q")),
		Filters: make(map[string]string),
	}
	for _, key := range filterKeys {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			fp.Filters[key] = v
		}
	}
	return fp
}

// ParseListParams parses all list parameters from URL query values.
func ParseListParams(q url.Values, filterKeys []string) ListParams {
	return ListParams{
		PageParams:   ParsePageParams(q),
		FilterParams: ParseFilterParams(q, filterKeys),
	}
}

// Query re-encodes the params so page links keep the active filters.
func (lp ListParams) Query() url.Values {
	q := url.Values{}
	if lp.Search != "" {
		q.Set("q", lp.Search)
	}
	for k, v := range lp.Filters {
		q.Set(k, v)
	}
	if lp.Size != DefaultSize {
		q.Set("size", strconv.Itoa(lp.Size))
	}
	return q
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int
	Size       int
	Total      int
	TotalPages int
	base       url.Values
}

// NewPageInfo computes pagination metadata from the API's reported total.
// PRE: total >= 0
// POST: TotalPages >= 1; Page clamped to [1, TotalPages]
func NewPageInfo(page, size, total int) PageInfo {
	if size < 1 {
		size = DefaultSize
	}
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, Size: size, Total: total, TotalPages: totalPages}
}

// WithQuery attaches the filter query that page links must preserve.
func (p PageInfo) WithQuery(q url.Values) PageInfo {
	p.base = q
	return p
}

// URL returns the query string ("?page=2&q=ana") for page n.
func (p PageInfo) URL(n int) string {
	q := url.Values{}
	for k, vs := range p.base {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("page", strconv.Itoa(n))
	return "?" + q.Encode()
}

// StartRow returns the 1-indexed first row number on the current page.
// POST: Returns 0 if Total is 0
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Page-1)*p.Size + 1
}

// EndRow returns the 1-indexed last row number on the current page.
func (p PageInfo) EndRow() int {
	end := p.Page * p.Size
	if end > p.Total {
		end = p.Total
	}
	return end
}

// HasPrev reports whether a previous page exists.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// PageNumbers returns at most 5 page numbers centred on the current page.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := p.Page - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - maxButtons + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination returns true if there is more than one page.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.Size
}

func isValidSize(n int) bool {
	for _, opt := range SizeOptions {
		if n == opt {
			return true
		}
	}
	return false
}
