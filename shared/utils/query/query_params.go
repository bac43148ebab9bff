package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// FilterParams represents filtering parameters
type FilterParams struct {
	Filters map[string]string `json:"filters"`
	Sort    SortParams        `json:"sort"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Search  string            `json:"search"`
}

// SortParams represents sorting parameters. An empty Field keeps the
// registry's creation order.
type SortParams struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Fields maps a public field name to an accessor used for filtering,
// searching and sorting.
type Fields[T any] map[string]func(T) string

// ParseQueryParams extracts standardized query parameters from Gin context
func ParseQueryParams(c *gin.Context) FilterParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	// filters[field_name]=value
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if strings.HasPrefix(key, "filters[") && strings.HasSuffix(key, "]") {
			fieldName := key[8 : len(key)-1]
			if len(values) > 0 && values[0] != "" {
				filters[fieldName] = values[0]
			}
		}
	}

	// sort[field]=field_name&sort[order]=asc|desc
	sortOrder := c.Query("sort[order]")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	return FilterParams{
		Filters: filters,
		Sort: SortParams{
			Field: c.Query("sort[field]"),
			Order: sortOrder,
		},
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
}

// ApplyFilters keeps items whose allowed fields equal the filter values.
// Unknown filter names are ignored.
func ApplyFilters[T any](items []T, filters map[string]string, fields Fields[T]) []T {
	out := items
	for name, value := range filters {
		get, allowed := fields[name]
		if !allowed || value == "" {
			continue
		}
		kept := make([]T, 0, len(out))
		for _, it := range out {
			if get(it) == value {
				kept = append(kept, it)
			}
		}
		out = kept
	}
	return out
}

// ApplySearch keeps items where any of searchFields contains search,
// ignoring case.
func ApplySearch[T any](items []T, search string, fields Fields[T], searchFields []string) []T {
	if search == "" || len(searchFields) == 0 {
		return items
	}
	needle := strings.ToLower(search)
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, name := range searchFields {
			if get, ok := fields[name]; ok && strings.Contains(strings.ToLower(get(it)), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// ApplySort sorts items by an allowed field; other fields keep the input order.
func ApplySort[T any](items []T, s SortParams, fields Fields[T]) []T {
	get, allowed := fields[s.Field]
	if !allowed {
		if s.Order == "desc" {
			out := make([]T, len(items))
			for i, it := range items {
				out[len(items)-1-i] = it
			}
			return out
		}
		return items
	}
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if s.Order == "desc" {
			return get(out[i]) > get(out[j])
		}
		return get(out[i]) < get(out[j])
	})
	return out
}

// ApplyPagination returns the requested page of items.
func ApplyPagination[T any](items []T, page, limit int) []T {
	offset := (page - 1) * limit
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

// Apply runs filter, search, sort and pagination in that order.
func Apply[T any](items []T, p FilterParams, fields Fields[T], searchFields []string) ([]T, PaginationResponse) {
	items = ApplyFilters(items, p.Filters, fields)
	items = ApplySearch(items, p.Search, fields, searchFields)
	items = ApplySort(items, p.Sort, fields)
	return ApplyPagination(items, p.Page, p.Limit), BuildPaginationResponse(p.Page, p.Limit, int64(len(items)))
}

// BuildPaginationResponse creates pagination metadata
func BuildPaginationResponse(page, limit int, total int64) PaginationResponse {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	hasNext := page < int(totalPages)
	hasPrev := page > 1

	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    hasNext,
		HasPrev:    hasPrev,
	}
}
