package question

import "strconv"

// DefaultPageSize is the number of questions shown per page.
const DefaultPageSize = 10

// Paginate returns page number page (1-based) of items. Pages below 1 are treated as 1 and a
// page past the end is empty. items must already be in display order.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	pages := (len(items) + size - 1) / size
	if page > pages {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end]
}

// PageFromQuery parses the page query parameter, defaulting to 1 when absent or invalid.
func PageFromQuery(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
