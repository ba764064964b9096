package pagination

const (
	// DefaultPerPage is the page size when none is provided.
	DefaultPerPage = 20
	// MaxPerPage caps how many items a client can request per page.
	MaxPerPage = 100
)

// Page is one slice of a larger ordered collection.
type Page[T any] struct {
	Items       []T `json:"items"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	TotalItems  int `json:"totalItems"`
}

// NormalizePerPage falls back to the default for non-positive sizes.
func NormalizePerPage(perPage int) int {
	if perPage <= 0 {
		return DefaultPerPage
	}
	return perPage
}

// TotalPages is ceil(total/perPage).
func TotalPages(total, perPage int) int {
	perPage = NormalizePerPage(perPage)
	if total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// ClampPage keeps page within [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	upper := totalPages
	if upper < 1 {
		upper = 1
	}
	if page > upper {
		page = upper
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the requested page of items without copying elements
// beyond the page window.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	perPage = NormalizePerPage(perPage)
	total := len(items)
	totalPages := TotalPages(total, perPage)
	current := ClampPage(page, totalPages)

	start := (current - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{
		Items:       out,
		TotalPages:  totalPages,
		CurrentPage: current,
		TotalItems:  total,
	}
}
