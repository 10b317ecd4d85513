package repository

// PageRequest selects one page of a listing.
type PageRequest struct {
	Page int64
	Size int64
}

// Normalize clamps a request to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = 10
	}
	if p.Size > 100 {
		p.Size = 100
	}
	return p
}

// Page is the envelope list endpoints return, mirroring the paginate shape
// the frontend already consumes.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Size  int64 `json:"size"`
	Pages int64 `json:"pages"`
}

// NewPage assembles a page envelope from a result slice and a total count.
func NewPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	req = req.Normalize()
	pages := total / req.Size
	if total%req.Size != 0 {
		pages++
	}
	return &Page[T]{Items: items, Total: total, Page: req.Page, Size: req.Size, Pages: pages}
}
