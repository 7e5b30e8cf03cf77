package models

// Page is the paginated response shape consumed by every transport layer.
// Extra carries caller-supplied metadata such as echoed filter option lists
// and defaults to empty.
type Page[T any] struct {
	Items       []T            `json:"items"`
	TotalItems  int            `json:"totalItems"`
	Page        int            `json:"page"`
	Size        int            `json:"size"`
	TotalPages  int            `json:"totalPages"`
	HasNext     bool           `json:"hasNext"`
	HasPrevious bool           `json:"hasPrevious"`
	Extra       map[string]any `json:"extra"`
}

// WithExtra attaches a metadata entry, allocating the map on first use.
func (p Page[T]) WithExtra(key string, value any) Page[T] {
	if p.Extra == nil {
		p.Extra = map[string]any{}
	}
	p.Extra[key] = value
	return p
}
