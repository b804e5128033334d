package paging

import "context"

// Page is one fetched page of results.
type Page[T any] struct {
	Items   []T    `json:"items"`
	Total   int    `json:"total"`
	HasNext bool   `json:"hasNext"`
	Cursor  string `json:"after,omitempty"`
}

// Normalize enforces the page invariants: a page without a cursor never has
// a next page and the total is never negative.
func (p *Page[T]) Normalize() *Page[T] {
	if p.Cursor == "" {
		p.HasNext = false
	}
	if p.Total < 0 {
		p.Total = 0
	}
	return p
}

// Fetcher loads the page addressed by url.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, url string) (*Page[T], error)
}

// FetchFunc adapts a function to Fetcher.
type FetchFunc[T any] func(ctx context.Context, url string) (*Page[T], error)

// Fetch calls f(ctx, url).
func (f FetchFunc[T]) Fetch(ctx context.Context, url string) (*Page[T], error) {
	return f(ctx, url)
}
