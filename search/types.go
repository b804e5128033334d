package search

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/ncobase/listing/paging"
	"github.com/ncobase/listing/query"
)

// Engine represents search engine type
type Engine string

const (
	GraphQL     Engine = "graphql"
	Meilisearch Engine = "meilisearch"
)

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid search request")

// ValidationError lists the invalid fields of a request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e.Fields[k]
	}
	return ErrInvalidRequest.Error() + ": " + strings.Join(msgs, " ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// Item is one content entry of a listing.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Request represents a listing search request
type Request struct {
	Site     string           `json:"site" validate:"required"`
	Language string           `json:"lang" validate:"required"`
	RootPath string           `json:"rootPath,omitempty"`
	PageSize int              `json:"pageSize" validate:"min=1,max=100"`
	After    string           `json:"after,omitempty"`
	Filters  query.FilterSpec `json:"filters"`
}

// Result is one page of listing items.
type Result = paging.Page[Item]

// Adapter interface for search engine implementations
type Adapter interface {
	Search(ctx context.Context, req *Request) (*Result, error)
	Health(ctx context.Context) error
	Type() Engine
}
