// Package meili searches content stored in a Meilisearch index.
package meili

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/ncobase/listing/config"
	"github.com/ncobase/listing/ecode"
	"github.com/ncobase/listing/paging"
	"github.com/ncobase/listing/query"
	"github.com/ncobase/listing/search"
)

// Index is the part of a meilisearch index the adapter uses.
type Index interface {
	SearchWithContext(ctx context.Context, query string, request *meilisearch.SearchRequest) (*meilisearch.SearchResponse, error)
}

// Adapter implements search.Adapter on a Meilisearch index.
type Adapter struct {
	index    Index
	health   func() error
	composer *query.Composer
}

// New connects to host and searches indexName.
func New(host, apiKey, indexName string, composer *query.Composer) (*Adapter, error) {
	if host == "" {
		return nil, ecode.ConfigurationError("meilisearch", ecode.FieldIsRequired("host"))
	}
	if indexName == "" {
		return nil, ecode.ConfigurationError("meilisearch", ecode.FieldIsRequired("index"))
	}
	ms := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	a := NewWithIndex(ms.Index(indexName), composer)
	a.health = func() error {
		_, err := ms.Health()
		return err
	}
	return a, nil
}

// NewFromConfig creates an adapter from the meilisearch config section.
func NewFromConfig(c *config.Meilisearch, composer *query.Composer) (*Adapter, error) {
	if c == nil {
		return nil, ecode.ConfigurationError("meilisearch", ecode.FieldIsMissing("meilisearch section"))
	}
	return New(c.Host, c.APIKey, c.Index, composer)
}

// NewWithIndex creates an adapter on an existing index.
func NewWithIndex(index Index, composer *query.Composer) *Adapter {
	if composer == nil {
		composer = query.NewComposer()
	}
	return &Adapter{index: index, composer: composer}
}

// Type returns the engine type.
func (a *Adapter) Type() search.Engine {
	return search.Meilisearch
}

// Search runs the request with offset pagination.
func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Result, error) {
	offset, err := paging.DecodeCursor(req.After)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrInvalidRequest, err)
	}

	groups := a.composer.Groups(req.Filters)
	filter := []any{
		Condition("site", req.Site),
		Condition("language", req.Language),
	}
	if req.RootPath != "" {
		filter = append(filter, Condition("path", req.RootPath))
	}
	filter = append(filter, Filter(groups)...)

	res, err := a.index.SearchWithContext(ctx, FreeText(groups), &meilisearch.SearchRequest{
		Offset: int64(offset),
		Limit:  int64(req.PageSize),
		Filter: filter,
	})
	if err != nil {
		return nil, ecode.NetworkError("meilisearch.search", err)
	}
	if res == nil {
		return nil, ecode.InvalidResponseError("meilisearch.search", "empty response")
	}

	items, err := decodeHits(res.Hits)
	if err != nil {
		return nil, ecode.InvalidResponseError("meilisearch.search", "undecodable hits", err)
	}

	total := int(res.EstimatedTotalHits)
	next := offset + len(items)
	page := &search.Result{Items: items, Total: total}
	if len(items) > 0 && next < total {
		page.HasNext = true
		page.Cursor = paging.EncodeCursor(next)
	}
	return page, nil
}

// Health checks the server.
func (a *Adapter) Health(_ context.Context) error {
	if a.health == nil {
		return nil
	}
	if err := a.health(); err != nil {
		return ecode.NetworkError("meilisearch.health", err)
	}
	return nil
}

func decodeHits(hits any) ([]search.Item, error) {
	raw, err := json.Marshal(hits)
	if err != nil {
		return nil, err
	}
	items := make([]search.Item, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Filter converts clause groups into a meilisearch array filter. OR groups
// become inner arrays; free text is left to the query string.
func Filter(groups []query.Group) []any {
	filter := make([]any, 0, len(groups))
	for _, g := range groups {
		if g.Dimension == query.FreeText {
			continue
		}
		if g.Or {
			or := make([]string, len(g.Clauses))
			for i, c := range g.Clauses {
				or[i] = Condition(c.Name, c.Value)
			}
			filter = append(filter, or)
			continue
		}
		for _, c := range g.Clauses {
			filter = append(filter, Condition(c.Name, c.Value))
		}
	}
	return filter
}

// FreeText returns the free text value of groups.
func FreeText(groups []query.Group) string {
	for _, g := range groups {
		if g.Dimension == query.FreeText && len(g.Clauses) > 0 {
			return g.Clauses[0].Value
		}
	}
	return ""
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Condition renders an equality condition with a quoted value.
func Condition(field, value string) string {
	return field + ` = "` + quoter.Replace(value) + `"`
}
