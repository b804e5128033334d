package search

import (
	"fmt"
	"net/url"

	qs "github.com/google/go-querystring/query"
	"github.com/ncobase/listing/query"
)

// ResourceParams are the query parameters of the search API.
type ResourceParams struct {
	Site         string   `url:"site,omitempty"`
	Language     string   `url:"lang,omitempty"`
	PageSize     int      `url:"pageSize,omitempty"`
	ContentTypes []string `url:"contentType,comma,omitempty"`
	Topics       []string `url:"topics,comma,omitempty"`
	Industries   []string `url:"industries,comma,omitempty"`
	Products     []string `url:"products,comma,omitempty"`
	Author       string   `url:"author,omitempty"`
	Flag         *bool    `url:"flag,omitempty"`
	Query        string   `url:"q,omitempty"`
	After        string   `url:"after,omitempty"`
}

// NewResourceParams builds the parameters of an initial page request.
func NewResourceParams(site, lang string, pageSize int, f query.FilterSpec) ResourceParams {
	return ResourceParams{
		Site:         site,
		Language:     lang,
		PageSize:     pageSize,
		ContentTypes: f.Values(query.ContentType),
		Topics:       f.Values(query.Topics),
		Industries:   f.Values(query.Industries),
		Products:     f.Values(query.Products),
		Author:       f.AuthorID,
		Flag:         f.Flag,
		Query:        f.FreeText,
	}
}

// ResourceURL appends p to base, keeping parameters already on base.
func ResourceURL(base string, p ResourceParams) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	vals, err := qs.Values(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode parameters: %w", err)
	}
	q := u.Query()
	for k, vs := range vals {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
