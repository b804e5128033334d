// Package graphql searches content through a CMS GraphQL endpoint.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ncobase/listing/config"
	"github.com/ncobase/listing/ecode"
	"github.com/ncobase/listing/query"
	"github.com/ncobase/listing/search"
)

// APIKeyHeader carries the endpoint api key.
const APIKeyHeader = "sc_apikey"

const maxResponseSize = 16 << 20

var variableDecl = regexp.MustCompile(`\$([_A-Za-z][_0-9A-Za-z]*)\s*:`)

// Adapter implements search.Adapter against a GraphQL endpoint.
type Adapter struct {
	client   *http.Client
	endpoint string
	apiKey   string
	template string
	declared map[string]bool
	composer *query.Composer
}

// New creates an adapter. The template must contain the composer token
// exactly once.
func New(endpoint, apiKey, template string, composer *query.Composer, client *http.Client) (*Adapter, error) {
	if endpoint == "" {
		return nil, ecode.ConfigurationError("graphql", ecode.FieldIsRequired("endpoint"))
	}
	if template == "" {
		template = DefaultTemplate
	}
	if composer == nil {
		composer = query.NewComposer()
	}
	if _, err := composer.Compose(template, query.FilterSpec{}); err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Adapter{
		client:   client,
		endpoint: endpoint,
		apiKey:   apiKey,
		template: template,
		declared: declaredVariables(template),
		composer: composer,
	}, nil
}

// NewFromConfig creates an adapter from the search config section.
func NewFromConfig(c *config.Search) (*Adapter, error) {
	template := ""
	if c.TemplateFile != "" {
		b, err := os.ReadFile(c.TemplateFile)
		if err != nil {
			return nil, ecode.ConfigurationError("graphql", fmt.Sprintf("read template %s: %v", c.TemplateFile, err))
		}
		template = string(b)
	}
	return New(c.Endpoint, c.APIKey, template, search.ComposerFromConfig(c), &http.Client{Timeout: c.Timeout})
}

// Type returns the engine type.
func (a *Adapter) Type() search.Engine {
	return search.GraphQL
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type fieldValue struct {
	Value string `json:"value"`
}

type urlValue struct {
	Path string `json:"path"`
}

type gqlResult struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	URL         urlValue   `json:"url"`
	Title       fieldValue `json:"title"`
	Summary     fieldValue `json:"summary"`
	ContentType fieldValue `json:"contentType"`
	Date        fieldValue `json:"date"`
}

type gqlSearch struct {
	Total    int `json:"total"`
	PageInfo struct {
		EndCursor string `json:"endCursor"`
		HasNext   bool   `json:"hasNext"`
	} `json:"pageInfo"`
	Results []gqlResult `json:"results"`
}

type gqlResponse struct {
	Data *struct {
		Search *gqlSearch `json:"search"`
	} `json:"data"`
	Errors []gqlError `json:"errors"`
}

// Search composes the filters into the template and runs it.
func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Result, error) {
	q, err := a.composer.Compose(a.template, req.Filters)
	if err != nil {
		return nil, err
	}

	vars := map[string]any{
		"site":     req.Site,
		"language": req.Language,
		"rootPath": req.RootPath,
		"pageSize": req.PageSize,
	}
	if req.After != "" {
		vars["after"] = req.After
	}
	for k := range vars {
		if !a.declared[k] {
			delete(vars, k)
		}
	}

	var res gqlResponse
	if err := a.do(ctx, gqlRequest{Query: q, Variables: vars}, &res); err != nil {
		return nil, err
	}
	if len(res.Errors) > 0 {
		msgs := make([]string, len(res.Errors))
		for i, e := range res.Errors {
			msgs[i] = e.Message
		}
		return nil, ecode.NetworkError("graphql.search", errors.New(strings.Join(msgs, "; ")))
	}
	if res.Data == nil || res.Data.Search == nil {
		return nil, ecode.InvalidResponseError("graphql.search", ecode.FieldIsMissing("data.search"))
	}

	s := res.Data.Search
	items := make([]search.Item, len(s.Results))
	for i, r := range s.Results {
		items[i] = search.Item{
			ID:          r.ID,
			Name:        r.Name,
			Title:       r.Title.Value,
			URL:         r.URL.Path,
			ContentType: r.ContentType.Value,
			Summary:     r.Summary.Value,
			Date:        r.Date.Value,
		}
	}
	page := &search.Result{
		Items:   items,
		Total:   s.Total,
		HasNext: s.PageInfo.HasNext,
		Cursor:  s.PageInfo.EndCursor,
	}
	return page.Normalize(), nil
}

// Health sends a trivial query to the endpoint.
func (a *Adapter) Health(ctx context.Context) error {
	var res gqlResponse
	if err := a.do(ctx, gqlRequest{Query: "query { __typename }"}, &res); err != nil {
		return err
	}
	if len(res.Errors) > 0 {
		return ecode.NetworkError("graphql.health", errors.New(res.Errors[0].Message))
	}
	return nil
}

func (a *Adapter) do(ctx context.Context, body gqlRequest, out *gqlResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return ecode.ConfigurationError("graphql", err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return ecode.ConfigurationError("graphql", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if a.apiKey != "" {
		req.Header.Set(APIKeyHeader, a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return ecode.NetworkError("graphql", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return ecode.NetworkError("graphql", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ecode.NetworkError("graphql", fmt.Errorf("status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return ecode.InvalidResponseError("graphql", "undecodable response", err)
	}
	return nil
}

// declaredVariables returns the variable names the template's operation
// declares. Undeclared variables are not sent.
func declaredVariables(template string) map[string]bool {
	out := make(map[string]bool)
	for _, m := range variableDecl.FindAllStringSubmatch(template, -1) {
		out[m[1]] = true
	}
	return out
}
