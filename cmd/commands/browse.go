package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ncobase/listing/paging"
	"github.com/ncobase/listing/search"
	"github.com/spf13/cobra"
)

// NewBrowseCommand loads listing pages from the search API.
func NewBrowseCommand() *cobra.Command {
	var (
		api      string
		site     string
		lang     string
		pageSize int
		pages    int
		timeout  time.Duration
		asJSON   bool
		filters  filterFlags
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Load pages from the search API like a load more button",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := filters.spec()
			if err != nil {
				return err
			}
			u, err := search.ResourceURL(api, search.NewResourceParams(site, lang, 0, spec))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			out := cmd.OutOrStdout()
			fetcher := search.NewHTTPFetcher[search.Item](&http.Client{Timeout: timeout}, nil)
			state, err := browse(ctx, fetcher, u, pageSize, pages, func(s paging.State[search.Item], from int) {
				if !asJSON {
					printItems(out, s.Items[from:], from)
				}
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"items":   state.Items,
					"total":   state.Total,
					"hasMore": state.HasMore,
				})
			}
			fmt.Fprintf(out, "loaded %d of %d, more: %v\n", len(state.Items), state.Total, state.HasMore)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&api, "api", "http://localhost:8080/api/search", "search API url")
	fs.StringVar(&site, "site", "", "site name")
	fs.StringVar(&lang, "lang", "", "language")
	fs.IntVar(&pageSize, "page-size", search.DefaultPageSize, "items per page")
	fs.IntVar(&pages, "pages", 1, "number of pages to load")
	fs.DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	fs.BoolVar(&asJSON, "json", false, "print the loaded items as JSON")
	filters.bind(cmd)
	return cmd
}

// browse initializes a paginator on url and loads up to pages pages,
// calling loaded with the state after each page and the index of its first
// new item.
func browse[T any](ctx context.Context, f paging.Fetcher[T], url string, pageSize, pages int, loaded func(paging.State[T], int)) (paging.State[T], error) {
	p := paging.New(f)
	if err := p.Initialize(ctx, url, pageSize); err != nil {
		return p.Snapshot(), err
	}
	state := p.Snapshot()
	loaded(state, 0)

	for i := 1; i < pages && state.HasMore; i++ {
		from := len(state.Items)
		if _, err := p.LoadMore(ctx); err != nil {
			return p.Snapshot(), err
		}
		state = p.Snapshot()
		loaded(state, from)
	}
	return state, nil
}

func printItems(w io.Writer, items []search.Item, offset int) {
	for i, it := range items {
		title := it.Title
		if title == "" {
			title = it.Name
		}
		fmt.Fprintf(w, "%4d  %-12s %s  %s\n", offset+i+1, it.ContentType, title, it.URL)
	}
}
