package commands

import (
	"fmt"
	"strconv"

	"github.com/ncobase/listing/query"
	"github.com/spf13/cobra"
)

// filterFlags binds the filter dimensions to command flags.
type filterFlags struct {
	contentTypes []string
	topics       []string
	industries   []string
	products     []string
	author       string
	flag         string
	text         string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.contentTypes, "content-type", nil, "content type ids")
	fs.StringSliceVar(&f.topics, "topics", nil, "topic ids")
	fs.StringSliceVar(&f.industries, "industries", nil, "industry ids")
	fs.StringSliceVar(&f.products, "products", nil, "product ids")
	fs.StringVar(&f.author, "author", "", "author id")
	fs.StringVar(&f.flag, "flag", "", "flag value (true or false)")
	fs.StringVarP(&f.text, "query", "q", "", "free text")
}

func (f *filterFlags) spec() (query.FilterSpec, error) {
	s := query.FilterSpec{
		ContentTypes: f.contentTypes,
		Topics:       f.topics,
		Industries:   f.industries,
		Products:     f.products,
		AuthorID:     f.author,
		FreeText:     f.text,
	}
	if f.flag != "" {
		b, err := strconv.ParseBool(f.flag)
		if err != nil {
			return query.FilterSpec{}, fmt.Errorf("invalid --flag %q: %w", f.flag, err)
		}
		s.Flag = &b
	}
	return s, nil
}
