package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ncobase/listing/query"
	"github.com/ncobase/listing/search/graphql"
	"github.com/ncobase/listing/search/meili"
	"github.com/spf13/cobra"
)

// NewComposeCommand prints the query composed for a set of filters.
func NewComposeCommand() *cobra.Command {
	var (
		templateFile string
		token        string
		engine       string
		filters      filterFlags
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Print the search query composed for the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := filters.spec()
			if err != nil {
				return err
			}
			composer := &query.Composer{Token: token}
			out := cmd.OutOrStdout()

			switch engine {
			case "meilisearch":
				groups := composer.Groups(spec)
				b, err := json.MarshalIndent(meili.Filter(groups), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "filter: %s\n", b)
				fmt.Fprintf(out, "query: %q\n", meili.FreeText(groups))
				return nil
			case "graphql":
				template := graphql.DefaultTemplate
				if templateFile != "" {
					b, err := os.ReadFile(templateFile)
					if err != nil {
						return fmt.Errorf("failed to read template: %w", err)
					}
					template = string(b)
				}
				q, err := composer.Compose(template, spec)
				if err != nil {
					return err
				}
				fmt.Fprint(out, q)
				return nil
			default:
				return fmt.Errorf("unknown engine %q", engine)
			}
		},
	}

	cmd.Flags().StringVarP(&templateFile, "template", "t", "", "query template file (default built-in template)")
	cmd.Flags().StringVar(&token, "token", query.DefaultToken, "substitution token in the template")
	cmd.Flags().StringVarP(&engine, "engine", "e", "graphql", "target engine: graphql or meilisearch")
	filters.bind(cmd)
	return cmd
}
