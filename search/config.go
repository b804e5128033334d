package search

import (
	"strings"

	"github.com/ncobase/listing/config"
	"github.com/ncobase/listing/query"
)

// ComposerFromConfig builds a composer with the configured token and field
// names. Field keys match dimensions case-insensitively since viper lowers
// map keys.
func ComposerFromConfig(c *config.Search) *query.Composer {
	composer := &query.Composer{Token: c.Token, Fields: make(map[query.Dimension]string)}
	for name, field := range c.Fields {
		for _, d := range query.Order {
			if strings.EqualFold(name, string(d)) {
				composer.Fields[d] = field
			}
		}
	}
	return composer
}
