package query

import (
	"strings"

	"github.com/ncobase/listing/ecode"
)

// DefaultToken marks where rendered clauses are substituted in a template.
const DefaultToken = "__DYNAMIC_FILTERS__"

// Composer renders filter specs into query templates.
type Composer struct {
	// Token is the substitution marker, DefaultToken when empty.
	Token string
	// Fields maps a dimension to the CMS field name used as clause name.
	Fields map[Dimension]string
}

// NewComposer returns a composer using DefaultToken and dimension names as
// field names.
func NewComposer() *Composer {
	return &Composer{Token: DefaultToken}
}

func (c *Composer) token() string {
	if c == nil || c.Token == "" {
		return DefaultToken
	}
	return c.Token
}

func (c *Composer) fieldName(d Dimension) string {
	if c != nil {
		if name, ok := c.Fields[d]; ok && name != "" {
			return name
		}
	}
	return string(d)
}

// Groups builds the clause groups for spec in dimension order.
func (c *Composer) Groups(spec FilterSpec) []Group {
	groups := make([]Group, 0, len(Order))
	for _, d := range Order {
		vals := spec.Values(d)
		if len(vals) == 0 {
			continue
		}
		name := c.fieldName(d)
		switch d {
		case AuthorID, Flag:
			groups = append(groups, Group{
				Dimension: d,
				Clauses:   []Clause{{Name: name, Value: vals[0], Operator: OpEq}},
			})
		case FreeText:
			groups = append(groups, Group{
				Dimension: d,
				Clauses:   []Clause{{Name: name, Value: vals[0], Operator: OpContains}},
			})
		default:
			clauses := make([]Clause, len(vals))
			for i, v := range vals {
				clauses[i] = Clause{Name: name, Value: v, Operator: OpContains}
			}
			groups = append(groups, Group{Dimension: d, Clauses: clauses, Or: true})
		}
	}
	return groups
}

// Compose replaces the single token in template with the rendered clauses of
// spec. The template is never modified when the token is missing or repeated.
func (c *Composer) Compose(template string, spec FilterSpec) (string, error) {
	tok := c.token()
	switch n := strings.Count(template, tok); {
	case n == 0:
		return "", ecode.ConfigurationError("compose", ecode.FieldIsMissing("template token "+tok))
	case n > 1:
		return "", ecode.ConfigurationError("compose", ecode.FieldIsDuplicated("template token "+tok))
	}
	return strings.Replace(template, tok, Render(c.Groups(spec)), 1), nil
}

// MustCompose is like Compose but panics on a malformed template.
func (c *Composer) MustCompose(template string, spec FilterSpec) string {
	out, err := c.Compose(template, spec)
	if err != nil {
		panic(err)
	}
	return out
}

// Groups builds clause groups with dimension names as clause names.
func Groups(spec FilterSpec) []Group {
	return NewComposer().Groups(spec)
}

// Compose substitutes DefaultToken in template.
func Compose(template string, spec FilterSpec) (string, error) {
	return NewComposer().Compose(template, spec)
}
