// Package query composes CMS search queries from optional filter dimensions.
//
// A FilterSpec holds the caller's filters. Groups turns it into ordered
// clause groups, Render prints them as GraphQL input objects and a Composer
// substitutes the rendered text into a query template:
//
//	spec := query.FilterSpec{Topics: []string{"cloud", "ai"}}
//	q, err := query.NewComposer().Compose(tpl, spec)
//
// Dimensions are always emitted in the order contentType, topics, industries,
// products, authorId, flag, freeText so output is byte-for-byte stable.
package query
