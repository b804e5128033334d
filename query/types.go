package query

// Dimension is one independently filterable facet.
type Dimension string

const (
	ContentType Dimension = "contentType"
	Topics      Dimension = "topics"
	Industries  Dimension = "industries"
	Products    Dimension = "products"
	AuthorID    Dimension = "authorId"
	Flag        Dimension = "flag"
	FreeText    Dimension = "freeText"
)

// Order is the fixed emission order of dimensions.
var Order = []Dimension{ContentType, Topics, Industries, Products, AuthorID, Flag, FreeText}

// Operator is a clause comparison.
type Operator string

const (
	OpEq       Operator = "EQ"
	OpContains Operator = "CONTAINS"
)

// Clause is a single predicate.
type Clause struct {
	Name     string
	Value    string
	Operator Operator
}

// Group is the clause block for one dimension. When Or is set the clauses are
// alternatives; otherwise Group holds exactly one clause.
type Group struct {
	Dimension Dimension
	Clauses   []Clause
	Or        bool
}
