package query

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is reported for parameter values that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// ParamError reports a request parameter that cannot be used as a filter.
type ParamError struct {
	Param string
	Err   error
}

func (e *ParamError) Error() string { return "query: parameter " + e.Param + ": " + e.Err.Error() }

func (e *ParamError) Unwrap() error { return e.Err }

// FilterSpec holds the optional filter values of one query request.
// A nil or empty field contributes no clause.
type FilterSpec struct {
	ContentTypes []string `json:"contentType,omitempty"`
	Topics       []string `json:"topics,omitempty"`
	Industries   []string `json:"industries,omitempty"`
	Products     []string `json:"products,omitempty"`
	AuthorID     string   `json:"authorId,omitempty"`
	Flag         *bool    `json:"flag,omitempty"`
	FreeText     string   `json:"freeText,omitempty"`
}

// Values returns the populated values of d, blanks removed.
func (s FilterSpec) Values(d Dimension) []string {
	switch d {
	case ContentType:
		return compact(s.ContentTypes)
	case Topics:
		return compact(s.Topics)
	case Industries:
		return compact(s.Industries)
	case Products:
		return compact(s.Products)
	case AuthorID:
		return compact([]string{s.AuthorID})
	case Flag:
		if s.Flag == nil {
			return nil
		}
		return []string{strconv.FormatBool(*s.Flag)}
	case FreeText:
		return compact([]string{s.FreeText})
	}
	return nil
}

// IsEmpty reports whether no dimension is populated.
func (s FilterSpec) IsEmpty() bool {
	for _, d := range Order {
		if len(s.Values(d)) > 0 {
			return false
		}
	}
	return true
}

// Key returns a canonical string for the populated dimensions.
func (s FilterSpec) Key() string {
	var sb strings.Builder
	for _, d := range Order {
		vals := s.Values(d)
		if len(vals) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(string(d))
		sb.WriteByte('=')
		for i, v := range vals {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(url.QueryEscape(v))
		}
	}
	return sb.String()
}

// ParseFilterSpec reads filters from request parameters. List dimensions
// accept repeated and comma-joined values.
func ParseFilterSpec(q url.Values) (FilterSpec, error) {
	for _, param := range []string{string(ContentType), string(Topics), string(Industries), string(Products), "author", "q", string(Flag)} {
		for _, v := range q[param] {
			if !utf8.ValidString(v) {
				return FilterSpec{}, &ParamError{Param: param, Err: ErrInvalidUTF8}
			}
		}
	}
	spec := FilterSpec{
		ContentTypes: splitValues(q[string(ContentType)]),
		Topics:       splitValues(q[string(Topics)]),
		Industries:   splitValues(q[string(Industries)]),
		Products:     splitValues(q[string(Products)]),
		AuthorID:     strings.TrimSpace(q.Get("author")),
		FreeText:     strings.TrimSpace(q.Get("q")),
	}
	if raw := strings.TrimSpace(q.Get(string(Flag))); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return FilterSpec{}, &ParamError{Param: string(Flag), Err: err}
		}
		spec.Flag = &b
	}
	return spec, nil
}

func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func compact(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
