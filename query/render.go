package query

import "strings"

// Render prints groups as GraphQL input objects separated by single spaces.
// No groups render as the empty string.
func Render(groups []Group) string {
	var sb strings.Builder
	for i, g := range groups {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeGroup(&sb, g)
	}
	return sb.String()
}

func writeGroup(sb *strings.Builder, g Group) {
	if !g.Or {
		for i, c := range g.Clauses {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeClause(sb, c)
		}
		return
	}
	sb.WriteString("{ OR: [ ")
	for i, c := range g.Clauses {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeClause(sb, c)
	}
	sb.WriteString(" ] }")
}

func writeClause(sb *strings.Builder, c Clause) {
	sb.WriteString("{ name: ")
	sb.WriteString(Quote(c.Name))
	sb.WriteString(", value: ")
	sb.WriteString(Quote(c.Value))
	sb.WriteString(", operator: ")
	sb.WriteString(string(c.Operator))
	sb.WriteString(" }")
}

// Quote returns s as a GraphQL string literal. Invalid UTF-8 sequences are
// written as U+FFFD; ParseFilterSpec rejects such input up front.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hex[r>>4])
				sb.WriteByte(hex[r&0xF])
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

const hex = "0123456789abcdef"
