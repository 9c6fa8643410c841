package jqlb

import (
	"regexp"
	"strings"
)

var plainFieldName = regexp.MustCompile(`^[A-Za-z0-9_.\[\]]+$`)

func renderField(name string) string {
	if plainFieldName.MatchString(name) {
		return name
	}
	return quoteString(name)
}

func (c TerminalClause) String() string {
	operand := "<nil>"
	if c.Operand != nil {
		operand = c.Operand.String()
	}
	return renderField(c.Field) + " " + string(c.Operator) + " " + operand
}

func (c NotClause) String() string {
	return "NOT " + renderChild(c.Child, precedenceNot-1)
}

func (c AndClause) String() string {
	return joinChildren(c.Children, " AND ", precedenceAnd)
}

func (c OrClause) String() string {
	return joinChildren(c.Children, " OR ", precedenceOr)
}

// renderChild parenthesises child when its precedence is not above limit.
// Nested groups of the same kind keep their parentheses so the rendered text
// describes the same tree.
func renderChild(child Clause, limit int) string {
	if child == nil {
		return "<nil>"
	}
	if child.precedence() <= limit {
		return "(" + child.String() + ")"
	}
	return child.String()
}

func joinChildren(children []Clause, sep string, limit int) string {
	parts := make([]string, 0, len(children))
	for _, child := range children {
		parts = append(parts, renderChild(child, limit))
	}
	return strings.Join(parts, sep)
}

// RenderJQL renders the query as JQL text: the clause, then ORDER BY when sorts exist.
func RenderJQL(q Query) string {
	var b strings.Builder
	if q.Where != nil {
		b.WriteString(q.Where.String())
	}
	if len(q.OrderBy) > 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("ORDER BY ")
		for i, s := range q.OrderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.String())
		}
	}
	return b.String()
}
