package jqlb

import (
	"fmt"
	"log/slog"
	"strings"
)

// BuildRawWhere builds a SQL WHERE clause (without the leading WHERE keyword)
// and its args. A nil clause yields an empty string.
func BuildRawWhere(c Clause, opts *AdapterOptions) (string, []any, error) {
	o := opts.withDefaults()
	if c == nil {
		return "", nil, nil
	}
	return o.clauseToSQL(c)
}

// BuildRawSelect builds a full SELECT query for the given table and columns.
// Identifiers are quoted with backticks to be broadly compatible with MySQL-like dialects.
// Placeholders use the '?' style.
func BuildRawSelect(q Query, table string, opts *AdapterOptions, columns ...string) (string, []any, error) {
	o := opts.withDefaults()
	if table == "" {
		return "", nil, invalidArgument("table name is absent")
	}

	cols := "*"
	if len(columns) > 0 {
		quoted := make([]string, 0, len(columns))
		for _, c := range columns {
			quoted = append(quoted, quoteIdent(o.column(c)))
		}
		cols = strings.Join(quoted, ", ")
	}

	var (
		where string
		args  []any
		err   error
	)
	if q.Where != nil {
		where, args, err = o.clauseToSQL(q.Where)
		if err != nil {
			return "", nil, err
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s", cols, quoteIdent(table))
	if where != "" {
		query += " WHERE " + where
	}
	if orderBy := o.buildOrderBy(q.OrderBy); orderBy != "" {
		query += " " + orderBy
	}
	if limitOffset := buildLimitOffset(o.Page); limitOffset != "" {
		query += " " + limitOffset
	}
	o.Logger.Debug("raw select built", slog.String("sql", query), slog.Int("args", len(args)))
	return query, args, nil
}

// SQLString replaces '?' placeholders with SQL literals. It is meant for
// logging and debugging, never for execution.
func SQLString(sql string, args []any) string {
	return expandPlaceholders(sql, args)
}

// -- internals --

func (o *AdapterOptions) clauseToSQL(c Clause) (string, []any, error) {
	switch x := c.(type) {
	case TerminalClause:
		p, err := o.predicateOf(x)
		if err != nil {
			return "", nil, err
		}
		return predicateToSQL(p)
	case AndClause:
		return o.joinGroup("AND", x.Children)
	case OrClause:
		return o.joinGroup("OR", x.Children)
	case NotClause:
		inner, args, err := o.clauseToSQL(x.Child)
		if err != nil {
			return "", nil, err
		}
		switch x.Child.(type) {
		case AndClause, OrClause:
			// joinGroup already parenthesised the group
			return "NOT " + inner, args, nil
		}
		return fmt.Sprintf("NOT (%s)", inner), args, nil
	default:
		return "", nil, unsupported("clause %T", c)
	}
}

func predicateToSQL(p predicate) (string, []any, error) {
	col := quoteIdent(p.Column)
	switch p.Kind {
	case predicateEq:
		return fmt.Sprintf("%s = ?", col), []any{p.Value}, nil
	case predicateNeq:
		return fmt.Sprintf("%s != ?", col), []any{p.Value}, nil
	case predicateLt:
		return fmt.Sprintf("%s < ?", col), []any{p.Value}, nil
	case predicateLte:
		return fmt.Sprintf("%s <= ?", col), []any{p.Value}, nil
	case predicateGt:
		return fmt.Sprintf("%s > ?", col), []any{p.Value}, nil
	case predicateGte:
		return fmt.Sprintf("%s >= ?", col), []any{p.Value}, nil
	case predicateContains:
		return fmt.Sprintf("%s LIKE ? ESCAPE '%c'", col, likeEscape), []any{containsPattern(p.Value)}, nil
	case predicateNotContains:
		return fmt.Sprintf("%s NOT LIKE ? ESCAPE '%c'", col, likeEscape), []any{containsPattern(p.Value)}, nil
	case predicateNull:
		return fmt.Sprintf("%s IS NULL", col), nil, nil
	case predicateNotNull:
		return fmt.Sprintf("%s IS NOT NULL", col), nil, nil
	case predicateIn:
		return fmt.Sprintf("%s IN (%s)", col, placeholders(len(p.Values))), append([]any{}, p.Values...), nil
	case predicateNotIn:
		return fmt.Sprintf("%s NOT IN (%s)", col, placeholders(len(p.Values))), append([]any{}, p.Values...), nil
	default:
		return "", nil, unsupported("predicate kind %d", p.Kind)
	}
}

// likeEscape escapes %, _ and itself in LIKE patterns.
const likeEscape = '!'

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern matches v anywhere in the column, with LIKE wildcards in v taken literally.
func containsPattern(v any) string {
	return "%" + likeEscaper.Replace(fmt.Sprint(v)) + "%"
}

func placeholders(n int) string {
	s := strings.Repeat("?,", n)
	return s[:len(s)-1]
}

func (o *AdapterOptions) joinGroup(op string, children []Clause) (string, []any, error) {
	parts := make([]string, 0, len(children))
	args := make([]any, 0)
	for _, child := range children {
		p, a, err := o.clauseToSQL(child)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, p)
		args = append(args, a...)
	}
	if len(parts) == 1 {
		return parts[0], args, nil
	}
	return "(" + strings.Join(parts, " "+op+" ") + ")", args, nil
}

func (o *AdapterOptions) buildOrderBy(sorts []SearchSort) string {
	cols := make([]string, 0, len(sorts))
	for _, s := range sorts {
		col := quoteIdent(o.column(s.Field))
		if s.Order != SortOrderDefault {
			col += " " + string(s.Order)
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return ""
	}
	return "ORDER BY " + strings.Join(cols, ", ")
}

func buildLimitOffset(p Page) string {
	// Embed numbers directly for broad driver compatibility
	if p.Take <= 0 && p.Skip <= 0 {
		return ""
	}
	if p.Take > 0 && p.Skip > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", p.Take, p.Skip)
	}
	if p.Take > 0 {
		return fmt.Sprintf("LIMIT %d", p.Take)
	}
	return fmt.Sprintf("OFFSET %d", p.Skip)
}

func quoteIdent(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

// expandPlaceholders replaces '?' with SQL literals derived from args in order.
func expandPlaceholders(sql string, args []any) string {
	if len(args) == 0 {
		return sql
	}
	var b strings.Builder
	b.Grow(len(sql) + len(args)*4)

	idx := 0
	inSingle := false
	inDouble := false
	inBacktick := false
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case ch == '\'' && !inDouble && !inBacktick:
			inSingle = !inSingle
		case ch == '"' && !inSingle && !inBacktick:
			inDouble = !inDouble
		case ch == '`' && !inSingle && !inDouble:
			inBacktick = !inBacktick
		case ch == '?' && !inSingle && !inDouble && !inBacktick && idx < len(args):
			b.WriteString(toSQLLiteral(args[idx]))
			idx++
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func toSQLLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%v", x)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%v", x)
	case float32, float64:
		return fmt.Sprintf("%v", x)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return "'" + escapeSQLString(x) + "'"
	default:
		return "'" + escapeSQLString(fmt.Sprintf("%v", x)) + "'"
	}
}

func escapeSQLString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}
