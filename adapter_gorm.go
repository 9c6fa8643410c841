package jqlb

import (
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToGormClause converts a clause tree into a gorm clause.Expression.
func ToGormClause(c Clause, opts *AdapterOptions) (clause.Expression, error) {
	if c == nil {
		return nil, nil
	}
	return opts.withDefaults().toGormClause(c)
}

func (o *AdapterOptions) toGormClause(c Clause) (clause.Expression, error) {
	switch x := c.(type) {
	case TerminalClause:
		p, err := o.predicateOf(x)
		if err != nil {
			return nil, err
		}
		return predicateToGorm(p), nil
	case AndClause:
		parts, err := o.toGormClauses(x.Children)
		if err != nil {
			return nil, err
		}
		return clause.And(parts...), nil
	case OrClause:
		parts, err := o.toGormClauses(x.Children)
		if err != nil {
			return nil, err
		}
		return clause.Or(parts...), nil
	case NotClause:
		inner, err := o.toGormClause(x.Child)
		if err != nil {
			return nil, err
		}
		return gormNot{Expr: inner}, nil
	default:
		return nil, unsupported("clause %T", c)
	}
}

func (o *AdapterOptions) toGormClauses(children []Clause) ([]clause.Expression, error) {
	parts := make([]clause.Expression, 0, len(children))
	for _, child := range children {
		e, err := o.toGormClause(child)
		if err != nil {
			return nil, err
		}
		parts = append(parts, e)
	}
	return parts, nil
}

func predicateToGorm(p predicate) clause.Expression {
	col := clause.Column{Name: p.Column}
	switch p.Kind {
	case predicateEq:
		return clause.Eq{Column: col, Value: p.Value}
	case predicateNeq:
		return clause.Neq{Column: col, Value: p.Value}
	case predicateLt:
		return clause.Lt{Column: col, Value: p.Value}
	case predicateLte:
		return clause.Lte{Column: col, Value: p.Value}
	case predicateGt:
		return clause.Gt{Column: col, Value: p.Value}
	case predicateGte:
		return clause.Gte{Column: col, Value: p.Value}
	case predicateContains:
		return gormLike{Column: col, Value: containsPattern(p.Value)}
	case predicateNotContains:
		return gormNot{Expr: gormLike{Column: col, Value: containsPattern(p.Value)}}
	case predicateNull:
		return clause.Eq{Column: col, Value: nil}
	case predicateNotNull:
		return clause.Neq{Column: col, Value: nil}
	case predicateIn:
		return clause.IN{Column: col, Values: p.Values}
	default:
		return gormNot{Expr: clause.IN{Column: col, Values: p.Values}}
	}
}

// gormLike is clause.Like with an ESCAPE character, so escaped wildcards in
// the pattern match literally.
type gormLike struct {
	Column clause.Column
	Value  any
}

func (l gormLike) Build(builder clause.Builder) {
	builder.WriteQuoted(l.Column)
	builder.WriteString(" LIKE ")
	builder.AddVar(builder, l.Value)
	builder.WriteString(" ESCAPE '" + string(likeEscape) + "'")
}

// gormNot negates a whole expression. gorm's clause.Not pushes the negation
// into each child of an AND, which changes the meaning of NOT (a AND b).
type gormNot struct {
	Expr clause.Expression
}

func (n gormNot) Build(builder clause.Builder) {
	builder.WriteString("NOT (")
	n.Expr.Build(builder)
	builder.WriteByte(')')
}

// ApplyGorm applies the filter, sorting and pagination of q to a GORM DB instance.
func ApplyGorm(trx *gorm.DB, q Query, opts *AdapterOptions) (*gorm.DB, error) {
	o := opts.withDefaults()

	if q.Where != nil {
		expr, err := o.toGormClause(q.Where)
		if err != nil {
			o.Logger.Warn("query not applied to gorm", slog.String("where", q.Where.String()), slog.Any("error", err))
			return trx, err
		}
		trx = trx.Clauses(clause.Where{Exprs: []clause.Expression{expr}})
	}

	for _, s := range q.OrderBy {
		trx = trx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: o.column(s.Field)},
			Desc:   s.Order == SortOrderDesc,
		})
	}

	if o.Page.Take > 0 {
		trx = trx.Limit(o.Page.Take)
	}
	if o.Page.Skip > 0 {
		trx = trx.Offset(o.Page.Skip)
	}
	return trx, nil
}

// GormSQLString renders the SELECT that ApplyGorm would run against table,
// using a dry run session. Values are inlined for display.
func GormSQLString(db *gorm.DB, table string, q Query, opts *AdapterOptions) (string, error) {
	var applyErr error
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		tx, applyErr = ApplyGorm(tx.Table(table), q, opts)
		if applyErr != nil {
			return tx
		}
		var rows []map[string]any
		return tx.Find(&rows)
	})
	if applyErr != nil {
		return "", applyErr
	}
	return sql, nil
}
