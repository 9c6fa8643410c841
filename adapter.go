package jqlb

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// DefaultMaxTake caps Page.Take when AdapterOptions.MaxTake is unset.
const DefaultMaxTake = 1000

// Page limits the rows, documents or hits a backend returns. Take 0 means no limit.
type Page struct {
	Skip int
	Take int
}

func (p *Page) validate(maxTake int) {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Take < 0 {
		p.Take = 0
	} else if p.Take > maxTake {
		p.Take = maxTake
	}
}

// FunctionEvaluator resolves a function operand such as currentUser() to the
// concrete values a backend can compare against.
type FunctionEvaluator interface {
	Evaluate(name string, args []string) ([]any, error)
}

// FunctionEvaluatorFunc adapts a plain function to FunctionEvaluator.
type FunctionEvaluatorFunc func(name string, args []string) ([]any, error)

func (f FunctionEvaluatorFunc) Evaluate(name string, args []string) ([]any, error) {
	return f(name, args)
}

// AdapterOptions configures the translation of a query to a storage backend.
type AdapterOptions struct {
	// NamingStrategy turns clause names into column names.
	// OPTIONAL: Uses NamingStrategySnakeCase if empty.
	NamingStrategy NamingStrategy

	// ColumnMapping maps clause names to column names and wins over NamingStrategy.
	// OPTIONAL
	ColumnMapping map[string]string

	// Page limits the result.
	// OPTIONAL: No limit if zero.
	Page Page

	// MaxTake caps Page.Take.
	// OPTIONAL: Uses DefaultMaxTake if zero.
	MaxTake int

	// Functions evaluates function operands. Without it, a clause with a
	// function operand fails with ErrUnsupportedClause.
	// OPTIONAL
	Functions FunctionEvaluator

	// Logger receives adapter diagnostics.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

func (o *AdapterOptions) withDefaults() *AdapterOptions {
	out := AdapterOptions{}
	if o != nil {
		out = *o
	}
	if out.NamingStrategy == "" {
		out.NamingStrategy = NamingStrategySnakeCase
	}
	if out.MaxTake <= 0 {
		out.MaxTake = DefaultMaxTake
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	out.Page.validate(out.MaxTake)
	return &out
}

func (o *AdapterOptions) column(field string) string {
	if c, ok := o.ColumnMapping[field]; ok && c != "" {
		return c
	}
	return normalizeColumnName(o.NamingStrategy, field)
}

type predicateKind int

const (
	predicateEq predicateKind = iota
	predicateNeq
	predicateLt
	predicateLte
	predicateGt
	predicateGte
	predicateContains
	predicateNotContains
	predicateNull
	predicateNotNull
	predicateIn
	predicateNotIn
)

// predicate is a terminal clause reduced to what every backend understands:
// a column, a comparison and concrete values.
type predicate struct {
	Column string
	Kind   predicateKind
	Value  any
	Values []any
}

var scalarPredicates = map[Operator]predicateKind{
	OperatorEquals:            predicateEq,
	OperatorNotEquals:         predicateNeq,
	OperatorLessThan:          predicateLt,
	OperatorLessThanEquals:    predicateLte,
	OperatorGreaterThan:       predicateGt,
	OperatorGreaterThanEquals: predicateGte,
	OperatorLike:              predicateContains,
	OperatorNotLike:           predicateNotContains,
}

func (o *AdapterOptions) predicateOf(t TerminalClause) (predicate, error) {
	p := predicate{Column: o.column(t.Field)}

	if _, ok := t.Operand.(EmptyOperand); ok {
		switch t.Operator {
		case OperatorIs, OperatorEquals:
			p.Kind = predicateNull
		case OperatorIsNot, OperatorNotEquals:
			p.Kind = predicateNotNull
		default:
			return p, unsupported("%s %s EMPTY", t.Field, t.Operator)
		}
		return p, nil
	}
	if t.Operator.IsEmptyOnly() {
		return p, unsupported("%s %s needs EMPTY, got %s", t.Field, t.Operator, t.Operand)
	}

	values, err := o.operandValues(t.Operand)
	if err != nil {
		return p, errors.WithMessagef(err, "%s %s", t.Field, t.Operator)
	}
	if len(values) == 0 {
		return p, unsupported("%s %s: operand has no values", t.Field, t.Operator)
	}

	switch t.Operator {
	case OperatorIn:
		p.Kind, p.Values = predicateIn, values
		return p, nil
	case OperatorNotIn:
		p.Kind, p.Values = predicateNotIn, values
		return p, nil
	}

	kind, ok := scalarPredicates[t.Operator]
	if !ok {
		return p, unsupported("%s: unknown operator %q", t.Field, string(t.Operator))
	}
	if len(values) > 1 {
		// A function may expand to several values; equality then becomes membership.
		switch kind {
		case predicateEq:
			p.Kind, p.Values = predicateIn, values
			return p, nil
		case predicateNeq:
			p.Kind, p.Values = predicateNotIn, values
			return p, nil
		}
		return p, unsupported("%s %s: expected one value, got %d", t.Field, t.Operator, len(values))
	}
	p.Kind, p.Value = kind, values[0]
	if kind == predicateContains || kind == predicateNotContains {
		p.Value = fmt.Sprint(values[0])
	}
	return p, nil
}

func (o *AdapterOptions) operandValues(operand Operand) ([]any, error) {
	switch x := operand.(type) {
	case SingleValueOperand:
		return []any{x.Value()}, nil
	case MultiValueOperand:
		out := make([]any, 0, len(x.Values))
		for _, v := range x.Values {
			vals, err := o.operandValues(v)
			if err != nil {
				return nil, err
			}
			out = append(out, vals...)
		}
		return out, nil
	case FunctionOperand:
		if o.Functions == nil {
			return nil, unsupported("function %s() has no evaluator", x.Name)
		}
		vals, err := o.Functions.Evaluate(x.Name, x.Args)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluate %s()", x.Name)
		}
		return vals, nil
	case EmptyOperand:
		return nil, unsupported("EMPTY inside a value list")
	default:
		return nil, unsupported("operand %T", operand)
	}
}
