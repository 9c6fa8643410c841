package jqlb

import (
	"time"
)

// AddClause delivers an already built clause as if it were a closed group.
func (b *ClauseBuilder) AddClause(c Clause) *ClauseBuilder {
	if b.err != nil {
		return b
	}
	if err := validateClause(c); err != nil {
		return b.fail(err)
	}
	return b.deliver(cloneClause(c))
}

// AddCondition adds "field operator operand". Any operand is accepted with any operator.
func (b *ClauseBuilder) AddCondition(field string, op Operator, operand Operand) *ClauseBuilder {
	if b.err != nil {
		return b
	}
	if err := validateTerminal(field, op, operand); err != nil {
		return b.fail(err)
	}
	return b.deliver(NewTerminalClause(field, op, operand))
}

// AddStringCondition adds a condition over string values. A single value with
// a non-list operator is a single operand; otherwise the values form a list.
func (b *ClauseBuilder) AddStringCondition(field string, op Operator, values ...string) *ClauseBuilder {
	if b.err != nil {
		return b
	}
	if len(values) == 1 && !op.IsList() {
		if values[0] == "" {
			return b.fail(invalidArgument("%s %s: value is absent", field, op))
		}
		return b.AddCondition(field, op, StringValue(values[0]))
	}
	operand, err := NewStringsOperand(values...)
	if err != nil {
		return b.fail(withField(err, field, op))
	}
	return b.AddCondition(field, op, operand)
}

// AddStringValues adds "field = value" for one value and "field in (values...)" for several.
func (b *ClauseBuilder) AddStringValues(field string, values ...string) *ClauseBuilder {
	return b.AddStringCondition(field, valuesOperator(len(values)), values...)
}

// AddNumberCondition is AddStringCondition for numbers.
func (b *ClauseBuilder) AddNumberCondition(field string, op Operator, values ...int64) *ClauseBuilder {
	if b.err != nil {
		return b
	}
	if len(values) == 1 && !op.IsList() {
		return b.AddCondition(field, op, NumberValue(values[0]))
	}
	operand, err := NewNumbersOperand(values...)
	if err != nil {
		return b.fail(withField(err, field, op))
	}
	return b.AddCondition(field, op, operand)
}

// AddNumberValues adds "field = value" for one value and "field in (values...)" for several.
func (b *ClauseBuilder) AddNumberValues(field string, values ...int64) *ClauseBuilder {
	return b.AddNumberCondition(field, valuesOperator(len(values)), values...)
}

// AddDateCondition is AddStringCondition for dates, rendered with the configured
// layout and location. A zero time is an absent value.
func (b *ClauseBuilder) AddDateCondition(field string, op Operator, dates ...time.Time) *ClauseBuilder {
	if b.err != nil {
		return b
	}
	values := make([]string, 0, len(dates))
	for i, d := range dates {
		if d.IsZero() {
			return b.fail(invalidArgument("%s %s: dates[%d] is absent", field, op, i))
		}
		values = append(values, b.cfg.formatDate(d))
	}
	return b.AddStringCondition(field, op, values...)
}

// AddFunctionCondition adds "field operator name(args...)".
func (b *ClauseBuilder) AddFunctionCondition(field string, op Operator, name string, args ...string) *ClauseBuilder {
	if b.err != nil {
		return b
	}
	operand, err := NewFunctionOperand(name, args...)
	if err != nil {
		return b.fail(withField(err, field, op))
	}
	return b.AddCondition(field, op, operand)
}

// AddEmptyCondition adds "field is EMPTY".
func (b *ClauseBuilder) AddEmptyCondition(field string) *ClauseBuilder {
	return b.AddCondition(field, OperatorIs, Empty)
}

// AddRangeCondition adds "field >= start AND field <= end" as one clause. A nil
// end gives only the lower bound and a nil start only the upper bound.
func (b *ClauseBuilder) AddRangeCondition(field string, start, end Operand) *ClauseBuilder {
	if b.err != nil {
		return b
	}
	c, err := rangeClause(field, start, end)
	if err != nil {
		return b.fail(err)
	}
	return b.deliver(c)
}

// AddStringRangeCondition is AddRangeCondition with empty strings as absent ends.
func (b *ClauseBuilder) AddStringRangeCondition(field, start, end string) *ClauseBuilder {
	return b.AddRangeCondition(field, optionalString(start), optionalString(end))
}

// AddNumberRangeCondition is AddRangeCondition with nil pointers as absent ends.
func (b *ClauseBuilder) AddNumberRangeCondition(field string, start, end *int64) *ClauseBuilder {
	return b.AddRangeCondition(field, optionalNumber(start), optionalNumber(end))
}

// AddDateRangeCondition is AddRangeCondition with zero times as absent ends.
func (b *ClauseBuilder) AddDateRangeCondition(field string, start, end time.Time) *ClauseBuilder {
	return b.AddRangeCondition(field, b.optionalDate(start), b.optionalDate(end))
}

func rangeClause(field string, start, end Operand) (Clause, error) {
	if start == nil && end == nil {
		return nil, invalidArgument("%s range: start and end are both absent", field)
	}
	var parts []Clause
	if start != nil {
		if err := validateTerminal(field, OperatorGreaterThanEquals, start); err != nil {
			return nil, err
		}
		parts = append(parts, NewTerminalClause(field, OperatorGreaterThanEquals, start))
	}
	if end != nil {
		if err := validateTerminal(field, OperatorLessThanEquals, end); err != nil {
			return nil, err
		}
		parts = append(parts, NewTerminalClause(field, OperatorLessThanEquals, end))
	}
	return And(parts...), nil
}

func valuesOperator(n int) Operator {
	if n > 1 {
		return OperatorIn
	}
	return OperatorEquals
}

func optionalString(s string) Operand {
	if s == "" {
		return nil
	}
	return StringValue(s)
}

func optionalNumber(n *int64) Operand {
	if n == nil {
		return nil
	}
	return NumberValue(*n)
}

func (b *ClauseBuilder) optionalDate(t time.Time) Operand {
	if t.IsZero() {
		return nil
	}
	return StringValue(b.cfg.formatDate(t))
}

func validateTerminal(field string, op Operator, operand Operand) error {
	if field == "" {
		return invalidArgument("field name is absent")
	}
	if !op.Valid() {
		return invalidArgument("%s: unknown operator %q", field, string(op))
	}
	if err := validateOperand(operand); err != nil {
		return withField(err, field, op)
	}
	return nil
}

// validateClause checks the tree invariants of a clause built outside the builder.
func validateClause(c Clause) error {
	if c == nil {
		return invalidArgument("clause is absent")
	}
	var err error
	Walk(c, func(n Clause, _ int) bool {
		if err != nil {
			return false
		}
		switch x := n.(type) {
		case nil:
			err = invalidArgument("clause is absent")
		case TerminalClause:
			err = validateTerminal(x.Field, x.Operator, x.Operand)
		case NotClause:
			if x.Child == nil {
				err = invalidArgument("NOT without a child")
			}
		case AndClause:
			err = validateChildren("AND", x.Children)
		case OrClause:
			err = validateChildren("OR", x.Children)
		default:
			err = invalidArgument("unsupported clause type %T", n)
		}
		return err == nil
	})
	return err
}

func validateChildren(kind string, children []Clause) error {
	if len(children) < 2 {
		return invalidArgument("%s needs at least two children, got %d", kind, len(children))
	}
	for i, c := range children {
		if c == nil {
			return invalidArgument("%s child %d is absent", kind, i)
		}
	}
	return nil
}
