package jqlb

import "time"

// ConditionBuilder is bound to a field. Its operator methods either take the
// operand and complete the condition, or return a ValueBuilder for it.
type ConditionBuilder struct {
	core  *ClauseBuilder
	field string
}

// ValueBuilder is bound to a field and operator and completes the condition
// with the operand passed to any of its methods.
type ValueBuilder struct {
	core  *ClauseBuilder
	field string
	op    Operator
}

// Op returns the value builder for an arbitrary operator.
func (c ConditionBuilder) Op(op Operator) ValueBuilder {
	return ValueBuilder{core: c.core, field: c.field, op: op}
}

func (c ConditionBuilder) Eq() ValueBuilder { return c.Op(OperatorEquals) }

func (c ConditionBuilder) EqString(value string) *ClauseBuilder { return c.Eq().Value(value) }

func (c ConditionBuilder) EqNumber(value int64) *ClauseBuilder { return c.Eq().Number(value) }

func (c ConditionBuilder) EqDate(value time.Time) *ClauseBuilder { return c.Eq().Date(value) }

func (c ConditionBuilder) EqOperand(operand Operand) *ClauseBuilder { return c.Eq().Operand(operand) }

func (c ConditionBuilder) EqEmpty() *ClauseBuilder { return c.Eq().Empty() }

func (c ConditionBuilder) EqFunc(name string, args ...string) *ClauseBuilder {
	return c.Eq().Function(name, args...)
}

func (c ConditionBuilder) NotEq() ValueBuilder { return c.Op(OperatorNotEquals) }

func (c ConditionBuilder) NotEqString(value string) *ClauseBuilder { return c.NotEq().Value(value) }

func (c ConditionBuilder) NotEqNumber(value int64) *ClauseBuilder { return c.NotEq().Number(value) }

func (c ConditionBuilder) NotEqDate(value time.Time) *ClauseBuilder { return c.NotEq().Date(value) }

func (c ConditionBuilder) NotEqOperand(operand Operand) *ClauseBuilder {
	return c.NotEq().Operand(operand)
}

func (c ConditionBuilder) NotEqEmpty() *ClauseBuilder { return c.NotEq().Empty() }

func (c ConditionBuilder) NotEqFunc(name string, args ...string) *ClauseBuilder {
	return c.NotEq().Function(name, args...)
}

func (c ConditionBuilder) Like() ValueBuilder { return c.Op(OperatorLike) }

func (c ConditionBuilder) LikeString(value string) *ClauseBuilder { return c.Like().Value(value) }

func (c ConditionBuilder) LikeNumber(value int64) *ClauseBuilder { return c.Like().Number(value) }

func (c ConditionBuilder) LikeOperand(operand Operand) *ClauseBuilder {
	return c.Like().Operand(operand)
}

func (c ConditionBuilder) NotLike() ValueBuilder { return c.Op(OperatorNotLike) }

func (c ConditionBuilder) NotLikeString(value string) *ClauseBuilder { return c.NotLike().Value(value) }

func (c ConditionBuilder) NotLikeNumber(value int64) *ClauseBuilder {
	return c.NotLike().Number(value)
}

func (c ConditionBuilder) NotLikeOperand(operand Operand) *ClauseBuilder {
	return c.NotLike().Operand(operand)
}

func (c ConditionBuilder) Is() ValueBuilder { return c.Op(OperatorIs) }

// IsEmpty adds "field is EMPTY".
func (c ConditionBuilder) IsEmpty() *ClauseBuilder { return c.Is().Empty() }

func (c ConditionBuilder) IsNot() ValueBuilder { return c.Op(OperatorIsNot) }

// IsNotEmpty adds "field is not EMPTY".
func (c ConditionBuilder) IsNotEmpty() *ClauseBuilder { return c.IsNot().Empty() }

func (c ConditionBuilder) Lt() ValueBuilder { return c.Op(OperatorLessThan) }

func (c ConditionBuilder) LtString(value string) *ClauseBuilder { return c.Lt().Value(value) }

func (c ConditionBuilder) LtNumber(value int64) *ClauseBuilder { return c.Lt().Number(value) }

func (c ConditionBuilder) LtDate(value time.Time) *ClauseBuilder { return c.Lt().Date(value) }

func (c ConditionBuilder) LtOperand(operand Operand) *ClauseBuilder { return c.Lt().Operand(operand) }

func (c ConditionBuilder) LtEq() ValueBuilder { return c.Op(OperatorLessThanEquals) }

func (c ConditionBuilder) LtEqString(value string) *ClauseBuilder { return c.LtEq().Value(value) }

func (c ConditionBuilder) LtEqNumber(value int64) *ClauseBuilder { return c.LtEq().Number(value) }

func (c ConditionBuilder) LtEqDate(value time.Time) *ClauseBuilder { return c.LtEq().Date(value) }

func (c ConditionBuilder) LtEqOperand(operand Operand) *ClauseBuilder {
	return c.LtEq().Operand(operand)
}

func (c ConditionBuilder) Gt() ValueBuilder { return c.Op(OperatorGreaterThan) }

func (c ConditionBuilder) GtString(value string) *ClauseBuilder { return c.Gt().Value(value) }

func (c ConditionBuilder) GtNumber(value int64) *ClauseBuilder { return c.Gt().Number(value) }

func (c ConditionBuilder) GtDate(value time.Time) *ClauseBuilder { return c.Gt().Date(value) }

func (c ConditionBuilder) GtOperand(operand Operand) *ClauseBuilder { return c.Gt().Operand(operand) }

func (c ConditionBuilder) GtEq() ValueBuilder { return c.Op(OperatorGreaterThanEquals) }

func (c ConditionBuilder) GtEqString(value string) *ClauseBuilder { return c.GtEq().Value(value) }

func (c ConditionBuilder) GtEqNumber(value int64) *ClauseBuilder { return c.GtEq().Number(value) }

func (c ConditionBuilder) GtEqDate(value time.Time) *ClauseBuilder { return c.GtEq().Date(value) }

func (c ConditionBuilder) GtEqOperand(operand Operand) *ClauseBuilder {
	return c.GtEq().Operand(operand)
}

func (c ConditionBuilder) In() ValueBuilder { return c.Op(OperatorIn) }

func (c ConditionBuilder) InStrings(values ...string) *ClauseBuilder { return c.In().Values(values...) }

func (c ConditionBuilder) InNumbers(values ...int64) *ClauseBuilder { return c.In().Numbers(values...) }

func (c ConditionBuilder) InDates(values ...time.Time) *ClauseBuilder { return c.In().Dates(values...) }

func (c ConditionBuilder) InOperands(operands ...Operand) *ClauseBuilder {
	return c.In().Operands(operands...)
}

func (c ConditionBuilder) InFunc(name string, args ...string) *ClauseBuilder {
	return c.In().Function(name, args...)
}

func (c ConditionBuilder) NotIn() ValueBuilder { return c.Op(OperatorNotIn) }

func (c ConditionBuilder) NotInStrings(values ...string) *ClauseBuilder {
	return c.NotIn().Values(values...)
}

func (c ConditionBuilder) NotInNumbers(values ...int64) *ClauseBuilder {
	return c.NotIn().Numbers(values...)
}

func (c ConditionBuilder) NotInDates(values ...time.Time) *ClauseBuilder {
	return c.NotIn().Dates(values...)
}

func (c ConditionBuilder) NotInOperands(operands ...Operand) *ClauseBuilder {
	return c.NotIn().Operands(operands...)
}

func (c ConditionBuilder) NotInFunc(name string, args ...string) *ClauseBuilder {
	return c.NotIn().Function(name, args...)
}

// Range adds "field >= start AND field <= end" as one clause; either end may be nil.
func (c ConditionBuilder) Range(start, end Operand) *ClauseBuilder {
	return c.core.AddRangeCondition(c.field, start, end)
}

// RangeStrings is Range with empty strings as absent ends.
func (c ConditionBuilder) RangeStrings(start, end string) *ClauseBuilder {
	return c.core.AddStringRangeCondition(c.field, start, end)
}

// RangeNumbers is Range with nil pointers as absent ends.
func (c ConditionBuilder) RangeNumbers(start, end *int64) *ClauseBuilder {
	return c.core.AddNumberRangeCondition(c.field, start, end)
}

// RangeDates is Range with zero times as absent ends.
func (c ConditionBuilder) RangeDates(start, end time.Time) *ClauseBuilder {
	return c.core.AddDateRangeCondition(c.field, start, end)
}

func (v ValueBuilder) Value(value string) *ClauseBuilder {
	return v.core.AddStringCondition(v.field, v.op, value)
}

// Values completes the condition with a list of strings.
func (v ValueBuilder) Values(values ...string) *ClauseBuilder {
	operand, err := NewStringsOperand(values...)
	if err != nil {
		return v.core.fail(withField(err, v.field, v.op))
	}
	return v.Operand(operand)
}

func (v ValueBuilder) Number(value int64) *ClauseBuilder {
	return v.Operand(NumberValue(value))
}

// Numbers completes the condition with a list of numbers.
func (v ValueBuilder) Numbers(values ...int64) *ClauseBuilder {
	operand, err := NewNumbersOperand(values...)
	if err != nil {
		return v.core.fail(withField(err, v.field, v.op))
	}
	return v.Operand(operand)
}

func (v ValueBuilder) Date(value time.Time) *ClauseBuilder {
	return v.core.AddDateCondition(v.field, v.op, value)
}

// Dates completes the condition with a list of dates.
func (v ValueBuilder) Dates(values ...time.Time) *ClauseBuilder {
	if len(values) == 0 {
		return v.core.fail(invalidArgument("%s %s: dates is empty", v.field, v.op))
	}
	strs := make([]string, 0, len(values))
	for i, d := range values {
		if d.IsZero() {
			return v.core.fail(invalidArgument("%s %s: dates[%d] is absent", v.field, v.op, i))
		}
		strs = append(strs, v.core.cfg.formatDate(d))
	}
	return v.Values(strs...)
}

func (v ValueBuilder) Operand(operand Operand) *ClauseBuilder {
	return v.core.AddCondition(v.field, v.op, operand)
}

// Operands completes the condition with a list of operands.
func (v ValueBuilder) Operands(operands ...Operand) *ClauseBuilder {
	operand, err := NewMultiValueOperand(operands...)
	if err != nil {
		return v.core.fail(withField(err, v.field, v.op))
	}
	return v.Operand(operand)
}

func (v ValueBuilder) Empty() *ClauseBuilder {
	return v.Operand(Empty)
}

func (v ValueBuilder) Function(name string, args ...string) *ClauseBuilder {
	return v.core.AddFunctionCondition(v.field, v.op, name, args...)
}

func (v ValueBuilder) CurrentUser() *ClauseBuilder { return v.Function(FunctionCurrentUser) }

func (v ValueBuilder) MembersOf(group string) *ClauseBuilder {
	if group == "" {
		return v.core.fail(invalidArgument("%s %s: group name is absent", v.field, v.op))
	}
	return v.Function(FunctionMembersOf, group)
}

func (v ValueBuilder) IssueHistory() *ClauseBuilder { return v.Function(FunctionIssueHistory) }

func (v ValueBuilder) WatchedIssues() *ClauseBuilder { return v.Function(FunctionWatchedIssues) }

func (v ValueBuilder) VotedIssues() *ClauseBuilder { return v.Function(FunctionVotedIssues) }

func (v ValueBuilder) StandardIssueTypes() *ClauseBuilder {
	return v.Function(FunctionStandardIssueTypes)
}

func (v ValueBuilder) SubtaskIssueTypes() *ClauseBuilder {
	return v.Function(FunctionSubtaskIssueTypes)
}
