package jqlb

import (
	"strconv"
	"strings"
)

// EmptyOperandName is the JQL literal for the absence of a value.
const EmptyOperandName = "EMPTY"

// Operand is the right-hand side of a terminal clause: a single value, a list
// of values, a function call or EMPTY.
type Operand interface {
	isOperand()
	String() string
}

// SingleValueOperand holds one string or number literal.
type SingleValueOperand struct {
	StringValue string
	NumberValue int64
	IsNumber    bool
}

func (SingleValueOperand) isOperand() {}

// Value returns the literal as a string or an int64.
func (o SingleValueOperand) Value() any {
	if o.IsNumber {
		return o.NumberValue
	}
	return o.StringValue
}

func (o SingleValueOperand) String() string {
	if o.IsNumber {
		return strconv.FormatInt(o.NumberValue, 10)
	}
	return quoteString(o.StringValue)
}

// MultiValueOperand is a non-empty ordered list of operands, used with IN and NOT IN.
type MultiValueOperand struct {
	Values []Operand
}

func (MultiValueOperand) isOperand() {}

func (o MultiValueOperand) String() string {
	parts := make([]string, 0, len(o.Values))
	for _, v := range o.Values {
		parts = append(parts, v.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FunctionOperand is a named function invocation such as membersOf("jira-users").
type FunctionOperand struct {
	Name string
	Args []string
}

func (FunctionOperand) isOperand() {}

func (o FunctionOperand) String() string {
	args := make([]string, 0, len(o.Args))
	for _, a := range o.Args {
		args = append(args, quoteString(a))
	}
	return o.Name + "(" + strings.Join(args, ", ") + ")"
}

// EmptyOperand is the EMPTY marker.
type EmptyOperand struct{}

func (EmptyOperand) isOperand() {}

func (EmptyOperand) String() string { return EmptyOperandName }

// Empty is the shared EMPTY operand.
var Empty Operand = EmptyOperand{}

// StringValue returns a single string operand.
func StringValue(s string) SingleValueOperand {
	return SingleValueOperand{StringValue: s}
}

// NumberValue returns a single numeric operand.
func NumberValue(n int64) SingleValueOperand {
	return SingleValueOperand{NumberValue: n, IsNumber: true}
}

// NewStringsOperand builds a list operand from strings. The list must be
// non-empty and no element may be empty.
func NewStringsOperand(values ...string) (MultiValueOperand, error) {
	if len(values) == 0 {
		return MultiValueOperand{}, invalidArgument("values is empty")
	}
	ops := make([]Operand, 0, len(values))
	for i, v := range values {
		if v == "" {
			return MultiValueOperand{}, invalidArgument("values[%d] is absent", i)
		}
		ops = append(ops, StringValue(v))
	}
	return MultiValueOperand{Values: ops}, nil
}

// NewNumbersOperand builds a list operand from numbers. The list must be non-empty.
func NewNumbersOperand(values ...int64) (MultiValueOperand, error) {
	if len(values) == 0 {
		return MultiValueOperand{}, invalidArgument("values is empty")
	}
	ops := make([]Operand, 0, len(values))
	for _, v := range values {
		ops = append(ops, NumberValue(v))
	}
	return MultiValueOperand{Values: ops}, nil
}

// NewMultiValueOperand builds a list operand from other operands. The list
// must be non-empty and must not contain nil.
func NewMultiValueOperand(operands ...Operand) (MultiValueOperand, error) {
	if len(operands) == 0 {
		return MultiValueOperand{}, invalidArgument("operands is empty")
	}
	ops := make([]Operand, 0, len(operands))
	for i, o := range operands {
		if o == nil {
			return MultiValueOperand{}, invalidArgument("operands[%d] is absent", i)
		}
		ops = append(ops, o)
	}
	return MultiValueOperand{Values: ops}, nil
}

// NewFunctionOperand builds a function operand. Arguments may be omitted but
// none of them may be empty.
func NewFunctionOperand(name string, args ...string) (FunctionOperand, error) {
	if name == "" {
		return FunctionOperand{}, invalidArgument("function name is absent")
	}
	for i, a := range args {
		if a == "" {
			return FunctionOperand{}, invalidArgument("function %s: args[%d] is absent", name, i)
		}
	}
	return FunctionOperand{Name: name, Args: append([]string{}, args...)}, nil
}

// validateOperand checks an operand received from outside the constructors.
func validateOperand(o Operand) error {
	switch x := o.(type) {
	case nil:
		return invalidArgument("operand is absent")
	case MultiValueOperand:
		if len(x.Values) == 0 {
			return invalidArgument("operand list is empty")
		}
		for i, v := range x.Values {
			if v == nil {
				return invalidArgument("operand list element %d is absent", i)
			}
			if err := validateOperand(v); err != nil {
				return err
			}
		}
	case FunctionOperand:
		if x.Name == "" {
			return invalidArgument("function name is absent")
		}
	}
	return nil
}

func quoteString(s string) string {
	return strconv.Quote(s)
}
