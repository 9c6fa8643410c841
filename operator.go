package jqlb

// Operator is the comparison applied between a field and its operand.
type Operator string

const (
	OperatorEquals            Operator = "="
	OperatorNotEquals         Operator = "!="
	OperatorLike              Operator = "~"
	OperatorNotLike           Operator = "!~"
	OperatorIs                Operator = "is"
	OperatorIsNot             Operator = "is not"
	OperatorLessThan          Operator = "<"
	OperatorLessThanEquals    Operator = "<="
	OperatorGreaterThan       Operator = ">"
	OperatorGreaterThanEquals Operator = ">="
	OperatorIn                Operator = "in"
	OperatorNotIn             Operator = "not in"
)

// Operators lists every operator in declaration order.
var Operators = []Operator{
	OperatorEquals, OperatorNotEquals, OperatorLike, OperatorNotLike, OperatorIs, OperatorIsNot,
	OperatorLessThan, OperatorLessThanEquals, OperatorGreaterThan, OperatorGreaterThanEquals,
	OperatorIn, OperatorNotIn,
}

func (o Operator) String() string { return string(o) }

// Valid reports whether o is one of the declared operators.
func (o Operator) Valid() bool {
	for _, op := range Operators {
		if op == o {
			return true
		}
	}
	return false
}

// IsList reports whether the operator takes a list operand.
func (o Operator) IsList() bool {
	return o == OperatorIn || o == OperatorNotIn
}

// IsEmptyOnly reports whether the operator only makes sense with EMPTY.
func (o Operator) IsEmptyOnly() bool {
	return o == OperatorIs || o == OperatorIsNot
}

// Accepts reports whether the operand shape is the one the operator documents.
// The builder never enforces this; AddCondition allows any pairing.
func (o Operator) Accepts(operand Operand) bool {
	switch operand.(type) {
	case EmptyOperand:
		return o.IsEmptyOnly() || o == OperatorEquals || o == OperatorNotEquals
	case MultiValueOperand:
		return o.IsList()
	case FunctionOperand:
		return !o.IsEmptyOnly()
	case SingleValueOperand:
		return !o.IsList() && !o.IsEmptyOnly()
	default:
		return false
	}
}
