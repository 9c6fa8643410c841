package jqlb

// Clause is a node of the immutable query expression tree.
type Clause interface {
	isClause()
	String() string
	precedence() int
}

const (
	precedenceOr = iota + 1
	precedenceAnd
	precedenceNot
	precedenceTerminal
)

// TerminalClause is a leaf condition: field, operator and operand.
type TerminalClause struct {
	Field    string
	Operator Operator
	Operand  Operand
}

// NotClause negates exactly one child.
type NotClause struct {
	Child Clause
}

// AndClause joins two or more children with AND.
type AndClause struct {
	Children []Clause
}

// OrClause joins two or more children with OR.
type OrClause struct {
	Children []Clause
}

func (TerminalClause) isClause() {}
func (NotClause) isClause()      {}
func (AndClause) isClause()      {}
func (OrClause) isClause()       {}

func (TerminalClause) precedence() int { return precedenceTerminal }
func (NotClause) precedence() int      { return precedenceNot }
func (AndClause) precedence() int      { return precedenceAnd }
func (OrClause) precedence() int       { return precedenceOr }

// NewTerminalClause returns a terminal clause.
func NewTerminalClause(field string, operator Operator, operand Operand) TerminalClause {
	return TerminalClause{Field: field, Operator: operator, Operand: operand}
}

// Not wraps c in a NotClause.
func Not(c Clause) Clause {
	return NotClause{Child: c}
}

// And joins clauses with AND. A single clause is returned unchanged and no
// clauses yields nil, so an AndClause never holds fewer than two children.
func And(clauses ...Clause) Clause {
	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0]
	}
	return AndClause{Children: append([]Clause{}, clauses...)}
}

// Or joins clauses with OR, collapsing degenerate sequences like And.
func Or(clauses ...Clause) Clause {
	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0]
	}
	return OrClause{Children: append([]Clause{}, clauses...)}
}

// Visitor is called for every node by Walk. Returning false skips the node's children.
type Visitor func(c Clause, depth int) bool

// Walk visits the tree rooted at c depth first, left to right. It keeps its
// own stack so deeply nested trees do not grow the goroutine stack.
func Walk(c Clause, visit Visitor) {
	if c == nil {
		return
	}
	type item struct {
		clause Clause
		depth  int
	}
	stack := []item{{c, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(it.clause, it.depth) {
			continue
		}
		children := childrenOf(it.clause)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{children[i], it.depth + 1})
		}
	}
}

func childrenOf(c Clause) []Clause {
	switch x := c.(type) {
	case NotClause:
		return []Clause{x.Child}
	case AndClause:
		return x.Children
	case OrClause:
		return x.Children
	default:
		return nil
	}
}

// Terminals returns every terminal clause of the tree in order.
func Terminals(c Clause) []TerminalClause {
	var out []TerminalClause
	Walk(c, func(n Clause, _ int) bool {
		if t, ok := n.(TerminalClause); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// cloneClause deep-copies c so the result shares no slices with it.
func cloneClause(c Clause) Clause {
	if c == nil {
		return nil
	}
	type item struct {
		src  Clause
		kids []Clause
		out  []Clause
	}
	stack := []*item{{src: c, kids: childrenOf(c)}}
	var result Clause
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if len(top.out) < len(top.kids) {
			next := top.kids[len(top.out)]
			stack = append(stack, &item{src: next, kids: childrenOf(next)})
			continue
		}
		stack = stack[:len(stack)-1]

		var built Clause
		switch x := top.src.(type) {
		case TerminalClause:
			built = TerminalClause{Field: x.Field, Operator: x.Operator, Operand: cloneOperand(x.Operand)}
		case NotClause:
			built = NotClause{Child: top.out[0]}
		case AndClause:
			built = AndClause{Children: top.out}
		case OrClause:
			built = OrClause{Children: top.out}
		default:
			built = top.src
		}
		if len(stack) == 0 {
			result = built
		} else {
			parent := stack[len(stack)-1]
			parent.out = append(parent.out, built)
		}
	}
	return result
}

func cloneOperand(o Operand) Operand {
	switch x := o.(type) {
	case MultiValueOperand:
		values := make([]Operand, len(x.Values))
		for i, v := range x.Values {
			values[i] = cloneOperand(v)
		}
		return MultiValueOperand{Values: values}
	case FunctionOperand:
		return FunctionOperand{Name: x.Name, Args: append([]string{}, x.Args...)}
	default:
		return o
	}
}
