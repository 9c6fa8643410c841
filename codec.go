package jqlb

import (
	"strconv"
	"strings"
)

// queryDoc is the serialised form of a Query shared by the JSON and
// MessagePack codecs.
type queryDoc struct {
	Where   *clauseDoc `msgpack:"where,omitempty"`
	OrderBy []sortDoc  `msgpack:"orderBy,omitempty"`
}

// clauseDoc holds exactly one of And, Or, Not or a terminal (Field, Operator, Operand).
type clauseDoc struct {
	And      []*clauseDoc `msgpack:"and,omitempty"`
	Or       []*clauseDoc `msgpack:"or,omitempty"`
	Not      *clauseDoc   `msgpack:"not,omitempty"`
	Field    string       `msgpack:"field,omitempty"`
	Operator string       `msgpack:"operator,omitempty"`
	Operand  *operandDoc  `msgpack:"operand,omitempty"`
}

type operandDoc struct {
	Value    *string       `msgpack:"value,omitempty"`
	Number   *int64        `msgpack:"number,omitempty"`
	Values   []*operandDoc `msgpack:"values,omitempty"`
	Function string        `msgpack:"function,omitempty"`
	Args     []string      `msgpack:"args,omitempty"`
	Empty    bool          `msgpack:"empty,omitempty"`
}

type sortDoc struct {
	Field string `msgpack:"field"`
	Order string `msgpack:"order,omitempty"`
}

func queryToDoc(q Query) (queryDoc, error) {
	var doc queryDoc
	if q.Where != nil {
		w, err := clauseToDoc(q.Where)
		if err != nil {
			return queryDoc{}, err
		}
		doc.Where = w
	}
	for _, s := range q.OrderBy {
		doc.OrderBy = append(doc.OrderBy, sortDoc{Field: s.Field, Order: string(s.Order)})
	}
	return doc, nil
}

func clauseToDoc(c Clause) (*clauseDoc, error) {
	switch x := c.(type) {
	case TerminalClause:
		operand, err := operandToDoc(x.Operand)
		if err != nil {
			return nil, err
		}
		return &clauseDoc{Field: x.Field, Operator: string(x.Operator), Operand: operand}, nil
	case NotClause:
		child, err := clauseToDoc(x.Child)
		if err != nil {
			return nil, err
		}
		return &clauseDoc{Not: child}, nil
	case AndClause:
		children, err := clausesToDocs(x.Children)
		if err != nil {
			return nil, err
		}
		return &clauseDoc{And: children}, nil
	case OrClause:
		children, err := clausesToDocs(x.Children)
		if err != nil {
			return nil, err
		}
		return &clauseDoc{Or: children}, nil
	default:
		return nil, invalidArgument("cannot encode clause %T", c)
	}
}

func clausesToDocs(children []Clause) ([]*clauseDoc, error) {
	out := make([]*clauseDoc, 0, len(children))
	for _, child := range children {
		d, err := clauseToDoc(child)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func operandToDoc(o Operand) (*operandDoc, error) {
	switch x := o.(type) {
	case SingleValueOperand:
		if x.IsNumber {
			n := x.NumberValue
			return &operandDoc{Number: &n}, nil
		}
		s := x.StringValue
		return &operandDoc{Value: &s}, nil
	case MultiValueOperand:
		values := make([]*operandDoc, 0, len(x.Values))
		for _, v := range x.Values {
			d, err := operandToDoc(v)
			if err != nil {
				return nil, err
			}
			values = append(values, d)
		}
		return &operandDoc{Values: values}, nil
	case FunctionOperand:
		return &operandDoc{Function: x.Name, Args: append([]string{}, x.Args...)}, nil
	case EmptyOperand:
		return &operandDoc{Empty: true}, nil
	default:
		return nil, invalidArgument("cannot encode operand %T", o)
	}
}

// docToQuery rebuilds a query and replays it through a QueryBuilder, so a
// decoded query obeys the same invariants as a built one.
func docToQuery(doc queryDoc, cfg *Config) (Query, error) {
	var q Query
	if doc.Where != nil {
		w, err := docToClause(doc.Where, "where")
		if err != nil {
			return Query{}, err
		}
		q.Where = w
	}
	for _, s := range doc.OrderBy {
		q.OrderBy = append(q.OrderBy, SearchSort{Field: s.Field, Order: SortOrder(strings.ToUpper(s.Order))})
	}
	out, err := NewQueryBuilderFrom(q, cfg).BuildQuery()
	if err != nil {
		return Query{}, malformed("%v", err)
	}
	return out, nil
}

func docToClause(d *clauseDoc, path string) (Clause, error) {
	if d == nil {
		return nil, malformed("%s: clause is null", path)
	}
	kinds := 0
	for _, set := range []bool{d.And != nil, d.Or != nil, d.Not != nil, d.Field != "" || d.Operator != "" || d.Operand != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, malformed("%s: clause must hold exactly one of and, or, not or a condition", path)
	}

	switch {
	case d.And != nil:
		children, err := docsToClauses(d.And, path+".and")
		if err != nil {
			return nil, err
		}
		return AndClause{Children: children}, nil
	case d.Or != nil:
		children, err := docsToClauses(d.Or, path+".or")
		if err != nil {
			return nil, err
		}
		return OrClause{Children: children}, nil
	case d.Not != nil:
		child, err := docToClause(d.Not, path+".not")
		if err != nil {
			return nil, err
		}
		return NotClause{Child: child}, nil
	}

	operand, err := docToOperand(d.Operand, path+".operand")
	if err != nil {
		return nil, err
	}
	return NewTerminalClause(d.Field, Operator(d.Operator), operand), nil
}

func docsToClauses(docs []*clauseDoc, path string) ([]Clause, error) {
	out := make([]Clause, 0, len(docs))
	for i, d := range docs {
		c, err := docToClause(d, path+"."+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func docToOperand(d *operandDoc, path string) (Operand, error) {
	if d == nil {
		return nil, malformed("%s: operand is missing", path)
	}
	kinds := 0
	for _, set := range []bool{d.Value != nil, d.Number != nil, d.Values != nil, d.Function != "", d.Empty} {
		if set {
			kinds++
		}
	}
	if kinds > 1 {
		return nil, malformed("%s: operand must hold exactly one of value, number, values, function or empty", path)
	}
	switch {
	case d.Value != nil:
		return StringValue(*d.Value), nil
	case d.Number != nil:
		return NumberValue(*d.Number), nil
	case d.Values != nil:
		values := make([]Operand, 0, len(d.Values))
		for i, v := range d.Values {
			o, err := docToOperand(v, path+".values."+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			values = append(values, o)
		}
		return MultiValueOperand{Values: values}, nil
	case d.Function != "":
		return FunctionOperand{Name: d.Function, Args: append([]string{}, d.Args...)}, nil
	case d.Empty:
		return Empty, nil
	}
	return nil, malformed("%s: operand has no value, number, values, function or empty", path)
}
