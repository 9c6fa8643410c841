package jqlb

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MarshalQueryJSON encodes q as a JSON query document:
//
//	{"where": {"and": [{"field": "project", "operator": "in", "operand": {"values": [{"value": "HSP"}]}}, ...]},
//	 "orderBy": [{"field": "created", "order": "DESC"}]}
func MarshalQueryJSON(q Query) ([]byte, error) {
	doc, err := queryToDoc(q)
	if err != nil {
		return nil, err
	}
	out := []byte(`{}`)
	if doc.Where != nil {
		raw, err := clauseDocJSON(doc.Where)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "where", raw); err != nil {
			return nil, err
		}
	}
	if len(doc.OrderBy) > 0 {
		if out, err = sjson.SetRawBytes(out, "orderBy", []byte(`[]`)); err != nil {
			return nil, err
		}
		for _, s := range doc.OrderBy {
			raw, err := sjson.SetBytes([]byte(`{}`), "field", s.Field)
			if err != nil {
				return nil, err
			}
			if s.Order != "" {
				if raw, err = sjson.SetBytes(raw, "order", s.Order); err != nil {
					return nil, err
				}
			}
			if out, err = sjson.SetRawBytes(out, "orderBy.-1", raw); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func clauseDocJSON(d *clauseDoc) ([]byte, error) {
	var (
		key      string
		children []*clauseDoc
	)
	switch {
	case d.And != nil:
		key, children = "and", d.And
	case d.Or != nil:
		key, children = "or", d.Or
	case d.Not != nil:
		child, err := clauseDocJSON(d.Not)
		if err != nil {
			return nil, err
		}
		return sjson.SetRawBytes([]byte(`{}`), "not", child)
	default:
		out, err := sjson.SetBytes([]byte(`{}`), "field", d.Field)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, "operator", d.Operator); err != nil {
			return nil, err
		}
		operand, err := operandDocJSON(d.Operand)
		if err != nil {
			return nil, err
		}
		return sjson.SetRawBytes(out, "operand", operand)
	}

	out, err := sjson.SetRawBytes([]byte(`{}`), key, []byte(`[]`))
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		raw, err := clauseDocJSON(child)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, key+".-1", raw); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func operandDocJSON(d *operandDoc) ([]byte, error) {
	empty := []byte(`{}`)
	switch {
	case d.Value != nil:
		return sjson.SetBytes(empty, "value", *d.Value)
	case d.Number != nil:
		return sjson.SetBytes(empty, "number", *d.Number)
	case d.Values != nil:
		out, err := sjson.SetRawBytes(empty, "values", []byte(`[]`))
		if err != nil {
			return nil, err
		}
		for _, v := range d.Values {
			raw, err := operandDocJSON(v)
			if err != nil {
				return nil, err
			}
			if out, err = sjson.SetRawBytes(out, "values.-1", raw); err != nil {
				return nil, err
			}
		}
		return out, nil
	case d.Function != "":
		out, err := sjson.SetBytes(empty, "function", d.Function)
		if err != nil {
			return nil, err
		}
		return sjson.SetBytes(out, "args", d.Args)
	default:
		return sjson.SetBytes(empty, "empty", true)
	}
}

// UnmarshalQueryJSON decodes a JSON query document produced by MarshalQueryJSON
// or written by hand. Invalid documents fail with ErrMalformedDocument.
func UnmarshalQueryJSON(data []byte) (Query, error) {
	return DecodeQueryJSON(data, nil)
}

// DecodeQueryJSON is UnmarshalQueryJSON with an explicit builder configuration.
func DecodeQueryJSON(data []byte, cfg *Config) (Query, error) {
	if !gjson.ValidBytes(data) {
		return Query{}, malformed("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Query{}, malformed("query document must be an object")
	}

	var doc queryDoc
	if where := root.Get("where"); where.Exists() && where.Type != gjson.Null {
		w, err := jsonClauseDoc(where, "where")
		if err != nil {
			return Query{}, err
		}
		doc.Where = w
	}
	if orderBy := root.Get("orderBy"); orderBy.Exists() && orderBy.Type != gjson.Null {
		if !orderBy.IsArray() {
			return Query{}, malformed("orderBy must be an array")
		}
		for i, s := range orderBy.Array() {
			field := s.Get("field")
			if !s.IsObject() || field.Type != gjson.String {
				return Query{}, malformed("orderBy.%d: field must be a string", i)
			}
			doc.OrderBy = append(doc.OrderBy, sortDoc{Field: field.String(), Order: s.Get("order").String()})
		}
	}
	return docToQuery(doc, cfg)
}

func jsonClauseDoc(r gjson.Result, path string) (*clauseDoc, error) {
	if !r.IsObject() {
		return nil, malformed("%s: clause must be an object", path)
	}
	d := &clauseDoc{}
	for _, key := range []string{"and", "or"} {
		list := r.Get(key)
		if !list.Exists() {
			continue
		}
		if !list.IsArray() {
			return nil, malformed("%s.%s must be an array", path, key)
		}
		children := make([]*clauseDoc, 0)
		for i, item := range list.Array() {
			child, err := jsonClauseDoc(item, path+"."+key+"."+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if key == "and" {
			d.And = children
		} else {
			d.Or = children
		}
	}
	if not := r.Get("not"); not.Exists() {
		child, err := jsonClauseDoc(not, path+".not")
		if err != nil {
			return nil, err
		}
		d.Not = child
	}
	if field := r.Get("field"); field.Exists() {
		if field.Type != gjson.String {
			return nil, malformed("%s.field must be a string", path)
		}
		d.Field = field.String()
		d.Operator = r.Get("operator").String()
		operand, err := jsonOperandDoc(r.Get("operand"), path+".operand")
		if err != nil {
			return nil, err
		}
		d.Operand = operand
	}
	return d, nil
}

func jsonOperandDoc(r gjson.Result, path string) (*operandDoc, error) {
	if !r.IsObject() {
		return nil, malformed("%s: operand must be an object", path)
	}
	var keys []string
	for _, key := range []string{"value", "number", "values", "function", "empty"} {
		if r.Get(key).Exists() {
			keys = append(keys, key)
		}
	}
	if len(keys) > 1 {
		return nil, malformed("%s: operand mixes %s", path, strings.Join(keys, ", "))
	}
	d := &operandDoc{}
	switch {
	case r.Get("value").Exists():
		v := r.Get("value")
		if v.Type != gjson.String {
			return nil, malformed("%s.value must be a string", path)
		}
		s := v.String()
		d.Value = &s
	case r.Get("number").Exists():
		v := r.Get("number")
		if v.Type != gjson.Number {
			return nil, malformed("%s.number must be a number", path)
		}
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return nil, malformed("%s.number must be an integer in int64 range, got %s", path, v.Raw)
		}
		d.Number = &n
	case r.Get("values").Exists():
		v := r.Get("values")
		if !v.IsArray() {
			return nil, malformed("%s.values must be an array", path)
		}
		d.Values = make([]*operandDoc, 0)
		for i, item := range v.Array() {
			o, err := jsonOperandDoc(item, path+".values."+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			d.Values = append(d.Values, o)
		}
	case r.Get("function").Exists():
		d.Function = r.Get("function").String()
		if d.Function == "" {
			return nil, malformed("%s.function must be a non-empty string", path)
		}
		for _, a := range r.Get("args").Array() {
			d.Args = append(d.Args, a.String())
		}
	case r.Get("empty").Bool():
		d.Empty = true
	default:
		return nil, malformed("%s: operand has no value, number, values, function or empty", path)
	}
	return d, nil
}
