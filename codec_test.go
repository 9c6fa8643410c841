package jqlb

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/vmihailenco/msgpack/v5"
)

func TestQueryJSON(t *testing.T) {
	q := sampleQuery(t)

	data, err := MarshalQueryJSON(q)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(data))

	doc := gjson.ParseBytes(data)
	assert.Equal(t, "project", doc.Get("where.or.0.and.0.field").String())
	assert.Equal(t, "in", doc.Get("where.or.0.and.0.operator").String())
	assert.Equal(t, "HSP", doc.Get("where.or.0.and.0.operand.values.0.value").String())
	assert.Equal(t, "status", doc.Get("where.or.0.and.1.not.or.0.field").String())
	assert.Equal(t, "currentUser", doc.Get("where.or.0.and.2.operand.function").String())
	assert.Equal(t, int64(10), doc.Get("where.or.1.operand.number").Int())
	assert.Equal(t, "DESC", doc.Get("orderBy.0.order").String())

	decoded, err := UnmarshalQueryJSON(data)
	require.NoError(t, err)
	assert.Equal(t, q, decoded)
}

func TestQueryMsgpack(t *testing.T) {
	q := sampleQuery(t)

	data, err := MarshalQueryMsgpack(q)
	require.NoError(t, err)

	decoded, err := UnmarshalQueryMsgpack(data)
	require.NoError(t, err)
	assert.Equal(t, q, decoded)

	t.Run("EmptyQuery", func(t *testing.T) {
		data, err := MarshalQueryMsgpack(Query{})
		require.NoError(t, err)
		decoded, err := UnmarshalQueryMsgpack(data)
		require.NoError(t, err)
		assert.Equal(t, Query{}, decoded)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := UnmarshalQueryMsgpack(nil)
		assert.True(t, errors.Is(err, ErrMalformedDocument))

		_, err = UnmarshalQueryMsgpack([]byte{0xc1})
		assert.True(t, errors.Is(err, ErrMalformedDocument))
	})

	t.Run("MixedOperand", func(t *testing.T) {
		value, number := "Open", int64(3)
		data, err := msgpack.Marshal(&queryDoc{Where: &clauseDoc{
			Field:    "status",
			Operator: "=",
			Operand:  &operandDoc{Value: &value, Number: &number},
		}})
		require.NoError(t, err)

		_, err = UnmarshalQueryMsgpack(data)
		assert.True(t, errors.Is(err, ErrMalformedDocument), "got %v", err)
	})
}

func TestDecodeQueryJSON(t *testing.T) {
	t.Run("HandWritten", func(t *testing.T) {
		q, err := UnmarshalQueryJSON([]byte(`{
			"where": {"and": [
				{"field": "status", "operator": "=", "operand": {"value": "Open"}},
				{"not": {"field": "assignee", "operator": "is", "operand": {"empty": true}}}
			]},
			"orderBy": [{"field": "created", "order": "desc"}, {"field": "key"}]
		}`))
		require.NoError(t, err)
		assert.Equal(t, `status = "Open" AND NOT assignee is EMPTY ORDER BY created DESC, key`, q.String())
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		q, err := UnmarshalQueryJSON([]byte(`{"where": null}`))
		require.NoError(t, err)
		assert.Equal(t, Query{}, q)
	})

	t.Run("ConfigLogger", func(t *testing.T) {
		q, err := DecodeQueryJSON([]byte(`{"where": {"field": "votes", "operator": ">", "operand": {"number": 3}}}`), &Config{})
		require.NoError(t, err)
		assert.Equal(t, NewTerminalClause("votes", OperatorGreaterThan, NumberValue(3)), q.Where)
	})

	t.Run("NumberLimits", func(t *testing.T) {
		q, err := UnmarshalQueryJSON([]byte(`{"where": {"field": "votes", "operator": ">", "operand": {"number": -9223372036854775808}}}`))
		require.NoError(t, err)
		assert.Equal(t, NewTerminalClause("votes", OperatorGreaterThan, NumberValue(-9223372036854775808)), q.Where)
	})

	tests := []struct {
		name string
		doc  string
	}{
		{"InvalidJSON", `{"where":`},
		{"NotAnObject", `[1, 2]`},
		{"TwoKinds", `{"where": {"and": [], "field": "a", "operator": "=", "operand": {"value": "x"}}}`},
		{"NoKind", `{"where": {}}`},
		{"AndWithOneChild", `{"where": {"and": [{"field": "a", "operator": "=", "operand": {"value": "x"}}]}}`},
		{"UnknownOperator", `{"where": {"field": "a", "operator": "==", "operand": {"value": "x"}}}`},
		{"MissingOperand", `{"where": {"field": "a", "operator": "="}}`},
		{"NumberAsString", `{"where": {"field": "a", "operator": "=", "operand": {"number": "3"}}}`},
		{"NumberFraction", `{"where": {"field": "votes", "operator": ">", "operand": {"number": 1.9}}}`},
		{"NumberExponent", `{"where": {"field": "votes", "operator": ">", "operand": {"number": 1e30}}}`},
		{"NumberOverflow", `{"where": {"field": "votes", "operator": ">", "operand": {"number": 9223372036854775808}}}`},
		{"ValueAndNumber", `{"where": {"field": "a", "operator": "=", "operand": {"value": "x", "number": 1}}}`},
		{"ValuesAndEmpty", `{"where": {"field": "a", "operator": "in", "operand": {"values": [{"value": "x"}], "empty": true}}}`},
		{"EmptyValueList", `{"where": {"field": "a", "operator": "in", "operand": {"values": []}}}`},
		{"EmptyField", `{"where": {"field": "", "operator": "=", "operand": {"value": "x"}}}`},
		{"OrderByNotArray", `{"orderBy": {"field": "a"}}`},
		{"UnknownSortOrder", `{"orderBy": [{"field": "a", "order": "sideways"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalQueryJSON([]byte(tt.doc))
			assert.True(t, errors.Is(err, ErrMalformedDocument), "got %v", err)
		})
	}
}
