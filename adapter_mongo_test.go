package jqlb

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestBuildMongoFilter(t *testing.T) {
	tests := []struct {
		name   string
		clause Clause
		want   bson.M
	}{
		{"Eq", eq("status", "Open"), bson.M{"status": "Open"}},
		{"Neq", NewTerminalClause("status", OperatorNotEquals, StringValue("Open")), bson.M{"status": bson.M{"$ne": "Open"}}},
		{"Gt", NewTerminalClause("votes", OperatorGreaterThan, NumberValue(3)), bson.M{"votes": bson.M{"$gt": int64(3)}}},
		{"Lte", NewTerminalClause("votes", OperatorLessThanEquals, NumberValue(3)), bson.M{"votes": bson.M{"$lte": int64(3)}}},
		{"In", NewTerminalClause("status", OperatorIn, MultiValueOperand{Values: []Operand{StringValue("Open")}}),
			bson.M{"status": bson.M{"$in": []any{"Open"}}}},
		{"NotIn", NewTerminalClause("status", OperatorNotIn, MultiValueOperand{Values: []Operand{StringValue("Open")}}),
			bson.M{"status": bson.M{"$nin": []any{"Open"}}}},
		{"Contains", NewTerminalClause("summary", OperatorLike, StringValue("a.b")),
			bson.M{"summary": primitive.Regex{Pattern: `a\.b`, Options: "i"}}},
		{"NotContains", NewTerminalClause("summary", OperatorNotLike, StringValue("x")),
			bson.M{"summary": bson.M{"$not": primitive.Regex{Pattern: "x", Options: "i"}}}},
		{"IsEmpty", NewTerminalClause("assignee", OperatorIs, Empty), bson.M{"assignee": nil}},
		{"IsNotEmpty", NewTerminalClause("assignee", OperatorIsNot, Empty), bson.M{"assignee": bson.M{"$ne": nil}}},
		{"NotAnd", Not(And(eq("a", "1"), eq("b", "2"))),
			bson.M{"$nor": []bson.M{{"$and": []bson.M{{"a": "1"}, {"b": "2"}}}}}},
		{"Or", Or(eq("a", "1"), eq("b", "2")),
			bson.M{"$or": []bson.M{{"a": "1"}, {"b": "2"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildMongoFilter(tt.clause, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("NilClauseMatchesAll", func(t *testing.T) {
		got, err := BuildMongoFilter(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, bson.M{}, got)
	})

	t.Run("ColumnNaming", func(t *testing.T) {
		got, err := BuildMongoFilter(eq("fixVersion", "1.0"), &AdapterOptions{ColumnMapping: map[string]string{"fixVersion": "fix.name"}})
		require.NoError(t, err)
		assert.Equal(t, bson.M{"fix.name": "1.0"}, got)
	})

	t.Run("UnevaluatedFunction", func(t *testing.T) {
		c := buildClause(t, NewClauseBuilder(nil).ReporterIsCurrentUser())
		_, err := BuildMongoFilter(c, nil)
		assert.True(t, errors.Is(err, ErrUnsupportedClause))
	})
}

func TestBuildMongoPipelineAndOptions(t *testing.T) {
	q := Query{
		Where:   eq("status", "Open"),
		OrderBy: []SearchSort{{"votes", SortOrderDesc}, {"key", SortOrderDefault}},
	}
	opts := &AdapterOptions{Page: Page{Skip: 5, Take: 10}}

	pipeline, err := BuildMongoAggregatePipeline(q, opts)
	require.NoError(t, err)
	assert.Equal(t, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": "Open"}}},
		{{Key: "$sort", Value: bson.D{{Key: "votes", Value: -1}, {Key: "key", Value: 1}}}},
		{{Key: "$skip", Value: int64(5)}},
		{{Key: "$limit", Value: int64(10)}},
	}, pipeline)

	fo := BuildMongoFindOptions(q, opts)
	require.NotNil(t, fo.Limit)
	require.NotNil(t, fo.Skip)
	assert.Equal(t, int64(10), *fo.Limit)
	assert.Equal(t, int64(5), *fo.Skip)
	assert.Equal(t, bson.D{{Key: "votes", Value: -1}, {Key: "key", Value: 1}}, fo.Sort)

	empty, err := BuildMongoAggregatePipeline(Query{}, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
