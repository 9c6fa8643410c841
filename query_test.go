package jqlb

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuery(t *testing.T) Query {
	t.Helper()
	q, err := NewQueryBuilder(nil).
		Where().
		Project("HSP").And().
		Not().Sub().Status("Closed").Or().Resolution("Won't Fix").Endsub().And().
		AssigneeIsCurrentUser().Or().
		VotesCondition().GtNumber(10).
		EndWhere().
		OrderBy().
		Add(FieldPriority, SortOrderDesc).
		CreatedDate(SortOrderAsc, false).
		BuildQuery()
	require.NoError(t, err)
	return q
}

func TestQueryBuilder(t *testing.T) {
	q := sampleQuery(t)

	assert.Equal(t,
		`project in ("HSP") AND NOT (status in ("Closed") OR resolution in ("Won't Fix")) AND assignee = currentUser() OR votes > 10 ORDER BY priority DESC, created ASC`,
		q.String())
}

func TestQueryBuilderRoundTrip(t *testing.T) {
	q := sampleQuery(t)

	replayed, err := NewQueryBuilderFrom(q, nil).BuildQuery()
	require.NoError(t, err)
	assert.Equal(t, q, replayed)

	t.Run("ReplayedClauseIsAGroup", func(t *testing.T) {
		extended, err := NewQueryBuilderFrom(q, nil).Where().And().Labels("backend").BuildQuery()
		require.NoError(t, err)

		and, ok := extended.Where.(AndClause)
		require.True(t, ok)
		require.Len(t, and.Children, 2)
		assert.Equal(t, q.Where, and.Children[0])
		assert.Equal(t, q.OrderBy, extended.OrderBy)
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		replayed, err := NewQueryBuilderFrom(Query{}, nil).BuildQuery()
		require.NoError(t, err)
		assert.Equal(t, Query{}, replayed)
	})
}

func TestQueryBuilderErrors(t *testing.T) {
	qb := NewQueryBuilder(nil)
	qb.Where().Status("Open").And()
	_, err := qb.BuildQuery()
	assert.True(t, errors.Is(err, ErrIllegalBuilderState))

	qb.Clear()
	qb.OrderBy().Add("", SortOrderAsc)
	_, err = qb.Where().Status("Open").BuildQuery()
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	qb.Clear()
	q, err := qb.BuildQuery()
	require.NoError(t, err)
	assert.Equal(t, Query{}, q)
	assert.Equal(t, "", q.String())
}

func TestRenderJQL(t *testing.T) {
	a, b, c := eq("a", "1"), eq("b", "2"), eq("c", "3")

	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{"OrInsideAnd", Query{Where: And(Or(a, b), c)}, `(a = "1" OR b = "2") AND c = "3"`},
		{"AndInsideOr", Query{Where: Or(And(a, b), c)}, `a = "1" AND b = "2" OR c = "3"`},
		{"NestedSameKind", Query{Where: And(And(a, b), c)}, `(a = "1" AND b = "2") AND c = "3"`},
		{"NotTerminal", Query{Where: Not(a)}, `NOT a = "1"`},
		{"NotGroup", Query{Where: Not(Or(a, b))}, `NOT (a = "1" OR b = "2")`},
		{"EscapedString", Query{Where: eq("summary", `say "hi"`)}, `summary = "say \"hi\""`},
		{"OrderOnly", Query{OrderBy: []SearchSort{{"created", SortOrderDesc}, {"Story Points", SortOrderDefault}}}, `ORDER BY created DESC, "Story Points"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderJQL(tt.query))
		})
	}
}

func TestTerminals(t *testing.T) {
	q := sampleQuery(t)
	var fields []string
	for _, term := range Terminals(q.Where) {
		fields = append(fields, term.Field)
	}
	assert.Equal(t, []string{"project", "status", "resolution", "assignee", "votes"}, fields)
}
