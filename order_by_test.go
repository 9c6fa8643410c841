package jqlb

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderByBuilder(t *testing.T) {
	t.Run("AppendKeepsOrder", func(t *testing.T) {
		sorts, err := NewOrderByBuilder(nil).
			Add("status", SortOrderDesc).
			Add("created", SortOrderAsc).
			BuildOrderBy()
		require.NoError(t, err)
		assert.Equal(t, []SearchSort{{"status", SortOrderDesc}, {"created", SortOrderAsc}}, sorts)
	})

	t.Run("MakePrimaryInsertsFirst", func(t *testing.T) {
		sorts, err := NewOrderByBuilder(nil).
			Add("status", SortOrderDesc).
			Add("created", SortOrderAsc).
			AddFirst("priority", SortOrderDefault).
			BuildOrderBy()
		require.NoError(t, err)
		assert.Equal(t, []SearchSort{{"priority", SortOrderDefault}, {"status", SortOrderDesc}, {"created", SortOrderAsc}}, sorts)
	})

	t.Run("SystemFieldHelpers", func(t *testing.T) {
		sorts, err := NewOrderByBuilder(nil).
			Project(SortOrderAsc, false).
			DueDate(SortOrderDesc, false).
			IssueKey(SortOrderDefault, true).
			BuildOrderBy()
		require.NoError(t, err)
		assert.Equal(t, []SearchSort{{FieldIssueKey, SortOrderDefault}, {FieldProject, SortOrderAsc}, {FieldDue, SortOrderDesc}}, sorts)
	})

	t.Run("CustomResolver", func(t *testing.T) {
		cfg := &Config{Resolver: resolverFunc(func(id string) string { return "x_" + id })}
		sorts, err := NewOrderByBuilder(cfg).Status(SortOrderAsc, false).BuildOrderBy()
		require.NoError(t, err)
		assert.Equal(t, []SearchSort{{"x_status", SortOrderAsc}}, sorts)
	})

	t.Run("BuildReturnsCopy", func(t *testing.T) {
		b := NewOrderByBuilder(nil).Add("status", SortOrderAsc)
		sorts, err := b.BuildOrderBy()
		require.NoError(t, err)
		sorts[0].Field = "changed"

		again, err := b.BuildOrderBy()
		require.NoError(t, err)
		assert.Equal(t, "status", again[0].Field)
	})

	t.Run("InvalidArguments", func(t *testing.T) {
		b := NewOrderByBuilder(nil).Add("", SortOrderAsc)
		assert.True(t, errors.Is(b.Err(), ErrInvalidArgument))

		b = NewOrderByBuilder(nil).Add("status", SortOrder("UP"))
		assert.True(t, errors.Is(b.Err(), ErrInvalidArgument))
		_, err := b.BuildOrderBy()
		assert.Equal(t, b.Err(), err)

		b.Clear()
		assert.NoError(t, b.Err())
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "created DESC", SearchSort{"created", SortOrderDesc}.String())
		assert.Equal(t, "created", SearchSort{"created", SortOrderDefault}.String())
	})

	t.Run("EndOrderBy", func(t *testing.T) {
		assert.Nil(t, NewOrderByBuilder(nil).EndOrderBy())

		q, err := NewOrderByBuilder(nil).Add("created", SortOrderDesc).BuildQuery()
		require.NoError(t, err)
		assert.Nil(t, q.Where)
		assert.Len(t, q.OrderBy, 1)
	})
}

type resolverFunc func(string) string

func (f resolverFunc) ClauseName(id string) string { return f(id) }
