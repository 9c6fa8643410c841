package jqlb

// Query is the immutable result of a build: an optional filter and its sort keys.
// A nil Where matches everything.
type Query struct {
	Where   Clause
	OrderBy []SearchSort
}

func (q Query) String() string {
	return RenderJQL(q)
}

// QueryBuilder owns one clause builder and one order-by builder.
type QueryBuilder struct {
	cfg     *Config
	where   *ClauseBuilder
	orderBy *OrderByBuilder
}

// NewQueryBuilder returns an empty query builder. A nil cfg uses the defaults.
func NewQueryBuilder(cfg *Config) *QueryBuilder {
	q := &QueryBuilder{cfg: cfg.withDefaults()}
	q.where = newClauseBuilder(q.cfg, q)
	q.orderBy = &OrderByBuilder{cfg: q.cfg, owner: q}
	return q
}

// NewQueryBuilderFrom returns a builder seeded with an existing query. The
// existing clause is delivered as one closed group, so further clauses can be
// combined with it.
func NewQueryBuilderFrom(query Query, cfg *Config) *QueryBuilder {
	q := NewQueryBuilder(cfg)
	if query.Where != nil {
		q.where.AddClause(query.Where)
	}
	if len(query.OrderBy) > 0 {
		q.orderBy.SetSorts(query.OrderBy)
	}
	return q
}

// Where returns the clause builder.
func (q *QueryBuilder) Where() *ClauseBuilder {
	return q.where
}

// OrderBy returns the order-by builder.
func (q *QueryBuilder) OrderBy() *OrderByBuilder {
	return q.orderBy
}

// Clear resets both builders.
func (q *QueryBuilder) Clear() *QueryBuilder {
	q.where.Clear()
	q.orderBy.Clear()
	return q
}

// BuildQuery builds the clause and pairs it with the current sort keys.
func (q *QueryBuilder) BuildQuery() (Query, error) {
	where, err := q.where.BuildClause()
	if err != nil {
		return Query{}, err
	}
	sorts, err := q.orderBy.BuildOrderBy()
	if err != nil {
		return Query{}, err
	}
	return Query{Where: where, OrderBy: sorts}, nil
}
