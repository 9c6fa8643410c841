package jqlb

import "log/slog"

// SortOrder is a sort direction. The zero value leaves the direction to the
// field's own default.
type SortOrder string

const (
	SortOrderDefault SortOrder = ""
	SortOrderAsc     SortOrder = "ASC"
	SortOrderDesc    SortOrder = "DESC"
)

func (o SortOrder) valid() bool {
	return o == SortOrderDefault || o == SortOrderAsc || o == SortOrderDesc
}

// SearchSort is one sort key.
type SearchSort struct {
	Field string
	Order SortOrder
}

func (s SearchSort) String() string {
	if s.Order == SortOrderDefault {
		return renderField(s.Field)
	}
	return renderField(s.Field) + " " + string(s.Order)
}

// OrderByBuilder accumulates sort keys. The first key sorts first and later
// keys break ties.
type OrderByBuilder struct {
	cfg   *Config
	owner *QueryBuilder
	sorts []SearchSort
	err   error
}

// NewOrderByBuilder returns an empty standalone order-by builder.
func NewOrderByBuilder(cfg *Config) *OrderByBuilder {
	return &OrderByBuilder{cfg: cfg.withDefaults()}
}

func (o *OrderByBuilder) fail(err error) *OrderByBuilder {
	if o.err == nil {
		o.err = err
		o.cfg.Logger.Debug("order by builder error", slog.Any("error", err))
	}
	return o
}

// Err returns the first error recorded by the builder, if any.
func (o *OrderByBuilder) Err() error {
	return o.err
}

// Add appends a sort key.
func (o *OrderByBuilder) Add(field string, order SortOrder) *OrderByBuilder {
	return o.AddSort(field, order, false)
}

// AddFirst makes field the primary sort key.
func (o *OrderByBuilder) AddFirst(field string, order SortOrder) *OrderByBuilder {
	return o.AddSort(field, order, true)
}

// AddSort inserts a sort key at the front when makePrimary is set, else at the end.
func (o *OrderByBuilder) AddSort(field string, order SortOrder, makePrimary bool) *OrderByBuilder {
	if o.err != nil {
		return o
	}
	if field == "" {
		return o.fail(invalidArgument("sort field is absent"))
	}
	if !order.valid() {
		return o.fail(invalidArgument("%s: unknown sort order %q", field, string(order)))
	}
	s := SearchSort{Field: field, Order: order}
	if makePrimary {
		o.sorts = append([]SearchSort{s}, o.sorts...)
	} else {
		o.sorts = append(o.sorts, s)
	}
	return o
}

// SetSorts replaces every sort key.
func (o *OrderByBuilder) SetSorts(sorts []SearchSort) *OrderByBuilder {
	if o.err != nil {
		return o
	}
	for i, s := range sorts {
		if s.Field == "" {
			return o.fail(invalidArgument("sorts[%d]: field is absent", i))
		}
		if !s.Order.valid() {
			return o.fail(invalidArgument("sorts[%d]: unknown sort order %q", i, string(s.Order)))
		}
	}
	o.sorts = append([]SearchSort(nil), sorts...)
	return o
}

// Clear removes every sort key and any recorded error.
func (o *OrderByBuilder) Clear() *OrderByBuilder {
	o.sorts = nil
	o.err = nil
	return o
}

// BuildOrderBy returns a copy of the sort keys.
func (o *OrderByBuilder) BuildOrderBy() ([]SearchSort, error) {
	if o.err != nil {
		return nil, o.err
	}
	return append([]SearchSort(nil), o.sorts...), nil
}

// BuildQuery builds the whole query when the builder belongs to a QueryBuilder,
// otherwise a query holding only the sort keys.
func (o *OrderByBuilder) BuildQuery() (Query, error) {
	if o.owner != nil {
		return o.owner.BuildQuery()
	}
	sorts, err := o.BuildOrderBy()
	if err != nil {
		return Query{}, err
	}
	return Query{OrderBy: sorts}, nil
}

// EndOrderBy returns the QueryBuilder owning this builder, or nil for a standalone builder.
func (o *OrderByBuilder) EndOrderBy() *QueryBuilder {
	return o.owner
}

// bySystemField adds a sort key for a system field id, resolved to its clause name.
func (o *OrderByBuilder) bySystemField(fieldID string, order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.AddSort(o.cfg.Resolver.ClauseName(fieldID), order, makePrimary)
}

func (o *OrderByBuilder) Project(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("project", order, makePrimary)
}

func (o *OrderByBuilder) IssueType(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("issuetype", order, makePrimary)
}

func (o *OrderByBuilder) Status(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("status", order, makePrimary)
}

func (o *OrderByBuilder) Priority(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("priority", order, makePrimary)
}

func (o *OrderByBuilder) Resolution(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("resolution", order, makePrimary)
}

func (o *OrderByBuilder) Component(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("components", order, makePrimary)
}

func (o *OrderByBuilder) FixVersion(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("fixVersions", order, makePrimary)
}

func (o *OrderByBuilder) AffectedVersion(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("versions", order, makePrimary)
}

func (o *OrderByBuilder) Summary(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("summary", order, makePrimary)
}

func (o *OrderByBuilder) Description(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("description", order, makePrimary)
}

func (o *OrderByBuilder) Environment(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("environment", order, makePrimary)
}

func (o *OrderByBuilder) Reporter(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("reporter", order, makePrimary)
}

func (o *OrderByBuilder) Assignee(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("assignee", order, makePrimary)
}

func (o *OrderByBuilder) CreatedDate(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("created", order, makePrimary)
}

func (o *OrderByBuilder) UpdatedDate(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("updated", order, makePrimary)
}

func (o *OrderByBuilder) DueDate(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("duedate", order, makePrimary)
}

func (o *OrderByBuilder) ResolutionDate(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("resolutiondate", order, makePrimary)
}

func (o *OrderByBuilder) LastViewedDate(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("lastViewed", order, makePrimary)
}

func (o *OrderByBuilder) IssueKey(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("issuekey", order, makePrimary)
}

func (o *OrderByBuilder) IssueID(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("issueId", order, makePrimary)
}

func (o *OrderByBuilder) SecurityLevel(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("security", order, makePrimary)
}

func (o *OrderByBuilder) Votes(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("votes", order, makePrimary)
}

func (o *OrderByBuilder) OriginalEstimate(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("originalEstimate", order, makePrimary)
}

func (o *OrderByBuilder) CurrentEstimate(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("currentEstimate", order, makePrimary)
}

func (o *OrderByBuilder) TimeSpent(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("timespent", order, makePrimary)
}

func (o *OrderByBuilder) WorkRatio(order SortOrder, makePrimary bool) *OrderByBuilder {
	return o.bySystemField("workratio", order, makePrimary)
}
