package jqlb

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

// ElasticsearchQuery represents the structure of an Elasticsearch search request body
type ElasticsearchQuery struct {
	Query map[string]interface{}   `json:"query"`
	Sort  []map[string]interface{} `json:"sort,omitempty"`
	From  int                      `json:"from,omitempty"`
	Size  int                      `json:"size,omitempty"`
}

// JSON returns the request body, indented when pretty is set.
func (q ElasticsearchQuery) JSON(pretty bool) (string, error) {
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(q, "", "  ")
	} else {
		b, err = json.Marshal(q)
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal Elasticsearch query")
	}
	return string(b), nil
}

// BuildElasticsearchQuery converts a query into an Elasticsearch search request body
func BuildElasticsearchQuery(q Query, opts *AdapterOptions) (ElasticsearchQuery, error) {
	o := opts.withDefaults()
	out := ElasticsearchQuery{Query: matchAll()}

	if q.Where != nil {
		query, err := o.esQuery(q.Where)
		if err != nil {
			return ElasticsearchQuery{}, err
		}
		out.Query = query
	}

	if o.Page.Skip > 0 {
		out.From = o.Page.Skip
	}
	if o.Page.Take > 0 {
		out.Size = o.Page.Take
	}

	for _, s := range q.OrderBy {
		order := "asc"
		if s.Order == SortOrderDesc {
			order = "desc"
		}
		out.Sort = append(out.Sort, map[string]interface{}{
			o.column(s.Field): map[string]string{"order": order},
		})
	}
	return out, nil
}

func matchAll() map[string]interface{} {
	return map[string]interface{}{"match_all": map[string]interface{}{}}
}

func esBool(kind string, queries []map[string]interface{}) map[string]interface{} {
	b := map[string]interface{}{kind: queries}
	if kind == "should" {
		b["minimum_should_match"] = 1
	}
	return map[string]interface{}{"bool": b}
}

func (o *AdapterOptions) esQuery(c Clause) (map[string]interface{}, error) {
	switch x := c.(type) {
	case TerminalClause:
		p, err := o.predicateOf(x)
		if err != nil {
			o.Logger.Warn("clause not translated to elasticsearch", slog.String("clause", x.String()), slog.Any("error", err))
			return nil, err
		}
		return predicateToES(p), nil
	case AndClause:
		parts, err := o.esQueries(x.Children)
		if err != nil {
			return nil, err
		}
		return esBool("must", parts), nil
	case OrClause:
		parts, err := o.esQueries(x.Children)
		if err != nil {
			return nil, err
		}
		return esBool("should", parts), nil
	case NotClause:
		inner, err := o.esQuery(x.Child)
		if err != nil {
			return nil, err
		}
		return esBool("must_not", []map[string]interface{}{inner}), nil
	default:
		return nil, unsupported("clause %T", c)
	}
}

func (o *AdapterOptions) esQueries(children []Clause) ([]map[string]interface{}, error) {
	parts := make([]map[string]interface{}, 0, len(children))
	for _, child := range children {
		q, err := o.esQuery(child)
		if err != nil {
			return nil, err
		}
		parts = append(parts, q)
	}
	return parts, nil
}

func esRange(field, bound string, v any) map[string]interface{} {
	return map[string]interface{}{
		"range": map[string]interface{}{
			field: map[string]interface{}{bound: v},
		},
	}
}

func esWildcard(field string, v any) map[string]interface{} {
	return map[string]interface{}{
		"wildcard": map[string]interface{}{
			field: map[string]interface{}{
				"value":            "*" + escapeWildcard(fmt.Sprint(v)) + "*",
				"case_insensitive": true,
			},
		},
	}
}

func escapeWildcard(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`).Replace(s)
}

func predicateToES(p predicate) map[string]interface{} {
	term := func(v any) map[string]interface{} {
		return map[string]interface{}{"term": map[string]interface{}{p.Column: v}}
	}
	terms := func() map[string]interface{} {
		return map[string]interface{}{"terms": map[string]interface{}{p.Column: p.Values}}
	}
	exists := map[string]interface{}{"exists": map[string]interface{}{"field": p.Column}}

	switch p.Kind {
	case predicateEq:
		return term(p.Value)
	case predicateNeq:
		return esBool("must_not", []map[string]interface{}{term(p.Value)})
	case predicateLt:
		return esRange(p.Column, "lt", p.Value)
	case predicateLte:
		return esRange(p.Column, "lte", p.Value)
	case predicateGt:
		return esRange(p.Column, "gt", p.Value)
	case predicateGte:
		return esRange(p.Column, "gte", p.Value)
	case predicateContains:
		return esWildcard(p.Column, p.Value)
	case predicateNotContains:
		return esBool("must_not", []map[string]interface{}{esWildcard(p.Column, p.Value)})
	case predicateNull:
		return esBool("must_not", []map[string]interface{}{exists})
	case predicateNotNull:
		return exists
	case predicateIn:
		return terms()
	default:
		return esBool("must_not", []map[string]interface{}{terms()})
	}
}
