package jqlb

import (
	"fmt"
	"log/slog"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildMongoFilter converts a clause tree into a MongoDB filter. A nil clause
// matches every document.
func BuildMongoFilter(c Clause, opts *AdapterOptions) (bson.M, error) {
	if c == nil {
		return bson.M{}, nil
	}
	return opts.withDefaults().mongoExpr(c)
}

// BuildMongoFindOptions produces FindOptions including sort, limit/skip
func BuildMongoFindOptions(q Query, opts *AdapterOptions) *options.FindOptions {
	o := opts.withDefaults()
	fo := options.Find()
	if o.Page.Take > 0 {
		fo.SetLimit(int64(o.Page.Take))
	}
	if o.Page.Skip > 0 {
		fo.SetSkip(int64(o.Page.Skip))
	}
	if sd := o.mongoSort(q.OrderBy); len(sd) > 0 {
		fo.SetSort(sd)
	}
	return fo
}

// BuildMongoAggregatePipeline builds $match, $sort, $skip and $limit stages for q.
func BuildMongoAggregatePipeline(q Query, opts *AdapterOptions) (mongo.Pipeline, error) {
	o := opts.withDefaults()
	pipeline := mongo.Pipeline{}

	if q.Where != nil {
		match, err := o.mongoExpr(q.Where)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	if sd := o.mongoSort(q.OrderBy); len(sd) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sd}})
	}
	if o.Page.Skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: int64(o.Page.Skip)}})
	}
	if o.Page.Take > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(o.Page.Take)}})
	}
	return pipeline, nil
}

func (o *AdapterOptions) mongoSort(sorts []SearchSort) bson.D {
	var sd bson.D
	for _, s := range sorts {
		order := 1
		if s.Order == SortOrderDesc {
			order = -1
		}
		sd = append(sd, bson.E{Key: o.column(s.Field), Value: order})
	}
	return sd
}

func (o *AdapterOptions) mongoExpr(c Clause) (bson.M, error) {
	switch x := c.(type) {
	case TerminalClause:
		p, err := o.predicateOf(x)
		if err != nil {
			o.Logger.Warn("clause not translated to mongo", slog.String("clause", x.String()), slog.Any("error", err))
			return nil, err
		}
		return predicateToMongo(p), nil
	case AndClause:
		parts, err := o.mongoExprs(x.Children)
		if err != nil {
			return nil, err
		}
		return bson.M{"$and": parts}, nil
	case OrClause:
		parts, err := o.mongoExprs(x.Children)
		if err != nil {
			return nil, err
		}
		return bson.M{"$or": parts}, nil
	case NotClause:
		inner, err := o.mongoExpr(x.Child)
		if err != nil {
			return nil, err
		}
		return bson.M{"$nor": []bson.M{inner}}, nil
	default:
		return nil, unsupported("clause %T", c)
	}
}

func (o *AdapterOptions) mongoExprs(children []Clause) ([]bson.M, error) {
	parts := make([]bson.M, 0, len(children))
	for _, child := range children {
		m, err := o.mongoExpr(child)
		if err != nil {
			return nil, err
		}
		parts = append(parts, m)
	}
	return parts, nil
}

func predicateToMongo(p predicate) bson.M {
	switch p.Kind {
	case predicateEq:
		return bson.M{p.Column: p.Value}
	case predicateNeq:
		return bson.M{p.Column: bson.M{"$ne": p.Value}}
	case predicateLt:
		return bson.M{p.Column: bson.M{"$lt": p.Value}}
	case predicateLte:
		return bson.M{p.Column: bson.M{"$lte": p.Value}}
	case predicateGt:
		return bson.M{p.Column: bson.M{"$gt": p.Value}}
	case predicateGte:
		return bson.M{p.Column: bson.M{"$gte": p.Value}}
	case predicateContains:
		return bson.M{p.Column: containsRegex(p.Value)}
	case predicateNotContains:
		return bson.M{p.Column: bson.M{"$not": containsRegex(p.Value)}}
	case predicateNull:
		// missing fields and explicit nulls both count as EMPTY
		return bson.M{p.Column: nil}
	case predicateNotNull:
		return bson.M{p.Column: bson.M{"$ne": nil}}
	case predicateIn:
		return bson.M{p.Column: bson.M{"$in": p.Values}}
	default:
		return bson.M{p.Column: bson.M{"$nin": p.Values}}
	}
}

// containsRegex matches v anywhere in the field, case-insensitively.
func containsRegex(v any) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(fmt.Sprint(v)), Options: "i"}
}
