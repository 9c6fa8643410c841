package jqlb

import (
	"log/slog"
	"strings"
)

type combinator int

const (
	combinatorNone combinator = iota
	combinatorAnd
	combinatorOr
)

func (c combinator) String() string {
	switch c {
	case combinatorAnd:
		return "AND"
	case combinatorOr:
		return "OR"
	default:
		return ""
	}
}

type builderState int

const (
	stateExpectClause builderState = iota
	stateExpectCombinator
	stateExpectClauseAfterNot
)

func (s builderState) String() string {
	switch s {
	case stateExpectCombinator:
		return "expect_combinator"
	case stateExpectClauseAfterNot:
		return "expect_clause_after_not"
	default:
		return "expect_clause"
	}
}

// entry is one clause of a frame together with the combinator joining it to
// the previous entry. A pending NOT is already materialised in clause.
type entry struct {
	combinator combinator
	clause     Clause
}

// frame is one nesting level. The root frame has no parent state; every other
// frame remembers the combinator and NOT that were pending in its parent when
// Sub was called, so they apply to the whole group.
type frame struct {
	entries          []entry
	parentCombinator combinator
	parentNot        bool
}

// ClauseBuilder assembles a Clause from a flat sequence of conditions,
// combinators, negations and explicit groups. It is not safe for concurrent use.
//
// Every method returns the builder. The first misuse is recorded and turns the
// following mutations into no-ops until Clear; Err reports it and BuildClause
// returns it.
type ClauseBuilder struct {
	cfg   *Config
	owner *QueryBuilder

	frames            []frame
	pendingCombinator combinator
	pendingNot        bool
	defaultCombinator combinator
	err               error
}

// NewClauseBuilder returns an empty standalone clause builder.
func NewClauseBuilder(cfg *Config) *ClauseBuilder {
	return newClauseBuilder(cfg.withDefaults(), nil)
}

func newClauseBuilder(cfg *Config, owner *QueryBuilder) *ClauseBuilder {
	return &ClauseBuilder{cfg: cfg, owner: owner, frames: []frame{{}}}
}

func (b *ClauseBuilder) top() *frame {
	return &b.frames[len(b.frames)-1]
}

func (b *ClauseBuilder) state() builderState {
	switch {
	case b.pendingNot:
		return stateExpectClauseAfterNot
	case b.pendingCombinator != combinatorNone || len(b.top().entries) == 0:
		return stateExpectClause
	default:
		return stateExpectCombinator
	}
}

func (b *ClauseBuilder) fail(err error) *ClauseBuilder {
	if b.err != nil {
		return b
	}
	b.err = err
	b.cfg.Logger.Debug("clause builder error",
		slog.String("state", b.state().String()),
		slog.Int("depth", len(b.frames)-1),
		slog.Any("error", err))
	return b
}

// Err returns the first error recorded by the builder, if any.
func (b *ClauseBuilder) Err() error {
	return b.err
}

// joinDefault inserts the default combinator when the builder holds a complete
// clause and another clause, NOT or group is about to start.
func (b *ClauseBuilder) joinDefault(action string) bool {
	if b.state() != stateExpectCombinator {
		return true
	}
	if b.defaultCombinator == combinatorNone {
		b.fail(illegalState("%s after a complete clause needs AND or OR", action))
		return false
	}
	b.pendingCombinator = b.defaultCombinator
	return true
}

// deliver appends a finished clause to the current frame.
func (b *ClauseBuilder) deliver(c Clause) *ClauseBuilder {
	if b.err != nil {
		return b
	}
	if !b.joinDefault("clause") {
		return b
	}
	if b.pendingNot {
		c = Not(c)
	}
	f := b.top()
	f.entries = append(f.entries, entry{combinator: b.pendingCombinator, clause: c})
	b.pendingCombinator = combinatorNone
	b.pendingNot = false
	return b
}

// Not negates the next clause or group.
func (b *ClauseBuilder) Not() *ClauseBuilder {
	if b.err != nil {
		return b
	}
	if b.state() == stateExpectClauseAfterNot {
		return b.fail(illegalState("NOT cannot follow NOT"))
	}
	if !b.joinDefault("NOT") {
		return b
	}
	b.pendingNot = true
	return b
}

// And joins the previous clause to the next one with AND.
func (b *ClauseBuilder) And() *ClauseBuilder {
	return b.combine(combinatorAnd)
}

// Or joins the previous clause to the next one with OR.
func (b *ClauseBuilder) Or() *ClauseBuilder {
	return b.combine(combinatorOr)
}

func (b *ClauseBuilder) combine(c combinator) *ClauseBuilder {
	if b.err != nil {
		return b
	}
	if s := b.state(); s != stateExpectCombinator {
		return b.fail(illegalState("%s is not allowed in state %s", c, s))
	}
	b.pendingCombinator = c
	return b
}

// Sub opens an explicit group. A NOT pending when the group opens negates the whole group.
func (b *ClauseBuilder) Sub() *ClauseBuilder {
	if b.err != nil {
		return b
	}
	if !b.joinDefault("sub-group") {
		return b
	}
	b.frames = append(b.frames, frame{
		parentCombinator: b.pendingCombinator,
		parentNot:        b.pendingNot,
	})
	b.pendingCombinator = combinatorNone
	b.pendingNot = false
	return b
}

// Endsub closes the innermost group and delivers it to the enclosing one as a single clause.
func (b *ClauseBuilder) Endsub() *ClauseBuilder {
	if b.err != nil {
		return b
	}
	if len(b.frames) == 1 {
		return b.fail(illegalState("endsub without an open sub-group"))
	}
	f := b.top()
	if len(f.entries) == 0 {
		return b.fail(illegalState("endsub on an empty sub-group"))
	}
	if s := b.state(); s != stateExpectCombinator {
		return b.fail(illegalState("endsub is not allowed in state %s", s))
	}
	group := fold(f.entries)
	parentCombinator, parentNot := f.parentCombinator, f.parentNot
	b.frames = b.frames[:len(b.frames)-1]
	b.pendingCombinator = parentCombinator
	b.pendingNot = parentNot
	return b.deliver(group)
}

// DefaultAnd makes clauses following a complete clause join with AND.
func (b *ClauseBuilder) DefaultAnd() *ClauseBuilder {
	b.defaultCombinator = combinatorAnd
	return b
}

// DefaultOr makes clauses following a complete clause join with OR.
func (b *ClauseBuilder) DefaultOr() *ClauseBuilder {
	b.defaultCombinator = combinatorOr
	return b
}

// DefaultNone requires an explicit And or Or between clauses.
func (b *ClauseBuilder) DefaultNone() *ClauseBuilder {
	b.defaultCombinator = combinatorNone
	return b
}

// Clear resets the builder to its initial state, including the default
// combinator and any recorded error.
func (b *ClauseBuilder) Clear() *ClauseBuilder {
	b.frames = []frame{{}}
	b.pendingCombinator = combinatorNone
	b.pendingNot = false
	b.defaultCombinator = combinatorNone
	b.err = nil
	return b
}

// Copy returns an independent builder with the same partial expression,
// default combinator and recorded error. The copy is not owned by a QueryBuilder.
func (b *ClauseBuilder) Copy() *ClauseBuilder {
	out := &ClauseBuilder{
		cfg:               b.cfg,
		frames:            make([]frame, len(b.frames)),
		pendingCombinator: b.pendingCombinator,
		pendingNot:        b.pendingNot,
		defaultCombinator: b.defaultCombinator,
		err:               b.err,
	}
	for i, f := range b.frames {
		f.entries = append([]entry(nil), f.entries...)
		out.frames[i] = f
	}
	return out
}

// BuildClause folds the expression built so far. It returns nil when nothing
// was added and fails while a group is open or a combinator or NOT is dangling.
// The builder is left unchanged and the result shares no slices with it.
func (b *ClauseBuilder) BuildClause() (Clause, error) {
	if b.err != nil {
		return nil, b.err
	}
	if depth := len(b.frames) - 1; depth > 0 {
		return nil, b.buildError(illegalState("%d sub-group(s) still open", depth))
	}
	if b.pendingNot || b.pendingCombinator != combinatorNone {
		return nil, b.buildError(illegalState("expression ends with a dangling operator: %s", b.String()))
	}
	entries := b.top().entries
	if len(entries) == 0 {
		return nil, nil
	}
	return cloneClause(fold(entries)), nil
}

func (b *ClauseBuilder) buildError(err error) error {
	b.cfg.Logger.Debug("clause builder build failed", slog.Any("error", err))
	return err
}

// BuildQuery builds the whole query when the builder belongs to a QueryBuilder,
// otherwise a query holding only this clause.
func (b *ClauseBuilder) BuildQuery() (Query, error) {
	if b.owner != nil {
		return b.owner.BuildQuery()
	}
	where, err := b.BuildClause()
	if err != nil {
		return Query{}, err
	}
	return Query{Where: where}, nil
}

// EndWhere returns the QueryBuilder owning this builder, or nil for a standalone builder.
func (b *ClauseBuilder) EndWhere() *QueryBuilder {
	return b.owner
}

// fold resolves AND before OR over a flat entry list: maximal AND runs become
// And nodes and the runs are joined with Or. Groups were folded when they
// closed, so this never recurses.
func fold(entries []entry) Clause {
	var (
		runs []Clause
		run  []Clause
	)
	for i, e := range entries {
		if i > 0 && e.combinator == combinatorOr {
			runs = append(runs, And(run...))
			run = run[:0:0]
		}
		run = append(run, e.clause)
	}
	runs = append(runs, And(run...))
	return Or(runs...)
}

// String renders the partial expression, open groups and dangling operators included.
func (b *ClauseBuilder) String() string {
	var tokens []string
	for i, f := range b.frames {
		if i > 0 {
			if f.parentCombinator != combinatorNone {
				tokens = append(tokens, f.parentCombinator.String())
			}
			if f.parentNot {
				tokens = append(tokens, "NOT")
			}
			tokens = append(tokens, "(")
		}
		for j, e := range f.entries {
			if j > 0 {
				tokens = append(tokens, e.combinator.String())
			}
			tokens = append(tokens, renderChild(e.clause, precedenceAnd))
		}
	}
	if b.pendingCombinator != combinatorNone {
		tokens = append(tokens, b.pendingCombinator.String())
	}
	if b.pendingNot {
		tokens = append(tokens, "NOT")
	}

	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 && tokens[i-1] != "(" {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok)
	}
	return sb.String()
}
