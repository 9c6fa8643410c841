package jqlb

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFieldShortcuts(t *testing.T) {
	day := time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		build func(b *ClauseBuilder) *ClauseBuilder
		want  string
	}{
		{"Project", func(b *ClauseBuilder) *ClauseBuilder { return b.Project("HSP", "MKY") }, `project in ("HSP", "MKY")`},
		{"ProjectIDs", func(b *ClauseBuilder) *ClauseBuilder { return b.ProjectIDs(10000) }, `project in (10000)`},
		{"Category", func(b *ClauseBuilder) *ClauseBuilder { return b.Category("Internal") }, `category in ("Internal")`},
		{"IssueTypeIsStandard", func(b *ClauseBuilder) *ClauseBuilder { return b.IssueTypeIsStandard() }, `issuetype in standardIssueTypes()`},
		{"IssueTypeIsSubtask", func(b *ClauseBuilder) *ClauseBuilder { return b.IssueTypeIsSubtask() }, `issuetype in subTaskIssueTypes()`},
		{"StatusCategory", func(b *ClauseBuilder) *ClauseBuilder { return b.StatusCategory("Done") }, `statusCategory in ("Done")`},
		{"Unresolved", func(b *ClauseBuilder) *ClauseBuilder { return b.Unresolved() }, `resolution = "Unresolved"`},
		{"ComponentIsEmpty", func(b *ClauseBuilder) *ClauseBuilder { return b.ComponentIsEmpty() }, `component is EMPTY`},
		{"FixVersionIDs", func(b *ClauseBuilder) *ClauseBuilder { return b.FixVersionIDs(1, 2) }, `fixVersion in (1, 2)`},
		{"Labels", func(b *ClauseBuilder) *ClauseBuilder { return b.Labels("backend") }, `labels in ("backend")`},
		{"IssueInHistory", func(b *ClauseBuilder) *ClauseBuilder { return b.IssueInHistory() }, `key in issueHistory()`},
		{"IssueParent", func(b *ClauseBuilder) *ClauseBuilder { return b.IssueParent("HSP-1") }, `parent in ("HSP-1")`},
		{"SavedFilter", func(b *ClauseBuilder) *ClauseBuilder { return b.SavedFilter("My Bugs") }, `filter in ("My Bugs")`},
		{"Summary", func(b *ClauseBuilder) *ClauseBuilder { return b.Summary("login") }, `summary ~ "login"`},
		{"DescriptionIsEmpty", func(b *ClauseBuilder) *ClauseBuilder { return b.DescriptionIsEmpty() }, `description is EMPTY`},
		{"AssigneeUser", func(b *ClauseBuilder) *ClauseBuilder { return b.AssigneeUser("fred") }, `assignee = "fred"`},
		{"AssigneeIsCurrentUser", func(b *ClauseBuilder) *ClauseBuilder { return b.AssigneeIsCurrentUser() }, `assignee = currentUser()`},
		{"ReporterInGroup", func(b *ClauseBuilder) *ClauseBuilder { return b.ReporterInGroup("jira-users") }, `reporter in membersOf("jira-users")`},
		{"WatcherIsEmpty", func(b *ClauseBuilder) *ClauseBuilder { return b.WatcherIsEmpty() }, `watcher is EMPTY`},
		{"CreatedAfter", func(b *ClauseBuilder) *ClauseBuilder { return b.CreatedAfter(day) }, `created >= "2024-05-17 09:00"`},
		{"UpdatedAfterString", func(b *ClauseBuilder) *ClauseBuilder { return b.UpdatedAfterString("-1w") }, `updated >= "-1w"`},
		{"DueBetween", func(b *ClauseBuilder) *ClauseBuilder { return b.DueBetween(day, day.Add(24*time.Hour)) },
			`due >= "2024-05-17 09:00" AND due <= "2024-05-18 09:00"`},
		{"ResolutionDateBetweenOpenEnd", func(b *ClauseBuilder) *ClauseBuilder { return b.ResolutionDateBetween(day, time.Time{}) },
			`resolved >= "2024-05-17 09:00"`},
		{"AttachmentsExists", func(b *ClauseBuilder) *ClauseBuilder { return b.AttachmentsExists(true) }, `attachments is not EMPTY`},
		{"AttachmentsMissing", func(b *ClauseBuilder) *ClauseBuilder { return b.AttachmentsExists(false) }, `attachments is EMPTY`},
		{"CustomField", func(b *ClauseBuilder) *ClauseBuilder { return b.CustomField(10010).EqString("x") }, `cf[10010] = "x"`},
		{"QuotedFieldName", func(b *ClauseBuilder) *ClauseBuilder { return b.Field("Story Points").GtNumber(3) }, `"Story Points" > 3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildClause(t, tt.build(NewClauseBuilder(nil)))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestUserShortcutsRejectAbsentNames(t *testing.T) {
	assert.True(t, errors.Is(NewClauseBuilder(nil).AssigneeUser("").Err(), ErrInvalidArgument))
	assert.True(t, errors.Is(NewClauseBuilder(nil).VoterInGroup("").Err(), ErrInvalidArgument))
}

func TestConditionBuilder(t *testing.T) {
	day := time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)

	tests := []struct {
		name  string
		build func(b *ClauseBuilder) *ClauseBuilder
		want  string
	}{
		{"EqNumber", func(b *ClauseBuilder) *ClauseBuilder { return b.VotesCondition().EqNumber(4) }, `votes = 4`},
		{"NotEqEmpty", func(b *ClauseBuilder) *ClauseBuilder { return b.AssigneeCondition().NotEqEmpty() }, `assignee != EMPTY`},
		{"NotEqFunc", func(b *ClauseBuilder) *ClauseBuilder { return b.ReporterCondition().NotEqFunc(FunctionCurrentUser) }, `reporter != currentUser()`},
		{"NotLike", func(b *ClauseBuilder) *ClauseBuilder { return b.SummaryCondition().NotLikeString("draft") }, `summary !~ "draft"`},
		{"IsNotEmpty", func(b *ClauseBuilder) *ClauseBuilder { return b.LabelsCondition().IsNotEmpty() }, `labels is not EMPTY`},
		{"LtEqDate", func(b *ClauseBuilder) *ClauseBuilder { return b.CreatedCondition().LtEqDate(day) }, `created <= "2024-01-02 03:04"`},
		{"GtEqString", func(b *ClauseBuilder) *ClauseBuilder { return b.WorkRatioCondition().GtEqString("50") }, `workratio >= "50"`},
		{"InNumbers", func(b *ClauseBuilder) *ClauseBuilder { return b.ComponentCondition().InNumbers(1, 2) }, `component in (1, 2)`},
		{"InDates", func(b *ClauseBuilder) *ClauseBuilder { return b.DueCondition().InDates(day) }, `due in ("2024-01-02 03:04")`},
		{"InOperands", func(b *ClauseBuilder) *ClauseBuilder {
			return b.ProjectCondition().InOperands(StringValue("HSP"), NumberValue(10000))
		}, `project in ("HSP", 10000)`},
		{"NotInFunc", func(b *ClauseBuilder) *ClauseBuilder { return b.IssueCondition().NotInFunc(FunctionWatchedIssues) }, `key not in watchedIssues()`},
		{"OpMembersOf", func(b *ClauseBuilder) *ClauseBuilder { return b.Field("assignee").Op(OperatorNotIn).MembersOf("admins") }, `assignee not in membersOf("admins")`},
		{"ValueBuilderValues", func(b *ClauseBuilder) *ClauseBuilder { return b.StatusCondition().In().Values("Open") }, `status in ("Open")`},
		{"RangeStrings", func(b *ClauseBuilder) *ClauseBuilder { return b.Field("votes").RangeStrings("1", "") }, `votes >= "1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildClause(t, tt.build(NewClauseBuilder(nil)))
			assert.Equal(t, tt.want, got.String())
		})
	}

	t.Run("EmptyLists", func(t *testing.T) {
		assert.True(t, errors.Is(NewClauseBuilder(nil).StatusCondition().In().Dates().Err(), ErrInvalidArgument))
		assert.True(t, errors.Is(NewClauseBuilder(nil).StatusCondition().In().Operands().Err(), ErrInvalidArgument))
		assert.True(t, errors.Is(NewClauseBuilder(nil).StatusCondition().In().Operands(nil).Err(), ErrInvalidArgument))
		assert.True(t, errors.Is(NewClauseBuilder(nil).VotesCondition().NotInNumbers().Err(), ErrInvalidArgument))
	})
}

func TestSystemFieldResolver(t *testing.T) {
	r := SystemFieldResolver{}
	assert.Equal(t, FieldIssueType, r.ClauseName("issuetype"))
	assert.Equal(t, FieldDue, r.ClauseName("duedate"))
	assert.Equal(t, FieldAffectedVersion, r.ClauseName("versions"))
	assert.Equal(t, "customfield_10010", r.ClauseName("customfield_10010"))
	assert.Equal(t, "cf[42]", CustomFieldName(42))
}
