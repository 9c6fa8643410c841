package jqlb

import (
	"strconv"
	"time"
)

// Clause names of the system fields.
const (
	FieldAffectedVersion  = "affectedVersion"
	FieldAssignee         = "assignee"
	FieldAttachments      = "attachments"
	FieldCategory         = "category"
	FieldComment          = "comment"
	FieldComponent        = "component"
	FieldCreated          = "created"
	FieldCurrentEstimate  = "remainingEstimate"
	FieldDescription      = "description"
	FieldDue              = "due"
	FieldEnvironment      = "environment"
	FieldFixVersion       = "fixVersion"
	FieldIssueID          = "id"
	FieldIssueKey         = "key"
	FieldIssueParent      = "parent"
	FieldIssueType        = "issuetype"
	FieldLabels           = "labels"
	FieldLastViewed       = "lastViewed"
	FieldLevel            = "level"
	FieldOriginalEstimate = "originalEstimate"
	FieldPriority         = "priority"
	FieldProject          = "project"
	FieldReporter         = "reporter"
	FieldResolution       = "resolution"
	FieldResolutionDate   = "resolved"
	FieldSavedFilter      = "filter"
	FieldStatus           = "status"
	FieldStatusCategory   = "statusCategory"
	FieldSummary          = "summary"
	FieldTimeSpent        = "timespent"
	FieldUpdated          = "updated"
	FieldVoters           = "voter"
	FieldVotes            = "votes"
	FieldWatchers         = "watcher"
	FieldWatches          = "watchers"
	FieldWorkRatio        = "workratio"
)

// Function names used by the shortcuts.
const (
	FunctionCurrentUser        = "currentUser"
	FunctionMembersOf          = "membersOf"
	FunctionIssueHistory       = "issueHistory"
	FunctionWatchedIssues      = "watchedIssues"
	FunctionVotedIssues        = "votedIssues"
	FunctionStandardIssueTypes = "standardIssueTypes"
	FunctionSubtaskIssueTypes  = "subTaskIssueTypes"
	UnresolvedOperand          = "Unresolved"
)

// ClauseNameResolver maps a system field id to its canonical clause name.
type ClauseNameResolver interface {
	ClauseName(fieldID string) string
}

// SystemFieldResolver resolves the built-in system field ids. Unknown ids are
// returned unchanged.
type SystemFieldResolver struct{}

var systemFieldNames = map[string]string{
	"affectedVersion":  FieldAffectedVersion,
	"versions":         FieldAffectedVersion,
	"assignee":         FieldAssignee,
	"components":       FieldComponent,
	"component":        FieldComponent,
	"created":          FieldCreated,
	"createdDate":      FieldCreated,
	"currentEstimate":  FieldCurrentEstimate,
	"description":      FieldDescription,
	"dueDate":          FieldDue,
	"duedate":          FieldDue,
	"environment":      FieldEnvironment,
	"fixVersions":      FieldFixVersion,
	"fixForVersion":    FieldFixVersion,
	"issueId":          FieldIssueID,
	"issueKey":         FieldIssueKey,
	"issuekey":         FieldIssueKey,
	"issueType":        FieldIssueType,
	"issuetype":        FieldIssueType,
	"lastViewed":       FieldLastViewed,
	"lastViewedDate":   FieldLastViewed,
	"originalEstimate": FieldOriginalEstimate,
	"priority":         FieldPriority,
	"project":          FieldProject,
	"reporter":         FieldReporter,
	"resolution":       FieldResolution,
	"resolutionDate":   FieldResolutionDate,
	"resolutiondate":   FieldResolutionDate,
	"securityLevel":    FieldLevel,
	"security":         FieldLevel,
	"status":           FieldStatus,
	"summary":          FieldSummary,
	"timeSpent":        FieldTimeSpent,
	"timespent":        FieldTimeSpent,
	"updated":          FieldUpdated,
	"updatedDate":      FieldUpdated,
	"votes":            FieldVotes,
	"workRatio":        FieldWorkRatio,
	"workratio":        FieldWorkRatio,
}

func (SystemFieldResolver) ClauseName(fieldID string) string {
	if name, ok := systemFieldNames[fieldID]; ok {
		return name
	}
	return fieldID
}

// CustomFieldName returns the clause name of a custom field, cf[id].
func CustomFieldName(id int64) string {
	return "cf[" + strconv.FormatInt(id, 10) + "]"
}

// Field returns a condition builder for an arbitrary clause name.
func (b *ClauseBuilder) Field(name string) ConditionBuilder {
	if name == "" {
		b.fail(invalidArgument("field name is absent"))
	}
	return ConditionBuilder{core: b, field: name}
}

// CustomField returns a condition builder for the custom field with the given id.
func (b *ClauseBuilder) CustomField(id int64) ConditionBuilder {
	return ConditionBuilder{core: b, field: CustomFieldName(id)}
}

// resolvable adds "field in (values...)" for fields whose values name domain objects.
func (b *ClauseBuilder) resolvable(field string, values []string) *ClauseBuilder {
	return b.AddStringCondition(field, OperatorIn, values...)
}

func (b *ClauseBuilder) resolvableIDs(field string, ids []int64) *ClauseBuilder {
	return b.AddNumberCondition(field, OperatorIn, ids...)
}

// Project adds "project in (projects...)".
func (b *ClauseBuilder) Project(projects ...string) *ClauseBuilder {
	return b.resolvable(FieldProject, projects)
}

// ProjectIDs adds "project in (ids...)".
func (b *ClauseBuilder) ProjectIDs(ids ...int64) *ClauseBuilder {
	return b.resolvableIDs(FieldProject, ids)
}

func (b *ClauseBuilder) ProjectCondition() ConditionBuilder { return b.Field(FieldProject) }

// Category adds "category in (categories...)".
func (b *ClauseBuilder) Category(categories ...string) *ClauseBuilder {
	return b.resolvable(FieldCategory, categories)
}

func (b *ClauseBuilder) CategoryCondition() ConditionBuilder { return b.Field(FieldCategory) }

// IssueType adds "issuetype in (types...)".
func (b *ClauseBuilder) IssueType(types ...string) *ClauseBuilder {
	return b.resolvable(FieldIssueType, types)
}

// IssueTypeIsStandard adds "issuetype in standardIssueTypes()".
func (b *ClauseBuilder) IssueTypeIsStandard() *ClauseBuilder {
	return b.AddFunctionCondition(FieldIssueType, OperatorIn, FunctionStandardIssueTypes)
}

// IssueTypeIsSubtask adds "issuetype in subTaskIssueTypes()".
func (b *ClauseBuilder) IssueTypeIsSubtask() *ClauseBuilder {
	return b.AddFunctionCondition(FieldIssueType, OperatorIn, FunctionSubtaskIssueTypes)
}

func (b *ClauseBuilder) IssueTypeCondition() ConditionBuilder { return b.Field(FieldIssueType) }

// Status adds "status in (statuses...)".
func (b *ClauseBuilder) Status(statuses ...string) *ClauseBuilder {
	return b.resolvable(FieldStatus, statuses)
}

func (b *ClauseBuilder) StatusCondition() ConditionBuilder { return b.Field(FieldStatus) }

// StatusCategory adds "statusCategory in (categories...)".
func (b *ClauseBuilder) StatusCategory(categories ...string) *ClauseBuilder {
	return b.resolvable(FieldStatusCategory, categories)
}

func (b *ClauseBuilder) StatusCategoryCondition() ConditionBuilder {
	return b.Field(FieldStatusCategory)
}

// Priority adds "priority in (priorities...)".
func (b *ClauseBuilder) Priority(priorities ...string) *ClauseBuilder {
	return b.resolvable(FieldPriority, priorities)
}

func (b *ClauseBuilder) PriorityCondition() ConditionBuilder { return b.Field(FieldPriority) }

// Resolution adds "resolution in (resolutions...)".
func (b *ClauseBuilder) Resolution(resolutions ...string) *ClauseBuilder {
	return b.resolvable(FieldResolution, resolutions)
}

// Unresolved adds "resolution = Unresolved".
func (b *ClauseBuilder) Unresolved() *ClauseBuilder {
	return b.AddCondition(FieldResolution, OperatorEquals, StringValue(UnresolvedOperand))
}

func (b *ClauseBuilder) ResolutionCondition() ConditionBuilder { return b.Field(FieldResolution) }

// Component adds "component in (components...)".
func (b *ClauseBuilder) Component(components ...string) *ClauseBuilder {
	return b.resolvable(FieldComponent, components)
}

// ComponentIDs adds "component in (ids...)".
func (b *ClauseBuilder) ComponentIDs(ids ...int64) *ClauseBuilder {
	return b.resolvableIDs(FieldComponent, ids)
}

func (b *ClauseBuilder) ComponentIsEmpty() *ClauseBuilder { return b.AddEmptyCondition(FieldComponent) }

func (b *ClauseBuilder) ComponentCondition() ConditionBuilder { return b.Field(FieldComponent) }

// FixVersion adds "fixVersion in (versions...)".
func (b *ClauseBuilder) FixVersion(versions ...string) *ClauseBuilder {
	return b.resolvable(FieldFixVersion, versions)
}

// FixVersionIDs adds "fixVersion in (ids...)".
func (b *ClauseBuilder) FixVersionIDs(ids ...int64) *ClauseBuilder {
	return b.resolvableIDs(FieldFixVersion, ids)
}

func (b *ClauseBuilder) FixVersionIsEmpty() *ClauseBuilder { return b.AddEmptyCondition(FieldFixVersion) }

func (b *ClauseBuilder) FixVersionCondition() ConditionBuilder { return b.Field(FieldFixVersion) }

// AffectedVersion adds "affectedVersion in (versions...)".
func (b *ClauseBuilder) AffectedVersion(versions ...string) *ClauseBuilder {
	return b.resolvable(FieldAffectedVersion, versions)
}

func (b *ClauseBuilder) AffectedVersionIsEmpty() *ClauseBuilder {
	return b.AddEmptyCondition(FieldAffectedVersion)
}

func (b *ClauseBuilder) AffectedVersionCondition() ConditionBuilder {
	return b.Field(FieldAffectedVersion)
}

// Labels adds "labels in (labels...)".
func (b *ClauseBuilder) Labels(labels ...string) *ClauseBuilder {
	return b.resolvable(FieldLabels, labels)
}

func (b *ClauseBuilder) LabelsIsEmpty() *ClauseBuilder { return b.AddEmptyCondition(FieldLabels) }

func (b *ClauseBuilder) LabelsCondition() ConditionBuilder { return b.Field(FieldLabels) }

// Issue adds "key in (keys...)".
func (b *ClauseBuilder) Issue(keys ...string) *ClauseBuilder {
	return b.resolvable(FieldIssueKey, keys)
}

func (b *ClauseBuilder) IssueInHistory() *ClauseBuilder {
	return b.AddFunctionCondition(FieldIssueKey, OperatorIn, FunctionIssueHistory)
}

func (b *ClauseBuilder) IssueInWatchedIssues() *ClauseBuilder {
	return b.AddFunctionCondition(FieldIssueKey, OperatorIn, FunctionWatchedIssues)
}

func (b *ClauseBuilder) IssueInVotedIssues() *ClauseBuilder {
	return b.AddFunctionCondition(FieldIssueKey, OperatorIn, FunctionVotedIssues)
}

func (b *ClauseBuilder) IssueCondition() ConditionBuilder { return b.Field(FieldIssueKey) }

// IssueParent adds "parent in (keys...)".
func (b *ClauseBuilder) IssueParent(keys ...string) *ClauseBuilder {
	return b.resolvable(FieldIssueParent, keys)
}

func (b *ClauseBuilder) IssueParentCondition() ConditionBuilder { return b.Field(FieldIssueParent) }

// Level adds "level in (levels...)".
func (b *ClauseBuilder) Level(levels ...string) *ClauseBuilder {
	return b.resolvable(FieldLevel, levels)
}

func (b *ClauseBuilder) LevelCondition() ConditionBuilder { return b.Field(FieldLevel) }

// SavedFilter adds "filter in (filters...)".
func (b *ClauseBuilder) SavedFilter(filters ...string) *ClauseBuilder {
	return b.resolvable(FieldSavedFilter, filters)
}

func (b *ClauseBuilder) SavedFilterCondition() ConditionBuilder { return b.Field(FieldSavedFilter) }

// Text fields match with "~".

func (b *ClauseBuilder) Summary(value string) *ClauseBuilder {
	return b.AddStringCondition(FieldSummary, OperatorLike, value)
}

func (b *ClauseBuilder) SummaryCondition() ConditionBuilder { return b.Field(FieldSummary) }

func (b *ClauseBuilder) Description(value string) *ClauseBuilder {
	return b.AddStringCondition(FieldDescription, OperatorLike, value)
}

func (b *ClauseBuilder) DescriptionIsEmpty() *ClauseBuilder {
	return b.AddEmptyCondition(FieldDescription)
}

func (b *ClauseBuilder) DescriptionCondition() ConditionBuilder { return b.Field(FieldDescription) }

func (b *ClauseBuilder) Environment(value string) *ClauseBuilder {
	return b.AddStringCondition(FieldEnvironment, OperatorLike, value)
}

func (b *ClauseBuilder) EnvironmentIsEmpty() *ClauseBuilder {
	return b.AddEmptyCondition(FieldEnvironment)
}

func (b *ClauseBuilder) EnvironmentCondition() ConditionBuilder { return b.Field(FieldEnvironment) }

func (b *ClauseBuilder) Comment(value string) *ClauseBuilder {
	return b.AddStringCondition(FieldComment, OperatorLike, value)
}

func (b *ClauseBuilder) CommentCondition() ConditionBuilder { return b.Field(FieldComment) }

// User fields.

func (b *ClauseBuilder) userIs(field, userName string) *ClauseBuilder {
	if userName == "" {
		return b.fail(invalidArgument("%s: user name is absent", field))
	}
	return b.AddStringCondition(field, OperatorEquals, userName)
}

func (b *ClauseBuilder) userInGroup(field, groupName string) *ClauseBuilder {
	if groupName == "" {
		return b.fail(invalidArgument("%s: group name is absent", field))
	}
	return b.AddFunctionCondition(field, OperatorIn, FunctionMembersOf, groupName)
}

func (b *ClauseBuilder) userIsCurrent(field string) *ClauseBuilder {
	return b.AddFunctionCondition(field, OperatorEquals, FunctionCurrentUser)
}

func (b *ClauseBuilder) ReporterUser(userName string) *ClauseBuilder {
	return b.userIs(FieldReporter, userName)
}

func (b *ClauseBuilder) ReporterInGroup(groupName string) *ClauseBuilder {
	return b.userInGroup(FieldReporter, groupName)
}

func (b *ClauseBuilder) ReporterIsCurrentUser() *ClauseBuilder { return b.userIsCurrent(FieldReporter) }

func (b *ClauseBuilder) ReporterIsEmpty() *ClauseBuilder { return b.AddEmptyCondition(FieldReporter) }

func (b *ClauseBuilder) ReporterCondition() ConditionBuilder { return b.Field(FieldReporter) }

func (b *ClauseBuilder) AssigneeUser(userName string) *ClauseBuilder {
	return b.userIs(FieldAssignee, userName)
}

func (b *ClauseBuilder) AssigneeInGroup(groupName string) *ClauseBuilder {
	return b.userInGroup(FieldAssignee, groupName)
}

func (b *ClauseBuilder) AssigneeIsCurrentUser() *ClauseBuilder { return b.userIsCurrent(FieldAssignee) }

func (b *ClauseBuilder) AssigneeIsEmpty() *ClauseBuilder { return b.AddEmptyCondition(FieldAssignee) }

func (b *ClauseBuilder) AssigneeCondition() ConditionBuilder { return b.Field(FieldAssignee) }

func (b *ClauseBuilder) VoterUser(userName string) *ClauseBuilder {
	return b.userIs(FieldVoters, userName)
}

func (b *ClauseBuilder) VoterInGroup(groupName string) *ClauseBuilder {
	return b.userInGroup(FieldVoters, groupName)
}

func (b *ClauseBuilder) VoterIsCurrentUser() *ClauseBuilder { return b.userIsCurrent(FieldVoters) }

func (b *ClauseBuilder) VoterIsEmpty() *ClauseBuilder { return b.AddEmptyCondition(FieldVoters) }

func (b *ClauseBuilder) VoterCondition() ConditionBuilder { return b.Field(FieldVoters) }

func (b *ClauseBuilder) WatcherUser(userName string) *ClauseBuilder {
	return b.userIs(FieldWatchers, userName)
}

func (b *ClauseBuilder) WatcherInGroup(groupName string) *ClauseBuilder {
	return b.userInGroup(FieldWatchers, groupName)
}

func (b *ClauseBuilder) WatcherIsCurrentUser() *ClauseBuilder { return b.userIsCurrent(FieldWatchers) }

func (b *ClauseBuilder) WatcherIsEmpty() *ClauseBuilder { return b.AddEmptyCondition(FieldWatchers) }

func (b *ClauseBuilder) WatcherCondition() ConditionBuilder { return b.Field(FieldWatchers) }

// Date fields. "After" is inclusive (>=); "Between" takes either end as
// optional, a zero time meaning absent.

func (b *ClauseBuilder) dateAfter(field string, start time.Time) *ClauseBuilder {
	return b.AddDateCondition(field, OperatorGreaterThanEquals, start)
}

func (b *ClauseBuilder) CreatedAfter(start time.Time) *ClauseBuilder {
	return b.dateAfter(FieldCreated, start)
}

func (b *ClauseBuilder) CreatedAfterString(start string) *ClauseBuilder {
	return b.AddStringCondition(FieldCreated, OperatorGreaterThanEquals, start)
}

func (b *ClauseBuilder) CreatedBetween(start, end time.Time) *ClauseBuilder {
	return b.AddDateRangeCondition(FieldCreated, start, end)
}

func (b *ClauseBuilder) CreatedBetweenStrings(start, end string) *ClauseBuilder {
	return b.AddStringRangeCondition(FieldCreated, start, end)
}

func (b *ClauseBuilder) CreatedCondition() ConditionBuilder { return b.Field(FieldCreated) }

func (b *ClauseBuilder) UpdatedAfter(start time.Time) *ClauseBuilder {
	return b.dateAfter(FieldUpdated, start)
}

func (b *ClauseBuilder) UpdatedAfterString(start string) *ClauseBuilder {
	return b.AddStringCondition(FieldUpdated, OperatorGreaterThanEquals, start)
}

func (b *ClauseBuilder) UpdatedBetween(start, end time.Time) *ClauseBuilder {
	return b.AddDateRangeCondition(FieldUpdated, start, end)
}

func (b *ClauseBuilder) UpdatedBetweenStrings(start, end string) *ClauseBuilder {
	return b.AddStringRangeCondition(FieldUpdated, start, end)
}

func (b *ClauseBuilder) UpdatedCondition() ConditionBuilder { return b.Field(FieldUpdated) }

func (b *ClauseBuilder) DueAfter(start time.Time) *ClauseBuilder {
	return b.dateAfter(FieldDue, start)
}

func (b *ClauseBuilder) DueAfterString(start string) *ClauseBuilder {
	return b.AddStringCondition(FieldDue, OperatorGreaterThanEquals, start)
}

func (b *ClauseBuilder) DueBetween(start, end time.Time) *ClauseBuilder {
	return b.AddDateRangeCondition(FieldDue, start, end)
}

func (b *ClauseBuilder) DueBetweenStrings(start, end string) *ClauseBuilder {
	return b.AddStringRangeCondition(FieldDue, start, end)
}

func (b *ClauseBuilder) DueCondition() ConditionBuilder { return b.Field(FieldDue) }

func (b *ClauseBuilder) ResolutionDateAfter(start time.Time) *ClauseBuilder {
	return b.dateAfter(FieldResolutionDate, start)
}

func (b *ClauseBuilder) ResolutionDateAfterString(start string) *ClauseBuilder {
	return b.AddStringCondition(FieldResolutionDate, OperatorGreaterThanEquals, start)
}

func (b *ClauseBuilder) ResolutionDateBetween(start, end time.Time) *ClauseBuilder {
	return b.AddDateRangeCondition(FieldResolutionDate, start, end)
}

func (b *ClauseBuilder) ResolutionDateBetweenStrings(start, end string) *ClauseBuilder {
	return b.AddStringRangeCondition(FieldResolutionDate, start, end)
}

func (b *ClauseBuilder) ResolutionDateCondition() ConditionBuilder {
	return b.Field(FieldResolutionDate)
}

func (b *ClauseBuilder) LastViewedAfter(start time.Time) *ClauseBuilder {
	return b.dateAfter(FieldLastViewed, start)
}

func (b *ClauseBuilder) LastViewedAfterString(start string) *ClauseBuilder {
	return b.AddStringCondition(FieldLastViewed, OperatorGreaterThanEquals, start)
}

func (b *ClauseBuilder) LastViewedBetween(start, end time.Time) *ClauseBuilder {
	return b.AddDateRangeCondition(FieldLastViewed, start, end)
}

func (b *ClauseBuilder) LastViewedBetweenStrings(start, end string) *ClauseBuilder {
	return b.AddStringRangeCondition(FieldLastViewed, start, end)
}

func (b *ClauseBuilder) LastViewedCondition() ConditionBuilder { return b.Field(FieldLastViewed) }

// AttachmentsExists adds "attachments is not EMPTY", or "attachments is EMPTY"
// when hasAttachment is false.
func (b *ClauseBuilder) AttachmentsExists(hasAttachment bool) *ClauseBuilder {
	op := OperatorIs
	if hasAttachment {
		op = OperatorIsNot
	}
	return b.AddCondition(FieldAttachments, op, Empty)
}

// Numeric and duration fields only expose condition builders.

func (b *ClauseBuilder) VotesCondition() ConditionBuilder   { return b.Field(FieldVotes) }
func (b *ClauseBuilder) WatchesCondition() ConditionBuilder { return b.Field(FieldWatches) }

func (b *ClauseBuilder) OriginalEstimateCondition() ConditionBuilder {
	return b.Field(FieldOriginalEstimate)
}

func (b *ClauseBuilder) CurrentEstimateCondition() ConditionBuilder {
	return b.Field(FieldCurrentEstimate)
}

func (b *ClauseBuilder) TimeSpentCondition() ConditionBuilder { return b.Field(FieldTimeSpent) }
func (b *ClauseBuilder) WorkRatioCondition() ConditionBuilder { return b.Field(FieldWorkRatio) }
