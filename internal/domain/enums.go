package domain

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

type SprintStatus string

const (
	SprintNotStarted SprintStatus = "not_started"
	SprintActive     SprintStatus = "active"
	SprintCompleted  SprintStatus = "completed"
)

type WorkItemStatus string

const (
	WorkItemTodo       WorkItemStatus = "todo"
	WorkItemInProgress WorkItemStatus = "in_progress"
	WorkItemDone       WorkItemStatus = "done"
)

// Location is where a work item's hours and costs are bucketed.
// It is derived from status and sprint membership, never stored.
type Location string

const (
	LocationBacklog   Location = "backlog"
	LocationSprint    Location = "sprint"
	LocationCompleted Location = "completed"
)

// ScopeKind discriminates the two accounting scopes an assignment can target.
type ScopeKind string

const (
	ScopeEpic     ScopeKind = "epic"
	ScopeWorkItem ScopeKind = "work_item"
)
