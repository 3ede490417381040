package domain

import (
	"fmt"
	"time"
)

// AssignmentScope is a tagged choice between the two accounting scopes an
// assignment can target: a whole epic or a single work item. It is
// constructed once via EpicScope or WorkItemScope and validated at creation
// time, so downstream code never deals with a both-set or neither-set pair.
type AssignmentScope struct {
	Kind ScopeKind
	ID   string
}

// EpicScope returns a scope targeting the given epic.
func EpicScope(epicID string) AssignmentScope {
	return AssignmentScope{Kind: ScopeEpic, ID: epicID}
}

// WorkItemScope returns a scope targeting the given work item.
func WorkItemScope(workItemID string) AssignmentScope {
	return AssignmentScope{Kind: ScopeWorkItem, ID: workItemID}
}

// Validate checks that the scope has a known kind and a non-empty target id.
func (s AssignmentScope) Validate() error {
	if s.Kind != ScopeEpic && s.Kind != ScopeWorkItem {
		return fmt.Errorf("unknown assignment scope kind %q", s.Kind)
	}
	if s.ID == "" {
		return fmt.Errorf("assignment scope requires a target id")
	}
	return nil
}

// IsEpic reports whether the scope targets an epic.
func (s AssignmentScope) IsEpic() bool { return s.Kind == ScopeEpic }

// IsWorkItem reports whether the scope targets a work item.
func (s AssignmentScope) IsWorkItem() bool { return s.Kind == ScopeWorkItem }

// PersonAssignment records hours attributed to a person at either epic or
// work-item scope. Hours are always >= 0; an assignment drained to zero is
// deleted rather than retained.
type PersonAssignment struct {
	ID          string
	PersonID    string
	Scope       AssignmentScope
	Hours       float64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the assignment's scope and hours invariants.
func (a *PersonAssignment) Validate() error {
	if a.PersonID == "" {
		return fmt.Errorf("person assignment requires a person id")
	}
	if err := a.Scope.Validate(); err != nil {
		return err
	}
	if a.Hours < 0 {
		return fmt.Errorf("person assignment hours must not be negative (got %g)", a.Hours)
	}
	return nil
}

// CostAssignment links a cost entry to either an epic or a work item.
type CostAssignment struct {
	ID        string
	CostID    string
	Scope     AssignmentScope
	CreatedAt time.Time
}

// Validate checks the assignment's references.
func (a *CostAssignment) Validate() error {
	if a.CostID == "" {
		return fmt.Errorf("cost assignment requires a cost id")
	}
	return a.Scope.Validate()
}
