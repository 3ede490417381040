package rollup

import (
	"sort"
	"strings"
)

// allSelection is the persisted form of the all-sprints filter.
const allSelection = "all"

// SprintFilter holds the explicit set of in-scope sprint ids that
// parametrizes every rollup. It is always passed as a value, never read
// from ambient state. The zero value selects nothing.
type SprintFilter struct {
	all bool
	ids map[string]struct{}
}

// AllSprints returns a filter with every sprint in scope. New sprints join
// the scope automatically since the selection is a flag, not an enumeration.
func AllSprints() SprintFilter {
	return SprintFilter{all: true}
}

// SelectSprints returns a filter scoped to exactly the given sprint ids.
func SelectSprints(ids ...string) SprintFilter {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return SprintFilter{ids: set}
}

// InScope reports whether the given sprint id is selected.
func (f SprintFilter) InScope(sprintID string) bool {
	if f.all {
		return true
	}
	_, ok := f.ids[sprintID]
	return ok
}

// All reports whether the filter selects every sprint.
func (f SprintFilter) All() bool { return f.all }

// IDs returns the explicitly selected sprint ids, sorted. Empty for the
// all-sprints filter.
func (f SprintFilter) IDs() []string {
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Encode serializes the filter into the opaque per-project preference blob.
func (f SprintFilter) Encode() string {
	if f.all {
		return allSelection
	}
	return strings.Join(f.IDs(), ",")
}

// DecodeFilter parses a preference blob produced by Encode.
func DecodeFilter(selection string) SprintFilter {
	if selection == allSelection {
		return AllSprints()
	}
	if selection == "" {
		return SelectSprints()
	}
	return SelectSprints(strings.Split(selection, ",")...)
}
