package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveID matches input against candidate IDs: exact match first, then a
// unique prefix match.
func resolveID(input, kind string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return resolveID(input, "project", ids)
}

func resolveEpicID(ctx context.Context, app *App, projectID, input string) (string, error) {
	epics, err := app.Epics.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(epics))
	for _, e := range epics {
		ids = append(ids, e.ID)
	}
	return resolveID(input, "epic", ids)
}

func resolveSprintID(ctx context.Context, app *App, projectID, input string) (string, error) {
	sprints, err := app.Sprints.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(sprints))
	for _, s := range sprints {
		ids = append(ids, s.ID)
	}
	return resolveID(input, "sprint", ids)
}

func resolveItemID(ctx context.Context, app *App, projectID, input string) (string, error) {
	items, err := app.WorkItems.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(items))
	for _, w := range items {
		ids = append(ids, w.ID)
	}
	return resolveID(input, "work item", ids)
}

func resolvePersonID(ctx context.Context, app *App, input string) (string, error) {
	persons, err := app.Persons.List(ctx)
	if err != nil {
		return "", err
	}
	// People are usually addressed by name at the CLI.
	for _, p := range persons {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}
	ids := make([]string, 0, len(persons))
	for _, p := range persons {
		ids = append(ids, p.ID)
	}
	return resolveID(input, "person", ids)
}
