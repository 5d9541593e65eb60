package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rbmoura/sysportal/internal/client/models"
	"github.com/rbmoura/sysportal/internal/client/systems"
)

// List fetches the catalog and prints it, remembering the result for the
// show/delete/filter commands.
func (a *App) List(ctx context.Context) error {
	return a.guard.Protect(ctx, func(models.Session) error {
		st, err := systems.NewListState(ctx, a.catalog)
		if err != nil {
			a.reportError(ctx, err)
			return err
		}
		a.list = st
		a.printSystems(st.Systems)
		if cats := systems.Categories(st.Systems); len(cats) > 0 {
			fmt.Fprintln(a.out, "Categories:", strings.Join(cats, ", "))
		}
		return nil
	})
}

// Filter prompts for a search term and a category and prints the matching
// subset of the catalog. The filter lives only for this invocation; the
// cached list itself is untouched.
func (a *App) Filter(ctx context.Context) error {
	return a.guard.Protect(ctx, func(models.Session) error {
		term, err := getSimpleText(a.reader, "Search term (empty for all)", a.out)
		if err != nil {
			return err
		}
		category, err := getSimpleText(a.reader, "Category (empty for all)", a.out)
		if err != nil {
			return err
		}

		st, err := a.currentList(ctx)
		if err != nil {
			a.reportError(ctx, err)
			return err
		}

		a.printSystems(systems.Filter{Term: term, Category: category}.Apply(st.Systems))
		return nil
	})
}

// Show fetches and displays a single system by ID.
func (a *App) Show(ctx context.Context) error {
	return a.guard.Protect(ctx, func(models.Session) error {
		id, err := getSimpleText(a.reader, "Enter system id", a.out)
		if err != nil {
			return err
		}

		sys, err := a.catalog.Get(ctx, id)
		if err != nil {
			a.reportError(ctx, err)
			return err
		}

		a.printSystemDetails(*sys)
		return nil
	})
}

// Edit walks the user through the update form for a single system. Fields
// left empty keep their current value and stay off the wire; only the
// expiration date is always sent, because null is how a set date gets
// cleared.
func (a *App) Edit(ctx context.Context) error {
	return a.guard.Protect(ctx, func(models.Session) error {
		id, err := getSimpleText(a.reader, "Enter system id", a.out)
		if err != nil {
			return err
		}

		sys, err := a.catalog.Get(ctx, id)
		if err != nil {
			a.reportError(ctx, err)
			return err
		}

		patch, err := a.editForm(*sys)
		if err != nil {
			return err
		}

		updated, err := a.catalog.Update(ctx, id, patch)
		if err != nil {
			a.reportError(ctx, err)
			return err
		}

		// cached list is stale after an update
		a.list = nil
		fmt.Fprintf(a.out, "System %q updated\n", updated.Name)
		return nil
	})
}

// Delete removes a system by ID. The cached list entry goes away only
// after the backend confirms the deletion.
func (a *App) Delete(ctx context.Context) error {
	return a.guard.Protect(ctx, func(models.Session) error {
		id, err := getSimpleText(a.reader, "Enter system id to delete", a.out)
		if err != nil {
			return err
		}

		st, err := a.currentList(ctx)
		if err != nil {
			a.reportError(ctx, err)
			return err
		}

		if err := st.Delete(ctx, id); err != nil {
			a.reportError(ctx, err)
			return err
		}

		fmt.Fprintf(a.out, "System %s deleted (%d remaining)\n", id, len(st.Systems))
		return nil
	})
}

// currentList returns the cached list state, fetching the catalog if no
// list command ran yet in this session.
func (a *App) currentList(ctx context.Context) (*systems.ListState, error) {
	if a.list != nil {
		return a.list, nil
	}
	st, err := systems.NewListState(ctx, a.catalog)
	if err != nil {
		return nil, err
	}
	a.list = st
	return st, nil
}

// editForm prompts for every editable field, seeded with the system's
// current values, and returns the partial update to send.
func (a *App) editForm(sys models.System) (models.SystemPatch, error) {
	var zero models.SystemPatch
	patch := models.SystemPatch{}

	fields := []struct {
		prompt  string
		current string
		set     func(string)
	}{
		{"Name", sys.Name, func(v string) { patch.Name = v }},
		{"URL", sys.URL, func(v string) { patch.URL = v }},
		{"Icon", sys.Icon, func(v string) { patch.Icon = v }},
		{"Category", sys.Category, func(v string) { patch.Category = v }},
		{"Responsible", sys.Responsible, func(v string) { patch.Responsible = v }},
		{"Description", sys.Description, func(v string) { patch.Description = v }},
		{"Tech stack", sys.TechStack, func(v string) { patch.TechStack = v }},
		{"Dependencies", sys.Dependencies, func(v string) { patch.Dependencies = v }},
		{"Status (Active/Inactive)", string(sys.Status), func(v string) { patch.Status = models.SystemStatus(v) }},
		{"Access level", string(sys.AccessLevel), func(v string) { patch.AccessLevel = models.AccessLevel(v) }},
	}

	for _, f := range fields {
		v, err := getOptionalText(a.reader, f.prompt, f.current, a.out)
		if err != nil {
			return zero, err
		}
		if v != f.current {
			f.set(v)
		}
	}

	currentTags := strings.Join(sys.Tags, ",")
	tagsLine, err := getOptionalText(a.reader, "Tags (comma-separated)", currentTags, a.out)
	if err != nil {
		return zero, err
	}
	if tagsLine != currentTags {
		patch.Tags = splitTags(tagsLine)
	}

	currentExp := ""
	if sys.ExpirationDate != nil {
		currentExp = *sys.ExpirationDate
	}
	exp, err := getOptionalText(a.reader, "Expiration date (YYYY-MM-DD, '-' to clear)", currentExp, a.out)
	if err != nil {
		return zero, err
	}
	if exp != "" && exp != "-" {
		patch.ExpirationDate = &exp
	}

	return patch, nil
}

func splitTags(line string) []string {
	var tags []string
	for _, t := range strings.Split(line, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (a *App) printSystems(list []models.System) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No systems found.")
		return
	}
	fmt.Fprintf(a.out, "%-12s %-25s %-15s %-10s %s\n", "ID", "NAME", "CATEGORY", "STATUS", "URL")
	for _, sys := range list {
		fmt.Fprintf(a.out, "%-12s %-25s %-15s %-10s %s\n",
			sys.ID, sys.Name, sys.Category, sys.Status, sys.URL)
	}
}

func (a *App) printSystemDetails(sys models.System) {
	fmt.Fprintf(a.out, "Name: %s\n", sys.Name)
	fmt.Fprintf(a.out, "URL: %s\n", sys.URL)
	fmt.Fprintf(a.out, "Category: %s\n", sys.Category)
	fmt.Fprintf(a.out, "Status: %s\n", sys.Status)
	fmt.Fprintf(a.out, "Access level: %s\n", sys.AccessLevel)
	if sys.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", sys.Description)
	}
	if len(sys.Tags) > 0 {
		fmt.Fprintf(a.out, "Tags: %s\n", strings.Join(sys.Tags, ", "))
	}
	if sys.Responsible != "" {
		fmt.Fprintf(a.out, "Responsible: %s\n", sys.Responsible)
	}
	if sys.TechStack != "" {
		fmt.Fprintf(a.out, "Tech stack: %s\n", sys.TechStack)
	}
	if sys.Dependencies != "" {
		fmt.Fprintf(a.out, "Dependencies: %s\n", sys.Dependencies)
	}
	if sys.ExpirationDate != nil {
		fmt.Fprintf(a.out, "Expires: %s\n", *sys.ExpirationDate)
	}
	if sys.CreatedAt != "" {
		fmt.Fprintf(a.out, "Created: %s\n", sys.CreatedAt)
	}
}
