package systems

import (
	"strings"

	"github.com/rbmoura/sysportal/internal/client/models"
)

// Filter is the transient list-view filter: a free-text term matched
// case-insensitively against name, description and tags, and an exact
// category. Zero values match everything.
type Filter struct {
	Term     string
	Category string
}

// Match reports whether a single record passes the filter.
func (f Filter) Match(sys models.System) bool {
	if f.Category != "" && sys.Category != f.Category {
		return false
	}
	if f.Term == "" {
		return true
	}

	term := strings.ToLower(f.Term)
	if strings.Contains(strings.ToLower(sys.Name), term) ||
		strings.Contains(strings.ToLower(sys.Description), term) {
		return true
	}
	for _, tag := range sys.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Apply returns the records passing the filter, preserving input order.
func (f Filter) Apply(in []models.System) []models.System {
	out := make([]models.System, 0, len(in))
	for _, sys := range in {
		if f.Match(sys) {
			out = append(out, sys)
		}
	}
	return out
}

// Categories returns the distinct categories present in the list, in order
// of first appearance. Empty categories are skipped.
func Categories(in []models.System) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, sys := range in {
		if sys.Category == "" {
			continue
		}
		if _, ok := seen[sys.Category]; ok {
			continue
		}
		seen[sys.Category] = struct{}{}
		out = append(out, sys.Category)
	}
	return out
}
