package domain

import (
	"fmt"
	"strings"
)

// DefaultJQL is used when no filter narrows the search.
const DefaultJQL = "ORDER BY updated DESC"

// BuildJQL assembles a JQL query from simple filters.
func BuildJQL(project, text string, statuses []string) string {
	var parts []string

	if project = strings.TrimSpace(project); project != "" {
		parts = append(parts, "project = "+quote(project))
	}

	if text = strings.TrimSpace(text); text != "" {
		parts = append(parts, "text ~ "+quote(text))
	}

	var quoted []string
	for _, s := range statuses {
		if s = strings.TrimSpace(s); s != "" {
			quoted = append(quoted, quote(s))
		}
	}
	if len(quoted) > 0 {
		parts = append(parts, fmt.Sprintf("status in (%s)", strings.Join(quoted, ", ")))
	}

	if len(parts) == 0 {
		return DefaultJQL
	}
	return strings.Join(parts, " AND ")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// SplitStatuses parses a comma separated status list.
func SplitStatuses(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for s := range strings.SplitSeq(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
