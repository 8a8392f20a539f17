package app

import (
	"regexp"
	"strings"
)

// Long upsert batches during schedule sync would otherwise blow up span size.
const maxTracedQueryLength = 512

var queryWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses whitespace and truncates the statement
// before it is attached to a span.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	flat := queryWhitespace.ReplaceAllString(query, " ")
	if len(flat) > maxTracedQueryLength {
		return flat[:maxTracedQueryLength] + "..."
	}

	return flat
}
