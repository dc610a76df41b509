package tcm

import (
	"regexp"
	"strings"

	"tcm-go/internal/model"
)

// LineMarker is the literal two-character sequence that delimits individual
// lines inside a multi-line text field (precondition, steps, expected
// result). It is a backslash followed by 'n', not a newline byte; the
// convention must match at import time and batch-materialization time.
const LineMarker = `\n`

// ordinalPrefix matches a leading "1. " style numbering on a line.
var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// StripOrdinal removes a leading numeric-ordinal prefix from a line.
func StripOrdinal(line string) string {
	return ordinalPrefix.ReplaceAllString(line, "")
}

// SplitLines splits a marker-delimited text field into its lines with
// ordinal prefixes stripped. Empty input yields nil.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, LineMarker)
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = StripOrdinal(p)
	}
	return lines
}

// JoinLines builds a marker-delimited text field from individual lines,
// stripping ordinal prefixes and dropping lines that are empty after
// trimming. This is the importer-side half of the convention.
func JoinLines(lines []string) string {
	var kept []string
	for _, l := range lines {
		l = strings.TrimSpace(StripOrdinal(l))
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, LineMarker)
}

// MaterializeSteps converts a marker-delimited steps field into the ordered
// step objects stored on a batch case. Empty input yields an empty (non-nil)
// slice so batch cases always serialize with a steps array.
func MaterializeSteps(text string) []model.Step {
	lines := SplitLines(text)
	steps := make([]model.Step, 0, len(lines))
	for _, l := range lines {
		steps = append(steps, model.Step{Action: l, Description: l})
	}
	return steps
}
