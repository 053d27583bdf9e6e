package match

import (
	"fmt"
	"strings"
)

// ChecklistThreshold is the minimum Score an item must reach before a
// checklist toggle is applied.
const ChecklistThreshold = 0.3

// NoChecklistMatchError reports that no checklist line scored above the
// threshold. Candidates holds every line that was considered, verbatim,
// so the user can retry with better text.
type NoChecklistMatchError struct {
	Query      string
	Candidates []string
}

func (e *NoChecklistMatchError) Error() string {
	return fmt.Sprintf("no checklist item matches %q", e.Query)
}

// checklistItem is one parsed checkbox line of a markdown description.
type checklistItem struct {
	lineIdx int
	prefix  string // everything up to and including "[", typically "- ["
	suffix  string // everything after the state character
	checked bool
	text    string
}

// parseChecklist extracts checkbox lines (`- [ ]` / `- [x]`, the x
// case-insensitive, leading indentation allowed) from description lines.
func parseChecklist(lines []string) []checklistItem {
	var items []checklistItem
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, "- [") || len(trimmed) < 5 {
			continue
		}
		state := trimmed[3]
		if trimmed[4] != ']' {
			continue
		}
		var checked bool
		switch state {
		case ' ':
			checked = false
		case 'x', 'X':
			checked = true
		default:
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		items = append(items, checklistItem{
			lineIdx: i,
			prefix:  indent + "- [",
			suffix:  trimmed[4:], // "] text"
			checked: checked,
			text:    strings.TrimSpace(trimmed[5:]),
		})
	}
	return items
}

// ToggleChecklist finds the checklist line best matching query among the
// lines currently in the opposite state (unchecked when check is true)
// and rewrites only that line's marker. The whole updated description is
// returned for persistence. Exact text matches win immediately;
// otherwise the highest Score at or above ChecklistThreshold is taken.
func ToggleChecklist(description, query string, check bool) (string, error) {
	lines := strings.Split(description, "\n")
	var candidates []checklistItem
	for _, item := range parseChecklist(lines) {
		if item.checked != check {
			candidates = append(candidates, item)
		}
	}

	best, bestScore := -1, 0.0
	for i, item := range candidates {
		s := Score(query, item.text)
		if s == 1.0 {
			best, bestScore = i, s
			break
		}
		if s > bestScore {
			best, bestScore = i, s
		}
	}

	if best < 0 || bestScore < ChecklistThreshold {
		verbatim := make([]string, len(candidates))
		for i, item := range candidates {
			verbatim[i] = lines[item.lineIdx]
		}
		return "", &NoChecklistMatchError{Query: query, Candidates: verbatim}
	}

	item := candidates[best]
	marker := " "
	if check {
		marker = "x"
	}
	lines[item.lineIdx] = item.prefix + marker + item.suffix
	return strings.Join(lines, "\n"), nil
}
