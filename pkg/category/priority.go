package category

import (
	"fmt"
	"strings"
)

// Priority ranks an item. The zero value is treated as Medium.
type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// PriorityInfo describes how a priority is emphasised.
type PriorityInfo struct {
	Priority Priority
	Weight   int
	Border   string // hex border colour
	Marker   string
}

var priorities = []PriorityInfo{
	{Priority: Low, Weight: 0, Border: "#d1d5db", Marker: " "},
	{Priority: Medium, Weight: 1, Border: "#eab308", Marker: "·"},
	{Priority: High, Weight: 2, Border: "#ef4444", Marker: "!"},
}

// Priorities returns the priority table ordered low to high.
func Priorities() []PriorityInfo {
	out := make([]PriorityInfo, len(priorities))
	copy(out, priorities)
	return out
}

// Info returns the display metadata for p. Unknown priorities fall back to
// Medium.
func (p Priority) Info() PriorityInfo {
	for _, info := range priorities {
		if info.Priority == p {
			return info
		}
	}
	return priorities[1]
}

// Weight orders priorities: high > medium > low.
func (p Priority) Weight() int {
	return p.Info().Weight
}

// Valid reports whether p is one of low, medium or high.
func (p Priority) Valid() bool {
	for _, info := range priorities {
		if info.Priority == p {
			return true
		}
	}
	return false
}

// OrDefault returns Medium for the empty priority.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return Medium
	}
	return p
}

// ParsePriority converts user input into a Priority; empty input is Medium.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return Medium, nil
	}
	if !p.Valid() {
		return Medium, fmt.Errorf("category: unknown priority %q", raw)
	}
	return p, nil
}
