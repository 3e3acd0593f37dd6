// Package recur expands RFC 5545 recurrence rules into item dates.
package recur

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"tableflip.dev/agenda/pkg/item"
)

// DefaultLimit caps the occurrences of a rule without COUNT or UNTIL.
const DefaultLimit = 366

// Expand returns the ISO dates produced by rule with DTSTART at start, in
// order. An optional "RRULE:" prefix is accepted. At most limit dates are
// returned; limit <= 0 selects DefaultLimit.
func Expand(rule string, start time.Time, limit int) ([]string, error) {
	rule = strings.TrimSpace(rule)
	rule = strings.TrimPrefix(strings.TrimPrefix(rule, "RRULE:"), "rrule:")
	if rule == "" {
		return nil, errors.New("recur: empty rule")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("recur: parse %q: %w", rule, err)
	}
	r.DTStart(item.Midnight(start))

	next := r.Iterator()
	var out []string
	for len(out) < limit {
		t, ok := next()
		if !ok {
			break
		}
		out = append(out, item.FormatDate(t))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("recur: %q produces no occurrences", rule)
	}
	return out, nil
}
