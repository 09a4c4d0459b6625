package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fundex/despesas/internal/model"

	"github.com/schollz/closestmatch"
)

// pillLimit caps how many selected values a filter pill lists.
const pillLimit = 3

// Set is a set of category labels.
type Set map[string]struct{}

// NewSet builds a set from values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set. A nil set has nothing.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Criteria selects rows by cost center, account and an inclusive date
// range. A zero Start or End leaves that side of the range open.
type Criteria struct {
	Centers  Set
	Accounts Set
	Start    time.Time
	End      time.Time
}

// DefaultCriteria selects every row of t.
func DefaultCriteria(t *model.Table) Criteria {
	first, last, _ := t.DateRange()
	return Criteria{
		Centers:  NewSet(t.Centers()...),
		Accounts: NewSet(t.Accounts()...),
		Start:    dateOnly(first),
		End:      dateOnly(last),
	}
}

// Filter returns the rows of t matching c, in their original order.
// An empty center or account set matches nothing.
func Filter(t *model.Table, c Criteria) *model.Table {
	if len(c.Centers) == 0 || len(c.Accounts) == 0 {
		return model.EmptyTable()
	}

	start, end := dateOnly(c.Start), dateOnly(c.End)
	var rows []model.LedgerRow
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if !c.Centers.Has(r.CostCenter) || !c.Accounts.Has(r.Account) {
			continue
		}
		if !betweenDays(r.Date, start, end) {
			continue
		}
		rows = append(rows, r)
	}
	return model.NewTable(rows)
}

// Describe renders the criteria as short labels, one per dimension, with
// "all" when a set covers every value present in t.
func (c Criteria) Describe(t *model.Table) []string {
	return []string{
		"centers: " + describeSet(c.Centers, t.Centers()),
		"accounts: " + describeSet(c.Accounts, t.Accounts()),
		"period: " + describeRange(c.Start, c.End),
	}
}

func describeSet(s Set, known []string) string {
	if len(s) == 0 {
		return "none"
	}
	covered := 0
	for _, k := range known {
		if s.Has(k) {
			covered++
		}
	}
	if len(known) > 0 && covered == len(known) {
		return "all"
	}

	vals := s.Sorted()
	if len(vals) <= pillLimit {
		return strings.Join(vals, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(vals[:pillLimit], ", "), len(vals)-pillLimit)
}

func describeRange(start, end time.Time) string {
	const layout = "02/01/2006"
	switch {
	case start.IsZero() && end.IsZero():
		return "all dates"
	case start.IsZero():
		return "until " + end.Format(layout)
	case end.IsZero():
		return "from " + start.Format(layout)
	}
	return start.Format(layout) + " - " + end.Format(layout)
}

// UnknownValue is a selected label that matches nothing in the data.
type UnknownValue struct {
	Value      string
	Suggestion string // closest known label, may be empty
}

// UnknownValues lists members of s absent from known, sorted, each with
// the closest known label.
func UnknownValues(s Set, known []string) []UnknownValue {
	present := NewSet(known...)
	var cm *closestmatch.ClosestMatch
	var out []UnknownValue
	for _, v := range s.Sorted() {
		if present.Has(v) {
			continue
		}
		uv := UnknownValue{Value: v}
		if len(known) > 0 {
			if cm == nil {
				cm = closestmatch.New(known, []int{2, 3})
			}
			uv.Suggestion = cm.Closest(v)
		}
		out = append(out, uv)
	}
	return out
}

// dateOnly drops the time of day, keeping the wall-clock date.
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// betweenDays reports start <= d <= end at day granularity. start and end
// must already be day-truncated; zero bounds are open.
func betweenDays(d, start, end time.Time) bool {
	day := dateOnly(d)
	if !start.IsZero() && day.Before(start) {
		return false
	}
	if !end.IsZero() && day.After(end) {
		return false
	}
	return true
}
