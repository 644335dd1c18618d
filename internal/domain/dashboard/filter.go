package dashboard

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Query narrows the dashboard list. Nil bounds are not applied.
type Query struct {
	Term  string
	Start *time.Time
	End   *time.Time
}

// ParseQuery builds a Query from raw text inputs. Empty bounds are unset.
func ParseQuery(term, start, end string) (Query, error) {
	q := Query{Term: term}
	var err error
	if q.Start, err = parseBound(start); err != nil {
		return Query{}, fmt.Errorf("%w: start: %v", ErrInvalidFilter, err)
	}
	if q.End, err = parseBound(end); err != nil {
		return Query{}, fmt.Errorf("%w: end: %v", ErrInvalidFilter, err)
	}
	return q, nil
}

func parseBound(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Filter returns the contracts matching q, preserving input order.
//
// The term matches case-insensitively against title or parties. When any
// date bound is set, rows whose date does not parse are dropped; bounds are
// inclusive and the end bound covers its whole day.
func Filter(contracts []Contract, q Query) []Contract {
	fold := cases.Fold()
	term := fold.String(q.Term)

	var end *time.Time
	if q.End != nil {
		e := endOfDay(*q.End)
		end = &e
	}
	dated := q.Start != nil || end != nil

	out := make([]Contract, 0, len(contracts))
	for _, c := range contracts {
		if term != "" &&
			!strings.Contains(fold.String(c.Title), term) &&
			!strings.Contains(fold.String(c.Parties), term) {
			continue
		}
		if dated && !inRange(c.Date, q.Start, end) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func inRange(date string, start, end *time.Time) bool {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return false
	}
	if start != nil && d.Before(*start) {
		return false
	}
	if end != nil && d.After(*end) {
		return false
	}
	return true
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
