// Package query parses the handful of query parameters the dashboard sends.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/aliyevq/veresiye/internal/apperr"
)

// DateRange reads optional from/to bounds. Dates arrive as YYYY-MM-DD from
// the date-range picker; full RFC 3339 timestamps are accepted too. The "to"
// bound is widened to the end of its day so a single-day range still catches
// that day's transactions. A value that parses as neither is a validation
// error, never silently ignored.
func DateRange(values url.Values) (*time.Time, *time.Time, error) {
	from, err := parseDate(values.Get("from"), false)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid from date %q", apperr.ErrValidation, values.Get("from"))
	}

	to, err := parseDate(values.Get("to"), true)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid to date %q", apperr.ErrValidation, values.Get("to"))
	}

	return from, to, nil
}

func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}

	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return &t, nil
}

// ID parses a positive integer id; ok is false for anything else.
func ID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
