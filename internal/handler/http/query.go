package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/report"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
)

// queryParams reads optional filters from the query string and collects
// every malformed value so one response can report all of them.
type queryParams struct {
	values url.Values
	errs   validator.ValidationErrors
	fault  error
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{values: r.URL.Query()}
}

func (q *queryParams) has(key string) bool {
	return strings.TrimSpace(q.values.Get(key)) != ""
}

func (q *queryParams) str(key string) *string {
	if !q.has(key) {
		return nil
	}
	v := strings.TrimSpace(q.values.Get(key))
	return &v
}

// uuid reads an optional id filter.
func (q *queryParams) uuid(key string) *string {
	v := q.str(key)
	if v != nil && !validator.IsValidUUID(*v) {
		q.errs = append(q.errs, validator.ValidationError{
			Field:   key,
			Message: fmt.Sprintf("%s must be a valid UUID", key),
		})
		return nil
	}
	return v
}

func (q *queryParams) intOr(key string, fallback int) int {
	if !q.has(key) {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(q.values.Get(key)))
	if err != nil {
		q.errs = append(q.errs, validator.ValidationError{
			Field:   key,
			Message: fmt.Sprintf("%s must be a whole number", key),
		})
		return fallback
	}
	return v
}

func (q *queryParams) date(key string) *time.Time {
	if !q.has(key) {
		return nil
	}
	t, err := calendar.ParseDate(q.values.Get(key))
	if err != nil {
		q.errs = append(q.errs, validator.ValidationError{
			Field:   key,
			Message: fmt.Sprintf("%s must be a date in YYYY-MM-DD format", key),
		})
		return nil
	}
	return &t
}

func (q *queryParams) dateOr(key string, fallback time.Time) time.Time {
	if t := q.date(key); t != nil {
		return *t
	}
	return calendar.Day(fallback)
}

func (q *queryParams) oneOf(key string, allowed []string) *string {
	v := q.str(key)
	if v == nil {
		return nil
	}
	if !validator.IsInSlice(*v, allowed) {
		q.errs = append(q.errs, validator.ValidationError{
			Field:   key,
			Message: fmt.Sprintf("%s must be one of: %s", key, strings.Join(allowed, ", ")),
		})
		return nil
	}
	return v
}

// month reads month/year, both defaulting to the month containing now.
func (q *queryParams) month(now time.Time) report.PeriodRequest {
	return report.PeriodRequest{
		Month: q.intOr("month", int(now.Month())),
		Year:  q.intOr("year", now.Year()),
	}
}

// period resolves start_date/end_date or month/year into a date range.
// With none of them present it returns the zero Period, which matches every date.
func (q *queryParams) period(now time.Time) calendar.Period {
	if q.has("start_date") || q.has("end_date") {
		start, end := q.date("start_date"), q.date("end_date")
		if q.has("start_date") != q.has("end_date") {
			q.errs = append(q.errs, validator.ValidationError{
				Field:   "date_range",
				Message: "start_date and end_date must be given together",
			})
			return calendar.Period{}
		}
		if start == nil || end == nil {
			return calendar.Period{}
		}
		if end.Before(*start) {
			q.fail(report.ErrInvalidDateRange)
			return calendar.Period{}
		}
		return calendar.NewPeriod(*start, *end)
	}

	if q.has("month") || q.has("year") {
		req := q.month(now)
		if req.Month < 1 || req.Month > 12 {
			q.fail(report.ErrInvalidMonth)
			return calendar.Period{}
		}
		if !q.has("month") {
			return calendar.YearPeriod(req.Year)
		}
		return req.Period()
	}

	return calendar.Period{}
}

func (q *queryParams) fail(err error) {
	if q.fault == nil {
		q.fault = err
	}
}

func (q *queryParams) err() error {
	if len(q.errs) > 0 {
		return q.errs
	}
	return q.fault
}

// pathID reads a route id. Malformed ids are rejected before any lookup.
func pathID(r *http.Request, key string) (string, error) {
	id := chi.URLParam(r, key)
	if !validator.IsValidUUID(id) {
		return "", validator.ValidationErrors{{Field: key, Message: fmt.Sprintf("%s must be a valid UUID", key)}}
	}
	return id, nil
}
