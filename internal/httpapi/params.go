package httpapi

import (
	"errors"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errors.New("invalid " + name)
	}
	return id, nil
}

// parseDate accepts RFC3339 timestamps as well as plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// periodFromQuery reads the reporting period from the period_start and
// report_end query parameters. report_end defaults to now; period_start
// defaults to January 1 of the report end's year.
func periodFromQuery(r *http.Request) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	if raw := r.URL.Query().Get("report_end"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid report_end")
		}
		end = t
	}
	start := time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if raw := r.URL.Query().Get("period_start"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid period_start")
		}
		start = t
	}
	return start, end, nil
}
