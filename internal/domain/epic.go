package domain

import "time"

type Epic struct {
	ID        string
	ProjectID string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SpanDays returns the epic's duration in days, inclusive of the start date
// and exclusive of the end date. Never less than 1 so FTE division is safe.
func (e *Epic) SpanDays() float64 {
	return spanDays(e.StartDate, e.EndDate)
}

func spanDays(start, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	if days < 1 {
		return 1
	}
	return days
}
