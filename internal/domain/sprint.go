package domain

import "time"

type Sprint struct {
	ID        string
	ProjectID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    SprintStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SpanDays returns the sprint's duration in days (start inclusive, end
// exclusive), used as the FTE period length for the sprint's hours.
func (s *Sprint) SpanDays() float64 {
	return spanDays(s.StartDate, s.EndDate)
}
