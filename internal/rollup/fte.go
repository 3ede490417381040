// Package rollup aggregates person-hours and costs recorded at epic and
// work-item granularity into consistent per-epic and per-person tables.
// All computations are pure functions over an immutable Snapshot; the only
// mutating operation in the system lives in the service layer.
package rollup

const (
	// DefaultBasisHoursPerDay is the project-wide FTE basis used when the
	// caller does not supply one.
	DefaultBasisHoursPerDay = 5.7

	// DefaultBacklogPeriodDays is the period length used for work items
	// that are not placed in any sprint.
	DefaultBacklogPeriodDays = 14.0
)

// FTE converts raw hours into a dimensionless allocation fraction:
// hours / (basisHoursPerDay * periodDays). A non-positive basis or period
// yields 0 rather than a division blow-up; stored hours are never rewritten,
// so changing the basis simply recomputes the fraction.
func FTE(hours, basisHoursPerDay, periodDays float64) float64 {
	if basisHoursPerDay <= 0 || periodDays <= 0 {
		return 0
	}
	return hours / (basisHoursPerDay * periodDays)
}
