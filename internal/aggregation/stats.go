package aggregation

import (
	"sort"
	"time"

	"kolonnen-backend/internal/numbers"
)

const dateLayout = "2006-01-02"

// InitTotals returns a zeroed accumulator.
func InitTotals() PeriodTotals {
	return PeriodTotals{}
}

// addDailyToTotals folds one qualifying record into the totals. Hour
// totals are headcount times per-head hours.
func addDailyToTotals(totals PeriodTotals, record DailyRecord) PeriodTotals {
	employees := numbers.ToNumberOrZero(record.EmployeesCount)
	employeesPlan := numbers.ToNumberOrZero(record.EmployeesPlan)
	hoursPerEmployee := numbers.ToNumberOrZero(record.HoursPerEmployee)
	hoursPlan := numbers.ToNumberOrZero(record.HoursPlan)

	totals.TotalPlanned += numbers.ToNumberOrZero(record.PlannedRevenue)
	totals.TotalActual += numbers.ToNumberOrZero(record.ActualRevenue)
	totals.TotalEmployees += employees
	totals.TotalEmployeesPlan += employeesPlan
	totals.TotalHours += employees * hoursPerEmployee
	totals.TotalHoursPlan += employeesPlan * hoursPlan
	totals.RecordCount++
	return totals
}

// RecordHasEntries reports whether a record carries real data. The
// explicit has_entries flag wins outright when present; otherwise any
// positive revenue or headcount counts.
func RecordHasEntries(record DailyRecord) bool {
	if record.HasEntries != nil {
		return *record.HasEntries
	}
	return numbers.ToNumberOrZero(record.PlannedRevenue) > 0 ||
		numbers.ToNumberOrZero(record.ActualRevenue) > 0 ||
		numbers.ToNumberOrZero(record.EmployeesCount) > 0
}

// parseDay reads the calendar-day part of an ISO date string, ignoring
// any time-of-day suffix.
func parseDay(value string) (time.Time, bool) {
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}
	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// dayKey collapses a timestamp to its calendar day, so instants in
// different locations compare by date only.
func dayKey(t time.Time) int {
	year, month, day := t.Date()
	return year*10000 + int(month)*100 + day
}

func dateInRange(dateStr string, r DateRange) bool {
	day, ok := parseDay(dateStr)
	if !ok {
		// unparsable dates never match a range
		return false
	}
	key := dayKey(day)
	return key >= dayKey(r.From) && key <= dayKey(r.To)
}

// AggregatePeriod folds all records inside the range into totals and
// collects the set of crews that contributed. A record counts only if
// it is inside the range and has entries; a crew counts once no matter
// how many of its records qualify. Pure and order-independent.
func AggregatePeriod(records []DailyRecord, r DateRange) PeriodAggregation {
	crewSet := make(map[string]struct{})
	totals := InitTotals()

	for _, record := range records {
		if !dateInRange(record.Date, r) {
			continue
		}
		if !RecordHasEntries(record) {
			continue
		}
		crewSet[record.KolonneID] = struct{}{}
		totals = addDailyToTotals(totals, record)
	}

	crewIDs := make([]string, 0, len(crewSet))
	for id := range crewSet {
		crewIDs = append(crewIDs, id)
	}
	sort.Strings(crewIDs)

	return PeriodAggregation{
		Totals:                 totals,
		ContributingCrewsCount: len(crewIDs),
		ContributingCrewIDs:    crewIDs,
	}
}

// CalculateKPIs derives the ratio KPIs from period totals. All
// divisions run through numbers.SafeDivide, so empty periods yield
// zeros rather than NaN.
func CalculateKPIs(totals PeriodTotals) KPIs {
	delta := totals.TotalActual - totals.TotalPlanned

	return KPIs{
		Delta:                delta,
		DeltaPositive:        delta >= 0,
		AvgRevPerEmployee:    numbers.SafeDivide(totals.TotalActual, totals.TotalEmployees),
		AvgRevPerHour:        numbers.SafeDivide(totals.TotalActual, totals.TotalHours),
		EmployeesDelta:       totals.TotalEmployees - totals.TotalEmployeesPlan,
		EmployeesFulfillment: numbers.SafeDivide(totals.TotalEmployees, totals.TotalEmployeesPlan) * 100,
		HoursDelta:           totals.TotalHours - totals.TotalHoursPlan,
		HoursFulfillment:     numbers.SafeDivide(totals.TotalHours, totals.TotalHoursPlan) * 100,
	}
}
