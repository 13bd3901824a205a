package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAggregatePeriod_FiltersDateAndEntries(t *testing.T) {
	// crew A is out of range, crew B has no entries
	records := []DailyRecord{
		{ID: "1", Date: "2025-01-10", KolonneID: "A", PlannedRevenue: 100},
		{ID: "2", Date: "2025-01-15", KolonneID: "B"},
	}
	result := AggregatePeriod(records, DateRange{From: day("2025-01-14"), To: day("2025-01-16")})

	assert.Equal(t, 0, result.ContributingCrewsCount)
	assert.Empty(t, result.ContributingCrewIDs)
	assert.Equal(t, InitTotals(), result.Totals)
}

func TestAggregatePeriod_SumsQualifyingRecords(t *testing.T) {
	records := []DailyRecord{
		{
			ID: "1", Date: "2025-03-03", KolonneID: "K1",
			EmployeesCount: 4, EmployeesPlan: 5,
			HoursPerEmployee: 8, HoursPlan: 8,
			PlannedRevenue: 1000, ActualRevenue: 1200,
		},
		{
			ID: "2", Date: "2025-03-04", KolonneID: "K1",
			EmployeesCount: 3, EmployeesPlan: 3,
			HoursPerEmployee: 7.5, HoursPlan: 8,
			PlannedRevenue: 900, ActualRevenue: 850,
		},
		{
			ID: "3", Date: "2025-03-04", KolonneID: "K2",
			EmployeesCount: 2, EmployeesPlan: 2,
			HoursPerEmployee: 8, HoursPlan: 8,
			PlannedRevenue: 400, ActualRevenue: 500,
		},
		// outside the range, must not contribute
		{
			ID: "4", Date: "2025-03-10", KolonneID: "K3",
			EmployeesCount: 9, PlannedRevenue: 9999, ActualRevenue: 9999,
		},
	}
	result := AggregatePeriod(records, DateRange{From: day("2025-03-03"), To: day("2025-03-07")})

	assert.Equal(t, 2, result.ContributingCrewsCount)
	assert.Equal(t, []string{"K1", "K2"}, result.ContributingCrewIDs)
	assert.Equal(t, 3, result.Totals.RecordCount)
	assert.InDelta(t, 2300, result.Totals.TotalPlanned, 1e-9)
	assert.InDelta(t, 2550, result.Totals.TotalActual, 1e-9)
	assert.InDelta(t, 9, result.Totals.TotalEmployees, 1e-9)
	assert.InDelta(t, 10, result.Totals.TotalEmployeesPlan, 1e-9)
	// hours are always employees x hours-per-employee
	assert.InDelta(t, 4*8+3*7.5+2*8, result.Totals.TotalHours, 1e-9)
	assert.InDelta(t, 5*8+3*8+2*8, result.Totals.TotalHoursPlan, 1e-9)
}

func TestAggregatePeriod_ExplicitFlagWins(t *testing.T) {
	records := []DailyRecord{
		// flagged off despite revenue: excluded
		{ID: "1", Date: "2025-02-05", KolonneID: "A", ActualRevenue: 500, HasEntries: boolPtr(false)},
		// flagged on despite zeros: included
		{ID: "2", Date: "2025-02-05", KolonneID: "B", HasEntries: boolPtr(true)},
	}
	result := AggregatePeriod(records, DateRange{From: day("2025-02-01"), To: day("2025-02-28")})

	assert.Equal(t, []string{"B"}, result.ContributingCrewIDs)
	assert.Equal(t, 1, result.Totals.RecordCount)
	assert.Zero(t, result.Totals.TotalActual)
}

func TestAggregatePeriod_InvertedRangeIsEmpty(t *testing.T) {
	records := []DailyRecord{
		{ID: "1", Date: "2025-01-15", KolonneID: "A", ActualRevenue: 100},
	}
	result := AggregatePeriod(records, DateRange{From: day("2025-01-20"), To: day("2025-01-10")})
	assert.Zero(t, result.Totals.RecordCount)
	assert.Zero(t, result.ContributingCrewsCount)
}

func TestAggregatePeriod_UnparsableDateSkipped(t *testing.T) {
	records := []DailyRecord{
		{ID: "1", Date: "not-a-date", KolonneID: "A", ActualRevenue: 100},
		{ID: "2", Date: "2025-01-15T09:30:00", KolonneID: "B", ActualRevenue: 50},
	}
	result := AggregatePeriod(records, DateRange{From: day("2025-01-01"), To: day("2025-01-31")})
	// time-of-day suffixes are ignored, garbage dates are skipped
	assert.Equal(t, []string{"B"}, result.ContributingCrewIDs)
	assert.InDelta(t, 50, result.Totals.TotalActual, 1e-9)
}

func TestAggregatePeriod_Idempotent(t *testing.T) {
	records := []DailyRecord{
		{ID: "1", Date: "2025-06-02", KolonneID: "A", EmployeesCount: 3, HoursPerEmployee: 8, ActualRevenue: 750.25, PlannedRevenue: 800.10},
		{ID: "2", Date: "2025-06-03", KolonneID: "B", EmployeesCount: 2, HoursPerEmployee: 7, ActualRevenue: 420.42},
	}
	r := DateRange{From: day("2025-06-01"), To: day("2025-06-30")}

	first := AggregatePeriod(records, r)
	second := AggregatePeriod(records, r)
	assert.Equal(t, first, second)
}

func TestRecordHasEntries_Heuristic(t *testing.T) {
	assert.True(t, RecordHasEntries(DailyRecord{PlannedRevenue: 1}))
	assert.True(t, RecordHasEntries(DailyRecord{ActualRevenue: 1}))
	assert.True(t, RecordHasEntries(DailyRecord{EmployeesCount: 1}))
	assert.False(t, RecordHasEntries(DailyRecord{HoursPerEmployee: 8}))
	assert.False(t, RecordHasEntries(DailyRecord{}))
}

func TestCalculateKPIs(t *testing.T) {
	totals := PeriodTotals{
		TotalPlanned:       2000,
		TotalActual:        2500,
		TotalEmployees:     10,
		TotalEmployeesPlan: 8,
		TotalHours:         80,
		TotalHoursPlan:     100,
		RecordCount:        4,
	}
	kpis := CalculateKPIs(totals)

	assert.InDelta(t, 500, kpis.Delta, 1e-9)
	assert.True(t, kpis.DeltaPositive)
	assert.InDelta(t, 250, kpis.AvgRevPerEmployee, 1e-9)
	assert.InDelta(t, 31.25, kpis.AvgRevPerHour, 1e-9)
	assert.InDelta(t, 2, kpis.EmployeesDelta, 1e-9)
	assert.InDelta(t, 125, kpis.EmployeesFulfillment, 1e-9)
	assert.InDelta(t, -20, kpis.HoursDelta, 1e-9)
	assert.InDelta(t, 80, kpis.HoursFulfillment, 1e-9)
}

func TestCalculateKPIs_EmptyTotals(t *testing.T) {
	kpis := CalculateKPIs(InitTotals())

	require.Zero(t, kpis.Delta)
	// zero delta still counts as non-negative
	assert.True(t, kpis.DeltaPositive)
	assert.Zero(t, kpis.AvgRevPerEmployee)
	assert.Zero(t, kpis.AvgRevPerHour)
	assert.Zero(t, kpis.EmployeesFulfillment)
	assert.Zero(t, kpis.HoursFulfillment)
}
