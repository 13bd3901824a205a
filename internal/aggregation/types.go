// Package aggregation computes period totals, KPIs and date-range
// policies over crew daily reports (Tagesmeldungen). Everything here is
// a pure function over plain values; callers fetch records and render
// results.
package aggregation

import "time"

// DailyRecord is one crew's report for one calendar date. Numeric
// fields read as zero when the source row carries NULLs; HasEntries
// keeps its tri-state because the explicit flag outranks any
// heuristic.
type DailyRecord struct {
	ID               string   `json:"id"`
	Date             string   `json:"date"`
	KolonneID        string   `json:"kolonne_id"`
	EmployeesCount   float64  `json:"employees_count"`
	EmployeesPlan    float64  `json:"employees_plan"`
	HoursPerEmployee float64  `json:"hours_per_employee"`
	HoursPlan        float64  `json:"hours_plan"`
	PlannedRevenue   float64  `json:"planned_revenue"`
	ActualRevenue    float64  `json:"actual_revenue"`
	RevPerEmployee   *float64 `json:"rev_per_employee"`
	RevPerHour       *float64 `json:"rev_per_hour"`
	HasEntries       *bool    `json:"has_entries"`
}

// PeriodTotals is the running accumulator for a period. Hour totals
// are always the product of headcount and per-head hours, never a
// separately stored field.
type PeriodTotals struct {
	TotalPlanned       float64 `json:"totalPlanned"`
	TotalActual        float64 `json:"totalActual"`
	TotalEmployees     float64 `json:"totalEmployees"`
	TotalEmployeesPlan float64 `json:"totalEmployeesPlan"`
	TotalHours         float64 `json:"totalHours"`
	TotalHoursPlan     float64 `json:"totalHoursPlan"`
	RecordCount        int     `json:"recordCount"`
}

// PeriodAggregation is the result of folding a record set over a date
// range. Recomputed on every query, never persisted.
type PeriodAggregation struct {
	Totals                 PeriodTotals `json:"totals"`
	ContributingCrewsCount int          `json:"contributingCrewsCount"`
	ContributingCrewIDs    []string     `json:"contributingCrewIds"`
}

// KPIs are the ratios derived from period totals. Fulfillment values
// are percentages and fall back to 0 when the plan is 0.
type KPIs struct {
	Delta                float64 `json:"delta"`
	DeltaPositive        bool    `json:"deltaPositive"`
	AvgRevPerEmployee    float64 `json:"avgRevPerEmployee"`
	AvgRevPerHour        float64 `json:"avgRevPerHour"`
	EmployeesDelta       float64 `json:"employeesDelta"`
	EmployeesFulfillment float64 `json:"employeesFulfillment"`
	HoursDelta           float64 `json:"hoursDelta"`
	HoursFulfillment     float64 `json:"hoursFulfillment"`
}

// DateRange bounds are inclusive calendar days. From > To is legal and
// simply matches nothing.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// PeriodPreset names a relative reporting period.
type PeriodPreset string

const (
	PresetToday       PeriodPreset = "today"
	PresetThisWeek    PeriodPreset = "this_week"
	PresetThisMonth   PeriodPreset = "this_month"
	PresetThisQuarter PeriodPreset = "this_quarter"
	PresetThisYear    PeriodPreset = "this_year"
	PresetCustom      PeriodPreset = "custom"
)
