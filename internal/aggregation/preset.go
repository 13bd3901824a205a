package aggregation

import "time"

// GetDateRangeForPreset resolves a preset against the system clock.
func GetDateRangeForPreset(preset PeriodPreset) DateRange {
	return RangeForPreset(preset, time.Now())
}

// RangeForPreset resolves a named period preset to concrete inclusive
// bounds relative to now. Weeks start on Monday. The custom preset
// returns a degenerate [today, today] placeholder because the caller
// supplies explicit bounds for it.
func RangeForPreset(preset PeriodPreset, now time.Time) DateRange {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch preset {
	case PresetToday:
		return DateRange{From: today, To: today}

	case PresetThisWeek:
		// Sunday is weekday 0, so it sits six days past Monday.
		offset := int(today.Weekday()) - 1
		if today.Weekday() == time.Sunday {
			offset = 6
		}
		monday := today.AddDate(0, 0, -offset)
		return DateRange{From: monday, To: monday.AddDate(0, 0, 6)}

	case PresetThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		// day 0 of the next month is the last day of this one
		last := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location())
		return DateRange{From: first, To: last}

	case PresetThisQuarter:
		quarter := (int(today.Month()) - 1) / 3
		firstMonth := time.Month(quarter*3 + 1)
		first := time.Date(today.Year(), firstMonth, 1, 0, 0, 0, 0, today.Location())
		last := time.Date(today.Year(), firstMonth+3, 0, 0, 0, 0, 0, today.Location())
		return DateRange{From: first, To: last}

	case PresetThisYear:
		first := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		last := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, today.Location())
		return DateRange{From: first, To: last}

	default:
		return DateRange{From: today, To: today}
	}
}
