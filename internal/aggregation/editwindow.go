package aggregation

import "time"

// Bauleiter may edit a Tagesmeldung until two calendar days after the
// record date, end of day.
const editWindowDays = 2

// IsWithinEditWindow reports whether a record dated recordDate may
// still be edited. Admins always may.
func IsWithinEditWindow(recordDate string, isAdmin bool) bool {
	return isWithinEditWindowAt(recordDate, isAdmin, time.Now())
}

func isWithinEditWindowAt(recordDate string, isAdmin bool, now time.Time) bool {
	if isAdmin {
		return true
	}
	deadline, ok := editDeadline(recordDate, now.Location())
	if !ok {
		return false
	}
	return !now.After(deadline)
}

// GetEditDeadline returns the instant the edit window closes, for
// display next to the record. ok is false when the date does not
// parse.
func GetEditDeadline(recordDate string) (deadline time.Time, ok bool) {
	return editDeadline(recordDate, time.Local)
}

func editDeadline(recordDate string, loc *time.Location) (time.Time, bool) {
	day, ok := parseDay(recordDate)
	if !ok {
		return time.Time{}, false
	}
	deadline := time.Date(day.Year(), day.Month(), day.Day()+editWindowDays,
		23, 59, 59, int(999*time.Millisecond), loc)
	return deadline, true
}
