// utils/calendar.go - calendar helpers shared by battles and attendance
package utils

import "time"

// DateOf truncates t to midnight in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MostRecentSunday returns midnight of the Sunday on or before t.
func MostRecentSunday(t time.Time) time.Time {
	day := DateOf(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// DaysSinceSunday is the battle-week D-Day: 0 on Sunday up to 6 on Saturday.
func DaysSinceSunday(t time.Time) int {
	return int(t.Weekday())
}

// MonthRange returns [first day of month, first day of next month) in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}
