// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// MonthsBetween counts calendar-month boundaries from start to end. The day of
// month is ignored: Jan 31 to Feb 1 is one month, Jan 1 to Jan 31 is zero.
// The result is negative when end is in an earlier month than start.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}
