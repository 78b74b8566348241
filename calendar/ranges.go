package calendar

import "time"

// WeekRange returns the Monday and Sunday of the week containing ref.
func WeekRange(ref time.Time) (start, end time.Time) {
	start = ref.AddDate(0, 0, -mondayIndex(ref))
	return start, start.AddDate(0, 0, 6)
}

// WeekendRange returns the Saturday and Sunday nearest ref: the current
// weekend when ref falls on one, else the coming weekend.
func WeekendRange(ref time.Time) (start, end time.Time) {
	switch wd := ref.Weekday(); {
	case wd == time.Saturday:
		start = ref
	case wd == time.Sunday:
		start = ref.AddDate(0, 0, -1)
	default:
		monday, _ := WeekRange(ref)
		start = monday.AddDate(0, 0, 5)
	}
	return start, start.AddDate(0, 0, 1)
}

// MonthRange returns the first and last day of ref's month.
func MonthRange(ref time.Time) (start, end time.Time) {
	start = replaceDate(ref, ref.Year(), ref.Month(), 1)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// YearRange returns January 1 and December 31 of ref's year.
func YearRange(ref time.Time) (start, end time.Time) {
	return replaceDate(ref, ref.Year(), 1, 1), replaceDate(ref, ref.Year(), 12, 31)
}

// DecadeRange returns the range of the decade containing ref. Decades
// run from years ending in 0 through years ending in 9.
func DecadeRange(ref time.Time) (start, end time.Time) {
	y := ref.Year() / 10 * 10
	return dateAt(ref, y, 1, 1), dateAt(ref, y+9, 12, 31)
}

// CenturyRange returns the range of the century containing ref.
func CenturyRange(ref time.Time) (start, end time.Time) {
	y := ref.Year() / 100 * 100
	return dateAt(ref, y, 1, 1), dateAt(ref, y+99, 12, 31)
}

// MillenniumRange returns the range of the millennium containing ref.
func MillenniumRange(ref time.Time) (start, end time.Time) {
	y := ref.Year() / 1000 * 1000
	return dateAt(ref, y, 1, 1), dateAt(ref, y+999, 12, 31)
}

// WeekNumber returns the ISO 8601 week number of ref.
func WeekNumber(ref time.Time) int {
	_, week := ref.ISOWeek()
	return week
}

// StartOf truncates ref to the start of the period named by unit.
// Weeks start on Monday, decades on years ending in 0.
func StartOf(ref time.Time, unit Unit) time.Time {
	switch unit {
	case Millennium:
		s, _ := MillenniumRange(ref)
		return s
	case Century:
		s, _ := CenturyRange(ref)
		return s
	case Decade:
		s, _ := DecadeRange(ref)
		return s
	case Year:
		return dateAt(ref, ref.Year(), 1, 1)
	case Month:
		return dateAt(ref, ref.Year(), ref.Month(), 1)
	case Week:
		s, _ := WeekRange(ref)
		return dateAt(s, s.Year(), s.Month(), s.Day())
	case Weekend:
		s, _ := WeekendRange(ref)
		return dateAt(s, s.Year(), s.Month(), s.Day())
	case Day:
		return dateAt(ref, ref.Year(), ref.Month(), ref.Day())
	case Hour:
		return ref.Truncate(time.Hour)
	case Minute:
		return ref.Truncate(time.Minute)
	case Second:
		return ref.Truncate(time.Second)
	}
	return ref
}

// NextOf returns the start of the period of the given unit following
// the one containing ref.
func NextOf(ref time.Time, unit Unit) (time.Time, error) {
	switch unit {
	case Millennium:
		return dateAt(ref, (ref.Year()/1000+1)*1000, 1, 1), nil
	case Century:
		return dateAt(ref, (ref.Year()/100+1)*100, 1, 1), nil
	case Decade:
		return dateAt(ref, (ref.Year()/10+1)*10, 1, 1), nil
	case Year:
		return dateAt(ref, ref.Year()+1, 1, 1), nil
	case Month:
		return dateAt(ref, ref.Year(), ref.Month(), 1).AddDate(0, 1, 0), nil
	case Week:
		_, end := WeekRange(ref)
		end = end.AddDate(0, 0, 1)
		return dateAt(end, end.Year(), end.Month(), end.Day()), nil
	case Day:
		d := ref.AddDate(0, 0, 1)
		return dateAt(d, d.Year(), d.Month(), d.Day()), nil
	case Hour:
		return ref.Add(time.Hour).Truncate(time.Hour), nil
	case Minute:
		return ref.Add(time.Minute).Truncate(time.Minute), nil
	case Second:
		return ref.Add(time.Second).Truncate(time.Second), nil
	}
	return time.Time{}, domainErrf("no next period for unit %s", unit)
}

// mondayIndex is the day count since Monday (Monday = 0).
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// replaceDate keeps ref's clock and location, replacing the date part.
func replaceDate(ref time.Time, year int, month time.Month, day int) time.Time {
	h, m, s := ref.Clock()
	return time.Date(year, month, day, h, m, s, ref.Nanosecond(), ref.Location())
}

// dateAt is midnight on the given date in ref's location.
func dateAt(ref time.Time, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
}
