package calendar

import "time"

// rata die day 1; absolute ordinals count from here
func gregorianEpoch(loc *time.Location) time.Time {
	return time.Date(1, 1, 1, 0, 0, 0, 0, loc)
}

// julianOffset converts a Julian day number to a Rata Die day number.
// Julian day 1721425 is 0001-01-01.
const julianOffset = 1721424

// beforePresent is the commencement date of the Before Present scale.
func beforePresent(loc *time.Location) time.Time {
	return time.Date(1950, 1, 1, 0, 0, 0, 0, loc)
}

// ResolveOrdinal maps "the Nth unit of the period containing anchor"
// to a date. ordinal -1 selects the last unit of the period. Season
// scopes use the northern astronomical season containing the anchor.
//
// Domain errors: ordinals that name no date (week 5 of a month, year
// zero, negative era counts) return a *DomainError.
func ResolveOrdinal(ordinal int, res Resolution, anchor time.Time) (time.Time, error) {
	return resolveOrdinal(ordinal, 0, false, res, anchor)
}

// ResolveNthWeekday resolves "the Nth {weekday} of the month/year
// containing anchor", like the second Friday of July.
func ResolveNthWeekday(ordinal int, weekday time.Weekday, res Resolution, anchor time.Time) (time.Time, error) {
	if res.Unit != Day || (res.Scope != OfMonth && res.Scope != OfYear && res.Scope != OfWeek) {
		return time.Time{}, domainErrf("weekday ordinals need a day resolution, got %s", res)
	}
	return resolveOrdinal(ordinal, (int(weekday)+6)%7, true, res, anchor)
}

func resolveOrdinal(ordinal, offset int, haveOffset bool, res Resolution, anchor time.Time) (time.Time, error) {
	loc := anchor.Location()
	decade := anchor.Year() / 10 * 10
	century := anchor.Year() / 100 * 100
	millennium := anchor.Year() / 1000 * 1000
	if decade == 0 {
		decade = 1
	}
	if century == 0 {
		century = 1
	}
	if millennium == 0 {
		millennium = 1
	}

	switch res.Scope {
	case Absolute:
		return resolveAbsolute(ordinal, res.Unit, loc)
	case OfReference:
		return resolveOfReference(ordinal, res.Unit, anchor)
	case OfWeek:
		if res.Unit != Day {
			break
		}
		start, _ := WeekRange(anchor)
		if haveOffset {
			start = start.AddDate(0, 0, offset*7)
		}
		return start.AddDate(0, 0, ordinal-1), nil
	case OfWeekend:
		return time.Time{}, domainErrf("weekend ordinals are not supported")
	case OfMonth:
		switch res.Unit {
		case Day:
			if ordinal == -1 {
				_, end := MonthRange(anchor)
				return end, nil
			}
			day := ordinal
			if haveOffset {
				day = nthWeekdayDay(replaceDate(anchor, anchor.Year(), anchor.Month(), 1), ordinal, offset)
			}
			return replaceDate(anchor, anchor.Year(), anchor.Month(), day), nil
		case Week:
			var day time.Time
			if ordinal == -1 {
				day = dateAt(anchor, anchor.Year(), anchor.Month(), 1).AddDate(0, 1, -1)
			} else {
				if ordinal <= 0 || ordinal > 4 {
					return time.Time{}, domainErrf("months only have 4 weeks")
				}
				day = dateAt(anchor, anchor.Year(), anchor.Month(), 1).AddDate(0, 0, ordinal*7-1)
			}
			start, _ := WeekRange(day)
			return start, nil
		}
	case OfYear:
		switch res.Unit {
		case Day:
			if ordinal == -1 {
				return dateAt(anchor, anchor.Year(), 12, 31), nil
			}
			day := ordinal
			if haveOffset {
				day = nthWeekdayDay(dateAt(anchor, anchor.Year(), 1, 1), ordinal, offset)
			}
			return dateAt(anchor, anchor.Year(), 1, 1).AddDate(0, 0, day-1), nil
		case Week:
			var day time.Time
			if ordinal == -1 {
				day = dateAt(anchor, anchor.Year(), 12, 31)
			} else {
				day = dateAt(anchor, anchor.Year(), 1, 1).AddDate(0, 0, ordinal*7-1)
			}
			start, _ := WeekRange(day)
			return start, nil
		case Month:
			if ordinal == -1 {
				return replaceDate(anchor, anchor.Year(), 12, 1), nil
			}
			return dateAt(anchor, anchor.Year(), 1, 1).AddDate(0, ordinal-1, 0), nil
		}
	case OfDecade:
		return resolveOfPeriod(ordinal, res.Unit, decade, 10, anchor)
	case OfCentury:
		return resolveOfPeriod(ordinal, res.Unit, century, 100, anchor)
	case OfMillennium:
		return resolveOfPeriod(ordinal, res.Unit, millennium, 1000, anchor)
	case OfSeason:
		return resolveOfSeason(ordinal, res.Unit, anchor)
	case EraUnix:
		if res.Unit == Second {
			return time.Unix(int64(ordinal), 0).In(loc), nil
		}
	case EraJulian:
		if res.Unit == Day {
			if ordinal <= julianOffset {
				return time.Time{}, domainErrf("can not represent dates BC")
			}
			return gregorianEpoch(loc).AddDate(0, 0, ordinal-julianOffset-1), nil
		}
	case EraLilian:
		if res.Unit == Day {
			return time.Date(1582, 10, 15, 0, 0, 0, 0, loc).AddDate(0, 0, ordinal-1), nil
		}
	case EraRataDie:
		if res.Unit == Day {
			return gregorianEpoch(loc).AddDate(0, 0, ordinal-1), nil
		}
	case EraBeforePresent:
		return resolveBeforePresent(ordinal, res.Unit, loc)
	case EraHeliocentricJulian, EraBarycentricJulian:
		return time.Time{}, domainErrf("%s resolutions are not supported", res.Scope)
	}
	return time.Time{}, domainErrf("invalid resolution %s", res)
}

func resolveAbsolute(ordinal int, unit Unit, loc *time.Location) (time.Time, error) {
	epoch := gregorianEpoch(loc)
	switch unit {
	case Day:
		if ordinal < 0 {
			return time.Time{}, domainErrf("the last day of existence can not be represented")
		}
		return epoch.AddDate(0, 0, ordinal-1), nil
	case Week:
		if ordinal < 0 {
			return time.Time{}, domainErrf("the last week of existence can not be represented")
		}
		day := epoch.AddDate(0, 0, ordinal*7-1)
		start, _ := WeekRange(day)
		return start, nil
	case Month:
		if ordinal < 0 {
			return time.Time{}, domainErrf("the last month of existence can not be represented")
		}
		return epoch.AddDate(0, ordinal-1, 0), nil
	case Year:
		if ordinal == -1 {
			return time.Time{}, domainErrf("the last year of existence can not be represented")
		}
		if ordinal == 0 {
			return time.Time{}, domainErrf("there is no year zero")
		}
		return time.Date(ordinal, 1, 1, 0, 0, 0, 0, loc), nil
	case Decade:
		return resolveAbsolutePeriod(ordinal, 10, "decade", loc)
	case Century:
		return resolveAbsolutePeriod(ordinal, 100, "century", loc)
	case Millennium:
		return resolveAbsolutePeriod(ordinal, 1000, "millennium", loc)
	}
	return time.Time{}, domainErrf("invalid absolute unit %s", unit)
}

// decade 1 is years 1-9; decade N starts at year (N-1)*10
func resolveAbsolutePeriod(ordinal, span int, name string, loc *time.Location) (time.Time, error) {
	if ordinal < 0 {
		return time.Time{}, domainErrf("the last %s of existence can not be represented", name)
	}
	if ordinal == 1 {
		return gregorianEpoch(loc), nil
	}
	return time.Date((ordinal-1)*span, 1, 1, 0, 0, 0, 0, loc), nil
}

func resolveOfReference(ordinal int, unit Unit, anchor time.Time) (time.Time, error) {
	if ordinal < 0 {
		return time.Time{}, domainErrf("reference has no end date")
	}
	ref := dateAt(anchor, anchor.Year(), anchor.Month(), anchor.Day())
	switch unit {
	case Day:
		return ref.AddDate(0, 0, ordinal-1), nil
	case Week:
		return ref.AddDate(0, 0, (ordinal-1)*7), nil
	case Month:
		return ref.AddDate(0, ordinal-1, 0), nil
	case Year:
		return ref.AddDate(ordinal-1, 0, 0), nil
	case Decade:
		return ref.AddDate((ordinal-1)*10, 0, 0), nil
	case Century:
		return ref.AddDate((ordinal-1)*100, 0, 0), nil
	case Millennium:
		return ref.AddDate((ordinal-1)*1000, 0, 0), nil
	}
	return time.Time{}, domainErrf("invalid reference unit %s", unit)
}

// resolveOfPeriod handles day/week/month/year and sub-period ordinals
// within a decade, century or millennium starting at startYear.
func resolveOfPeriod(ordinal int, unit Unit, startYear, span int, anchor time.Time) (time.Time, error) {
	loc := anchor.Location()
	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, loc)
	lastYear := startYear + span - 1

	switch unit {
	case Day:
		if ordinal == -1 {
			if lastYear >= 9999 {
				return time.Date(9999, 12, 31, 0, 0, 0, 0, loc), nil
			}
			return time.Date(lastYear, 12, 31, 0, 0, 0, 0, loc), nil
		}
		return start.AddDate(0, 0, ordinal-1), nil
	case Week:
		var day time.Time
		if ordinal == -1 {
			day = time.Date(lastYear, 12, 31, 0, 0, 0, 0, loc)
		} else {
			day = start.AddDate(0, 0, ordinal*7-1)
		}
		s, _ := WeekRange(day)
		return s, nil
	case Month:
		if ordinal == -1 {
			return time.Date(lastYear, 12, 1, 0, 0, 0, 0, loc), nil
		}
		return start.AddDate(0, ordinal-1, 0), nil
	case Year:
		if ordinal == -1 {
			return time.Date(lastYear, 1, 1, 0, 0, 0, 0, loc), nil
		}
		if ordinal == 0 {
			return time.Time{}, domainErrf("there is no year zero")
		}
		if ordinal > span {
			return time.Time{}, domainErrf("period of %d years has no year %d", span, ordinal)
		}
		return time.Date(startYear+ordinal-1, 1, 1, 0, 0, 0, 0, loc), nil
	case Decade:
		if span < 100 {
			break
		}
		if ordinal == -1 {
			return time.Date(startYear+span-10, 1, 1, 0, 0, 0, 0, loc), nil
		}
		if ordinal <= 0 || ordinal > span/10 {
			return time.Time{}, domainErrf("period of %d years has no decade %d", span, ordinal)
		}
		return time.Date(startYear+(ordinal-1)*10, 1, 1, 0, 0, 0, 0, loc), nil
	case Century:
		if span < 1000 {
			break
		}
		if ordinal == -1 {
			return time.Date(startYear+900, 1, 1, 0, 0, 0, 0, loc), nil
		}
		if ordinal <= 0 || ordinal > 10 {
			return time.Time{}, domainErrf("millennia only have 10 centuries")
		}
		return time.Date(startYear+(ordinal-1)*100, 1, 1, 0, 0, 0, 0, loc), nil
	}
	return time.Time{}, domainErrf("invalid unit %s for a %d-year period", unit, span)
}

func resolveOfSeason(ordinal int, unit Unit, anchor time.Time) (time.Time, error) {
	start, end := SeasonRange(anchor, NorthernHemisphere, false)
	switch unit {
	case Day:
		if ordinal == -1 {
			return end, nil
		}
		return start.AddDate(0, 0, ordinal-1), nil
	case Week:
		if ordinal == -1 {
			s, _ := WeekRange(end)
			return s, nil
		}
		s, _ := WeekRange(start.AddDate(0, 0, 6))
		return s.AddDate(0, 0, (ordinal-1)*7), nil
	case Month:
		if ordinal == -1 {
			return dateAt(end, end.Year(), end.Month(), 1), nil
		}
		if ordinal > 3 {
			return time.Time{}, domainErrf("seasons only have 3 months")
		}
		next, err := NextOf(start, Month)
		if err != nil {
			return time.Time{}, err
		}
		return next.AddDate(0, ordinal-1, 0), nil
	}
	return time.Time{}, domainErrf("invalid season unit %s", unit)
}

func resolveBeforePresent(ordinal int, unit Unit, loc *time.Location) (time.Time, error) {
	if ordinal < 0 {
		return time.Time{}, domainErrf("can not represent dates BC")
	}
	bp := beforePresent(loc)
	switch unit {
	case Day:
		return bp.AddDate(0, 0, -ordinal), nil
	case Week:
		_, end := WeekRange(bp.AddDate(0, 0, -ordinal*7))
		return end, nil
	case Month:
		return bp.AddDate(0, -ordinal, 0), nil
	case Year:
		return bp.AddDate(-ordinal, 0, 0), nil
	case Decade:
		return bp.AddDate(-10*ordinal, 0, 0), nil
	case Century:
		return bp.AddDate(-100*ordinal, 0, 0), nil
	case Millennium:
		return bp.AddDate(-1000*ordinal, 0, 0), nil
	}
	return time.Time{}, domainErrf("invalid before-present unit %s", unit)
}

// nthWeekdayDay returns the day of the month (or year, when first is
// January 1) holding the ordinal-th weekday. offset is the Monday-based
// weekday index.
func nthWeekdayDay(first time.Time, ordinal, offset int) int {
	firstDay := mondayIndex(first)
	if offset >= firstDay {
		return 1 + offset - firstDay + (ordinal-1)*7
	}
	return 1 + offset - firstDay + ordinal*7
}
