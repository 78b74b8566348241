package calendar

import "time"

// astroYears bounds the astronomical equinox table. Outside the table
// season boundaries fall back to meteorological month starts.
const (
	astroFirstYear = 2020
	astroLastYear  = 2043
)

func utc(y int, mo time.Month, d, h, mi, s int) time.Time {
	return time.Date(y, mo, d, h, mi, s, 0, time.UTC)
}

// astroSeasons holds the northern-hemisphere equinox and solstice
// moments per year, ordered spring, summer, fall, winter.
var astroSeasons = map[int][4]time.Time{
	2020: {utc(2020, 3, 20, 3, 49, 37), utc(2020, 6, 20, 21, 43, 41), utc(2020, 9, 22, 13, 30, 39), utc(2020, 12, 21, 10, 2, 20)},
	2021: {utc(2021, 3, 20, 9, 37, 29), utc(2021, 6, 21, 3, 32, 10), utc(2021, 9, 22, 19, 21, 6), utc(2021, 12, 21, 15, 59, 18)},
	2022: {utc(2022, 3, 20, 15, 33, 25), utc(2022, 6, 21, 9, 13, 51), utc(2022, 9, 23, 1, 3, 42), utc(2022, 12, 21, 21, 48, 13)},
	2023: {utc(2023, 3, 20, 21, 24, 26), utc(2023, 6, 21, 14, 57, 50), utc(2023, 9, 23, 6, 50, 0), utc(2023, 12, 22, 3, 27, 22)},
	2024: {utc(2024, 3, 20, 3, 6, 24), utc(2024, 6, 20, 20, 51, 0), utc(2024, 9, 22, 12, 43, 40), utc(2024, 12, 21, 9, 20, 34)},
	2025: {utc(2025, 3, 20, 9, 1, 29), utc(2025, 6, 21, 2, 42, 16), utc(2025, 9, 22, 18, 19, 20), utc(2025, 12, 21, 15, 3, 5)},
	2026: {utc(2026, 3, 20, 14, 45, 57), utc(2026, 6, 21, 8, 24, 30), utc(2026, 9, 23, 0, 5, 13), utc(2026, 12, 21, 20, 50, 14)},
	2027: {utc(2027, 3, 20, 20, 24, 41), utc(2027, 6, 21, 14, 10, 50), utc(2027, 9, 23, 6, 1, 43), utc(2027, 12, 22, 2, 42, 10)},
	2028: {utc(2028, 3, 20, 2, 17, 8), utc(2028, 6, 20, 20, 2, 0), utc(2028, 9, 22, 11, 45, 18), utc(2028, 12, 21, 8, 19, 40)},
	2029: {utc(2029, 3, 20, 8, 1, 59), utc(2029, 6, 21, 1, 48, 18), utc(2029, 9, 22, 17, 38, 30), utc(2029, 12, 21, 14, 14, 6)},
	2030: {utc(2030, 3, 20, 13, 52, 6), utc(2030, 6, 21, 7, 31, 19), utc(2030, 9, 22, 23, 26, 53), utc(2030, 12, 21, 20, 9, 38)},
	2031: {utc(2031, 3, 20, 19, 40, 59), utc(2031, 6, 21, 13, 17, 8), utc(2031, 9, 23, 5, 15, 18), utc(2031, 12, 22, 1, 55, 34)},
	2032: {utc(2032, 3, 20, 1, 21, 54), utc(2032, 6, 20, 19, 8, 46), utc(2032, 9, 22, 11, 10, 53), utc(2032, 12, 21, 7, 55, 57)},
	2033: {utc(2033, 3, 20, 7, 22, 44), utc(2033, 6, 21, 1, 1, 9), utc(2033, 9, 22, 16, 51, 41), utc(2033, 12, 21, 13, 46, 0)},
	2034: {utc(2034, 3, 20, 13, 17, 30), utc(2034, 6, 21, 6, 44, 12), utc(2034, 9, 22, 22, 39, 35), utc(2034, 12, 21, 19, 34, 1)},
	2035: {utc(2035, 3, 20, 19, 2, 45), utc(2035, 6, 21, 12, 33, 9), utc(2035, 9, 23, 4, 38, 57), utc(2035, 12, 22, 1, 30, 53)},
	2036: {utc(2036, 3, 20, 1, 2, 51), utc(2036, 6, 20, 18, 32, 15), utc(2036, 9, 22, 10, 23, 20), utc(2036, 12, 21, 7, 12, 54)},
	2037: {utc(2037, 3, 20, 6, 50, 17), utc(2037, 6, 21, 0, 22, 28), utc(2037, 9, 22, 16, 13, 7), utc(2037, 12, 21, 13, 7, 46)},
	2038: {utc(2038, 3, 20, 12, 40, 39), utc(2038, 6, 21, 6, 9, 25), utc(2038, 9, 22, 22, 2, 18), utc(2038, 12, 21, 19, 2, 21)},
	2039: {utc(2039, 3, 20, 18, 32, 4), utc(2039, 6, 21, 11, 57, 27), utc(2039, 9, 23, 3, 49, 39), utc(2039, 12, 22, 0, 40, 38)},
	2040: {utc(2040, 3, 20, 0, 11, 44), utc(2040, 6, 20, 17, 46, 26), utc(2040, 9, 22, 9, 44, 57), utc(2040, 12, 21, 6, 32, 53)},
	2041: {utc(2041, 3, 20, 6, 6, 51), utc(2041, 6, 20, 23, 35, 55), utc(2041, 9, 22, 15, 26, 36), utc(2041, 12, 21, 12, 18, 23)},
	2042: {utc(2042, 3, 20, 11, 53, 22), utc(2042, 6, 21, 5, 15, 54), utc(2042, 9, 22, 21, 11, 37), utc(2042, 12, 21, 18, 4, 7)},
	2043: {utc(2043, 3, 20, 17, 27, 51), utc(2043, 6, 21, 10, 58, 26), utc(2043, 9, 23, 3, 7, 0), utc(2043, 12, 22, 0, 1, 18)},
}

// seasonStartAstro returns the astronomical season start moments for
// the year. In the southern hemisphere the labels swap: the March
// equinox starts fall, the June solstice winter.
func seasonStartAstro(year int, hemisphere Hemisphere) (map[Season]time.Time, bool) {
	moments, ok := astroSeasons[year]
	if !ok {
		return nil, false
	}
	if hemisphere == SouthernHemisphere {
		return map[Season]time.Time{
			Fall:   moments[0],
			Winter: moments[1],
			Spring: moments[2],
			Summer: moments[3],
		}, true
	}
	return map[Season]time.Time{
		Spring: moments[0],
		Summer: moments[1],
		Fall:   moments[2],
		Winter: moments[3],
	}, true
}

// meteoStartMonth is the meteorological start month for a season.
func meteoStartMonth(season Season, hemisphere Hemisphere) time.Month {
	north := map[Season]time.Month{
		Spring: time.March, Summer: time.June,
		Fall: time.September, Winter: time.December,
	}
	south := map[Season]time.Month{
		Spring: time.September, Summer: time.December,
		Fall: time.March, Winter: time.June,
	}
	if hemisphere == SouthernHemisphere {
		return south[season]
	}
	return north[season]
}

// SeasonStart returns the start date of a season in the given year.
// Astronomical moments are used where the table covers the year,
// meteorological month starts elsewhere or when meteorological is set.
func SeasonStart(season Season, year int, loc *time.Location, hemisphere Hemisphere, meteorological bool) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	if year < astroFirstYear || year > astroLastYear {
		meteorological = true
	}
	if !meteorological {
		if starts, ok := seasonStartAstro(year, hemisphere); ok {
			return starts[season].In(loc)
		}
	}
	return time.Date(year, meteoStartMonth(season, hemisphere), 1, 0, 0, 0, 0, loc)
}

// NextSeason returns the next start of the season on or after ref.
func NextSeason(season Season, ref time.Time, hemisphere Hemisphere, meteorological bool) time.Time {
	start := SeasonStart(season, ref.Year(), ref.Location(), hemisphere, meteorological)
	if ref.YearDay() <= start.YearDay() {
		return start
	}
	return SeasonStart(season, ref.Year()+1, ref.Location(), hemisphere, meteorological)
}

// LastSeason returns the most recent start of the season before ref.
func LastSeason(season Season, ref time.Time, hemisphere Hemisphere, meteorological bool) time.Time {
	year := ref.Year()
	// before the March equinox the current winter (northern) began in
	// the previous calendar year
	if ref.Month() < time.March || (ref.Month() == time.March && ref.Day() < 20) {
		if (season == Winter && hemisphere == NorthernHemisphere) ||
			(season == Summer && hemisphere == SouthernHemisphere) {
			year--
		}
	}
	start := SeasonStart(season, year, ref.Location(), hemisphere, meteorological)
	if ref.YearDay() <= start.YearDay() {
		return SeasonStart(season, year-1, ref.Location(), hemisphere, meteorological)
	}
	return start
}

// DateToSeason returns the season containing ref.
func DateToSeason(ref time.Time, hemisphere Hemisphere, meteorological bool) Season {
	year := ref.Year()
	if year < astroFirstYear || year > astroLastYear {
		meteorological = true
	}
	day := dateOnly(ref)

	boundary := func(season Season) time.Time {
		if meteorological {
			return time.Date(year, meteoStartMonth(season, hemisphere), 1, 0, 0, 0, 0, ref.Location())
		}
		starts, _ := seasonStartAstro(year, hemisphere)
		return starts[season].In(ref.Location())
	}

	if hemisphere == NorthernHemisphere {
		if !day.Before(dateOnly(boundary(Fall))) && day.Before(dateOnly(boundary(Winter))) {
			return Fall
		}
		if !day.Before(dateOnly(boundary(Summer))) && day.Before(dateOnly(boundary(Fall))) {
			return Summer
		}
		if !day.Before(dateOnly(boundary(Spring))) && day.Before(dateOnly(boundary(Summer))) {
			return Spring
		}
		return Winter
	}
	// southern: seasons shift by half a year, winter sits mid-year
	if !day.Before(dateOnly(boundary(Fall))) && day.Before(dateOnly(boundary(Winter))) {
		return Fall
	}
	if !day.Before(dateOnly(boundary(Winter))) && day.Before(dateOnly(boundary(Spring))) {
		return Winter
	}
	if !day.Before(dateOnly(boundary(Spring))) && day.Before(dateOnly(boundary(Summer))) {
		return Spring
	}
	return Summer
}

// SeasonRange returns the start and end moments of the season
// containing ref. The end is the start of the following season.
func SeasonRange(ref time.Time, hemisphere Hemisphere, meteorological bool) (start, end time.Time) {
	season := DateToSeason(ref, hemisphere, meteorological)
	loc := ref.Location()
	year := ref.Year()

	start = SeasonStart(season, year, loc, hemisphere, meteorological)
	// the season wrapping the year end may have started last year
	if start.After(ref) {
		start = SeasonStart(season, year-1, loc, hemisphere, meteorological)
	}

	next := seasonAfter(season)
	end = SeasonStart(next, start.Year(), loc, hemisphere, meteorological)
	if !end.After(start) {
		end = SeasonStart(next, start.Year()+1, loc, hemisphere, meteorological)
	}
	return start, end
}

func seasonAfter(s Season) Season {
	switch s {
	case Spring:
		return Summer
	case Summer:
		return Fall
	case Fall:
		return Winter
	}
	return Spring
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
