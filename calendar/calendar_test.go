package calendar

import (
	"errors"
	"testing"
	"time"
)

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveOrdinal(t *testing.T) {
	t.Parallel()
	anchor := date(2117, time.February, 3)

	tests := []struct {
		name    string
		ordinal int
		res     Resolution
		anchor  time.Time
		want    time.Time
	}{
		{"first year of decade", 1, YearOfDecade, anchor, date(2110, 1, 1)},
		{"last year of decade", -1, YearOfDecade, anchor, date(2119, 1, 1)},
		{"third year of century", 3, YearOfCentury, anchor, date(2102, 1, 1)},
		{"tenth year of millennium", 10, YearOfMillennium, anchor, date(2009, 1, 1)},
		{"fifth day of month", 5, DayOfMonth, anchor, date(2117, 2, 5)},
		{"last day of month", -1, DayOfMonth, anchor, date(2117, 2, 28)},
		{"second day of week", 2, DayOfWeek, anchor, date(2117, 2, 2)},
		{"100th day of year", 100, DayOfYear, date(2020, 1, 15), date(2020, 4, 9)},
		{"last day of year", -1, DayOfYear, anchor, date(2117, 12, 31)},
		{"second week of month", 2, WeekOfMonth, anchor, date(2117, 2, 8)},
		{"tenth month of year", 10, MonthOfYear, anchor, date(2117, 10, 1)},
		{"last month of year", -1, MonthOfYear, anchor, date(2117, 12, 1)},
		{"301st day of century", 301, Resolution{Day, OfCentury}, date(900, 1, 1), date(900, 10, 28)},
		{"39th decade of millennium", 39, Resolution{Decade, OfMillennium}, date(5000, 1, 1), date(5380, 1, 1)},
		{"last day of decade", -1, Resolution{Day, OfDecade}, date(5380, 1, 1), date(5389, 12, 31)},
		{"6th millennium", 6, Resolution{Millennium, Absolute}, anchor, date(5000, 1, 1)},
		{"10th century", 10, Resolution{Century, Absolute}, anchor, date(900, 1, 1)},
		{"first decade", 1, Resolution{Decade, Absolute}, anchor, date(1, 1, 1)},
		{"year 1992", 1992, AbsoluteYear, anchor, date(1992, 1, 1)},
		{"absolute day 737000", 737000, AbsoluteDay, anchor, date(2018, 11, 2)},
		{"third day of reference", 3, Resolution{Day, OfReference}, anchor, date(2117, 2, 5)},
		{"second week of reference", 2, Resolution{Week, OfReference}, anchor, date(2117, 2, 10)},
		{"unix epoch", 0, UnixSecond, anchor.UTC(), date(1970, 1, 1)},
		{"lilian day one", 1, LilianDay, anchor, date(1582, 10, 15)},
		{"rata die day one", 1, RataDieDay, anchor, date(1, 1, 1)},
		{"julian day", 2440588, JulianDay, anchor, date(1970, 1, 2)},
		{"100 years before present", 100, BeforePresentYear, anchor, date(1850, 1, 1)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ResolveOrdinal(tt.ordinal, tt.res, tt.anchor)
			if err != nil {
				t.Fatalf("ResolveOrdinal(%d, %s) error: %v", tt.ordinal, tt.res, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ResolveOrdinal(%d, %s) = %v, want %v",
					tt.ordinal, tt.res, got, tt.want)
			}
		})
	}
}

func TestResolveOrdinalDomainErrors(t *testing.T) {
	t.Parallel()
	anchor := date(2117, time.February, 3)

	tests := []struct {
		name    string
		ordinal int
		res     Resolution
	}{
		{"year zero", 0, AbsoluteYear},
		{"year zero of decade", 0, YearOfDecade},
		{"fifth week of month", 5, WeekOfMonth},
		{"fourth month of season", 4, Resolution{Month, OfSeason}},
		{"negative before present", -5, BeforePresentYear},
		{"julian day BC", 1721424, JulianDay},
		{"last day of time", -1, AbsoluteDay},
		{"reference end", -1, Resolution{Day, OfReference}},
		{"heliocentric", 1, Resolution{Day, EraHeliocentricJulian}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ResolveOrdinal(tt.ordinal, tt.res, anchor)
			var derr *DomainError
			if !errors.As(err, &derr) {
				t.Errorf("ResolveOrdinal(%d, %s) error = %v, want DomainError",
					tt.ordinal, tt.res, err)
			}
		})
	}
}

func TestResolveNthWeekday(t *testing.T) {
	t.Parallel()

	// second friday of july 2117
	got, err := ResolveNthWeekday(2, time.Friday, DayOfMonth, date(2117, time.July, 1))
	if err != nil {
		t.Fatal(err)
	}
	if want := date(2117, 7, 9); !got.Equal(want) {
		t.Errorf("second friday of 2117-07 = %v, want %v", got, want)
	}
	if got.Weekday() != time.Friday {
		t.Errorf("weekday = %v", got.Weekday())
	}
}

func TestRanges(t *testing.T) {
	t.Parallel()
	ref := date(2117, time.February, 3) // a Wednesday

	start, end := WeekRange(ref)
	if !start.Equal(date(2117, 2, 1)) || !end.Equal(date(2117, 2, 7)) {
		t.Errorf("WeekRange = %v .. %v", start, end)
	}
	start, end = WeekendRange(ref)
	if !start.Equal(date(2117, 2, 6)) || !end.Equal(date(2117, 2, 7)) {
		t.Errorf("WeekendRange = %v .. %v", start, end)
	}
	start, end = MonthRange(ref)
	if !start.Equal(date(2117, 2, 1)) || !end.Equal(date(2117, 2, 28)) {
		t.Errorf("MonthRange = %v .. %v", start, end)
	}
	start, end = YearRange(ref)
	if !start.Equal(date(2117, 1, 1)) || !end.Equal(date(2117, 12, 31)) {
		t.Errorf("YearRange = %v .. %v", start, end)
	}
	start, end = DecadeRange(ref)
	if !start.Equal(date(2110, 1, 1)) || !end.Equal(date(2119, 12, 31)) {
		t.Errorf("DecadeRange = %v .. %v", start, end)
	}
	start, end = CenturyRange(ref)
	if !start.Equal(date(2100, 1, 1)) || !end.Equal(date(2199, 12, 31)) {
		t.Errorf("CenturyRange = %v .. %v", start, end)
	}
	start, end = MillenniumRange(ref)
	if !start.Equal(date(2000, 1, 1)) || !end.Equal(date(2999, 12, 31)) {
		t.Errorf("MillenniumRange = %v .. %v", start, end)
	}
	if got := WeekNumber(ref); got != 5 {
		t.Errorf("WeekNumber = %d", got)
	}
}

func TestStartOfAndNextOf(t *testing.T) {
	t.Parallel()
	ref := time.Date(2117, 2, 3, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		unit  Unit
		start time.Time
		next  time.Time
	}{
		{Day, date(2117, 2, 3), date(2117, 2, 4)},
		{Week, date(2117, 2, 1), date(2117, 2, 8)},
		{Month, date(2117, 2, 1), date(2117, 3, 1)},
		{Year, date(2117, 1, 1), date(2118, 1, 1)},
		{Decade, date(2110, 1, 1), date(2120, 1, 1)},
		{Century, date(2100, 1, 1), date(2200, 1, 1)},
		{Millennium, date(2000, 1, 1), date(3000, 1, 1)},
	}
	for _, tt := range tests {
		if got := StartOf(ref, tt.unit); !got.Equal(tt.start) {
			t.Errorf("StartOf(%s) = %v, want %v", tt.unit, got, tt.start)
		}
		got, err := NextOf(ref, tt.unit)
		if err != nil {
			t.Fatalf("NextOf(%s): %v", tt.unit, err)
		}
		if !got.Equal(tt.next) {
			t.Errorf("NextOf(%s) = %v, want %v", tt.unit, got, tt.next)
		}
	}
}

func TestSeasons(t *testing.T) {
	t.Parallel()

	// astronomical: early march is still winter
	if got := DateToSeason(date(2024, 3, 2), NorthernHemisphere, false); got != Winter {
		t.Errorf("DateToSeason astro = %v", got)
	}
	// meteorological: march the 1st starts spring
	if got := DateToSeason(date(2024, 3, 2), NorthernHemisphere, true); got != Spring {
		t.Errorf("DateToSeason meteo = %v", got)
	}
	// southern hemisphere swaps
	if got := DateToSeason(date(2024, 3, 2), SouthernHemisphere, true); got != Fall {
		t.Errorf("DateToSeason south = %v", got)
	}
	// outside the table the meteorological rule applies regardless
	if got := DateToSeason(date(2117, 7, 15), NorthernHemisphere, false); got != Summer {
		t.Errorf("DateToSeason 2117 = %v", got)
	}

	next := NextSeason(Spring, date(2024, 1, 1), NorthernHemisphere, false)
	if want := time.Date(2024, 3, 20, 3, 6, 24, 0, time.UTC); !next.Equal(want) {
		t.Errorf("NextSeason = %v, want %v", next, want)
	}
	last := LastSeason(Spring, date(2024, 1, 1), NorthernHemisphere, false)
	if want := time.Date(2023, 3, 20, 21, 24, 26, 0, time.UTC); !last.Equal(want) {
		t.Errorf("LastSeason = %v, want %v", last, want)
	}

	start, end := SeasonRange(date(2024, 1, 1), NorthernHemisphere, false)
	if want := time.Date(2023, 12, 22, 3, 27, 22, 0, time.UTC); !start.Equal(want) {
		t.Errorf("SeasonRange start = %v, want %v", start, want)
	}
	if want := time.Date(2024, 3, 20, 3, 6, 24, 0, time.UTC); !end.Equal(want) {
		t.Errorf("SeasonRange end = %v, want %v", end, want)
	}

	start, end = SeasonRange(date(2117, 1, 15), NorthernHemisphere, false)
	if !start.Equal(date(2116, 12, 1)) || !end.Equal(date(2117, 3, 1)) {
		t.Errorf("SeasonRange 2117 = %v .. %v", start, end)
	}
}

func TestResolutionJSON(t *testing.T) {
	t.Parallel()

	if got := DayOfMonth.String(); got != "Day/OfMonth" {
		t.Errorf("String = %q", got)
	}
	var u Unit
	if err := u.UnmarshalJSON([]byte(`"Decade"`)); err != nil || u != Decade {
		t.Errorf("UnmarshalJSON = %v, %v", u, err)
	}
	if err := u.UnmarshalJSON([]byte(`"Parsec"`)); err == nil {
		t.Error("expected error for unknown unit")
	}
	var s Season
	if err := s.UnmarshalJSON([]byte(`"Fall"`)); err != nil || s != Fall {
		t.Errorf("season = %v, %v", s, err)
	}
}
