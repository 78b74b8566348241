// Package calendar resolves (ordinal, unit, anchor) triples onto
// concrete dates.
//
// A Resolution names a calendar unit together with the superior period
// it counts within: the third day of the month, the 10th week of the
// year, the 5th millennium. Besides civil periods the package knows a
// set of epoch eras (Unix, Julian day, Lilian day, Rata Die, Before
// Present) and season arithmetic with an astronomical equinox table for
// 2020-2043 and meteorological month boundaries outside it.
//
// All functions are pure and safe for concurrent use.
package calendar

import (
	"encoding/json"
	"fmt"
)

// Unit is a calendar unit.
type Unit int

const (
	Microsecond Unit = iota
	Millisecond
	Second
	Minute
	Hour
	Day
	Weekend
	Week
	Month
	Year
	Decade
	Century
	Millennium
)

var unitNames = [...]string{
	Microsecond: "Microsecond",
	Millisecond: "Millisecond",
	Second:      "Second",
	Minute:      "Minute",
	Hour:        "Hour",
	Day:         "Day",
	Weekend:     "Weekend",
	Week:        "Week",
	Month:       "Month",
	Year:        "Year",
	Decade:      "Decade",
	Century:     "Century",
	Millennium:  "Millennium",
}

var unitFromName = map[string]Unit{}

// String returns the name of the unit.
func (u Unit) String() string {
	if int(u) >= 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// MarshalJSON encodes the unit as a JSON string (e.g. "Day").
func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON decodes a JSON string into a Unit.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	uu, ok := unitFromName[s]
	if !ok {
		return fmt.Errorf("calendar: unknown unit: %q", s)
	}
	*u = uu
	return nil
}

// Scope is the superior period an ordinal counts within.
type Scope int

const (
	// Absolute counts from the epoch of the proleptic Gregorian
	// calendar: day 1 and year 1 are 0001-01-01.
	Absolute Scope = iota
	// OfReference counts from the anchor date itself.
	OfReference
	OfWeekend
	OfWeek
	OfMonth
	OfYear
	OfDecade
	OfCentury
	OfMillennium
	OfSeason

	// Epoch eras.
	EraUnix          // seconds since 1970-01-01 00:00:00 UTC
	EraJulian        // days since 4713 BC January 1, 12:00 UTC
	EraLilian        // days since 1582-10-15, the Gregorian reform
	EraRataDie       // days since 0001-01-01
	EraBeforePresent // counted backwards from 1950-01-01

	// Reserved, unsupported.
	EraHeliocentricJulian
	EraBarycentricJulian
)

var scopeNames = [...]string{
	Absolute:              "Absolute",
	OfReference:           "OfReference",
	OfWeekend:             "OfWeekend",
	OfWeek:                "OfWeek",
	OfMonth:               "OfMonth",
	OfYear:                "OfYear",
	OfDecade:              "OfDecade",
	OfCentury:             "OfCentury",
	OfMillennium:          "OfMillennium",
	OfSeason:              "OfSeason",
	EraUnix:               "EraUnix",
	EraJulian:             "EraJulian",
	EraLilian:             "EraLilian",
	EraRataDie:            "EraRataDie",
	EraBeforePresent:      "EraBeforePresent",
	EraHeliocentricJulian: "EraHeliocentricJulian",
	EraBarycentricJulian:  "EraBarycentricJulian",
}

var scopeFromName = map[string]Scope{}

// String returns the name of the scope.
func (s Scope) String() string {
	if int(s) >= 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// MarshalJSON encodes the scope as a JSON string.
func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a JSON string into a Scope.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	ss, ok := scopeFromName[name]
	if !ok {
		return fmt.Errorf("calendar: unknown scope: %q", name)
	}
	*s = ss
	return nil
}

func init() {
	for u, name := range unitNames {
		unitFromName[name] = Unit(u)
	}
	for s, name := range scopeNames {
		scopeFromName[name] = Scope(s)
	}
	for s, name := range seasonNames {
		seasonFromName[name] = Season(s)
	}
}

// Resolution pairs a unit with the scope its ordinals count within.
type Resolution struct {
	Unit  Unit  `json:"unit"`
	Scope Scope `json:"scope"`
}

// String returns a compact "Unit/Scope" form, e.g. "Day/OfMonth".
func (r Resolution) String() string {
	return r.Unit.String() + "/" + r.Scope.String()
}

// Common resolutions used by the extraction passes.
var (
	DayOfMonth        = Resolution{Day, OfMonth}
	DayOfWeek         = Resolution{Day, OfWeek}
	DayOfYear         = Resolution{Day, OfYear}
	WeekOfMonth       = Resolution{Week, OfMonth}
	WeekOfYear        = Resolution{Week, OfYear}
	MonthOfYear       = Resolution{Month, OfYear}
	YearOfDecade      = Resolution{Year, OfDecade}
	YearOfCentury     = Resolution{Year, OfCentury}
	YearOfMillennium  = Resolution{Year, OfMillennium}
	AbsoluteDay       = Resolution{Day, Absolute}
	AbsoluteYear      = Resolution{Year, Absolute}
	UnixSecond        = Resolution{Second, EraUnix}
	JulianDay         = Resolution{Day, EraJulian}
	LilianDay         = Resolution{Day, EraLilian}
	RataDieDay        = Resolution{Day, EraRataDie}
	BeforePresentYear = Resolution{Year, EraBeforePresent}
)

// Season of the year.
type Season int

const (
	Spring Season = iota
	Summer
	Fall
	Winter
)

var seasonNames = [...]string{
	Spring: "Spring",
	Summer: "Summer",
	Fall:   "Fall",
	Winter: "Winter",
}

var seasonFromName = map[string]Season{}

// String returns the name of the season.
func (s Season) String() string {
	if int(s) >= 0 && int(s) < len(seasonNames) {
		return seasonNames[s]
	}
	return fmt.Sprintf("Season(%d)", int(s))
}

// MarshalJSON encodes the season as a JSON string.
func (s Season) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a JSON string into a Season.
func (s *Season) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	ss, ok := seasonFromName[name]
	if !ok {
		return fmt.Errorf("calendar: unknown season: %q", name)
	}
	*s = ss
	return nil
}

// Hemisphere selects which half of the globe season words refer to.
type Hemisphere int

const (
	NorthernHemisphere Hemisphere = iota
	SouthernHemisphere
)

// String returns "North" or "South".
func (h Hemisphere) String() string {
	if h == SouthernHemisphere {
		return "South"
	}
	return "North"
}

// DomainError reports an ordinal that names a date outside the domain
// of its resolution, like week 5 of a month or a negative Before
// Present count.
type DomainError struct {
	Msg string
}

// Error implements the error interface.
func (e *DomainError) Error() string { return "calendar: " + e.Msg }

func domainErrf(format string, args ...any) error {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}
