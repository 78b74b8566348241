// Package datetime extracts dates, times, durations, and hemisphere
// mentions from natural-language utterances.
//
// Extraction operates on the rewritten token streams produced by the
// numbers package: spoken numbers are first collapsed into digit tokens,
// then date and time vocabulary is matched around them. The English and
// German taggers both cover the full surface: durations, times, dates,
// datetimes, named dates and eras, and hemisphere markers.
//
// Relative expressions resolve against an anchor time. A match is a
// Replaceable* value carrying both the resolved value and the covering
// tokens, so callers can locate and strip the matched words from the
// utterance. No match is a nil result, not an error; errors report
// domain violations such as "the 5th week of a month" or an ambiguous
// duration unit under strict resolution.
//
// All taggers are safe for concurrent use by multiple goroutines.
package datetime

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/emphasize/ovos-classifiers/tokens"
)

// Average month and year lengths used when a calendar-relative duration
// has to be flattened into absolute time.
const (
	daysInMonth = 30
	daysInYear  = 365
)

// ErrAmbiguousUnit is returned when a fractional month or year duration
// is requested under RelativedeltaStrict: "2.5 months" has no exact
// calendar meaning.
var ErrAmbiguousUnit = errors.New("datetime: fractional month or year duration is ambiguous")

// DurationResolution selects how duration units are normalized during
// extraction.
type DurationResolution int

const (
	// Timedelta flattens every unit into absolute time; months count
	// 30 days and years 365 days.
	Timedelta DurationResolution = iota
	// RelativedeltaStrict keeps months and years calendar-aware and
	// rejects fractional values of either with ErrAmbiguousUnit.
	RelativedeltaStrict
	// RelativedeltaFallback keeps months and years calendar-aware but
	// reruns the whole extraction as Timedelta when a fractional month
	// or year appears.
	RelativedeltaFallback
	// RelativedeltaApproximate keeps months and years calendar-aware
	// and folds fractions into the next smaller unit (0.5 years is
	// 6 months, 0.5 months is 15 days).
	RelativedeltaApproximate
	TotalMicroseconds
	TotalMilliseconds
	TotalSeconds
	TotalMinutes
	TotalHours
	TotalDays
	TotalWeeks
	TotalMonths
	TotalYears
	TotalDecades
	TotalCenturies
	TotalMillenniums
)

var durationResolutionNames = [...]string{
	Timedelta:                "Timedelta",
	RelativedeltaStrict:      "RelativedeltaStrict",
	RelativedeltaFallback:    "RelativedeltaFallback",
	RelativedeltaApproximate: "RelativedeltaApproximate",
	TotalMicroseconds:        "TotalMicroseconds",
	TotalMilliseconds:        "TotalMilliseconds",
	TotalSeconds:             "TotalSeconds",
	TotalMinutes:             "TotalMinutes",
	TotalHours:               "TotalHours",
	TotalDays:                "TotalDays",
	TotalWeeks:               "TotalWeeks",
	TotalMonths:              "TotalMonths",
	TotalYears:               "TotalYears",
	TotalDecades:             "TotalDecades",
	TotalCenturies:           "TotalCenturies",
	TotalMillenniums:         "TotalMillenniums",
}

// String returns the name of the resolution.
func (r DurationResolution) String() string {
	if int(r) >= 0 && int(r) < len(durationResolutionNames) {
		return durationResolutionNames[r]
	}
	return fmt.Sprintf("DurationResolution(%d)", int(r))
}

// isTotal reports whether the resolution asks for a single scalar total.
func (r DurationResolution) isTotal() bool { return r >= TotalMicroseconds }

// isRelative reports whether months and years stay calendar-aware.
func (r DurationResolution) isRelative() bool {
	return r == RelativedeltaStrict || r == RelativedeltaFallback || r == RelativedeltaApproximate
}

// Duration is a span of time with the calendar-aware part kept separate
// from the absolute part. Days may be fractional; under a relativedelta
// resolution Months and Years are whole numbers, under Timedelta both
// are zero and their value has been folded into Days.
type Duration struct {
	Time   time.Duration
	Days   float64
	Months float64
	Years  float64
}

// IsZero reports whether the duration has no components.
func (d Duration) IsZero() bool {
	return d.Time == 0 && d.Days == 0 && d.Months == 0 && d.Years == 0
}

// Add returns the component-wise sum of d and other.
func (d Duration) Add(other Duration) Duration {
	return Duration{
		Time:   d.Time + other.Time,
		Days:   d.Days + other.Days,
		Months: d.Months + other.Months,
		Years:  d.Years + other.Years,
	}
}

// Negated returns the duration with every component negated.
func (d Duration) Negated() Duration {
	return Duration{Time: -d.Time, Days: -d.Days, Months: -d.Months, Years: -d.Years}
}

// microseconds flattens the duration into absolute microseconds.
func (d Duration) microseconds() float64 {
	us := float64(d.Time) / float64(time.Microsecond)
	us += d.Days * 24 * 3600 * 1e6
	us += d.Months * daysInMonth * 24 * 3600 * 1e6
	us += d.Years * daysInYear * 24 * 3600 * 1e6
	return us
}

// usPerUnit maps total resolutions to microseconds per unit.
var usPerUnit = map[DurationResolution]float64{
	TotalMicroseconds: 1,
	TotalMilliseconds: 1e3,
	TotalSeconds:      1e6,
	TotalMinutes:      60e6,
	TotalHours:        3600e6,
	TotalDays:         24 * 3600e6,
	TotalWeeks:        7 * 24 * 3600e6,
	TotalMonths:       daysInMonth * 24 * 3600e6,
	TotalYears:        daysInYear * 24 * 3600e6,
	TotalDecades:      10 * daysInYear * 24 * 3600e6,
	TotalCenturies:    100 * daysInYear * 24 * 3600e6,
	TotalMillenniums:  1000 * daysInYear * 24 * 3600e6,
}

// Total expresses the whole duration in the unit of the given total
// resolution. Non-total resolutions report total seconds.
func (d Duration) Total(res DurationResolution) float64 {
	per, ok := usPerUnit[res]
	if !ok {
		per = usPerUnit[TotalSeconds]
	}
	return d.microseconds() / per
}

// AddTo applies the duration to t. Whole years, months, and days move on
// the calendar; fractional remainders and the sub-day part shift by
// absolute time.
func (d Duration) AddTo(t time.Time) time.Time {
	years := math.Trunc(d.Years)
	months := math.Trunc(d.Months)
	days := math.Trunc(d.Days)
	frac := (d.Years-years)*daysInYear + (d.Months-months)*daysInMonth + d.Days - days
	t = t.AddDate(int(years), int(months), int(days))
	return t.Add(d.Time + time.Duration(frac*24*float64(time.Hour)))
}

// SubFrom applies the negated duration to t.
func (d Duration) SubFrom(t time.Time) time.Time { return d.Negated().AddTo(t) }

// ReplaceableDuration is an extracted duration together with the tokens
// that produced it.
type ReplaceableDuration struct {
	Value  Duration
	Tokens []tokens.Token
}

// ReplaceableTime is an extracted clock time placed on the anchor date.
type ReplaceableTime struct {
	Value  time.Time
	Tokens []tokens.Token
}

// ReplaceableDate is an extracted calendar date.
type ReplaceableDate struct {
	Value  time.Time
	Tokens []tokens.Token
}

// ReplaceableDatetime is an extracted date and time.
type ReplaceableDatetime struct {
	Value  time.Time
	Tokens []tokens.Token
}

func spanStart(toks []tokens.Token) int {
	if len(toks) == 0 {
		return -1
	}
	return toks[0].Index
}

func spanEnd(toks []tokens.Token) int {
	if len(toks) == 0 {
		return -1
	}
	return toks[len(toks)-1].Index
}

func spanText(toks []tokens.Token) string {
	words := make([]string, len(toks))
	for i, t := range toks {
		words[i] = t.Word
	}
	return strings.Join(words, " ")
}

// StartIndex returns the stream index of the first covering token.
func (r ReplaceableDuration) StartIndex() int { return spanStart(r.Tokens) }

// EndIndex returns the stream index of the last covering token.
func (r ReplaceableDuration) EndIndex() int { return spanEnd(r.Tokens) }

// Text returns the covering tokens joined by spaces.
func (r ReplaceableDuration) Text() string { return spanText(r.Tokens) }

func (r ReplaceableTime) StartIndex() int { return spanStart(r.Tokens) }
func (r ReplaceableTime) EndIndex() int   { return spanEnd(r.Tokens) }
func (r ReplaceableTime) Text() string    { return spanText(r.Tokens) }

func (r ReplaceableDate) StartIndex() int { return spanStart(r.Tokens) }
func (r ReplaceableDate) EndIndex() int   { return spanEnd(r.Tokens) }
func (r ReplaceableDate) Text() string    { return spanText(r.Tokens) }

func (r ReplaceableDatetime) StartIndex() int { return spanStart(r.Tokens) }
func (r ReplaceableDatetime) EndIndex() int   { return spanEnd(r.Tokens) }
func (r ReplaceableDatetime) Text() string    { return spanText(r.Tokens) }
