package datetime

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/emphasize/ovos-classifiers/calendar"
	"github.com/emphasize/ovos-classifiers/numbers"
	"github.com/emphasize/ovos-classifiers/tokens"
)

// GermanTagger extracts dates, times, durations, and hemisphere
// mentions from German utterances.
type GermanTagger struct {
	num *numbers.German
}

// NewGermanTagger returns a tagger backed by the German number parser.
func NewGermanTagger() *GermanTagger {
	return &GermanTagger{num: numbers.NewGerman()}
}

// deDurationUnit matches one German duration unit including its
// inflections (Tag, Tage, Tages, Tagen). The value feeds unitDuration
// under the canonical English unit name.
type deDurationUnit struct {
	re     *regexp.Regexp
	unit   string
	factor float64
}

var deDurationUnits = []deDurationUnit{
	{regexp.MustCompile(`^[Mm]ikrosekunde[nes]?[sn]?\b`), "microsecond", 1},
	{regexp.MustCompile(`^[Mm]illisekunde[nes]?[sn]?\b`), "millisecond", 1},
	{regexp.MustCompile(`^[Ss]ekunde[nes]?[sn]?\b`), "second", 1},
	{regexp.MustCompile(`^[Mm]inute[nes]?[sn]?\b`), "minute", 1},
	{regexp.MustCompile(`^[Ss]tunde[nes]?[sn]?\b`), "hour", 1},
	{regexp.MustCompile(`^[Tt]ag[nes]?[sn]?\b`), "day", 1},
	{regexp.MustCompile(`^[Ww]oche[nes]?[sn]?\b`), "week", 1},
	{regexp.MustCompile(`^[Mm]onat[nes]?[sn]?\b`), "month", 1},
	{regexp.MustCompile(`^[Jj]ahr[nes]?[sn]?\b`), "year", 1},
	{regexp.MustCompile(`^[Dd]ekade[nes]?[sn]?\b`), "year", 10},
	{regexp.MustCompile(`^[Jj]ahrzehnt[nes]?[sn]?\b`), "year", 10},
	{regexp.MustCompile(`^[Jj]ahrhundert[nes]?[sn]?\b`), "year", 100},
	{regexp.MustCompile(`^[Jj]ahrtausend[nes]?[sn]?\b`), "year", 1000},
}

// deUnitDuration resolves a German unit word against the inflection
// table.
func deUnitDuration(word string, v float64, res DurationResolution) (Duration, bool) {
	for _, u := range deDurationUnits {
		if !u.re.MatchString(word) {
			continue
		}
		value := v * u.factor
		if u.unit == "millisecond" && res.isRelative() {
			return unitDuration("microsecond", value*1000, res)
		}
		return unitDuration(u.unit, value, res)
	}
	return Duration{}, false
}

// ExtractDurations returns every duration in the utterance, in order of
// appearance. Adjacent durations merge when joined by "und" or a comma.
func (tg *GermanTagger) ExtractDurations(text string, res DurationResolution) ([]ReplaceableDuration, error) {
	return tg.extractDurationsTokens(tokens.New(text), res)
}

// ExtractDuration returns the first duration in the utterance, or nil.
func (tg *GermanTagger) ExtractDuration(text string, res DurationResolution) (*ReplaceableDuration, error) {
	durations, err := tg.ExtractDurations(text, res)
	if err != nil || len(durations) == 0 {
		return nil, err
	}
	return &durations[0], nil
}

func (tg *GermanTagger) extractDurationsTokens(ts *tokens.Tokens, res DurationResolution) ([]ReplaceableDuration, error) {
	nums := tg.num.ExtractNumbersTokens(ts, numbers.Options{Fractions: true})

	var durations []ReplaceableDuration
	for _, number := range nums {
		// German numbers are compound words, so the unit follows the
		// first token of the match.
		unitIdx := number.StartIndex() + 1
		if unitIdx >= ts.Len() {
			break
		}

		delta, ok := deUnitDuration(ts.At(unitIdx).Word, number.Value, res)
		if !ok || delta.IsZero() {
			continue
		}

		if res == RelativedeltaStrict || res == RelativedeltaFallback {
			if delta.Months != math.Trunc(delta.Months) || delta.Years != math.Trunc(delta.Years) {
				if res == RelativedeltaFallback {
					return tg.extractDurationsTokens(ts, Timedelta)
				}
				return nil, ErrAmbiguousUnit
			}
		} else if res == RelativedeltaApproximate {
			years := math.Trunc(delta.Years)
			delta.Months += 12 * (delta.Years - years)
			delta.Years = years
			months := math.Trunc(delta.Months)
			delta.Days += daysInMonth * (delta.Months - months)
			delta.Months = months
		}

		for i := number.StartIndex(); i <= number.EndIndex()+1 && i < ts.Len(); i++ {
			ts.Tok(i).IsDuration = true
		}

		merged := false
		if len(durations) > 0 {
			prev := &durations[len(durations)-1]
			gapTok := ts.At(number.StartIndex() - 1)
			touching := prev.EndIndex() == number.StartIndex()-1
			joined := prev.EndIndex() == number.StartIndex()-2 &&
				(gapTok.Lower() == "und" || gapTok.IsComma)
			if touching || joined {
				prev.Value = prev.Value.Add(delta)
				prev.Tokens = ts.Slice(prev.StartIndex(), number.EndIndex()+3)
				merged = true
			}
		}
		if !merged {
			durations = append(durations, ReplaceableDuration{
				Value:  delta,
				Tokens: ts.Slice(number.StartIndex(), number.EndIndex()+2),
			})
		}
	}

	sort.Slice(durations, func(i, j int) bool {
		return durations[i].StartIndex() < durations[j].StartIndex()
	})
	return durations, nil
}

var (
	deClockMarkers = wordSet("uhr", "am", "pm", "a.m", "p.m")
	dePMMarkers    = wordSet("nachmittag", "nachmittags", "abend", "abends",
		"nacht", "nachts", "pm", "p.m")
	deDaytimeNight = wordSet("nacht", "nachts")
	deTimeMarkers  = wordSet("um")
	deDaytimes     = map[string][2]int{
		"früh":          {3, 0},
		"morgen":        {6, 0},
		"morgens":       {6, 0},
		"vormittag":     {9, 0},
		"vormittags":    {9, 0},
		"mittag":        {12, 0},
		"mittags":       {12, 0},
		"nachmittag":    {15, 0},
		"nachmittags":   {15, 0},
		"abend":         {18, 0},
		"abends":        {18, 0},
		"nacht":         {21, 0},
		"nachts":        {21, 0},
		"mitternacht":   {0, 0},
		"mitternachts":  {0, 0},
	}
	deHemisphereMarkers = wordSet("in", "auf", "am")
	deNorthPhrases      = []string{"nordhalbkugel", "nördliche halbkugel", "nördlichen halbkugel",
		"nördliche hemisphäre", "nördlichen hemisphäre"}
	deSouthPhrases = []string{"südhalbkugel", "südliche halbkugel", "südlichen halbkugel",
		"südliche hemisphäre", "südlichen hemisphäre"}
)

// ExtractTime extracts the spoken time of day, placed on the date the
// utterance names (or the anchor when it names none). It understands
// 24-hour clock forms, "viertel vor/nach" phrases, "{HH} Uhr {MM}" and
// the vague daytimes (morgens, mittags, abends). A nil result means no
// time was spoken.
func (tg *GermanTagger) ExtractTime(text string, anchor time.Time) (*ReplaceableTime, error) {
	dt, err := tg.ExtractDatetime(text, anchor, Options{})
	if dt == nil || err != nil {
		return nil, err
	}
	var span []tokens.Token
	for _, t := range dt.Tokens {
		if t.IsTime {
			span = append(span, t)
		}
	}
	if len(span) == 0 {
		return nil, nil
	}
	return &ReplaceableTime{Value: dt.Value, Tokens: span}, nil
}

// scanTimeView walks the window for clock tokens, consuming and
// tagging what it recognizes.
func (tg *GermanTagger) scanTimeView(v view) (timeFound bool, hourVal, minVal int) {
	isPM := false
	pmNight := false
	for i := v.lo; i < v.hi; i++ {
		if dePMMarkers[v.at(i).Lower()] {
			isPM = true
			if deDaytimeNight[v.at(i).Lower()] {
				pmNight = true
			}
		}
	}

	ambiguous := true

	for i := v.lo; i < v.hi; i++ {
		token := v.at(i)
		if token.Consumed || token.IsSymbolic {
			continue
		}
		prevPrev := v.at(i - 2)
		prev := v.at(i - 1)
		next := v.at(i + 1)
		nextNext := v.at(i + 2)

		var consumed []int
		hour, minute := -1, -1

		switch {
		case strings.Contains(token.Word, ":") ||
			(strings.Contains(token.Word, ".") && token.IsNumeric && deClockMarkers[next.Lower()]):
			for _, sep := range []string{":", "."} {
				parts := strings.Split(token.Word, sep)
				if len(parts) != 2 || !allDigitWords(parts) {
					continue
				}
				h := atoi(parts[0])
				mstr := parts[1]
				for len(mstr) < 2 {
					mstr += "0"
				}
				m := atoi(mstr)
				if h < 25 && m < 60 {
					hour, minute = h, m
					consumed = append(consumed, i)
					ambiguous = false
				}
			}
		case token.IsNumeric && numericValue(token) <= 30 &&
			(next.Lower() == "vor" || next.Lower() == "nach") &&
			nextNext.IsDigit && tokInt(nextNext) <= 12:
			// "viertel vor 12", "10 nach 12"
			n := numericValue(token)
			minutes := int(n)
			if n < 1 {
				minutes = int(n * 60)
			}
			if next.Lower() == "vor" {
				hour = tokInt(nextNext) - 1
				minute = 60 - minutes
			} else {
				hour = tokInt(nextNext)
				minute = minutes
			}
			consumed = append(consumed, i, i+1, i+2)
			ambiguous = false
		case deClockMarkers[token.Lower()]:
			if ambiguous {
				if prevPrev.IsDigit && tokInt(prevPrev) < 25 && prev.IsDigit && tokInt(prev) < 60 {
					hour, minute = tokInt(prevPrev), tokInt(prev)
					consumed = append(consumed, i-2, i-1, i)
					ambiguous = false
				} else if prev.IsDigit && tokInt(prev) < 25 {
					hour = tokInt(prev)
					consumed = append(consumed, i-1, i)
					if next.IsDigit && tokInt(next) < 60 {
						minute = tokInt(next)
						consumed = append(consumed, i+1)
					}
					ambiguous = false
				}
			} else {
				consumed = append(consumed, i)
			}
		case token.IsDigit && tokInt(token) < 24 && deTimeMarkers[prev.Lower()] &&
			!deClockMarkers[next.Lower()]:
			hour = tokInt(token)
			consumed = append(consumed, i)
			if next.IsDigit && tokInt(next) < 60 {
				minute = tokInt(next)
				consumed = append(consumed, i+1)
			}
		default:
			if hm, ok := deDaytimes[token.Lower()]; ok {
				// "morgen" is tomorrow unless preceded by "am"
				if token.Lower() == "morgen" && prev.Lower() != "am" {
					continue
				}
				if !timeFound {
					hour, minute = hm[0], hm[1]
				}
				consumed = append(consumed, i)
			}
		}

		if hour >= 0 {
			if isPM && hour < 12 && !(pmNight && hour < 6) {
				hour += 12
			}
			if minute < 0 {
				minute = 0
			}
			hourVal, minVal = hour, minute
			timeFound = true
		}
		for _, ci := range consumed {
			if ci < v.lo || ci >= v.hi {
				continue
			}
			t := v.tok(ci)
			t.IsTime = true
			t.Consumed = true
		}
	}

	return timeFound, hourVal, minVal
}

// ExtractHemisphere returns the hemisphere named in the utterance, as
// in "auf der südhalbkugel". ok is false when none is named.
func (tg *GermanTagger) ExtractHemisphere(text string) (calendar.Hemisphere, bool) {
	return deHemisphereView(newView(tokens.New(text)))
}

// numericValue reads a token that may hold a fraction like "0.25".
func numericValue(t tokens.Token) float64 {
	v, _ := t.Number()
	return v
}
