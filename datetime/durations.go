package datetime

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/emphasize/ovos-classifiers/numbers"
	"github.com/emphasize/ovos-classifiers/tokens"
)

// singular English duration units, used for the "a day" = "1 day" rewrite.
var enDurationUnits = map[string]bool{
	"microsecond": true, "millisecond": true, "second": true,
	"minute": true, "hour": true, "day": true, "week": true,
	"month": true, "year": true, "decade": true, "century": true,
	"millennium": true,
}

// sub-day unit sizes.
var subDayUnits = map[string]time.Duration{
	"microsecond": time.Microsecond,
	"millisecond": time.Millisecond,
	"second":      time.Second,
	"minute":      time.Minute,
	"hour":        time.Hour,
}

// unitDuration maps a singular unit name and value onto a Duration under
// the given resolution. ok is false for words that are not duration units.
func unitDuration(unit string, v float64, res DurationResolution) (d Duration, ok bool) {
	if res.isRelative() {
		if unit == "millisecond" {
			return d, false
		}
		switch unit {
		case "microsecond", "second", "minute", "hour":
			d.Time = time.Duration(v * float64(subDayUnits[unit]))
		case "day":
			d.Days = v
		case "week":
			d.Days = 7 * v
		case "month":
			d.Months = v
		case "year":
			d.Years = v
		case "decade":
			d.Years = 10 * v
		case "century", "centurie":
			d.Years = 100 * v
		case "millennium", "millennia":
			d.Years = 1000 * v
		default:
			return d, false
		}
		return d, true
	}

	// Timedelta and the totals flatten months and years.
	if size, found := subDayUnits[unit]; found {
		d.Time = time.Duration(v * float64(size))
		return d, true
	}
	switch unit {
	case "day":
		d.Days = v
	case "week":
		d.Days = 7 * v
	case "month":
		d.Days = daysInMonth * v
	case "year":
		d.Days = daysInYear * v
	case "decade":
		d.Days = 10 * daysInYear * v
	case "century", "centurie":
		d.Days = 100 * daysInYear * v
	case "millennium", "millennia":
		d.Days = 1000 * daysInYear * v
	default:
		return d, false
	}
	return d, true
}

// ExtractDurations returns every duration in the utterance, in order of
// appearance. Adjacent durations merge when their tokens touch or are
// joined by "and" or a comma.
func (tg *EnglishTagger) ExtractDurations(text string, res DurationResolution) ([]ReplaceableDuration, error) {
	return tg.extractDurationsTokens(tokens.New(text), res)
}

// ExtractDuration returns the first duration in the utterance, or nil.
func (tg *EnglishTagger) ExtractDuration(text string, res DurationResolution) (*ReplaceableDuration, error) {
	durations, err := tg.ExtractDurations(text, res)
	if err != nil || len(durations) == 0 {
		return nil, err
	}
	return &durations[0], nil
}

// tagDurations marks every duration token in the stream.
func (tg *EnglishTagger) tagDurations(ts *tokens.Tokens) {
	tg.extractDurationsTokens(ts, Timedelta)
}

func (tg *EnglishTagger) extractDurationsTokens(ts *tokens.Tokens, res DurationResolution) ([]ReplaceableDuration, error) {
	// "a day" reads as "1 day".
	for i := 0; i < ts.Len()-1; i++ {
		if ts.At(i).Lower() == "a" && enDurationUnits[ts.At(i+1).Lower()] {
			ts.Replace("1", i, i)
		}
	}

	nums := tg.num.ExtractNumbersTokens(ts, numbers.Options{
		Ordinals: numbers.OrdinalsOn, Fractions: true, ShortScale: true,
	})

	var durations []ReplaceableDuration
	for _, number := range nums {
		if number.EndIndex() == ts.Len()-1 {
			break
		}
		unitIdx := number.EndIndex() + 1
		unit := strings.TrimRight(ts.At(unitIdx).Lower(), "s")

		delta, ok := unitDuration(unit, number.Value, res)
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

		for i := number.StartIndex(); i <= unitIdx; i++ {
			ts.Tok(i).IsDuration = true
		}

		// Merge with the previous duration when nothing but "and" or a
		// comma separates them.
		merged := false
		if len(durations) > 0 {
			prev := &durations[len(durations)-1]
			gapTok := ts.At(number.StartIndex() - 1)
			touching := prev.EndIndex() == number.StartIndex()-1
			joined := prev.EndIndex() == number.StartIndex()-2 &&
				(gapTok.Lower() == "and" || gapTok.IsComma)
			if touching || joined {
				prev.Value = prev.Value.Add(delta)
				prev.Tokens = ts.Slice(prev.StartIndex(), unitIdx+1)
				merged = true
			}
		}
		if !merged {
			durations = append(durations, ReplaceableDuration{
				Value:  delta,
				Tokens: ts.Slice(number.StartIndex(), unitIdx+1),
			})
		}
	}

	sort.Slice(durations, func(i, j int) bool {
		return durations[i].StartIndex() < durations[j].StartIndex()
	})
	return durations, nil
}

// tagDurationsView marks every duration token inside the window.
func (tg *EnglishTagger) tagDurationsView(v view) {
	tg.extractDurationsView(v, Timedelta)
}

// extractDurationsView extracts durations from the window without
// disturbing consumption marks on the shared stream. Number scanning
// runs on a copy; the duration tags and the returned spans refer back
// to the parent stream.
func (tg *EnglishTagger) extractDurationsView(v view, res DurationResolution) ([]ReplaceableDuration, error) {
	if v.empty() {
		return nil, nil
	}
	sub := tokens.FromSlice(v.ts.Slice(v.lo, v.hi))
	durations, err := tg.extractDurationsTokens(sub, res)
	if err != nil {
		return nil, err
	}
	out := make([]ReplaceableDuration, 0, len(durations))
	for _, d := range durations {
		lo := v.lo + d.StartIndex()
		hi := v.lo + d.EndIndex() + 1
		for i := lo; i < hi; i++ {
			v.ts.Tok(i).IsDuration = true
		}
		out = append(out, ReplaceableDuration{Value: d.Value, Tokens: v.ts.Slice(lo, hi)})
	}
	return out, nil
}
