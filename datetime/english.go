package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/emphasize/ovos-classifiers/calendar"
	"github.com/emphasize/ovos-classifiers/numbers"
	"github.com/emphasize/ovos-classifiers/tokens"
)

// EnglishTagger extracts dates, times, durations, named dates, and
// hemisphere mentions from English utterances.
type EnglishTagger struct {
	num *numbers.English
}

// NewEnglishTagger returns a tagger backed by the English number parser.
func NewEnglishTagger() *EnglishTagger {
	return &EnglishTagger{num: numbers.NewEnglish()}
}

// Options configure date and datetime extraction.
type Options struct {
	// Resolution snaps the result to the start of the named period and
	// selects era interpretation of bare numbers. The zero value means
	// second precision for datetimes and day precision for dates.
	Resolution calendar.Resolution
	// Hemisphere applies when the utterance names none.
	Hemisphere calendar.Hemisphere
	// Greedy also accepts a bare number as a year.
	Greedy bool
}

var (
	enWeekdays = map[string]int{
		"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
		"friday": 4, "saturday": 5, "sunday": 6,
	}
	enMonths = map[string]int{
		"jan": 1, "january": 1, "feb": 2, "february": 2, "mar": 3,
		"march": 3, "apr": 4, "april": 4, "may": 5, "jun": 6, "june": 6,
		"jul": 7, "july": 7, "aug": 8, "august": 8, "sep": 9,
		"september": 9, "oct": 10, "october": 10, "nov": 11,
		"november": 11, "dec": 12, "december": 12,
	}
	enSeasons = map[string]calendar.Season{
		"spring": calendar.Spring,
		"summer": calendar.Summer,
		"fall":   calendar.Fall,
		"autumn": calendar.Fall,
		"winter": calendar.Winter,
	}
	enNorthWords = []string{"north", "northern"}
	enSouthWords = []string{"south", "southern"}
)

// wordSet builds a membership set from lowercase words.
func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var (
	enPastQualifiers   = wordSet("ago")
	enRelQualifiers    = wordSet("from", "after", "since", "before")
	enRelPast          = wordSet("before")
	enOfQualifiers     = []string{"of"}
	enSetQualifiers    = wordSet("is", "was")
	enMoreMarkers      = wordSet("plus", "add", "+")
	enLessMarkers      = wordSet("minus", "subtract", "-")
	enPastMarkers      = wordSet("past", "last")
	enFutureMarkers    = wordSet("next", "upcoming")
	enMostRecent       = []string{"last"}
	enThis             = wordSet("this", "current", "present", "the")
	enMid              = wordSet("mid", "middle")
	enSameDayMarkers   = []string{"today", "tonight"}
	enPMMarkers        = wordSet("pm", "p.m", "afternoon", "evening", "night", "tonight")
	enDaytimeNight     = wordSet("night", "midnight", "tonight")
	enClockMarkers     = wordSet("o'clock", "oclock", "am", "pm", "a.m", "p.m")
	enTimeMarkers      = wordSet("at", "by", "around")
	enNow              = wordSet("now")
	enDayLiteral       = wordSet("day", "days")
	enWeekLiteral      = wordSet("week", "weeks")
	enWeekendLiteral   = wordSet("weekend", "weekends")
	enMonthLiteral     = wordSet("month", "months")
	enYearLiteral      = wordSet("year", "years")
	enDecadeLiteral    = wordSet("decade", "decades")
	enCenturyLiteral   = wordSet("century", "centuries")
	enMillenniumLit    = wordSet("millennium", "millenia", "millenniums")
	enSeasonLiteral    = wordSet("season")
	enLocationMarkers  = wordSet("in", "on", "at", "for")
	enHemisphereNouns  = wordSet("hemisphere", "hemispheres")
	enDaytimes         = map[string][2]int{
		"morning":   {8, 0},
		"noon":      {12, 0},
		"afternoon": {15, 0},
		"evening":   {19, 0},
		"night":     {22, 0},
		"tonight":   {22, 0},
		"midnight":  {0, 0},
	}
	enNearDates = map[string]int{
		"today":     0,
		"tonight":   0,
		"present":   0,
		"tomorrow":  1,
		"yesterday": -1,
	}
)

// enDateUnit reports whether the lowercase word names a date unit.
func enDateUnit(w string) bool {
	return enDayLiteral[w] || enWeekLiteral[w] || enWeekendLiteral[w] ||
		enMonthLiteral[w] || enYearLiteral[w] || enDecadeLiteral[w] ||
		enCenturyLiteral[w] || enMillenniumLit[w]
}

// tokNumber reads the numeric value of a token, including ordinals.
func tokNumber(t tokens.Token) (float64, bool) {
	if t.IsOrdinal {
		return t.Ordinal, true
	}
	return t.Number()
}

func tokInt(t tokens.Token) int {
	v, _ := tokNumber(t)
	return int(v)
}

// view is a half-open window [lo, hi) over a shared token stream.
// Recursive extraction sees only its window; neighbour lookups outside
// it come back as the zero token. Indexes stay absolute throughout.
type view struct {
	ts     *tokens.Tokens
	lo, hi int
}

func newView(ts *tokens.Tokens) view { return view{ts: ts, lo: 0, hi: ts.Len()} }

func (v view) empty() bool { return v.lo >= v.hi }

func (v view) at(i int) tokens.Token {
	if i < v.lo || i >= v.hi {
		return tokens.Token{Index: -1}
	}
	return v.ts.At(i)
}

func (v view) tok(i int) *tokens.Token {
	if i < v.lo || i >= v.hi {
		scratch := tokens.Token{Index: -1}
		return &scratch
	}
	return v.ts.Tok(i)
}

// sub returns the window [lo, hi) clamped to v.
func (v view) sub(lo, hi int) view {
	if lo < v.lo {
		lo = v.lo
	}
	if hi > v.hi {
		hi = v.hi
	}
	if lo > hi {
		lo = hi
	}
	return view{ts: v.ts, lo: lo, hi: hi}
}

// find returns the absolute index of the first unconsumed token whose
// lowercase word is in words, or -1.
func (v view) find(words ...string) int {
	for i := v.lo; i < v.hi; i++ {
		t := v.ts.At(i)
		if t.Consumed {
			continue
		}
		w := t.Lower()
		for _, cand := range words {
			if w == cand {
				return i
			}
		}
	}
	return -1
}

// findSet is find over a word set.
func (v view) findSet(set map[string]bool) int {
	for i := v.lo; i < v.hi; i++ {
		t := v.ts.At(i)
		if !t.Consumed && set[t.Lower()] {
			return i
		}
	}
	return -1
}

// findAny matches consumed tokens too.
func (v view) findAny(words ...string) int {
	for i := v.lo; i < v.hi; i++ {
		w := v.ts.At(i).Lower()
		for _, cand := range words {
			if w == cand {
				return i
			}
		}
	}
	return -1
}

// findOrdinal returns the first unconsumed ordinal token index, or -1.
func (v view) findOrdinal() int {
	for i := v.lo; i < v.hi; i++ {
		t := v.ts.At(i)
		if !t.Consumed && t.IsOrdinal {
			return i
		}
	}
	return -1
}

func (v view) hasDuration() bool {
	for i := v.lo; i < v.hi; i++ {
		if v.ts.At(i).IsDuration {
			return true
		}
	}
	return false
}

func (v view) consume(idx ...int) {
	for _, i := range idx {
		if i >= v.lo && i < v.hi {
			v.ts.Tok(i).Consumed = true
		}
	}
}

func (v view) consumeAll() {
	for i := v.lo; i < v.hi; i++ {
		v.ts.Tok(i).Consumed = true
	}
}

func (v view) text() string {
	words := make([]string, 0, v.hi-v.lo)
	for i := v.lo; i < v.hi; i++ {
		words = append(words, v.ts.At(i).Word)
	}
	return strings.Join(words, " ")
}

func (v view) tokens() []tokens.Token { return v.ts.Slice(v.lo, v.hi) }

// resolveAnchor substitutes the wall clock for an unset anchor.
func resolveAnchor(anchor time.Time) time.Time {
	if anchor.IsZero() {
		return time.Now().UTC()
	}
	return anchor
}

func orResolution(res, def calendar.Resolution) calendar.Resolution {
	if res == (calendar.Resolution{}) {
		return def
	}
	return res
}

// ExtractDatetime extracts the date and time spoken in the utterance,
// resolved against the anchor. A nil result means no date or time was
// found.
func (tg *EnglishTagger) ExtractDatetime(text string, anchor time.Time, opts Options) (*ReplaceableDatetime, error) {
	anchor = resolveAnchor(anchor)
	res := orResolution(opts.Resolution, calendar.Resolution{Unit: calendar.Second})
	ts := tg.num.ConvertWordsToNumbers(text, numbers.Options{
		Ordinals: numbers.OrdinalsOn, Fractions: true, ShortScale: true,
	})
	return tg.extractCore(newView(ts), anchor, res, opts.Hemisphere, false, opts.Greedy)
}

// ExtractDate extracts only the date part. The time of day in the
// utterance is tagged but left unconsumed.
func (tg *EnglishTagger) ExtractDate(text string, anchor time.Time, opts Options) (*ReplaceableDate, error) {
	anchor = resolveAnchor(anchor)
	res := orResolution(opts.Resolution, calendar.Resolution{Unit: calendar.Day})
	ts := tg.num.ConvertWordsToNumbers(text, numbers.Options{
		Ordinals: numbers.OrdinalsOn, Fractions: true, ShortScale: true,
	})
	dt, err := tg.extractCore(newView(ts), anchor, res, opts.Hemisphere, true, opts.Greedy)
	if dt == nil || err != nil {
		return nil, err
	}
	return &ReplaceableDate{Value: dt.Value, Tokens: dt.Tokens}, nil
}

// ExtractTime extracts the time of day from the utterance, placed on the
// anchor date. Only the tokens that spoke the time are returned.
func (tg *EnglishTagger) ExtractTime(text string, anchor time.Time) (*ReplaceableTime, error) {
	anchor = resolveAnchor(anchor)
	dt, err := tg.ExtractDatetime(text, anchor, Options{})
	if dt == nil || err != nil {
		return nil, err
	}
	var timeToks []tokens.Token
	for _, t := range dt.Tokens {
		if t.IsTime || t.IsDuration {
			timeToks = append(timeToks, t)
		}
	}
	return &ReplaceableTime{Value: dt.Value, Tokens: timeToks}, nil
}

// ExtractHemisphere returns the hemisphere named in the utterance, as in
// "in the southern hemisphere". ok is false when none is named.
func (tg *EnglishTagger) ExtractHemisphere(text string) (calendar.Hemisphere, bool) {
	return extractHemisphereView(newView(tokens.New(text)))
}

func extractHemisphereView(v view) (calendar.Hemisphere, bool) {
	for i := v.lo; i < v.hi; i++ {
		if !enLocationMarkers[v.at(i).Lower()] {
			continue
		}
		next := v.at(i + 1).Lower()
		if next == "the" {
			// "in the southern hemisphere"
			i++
			next = v.at(i + 1).Lower()
		}
		if !enHemisphereNouns[v.at(i+2).Lower()] {
			continue
		}
		for _, w := range enNorthWords {
			if next == w {
				return calendar.NorthernHemisphere, true
			}
		}
		for _, w := range enSouthWords {
			if next == w {
				return calendar.SouthernHemisphere, true
			}
		}
	}
	return calendar.NorthernHemisphere, false
}

// convertYearAbr expands a 2-digit year against the anchor decade:
// anchored in the 2000s, 69 reads as 1969 and 13 as 2013.
func convertYearAbr(year int, ref time.Time) int {
	refCentury := (ref.Year() / 100) * 100
	refDecade := ref.Year() % 100
	if refCentury == 2000 && year >= refDecade+20 {
		return refCentury - 100 + year
	}
	return refCentury + year
}

// pyWeekday is Monday=0 .. Sunday=6.
func pyWeekday(t time.Time) int { return (int(t.Weekday()) + 6) % 7 }

func goWeekday(py int) time.Weekday { return time.Weekday((py + 1) % 7) }

// zeroTime returns t with the clock cleared, keeping the location.
func zeroTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// withDate keeps the clock of t on a new calendar date.
func withDate(t time.Time, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// validDate reports whether the calendar date exists.
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// yearInRange guards against dates the calendar math cannot express.
func yearInRange(t time.Time) error {
	if t.Year() < 1 || t.Year() > 9999 {
		return &calendar.DomainError{Msg: fmt.Sprintf("year %d out of range", t.Year())}
	}
	return nil
}

// extractCore is the recursive heart of English date extraction. It
// works destructively on the [lo, hi) window of the shared stream:
// recognized tokens are consumed and tagged, and sub-expressions
// ("of" chains, relative anchors) recurse on narrower windows.
func (tg *EnglishTagger) extractCore(v view, refDate time.Time, res calendar.Resolution, hemi calendar.Hemisphere, dateOnly, greedy bool) (*ReplaceableDatetime, error) {
	currentDate := refDate

	tg.tagDurationsView(v)

	var (
		extracted time.Time
		haveDate  bool
		delta     Duration

		timeFound bool
		hourVal   int
		minVal    int
	)

	if h, ok := extractHemisphereView(v); ok {
		hemi = h
	}

	// Named dates ("easter", "christmas eve") and named eras resolve
	// before anything else; an era switches the resolution for bare
	// numbers that follow.
	var namedDate *ReplaceableDate
	if nds := tg.extractNamedDatesView(v, refDate); len(nds) > 0 {
		namedDate = &nds[0]
		for _, t := range namedDate.Tokens {
			v.consume(t.Index)
		}
	}

	namedEra, eraRes := matchNamedEra(v)
	if namedEra != nil && eraRes != (calendar.Resolution{}) {
		res = eraRes
	}

	pastIdx := v.findSet(enPastQualifiers)
	relIdx := v.findSet(enRelQualifiers)
	isRelativePast := relIdx >= 0 && enRelPast[v.at(relIdx).Lower()]
	mathIdx := -1
	for i := v.lo; i < v.hi; i++ {
		t := v.at(i)
		if !t.Consumed && (enMoreMarkers[t.Lower()] || enLessMarkers[t.Lower()]) {
			mathIdx = i
			break
		}
	}
	isSubtract := mathIdx >= 0 && enLessMarkers[v.at(mathIdx).Lower()]
	ofIdx := v.find(enOfQualifiers...)

	// Time parsing runs even for date-only requests so the tokens get
	// tagged; otherwise greedy year parsing would read "6 30 pm" as a
	// date.
	isPM := false
	var usedPMMarkers []string
	for i := v.lo; i < v.hi; i++ {
		if w := v.at(i).Lower(); enPMMarkers[w] {
			isPM = true
			usedPMMarkers = append(usedPMMarkers, w)
		}
	}
	pmNight := false
	for _, w := range usedPMMarkers {
		if enDaytimeNight[w] {
			pmNight = true
		}
	}

	for i := v.lo; i < v.hi; i++ {
		token := v.at(i)
		if token.Consumed || token.IsSymbolic {
			continue
		}
		var consumed []int
		var hour, minute = -1, -1

		prevPrev := v.at(i - 2)
		prev := v.at(i - 1)
		next := v.at(i + 1)
		nextNext := v.at(i + 2)
		word := token.Lower()

		switch {
		case strings.Contains(token.Word, ":") ||
			(strings.Contains(token.Word, ".") && token.IsNumeric && enClockMarkers[next.Lower()]):
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
				}
			}
		case enClockMarkers[word]:
			// {HH} o'clock and {HH} {MM} o'clock
			if !timeFound {
				if prevPrev.IsDigit && tokInt(prevPrev) < 25 && prev.IsDigit && tokInt(prev) < 60 {
					hour, minute = tokInt(prevPrev), tokInt(prev)
					consumed = append(consumed, i-2, i-1, i)
				} else if prev.IsDigit && tokInt(prev) < 25 {
					hour = tokInt(prev)
					consumed = append(consumed, i-1, i)
				}
			} else {
				consumed = append(consumed, i)
			}
		case enTimeMarkers[word] && next.IsDigit:
			// "at 9", "at 9 30"
			if tokInt(next) < 24 {
				hour, minute = tokInt(next), 0
				consumed = append(consumed, i+1)
				if nextNext.IsDigit && tokInt(nextNext) < 60 {
					minute = tokInt(nextNext)
					consumed = append(consumed, i+2)
				}
			}
		default:
			if hm, ok := enDaytimes[word]; ok {
				if !timeFound {
					hour, minute = hm[0], hm[1]
				}
				consumed = append(consumed, i)
			}
		}

		if hour >= 0 && !dateOnly {
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
			t := v.tok(ci)
			t.IsTime = true
			if !dateOnly {
				t.Consumed = true
			}
		}
	}

	// {Nth unit} of {reference}
	if ofIdx >= 0 && !haveDate {
		following := v.sub(ofIdx+1, v.hi)
		preceding := v.sub(ofIdx-4, ofIdx)

		unitRes := calendar.DayOfMonth
		unit := "day"
		var refDay = -1
		var anchorDate time.Time
		haveAnchor := false

		number := 0
		haveNumber := false
		if oi := preceding.findOrdinal(); oi >= 0 {
			number = int(preceding.at(oi).Ordinal)
			haveNumber = true
		}
		if !preceding.empty() {
			lastIdx := preceding.find(enMostRecent...)
			unitIdx := -1
			for j := preceding.lo; j < preceding.hi; j++ {
				t := preceding.at(j)
				w := t.Lower()
				if t.Consumed {
					continue
				}
				if enDateUnit(w) {
					unitIdx = j
					break
				}
				if _, ok := enWeekdays[strings.TrimSuffix(w, "s")]; ok {
					unitIdx = j
					break
				}
			}
			if lastIdx >= 0 {
				number = -1
				haveNumber = true
				v.consume(lastIdx)
			}
			if unitIdx >= 0 {
				unit = preceding.at(unitIdx).Lower()
				if wd, ok := enWeekdays[strings.TrimSuffix(unit, "s")]; ok {
					if !haveNumber {
						number = wd + 1
						haveNumber = true
						unit = "day"
					}
				}
				if haveNumber {
					v.consume(unitIdx)
				}
			}
		}

		sub, err := tg.extractCore(following, refDate, res, hemi, false, true)
		if err != nil {
			return nil, err
		}
		if sub != nil {
			following.consumeAll()
			anchorDate = sub.Value
			haveAnchor = true
		}

		if haveNumber {
			// The year of an "of" chain is normally not spoken; a bare
			// number right after "of" requests one.
			requestYear := false
			if !following.empty() && v.at(ofIdx+1).IsDigit {
				requestYear = true
				unitRes = calendar.DayOfYear
			}

			type resWords struct {
				res   calendar.Resolution
				words []string
			}
			var ladder []resWords
			monthWords := []string{"month", "months"}
			for name := range enMonths {
				monthWords = append(monthWords, name)
			}
			_, isWeekdayUnit := enWeekdays[strings.TrimSuffix(unit, "s")]
			switch {
			case enDayLiteral[unit] || isWeekdayUnit:
				if wd, ok := enWeekdays[strings.TrimSuffix(unit, "s")]; ok {
					refDay = wd
				}
				ladder = []resWords{
					{calendar.DayOfWeek, []string{"week", "weeks"}},
					{calendar.DayOfMonth, monthWords},
					{calendar.DayOfYear, []string{"year", "years"}},
					{calendar.Resolution{Unit: calendar.Day, Scope: calendar.OfDecade}, []string{"decade", "decades"}},
					{calendar.Resolution{Unit: calendar.Day, Scope: calendar.OfCentury}, []string{"century", "centuries"}},
					{calendar.Resolution{Unit: calendar.Day, Scope: calendar.OfMillennium}, []string{"millennium", "millenia", "millenniums"}},
				}
				if !requestYear {
					unitRes = calendar.DayOfMonth
				}
			case enWeekLiteral[unit]:
				ladder = []resWords{
					{calendar.WeekOfMonth, monthWords},
					{calendar.WeekOfYear, []string{"year", "years"}},
					{calendar.Resolution{Unit: calendar.Week, Scope: calendar.OfDecade}, []string{"decade", "decades"}},
					{calendar.Resolution{Unit: calendar.Week, Scope: calendar.OfCentury}, []string{"century", "centuries"}},
					{calendar.Resolution{Unit: calendar.Week, Scope: calendar.OfMillennium}, []string{"millennium", "millenia", "millenniums"}},
				}
				if requestYear {
					unitRes = calendar.WeekOfYear
				} else {
					unitRes = calendar.WeekOfMonth
				}
			case enWeekendLiteral[unit]:
				ladder = []resWords{
					{calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.OfMonth}, monthWords},
					{calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.OfYear}, []string{"year", "years"}},
				}
				if requestYear {
					unitRes = calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.OfYear}
				} else {
					unitRes = calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.OfMonth}
				}
			case enMonthLiteral[unit]:
				ladder = []resWords{
					{calendar.MonthOfYear, []string{"year", "years"}},
					{calendar.Resolution{Unit: calendar.Month, Scope: calendar.OfDecade}, []string{"decade", "decades"}},
					{calendar.Resolution{Unit: calendar.Month, Scope: calendar.OfCentury}, []string{"century", "centuries"}},
					{calendar.Resolution{Unit: calendar.Month, Scope: calendar.OfMillennium}, []string{"millennium", "millenia", "millenniums"}},
				}
				unitRes = calendar.MonthOfYear
			case enYearLiteral[unit]:
				ladder = []resWords{
					{calendar.YearOfDecade, []string{"decade", "decades"}},
					{calendar.YearOfCentury, []string{"century", "centuries"}},
					{calendar.YearOfMillennium, []string{"millennium", "millenia", "millenniums"}},
				}
				unitRes = calendar.AbsoluteYear
			case enDecadeLiteral[unit]:
				ladder = []resWords{
					{calendar.Resolution{Unit: calendar.Decade, Scope: calendar.OfCentury}, []string{"century", "centuries"}},
					{calendar.Resolution{Unit: calendar.Decade, Scope: calendar.OfMillennium}, []string{"millennium", "millenia", "millenniums"}},
				}
				unitRes = calendar.Resolution{Unit: calendar.Decade}
			case enCenturyLiteral[unit]:
				ladder = []resWords{
					{calendar.Resolution{Unit: calendar.Century, Scope: calendar.OfMillennium}, []string{"millennium", "millenia", "millenniums"}},
				}
				unitRes = calendar.Resolution{Unit: calendar.Century}
			case enMillenniumLit[unit]:
				unitRes = calendar.Resolution{Unit: calendar.Millennium}
			}
			// The reference window is already consumed by the
			// sub-extraction, so the scan must include consumed tokens.
			for _, rw := range ladder {
				if following.findAny(rw.words...) >= 0 {
					unitRes = rw.res
					break
				}
			}
		}

		if haveNumber && haveAnchor {
			var resolved time.Time
			var err error
			if refDay >= 0 && (unitRes.Scope == calendar.OfMonth ||
				unitRes.Scope == calendar.OfYear || unitRes.Scope == calendar.OfWeek) {
				resolved, err = calendar.ResolveNthWeekday(number, goWeekday(refDay), unitRes, anchorDate)
			} else {
				resolved, err = calendar.ResolveOrdinal(number, unitRes, anchorDate)
			}
			if err != nil {
				return nil, err
			}
			haveDate = true
			extracted = resolved
			v.consume(ofIdx)
		} else if haveAnchor {
			// {partial date} of {partial reference}: "summer of 1969"
			partial, err := tg.extractCore(preceding, anchorDate, res, hemi, false, false)
			if err != nil {
				return nil, err
			}
			if partial != nil {
				haveDate = true
				extracted = partial.Value
				v.consume(ofIdx)
				preceding.consumeAll()
			}
		}
	}

	// {duration} ago
	if pastIdx >= 0 && !haveDate {
		preceding := v.sub(v.lo, pastIdx)
		deltas, err := tg.extractDurationsView(preceding, RelativedeltaFallback)
		if err != nil {
			return nil, err
		}
		if len(deltas) == 0 {
			return nil, fmt.Errorf("datetime: no duration before %q", v.at(pastIdx).Word)
		}
		last := deltas[len(deltas)-1]
		v.consume(pastIdx)
		for _, t := range last.Tokens {
			v.consume(t.Index)
		}
		delta = last.Value
	}

	// {duration} after/from/since/before {reference}
	if relIdx >= 0 && !haveDate {
		preceding := v.sub(v.lo, relIdx)
		following := v.sub(relIdx+1, v.hi)

		var anchorDate time.Time
		haveAnchor := false
		var relRes calendar.Resolution
		haveRes := false
		var offset Duration

		if preceding.hasDuration() {
			deltas, err := tg.extractDurationsView(preceding, RelativedeltaFallback)
			if err != nil {
				return nil, err
			}
			if len(deltas) > 0 {
				last := deltas[len(deltas)-1]
				v.consume(relIdx)
				for _, t := range last.Tokens {
					v.consume(t.Index)
				}
				offset = last.Value
				if isRelativePast {
					offset = offset.Negated()
				}
			}
		}

		if following.hasDuration() {
			deltas, err := tg.extractDurationsView(following, RelativedeltaFallback)
			if err != nil {
				return nil, err
			}
			if len(deltas) > 0 {
				haveDate = true
				extracted = refDate
				offset = deltas[0].Value
				for _, t := range deltas[0].Tokens {
					v.consume(t.Index)
				}
			}
		} else {
			sub, err := tg.extractCore(following, refDate, calendar.Resolution{Unit: calendar.Second}, hemi, true, false)
			if err != nil {
				return nil, err
			}
			if sub == nil && !following.empty() {
				yearTok := following.at(following.lo)
				if yearTok.IsDigit && len(yearTok.Word) == 4 {
					anchorDate = time.Date(tokInt(yearTok), 1, 1, 0, 0, 0, 0, refDate.Location())
					haveAnchor = true
					relRes = calendar.AbsoluteYear
					haveRes = true
					v.consume(following.lo)
				}
			} else if sub != nil {
				following.consumeAll()
				anchorDate = sub.Value
				haveAnchor = true
			}

			unitIdx := -1
			for j := following.lo; j < following.hi; j++ {
				t := following.at(j)
				w := strings.TrimSuffix(t.Lower(), "s")
				if _, ok := enMonths[w]; ok || enDateUnit(t.Lower()) {
					unitIdx = j
					break
				}
				if _, ok := enWeekdays[w]; ok {
					unitIdx = j
					break
				}
				if _, ok := enNearDates[t.Lower()]; ok {
					unitIdx = j
					break
				}
			}
			if unitIdx >= 0 {
				uw := strings.TrimSuffix(following.at(unitIdx).Lower(), "s")
				switch {
				case enDateUnit(following.at(unitIdx).Lower()):
					// keep uw
				case enMonths[uw] != 0 && haveAnchor && !anchorDayNamed(following, anchorDate):
					uw = "month"
				default:
					uw = "day"
				}
				relRes = unitResolution(uw)
				haveRes = true
			}

			if haveAnchor {
				refDate = anchorDate
			}

			if haveRes {
				switch relRes.Unit {
				case calendar.Day:
					haveDate = true
					extracted = refDate
				case calendar.Week:
					haveDate = true
					if !isRelativePast {
						_, extracted = calendar.WeekRange(refDate)
					} else {
						extracted = refDate
					}
				case calendar.Month:
					haveDate = true
					if !isRelativePast {
						_, extracted = calendar.MonthRange(refDate)
					} else {
						extracted = refDate
					}
				case calendar.Year:
					haveDate = true
					if !isRelativePast {
						_, extracted = calendar.YearRange(refDate)
					} else {
						extracted = refDate
					}
				case calendar.Decade:
					haveDate = true
					if !isRelativePast {
						_, extracted = calendar.DecadeRange(refDate)
					} else {
						extracted = refDate
					}
				case calendar.Century:
					haveDate = true
					if !isRelativePast {
						_, extracted = calendar.CenturyRange(refDate)
					} else {
						extracted = refDate
					}
				case calendar.Millennium:
					haveDate = true
					if !isRelativePast {
						_, extracted = calendar.MillenniumRange(refDate)
					} else {
						extracted = refDate
					}
				}
			} else if haveAnchor {
				haveDate = true
				extracted = refDate
			}

			// "remind me after X" means the day after X, while
			// "3 days after X" means X plus 3 days.
			if haveDate {
				if isRelativePast {
					if offset.IsZero() {
						offset = Duration{Days: -1}
					}
				} else if offset.IsZero() {
					if next, err := calendar.NextOf(extracted, res.Unit); err == nil {
						extracted = next
					}
				}
			}
		}

		if haveDate {
			extracted = offset.AddTo(extracted)
			if err := yearInRange(extracted); err != nil {
				return nil, err
			}
		}
	}

	// {reference} plus/minus {duration}
	if mathIdx >= 0 && !haveDate {
		following := v.sub(mathIdx+1, v.hi)
		deltas, err := tg.extractDurationsView(following, RelativedeltaFallback)
		if err != nil {
			return nil, err
		}
		if len(deltas) == 0 {
			return nil, fmt.Errorf("datetime: no duration after %q", v.at(mathIdx).Word)
		}
		last := deltas[len(deltas)-1]
		v.consume(mathIdx)
		for _, t := range last.Tokens {
			v.consume(t.Index)
		}
		delta = last.Value

		preceding := v.sub(v.lo, mathIdx)
		sub, err2 := tg.extractCore(preceding, refDate, calendar.Resolution{Unit: calendar.Second}, hemi, dateOnly, false)
		if err2 != nil {
			return nil, err2
		}
		if sub == nil && !following.empty() {
			yearTok := following.at(following.lo)
			if yearTok.IsDigit && len(yearTok.Word) == 4 {
				refDate = time.Date(tokInt(yearTok), 1, 1, 0, 0, 0, 0, refDate.Location())
				v.consume(following.lo)
			}
		} else if sub != nil {
			preceding.consumeAll()
			refDate = sub.Value
		}
	}

	// apply a bare relative duration against the reference
	if !delta.IsZero() && !haveDate {
		if pastIdx >= 0 || isSubtract {
			extracted = delta.SubFrom(refDate)
		} else {
			extracted = delta.AddTo(refDate)
		}
		if err := yearInRange(extracted); err != nil {
			return nil, err
		}
		haveDate = true
	}

	// token scan
	if !haveDate {
		finalDate := false

		if namedDate != nil {
			haveDate = true
			refDate = zeroTime(namedDate.Value)
		}
		if namedEra != nil {
			haveDate = true
			refDate = zeroTime(namedEra.Value)
		}

		var scanDate time.Time
		haveScan := false
		setScan := func(t time.Time) {
			scanDate = t
			haveScan = true
		}

		for i := v.lo; i < v.hi && !finalDate; i++ {
			token := v.at(i)
			if token.Consumed || token.IsSymbolic {
				continue
			}
			prev := v.at(i - 1)
			next := v.at(i + 1)
			nextNext := v.at(i + 2)
			nextNextNext := v.at(i + 3)
			word := token.Lower()

			// preformatted dates: 2004-06-14, 5/28/2017, 13.05.2014, 11.12.
			if sep := twiceSeparator(token.Word); sep != "" {
				parts := strings.Split(token.Word, sep)
				if len(parts) == 3 && parts[2] == "" {
					parts[2] = fmt.Sprintf("%d", refDate.Year())
				} else if len(parts) == 3 && allDigitWords(parts[2:]) &&
					len(parts[2]) == 2 && len(parts[0]) != 4 {
					parts[2] = fmt.Sprintf("%d", convertYearAbr(atoi(parts[2]), refDate))
				}
				if len(parts) == 3 && preformattedParts(parts) {
					if len(parts[0]) != 4 {
						parts[0], parts[2] = parts[2], parts[0]
					}
					y, mo, d := atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
					if sep == "/" || mo > 12 {
						mo, d = d, mo
					}
					if validDate(y, mo, d) {
						setScan(time.Date(y, time.Month(mo), d, 0, 0, 0, 0, refDate.Location()))
						haveDate = true
						v.consume(i)
						finalDate = true
					}
				}
			}

			if enNow[word] {
				haveDate = true
				setScan(currentDate)
				v.consume(i)
			} else if off, ok := enNearDates[word]; ok {
				haveDate = true
				d := refDate.AddDate(0, 0, off)
				if !timeFound {
					d = zeroTime(d)
				}
				setScan(d)
				v.consume(i)
			} else if wd, ok := enWeekdays[word]; ok {
				haveDate = true
				base := refDate
				if haveScan {
					base = scanDate
				}
				refWD := pyWeekday(refDate)
				if enPastMarkers[prev.Lower()] {
					var off int
					if wd < refWD {
						off = refWD - wd
					} else {
						off = 7 - wd + refWD
					}
					base = base.AddDate(0, 0, -off)
					v.consume(i - 1)
				} else {
					var off int
					if wd < refWD {
						off = 7 - refWD + wd
					} else {
						off = wd - refWD
					}
					base = base.AddDate(0, 0, off)
					if enThis[prev.Lower()] || enFutureMarkers[prev.Lower()] {
						v.consume(i - 1)
					}
				}
				setScan(base)
				v.consume(i)
			} else if mo, ok := enMonths[word]; ok {
				haveDate = true
				yearSet := 0
				base := refDate
				if haveScan {
					base = scanDate
				}
				work := withDate(base, base.Year(), time.Month(mo), 1)

				if enPastMarkers[prev.Lower()] {
					if mo > int(refDate.Month()) {
						work = work.AddDate(-1, 0, 0)
					}
					v.consume(i - 1)
				} else if enFutureMarkers[prev.Lower()] {
					if mo < int(refDate.Month()) {
						work = work.AddDate(1, 0, 0)
					}
					v.consume(i - 1)
				}

				// attached day of month
				dayNext := next
				if (next.IsOrdinal || next.IsDigit) && tokInt(next) > 0 && tokInt(next) <= 31 {
					work = withDate(work, work.Year(), work.Month(), tokInt(next))
					v.consume(i + 1)
					dayNext = nextNext
				} else if (prev.IsDigit || prev.IsOrdinal) && tokInt(prev) > 0 && tokInt(prev) <= 31 {
					work = withDate(work, work.Year(), work.Month(), tokInt(prev))
					v.consume(i - 1)
				} else if next.Lower() == "the" && nextNext.IsOrdinal {
					work = withDate(work, work.Year(), work.Month(), tokInt(nextNext))
					v.consume(i + 2)
					dayNext = nextNextNext
				}

				// attached year
				if dayNext.IsDigit && res.Scope == calendar.EraBeforePresent {
					bp, err := calendar.ResolveOrdinal(tokInt(dayNext), calendar.BeforePresentYear, refDate)
					if err != nil {
						return nil, err
					}
					yearSet = bp.Year()
					work = withDate(work, yearSet, work.Month(), work.Day())
					v.consume(dayNext.Index)
				} else if dayNext.IsDigit && len(dayNext.Word) > 1 && len(dayNext.Word) <= 4 {
					if len(dayNext.Word) >= 3 {
						yearSet = tokInt(dayNext)
					} else {
						yearSet = convertYearAbr(tokInt(dayNext), refDate)
					}
					work = withDate(work, yearSet, work.Month(), work.Day())
					v.consume(dayNext.Index)
				} else if prev.IsDigit && len(prev.Word) == 4 {
					yearSet = tokInt(prev)
					work = withDate(work, yearSet, work.Month(), work.Day())
					v.consume(i - 1)
				}

				if haveScan {
					d := withDate(scanDate, scanDate.Year(), work.Month(), work.Day())
					if yearSet != 0 {
						d = withDate(d, yearSet, d.Month(), d.Day())
					}
					setScan(d)
				} else {
					setScan(work)
				}
				v.consume(i)
			} else if enSeasonLiteral[word] {
				start, end := calendar.SeasonRange(refDate, hemi, false)
				switch {
				case prev.IsDigit:
					return nil, &calendar.DomainError{Msg: "counting seasons ahead is not supported"}
				case enThis[prev.Lower()]:
					haveDate = true
					setScan(start)
					v.consume(i - 1)
				case enPastMarkers[prev.Lower()]:
					haveDate = true
					lastEnd := start.AddDate(0, 0, -2)
					s := calendar.DateToSeason(lastEnd, hemi, false)
					setScan(calendar.LastSeason(s, refDate, hemi, false))
					v.consume(i - 1)
				case enFutureMarkers[prev.Lower()]:
					haveDate = true
					setScan(end)
					v.consume(i - 1)
				case enMid[prev.Lower()]:
					haveDate = true
					setScan(start.Add(end.Sub(start) / 2))
					v.consume(i - 1)
				}
				v.consume(i)
			} else if season, ok := enSeasons[word]; ok {
				haveDate = true
				year := refDate.Year()
				// before the March handover the ongoing winter (or
				// southern summer) started last year
				if (refDate.Month() < 3 || (refDate.Month() == 3 && refDate.Day() < 20)) &&
					refDate.Year() == currentDate.Year() {
					if season == calendar.Winter && hemi == calendar.NorthernHemisphere {
						year = refDate.Year() - 1
					} else if season == calendar.Summer && hemi == calendar.SouthernHemisphere {
						year = refDate.Year() - 1
					}
				}

				if next.IsDigit && len(next.Word) > 1 && len(next.Word) <= 4 {
					if len(next.Word) == 2 {
						if tokInt(next) <= 50 {
							year = 2000 + tokInt(next)
						} else {
							year = 1900 + tokInt(next)
						}
					} else {
						year = tokInt(next)
					}
					setScan(calendar.SeasonStart(season, year, refDate.Location(), hemi, false))
					v.consume(i + 1)
				} else if prev.IsDigit {
					return nil, &calendar.DomainError{Msg: "counting seasons ahead is not supported"}
				} else if enPastMarkers[prev.Lower()] {
					setScan(calendar.LastSeason(season, refDate, hemi, false))
					v.consume(i - 1)
				} else if enFutureMarkers[prev.Lower()] {
					setScan(calendar.NextSeason(season, refDate, hemi, false))
					v.consume(i - 1)
				} else {
					d := calendar.SeasonStart(season, year, refDate.Location(), hemi, false)
					setScan(d)
					if enThis[prev.Lower()] {
						v.consume(i - 1)
					} else if enMid[prev.Lower()] {
						start, end := calendar.SeasonRange(d, hemi, false)
						setScan(start.Add(end.Sub(start) / 2))
						v.consume(i - 1)
					}
				}
				v.consume(i)
			} else if enDayLiteral[word] {
				matched := true
				switch {
				case prev.IsOrdinal:
					if res.Scope == calendar.EraBeforePresent {
						d, err := calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Day, Scope: calendar.EraBeforePresent}, refDate)
						if err != nil {
							return nil, err
						}
						setScan(d)
					} else {
						setScan(withDate(refDate, refDate.Year(), refDate.Month(), tokInt(prev)))
					}
					v.consume(i - 1)
				case next.IsDigit:
					setScan(withDate(refDate, refDate.Year(), refDate.Month(), tokInt(next)))
					v.consume(i + 1)
				case enThis[prev.Lower()]:
					setScan(refDate)
					v.consume(i - 1)
				case enPastMarkers[prev.Lower()]:
					setScan(refDate.AddDate(0, 0, -1))
					v.consume(i - 1)
				case enFutureMarkers[prev.Lower()]:
					setScan(refDate.AddDate(0, 0, 1))
					v.consume(i - 1)
				default:
					matched = false
				}
				if matched {
					haveDate = true
					v.consume(i)
					refDate = scanDate
				}
			} else if enWeekendLiteral[word] {
				isWeekend := pyWeekday(refDate) >= 5
				switch {
				case prev.IsOrdinal:
					haveDate = true
					v.consume(i - 1)
					scope := calendar.OfMonth
					eraScope := res.Scope == calendar.EraBeforePresent
					var d time.Time
					var err error
					if eraScope {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.EraBeforePresent}, refDate)
					} else {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Weekend, Scope: scope}, refDate)
					}
					if err != nil {
						return nil, err
					}
					setScan(d)
				case next.IsDigit:
					return nil, &calendar.DomainError{Msg: "numbered weekends are not supported"}
				case enThis[prev.Lower()]:
					haveDate = true
					start, _ := calendar.WeekendRange(refDate)
					setScan(start)
					v.consume(i - 1)
				case enFutureMarkers[prev.Lower()]:
					haveDate = true
					base := refDate
					if isWeekend {
						base = base.AddDate(0, 0, 7)
					}
					start, _ := calendar.WeekendRange(base)
					setScan(start)
					v.consume(i - 1)
				case enPastMarkers[prev.Lower()]:
					haveDate = true
					start, _ := calendar.WeekendRange(refDate.AddDate(0, 0, -7))
					setScan(start)
					v.consume(i - 1)
				}
				v.consume(i)
			} else if enWeekLiteral[word] {
				if prev.IsOrdinal && tokInt(prev) > 0 && tokInt(prev) <= 53 {
					haveDate = true
					var wk time.Time
					var err error
					if res.Scope == calendar.EraBeforePresent {
						wk, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Week, Scope: calendar.EraBeforePresent}, refDate)
					} else {
						wk, err = calendar.ResolveOrdinal(tokInt(prev), calendar.WeekOfYear, refDate)
					}
					if err != nil {
						return nil, err
					}
					start, _ := calendar.WeekRange(wk)
					setScan(start)
					v.consume(i - 1)
				}
				if enThis[prev.Lower()] {
					haveDate = true
					start, _ := calendar.WeekRange(refDate)
					setScan(start)
					v.consume(i - 1)
				} else if enPastMarkers[prev.Lower()] {
					haveDate = true
					start, _ := calendar.WeekRange(refDate.AddDate(0, 0, -7))
					setScan(start)
					v.consume(i - 1)
				} else if enFutureMarkers[prev.Lower()] {
					haveDate = true
					start, _ := calendar.WeekRange(refDate.AddDate(0, 0, 7))
					setScan(start)
					v.consume(i - 1)
				} else if next.IsDigit && tokInt(next) > 0 && tokInt(next) <= 53 {
					haveDate = true
					wk, err := calendar.ResolveOrdinal(tokInt(next), calendar.WeekOfYear, refDate)
					if err != nil {
						return nil, err
					}
					setScan(wk)
					v.consume(i + 1)
				}
				v.consume(i)
			} else if enMonthLiteral[word] {
				if prev.IsOrdinal && tokInt(prev) > 0 && tokInt(prev) <= 12 {
					haveDate = true
					var d time.Time
					var err error
					if res.Scope == calendar.EraBeforePresent {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Month, Scope: calendar.EraBeforePresent}, refDate)
					} else {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.MonthOfYear, refDate)
					}
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				} else if next.IsDigit && tokInt(next) > 0 && tokInt(next) <= 12 {
					haveDate = true
					d, err := calendar.ResolveOrdinal(tokInt(next), calendar.MonthOfYear, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i + 1)
				} else if enThis[prev.Lower()] {
					haveDate = true
					setScan(withDate(refDate, refDate.Year(), refDate.Month(), 1))
					v.consume(i - 1)
				} else if enFutureMarkers[prev.Lower()] {
					haveDate = true
					nm := refDate.AddDate(0, 0, daysInMonth)
					setScan(withDate(nm, nm.Year(), nm.Month(), 1))
					v.consume(i - 1)
				} else if enPastMarkers[prev.Lower()] {
					haveDate = true
					lm := refDate.AddDate(0, 0, -daysInMonth)
					setScan(withDate(lm, lm.Year(), lm.Month(), 1))
					v.consume(i - 1)
				}
				v.consume(i)
			} else if enYearLiteral[word] {
				var yearDate time.Time
				haveYear := false
				switch {
				case enThis[prev.Lower()]:
					haveDate = true
					yearDate, _ = calendar.ResolveOrdinal(refDate.Year(), calendar.AbsoluteYear, refDate)
					haveYear = true
					v.consume(i - 1)
				case enPastMarkers[prev.Lower()]:
					haveDate = true
					yearDate, _ = calendar.ResolveOrdinal(refDate.Year()-1, calendar.AbsoluteYear, refDate)
					haveYear = true
					v.consume(i - 1)
				case enFutureMarkers[prev.Lower()]:
					haveDate = true
					yearDate, _ = calendar.ResolveOrdinal(refDate.Year()+1, calendar.AbsoluteYear, refDate)
					haveYear = true
					v.consume(i - 1)
				case prev.IsOrdinal:
					haveDate = true
					var err error
					if res.Scope == calendar.EraBeforePresent {
						yearDate, err = calendar.ResolveOrdinal(tokInt(prev), calendar.BeforePresentYear, refDate)
					} else {
						yearDate, err = calendar.ResolveOrdinal(tokInt(prev)-1, calendar.AbsoluteYear, refDate)
					}
					if err != nil {
						return nil, err
					}
					haveYear = true
					v.consume(i - 1)
				case next.IsDigit:
					haveDate = true
					refDate = withDate(refDate, tokInt(next), refDate.Month(), refDate.Day())
					yearDate = refDate
					haveYear = true
					v.consume(i + 1)
				}
				if haveYear {
					if haveScan {
						setScan(withDate(scanDate, yearDate.Year(), scanDate.Month(), scanDate.Day()))
					} else {
						setScan(yearDate)
					}
				}
				v.consume(i)
			} else if enDecadeLiteral[word] {
				decade := refDate.Year()/10 + 1
				switch {
				case enThis[prev.Lower()]:
					haveDate = true
					d, err := calendar.ResolveOrdinal(decade, calendar.Resolution{Unit: calendar.Decade}, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				case enPastMarkers[prev.Lower()]:
					haveDate = true
					d, err := calendar.ResolveOrdinal(decade-1, calendar.Resolution{Unit: calendar.Decade}, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				case enFutureMarkers[prev.Lower()]:
					haveDate = true
					d, err := calendar.ResolveOrdinal(decade+1, calendar.Resolution{Unit: calendar.Decade}, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				case prev.IsOrdinal:
					haveDate = true
					var d time.Time
					var err error
					if res.Scope == calendar.EraBeforePresent {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Decade, Scope: calendar.EraBeforePresent}, refDate)
					} else {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Decade}, refDate)
					}
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				}
				v.consume(i)
			} else if enMillenniumLit[word] {
				mil := refDate.Year()/1000 + 1
				switch {
				case enThis[prev.Lower()]:
					haveDate = true
					d, err := calendar.ResolveOrdinal(mil, calendar.Resolution{Unit: calendar.Millennium}, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				case enPastMarkers[prev.Lower()]:
					haveDate = true
					d, err := calendar.ResolveOrdinal(mil-1, calendar.Resolution{Unit: calendar.Millennium}, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				case enFutureMarkers[prev.Lower()]:
					haveDate = true
					d, err := calendar.ResolveOrdinal(mil+1, calendar.Resolution{Unit: calendar.Millennium}, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				case prev.IsOrdinal:
					haveDate = true
					base := refDate
					if haveScan {
						base = scanDate
					}
					var d time.Time
					var err error
					if res.Scope == calendar.EraBeforePresent {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Millennium, Scope: calendar.EraBeforePresent}, base)
					} else {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Millennium}, base)
					}
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				}
				v.consume(i)
			} else if enCenturyLiteral[word] {
				century := refDate.Year()/100 + 1
				switch {
				case enThis[prev.Lower()]:
					haveDate = true
					d, err := calendar.ResolveOrdinal(century, calendar.Resolution{Unit: calendar.Century}, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				case enPastMarkers[prev.Lower()]:
					haveDate = true
					d, err := calendar.ResolveOrdinal(century-1, calendar.Resolution{Unit: calendar.Century}, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				case enFutureMarkers[prev.Lower()]:
					haveDate = true
					d, err := calendar.ResolveOrdinal(century+1, calendar.Resolution{Unit: calendar.Century}, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				case prev.IsOrdinal:
					haveDate = true
					base := refDate
					if haveScan {
						base = scanDate
					}
					var d time.Time
					var err error
					if res.Scope == calendar.EraBeforePresent {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Century, Scope: calendar.EraBeforePresent}, base)
					} else {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Century}, base)
					}
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				}
				v.consume(i)
			} else if enSetQualifiers[word] && next.IsDigit {
				// "the year is 2021"
				if enDateUnit(prev.Lower()) {
					haveDate = true
					v.consume(i-1, i, i+1)
					base := refDate
					if haveScan {
						base = scanDate
					}
					var setRes calendar.Resolution
					switch {
					case enDayLiteral[prev.Lower()]:
						setRes = calendar.DayOfMonth
					case enMonthLiteral[prev.Lower()]:
						setRes = calendar.MonthOfYear
					case enYearLiteral[prev.Lower()]:
						setRes = calendar.AbsoluteYear
					case enDecadeLiteral[prev.Lower()]:
						setRes = calendar.Resolution{Unit: calendar.Decade}
					case enCenturyLiteral[prev.Lower()]:
						setRes = calendar.Resolution{Unit: calendar.Century}
					case enMillenniumLit[prev.Lower()]:
						setRes = calendar.Resolution{Unit: calendar.Millennium}
					default:
						setRes = calendar.WeekOfYear
					}
					d, err := calendar.ResolveOrdinal(tokInt(next), setRes, base)
					if err != nil {
						return nil, err
					}
					setScan(d)
				}
			} else if !haveDate && token.IsDigit && res.Scope == calendar.EraBeforePresent {
				haveDate = true
				d, err := calendar.ResolveOrdinal(tokInt(token), calendar.BeforePresentYear, refDate)
				if err != nil {
					return nil, err
				}
				setScan(d)
				v.consume(i)
			} else if !haveDate && token.IsDigit && res.Scope == calendar.EraUnix {
				haveDate = true
				d, err := calendar.ResolveOrdinal(tokInt(token), calendar.UnixSecond, refDate)
				if err != nil {
					return nil, err
				}
				setScan(d)
				v.consume(i)
			} else if !haveDate && token.IsDigit && res.Scope == calendar.EraJulian {
				haveDate = true
				d, err := calendar.ResolveOrdinal(tokInt(token), calendar.JulianDay, refDate)
				if err != nil {
					return nil, err
				}
				setScan(d)
				v.consume(i)
			} else if !haveDate && token.IsDigit && res.Scope == calendar.EraLilian {
				haveDate = true
				d, err := calendar.ResolveOrdinal(tokInt(token), calendar.LilianDay, refDate)
				if err != nil {
					return nil, err
				}
				setScan(d)
				v.consume(i)
			} else if greedy && token.IsDigit && len(token.Word) >= 3 && !token.IsTime &&
				!enDateUnit(prev.Lower()) && !enDateUnit(next.Lower()) {
				haveDate = true
				base := refDate
				if haveScan {
					base = scanDate
				}
				setScan(withDate(base, tokInt(token), base.Month(), base.Day()))
				v.consume(i)
				greedy = false
			} else if greedy && token.IsDigit && !token.IsTime &&
				!enDateUnit(prev.Lower()) && !enDateUnit(next.Lower()) {
				haveDate = true
				base := refDate
				if haveScan {
					base = scanDate
				}
				setScan(withDate(base, convertYearAbr(tokInt(token), refDate), base.Month(), base.Day()))
				v.consume(i)
				greedy = false
			} else if namedEra != nil && token.IsDigit && tokenInSpan(next, namedEra.Tokens) {
				// "1992 after christ"
				haveDate = true
				refDate = withDate(refDate, tokInt(token), refDate.Month(), refDate.Day())
				setScan(refDate)
				v.consume(i)
			} else if !token.IsDigit && isDigits(strings.TrimRight(token.Word, "s")) {
				// "the 70s", "the 600s"
				haveDate = true
				ystr := strings.TrimRight(token.Word, "s")
				year := atoi(ystr)
				if len(ystr) == 2 {
					year = convertYearAbr(year, refDate)
				}
				base := refDate
				if haveScan {
					base = scanDate
				}
				setScan(withDate(base, year, base.Month(), base.Day()))
				v.consume(i)
			}
		}
		if haveScan {
			extracted = scanDate
		}
	}

	if !haveDate && !(timeFound && !dateOnly) {
		return nil, nil
	}

	if extracted.IsZero() {
		extracted = refDate
	}

	// tag what the date recognizers consumed
	for i := v.lo; i < v.hi; i++ {
		t := v.tok(i)
		if t.Consumed && !t.IsDuration && !t.IsTime {
			t.IsDate = true
		}
	}

	if timeFound {
		extracted = time.Date(extracted.Year(), extracted.Month(), extracted.Day(),
			hourVal, minVal, 0, 0, extracted.Location())
		// a bare time already past today means tomorrow
		if extracted.Year() == currentDate.Year() &&
			extracted.YearDay() == currentDate.YearDay() &&
			timeOfDay(extracted) < timeOfDay(currentDate) &&
			v.findAny(enSameDayMarkers...) < 0 {
			extracted = extracted.AddDate(0, 0, 1)
		}
	}

	extracted = snapResolution(extracted, res)

	return &ReplaceableDatetime{Value: extracted, Tokens: v.tokens()}, nil
}

// anchorDayNamed reports whether any token in the window spells the
// anchor's day of month; a bare month name next to one keeps day
// resolution.
func anchorDayNamed(v view, anchor time.Time) bool {
	for i := v.lo; i < v.hi; i++ {
		if n, ok := tokNumber(v.at(i)); ok && int(n) == anchor.Day() {
			return true
		}
	}
	return false
}

// unitResolution maps a singular date-unit word to its resolution.
func unitResolution(unit string) calendar.Resolution {
	switch unit {
	case "day":
		return calendar.Resolution{Unit: calendar.Day}
	case "week":
		return calendar.Resolution{Unit: calendar.Week}
	case "weekend":
		return calendar.Resolution{Unit: calendar.Weekend}
	case "month":
		return calendar.Resolution{Unit: calendar.Month}
	case "year":
		return calendar.Resolution{Unit: calendar.Year}
	case "decade":
		return calendar.Resolution{Unit: calendar.Decade}
	case "century", "centurie":
		return calendar.Resolution{Unit: calendar.Century}
	case "millennium", "millennia":
		return calendar.Resolution{Unit: calendar.Millennium}
	}
	return calendar.Resolution{Unit: calendar.Day}
}

// snapResolution truncates the result to the start of the requested
// period.
func snapResolution(t time.Time, res calendar.Resolution) time.Time {
	if res.Scope != calendar.Absolute {
		return t.Add(-time.Duration(t.Nanosecond()))
	}
	switch res.Unit {
	case calendar.Minute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	case calendar.Hour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case calendar.Day:
		return zeroTime(t)
	case calendar.Week:
		start, _ := calendar.WeekRange(t)
		return start
	case calendar.Month:
		start, _ := calendar.MonthRange(t)
		return start
	case calendar.Year:
		start, _ := calendar.YearRange(t)
		return start
	case calendar.Decade:
		start, _ := calendar.DecadeRange(t)
		return start
	case calendar.Century:
		start, _ := calendar.CenturyRange(t)
		return start
	case calendar.Millennium:
		start, _ := calendar.MillenniumRange(t)
		return start
	}
	return t.Add(-time.Duration(t.Nanosecond()))
}

// timeOfDay is the clock part as a duration since midnight.
func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

// tokenInSpan reports whether t is one of the span tokens.
func tokenInSpan(t tokens.Token, span []tokens.Token) bool {
	for _, s := range span {
		if s.Index == t.Index {
			return true
		}
	}
	return false
}

// twiceSeparator returns the separator of a preformatted date: the
// character of "./-" appearing exactly twice in the word.
func twiceSeparator(word string) string {
	for _, sep := range []string{".", "/", "-"} {
		if strings.Count(word, sep) == 2 {
			return sep
		}
	}
	return ""
}

// preformattedParts accepts three numeric parts of length 4 or 1 to 2.
func preformattedParts(parts []string) bool {
	for _, p := range parts {
		if !isDigits(p) {
			return false
		}
		if len(p) != 4 && (len(p) < 1 || len(p) > 2) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allDigitWords(parts []string) bool {
	for _, p := range parts {
		if !isDigits(p) {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
