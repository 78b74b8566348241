package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/emphasize/ovos-classifiers/calendar"
	"github.com/emphasize/ovos-classifiers/data"
	"github.com/emphasize/ovos-classifiers/numbers"
	"github.com/emphasize/ovos-classifiers/tokens"
)

var (
	deWeekdays = map[string]int{
		"montag": 0, "dienstag": 1, "mittwoch": 2, "donnerstag": 3,
		"freitag": 4, "samstag": 5, "sonntag": 6,
	}
	deMonths = map[string]int{
		"jan": 1, "januar": 1, "januars": 1,
		"feb": 2, "februar": 2, "februars": 2,
		"mär": 3, "märz": 3,
		"apr": 4, "april": 4, "aprils": 4,
		"mai": 5, "mais": 5,
		"jun": 6, "juni": 6, "junis": 6,
		"jul": 7, "juli": 7, "julis": 7,
		"aug": 8, "august": 8, "augusts": 8,
		"sep": 9, "september": 9, "septembers": 9,
		"okt": 10, "oktober": 10, "oktobers": 10,
		"nov": 11, "november": 11, "novembers": 11,
		"dez": 12, "dezember": 12, "dezembers": 12,
	}
	deSeasons = map[string]calendar.Season{
		"frühling": calendar.Spring,
		"frühjahr": calendar.Spring,
		"sommer":   calendar.Summer,
		"herbst":   calendar.Fall,
		"spätjahr": calendar.Fall,
		"winter":   calendar.Winter,
	}
)

var (
	dePastQualifiers = wordSet("vor", "früher", "davor", "vorher", "zuvor")
	deRelQualifiers  = wordSet("in", "vor", "nach", "seit", "ab",
		"früher", "davor", "vorher", "zuvor")
	deOfQualifiers   = []string{"im", "in", "des", "der"}
	deSetQualifiers  = wordSet("ist", "war")
	deDateMarkers    = wordSet("am", "dem")
	deSameDayMarkers = []string{"heute", "heutigen", "heutigem", "heutiges",
		"heutiger", "heutige"}
	deThis = wordSet("diese", "dieses", "diesem", "dieser", "diesen",
		"aktuell", "aktuelle", "aktuellen", "aktueller", "aktuelles",
		"gegenwärtig", "gegenwärtige", "gegenwärtigen", "gegenwärtiger", "gegenwärtiges",
		"momentan", "momentane", "momentanen", "momentaner", "momentanes")
	deMid      = wordSet("mitte", "mitten")
	deEnd      = wordSet("ende")
	deBMEWords = []string{"begin", "beginn", "anfang", "mitte", "mitten", "ende"}
	deLastWords     = []string{"letzte", "letztem", "letzten", "letztes", "letzter"}
	deLast          = wordSet(deLastWords...)
	deFutureMarkers = wordSet("nächste", "nächstem", "nächsten", "nächstes", "nächster",
		"kommende", "kommendem", "kommenden", "kommendes", "kommender")
	deWeekdayWords = []string{
		"montag", "dienstag", "mittwoch", "donnerstag", "freitag", "samstag", "sonntag",
		"montags", "dienstags", "mittwochs", "donnerstags", "freitags", "samstags", "sonntags",
	}
	deDayLiteral     = wordSet("tag", "tage", "tages")
	deWeekWords      = []string{"woche", "wochen"}
	deWeekLiteral    = wordSet(deWeekWords...)
	deWeekendLiteral = wordSet("wochenende", "wochenenden", "wochenendes")
	deMonthWords     = []string{"monat", "monate", "monaten", "monats"}
	deMonthLiteral   = wordSet(deMonthWords...)
	deYearWords      = []string{"jahr", "jahre", "jahren", "jahres"}
	deYearLiteral    = wordSet(deYearWords...)
	deCenturyWords   = []string{"jahrhundert", "jahrhunderte", "jahrhunderten", "jahrhunderts"}
	deCenturyLiteral = wordSet(deCenturyWords...)
	deDecadeWords    = []string{"jahrzehnt", "jahrzehnte", "jahrzehnten", "jahrzehnts"}
	deDecadeLiteral  = wordSet(deDecadeWords...)
	deMillenniumWords = []string{"millennium", "millennia", "millennien", "millenniums",
		"jahrtausend", "jahrtausende", "jahrtausenden", "jahrtausends"}
	deMillenniumLit   = wordSet(deMillenniumWords...)
	deSeasonMarkWords = []string{"frühling", "frühjahr", "sommer", "herbst", "spätjahr", "winter",
		"frühlings", "frühjahrs", "sommers", "herbsts", "spätjahrs", "winters"}
	deSeasonMarkers = wordSet(deSeasonMarkWords...)
	deSeasonLiteral = wordSet("saison", "säson", "jahreszeit")
	deNearDates     = map[string]int{
		"jetzt": 0, "jetzigen": 0, "jetzigem": 0, "jetziges": 0, "jetziger": 0, "jetzige": 0,
		"heute": 0, "heutigen": 0, "heutigem": 0, "heutiges": 0, "heutiger": 0, "heutige": 0,
		"gestern": -1, "gestrigen": -1, "gestrigem": -1, "gestriges": -1, "gestriger": -1, "gestrige": -1,
		"vorgestern": -2, "vorgestrigen": -2, "vorgestrigem": -2, "vorgestriges": -2, "vorgestriger": -2,
		"morgen": 1, "morgigen": 1, "morgigem": 1, "morgiges": 1, "morgiger": 1, "morgige": 1,
		"übermorgen": 2, "übermorgigen": 2, "übermorgigem": 2, "übermorgiges": 2, "übermorgiger": 2,
		"übermorgige": 2,
	}
)

// deDateUnit reports whether the word names a date unit, in any of its
// inflections.
func deDateUnit(w string) bool {
	return deDayLiteral[w] || deWeekLiteral[w] || deWeekendLiteral[w] ||
		deMonthLiteral[w] || deYearLiteral[w] || deDecadeLiteral[w] ||
		deCenturyLiteral[w] || deMillenniumLit[w]
}

// deUnitResolution maps a German date-unit word to the period it names.
func deUnitResolution(unit string) calendar.Resolution {
	switch {
	case deDayLiteral[unit]:
		return calendar.Resolution{Unit: calendar.Day}
	case deWeekLiteral[unit]:
		return calendar.Resolution{Unit: calendar.Week}
	case deWeekendLiteral[unit]:
		return calendar.Resolution{Unit: calendar.Weekend}
	case deMonthLiteral[unit]:
		return calendar.Resolution{Unit: calendar.Month}
	case deYearLiteral[unit]:
		return calendar.Resolution{Unit: calendar.Year}
	case deDecadeLiteral[unit]:
		return calendar.Resolution{Unit: calendar.Decade}
	case deCenturyLiteral[unit]:
		return calendar.Resolution{Unit: calendar.Century}
	case deMillenniumLit[unit]:
		return calendar.Resolution{Unit: calendar.Millennium}
	}
	return calendar.Resolution{Unit: calendar.Day}
}

// deConvertYearAbr expands a 2-digit year: an anchor early in its
// century keeps the year there, a late anchor pushes it back one.
func deConvertYearAbr(year int, ref time.Time) int {
	refCentury := (ref.Year() / 100) * 100
	if ref.Year()%100 < 50 {
		return refCentury + year
	}
	return refCentury - 100 + year
}

// deNearBME shifts d to the middle or end of its period when a token
// near the match says mitte or ende; anfang keeps the value. The
// marker token is consumed either way.
func deNearBME(v, near view, d time.Time, rangeOf func(time.Time) (time.Time, time.Time)) time.Time {
	bi := near.findAny(deBMEWords...)
	if bi < 0 {
		return d
	}
	start, end := rangeOf(d)
	switch w := near.at(bi).Lower(); {
	case deMid[w]:
		d = start.Add(end.Sub(start) / 2)
	case deEnd[w]:
		d = end
	}
	v.consume(bi)
	return d
}

func (tg *GermanTagger) extractDurationsView(v view, res DurationResolution) ([]ReplaceableDuration, error) {
	if v.empty() {
		return nil, nil
	}
	sub := tokens.FromSlice(v.ts.Slice(v.lo, v.hi))
	durations, err := tg.extractDurationsTokens(sub, res)
	if err != nil {
		return nil, err
	}
	var out []ReplaceableDuration
	for _, d := range durations {
		lo := v.lo + d.StartIndex()
		hi := v.lo + d.EndIndex() + 1
		if hi > v.hi {
			hi = v.hi
		}
		for i := lo; i < hi; i++ {
			v.ts.Tok(i).IsDuration = true
		}
		out = append(out, ReplaceableDuration{Value: d.Value, Tokens: v.ts.Slice(lo, hi)})
	}
	return out, nil
}

func (tg *GermanTagger) tagDurationsView(v view) {
	tg.extractDurationsView(v, Timedelta)
}

func deHemisphereView(v view) (calendar.Hemisphere, bool) {
	for i := v.lo; i < v.hi; i++ {
		if !deHemisphereMarkers[v.at(i).Lower()] {
			continue
		}
		words := make([]string, 0, v.hi-i-1)
		for j := i + 1; j < v.hi; j++ {
			words = append(words, v.at(j).Lower())
		}
		following := strings.Join(words, " ")
		for _, phrase := range deNorthPhrases {
			if strings.Contains(following, phrase) {
				return calendar.NorthernHemisphere, true
			}
		}
		for _, phrase := range deSouthPhrases {
			if strings.Contains(following, phrase) {
				return calendar.SouthernHemisphere, true
			}
		}
	}
	return calendar.NorthernHemisphere, false
}

// localNamedDates lists observances specific to the German locale that
// fall within one year of ref.
func (tg *GermanTagger) localNamedDates(ref time.Time) map[string]time.Time {
	years := []int{ref.Year()}
	if ref.Month() != time.January || ref.Day() != 1 {
		years = append(years, ref.Year()+1)
	}
	start := zeroTime(ref)
	end := zeroTime(ref.AddDate(1, 0, 0).Add(-time.Minute))

	named := make(map[string]time.Time)
	for _, year := range years {
		day := func(mo time.Month, d int) time.Time {
			return time.Date(year, mo, d, 0, 0, 0, 0, ref.Location())
		}
		easter := easterSunday(year, ref.Location())
		sep1 := day(time.September, 1)
		oct1 := day(time.October, 1)
		nov1 := day(time.November, 1)
		dates := map[string]time.Time{
			"Fat Thursday":     easter.AddDate(0, 0, -52),
			"Rose Monday":      easter.AddDate(0, 0, -48),
			"St. Martin's Day": day(time.November, 11),
			"Oktoberfest":      sep1.AddDate(0, 0, 14+5-pyWeekday(sep1)),
			"Labor Day":        day(time.May, 1),
			"Erntedank":        oct1.AddDate(0, 0, mod7(6-pyWeekday(oct1))),
			"Volkstrauertag":   nov1.AddDate(0, 0, 14+6-pyWeekday(nov1)),
			"Totensonntag":     nov1.AddDate(0, 0, 21-pyWeekday(nov1)),
			"Buß- und Bettag":  nov1.AddDate(0, 0, 21+2-pyWeekday(nov1)),
		}
		for name, d := range dates {
			if !d.Before(start) && !d.After(end) {
				named[name] = d
			}
		}
	}
	return named
}

// ExtractNamedDates returns the named dates spoken in the utterance,
// resolved to their occurrence in the year starting at the anchor.
func (tg *GermanTagger) ExtractNamedDates(text string, anchor time.Time) []ReplaceableDate {
	anchor = resolveAnchor(anchor)
	v := newView(tg.num.ConvertWordsToNumbers(text, numbers.Options{
		Ordinals: numbers.OrdinalsOn, Fractions: true,
	}))
	tg.tagDurationsView(v)
	return tg.extractNamedDatesView(v, anchor)
}

func (tg *GermanTagger) extractNamedDatesView(v view, refDate time.Time) []ReplaceableDate {
	var extracted []ReplaceableDate
	var namedIdx []int

	// an explicit year moves the whole one-year window
	if yi := v.findAny(deYearWords...); yi >= 0 {
		yearTok := v.at(yi)
		next := v.at(yi + 1)
		prev := v.at(yi - 1)
		prevPrev := v.at(yi - 2)
		year := 0
		haveYear := false
		switch {
		case yearTok.IsDuration && (prev.IsDigit || prev.IsOrdinal) &&
			prevPrev.Lower() == "vor":
			year = refDate.Year() - tokInt(prev)
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1, yi-2)
		case yearTok.IsDuration && (prev.IsDigit || prev.IsOrdinal) &&
			prevPrev.Lower() == "in":
			year = refDate.Year() + tokInt(prev)
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1, yi-2)
		case next.IsDigit:
			if tokInt(next) < 100 {
				year = (refDate.Year()/100)*100 + tokInt(next)
			} else {
				year = tokInt(next)
			}
			haveYear = true
			namedIdx = append(namedIdx, yi, yi+1)
		case deLast[prev.Lower()]:
			year = refDate.Year() - 1
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1)
		case deFutureMarkers[prev.Lower()]:
			year = refDate.Year() + 1
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1)
		case deThis[prev.Lower()]:
			year = refDate.Year()
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1)
		}
		if haveYear {
			refDate = time.Date(year, 1, 1, 0, 0, 0, 0, refDate.Location())
		}
	}

	for _, nd := range data.NamedDates() {
		for _, synonym := range nd.SynonymsDE {
			start, end, ok := matchPhrase(v, synonym, true)
			if !ok {
				continue
			}
			for i := start; i <= end; i++ {
				namedIdx = append(namedIdx, i)
			}
			prev := v.at(start - 1)
			next := v.at(end + 1)
			if deLast[prev.Lower()] {
				refDate = refDate.AddDate(-1, 0, 0)
			} else if deThis[prev.Lower()] {
				refDate = time.Date(refDate.Year(), 1, 1, 0, 0, 0, 0, refDate.Location())
			} else if next.IsDigit && !next.IsDuration {
				year := tokInt(next)
				if year < 100 {
					year = (refDate.Year()/100)*100 + year
				}
				refDate = time.Date(year, 1, 1, 0, 0, 0, 0, refDate.Location())
			}

			named := namedDatesFor(refDate, calendar.NorthernHemisphere, tg.localNamedDates(refDate))
			value, found := named[nd.Name]
			if !found {
				break
			}
			var span []tokens.Token
			for _, i := range namedIdx {
				t := v.tok(i)
				t.IsDate = true
				span = append(span, *t)
			}
			extracted = append(extracted, ReplaceableDate{Value: value, Tokens: span})
			break
		}
	}
	return extracted
}

// ExtractDatetime extracts the date and time spoken in the utterance,
// resolved against the anchor. A nil result means no date or time was
// found.
func (tg *GermanTagger) ExtractDatetime(text string, anchor time.Time, opts Options) (*ReplaceableDatetime, error) {
	anchor = resolveAnchor(anchor)
	res := orResolution(opts.Resolution, calendar.Resolution{Unit: calendar.Second})
	ts := tg.num.ConvertWordsToNumbers(text, numbers.Options{
		Ordinals: numbers.OrdinalsOn, Fractions: true,
	})
	return tg.extractCore(newView(ts), anchor, res, opts.Hemisphere, false)
}

// ExtractDate extracts only the date part; the time of day in the
// utterance is left alone.
func (tg *GermanTagger) ExtractDate(text string, anchor time.Time, opts Options) (*ReplaceableDate, error) {
	anchor = resolveAnchor(anchor)
	res := orResolution(opts.Resolution, calendar.Resolution{Unit: calendar.Day})
	ts := tg.num.ConvertWordsToNumbers(text, numbers.Options{
		Ordinals: numbers.OrdinalsOn, Fractions: true,
	})
	dt, err := tg.extractCore(newView(ts), anchor, res, opts.Hemisphere, true)
	if dt == nil || err != nil {
		return nil, err
	}
	return &ReplaceableDate{Value: dt.Value, Tokens: dt.Tokens}, nil
}

// extractCore is the recursive heart of German date extraction,
// sharing the window mechanics of the English pass. Time of day is
// only parsed for full datetime requests; date-only recursion leaves
// clock tokens alone.
func (tg *GermanTagger) extractCore(v view, refDate time.Time, res calendar.Resolution, hemi calendar.Hemisphere, dateOnly bool) (*ReplaceableDatetime, error) {
	nowLocal := time.Now().In(refDate.Location())

	tg.tagDurationsView(v)

	var (
		extracted time.Time
		haveDate  bool

		timeFound bool
		hourVal   int
		minVal    int
	)

	if h, ok := deHemisphereView(v); ok {
		hemi = h
	}

	if !dateOnly {
		timeFound, hourVal, minVal = tg.scanTimeView(v)
	}

	// Named dates ("Ostern", "Tag der Arbeit") and named eras resolve
	// before anything else; an era switches the resolution for bare
	// numbers that follow.
	var namedDate *ReplaceableDate
	if nds := tg.extractNamedDatesView(v, refDate); len(nds) > 0 {
		namedDate = &nds[0]
		for _, t := range namedDate.Tokens {
			v.consume(t.Index)
		}
	}

	namedEra, eraRes := matchEra(v, func(e data.Era) []string { return e.SynonymsDE })
	if namedEra != nil && eraRes != (calendar.Resolution{}) {
		res = eraRes
	}

	relIdx := v.findSet(deRelQualifiers)
	isRelativePast := relIdx >= 0 && dePastQualifiers[v.at(relIdx).Lower()]
	ofIdx := v.find(deOfQualifiers...)
	if ofIdx >= 0 {
		// "fünfter Mai im Jahr ..." names a date and "in 3 Tagen" a
		// duration; neither is an "of" chain
		prevWord := v.at(ofIdx - 1).Lower()
		if deMonths[prevWord] != 0 || v.hasDuration() ||
			deMid[prevWord] || deEnd[prevWord] ||
			prevWord == "begin" || prevWord == "beginn" || prevWord == "anfang" {
			ofIdx = -1
		}
	}

	// {Nth unit} im/des {reference}
	if ofIdx >= 0 && !haveDate {
		following := v.sub(ofIdx+1, v.hi)
		preceding := v.sub(ofIdx-4, ofIdx)

		unitRes := calendar.DayOfMonth
		unit := "tag"
		var refDay = -1
		var anchorDate time.Time
		haveAnchor := false

		number := 0
		haveNumber := false
		ordIdx := preceding.findOrdinal()
		if ordIdx >= 0 {
			number = int(preceding.at(ordIdx).Ordinal)
			haveNumber = true
		}
		if preceding.hi-preceding.lo > 1 {
			lastIdx := preceding.find(append(append([]string{}, deLastWords...), "ende")...)
			unitIdx := -1
			for j := preceding.lo; j < preceding.hi; j++ {
				t := preceding.at(j)
				w := t.Lower()
				if t.Consumed {
					continue
				}
				if deDateUnit(w) {
					unitIdx = j
					break
				}
				if _, ok := deWeekdays[strings.TrimRight(w, "s")]; ok {
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
				if wd, ok := deWeekdays[strings.TrimRight(unit, "s")]; ok {
					if !haveNumber {
						number = wd + 1
						haveNumber = true
						unit = "tag"
					}
				}
				if haveNumber {
					v.consume(unitIdx)
				}
			}
		} else if preceding.hi-preceding.lo == 1 && haveNumber {
			v.consume(ordIdx)
		}

		sub, err := tg.extractCore(following, refDate, res, hemi, true)
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
			// number right after the qualifier requests one.
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
			monthWords := append([]string{}, deMonthWords...)
			for name := range deMonths {
				monthWords = append(monthWords, name)
			}
			_, isWeekdayUnit := deWeekdays[strings.TrimRight(unit, "s")]
			switch {
			case deDayLiteral[unit] || isWeekdayUnit:
				if wd, ok := deWeekdays[strings.TrimRight(unit, "s")]; ok {
					refDay = wd
				}
				ladder = []resWords{
					{calendar.DayOfWeek, deWeekWords},
					{calendar.DayOfMonth, monthWords},
					{calendar.DayOfYear, deYearWords},
					{calendar.Resolution{Unit: calendar.Day, Scope: calendar.OfDecade}, deDecadeWords},
					{calendar.Resolution{Unit: calendar.Day, Scope: calendar.OfCentury}, deCenturyWords},
					{calendar.Resolution{Unit: calendar.Day, Scope: calendar.OfMillennium}, deMillenniumWords},
					{calendar.Resolution{Unit: calendar.Day, Scope: calendar.OfSeason}, deSeasonMarkWords},
				}
				if !requestYear {
					unitRes = calendar.Resolution{Unit: calendar.Day, Scope: calendar.OfReference}
				}
			case deWeekLiteral[unit]:
				ladder = []resWords{
					{calendar.WeekOfMonth, monthWords},
					{calendar.WeekOfYear, deYearWords},
					{calendar.Resolution{Unit: calendar.Week, Scope: calendar.OfDecade}, deDecadeWords},
					{calendar.Resolution{Unit: calendar.Week, Scope: calendar.OfCentury}, deCenturyWords},
					{calendar.Resolution{Unit: calendar.Week, Scope: calendar.OfMillennium}, deMillenniumWords},
					{calendar.Resolution{Unit: calendar.Week, Scope: calendar.OfSeason}, deSeasonMarkWords},
				}
				if requestYear {
					unitRes = calendar.WeekOfYear
				} else {
					unitRes = calendar.Resolution{Unit: calendar.Week, Scope: calendar.OfReference}
				}
			case deWeekendLiteral[unit]:
				ladder = []resWords{
					{calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.OfMonth}, monthWords},
					{calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.OfYear}, deYearWords},
				}
				if requestYear {
					unitRes = calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.OfYear}
				} else {
					unitRes = calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.OfMonth}
				}
			case deMonthLiteral[unit]:
				ladder = []resWords{
					{calendar.MonthOfYear, deYearWords},
					{calendar.Resolution{Unit: calendar.Month, Scope: calendar.OfDecade}, deDecadeWords},
					{calendar.Resolution{Unit: calendar.Month, Scope: calendar.OfCentury}, deCenturyWords},
					{calendar.Resolution{Unit: calendar.Month, Scope: calendar.OfMillennium}, deMillenniumWords},
					{calendar.Resolution{Unit: calendar.Month, Scope: calendar.OfSeason}, deSeasonMarkWords},
				}
				if requestYear {
					unitRes = calendar.MonthOfYear
				} else {
					unitRes = calendar.Resolution{Unit: calendar.Month, Scope: calendar.OfReference}
				}
			case deYearLiteral[unit]:
				ladder = []resWords{
					{calendar.YearOfDecade, deDecadeWords},
					{calendar.YearOfCentury, deCenturyWords},
					{calendar.YearOfMillennium, deMillenniumWords},
				}
				unitRes = calendar.Resolution{Unit: calendar.Year, Scope: calendar.OfReference}
			case deDecadeLiteral[unit]:
				ladder = []resWords{
					{calendar.Resolution{Unit: calendar.Decade, Scope: calendar.OfCentury}, deCenturyWords},
					{calendar.Resolution{Unit: calendar.Decade, Scope: calendar.OfMillennium}, deMillenniumWords},
				}
				unitRes = calendar.Resolution{Unit: calendar.Decade, Scope: calendar.OfReference}
			case deCenturyLiteral[unit]:
				ladder = []resWords{
					{calendar.Resolution{Unit: calendar.Century, Scope: calendar.OfMillennium}, deMillenniumWords},
				}
				unitRes = calendar.Resolution{Unit: calendar.Century, Scope: calendar.OfReference}
			case deMillenniumLit[unit]:
				unitRes = calendar.Resolution{Unit: calendar.Millennium, Scope: calendar.OfReference}
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
			// {partial date} des {partial reference}: "Sommer des Jahres 1969"
			partial, err := tg.extractCore(preceding, anchorDate, res, hemi, true)
			if err != nil {
				return nil, err
			}
			if partial != nil {
				haveDate = true
				extracted = partial.Value
				v.consume(ofIdx)
				preceding.consumeAll()
			} else {
				haveDate = true
				extracted = anchorDate
			}
		}
	}

	// {duration} vor/nach/in/seit {reference}
	if relIdx >= 0 && !haveDate {
		preceding := v.sub(v.lo, relIdx)
		following := v.sub(relIdx+1, v.hi)

		var anchorDate time.Time
		haveAnchor := false
		var relRes calendar.Resolution
		haveRes := false
		var offset Duration
		extractedSet := false

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
		} else if !preceding.empty() {
			sub, err := tg.extractCore(preceding, refDate, res, hemi, true)
			if err != nil {
				return nil, err
			}
			if sub != nil {
				preceding.consumeAll()
				extracted = sub.Value
				extractedSet = true
			}
		}

		if following.hasDuration() {
			deltas, err := tg.extractDurationsView(following, RelativedeltaFallback)
			if err != nil {
				return nil, err
			}
			if len(deltas) > 0 {
				offset = deltas[0].Value
				if isRelativePast {
					offset = offset.Negated()
				}
				for _, t := range deltas[0].Tokens {
					v.consume(t.Index)
				}
				sub, err := tg.extractCore(following, refDate, res, hemi, true)
				if err != nil {
					return nil, err
				}
				if sub != nil {
					following.consumeAll()
					extracted = sub.Value
					extractedSet = true
				}
			}
		} else {
			sub, err := tg.extractCore(following, refDate, calendar.Resolution{Unit: calendar.Second}, hemi, true)
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
				w := following.at(j).Lower()
				if deDateUnit(w) {
					unitIdx = j
					break
				}
				if _, ok := deMonths[w]; ok {
					unitIdx = j
					break
				}
				if _, ok := deWeekdays[w]; ok {
					unitIdx = j
					break
				}
				if _, ok := deNearDates[w]; ok {
					unitIdx = j
					break
				}
			}
			if unitIdx >= 0 {
				uw := strings.TrimRight(following.at(unitIdx).Lower(), "s")
				if !deDateUnit(uw) {
					if deMonths[following.at(unitIdx).Lower()] != 0 && haveAnchor &&
						!anchorDayNamed(following, anchorDate) {
						uw = "monat"
					} else {
						uw = "tag"
					}
				}
				relRes = deUnitResolution(uw)
				haveRes = true
			}

			if haveAnchor {
				refDate = anchorDate
			}

			if haveRes {
				switch relRes.Unit {
				case calendar.Day:
					extracted = refDate
					extractedSet = true
				case calendar.Week:
					if !isRelativePast {
						_, extracted = calendar.WeekRange(refDate)
					} else {
						extracted = refDate
					}
					extractedSet = true
				case calendar.Month:
					if !isRelativePast {
						_, extracted = calendar.MonthRange(refDate)
					} else {
						extracted = refDate
					}
					extractedSet = true
				case calendar.Year:
					if !isRelativePast {
						_, extracted = calendar.YearRange(refDate)
					} else {
						extracted = refDate
					}
					extractedSet = true
				case calendar.Decade:
					if !isRelativePast {
						_, extracted = calendar.DecadeRange(refDate)
					} else {
						extracted = refDate
					}
					extractedSet = true
				case calendar.Century:
					if !isRelativePast {
						_, extracted = calendar.CenturyRange(refDate)
					} else {
						extracted = refDate
					}
					extractedSet = true
				case calendar.Millennium:
					if !isRelativePast {
						_, extracted = calendar.MillenniumRange(refDate)
					} else {
						extracted = refDate
					}
					extractedSet = true
				default:
					if haveAnchor {
						extracted = refDate
						extractedSet = true
					}
				}
			} else if haveAnchor {
				extracted = refDate
				extractedSet = true
			}

			// "erinnere mich nach X" means the day after X, while
			// "3 Tage nach X" means X plus 3 days.
			if isRelativePast {
				if offset.IsZero() {
					offset = Duration{Days: -1}
				}
			} else if offset.IsZero() && extractedSet {
				if next, err := calendar.NextOf(extracted, res.Unit); err == nil {
					extracted = next
				}
			}
		}

		if extractedSet || !offset.IsZero() {
			haveDate = true
			if !extractedSet {
				extracted = refDate
			}
			extracted = offset.AddTo(extracted)
			if err := yearInRange(extracted); err != nil {
				return nil, err
			}
			v.consume(relIdx)
		}
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
			word := token.Lower()
			near := v.sub(i-3, i+3)

			// preformatted dates: 11.12.2018, 11/12/2018, 2018-12-11, 1.12.
			if sep := twiceSeparator(token.Word); sep != "" {
				parts := strings.Split(token.Word, sep)
				if len(parts) == 3 && parts[2] == "" {
					parts[2] = fmt.Sprintf("%d", refDate.Year())
				} else if len(parts) == 3 && isDigits(parts[2]) &&
					len(parts[2]) == 2 && len(parts[0]) != 4 {
					parts[2] = fmt.Sprintf("%d", deConvertYearAbr(atoi(parts[2]), refDate))
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

			if off, ok := deNearDates[word]; ok {
				// "morgen" is tomorrow unless preceded by "am"
				if word == "morgen" && prev.Lower() == "am" {
					continue
				}
				haveDate = true
				d := refDate.AddDate(0, 0, off)
				if !timeFound {
					d = zeroTime(d)
				}
				setScan(d)
				v.consume(i)
			} else if wd, ok := deWeekdays[strings.TrimRight(word, "s")]; ok {
				haveDate = true
				off := wd - pyWeekday(refDate)
				if deLast[prev.Lower()] {
					if off >= 0 {
						off -= 7
					}
					setScan(refDate.AddDate(0, 0, off))
					v.consume(i - 1)
				} else if prev.IsOrdinal {
					d, err := calendar.ResolveNthWeekday(tokInt(prev), goWeekday(wd), calendar.DayOfMonth, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
					v.consume(i - 1)
				} else {
					if off < -3 {
						off += 7
					}
					d := refDate.AddDate(0, 0, off)
					if deThis[prev.Lower()] {
						v.consume(i - 1)
					} else if deFutureMarkers[prev.Lower()] {
						v.consume(i - 1)
						// crossing into the new week means the weekday
						// of the week after
						if off < 0 {
							d = d.AddDate(0, 0, 7)
						}
					}
					setScan(d)
				}
				v.consume(i)
			} else if mo := deMonths[word]; mo != 0 {
				haveDate = true
				yearSet := 0
				work := withDate(refDate, refDate.Year(), time.Month(mo), 1)

				if next.IsDigit && res.Scope == calendar.EraBeforePresent {
					bp, err := calendar.ResolveOrdinal(tokInt(next), calendar.BeforePresentYear, work)
					if err != nil {
						return nil, err
					}
					yearSet = bp.Year()
					work = withDate(work, yearSet, work.Month(), work.Day())
					v.consume(i + 1)
				} else if next.IsDigit {
					if len(next.Word) == 2 {
						if tokInt(next) <= 50 {
							yearSet = 2000 + tokInt(next)
						} else {
							yearSet = 1900 + tokInt(next)
						}
					} else {
						yearSet = tokInt(next)
					}
					work = withDate(work, yearSet, work.Month(), work.Day())
					v.consume(i + 1)
				}

				if deLast[prev.Lower()] {
					if mo > int(refDate.Month()) {
						work = withDate(work, refDate.Year()-1, work.Month(), work.Day())
					}
					v.consume(i - 1)
				} else if deFutureMarkers[prev.Lower()] {
					if mo < int(refDate.Month()) {
						work = withDate(work, refDate.Year()+1, work.Month(), work.Day())
					}
					v.consume(i - 1)
				} else if (prev.IsOrdinal || prev.IsDigit) && tokInt(prev) > 0 && tokInt(prev) <= 31 {
					work = withDate(work, work.Year(), work.Month(), tokInt(prev))
					v.consume(i - 1)
					if yearSet != 0 {
						finalDate = true
					}
				}

				work = deNearBME(v, near, work, calendar.MonthRange)

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
			} else if deSeasonLiteral[word] && !haveScan {
				start, end := calendar.SeasonRange(refDate, hemi, false)
				if deLast[prev.Lower()] {
					start, end = calendar.SeasonRange(start.AddDate(0, 0, -1), hemi, false)
				} else if deFutureMarkers[prev.Lower()] {
					start, end = calendar.SeasonRange(end.AddDate(0, 0, 1), hemi, false)
				}
				d := deNearBME(v, near, start, func(t time.Time) (time.Time, time.Time) {
					return calendar.SeasonRange(t, hemi, false)
				})
				setScan(d)
				v.consume(i)
			} else if season, ok := deSeasons[strings.TrimRight(word, "s")]; ok && deSeasonMarkers[word] && !haveScan {
				haveDate = true
				year := refDate.Year()
				// before the March handover the ongoing winter (or
				// southern summer) started last year
				if (refDate.Month() < 3 || (refDate.Month() == 3 && refDate.Day() < 20)) &&
					refDate.Year() == nowLocal.Year() {
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
				} else if deLast[prev.Lower()] {
					setScan(calendar.LastSeason(season, refDate, hemi, false))
					v.consume(i - 1)
				} else if deFutureMarkers[prev.Lower()] {
					setScan(calendar.NextSeason(season, refDate, hemi, false))
					v.consume(i - 1)
				} else {
					setScan(calendar.SeasonStart(season, year, refDate.Location(), hemi, false))
					if deThis[prev.Lower()] {
						v.consume(i - 1)
					}
				}

				setScan(deNearBME(v, near, scanDate, func(t time.Time) (time.Time, time.Time) {
					return calendar.SeasonRange(t, hemi, false)
				}))

				// astronomical dates carry a clock
				if scanDate.Hour() != 0 {
					t := v.tok(i)
					t.IsDate = true
					t.IsTime = true
				}
				v.consume(i)
			} else if deDayLiteral[word] {
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
				case deThis[prev.Lower()]:
					setScan(refDate)
					v.consume(i - 1)
				case deLast[prev.Lower()]:
					setScan(refDate.AddDate(0, 0, -1))
					v.consume(i - 1)
				case deFutureMarkers[prev.Lower()]:
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
			} else if deWeekendLiteral[word] {
				wkRes := calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.OfMonth}
				if next.IsDigit {
					refDate = withDate(refDate, tokInt(next), refDate.Month(), refDate.Day())
					wkRes = calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.OfYear}
				}
				switch {
				case prev.IsOrdinal:
					haveDate = true
					v.consume(i - 1)
					if res.Scope == calendar.EraBeforePresent {
						wkRes = calendar.Resolution{Unit: calendar.Weekend, Scope: calendar.EraBeforePresent}
					}
					d, err := calendar.ResolveOrdinal(tokInt(prev), wkRes, refDate)
					if err != nil {
						return nil, err
					}
					setScan(d)
				case deThis[prev.Lower()]:
					haveDate = true
					start, _ := calendar.WeekendRange(refDate)
					setScan(start)
					v.consume(i - 1)
				case deFutureMarkers[prev.Lower()]:
					haveDate = true
					base := refDate
					if pyWeekday(base) >= 5 {
						base = base.AddDate(0, 0, 7)
					}
					start, _ := calendar.WeekendRange(base)
					setScan(start)
					v.consume(i - 1)
				case deLast[prev.Lower()]:
					haveDate = true
					start, _ := calendar.WeekendRange(refDate.AddDate(0, 0, -7))
					setScan(start)
					v.consume(i - 1)
				}
				v.consume(i)
			} else if deWeekLiteral[word] {
				wkSet := false
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
					wkSet = true
					v.consume(i - 1)
				}
				if deThis[prev.Lower()] {
					haveDate = true
					start, _ := calendar.WeekRange(refDate)
					setScan(start)
					wkSet = true
					v.consume(i - 1)
				} else if deLast[prev.Lower()] {
					haveDate = true
					start, _ := calendar.WeekRange(refDate.AddDate(0, 0, -7))
					setScan(start)
					wkSet = true
					v.consume(i - 1)
				} else if deFutureMarkers[prev.Lower()] {
					haveDate = true
					start, _ := calendar.WeekRange(refDate.AddDate(0, 0, 7))
					setScan(start)
					wkSet = true
					v.consume(i - 1)
				} else if next.IsDigit && tokInt(next) > 0 && tokInt(next) <= 53 {
					haveDate = true
					wk, err := calendar.ResolveOrdinal(tokInt(next), calendar.WeekOfYear, refDate)
					if err != nil {
						return nil, err
					}
					setScan(wk)
					wkSet = true
					v.consume(i + 1)
				}
				if wkSet {
					if wi := near.findAny(deWeekdayWords...); wi >= 0 {
						wd := deWeekdays[strings.TrimRight(near.at(wi).Lower(), "s")]
						setScan(scanDate.AddDate(0, 0, wd))
						v.consume(wi)
					} else {
						setScan(deNearBME(v, near, scanDate, calendar.WeekRange))
					}
				}
				v.consume(i)
			} else if deMonthLiteral[word] {
				haveDate = true
				var d time.Time
				if prev.IsOrdinal && tokInt(prev) > 0 && tokInt(prev) <= 12 {
					var err error
					if res.Scope == calendar.EraBeforePresent {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Month, Scope: calendar.EraBeforePresent}, refDate)
					} else {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.MonthOfYear, refDate)
					}
					if err != nil {
						return nil, err
					}
					v.consume(i - 1)
				} else if next.IsDigit && tokInt(next) > 0 && tokInt(next) <= 12 {
					var err error
					d, err = calendar.ResolveOrdinal(tokInt(next), calendar.MonthOfYear, refDate)
					if err != nil {
						return nil, err
					}
					v.consume(i + 1)
				} else if deFutureMarkers[prev.Lower()] {
					nm := refDate.AddDate(0, 0, daysInMonth)
					d = withDate(nm, nm.Year(), nm.Month(), 1)
					v.consume(i - 1)
				} else if deLast[prev.Lower()] {
					lm := refDate.AddDate(0, 0, -daysInMonth)
					d = withDate(lm, lm.Year(), lm.Month(), 1)
					v.consume(i - 1)
				} else {
					d = withDate(refDate, refDate.Year(), refDate.Month(), 1)
					if deThis[prev.Lower()] {
						v.consume(i - 1)
					}
				}
				d = deNearBME(v, near, d, calendar.MonthRange)
				setScan(d)
				v.consume(i)
			} else if deYearLiteral[word] {
				haveDate = true
				var yd time.Time
				switch {
				case deThis[prev.Lower()]:
					yd, _ = calendar.ResolveOrdinal(refDate.Year(), calendar.AbsoluteYear, refDate)
					v.consume(i - 1)
				case deLast[prev.Lower()]:
					yd, _ = calendar.ResolveOrdinal(refDate.Year()-1, calendar.AbsoluteYear, refDate)
					v.consume(i - 1)
				case deFutureMarkers[prev.Lower()]:
					yd, _ = calendar.ResolveOrdinal(refDate.Year()+1, calendar.AbsoluteYear, refDate)
					v.consume(i - 1)
				case prev.IsOrdinal:
					var err error
					if res.Scope == calendar.EraBeforePresent {
						yd, err = calendar.ResolveOrdinal(tokInt(prev), calendar.BeforePresentYear, refDate)
					} else {
						yd, err = calendar.ResolveOrdinal(tokInt(prev)-1, calendar.AbsoluteYear, refDate)
					}
					if err != nil {
						return nil, err
					}
					v.consume(i - 1)
				case next.IsDigit:
					var err error
					yd, err = calendar.ResolveOrdinal(tokInt(next), calendar.AbsoluteYear, refDate)
					if err != nil {
						return nil, err
					}
					v.consume(i + 1)
				default:
					yd = withDate(refDate, refDate.Year(), time.January, 1)
				}
				yd = deNearBME(v, near, yd, calendar.YearRange)
				if haveScan {
					setScan(withDate(scanDate, yd.Year(), scanDate.Month(), scanDate.Day()))
				} else {
					setScan(yd)
				}
				v.consume(i)
			} else if deDecadeLiteral[word] {
				decade := refDate.Year()/10 + 1
				dSet := false
				var d time.Time
				var err error
				switch {
				case deThis[prev.Lower()]:
					d, err = calendar.ResolveOrdinal(decade, calendar.Resolution{Unit: calendar.Decade}, refDate)
					dSet = true
					v.consume(i - 1)
				case deLast[prev.Lower()]:
					d, err = calendar.ResolveOrdinal(decade-1, calendar.Resolution{Unit: calendar.Decade}, refDate)
					dSet = true
					v.consume(i - 1)
				case deFutureMarkers[prev.Lower()]:
					d, err = calendar.ResolveOrdinal(decade+1, calendar.Resolution{Unit: calendar.Decade}, refDate)
					dSet = true
					v.consume(i - 1)
				case prev.IsOrdinal:
					if res.Scope == calendar.EraBeforePresent {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Decade, Scope: calendar.EraBeforePresent}, refDate)
					} else {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Decade}, refDate)
					}
					dSet = true
					v.consume(i - 1)
				}
				if err != nil {
					return nil, err
				}
				if dSet {
					haveDate = true
					setScan(deNearBME(v, near, d, calendar.DecadeRange))
				}
				v.consume(i)
			} else if deMillenniumLit[word] {
				mil := refDate.Year()/1000 + 1
				base := refDate
				if haveScan {
					base = scanDate
				}
				dSet := false
				var d time.Time
				var err error
				switch {
				case deThis[prev.Lower()]:
					d, err = calendar.ResolveOrdinal(mil, calendar.Resolution{Unit: calendar.Millennium}, refDate)
					dSet = true
					v.consume(i - 1)
				case deLast[prev.Lower()]:
					d, err = calendar.ResolveOrdinal(mil-1, calendar.Resolution{Unit: calendar.Millennium}, refDate)
					dSet = true
					v.consume(i - 1)
				case deFutureMarkers[prev.Lower()]:
					d, err = calendar.ResolveOrdinal(mil+1, calendar.Resolution{Unit: calendar.Millennium}, refDate)
					dSet = true
					v.consume(i - 1)
				case prev.IsOrdinal:
					if res.Scope == calendar.EraBeforePresent {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Millennium, Scope: calendar.EraBeforePresent}, base)
					} else {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Millennium}, base)
					}
					dSet = true
					v.consume(i - 1)
				}
				if err != nil {
					return nil, err
				}
				if dSet {
					haveDate = true
					setScan(deNearBME(v, near, d, calendar.MillenniumRange))
				}
				v.consume(i)
			} else if deCenturyLiteral[word] {
				century := refDate.Year()/100 + 1
				base := refDate
				if haveScan {
					base = scanDate
				}
				dSet := false
				var d time.Time
				var err error
				switch {
				case deThis[prev.Lower()]:
					d, err = calendar.ResolveOrdinal(century, calendar.Resolution{Unit: calendar.Century}, refDate)
					dSet = true
					v.consume(i - 1)
				case deLast[prev.Lower()]:
					d, err = calendar.ResolveOrdinal(century-1, calendar.Resolution{Unit: calendar.Century}, refDate)
					dSet = true
					v.consume(i - 1)
				case deFutureMarkers[prev.Lower()]:
					d, err = calendar.ResolveOrdinal(century+1, calendar.Resolution{Unit: calendar.Century}, refDate)
					dSet = true
					v.consume(i - 1)
				case prev.IsOrdinal:
					if res.Scope == calendar.EraBeforePresent {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Century, Scope: calendar.EraBeforePresent}, base)
					} else {
						d, err = calendar.ResolveOrdinal(tokInt(prev), calendar.Resolution{Unit: calendar.Century}, base)
					}
					dSet = true
					v.consume(i - 1)
				}
				if err != nil {
					return nil, err
				}
				if dSet {
					haveDate = true
					setScan(deNearBME(v, near, d, calendar.CenturyRange))
				}
				v.consume(i)
			} else if deSetQualifiers[word] && next.IsDigit {
				// "das Jahr ist 2021"
				if deDateUnit(prev.Lower()) {
					haveDate = true
					v.consume(i-1, i, i+1)
					base := refDate
					if haveScan {
						base = scanDate
					}
					var setRes calendar.Resolution
					switch {
					case deDayLiteral[prev.Lower()]:
						setRes = calendar.DayOfMonth
					case deMonthLiteral[prev.Lower()]:
						setRes = calendar.MonthOfYear
					case deYearLiteral[prev.Lower()]:
						setRes = calendar.AbsoluteYear
					case deDecadeLiteral[prev.Lower()]:
						setRes = calendar.Resolution{Unit: calendar.Decade}
					case deCenturyLiteral[prev.Lower()]:
						setRes = calendar.Resolution{Unit: calendar.Century}
					case deMillenniumLit[prev.Lower()]:
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
			} else if token.IsOrdinal && deDateMarkers[prev.Lower()] {
				// trailing day of month: "im Mai am 15."
				if day := tokInt(token); day >= 1 && day <= 31 {
					haveDate = true
					refDate = withDate(refDate, refDate.Year(), refDate.Month(), day)
					if haveScan {
						setScan(withDate(scanDate, scanDate.Year(), scanDate.Month(), day))
					} else {
						setScan(refDate)
					}
					v.consume(i, i-1)
				}
			} else if token.IsDigit && res.Scope == calendar.EraUnix {
				haveDate = true
				base := refDate
				if haveScan {
					base = scanDate
				}
				d, err := calendar.ResolveOrdinal(tokInt(token), calendar.UnixSecond, base)
				if err != nil {
					return nil, err
				}
				setScan(d)
				t := v.tok(i)
				t.IsTime = true
				t.IsDate = true
				finalDate = true
				v.consume(i)
			} else if token.IsNumeric && res.Scope == calendar.EraJulian {
				haveDate = true
				base := refDate
				if haveScan {
					base = scanDate
				}
				d, err := calendar.ResolveOrdinal(tokInt(token), calendar.JulianDay, base)
				if err != nil {
					return nil, err
				}
				setScan(d)
				t := v.tok(i)
				t.IsDate = true
				if !token.IsDigit {
					t.IsTime = true
				}
				finalDate = true
				v.consume(i)
			} else if token.IsDigit && res.Scope == calendar.EraRataDie {
				haveDate = true
				base := refDate
				if haveScan {
					base = scanDate
				}
				d, err := calendar.ResolveOrdinal(tokInt(token), calendar.RataDieDay, base)
				if err != nil {
					return nil, err
				}
				setScan(d)
				finalDate = true
				v.consume(i)
			} else if token.IsDigit && res.Scope == calendar.EraLilian {
				haveDate = true
				base := refDate
				if haveScan {
					base = scanDate
				}
				d, err := calendar.ResolveOrdinal(tokInt(token), calendar.LilianDay, base)
				if err != nil {
					return nil, err
				}
				setScan(d)
				finalDate = true
				v.consume(i)
			} else if namedEra != nil && token.IsDigit && tokenInSpan(next, namedEra.Tokens) {
				// "1992 nach Christus"
				haveDate = true
				year := refDate.Year() + tokInt(token) - 1
				setScan(withDate(refDate, year, refDate.Month(), refDate.Day()))
				v.consume(i)
			} else if strings.HasSuffix(word, "er") && isDigits(strings.TrimRight(word, "er")) {
				// "die 70er", "die 1870er"
				haveDate = true
				ystr := strings.TrimRight(word, "er")
				year := atoi(ystr)
				if len(ystr) == 2 {
					refCentury := (refDate.Year() / 100) * 100
					if refDate.Year()%100 > year {
						year = refCentury + year
					} else {
						year = refCentury - 100 + year
					}
				}
				setScan(withDate(refDate, year, refDate.Month(), refDate.Day()))
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
		if extracted.Year() == nowLocal.Year() &&
			extracted.YearDay() == nowLocal.YearDay() &&
			timeOfDay(extracted) < timeOfDay(nowLocal) &&
			v.findAny(deSameDayMarkers...) < 0 {
			extracted = extracted.AddDate(0, 0, 1)
		}
	}

	extracted = snapResolution(extracted, res)

	return &ReplaceableDatetime{Value: extracted, Tokens: v.tokens()}, nil
}
