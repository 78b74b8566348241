package datetime

import (
	"strings"
	"time"

	"github.com/emphasize/ovos-classifiers/calendar"
	"github.com/emphasize/ovos-classifiers/data"
	"github.com/emphasize/ovos-classifiers/tokens"
)

// easterSunday computes Gregorian Easter with the anonymous computus.
func easterSunday(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

func mod7(n int) int { return ((n % 7) + 7) % 7 }

// worldDates lists the widely observed dates of one calendar year.
func worldDates(year int, loc *time.Location, hemi calendar.Hemisphere) map[string]time.Time {
	day := func(mo time.Month, d int) time.Time {
		return time.Date(year, mo, d, 0, 0, 0, 0, loc)
	}
	season := func(s calendar.Season) time.Time {
		return zeroTime(calendar.NextSeason(s, day(time.January, 1), hemi, false))
	}
	easter := easterSunday(year, loc)
	christmas := day(time.December, 25)
	feb1 := day(time.February, 1)
	may1 := day(time.May, 1)
	aug1 := day(time.August, 1)
	nov1 := day(time.November, 1)

	return map[string]time.Time{
		"New Year's Day":               day(time.January, 1),
		"Epiphany":                     day(time.January, 6),
		"Chinese New Year":             feb1.AddDate(0, 0, mod7(11-pyWeekday(feb1))),
		"Valentine's Day":              day(time.February, 14),
		"St. Patrick's Day":            day(time.March, 17),
		"Meteorological Spring":        day(time.March, 1),
		"Vernal Equinox":               season(calendar.Spring),
		"April Fool's Day":             day(time.April, 1),
		"Palm Sunday":                  easter.AddDate(0, 0, -7),
		"Maundy Thursday":              easter.AddDate(0, 0, -3),
		"Good Friday":                  easter.AddDate(0, 0, -2),
		"Holy Saturday":                easter.AddDate(0, 0, -1),
		"Easter Sunday":                easter,
		"Easter Monday":                easter.AddDate(0, 0, 1),
		"Fat Tuesday":                  easter.AddDate(0, 0, -47),
		"Ash Wednesday":                easter.AddDate(0, 0, -46),
		"Mother's Day":                 may1.AddDate(0, 0, 7+6-pyWeekday(may1)),
		"Ascension Day":                easter.AddDate(0, 0, 39),
		"Pentecost":                    easter.AddDate(0, 0, 49),
		"Whit Monday":                  easter.AddDate(0, 0, 50),
		"Trinity Sunday":               easter.AddDate(0, 0, 56),
		"Corpus Christi":               easter.AddDate(0, 0, 60),
		"Meteorological Summer":        day(time.June, 1),
		"Summer Solstice":              season(calendar.Summer),
		"Peter and Paul":               day(time.June, 29),
		"Assumption of Mary":           day(time.August, 15),
		"Canada Day":                   day(time.July, 1),
		"American Independence Day":    day(time.July, 4),
		"Bastille Day":                 day(time.July, 14),
		"International Friendship Day": day(time.July, 30),
		"International Youth Day":      day(time.August, 12),
		"International Day of Peace":   day(time.September, 21),
		"Meteorological Autumn":        day(time.September, 1),
		"Autumnal Equinox":             season(calendar.Fall),
		"German Unity Day":             day(time.October, 3),
		"Halloween":                    day(time.October, 31),
		"All Saints' Day":              day(time.November, 1),
		"All Souls' Day":               day(time.November, 2),
		"Hanukkah":                     nov1.AddDate(0, 0, mod7(2-pyWeekday(nov1))),
		"St. Nicholas Day":             day(time.December, 6),
		"1st Advent":                   christmas.AddDate(0, 0, -(pyWeekday(christmas) + 22)),
		"2nd Advent":                   christmas.AddDate(0, 0, -(pyWeekday(christmas) + 15)),
		"3rd Advent":                   christmas.AddDate(0, 0, -(pyWeekday(christmas) + 8)),
		"4th Advent":                   christmas.AddDate(0, 0, -(pyWeekday(christmas) + 1)),
		"Meteorological Winter":        day(time.December, 1),
		"Winter Solstice":              season(calendar.Winter),
		"Christmas Eve":                day(time.December, 24),
		"Christmas Day":                christmas,
		"Boxing Day":                   day(time.December, 26),
		"Kwanzaa":                      day(time.December, 26),
		"New Year's Eve":               day(time.December, 31),
		"World Women's Day":            day(time.March, 8),
		"World Health Day":             day(time.April, 7),
		"World Earth Day":              day(time.April, 22),
		"World Fair Trade Day":         may1.AddDate(0, 0, 7+6-pyWeekday(may1)),
		"World No Tobacco Day":         day(time.May, 31),
		"World Children's Day":         day(time.June, 1),
		"World Oceans Day":             day(time.June, 8),
		"World Blood Donation Day":     day(time.June, 14),
		"World Population Day":         day(time.July, 11),
		"World Youth Skills Day":       day(time.July, 15),
		"World Hepatitis Day":          day(time.July, 28),
		"World Breastfeeding Week":     aug1.AddDate(0, 0, 7+6-pyWeekday(aug1)),
		"World Humanitarian Day":       day(time.August, 19),
		"World Alzheimer's Day":        day(time.September, 21),
		"World Tourism Day":            day(time.September, 27),
		"World Vegetarian Day":         day(time.October, 1),
		"World Animal Day":             day(time.October, 4),
		"World Mental Health Day":      day(time.October, 10),
		"World Food Day":               day(time.October, 16),
		"World Osteoporosis Day":       day(time.October, 20),
		"World Television Day":         day(time.November, 21),
		"World AIDS Day":               day(time.December, 1),
		"World Soil Day":               day(time.December, 5),
		"World Human Rights Day":       day(time.December, 10),
	}
}

// namedDatesFor collects named dates falling within one year of ref,
// merging locale specific extras over the world table.
func namedDatesFor(ref time.Time, hemi calendar.Hemisphere, extra map[string]time.Time) map[string]time.Time {
	years := []int{ref.Year()}
	if ref.Month() != time.January || ref.Day() != 1 {
		years = append(years, ref.Year()+1)
	}
	start := zeroTime(ref)
	end := zeroTime(ref.AddDate(1, 0, 0).Add(-time.Minute))

	named := make(map[string]time.Time)
	for name, d := range extra {
		named[name] = d
	}
	for _, year := range years {
		for name, d := range worldDates(year, ref.Location(), hemi) {
			if !d.Before(start) && !d.After(end) {
				named[name] = d
			}
		}
	}
	return named
}

// localNamedDates lists observances specific to the English locale that
// fall within one year of ref.
func (tg *EnglishTagger) localNamedDates(ref time.Time) map[string]time.Time {
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
		nov1 := day(time.November, 1)
		jun1 := day(time.June, 1)
		dates := map[string]time.Time{
			"Labour Day":       day(time.September, 1),
			"Columbus Day":     day(time.October, 1),
			"Veterans Day":     day(time.November, 11),
			"Thanksgiving Day": nov1.AddDate(0, 0, 21+3-pyWeekday(nov1)),
			"Father's Day":     jun1.AddDate(0, 0, 14+6-pyWeekday(jun1)),
		}
		for name, d := range dates {
			if !d.Before(start) && !d.After(end) {
				named[name] = d
			}
		}
	}
	return named
}

// NamedDate returns the name of a date when it is a known observance in
// the year starting at that date.
func (tg *EnglishTagger) NamedDate(d time.Time) (string, bool) {
	ref := zeroTime(d)
	named := namedDatesFor(ref, calendar.NorthernHemisphere, tg.localNamedDates(ref))
	for name, nd := range named {
		if nd.Equal(ref) {
			return name, true
		}
	}
	return "", false
}

// matchPhrase locates the synonym as a token sequence inside the window.
// Both sides pass through the tokenizer so punctuation quirks line up.
// With allowPluralTail the last word also matches with a trailing "s".
func matchPhrase(v view, phrase string, allowPluralTail bool) (start, end int, ok bool) {
	want := tokens.New(strings.ToLower(phrase)).Words()
	if len(want) == 0 {
		return 0, 0, false
	}
	for i := v.lo; i+len(want) <= v.hi; i++ {
		match := true
		for j, w := range want {
			got := v.at(i + j).Lower()
			if got == w {
				continue
			}
			if allowPluralTail && j == len(want)-1 && got == w+"s" {
				continue
			}
			match = false
			break
		}
		if match {
			return i, i + len(want) - 1, true
		}
	}
	return 0, 0, false
}

// ExtractNamedDates returns the named dates spoken in the utterance,
// resolved to their occurrence in the year starting at the anchor.
func (tg *EnglishTagger) ExtractNamedDates(text string, anchor time.Time) []ReplaceableDate {
	anchor = resolveAnchor(anchor)
	v := newView(tokens.New(text))
	tg.tagDurationsView(v)
	return tg.extractNamedDatesView(v, anchor)
}

func (tg *EnglishTagger) extractNamedDatesView(v view, refDate time.Time) []ReplaceableDate {
	var extracted []ReplaceableDate
	var namedIdx []int

	upcoming := wordSet("next", "upcoming")
	last := wordSet("last", "previous", "past")
	this := wordSet("this", "current")

	// an explicit year moves the whole one-year window
	if yi := v.findAny("year", "years"); yi >= 0 {
		yearTok := v.at(yi)
		next := v.at(yi + 1)
		prev := v.at(yi - 1)
		prevPrev := v.at(yi - 2)
		year := 0
		haveYear := false
		switch {
		case yearTok.IsDuration && prev.IsDigit && prevPrev.Lower() == "before":
			year = refDate.Year() - tokInt(prev)
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1, yi-2)
		case yearTok.IsDuration && prev.IsDigit && prevPrev.Lower() == "in":
			year = refDate.Year() + tokInt(prev)
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1, yi-2)
		case yearTok.IsDuration && prev.IsDigit &&
			(next.Lower() == "before" || next.Lower() == "ago"):
			year = refDate.Year() - tokInt(prev)
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1, yi+1)
		case next.IsDigit:
			if tokInt(next) < 100 {
				year = (refDate.Year()/100)*100 + tokInt(next)
			} else {
				year = tokInt(next)
			}
			haveYear = true
			namedIdx = append(namedIdx, yi, yi+1)
		case last[prev.Lower()]:
			year = refDate.Year() - 1
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1)
		case upcoming[prev.Lower()]:
			year = refDate.Year() + 1
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1)
		case this[prev.Lower()]:
			year = refDate.Year()
			haveYear = true
			namedIdx = append(namedIdx, yi, yi-1)
		}
		if haveYear {
			refDate = time.Date(year, 1, 1, 0, 0, 0, 0, refDate.Location())
		}
	}

	for _, nd := range data.NamedDates() {
		for _, synonym := range nd.Synonyms {
			start, end, ok := matchPhrase(v, synonym, false)
			if !ok {
				continue
			}
			for i := start; i <= end; i++ {
				namedIdx = append(namedIdx, i)
			}
			prev := v.at(start - 1)
			next := v.at(end + 1)
			if last[prev.Lower()] {
				refDate = refDate.AddDate(-1, 0, 0)
			} else if this[prev.Lower()] {
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

// matchNamedEra finds a spoken calendar era. The returned date is the
// era's Gregorian reference point; eras that count in plain numbers
// (unix seconds, julian and lilian days) also switch the resolution
// used for bare numbers.
func matchNamedEra(v view) (*ReplaceableDate, calendar.Resolution) {
	return matchEra(v, func(e data.Era) []string { return e.Synonyms })
}

// matchEra is the language independent part of era matching; synonyms
// selects the locale's synonym list.
func matchEra(v view, synonyms func(data.Era) []string) (*ReplaceableDate, calendar.Resolution) {
	for _, era := range data.Eras() {
		for _, syn := range synonyms(era) {
			start, end, ok := matchPhrase(v, syn, true)
			if !ok {
				continue
			}
			span := make([]tokens.Token, 0, end-start+1)
			for i := start; i <= end; i++ {
				v.tok(i).Consumed = true
				span = append(span, v.at(i))
			}
			var res calendar.Resolution
			switch era.Name {
			case "UNIX":
				res = calendar.UnixSecond
			case "LILIAN":
				res = calendar.LilianDay
			case "JULIAN":
				res = calendar.JulianDay
			case "RATADIE":
				res = calendar.RataDieDay
			}
			return &ReplaceableDate{Value: era.EpochDate(), Tokens: span}, res
		}
	}
	return nil, calendar.Resolution{}
}
