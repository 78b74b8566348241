package numbers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/emphasize/ovos-classifiers/tokens"
)

// English parses spoken English numbers. Construct with NewEnglish; the
// value is immutable afterwards and may be shared between goroutines.
type English struct {
	articles       map[string]bool
	negatives      map[string]bool
	fractionMarker map[string]bool
	decimalMarker  map[string]bool
	sums           map[string]bool
	stringNum      map[string]float64

	shortScale      map[string]float64 // word -> value, incl. plurals
	longScale       map[string]float64
	shortMultiplies map[string]bool
	longMultiplies  map[string]bool
	shortOrdinals   map[string]float64
	longOrdinals    map[string]float64
	scaleValues     map[float64]bool // {100, 1000, 1e6, ...}
	spokenExtra     map[string]float64

	shortFractionNames map[float64]string // value -> "billionth"
	longFractionNames  map[float64]string
}

var numWordsEN = map[float64]string{
	0: "zero", 1: "one", 2: "two", 3: "three", 4: "four", 5: "five",
	6: "six", 7: "seven", 8: "eight", 9: "nine", 10: "ten",
	11: "eleven", 12: "twelve", 13: "thirteen", 14: "fourteen",
	15: "fifteen", 16: "sixteen", 17: "seventeen", 18: "eighteen",
	19: "nineteen", 20: "twenty", 30: "thirty", 40: "forty",
	50: "fifty", 60: "sixty", 70: "seventy", 80: "eighty", 90: "ninety",
}

var shortScaleEN = []struct {
	value float64
	word  string
}{
	{100, "hundred"}, {1e3, "thousand"}, {1e6, "million"},
	{1e9, "billion"}, {1e12, "trillion"}, {1e15, "quadrillion"},
	{1e18, "quintillion"}, {1e21, "sextillion"}, {1e24, "septillion"},
	{1e27, "octillion"}, {1e30, "nonillion"}, {1e33, "decillion"},
}

var longScaleEN = []struct {
	value float64
	word  string
}{
	{100, "hundred"}, {1e3, "thousand"}, {1e6, "million"},
	{1e12, "billion"}, {1e18, "trillion"}, {1e24, "quadrillion"},
	{1e30, "quintillion"}, {1e36, "sextillion"}, {1e42, "septillion"},
}

var ordinalBaseEN = map[float64]string{
	1: "first", 2: "second", 3: "third", 4: "fourth", 5: "fifth",
	6: "sixth", 7: "seventh", 8: "eighth", 9: "ninth", 10: "tenth",
	11: "eleventh", 12: "twelfth", 13: "thirteenth", 14: "fourteenth",
	15: "fifteenth", 16: "sixteenth", 17: "seventeenth",
	18: "eighteenth", 19: "nineteenth", 20: "twentieth",
	30: "thirtieth", 40: "fortieth", 50: "fiftieth", 60: "sixtieth",
	70: "seventieth", 80: "eightieth", 90: "ninetieth",
	1e2: "hundredth", 1e3: "thousandth",
}

// NewEnglish builds the English vocabulary tables.
func NewEnglish() *English {
	p := &English{
		articles:       set("a", "an", "the"),
		negatives:      set("negative", "minus"),
		fractionMarker: set("and"),
		decimalMarker:  set("point", "dot"),
		sums: set("twenty", "20", "thirty", "30", "forty", "40",
			"fifty", "50", "sixty", "60", "seventy", "70",
			"eighty", "80", "ninety", "90"),
		stringNum:          map[string]float64{},
		shortScale:         map[string]float64{},
		longScale:          map[string]float64{},
		shortMultiplies:    map[string]bool{},
		longMultiplies:     map[string]bool{},
		shortOrdinals:      map[string]float64{},
		longOrdinals:       map[string]float64{},
		scaleValues:        map[float64]bool{},
		spokenExtra:        map[string]float64{"half": 0.5, "halves": 0.5, "couple": 2},
		shortFractionNames: map[float64]string{},
		longFractionNames:  map[float64]string{},
	}
	for v, w := range numWordsEN {
		p.stringNum[w] = v
		p.stringNum[w+"s"] = v
	}
	for _, e := range shortScaleEN {
		p.shortScale[e.word] = e.value
		p.shortScale[e.word+"s"] = e.value
		p.shortMultiplies[e.word] = true
		p.shortMultiplies[e.word+"s"] = true
		p.scaleValues[e.value] = true
	}
	for _, e := range longScaleEN {
		p.longScale[e.word] = e.value
		p.longScale[e.word+"s"] = e.value
		p.longMultiplies[e.word] = true
		p.longMultiplies[e.word+"s"] = true
		p.scaleValues[e.value] = true
	}
	for v, w := range ordinalBaseEN {
		p.shortOrdinals[w] = v
		p.longOrdinals[w] = v
	}
	for _, e := range shortScaleEN {
		if e.value >= 1e6 {
			p.shortOrdinals[ordinalName(e.word)] = e.value
		}
	}
	for _, e := range longScaleEN {
		if e.value >= 1e6 {
			p.longOrdinals[ordinalName(e.word)] = e.value
		}
	}
	for w, v := range p.shortOrdinals {
		if v > 2 {
			p.shortFractionNames[v] = w
		}
	}
	for w, v := range p.longOrdinals {
		if v > 2 {
			p.longFractionNames[v] = w
		}
	}
	return p
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// ordinalName derives "millionth" from "million".
func ordinalName(scale string) string { return scale + "th" }

// Ordinalize renders a value as a digit ordinal ("1st", "22nd").
func (p *English) Ordinalize(v float64) string {
	n := int64(v)
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return fmt.Sprintf("%dth", n)
	case n%10 == 1:
		return fmt.Sprintf("%dst", n)
	case n%10 == 2:
		return fmt.Sprintf("%dnd", n)
	case n%10 == 3:
		return fmt.Sprintf("%drd", n)
	}
	return fmt.Sprintf("%dth", n)
}

// IsFractional reports the value of a spoken fraction word ("half",
// "third", "quarters"). The numerator decides whether the plural form
// is required: "two hundredths" is 2/100 while "two hundredth" is the
// 200th. A numerator of zero counts as one.
func (p *English) IsFractional(word string, numerator float64, shortScale bool) (float64, bool) {
	if numerator == 0 {
		numerator = 1
	}
	w := strings.ToLower(word)
	var fracts map[string]float64
	if numerator == 1 {
		fracts = map[string]float64{"whole": 1, "half": 2, "halve": 2, "quarter": 4}
	} else {
		fracts = map[string]float64{"whole": 1, "halves": 2, "quarters": 4}
	}
	names := p.shortFractionNames
	if !shortScale {
		names = p.longFractionNames
	}
	for v, name := range names {
		if numerator > 1 {
			name += "s"
		}
		fracts[name] = v
	}
	if d, ok := fracts[w]; ok && d != 0 {
		return 1 / d, true
	}
	return 0, false
}

// scan mode tables for one extraction call.
type enTables struct {
	multiplies map[string]bool
	ordinals   map[string]float64
	scale      map[string]float64
}

func (p *English) tables(opts Options) enTables {
	t := enTables{}
	if opts.ShortScale {
		t.multiplies = p.shortMultiplies
		t.ordinals = p.shortOrdinals
	} else {
		t.multiplies = p.longMultiplies
		t.ordinals = p.longOrdinals
	}
	base := p.shortScale
	if !opts.ShortScale {
		base = p.longScale
	}
	t.scale = make(map[string]float64, len(base)+len(p.spokenExtra))
	for w, v := range base {
		t.scale[w] = v
	}
	if opts.Ordinals != OrdinalsIgnore {
		for w, v := range p.spokenExtra {
			t.scale[w] = v
		}
	}
	return t
}

// ConvertWordsToNumbers rewrites every spoken number in the utterance
// into digit tokens and returns the stream.
func (p *English) ConvertWordsToNumbers(text string, opts Options) *tokens.Tokens {
	ts := tokens.New(text)
	p.ExtractNumbersTokens(ts, opts)
	return ts
}

// ExtractNumbers returns every number in the utterance in stream order.
// The stream the numbers were found on is discarded.
func (p *English) ExtractNumbers(text string, opts Options) []Number {
	return p.ExtractNumbersTokens(tokens.New(text), opts)
}

// ExtractNumbersTokens extracts all numbers from ts, rewriting it in
// place. Consumption marks are cleared before returning.
func (p *English) ExtractNumbersTokens(ts *tokens.Tokens, opts Options) []Number {
	var results []Number
	for {
		n, ok := p.extractOne(ts, opts)
		if !ok {
			break
		}
		results = append(results, n)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].StartIndex() < results[j].StartIndex()
	})
	ts.ResetConsumed()
	return results
}

// ExtractNumber returns the first number found, in the sense of the
// leftmost complete match. ok is false when the utterance holds none.
func (p *English) ExtractNumber(text string, opts Options) (Number, bool) {
	return p.ExtractNumberTokens(tokens.New(text), opts)
}

// ExtractNumberTokens extracts one number from ts, rewriting it.
func (p *English) ExtractNumberTokens(ts *tokens.Tokens, opts Options) (Number, bool) {
	return p.extractOne(ts, opts)
}

// ExtractOrdinals returns only the ordinal numbers of the utterance.
func (p *English) ExtractOrdinals(text string, shortScale bool) []Number {
	opts := Options{Ordinals: OrdinalsOn, Fractions: true, ShortScale: shortScale}
	all := p.ExtractNumbers(text, opts)
	var out []Number
	for _, n := range all {
		for _, t := range n.Tokens {
			if t.IsOrdinal {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// extractOne runs the scanner until it produces a value, replaces the
// covering words with a digit token and returns it.
func (p *English) extractOne(ts *tokens.Tokens, opts Options) (Number, bool) {
	var val float64
	var set bool
	var words []int
	for {
		val, set, words = p.scanNumber(ts, opts)
		if opts.Fractions || !set || isWholeValue(val) {
			break
		}
	}
	if !set || len(words) == 0 {
		return Number{}, false
	}
	sort.Ints(words)

	isOrdinal := false
	for _, i := range words {
		if ts.At(i).IsOrdinal {
			isOrdinal = true
			break
		}
	}
	replacement := formatValue(val)
	if isOrdinal {
		replacement = p.Ordinalize(val)
	}

	index := words[0]
	if replacement != ts.At(index).Word {
		index = ts.Replace(replacement, words[0], words[len(words)-1])
	}
	if isOrdinal {
		tok := ts.Tok(index)
		tok.IsOrdinal = true
		tok.Ordinal = val
	}
	ts.Tok(index).Consumed = true

	result := ts.At(index)
	result.Consumed = false
	return Number{Value: val, Tokens: []tokens.Token{result}}, true
}

// scanNumber walks the stream assembling one number. It mirrors the
// accumulator walk of the assistant heuristics: a working value, the
// previous value for sum/multiply decisions, a place-value list for
// long numbers, and a marker token for spoken decimals.
func (p *English) scanNumber(ts *tokens.Tokens, opts Options) (float64, bool, []int) {
	tbl := p.tables(opts)

	var words []int // candidate token indexes
	decimalIdx := -1
	var val, prevVal pyVal
	var toSum []float64

	popWord := func() {
		if len(words) > 0 {
			words = words[:len(words)-1]
		}
	}
	unconsume := func() {
		for _, i := range words {
			ts.Tok(i).Consumed = false
		}
	}

	n := ts.Len()
	for idx := 0; idx < n; idx++ {
		token := ts.At(idx)
		if token.Consumed {
			continue
		}
		var currentVal pyVal
		word := token.Lower()
		prevTok, nextTok := ts.At(idx-1), ts.At(idx+1)
		prevWord, nextWord := "", ""
		if !prevTok.Consumed {
			prevWord = prevTok.Lower()
		}
		if !nextTok.Consumed {
			nextWord = nextTok.Lower()
		}

		// Connector words collect but carry no value themselves.
		if p.articles[word] || p.negatives[word] ||
			p.fractionMarker[word] || p.decimalMarker[word] {
			if prevVal.truthy() && (p.fractionMarker[word] || p.decimalMarker[word]) {
				toSum = append(toSum, prevVal.v)
			}
			if p.decimalMarker[word] {
				decimalIdx = idx
			}
			words = append(words, idx)
			continue
		}

		// Digit ordinals: 1st, 2nd, 3rd, 21st ...
		if idxVal, ok := digitOrdinal(word); ok {
			tok := ts.Tok(idx)
			tok.IsOrdinal = true
			tok.Ordinal = idxVal
			token = *tok
			if nextWord == "one" {
				ts.Tok(idx + 1).Consumed = true
			}
			if opts.Ordinals == OrdinalsOn {
				word = word[:len(word)-2]
			}
		}

		_, isFracWord := p.IsFractional(word, 1, opts.ShortScale)
		_, isSlash := slashFraction(word)
		isNumberWord := hasKey(tbl.scale, word) || hasKey(p.stringNum, word) ||
			p.sums[word] || tbl.multiplies[word] || hasKey(tbl.ordinals, word) ||
			isNumericWord(word) || isFracWord || isSlash

		if !isNumberWord {
			unconsume()
			if len(words) > 0 && !onlyConnectors(ts, words, p.articles, p.negatives) {
				break
			}
			words = nil
			prevVal = pyVal{}
			val = pyVal{}
			continue
		}

		switch {
		case !tbl.multiplies[word] &&
			!hasKey(tbl.ordinals, word) && !token.IsOrdinal &&
			!tbl.multiplies[prevWord] && !p.sums[prevWord] &&
			!p.negatives[prevWord] && !p.articles[prevWord] &&
			!p.fractionMarker[prevWord] && decimalIdx < 0:
			// A fresh number starts here; drop earlier candidates.
			unconsume()
			words = []int{idx}
			prevVal = pyVal{}
			val = pyVal{}
		case p.sums[prevWord] && p.sums[word]:
			words = []int{idx}
		case opts.Ordinals == OrdinalsIgnore &&
			(hasKey(tbl.ordinals, word) || hasKey(p.spokenExtra, word)):
			continue
		default:
			words = append(words, idx)
		}

		// Value of the current word.
		switch {
		case isNumericWord(word):
			f, _ := strconv.ParseFloat(word, 64)
			val = pyVal{f, true}
			currentVal = val
		case hasKey(p.stringNum, word):
			val = pyVal{p.stringNum[word], true}
			currentVal = val
		case hasKey(tbl.scale, word):
			val = pyVal{tbl.scale[word], true}
			currentVal = val
		case hasKey(tbl.ordinals, word):
			// "{num} second" is the time unit, not an ordinal.
			if prevVal.truthy() && word == "second" && !p.sums[prevWord] {
				val = prevVal
				popWord()
				ts.Tok(idx).Consumed = true
				goto done
			}
			val = pyVal{tbl.ordinals[word], true}
			tok := ts.Tok(idx)
			tok.IsOrdinal = true
			tok.Ordinal = val.v
			token = *tok
			currentVal = val
		default:
			if f, ok := slashFraction(word); ok {
				val = pyVal{f, true}
				currentVal = val
			}
		}

		fraction, hasFraction := p.IsFractional(nextWord, valOr(val, 0), opts.ShortScale)

		// twenty two, fifty six
		if (p.sums[prevWord] && val.truthy() && val.v < 10) ||
			(tbl.multiplies[prevWord] && prevVal.truthy() && val.v < prevVal.v) {
			val = pyVal{prevVal.v + val.v, true}
		}

		// twenty hundred, six hundred, six hundredth
		if tbl.multiplies[word] ||
			(token.IsOrdinal && p.scaleValues[token.Ordinal]) {
			if !prevVal.truthy() {
				prevVal = pyVal{1, true}
			}
			val = pyVal{prevVal.v * val.v, true}
		} else if hasFraction && !p.sums[word] {
			// 2 fifths
			if !val.truthy() {
				val = pyVal{1, true}
			}
			val = pyVal{val.v * fraction, true}
			words = append(words, idx+1)
			ts.Tok(idx + 1).Consumed = true
			continue
		}

		// second one, third one, standalone ordinals
		if token.IsOrdinal {
			if (nextWord == "one" || nextWord == "1") &&
				!tbl.multiplies[strings.ToLower(ts.At(idx+2).Word)] {
				ts.Tok(idx + 1).Consumed = true
				words = append(words, idx+1)
			}
			if opts.Ordinals == OrdinalsOn {
				goto done
			}
			words = nil
			prevVal = pyVal{}
			val = pyVal{}
			continue
		}

		// half cup
		if !val.set && !hasKey(tbl.ordinals, word) {
			if f, ok := p.IsFractional(word, 1, opts.ShortScale); ok {
				val = pyVal{f, true}
				currentVal = val
			}
		}

		// minus seven
		if val.truthy() && p.negatives[prevWord] {
			val = pyVal{-val.v, true}
		}

		// spoken decimals: each word after the marker is one place
		if currentVal.set && decimalIdx >= 0 {
			if currentVal.v >= 10 {
				toSum = append(toSum, currentVal.v/pow10(digitCount(currentVal.v)))
			} else {
				toSum = append(toSum, currentVal.v/pow10(idx-decimalIdx))
			}
			val = pyVal{0, true}
		}

		// Backtrack: a sum candidate that cannot be summed ends the
		// number ("twenty twenty" is two numbers).
		if currentVal.set && p.sums[prevWord] && !p.sums[word] &&
			!tbl.multiplies[word] && currentVal.v >= 10 {
			popWord()
			val = prevVal
			goto done
		}
		prevVal = val

		if tbl.multiplies[word] && !tbl.multiplies[nextWord] {
			// Decide whether this completed place can be set aside.
			// Scan the rest of the stream: if every later scale word
			// is smaller than the current one, this portion of the
			// final number is finished ("nine million ... thousand").
			timeToSum := true
			for j := idx + 1; j < n; j++ {
				ow := strings.ToLower(ts.At(j).Word)
				if tbl.multiplies[ow] {
					if tbl.scale[ow] >= currentVal.v {
						timeToSum = false
						break
					}
				}
			}
			if timeToSum {
				toSum = append(toSum, val.v)
				val = pyVal{0, true}
				prevVal = pyVal{0, true}
			}
		}
	}

done:
	for _, s := range toSum {
		val = pyVal{valOr(val, 0) + s, true}
	}

	// Drop leading articles and markers from the covering words.
	for len(words) > 0 {
		w := strings.ToLower(ts.At(words[0]).Word)
		if p.articles[w] || p.fractionMarker[w] {
			words = words[1:]
			continue
		}
		break
	}
	for _, i := range words {
		ts.Tok(i).Consumed = true
	}
	sort.Ints(words)
	return val.v, val.set, words
}

// pyVal is a nullable float with the truthiness the scanner decisions
// are written against: unset and zero are both falsy, but only unset
// means "no number seen yet".
type pyVal struct {
	v   float64
	set bool
}

func (p pyVal) truthy() bool { return p.set && p.v != 0 }

func valOr(p pyVal, def float64) float64 {
	if p.set {
		return p.v
	}
	return def
}

func hasKey[V any](m map[string]V, k string) bool {
	_, ok := m[k]
	return ok
}

func pow10(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// digitOrdinal parses "1st", "2nd", "3rd", "4th" style words.
func digitOrdinal(word string) (float64, bool) {
	if len(word) < 3 {
		return 0, false
	}
	suffix := word[len(word)-2:]
	switch suffix {
	case "st", "nd", "rd", "th":
	default:
		return 0, false
	}
	digits := word[:len(word)-2]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

// onlyConnectors reports whether every candidate word is an article or
// negative, in which case the scan may reset instead of ending.
func onlyConnectors(ts *tokens.Tokens, words []int, sets ...map[string]bool) bool {
	for _, i := range words {
		w := strings.ToLower(ts.At(i).Word)
		found := false
		for _, s := range sets {
			if s[w] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
