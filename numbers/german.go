package numbers

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/emphasize/ovos-classifiers/tokens"
)

// German parses spoken German numbers, including the concatenated
// forms ("einundneunzig", "dreihundertundfünfzig") and compound
// fractions ("neuneinhalb"). German counts in the long scale, so
// "billion" is 1e12. Construct with NewGerman; the value is immutable
// afterwards and safe for concurrent use.
type German struct {
	indefArticles map[string]bool
	multiplier    map[string]bool
	negatives     map[string]bool
	connectors    map[string]bool
	commas        map[string]bool

	stringNum      map[string]float64
	stringNumOrder []string // table order, used for suffix matching
	stringNumByLen []string // longest first, used for prefix matching

	longScale map[string]float64

	stringFraction map[string]float64
	fractionByLen  []string

	ordinals     map[string]float64
	ordinalOrder []string
}

var numWordsDE = []struct {
	value float64
	word  string
}{
	{0, "null"}, {1, "eins"}, {2, "zwei"}, {3, "drei"}, {4, "vier"},
	{5, "fünf"}, {6, "sechs"}, {7, "sieben"}, {8, "acht"}, {9, "neun"},
	{10, "zehn"}, {11, "elf"}, {12, "zwölf"}, {13, "dreizehn"},
	{14, "vierzehn"}, {15, "fünfzehn"}, {16, "sechzehn"},
	{17, "siebzehn"}, {18, "achtzehn"}, {19, "neunzehn"},
	{20, "zwanzig"}, {30, "dreißig"}, {40, "vierzig"}, {50, "fünfzig"},
	{60, "sechzig"}, {70, "siebzig"}, {80, "achtzig"}, {90, "neunzig"},
	{100, "hundert"}, {1000, "tausend"}, {1e6, "million"},
	{1, "ein"}, {1, "eine"}, {1, "einer"}, {1, "einem"}, {1, "einen"},
}

var longScaleDE = []struct {
	value float64
	word  string
}{
	{100, "hundert"}, {1e3, "tausend"}, {1e6, "million"},
	{1e9, "milliarde"}, {1e12, "billion"}, {1e15, "billiarde"},
	{1e18, "trillion"}, {1e21, "trilliarde"}, {1e24, "quadrillion"},
	{1e27, "quadrilliarde"},
}

var fractionWordsDE = []struct {
	denominator float64
	word        string
}{
	{2, "halb"}, {3, "drittel"}, {4, "viertel"}, {5, "fünftel"},
	{6, "sechstel"}, {7, "siebtel"}, {8, "achtel"}, {9, "neuntel"},
	{10, "zehntel"}, {11, "elftel"}, {12, "zwölftel"},
	{13, "dreizehntel"}, {14, "vierzehntel"}, {15, "fünfzehntel"},
	{16, "sechzehntel"}, {17, "siebzehntel"}, {18, "achtzehntel"},
	{19, "neunzehntel"}, {20, "zwanzigstel"}, {30, "dreißigstel"},
	{40, "vierzigstel"}, {50, "fünfzigstel"}, {60, "sechzigstel"},
	{70, "siebzigstel"}, {80, "achtzigstel"}, {90, "neunzigstel"},
	{100, "hundertstel"}, {1000, "tausendstel"}, {1e6, "millionstel"},
}

// Ordinal stems; the spoken forms append a declension ending
// ("erste", "erstem", "zwanzigsten", ...).
var ordinalStemsDE = []struct {
	value float64
	stem  string
}{
	{1e6, "millionst"}, {1e9, "milliardst"}, {1e12, "billionst"},
	{1e15, "billiardst"}, {1e18, "trillionst"}, {1e21, "trilliardst"},
	{1e24, "quadrillionst"}, {1e27, "quadrilliardst"},
	{1, "erst"}, {2, "zweit"}, {3, "dritt"}, {4, "viert"},
	{5, "fünft"}, {6, "sechst"}, {7, "siebt"}, {8, "acht"},
	{9, "neunt"}, {10, "zehnt"}, {11, "elft"}, {12, "zwölft"},
	{13, "dreizehnt"}, {14, "vierzehnt"}, {15, "fünfzehnt"},
	{16, "sechzehnt"}, {17, "siebzehnt"}, {18, "achtzehnt"},
	{19, "neunzehnt"}, {20, "zwanzigst"}, {21, "einundzwanzigst"},
	{22, "zweiundzwanzigst"}, {23, "dreiundzwanzigst"},
	{24, "vierundzwanzigst"}, {25, "fünfundzwanzigst"},
	{26, "sechsundzwanzigst"}, {27, "siebenundzwanzigst"},
	{28, "achtundzwanzigst"}, {29, "neunundzwanzigst"},
	{30, "dreißigst"}, {31, "einunddreißigst"}, {40, "vierzigst"},
	{50, "fünfzigst"}, {60, "sechzigst"}, {70, "siebzigst"},
	{80, "achtzigst"}, {90, "neunzigst"}, {100, "hundertst"},
	{1000, "tausendst"}, {1e6, "millionst"},
}

var ordinalEndingsDE = []string{"en", "em", "es", "er", "e"}

// NewGerman builds the German vocabulary tables.
func NewGerman() *German {
	p := &German{
		indefArticles:  set("ein", "eine", "einer", "einem", "einen"),
		multiplier:     map[string]bool{},
		negatives:      set("minus"),
		connectors:     set("und"),
		commas:         set("komma", "comma", "punkt"),
		stringNum:      map[string]float64{},
		longScale:      map[string]float64{},
		stringFraction: map[string]float64{},
		ordinals:       map[string]float64{},
	}
	for _, e := range numWordsDE {
		p.stringNum[e.word] = e.value
		p.stringNumOrder = append(p.stringNumOrder, e.word)
	}
	p.stringNumByLen = append(p.stringNumByLen, p.stringNumOrder...)
	sort.SliceStable(p.stringNumByLen, func(i, j int) bool {
		return len(p.stringNumByLen[i]) > len(p.stringNumByLen[j])
	})

	ordinalSuffixes := []string{"sten", "stem", "stes", "ster", "ste"}
	for _, e := range longScaleDE {
		p.longScale[e.word] = e.value
		p.multiplier[e.word] = true
		if e.value > 1000 {
			// declined plural: millionen, milliarden, ...
			name := e.word + "en"
			if strings.HasSuffix(e.word, "e") {
				name = e.word + "n"
			}
			p.multiplier[name] = true
			p.longScale[name] = e.value
			stem := strings.TrimSuffix(e.word, "e")
			for _, s := range ordinalSuffixes {
				p.multiplier[stem+s] = true
			}
		} else {
			for _, s := range []string{"e", "en"} {
				p.longScale[e.word+s] = e.value
			}
			for _, s := range ordinalSuffixes {
				p.multiplier[e.word+s] = true
			}
		}
	}

	for _, e := range fractionWordsDE {
		p.stringFraction[e.word] = e.denominator
	}
	for _, w := range []string{"halbe", "halben", "halbes", "halber", "halbem", "hälfte", "hälften"} {
		p.stringFraction[w] = 2
	}
	for w := range p.stringFraction {
		p.fractionByLen = append(p.fractionByLen, w)
	}
	sort.Slice(p.fractionByLen, func(i, j int) bool {
		a, b := p.fractionByLen[i], p.fractionByLen[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	for _, e := range ordinalStemsDE {
		for _, end := range ordinalEndingsDE {
			w := e.stem + end
			if _, ok := p.ordinals[w]; !ok {
				p.ordinals[w] = e.value
				p.ordinalOrder = append(p.ordinalOrder, w)
			}
		}
	}
	return p
}

// Ordinalize renders a value in digit ordinal form ("3.").
func (p *German) Ordinalize(v float64) string {
	return fmt.Sprintf("%d.", int64(v))
}

// OrdinalIndex resolves a German ordinal word or a digit-dot ordinal
// ("8.") to its value, including concatenated forms such as
// "einundneunzigste".
func (p *German) OrdinalIndex(word string) (float64, bool) {
	w := strings.ToLower(word)
	if v, ok := p.ordinals[w]; ok && v != 0 {
		return v, true
	}
	if strings.HasSuffix(w, ".") && allDigits(w[:len(w)-1]) {
		n, err := strconv.ParseInt(w[:len(w)-1], 10, 64)
		if err == nil {
			return float64(n), true
		}
	}
	return p.concatNumber(w, p.ordinals, p.ordinalOrder)
}

// IsOrdinal reports whether the word is a German ordinal.
func (p *German) IsOrdinal(word string) bool {
	v, ok := p.OrdinalIndex(word)
	return ok && v != 0
}

// IsNumber resolves a word to its numeric value: digits, number words,
// scale words or concatenated number words.
func (p *German) IsNumber(word string) (float64, bool) {
	w := strings.ReplaceAll(strings.ToLower(word), ",", ".")
	if !strings.HasSuffix(w, ".") {
		if f, err := strconv.ParseFloat(w, 64); err == nil {
			return f, true
		}
	}
	if v, ok := p.stringNum[w]; ok {
		return v, true
	}
	if v, ok := p.longScale[w]; ok {
		return v, true
	}
	return p.concatNumber(w, p.stringNum, p.stringNumOrder)
}

// IsFractional resolves fraction words, including compounds carrying
// their own numerator ("zweidrittel" = 2/3) or a whole-number prefix
// ("eineinhalb" = 1.5), and slash fractions ("2/3").
func (p *German) IsFractional(word string) (float64, bool) {
	w := strings.ToLower(word)
	numerator := 1.0
	prevNumber := 0.0
	denominator := 0.0

	if f, ok := slashFraction(w); ok {
		return f, f != 0
	}

	remainder := ""
	for _, frac := range p.fractionByLen {
		if strings.Contains(w, frac) {
			denominator = p.stringFraction[frac]
			remainder = strings.ReplaceAll(w, frac, "")
			break
		}
	}
	if denominator == 0 {
		return 0, false
	}
	if remainder != "" {
		if n, ok := p.stringNum[remainder]; ok && n != 0 {
			numerator = n
		} else {
			// eineindrittel: numerator plus a leading whole number
			found := false
			for _, numWord := range p.stringNumByLen {
				if strings.HasSuffix(remainder, numWord) {
					numerator = p.stringNum[numWord]
					prevNumber = p.stringNum[strings.Replace(remainder, numWord, "", 1)]
					found = true
					break
				}
			}
			if !found {
				return 0, false
			}
		}
	}
	v := prevNumber + numerator/denominator
	return v, v != 0
}

// concatNumber decomposes a concatenated number word. The last number
// word is split off first; the rest is consumed greedily from the
// front, multiplying on "hundert" and "tausend".
func (p *German) concatNumber(word string, dict map[string]float64, order []string) (float64, bool) {
	ending := ""
	for _, k := range order {
		if strings.HasSuffix(word, k) {
			ending = k
			break
		}
	}
	if ending == "" {
		return 0, false
	}
	endingNum := dict[ending]
	word = word[:len(word)-len(ending)]

	var nums []float64
	multiplier := false
	for word != "" {
		matched := false
		for _, numWord := range p.stringNumByLen {
			if strings.HasPrefix(word, numWord) {
				n := p.stringNum[numWord]
				word = word[len(numWord):]
				switch {
				case len(nums) > 0 && (n == 100 || n == 1000) && n > nums[len(nums)-1]:
					nums[len(nums)-1] *= n
					multiplier = n != 1000
				case multiplier:
					nums[len(nums)-1] += n
					if !strings.HasPrefix(word, "und") {
						multiplier = false
					}
				default:
					nums = append(nums, n)
				}
				if strings.HasPrefix(word, "und") {
					word = word[3:]
				}
				matched = true
				break
			}
		}
		if !matched {
			return 0, false
		}
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	if endingNum == 100 || endingNum == 1000 {
		return sum * endingNum, true
	}
	return sum + endingNum, true
}

// ConvertWordsToNumbers rewrites every spoken number in the utterance
// into digit tokens and returns the stream. Spoken clock times such as
// "halb acht" are rewritten to "7:30" on the way.
func (p *German) ConvertWordsToNumbers(text string, opts Options) *tokens.Tokens {
	ts := tokens.New(text)
	p.ExtractNumbersTokens(ts, opts)
	return ts
}

// ExtractNumbers returns every number in the utterance in stream order.
func (p *German) ExtractNumbers(text string, opts Options) []Number {
	return p.ExtractNumbersTokens(tokens.New(text), opts)
}

// ExtractNumbersTokens extracts all numbers from ts, rewriting it in
// place. Consumption marks are cleared before returning.
func (p *German) ExtractNumbersTokens(ts *tokens.Tokens, opts Options) []Number {
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

// ExtractNumber returns the first number found in the utterance.
func (p *German) ExtractNumber(text string, opts Options) (Number, bool) {
	return p.ExtractNumberTokens(tokens.New(text), opts)
}

// ExtractNumberTokens extracts one number from ts, rewriting it.
func (p *German) ExtractNumberTokens(ts *tokens.Tokens, opts Options) (Number, bool) {
	return p.extractOne(ts, opts)
}

func (p *German) extractOne(ts *tokens.Tokens, opts Options) (Number, bool) {
	var val pyVal
	var words []int
	for {
		var restart bool
		val, words, restart = p.scanNumber(ts, opts)
		if restart {
			continue
		}
		if opts.Fractions || !val.set || isWholeValue(val.v) {
			break
		}
	}
	if !val.set || len(words) == 0 {
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
	replacement := formatValue(val.v)
	if isOrdinal {
		replacement = p.Ordinalize(val.v)
	}

	index := words[0]
	if replacement != ts.At(index).Word {
		index = ts.Replace(replacement, words[0], words[len(words)-1])
	}
	if isOrdinal {
		tok := ts.Tok(index)
		tok.IsOrdinal = true
		tok.Ordinal = val.v
	}
	ts.Tok(index).Consumed = true

	result := ts.At(index)
	result.Consumed = false
	return Number{Value: val.v, Tokens: []tokens.Token{result}}, true
}

// scanNumber walks the stream assembling one number. restart is true
// when a spoken clock time or a "9.00 Uhr" form was rewritten in
// place, in which case the stream must be scanned again.
func (p *German) scanNumber(ts *tokens.Tokens, opts Options) (val pyVal, words []int, restart bool) {
	var cur pyVal
	commaIdx := -1
	var toSum []float64

	consume := func() {
		for _, i := range words {
			ts.Tok(i).Consumed = true
		}
		sort.Ints(words)
	}

	n := ts.Len()
	for idx := 0; idx < n; idx++ {
		token := ts.At(idx)
		if token.Consumed {
			continue
		}
		prevVal := cur
		cur = pyVal{}

		word := token.Lower()
		prevTok, nextTok := ts.At(idx-1), ts.At(idx+1)
		prevWord, nextWord := "", ""
		if !prevTok.Consumed {
			prevWord = prevTok.Lower()
		}
		if !nextTok.Consumed {
			nextWord = nextTok.Lower()
		}

		if p.IsOrdinal(word) {
			num, _ := p.OrdinalIndex(word)
			tok := ts.Tok(idx)
			tok.IsOrdinal = true
			tok.Ordinal = num
			if prevVal.set && p.multiplier[word] {
				num *= prevVal.v
				val = pyVal{}
			}
			if opts.Ordinals == OrdinalsOn {
				words = append(words, idx)
				for _, s := range toSum {
					num += s
				}
				consume()
				return pyVal{num, true}, words, false
			}
			continue
		}

		if p.connectors[word] && len(words) == 0 {
			continue
		}
		if p.negatives[word] || p.connectors[word] || p.commas[word] {
			if p.connectors[word] {
				// "eins und zwei" is two numbers, "ein und zwanzig"
				// is one. A small number after "und" ends the scan
				// unless a fraction follows.
				numAfter, okAfter := p.IsNumber(nextWord)
				_, fracAfter := p.IsFractional(strings.ToLower(ts.At(idx + 2).Word))
				if okAfter && numAfter != 0 && numAfter < 20 && !fracAfter {
					break
				}
			}
			words = append(words, idx)
			if p.commas[word] {
				commaIdx = idx
				if val.truthy() {
					cur = val
				} else {
					cur = prevVal
				}
			}
			continue
		}

		_, inScale := p.longScale[word]
		_, inNum := p.stringNum[word]
		_, isNum := p.IsNumber(word)
		_, isFrac := p.IsFractional(word)
		if !inScale && !inNum && !p.multiplier[word] && !isNum && !isFrac {
			if len(words) > 0 && !onlyConnectors(ts, words, p.negatives, p.connectors) {
				break
			}
			for _, i := range words {
				ts.Tok(i).Consumed = false
			}
			words = nil
			toSum = nil
			val, cur = pyVal{}, pyVal{}
			continue
		}

		_, prevIsNum := p.IsNumber(prevWord)
		_, prevIsFrac := p.IsFractional(prevWord)
		_, prevInScale := p.longScale[prevWord]
		_, prevInNum := p.stringNum[prevWord]
		if !p.multiplier[word] && !p.multiplier[strings.ToLower(prevTok.Word)] &&
			!p.connectors[prevWord] && !p.negatives[prevWord] &&
			commaIdx < 0 && !prevInScale && !prevInNum &&
			!prevIsNum && !prevIsFrac {
			words = []int{idx}
		} else {
			words = append(words, idx)
		}

		// is this word already a number or a word of a number?
		if v, ok := p.IsNumber(word); ok {
			val = pyVal{v, true}
			cur = val
		} else {
			val = pyVal{}
		}

		// kick standalone indefinite articles
		if val.truthy() && p.indefArticles[prevWord] && !p.multiplier[word] {
			ts.Tok(idx - 1).Consumed = true
			if len(words) >= 2 {
				words = append(words[:len(words)-2], words[len(words)-1])
			}
		}

		if cur.set && p.negatives[prevWord] {
			val = pyVal{-cur.v, true}
		}

		// eine million, zwei millionen fünfhunderttausend
		if prevVal.set && (p.multiplier[word] ||
			word == "einer" || word == "eines" || word == "einem") {
			val = pyVal{prevVal.v * cur.v, true}
			if p.multiplier[nextWord] {
				nv, _ := p.IsNumber(nextWord)
				val = pyVal{val.v * nv, true}
				words = append(words, idx+1)
				ts.Tok(idx + 1).Consumed = true
			}
			toSum = append(toSum, val.v)
			val, cur = pyVal{}, pyVal{}
		}

		// fraction handling
		fractionVal, hasFraction := p.IsFractional(word)
		if hasFraction && fractionVal != 0 {
			_, exactFraction := p.stringFraction[word]
			switch {
			case prevVal.set && prevWord != "eine" && !exactFraction:
				// compound fraction: neuneinhalb
				val = pyVal{prevVal.v + fractionVal, true}
				if !p.connectors[prevWord] && !contains(words, idx-1) {
					words = append(words, idx-1)
				}
			case prevVal.set:
				// drei viertel
				val = pyVal{prevVal.v * fractionVal, true}
				if !contains(words, idx-1) {
					words = append(words, idx-1)
				}
			default:
				val = pyVal{fractionVal, true}
			}
			cur = val
		}

		// directly following numbers without relation
		pn, pok := p.IsNumber(prevWord)
		if pok && pn != 0 && (fractionVal == 0 || fractionVal > 1) &&
			len(toSum) == 0 && commaIdx < 0 && !p.indefArticles[prevWord] {
			val = prevVal
			if len(words) > 0 {
				words = words[:len(words)-1]
			}
			break
		}

		// spoken clock time: "halb acht" -> 7:30, "drei viertel acht"
		// -> 7:45; rewritten in place, not returned
		if wv, wok := p.IsNumber(word); wok && wv != 0 && val.truthy() &&
			prevVal.set && prevVal.v != math.Trunc(prevVal.v) && commaIdx < 0 {
			sort.Ints(words)
			repl := fmt.Sprintf("%s:%d", formatValue(val.v-1), int(60*prevVal.v))
			ts.Replace(repl, words[0], words[len(words)-1])
			return pyVal{}, nil, true
		}

		// convert "9.00 Uhr" to "9:00"; 9.00 parses as a plain float
		if cur.set && strings.ContainsAny(token.Word, ".,") &&
			isClockSuffix(strings.ToLower(nextTok.Word)) {
			parts := strings.SplitN(token.Word, ".", 2)
			if len(parts) == 2 && allDigits(parts[0]) && allDigits(parts[1]) {
				h, _ := strconv.Atoi(parts[0])
				m, _ := strconv.Atoi(parts[1])
				if h < 25 && m < 60 {
					mstr := parts[1]
					for len(mstr) < 2 {
						mstr += "0"
					}
					ts.Replace(parts[0]+":"+mstr, idx, idx)
					return pyVal{}, nil, true
				}
			}
		}

		// spoken decimals
		if cur.set && commaIdx >= 0 {
			base := 0.0
			if prevVal.truthy() {
				base = prevVal.v
			}
			val = pyVal{base + cur.v/pow10(idx-commaIdx), true}
			cur = val
		}

		if cur.set && (p.connectors[nextWord] || nextWord == "") {
			if val.truthy() {
				toSum = append(toSum, val.v)
			} else {
				toSum = append(toSum, cur.v)
			}
			val, cur = pyVal{}, pyVal{}
		}
	}

	if val.set {
		toSum = append(toSum, val.v)
	}
	var out pyVal
	if len(toSum) > 0 {
		sum := 0.0
		for _, s := range toSum {
			sum += s
		}
		out = pyVal{sum, true}
	}
	consume()
	return out, words, false
}

func isClockSuffix(word string) bool {
	switch word {
	case "uhr", "pm", "a.m.", "p.m.", "a.m", "p.m":
		return true
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
