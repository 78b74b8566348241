// Package tokens provides the word-token stream that the extraction
// packages operate on.
//
// Features:
//   - word tokenization with byte spans into the original utterance
//   - destructive rewriting: spans of tokens can be replaced by a single
//     token (for example "twenty two" -> "22") while the original words
//     and their covering span are preserved
//   - consumption marks, so a later extraction pass can skip tokens an
//     earlier pass already claimed
//   - find and partition helpers
//
// Out-of-range access returns the zero Token, which is inert: its word is
// empty, its index is -1 and all flags are false. Callers can therefore
// look at neighbours of the first and last token without bounds checks.
//
// All functions are safe for concurrent use by multiple goroutines as
// long as each Tokens value is confined to one goroutine; the package
// itself holds no mutable state.
package tokens

import (
	"strconv"
	"strings"
)

// maxInputBytes caps the accepted utterance length.
const maxInputBytes = 1 << 20

// Token is one word of an utterance together with its provenance.
// Word holds the current (possibly rewritten) text; Original holds the
// text the token was built from, so rewrites stay reversible for display.
type Token struct {
	Word     string `json:"word"`
	Index    int    `json:"index"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Original string `json:"original,omitempty"`

	Consumed   bool    `json:"-"`
	IsDigit    bool    `json:"is_digit,omitempty"`
	IsNumeric  bool    `json:"is_numeric,omitempty"`
	IsOrdinal  bool    `json:"is_ordinal,omitempty"`
	IsDuration bool    `json:"is_duration,omitempty"`
	IsTime     bool    `json:"is_time,omitempty"`
	IsDate     bool    `json:"is_date,omitempty"`
	IsComma    bool    `json:"is_comma,omitempty"`
	IsSymbolic bool    `json:"is_symbolic,omitempty"`
	Ordinal    float64 `json:"ordinal,omitempty"`
}

// zeroToken is what out-of-range access yields.
var zeroToken = Token{Index: -1}

// Empty reports whether t is the out-of-range sentinel.
func (t Token) Empty() bool { return t.Word == "" && t.Index < 0 }

// Lower returns the lower-cased word.
func (t Token) Lower() string { return strings.ToLower(t.Word) }

// Number parses the token word as a number. Digit ordinals ("3.") and
// comma decimals ("2,6") parse too. ok is false for non-numeric words.
func (t Token) Number() (val float64, ok bool) {
	w := strings.ReplaceAll(t.Word, ",", ".")
	w = strings.TrimSuffix(w, ".")
	if w == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Tokens is an ordered, rewritable token stream over one utterance.
type Tokens struct {
	toks []Token
}

// New tokenizes an utterance. Words are split on whitespace; commas and
// parentheses become separate tokens; "%" is split off numbers and "#"
// off the front of numbers. Returns an empty stream for oversized input.
func New(text string) *Tokens {
	if len(text) > maxInputBytes {
		return &Tokens{}
	}
	ts := &Tokens{toks: splitWords(text)}
	return ts
}

// FromSlice builds a stream from existing tokens, reindexing them.
func FromSlice(toks []Token) *Tokens {
	cp := make([]Token, len(toks))
	copy(cp, toks)
	ts := &Tokens{toks: cp}
	ts.reindex()
	return ts
}

// Len returns the number of tokens.
func (ts *Tokens) Len() int { return len(ts.toks) }

// At returns the token at i, or the zero Token when i is out of range.
func (ts *Tokens) At(i int) Token {
	if i < 0 || i >= len(ts.toks) {
		return zeroToken
	}
	return ts.toks[i]
}

// Tok returns a pointer to the token at i for in-place flagging. For an
// out-of-range i it returns a pointer to a discarded scratch token, so
// writes through it are lost, matching the inert sentinel contract.
func (ts *Tokens) Tok(i int) *Token {
	if i < 0 || i >= len(ts.toks) {
		scratch := zeroToken
		return &scratch
	}
	return &ts.toks[i]
}

// Slice returns a copy of the tokens in [i, j). The bounds are clamped.
func (ts *Tokens) Slice(i, j int) []Token {
	if i < 0 {
		i = 0
	}
	if j > len(ts.toks) {
		j = len(ts.toks)
	}
	if i >= j {
		return nil
	}
	out := make([]Token, j-i)
	copy(out, ts.toks[i:j])
	return out
}

// All returns a copy of every token.
func (ts *Tokens) All() []Token { return ts.Slice(0, len(ts.toks)) }

// Words returns the current word list.
func (ts *Tokens) Words() []string {
	out := make([]string, len(ts.toks))
	for i, t := range ts.toks {
		out[i] = t.Word
	}
	return out
}

// Text reconstructs the current stream text.
func (ts *Tokens) Text() string { return strings.Join(ts.Words(), " ") }

// Remainder returns the text of all unconsumed tokens.
func (ts *Tokens) Remainder() string {
	var words []string
	for _, t := range ts.toks {
		if !t.Consumed {
			words = append(words, t.Word)
		}
	}
	return strings.Join(words, " ")
}

// Replace splices the inclusive token range [start, end] into a single
// token with the given word. The replacement keeps the covering byte
// span and accumulates the original words. It returns the index of the
// replacement token, or -1 when the range is invalid.
func (ts *Tokens) Replace(word string, start, end int) int {
	if start < 0 || end >= len(ts.toks) || start > end {
		return -1
	}
	var originals []string
	for _, t := range ts.toks[start : end+1] {
		o := t.Original
		if o == "" {
			o = t.Word
		}
		originals = append(originals, o)
	}
	repl := Token{
		Word:     word,
		Start:    ts.toks[start].Start,
		End:      ts.toks[end].End,
		Original: strings.Join(originals, " "),
	}
	repl.IsDigit = allDigits(word)
	if _, ok := repl.Number(); ok {
		repl.IsNumeric = true
	}
	rest := ts.toks[end+1:]
	ts.toks = append(ts.toks[:start], append([]Token{repl}, rest...)...)
	ts.reindex()
	return start
}

// Consume marks the inclusive range [start, end] consumed.
func (ts *Tokens) Consume(start, end int) {
	for i := start; i <= end && i < len(ts.toks); i++ {
		if i >= 0 {
			ts.toks[i].Consumed = true
		}
	}
}

// ConsumeIndexes marks the given token indexes consumed.
func (ts *Tokens) ConsumeIndexes(idx ...int) {
	for _, i := range idx {
		if i >= 0 && i < len(ts.toks) {
			ts.toks[i].Consumed = true
		}
	}
}

// ResetConsumed clears every consumption mark.
func (ts *Tokens) ResetConsumed() {
	for i := range ts.toks {
		ts.toks[i].Consumed = false
	}
}

// Find returns the index of the first unconsumed token whose lower-cased
// word equals any of the given words, or -1.
func (ts *Tokens) Find(words ...string) int {
	for i, t := range ts.toks {
		if t.Consumed {
			continue
		}
		lw := t.Lower()
		for _, w := range words {
			if lw == w {
				return i
			}
		}
	}
	return -1
}

// Partition splits the stream on tokens for which split returns true,
// like strings.Partition over token slices. Split tokens form their own
// single-element groups; empty groups are dropped.
func (ts *Tokens) Partition(split func(Token) bool) [][]Token {
	var groups [][]Token
	var cur []Token
	for _, t := range ts.toks {
		if split(t) {
			if len(cur) > 0 {
				groups = append(groups, cur)
			}
			groups = append(groups, []Token{t})
			cur = nil
		} else {
			cur = append(cur, t)
		}
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

func (ts *Tokens) reindex() {
	for i := range ts.toks {
		ts.toks[i].Index = i
	}
}

// splitWords cuts an utterance into tokens with byte spans. Punctuation
// that carries meaning downstream (commas, the percent sign) survives as
// its own token; sentence punctuation is dropped. Interior dots, colons
// and slashes stay inside the word ("2.5", "9:00", "1/3", "3.").
func splitWords(text string) []Token {
	var toks []Token
	i := 0
	for i < len(text) {
		if isSpace(text[i]) {
			i++
			continue
		}
		start := i
		for i < len(text) && !isSpace(text[i]) {
			i++
		}
		for _, t := range splitChunk(text[start:i], start) {
			t.Index = len(toks)
			toks = append(toks, t)
		}
	}
	return toks
}

// splitChunk breaks one whitespace-delimited chunk into tokens.
func splitChunk(chunk string, offset int) []Token {
	var toks []Token
	emit := func(word string, start, end int) {
		if word == "" {
			return
		}
		t := Token{Word: word, Original: word, Start: start, End: end}
		switch word {
		case ",":
			t.IsComma = true
		case "%", "#":
			t.IsSymbolic = true
		}
		t.IsDigit = allDigits(word)
		if _, ok := t.Number(); ok {
			t.IsNumeric = true
		}
		toks = append(toks, t)
	}

	// Leading punctuation.
	s, e := 0, len(chunk)
	for s < e && isLeadPunct(chunk[s]) {
		if chunk[s] == '#' && s+1 < e && isDigitByte(chunk[s+1]) {
			emit("#", offset+s, offset+s+1)
		}
		s++
	}
	// Trailing punctuation, preserving digit ordinals like "3." and
	// splitting "%" off numbers like "100%".
	type cut struct {
		word       string
		start, end int
	}
	var trail []cut
	for e > s && isTrailPunct(chunk[e-1]) {
		c := chunk[e-1]
		if c == '.' && allDigits(chunk[s:e-1]) {
			break // German ordinal form
		}
		if c == ',' {
			trail = append(trail, cut{",", offset + e - 1, offset + e})
		} else if c == '%' && allDigits(chunk[s:e-1]) {
			trail = append(trail, cut{"%", offset + e - 1, offset + e})
		}
		e--
	}
	emit(chunk[s:e], offset+s, offset+e)
	for i := len(trail) - 1; i >= 0; i-- {
		emit(trail[i].word, trail[i].start, trail[i].end)
	}
	return toks
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLeadPunct(c byte) bool {
	switch c {
	case '(', '[', '"', '\'', '#':
		return true
	}
	return false
}

func isTrailPunct(c byte) bool {
	switch c {
	case ',', '.', '!', '?', ';', ':', ')', ']', '"', '\'', '%':
		return true
	}
	return false
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigitByte(s[i]) {
			return false
		}
	}
	return true
}
