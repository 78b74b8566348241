// Package numbers extracts spoken numbers from natural-language
// utterances and rewrites them into digit tokens.
//
// Features:
//   - cardinals, ordinals, fractions and spoken decimals
//   - short scale and long scale magnitude words
//   - English and German vocabularies, both exposed through the same
//     operations over a tokens.Tokens stream
//   - German concatenated numerals ("einundzwanzig") and spoken-time
//     rewrites ("halb acht" -> "7:30")
//
// The extraction is destructive on the stream: found numbers replace the
// words that spelled them, so later passes see "22" where the utterance
// said "twenty two". The original words stay reachable through
// Token.Original.
//
// Known limitations:
//   - directly adjacent unrelated whole numbers are returned in stream
//     order, but the rightmost of a run is recognized first internally
//   - "a second" is inherently ambiguous between the ordinal and the
//     time unit; see OrdinalMode
//
// All methods are safe for concurrent use by multiple goroutines; the
// vocabulary tables are immutable after construction.
package numbers

import (
	"math"
	"strconv"
	"strings"

	"github.com/emphasize/ovos-classifiers/tokens"
)

// OrdinalMode controls how ordinal words are treated during extraction.
type OrdinalMode int

const (
	// OrdinalsOff tags ordinal tokens but does not extract them as
	// numbers. "the first test" yields no number.
	OrdinalsOff OrdinalMode = iota
	// OrdinalsOn extracts ordinal words as their index value.
	// "the first test" yields 1.
	OrdinalsOn
	// OrdinalsIgnore skips ordinal words and the ambiguous spoken
	// extras ("half", "couple") entirely. Used by passes that handle
	// those words themselves.
	OrdinalsIgnore
)

// Options selects the extraction behavior. The zero value means
// ordinals off, no fractions, short scale off; use DefaultOptions for
// the common configuration.
type Options struct {
	Ordinals   OrdinalMode
	Fractions  bool
	ShortScale bool
}

// DefaultOptions returns the options used by the assistant pipeline:
// fractions on, short scale on, ordinals off.
func DefaultOptions() Options {
	return Options{Fractions: true, ShortScale: true}
}

// Number is an extracted value together with the token that now carries
// it in the stream.
type Number struct {
	Value  float64
	Tokens []tokens.Token
}

// StartIndex returns the stream index of the first covering token,
// or -1 for an empty token list.
func (n Number) StartIndex() int {
	if len(n.Tokens) == 0 {
		return -1
	}
	return n.Tokens[0].Index
}

// EndIndex returns the stream index of the last covering token.
func (n Number) EndIndex() int {
	if len(n.Tokens) == 0 {
		return -1
	}
	return n.Tokens[len(n.Tokens)-1].Index
}

// Text returns the covering tokens joined by spaces.
func (n Number) Text() string {
	words := make([]string, len(n.Tokens))
	for i, t := range n.Tokens {
		words[i] = t.Word
	}
	return strings.Join(words, " ")
}

// Original returns the pre-rewrite text of the covering tokens.
func (n Number) Original() string {
	var words []string
	for _, t := range n.Tokens {
		if t.Original != "" {
			words = append(words, t.Original)
		} else {
			words = append(words, t.Word)
		}
	}
	return strings.Join(words, " ")
}

// formatValue renders a value the way it should appear as a token word:
// integral values without a fraction part, everything else in the
// shortest round-tripping form.
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// isWholeValue reports whether v carries no fractional part. Used to
// re-run extraction when fractions are disabled.
func isWholeValue(v float64) bool { return v == math.Trunc(v) }

// digitCount returns the number of decimal digits in the integral part
// of v. Spoken decimals divide groups like "fourteen" by 10^digits.
func digitCount(v float64) int {
	n := int64(math.Abs(v))
	if n == 0 {
		return 1
	}
	c := 0
	for n > 0 {
		c++
		n /= 10
	}
	return c
}

// isNumericWord reports whether the word parses as a plain number.
func isNumericWord(w string) bool {
	_, err := strconv.ParseFloat(w, 64)
	return err == nil
}

// slashFraction parses "n/m" forms. ok is false when the word is not a
// digit fraction.
func slashFraction(w string) (float64, bool) {
	parts := strings.Split(w, "/")
	if len(parts) != 2 {
		return 0, false
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}
