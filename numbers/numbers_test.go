package numbers

import (
	"testing"

	"github.com/emphasize/ovos-classifiers/tokens"
)

func values(nums []Number) []float64 {
	out := make([]float64, len(nums))
	for i, n := range nums {
		out[i] = n.Value
	}
	return out
}

func sameFloats(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestEnglishConvertWordsToNumbers(t *testing.T) {
	t.Parallel()
	p := NewEnglish()

	ts := p.ConvertWordsToNumbers("this is test number two", DefaultOptions())
	if got := ts.Text(); got != "this is test number 2" {
		t.Fatalf("Text() = %q", got)
	}
	tok := ts.At(4)
	if !tok.IsNumeric || !tok.IsDigit || tok.IsOrdinal {
		t.Errorf("token flags = numeric:%v digit:%v ordinal:%v",
			tok.IsNumeric, tok.IsDigit, tok.IsOrdinal)
	}
	if tok.Word != "2" || tok.Original != "two" {
		t.Errorf("token = %q original %q", tok.Word, tok.Original)
	}
	if n, ok := tok.Number(); !ok || n != 2 {
		t.Errorf("Number() = %v, %v", n, ok)
	}

	ts = p.ConvertWordsToNumbers("this is test number two and a half", DefaultOptions())
	if got := ts.Text(); got != "this is test number 2.5" {
		t.Fatalf("Text() = %q", got)
	}
	tok = ts.At(4)
	if !tok.IsNumeric || tok.IsDigit {
		t.Errorf("token flags = numeric:%v digit:%v", tok.IsNumeric, tok.IsDigit)
	}
	if tok.Word != "2.5" || tok.Original != "two and a half" {
		t.Errorf("token = %q original %q", tok.Word, tok.Original)
	}

	// ordinals stay words unless asked for
	ts = p.ConvertWordsToNumbers("this is the first test", DefaultOptions())
	if got := ts.Text(); got != "this is the first test" {
		t.Fatalf("Text() = %q", got)
	}
	tok = ts.At(3)
	if !tok.IsOrdinal || tok.IsNumeric || tok.Ordinal != 1 {
		t.Errorf("ordinal token = %+v", tok)
	}

	opts := DefaultOptions()
	opts.Ordinals = OrdinalsOn
	ts = p.ConvertWordsToNumbers("this is the first test", opts)
	if got := ts.Text(); got != "this is the 1st test" {
		t.Fatalf("Text() = %q", got)
	}
	tok = ts.At(3)
	if !tok.IsOrdinal || tok.Word != "1st" || tok.Original != "first" {
		t.Errorf("ordinal token = %+v", tok)
	}

	ts = p.ConvertWordsToNumbers("this is the 2/3 test", DefaultOptions())
	if got := ts.Text(); got != "this is the 0.6666666666666666 test" {
		t.Fatalf("Text() = %q", got)
	}
}

func TestEnglishExtractNumbers(t *testing.T) {
	t.Parallel()
	p := NewEnglish()

	tests := []struct {
		utt      string
		want     []float64
		ordinals OrdinalMode
		noFracts bool
		long     bool
	}{
		{utt: "this is test number two", want: []float64{2}},
		{utt: "this is test number two and a half", want: []float64{2.5}},
		{utt: "this is the first test", want: nil},
		{utt: "this is the first test", want: []float64{1}, ordinals: OrdinalsOn},
		{utt: "this is test number one 2 three", want: []float64{1, 2, 3}},
		{utt: "this is a one two three  test", want: []float64{1, 2, 3}},
		{utt: "it's  a four five six  test", want: []float64{4, 5, 6}},
		{utt: "this is a ten eleven twelve  test", want: []float64{10, 11, 12}},
		{utt: "this is a one twenty one  test", want: []float64{1, 21}},
		{utt: "1 dog, seven pigs, macdonald had a farm, 3 times 5 macarena", want: []float64{1, 7, 3, 5}},
		{utt: "two beers for two bears", want: []float64{2, 2}},
		{utt: "twenty 20 twenty", want: []float64{20, 20, 20}},
		{utt: "twenty 20 22", want: []float64{20, 20, 22}},
		{utt: "twenty twenty two twenty", want: []float64{20, 22, 20}},
		{utt: "twenty 2", want: []float64{22}},
		{utt: "twenty 20 twenty 2", want: []float64{20, 20, 22}},
		{utt: "third one", want: nil},
		{utt: "third one", want: []float64{3}, ordinals: OrdinalsOn},
		{utt: "a third one", want: nil},
		{utt: "a third one", want: []float64{3}, ordinals: OrdinalsOn},
		{utt: "half an hour", want: []float64{0.5}},
		{utt: "one third one", want: []float64{1.0 / 3.0, 1}},
		{utt: "six trillion", want: []float64{6e12}},
		{utt: "six trillion", want: []float64{6e18}, long: true},
		{utt: "two pigs and six trillion bacteria", want: []float64{2, 6e12}},
		{utt: "two pigs and six trillion bacteria", want: []float64{2, 6e18}, long: true},
		{utt: "thirty second or first", want: []float64{32, 1}, ordinals: OrdinalsOn},
		{utt: "this is a seven eight nine and a half test", want: []float64{7, 8, 9.5}},
		{utt: "grobo 0", want: []float64{0}},
		{utt: "a couple of beers", want: []float64{2}},
		{utt: "a couple hundred beers", want: []float64{200}},
		{utt: "a couple thousand beers", want: []float64{2000}},
		{utt: "totally 100%", want: []float64{100}},
		{utt: "this is 2 test", want: []float64{2}},
		{utt: "this is test number 4", want: []float64{4}},
		{utt: "three cups", want: []float64{3}},
		{utt: "1/3 cups", want: []float64{1.0 / 3.0}},
		{utt: "quarter cup", want: []float64{0.25}},
		{utt: "1/4 cup", want: []float64{0.25}},
		{utt: "one fourth cup", want: []float64{0.25}},
		{utt: "2/3 cups", want: []float64{2.0 / 3.0}},
		{utt: "3/4 cups", want: []float64{3.0 / 4.0}},
		{utt: "1 and 3/4 cups", want: []float64{1.75}},
		{utt: "1 and a half cups", want: []float64{1.5}},
		{utt: "one cup and a half (tomato)", want: []float64{1, 0.5}},
		{utt: "one and two halves", want: []float64{2}},
		{utt: "three quarter cups", want: []float64{3, 0.25}},
		{utt: "three quarter cups", want: []float64{3}, noFracts: true},
		{utt: "three quarters", want: []float64{3.0 / 4.0}},
		{utt: "twenty two", want: []float64{22}},
		{utt: "Twenty two with a leading capital letter", want: []float64{22}},
		{utt: "twenty Two with Two capital letters", want: []float64{22, 2}},
		{utt: "twenty Two with mixed capital letters", want: []float64{22}},
		{utt: "two hundred", want: []float64{200}},
		{utt: "two hundredth", want: []float64{200}, ordinals: OrdinalsOn},
		{utt: "two hundredth", want: nil},
		{utt: "two hundredths", want: []float64{2.0 / 100.0}},
		{utt: "nine thousand", want: []float64{9000}},
		{utt: "six hundred sixty six", want: []float64{666}},
		{utt: "two million", want: []float64{2000000}},
		{utt: "two million five hundred thousand tons of spinning metal", want: []float64{2500000}},
		{utt: "one point five", want: []float64{1.5}},
		{utt: "point five", want: []float64{0.5}},
		{utt: "three dot fourteen", want: []float64{3.14}},
		{utt: "zero point two", want: []float64{0.2}},
		{utt: "hundreds of thousands", want: []float64{100, 1000}},
		{utt: "billions of years older", want: []float64{1e9}},
		{utt: "billions of years older", want: []float64{1e12}, long: true},
		{utt: "one hundred thousand", want: []float64{100000}},
		{utt: "minus 2", want: []float64{-2}},
		{utt: "negative seventy", want: []float64{-70}},
		{utt: "thousand million", want: []float64{1e9}},
		{utt: "for the hundredth time, i said two not two thirds", want: []float64{2}, noFracts: true},
		{utt: "twenty thousand", want: []float64{20000}},
		{utt: "fifty million", want: []float64{50000000}},
		{utt: "twenty billion three hundred million nine hundred fifty thousand six hundred seventy five point eight", want: []float64{20300950675.8}},
		{utt: "nine hundred ninety nine million nine hundred ninety nine thousand nine hundred ninety nine point nine", want: []float64{999999999.9}},
		{utt: "eight hundred trillion two hundred fifty seven", want: []float64{800000000000257}},
		{utt: "third", want: []float64{3}, ordinals: OrdinalsOn},
		{utt: "sixth", want: []float64{6}, ordinals: OrdinalsOn},
		{utt: "this is the 1st", want: []float64{1}, ordinals: OrdinalsOn},
		{utt: "this is the 2nd", want: []float64{2}, ordinals: OrdinalsOn},
		{utt: "this is the 3rd", want: []float64{3}, ordinals: OrdinalsOn},
		{utt: "this is the 4th", want: []float64{4}, ordinals: OrdinalsOn},
		{utt: "this is the 7th test", want: []float64{7}, ordinals: OrdinalsOn},
		{utt: "this is the 31st test", want: []float64{31}, ordinals: OrdinalsOn},
		{utt: "this is the 1st test", want: nil},
		{utt: "this is the 2nd test", want: nil},
		{utt: "this is the 3rd test", want: nil},
		{utt: "this is the first test", want: []float64{1}, ordinals: OrdinalsOn},
		{utt: "this is a second test", want: []float64{2}, ordinals: OrdinalsOn},
		{utt: "remind me in a second", want: []float64{2}, ordinals: OrdinalsOn},
		{utt: "remind me in a second", want: nil},
		{utt: "one second", want: []float64{1}},
		{utt: "one second", want: []float64{1}, ordinals: OrdinalsOn},
		{utt: "thirty five seconds", want: []float64{35}},
		{utt: "thirty five seconds", want: []float64{35}, ordinals: OrdinalsOn},
		{utt: "half a second", want: []float64{0.5}},
		{utt: "half a second", want: []float64{0.5}, ordinals: OrdinalsOn},
		{utt: "this is the third test", want: []float64{3}, ordinals: OrdinalsOn},
		{utt: "one third of a cup", want: []float64{1.0 / 3.0}},
		{utt: "this is the billionth test", want: []float64{1e9}, ordinals: OrdinalsOn},
		{utt: "this is the billionth test", want: nil},
		{utt: "this is the billionth test", want: []float64{1e12}, ordinals: OrdinalsOn, long: true},
		{utt: "this is the billionth test", want: nil, long: true},
		{utt: "the fourth one", want: []float64{4}, ordinals: OrdinalsOn},
		{utt: "the thirty sixth one", want: []float64{36}, ordinals: OrdinalsOn},
		{utt: "you are the second one", want: nil},
		{utt: "you are the second one", want: []float64{2}, ordinals: OrdinalsOn},
		{utt: "you are the 1st one", want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.utt, func(t *testing.T) {
			t.Parallel()
			opts := Options{
				Ordinals:   tt.ordinals,
				Fractions:  !tt.noFracts,
				ShortScale: !tt.long,
			}
			got := values(p.ExtractNumbers(tt.utt, opts))
			if !sameFloats(got, tt.want) {
				t.Errorf("ExtractNumbers(%q, %+v) = %v, want %v",
					tt.utt, opts, got, tt.want)
			}
		})
	}
}

func TestEnglishExtractNumber(t *testing.T) {
	t.Parallel()
	p := NewEnglish()

	tests := []struct {
		utt      string
		want     float64
		none     bool
		ordinals OrdinalMode
	}{
		{utt: "this is test number one of two", want: 1},
		{utt: "this is test number two and a half of three", want: 2.5},
		{utt: "this is the first test of 2", want: 2},
		{utt: "this is the first test of 2", want: 1, ordinals: OrdinalsOn},
		{utt: "1 dog, seven pigs, macdonald had a farm, 3 times 5 macarena", want: 1},
		{utt: "no numbers here", none: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.utt, func(t *testing.T) {
			t.Parallel()
			opts := DefaultOptions()
			opts.Ordinals = tt.ordinals
			n, ok := p.ExtractNumber(tt.utt, opts)
			if tt.none {
				if ok {
					t.Fatalf("ExtractNumber(%q) = %v, want none", tt.utt, n.Value)
				}
				return
			}
			if !ok || n.Value != tt.want {
				t.Errorf("ExtractNumber(%q) = %v, %v, want %v",
					tt.utt, n.Value, ok, tt.want)
			}
		})
	}
}

func TestEnglishOrdinalize(t *testing.T) {
	t.Parallel()
	p := NewEnglish()

	tests := []struct {
		in   float64
		want string
	}{
		{1, "1st"}, {2, "2nd"}, {3, "3rd"}, {4, "4th"},
		{11, "11th"}, {12, "12th"}, {13, "13th"},
		{21, "21st"}, {22, "22nd"}, {23, "23rd"}, {100, "100th"},
		{111, "111th"}, {122, "122nd"},
	}
	for _, tt := range tests {
		if got := p.Ordinalize(tt.in); got != tt.want {
			t.Errorf("Ordinalize(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnglishIsFractional(t *testing.T) {
	t.Parallel()
	p := NewEnglish()

	tests := []struct {
		word      string
		numerator float64
		want      float64
		ok        bool
	}{
		{"half", 1, 0.5, true},
		{"quarter", 1, 0.25, true},
		{"third", 1, 1.0 / 3.0, true},
		{"hundredths", 2, 1.0 / 100.0, true},
		{"hundredth", 2, 0, false},
		{"halves", 2, 0.5, true},
		{"whole", 1, 1, true},
		{"cups", 1, 0, false},
	}
	for _, tt := range tests {
		got, ok := p.IsFractional(tt.word, tt.numerator, true)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("IsFractional(%q, %v) = %v, %v, want %v, %v",
				tt.word, tt.numerator, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEnglishExtractOrdinals(t *testing.T) {
	t.Parallel()
	p := NewEnglish()

	got := values(p.ExtractOrdinals("the first of three options, the second of two", true))
	want := []float64{1, 2}
	if !sameFloats(got, want) {
		t.Errorf("ExtractOrdinals = %v, want %v", got, want)
	}
}

func TestEnglishTokensRoundTrip(t *testing.T) {
	t.Parallel()
	p := NewEnglish()

	ts := tokens.New("set a timer for twenty two minutes")
	nums := p.ExtractNumbersTokens(ts, DefaultOptions())
	if len(nums) != 1 || nums[0].Value != 22 {
		t.Fatalf("numbers = %v", values(nums))
	}
	if got := ts.Text(); got != "set a timer for 22 minutes" {
		t.Errorf("Text() = %q", got)
	}
	for _, tok := range ts.All() {
		if tok.Consumed {
			t.Errorf("token %q left consumed", tok.Word)
		}
	}
}

func FuzzConvertWordsToNumbers(f *testing.F) {
	f.Add("twenty two", false)
	f.Add("two and a half", false)
	f.Add("the first test", true)
	f.Add("point five", false)
	f.Add("1/3 cups", false)
	f.Add("", false)
	f.Add("\xff\xfe", false)
	p := NewEnglish()
	f.Fuzz(func(t *testing.T, s string, ords bool) {
		opts := DefaultOptions()
		if ords {
			opts.Ordinals = OrdinalsOn
		}
		ts := p.ConvertWordsToNumbers(s, opts)
		for i, tok := range ts.All() {
			if tok.Index != i {
				t.Errorf("token %d has Index %d after conversion", i, tok.Index)
			}
			if tok.IsNumeric {
				if _, ok := tok.Number(); !ok {
					t.Errorf("token %q flagged numeric but does not parse", tok.Word)
				}
			}
		}
	})
}
