package numbers

import "testing"

func TestGermanConvertWordsToNumbers(t *testing.T) {
	t.Parallel()
	p := NewGerman()

	ts := p.ConvertWordsToNumbers("das ist test nummer zwei", DefaultOptions())
	if got := ts.Text(); got != "das ist test nummer 2" {
		t.Fatalf("Text() = %q", got)
	}

	ts = p.ConvertWordsToNumbers("das ist test nummer zwei einhalb", DefaultOptions())
	if got := ts.Text(); got != "das ist test nummer 2.5" {
		t.Fatalf("Text() = %q", got)
	}
	tok := ts.At(4)
	if tok.Word != "2.5" || tok.Original != "zwei einhalb" {
		t.Errorf("token = %q original %q", tok.Word, tok.Original)
	}

	// ordinals stay words unless asked for, but get tagged
	ts = p.ConvertWordsToNumbers("das ist der dritte test", DefaultOptions())
	if got := ts.Text(); got != "das ist der dritte test" {
		t.Fatalf("Text() = %q", got)
	}
	tok = ts.At(3)
	if !tok.IsOrdinal || tok.Ordinal != 3 {
		t.Errorf("ordinal token = %+v", tok)
	}

	opts := DefaultOptions()
	opts.Ordinals = OrdinalsOn
	ts = p.ConvertWordsToNumbers("das ist der dritte test", opts)
	if got := ts.Text(); got != "das ist der 3. test" {
		t.Fatalf("Text() = %q", got)
	}

	ts = p.ConvertWordsToNumbers("das ist der 4/5 test", DefaultOptions())
	if got := ts.Text(); got != "das ist der 0.8 test" {
		t.Fatalf("Text() = %q", got)
	}
}

func TestGermanSpokenClockRewrite(t *testing.T) {
	t.Parallel()
	p := NewGerman()

	ts := p.ConvertWordsToNumbers("es ist 4.30 Uhr", DefaultOptions())
	if got := ts.Text(); got != "es ist 4:30 Uhr" {
		t.Errorf("Text() = %q", got)
	}

	ts = p.ConvertWordsToNumbers("es ist halb acht", DefaultOptions())
	if got := ts.Text(); got != "es ist 7:30" {
		t.Errorf("Text() = %q", got)
	}
}

func TestGermanExtractNumbers(t *testing.T) {
	t.Parallel()
	p := NewGerman()

	tests := []struct {
		utt      string
		want     []float64
		ordinals OrdinalMode
		noFracts bool
	}{
		{utt: "das ist test nummer zwei", want: []float64{2}},
		{utt: "zwei einhalb", want: []float64{2.5}},
		{utt: "das ist der dritte test", want: nil},
		{utt: "das ist der dritte test", want: []float64{3}, ordinals: OrdinalsOn},
		{utt: "das ist test nummer eins 2 drei", want: []float64{1, 2, 3}},
		{utt: "einundzwanzig", want: []float64{21}},
		{utt: "ein und zwanzig", want: []float64{21}},
		{utt: "eins und zwei", want: []float64{1, 2}},
		{utt: "1 Hund, sieben Schweine, Macdonald hatte eine Farm, 3 mal 5", want: []float64{1, 7, 1, 3, 5}},
		{utt: "zwanzig 20 zwanzig", want: []float64{20, 20, 20}},
		{utt: "zwanzig zwanzig zwei und zwanzig", want: []float64{20, 20, 22}},
		{utt: "ein drittel", want: []float64{1.0 / 3.0}},
		{utt: "eindrittel", want: []float64{1.0 / 3.0}},
		{utt: "ein eindrittel", want: []float64{1 + 1.0/3.0}},
		{utt: "in einer halben stunde", want: []float64{0.5}},
		{utt: "wir haben tausende tests zur auswahl", want: []float64{1000}},
		{utt: "sechs trillionen", want: []float64{6e18}},
		{utt: "sechs Billionen", want: []float64{6e12}},
		{utt: "zwei Schweine und sechs Billionen Bakterien", want: []float64{2, 6e12}},
		{utt: "einunddreißigsten oder ersten", want: []float64{31, 1}, ordinals: OrdinalsOn},
		{utt: "das ist ein sieben acht neuneinhalb test", want: []float64{7, 8, 9.5}},
		{utt: "grobo 0", want: []float64{0}},
		{utt: "ein paar biere", want: []float64{1}},
		{utt: "ein paar hundert biere", want: []float64{1, 100}},
		{utt: "total 100%", want: []float64{100}},
		{utt: "viertel Tasse", want: []float64{0.25}},
		{utt: "eine viertel tasse", want: []float64{0.25}},
		{utt: "1 und 3/4 tassen", want: []float64{1.75}},
		{utt: "1 und eine halbe Tasse", want: []float64{1.5}},
		{utt: "hälfte einer tomate", want: []float64{0.5}},
		{utt: "eine Tasse und eine halbe (tomate)", want: []float64{1, 0.5}},
		{utt: "zwei und zwei hälften", want: []float64{3}},
		{utt: "auf halbem weg", want: []float64{0.5}},
		{utt: "drei viertel Tassen", want: []float64{0.75}},
		{utt: "drei viertel Tassen", want: nil, noFracts: true},
		{utt: "zweiundzwanzig", want: []float64{22}},
		{utt: "zwei und zwanzig", want: []float64{22}},
		{utt: "dreihundertvierundneunzig", want: []float64{394}},
		{utt: "drei hundert vierundneunzig", want: []float64{394}},
		{utt: "zwei hundertste", want: nil},
		{utt: "zwei hundertste", want: []float64{200}, ordinals: OrdinalsOn},
		{utt: "zweihundertste", want: []float64{200}, ordinals: OrdinalsOn},
		{utt: "zwei hundertstel", want: []float64{2.0 / 100.0}},
		{utt: "sechs hundert sechs und sechzig", want: []float64{666}},
		{utt: "zwei millionen fünf hundert tausend tonnen spinnendes metall", want: []float64{2500000}},
		{utt: "2,6 millionen tonnen", want: []float64{2600000}},
		{utt: "2 komma 6 millionen tonnen", want: []float64{2600000}},
		{utt: "eins komma fünf vier", want: []float64{1.54}},
		{utt: "komma fünf", want: []float64{0.5}},
		{utt: "null komma fünf", want: []float64{0.5}},
		{utt: "billionen jahre älter als das universum", want: []float64{1e12}},
		{utt: "minus 2", want: []float64{-2}},
		{utt: "3 tausend millionen", want: []float64{3e9}},
		{utt: "zum hundertsten mal, ich sagte zwei nicht zwei drittel", want: []float64{2}, noFracts: true},
		{utt: "am 1. November", want: nil},
		{utt: "am 1. November", want: []float64{1}, ordinals: OrdinalsOn},
		{utt: "am 31. Dezember", want: []float64{31}, ordinals: OrdinalsOn},
		{utt: "halb acht", want: nil},
		{utt: "halb acht", want: nil, noFracts: true},
		{utt: "viertel nach acht", want: []float64{0.25, 8}},
		{utt: "9.33 Uhr am zwanzigsten Mai 2020", want: []float64{20, 2020}, ordinals: OrdinalsOn},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.utt, func(t *testing.T) {
			t.Parallel()
			opts := Options{
				Ordinals:   tt.ordinals,
				Fractions:  !tt.noFracts,
				ShortScale: false,
			}
			got := values(p.ExtractNumbers(tt.utt, opts))
			if !sameFloats(got, tt.want) {
				t.Errorf("ExtractNumbers(%q, %+v) = %v, want %v",
					tt.utt, opts, got, tt.want)
			}
		})
	}
}

func TestGermanExtractNumber(t *testing.T) {
	t.Parallel()
	p := NewGerman()

	tests := []struct {
		utt      string
		want     float64
		none     bool
		ordinals OrdinalMode
		noFracts bool
	}{
		{utt: "das ist test nummer eins von zwei", want: 1},
		{utt: "zwei einhalb von 3", want: 2.5},
		{utt: "das ist der erste test von 2", want: 2},
		{utt: "das ist der erste test von 2", want: 1, ordinals: OrdinalsOn},
		{utt: "zweiundzwanzig mal 2", want: 22},
		{utt: "der dritte ist sechzig", want: 60},
		{utt: "der dritte ist sechzig", want: 3, ordinals: OrdinalsOn},
		{utt: "auf halbem weg zu 60", want: 60, noFracts: true},
		{utt: "die einundfünfzigste Woche in einem Jahr", want: 1},
		{utt: "die einundfünfzigste Woche in einem Jahr", want: 51, ordinals: OrdinalsOn},
		{utt: "zum hundertsten mal, ich sagte zwei drittel nicht zwei", want: 2.0 / 3.0},
		{utt: "zum hundertsten mal, ich sagte zwei drittel nicht zwei", want: 2, noFracts: true},
		{utt: "1. ein tequilla", want: 1},
		{utt: "2. ein halber löffel salz", want: 0.5},
		{utt: "3. zitrone", none: true},
		{utt: "50% von 100", want: 50},
		{utt: "minus 50 grad in zwei städten", want: -50},
		{utt: "komma sechs von sechs", want: 0.6},
		{utt: "zwei millionen fünf hundert tausend sechs hundert sechs und sechzig komma sechs tonnen", want: 2500666.6},
		{utt: "keine zahlen hier drin", none: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.utt, func(t *testing.T) {
			t.Parallel()
			opts := Options{
				Ordinals:   tt.ordinals,
				Fractions:  !tt.noFracts,
				ShortScale: false,
			}
			n, ok := p.ExtractNumber(tt.utt, opts)
			if tt.none {
				if ok {
					t.Fatalf("ExtractNumber(%q) = %v, want none", tt.utt, n.Value)
				}
				return
			}
			if !ok || n.Value != tt.want {
				t.Errorf("ExtractNumber(%q, %+v) = %v, %v, want %v",
					tt.utt, opts, n.Value, ok, tt.want)
			}
		})
	}
}

func TestGermanOrdinalIndex(t *testing.T) {
	t.Parallel()
	p := NewGerman()

	tests := []struct {
		word string
		want float64
		ok   bool
	}{
		{"erste", 1, true},
		{"dritten", 3, true},
		{"achte", 8, true},
		{"zwanzigsten", 20, true},
		{"einundneunzigste", 91, true},
		{"hundertste", 100, true},
		{"8.", 8, true},
		{"31.", 31, true},
		{"haus", 0, false},
		{"acht", 0, false},
	}
	for _, tt := range tests {
		got, ok := p.OrdinalIndex(tt.word)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("OrdinalIndex(%q) = %v, %v, want %v, %v",
				tt.word, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGermanConcatNumbers(t *testing.T) {
	t.Parallel()
	p := NewGerman()

	tests := []struct {
		word string
		want float64
	}{
		{"einundzwanzig", 21},
		{"zweiundzwanzig", 22},
		{"dreihundertvierundneunzig", 394},
		{"siebenhundertsiebenundsiebzig", 777},
		{"neunzehnhundert", 1900},
		{"zweitausendachtzehn", 2018},
	}
	for _, tt := range tests {
		got, ok := p.IsNumber(tt.word)
		if !ok || got != tt.want {
			t.Errorf("IsNumber(%q) = %v, %v, want %v", tt.word, got, ok, tt.want)
		}
	}
}
