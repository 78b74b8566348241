package datetime

import (
	"testing"
	"time"

	"github.com/emphasize/ovos-classifiers/calendar"
)

func TestGermanExtractDurations(t *testing.T) {
	t.Parallel()
	tg := NewGermanTagger()

	tests := []struct {
		name string
		text string
		res  DurationResolution
		want []Duration
	}{
		{"minutes", "10 Minuten", Timedelta,
			[]Duration{{Time: 10 * time.Minute}}},
		{"weeks", "3 Wochen", Timedelta,
			[]Duration{{Days: 21}}},
		{"und merge", "2 Stunden und 30 Minuten", Timedelta,
			[]Duration{{Time: 2*time.Hour + 30*time.Minute}}},
		{"einhalb merge", "neuneinhalb tage und 2 stunden", Timedelta,
			[]Duration{{Days: 9.5, Time: 2 * time.Hour}}},
		{"dekade", "1 Dekade", RelativedeltaStrict,
			[]Duration{{Years: 10}}},
		{"jahrzehnt", "2 Jahrzehnte", RelativedeltaStrict,
			[]Duration{{Years: 20}}},
		{"jahrtausend", "2 Jahrtausende", RelativedeltaStrict,
			[]Duration{{Years: 2000}}},
		{"milliseconds flat", "500 Millisekunden", Timedelta,
			[]Duration{{Time: 500 * time.Millisecond}}},
		{"milliseconds relative", "500 Millisekunden", RelativedeltaStrict,
			[]Duration{{Time: 500 * time.Millisecond}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tg.ExtractDurations(tt.text, tt.res)
			if err != nil {
				t.Fatalf("ExtractDurations(%q) error: %v", tt.text, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractDurations(%q) = %d durations, want %d",
					tt.text, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Value != tt.want[i] {
					t.Errorf("duration %d = %+v, want %+v", i, got[i].Value, tt.want[i])
				}
			}
		})
	}
}

func TestGermanExtractTime(t *testing.T) {
	t.Parallel()
	tg := NewGermanTagger()
	anchor := d(2117, time.February, 3)

	tests := []struct {
		text   string
		hour   int
		minute int
	}{
		{"viertel vor 12", 11, 45},
		{"10 nach 8", 8, 10},
		{"um 7 uhr 30", 7, 30},
		{"um 7", 7, 0},
		{"7 uhr abends", 19, 0},
		{"14:30", 14, 30},
		{"mittags", 12, 0},
		{"am morgen", 6, 0},
		{"um mitternacht", 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			got, err := tg.ExtractTime(tt.text, anchor)
			if err != nil {
				t.Fatalf("ExtractTime(%q) error: %v", tt.text, err)
			}
			if got == nil {
				t.Fatalf("ExtractTime(%q) = nil", tt.text)
			}
			want := dt(2117, time.February, 3, tt.hour, tt.minute, 0)
			if !got.Value.Equal(want) {
				t.Errorf("ExtractTime(%q) = %v, want %v", tt.text, got.Value, want)
			}
		})
	}
}

func TestGermanExtractTimeNoMatch(t *testing.T) {
	t.Parallel()
	tg := NewGermanTagger()
	anchor := d(2117, time.February, 3)

	// bare "morgen" is the day, not the daytime
	for _, text := range []string{"", "hallo welt", "morgen", "\x00\xff"} {
		got, err := tg.ExtractTime(text, anchor)
		if err != nil {
			t.Fatalf("ExtractTime(%q) error: %v", text, err)
		}
		if got != nil {
			t.Errorf("ExtractTime(%q) = %v, want nil", text, got.Value)
		}
	}
}

func TestGermanExtractDate(t *testing.T) {
	t.Parallel()
	tg := NewGermanTagger()

	tests := []struct {
		name   string
		text   string
		anchor time.Time
		opts   Options
		want   time.Time
	}{
		{"preformatted dotted", "11.12.2018", ref, Options{}, d(2018, 12, 11)},
		{"preformatted single day", "1.12.2018", ref, Options{}, d(2018, 12, 1)},
		{"preformatted single month", "11.1.2018", ref, Options{}, d(2018, 1, 11)},
		{"preformatted minimal", "1.1.2018", ref, Options{}, d(2018, 1, 1)},
		{"preformatted short year", "11.12.18", ref, Options{}, d(2118, 12, 11)},
		{"preformatted no year", "1.12.", ref, Options{}, d(2117, 12, 1)},
		{"preformatted slashed", "11/12/2018", ref, Options{}, d(2018, 11, 12)},
		{"preformatted dashed", "11-12-2018", ref, Options{}, d(2018, 12, 11)},
		{"preformatted iso", "2018-12-11", ref, Options{}, d(2018, 12, 11)},
		{"preformatted big day", "11-21-2018", ref, Options{}, d(2018, 11, 21)},

		{"gestern", "gestern", ref, Options{}, d(2117, 2, 2)},
		{"heute", "heute", ref, Options{}, d(2117, 2, 3)},
		{"morgen", "morgen", ref, Options{}, d(2117, 2, 4)},
		{"übermorgen", "übermorgen", ref, Options{}, d(2117, 2, 5)},
		{"vorgestern", "vorgestern", ref, Options{}, d(2117, 2, 1)},

		{"tag mit zahl", "tag 1", ref, Options{}, d(2117, 2, 1)},
		{"kommenden tag", "kommenden tag", ref, Options{}, d(2117, 2, 4)},
		{"nächsten tag", "nächsten tag", ref, Options{}, d(2117, 2, 4)},
		{"letzten tag", "letzten tag", ref, Options{}, d(2117, 2, 2)},
		{"erster tag der woche", "am 1. Tag der Woche", ref, Options{}, d(2117, 2, 1)},
		{"erster tag im mai", "am 1. Tag im Mai", ref, Options{}, d(2117, 5, 1)},
		{"erster tag im jahr", "am 1. Tag im Jahr", ref, Options{}, d(2117, 1, 1)},
		{"in zwei tagen", "in zwei Tagen", ref, Options{}, d(2117, 2, 5)},
		{"vor zwei tagen", "vor zwei Tagen", ref, Options{}, d(2117, 2, 1)},
		{"tage vor ordinal", "zwei Tage vor dem 15.", ref, Options{}, d(2117, 2, 13)},
		{"tage nach datum", "zwei Tage nach dem 15. Mai", ref, Options{}, d(2117, 5, 17)},
		{"tage vor datum", "zwei Tage vor dem 15. Mai", ref, Options{}, d(2117, 5, 13)},

		{"weekday in satz", "Ich hatte am Montag eine Besprechung.", ref, Options{}, d(2117, 2, 1)},
		{"dienstag", "Dienstag", ref, Options{}, d(2117, 2, 2)},
		{"mittwoch", "Mittwoch", ref, Options{}, d(2117, 2, 3)},
		{"donnerstag", "Donnerstag", ref, Options{}, d(2117, 2, 4)},
		{"freitag", "Freitag", ref, Options{}, d(2117, 2, 5)},
		{"samstag", "Samstag", ref, Options{}, d(2117, 2, 6)},
		{"sonntag", "Sonntag", ref, Options{}, d(2117, 2, 7)},
		{"montag", "Montag", ref, Options{}, d(2117, 2, 1)},
		{"montag nächster woche", "Montag nächster Woche", ref, Options{}, d(2117, 2, 8)},
		{"nächsten montag", "nächsten Montag", ref, Options{}, d(2117, 2, 8)},
		{"letzten montag", "letzten Montag", ref, Options{}, d(2117, 2, 1)},
		{"erster samstag im jahr", "Erster Samstag im Jahr", ref, Options{}, d(2117, 1, 2)},
		{"erster samstag im juni", "Erster Samstag im Juni 2023", ref, Options{}, d(2023, 6, 3)},
		{"samstag der ersten juniwoche", "Samstag der ersten Woche im Juni 2023", ref, Options{}, d(2023, 6, 10)},
		{"samstag der woche 43", "Samstag in der Woche 43", ref, Options{}, d(2117, 10, 30)},
		{"erster samstag des monats", "Erster Samstag des Monats Mai 2023", ref, Options{}, d(2023, 5, 6)},
		{"erster samstag im jahr 2023", "Erster Samstag im Jahr 2023", ref, Options{}, d(2023, 1, 7)},
		{"montag vor einer woche", "Montag vor einer Woche", ref, Options{}, d(2117, 1, 25)},
		{"montag in einer woche", "Montag in einer Woche", ref, Options{}, d(2117, 2, 8)},

		{"zweite woche", "in der zweiten Woche", ref, Options{}, d(2117, 1, 11)},
		{"zweite woche im jahr", "in der zweiten Woche im jahr", ref, Options{}, d(2117, 1, 11)},
		{"zweite woche im jahr 2023", "in der zweiten Woche im jahr 2023", ref, Options{}, d(2023, 1, 9)},
		{"woche zwei", "in Woche zwei", ref, Options{}, d(2117, 1, 11)},
		{"dreiundvierzigste woche", "dreiundvierzigste Woche", ref, Options{}, d(2117, 10, 25)},
		{"nächste woche", "in der nächsten Woche", ref, Options{}, d(2117, 2, 8)},
		{"letzte woche", "in der letzten Woche", ref, Options{}, d(2117, 1, 25)},
		{"anfang nächster woche", "Anfang nächster Woche", ref, Options{}, d(2117, 2, 8)},
		{"mitte nächster woche", "Mitte nächster Woche", ref, Options{}, d(2117, 2, 11)},
		{"ende nächster woche", "Ende nächster Woche", ref, Options{}, d(2117, 2, 14)},
		{"nächste woche samstags", "nächste Woche samstags", ref, Options{}, d(2117, 2, 13)},
		{"samstag nächster woche", "Samstag nächster Woche", ref, Options{}, d(2117, 2, 13)},
		{"anfang letzter woche", "Anfang letzter Woche", ref, Options{}, d(2117, 1, 25)},
		{"mitte letzter woche", "Mitte letzter Woche", ref, Options{}, d(2117, 1, 28)},
		{"ende letzter woche", "Ende letzter Woche", ref, Options{}, d(2117, 1, 31)},
		{"in einer woche", "in einer Woche", ref, Options{}, d(2117, 2, 10)},
		{"vor einer woche", "vor einer Woche", ref, Options{}, d(2117, 1, 27)},
		{"zweite maiwoche", "wir haben einen termin in der zweiten Woche im Mai 2023", ref, Options{}, d(2023, 5, 8)},
		{"erste woche des jahres 2023", "Erste Woche des Jahres 2023", ref, Options{}, d(2023, 1, 2)},
		{"erste woche im jahr", "Erste Woche im Jahr", ref, Options{}, d(2117, 1, 4)},
		{"erste woche des nächsten monats", "in der ersten Woche des nächsten monats", ref, Options{}, d(2117, 3, 1)},

		{"im januar", "im Januar", ref, Options{}, d(2117, 1, 1)},
		{"im januar 2023", "im Januar 2023", ref, Options{}, d(2023, 1, 1)},
		{"im januar 23", "im Januar 23", ref, Options{}, d(2023, 1, 1)},
		{"zweiter monat", "im zweiten Monat", ref, Options{}, d(2117, 2, 1)},
		{"zweiter monat des jahres", "im zweiten Monat des Jahres", ref, Options{}, d(2117, 2, 1)},
		{"zweiter monat des jahres 2023", "im zweiten Monat des Jahres 2023", ref, Options{}, d(2023, 2, 1)},
		{"nächster monat", "im nächsten Monat", ref, Options{}, d(2117, 3, 1)},
		{"mitte nächsten monats", "Mitte nächsten Monats", ref, Options{}, d(2117, 3, 16)},
		{"mitte des monats", "Mitte des Monats", ref, Options{}, d(2117, 2, 15)},
		{"ende nächsten monats", "Ende nächsten Monats", ref, Options{}, d(2117, 3, 31)},
		{"letzter monat", "im letzten Monat", ref, Options{}, d(2117, 1, 1)},
		{"nächster monat am 15", "im nächsten Monat am 15.", ref, Options{}, d(2117, 3, 15)},
		{"letzter monat am 15", "im letzten Monat am 15.", ref, Options{}, d(2117, 1, 15)},
		{"elfter des monats", "am elften des monats", ref, Options{}, d(2117, 2, 11)},
		{"elfter des monats mai", "am elften des monats Mai", ref, Options{}, d(2117, 5, 11)},
		{"elfter des monats mai 2023", "am elften des monats Mai 2023", ref, Options{}, d(2023, 5, 11)},
		{"in zwei monaten", "in zwei Monaten", ref, Options{}, d(2117, 4, 3)},
		{"vor zwei monaten", "vor zwei Monaten", ref, Options{}, d(2116, 12, 3)},
		{"in zwei monaten am 15", "in zwei Monaten am 15.", ref, Options{}, d(2117, 4, 15)},
		{"vor zwei monaten am 15", "vor zwei Monaten am 15.", ref, Options{}, d(2116, 12, 15)},
		{"monate nach datum", "zwei Monate nach dem 15. Mai", ref, Options{}, d(2117, 7, 15)},
		{"monate vor datum", "zwei Monate vor dem 15. Mai", ref, Options{}, d(2117, 3, 15)},

		{"im jahr", "im Jahr", ref, Options{}, d(2117, 1, 1)},
		{"im jahr 2023", "im Jahr 2023", ref, Options{}, d(2023, 1, 1)},
		{"nächstes jahr", "im nächsten Jahr", ref, Options{}, d(2118, 1, 1)},
		{"letztes jahr", "im letzten Jahr", ref, Options{}, d(2116, 1, 1)},
		{"letzten jahres", "letzten Jahres", ref, Options{}, d(2116, 1, 1)},
		{"jahr 2023 mit tag", "im Jahr 2023 am 15. Mai", ref, Options{}, d(2023, 5, 15)},
		{"in zwei jahren", "in zwei Jahren", ref, Options{}, d(2119, 2, 3)},
		{"vor zwei jahren", "vor zwei Jahren", ref, Options{}, d(2115, 2, 3)},
		{"in zwei jahren mit tag", "in 2 Jahren am 15. Mai", ref, Options{}, d(2119, 5, 15)},
		{"tag in zwei jahren", "am 15. Mai in 2 Jahren", ref, Options{}, d(2119, 5, 15)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tg.ExtractDate(tt.text, tt.anchor, tt.opts)
			if err != nil {
				t.Fatalf("ExtractDate(%q) error: %v", tt.text, err)
			}
			if got == nil {
				t.Fatalf("ExtractDate(%q) = nil", tt.text)
			}
			if !got.Value.Equal(tt.want) {
				t.Errorf("ExtractDate(%q) = %v, want %v", tt.text, got.Value, tt.want)
			}
		})
	}
}

func TestGermanExtractDateSeasons(t *testing.T) {
	t.Parallel()
	tg := NewGermanTagger()
	anchor := d(2022, time.January, 1)
	south := Options{Hemisphere: calendar.SouthernHemisphere}

	tests := []struct {
		name   string
		text   string
		anchor time.Time
		opts   Options
		want   time.Time
	}{
		{"frühling", "im Frühling", anchor, Options{}, d(2022, 3, 20)},
		{"sommer", "im Sommer", anchor, Options{}, d(2022, 6, 21)},
		{"herbst", "im Herbst", anchor, Options{}, d(2022, 9, 23)},
		{"winter", "im Winter", anchor, Options{}, d(2022, 12, 21)},
		{"frühling süd", "im Frühling", anchor, south, d(2022, 9, 23)},
		{"sommer süd", "im Sommer", anchor, south, d(2022, 12, 21)},
		{"winter süd", "im Winter", anchor, south, d(2022, 6, 21)},
		{"herbst süd", "im Herbst", anchor, south, d(2022, 3, 20)},
		{"winter südhalbkugel", "im Winter auf der südhalbkugel", anchor, Options{}, d(2022, 6, 21)},
		{"kommender winter", "kommenden Winter", anchor, Options{}, d(2022, 12, 21)},
		{"nächster frühling", "im nächsten Frühling", anchor, Options{}, d(2022, 3, 20)},
		{"letzter sommer", "im letzten Sommer", anchor, Options{}, d(2021, 6, 21)},
		{"frühling 2023", "im Frühling 2023", ref, Options{}, d(2023, 3, 20)},
		{"nächster sommer", "im nächsten Sommer", anchor, Options{}, d(2022, 6, 21)},
		{"frühling nächsten jahres", "im Frühling nächsten Jahres", anchor, Options{}, d(2023, 3, 20)},
		{"frühling letzten jahres", "im Frühling letzten Jahres", anchor, Options{}, d(2021, 3, 20)},
		{"ende des sommers", "Ende des Sommers", anchor, Options{}, d(2022, 9, 23)},
		{"mitte des sommers", "Mitte des Sommers", anchor, Options{}, d(2022, 8, 7)},
		{"anfang des sommers", "Anfang des Sommers", anchor, Options{}, d(2022, 6, 21)},
		{"sommer mit tag", "im nächsten Sommer am 15. Mai", anchor, Options{}, d(2022, 5, 15)},
		{"tag im sommer", "15. Mai im nächsten Sommer", anchor, Options{}, d(2022, 5, 15)},
		{"letzter sommer mit tag", "im letzten Sommer am 15. Mai", anchor, Options{}, d(2021, 5, 15)},
		{"meteorologischer frühling", "Meteorologischer Frühling", ref, Options{}, d(2117, 3, 1)},
		{"meteorologischer sommer", "Meteorologischer Sommer", ref, Options{}, d(2117, 6, 1)},
		{"meteorologischer herbst", "Meteorologischer Herbst", ref, Options{}, d(2117, 9, 1)},
		{"meteorologischer winter", "Meteorologischer Winter", ref, Options{}, d(2117, 12, 1)},
		{"frühling in einem jahr", "Frühling in einem Jahr", d(2024, time.January, 1), Options{}, d(2025, 3, 20)},
		{"frühling vor einem jahr", "Frühling vor einem Jahr", d(2024, time.January, 1), Options{}, d(2023, 3, 20)},
		{"winter vor einem jahr", "im Winter vor einem Jahr", d(2024, time.January, 1), Options{}, d(2023, 12, 21)},
		{"zehnter tag des sommers", "zehnter tag des Sommers", d(2024, time.January, 1), Options{}, d(2024, 6, 29)},
		{"zweiter monat im sommer", "zweiten Monat im Sommer", d(2024, time.January, 1), Options{}, d(2024, 8, 1)},
		{"zweite woche im sommer 2023", "zweiten woche im Sommer 2023", d(2024, time.January, 1), Options{}, d(2023, 7, 3)},
		{"frühling des jahres 2023", "im Frühling des Jahres 2023", d(2024, time.January, 1), Options{}, d(2023, 3, 20)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tg.ExtractDate(tt.text, tt.anchor, tt.opts)
			if err != nil {
				t.Fatalf("ExtractDate(%q) error: %v", tt.text, err)
			}
			if got == nil {
				t.Fatalf("ExtractDate(%q) = nil", tt.text)
			}
			if !got.Value.Equal(tt.want) {
				t.Errorf("ExtractDate(%q) = %v, want %v", tt.text, got.Value, tt.want)
			}
		})
	}
}

func TestGermanExtractDateNamed(t *testing.T) {
	t.Parallel()
	tg := NewGermanTagger()

	tests := []struct {
		name   string
		text   string
		anchor time.Time
		want   time.Time
	}{
		{"tag der arbeit", "am Tag der Arbeit", ref, d(2117, 5, 1)},
		{"deutsche einheit", "am Tag der Deutschen Einheit", ref, d(2117, 10, 3)},
		{"deutsche einheit 2023", "am Tag der Deutschen Einheit 2023", ref, d(2023, 10, 3)},
		{"letzte ostern", "Letzte Ostern", d(2024, time.January, 1), d(2023, 4, 9)},
		{"nächste ostern", "Nächste Ostern", d(2024, time.January, 1), d(2024, 3, 31)},
		{"karfreitag", "Karfreitag", d(2023, time.January, 1), d(2023, 4, 7)},
		{"oktoberfest", "Oktoberfest", d(2023, time.January, 1), d(2023, 9, 16)},
		{"arbeit in einem jahr", "Tag der Arbeit in einem Jahr", ref, d(2118, 5, 1)},
		{"arbeit vor einem jahr", "Tag der Arbeit vor einem Jahr", ref, d(2116, 5, 1)},
		{"tage vor advent", "3 Tage vor dem ersten Advent", d(2023, time.January, 1), d(2023, 11, 30)},
		{"tage nach weihnachten", "3 Tage nach Weihnachten", d(2023, time.January, 1), d(2023, 12, 27)},
		{"zweite oktoberfestwoche", "Zweite Woche des Oktoberfests", ref, d(2117, 9, 25)},
		{"zweite oktoberfestwoche 2024", "Zweite Woche des Oktoberfests 2024", ref, d(2024, 9, 21)},
		{"dritter tag im advent", "Dritter Tag im Advent", ref, d(2117, 11, 30)},
		{"dritter tag des letzten advent", "Dritter Tag des letzten Advent", ref, d(2116, 12, 1)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tg.ExtractDate(tt.text, tt.anchor, Options{})
			if err != nil {
				t.Fatalf("ExtractDate(%q) error: %v", tt.text, err)
			}
			if got == nil {
				t.Fatalf("ExtractDate(%q) = nil", tt.text)
			}
			if !got.Value.Equal(tt.want) {
				t.Errorf("ExtractDate(%q) = %v, want %v", tt.text, got.Value, tt.want)
			}
		})
	}
}

func TestGermanExtractDateEras(t *testing.T) {
	t.Parallel()
	tg := NewGermanTagger()

	for _, text := range []string{"2460152.5 julianische tage", "2460152.5 JD"} {
		got, err := tg.ExtractDate(text, ref, Options{})
		if err != nil {
			t.Fatalf("ExtractDate(%q) error: %v", text, err)
		}
		if got == nil {
			t.Fatalf("ExtractDate(%q) = nil", text)
		}
		if want := d(2023, 7, 27); !got.Value.Equal(want) {
			t.Errorf("ExtractDate(%q) = %v, want %v", text, got.Value, want)
		}
	}

	got, err := tg.ExtractDate("2465 JDM", ref, Options{})
	if err != nil {
		t.Fatalf("ExtractDate(2465 JDM) error: %v", err)
	}
	if got != nil {
		t.Errorf("ExtractDate(2465 JDM) = %v, want nil", got.Value)
	}
}

func TestGermanExtractDateNoMatch(t *testing.T) {
	t.Parallel()
	tg := NewGermanTagger()

	for _, text := range []string{"", "hallo welt", "11-2d-1800"} {
		got, err := tg.ExtractDate(text, ref, Options{})
		if err != nil {
			t.Fatalf("ExtractDate(%q) error: %v", text, err)
		}
		if got != nil {
			t.Errorf("ExtractDate(%q) = %v, want nil", text, got.Value)
		}
	}
}

func TestGermanExtractDatetime(t *testing.T) {
	t.Parallel()
	tg := NewGermanTagger()

	tests := []struct {
		text string
		want time.Time
	}{
		{"morgen um 7", dt(2117, 2, 4, 7, 0, 0)},
		{"heute um 14:30", dt(2117, 2, 3, 14, 30, 0)},
		{"übermorgen um 8 uhr abends", dt(2117, 2, 5, 20, 0, 0)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			got, err := tg.ExtractDatetime(tt.text, ref, Options{})
			if err != nil {
				t.Fatalf("ExtractDatetime(%q) error: %v", tt.text, err)
			}
			if got == nil {
				t.Fatalf("ExtractDatetime(%q) = nil", tt.text)
			}
			if !got.Value.Equal(tt.want) {
				t.Errorf("ExtractDatetime(%q) = %v, want %v", tt.text, got.Value, tt.want)
			}
		})
	}
}

func TestGermanExtractHemisphere(t *testing.T) {
	t.Parallel()
	tg := NewGermanTagger()

	tests := []struct {
		text string
		want calendar.Hemisphere
		ok   bool
	}{
		{"auf der südhalbkugel", calendar.SouthernHemisphere, true},
		{"in der nördlichen hemisphäre", calendar.NorthernHemisphere, true},
		{"auf der nordhalbkugel", calendar.NorthernHemisphere, true},
		{"wann ist winter", calendar.NorthernHemisphere, false},
	}
	for _, tt := range tests {
		got, ok := tg.ExtractHemisphere(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ExtractHemisphere(%q) = %v, %v, want %v, %v",
				tt.text, got, ok, tt.want, tt.ok)
		}
	}
}
