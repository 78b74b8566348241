package datetime

import (
	"errors"
	"testing"
	"time"
)

func TestEnglishExtractDurations(t *testing.T) {
	t.Parallel()
	tg := NewEnglishTagger()

	tests := []struct {
		name string
		text string
		res  DurationResolution
		want []Duration
	}{
		{"article as one", "remind me in a minute", Timedelta,
			[]Duration{{Time: time.Minute}}},
		{"touching merge", "10 minutes 5 seconds", Timedelta,
			[]Duration{{Time: 10*time.Minute + 5*time.Second}}},
		{"and merge", "10 minutes and 5 seconds", Timedelta,
			[]Duration{{Time: 10*time.Minute + 5*time.Second}}},
		{"separated stay apart", "wait 10 seconds then wait 5 hours", Timedelta,
			[]Duration{{Time: 10 * time.Second}, {Time: 5 * time.Hour}}},
		{"flattened month", "1.5 months", Timedelta,
			[]Duration{{Days: 45}}},
		{"fallback flattens fraction", "1.5 months", RelativedeltaFallback,
			[]Duration{{Days: 45}}},
		{"approximate folds fraction", "1.5 years", RelativedeltaApproximate,
			[]Duration{{Years: 1, Months: 6}}},
		{"relative weeks", "3 weeks", RelativedeltaStrict,
			[]Duration{{Days: 21}}},
		{"relative centuries", "2 centuries", RelativedeltaStrict,
			[]Duration{{Years: 200}}},
		{"flat decade", "a decade", Timedelta,
			[]Duration{{Days: 3650}}},
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

func TestEnglishExtractDurationStrictRejectsFractions(t *testing.T) {
	t.Parallel()
	tg := NewEnglishTagger()

	_, err := tg.ExtractDurations("1.5 months", RelativedeltaStrict)
	if !errors.Is(err, ErrAmbiguousUnit) {
		t.Fatalf("error = %v, want ErrAmbiguousUnit", err)
	}
}

func TestEnglishExtractDurationSpan(t *testing.T) {
	t.Parallel()
	tg := NewEnglishTagger()

	got, err := tg.ExtractDuration("remind me in 10 minutes and 5 seconds please", Timedelta)
	if err != nil {
		t.Fatalf("ExtractDuration error: %v", err)
	}
	if got == nil {
		t.Fatal("ExtractDuration = nil")
	}
	if want := "10 minutes and 5 seconds"; got.Text() != want {
		t.Errorf("Text() = %q, want %q", got.Text(), want)
	}
	if got.StartIndex() != 3 || got.EndIndex() != 7 {
		t.Errorf("span = [%d, %d], want [3, 7]", got.StartIndex(), got.EndIndex())
	}

	none, err := tg.ExtractDuration("no duration here", Timedelta)
	if err != nil {
		t.Fatalf("ExtractDuration error: %v", err)
	}
	if none != nil {
		t.Errorf("ExtractDuration without a duration = %+v, want nil", none.Value)
	}
}

func TestDurationTotals(t *testing.T) {
	t.Parallel()
	tg := NewEnglishTagger()

	got, err := tg.ExtractDuration("90 minutes", Timedelta)
	if err != nil || got == nil {
		t.Fatalf("ExtractDuration = %v, %v", got, err)
	}
	if hours := got.Value.Total(TotalHours); hours != 1.5 {
		t.Errorf("Total(TotalHours) = %v, want 1.5", hours)
	}

	got, err = tg.ExtractDuration("2 weeks", Timedelta)
	if err != nil || got == nil {
		t.Fatalf("ExtractDuration = %v, %v", got, err)
	}
	if days := got.Value.Total(TotalDays); days != 14 {
		t.Errorf("Total(TotalDays) = %v, want 14", days)
	}
}

func TestDurationArithmetic(t *testing.T) {
	t.Parallel()

	rd := Duration{Years: 1, Months: 2}
	if got, want := rd.AddTo(d(2020, 1, 15)), d(2021, 3, 15); !got.Equal(want) {
		t.Errorf("AddTo = %v, want %v", got, want)
	}
	if got, want := rd.SubFrom(d(2021, 3, 15)), d(2020, 1, 15); !got.Equal(want) {
		t.Errorf("SubFrom = %v, want %v", got, want)
	}

	sum := Duration{Time: time.Hour}.Add(Duration{Days: 1, Time: 30 * time.Minute})
	if sum.Days != 1 || sum.Time != 90*time.Minute {
		t.Errorf("Add = %+v", sum)
	}
	if !(Duration{}).IsZero() || sum.IsZero() {
		t.Error("IsZero misreports")
	}
	neg := sum.Negated()
	if neg.Days != -1 || neg.Time != -90*time.Minute {
		t.Errorf("Negated = %+v", neg)
	}
}
