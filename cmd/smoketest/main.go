// smoketest runs the extraction pipeline over a corpus of sample
// utterances with a small worker pool and reports per-category counts.
// It exists to catch gross regressions and data-table mistakes quickly:
//
//	go run ./cmd/smoketest
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/emphasize/ovos-classifiers/datetime"
	"github.com/emphasize/ovos-classifiers/numbers"
)

const maxWorkers = 4

type sample struct {
	lang string
	text string
}

var samples = []sample{
	{"en", "wake me up at 7 30 tomorrow morning"},
	{"en", "set a timer for twenty two minutes and 5 seconds"},
	{"en", "what happened two thousand years ago"},
	{"en", "remind me on the first monday of may"},
	{"en", "is easter sunday in march next year"},
	{"en", "the meeting is on 5/28/2027 at noon"},
	{"en", "next friday at a quarter past nine"},
	{"en", "what is the weather like the day after tomorrow"},
	{"en", "christmas eve 2030"},
	{"en", "the 3rd week of june"},
	{"en", "summer solstice in the southern hemisphere"},
	{"en", "one hundred and twenty five point seven"},
	{"de", "weck mich um 7 uhr 30"},
	{"de", "stelle einen timer auf zwei minuten und zehn sekunden"},
	{"de", "viertel vor 12 mittags"},
	{"de", "in zwei wochen"},
	{"de", "auf der südhalbkugel"},
	{"de", "zweihundertvierundfünfzig"},
}

type stats struct {
	mu        sync.Mutex
	utterance int
	dates     int
	times     int
	durations int
	nums      int
	errors    int
}

func main() {
	anchor := time.Now().UTC()
	en := datetime.NewEnglishTagger()
	de := datetime.NewGermanTagger()
	enNum := numbers.NewEnglish()
	deNum := numbers.NewGerman()

	var st stats
	jobs := make(chan sample)
	var wg sync.WaitGroup

	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				st.mu.Lock()
				st.utterance++
				st.mu.Unlock()

				switch s.lang {
				case "en":
					dt, err := en.ExtractDatetime(s.text, anchor, datetime.Options{})
					durs, derr := en.ExtractDurations(s.text, datetime.Timedelta)
					ns := enNum.ExtractNumbers(s.text, numbers.Options{Fractions: true, ShortScale: true})
					st.mu.Lock()
					if err != nil || derr != nil {
						st.errors++
					}
					if dt != nil {
						st.dates++
						fmt.Printf("en %-55q -> %s\n", s.text, dt.Value.Format(time.RFC3339))
					}
					st.durations += len(durs)
					st.nums += len(ns)
					st.mu.Unlock()
				case "de":
					tm, err := de.ExtractTime(s.text, anchor)
					durs, derr := de.ExtractDurations(s.text, datetime.Timedelta)
					ns := deNum.ExtractNumbers(s.text, numbers.Options{Fractions: true})
					st.mu.Lock()
					if err != nil || derr != nil {
						st.errors++
					}
					if tm != nil {
						st.times++
						fmt.Printf("de %-55q -> %s\n", s.text, tm.Value.Format("15:04"))
					}
					st.durations += len(durs)
					st.nums += len(ns)
					st.mu.Unlock()
				}
			}
		}()
	}

	for _, s := range samples {
		jobs <- s
	}
	close(jobs)
	wg.Wait()

	fmt.Printf("\n%d utterances: %d dates, %d times, %d durations, %d numbers, %d errors\n",
		st.utterance, st.dates, st.times, st.durations, st.nums, st.errors)
	if st.errors > 0 {
		os.Exit(1)
	}
}
