// Package data embeds the synonym tables for named dates and named eras.
package data

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed named_dates.yaml
var namedDatesYAML []byte

// NamedDate is a celebration or observance known by name.
type NamedDate struct {
	Name       string   `yaml:"name"`
	Synonyms   []string `yaml:"synonyms"`
	SynonymsDE []string `yaml:"synonyms_de"`
}

// Era is a calendar era anchored at a Gregorian reference date.
type Era struct {
	Name       string   `yaml:"name"`
	Epoch      string   `yaml:"epoch"`
	Synonyms   []string `yaml:"synonyms"`
	SynonymsDE []string `yaml:"synonyms_de"`
}

// EpochDate parses the era reference point.
func (e Era) EpochDate() time.Time {
	t, err := time.Parse("2006-01-02", e.Epoch)
	if err != nil {
		panic(fmt.Sprintf("data: bad era epoch %q: %v", e.Epoch, err))
	}
	return t
}

type tables struct {
	NamedDates []NamedDate `yaml:"named_dates"`
	Eras       []Era       `yaml:"eras"`
}

var loaded tables

func init() {
	if err := yaml.Unmarshal(namedDatesYAML, &loaded); err != nil {
		panic(fmt.Sprintf("data: malformed named_dates.yaml: %v", err))
	}
}

// NamedDates returns the named-date synonym table in match order.
func NamedDates() []NamedDate { return loaded.NamedDates }

// Eras returns the era table in match order.
func Eras() []Era { return loaded.Eras }
