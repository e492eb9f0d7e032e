package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cbegin/cyclepattern/mininotation"
	"github.com/cbegin/cyclepattern/pattern"
)

// Song is a tiny YAML song-list format that sequences several
// mini-notation strings back to back, grounded in ako-backing-tracks'
// track-definition file shape (a top-level struct with yaml tags, loaded
// via os.ReadFile + yaml.Unmarshal).
type Song struct {
	Tracks []SongTrack `yaml:"tracks"`
}

// SongTrack is one section of a Song: Pattern is mini-notation source,
// Cycles is how many cycles that section plays before the next one takes
// over, and Control (optional) renames the section's bare value onto a
// control key the way mininotation.ParseControl does.
type SongTrack struct {
	Pattern string `yaml:"pattern"`
	Cycles  int64  `yaml:"cycles"`
	Control string `yaml:"control,omitempty"`
}

// LoadSong reads and parses a --song YAML file.
func LoadSong(path string) (Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Song{}, err
	}
	var s Song
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Song{}, err
	}
	return s, nil
}

// Compile turns a Song into a single pattern.Pattern: each track becomes
// an ArrangementSection so the sections play back to back and the whole
// song loops once exhausted, the same role pattern.Arrangement plays for
// mini-notation's polymeter braces but used here at song-section scale.
func (s Song) Compile() (pattern.Pattern, error) {
	sections := make([]pattern.ArrangementSection, 0, len(s.Tracks))
	for _, tr := range s.Tracks {
		var (
			p   pattern.Pattern
			err error
		)
		if tr.Control != "" {
			p, err = mininotation.ParseControl(tr.Control, tr.Pattern)
		} else {
			p, err = mininotation.Parse(tr.Pattern)
		}
		if err != nil {
			return nil, err
		}
		cycles := tr.Cycles
		if cycles <= 0 {
			cycles = 1
		}
		sections = append(sections, pattern.ArrangementSection{Pattern: p, Cycles: cycles})
	}
	return pattern.NewArrangement(sections...), nil
}
