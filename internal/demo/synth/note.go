package synth

import (
	"math"
	"strconv"
	"strings"

	"github.com/cbegin/cyclepattern/voice"
)

var letterSemitone = map[byte]int{
	'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11,
}

// midiToFreq converts a MIDI note number to Hz, A4 (69) = 440.
func midiToFreq(note float64) float64 {
	return 440 * math.Pow(2, (note-69)/12)
}

// noteNameToMIDI parses a Tidal-style note name ("c", "cs4", "ef3", "a5")
// into a MIDI note number: a letter a-g, an optional 's'/'#' (sharp) or
// 'f' (flat), and an optional octave digit (default octave 5, matching
// Tidal's convention that middle "c" without an octave lands on c5).
func noteNameToMIDI(name string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return 0, false
	}
	semi, ok := letterSemitone[s[0]]
	if !ok {
		return 0, false
	}
	i := 1
	for i < len(s) && (s[i] == 's' || s[i] == '#' || s[i] == 'f') {
		if s[i] == 'f' {
			semi--
		} else {
			semi++
		}
		i++
	}
	octave := 5
	if i < len(s) {
		n, err := strconv.Atoi(s[i:])
		if err != nil {
			return 0, false
		}
		octave = n
	}
	midi := (octave+1)*12 + semi
	return float64(midi), true
}

// freqFromData resolves the frequency a voice should play at from an
// event's payload, checking the "freq", "note", and "n" keys in that
// order of precedence. defaultFreq is returned if none of them resolve.
func freqFromData(d voice.VoiceData, defaultFreq float64) float64 {
	if v, ok := d["freq"]; ok {
		if f, ok := v.AsFloat64(); ok {
			return f
		}
	}
	if v, ok := d["note"]; ok {
		if v.Kind == voice.KindString {
			if midi, ok := noteNameToMIDI(v.Str); ok {
				return midiToFreq(midi)
			}
		}
		if f, ok := v.AsFloat64(); ok {
			return midiToFreq(f + 60)
		}
	}
	if v, ok := d["n"]; ok {
		if f, ok := v.AsFloat64(); ok {
			return midiToFreq(f + 60)
		}
	}
	return defaultFreq
}

// gainFromData resolves a linear gain multiplier from an event's "gain"
// key, defaulting to 1 when absent or non-numeric.
func gainFromData(d voice.VoiceData) float64 {
	if v, ok := d["gain"]; ok {
		if f, ok := v.AsFloat64(); ok {
			return f
		}
	}
	return 1
}

// panFromData resolves a stereo position in -1..1 from an event's "pan"
// key, defaulting to center.
func panFromData(d voice.VoiceData) float64 {
	if v, ok := d["pan"]; ok {
		if f, ok := v.AsFloat64(); ok {
			if f < -1 {
				f = -1
			}
			if f > 1 {
				f = 1
			}
			return f
		}
	}
	return 0
}
