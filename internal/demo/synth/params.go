// Package synth is the simplest possible square-wave generator that can
// render a pattern.Pattern to audio, playing the same reference-backend
// role internal/chiptune and internal/fm play for the teacher's MML
// player: an implementation of the audio.SampleSource contract, not part
// of the pattern engine itself. It exists only so cmd/cycleplay has
// something to listen to.
package synth

// Params tunes the demo engine's voice pool and envelope, grounded on the
// teacher's chiptune.Params shape but trimmed to the one waveform this
// package renders.
type Params struct {
	Voices      int
	MasterGain  float64
	AttackSec   float64
	DecaySec    float64
	SustainLvl  float64
	ReleaseSec  float64
	PulseDuty   float64
	VelocityAmp float64
}

// DefaultParams returns sensible defaults for a short, percussive demo
// voice — enough envelope shaping to avoid clicks, nothing more.
func DefaultParams() Params {
	return Params{
		Voices:      8,
		MasterGain:  0.3,
		AttackSec:   0.003,
		DecaySec:    0.08,
		SustainLvl:  0.4,
		ReleaseSec:  0.06,
		PulseDuty:   0.5,
		VelocityAmp: 0.8,
	}
}
