package synth

import (
	"math"
	"sync"

	"github.com/cbegin/cyclepattern/pattern"
	"github.com/cbegin/cyclepattern/qctx"
)

type envState int

const (
	envAttack envState = iota
	envDecay
	envSustain
	envRelease
	envOff
)

type demoVoice struct {
	active   bool
	age      int64
	freq     float64
	phase    float64
	gain     float64
	pan      float64
	env      float64
	envState envState
}

// onset is one scheduled note trigger, in absolute output frames.
type onset struct {
	frame int64
	freq  float64
	gain  float64
	pan   float64
}

// Engine renders p to a stereo float32 stream at a fixed tempo, the
// simplest possible reference audio.SampleSource for this module: one
// pulse-wave voice pool, no filters, no LFOs, matching the "demo only"
// scope spec.md's Non-goals carve out for real-time synthesis.
type Engine struct {
	mu sync.Mutex

	sampleRate    float64
	framesPerCyc  float64
	pat           pattern.Pattern
	ctx           qctx.Context
	params        Params
	voices        []demoVoice
	framesEmitted int64
	scheduled     int64 // next cycle index not yet queried
	pending       []onset
}

// New builds an Engine that plays p at cps cycles per second (Tidal calls
// this "cps"; 0.5 is a common default tempo for a 4-on-the-floor pattern).
func New(sampleRate int, p pattern.Pattern, ctx qctx.Context, cps float64, params Params) *Engine {
	if params.Voices <= 0 {
		params.Voices = 8
	}
	if cps <= 0 {
		cps = 0.5
	}
	return &Engine{
		sampleRate:   float64(sampleRate),
		framesPerCyc: float64(sampleRate) / cps,
		pat:          p,
		ctx:          ctx,
		params:       params,
		voices:       make([]demoVoice, params.Voices),
	}
}

// Process implements audio.SampleSource: dst is interleaved stereo
// float32, len(dst) always even.
func (e *Engine) Process(dst []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	frames := int64(len(dst) / 2)
	e.scheduleThrough(e.framesEmitted + frames)
	for i := int64(0); i < frames; i++ {
		global := e.framesEmitted + i
		e.fireOnsetsAt(global)
		l, r := e.renderFrame()
		dst[2*i] = l
		dst[2*i+1] = r
	}
	e.framesEmitted += frames
}

// scheduleThrough queries p one cycle at a time until every onset up to
// targetFrame has been converted to absolute-frame pending entries (event
// fragments without an onset are skipped, so a long note is triggered
// only once). A
// pattern that errors on query (a malformed host Transform, most likely)
// simply stops scheduling further cycles rather than panicking the audio
// callback — the engine keeps playing whatever was already scheduled.
func (e *Engine) scheduleThrough(targetFrame int64) {
	for float64(e.scheduled)*e.framesPerCyc <= float64(targetFrame) {
		events, err := pattern.QueryCycles(e.pat, e.scheduled, e.scheduled+1, e.ctx)
		if err != nil {
			return
		}
		for _, ev := range events {
			if !ev.HasOnset() {
				continue
			}
			// ev.Part.Begin is an absolute cycle position (QueryCycles
			// queries the span [scheduled, scheduled+1) in cycle units),
			// not a 0..1 fraction of the current cycle, so it converts to
			// an absolute frame directly.
			frame := ev.Part.Begin.Float64() * e.framesPerCyc
			e.pending = append(e.pending, onset{
				frame: int64(frame),
				freq:  freqFromData(ev.Data, 220),
				gain:  gainFromData(ev.Data),
				pan:   panFromData(ev.Data),
			})
		}
		e.scheduled++
	}
}

func (e *Engine) fireOnsetsAt(frame int64) {
	kept := e.pending[:0]
	for _, o := range e.pending {
		if o.frame == frame {
			e.noteOn(o)
			continue
		}
		kept = append(kept, o)
	}
	e.pending = kept
}

func (e *Engine) noteOn(o onset) {
	slot := e.stealVoice()
	v := &e.voices[slot]
	*v = demoVoice{
		active:   true,
		freq:     o.freq,
		gain:     o.gain,
		pan:      o.pan,
		envState: envAttack,
	}
}

func (e *Engine) stealVoice() int {
	for i := range e.voices {
		if !e.voices[i].active {
			return i
		}
	}
	oldest, oldestAge := 0, int64(-1)
	for i := range e.voices {
		if e.voices[i].age > oldestAge {
			oldest, oldestAge = i, e.voices[i].age
		}
	}
	return oldest
}

func (e *Engine) renderFrame() (float32, float32) {
	var l, r float64
	for i := range e.voices {
		v := &e.voices[i]
		if !v.active {
			continue
		}
		v.age++
		env := e.advanceEnv(v)
		if !v.active {
			continue
		}
		sample := e.pulse(v)
		sig := sample * env * v.gain * e.params.VelocityAmp * e.params.MasterGain
		angle := (v.pan + 1) / 2 * (math.Pi / 2)
		l += sig * math.Cos(angle)
		r += sig * math.Sin(angle)
	}
	return float32(clamp(l, -1, 1)), float32(clamp(r, -1, 1))
}

func (e *Engine) pulse(v *demoVoice) float64 {
	dt := v.freq / e.sampleRate
	v.phase += dt
	if v.phase >= 1 {
		v.phase -= 1
	}
	if v.phase < e.params.PulseDuty {
		return 1
	}
	return -1
}

func (e *Engine) advanceEnv(v *demoVoice) float64 {
	switch v.envState {
	case envAttack:
		step := 1.0 / (e.params.AttackSec * e.sampleRate)
		if step <= 0 {
			step = 1
		}
		v.env += step
		if v.env >= 1 {
			v.env = 1
			v.envState = envDecay
		}
	case envDecay:
		step := (1 - e.params.SustainLvl) / (e.params.DecaySec * e.sampleRate)
		if step <= 0 {
			step = 1
		}
		v.env -= step
		if v.env <= e.params.SustainLvl {
			v.env = e.params.SustainLvl
			v.envState = envSustain
		}
	case envSustain:
		// Every onset here is a one-shot hit, never a held note (the
		// pattern engine reports onset timing, not note-off messages), so
		// sustain is instantaneous and release starts on the very next
		// frame.
		v.envState = envRelease
	case envRelease:
		step := e.params.SustainLvl / (e.params.ReleaseSec * e.sampleRate)
		if step <= 0 {
			step = 1
		}
		v.env -= step
		if v.env <= 0.0001 {
			v.env = 0
			v.envState = envOff
			v.active = false
		}
	case envOff:
		v.active = false
		v.env = 0
	}
	return v.env
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
