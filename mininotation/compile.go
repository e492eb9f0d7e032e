package mininotation

import (
	"strconv"

	"github.com/cbegin/cyclepattern/pattern"
	"github.com/cbegin/cyclepattern/rational"
	"github.com/cbegin/cyclepattern/voice"
)

// Config mirrors the teacher's plain-struct ParserConfig (internal/mml's
// ParserConfig/DefaultParserConfig) rather than a flag or env-coupled
// options type: mini-notation parsing takes exactly the knobs it needs,
// passed in by the embedder.
type Config struct {
	// MaxDenominator bounds the denominator used when a decimal literal
	// (weight, fast/slow factor) is converted to an exact Rational; a
	// degrade probability stays a float64. <= 0 defaults to rational.FromFloat's own default.
	MaxDenominator int64
	// DefaultDegradeProbability is used by a bare "?" with no numeric
	// argument (Strudel/Tidal's own default is one-half).
	DefaultDegradeProbability float64
}

// DefaultConfig returns the package's default Config.
func DefaultConfig() Config {
	return Config{MaxDenominator: 1_000_000, DefaultDegradeProbability: 0.5}
}

// compileAtomValue turns a bare identifier into a typed VoiceValue:
// integer and decimal literals become numbers (for numeric mini-notation
// like n("0 3 7")), everything else is a string (note/sample names like
// "bd" or "cs4").
func compileAtomValue(ident string) voice.VoiceValue {
	if iv, err := strconv.ParseInt(ident, 10, 64); err == nil {
		return voice.Int(iv)
	}
	if fv, err := strconv.ParseFloat(ident, 64); err == nil {
		return voice.Number(fv)
	}
	return voice.String(ident)
}

// atomPattern returns the one-event-per-cycle pattern.Atomic carrying
// ident's value under pattern.ValueKey, the shared convention every bare
// mini-notation literal writes its scalar under.
func atomPattern(ident string) pattern.Pattern {
	return pattern.NewAtomic(voice.New().With(pattern.ValueKey, compileAtomValue(ident)))
}

func (c Config) numberToRational(tok token) rational.Rational {
	if tok.isInt {
		return rational.FromInt(tok.ival)
	}
	return rational.FromFloat(tok.fval, c.MaxDenominator)
}
