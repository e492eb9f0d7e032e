package mininotation

import (
	"github.com/cbegin/cyclepattern/pattern"
)

// Parse compiles mini-notation source into a pattern.Pattern tree using
// DefaultConfig.
func Parse(src string) (pattern.Pattern, error) {
	return ParseWithConfig(src, DefaultConfig())
}

// ParseControl compiles src and renames every event's bare value onto
// key, the mini-notation equivalent of Tidal's `.note("a b")` /
// `.s("bd sn")` control constructors.
func ParseControl(key, src string) (pattern.Pattern, error) {
	p, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return pattern.Labeled{Key: key, Child: p}, nil
}

// ParseWithConfig compiles mini-notation source into a pattern.Pattern
// tree under an explicit Config.
func ParseWithConfig(src string, cfg Config) (pattern.Pattern, error) {
	p := &parser{lx: newLexer(src), src: src, cfg: cfg}
	if err := p.advance(); err != nil {
		return nil, toPerr("mininotation.Parse", src, err)
	}
	result, err := p.parseStack()
	if err != nil {
		return nil, toPerr("mininotation.Parse", src, err)
	}
	if p.cur.kind != tokEOF {
		return nil, toPerr("mininotation.Parse", src, errAt(p.cur.pos, "unexpected trailing input %q", p.cur.text))
	}
	return result, nil
}

type parser struct {
	lx  *lexer
	cur token
	src string
	cfg Config
}

func (p *parser) advance() error {
	tok, err := p.lx.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// startsAtom reports whether k can begin a term. NUMBER is included
// alongside IDENT (a widening of spec.md §6's literal atom grammar) since
// bare numeric steps ("n(\"0 3 7\")") are exactly as common in practice
// as note names, and compileAtomValue already auto-types either.
func startsAtom(k tokenKind) bool {
	switch k {
	case tokIdent, tokNumber, tokSilence, tokLBracket, tokLAngle:
		return true
	default:
		return false
	}
}

// parseStack implements `stack := choice (',' choice)*`, mini-notation's
// comma operator (pattern.Stack).
func (p *parser) parseStack() (pattern.Pattern, error) {
	first, err := p.parseChoice()
	if err != nil {
		return nil, err
	}
	children := []pattern.Pattern{first}
	for p.cur.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseChoice()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return pattern.NewStack(children...), nil
}

// parseChoice implements `choice := seq ('|' seq)*`, mini-notation's pipe
// operator (pattern.Choice, one branch picked at random per cycle).
func (p *parser) parseChoice() (pattern.Pattern, error) {
	first, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	children := []pattern.Pattern{first}
	for p.cur.kind == tokPipe {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return pattern.NewChoice(children...)
}

// parseSeq implements `seq := term (WS+ term)*`. Each term contributes
// one or more steps (a `!n` replicate postfix duplicates its term into n
// steps instead of a single weighted one).
func (p *parser) parseSeq() (pattern.Pattern, error) {
	terms, err := p.parseSeqTerms()
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, errAt(p.cur.pos, "empty group")
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return pattern.NewSequence(terms...), nil
}

// parseSeqTerms collects the flat list of per-step patterns a seq/branch
// parses to, expanding any `!n` replicate postfix in place. Shared by
// parseSeq and the polymeter branch parser, which needs the raw step
// list rather than a single merged Sequence.
func (p *parser) parseSeqTerms() ([]pattern.Pattern, error) {
	var terms []pattern.Pattern
	for startsAtom(p.cur.kind) {
		term, replicate, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		for i := 0; i < replicate; i++ {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

// parseTerm implements `term := atom postfix*`.
func (p *parser) parseTerm() (pattern.Pattern, int, error) {
	result, err := p.parseAtom()
	if err != nil {
		return nil, 0, err
	}
	replicate := 1
postfixLoop:
	for {
		switch p.cur.kind {
		case tokAt:
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
			w, err := p.expectNumber()
			if err != nil {
				return nil, 0, err
			}
			result = pattern.Weighted{WeightValue: p.cfg.numberToRational(w), Child: result}
		case tokStar:
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
			n, err := p.expectNumber()
			if err != nil {
				return nil, 0, err
			}
			result, err = pattern.NewFast(p.cfg.numberToRational(n), result)
			if err != nil {
				return nil, 0, err
			}
		case tokSlash:
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
			n, err := p.expectNumber()
			if err != nil {
				return nil, 0, err
			}
			result, err = pattern.NewSlow(p.cfg.numberToRational(n), result)
			if err != nil {
				return nil, 0, err
			}
		case tokQuestion:
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
			prob := p.cfg.DefaultDegradeProbability
			if p.cur.kind == tokNumber {
				n, err := p.expectNumber()
				if err != nil {
					return nil, 0, err
				}
				prob = n.fval
				if n.isInt {
					prob = float64(n.ival)
				}
			}
			result, err = pattern.NewDegrade(prob, result)
			if err != nil {
				return nil, 0, err
			}
		case tokBang:
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
			replicate = 2
			if p.cur.kind == tokNumber {
				n, err := p.expectNumber()
				if err != nil {
					return nil, 0, err
				}
				if !n.isInt || n.ival <= 0 {
					return nil, 0, errAt(n.pos, "replicate count must be a positive integer")
				}
				replicate = int(n.ival)
			}
		case tokLParen:
			euclid, err := p.parseEuclidTuple(result)
			if err != nil {
				return nil, 0, err
			}
			result = euclid
		default:
			break postfixLoop
		}
	}
	return result, replicate, nil
}

// parseEuclidTuple implements the `'(' number ',' number (',' number)?
// ')'` postfix, wrapping child in pattern.Euclidean.
func (p *parser) parseEuclidTuple(child pattern.Pattern) (pattern.Pattern, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	pulsesTok, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if !pulsesTok.isInt {
		return nil, errAt(pulsesTok.pos, "euclid pulses must be an integer")
	}
	if p.cur.kind != tokComma {
		return nil, errAt(p.cur.pos, "expected ',' in euclid tuple, got %q", p.cur.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	stepsTok, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if !stepsTok.isInt {
		return nil, errAt(stepsTok.pos, "euclid steps must be an integer")
	}
	rotation := 0
	if p.cur.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rotTok, err := p.expectNumber()
		if err != nil {
			return nil, err
		}
		if !rotTok.isInt {
			return nil, errAt(rotTok.pos, "euclid rotation must be an integer")
		}
		rotation = int(rotTok.ival)
	}
	if p.cur.kind != tokRParen {
		return nil, errAt(p.cur.pos, "expected ')' to close euclid tuple, got %q", p.cur.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	euclid, err := pattern.NewEuclidean(int(pulsesTok.ival), int(stepsTok.ival), rotation, child)
	if err != nil {
		return nil, err
	}
	return euclid, nil
}

// expectNumber consumes and returns the current token, which must be a
// number.
func (p *parser) expectNumber() (token, error) {
	if p.cur.kind != tokNumber {
		return token{}, errAt(p.cur.pos, "expected a number, got %q", p.cur.text)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return tok, nil
}

// parseAtom implements `atom := IDENT | '~' | '[' pat ']' | '<' pat '>'`.
func (p *parser) parseAtom() (pattern.Pattern, error) {
	switch p.cur.kind {
	case tokIdent, tokNumber:
		text := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return atomPattern(text), nil
	case tokSilence:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return pattern.Gap{}, nil
	case tokLBracket:
		openPos := p.cur.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind == tokRBracket {
			return nil, errAt(openPos, "empty group '[]'")
		}
		inner, err := p.parseStack()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRBracket {
			return nil, errAt(p.cur.pos, "unmatched '[' at byte %d", openPos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	case tokLAngle:
		return p.parsePolymeter()
	case tokEOF:
		return nil, errAt(p.cur.pos, "unexpected end of input")
	default:
		return nil, errAt(p.cur.pos, "unexpected token %q", p.cur.text)
	}
}

// parsePolymeter implements `'<' pat '>'`: each whitespace-separated
// step of the content alternates across successive cycles rather than
// subdividing a single cycle, and a comma-separated branch stacks
// independently-alternating layers — spec.md §6's "<...> alternates
// between children across cycles", realized here as one
// pattern.Arrangement section per step (each Cycles: 1), looping.
func (p *parser) parsePolymeter() (pattern.Pattern, error) {
	openPos := p.cur.pos
	if err := p.advance(); err != nil { // consume '<'
		return nil, err
	}
	var branches [][]pattern.Pattern
	for {
		terms, err := p.parseSeqTerms()
		if err != nil {
			return nil, err
		}
		if len(terms) == 0 {
			return nil, errAt(p.cur.pos, "empty polymeter branch")
		}
		branches = append(branches, terms)
		if p.cur.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.cur.kind != tokRAngle {
		return nil, errAt(p.cur.pos, "unmatched '<' at byte %d", openPos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	built := make([]pattern.Pattern, len(branches))
	for i, terms := range branches {
		sections := make([]pattern.ArrangementSection, len(terms))
		for j, t := range terms {
			sections[j] = pattern.ArrangementSection{Pattern: t, Cycles: 1}
		}
		built[i] = pattern.NewArrangement(sections...)
	}
	var result pattern.Pattern
	if len(built) == 1 {
		result = built[0]
	} else {
		result = pattern.NewStack(built...)
	}
	if p.cur.kind == tokPercent {
		if err := p.advance(); err != nil {
			return nil, err
		}
		targetTok, err := p.expectNumber()
		if err != nil {
			return nil, err
		}
		if !targetTok.isInt || targetTok.ival <= 0 {
			return nil, errAt(targetTok.pos, "polymeter %% target must be a positive integer")
		}
		result, err = pattern.NewPolymeterSteps(int(targetTok.ival), result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
