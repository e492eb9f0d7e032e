package script

import (
	"errors"
	"testing"

	"github.com/cbegin/cyclepattern/pattern"
	"github.com/cbegin/cyclepattern/perr"
	"github.com/cbegin/cyclepattern/qctx"
	"github.com/cbegin/cyclepattern/voice"
)

func atom(s string) pattern.Pattern {
	return pattern.NewAtomic(voice.New().With(pattern.ValueKey, voice.String(s)))
}

func TestCallableApplyDelegatesToFn(t *testing.T) {
	called := false
	c := NewCallable("double", HostFunc(func(p pattern.Pattern) (pattern.Pattern, error) {
		called = true
		return pattern.NewStack(p, p), nil
	}))
	out, err := c.Apply(atom("bd"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !called {
		t.Fatalf("expected wrapped function to run")
	}
	events, err := pattern.QueryCycles(out, 0, 1, qctx.Context{})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 stacked events, got %d", len(events))
	}
}

func TestCallableApplyWithNilFnErrors(t *testing.T) {
	c := Callable{ID: NewCallable("noop", nil).ID}
	if _, err := c.Apply(atom("bd")); err == nil {
		t.Fatalf("expected error for unbound callable")
	} else if !perr.Is(err, perr.ScriptError) {
		t.Fatalf("expected ScriptError, got %v", err)
	}
}

func TestAsPatternTransformSucceeds(t *testing.T) {
	c := NewCallable("identity", HostFunc(func(p pattern.Pattern) (pattern.Pattern, error) {
		return p, nil
	}))
	sup := pattern.Superimpose{Transform: c.AsPatternTransform(), Child: atom("bd")}
	events, err := pattern.QueryCycles(sup, 0, 1, qctx.Context{})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected superimpose to double the one event, got %d", len(events))
	}
}

func TestAsPatternTransformPropagatesFailureAsScriptError(t *testing.T) {
	wantCause := errors.New("host blew up")
	c := NewCallable("broken", HostFunc(func(p pattern.Pattern) (pattern.Pattern, error) {
		return nil, wantCause
	}))
	sup := pattern.Superimpose{Transform: c.AsPatternTransform(), Child: atom("bd")}
	_, err := pattern.QueryCycles(sup, 0, 1, qctx.Context{})
	if err == nil {
		t.Fatalf("expected an error from the failing callback")
	}
	if !perr.Is(err, perr.ScriptError) {
		t.Fatalf("expected ScriptError, got %v", err)
	}
	if !errors.Is(err, wantCause) {
		t.Fatalf("expected wrapped cause to be wantCause, got %v", err)
	}
}

func TestAsPatternTransformDoesNotPanicPastRecover(t *testing.T) {
	c := NewCallable("broken", HostFunc(func(p pattern.Pattern) (pattern.Pattern, error) {
		return nil, errors.New("boom")
	}))
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic should have been recovered by QueryCycles, got %v", r)
		}
	}()
	sup := pattern.Superimpose{Transform: c.AsPatternTransform(), Child: atom("bd")}
	if _, err := pattern.QueryCycles(sup, 0, 1, qctx.Context{}); err == nil {
		t.Fatalf("expected error")
	}
}

type fakeEvaluator struct {
	patterns map[string]pattern.Pattern
}

func (f fakeEvaluator) Eval(src string) (pattern.Pattern, error) {
	p, ok := f.patterns[src]
	if !ok {
		return nil, perr.Newf(perr.ScriptError, "fakeEvaluator.Eval", "unknown program %q", src)
	}
	return p, nil
}

func TestEvaluatorContractAgainstFake(t *testing.T) {
	var ev Evaluator = fakeEvaluator{patterns: map[string]pattern.Pattern{
		"bd sn": pattern.NewSequence(atom("bd"), atom("sn")),
	}}
	p, err := ev.Eval("bd sn")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	events, err := pattern.QueryCycles(p, 0, 1, qctx.Context{})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if _, err := ev.Eval("garbage"); err == nil {
		t.Fatalf("expected error for unknown program")
	}
}
