package pattern

import "fmt"

// Tree renders p as an approximate mini-notation string, reversing (best
// effort) what mininotation.Parse would have built. It exists for
// debugging and cmd/cycledump --tree — round-tripping isn't guaranteed
// (some combinators, e.g. Bind or a script.Callable-backed Superimpose,
// have no mini-notation surface syntax at all and render as their Go type
// name), the same "approximate, not authoritative" spirit as the teacher's
// Score.String() debug dump.
func Tree(p Pattern) string {
	if p == nil {
		return "~"
	}
	switch v := p.(type) {
	case Atomic:
		return fmt.Sprintf("%v", v.Data[ValueKey].GoString())
	case Gap:
		return "~"
	case Static:
		return fmt.Sprintf("static(%v)", v.Data[ValueKey].GoString())
	case Sequence:
		return joinChildren(v.Children, " ")
	case Stack:
		return joinChildren(v.Children, ", ")
	case Weighted:
		return fmt.Sprintf("%s@%s", Tree(v.Child), v.WeightValue)
	case Fast:
		return fmt.Sprintf("%s*%s", Tree(v.Child), v.Factor)
	case Slow:
		return fmt.Sprintf("%s/%s", Tree(v.Child), v.Factor)
	case TimeShift:
		return fmt.Sprintf("timeshift(%s, %s)", Tree(v.Child), v.Offset)
	case Reverse:
		return fmt.Sprintf("rev(%s)", Tree(v.Child))
	case ReverseWithControl:
		return fmt.Sprintf("rev(%s, n=%s)", Tree(v.Child), Tree(v.NPattern))
	case Euclidean:
		return fmt.Sprintf("%s(%d,%d,%d)", Tree(v.Child), v.Pulses, v.Steps_, v.Rotation)
	case EuclideanMorph:
		return fmt.Sprintf("%s(%d,%d,%g)", Tree(v.Child), v.Pulses, v.Steps_, v.Alpha)
	case Degrade:
		return fmt.Sprintf("%s?%g", Tree(v.Child), v.Amount)
	case DegradeWithControl:
		return fmt.Sprintf("%s?(ctl=%s)", Tree(v.Child), Tree(v.Control))
	case Choice:
		return joinChildren(v.Children, "|")
	case Randrun:
		return fmt.Sprintf("randrun(%d)", v.N)
	case FirstOf:
		return fmt.Sprintf("firstof(%d, %s)", v.N, Tree(v.Child))
	case LastOf:
		return fmt.Sprintf("lastof(%d, %s)", v.N, Tree(v.Child))
	case Struct:
		return fmt.Sprintf("struct(%s, %s)", Tree(v.BoolPattern), Tree(v.Value))
	case Mask:
		return fmt.Sprintf("mask(%s, %s)", Tree(v.BoolPattern), Tree(v.Value))
	case Labeled:
		return fmt.Sprintf("%s(%q)", v.Key, Tree(v.Child))
	case Control:
		return fmt.Sprintf("control(%s, %s)", Tree(v.Source), Tree(v.ControlPattern))
	case Superimpose:
		return fmt.Sprintf("superimpose(%s)", Tree(v.Child))
	case RepeatCycles:
		return fmt.Sprintf("%s!%d", Tree(v.Child), v.N)
	case Take:
		return fmt.Sprintf("take(%d, %s)", v.N, Tree(v.Child))
	case StepsOverride:
		return fmt.Sprintf("%s%%%s", Tree(v.Child), v.StepsValue)
	case PropertyOverride:
		return fmt.Sprintf("%s#%s=%s", Tree(v.Child), v.Key, v.Value.GoString())
	case Arrangement:
		parts := make([]string, len(v.Sections))
		for i, sec := range v.Sections {
			parts[i] = fmt.Sprintf("%s*%d", Tree(sec.Pattern), sec.Cycles)
		}
		return "<" + joinStrings(parts, " ") + ">"
	default:
		return fmt.Sprintf("<%T>", p)
	}
}

func joinChildren(children []Pattern, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = Tree(c)
	}
	return joinStrings(parts, sep)
}

func joinStrings(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
