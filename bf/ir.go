package bf

import (
	"fmt"
	"strings"

	"github.com/containerd/errdefs"
)

// Instruction is a node of the IR tree. The set of variants is closed:
// Increment, PointerIncrement, Read, Write and Loop.
type Instruction interface {
	fmt.Stringer
	instruction()
}

// Program is an ordered sequence of instructions. At the top level it is a
// forest, since there is no enclosing loop.
type Program []Instruction

// Increment adds Delta to the current tape cell.
type Increment struct {
	Delta int
}

// PointerIncrement moves the tape cursor by Delta cells.
type PointerIncrement struct {
	Delta int
}

// Read requests one unit of input.
type Read struct{}

// Write emits one unit of output.
type Write struct{}

// Loop repeats Body. The body is owned by the loop and never shared.
type Loop struct {
	Body Program
}

func (Increment) instruction()        {}
func (PointerIncrement) instruction() {}
func (Read) instruction()             {}
func (Write) instruction()            {}
func (Loop) instruction()             {}

func (i Increment) String() string        { return fmt.Sprintf("Increment(%d)", i.Delta) }
func (p PointerIncrement) String() string { return fmt.Sprintf("PointerIncrement(%d)", p.Delta) }
func (Read) String() string               { return "Read" }
func (Write) String() string              { return "Write" }

func (l Loop) String() string {
	var sb strings.Builder
	writeIndented(&sb, l, 0)
	return sb.String()
}

func writeIndented(sb *strings.Builder, instr Instruction, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
	loop, ok := instr.(Loop)
	if !ok {
		sb.WriteString(instr.String())
		return
	}
	sb.WriteString("Loop")
	for _, child := range loop.Body {
		sb.WriteByte('\n')
		writeIndented(sb, child, indent+1)
	}
}

// Format renders a program one top-level instruction per line, with loop
// bodies indented one level deeper than their loop.
func Format(p Program) string {
	var sb strings.Builder
	for i, instr := range p {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeIndented(&sb, instr, 0)
	}
	return sb.String()
}

func (p Program) String() string {
	return Format(p)
}

// Equal reports whether two programs have the same tree shape and values.
// A nil loop body equals an empty one.
func Equal(a, b Program) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch x := a[i].(type) {
		case Loop:
			y, ok := b[i].(Loop)
			if !ok || !Equal(x.Body, y.Body) {
				return false
			}
		default:
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// Walk visits every instruction in pre-order. Top-level instructions have
// depth 0.
func Walk(p Program, fn func(instr Instruction, depth int)) {
	walk(p, 0, fn)
}

func walk(p Program, depth int, fn func(Instruction, int)) {
	for _, instr := range p {
		fn(instr, depth)
		if loop, ok := instr.(Loop); ok {
			walk(loop.Body, depth+1, fn)
		}
	}
}

// Count returns the total number of instructions in the tree.
func Count(p Program) int {
	n := 0
	Walk(p, func(Instruction, int) { n++ })
	return n
}

// Depth returns the loop nesting depth of the tree. A program without loops
// has depth 0.
func Depth(p Program) int {
	deepest := 0
	Walk(p, func(instr Instruction, depth int) {
		if _, ok := instr.(Loop); ok && depth+1 > deepest {
			deepest = depth + 1
		}
	})
	return deepest
}

// MaxDelta bounds the magnitude of a delta that Source renders and that the
// wire format carries. Parse only ever produces deltas of 1 and -1.
const MaxDelta = 1 << 16

func checkDelta(delta int) error {
	if delta < -MaxDelta || delta > MaxDelta {
		return fmt.Errorf("bf: delta %d outside [-%d, %d]: %w", delta, MaxDelta, MaxDelta, errdefs.ErrInvalidArgument)
	}
	return nil
}

func checkDeltas(p Program) error {
	var err error
	Walk(p, func(instr Instruction, _ int) {
		if err != nil {
			return
		}
		switch x := instr.(type) {
		case Increment:
			err = checkDelta(x.Delta)
		case PointerIncrement:
			err = checkDelta(x.Delta)
		}
	})
	return err
}

// Source renders the program back into the eight-symbol alphabet. A delta
// of n becomes n symbols, so a delta outside [-MaxDelta, MaxDelta] is an
// error. Comments from the original text are gone, but for a program
// produced by Parse, parsing the result yields an equal program.
func Source(p Program) (string, error) {
	if err := checkDeltas(p); err != nil {
		return "", err
	}
	var sb strings.Builder
	writeSource(&sb, p)
	return sb.String(), nil
}

func writeSource(sb *strings.Builder, p Program) {
	for _, instr := range p {
		switch x := instr.(type) {
		case Increment:
			writeRepeated(sb, x.Delta, Inc, Dec)
		case PointerIncrement:
			writeRepeated(sb, x.Delta, Right, Left)
		case Read:
			sb.WriteString(Input.String())
		case Write:
			sb.WriteString(Output.String())
		case Loop:
			sb.WriteString(LoopStart.String())
			writeSource(sb, x.Body)
			sb.WriteString(LoopEnd.String())
		}
	}
}

func writeRepeated(sb *strings.Builder, delta int, up, down Command) {
	c := up
	if delta < 0 {
		c, delta = down, -delta
	}
	sb.WriteString(strings.Repeat(c.String(), delta))
}
