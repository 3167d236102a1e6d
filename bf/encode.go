package bf

import (
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/fxamacker/cbor/v2"
)

// node is the wire form of one instruction. Op is the source symbol the
// instruction comes from; loops use '['.
type node struct {
	Op    Command `cbor:"1,keyasint"`
	Delta int     `cbor:"2,keyasint,omitempty"`
	Body  []node  `cbor:"3,keyasint,omitempty"`
}

// maxNestedLevels is the largest nesting the CBOR decoder accepts. The
// top-level array takes one level and every loop takes two (its map and its
// body array), plus one for the innermost node's map.
const maxNestedLevels = 65535

// MaxWireDepth is the deepest loop nesting Marshal and Unmarshal handle.
const MaxWireDepth = (maxNestedLevels - 2) / 2

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bf: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em

	dm, err := cbor.DecOptions{MaxNestedLevels: maxNestedLevels}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("bf: failed to create CBOR dec mode: %v", err))
	}
	cborDecMode = dm
}

// Marshal serializes a program to canonical CBOR, for handing the IR to an
// interpreter or compiler in another process. Programs nested deeper than
// MaxWireDepth, or with a delta outside [-MaxDelta, MaxDelta], are rejected.
func Marshal(p Program) ([]byte, error) {
	if depth := Depth(p); depth > MaxWireDepth {
		return nil, fmt.Errorf("bf: loop depth %d exceeds %d: %w", depth, MaxWireDepth, errdefs.ErrInvalidArgument)
	}
	if err := checkDeltas(p); err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(toNodes(p))
}

// Unmarshal deserializes a program written by Marshal.
func Unmarshal(data []byte) (Program, error) {
	var nodes []node
	if err := cborDecMode.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("bf: unmarshal program: %w", err)
	}
	return fromNodes(nodes)
}

func toNodes(p Program) []node {
	nodes := make([]node, 0, len(p))
	for _, instr := range p {
		switch x := instr.(type) {
		case Increment:
			nodes = append(nodes, node{Op: Inc, Delta: x.Delta})
		case PointerIncrement:
			nodes = append(nodes, node{Op: Right, Delta: x.Delta})
		case Read:
			nodes = append(nodes, node{Op: Input})
		case Write:
			nodes = append(nodes, node{Op: Output})
		case Loop:
			nodes = append(nodes, node{Op: LoopStart, Body: toNodes(x.Body)})
		}
	}
	return nodes
}

func fromNodes(nodes []node) (Program, error) {
	p := make(Program, 0, len(nodes))
	for _, n := range nodes {
		if n.Op != LoopStart && len(n.Body) > 0 {
			return nil, fmt.Errorf("bf: %q node with a body: %w", n.Op, errdefs.ErrInvalidArgument)
		}
		if n.Op != Inc && n.Op != Right && n.Delta != 0 {
			return nil, fmt.Errorf("bf: %q node with delta %d: %w", n.Op, n.Delta, errdefs.ErrInvalidArgument)
		}
		if err := checkDelta(n.Delta); err != nil {
			return nil, err
		}
		switch n.Op {
		case Inc:
			p = append(p, Increment{Delta: n.Delta})
		case Right:
			p = append(p, PointerIncrement{Delta: n.Delta})
		case Input:
			p = append(p, Read{})
		case Output:
			p = append(p, Write{})
		case LoopStart:
			body, err := fromNodes(n.Body)
			if err != nil {
				return nil, err
			}
			p = append(p, Loop{Body: body})
		default:
			return nil, fmt.Errorf("bf: unknown op %d: %w", rune(n.Op), errdefs.ErrInvalidArgument)
		}
	}
	return p, nil
}
