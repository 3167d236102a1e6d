package bf

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/containerd/log"
)

// Strategy selects how the tree is built.
type Strategy string

const (
	// Recursive mirrors loop nesting with Go call frames.
	Recursive Strategy = "recursive"
	// Iterative uses an explicit stack; prefer it for untrusted input.
	Iterative Strategy = "iterative"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case Recursive, Iterative:
		return Strategy(s), nil
	case "":
		return Recursive, nil
	default:
		return "", fmt.Errorf("unknown parse strategy %q: %w", s, errdefs.ErrInvalidArgument)
	}
}

// Load parses source with the given strategy and logs a summary of the
// resulting tree to the context logger.
func Load(ctx context.Context, source string, strategy Strategy) (Program, error) {
	var (
		program Program
		err     error
	)
	switch strategy {
	case Recursive, "":
		program, err = Parse(source)
	case Iterative:
		program, err = ParseIterative(source)
	default:
		return nil, fmt.Errorf("unknown parse strategy %q: %w", strategy, errdefs.ErrInvalidArgument)
	}

	if err != nil {
		log.G(ctx).WithError(err).WithField("strategy", strategy).Debug("parse failed")
		return nil, err
	}

	log.G(ctx).WithFields(log.Fields{
		"strategy":     strategy,
		"instructions": Count(program),
		"depth":        Depth(program),
	}).Debug("parsed program")
	return program, nil
}
