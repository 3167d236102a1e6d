package bf

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// ErrUnbalancedLoop is returned when a '[' has no matching ']'. It is an
// invalid-argument error in the errdefs sense.
var ErrUnbalancedLoop = fmt.Errorf("unbalanced loop: %w", errdefs.ErrInvalidArgument)
