package bf_test

import (
	"context"
	"errors"
	"testing"

	"github.com/containerd/errdefs"

	"github.com/MarcinKonowalczyk/bfir/bf"
	"github.com/MarcinKonowalczyk/bfir/utils"
)

func TestParseStrategy(t *testing.T) {
	s, err := bf.ParseStrategy("iterative")
	utils.AssertNoError(t, err)
	utils.AssertEqual(t, s, bf.Iterative)

	s, err = bf.ParseStrategy("")
	utils.AssertNoError(t, err)
	utils.AssertEqual(t, s, bf.Recursive)

	_, err = bf.ParseStrategy("sideways")
	utils.Assert(t, errdefs.IsInvalidArgument(err), "expected an invalid argument error")
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	source := "++[>+++[>++<-]<-]>>."
	for _, strategy := range []bf.Strategy{bf.Recursive, bf.Iterative} {
		program, err := bf.Load(ctx, source, strategy)
		utils.AssertNoError(t, err)
		utils.Assert(t, bf.Equal(program, bf.MustParse(source)), "unexpected program for "+string(strategy))
	}
}

func TestLoad_Unbalanced(t *testing.T) {
	for _, strategy := range []bf.Strategy{bf.Recursive, bf.Iterative} {
		_, err := bf.Load(context.Background(), "[[]", strategy)
		utils.Assert(t, errors.Is(err, bf.ErrUnbalancedLoop), "expected ErrUnbalancedLoop")
	}
}

func TestLoad_UnknownStrategy(t *testing.T) {
	_, err := bf.Load(context.Background(), "+", bf.Strategy("sideways"))
	utils.Assert(t, errdefs.IsInvalidArgument(err), "expected an invalid argument error")
}
