package nodes

import (
	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/pyexc"
)

//go:generate mockgen -destination=mock_collection_test.go -package=nodes_test github.com/serpent-lang/serpent/internal/nodes TraceCollection

// Computation evaluates an operation on constant inputs. It returns a
// *pyexc.Error for exceptions of the compiled program and an error
// wrapping builtins.ErrNotFoldable when it declines.
type Computation func() (starlark.Value, error)

// TraceCollection is the flow-analysis context nodes consult while they
// are computed.
type TraceCollection interface {
	// GetCompileTimeComputationResult runs computation on behalf of node.
	// It returns a replacement constant on success, the node itself when
	// the computation declined, and the node plus the raised class when
	// the computation raised.
	GetCompileTimeComputationResult(node Node, computation Computation, description string, userProvided bool) (Node, *pyexc.Class)

	// OnExceptionRaiseExit records that control may leave through an
	// exception of class exc at this point.
	OnExceptionRaiseExit(exc *pyexc.Class)
}
