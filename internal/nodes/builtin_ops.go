package nodes

import (
	"github.com/serpent-lang/serpent/internal/builtins"
	"github.com/serpent-lang/serpent/internal/shape"
)

var builtinMethods = []*method{
	// the argument shape is unknown, so len() may raise TypeError
	newMethod("builtin", "value", "len", shape.Int, Fold1(builtins.Len)).
		raising("TypeError for unsized arguments"),
}
