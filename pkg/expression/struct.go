package expression

import (
	"github.com/expr-lang/expr/vm"
)

// Set is a compiled group of boolean ignore expressions.
type Set struct {
	Sources  []string
	Programs []*vm.Program
}

// Env is the evaluation environment exposed to ignore expressions, built
// per directory entry by the walker.
type Env struct {
	Name    string
	Ext     string
	Path    string
	IsDir   bool
	Size    int64
	AgeDays float64
}
