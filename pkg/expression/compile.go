package expression

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Compile validates and compiles the provided ignore expressions against the
// entry environment. An empty input yields a nil Set.
func Compile(expressions []string) (*Set, error) {
	if len(expressions) == 0 {
		return nil, nil
	}

	set := &Set{Sources: expressions}
	for _, source := range expressions {
		program, err := expr.Compile(source, expr.Env(&Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile ignore expression: %q: %w", source, err)
		}

		set.Programs = append(set.Programs, program)
	}

	return set, nil
}
