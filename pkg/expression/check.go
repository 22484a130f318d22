package expression

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/mediaforge/archon/pkg/regex"
)

// RegexMatch reports whether the entry name matches the given pattern.
func (e *Env) RegexMatch(pattern string) bool {
	return regex.Match(pattern, e.Name)
}

// MatchAny evaluates every program in the set against env and returns true
// as soon as one matches. A nil set matches nothing.
func (s *Set) MatchAny(env *Env) (bool, error) {
	if s == nil {
		return false, nil
	}

	for i, program := range s.Programs {
		out, err := expr.Run(program, env)
		if err != nil {
			return false, fmt.Errorf("run ignore expression: %q: %w", s.Sources[i], err)
		}

		if match, ok := out.(bool); ok && match {
			return true, nil
		}
	}

	return false, nil
}
