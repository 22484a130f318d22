package regex

// Match reports whether s matches the given pattern, compiling (and caching)
// the pattern on first use. Invalid patterns never match.
func Match(pattern string, s string) bool {
	p, err := Compile(pattern)
	if err != nil {
		return false
	}

	ok, err := p.Expression.MatchString(s)
	if err != nil {
		return false
	}

	return ok
}
