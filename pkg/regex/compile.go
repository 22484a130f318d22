package regex

import (
	"sync"

	"github.com/dlclark/regexp2"
)

var cache sync.Map

func Compile(pattern string) (*Pattern, error) {
	if p, ok := cache.Load(pattern); ok {
		return p.(*Pattern), nil
	}

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}

	p := &Pattern{
		Expression: re,
	}
	cache.Store(pattern, p)
	return p, nil
}

func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := Compile(pattern); err != nil {
			return err
		}
	}
	return nil
}
