package archon

import (
	"strings"

	"github.com/pkg/errors"
)

// renderCommand turns the converter template into an argv. The template is
// split on whitespace first and placeholders substituted per argument, so
// paths containing spaces never need shell quoting; the result is executed
// directly, not through a shell. When exe is empty the template's first
// field is taken as the program.
func renderCommand(exe string, tmpl string, src string, dst string) ([]string, error) {
	fields := strings.Fields(tmpl)
	if exe == "" && len(fields) == 0 {
		return nil, errors.New("empty converter command")
	}

	argv := make([]string, 0, len(fields)+1)
	if exe != "" {
		argv = append(argv, exe)
	}
	for _, field := range fields {
		field = strings.ReplaceAll(field, "{src}", src)
		field = strings.ReplaceAll(field, "{dst}", dst)
		argv = append(argv, field)
	}

	return argv, nil
}
