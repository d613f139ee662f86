package cmdline

import "strings"

// Parse splits a command line into a name and its arguments.
// Leading, trailing and repeated whitespace is ignored. An empty or
// all-blank line yields an empty name and nil args.
func Parse(text string) (name string, args []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	if len(fields) > 1 {
		args = fields[1:]
	}
	return fields[0], args
}
