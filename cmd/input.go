package main

import "strings"

// splitCommand splits a command line into fields, honoring double quotes so
// activity names like "Chess Club" stay one argument.
func splitCommand(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	hasField := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			hasField = true
		case r == ' ' || r == '\t':
			if inQuotes {
				current.WriteRune(r)
				break
			}
			if hasField {
				fields = append(fields, current.String())
				current.Reset()
				hasField = false
			}
		default:
			current.WriteRune(r)
			hasField = true
		}
	}
	if hasField {
		fields = append(fields, current.String())
	}

	return fields
}
