package domain

import (
	"fmt"
	"strings"
)

// parseEnum returns the variant whose wire literal equals s.
// Literals are compared exactly; several of them are irregular
// (ON-REFUND, Cyrillic units) so no case folding is applied.
func parseEnum[T ~string](name, s string, known []T) (T, error) {
	for _, v := range known {
		if string(v) == s {
			return v, nil
		}
	}

	expected := make([]string, 0, len(known))
	for _, v := range known {
		expected = append(expected, "`"+string(v)+"`")
	}
	var zero T
	return zero, fmt.Errorf("unknown %s variant `%s`, expected one of %s", name, s, strings.Join(expected, ", "))
}
