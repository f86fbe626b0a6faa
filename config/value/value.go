// Package value provides typed configuration values that can be set from
// their string representation, e.g. from an environment variable.
package value

import "strings"

type Value interface {
	// String returns a string representation of the value.
	String() string

	// Set a new value from its string representation. Returns an error if
	// the string can't be parsed. The value is unchanged in that case.
	Set(string) error

	// Validate the current value. Returns nil if the value is OK.
	Validate() error

	// IsEmpty returns whether the value is the empty value for its type.
	IsEmpty() bool
}

func splitList(val, separator string) []string {
	list := []string{}

	for _, elm := range strings.Split(val, separator) {
		elm = strings.TrimSpace(elm)
		if len(elm) != 0 {
			list = append(list, elm)
		}
	}

	return list
}

func joinList(list []string, separator string) string {
	if len(list) == 0 {
		return "(empty)"
	}

	return strings.Join(list, separator)
}
