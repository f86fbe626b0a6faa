// Package cors validates CORS origins.
package cors

import (
	"fmt"
	"strings"
)

// Schemes is the list of schemes an origin may start with. Origins containing
// a wildcard are accepted regardless of their scheme.
var Schemes = []string{
	"http://",
	"https://",
}

// Validate checks that each origin either contains a wildcard or starts
// with one of the allowed schemes.
func Validate(origins []string) error {
	for _, origin := range origins {
		if strings.Contains(origin, "*") {
			continue
		}

		if !hasScheme(origin) {
			return fmt.Errorf("bad origin '%s': origins must contain '*' or start with %s", origin, strings.Join(Schemes, " or "))
		}
	}

	return nil
}

func hasScheme(origin string) bool {
	for _, scheme := range Schemes {
		if strings.HasPrefix(origin, scheme) {
			return true
		}
	}

	return false
}
