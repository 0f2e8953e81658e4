package crosspost

import (
	"fmt"
	"strings"
)

// MissingEnvError is returned when a mirror target has no credentials.
type MissingEnvError struct {
	Provider  string
	Variables []string
}

func (e MissingEnvError) Error() string {
	if len(e.Variables) == 0 {
		return fmt.Sprintf("%s mirror not configured", e.Provider)
	}
	return fmt.Sprintf("%s mirror not configured, set %s", e.Provider, strings.Join(e.Variables, ", "))
}

// TooLongError is returned when a tweet exceeds what a network accepts. The
// on-chain post is unaffected.
type TooLongError struct {
	Provider string
	Limit    int
	Length   int
}

func (e TooLongError) Error() string {
	return fmt.Sprintf("%s accepts at most %d characters, message has %d", e.Provider, e.Limit, e.Length)
}

// CheckLength returns TooLongError when message has more than limit
// characters.
func CheckLength(provider, message string, limit int) error {
	if n := len([]rune(message)); n > limit {
		return TooLongError{Provider: provider, Limit: limit, Length: n}
	}
	return nil
}
