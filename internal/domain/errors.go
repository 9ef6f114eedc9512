package domain

import (
	"fmt"
	"strings"
)

// HeaderError reports a required column missing from the sheet header.
type HeaderError struct {
	Missing  string
	Header   []string
	Expected []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("expected column %q not found in sheet header [%s] (required fields: %s)",
		e.Missing, strings.Join(e.Header, ", "), strings.Join(e.Expected, ", "))
}
