package source

import (
	"fmt"
)

type Span struct {
	File  FileID
	Start uint32 // inclusive byte offset
	End   uint32 // exclusive byte offset
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Intersects reports whether both spans live in the same file and overlap or touch.
// A selection that ends exactly where a diagnostic starts still counts.
func (s Span) Intersects(other Span) bool {
	if s.File != other.File {
		return false
	}
	return s.Start <= other.End && other.Start <= s.End
}
