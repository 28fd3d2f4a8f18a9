package parser

import "fmt"

// StructureError reports manifest text whose required structure is missing or
// malformed. It always aborts before any mutation is attempted.
type StructureError struct {
	Reason string
	Line   int
}

func (e *StructureError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest structure: %s (line %d)", e.Reason, e.Line)
	}
	return fmt.Sprintf("manifest structure: %s", e.Reason)
}

func structureErr(line int, format string, args ...any) *StructureError {
	return &StructureError{Reason: fmt.Sprintf(format, args...), Line: line}
}
