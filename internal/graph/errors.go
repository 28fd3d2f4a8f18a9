package graph

import "fmt"

// NotFoundError reports a remove target that resolved to no file record.
// Candidates holds up to ten stored paths for diagnostics; the graph is
// guaranteed unchanged when this error is returned.
type NotFoundError struct {
	Path       string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no file record matches %q (%d candidates sampled)", e.Path, len(e.Candidates))
}
