package diff

import "strings"

// FileStatus describes what a fragment does to its file.
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusDeleted  FileStatus = "deleted"
	StatusModified FileStatus = "modified"
	StatusRenamed  FileStatus = "renamed"
)

// FileDiff is one per-file fragment of a unified diff.
type FileDiff struct {
	OldPath string
	NewPath string
	Status  FileStatus
	Body    string
}

// Path returns the fragment's effective path: the new path unless deleted.
func (d FileDiff) Path() string {
	if d.Status == StatusDeleted {
		return d.OldPath
	}
	return d.NewPath
}

// Split cuts a multi-file unified diff into per-file fragments. Both
// git-style ("diff --git") and plain ("--- / +++") diffs are handled;
// content outside any fragment is discarded.
func Split(data []byte) []FileDiff {
	lines := strings.Split(string(data), "\n")
	var out []FileDiff
	var current *FileDiff
	var body []string
	sawNew := false

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.Join(body, "\n")
		if !strings.HasSuffix(current.Body, "\n") {
			current.Body += "\n"
		}
		finishStatus(current)
		out = append(out, *current)
		current = nil
		body = nil
		sawNew = false
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			flush()
			current = &FileDiff{Status: StatusModified}
			if old, renamed, ok := parseGitHeader(line); ok {
				current.OldPath, current.NewPath = old, renamed
			}
		case strings.HasPrefix(line, "--- "):
			// A second ---/+++ pair without a git header starts a new
			// fragment in plain diffs.
			if sawNew {
				flush()
			}
			if current == nil {
				current = &FileDiff{Status: StatusModified}
			}
			if p := parseFileHeader(line[4:]); p != "" || current.OldPath == "" {
				current.OldPath = p
			}
		case strings.HasPrefix(line, "+++ "):
			if current == nil {
				current = &FileDiff{Status: StatusModified}
			}
			sawNew = true
			if p := parseFileHeader(line[4:]); p != "" || current.NewPath == "" {
				current.NewPath = p
			}
		case current != nil && strings.HasPrefix(line, "new file mode"):
			current.Status = StatusAdded
		case current != nil && strings.HasPrefix(line, "deleted file mode"):
			current.Status = StatusDeleted
		case current != nil && strings.HasPrefix(line, "rename from "):
			current.Status = StatusRenamed
			current.OldPath = strings.TrimPrefix(line, "rename from ")
		case current != nil && strings.HasPrefix(line, "rename to "):
			current.Status = StatusRenamed
			current.NewPath = strings.TrimPrefix(line, "rename to ")
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()
	return out
}

func finishStatus(d *FileDiff) {
	if d.Status != StatusModified {
		return
	}
	if d.OldPath == "" && d.NewPath != "" {
		d.Status = StatusAdded
	}
	if d.NewPath == "" && d.OldPath != "" {
		d.Status = StatusDeleted
	}
}

// parseGitHeader extracts paths from `diff --git a/x b/y`.
func parseGitHeader(line string) (oldPath, newPath string, ok bool) {
	rest := strings.TrimPrefix(line, "diff --git ")
	parts := strings.Fields(rest)
	if len(parts) != 2 {
		return "", "", false
	}
	return stripPrefix(parts[0]), stripPrefix(parts[1]), true
}

// parseFileHeader extracts the path from a ---/+++ header, dropping any
// trailing timestamp and the a/ b/ prefix. /dev/null maps to "".
func parseFileHeader(rest string) string {
	if idx := strings.IndexByte(rest, '\t'); idx >= 0 {
		rest = rest[:idx]
	}
	rest = strings.TrimSpace(rest)
	if rest == "/dev/null" {
		return ""
	}
	return stripPrefix(rest)
}

func stripPrefix(p string) string {
	for _, prefix := range []string{"a/", "b/"} {
		if strings.HasPrefix(p, prefix) {
			return p[len(prefix):]
		}
	}
	return p
}
