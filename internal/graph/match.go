package graph

import (
	"path"
	"strings"
)

// matchFile resolves a caller-supplied path to an existing file record.
// Four passes run in fixed order against every record's path and display
// name, first match wins, ties broken by table order:
//
//  1. exact equality with the normalized path
//  2. exact equality with the path's basename
//  3. stored value ends with "/" + normalized path
//  4. stored value ends with "/" + basename, or the normalized path ends
//     with "/" + stored value
//
// When several records share a basename in different directories the first
// table-order match is picked silently; callers wanting certainty should
// supply a fully qualified path.
func (p *Project) matchFile(needle string) (FileRecord, bool) {
	base := path.Base(needle)
	records := p.FileRecords()

	passes := []func(stored string) bool{
		func(s string) bool { return s == needle },
		func(s string) bool { return s == base },
		func(s string) bool { return strings.HasSuffix(s, "/"+needle) },
		func(s string) bool {
			return strings.HasSuffix(s, "/"+base) || strings.HasSuffix(needle, "/"+s)
		},
	}

	for _, pass := range passes {
		for _, rec := range records {
			for _, stored := range []string{rec.Path(), rec.DisplayName()} {
				if stored != "" && pass(stored) {
					return rec, true
				}
			}
		}
	}
	return FileRecord{}, false
}

// normalizeRemovePath cleans the supplied path and strips a single leading
// project-relative directory component: the main group's own name, or the
// name of one of its direct child groups. "App/Views/Foo.swift" becomes
// "Views/Foo.swift" when the project container is the App group.
func (p *Project) normalizeRemovePath(raw string) string {
	cleaned := cleanPath(raw)
	first, rest, ok := strings.Cut(cleaned, "/")
	if !ok || rest == "" {
		return cleaned
	}
	for _, name := range p.rootContainerNames() {
		if name != "" && first == name {
			return rest
		}
	}
	return cleaned
}

func (p *Project) rootContainerNames() []string {
	main := p.MainGroup()
	names := make([]string, 0, 4)
	names = append(names, main.Name())
	for _, childID := range main.ChildIDs() {
		child := p.object(childID)
		if child == nil || !isGroupIsa(isaValue(child)) {
			continue
		}
		names = append(names, (Group{ID: childID, obj: child}).Name())
	}
	return names
}

// sampleCandidates returns up to max stored paths for not-found diagnostics.
func (p *Project) sampleCandidates(max int) []string {
	out := make([]string, 0, max)
	for _, rec := range p.FileRecords() {
		if len(out) >= max {
			break
		}
		if s := rec.Path(); s != "" {
			out = append(out, s)
		} else if s := rec.DisplayName(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
