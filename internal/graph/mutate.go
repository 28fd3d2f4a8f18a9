package graph

import (
	"fmt"
	"path"

	"github.com/pbxedit-dev/pbxedit/internal/parser"
)

// AddFile inserts a new file record for p, classifying it when kind is
// KindUnknown. Non-header kinds also gain a build membership appended to the
// matching phase (created on demand). The record joins the first qualifying
// group. Returns the new file record id.
//
// Every step is validated before the first record is created, so a returned
// error means the graph is untouched.
func (p *Project) AddFile(filePath string, kind FileKind) (string, error) {
	filePath = cleanPath(filePath)
	if filePath == "" {
		return "", fmt.Errorf("add: empty path")
	}
	if kind == KindUnknown {
		kind = Classify(filePath)
	}
	base := path.Base(filePath)

	ref := parser.NewDict()
	ref.Set("isa", parser.String(isaFileReference))
	ref.Set("lastKnownFileType", parser.String(fileTypeFor(filePath)))
	if base != filePath {
		ref.Set("name", parser.String(base))
	}
	ref.Set("path", parser.String(filePath))
	ref.Set("sourceTree", sourceTreeFor(filePath))

	refID := p.newObjectID()
	p.objects.Append(refID, base, parser.DictValue(ref))

	if role := phaseRole(kind); role != "" {
		memberComment := base + " in " + role

		member := parser.NewDict()
		member.Set("isa", parser.String(isaBuildFile))
		member.Set("fileRef", parser.Annotated(refID, base))

		memberID := p.newObjectID()
		p.objects.Append(memberID, memberComment, parser.DictValue(member))

		phase := p.phaseFor(kind)
		files := ensureList(phase.obj, "files")
		files.List = append(files.List, parser.Annotated(memberID, memberComment))
	}

	group := p.locateGroup(kind)
	children := ensureList(group.obj, "children")
	children.List = append(children.List, parser.Annotated(refID, base))

	return refID, nil
}

// sourceTreeFor picks SOURCE_ROOT for paths with a directory component,
// since the chosen group's folder may not contain the file; bare basenames
// stay group-relative.
func sourceTreeFor(filePath string) *parser.Value {
	if path.Dir(filePath) != "." {
		return parser.String("SOURCE_ROOT")
	}
	return &parser.Value{Kind: parser.KindString, Str: "<group>", Quoted: true}
}

// phaseFor returns the first phase matching the kind's role, creating one
// when the manifest has none.
func (p *Project) phaseFor(kind FileKind) BuildPhase {
	isa := phaseIsa(kind)
	for _, phase := range p.BuildPhases() {
		if isaOf(phase.obj, isa) {
			return phase
		}
	}
	return p.createPhase(isa, phaseRole(kind))
}

// createPhase appends a new empty phase and registers it on the first native
// target when one exists. A target-less manifest still gets the phase record;
// it becomes reachable once a target appears.
func (p *Project) createPhase(isa, role string) BuildPhase {
	d := parser.NewDict()
	d.Set("isa", parser.String(isa))
	d.Set("buildActionMask", parser.String("2147483647"))
	d.Set("files", parser.Array())
	d.Set("runOnlyForDeploymentPostprocessing", parser.String("0"))

	id := p.newObjectID()
	p.objects.Append(id, role, parser.DictValue(d))

	for _, e := range p.objects.Entries {
		if e.Value.Kind != parser.KindDict || !isaOf(e.Value.Dict, isaNativeTarget) {
			continue
		}
		phases := ensureList(e.Value.Dict, "buildPhases")
		phases.List = append(phases.List, parser.Annotated(id, role))
		break
	}
	return BuildPhase{ID: id, obj: d}
}

// RemoveFile resolves path to an existing file record and deletes it together
// with every reference to it: the record itself, any build membership whose
// fileRef points at it, that membership's id in every phase member list, and
// the record's id in every group's children. The phase and group scans are
// deliberately exhaustive so a manifest another tool left inconsistent still
// comes out clean.
//
// An unresolvable path returns a *NotFoundError carrying sampled candidate
// paths; the graph is unchanged in that case.
func (p *Project) RemoveFile(filePath string) (string, error) {
	rec, ok := p.matchFile(p.normalizeRemovePath(filePath))
	if !ok {
		return "", &NotFoundError{Path: filePath, Candidates: p.sampleCandidates(10)}
	}

	refID := rec.ID
	p.objects.Delete(refID)

	memberIDs := make(map[string]bool)
	for _, e := range p.objects.Entries {
		if e.Value.Kind != parser.KindDict || !isaOf(e.Value.Dict, isaBuildFile) {
			continue
		}
		if fileRef, _ := e.Value.Dict.GetString("fileRef"); fileRef == refID {
			memberIDs[e.Key] = true
		}
	}
	for id := range memberIDs {
		p.objects.Delete(id)
	}

	removedRef := map[string]bool{refID: true}
	for _, e := range p.objects.Entries {
		if e.Value.Kind != parser.KindDict {
			continue
		}
		removeFromList(e.Value.Dict.Get("files"), memberIDs)
		removeFromList(e.Value.Dict.Get("children"), removedRef)
	}

	return refID, nil
}
