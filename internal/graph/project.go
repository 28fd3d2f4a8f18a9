// Package graph is the typed facade over a parsed manifest document: file
// records, build memberships, the group tree, and build phases, all keyed by
// opaque object identifiers. Relationships are id lookups against the objects
// table, never embedded references, so cascading edits stay simple table
// scans.
package graph

import (
	"path"
	"strings"

	"github.com/pbxedit-dev/pbxedit/internal/parser"
)

const (
	isaBuildFile       = "PBXBuildFile"
	isaFileReference   = "PBXFileReference"
	isaGroup           = "PBXGroup"
	isaVariantGroup    = "PBXVariantGroup"
	isaProject         = "PBXProject"
	isaNativeTarget    = "PBXNativeTarget"
	isaSourcesPhase    = "PBXSourcesBuildPhase"
	isaResourcesPhase  = "PBXResourcesBuildPhase"
	isaFrameworksPhase = "PBXFrameworksBuildPhase"
)

// Project wraps a document with typed accessors. All iteration follows table
// order: the order records appear in the parsed manifest.
type Project struct {
	doc         *parser.Document
	objects     *parser.Dict
	projectID   string
	mainGroupID string
}

// Load validates the document's graph structure and returns the facade.
// A missing objects table, an unresolvable rootObject, or a project without a
// main group is a *parser.StructureError.
func Load(doc *parser.Document) (*Project, error) {
	objects := doc.Objects()
	if objects == nil {
		return nil, &parser.StructureError{Reason: "objects table is missing"}
	}
	rootID, ok := doc.Root.GetString("rootObject")
	if !ok {
		return nil, &parser.StructureError{Reason: "rootObject reference is missing"}
	}
	projObj := objects.Get(rootID)
	if projObj == nil || projObj.Kind != parser.KindDict || !isaOf(projObj.Dict, isaProject) {
		return nil, &parser.StructureError{Reason: "rootObject does not resolve to a project record"}
	}
	mainGroupID, ok := projObj.Dict.GetString("mainGroup")
	if !ok {
		return nil, &parser.StructureError{Reason: "project record has no main group"}
	}
	mainObj := objects.Get(mainGroupID)
	if mainObj == nil || mainObj.Kind != parser.KindDict || !isGroupIsa(isaValue(mainObj.Dict)) {
		return nil, &parser.StructureError{Reason: "main group does not resolve to a group record"}
	}
	return &Project{
		doc:         doc,
		objects:     objects,
		projectID:   rootID,
		mainGroupID: mainGroupID,
	}, nil
}

// Document returns the underlying tree, for serialization.
func (p *Project) Document() *parser.Document { return p.doc }

func isaValue(d *parser.Dict) string {
	isa, _ := d.GetString("isa")
	return isa
}

func isaOf(d *parser.Dict, isa string) bool { return isaValue(d) == isa }

func isGroupIsa(isa string) bool {
	return isa == isaGroup || isa == isaVariantGroup
}

// object returns the dict for id when it exists and is dict-kinded.
func (p *Project) object(id string) *parser.Dict {
	v := p.objects.Get(id)
	if v == nil || v.Kind != parser.KindDict {
		return nil
	}
	return v.Dict
}

// FileRecord is a view over one file-reference record.
type FileRecord struct {
	ID  string
	obj *parser.Dict
}

// Path returns the stored relative path, quoting already stripped.
func (f FileRecord) Path() string {
	s, _ := f.obj.GetString("path")
	return s
}

// DisplayName is the explicit name when set, otherwise the path basename.
func (f FileRecord) DisplayName() string {
	if s, ok := f.obj.GetString("name"); ok {
		return s
	}
	if p := f.Path(); p != "" {
		return path.Base(p)
	}
	return ""
}

// Kind classifies the record from its path (or display name when pathless).
func (f FileRecord) Kind() FileKind {
	if p := f.Path(); p != "" {
		return Classify(p)
	}
	return Classify(f.DisplayName())
}

// Group is a view over one group record.
type Group struct {
	ID  string
	obj *parser.Dict
}

// Name is the explicit name when set, otherwise the folder path.
func (g Group) Name() string {
	if s, ok := g.obj.GetString("name"); ok {
		return s
	}
	s, _ := g.obj.GetString("path")
	return s
}

// ChildIDs lists the group's children in order.
func (g Group) ChildIDs() []string {
	return listStrings(g.obj.Get("children"))
}

// BuildPhase is a view over one build-phase record.
type BuildPhase struct {
	ID  string
	obj *parser.Dict
}

// Role is the phase's build role: Sources, Resources, or Frameworks.
func (b BuildPhase) Role() string {
	switch isaValue(b.obj) {
	case isaSourcesPhase:
		return "Sources"
	case isaResourcesPhase:
		return "Resources"
	case isaFrameworksPhase:
		return "Frameworks"
	}
	return ""
}

// MemberIDs lists the build-membership ids in the phase, in order.
func (b BuildPhase) MemberIDs() []string {
	return listStrings(b.obj.Get("files"))
}

// FileRecords returns all file-reference records in table order.
func (p *Project) FileRecords() []FileRecord {
	out := make([]FileRecord, 0, 16)
	for _, e := range p.objects.Entries {
		if e.Value.Kind == parser.KindDict && isaOf(e.Value.Dict, isaFileReference) {
			out = append(out, FileRecord{ID: e.Key, obj: e.Value.Dict})
		}
	}
	return out
}

// Groups returns all group records in table order.
func (p *Project) Groups() []Group {
	out := make([]Group, 0, 8)
	for _, e := range p.objects.Entries {
		if e.Value.Kind == parser.KindDict && isGroupIsa(isaValue(e.Value.Dict)) {
			out = append(out, Group{ID: e.Key, obj: e.Value.Dict})
		}
	}
	return out
}

// BuildPhases returns the Sources/Resources/Frameworks phases in table order.
func (p *Project) BuildPhases() []BuildPhase {
	out := make([]BuildPhase, 0, 4)
	for _, e := range p.objects.Entries {
		if e.Value.Kind != parser.KindDict {
			continue
		}
		switch isaValue(e.Value.Dict) {
		case isaSourcesPhase, isaResourcesPhase, isaFrameworksPhase:
			out = append(out, BuildPhase{ID: e.Key, obj: e.Value.Dict})
		}
	}
	return out
}

// MainGroup returns the project's root group.
func (p *Project) MainGroup() Group {
	return Group{ID: p.mainGroupID, obj: p.object(p.mainGroupID)}
}

func listStrings(v *parser.Value) []string {
	if v == nil || v.Kind != parser.KindArray {
		return nil
	}
	out := make([]string, 0, len(v.List))
	for _, item := range v.List {
		if item.Kind == parser.KindString {
			out = append(out, item.Str)
		}
	}
	return out
}

// ensureList returns the named array on d, creating an empty one if absent.
func ensureList(d *parser.Dict, key string) *parser.Value {
	v := d.Get(key)
	if v == nil || v.Kind != parser.KindArray {
		v = &parser.Value{Kind: parser.KindArray, List: make([]*parser.Value, 0, 4)}
		d.Set(key, v)
	}
	return v
}

// removeFromList drops every string item whose value is in ids.
func removeFromList(v *parser.Value, ids map[string]bool) {
	if v == nil || v.Kind != parser.KindArray {
		return
	}
	kept := v.List[:0]
	for _, item := range v.List {
		if item.Kind == parser.KindString && ids[item.Str] {
			continue
		}
		kept = append(kept, item)
	}
	v.List = kept
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, `"`)
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.TrimPrefix(p, "./")
}
