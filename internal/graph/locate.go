package graph

import "github.com/pbxedit-dev/pbxedit/internal/parser"

// locateGroup finds the container group for a new entry of the given kind:
// the first group, in table order, whose children include at least one
// source-kind file record. Holding sources marks a group as a primary
// code-holding container, which keeps new entries out of auxiliary groups
// (plugins, generated code) regardless of the new file's own kind. When no
// group qualifies, a kind-named group is created under the main group.
func (p *Project) locateGroup(kind FileKind) Group {
	for _, g := range p.Groups() {
		if p.groupHoldsSource(g) {
			return g
		}
	}
	return p.createGroup(groupNameFor(kind))
}

func (p *Project) groupHoldsSource(g Group) bool {
	for _, childID := range g.ChildIDs() {
		child := p.object(childID)
		if child == nil || !isaOf(child, isaFileReference) {
			continue
		}
		if (FileRecord{ID: childID, obj: child}).Kind() == KindSource {
			return true
		}
	}
	return false
}

// createGroup appends a new empty group to the objects table and registers it
// as a top-level child of the main group.
func (p *Project) createGroup(name string) Group {
	d := parser.NewDict()
	d.Set("isa", parser.String(isaGroup))
	d.Set("children", parser.Array())
	d.Set("name", parser.String(name))
	d.Set("sourceTree", &parser.Value{Kind: parser.KindString, Str: "<group>", Quoted: true})

	id := p.newObjectID()
	p.objects.Append(id, name, parser.DictValue(d))

	main := p.MainGroup()
	children := ensureList(main.obj, "children")
	children.List = append(children.List, parser.Annotated(id, name))

	return Group{ID: id, obj: d}
}
