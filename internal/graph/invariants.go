package graph

import (
	"fmt"

	"github.com/pbxedit-dev/pbxedit/internal/parser"
)

// Problem is one invariant violation found by Check.
type Problem struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// Check scans the whole table for cross-reference violations: build
// memberships pointing at missing file records, phase member lists holding
// missing memberships, file records claimed by more than one group, dangling
// children, and cycles in the group tree. A healthy manifest returns nil.
func (p *Project) Check() []Problem {
	var problems []Problem
	report := func(code, format string, args ...any) {
		problems = append(problems, Problem{Code: code, Detail: fmt.Sprintf(format, args...)})
	}

	for _, e := range p.objects.Entries {
		if e.Value.Kind != parser.KindDict || !isaOf(e.Value.Dict, isaBuildFile) {
			continue
		}
		fileRef, ok := e.Value.Dict.GetString("fileRef")
		if !ok {
			report("membership-no-ref", "build membership %s has no fileRef", e.Key)
			continue
		}
		target := p.object(fileRef)
		if target == nil || !isaOf(target, isaFileReference) {
			report("dangling-membership", "build membership %s references missing file record %s", e.Key, fileRef)
		}
	}

	for _, phase := range p.BuildPhases() {
		for _, memberID := range phase.MemberIDs() {
			member := p.object(memberID)
			if member == nil || !isaOf(member, isaBuildFile) {
				report("dangling-phase-member", "%s phase %s lists missing membership %s", phase.Role(), phase.ID, memberID)
			}
		}
	}

	owners := make(map[string][]string)
	for _, g := range p.Groups() {
		for _, childID := range g.ChildIDs() {
			child := p.object(childID)
			if child == nil {
				report("dangling-child", "group %s lists missing child %s", g.ID, childID)
				continue
			}
			if isaOf(child, isaFileReference) {
				owners[childID] = append(owners[childID], g.ID)
			}
		}
	}
	for childID, groupIDs := range owners {
		if len(groupIDs) > 1 {
			report("multi-owner", "file record %s appears in %d groups", childID, len(groupIDs))
		}
	}

	if cycle := p.findGroupCycle(); cycle != "" {
		report("group-cycle", "group tree contains a cycle through %s", cycle)
	}

	return problems
}

// findGroupCycle walks the group tree from every group and returns an id on
// a cycle, or "".
func (p *Project) findGroupCycle() string {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int)

	var walk func(id string) string
	walk = func(id string) string {
		switch state[id] {
		case visiting:
			return id
		case done:
			return ""
		}
		state[id] = visiting
		if obj := p.object(id); obj != nil && isGroupIsa(isaValue(obj)) {
			for _, childID := range (Group{ID: id, obj: obj}).ChildIDs() {
				if hit := walk(childID); hit != "" {
					return hit
				}
			}
		}
		state[id] = done
		return ""
	}

	for _, g := range p.Groups() {
		if hit := walk(g.ID); hit != "" {
			return hit
		}
	}
	return ""
}
