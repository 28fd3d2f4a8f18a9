// Package version resolves the pinned version of a Swift package
// dependency, first from Package.resolved and then from the package
// references recorded in the project manifest.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pbxedit-dev/pbxedit/internal/parser"
)

// Pin describes where a dependency version was found.
type Pin struct {
	Package  string
	Version  string
	Revision string
	Source   string // "resolved" or "manifest"
}

// FromResolved reads Package.resolved and returns the pin for the named
// package. Both the v1 layout (object.pins, keyed by package name) and
// the v2+ layout (top-level pins, keyed by identity) are handled.
func FromResolved(path, name string) (Pin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pin{}, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if !gjson.ValidBytes(data) {
		return Pin{}, fmt.Errorf("%s: not valid JSON", filepath.Base(path))
	}

	pins := gjson.GetBytes(data, "pins")
	if !pins.Exists() {
		pins = gjson.GetBytes(data, "object.pins")
	}
	if !pins.IsArray() {
		return Pin{}, fmt.Errorf("%s: no pins array", filepath.Base(path))
	}

	var found Pin
	pins.ForEach(func(_, entry gjson.Result) bool {
		id := entry.Get("identity").String()
		if id == "" {
			id = entry.Get("package").String()
		}
		if !strings.EqualFold(id, name) {
			return true
		}
		found = Pin{
			Package:  id,
			Version:  entry.Get("state.version").String(),
			Revision: entry.Get("state.revision").String(),
			Source:   "resolved",
		}
		return false
	})
	if found.Package == "" {
		return Pin{}, fmt.Errorf("package %q not pinned in %s", name, filepath.Base(path))
	}
	return found, nil
}

// FromManifest scans the manifest's XCRemoteSwiftPackageReference records
// for a repository whose last path component matches name and returns the
// version recorded in its requirement.
func FromManifest(doc *parser.Document, name string) (Pin, error) {
	objects := doc.Objects()
	if objects == nil {
		return Pin{}, fmt.Errorf("manifest has no objects table")
	}
	for _, entry := range objects.Entries {
		obj := entry.Value.Dict
		if obj == nil {
			continue
		}
		if isa, _ := obj.GetString("isa"); isa != "XCRemoteSwiftPackageReference" {
			continue
		}
		repo, _ := obj.GetString("repositoryURL")
		if !repoMatches(repo, name) {
			continue
		}
		pin := Pin{Package: name, Source: "manifest"}
		if req := obj.Get("requirement"); req != nil && req.Dict != nil {
			pin.Version = requirementVersion(req.Dict)
			pin.Revision, _ = req.Dict.GetString("revision")
		}
		if pin.Version == "" && pin.Revision == "" {
			return Pin{}, fmt.Errorf("package %q has no versioned requirement", name)
		}
		return pin, nil
	}
	return Pin{}, fmt.Errorf("package %q not referenced in manifest", name)
}

// Lookup tries Package.resolved next to the manifest first, then falls
// back to the manifest's own package references. resolvedPath may be
// empty, in which case only the manifest is consulted.
func Lookup(doc *parser.Document, resolvedPath, name string) (Pin, error) {
	if resolvedPath != "" {
		if pin, err := FromResolved(resolvedPath, name); err == nil {
			return pin, nil
		}
	}
	return FromManifest(doc, name)
}

func repoMatches(repoURL, name string) bool {
	if repoURL == "" {
		return false
	}
	base := repoURL
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".git")
	return strings.EqualFold(base, name)
}

func requirementVersion(req *parser.Dict) string {
	for _, key := range []string{"version", "minimumVersion", "exactVersion", "branch"} {
		if v, ok := req.GetString(key); ok && v != "" {
			return v
		}
	}
	return ""
}
