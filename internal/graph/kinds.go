package graph

import (
	"path"
	"strings"
)

// FileKind is the semantic classification of a file, derived from its
// extension. It decides which build phase (if any) a new entry joins.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindSource
	KindHeader
	KindFramework
	KindResource
)

func (k FileKind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindHeader:
		return "header"
	case KindFramework:
		return "framework"
	case KindResource:
		return "resource"
	}
	return "unknown"
}

// ParseKind maps a caller-supplied category name to a kind.
func ParseKind(s string) (FileKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source":
		return KindSource, true
	case "header":
		return KindHeader, true
	case "framework", "library":
		return KindFramework, true
	case "resource":
		return KindResource, true
	}
	return KindUnknown, false
}

// Classify maps a file path to its kind by lowercased extension. Unknown
// extensions are resources, never an error.
func Classify(p string) FileKind {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	switch ext {
	case "swift", "m", "mm", "cpp", "c":
		return KindSource
	case "h", "hpp":
		return KindHeader
	case "framework", "a", "dylib":
		return KindFramework
	}
	return KindResource
}

// phaseRole returns the build-phase role name a kind participates in.
// Headers have no role.
func phaseRole(kind FileKind) string {
	switch kind {
	case KindSource:
		return "Sources"
	case KindFramework:
		return "Frameworks"
	case KindResource:
		return "Resources"
	}
	return ""
}

func phaseIsa(kind FileKind) string {
	switch kind {
	case KindSource:
		return isaSourcesPhase
	case KindFramework:
		return isaFrameworksPhase
	case KindResource:
		return isaResourcesPhase
	}
	return ""
}

// groupNameFor names the container group created when no existing group
// qualifies for a new entry.
func groupNameFor(kind FileKind) string {
	switch kind {
	case KindSource:
		return "Sources"
	case KindHeader:
		return "Headers"
	case KindFramework:
		return "Frameworks"
	}
	return "Resources"
}

// fileTypeFor maps an extension to the lastKnownFileType value recorded on
// new file references. Only a convenience for Xcode's UI; unrecognized
// extensions fall back to text.
func fileTypeFor(p string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	switch ext {
	case "swift":
		return "sourcecode.swift"
	case "m":
		return "sourcecode.c.objc"
	case "mm":
		return "sourcecode.cpp.objcpp"
	case "cpp", "cc":
		return "sourcecode.cpp.cpp"
	case "c":
		return "sourcecode.c.c"
	case "h":
		return "sourcecode.c.h"
	case "hpp":
		return "sourcecode.cpp.h"
	case "framework":
		return "wrapper.framework"
	case "a":
		return "archive.ar"
	case "dylib":
		return "compiled.mach-o.dylib"
	case "storyboard":
		return "file.storyboard"
	case "xib":
		return "file.xib"
	case "xcassets":
		return "folder.assetcatalog"
	case "plist":
		return "text.plist.xml"
	case "strings":
		return "text.plist.strings"
	case "json":
		return "text.json"
	case "md":
		return "net.daringfireball.markdown"
	case "png", "jpg", "jpeg", "gif":
		return "image." + ext
	}
	return "text"
}
