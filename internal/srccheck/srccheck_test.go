package srccheck

import "testing"

func TestSwiftCheckerAcceptsValidSource(t *testing.T) {
	checker := NewSwiftChecker()
	issues, err := checker.Check("Feature.swift", []byte(`import Foundation

struct Feature {
    let name: String

    func describe() -> String {
        return "feature " + name
    }
}
`))
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %#v", issues)
	}
}

func TestSwiftCheckerFlagsBrokenSource(t *testing.T) {
	checker := NewSwiftChecker()
	issues, err := checker.Check("Broken.swift", []byte(`struct Feature {
    func describe( -> String {
`))
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(issues) == 0 {
		t.Fatalf("expected issues for broken source")
	}
}

func TestCCheckerFlagsBrokenSource(t *testing.T) {
	checker := NewCChecker()
	issues, err := checker.Check("broken.c", []byte("int main( {\n"))
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(issues) == 0 {
		t.Fatalf("expected issues for broken source")
	}
}

func TestCppCheckerAcceptsValidSource(t *testing.T) {
	checker := NewCppChecker()
	issues, err := checker.Check("engine.cpp", []byte(`#include <string>

namespace demo {

std::string describe(const std::string &name) {
    return "engine " + name;
}

}
`))
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %#v", issues)
	}
}

func TestRegistryRoutesByExtension(t *testing.T) {
	r := NewDefaultRegistry()

	cases := map[string]string{
		"App/Feature.swift": "swift",
		"Core/util.c":       "c",
		"Core/engine.cpp":   "cpp",
		"Core/engine.hpp":   "cpp",
	}
	for file, lang := range cases {
		checker := r.ForFile(file)
		if checker == nil {
			t.Fatalf("expected checker for %s", file)
		}
		if got := checker.Language(); got != lang {
			t.Fatalf("expected %s for %s, got %s", lang, file, got)
		}
	}

	// ObjC and plain headers are deliberately unscreened.
	for _, file := range []string{"App/View.m", "App/View.mm", "Core/util.h", "Assets/logo.png"} {
		if checker := r.ForFile(file); checker != nil {
			t.Fatalf("expected no checker for %s, got %s", file, checker.Language())
		}
	}
}
