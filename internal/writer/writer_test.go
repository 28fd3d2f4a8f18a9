package writer

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pbxedit-dev/pbxedit/internal/parser"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../graph/testdata/project.pbxproj")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

func TestWriteRoundTripsFixtureByteForByte(t *testing.T) {
	text := loadFixture(t)
	doc, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	out := string(Write(doc))
	if out != text {
		t.Fatalf("canonical fixture did not survive byte-for-byte:\n%s", firstDiffContext(text, out))
	}
}

func TestWriteThenParseIsTreeEqual(t *testing.T) {
	text := loadFixture(t)
	first, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	second, err := parser.Parse(string(Write(first)))
	if err != nil {
		t.Fatalf("reparse emitted text: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("tree changed across write/parse (-first +second):\n%s", diff)
	}
}

func TestWriteNormalizesForeignLayout(t *testing.T) {
	// Same records, hostile whitespace and no section markers.
	foreign := `{objects={AB0000000000000000000001 /* a.swift */={isa=PBXFileReference;path=a.swift;sourceTree="<group>";};
	AB0000000000000000000002={isa=PBXGroup;children=(AB0000000000000000000001 /* a.swift */,);sourceTree="<group>";};};rootObject=AB0000000000000000000009;}`

	doc, err := parser.Parse(foreign)
	if err != nil {
		t.Fatalf("parse foreign text: %v", err)
	}
	out := string(Write(doc))

	if !strings.HasPrefix(out, parser.DefaultPreamble+"\n") {
		t.Fatalf("missing preamble:\n%s", out)
	}
	if !strings.Contains(out, "/* Begin PBXFileReference section */") ||
		!strings.Contains(out, "/* End PBXGroup section */") {
		t.Fatalf("missing section markers:\n%s", out)
	}
	// Single-line convention for file references, multi-line for groups.
	if !strings.Contains(out, `AB0000000000000000000001 /* a.swift */ = {isa = PBXFileReference; path = a.swift; sourceTree = "<group>"; };`) {
		t.Fatalf("file reference not emitted single-line:\n%s", out)
	}
	if !strings.Contains(out, "children = (\n\t\t\t\tAB0000000000000000000001 /* a.swift */,\n\t\t\t);") {
		t.Fatalf("children not emitted multi-line:\n%s", out)
	}

	// Emitted text is now stable.
	again, err := parser.Parse(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if string(Write(again)) != out {
		t.Fatal("writer output is not a fixed point")
	}
}

func TestWriteKeepsUnmodeledRecordsIntact(t *testing.T) {
	text := `{
	objects = {
		CD0000000000000000000001 /* exotic */ = {
			isa = PBXExoticThing;
			payload = (
				one,
				"two words",
			);
		};
	};
	rootObject = X;
}`
	doc, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := string(Write(doc))
	if !strings.Contains(out, "isa = PBXExoticThing;") || !strings.Contains(out, `"two words",`) {
		t.Fatalf("unmodeled record was altered:\n%s", out)
	}
}

func firstDiffContext(want, got string) string {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")
	n := len(wantLines)
	if len(gotLines) < n {
		n = len(gotLines)
	}
	for i := 0; i < n; i++ {
		if wantLines[i] != gotLines[i] {
			return fmt.Sprintf("line %d:\nwant %q\ngot  %q", i+1, wantLines[i], gotLines[i])
		}
	}
	return fmt.Sprintf("line counts differ: want %d, got %d", len(wantLines), len(gotLines))
}
