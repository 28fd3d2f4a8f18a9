package parser

import (
	"strings"
	"testing"
)

const minimalManifest = `// !$*UTF8*$!
{
	archiveVersion = 1;
	objectVersion = 56;
	objects = {
		AB0000000000000000000001 /* Main.swift */ = {isa = PBXFileReference; path = Main.swift; sourceTree = "<group>"; };
		AB0000000000000000000002 = {
			isa = PBXGroup;
			children = (
				AB0000000000000000000001 /* Main.swift */,
			);
			sourceTree = "<group>";
		};
	};
	rootObject = AB0000000000000000000009;
}
`

func TestParseSkipsByteOrderMark(t *testing.T) {
	doc, err := Parse("\uFEFF" + minimalManifest)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Preamble != DefaultPreamble {
		t.Fatalf("preamble = %q", doc.Preamble)
	}
	if doc.Objects() == nil {
		t.Fatalf("expected objects table")
	}
}

func TestParsePreservesOrderQuotingAndComments(t *testing.T) {
	doc, err := Parse(minimalManifest)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Preamble != DefaultPreamble {
		t.Fatalf("preamble = %q", doc.Preamble)
	}

	keys := make([]string, 0, len(doc.Root.Entries))
	for _, e := range doc.Root.Entries {
		keys = append(keys, e.Key)
	}
	want := []string{"archiveVersion", "objectVersion", "objects", "rootObject"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Fatalf("root keys = %v, want %v", keys, want)
	}

	objects := doc.Objects()
	if objects == nil || len(objects.Entries) != 2 {
		t.Fatalf("expected 2 object entries, got %+v", objects)
	}

	ref := objects.Entries[0]
	if ref.KeyComment != "Main.swift" {
		t.Fatalf("key comment = %q", ref.KeyComment)
	}
	tree := ref.Value.Dict.Get("sourceTree")
	if tree == nil || tree.Str != "<group>" || !tree.Quoted {
		t.Fatalf("sourceTree = %+v, want quoted <group>", tree)
	}

	group := objects.Entries[1].Value.Dict
	children := group.Get("children")
	if children == nil || children.Kind != KindArray || len(children.List) != 1 {
		t.Fatalf("children = %+v", children)
	}
	if children.List[0].Str != "AB0000000000000000000001" || children.List[0].Comment != "Main.swift" {
		t.Fatalf("child = %+v", children.List[0])
	}
}

func TestParseUnescapesQuotedStrings(t *testing.T) {
	doc, err := Parse(`{
		objects = { };
		rootObject = X;
		note = "a \"b\" \\ c";
	}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	note, ok := doc.Root.GetString("note")
	if !ok {
		t.Fatal("note missing")
	}
	if note != `a "b" \ c` {
		t.Fatalf("note = %q", note)
	}
}

func TestParseRejectsMissingStructure(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"not a dict", "(a, b)"},
		{"no objects", "{ rootObject = X; }"},
		{"no root object", "{ objects = { }; }"},
		{"objects not a dict", "{ objects = (a); rootObject = X; }"},
		{"unterminated", "{ objects = {"},
		{"unterminated string", `{ objects = { }; rootObject = "X`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.text)
			if err == nil {
				t.Fatal("expected a structure error")
			}
			if _, ok := err.(*StructureError); !ok {
				t.Fatalf("error type %T, want *StructureError", err)
			}
		})
	}
}

func TestParsePreservesUnrecognizedRecords(t *testing.T) {
	doc, err := Parse(`{
		objects = {
			CD0000000000000000000001 /* exotic */ = {isa = PBXExoticThing; payload = (1, 2, 3); };
		};
		rootObject = X;
	}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	entry := doc.Objects().Entries[0]
	isa, _ := entry.Value.Dict.GetString("isa")
	if isa != "PBXExoticThing" {
		t.Fatalf("isa = %q", isa)
	}
	payload := entry.Value.Dict.Get("payload")
	if payload == nil || len(payload.List) != 3 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestQuoteToken(t *testing.T) {
	cases := []struct {
		in     string
		quoted bool
		want   string
	}{
		{"AppDelegate.swift", false, "AppDelegate.swift"},
		{"", false, `""`},
		{"<group>", false, `"<group>"`},
		{"Xcode 14.0", false, `"Xcode 14.0"`},
		{"com.apple.product-type.application", true, `"com.apple.product-type.application"`},
		{`say "hi"`, false, `"say \"hi\""`},
		{"a\tb", false, `"a\tb"`},
	}
	for _, tc := range cases {
		if got := QuoteToken(tc.in, tc.quoted); got != tc.want {
			t.Fatalf("QuoteToken(%q, %v) = %q, want %q", tc.in, tc.quoted, got, tc.want)
		}
	}
}

func TestDictOrderedOperations(t *testing.T) {
	d := NewDict()
	d.Set("b", String("1"))
	d.Append("a", "note", String("2"))
	d.Set("b", String("3"))

	if len(d.Entries) != 2 {
		t.Fatalf("entries = %d", len(d.Entries))
	}
	if v, _ := d.GetString("b"); v != "3" {
		t.Fatalf("b = %q", v)
	}
	if d.Entries[0].Key != "b" || d.Entries[1].Key != "a" {
		t.Fatalf("order = %s,%s", d.Entries[0].Key, d.Entries[1].Key)
	}
	if !d.Delete("b") || d.Has("b") {
		t.Fatal("delete failed")
	}
	if d.Delete("missing") {
		t.Fatal("deleted a missing key")
	}
}
