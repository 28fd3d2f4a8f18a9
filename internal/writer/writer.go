// Package writer renders a parsed manifest document back to text in the
// canonical Xcode form: tab indentation, the objects table grouped into
// Begin/End sections sorted by isa, file-reference and build-file records on
// a single line, and comment annotations re-emitted in place. Text produced
// here parses back to an identical tree.
package writer

import (
	"sort"
	"strings"

	"github.com/pbxedit-dev/pbxedit/internal/parser"
)

// singleLineIsas lists record types Xcode emits on one line.
var singleLineIsas = map[string]bool{
	"PBXBuildFile":     true,
	"PBXFileReference": true,
}

// Write renders the document. Output always ends with a newline.
func Write(doc *parser.Document) []byte {
	var b strings.Builder
	preamble := doc.Preamble
	if preamble == "" {
		preamble = parser.DefaultPreamble
	}
	b.WriteString(preamble)
	b.WriteString("\n{\n")
	for _, e := range doc.Root.Entries {
		if e.Key == "objects" && e.Value.Kind == parser.KindDict {
			writeObjects(&b, e.Value.Dict)
			continue
		}
		writeEntry(&b, e, 1)
	}
	b.WriteString("}\n")
	return []byte(b.String())
}

func writeEntry(b *strings.Builder, e *parser.Entry, depth int) {
	indent(b, depth)
	writeKey(b, e)
	b.WriteString(" = ")
	writeValue(b, e.Value, depth)
	b.WriteString(";\n")
}

func writeKey(b *strings.Builder, e *parser.Entry) {
	b.WriteString(parser.QuoteToken(e.Key, e.KeyQuoted))
	if e.KeyComment != "" {
		b.WriteString(" /* ")
		b.WriteString(e.KeyComment)
		b.WriteString(" */")
	}
}

func writeValue(b *strings.Builder, v *parser.Value, depth int) {
	switch v.Kind {
	case parser.KindString:
		writeString(b, v)
	case parser.KindArray:
		b.WriteString("(\n")
		for _, item := range v.List {
			indent(b, depth+1)
			writeValue(b, item, depth+1)
			b.WriteString(",\n")
		}
		indent(b, depth)
		b.WriteString(")")
	case parser.KindDict:
		b.WriteString("{\n")
		for _, e := range v.Dict.Entries {
			writeEntry(b, e, depth+1)
		}
		indent(b, depth)
		b.WriteString("}")
	}
}

func writeString(b *strings.Builder, v *parser.Value) {
	b.WriteString(parser.QuoteToken(v.Str, v.Quoted))
	if v.Comment != "" {
		b.WriteString(" /* ")
		b.WriteString(v.Comment)
		b.WriteString(" */")
	}
}

// writeObjects emits the objects table grouped by isa section. Entries keep
// their table order within a section; records without an isa (malformed but
// tolerated) are emitted first, outside any section.
func writeObjects(b *strings.Builder, objects *parser.Dict) {
	indent(b, 1)
	b.WriteString("objects = {\n")

	sections := make(map[string][]*parser.Entry)
	names := make([]string, 0, 8)
	for _, e := range objects.Entries {
		isa := ""
		if e.Value.Kind == parser.KindDict {
			isa, _ = e.Value.Dict.GetString("isa")
		}
		if _, seen := sections[isa]; !seen && isa != "" {
			names = append(names, isa)
		}
		sections[isa] = append(sections[isa], e)
	}
	sort.Strings(names)

	for _, e := range sections[""] {
		writeObjectEntry(b, e, "")
	}
	for _, isa := range names {
		b.WriteString("\n/* Begin ")
		b.WriteString(isa)
		b.WriteString(" section */\n")
		for _, e := range sections[isa] {
			writeObjectEntry(b, e, isa)
		}
		b.WriteString("/* End ")
		b.WriteString(isa)
		b.WriteString(" section */\n")
	}

	indent(b, 1)
	b.WriteString("};\n")
}

func writeObjectEntry(b *strings.Builder, e *parser.Entry, isa string) {
	if singleLineIsas[isa] && e.Value.Kind == parser.KindDict {
		indent(b, 2)
		writeKey(b, e)
		b.WriteString(" = ")
		writeInlineDict(b, e.Value.Dict)
		b.WriteString(";\n")
		return
	}
	writeEntry(b, e, 2)
}

func writeInlineDict(b *strings.Builder, d *parser.Dict) {
	b.WriteString("{")
	for _, e := range d.Entries {
		writeKey(b, e)
		b.WriteString(" = ")
		writeInlineValue(b, e.Value)
		b.WriteString("; ")
	}
	b.WriteString("}")
}

func writeInlineValue(b *strings.Builder, v *parser.Value) {
	switch v.Kind {
	case parser.KindString:
		writeString(b, v)
	case parser.KindArray:
		b.WriteString("(")
		for _, item := range v.List {
			writeInlineValue(b, item)
			b.WriteString(", ")
		}
		b.WriteString(")")
	case parser.KindDict:
		writeInlineDict(b, v.Dict)
	}
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteByte('\t')
	}
}
