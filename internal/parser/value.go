package parser

// ValueKind identifies what a Value holds.
type ValueKind int

const (
	KindString ValueKind = iota
	KindArray
	KindDict
)

// Value is one node of the parsed manifest tree. Strings carry the inline
// /* ... */ annotation and whether the original token was quoted, so the
// writer can re-emit untouched records verbatim.
type Value struct {
	Kind    ValueKind
	Str     string
	Comment string
	Quoted  bool
	List    []*Value
	Dict    *Dict
}

// String returns a bare string value.
func String(s string) *Value {
	return &Value{Kind: KindString, Str: s}
}

// Annotated returns a string value with an inline comment annotation.
func Annotated(s, comment string) *Value {
	return &Value{Kind: KindString, Str: s, Comment: comment}
}

// Array returns an array value holding the given items.
func Array(items ...*Value) *Value {
	return &Value{Kind: KindArray, List: items}
}

// DictValue wraps a dict as a value.
func DictValue(d *Dict) *Value {
	return &Value{Kind: KindDict, Dict: d}
}

// Entry is one key/value pair of a dict, in manifest order.
type Entry struct {
	Key        string
	KeyComment string
	KeyQuoted  bool
	Value      *Value
}

// Dict is an ordered dictionary. Iteration order is the order entries
// appeared in the manifest text (table order).
type Dict struct {
	Entries []*Entry
}

// NewDict creates an empty dict.
func NewDict() *Dict {
	return &Dict{Entries: make([]*Entry, 0, 4)}
}

// Get returns the value for key, or nil.
func (d *Dict) Get(key string) *Value {
	for _, e := range d.Entries {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// GetString returns the string value for key when present and string-kinded.
func (d *Dict) GetString(key string) (string, bool) {
	v := d.Get(key)
	if v == nil || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// Set replaces the value for key, appending a new entry when absent.
func (d *Dict) Set(key string, v *Value) {
	for _, e := range d.Entries {
		if e.Key == key {
			e.Value = v
			return
		}
	}
	d.Entries = append(d.Entries, &Entry{Key: key, Value: v})
}

// Append adds a new entry with a key comment, without replacing duplicates.
func (d *Dict) Append(key, keyComment string, v *Value) {
	d.Entries = append(d.Entries, &Entry{Key: key, KeyComment: keyComment, Value: v})
}

// Delete removes the first entry for key and reports whether one existed.
func (d *Dict) Delete(key string) bool {
	for i, e := range d.Entries {
		if e.Key == key {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	return d.Get(key) != nil
}

// Document is a parsed manifest: the encoding preamble line plus the root
// dict. The graph facade and the writer both operate on this tree; records
// with unmodeled isa types ride through it untouched.
type Document struct {
	Preamble string
	Root     *Dict
}

// Objects returns the top-level objects table.
func (doc *Document) Objects() *Dict {
	v := doc.Root.Get("objects")
	if v == nil || v.Kind != KindDict {
		return nil
	}
	return v.Dict
}
