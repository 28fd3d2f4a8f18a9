// Package parser turns raw project-manifest text (the OpenStep plist dialect
// used by project.pbxproj files) into an ordered value tree. Entry order,
// quoting, and inline comment annotations are all preserved so the writer can
// re-emit untouched records exactly as they arrived.
package parser

import "strings"

// DefaultPreamble is the encoding marker Xcode writes as the first line.
const DefaultPreamble = "// !$*UTF8*$!"

// Parse consumes manifest text and produces the document tree. It fails with
// a *StructureError when the text is not a well-formed plist or the top-level
// objects table / rootObject reference is missing.
func Parse(text string) (*Document, error) {
	doc := &Document{Preamble: DefaultPreamble}

	body := text
	if strings.HasPrefix(strings.TrimLeft(body, "\uFEFF"), "//") {
		trimmed := strings.TrimLeft(body, "\uFEFF")
		if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
			doc.Preamble = strings.TrimRight(trimmed[:idx], "\r")
			body = trimmed[idx+1:]
		} else {
			doc.Preamble = trimmed
			body = ""
		}
	}

	ts := &tokenStream{lex: newLexer(body)}
	tok, err := ts.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokLBrace {
		return nil, structureErr(tok.line, "manifest root is not a dictionary")
	}
	root, err := parseDict(ts)
	if err != nil {
		return nil, err
	}
	tok, err = ts.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokEOF {
		return nil, structureErr(tok.line, "trailing content after root dictionary")
	}
	doc.Root = root

	if doc.Objects() == nil {
		return nil, structureErr(0, "objects table is missing")
	}
	if _, ok := doc.Root.GetString("rootObject"); !ok {
		return nil, structureErr(0, "rootObject reference is missing")
	}
	return doc, nil
}

type tokenStream struct {
	lex    *lexer
	peeked *token
}

func (ts *tokenStream) next() (token, error) {
	if ts.peeked != nil {
		tok := *ts.peeked
		ts.peeked = nil
		return tok, nil
	}
	return ts.lex.next()
}

func (ts *tokenStream) peek() (token, error) {
	if ts.peeked == nil {
		tok, err := ts.lex.next()
		if err != nil {
			return token{}, err
		}
		ts.peeked = &tok
	}
	return *ts.peeked, nil
}

// takeComments consumes consecutive comment tokens, returning the last one.
func takeComments(ts *tokenStream) (string, error) {
	comment := ""
	for {
		tok, err := ts.peek()
		if err != nil {
			return "", err
		}
		if tok.kind != tokComment {
			return comment, nil
		}
		comment = tok.text
		if _, err := ts.next(); err != nil {
			return "", err
		}
	}
}

func parseValue(ts *tokenStream, tok token) (*Value, error) {
	switch tok.kind {
	case tokString:
		comment, err := takeComments(ts)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: KindString, Str: tok.text, Quoted: tok.quoted, Comment: comment}, nil
	case tokLBrace:
		d, err := parseDict(ts)
		if err != nil {
			return nil, err
		}
		return DictValue(d), nil
	case tokLParen:
		return parseArray(ts)
	default:
		return nil, structureErr(tok.line, "expected a value")
	}
}

func parseDict(ts *tokenStream) (*Dict, error) {
	d := NewDict()
	for {
		tok, err := ts.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokRBrace:
			return d, nil
		case tokComment:
			// Section markers inside the objects table; regenerated on write.
			continue
		case tokString:
			entry := &Entry{Key: tok.text, KeyQuoted: tok.quoted}
			if entry.KeyComment, err = takeComments(ts); err != nil {
				return nil, err
			}
			eq, err := ts.next()
			if err != nil {
				return nil, err
			}
			if eq.kind != tokEquals {
				return nil, structureErr(eq.line, "expected '=' after key %q", entry.Key)
			}
			val, err := ts.next()
			if err != nil {
				return nil, err
			}
			if entry.Value, err = parseValue(ts, val); err != nil {
				return nil, err
			}
			semi, err := ts.next()
			if err != nil {
				return nil, err
			}
			if semi.kind != tokSemi {
				return nil, structureErr(semi.line, "expected ';' after value for %q", entry.Key)
			}
			d.Entries = append(d.Entries, entry)
		default:
			return nil, structureErr(tok.line, "unexpected token in dictionary")
		}
	}
}

func parseArray(ts *tokenStream) (*Value, error) {
	arr := &Value{Kind: KindArray, List: make([]*Value, 0, 4)}
	for {
		tok, err := ts.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokRParen {
			return arr, nil
		}
		if tok.kind == tokComment {
			continue
		}
		item, err := parseValue(ts, tok)
		if err != nil {
			return nil, err
		}
		arr.List = append(arr.List, item)

		sep, err := ts.next()
		if err != nil {
			return nil, err
		}
		if sep.kind == tokRParen {
			return arr, nil
		}
		if sep.kind != tokComma {
			return nil, structureErr(sep.line, "expected ',' between array items")
		}
	}
}
