package parser

import (
	"strings"
)

// QuoteToken renders s as a manifest token. Quotes are applied when the
// original token carried them or when s falls outside the bare-token
// alphabet, so untouched records keep their quoting on re-emission.
func QuoteToken(s string, quoted bool) string {
	if !quoted && s != "" && isBareToken(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBareToken(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isBareChar(s[i]) {
			return false
		}
	}
	return true
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokEquals
	tokSemi
	tokComma
	tokString
	tokComment
)

type token struct {
	kind   tokenKind
	text   string
	quoted bool
	line   int
}

type lexer struct {
	input string
	pos   int
	line  int
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1}
}

// isBareChar reports whether c may appear in an unquoted token.
func isBareChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', '$', '/', ':', '.', '-':
		return true
	}
	return false
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '*':
			return l.lexBlockComment()
		case c == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/':
			// Line comments only appear as the encoding preamble, which is
			// captured before lexing; any stragglers are skipped.
			if idx := strings.IndexByte(l.input[l.pos:], '\n'); idx >= 0 {
				l.pos += idx
			} else {
				l.pos = len(l.input)
			}
		case c == '{':
			l.pos++
			return token{kind: tokLBrace, line: l.line}, nil
		case c == '}':
			l.pos++
			return token{kind: tokRBrace, line: l.line}, nil
		case c == '(':
			l.pos++
			return token{kind: tokLParen, line: l.line}, nil
		case c == ')':
			l.pos++
			return token{kind: tokRParen, line: l.line}, nil
		case c == '=':
			l.pos++
			return token{kind: tokEquals, line: l.line}, nil
		case c == ';':
			l.pos++
			return token{kind: tokSemi, line: l.line}, nil
		case c == ',':
			l.pos++
			return token{kind: tokComma, line: l.line}, nil
		case c == '"':
			return l.lexQuoted()
		case isBareChar(c):
			return l.lexBare()
		default:
			return token{}, structureErr(l.line, "unexpected character %q", c)
		}
	}
	return token{kind: tokEOF, line: l.line}, nil
}

func (l *lexer) lexBlockComment() (token, error) {
	start := l.pos + 2
	end := strings.Index(l.input[start:], "*/")
	if end < 0 {
		return token{}, structureErr(l.line, "unterminated comment")
	}
	text := strings.TrimSpace(l.input[start : start+end])
	l.line += strings.Count(l.input[l.pos:start+end+2], "\n")
	l.pos = start + end + 2
	return token{kind: tokComment, text: text, line: l.line}, nil
}

func (l *lexer) lexQuoted() (token, error) {
	startLine := l.line
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokString, text: b.String(), quoted: true, line: startLine}, nil
		case '\\':
			if l.pos+1 >= len(l.input) {
				return token{}, structureErr(startLine, "unterminated string escape")
			}
			l.pos++
			switch esc := l.input[l.pos]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\':
				b.WriteByte(esc)
			default:
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
			l.pos++
		case '\n':
			l.line++
			b.WriteByte(c)
			l.pos++
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return token{}, structureErr(startLine, "unterminated string")
}

func (l *lexer) lexBare() (token, error) {
	start := l.pos
	for l.pos < len(l.input) && isBareChar(l.input[l.pos]) {
		l.pos++
	}
	return token{kind: tokString, text: l.input[start:l.pos], line: l.line}, nil
}
