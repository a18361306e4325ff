package scanner

import (
	"fmt"
	"strings"
)

// Param is a single key[=value] token of a tag. An empty Value means the
// token was written as a bare key or as "key=".
type Param struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// Tag is a scanned //@ annotation. Indent counts the leading whitespace
// characters, Params are kept in source order, Line holds the source line
// without its terminator and LineNo is 1-based.
type Tag struct {
	Keyword Keyword `json:"keyword" yaml:"keyword" toml:"keyword"`
	Indent  int     `json:"indent" yaml:"indent" toml:"indent"`
	Params  []Param `json:"params" yaml:"params" toml:"params"`
	Line    string  `json:"line" yaml:"line" toml:"line"`
	LineNo  int     `json:"lineNo" yaml:"lineNo" toml:"lineNo"`
}

// Get returns the value of the named parameter.
func (t Tag) Get(key string) (string, bool) {
	for _, p := range t.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// EmptyKeys returns, in order, the keys written without a value.
func (t Tag) EmptyKeys() []string {
	var keys []string
	for _, p := range t.Params {
		if p.Value == "" {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

// String renders the tag back into annotation form.
func (t Tag) String() string {
	var sb strings.Builder
	sb.WriteString(Marker)
	sb.WriteByte(' ')
	sb.WriteString(string(t.Keyword))
	for _, p := range t.Params {
		sb.WriteByte(' ')
		sb.WriteString(p.Key)
		if p.Value != "" {
			sb.WriteByte('=')
			sb.WriteString(p.Value)
		}
	}
	return sb.String()
}

// MalformedTagError reports a line that carries a known keyword but a token
// that is not key[=value]. Callers treat the line as plain text.
type MalformedTagError struct {
	Keyword Keyword
	Token   string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("malformed %s tag: unexpected token %q", e.Keyword, e.Token)
}

// ParseLine scans a single physical line. It returns ok=false for lines that
// are not tags, including lines whose keyword is not registered. A non-nil
// error is only returned for registered keywords followed by malformed tokens.
func ParseLine(line string, lineNo int) (tag Tag, ok bool, err error) {
	line = strings.TrimRight(line, "\r\n")
	lx := lexer{src: line}

	indent := lx.skipSpace()
	if !strings.HasPrefix(lx.rest(), Marker) {
		return Tag{}, false, nil
	}
	lx.pos += len(Marker)
	lx.skipSpace()

	word := lx.ident()
	if word == "" {
		return Tag{}, false, nil
	}
	if !lx.atEnd() && !isSpace(lx.peek()) {
		return Tag{}, false, nil
	}
	kw, known := LookupKeyword(word)
	if !known {
		return Tag{}, false, nil
	}

	tag = Tag{
		Keyword: kw,
		Indent:  indent,
		Line:    line,
		LineNo:  lineNo,
	}
	for {
		lx.skipSpace()
		if lx.atEnd() {
			break
		}
		p, perr := lx.param()
		if perr != "" {
			return Tag{}, false, &MalformedTagError{Keyword: kw, Token: perr}
		}
		tag.Params = setParam(tag.Params, p)
	}
	return tag, true, nil
}

// setParam keeps the first position of a repeated key and takes the later value.
func setParam(params []Param, p Param) []Param {
	for i := range params {
		if params[i].Key == p.Key {
			params[i].Value = p.Value
			return params
		}
	}
	return append(params, p)
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) atEnd() bool  { return l.pos >= len(l.src) }
func (l *lexer) peek() byte   { return l.src[l.pos] }
func (l *lexer) rest() string { return l.src[l.pos:] }

// skipSpace consumes spaces and tabs and returns how many were consumed.
func (l *lexer) skipSpace() int {
	start := l.pos
	for !l.atEnd() && isSpace(l.peek()) {
		l.pos++
	}
	return l.pos - start
}

func (l *lexer) ident() string {
	start := l.pos
	for !l.atEnd() && isIdent(l.peek()) {
		l.pos++
	}
	return l.src[start:l.pos]
}

// param reads key[=value]. On failure it returns the offending token.
func (l *lexer) param() (Param, string) {
	start := l.pos
	key := l.ident()
	if key == "" || (!l.atEnd() && !isSpace(l.peek()) && l.peek() != '=') {
		return Param{}, l.token(start)
	}
	p := Param{Key: key}
	if !l.atEnd() && l.peek() == '=' {
		l.pos++
		vstart := l.pos
		for !l.atEnd() && !isSpace(l.peek()) {
			l.pos++
		}
		p.Value = l.src[vstart:l.pos]
	}
	return p, ""
}

// token returns the whitespace-delimited token starting at start.
func (l *lexer) token(start int) string {
	end := start
	for end < len(l.src) && !isSpace(l.src[end]) {
		end++
	}
	return l.src[start:end]
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\v' || c == '\f' }

func isIdent(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
