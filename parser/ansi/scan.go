// Package ansi is TidySQL's reference lexer/parser: a small hand-rolled
// recursive-descent SELECT-statement grammar, scanned the way the
// teacher's own sqlparser scans T-SQL (a cursor over the input string,
// one rune of lookahead, no external scanner generator). It exists to
// drive the lint rules and the top-level pipeline without depending on
// a real multi-dialect SQL grammar, which the core specification treats
// as an external collaborator.
package ansi

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"

	"github.com/tidysql/tidysql/syntax"
)

// scannedToken is the concrete syntax.ParserToken this scanner produces.
type scannedToken struct {
	kind syntax.Kind
	raw  string
}

func (t scannedToken) Kind() syntax.Kind { return t.kind }
func (t scannedToken) Raw() string       { return t.raw }
func (t scannedToken) IsWhitespace() bool {
	return t.kind == syntax.Whitespace
}
func (t scannedToken) IsComment() bool {
	return t.kind == syntax.LineComment || t.kind == syntax.BlockComment
}
func (t scannedToken) IsMeta() bool { return t.kind == syntax.Meta }

// scanner is a cursor over the source, mirroring the teacher's
// start/cur index pair rather than an allocated token slice.
type scanner struct {
	input string
	start int
	cur   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input}
}

func (s *scanner) token() string { return s.input[s.start:s.cur] }

// next scans and returns the next token, advancing the cursor past it.
func (s *scanner) next() scannedToken {
	s.start = s.cur
	if s.cur >= len(s.input) {
		return scannedToken{kind: syntax.EOF}
	}

	r, w := utf8.DecodeRuneInString(s.input[s.cur:])

	switch {
	case r == '(':
		s.cur += w
		return scannedToken{kind: syntax.LeftParen, raw: s.token()}
	case r == ')':
		s.cur += w
		return scannedToken{kind: syntax.RightParen, raw: s.token()}
	case r == ',':
		s.cur += w
		return scannedToken{kind: syntax.Comma, raw: s.token()}
	case r == '.':
		s.cur += w
		return scannedToken{kind: syntax.Dot, raw: s.token()}
	case r == ';':
		s.cur += w
		return scannedToken{kind: syntax.Semicolon, raw: s.token()}
	case r == '\'':
		s.cur += w
		return s.scanQuoted('\'', syntax.String)
	case r == '"':
		s.cur += w
		return s.scanQuoted('"', syntax.QuotedIdentifier)
	case r == '`':
		s.cur += w
		return s.scanQuoted('`', syntax.QuotedIdentifier)
	case r == '[':
		s.cur += w
		return s.scanBracketed()
	case r >= '0' && r <= '9':
		return s.scanNumber()
	case unicode.IsSpace(r):
		return s.scanWhitespace()
	case r == '@':
		s.cur += w
		s.scanIdentifierRest()
		return scannedToken{kind: syntax.VariableIdentifier, raw: s.token()}
	}

	if s.cur+w < len(s.input) {
		r2, w2 := utf8.DecodeRuneInString(s.input[s.cur+w:])
		switch {
		case r == '-' && r2 == '-':
			s.cur += w + w2
			return s.scanLineComment()
		case r == '/' && r2 == '*':
			s.cur += w + w2
			return s.scanBlockComment()
		case (r == '<' && r2 == '>') || (r == '<' && r2 == '=') || (r == '>' && r2 == '='):
			s.cur += w + w2
			return scannedToken{kind: syntax.Operator, raw: s.token()}
		}
	}

	switch {
	case xid.Start(r) || r == '_':
		s.cur += w
		s.scanIdentifierRest()
		word := strings.ToLower(s.token())
		if isKeyword(word) {
			return scannedToken{kind: syntax.Keyword, raw: s.token()}
		}
		return scannedToken{kind: syntax.Identifier, raw: s.token()}
	case isOperatorRune(r):
		s.cur += w
		return scannedToken{kind: syntax.Operator, raw: s.token()}
	}

	s.cur += w
	return scannedToken{kind: syntax.Unknown, raw: s.token()}
}

func isOperatorRune(r rune) bool {
	switch r {
	case '=', '<', '>', '+', '-', '*', '/', '%', '|', '~':
		return true
	}
	return false
}

func (s *scanner) scanIdentifierRest() {
	for i, r := range s.input[s.cur:] {
		if !(xid.Continue(r) || r == '_' || r == '$') {
			s.cur += i
			return
		}
	}
	s.cur = len(s.input)
}

// scanQuoted assumes the opening quote has already been consumed; it
// scans to the matching closing quote, treating a doubled quote as an
// escaped literal quote character (the teacher's scanQuotedIdentifier
// convention, generalised to any of the three supported quote styles).
func (s *scanner) scanQuoted(q rune, kind syntax.Kind) scannedToken {
	for i := s.cur; i < len(s.input); {
		r, w := utf8.DecodeRuneInString(s.input[i:])
		if r == q {
			if i+w < len(s.input) {
				r2, w2 := utf8.DecodeRuneInString(s.input[i+w:])
				if r2 == q {
					i += w + w2
					continue
				}
			}
			s.cur = i + w
			return scannedToken{kind: kind, raw: s.token()}
		}
		i += w
	}
	s.cur = len(s.input)
	return scannedToken{kind: kind, raw: s.token()}
}

func (s *scanner) scanBracketed() scannedToken {
	for i := s.cur; i < len(s.input); {
		r, w := utf8.DecodeRuneInString(s.input[i:])
		if r == ']' {
			if i+w < len(s.input) {
				r2, w2 := utf8.DecodeRuneInString(s.input[i+w:])
				if r2 == ']' {
					i += w + w2
					continue
				}
			}
			s.cur = i + w
			return scannedToken{kind: syntax.QuotedIdentifier, raw: s.token()}
		}
		i += w
	}
	s.cur = len(s.input)
	return scannedToken{kind: syntax.QuotedIdentifier, raw: s.token()}
}

func (s *scanner) scanNumber() scannedToken {
	i := s.cur
	for i < len(s.input) && s.input[i] >= '0' && s.input[i] <= '9' {
		i++
	}
	if i < len(s.input) && s.input[i] == '.' {
		i++
		for i < len(s.input) && s.input[i] >= '0' && s.input[i] <= '9' {
			i++
		}
	}
	s.cur = i
	return scannedToken{kind: syntax.Number, raw: s.token()}
}

func (s *scanner) scanWhitespace() scannedToken {
	for i, r := range s.input[s.cur:] {
		if !unicode.IsSpace(r) {
			s.cur += i
			return scannedToken{kind: syntax.Whitespace, raw: s.token()}
		}
	}
	s.cur = len(s.input)
	return scannedToken{kind: syntax.Whitespace, raw: s.token()}
}

func (s *scanner) scanLineComment() scannedToken {
	end := strings.IndexByte(s.input[s.cur:], '\n')
	if end == -1 {
		s.cur = len(s.input)
	} else {
		s.cur += end
	}
	return scannedToken{kind: syntax.LineComment, raw: s.token()}
}

func (s *scanner) scanBlockComment() scannedToken {
	prevWasStar := false
	for i, r := range s.input[s.cur:] {
		if r == '*' {
			prevWasStar = true
			continue
		}
		if prevWasStar && r == '/' {
			s.cur += i + 1
			return scannedToken{kind: syntax.BlockComment, raw: s.token()}
		}
		prevWasStar = false
	}
	s.cur = len(s.input)
	return scannedToken{kind: syntax.BlockComment, raw: s.token()}
}
