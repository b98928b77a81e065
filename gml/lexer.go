package gml

import (
	"bufio"
	"fmt"
	"io"
)

// token is a single GML lexeme: a bracket, a bare word, or a quoted string
// (quoted strings never act as structure).
type token struct {
	text   string
	quoted bool
	line   int
}

type lexer struct {
	r    *bufio.Reader
	line int
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), line: 1}
}

// next returns the next token, io.EOF at end of input, or a malformed error
// for an unterminated quoted string.
func (l *lexer) next() (token, error) {
	// Skip whitespace and GML # comments.
	for {
		c, _, err := l.r.ReadRune()
		if err != nil {
			return token{}, io.EOF
		}
		switch {
		case c == '\n':
			l.line++
		case c == ' ' || c == '\t' || c == '\r':
			// keep skipping
		case c == '#':
			if err := l.skipLine(); err != nil {
				return token{}, io.EOF
			}
		case c == '[' || c == ']':
			return token{text: string(c), line: l.line}, nil
		case c == '"':
			return l.quotedString()
		default:
			return l.bareWord(c)
		}
	}
}

func (l *lexer) skipLine() error {
	for {
		c, _, err := l.r.ReadRune()
		if err != nil {
			return err
		}
		if c == '\n' {
			l.line++
			return nil
		}
	}
}

func (l *lexer) quotedString() (token, error) {
	start := l.line
	var buf []rune
	for {
		c, _, err := l.r.ReadRune()
		if err != nil {
			return token{}, fmt.Errorf("%w: line %d: unterminated string", ErrMalformed, start)
		}
		switch c {
		case '"':
			return token{text: string(buf), quoted: true, line: start}, nil
		case '\n':
			l.line++
			buf = append(buf, c)
		default:
			buf = append(buf, c)
		}
	}
}

func (l *lexer) bareWord(first rune) (token, error) {
	start := l.line
	buf := []rune{first}
	for {
		c, _, err := l.r.ReadRune()
		if err != nil {
			break
		}
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '[' || c == ']' || c == '"' {
			_ = l.r.UnreadRune()
			break
		}
		buf = append(buf, c)
	}

	return token{text: string(buf), line: start}, nil
}
