package aritext

import (
	"fmt"
	"strings"

	"go.amprs.dev/ari/ari"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokARIPrefix
	tokSlash
	tokComma
	tokLParen
	tokRParen
	tokLSquare
	tokRSquare
	tokEquals
	tokTypeName
	tokTypeDot
	tokBool
	tokFloat
	tokInt
	tokTStr
	tokBStr
	tokName
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer scans ARI text into a flat token stream. It mirrors the PLY token
// grammar from the reference implementation rather than a generic
// tokenizer: NAME, TYPENAME/TYPEDOT, and the literal forms all have
// distinct, order-sensitive regexes there, which this hand-written scanner
// reproduces as ordered match attempts.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer { return &lexer{src: src} }

func (l *lexer) errf(format string, args ...any) error {
	return fmt.Errorf("%w: at offset %d: %s", ErrSyntax, l.pos, fmt.Sprintf(format, args...))
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}

	return l.src[l.pos]
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.pos++

			continue
		}

		break
	}
}

// next returns the next token, or a tokEOF token once the input is
// exhausted.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	c := l.src[l.pos]

	switch {
	case strings.HasPrefix(l.src[l.pos:], "ari://"):
		l.pos += len("ari://")

		return token{kind: tokARIPrefix, text: "ari://", pos: start}, nil
	case strings.HasPrefix(l.src[l.pos:], "ari:"):
		l.pos += len("ari:")

		return token{kind: tokARIPrefix, text: "ari:", pos: start}, nil
	case c == '/':
		l.pos++

		return token{kind: tokSlash, pos: start}, nil
	case c == ',':
		l.pos++

		return token{kind: tokComma, pos: start}, nil
	case c == '(':
		l.pos++

		return token{kind: tokLParen, pos: start}, nil
	case c == ')':
		l.pos++

		return token{kind: tokRParen, pos: start}, nil
	case c == '[':
		l.pos++

		return token{kind: tokLSquare, pos: start}, nil
	case c == ']':
		l.pos++

		return token{kind: tokRSquare, pos: start}, nil
	case c == '=':
		l.pos++

		return token{kind: tokEquals, pos: start}, nil
	case c == '"':
		return l.lexTStr(start)
	case isBStrPrefix(l.src[l.pos:]):
		return l.lexBStr(start)
	case c == '-' || isDigit(c):
		return l.lexNumber(start)
	case isIdentStart(c):
		return l.lexIdent(start)
	default:
		return token{}, l.errf("unexpected character %q", c)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '-'
}

func isBStrPrefix(s string) bool {
	for _, p := range []string{"h'", "b32'", "h32'", "b64'"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}

func (l *lexer) lexTStr(start int) (token, error) {
	l.pos++ // opening quote

	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, l.errf("unterminated string literal")
		}

		c := l.src[l.pos]
		if c == '"' {
			l.pos++

			return token{kind: tokTStr, text: sb.String(), pos: start}, nil
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos++
			switch l.src[l.pos] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(l.src[l.pos])
			}
			l.pos++

			continue
		}
		sb.WriteByte(c)
		l.pos++
	}
}

func (l *lexer) lexBStr(start int) (token, error) {
	rest := l.src[l.pos:]

	var prefixLen int
	for _, p := range []string{"b32'", "h32'", "b64'", "h'"} {
		if strings.HasPrefix(rest, p) {
			prefixLen = len(p)

			break
		}
	}
	l.pos += prefixLen

	bodyStart := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\'' {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{}, l.errf("unterminated byte string literal")
	}
	text := l.src[start:l.pos] + "'"
	_ = bodyStart
	l.pos++ // closing quote

	return token{kind: tokBStr, text: text, pos: start}, nil
}

func (l *lexer) lexNumber(start int) (token, error) {
	if l.src[l.pos] == '-' {
		l.pos++
	}
	if strings.HasPrefix(l.src[l.pos:], "0x") || strings.HasPrefix(l.src[l.pos:], "0X") {
		l.pos += 2
		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.pos++
		}

		return token{kind: tokInt, text: l.src[start:l.pos], pos: start}, nil
	}
	if strings.HasPrefix(l.src[l.pos:], "0b") || strings.HasPrefix(l.src[l.pos:], "0B") {
		l.pos += 2
		for l.pos < len(l.src) && (l.src[l.pos] == '0' || l.src[l.pos] == '1') {
			l.pos++
		}

		return token{kind: tokInt, text: l.src[start:l.pos], pos: start}, nil
	}

	isFloat := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isDigit(c):
			l.pos++
		case c == '.' && !isFloat:
			isFloat = true
			l.pos++
		case (c == 'e' || c == 'E') && l.pos+1 < len(l.src) &&
			(isDigit(l.src[l.pos+1]) || l.src[l.pos+1] == '+' || l.src[l.pos+1] == '-'):
			isFloat = true
			l.pos++
			if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
				l.pos++
			}
		default:
			goto done
		}
	}
done:
	if isFloat {
		return token{kind: tokFloat, text: l.src[start:l.pos], pos: start}, nil
	}

	return token{kind: tokInt, text: l.src[start:l.pos], pos: start}, nil
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *lexer) lexIdent(start int) (token, error) {
	l.scanIdentRun()
	text := l.src[start:l.pos]

	switch text {
	case "true", "false":
		return token{kind: tokBool, text: text, pos: start}, nil
	}

	// TYPENAME "." forms a TYPEDOT token when the identifier matches a
	// known struct type and is immediately followed by '.'. A compound
	// namespace segment (see below) never reaches here with a colon
	// already in text, since TYPEDOT only ever names a bare KIND.
	if l.peekByte() == '.' {
		if upper := strings.ToUpper(text); upper == text {
			if _, ok := ari.ParseStructType(text); ok {
				l.pos++ // consume '.'

				return token{kind: tokTypeDot, text: text, pos: start}, nil
			}
		}
	}

	// A namespace segment may be a registry-prefixed compound, e.g.
	// "IANA:amp_agent" or "IANA:DTN.bp_agent": extend the identifier
	// through further ':' or '.' separators as long as each is
	// immediately followed by more identifier text, rather than the
	// slash or paren that would end the segment.
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if (c != ':' && c != '.') || l.pos+1 >= len(l.src) || !isIdentStart(l.src[l.pos+1]) {
			break
		}
		l.pos++ // consume separator
		l.scanIdentRun()
	}
	text = l.src[start:l.pos]

	return token{kind: tokName, text: text, pos: start}, nil
}

func (l *lexer) scanIdentRun() {
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
}
