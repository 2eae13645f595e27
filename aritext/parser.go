package aritext

import (
	"fmt"
	"strconv"
	"strings"

	"go.amprs.dev/ari/ari"
	"go.amprs.dev/ari/ariutil"
)

// parser is a one-token-lookahead recursive-descent parser over the ARI
// text grammar: ari := ARI_PREFIX ssp, where ssp is either a reference
// (namespace "/" kind.name paramlist?) or a bare literal.
type parser struct {
	lex *lexer
	tok token
}

func newParser(src string) (*parser, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t

	return nil
}

func (p *parser) expect(k tokenKind, what string) (token, error) {
	if p.tok.kind != k {
		return token{}, p.errf("expected %s", what)
	}
	t := p.tok
	if err := p.advance(); err != nil {
		return token{}, err
	}

	return t, nil
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("%w: at offset %d: %s", ErrSyntax, p.tok.pos, fmt.Sprintf(format, args...))
}

// parseARI parses a complete ARI, requiring the full input be consumed.
func parseARI(src string) (ari.ARI, error) {
	src = strings.TrimSpace(src)

	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokARIPrefix, "\"ari:\" prefix"); err != nil {
		return nil, err
	}

	val, err := p.parseSSP()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errf("unexpected trailing input")
	}

	return val, nil
}

func (p *parser) parseSSP() (ari.ARI, error) {
	if p.tok.kind == tokSlash {
		return p.parseReference()
	}

	return p.parseLiteral()
}

func (p *parser) parseReference() (ari.ARI, error) {
	if _, err := p.expect(tokSlash, "'/'"); err != nil {
		return nil, err
	}

	// The namespace segment is optional: "ari:/VAR.hello" names an object
	// in the implicit default namespace, distinguished here by the token
	// right after the leading slash already being a TYPEDOT rather than a
	// namespace NAME.
	var ns any
	if p.tok.kind != tokTypeDot {
		n, err := p.parseNSOrName()
		if err != nil {
			return nil, err
		}
		ns = n

		if _, err := p.expect(tokSlash, "'/'"); err != nil {
			return nil, err
		}
	}

	if p.tok.kind != tokTypeDot {
		return nil, p.errf("expected object kind (TYPE.name)")
	}
	kind, ok := ari.ParseStructType(p.tok.text)
	if !ok {
		return nil, p.errf("unknown object kind %q", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	name, err := p.parseNSOrName()
	if err != nil {
		return nil, err
	}

	ref := &ari.ReferenceARI{Identity: ari.Identity{Namespace: ns, Kind: kind, Name: name}}

	if p.tok.kind == tokLParen {
		parms, err := p.parseParmList()
		if err != nil {
			return nil, err
		}
		ref.Params = parms
	}

	return ref, nil
}

func (p *parser) parseNSOrName() (any, error) {
	switch p.tok.kind {
	case tokName:
		text := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}

		return text, nil
	case tokInt:
		v, err := p.parseIntText(p.tok.text)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		return v, nil
	default:
		return nil, p.errf("expected identifier or number")
	}
}

func (p *parser) parseIntText(text string) (uint64, error) {
	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid integer %q: %w", ErrSyntax, text, err)
	}

	return v, nil
}

// parseParmList parses "(" (item ("," item)*)? ")" into a TNVC, accepting
// both "name=value" keyword parms and bare positional values.
func (p *parser) parseParmList() (*ari.TNVC, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}

	tnvc := &ari.TNVC{}
	if p.tok.kind == tokRParen {
		return tnvc, p.advance()
	}

	for {
		parm, err := p.parseParmItem()
		if err != nil {
			return nil, err
		}
		tnvc.Parms = append(tnvc.Parms, parm)

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}

	return tnvc, nil
}

func (p *parser) parseParmItem() (ari.Parm, error) {
	if p.tok.kind == tokName {
		// Lookahead for "name=value"; otherwise restore the NAME token
		// and parse the item as a value, which rejects a lone NAME.
		save := *p.lex
		saveTok := p.tok
		name := p.tok.text
		if err := p.advance(); err != nil {
			return ari.Parm{}, err
		}
		if p.tok.kind == tokEquals {
			if err := p.advance(); err != nil {
				return ari.Parm{}, err
			}
			val, err := p.parseLiteralOrARI()
			if err != nil {
				return ari.Parm{}, err
			}

			return ari.Parm{Name: name, Value: val}, nil
		}
		*p.lex = save
		p.tok = saveTok
	}

	val, err := p.parseLiteralOrARI()
	if err != nil {
		return ari.Parm{}, err
	}

	return ari.Parm{Value: val}, nil
}

func (p *parser) parseLiteralOrARI() (ari.ARI, error) {
	if p.tok.kind == tokARIPrefix {
		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.parseSSP()
	}

	return p.parseLiteral()
}

func (p *parser) parseLiteral() (ari.ARI, error) {
	if p.tok.kind == tokTypeDot {
		t, ok := ari.ParseStructType(p.tok.text)
		if !ok {
			return nil, p.errf("unknown type %q", p.tok.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.parseTypedValue(t)
	}

	return p.parseUntypedValue()
}

func (p *parser) parseTypedValue(t ari.StructType) (ari.ARI, error) {
	switch t {
	case ari.AC:
		items, err := p.parseItemList()
		if err != nil {
			return nil, err
		}

		return &ari.LiteralARI{StructType: ari.AC, Value: &ari.AC{Items: items}}, nil
	case ari.TNVC:
		parms, err := p.parseParmList()
		if err != nil {
			return nil, err
		}

		return &ari.LiteralARI{StructType: ari.TNVC, Value: parms}, nil
	case ari.EXPR:
		return p.parseExpr()
	default:
		return p.parsePrimitive(t)
	}
}

func (p *parser) parseExpr() (ari.ARI, error) {
	if p.tok.kind != tokTypeDot {
		return nil, p.errf("expected EXPR result type")
	}
	resultType, ok := ari.ParseStructType(p.tok.text)
	if !ok {
		return nil, p.errf("unknown EXPR result type %q", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	items, err := p.parseItemList()
	if err != nil {
		return nil, err
	}

	return &ari.LiteralARI{StructType: ari.EXPR, Value: &ari.EXPR{
		ResultType: resultType,
		Items:      &ari.AC{Items: items},
	}}, nil
}

func (p *parser) parseItemList() ([]ari.ARI, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}

	var items []ari.ARI
	if p.tok.kind == tokRParen {
		return items, p.advance()
	}

	for {
		item, err := p.parseLiteralOrARI()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}

	return items, nil
}

// parseUntypedValue infers a struct type from the lexical token kind, for
// literals written without an explicit TYPE. label (BOOL, STR, and plain
// decimal INT/FLOAT are unambiguous).
func (p *parser) parseUntypedValue() (ari.ARI, error) {
	switch p.tok.kind {
	case tokBool:
		v := p.tok.text == "true"
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ari.LiteralARI{StructType: ari.BOOL, Value: v}, nil
	case tokInt:
		return p.parsePrimitive(ari.INT)
	case tokFloat:
		return p.parsePrimitive(ari.REAL64)
	case tokTStr:
		v := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ari.LiteralARI{StructType: ari.STR, Value: v}, nil
	case tokBStr:
		return p.parsePrimitive(ari.BSTR)
	default:
		return nil, p.errf("expected a literal value")
	}
}

func (p *parser) parsePrimitive(t ari.StructType) (ari.ARI, error) {
	switch t {
	case ari.BOOL:
		if p.tok.kind != tokBool {
			return nil, p.errf("expected BOOL")
		}
		v := p.tok.text == "true"

		return p.finishPrimitive(ari.BOOL, v)
	case ari.STR:
		if p.tok.kind != tokTStr {
			return nil, p.errf("expected quoted string")
		}
		v := p.tok.text

		return p.finishPrimitive(ari.STR, v)
	case ari.BSTR:
		if p.tok.kind != tokBStr {
			return nil, p.errf("expected byte string")
		}
		data, err := decodeBStrToken(p.tok.text)
		if err != nil {
			return nil, err
		}

		return p.finishPrimitive(ari.BSTR, data)
	case ari.REAL32, ari.REAL64:
		if p.tok.kind != tokFloat && p.tok.kind != tokInt {
			return nil, p.errf("expected number")
		}
		f, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid float %q: %w", ErrSyntax, p.tok.text, err)
		}
		if t == ari.REAL32 {
			return p.finishPrimitive(ari.REAL32, float32(f))
		}

		return p.finishPrimitive(ari.REAL64, f)
	case ari.TV, ari.TS:
		if p.tok.kind != tokInt {
			return nil, p.errf("expected integer")
		}
		v, err := strconv.ParseUint(p.tok.text, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid integer %q: %w", ErrSyntax, p.tok.text, err)
		}

		return p.finishPrimitive(t, v)
	default:
		if p.tok.kind != tokInt {
			return nil, p.errf("expected integer")
		}

		return p.parseIntPrimitive(t)
	}
}

func (p *parser) parseIntPrimitive(t ari.StructType) (ari.ARI, error) {
	neg := strings.HasPrefix(p.tok.text, "-")

	switch t {
	case ari.BYTE:
		v, err := strconv.ParseUint(p.tok.text, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		return p.finishPrimitive(ari.BYTE, uint8(v))
	case ari.UINT:
		v, err := strconv.ParseUint(p.tok.text, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		return p.finishPrimitive(ari.UINT, uint32(v))
	case ari.UVAST:
		v, err := strconv.ParseUint(p.tok.text, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		return p.finishPrimitive(ari.UVAST, v)
	case ari.VAST:
		v, err := strconv.ParseInt(p.tok.text, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		return p.finishPrimitive(ari.VAST, v)
	case ari.UNK:
		return p.finishPrimitive(ari.UNK, nil)
	default: // INT, and fallback for any bare unlabeled integer
		if neg {
			v, err := strconv.ParseInt(p.tok.text, 0, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
			}

			return p.finishPrimitive(ari.INT, int32(v))
		}
		v, err := strconv.ParseInt(p.tok.text, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		return p.finishPrimitive(ari.INT, int32(v))
	}
}

func (p *parser) finishPrimitive(t ari.StructType, v any) (ari.ARI, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	return &ari.LiteralARI{StructType: t, Value: v}, nil
}

// decodeBStrToken decodes a byte-string token of the form h'...', b64'...',
// or b32'...' into raw bytes. h32 is lexically recognized (so it produces a
// clear syntax error rather than an unrelated lex failure) but is reserved
// and rejected: the reference grammar never defines what distinguishes it
// from h, so this decoder does not guess an aliasing.
func decodeBStrToken(text string) ([]byte, error) {
	quote := strings.IndexByte(text, '\'')
	if quote < 0 || !strings.HasSuffix(text, "'") {
		return nil, fmt.Errorf("%w: malformed byte string %q", ErrSyntax, text)
	}
	prefix := text[:quote]
	body := text[quote+1 : len(text)-1]

	switch prefix {
	case "h":
		data, err := ariutil.FromHexString("0x" + body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		return data, nil
	case "b64":
		return decodeBase64(body)
	case "b32":
		return decodeBase32(body)
	case "h32":
		return nil, fmt.Errorf("%w: reserved byte string prefix %q", ErrSyntax, prefix)
	default:
		return nil, fmt.Errorf("%w: unknown byte string prefix %q", ErrSyntax, prefix)
	}
}
