package aritext

import (
	"fmt"
	"strconv"
	"strings"

	"go.amprs.dev/ari/ari"
	"go.amprs.dev/ari/ariutil"
)

// EncodeString renders value as ARI text.
func EncodeString(value ari.ARI) (string, error) {
	var sb strings.Builder

	switch v := value.(type) {
	case *ari.ReferenceARI:
		sb.WriteString("ari:/")
		if v.Identity.Namespace != nil {
			writeIdentPart(&sb, v.Identity.Namespace)
			sb.WriteByte('/')
		}
		sb.WriteString(v.Identity.Kind.String())
		sb.WriteByte('.')
		writeIdentPart(&sb, v.Identity.Name)
		if v.Params != nil {
			sb.WriteByte('(')
			if err := writeParmList(&sb, v.Params); err != nil {
				return "", err
			}
			sb.WriteByte(')')
		}
	case *ari.LiteralARI:
		sb.WriteString("ari:")
		if err := writeLiteral(&sb, v, ari.LabelRequiredTypes[v.StructType]); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: unknown ARI implementation %T", ErrSyntax, value)
	}

	return sb.String(), nil
}

func writeIdentPart(sb *strings.Builder, v any) {
	switch t := v.(type) {
	case string:
		sb.WriteString(t)
	case uint64:
		sb.WriteString(strconv.FormatUint(t, 10))
	default:
		fmt.Fprintf(sb, "%v", v)
	}
}

func writeParmList(sb *strings.Builder, t *ari.TNVC) error {
	for i, parm := range t.Parms {
		if i > 0 {
			sb.WriteByte(',')
		}
		if parm.Name != "" {
			sb.WriteString(parm.Name)
			sb.WriteByte('=')
		}
		if err := writeValue(sb, parm.Value); err != nil {
			return err
		}
	}

	return nil
}

func writeValue(sb *strings.Builder, value ari.ARI) error {
	switch v := value.(type) {
	case *ari.ReferenceARI:
		text, err := EncodeString(v)
		if err != nil {
			return err
		}
		sb.WriteString(text)
	case *ari.LiteralARI:
		return writeLiteral(sb, v, ari.LabelRequiredTypes[v.StructType])
	default:
		return fmt.Errorf("%w: unknown ARI implementation %T", ErrSyntax, value)
	}

	return nil
}

func writeLiteral(sb *strings.Builder, l *ari.LiteralARI, withLabel bool) error {
	// The container forms are only recognized by the parser after their
	// "AC.", "TNVC." or "EXPR." label, so they always carry it.
	if withLabel || l.StructType == ari.AC || l.StructType == ari.TNVC || l.StructType == ari.EXPR {
		sb.WriteString(l.StructType.String())
		sb.WriteByte('.')
	}

	switch l.StructType {
	case ari.BOOL:
		sb.WriteString(strconv.FormatBool(l.Value.(bool)))
	case ari.BYTE:
		sb.WriteString(strconv.FormatUint(uint64(l.Value.(uint8)), 10))
	case ari.INT:
		sb.WriteString(strconv.FormatInt(int64(l.Value.(int32)), 10))
	case ari.UINT:
		sb.WriteString(strconv.FormatUint(uint64(l.Value.(uint32)), 10))
	case ari.VAST:
		sb.WriteString(strconv.FormatInt(l.Value.(int64), 10))
	case ari.UVAST, ari.TV, ari.TS:
		sb.WriteString(strconv.FormatUint(l.Value.(uint64), 10))
	case ari.REAL32:
		sb.WriteString(strconv.FormatFloat(float64(l.Value.(float32)), 'g', -1, 32))
	case ari.REAL64:
		sb.WriteString(strconv.FormatFloat(l.Value.(float64), 'g', -1, 64))
	case ari.STR:
		writeQuotedString(sb, l.Value.(string))
	case ari.BSTR:
		sb.WriteString("h'")
		sb.WriteString(strings.TrimPrefix(ariutil.ToHexString(l.Value.([]byte)), "0x"))
		sb.WriteByte('\'')
	case ari.UNK:
		// no payload
	case ari.AC:
		sb.WriteByte('(')
		for i, item := range l.Value.(*ari.AC).Items {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeValue(sb, item); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
	case ari.TNVC:
		sb.WriteByte('(')
		if err := writeParmList(sb, l.Value.(*ari.TNVC)); err != nil {
			return err
		}
		sb.WriteByte(')')
	case ari.EXPR:
		expr := l.Value.(*ari.EXPR)
		sb.WriteString(expr.ResultType.String())
		sb.WriteByte('.')
		sb.WriteByte('(')
		for i, item := range expr.Items.Items {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeValue(sb, item); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
	default:
		return fmt.Errorf("%w: cannot encode struct type %s", ErrSyntax, l.StructType)
	}

	return nil
}

func writeQuotedString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
}
