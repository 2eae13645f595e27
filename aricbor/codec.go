package aricbor

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"go.amprs.dev/ari/ari"
)

var referenceKinds = map[ari.StructType]bool{
	ari.CONST: true, ari.CTRL: true, ari.EDD: true, ari.MAC: true,
	ari.OPER: true, ari.RPTT: true, ari.SBR: true, ari.TBLT: true,
	ari.TBR: true, ari.VAR: true,
}

// Encode writes value's CBOR wire encoding to w.
func Encode(w io.Writer, value ari.ARI) error {
	e := &encoder{w: w, enc: cbor.NewEncoder(w)}

	return e.encodeARI(value)
}

// EncodeBytes returns value's CBOR wire encoding.
func EncodeBytes(value ari.ARI) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, value); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode reads one ARI from r's CBOR wire encoding.
func Decode(r io.Reader) (ari.ARI, error) {
	return decodeFrom(bufio.NewReader(r))
}

func decodeFrom(br *bufio.Reader) (ari.ARI, error) {
	d := &decoder{br: br, dec: cbor.NewDecoder(oneByteReader{br})}

	return d.decodeARI()
}

// oneByteReader hands the CBOR decoder at most one byte per Read call, so
// the decoder never buffers past the item it is decoding and the framing
// bytes after that item stay in br for readRawByte.
type oneByteReader struct{ br *bufio.Reader }

func (r oneByteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}

	return r.br.Read(p)
}

// DecodeBytes reads one ARI from a complete CBOR-encoded byte slice. It is
// an error for data to contain trailing bytes after the ARI.
func DecodeBytes(data []byte) (ari.ARI, error) {
	br := bufio.NewReader(bytes.NewReader(data))

	val, err := decodeFrom(br)
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadByte(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing bytes after ARI", ErrDecode)
	}

	return val, nil
}

type encoder struct {
	w   io.Writer
	enc *cbor.Encoder
}

func (e *encoder) writeByte(b byte) error {
	_, err := e.w.Write([]byte{b})

	return err
}

func (e *encoder) encodeARI(value ari.ARI) error {
	switch v := value.(type) {
	case *ari.ReferenceARI:
		return e.encodeReference(v)
	case *ari.LiteralARI:
		return e.encodeLiteral(v)
	default:
		return fmt.Errorf("%w: unknown ARI implementation %T", ErrDecode, value)
	}
}

func (e *encoder) encodeReference(r *ari.ReferenceARI) error {
	if err := e.enc.Encode(int32(r.Identity.Kind)); err != nil {
		return err
	}

	var flags AriFlag

	nsNum, nsIsNum := r.Identity.Namespace.(uint64)
	nameNum, nameIsNum := r.Identity.Name.(uint64)
	hasNN := nsIsNum && nameIsNum
	if hasNN {
		flags |= AriFlagHasNN
	}
	if r.Params != nil {
		flags |= AriFlagHasParams
	}

	if err := e.writeByte(byte(flags)); err != nil {
		return err
	}

	if hasNN {
		if err := e.enc.Encode(nsNum); err != nil {
			return err
		}
		if err := e.enc.Encode(nameNum); err != nil {
			return err
		}
	} else {
		if err := e.enc.Encode(fmt.Sprint(r.Identity.Namespace)); err != nil {
			return err
		}
		if err := e.enc.Encode([]byte(fmt.Sprint(r.Identity.Name))); err != nil {
			return err
		}
	}

	if r.Params != nil {
		return e.encodeTNVC(r.Params)
	}

	return nil
}

func (e *encoder) encodeLiteral(l *ari.LiteralARI) error {
	if err := e.enc.Encode(int32(l.StructType)); err != nil {
		return err
	}

	switch l.StructType {
	case ari.BOOL:
		return e.enc.Encode(l.Value.(bool))
	case ari.BYTE:
		return e.enc.Encode(l.Value.(uint8))
	case ari.INT:
		return e.enc.Encode(l.Value.(int32))
	case ari.UINT:
		return e.enc.Encode(l.Value.(uint32))
	case ari.VAST:
		return e.enc.Encode(l.Value.(int64))
	case ari.UVAST, ari.TV, ari.TS:
		return e.enc.Encode(l.Value.(uint64))
	case ari.REAL32:
		return e.enc.Encode(l.Value.(float32))
	case ari.REAL64:
		return e.enc.Encode(l.Value.(float64))
	case ari.STR:
		return e.enc.Encode(l.Value.(string))
	case ari.BSTR:
		return e.enc.Encode(l.Value.([]byte))
	case ari.UNK:
		return e.enc.Encode(nil)
	case ari.AC:
		return e.encodeItems(l.Value.(*ari.AC).Items)
	case ari.TNVC:
		return e.encodeTNVC(l.Value.(*ari.TNVC))
	case ari.EXPR:
		expr := l.Value.(*ari.EXPR)
		if err := e.enc.Encode(int32(expr.ResultType)); err != nil {
			return err
		}

		return e.encodeItems(expr.Items.Items)
	default:
		return fmt.Errorf("%w: cannot encode struct type %s", ErrDecode, l.StructType)
	}
}

func (e *encoder) encodeItems(items []ari.ARI) error {
	if err := e.encodeCount(len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := e.encodeARI(item); err != nil {
			return err
		}
	}

	return nil
}

func (e *encoder) encodeCount(n int) error {
	if n <= maxInlineCount {
		return e.writeByte(inlineCountMarker | byte(n))
	}
	if err := e.writeByte(0xff); err != nil {
		return err
	}

	return e.enc.Encode(uint64(n))
}

func (e *encoder) encodeTNVC(t *ari.TNVC) error {
	var flags TnvcFlag

	hasType, hasName, mixed := false, false, false
	for i, p := range t.Parms {
		if p.Type != nil {
			hasType = true
		}
		if p.Name != "" {
			hasName = true
		}
		if i > 0 && (p.Type != nil) != (t.Parms[0].Type != nil) {
			mixed = true
		}
	}
	if hasType {
		flags |= TnvcFlagType
	}
	if hasName {
		flags |= TnvcFlagName
	}
	if mixed {
		flags |= TnvcFlagMixed
	}
	flags |= TnvcFlagValue

	if err := e.writeByte(byte(flags)); err != nil {
		return err
	}
	if err := e.encodeCount(len(t.Parms)); err != nil {
		return err
	}

	if hasType {
		for _, p := range t.Parms {
			typ := ari.UNK
			if p.Type != nil {
				typ = *p.Type
			}
			if err := e.enc.Encode(int32(typ)); err != nil {
				return err
			}
		}
	}
	if hasName {
		for _, p := range t.Parms {
			if err := e.enc.Encode(p.Name); err != nil {
				return err
			}
		}
	}
	for _, p := range t.Parms {
		if err := e.encodeARI(p.Value); err != nil {
			return err
		}
	}

	return nil
}

type decoder struct {
	br  *bufio.Reader
	dec *cbor.Decoder
}

// readRawByte reads exactly one byte directly from the underlying stream,
// bypassing the CBOR decoder. The ARI CBOR framing interleaves bare
// octets (flag and inline-count bytes) with well-formed CBOR items, which
// [cbor.Decoder] cannot parse as CBOR values on their own. The CBOR
// decoder reads the same buffered reader through [oneByteReader], so it
// never consumes bytes past the item it decodes and both views of the
// stream stay in sync.
func (d *decoder) readRawByte() (byte, error) {
	b, err := d.br.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: unable to read framing byte: %w", ErrDecode, err)
	}

	return b, nil
}

func (d *decoder) decodeARI() (ari.ARI, error) {
	var typeNum int32
	if err := d.dec.Decode(&typeNum); err != nil {
		return nil, fmt.Errorf("%w: struct type: %w", ErrDecode, err)
	}
	t := ari.StructType(typeNum)

	if referenceKinds[t] {
		return d.decodeReference(t)
	}

	return d.decodeLiteral(t)
}

func (d *decoder) decodeReference(kind ari.StructType) (ari.ARI, error) {
	flagByte, err := d.readRawByte()
	if err != nil {
		return nil, err
	}
	flags := AriFlag(flagByte)

	ref := &ari.ReferenceARI{Identity: ari.Identity{Kind: kind}}

	if flags&AriFlagHasNN != 0 {
		var ns, name uint64
		if err := d.dec.Decode(&ns); err != nil {
			return nil, fmt.Errorf("%w: namespace nickname: %w", ErrDecode, err)
		}
		if err := d.dec.Decode(&name); err != nil {
			return nil, fmt.Errorf("%w: name nickname: %w", ErrDecode, err)
		}
		ref.Identity.Namespace = ns
		ref.Identity.Name = name
	} else {
		var ns string
		var name []byte
		if err := d.dec.Decode(&ns); err != nil {
			return nil, fmt.Errorf("%w: namespace: %w", ErrDecode, err)
		}
		if err := d.dec.Decode(&name); err != nil {
			return nil, fmt.Errorf("%w: name: %w", ErrDecode, err)
		}
		ref.Identity.Namespace = ns
		ref.Identity.Name = string(name)
	}

	if flags&AriFlagHasParams != 0 {
		parms, err := d.decodeTNVC()
		if err != nil {
			return nil, err
		}
		ref.Params = parms
	}

	return ref, nil
}

func (d *decoder) decodeLiteral(t ari.StructType) (ari.ARI, error) {
	switch t {
	case ari.BOOL:
		var v bool
		err := d.dec.Decode(&v)

		return &ari.LiteralARI{StructType: t, Value: v}, wrapDecode(err)
	case ari.BYTE:
		var v uint8
		err := d.dec.Decode(&v)

		return &ari.LiteralARI{StructType: t, Value: v}, wrapDecode(err)
	case ari.INT:
		var v int32
		err := d.dec.Decode(&v)

		return &ari.LiteralARI{StructType: t, Value: v}, wrapDecode(err)
	case ari.UINT:
		var v uint32
		err := d.dec.Decode(&v)

		return &ari.LiteralARI{StructType: t, Value: v}, wrapDecode(err)
	case ari.VAST:
		var v int64
		err := d.dec.Decode(&v)

		return &ari.LiteralARI{StructType: t, Value: v}, wrapDecode(err)
	case ari.UVAST, ari.TV, ari.TS:
		var v uint64
		err := d.dec.Decode(&v)

		return &ari.LiteralARI{StructType: t, Value: v}, wrapDecode(err)
	case ari.REAL32:
		var v float32
		err := d.dec.Decode(&v)

		return &ari.LiteralARI{StructType: t, Value: v}, wrapDecode(err)
	case ari.REAL64:
		var v float64
		err := d.dec.Decode(&v)

		return &ari.LiteralARI{StructType: t, Value: v}, wrapDecode(err)
	case ari.STR:
		var v string
		err := d.dec.Decode(&v)

		return &ari.LiteralARI{StructType: t, Value: v}, wrapDecode(err)
	case ari.BSTR:
		var v []byte
		err := d.dec.Decode(&v)

		return &ari.LiteralARI{StructType: t, Value: v}, wrapDecode(err)
	case ari.UNK:
		var raw cbor.RawMessage
		if err := d.dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: unk payload: %w", ErrDecode, err)
		}

		return &ari.LiteralARI{StructType: t, Value: nil}, nil
	case ari.AC:
		items, err := d.decodeItems()
		if err != nil {
			return nil, err
		}

		return &ari.LiteralARI{StructType: t, Value: &ari.AC{Items: items}}, nil
	case ari.TNVC:
		tnvc, err := d.decodeTNVC()
		if err != nil {
			return nil, err
		}

		return &ari.LiteralARI{StructType: t, Value: tnvc}, nil
	case ari.EXPR:
		var resultType int32
		if err := d.dec.Decode(&resultType); err != nil {
			return nil, fmt.Errorf("%w: expr result type: %w", ErrDecode, err)
		}
		items, err := d.decodeItems()
		if err != nil {
			return nil, err
		}

		return &ari.LiteralARI{StructType: t, Value: &ari.EXPR{
			ResultType: ari.StructType(resultType),
			Items:      &ari.AC{Items: items},
		}}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized struct type %s", ErrDecode, t)
	}
}

func wrapDecode(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrDecode, err)
}

func (d *decoder) decodeCount() (int, error) {
	b, err := d.readRawByte()
	if err != nil {
		return 0, err
	}
	if b&inlineCountMarker != 0 && b != 0xff {
		return int(b &^ inlineCountMarker), nil
	}
	var n uint64
	if err := d.dec.Decode(&n); err != nil {
		return 0, fmt.Errorf("%w: count: %w", ErrDecode, err)
	}

	return int(n), nil
}

func (d *decoder) decodeItems() ([]ari.ARI, error) {
	n, err := d.decodeCount()
	if err != nil {
		return nil, err
	}

	items := make([]ari.ARI, 0, n)
	for i := 0; i < n; i++ {
		item, err := d.decodeARI()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (d *decoder) decodeTNVC() (*ari.TNVC, error) {
	flagByte, err := d.readRawByte()
	if err != nil {
		return nil, err
	}
	flags := TnvcFlag(flagByte)

	n, err := d.decodeCount()
	if err != nil {
		return nil, err
	}

	types := make([]ari.StructType, n)
	if flags&TnvcFlagType != 0 {
		for i := range types {
			var tv int32
			if err := d.dec.Decode(&tv); err != nil {
				return nil, fmt.Errorf("%w: tnvc type: %w", ErrDecode, err)
			}
			types[i] = ari.StructType(tv)
		}
	}

	names := make([]string, n)
	if flags&TnvcFlagName != 0 {
		for i := range names {
			if err := d.dec.Decode(&names[i]); err != nil {
				return nil, fmt.Errorf("%w: tnvc name: %w", ErrDecode, err)
			}
		}
	}

	tnvc := &ari.TNVC{Parms: make([]ari.Parm, n)}
	for i := 0; i < n; i++ {
		val, err := d.decodeARI()
		if err != nil {
			return nil, err
		}
		parm := ari.Parm{Name: names[i], Value: val}
		if flags&TnvcFlagType != 0 {
			t := types[i]
			parm.Type = &t
		}
		tnvc.Parms[i] = parm
	}

	return tnvc, nil
}
