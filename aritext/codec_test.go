package aritext_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.amprs.dev/ari/ari"
	"go.amprs.dev/ari/aritext"
)

// canonicalTexts mirrors the reference implementation's CANONICAL_TEXTS
// round-trip fixture: each entry must decode without error and, when
// re-encoded, decode back to an equal value.
var canonicalTexts = []string{
	"ari:true",
	"ari:false",
	"ari:BYTE.0",
	"ari:INT.10",
	"ari:UINT.10",
	"ari:VAST.10",
	"ari:UVAST.10",
	"ari:/VAR.hello",
	"ari:/namespace/VAR.hello",
	"ari:/namespace/VAR.hello()",
	"ari:/namespace/VAR.hello(INT.10)",
	"ari:/IANA:DTN.bp_agent/CTRL.reset_all_counts()",
}

func TestDecode_Canonical(t *testing.T) {
	t.Parallel()

	for _, text := range canonicalTexts {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			_, err := aritext.Decode(text)
			require.NoError(t, err)
		})
	}
}

func TestRoundTrip_Canonical(t *testing.T) {
	t.Parallel()

	for _, text := range canonicalTexts {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			val, err := aritext.Decode(text)
			require.NoError(t, err)

			encoded, err := aritext.EncodeString(val)
			require.NoError(t, err)

			again, err := aritext.Decode(encoded)
			require.NoError(t, err)

			assert.True(t, val.Equal(again))
		})
	}
}

func TestDecode_Reference_Namespace(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:/namespace/VAR.hello")
	require.NoError(t, err)

	ref, ok := val.(*ari.ReferenceARI)
	require.True(t, ok)
	assert.Equal(t, "namespace", ref.Identity.Namespace)
	assert.Equal(t, "hello", ref.Identity.Name)
	assert.Equal(t, ari.VAR, ref.Identity.Kind)
	assert.Nil(t, ref.Params)
}

func TestDecode_Reference_CompoundNamespace(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:/IANA:amp_agent/RPTT.full_report")
	require.NoError(t, err)

	ref, ok := val.(*ari.ReferenceARI)
	require.True(t, ok)
	assert.Equal(t, "IANA:amp_agent", ref.Identity.Namespace)
	assert.Equal(t, "full_report", ref.Identity.Name)
	assert.Equal(t, ari.RPTT, ref.Identity.Kind)
}

func TestDecode_Reference_CompoundNamespace_WithDot(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:/IANA:DTN.bp_agent/CTRL.reset_all_counts()")
	require.NoError(t, err)

	ref, ok := val.(*ari.ReferenceARI)
	require.True(t, ok)
	assert.Equal(t, "IANA:DTN.bp_agent", ref.Identity.Namespace)
	assert.Equal(t, "reset_all_counts", ref.Identity.Name)
	assert.Equal(t, ari.CTRL, ref.Identity.Kind)
}

func TestDecode_Reference_NoNamespace(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:/VAR.hello")
	require.NoError(t, err)

	ref, ok := val.(*ari.ReferenceARI)
	require.True(t, ok)
	assert.Nil(t, ref.Identity.Namespace)
	assert.Equal(t, "hello", ref.Identity.Name)
}

func TestDecode_Reference_EmptyParams(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:/namespace/VAR.hello()")
	require.NoError(t, err)

	ref, ok := val.(*ari.ReferenceARI)
	require.True(t, ok)
	require.NotNil(t, ref.Params)
	assert.Empty(t, ref.Params.Parms)
}

func TestDecode_Reference_WithParams(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:/namespace/VAR.hello(INT.10)")
	require.NoError(t, err)

	ref, ok := val.(*ari.ReferenceARI)
	require.True(t, ok)
	require.Len(t, ref.Params.Parms, 1)

	lit, ok := ref.Params.Parms[0].Value.(*ari.LiteralARI)
	require.True(t, ok)
	assert.Equal(t, ari.INT, lit.StructType)
	assert.Equal(t, int32(10), lit.Value)
}

func TestDecode_Reference_KeywordParam(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode(`ari:/namespace/CTRL.set(arg=INT.5)`)
	require.NoError(t, err)

	ref := val.(*ari.ReferenceARI)
	require.Len(t, ref.Params.Parms, 1)
	assert.Equal(t, "arg", ref.Params.Parms[0].Name)
}

func TestDecode_NestedReferenceParam(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode(`ari:/namespace/CTRL.invoke(ari:/namespace/EDD.temp)`)
	require.NoError(t, err)

	ref := val.(*ari.ReferenceARI)
	require.Len(t, ref.Params.Parms, 1)

	nested, ok := ref.Params.Parms[0].Value.(*ari.ReferenceARI)
	require.True(t, ok)
	assert.Equal(t, ari.EDD, nested.Identity.Kind)
}

func TestDecode_Literals(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text string
		t    ari.StructType
		want any
	}{
		"bool true":   {text: "ari:true", t: ari.BOOL, want: true},
		"bool false":  {text: "ari:false", t: ari.BOOL, want: false},
		"plain int":   {text: "ari:10", t: ari.INT, want: int32(10)},
		"labeled int": {text: "ari:INT.-5", t: ari.INT, want: int32(-5)},
		"byte":        {text: "ari:BYTE.255", t: ari.BYTE, want: uint8(255)},
		"uint":        {text: "ari:UINT.10", t: ari.UINT, want: uint32(10)},
		"vast":        {text: "ari:VAST.-10", t: ari.VAST, want: int64(-10)},
		"uvast":       {text: "ari:UVAST.10", t: ari.UVAST, want: uint64(10)},
		"string":      {text: `ari:"hello"`, t: ari.STR, want: "hello"},
		"float":       {text: "ari:1.5", t: ari.REAL64, want: 1.5},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			val, err := aritext.Decode(tc.text)
			require.NoError(t, err)

			lit, ok := val.(*ari.LiteralARI)
			require.True(t, ok)
			assert.Equal(t, tc.t, lit.StructType)
			assert.Equal(t, tc.want, lit.Value)
		})
	}
}

func TestDecode_ByteString(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text string
		want []byte
	}{
		"hex":    {text: "ari:h'deadbeef'", want: []byte{0xde, 0xad, 0xbe, 0xef}},
		"empty":  {text: "ari:h''", want: []byte{}},
		"base32": {text: "ari:b32'AA'", want: []byte{0x00}},
		"base64": {text: "ari:b64'AA'", want: []byte{0x00}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			val, err := aritext.Decode(tc.text)
			require.NoError(t, err)

			lit, ok := val.(*ari.LiteralARI)
			require.True(t, ok)
			assert.Equal(t, ari.BSTR, lit.StructType)
			assert.Equal(t, tc.want, lit.Value)
		})
	}
}

func TestDecode_ByteString_H32Rejected(t *testing.T) {
	t.Parallel()

	_, err := aritext.Decode("ari:h32'deadbeef'")
	require.Error(t, err)
	assert.ErrorIs(t, err, aritext.ErrSyntax)
}

func TestDecode_AC(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:AC.(INT.1,INT.2,INT.3)")
	require.NoError(t, err)

	lit, ok := val.(*ari.LiteralARI)
	require.True(t, ok)
	assert.Equal(t, ari.AC, lit.StructType)

	ac := lit.Value.(*ari.AC)
	require.Len(t, ac.Items, 3)
}

func TestDecode_AC_Empty(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:AC.()")
	require.NoError(t, err)

	lit := val.(*ari.LiteralARI)
	ac := lit.Value.(*ari.AC)
	assert.Empty(t, ac.Items)
}

func TestDecode_TNVC(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:TNVC.(a=INT.1,INT.2)")
	require.NoError(t, err)

	lit := val.(*ari.LiteralARI)
	assert.Equal(t, ari.TNVC, lit.StructType)

	tnvc := lit.Value.(*ari.TNVC)
	require.Len(t, tnvc.Parms, 2)
	assert.Equal(t, "a", tnvc.Parms[0].Name)
	assert.Empty(t, tnvc.Parms[1].Name)
}

func TestDecode_EXPR(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:EXPR.INT.(INT.1,INT.2)")
	require.NoError(t, err)

	lit := val.(*ari.LiteralARI)
	assert.Equal(t, ari.EXPR, lit.StructType)

	expr := lit.Value.(*ari.EXPR)
	assert.Equal(t, ari.INT, expr.ResultType)
	assert.Len(t, expr.Items.Items, 2)
}

func TestDecode_SyntaxErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"missing ari prefix":    "VAR.hello",
		"dangling slash":        "ari:/",
		"unknown object kind":   "ari:/ns/NOPE.x",
		"unterminated string":   `ari:"unterminated`,
		"unknown bstr prefix":   "ari:z'abc'",
		"trailing garbage":      "ari:true garbage",
		"missing closing paren": "ari:/ns/CTRL.x(",
	}

	for name, text := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := aritext.Decode(text)
			require.Error(t, err)
			assert.ErrorIs(t, err, aritext.ErrSyntax)
		})
	}
}

func TestEncode_WritesNewline(t *testing.T) {
	t.Parallel()

	val, err := aritext.Decode("ari:true")
	require.NoError(t, err)

	var sb strings.Builder
	err = aritext.Encode(&sb, val)
	require.NoError(t, err)
	assert.Equal(t, "ari:true\n", sb.String())
}

func TestDecodeAll(t *testing.T) {
	t.Parallel()

	r := strings.NewReader("ari:true\nari:false\nari:INT.10\n")

	vals, err := aritext.DecodeAll(r)
	require.NoError(t, err)
	require.Len(t, vals, 3)

	lit := vals[2].(*ari.LiteralARI)
	assert.Equal(t, int32(10), lit.Value)
}

func TestDecoder_WrappedLines(t *testing.T) {
	t.Parallel()

	// A reference whose parameter list's closing paren was hand-wrapped
	// onto the next physical line should still parse as one entry.
	r := strings.NewReader("ari:/namespace/VAR.hello(INT.10\n)\n")

	dec := aritext.NewDecoder(r)
	val, err := dec.Next()
	require.NoError(t, err)

	ref := val.(*ari.ReferenceARI)
	require.Len(t, ref.Params.Parms, 1)
}
