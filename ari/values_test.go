package ari_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.amprs.dev/ari/ari"
)

func TestNewLiteralARI(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		t       ari.StructType
		value   any
		wantErr bool
	}{
		"BOOL ok":             {t: ari.BOOL, value: true},
		"BOOL wrong type":     {t: ari.BOOL, value: 1, wantErr: true},
		"BYTE ok":             {t: ari.BYTE, value: uint8(7)},
		"BYTE wrong type":     {t: ari.BYTE, value: int(7), wantErr: true},
		"INT ok":              {t: ari.INT, value: int32(-5)},
		"UINT ok":             {t: ari.UINT, value: uint32(5)},
		"VAST ok":             {t: ari.VAST, value: int64(-5)},
		"UVAST ok":            {t: ari.UVAST, value: uint64(5)},
		"REAL32 ok":           {t: ari.REAL32, value: float32(1.5)},
		"REAL32 wrong type":   {t: ari.REAL32, value: float64(1.5), wantErr: true},
		"REAL64 ok":           {t: ari.REAL64, value: float64(1.5)},
		"STR ok":              {t: ari.STR, value: "hello"},
		"STR wrong type":      {t: ari.STR, value: []byte("hello"), wantErr: true},
		"BSTR ok":              {t: ari.BSTR, value: []byte{1, 2, 3}},
		"UNK ok with nil":      {t: ari.UNK, value: nil},
		"TV ok":                {t: ari.TV, value: uint64(100)},
		"TS ok":                {t: ari.TS, value: uint64(100)},
		"not a literal type":   {t: ari.CONST, value: 1, wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ari.NewLiteralARI(tc.t, tc.value)
			if tc.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ari.ErrInvalidValue)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.t, got.StructType)
			assert.Equal(t, tc.value, got.Value)
			assert.Equal(t, tc.t, got.Type())
		})
	}
}

func TestNewLiteralARI_Compound(t *testing.T) {
	t.Parallel()

	// TNVC, AC, and EXPR are not range-checked by NewLiteralARI; any value
	// of the matching container type is accepted.
	tnvc := &ari.TNVC{}
	got, err := ari.NewLiteralARI(ari.TNVC, tnvc)
	require.NoError(t, err)
	assert.Same(t, tnvc, got.Value)

	ac := &ari.AC{}
	got, err = ari.NewLiteralARI(ari.AC, ac)
	require.NoError(t, err)
	assert.Same(t, ac, got.Value)

	expr := &ari.EXPR{}
	got, err = ari.NewLiteralARI(ari.EXPR, expr)
	require.NoError(t, err)
	assert.Same(t, expr, got.Value)
}

func TestLiteralARI_Equal(t *testing.T) {
	t.Parallel()

	a, err := ari.NewLiteralARI(ari.INT, int32(5))
	require.NoError(t, err)
	b, err := ari.NewLiteralARI(ari.INT, int32(5))
	require.NoError(t, err)
	c, err := ari.NewLiteralARI(ari.INT, int32(6))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	// Different struct types are never equal, even with equal underlying Go
	// values.
	d, err := ari.NewLiteralARI(ari.UINT, uint32(5))
	require.NoError(t, err)
	assert.False(t, a.Equal(d))

	// A non-literal ARI (e.g. a reference) never compares equal.
	ref := &ari.ReferenceARI{Identity: ari.Identity{Kind: ari.CTRL, Name: "foo"}}
	assert.False(t, a.Equal(ref))
}

func TestLiteralARI_Equal_NaN(t *testing.T) {
	t.Parallel()

	// NaN REAL32/REAL64 literals compare equal to themselves, matching
	// round-trip test expectations rather than IEEE-754 comparison
	// semantics.
	r32a, err := ari.NewLiteralARI(ari.REAL32, float32(math.NaN()))
	require.NoError(t, err)
	r32b, err := ari.NewLiteralARI(ari.REAL32, float32(math.NaN()))
	require.NoError(t, err)
	assert.True(t, r32a.Equal(r32b))

	r64a, err := ari.NewLiteralARI(ari.REAL64, math.NaN())
	require.NoError(t, err)
	r64b, err := ari.NewLiteralARI(ari.REAL64, math.NaN())
	require.NoError(t, err)
	assert.True(t, r64a.Equal(r64b))

	finite, err := ari.NewLiteralARI(ari.REAL64, 1.0)
	require.NoError(t, err)
	assert.False(t, r64a.Equal(finite))
}

func TestLiteralARI_Equal_BSTR(t *testing.T) {
	t.Parallel()

	a, err := ari.NewLiteralARI(ari.BSTR, []byte{1, 2, 3})
	require.NoError(t, err)
	b, err := ari.NewLiteralARI(ari.BSTR, []byte{1, 2, 3})
	require.NoError(t, err)
	c, err := ari.NewLiteralARI(ari.BSTR, []byte{1, 2, 4})
	require.NoError(t, err)
	d, err := ari.NewLiteralARI(ari.BSTR, []byte{1, 2})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestLiteralARI_Equal_UNK(t *testing.T) {
	t.Parallel()

	// UNK carries no typed payload; any two UNK literals are equal.
	a, err := ari.NewLiteralARI(ari.UNK, nil)
	require.NoError(t, err)
	b, err := ari.NewLiteralARI(ari.UNK, nil)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestIdentity_Equal(t *testing.T) {
	t.Parallel()

	a := ari.Identity{Namespace: "ion", Kind: ari.CTRL, Name: "reset"}
	b := ari.Identity{Namespace: "ion", Kind: ari.CTRL, Name: "reset"}
	assert.True(t, a.Equal(b))

	c := ari.Identity{Namespace: "ion", Kind: ari.CTRL, Name: "other"}
	assert.False(t, a.Equal(c))

	// Numeric (nickname-resolved) identity.
	d := ari.Identity{Namespace: uint64(1), Kind: ari.CTRL, Name: uint64(2)}
	e := ari.Identity{Namespace: uint64(1), Kind: ari.CTRL, Name: uint64(2)}
	assert.True(t, d.Equal(e))

	// Symbolic and numeric forms of "the same" identity never compare
	// equal: resolution is not performed by Equal.
	assert.False(t, a.Equal(d))
}

func TestReferenceARI_Equal(t *testing.T) {
	t.Parallel()

	id := ari.Identity{Namespace: "ion", Kind: ari.CTRL, Name: "reset"}

	a := &ari.ReferenceARI{Identity: id}
	b := &ari.ReferenceARI{Identity: id}
	assert.True(t, a.Equal(b))
	assert.Equal(t, ari.CTRL, a.Type())

	// Params == nil (no parameter list in source text) is distinct from an
	// explicit empty TNVC.
	withEmptyParams := &ari.ReferenceARI{Identity: id, Params: &ari.TNVC{}}
	assert.False(t, a.Equal(withEmptyParams))
	assert.False(t, withEmptyParams.Equal(a))

	c := &ari.ReferenceARI{Identity: ari.Identity{Namespace: "ion", Kind: ari.CTRL, Name: "other"}}
	assert.False(t, a.Equal(c))

	lit, err := ari.NewLiteralARI(ari.INT, int32(1))
	require.NoError(t, err)
	assert.False(t, a.Equal(lit))
}

func TestReferenceARI_Equal_Params(t *testing.T) {
	t.Parallel()

	id := ari.Identity{Namespace: "ion", Kind: ari.EDD, Name: "temp"}

	strOne, err := ari.NewLiteralARI(ari.STR, "one")
	require.NoError(t, err)

	a := &ari.ReferenceARI{Identity: id, Params: &ari.TNVC{Parms: []ari.Parm{{Name: "p", Value: strOne}}}}
	b := &ari.ReferenceARI{Identity: id, Params: &ari.TNVC{Parms: []ari.Parm{{Name: "p", Value: strOne}}}}
	assert.True(t, a.Equal(b))

	strTwo, err := ari.NewLiteralARI(ari.STR, "two")
	require.NoError(t, err)
	c := &ari.ReferenceARI{Identity: id, Params: &ari.TNVC{Parms: []ari.Parm{{Name: "p", Value: strTwo}}}}
	assert.False(t, a.Equal(c))
}

func TestAC_Equal(t *testing.T) {
	t.Parallel()

	one, err := ari.NewLiteralARI(ari.INT, int32(1))
	require.NoError(t, err)
	two, err := ari.NewLiteralARI(ari.INT, int32(2))
	require.NoError(t, err)

	a := &ari.AC{Items: []ari.ARI{one, two}}
	b := &ari.AC{Items: []ari.ARI{one, two}}
	assert.True(t, a.Equal(b))

	// Order matters.
	c := &ari.AC{Items: []ari.ARI{two, one}}
	assert.False(t, a.Equal(c))

	// Length mismatch.
	d := &ari.AC{Items: []ari.ARI{one}}
	assert.False(t, a.Equal(d))

	// Both nil is equal; one nil is not.
	var nilA, nilB *ari.AC
	assert.True(t, nilA.Equal(nilB))
	assert.False(t, nilA.Equal(a))
}

func TestEXPR_Equal(t *testing.T) {
	t.Parallel()

	one, err := ari.NewLiteralARI(ari.INT, int32(1))
	require.NoError(t, err)

	items := &ari.AC{Items: []ari.ARI{one}}

	a := &ari.EXPR{ResultType: ari.INT, Items: items}
	b := &ari.EXPR{ResultType: ari.INT, Items: items}
	assert.True(t, a.Equal(b))

	// Same items, different result type.
	c := &ari.EXPR{ResultType: ari.UINT, Items: items}
	assert.False(t, a.Equal(c))

	var nilA, nilB *ari.EXPR
	assert.True(t, nilA.Equal(nilB))
	assert.False(t, nilA.Equal(a))
}

func TestTNVC_Equal(t *testing.T) {
	t.Parallel()

	boolT := ari.BOOL
	uintT := ari.UINT

	valOne, err := ari.NewLiteralARI(ari.BOOL, true)
	require.NoError(t, err)

	a := &ari.TNVC{Parms: []ari.Parm{
		{Type: &boolT, Name: "flag", Value: valOne},
	}}
	b := &ari.TNVC{Parms: []ari.Parm{
		{Type: &boolT, Name: "flag", Value: valOne},
	}}
	assert.True(t, a.Equal(b))

	// Differing declared type.
	c := &ari.TNVC{Parms: []ari.Parm{
		{Type: &uintT, Name: "flag", Value: valOne},
	}}
	assert.False(t, a.Equal(c))

	// One with a declared type, one without.
	d := &ari.TNVC{Parms: []ari.Parm{
		{Name: "flag", Value: valOne},
	}}
	assert.False(t, a.Equal(d))

	// Differing names.
	e := &ari.TNVC{Parms: []ari.Parm{
		{Type: &boolT, Name: "other", Value: valOne},
	}}
	assert.False(t, a.Equal(e))

	// Bare positional value: no type, no name.
	bare1 := &ari.TNVC{Parms: []ari.Parm{{Value: valOne}}}
	bare2 := &ari.TNVC{Parms: []ari.Parm{{Value: valOne}}}
	assert.True(t, bare1.Equal(bare2))

	var nilA, nilB *ari.TNVC
	assert.True(t, nilA.Equal(nilB))
	assert.False(t, nilA.Equal(a))
}

func TestTNVC_Equal_RecursiveValues(t *testing.T) {
	t.Parallel()

	innerOne, err := ari.NewLiteralARI(ari.INT, int32(1))
	require.NoError(t, err)
	innerTwo, err := ari.NewLiteralARI(ari.INT, int32(2))
	require.NoError(t, err)

	nestedA, err := ari.NewLiteralARI(ari.TNVC, &ari.TNVC{Parms: []ari.Parm{{Value: innerOne}}})
	require.NoError(t, err)
	nestedB, err := ari.NewLiteralARI(ari.TNVC, &ari.TNVC{Parms: []ari.Parm{{Value: innerOne}}})
	require.NoError(t, err)
	nestedC, err := ari.NewLiteralARI(ari.TNVC, &ari.TNVC{Parms: []ari.Parm{{Value: innerTwo}}})
	require.NoError(t, err)

	a := &ari.TNVC{Parms: []ari.Parm{{Name: "nested", Value: nestedA}}}
	b := &ari.TNVC{Parms: []ari.Parm{{Name: "nested", Value: nestedB}}}
	c := &ari.TNVC{Parms: []ari.Parm{{Name: "nested", Value: nestedC}}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
