// Package ari implements the logical data model for an AMP Resource
// Identifier (ARI): the tagged union of literal and reference values, and
// the compound types (AC, EXPR, TNVC) that parameterize references.
//
// This is distinct from the ADM catalog model in [go.amprs.dev/ari/adm],
// which stores the managed-object definitions that ARIs refer to.
package ari

import "fmt"

// StructType is the closed enumeration of ADM data types from the AMP
// draft's Section 5.4: object categories, primitive categories, and
// compound categories, all keyed by a shared integer space.
type StructType int32

// Object categories.
const (
	MDAT  StructType = -1
	CONST StructType = 0
	CTRL  StructType = 1
	EDD   StructType = 2
	LIT   StructType = 3
	MAC   StructType = 4
	OPER  StructType = 5
	RPTT  StructType = 7
	SBR   StructType = 8
	TBLT  StructType = 10
	TBR   StructType = 11
	VAR   StructType = 12
)

// Primitive categories.
const (
	BOOL   StructType = 16
	BYTE   StructType = 17
	STR    StructType = 18
	INT    StructType = 19
	UINT   StructType = 20
	VAST   StructType = 21
	UVAST  StructType = 22
	REAL32 StructType = 23
	REAL64 StructType = 24
	// UNK is not a formally defined ADM type; the original reference
	// implementation carries it as a placeholder literal type for
	// parameters whose declared type could not be determined. It never
	// appears in ADM JSON "type" fields.
	UNK StructType = -25
)

// Compound categories.
const (
	TV   StructType = 32
	TS   StructType = 33
	TNVC StructType = 35
	ARI  StructType = 36
	AC   StructType = 37
	EXPR StructType = 38
	BSTR StructType = 39
)

var structTypeNames = map[StructType]string{
	MDAT: "MDAT", CONST: "CONST", CTRL: "CTRL", EDD: "EDD", LIT: "LIT",
	MAC: "MAC", OPER: "OPER", RPTT: "RPTT", SBR: "SBR", TBLT: "TBLT",
	TBR: "TBR", VAR: "VAR",
	BOOL: "BOOL", BYTE: "BYTE", STR: "STR", INT: "INT", UINT: "UINT",
	VAST: "VAST", UVAST: "UVAST", REAL32: "REAL32", REAL64: "REAL64", UNK: "UNK",
	TV: "TV", TS: "TS", TNVC: "TNVC", ARI: "ARI", AC: "AC", EXPR: "EXPR", BSTR: "BSTR",
}

var structTypeByName = func() map[string]StructType {
	m := make(map[string]StructType, len(structTypeNames))
	for k, v := range structTypeNames {
		m[v] = k
	}

	return m
}()

// String returns the canonical upper-case name of t, or a numeric
// placeholder if t is not a known variant.
func (t StructType) String() string {
	if name, ok := structTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("StructType(%d)", int32(t))
}

// ParseStructType looks up a StructType by its canonical name,
// case-insensitively, as used by ARI text TYPEDOT/TYPENAME tokens and by
// ADM JSON "type" fields.
func ParseStructType(name string) (StructType, bool) {
	t, ok := structTypeByName[upperASCII(name)]

	return t, ok
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}

	return string(b)
}

// LiteralTypes is the set of struct types usable as a [LiteralARI] value.
var LiteralTypes = map[StructType]bool{
	BOOL: true, BYTE: true, INT: true, UINT: true, VAST: true, UVAST: true,
	REAL32: true, REAL64: true, UNK: true, STR: true, BSTR: true, TV: true, TS: true,
}

// LabelRequiredTypes is the subset of [LiteralTypes] whose text encoding is
// otherwise ambiguous and therefore always prints with a TYPE. prefix.
var LabelRequiredTypes = map[StructType]bool{
	BYTE: true, INT: true, UINT: true, VAST: true, UVAST: true,
	REAL32: true, REAL64: true, UNK: true, TV: true, TS: true,
}

// NumericLimits gives the inclusive [min, max] range for each numeric
// struct type. BOOL, STR, and BSTR are not ranged and are absent here.
var NumericLimits = map[StructType][2]float64{
	BYTE:   {0, 1<<8 - 1},
	INT:    {-(1 << 31), 1<<31 - 1},
	UINT:   {0, 1<<32 - 1},
	VAST:   {-(1 << 63), 1<<63 - 1},
	UVAST:  {0, 1<<64 - 1},
	REAL32: {-3.4028235e+38, 3.4028235e+38},
	REAL64: {-1.7976931348623157e+308, 1.7976931348623157e+308},
	UNK:    {0, 0},
	TV:     {0, 1<<64 - 1},
	TS:     {0, 1<<64 - 1},
}
