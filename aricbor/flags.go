// Package aricbor implements the ARI CBOR encoding: the compact,
// nickname-oriented binary form exchanged over a DTN transport. Most item
// encode/decode is delegated to github.com/fxamacker/cbor/v2; this package
// supplies the bit-packed framing byte ahead of each ARI/TNVC/AC item and
// the 5-bit inline count used for small collections, both of which are
// outside what a generic CBOR library can express.
package aricbor

// AriFlag is the bit-packed flag octet written right after the struct-type
// item of every reference ARI on the wire, indicating which optional fields
// follow. Literal ARIs carry no flag octet.
type AriFlag uint8

const (
	AriFlagHasNN     AriFlag = 0x80
	AriFlagHasParams AriFlag = 0x40
	AriFlagHasIss    AriFlag = 0x20
	AriFlagHasTag    AriFlag = 0x10
)

// TnvcFlag is the bit-packed flag octet that precedes every TNVC item,
// indicating which of the parallel type/name/value arrays are present.
type TnvcFlag uint8

const (
	TnvcFlagMixed TnvcFlag = 0x8
	TnvcFlagType  TnvcFlag = 0x4
	TnvcFlagName  TnvcFlag = 0x2
	TnvcFlagValue TnvcFlag = 0x1
)

// maxInlineCount is the largest collection size (AC/EXPR items, TNVC
// parms) that can be represented with the single-byte "0x80 | count"
// inline count header. Larger collections are written as a 0xff marker
// byte followed by an explicit CBOR unsigned integer count item.
const maxInlineCount = 31

// inlineCountMarker is the high bit set in an inline count byte. The 0xff
// byte, which also has it set, marks an explicit count item instead.
const inlineCountMarker = 0x80
