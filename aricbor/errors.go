package aricbor

import "errors"

// ErrDecode wraps every structural decode failure: truncated input, an
// unrecognized struct type byte, or a flag combination the decoder does
// not support. The encoder wraps its failures with it as well, such as a
// struct type it cannot encode.
var ErrDecode = errors.New("aricbor: decode error")
