// Package aritext implements the ARI text encoding: a human-writable,
// single-line form such as "ari:/amp-agent/CTRL.reset()". It provides a
// hand-written recursive-descent decoder and a matching encoder, replacing
// the PLY lex/yacc grammar of the reference implementation with an
// equivalent scanner and parser.
package aritext

import "errors"

// ErrSyntax is wrapped by every decode error, identifying it as a textual
// parse failure rather than a semantic one.
var ErrSyntax = errors.New("aritext: syntax error")
