// Package nickname converts ARIs between their symbolic form (string
// namespace and object names) and their numeric nickname form (ADM
// enumeration and per-kind object index), the compact identity used on
// the wire. It mirrors the reference implementation's nickname.Converter.
package nickname

import "errors"

var (
	// ErrUnresolvable is returned when a symbolic identity cannot be
	// resolved to a nickname, or vice versa, against the given catalog.
	ErrUnresolvable = errors.New("nickname: cannot resolve identity")
	// ErrADMNotFound is returned when an ARI names an ADM the catalog
	// does not know.
	ErrADMNotFound = errors.New("nickname: ADM not found")
	// ErrObjectNotFound is returned when an ARI names an object the
	// catalog's ADM entry does not define.
	ErrObjectNotFound = errors.New("nickname: object not found")
)
