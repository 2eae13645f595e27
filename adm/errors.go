// Package adm models an Application Data Model: the catalog of managed
// object definitions (controls, EDDs, variables, operators, and so on)
// that ARI references resolve against. It replaces the reference
// implementation's SQLite-backed ORM with a pure in-memory catalog behind
// a small [Store] persistence seam.
package adm

import "errors"

var (
	// ErrMissingMetadata is returned when an ADM document lacks the
	// minimal "name" or "namespace" metadata required to register it.
	ErrMissingMetadata = errors.New("adm: missing required metadata")
	// ErrDuplicateName is returned when two objects within the same ADM
	// section collide on normalized name.
	ErrDuplicateName = errors.New("adm: duplicate object name")
	// ErrNotFound is returned by catalog lookups that find no match.
	ErrNotFound = errors.New("adm: object not found")
	// ErrSchemaVersion reports an unsupported catalog schema version. No
	// function in this package returns it.
	ErrSchemaVersion = errors.New("adm: unsupported schema version")
)
