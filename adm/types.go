package adm

import (
	"go.amprs.dev/ari/ari"
	"go.amprs.dev/ari/ariutil"
)

func normalizeIdent(s string) string { return ariutil.NormalizeIdent(s) }

// SchemaVersion is the catalog schema version number. Nothing in this
// package compares against it; ADM documents are not checked against it.
const SchemaVersion = 12

// Object is the metadata common to every managed-object definition within
// an ADM: its name, its position within the section (used to derive its
// nickname), and free-text description.
type Object struct {
	Name        string
	Enum        uint64
	Description string
}

// TypeNameItem is a single (name, type) pair, used for operator
// parameters, table columns, and report template columns.
type TypeNameItem struct {
	Name string
	Type ari.StructType
}

// Const is a named constant of a fixed value.
type Const struct {
	Object
	Type  ari.StructType
	Value ari.ARI
}

// Ctrl is a named control: an invokable operation with a declared
// parameter spec.
type Ctrl struct {
	Object
	Parms *ari.TNVC
}

// Edd is an externally-defined data item: a named, typed, possibly
// parameterized telemetry point.
type Edd struct {
	Object
	Type  ari.StructType
	Parms *ari.TNVC
}

// Var is a named variable: a typed value with an initializer expression.
type Var struct {
	Object
	Type ari.StructType
	Init *ari.EXPR
}

// RefParam is one actual parameter of a [Ref], in the lightweight
// "namespace/name/params" form used by embedded ARI references within
// macro actions and report template definitions, rather than the fully
// resolved [ari.TNVC] form.
type RefParam struct {
	Type  string
	Value string
}

// Ref is an embedded ARI reference in its symbolic, pre-resolution ORM
// form: a namespace and object name, with optional actual parameters.
type Ref struct {
	Namespace string
	Kind      ari.StructType
	Name      string
	Params    []RefParam
}

// Mac is a named macro: an ordered sequence of control invocations to run
// in response to a single invocation of the macro itself.
type Mac struct {
	Object
	Parms  *ari.TNVC
	Action []Ref
}

// OperParm is one positional operand of an [Oper].
type OperParm struct {
	Name string
	Type ari.StructType
}

// Oper is a named operator usable within an [ari.EXPR]: a stack operation
// taking a fixed operand list and producing a single typed result.
type Oper struct {
	Object
	Parms      []OperParm
	ResultType ari.StructType
}

// Rptt is a named report template: an ordered sequence of embedded ARI
// references whose resolved values make up the report's payload.
type Rptt struct {
	Object
	Parms      *ari.TNVC
	Definition []Ref
}

// Tblt is a named table template: a row schema used to validate or
// describe tabular telemetry.
type Tblt struct {
	Object
	Columns []TypeNameItem
}

// File is one parsed and (optionally) nickname-resolved ADM document.
type File struct {
	Name      string
	Namespace string
	// Version is the ADM's declared schema/content version, required
	// metadata alongside Name, Namespace, and Enum.
	Version string
	// Enum is the ADM's own enumeration, assigned once a [Catalog] has
	// resolved the file against a nickname table. Zero until resolved.
	Enum uint64
	// Uses lists the names of ADMs this file's object definitions
	// reference, as written in the document; the catalog normalizes them
	// when ordering ingestion.
	Uses []string
	// AbsFilePath is the absolute path this file was loaded from, set by
	// [Catalog.LoadFile]/[Catalog.LoadDir]. Empty for a [File] built or
	// decoded without a backing path (e.g. in tests).
	AbsFilePath string

	Consts []Const
	Ctrls  []Ctrl
	Edds   []Edd
	Macs   []Mac
	Opers  []Oper
	Rptts  []Rptt
	Tblts  []Tblt
	Vars   []Var
}

// NormName returns the case- and separator-normalized form of f's name,
// used as the catalog's primary lookup key.
func (f *File) NormName() string { return normalizeIdent(f.Name) }
