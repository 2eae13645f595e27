package ari

import (
	"fmt"
	"math"
)

// ARI is the sealed tagged union of value and reference forms an AMP
// Resource Identifier can take. The only implementations are
// [LiteralARI] and [ReferenceARI].
type ARI interface {
	ariSealed()
	// Type reports the struct type this ARI carries: one of
	// [LiteralTypes] or a container type (AC, TNVC, EXPR) for a
	// [LiteralARI], or one of the object categories for a [ReferenceARI].
	Type() StructType
	// Equal reports whether other is structurally identical to this
	// value. NaN REAL32/REAL64 literals compare equal to themselves,
	// matching IEEE total-order expectations for round-trip tests rather
	// than IEEE-754 comparison semantics.
	Equal(other ARI) bool
}

// LiteralARI is a self-contained value: a primitive, or one of the
// compound literal containers (AC, EXPR, TNVC).
type LiteralARI struct {
	StructType StructType
	// Value holds the Go-native representation matching StructType:
	//
	//	BOOL           bool
	//	BYTE           uint8
	//	INT            int32
	//	UINT           uint32
	//	VAST           int64
	//	UVAST          uint64
	//	REAL32         float32
	//	REAL64         float64
	//	UNK            nil
	//	STR            string
	//	BSTR           []byte
	//	TV, TS         uint64
	//	TNVC           *TNVC
	//	AC             *AC
	//	EXPR           *EXPR
	Value any
}

func (*LiteralARI) ariSealed() {}

// Type implements [ARI].
func (l *LiteralARI) Type() StructType { return l.StructType }

// NewLiteralARI builds a LiteralARI after checking that value's Go type and
// numeric range are consistent with t. Compound types (TNVC, AC, EXPR) are
// not range-checked here; construct those containers directly.
func NewLiteralARI(t StructType, value any) (*LiteralARI, error) {
	if !LiteralTypes[t] && t != TNVC && t != AC && t != EXPR {
		return nil, fmt.Errorf("%w: %s is not a literal type", ErrInvalidValue, t)
	}

	if err := checkValueType(t, value); err != nil {
		return nil, err
	}

	return &LiteralARI{StructType: t, Value: value}, nil
}

func checkValueType(t StructType, value any) error {
	switch t {
	case BOOL:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: BOOL requires bool, got %T", ErrInvalidValue, value)
		}
	case BYTE:
		return checkNumeric[uint8](t, value)
	case INT:
		return checkNumeric[int32](t, value)
	case UINT:
		return checkNumeric[uint32](t, value)
	case VAST:
		return checkNumeric[int64](t, value)
	case UVAST, TV, TS:
		return checkNumeric[uint64](t, value)
	case REAL32:
		if _, ok := value.(float32); !ok {
			return fmt.Errorf("%w: %s requires float32, got %T", ErrInvalidValue, t, value)
		}
	case REAL64:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("%w: %s requires float64, got %T", ErrInvalidValue, t, value)
		}
	case STR:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: STR requires string, got %T", ErrInvalidValue, value)
		}
	case BSTR:
		if _, ok := value.([]byte); !ok {
			return fmt.Errorf("%w: BSTR requires []byte, got %T", ErrInvalidValue, value)
		}
	case UNK:
		// no-op: UNK carries no typed payload.
	}

	return nil
}

type numericType interface {
	~uint8 | ~int32 | ~uint32 | ~int64 | ~uint64
}

func checkNumeric[N numericType](t StructType, value any) error {
	if _, ok := value.(N); !ok {
		return fmt.Errorf("%w: %s requires %T, got %T", ErrInvalidValue, t, N(0), value)
	}

	return nil
}

// Equal implements [ARI].
func (l *LiteralARI) Equal(other ARI) bool {
	o, ok := other.(*LiteralARI)
	if !ok || o.StructType != l.StructType {
		return false
	}

	switch l.StructType {
	case REAL32:
		a, b := l.Value.(float32), o.Value.(float32)

		return a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b)))
	case REAL64:
		a, b := l.Value.(float64), o.Value.(float64)

		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	case BSTR:
		a, b := l.Value.([]byte), o.Value.([]byte)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}

		return true
	case TNVC:
		return l.Value.(*TNVC).Equal(o.Value.(*TNVC))
	case AC:
		return l.Value.(*AC).Equal(o.Value.(*AC))
	case EXPR:
		return l.Value.(*EXPR).Equal(o.Value.(*EXPR))
	case UNK:
		return true
	default:
		return l.Value == o.Value
	}
}

// Identity names a managed object: either a symbolic form (namespace, kind,
// name) or a numeric nickname form (ADM enumeration, object kind,
// name-nickname).
type Identity struct {
	// Namespace is either a string (symbolic ADM module name) or a
	// uint64 (ADM enumeration), or nil when the reference names no
	// namespace.
	Namespace any
	Kind      StructType
	// Name is either a string (symbolic object name) or a uint64 (object
	// nickname).
	Name any
}

// Equal reports whether two identities name the same object.
func (id Identity) Equal(o Identity) bool {
	return id.Namespace == o.Namespace && id.Kind == o.Kind && id.Name == o.Name
}

// ReferenceARI names a managed object together with zero or more actual
// parameters to bind against its declared parameter spec.
type ReferenceARI struct {
	Identity Identity
	// Params is nil when no parameter list was present in the source
	// text (as opposed to an explicit empty list).
	Params *TNVC
}

func (*ReferenceARI) ariSealed() {}

// Type implements [ARI].
func (r *ReferenceARI) Type() StructType { return r.Identity.Kind }

// Equal implements [ARI].
func (r *ReferenceARI) Equal(other ARI) bool {
	o, ok := other.(*ReferenceARI)
	if !ok || !r.Identity.Equal(o.Identity) {
		return false
	}

	if (r.Params == nil) != (o.Params == nil) {
		return false
	}
	if r.Params == nil {
		return true
	}

	return r.Params.Equal(o.Params)
}

// AC is an ordered, homogeneous-in-purpose collection of ARI items, used
// both as a literal container and as the postfix item list of an [EXPR].
type AC struct {
	Items []ARI
}

// Equal reports whether two ARI collections hold equal items in the same
// order.
func (a *AC) Equal(o *AC) bool {
	if a == nil || o == nil {
		return a == o
	}
	if len(a.Items) != len(o.Items) {
		return false
	}
	for i, it := range a.Items {
		if !it.Equal(o.Items[i]) {
			return false
		}
	}

	return true
}

// EXPR is a typed postfix expression: an output StructType together with
// the AC of operators and operands that compute it.
type EXPR struct {
	ResultType StructType
	Items      *AC
}

// Equal reports whether two expressions have the same result type and
// postfix item sequence.
func (e *EXPR) Equal(o *EXPR) bool {
	if e == nil || o == nil {
		return e == o
	}

	return e.ResultType == o.ResultType && e.Items.Equal(o.Items)
}

// TNVC is a Type-Name-Value Collection: an ordered list of parameters,
// each with an optional declared type, an optional name, and a value.
type TNVC struct {
	Parms []Parm
}

// Parm is one entry of a [TNVC]. Type and Name are optional; a parm with
// neither is a bare positional value.
type Parm struct {
	Type  *StructType
	Name  string
	Value ARI
}

// Equal reports whether two TNVCs have equal parms, in order, including
// matching optional type/name metadata.
func (t *TNVC) Equal(o *TNVC) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Parms) != len(o.Parms) {
		return false
	}
	for i, p := range t.Parms {
		op := o.Parms[i]
		if p.Name != op.Name {
			return false
		}
		if (p.Type == nil) != (op.Type == nil) {
			return false
		}
		if p.Type != nil && *p.Type != *op.Type {
			return false
		}
		if (p.Value == nil) != (op.Value == nil) {
			return false
		}
		if p.Value != nil && !p.Value.Equal(op.Value) {
			return false
		}
	}

	return true
}
