// Package types implements the DataType lattice: the sentinel used before
// analysis, the two primitive value types, function signatures, and the
// second-class "type of a type name" binding used in the symbol table for
// `i32`/`bool`.
package types

import "strings"

// Tag discriminates the DataType variants. Equality between two DataTypes
// is structural, so DataType is a small closed struct rather than an
// interface. It holds a slice, so == is not defined on it; compare with
// Equal.
type Tag int

const (
	None Tag = iota
	ToBeInferred
	I32
	Bool
	Function
	Type
)

func (t Tag) String() string {
	switch t {
	case None:
		return "none"
	case ToBeInferred:
		return "<to be inferred>"
	case I32:
		return "i32"
	case Bool:
		return "bool"
	case Function:
		return "function"
	case Type:
		return "type"
	default:
		return "?"
	}
}

// DataType is a value in the type lattice. Function carries its parameter
// types and return type; Type carries the single DataType it names. All
// other tags ignore Params/Underlying.
type DataType struct {
	Tag Tag

	// valid when Tag == Function
	Params  []DataType
	Returns DataType

	// valid when Tag == Type
	Underlying *DataType
}

// NewFunction builds a Function(params, returns) DataType.
func NewFunction(params []DataType, returns DataType) DataType {
	return DataType{Tag: Function, Params: params, Returns: returns}
}

// NewType builds a Type(underlying) DataType, used for symbol-table entries
// that name a type rather than hold a value of one (e.g. "i32" -> Type(I32)).
func NewType(underlying DataType) DataType {
	return DataType{Tag: Type, Underlying: &underlying}
}

// Equal reports structural equality.
func (d DataType) Equal(o DataType) bool {
	if d.Tag != o.Tag {
		return false
	}
	switch d.Tag {
	case Function:
		if len(d.Params) != len(o.Params) {
			return false
		}
		for i := range d.Params {
			if !d.Params[i].Equal(o.Params[i]) {
				return false
			}
		}
		return d.Returns.Equal(o.Returns)
	case Type:
		if d.Underlying == nil || o.Underlying == nil {
			return d.Underlying == o.Underlying
		}
		return d.Underlying.Equal(*o.Underlying)
	default:
		return true
	}
}

// IsToBeInferred reports whether d is still the parser-installed sentinel.
// Any typed node still carrying this at emission time is a fatal internal
// invariant violation: the analyzer is required to eliminate it first.
func (d DataType) IsToBeInferred() bool {
	return d.Tag == ToBeInferred
}

func (d DataType) String() string {
	switch d.Tag {
	case Function:
		var params []string
		for _, p := range d.Params {
			params = append(params, p.String())
		}
		return "(" + strings.Join(params, ", ") + ") -> " + d.Returns.String()
	case Type:
		if d.Underlying == nil {
			return "type(?)"
		}
		return "type(" + d.Underlying.String() + ")"
	default:
		return d.Tag.String()
	}
}

// Simple constructors for the primitive tags, used pervasively by the
// analyzer and emitter.
var (
	NoneType         = DataType{Tag: None}
	ToBeInferredType = DataType{Tag: ToBeInferred}
	I32Type          = DataType{Tag: I32}
	BoolType         = DataType{Tag: Bool}
)
