// Package matrix abstracts the boolean adjacency-matrix primitives the
// evaluator is polymorphic over: allocation, shape queries, in-place
// transpose, element-wise OR, matrix multiply, and apply-identity, all
// under the any-pair boolean semiring. It also carries the distinguished
// identity-matrix sentinel.
//
// Nothing in this package knows about expression trees; it is the layer
// the evaluator is built on top of, analogous to how sql/expression built
// on top of sql.Type/sql.Row without knowing how either was stored.
package matrix

import (
	"fmt"

	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrBackend is returned for any failure of a Backend primitive. The
// evaluator treats every ErrBackend as fatal to the current evaluation.
var ErrBackend = errors.NewKind("matrix backend error: %s")

// ErrInvalidShape is returned by a Backend's New for negative dimensions.
var ErrInvalidShape = errors.NewKind("invalid matrix shape: %d x %d")

// Matrix is an opaque boolean-matrix handle. Its only public behavior is
// reporting its own shape; all mutation happens through a Backend.
type Matrix interface {
	Rows() int
	Cols() int
}

// InputMode toggles whether a Backend call reads an operand transposed,
// without ever materializing the transposed matrix.
type InputMode int

const (
	// Default reads the operand as stored.
	Default InputMode = iota
	// Transposed reads the operand logically transposed.
	Transposed
)

func (m InputMode) String() string {
	if m == Transposed {
		return "transposed"
	}
	return "default"
}

// Descriptor carries the two independent operand-transposition slots a
// binary Backend call consults. Its zero value is (Default, Default).
type Descriptor struct {
	Input0 InputMode
	Input1 InputMode
}

// Reset returns the descriptor to (Default, Default), as happens between
// operands of a k-ary fold (spec.md §4.4).
func (d *Descriptor) Reset() {
	d.Input0 = Default
	d.Input1 = Default
}

func (d Descriptor) String() string {
	return fmt.Sprintf("{INP0:%s INP1:%s}", d.Input0, d.Input1)
}

// identitySentinel is the concrete type behind Identity. Its only purpose
// is to be a unique pointer value: identity is tested by reference, never
// by content (spec.md §4.1, §9).
type identitySentinel struct{}

func (*identitySentinel) Rows() int { return -1 }
func (*identitySentinel) Cols() int { return -1 }

var identityValue = &identitySentinel{}

// Identity is the logical identity-matrix operand. It is never allocated
// by a Backend and is only a legal operand of Multiply.
var Identity Matrix = identityValue

// IsIdentity reports whether m is the distinguished Identity sentinel,
// compared by identity (pointer equality through the interface), never by
// shape or content.
func IsIdentity(m Matrix) bool {
	return m == identityValue
}

// Backend is the capability set the evaluator is polymorphic over. A
// Backend implementation owns the representation of Matrix values it
// creates; the evaluator never inspects a Matrix except through Backend
// calls.
type Backend interface {
	// New allocates a zero-valued boolean matrix of the given shape.
	New(rows, cols int) (Matrix, error)
	// Free releases a matrix previously returned by New. Backends that
	// rely on garbage collection may treat this as a no-op.
	Free(m Matrix) error
	// NVals returns the number of nonzero (true) entries.
	NVals(m Matrix) (int, error)
	// TransposeInPlace replaces m with its transpose.
	TransposeInPlace(m Matrix) error
	// EWiseAdd computes dst = a ∨ b (element-wise OR) under the any-pair
	// boolean semiring, honoring the descriptor's transpose slots.
	EWiseAdd(dst, a, b Matrix, d *Descriptor) error
	// MatMul computes dst = a · b under the any-pair boolean semiring,
	// honoring the descriptor's transpose slots.
	MatMul(dst, a, b Matrix, d *Descriptor) error
	// ApplyIdentity computes dst = a, optionally transposed per
	// Input0 — the backend operation behind Multiply(A, Identity).
	ApplyIdentity(dst, a Matrix, d *Descriptor) error
}
