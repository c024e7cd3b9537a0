// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package expr

import "cmp"

type operandKind uint8

const (
	emptyOperand operandKind = iota
	valueOperand
	refOperand
)

// Operand is the input to a subexpression.  This is either a value (i.e. a
// scalar or an unbound value), or a reference to some other subexpression.
// The zero value is the empty operand, which is never a valid input.
type Operand struct {
	kind  operandKind
	value Value
	ref   SExprRef
}

// Const constructs an operand holding a given scalar constant.
func Const(val Scalar) Operand {
	return NewScalar(val).Operand()
}

// IsEmpty checks whether this operand is uninitialised.
func (o Operand) IsEmpty() bool {
	return o.kind == emptyOperand
}

// IsValue checks whether this operand is a scalar or an unbound value.
func (o Operand) IsValue() bool {
	return o.kind == valueOperand
}

// IsScalar checks whether this operand is a scalar constant.
func (o Operand) IsScalar() bool {
	return o.kind == valueOperand && o.value.IsScalar()
}

// IsUnbound checks whether this operand is an unbound value.
func (o Operand) IsUnbound() bool {
	return o.kind == valueOperand && o.value.IsUnbound()
}

// IsSExpr checks whether this operand refers to a subexpression.
func (o Operand) IsSExpr() bool {
	return o.kind == refOperand
}

// AsValue returns the value held by this operand, if it holds one.
func (o Operand) AsValue() (Value, bool) {
	return o.value, o.kind == valueOperand
}

// AsScalar returns the constant held by this operand, if it holds one.
func (o Operand) AsScalar() (Scalar, bool) {
	if o.kind != valueOperand {
		return 0, false
	}
	//
	return o.value.AsScalar()
}

// AsUnbound returns the unbound slot held by this operand, if it holds one.
func (o Operand) AsUnbound() (UnboundValue, bool) {
	if o.kind != valueOperand {
		return 0, false
	}
	//
	return o.value.AsUnbound()
}

// AsRef returns the subexpression referred to by this operand, if it refers to
// one.
func (o Operand) AsRef() (SExprRef, bool) {
	return o.ref, o.kind == refOperand
}

func (o Operand) String() string {
	switch o.kind {
	case valueOperand:
		return o.value.String()
	case refOperand:
		return o.ref.String()
	default:
		return "_"
	}
}

// ============================================================================
// Structural keys
// ============================================================================

// Kinds of operand, in the order used for canonicalisation.
const (
	scalarKey uint8 = iota
	unboundKey
	leafKey
	internalKey
)

// operandKey is a uniform (kind, payload) encoding of an operand.  Two
// operands are structurally equal exactly when their keys are equal.
type operandKey struct {
	kind    uint8
	payload uint64
}

func (o Operand) key() operandKey {
	switch o.kind {
	case valueOperand:
		if slot, ok := o.value.AsUnbound(); ok {
			return operandKey{unboundKey, uint64(slot)}
		}
		//
		return operandKey{scalarKey, uint64(o.value.scalar)}
	case refOperand:
		if o.ref.IsLeaf() {
			return operandKey{leafKey, uint64(o.ref.index)}
		}
		//
		return operandKey{internalKey, uint64(o.ref.index)}
	default:
		panic("empty operand has no key")
	}
}

// compare imposes a total order over keys, ordering first by kind and then by
// payload.
func (k operandKey) compare(other operandKey) int {
	if c := cmp.Compare(k.kind, other.kind); c != 0 {
		return c
	}
	//
	return cmp.Compare(k.payload, other.payload)
}
