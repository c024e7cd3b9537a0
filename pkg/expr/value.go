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
// Package expr provides a hash-consed representation of arithmetic
// expressions over scalar constants and unbound values.  Structurally
// identical subexpressions are stored exactly once within an expression DAG,
// and subexpressions over constants only are folded as they are built.
package expr

import (
	"fmt"

	"github.com/consensys/go-exprdag/pkg/util/base26"
)

// Scalar is the (fixed-width, signed) type of all values.
type Scalar = int64

// BindingId is an opaque identifier chosen by the caller to denote some
// runtime value.  The only requirement is that distinct runtime values have
// distinct identifiers.
type BindingId uint64

// String returns the base26 label of this identifier, e.g. "x" for 23.
func (id BindingId) String() string {
	return base26.Encode(uint64(id))
}

// UnboundValue identifies a dense slot in the binding table of a DAG.  Every
// binding identifier registered with a builder is associated with exactly one
// slot, though several identifiers can share a slot.
type UnboundValue uint

// Value is either a scalar constant, or an unbound value whose concrete scalar
// is only supplied at evaluation time.  The zero value is the scalar 0.
type Value struct {
	unbound bool
	scalar  Scalar
	slot    UnboundValue
}

// NewScalar constructs a value representing a known constant.
func NewScalar(val Scalar) Value {
	return Value{false, val, 0}
}

// NewUnbound constructs a value representing a given unbound slot.
func NewUnbound(slot UnboundValue) Value {
	return Value{true, 0, slot}
}

// IsScalar checks whether this value is a known constant.
func (v Value) IsScalar() bool {
	return !v.unbound
}

// IsUnbound checks whether this value is an unbound value.
func (v Value) IsUnbound() bool {
	return v.unbound
}

// AsScalar returns the constant held by this value, if it is a scalar.
func (v Value) AsScalar() (Scalar, bool) {
	return v.scalar, !v.unbound
}

// AsUnbound returns the slot held by this value, if it is unbound.
func (v Value) AsUnbound() (UnboundValue, bool) {
	return v.slot, v.unbound
}

// Operand lifts this value into an operand.
func (v Value) Operand() Operand {
	return Operand{kind: valueOperand, value: v}
}

func (v Value) String() string {
	if v.unbound {
		return fmt.Sprintf("$%d", v.slot)
	}
	//
	return fmt.Sprintf("%d", v.scalar)
}
