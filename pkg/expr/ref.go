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

import "fmt"

// LeafRef indexes the arena of subexpressions which have at least one unbound
// value as a direct operand.
type LeafRef uint

// InternalRef indexes the arena of subexpressions none of whose direct
// operands is an unbound value.
type InternalRef uint

// Ref converts this index into a general subexpression reference.
func (r LeafRef) Ref() SExprRef {
	return SExprRef{false, uint(r)}
}

// Ref converts this index into a general subexpression reference.
func (r InternalRef) Ref() SExprRef {
	return SExprRef{true, uint(r)}
}

// SExprRef refers to a subexpression held in one of the two arenas of a DAG.
// References are only meaningful with respect to the DAG which issued them.
type SExprRef struct {
	internal bool
	index    uint
}

// IsLeaf checks whether this refers into the leaf arena.
func (r SExprRef) IsLeaf() bool {
	return !r.internal
}

// IsInternal checks whether this refers into the internal arena.
func (r SExprRef) IsInternal() bool {
	return r.internal
}

// Index returns the position of the referenced subexpression within its
// arena.
func (r SExprRef) Index() uint {
	return r.index
}

// AsLeaf returns the leaf arena index, if this refers into the leaf arena.
func (r SExprRef) AsLeaf() (LeafRef, bool) {
	return LeafRef(r.index), !r.internal
}

// AsInternal returns the internal arena index, if this refers into the
// internal arena.
func (r SExprRef) AsInternal() (InternalRef, bool) {
	return InternalRef(r.index), r.internal
}

// Operand lifts this reference into an operand.
func (r SExprRef) Operand() Operand {
	return Operand{kind: refOperand, ref: r}
}

func (r SExprRef) String() string {
	if r.internal {
		return fmt.Sprintf("I%d", r.index)
	}
	//
	return fmt.Sprintf("L%d", r.index)
}
