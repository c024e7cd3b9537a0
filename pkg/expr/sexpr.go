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

import (
	"fmt"

	"github.com/consensys/go-exprdag/pkg/util/collection/hash"
)

// SExpr is a single node of an expression DAG, applying an operator to two
// operands.
type SExpr struct {
	Lhs Operand
	Rhs Operand
	Op  Operator
}

var _ hash.Hasher[SExpr] = SExpr{}

// IsLeaf determines whether this node belongs in the leaf arena, which holds
// exactly those nodes with an unbound value as a direct operand.  Unbound
// values occurring deeper within either operand are not considered.
func (e SExpr) IsLeaf() bool {
	return e.Lhs.IsUnbound() || e.Rhs.IsUnbound()
}

// Equals implementation for the Hasher interface.  Operands are compared by
// kind and payload, rather than by recursing through the subexpressions they
// refer to.
func (e SExpr) Equals(other SExpr) bool {
	return e.Op == other.Op && e.Lhs.key() == other.Lhs.key() && e.Rhs.key() == other.Rhs.key()
}

// Hash implementation for the Hasher interface.
func (e SExpr) Hash() uint64 {
	var (
		c   = hash.NewCombiner()
		lhs = e.Lhs.key()
		rhs = e.Rhs.key()
	)
	//
	c.Add(uint64(e.Op))
	c.Add(uint64(lhs.kind)).Add(lhs.payload)
	c.Add(uint64(rhs.kind)).Add(rhs.payload)
	//
	return c.Sum()
}

func (e SExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Lhs.String(), e.Op.String(), e.Rhs.String())
}
