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
package eval

import (
	"fmt"

	"github.com/consensys/go-exprdag/pkg/expr"
)

// Operation is a single step of a compiled expression, corresponding to one
// occurrence of a subexpression in a depth-first (preorder) traversal.  The
// operations for its subtree immediately follow it.
type Operation struct {
	// Subexpression computed by this operation.
	Ref expr.SExprRef
	// Node referred to, cached at compile time.
	Node expr.SExpr
	// Number of following operations belonging to this subtree, which are
	// skipped when its value is already memoised.
	NSubOps uint
	// Number of operand stack slots consumed by this subtree.
	NOperands uint
}

func (op Operation) String() string {
	return fmt.Sprintf("%s%s[ops=%d,operands=%d]", op.Ref.String(), op.Node.String(), op.NSubOps, op.NOperands)
}
