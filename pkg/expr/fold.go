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

// Fold applies an operator to two constants.  Division and modulo by zero both
// give zero, rather than failing.
func Fold(op Operator, lhs Scalar, rhs Scalar) Scalar {
	switch op {
	case Add:
		return lhs + rhs
	case Sub:
		return lhs - rhs
	case Mul:
		return lhs * rhs
	case Div:
		if rhs == 0 {
			return 0
		}
		//
		return lhs / rhs
	case Mod:
		if rhs == 0 {
			return 0
		}
		//
		return lhs % rhs
	}
	//
	panic(fmt.Sprintf("unknown operator %q", byte(op)))
}

// FoldOperands applies an operator to two operands, provided both are scalar
// constants.  Otherwise, it reports that folding is not possible, meaning a
// subexpression must be built instead.
func FoldOperands(op Operator, lhs Operand, rhs Operand) (Scalar, bool) {
	l, lok := lhs.AsScalar()
	r, rok := rhs.AsScalar()
	//
	if !lok || !rok {
		return 0, false
	}
	//
	return Fold(op, l, r), true
}
