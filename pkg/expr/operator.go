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

// Operator identifies one of the supported binary arithmetic operators.  The
// underlying byte is the operator's infix symbol.
type Operator byte

const (
	// Add is integer addition.
	Add Operator = '+'
	// Sub is integer subtraction.
	Sub Operator = '-'
	// Mul is integer multiplication.
	Mul Operator = '*'
	// Div is truncated integer division, where division by zero gives zero.
	Div Operator = '/'
	// Mod is the remainder of truncated division, where modulo zero gives zero.
	Mod Operator = '%'
)

// Operators lists all supported operators.
var Operators = []Operator{Add, Sub, Mul, Div, Mod}

// ParseOperator returns the operator with a given infix symbol.
func ParseOperator(symbol rune) (Operator, error) {
	switch op := Operator(symbol); op {
	case Add, Sub, Mul, Div, Mod:
		return op, nil
	}
	//
	return 0, fmt.Errorf("unknown operator %q", symbol)
}

// IsCommutative checks whether the order of operands is irrelevant for this
// operator.
func (op Operator) IsCommutative() bool {
	return op == Add || op == Mul
}

func (op Operator) String() string {
	return string(rune(op))
}
