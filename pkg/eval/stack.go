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
	"math"

	"github.com/consensys/go-exprdag/pkg/expr"
	"github.com/consensys/go-exprdag/pkg/util/collection/stack"
)

// GapValue is the sentinel held by a stack position awaiting a runtime value.
const GapValue expr.Scalar = math.MaxInt64

// BindingGap identifies a position on the initial stack which must be filled
// with the runtime value of a given binding before execution.
type BindingGap struct {
	Position uint
	Binding  expr.BindingId
}

func (g BindingGap) String() string {
	return fmt.Sprintf("%d:=%s", g.Position, g.Binding.String())
}

// BindingFn supplies the runtime value of a binding identifier.  It must
// return a value for every identifier it is asked for.
type BindingFn func(expr.BindingId) expr.Scalar

// Stack is the operand stack of the evaluator.
type Stack struct {
	stack.Stack[expr.Scalar]
}

// NewStack constructs an empty operand stack.
func NewStack() *Stack {
	return &Stack{}
}

// Clone returns a copy of this stack which shares no storage with it.
func (p *Stack) Clone() *Stack {
	return &Stack{*p.Stack.Clone()}
}

// PushGap pushes a placeholder for a runtime value.
func (p *Stack) PushGap() {
	p.Push(GapValue)
}

// PopTop removes and returns the top item.
func (p *Stack) PopTop() expr.Scalar {
	return p.Pop()
}

// FillGaps writes the runtime value of each binding into its position.  Every
// position must still hold the gap sentinel, hence no gap is filled twice.
func (p *Stack) FillGaps(gaps []BindingGap, fn BindingFn) {
	for _, gap := range gaps {
		if p.Get(gap.Position) != GapValue {
			panic(fmt.Sprintf("stack position %d is not a gap", gap.Position))
		}
		//
		p.Set(gap.Position, fn(gap.Binding))
	}
}
