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
	"errors"
	"fmt"
	"slices"

	"github.com/consensys/go-exprdag/pkg/expr"
	"github.com/consensys/go-exprdag/pkg/util/collection/stack"
	log "github.com/sirupsen/logrus"
)

// ErrStackImbalance is reported when execution does not finish with exactly
// one result.
var ErrStackImbalance = errors.New("unbalanced evaluation stack")

// Evaluator executes a compiled expression.  Scalar operands of the expression
// are prepared on an initial operand stack, whilst unbound operands are left
// as gaps to be filled by each evaluation.  Operands are consumed in postorder,
// hence the initial stack holds them in reverse.  An evaluator is immutable,
// and can be used from multiple goroutines (each with its own State).
type Evaluator struct {
	expr expr.Expr
	// Preorder list of operations.
	operations []Operation
	// Initial operand stack (including gaps).
	initial *Stack
	// Positions of gaps on the initial stack.
	gaps []BindingGap
}

// NewEvaluator compiles a given expression.
func NewEvaluator(e expr.Expr) (*Evaluator, error) {
	var (
		c = compiler{dag: e.Dag()}
		p = &Evaluator{expr: e, initial: NewStack()}
	)
	//
	if e.Dag() == nil {
		return nil, fmt.Errorf("%w: expression has no DAG", expr.ErrInvalidRef)
	} else if _, err := c.compile(e.Root()); err != nil {
		return nil, err
	}
	//
	p.operations = c.operations
	// Operands are popped in the order they are consumed
	for i := len(c.operands) - 1; i >= 0; i-- {
		operand := c.operands[i]
		//
		if val, ok := operand.AsScalar(); ok {
			p.initial.Push(val)
		} else if slot, ok := operand.AsUnbound(); ok {
			binding, err := e.Dag().Binding(slot)
			if err != nil {
				return nil, err
			}
			//
			p.gaps = append(p.gaps, BindingGap{p.initial.Len(), binding})
			p.initial.PushGap()
		} else {
			panic(fmt.Sprintf("unexpected operand %s", operand.String()))
		}
	}
	//
	log.Debugf("compiled %s into %d operation(s) over %d operand(s) with %d gap(s)", e.Root(),
		len(p.operations), p.initial.Len(), len(p.gaps))
	//
	return p, nil
}

// Expr returns the expression being evaluated.
func (p *Evaluator) Expr() expr.Expr {
	return p.expr
}

// Dag returns the DAG of the expression being evaluated.
func (p *Evaluator) Dag() *expr.DAG {
	return p.expr.Dag()
}

// Operations returns (a copy of) the compiled operations.
func (p *Evaluator) Operations() []Operation {
	return slices.Clone(p.operations)
}

// Gaps returns (a copy of) the binding gaps of the initial stack.
func (p *Evaluator) Gaps() []BindingGap {
	return slices.Clone(p.gaps)
}

// Evaluate the expression, using a given binding function to supply the value
// of each unbound value.  Subexpressions with a memo slot are computed at most
// once per state, and subsequently served from it (along with their entire
// subtree).  Division and modulo by zero give zero, exactly as for constant
// folding.
func (p *Evaluator) Evaluate(state *State, fn BindingFn) (expr.Scalar, error) {
	var (
		operands = p.initial.Clone()
		results  = stack.NewStackWithCapacity[expr.Scalar](uint(len(p.operations)))
		// operations awaiting the results of their subtree
		pending = stack.NewStack[uint]()
		n       = uint(len(p.operations))
	)
	//
	operands.FillGaps(p.gaps, fn)
	//
	for i := uint(0); i < n; {
		op := &p.operations[i]
		//
		if val, ok := p.memoised(state, op); ok {
			operands.Drop(op.NOperands)
			results.Push(val)
			i += 1 + op.NSubOps
		} else {
			pending.Push(i)
			i++
		}
		// Compute every operation whose subtree is now complete
		for !pending.IsEmpty() && i > pending.Top()+p.operations[pending.Top()].NSubOps {
			if err := p.compute(pending.Pop(), state, operands, results); err != nil {
				return 0, err
			}
		}
	}
	//
	if results.Len() != 1 || !operands.IsEmpty() {
		return 0, fmt.Errorf("%w: %d result(s), %d operand(s) remaining", ErrStackImbalance, results.Len(),
			operands.Len())
	}
	//
	return results.Pop(), nil
}

// Check whether an operation has already been computed in this session.
func (p *Evaluator) memoised(state *State, op *Operation) (expr.Scalar, bool) {
	slot, ok := state.Slot(op.Ref)
	if !ok {
		return 0, false
	}
	//
	if val := state.Load(slot); val.HasValue() {
		state.hits++
		return val.Unwrap(), true
	}
	//
	return 0, false
}

// Compute the value of an operation whose subtree results are on top of the
// results stack, and whose own operands are on top of the operand stack.
func (p *Evaluator) compute(index uint, state *State, operands *Stack, results *stack.Stack[expr.Scalar]) error {
	var (
		op       = &p.operations[index]
		node     = op.Node
		lhs, rhs expr.Scalar
	)
	// Subtree results (rhs was pushed last)
	if node.Rhs.IsSExpr() {
		rhs = results.Pop()
	}
	//
	if node.Lhs.IsSExpr() {
		lhs = results.Pop()
	}
	// Own operands (lhs was pushed last)
	if !node.Lhs.IsSExpr() {
		lhs = operands.PopTop()
	}
	//
	if !node.Rhs.IsSExpr() {
		rhs = operands.PopTop()
	}
	//
	val := expr.Fold(node.Op, lhs, rhs)
	results.Push(val)
	//
	if slot, ok := state.Slot(op.Ref); ok {
		return state.Store(slot, val)
	}
	//
	return nil
}

// ============================================================================
// Compiler
// ============================================================================

type compiler struct {
	dag        *expr.DAG
	operations []Operation
	// Value operands in the order they are consumed.
	operands []expr.Operand
}

// Compile the subtree rooted at a given node, returning the number of
// operands it consumes.
func (c *compiler) compile(ref expr.SExprRef) (uint, error) {
	node, err := c.dag.Fetch(ref)
	if err != nil {
		return 0, err
	}
	//
	var (
		index     = len(c.operations)
		noperands uint
	)
	//
	c.operations = append(c.operations, Operation{Ref: ref, Node: node})
	// Subtrees first
	for _, operand := range [2]expr.Operand{node.Lhs, node.Rhs} {
		if child, ok := operand.AsRef(); ok {
			m, err := c.compile(child)
			if err != nil {
				return 0, err
			}
			//
			noperands += m
		}
	}
	// Then own operands
	for _, operand := range [2]expr.Operand{node.Lhs, node.Rhs} {
		if operand.IsValue() {
			c.operands = append(c.operands, operand)
			noperands++
		}
	}
	//
	c.operations[index].NSubOps = uint(len(c.operations) - index - 1)
	c.operations[index].NOperands = noperands
	//
	return noperands, nil
}
