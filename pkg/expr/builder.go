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
	"errors"
	"fmt"

	"github.com/consensys/go-exprdag/pkg/util"
	"github.com/consensys/go-exprdag/pkg/util/collection/bit"
	"github.com/consensys/go-exprdag/pkg/util/collection/hash"
)

// ErrBindingConflict is reported when registering an alias for a binding
// identifier which is already bound to a different slot.
var ErrBindingConflict = errors.New("conflicting binding equivalence")

// Builder constructs expressions within a DAG, such that structurally
// identical subexpressions are only ever stored once (i.e. hash-consing).
// Operands of commutative operators are put into a canonical order, and
// subexpressions over constants only are folded away.  A builder is not safe
// for concurrent use.
type Builder struct {
	// Every node built so far, keyed by structure.
	seen *hash.Map[SExpr, SExprRef]
	// Nodes (per arena) used as an operand at least once.
	usedLeaves    bit.Vector
	usedInternals bit.Vector
	// Nodes (per arena) used as an operand more than once.
	reusedLeaves    bit.Vector
	reusedInternals bit.Vector
	// DAG being constructed
	dag *DAG
}

// NewBuilder constructs a builder over a fresh DAG.
func NewBuilder() *Builder {
	return &Builder{seen: hash.NewMap[SExpr, SExprRef](64), dag: NewDAG()}
}

// Dag returns the DAG being constructed by this builder.
func (p *Builder) Dag() *DAG {
	return p.dag
}

// Binding returns the unbound value associated with a given identifier,
// allocating a fresh slot the first time an identifier is seen.
func (p *Builder) Binding(id BindingId) Value {
	if slot, ok := p.dag.Lookup(id); ok {
		return NewUnbound(slot)
	}
	//
	return NewUnbound(p.dag.allocate(id))
}

// AddBindingEquivalence registers alias as denoting the same unbound value as
// existing, and returns that value.  If existing has not been seen before, a
// fresh slot is allocated for it first.  Registering an alias which is already
// bound to the same slot has no effect, whilst an alias already bound to a
// different slot is rejected.
func (p *Builder) AddBindingEquivalence(existing BindingId, alias BindingId) (Value, error) {
	value := p.Binding(existing)
	slot, _ := value.AsUnbound()
	//
	if other, ok := p.dag.Lookup(alias); ok {
		if other != slot {
			return Value{}, fmt.Errorf("%w: %s already bound to $%d (not $%d)", ErrBindingConflict,
				alias, other, slot)
		}
		//
		return value, nil
	}
	//
	p.dag.alias(alias, slot)
	//
	return value, nil
}

// CreateSExpr applies an operator to two operands.  When both are scalar
// constants the result is folded into a scalar.  Otherwise, the result refers
// to the unique node with this operator and (canonically ordered) operands,
// which is created if it did not already exist.  Neither operand may be empty.
func (p *Builder) CreateSExpr(op Operator, lhs Operand, rhs Operand) Operand {
	if lhs.IsEmpty() || rhs.IsEmpty() {
		panic("cannot build subexpression from empty operand")
	}
	// Constant folding
	if val, ok := FoldOperands(op, lhs, rhs); ok {
		return Const(val)
	}
	// Canonicalise commutative operators
	if op.IsCommutative() && lhs.key().compare(rhs.key()) > 0 {
		lhs, rhs = rhs, lhs
	}
	//
	node := SExpr{lhs, rhs, op}
	ref, _ := p.seen.GetOrInsert(node, func() SExprRef {
		return p.insert(node)
	})
	//
	return ref.Operand()
}

// CreateExpr returns an expression rooted at a given operand, or nothing if the
// operand has already been folded into a value.
func (p *Builder) CreateExpr(o Operand) util.Option[Expr] {
	if ref, ok := o.AsRef(); ok {
		return util.Some(Expr{p.dag, ref})
	}
	//
	return util.None[Expr]()
}

// Reuses returns (copies of) the marks identifying which nodes of the leaf and
// internal arenas, respectively, were used as an operand more than once.  Both
// are indexed exactly like their arenas.
func (p *Builder) Reuses() (bit.Vector, bit.Vector) {
	return p.reusedLeaves.Clone(), p.reusedInternals.Clone()
}

// Add a newly constructed node to the DAG, recording the use of any
// subexpressions it refers to.
func (p *Builder) insert(node SExpr) SExprRef {
	p.markUse(node.Lhs)
	p.markUse(node.Rhs)
	//
	ref := p.dag.addSubExpr(node)
	//
	if ref.IsLeaf() {
		p.usedLeaves.Append(false)
		p.reusedLeaves.Append(false)
	} else {
		p.usedInternals.Append(false)
		p.reusedInternals.Append(false)
	}
	//
	return ref
}

func (p *Builder) markUse(o Operand) {
	ref, ok := o.AsRef()
	//
	if !ok {
		return
	}
	//
	used, reused := &p.usedLeaves, &p.reusedLeaves
	//
	if ref.IsInternal() {
		used, reused = &p.usedInternals, &p.reusedInternals
	}
	//
	if used.Get(ref.Index()) {
		reused.Set(ref.Index(), true)
	} else {
		used.Set(ref.Index(), true)
	}
}
