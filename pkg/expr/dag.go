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
	"strings"
)

// ErrInvalidRef is reported when fetching a subexpression via a reference
// which was not issued by the DAG in question.
var ErrInvalidRef = errors.New("invalid subexpression reference")

// ErrInvalidSlot is reported when looking up an unbound slot which was not
// allocated by the DAG in question.
var ErrInvalidSlot = errors.New("invalid unbound slot")

// DAG is the sole owner of all subexpressions built by an expression builder,
// along with the table binding identifiers to unbound slots.  Subexpressions
// are split across two append-only arenas (leaf and internal), such that
// references into either remain valid for the lifetime of the DAG.
//
// A DAG is mutated only by its builder.  Once the builder is no longer in use,
// the DAG can be read safely from any number of goroutines.
type DAG struct {
	// Maps binding identifiers to their unbound slot.
	unboundLookup map[BindingId]UnboundValue
	// Maps unbound slots to the identifier which allocated them.
	unboundValues []BindingId
	// Nodes with at least one unbound value as a direct operand.
	leaves []SExpr
	// All other nodes.
	internals []SExpr
}

// NewDAG constructs an empty DAG.
func NewDAG() *DAG {
	return &DAG{unboundLookup: make(map[BindingId]UnboundValue)}
}

// NumLeaves returns the number of nodes in the leaf arena.
func (p *DAG) NumLeaves() uint {
	return uint(len(p.leaves))
}

// NumInternals returns the number of nodes in the internal arena.
func (p *DAG) NumInternals() uint {
	return uint(len(p.internals))
}

// NumBindings returns the number of unbound slots allocated.
func (p *DAG) NumBindings() uint {
	return uint(len(p.unboundValues))
}

// Fetch the node identified by a given reference.
func (p *DAG) Fetch(ref SExprRef) (SExpr, error) {
	var nodes = p.leaves
	//
	if ref.IsInternal() {
		nodes = p.internals
	}
	//
	if ref.Index() >= uint(len(nodes)) {
		return SExpr{}, fmt.Errorf("%w: %s", ErrInvalidRef, ref.String())
	}
	//
	return nodes[ref.Index()], nil
}

// FetchLeaf returns the node at a given index of the leaf arena.
func (p *DAG) FetchLeaf(ref LeafRef) (SExpr, error) {
	return p.Fetch(ref.Ref())
}

// FetchInternal returns the node at a given index of the internal arena.
func (p *DAG) FetchInternal(ref InternalRef) (SExpr, error) {
	return p.Fetch(ref.Ref())
}

// Binding returns the identifier which allocated a given unbound slot.
func (p *DAG) Binding(slot UnboundValue) (BindingId, error) {
	if uint(slot) >= uint(len(p.unboundValues)) {
		return 0, fmt.Errorf("%w: $%d", ErrInvalidSlot, slot)
	}
	//
	return p.unboundValues[slot], nil
}

// Lookup returns the unbound slot associated with a given identifier, if
// there is one.
func (p *DAG) Lookup(id BindingId) (UnboundValue, bool) {
	slot, ok := p.unboundLookup[id]
	return slot, ok
}

// Append a node onto the arena determined by its operands, returning its
// reference.  This does not check whether the node already exists.
func (p *DAG) addSubExpr(e SExpr) SExprRef {
	if e.IsLeaf() {
		p.leaves = append(p.leaves, e)
		return LeafRef(len(p.leaves) - 1).Ref()
	}
	//
	p.internals = append(p.internals, e)
	//
	return InternalRef(len(p.internals) - 1).Ref()
}

// Allocate a fresh unbound slot for a given identifier.
func (p *DAG) allocate(id BindingId) UnboundValue {
	slot := UnboundValue(len(p.unboundValues))
	p.unboundValues = append(p.unboundValues, id)
	p.unboundLookup[id] = slot
	//
	return slot
}

// Associate an identifier with an existing unbound slot.
func (p *DAG) alias(id BindingId, slot UnboundValue) {
	p.unboundLookup[id] = slot
}

// ============================================================================
// Expr
// ============================================================================

// Expr is a view of a DAG from a given root subexpression.  An Expr does not
// own any nodes, and must not be used after its DAG is discarded.
type Expr struct {
	dag  *DAG
	root SExprRef
}

// NewExpr constructs a view of a DAG rooted at a given subexpression.
func NewExpr(dag *DAG, root SExprRef) (Expr, error) {
	if _, err := dag.Fetch(root); err != nil {
		return Expr{}, err
	}
	//
	return Expr{dag, root}, nil
}

// Dag returns the DAG on which this expression is defined.
func (e Expr) Dag() *DAG {
	return e.dag
}

// Root returns the root subexpression of this expression.
func (e Expr) Root() SExprRef {
	return e.root
}

// String returns this expression in fully parenthesised infix form, where
// unbound values are labelled by their binding identifiers in base26.  Shared
// subexpressions are printed once for every occurrence.
func (e Expr) String() string {
	var builder strings.Builder
	//
	e.writeOperand(&builder, e.root.Operand())
	//
	return builder.String()
}

func (e Expr) writeOperand(builder *strings.Builder, o Operand) {
	if ref, ok := o.AsRef(); ok {
		node, err := e.dag.Fetch(ref)
		if err != nil {
			builder.WriteString("<invalid>")
			return
		}
		//
		builder.WriteString("(")
		e.writeOperand(builder, node.Lhs)
		builder.WriteString(" ")
		builder.WriteString(node.Op.String())
		builder.WriteString(" ")
		e.writeOperand(builder, node.Rhs)
		builder.WriteString(")")
	} else if slot, ok := o.AsUnbound(); ok {
		if id, err := e.dag.Binding(slot); err == nil {
			builder.WriteString(id.String())
		} else {
			builder.WriteString(o.String())
		}
	} else {
		builder.WriteString(o.String())
	}
}
