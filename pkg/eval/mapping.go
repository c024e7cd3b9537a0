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
// Package eval evaluates expressions built by an expression builder against
// runtime bindings for their unbound values.  An expression is compiled once
// into a linear sequence of operations, which is then executed by a stack
// machine any number of times.  Subexpressions shared by multiple parents can
// be memoised, such that they are computed at most once per evaluation
// session.
package eval

import (
	"fmt"

	"github.com/consensys/go-exprdag/pkg/expr"
	"github.com/consensys/go-exprdag/pkg/util/collection/bit"
	log "github.com/sirupsen/logrus"
)

// ReuseMapping assigns memo slots to those subexpressions which are worth
// memoising.  Leaf arena nodes and internal arena nodes are mapped from a
// single address space, where internal node i has address i + LeafCount().  A
// mapping is immutable once constructed, and can be shared freely between
// goroutines.
type ReuseMapping struct {
	// Maps addresses to their slot plus one, or zero if no slot assigned.
	slots []uint
	// Number of addresses reserved for leaf nodes.
	leafCount uint
	// Number of memo slots assigned.
	size uint
}

// NewEagerMapping constructs a mapping which memoises nothing, meaning shared
// subexpressions are recomputed every time they are encountered.
func NewEagerMapping() *ReuseMapping {
	return &ReuseMapping{}
}

// NewLazyMapping constructs a mapping which assigns a memo slot to every node
// marked as reused, given the marks for the leaf and internal arenas
// respectively (see Builder.Reuses).
func NewLazyMapping(leaves bit.Vector, internals bit.Vector) *ReuseMapping {
	var (
		addend = leaves.Len()
		slots  = make([]uint, leaves.Len()+internals.Len())
		size   uint
	)
	//
	for i := range leaves.Len() {
		if leaves.Get(i) {
			size++
			slots[i] = size
		}
	}
	// Map with addend of number of leaf nodes
	for i := range internals.Len() {
		if internals.Get(i) {
			size++
			slots[i+addend] = size
		}
	}
	//
	log.Debugf("lazy mapping assigned %d memo slot(s) across %d node(s)", size, len(slots))
	//
	return &ReuseMapping{slots, addend, size}
}

// Slot returns the memo slot assigned to a given subexpression, if any.
func (p *ReuseMapping) Slot(ref expr.SExprRef) (uint, bool) {
	address := ref.Index()
	//
	if ref.IsInternal() {
		address += p.leafCount
	} else if address >= p.leafCount {
		// leaf created after this mapping
		return 0, false
	}
	//
	if address >= uint(len(p.slots)) || p.slots[address] == 0 {
		return 0, false
	}
	//
	return p.slots[address] - 1, true
}

// Size returns the number of memo slots assigned by this mapping.
func (p *ReuseMapping) Size() uint {
	return p.size
}

// IsEmpty checks whether this mapping memoises nothing.
func (p *ReuseMapping) IsEmpty() bool {
	return p.size == 0
}

// LeafCount returns the number of addresses reserved for leaf arena nodes,
// which is the offset applied to internal arena nodes.
func (p *ReuseMapping) LeafCount() uint {
	return p.leafCount
}

func (p *ReuseMapping) String() string {
	return fmt.Sprintf("{slots=%d, leaves=%d, nodes=%d}", p.size, p.leafCount, len(p.slots))
}
