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

	"github.com/consensys/go-exprdag/pkg/expr"
	"github.com/consensys/go-exprdag/pkg/util"
)

// ErrSlotFilled is reported when storing into a memo slot which already holds
// a value.  This indicates a logic error, rather than a recoverable condition.
var ErrSlotFilled = errors.New("memo slot already filled")

// ErrInvalidMemoSlot is reported when accessing a memo slot outside the range
// of the mapping in use.
var ErrInvalidMemoSlot = errors.New("invalid memo slot")

// State holds the memoised values for one evaluation session.  A state must
// not be used by more than one evaluation concurrently, though independent
// states over the same mapping can be used in parallel.
type State struct {
	memo    []util.Option[expr.Scalar]
	mapping *ReuseMapping
	// Number of subexpressions served from the memo.
	hits uint
}

// NewState constructs an empty session for a given mapping.
func NewState(mapping *ReuseMapping) *State {
	return &State{make([]util.Option[expr.Scalar], mapping.Size()), mapping, 0}
}

// Clone returns an independent copy of this state, including any values
// memoised so far.
func (p *State) Clone() *State {
	memo := make([]util.Option[expr.Scalar], len(p.memo))
	copy(memo, p.memo)
	//
	return &State{memo, p.mapping, p.hits}
}

// Mapping returns the mapping used by this state.
func (p *State) Mapping() *ReuseMapping {
	return p.mapping
}

// Slot returns the memo slot for a given subexpression, if it has one.
func (p *State) Slot(ref expr.SExprRef) (uint, bool) {
	return p.mapping.Slot(ref)
}

// Load returns the value memoised in a given slot, if any.
func (p *State) Load(slot uint) util.Option[expr.Scalar] {
	if slot >= uint(len(p.memo)) {
		return util.None[expr.Scalar]()
	}
	//
	return p.memo[slot]
}

// Store a value into a given (empty) slot.
func (p *State) Store(slot uint, val expr.Scalar) error {
	if slot >= uint(len(p.memo)) {
		return fmt.Errorf("%w: %d (of %d)", ErrInvalidMemoSlot, slot, len(p.memo))
	} else if p.memo[slot].HasValue() {
		return fmt.Errorf("%w: %d", ErrSlotFilled, slot)
	}
	//
	p.memo[slot] = util.Some(val)
	//
	return nil
}

// Hits returns the number of subexpressions served from the memo since this
// state was created or last cleared.
func (p *State) Hits() uint {
	return p.hits
}

// Clear forgets all memoised values, such that the state can be reused for a
// fresh evaluation pass.
func (p *State) Clear() {
	clear(p.memo)
	p.hits = 0
}
