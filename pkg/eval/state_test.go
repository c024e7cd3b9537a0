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
	"testing"

	"github.com/consensys/go-exprdag/pkg/expr"
	"github.com/consensys/go-exprdag/pkg/util/assert"
	"github.com/consensys/go-exprdag/pkg/util/collection/bit"
)

func Test_State_01(t *testing.T) {
	s := NewState(NewEagerMapping())
	//
	assert.True(t, s.Load(0).IsEmpty())
	assert.ErrorIs(t, s.Store(0, 1), ErrInvalidMemoSlot)
}

func Test_State_02(t *testing.T) {
	s := NewState(newTestMapping(2))
	//
	assert.NoError(t, s.Store(1, 42))
	assert.Equal(t, expr.Scalar(42), s.Load(1).Unwrap())
	assert.True(t, s.Load(0).IsEmpty())
	// Already filled
	assert.ErrorIs(t, s.Store(1, 43), ErrSlotFilled)
	assert.Equal(t, expr.Scalar(42), s.Load(1).Unwrap())
}

func Test_State_03(t *testing.T) {
	s := NewState(newTestMapping(2))
	assert.NoError(t, s.Store(0, 1))
	// Clones are independent
	c := s.Clone()
	assert.NoError(t, c.Store(1, 2))
	assert.True(t, s.Load(1).IsEmpty())
	// Clearing forgets everything
	s.Clear()
	assert.True(t, s.Load(0).IsEmpty())
	assert.Equal(t, uint(0), s.Hits())
	assert.NoError(t, s.Store(0, 5))
	assert.Equal(t, expr.Scalar(1), c.Load(0).Unwrap())
}

// ===================================================================
// Test Helpers
// ===================================================================

// Construct a mapping over n reused internal nodes.
func newTestMapping(n uint) *ReuseMapping {
	internals := bit.NewVector(n)
	//
	for i := range n {
		internals.Set(i, true)
	}
	//
	return NewLazyMapping(bit.Vector{}, internals)
}
