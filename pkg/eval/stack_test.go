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
)

func Test_EvalStack_01(t *testing.T) {
	s := NewStack()
	//
	assert.True(t, s.IsEmpty())
	assert.Equal(t, uint(0), s.Len())
	// push(1)
	s.Push(1)
	assert.Equal(t, expr.Scalar(1), s.Top())
	assert.Equal(t, uint(1), s.Len())
	assert.False(t, s.IsEmpty())
}

func Test_EvalStack_02(t *testing.T) {
	s := NewStack()
	s.Push(2)
	s.Push(3)
	assert.Equal(t, uint(2), s.Len())
	assert.Equal(t, expr.Scalar(3), s.Top())
	// pop_top()
	val := s.PopTop()
	assert.Equal(t, expr.Scalar(3), val)
	assert.Equal(t, uint(1), s.Len())
	assert.Equal(t, expr.Scalar(2), s.Top())
	// push(3), drop(1)
	s.Push(3)
	s.Drop(1)
	assert.Equal(t, uint(1), s.Len())
	assert.Equal(t, expr.Scalar(2), s.Top())
	// pop()
	s.Pop()
	assert.True(t, s.IsEmpty())
}

func Test_EvalStack_03(t *testing.T) {
	var (
		s     = NewStack()
		calls = 0
		gaps  = []BindingGap{{0, 23}, {2, 24}}
	)
	//
	s.PushGap()
	s.Push(7)
	s.PushGap()
	assert.Equal(t, GapValue, s.Get(0))
	assert.Equal(t, GapValue, s.Top())
	//
	s.FillGaps(gaps, func(id expr.BindingId) expr.Scalar {
		calls++
		return expr.Scalar(id) * 10
	})
	//
	assert.Equal(t, 2, calls)
	assert.Equal(t, expr.Scalar(230), s.Get(0))
	assert.Equal(t, expr.Scalar(7), s.Get(1))
	assert.Equal(t, expr.Scalar(240), s.Get(2))
	// Cannot fill the same gap twice
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic refilling gap")
		}
	}()
	//
	s.FillGaps(gaps, func(expr.BindingId) expr.Scalar { return 0 })
}

func Test_EvalStack_04(t *testing.T) {
	s := NewStack()
	s.PushGap()
	// Clones are independent
	c := s.Clone()
	c.FillGaps([]BindingGap{{0, 1}}, func(expr.BindingId) expr.Scalar { return 5 })
	//
	assert.Equal(t, GapValue, s.Top())
	assert.Equal(t, expr.Scalar(5), c.Top())
}
