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
package stack

import (
	"testing"

	"github.com/consensys/go-exprdag/pkg/util/assert"
)

func Test_Stack_01(t *testing.T) {
	s := NewStack[int]()
	//
	assert.True(t, s.IsEmpty())
	assert.Equal(t, uint(0), s.Len())
}

func Test_Stack_02(t *testing.T) {
	s := NewStack[int]()
	s.Push(2)
	s.Push(3)
	//
	assert.Equal(t, 3, s.Top())
	assert.Equal(t, uint(2), s.Len())
	assert.Equal(t, 3, s.Pop())
	assert.Equal(t, 2, s.Top())
	assert.Equal(t, uint(1), s.Len())
}

func Test_Stack_03(t *testing.T) {
	s := NewStack[int]()
	s.PushAll([]int{1, 2, 3, 4})
	s.Drop(2)
	//
	assert.Equal(t, uint(2), s.Len())
	assert.Equal(t, 2, s.Top())
	assert.Equal(t, 1, s.Peek(1))
	s.Drop(2)
	assert.True(t, s.IsEmpty())
}

func Test_Stack_04(t *testing.T) {
	s := NewStackWithCapacity[int](4)
	s.PushAll([]int{1, 2, 3})
	s.Set(0, 10)
	//
	assert.Equal(t, 10, s.Get(0))
	assert.Equal(t, 3, s.Top())
	// Clones are independent
	c := s.Clone()
	c.Set(2, 30)
	assert.Equal(t, 3, s.Top())
	assert.Equal(t, 30, c.Top())
}

func Test_Stack_05(t *testing.T) {
	s := NewStack[int]()
	s.PushAll([]int{7, 8, 9})
	s.Reset([]int{1})
	//
	assert.Equal(t, uint(1), s.Len())
	assert.Equal(t, 1, s.Pop())
}

func Test_Stack_06(t *testing.T) {
	check_StackPanics(t, func(s *Stack[int]) { s.Pop() })
	check_StackPanics(t, func(s *Stack[int]) { s.Drop(1) })
	check_StackPanics(t, func(s *Stack[int]) { s.Get(0) })
	check_StackPanics(t, func(s *Stack[int]) { s.Top() })
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_StackPanics(t *testing.T, fn func(*Stack[int])) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on empty stack")
		}
	}()
	//
	fn(NewStack[int]())
}
