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
	"fmt"
	"slices"
)

// Stack represents a reusable LIFO stack which is implemented using an array.
// Items are indexed from the bottom of the stack, such that index 0 is the
// first item pushed and index Len()-1 is the top.
type Stack[T any] struct {
	items []T
}

// NewStack returns an empty stack
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// NewStackWithCapacity returns an empty stack whose backing array is
// preallocated to hold n items.
func NewStackWithCapacity[T any](n uint) *Stack[T] {
	return &Stack[T]{make([]T, 0, n)}
}

// Clone returns a copy of this stack which shares no storage with it.
func (p *Stack[T]) Clone() *Stack[T] {
	return &Stack[T]{slices.Clone(p.items)}
}

// IsEmpty checks whether or not the stack is empty.
func (p *Stack[T]) IsEmpty() bool {
	return p.Len() == 0
}

// Len returns the number of items on the stack.
func (p *Stack[T]) Len() uint {
	return uint(len(p.items))
}

// Peek returns the item at a given offset from the top of the stack.  Thus,
// Peek(0) is the top item.
func (p *Stack[T]) Peek(offset uint) T {
	var n = len(p.items) - int(offset) - 1
	//
	if n < 0 {
		panic("peek out-of-bounds")
	}
	//
	return p.items[n]
}

// Top returns the top item of the stack without removing it.
func (p *Stack[T]) Top() T {
	return p.Peek(0)
}

// Get returns the item at a given index counted from the bottom of the stack.
func (p *Stack[T]) Get(index uint) T {
	if index >= p.Len() {
		panic(fmt.Sprintf("stack index %d out-of-bounds (size %d)", index, p.Len()))
	}
	//
	return p.items[index]
}

// Set overwrites the item at a given index counted from the bottom of the
// stack.
func (p *Stack[T]) Set(index uint, item T) {
	if index >= p.Len() {
		panic(fmt.Sprintf("stack index %d out-of-bounds (size %d)", index, p.Len()))
	}
	//
	p.items[index] = item
}

// Push a new item onto the stack
func (p *Stack[T]) Push(item T) {
	p.items = append(p.items, item)
}

// PushAll pushes zero or more items onto the stack
func (p *Stack[T]) PushAll(item []T) {
	p.items = append(p.items, item...)
}

// Pop the last item off the stack
func (p *Stack[T]) Pop() T {
	var n = len(p.items)
	//
	if n == 0 {
		panic("cannot pop from empty stack")
	}
	// Get last item
	item := p.items[n-1]
	// Remove last item
	p.items = p.items[:n-1]
	// Done
	return item
}

// Drop removes the top n items from the stack without inspecting them.
func (p *Stack[T]) Drop(n uint) {
	if n > p.Len() {
		panic(fmt.Sprintf("cannot drop %d items from stack of size %d", n, p.Len()))
	}
	//
	p.items = p.items[:p.Len()-n]
}

// Reset replaces the contents of this stack with a copy of the given items,
// reusing the existing backing array where possible.
func (p *Stack[T]) Reset(items []T) {
	p.items = append(p.items[:0], items...)
}
