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
package bit

import (
	"fmt"
	"slices"
	"strings"
)

// Vector is a growable sequence of bits with an explicit length.  Unlike a
// set, a vector knows how many bits it holds (including trailing false bits),
// which allows it to be indexed in lock step with some other array.
type Vector struct {
	words []uint64
	n     uint
}

// NewVector constructs a vector holding n false bits.
func NewVector(n uint) Vector {
	return Vector{make([]uint64, (n+63)/64), n}
}

// Clone returns a copy of this vector which shares no storage with it.
func (p *Vector) Clone() Vector {
	return Vector{slices.Clone(p.words), p.n}
}

// Len returns the number of bits in this vector.
func (p *Vector) Len() uint {
	return p.n
}

// Append a single bit onto the end of this vector.
func (p *Vector) Append(val bool) {
	if p.n%64 == 0 {
		p.words = append(p.words, 0)
	}
	//
	p.n++
	p.Set(p.n-1, val)
}

// Set the bit at a given index, which must be within bounds.
func (p *Vector) Set(index uint, val bool) {
	p.checkBounds(index)
	//
	mask := uint64(1) << (index % 64)
	//
	if val {
		p.words[index/64] |= mask
	} else {
		p.words[index/64] &^= mask
	}
}

// Get the bit at a given index, which must be within bounds.
func (p *Vector) Get(index uint) bool {
	p.checkBounds(index)
	//
	mask := uint64(1) << (index % 64)
	//
	return p.words[index/64]&mask != 0
}

// Count returns the number of bits which are set.
func (p *Vector) Count() uint {
	count := uint(0)
	//
	for _, bits := range p.words {
		for bits != 0 {
			// clear lowest set bit
			bits &= bits - 1
			count++
		}
	}
	//
	return count
}

func (p *Vector) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i := uint(0); i < p.n; i++ {
		if p.Get(i) {
			builder.WriteString("1")
		} else {
			builder.WriteString("0")
		}
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

func (p *Vector) checkBounds(index uint) {
	if index >= p.n {
		panic(fmt.Sprintf("bit index %d out-of-bounds (length %d)", index, p.n))
	}
}
