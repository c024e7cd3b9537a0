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
package hash

// Hasher provides a generic definition of a hashing function suitable for use
// within the hashmap.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

// FNV1a parameters
const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// Combiner accumulates a hashcode from a sequence of words using FNV1a, one
// byte at a time.  The zero value is not ready for use; see NewCombiner.
type Combiner struct {
	hash uint64
}

// NewCombiner constructs a combiner in its initial state.
func NewCombiner() Combiner {
	return Combiner{offset64}
}

// Add folds a word into the hashcode being accumulated.
func (p *Combiner) Add(word uint64) *Combiner {
	for i := 0; i < 8; i++ {
		p.hash ^= word & 0xff
		p.hash *= prime64
		word >>= 8
	}
	//
	return p
}

// Sum returns the accumulated hashcode.
func (p *Combiner) Sum() uint64 {
	return p.hash
}
