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
	"testing"

	"github.com/consensys/go-exprdag/pkg/util/assert"
)

var (
	lhsScalars     = []Scalar{0, 1, 2, 3, -10, -3, -2, -1}
	rhsScalars     = []Scalar{1, 2, 3, -10, -3, -2, -1}
	commutative    = []Operator{Add, Mul}
	noncommutative = []Operator{Sub, Div, Mod}
)

// ============================================================================
// Primitive subexpressions
// ============================================================================

func Test_Builder_Fold_01(t *testing.T) {
	b := NewBuilder()
	//
	for _, op := range Operators {
		for _, i := range lhsScalars {
			for _, j := range rhsScalars {
				o := b.CreateSExpr(op, Const(i), Const(j))
				//
				assert.True(t, o.IsScalar(), "%d %s %d is not scalar", i, op, j)
				assert.Equal(t, Const(Fold(op, i, j)), o)
			}
		}
	}
	// Nothing was built
	assert.Equal(t, uint(0), b.Dag().NumLeaves()+b.Dag().NumInternals())
}

func Test_Builder_Fold_02(t *testing.T) {
	b := NewBuilder()
	//
	assert.Equal(t, Const(7), b.CreateSExpr(Add, Const(3), Const(4)))
	assert.Equal(t, Const(0), b.CreateSExpr(Div, Const(5), Const(0)))
	assert.Equal(t, Const(0), b.CreateSExpr(Mod, Const(5), Const(0)))
	assert.True(t, b.CreateExpr(Const(7)).IsEmpty())
}

func Test_Builder_Unknown_01(t *testing.T) {
	for _, name := range []string{"a", "b", "c"} {
		for _, op := range Operators {
			for _, i := range lhsScalars {
				b := NewBuilder()
				u := b.Binding(id(name)).Operand()
				//
				check_IsLeaf(t, b.CreateSExpr(op, Const(i), u))
				check_IsLeaf(t, b.CreateSExpr(op, u, Const(i)))
				check_IsLeaf(t, b.CreateSExpr(op, u, u))
			}
		}
	}
}

func Test_Builder_Unknown_02(t *testing.T) {
	var (
		b  = NewBuilder()
		ud = b.Binding(id("d")).Operand()
		ue = b.Binding(id("e")).Operand()
		uf = b.Binding(id("f")).Operand()
	)
	//
	for _, op := range Operators {
		for _, i := range rhsScalars {
			assert.NotEqual(t, b.CreateSExpr(op, Const(i), ud), b.CreateSExpr(op, Const(i), ue))
			assert.NotEqual(t, b.CreateSExpr(op, ud, Const(i)), b.CreateSExpr(op, ue, Const(i)))
		}
		//
		assert.NotEqual(t, b.CreateSExpr(op, ud, uf), b.CreateSExpr(op, ue, uf))
		assert.NotEqual(t, b.CreateSExpr(op, uf, ud), b.CreateSExpr(op, uf, ue))
	}
}

func Test_Builder_Unknown_03(t *testing.T) {
	var (
		b  = NewBuilder()
		ud = b.Binding(id("d")).Operand()
		ue = b.Binding(id("e")).Operand()
	)
	//
	vf, err := b.AddBindingEquivalence(id("e"), id("f"))
	uf := vf.Operand()
	//
	assert.NoError(t, err)
	assert.Equal(t, ue, uf)
	assert.Equal(t, ue, b.Binding(id("f")).Operand())
	//
	for _, op := range Operators {
		for _, i := range rhsScalars {
			assert.Equal(t, b.CreateSExpr(op, Const(i), ue), b.CreateSExpr(op, Const(i), uf))
			assert.Equal(t, b.CreateSExpr(op, ue, Const(i)), b.CreateSExpr(op, uf, Const(i)))
		}
		//
		assert.Equal(t, b.CreateSExpr(op, ud, ue), b.CreateSExpr(op, ud, uf))
		assert.Equal(t, b.CreateSExpr(op, uf, ud), b.CreateSExpr(op, ue, ud))
	}
}

func Test_Builder_Unknown_04(t *testing.T) {
	var (
		b  = NewBuilder()
		ud = b.Binding(id("d")).Operand()
		ue = b.Binding(id("e")).Operand()
	)
	//
	for _, op := range commutative {
		for _, j := range rhsScalars {
			assert.Equal(t, b.CreateSExpr(op, ud, Const(j)), b.CreateSExpr(op, Const(j), ud))
		}
		//
		assert.Equal(t, b.CreateSExpr(op, ue, ud), b.CreateSExpr(op, ud, ue))
	}
	//
	for _, op := range noncommutative {
		for _, j := range rhsScalars {
			assert.NotEqual(t, b.CreateSExpr(op, ud, Const(j)), b.CreateSExpr(op, Const(j), ud))
		}
		//
		assert.NotEqual(t, b.CreateSExpr(op, ue, ud), b.CreateSExpr(op, ud, ue))
	}
}

func Test_Builder_Unknown_05(t *testing.T) {
	var (
		b = NewBuilder()
		x = b.Binding(id("x")).Operand()
		y = b.Binding(id("y")).Operand()
	)
	// x - y and y - x differ, but x + y and y + x do not.
	assert.NotEqual(t, b.CreateSExpr(Sub, x, y), b.CreateSExpr(Sub, y, x))
	assert.Equal(t, b.CreateSExpr(Add, x, y), b.CreateSExpr(Add, y, x))
	// Building the same thing twice gives back the same node
	assert.Equal(t, b.CreateSExpr(Sub, x, y), b.CreateSExpr(Sub, x, y))
	assert.Equal(t, uint(3), b.Dag().NumLeaves())
}

// ============================================================================
// Bindings
// ============================================================================

func Test_Builder_Binding_01(t *testing.T) {
	b := NewBuilder()
	// Idempotent
	assert.Equal(t, b.Binding(id("x")), b.Binding(id("x")))
	assert.NotEqual(t, b.Binding(id("x")), b.Binding(id("y")))
	assert.Equal(t, uint(2), b.Dag().NumBindings())
}

func Test_Builder_Binding_02(t *testing.T) {
	b := NewBuilder()
	// Existing identifier not seen before is allocated on demand
	v, err := b.AddBindingEquivalence(id("p"), id("q"))
	assert.NoError(t, err)
	assert.Equal(t, v, b.Binding(id("p")))
	assert.Equal(t, v, b.Binding(id("q")))
	assert.Equal(t, uint(1), b.Dag().NumBindings())
	// Registering the same equivalence again is harmless
	w, err := b.AddBindingEquivalence(id("q"), id("p"))
	assert.NoError(t, err)
	assert.Equal(t, v, w)
}

func Test_Builder_Binding_03(t *testing.T) {
	b := NewBuilder()
	b.Binding(id("p"))
	b.Binding(id("q"))
	// Cannot merge two distinct slots
	_, err := b.AddBindingEquivalence(id("p"), id("q"))
	assert.ErrorIs(t, err, ErrBindingConflict)
	assert.NotEqual(t, b.Binding(id("p")), b.Binding(id("q")))
}

// ============================================================================
// Complex expressions
// ============================================================================

// Fixture of subexpressions over unknowns x, y and z.
type complexFixture struct {
	builder *Builder
	// Unknowns
	unknowns []Operand
	// Subexpressions x+1, x-y, y*2, z/3
	subexprs []Operand
	// Subexpression z%x, which is distinct from all others
	zModX Operand
}

func newComplexFixture() complexFixture {
	var (
		b  = NewBuilder()
		ux = b.Binding(id("x")).Operand()
		uy = b.Binding(id("y")).Operand()
		uz = b.Binding(id("z")).Operand()
	)
	//
	return complexFixture{
		builder:  b,
		unknowns: []Operand{ux, uy, uz},
		subexprs: []Operand{
			b.CreateSExpr(Add, ux, Const(1)),
			b.CreateSExpr(Sub, ux, uy),
			b.CreateSExpr(Mul, uy, Const(2)),
			b.CreateSExpr(Div, uz, Const(3)),
		},
		zModX: b.CreateSExpr(Mod, uz, ux),
	}
}

func Test_Builder_Complex_01(t *testing.T) {
	f := newComplexFixture()
	b := f.builder
	//
	for _, sub := range f.subexprs {
		for _, op := range Operators {
			for _, i := range rhsScalars {
				check_IsInternal(t, b.CreateSExpr(op, sub, Const(i)))
				check_IsInternal(t, b.CreateSExpr(op, Const(i), sub))
			}
			//
			for _, u := range f.unknowns {
				check_IsLeaf(t, b.CreateSExpr(op, sub, u))
				check_IsLeaf(t, b.CreateSExpr(op, u, sub))
			}
			//
			check_IsInternal(t, b.CreateSExpr(op, sub, f.subexprs[0]))
			check_IsInternal(t, b.CreateSExpr(op, f.zModX, sub))
		}
	}
}

func Test_Builder_Complex_02(t *testing.T) {
	f := newComplexFixture()
	b := f.builder
	//
	for _, sub := range f.subexprs {
		for _, op := range Operators {
			same := fetch(t, b, b.CreateSExpr(op, sub, sub))
			assert.Equal(t, same.Lhs, same.Rhs)
			//
			distinct1 := fetch(t, b, b.CreateSExpr(op, sub, f.zModX))
			assert.NotEqual(t, distinct1.Lhs, distinct1.Rhs)
			//
			distinct2 := fetch(t, b, b.CreateSExpr(op, f.zModX, sub))
			assert.NotEqual(t, distinct2.Lhs, distinct2.Rhs)
		}
	}
}

func Test_Builder_Complex_03(t *testing.T) {
	f := newComplexFixture()
	b := f.builder
	//
	for _, sub := range f.subexprs {
		for _, op := range commutative {
			for _, i := range rhsScalars {
				assert.Equal(t, b.CreateSExpr(op, sub, Const(i)), b.CreateSExpr(op, Const(i), sub))
			}
			//
			for _, u := range f.unknowns {
				assert.Equal(t, b.CreateSExpr(op, sub, u), b.CreateSExpr(op, u, sub))
			}
			//
			assert.Equal(t, b.CreateSExpr(op, sub, f.zModX), b.CreateSExpr(op, f.zModX, sub))
		}
		//
		for _, op := range noncommutative {
			for _, i := range rhsScalars {
				assert.NotEqual(t, b.CreateSExpr(op, sub, Const(i)), b.CreateSExpr(op, Const(i), sub))
			}
			//
			for _, u := range f.unknowns {
				assert.NotEqual(t, b.CreateSExpr(op, sub, u), b.CreateSExpr(op, u, sub))
			}
			//
			assert.NotEqual(t, b.CreateSExpr(op, sub, f.zModX), b.CreateSExpr(op, f.zModX, sub))
		}
	}
}

// ============================================================================
// Reuse tracking
// ============================================================================

func Test_Builder_Reuse_01(t *testing.T) {
	var (
		b   = NewBuilder()
		x   = b.Binding(id("x")).Operand()
		s1  = b.CreateSExpr(Add, x, Const(1))
		s11 = b.CreateSExpr(Mul, s1, s1)
	)
	//
	leaves, internals := b.Reuses()
	// Marks are sized like the arenas
	assert.Equal(t, b.Dag().NumLeaves(), leaves.Len())
	assert.Equal(t, b.Dag().NumInternals(), internals.Len())
	// s1 is used twice (by the same parent), s11 not at all.
	assert.True(t, leaves.Get(asRef(t, s1).Index()))
	assert.False(t, internals.Get(asRef(t, s11).Index()))
	assert.Equal(t, uint(1), leaves.Count()+internals.Count())
}

func Test_Builder_Reuse_02(t *testing.T) {
	var (
		b  = NewBuilder()
		x  = b.Binding(id("x")).Operand()
		y  = b.Binding(id("y")).Operand()
		s1 = b.CreateSExpr(Add, x, y)
		s2 = b.CreateSExpr(Mul, s1, Const(2))
	)
	// Rebuilding an existing parent does not count as another use.
	b.CreateSExpr(Mul, Const(2), s1)
	//
	leaves, _ := b.Reuses()
	assert.False(t, leaves.Get(asRef(t, s1).Index()))
	// A second distinct parent does.
	b.CreateSExpr(Sub, s1, s2)
	//
	leaves, internals := b.Reuses()
	assert.True(t, leaves.Get(asRef(t, s1).Index()))
	assert.False(t, internals.Get(asRef(t, s2).Index()))
}

func Test_Builder_Reuse_03(t *testing.T) {
	b := NewBuilder()
	x := b.Binding(id("x")).Operand()
	b.CreateSExpr(Add, x, Const(1))
	// Marks are copies
	leaves, _ := b.Reuses()
	leaves.Set(0, true)
	//
	again, _ := b.Reuses()
	assert.False(t, again.Get(0))
}

func Test_Builder_Empty_01(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for empty operand")
		}
	}()
	//
	NewBuilder().CreateSExpr(Add, Operand{}, Const(1))
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_IsLeaf(t *testing.T, o Operand) {
	t.Helper()
	//
	ref, ok := o.AsRef()
	assert.True(t, ok && ref.IsLeaf(), "expected leaf reference, got %s", o.String())
}

func check_IsInternal(t *testing.T, o Operand) {
	t.Helper()
	//
	ref, ok := o.AsRef()
	assert.True(t, ok && ref.IsInternal(), "expected internal reference, got %s", o.String())
}

func fetch(t *testing.T, b *Builder, o Operand) SExpr {
	node, err := b.Dag().Fetch(asRef(t, o))
	assert.NoError(t, err)
	//
	return node
}
