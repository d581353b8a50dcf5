package linalg

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestIdentity(t *testing.T) {
	id := Identity(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if id.At(i, j) != want {
				t.Errorf("Identity(4)[%d][%d] = %v, want %v", i, j, id.At(i, j), want)
			}
		}
	}
	if !id.IsPermutation() {
		t.Error("identity should be a permutation matrix")
	}
	if !id.IsUnitary(0) {
		t.Error("identity should be unitary")
	}
}

func TestMulIdentity(t *testing.T) {
	m, err := FromRows([][]complex128{
		{1, 2i},
		{3, 4},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	prod, err := m.Mul(Identity(2))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !prod.Equal(m, 0) {
		t.Errorf("M*I != M: got %v", prod.Data)
	}
}

func TestMulDimensionMismatch(t *testing.T) {
	a := New(2, 3)
	b := New(2, 3)
	if _, err := a.Mul(b); err == nil {
		t.Error("expected dimension mismatch error for 2x3 * 2x3")
	}
	if _, err := a.MatVec([]complex128{1, 2}); err == nil {
		t.Error("expected dimension mismatch error for 2x3 * vec(2)")
	}
}

func TestMatVec(t *testing.T) {
	// Pauli X swaps basis amplitudes.
	x, err := FromRows([][]complex128{
		{0, 1},
		{1, 0},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	out, err := x.MatVec([]complex128{3, 7i})
	if err != nil {
		t.Fatalf("MatVec: %v", err)
	}
	if out[0] != 7i || out[1] != 3 {
		t.Errorf("X * (3, 7i) = %v, want (7i, 3)", out)
	}
}

func TestKronDimensions(t *testing.T) {
	a := New(2, 3)
	b := New(4, 5)
	k := Kron(a, b)
	if k.Rows != 8 || k.Cols != 15 {
		t.Errorf("Kron(2x3, 4x5) has dims %dx%d, want 8x15", k.Rows, k.Cols)
	}
}

func TestKronBlocks(t *testing.T) {
	// |0><0| ⊗ B places B in the top-left block and zeros elsewhere.
	p0 := New(2, 2)
	p0.Set(0, 0, 1)
	b, err := FromRows([][]complex128{
		{1, 2},
		{3, 4},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	k := Kron(p0, b)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if k.At(i, j) != b.At(i, j) {
				t.Errorf("top-left block [%d][%d] = %v, want %v", i, j, k.At(i, j), b.At(i, j))
			}
			if k.At(i+2, j+2) != 0 {
				t.Errorf("bottom-right block [%d][%d] = %v, want 0", i, j, k.At(i+2, j+2))
			}
		}
	}
}

func TestKronOfIdentities(t *testing.T) {
	k := Kron(Identity(2), Identity(3))
	if !k.Equal(Identity(6), 0) {
		t.Error("I2 ⊗ I3 != I6")
	}
}

func TestDaggerHadamard(t *testing.T) {
	h := hadamard(t)
	if !h.IsUnitary(0) {
		t.Error("Hadamard should be unitary")
	}
	// Hadamard is real and symmetric, so H† = H and H*H = I.
	if !h.Dagger().Equal(h, 0) {
		t.Error("H† != H")
	}
	prod, err := h.Mul(h)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !prod.Equal(Identity(2), 1e-12) {
		t.Error("H*H != I")
	}
}

func TestDaggerConjugates(t *testing.T) {
	m := New(1, 2)
	m.Set(0, 0, 1+2i)
	m.Set(0, 1, 3-4i)

	d := m.Dagger()
	if d.Rows != 2 || d.Cols != 1 {
		t.Fatalf("Dagger of 1x2 has dims %dx%d, want 2x1", d.Rows, d.Cols)
	}
	if d.At(0, 0) != 1-2i || d.At(1, 0) != 3+4i {
		t.Errorf("Dagger = (%v, %v), want (1-2i, 3+4i)", d.At(0, 0), d.At(1, 0))
	}
}

func TestIsPermutationRejects(t *testing.T) {
	tests := []struct {
		name string
		rows [][]complex128
	}{
		{"doubled row", [][]complex128{
			{1, 1},
			{0, 0},
		}},
		{"doubled column", [][]complex128{
			{1, 0},
			{1, 0},
		}},
		{"non-binary entry", [][]complex128{
			{0.5, 0.5},
			{0.5, 0.5},
		}},
		{"complex entry", [][]complex128{
			{1i, 0},
			{0, 1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromRows(tt.rows)
			if err != nil {
				t.Fatalf("FromRows: %v", err)
			}
			if m.IsPermutation() {
				t.Error("IsPermutation accepted a non-permutation matrix")
			}
		})
	}
}

func TestIsUnitaryRejectsNonUnitary(t *testing.T) {
	m, err := FromRows([][]complex128{
		{1, 1},
		{0, 1},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if m.IsUnitary(1e-9) {
		t.Error("shear matrix reported as unitary")
	}
}

func TestNorm2(t *testing.T) {
	v := []complex128{3, 4i}
	if got := Norm2(v); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm2(3, 4i) = %v, want 5", got)
	}
}

func TestScaleAndAdd(t *testing.T) {
	a := Identity(2)
	sum, err := a.Scale(2).Add(a)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.At(0, 0) != 3 || sum.At(1, 1) != 3 || sum.At(0, 1) != 0 {
		t.Errorf("2I + I = %v, want 3I", sum.Data)
	}
}

// hadamard builds the 2x2 Hadamard matrix for tests.
func hadamard(t *testing.T) *Matrix {
	t.Helper()
	s := complex(1/math.Sqrt2, 0)
	m, err := FromRows([][]complex128{
		{s, s},
		{s, -s},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return m
}

func TestMaxAbsDiff(t *testing.T) {
	a := Identity(2)
	b := Identity(2)
	b.Set(0, 1, 1i)

	d, err := a.MaxAbsDiff(b)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if math.Abs(d-1) > 1e-12 {
		t.Errorf("MaxAbsDiff = %v, want 1", d)
	}
	if cmplx.Abs(complex(d, 0)) == 0 {
		t.Error("expected nonzero difference")
	}
}
