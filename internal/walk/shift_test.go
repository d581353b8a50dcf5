package walk

import (
	"testing"

	"github.com/TheMathDoctor/random-walks/internal/linalg"
)

func TestStepUpIsCyclicRightShift(t *testing.T) {
	for _, nodes := range []int{2, 4, 8, 16, 32} {
		up, err := StepUp(nodes)
		if err != nil {
			t.Fatalf("StepUp(%d): %v", nodes, err)
		}

		if !up.IsPermutation() {
			t.Errorf("StepUp(%d) is not a permutation matrix", nodes)
		}

		// Column i must have its single 1 at row (i+1) mod N.
		for i := 0; i < nodes; i++ {
			if up.At((i+1)%nodes, i) != 1 {
				t.Errorf("StepUp(%d): column %d does not map to row %d", nodes, i, (i+1)%nodes)
			}
		}
	}
}

func TestStepUpTransposeIsInverse(t *testing.T) {
	for _, nodes := range []int{2, 8, 32} {
		up, err := StepUp(nodes)
		if err != nil {
			t.Fatalf("StepUp(%d): %v", nodes, err)
		}

		prod, err := up.Transpose().Mul(up)
		if err != nil {
			t.Fatalf("Mul: %v", err)
		}
		if !prod.Equal(linalg.Identity(nodes), 0) {
			t.Errorf("StepUp(%d): transpose is not the inverse", nodes)
		}
	}
}

func TestStepDownIsTransposeOfStepUp(t *testing.T) {
	up, err := StepUp(8)
	if err != nil {
		t.Fatalf("StepUp: %v", err)
	}
	down, err := StepDown(8)
	if err != nil {
		t.Fatalf("StepDown: %v", err)
	}

	if !down.Equal(up.Transpose(), 0) {
		t.Error("StepDown(8) != StepUp(8)^T")
	}
	if !down.IsPermutation() {
		t.Error("StepDown(8) is not a permutation matrix")
	}
}

func TestStepUpDownCancel(t *testing.T) {
	up, err := StepUp(16)
	if err != nil {
		t.Fatalf("StepUp: %v", err)
	}
	down, err := StepDown(16)
	if err != nil {
		t.Fatalf("StepDown: %v", err)
	}

	prod, err := up.Mul(down)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !prod.Equal(linalg.Identity(16), 0) {
		t.Error("StepUp * StepDown != I")
	}
}

func TestStepUpMovesBasisVector(t *testing.T) {
	up, err := StepUp(4)
	if err != nil {
		t.Fatalf("StepUp: %v", err)
	}

	// Walker at node 3 wraps to node 0.
	v := make([]complex128, 4)
	v[3] = 1
	out, err := up.MatVec(v)
	if err != nil {
		t.Fatalf("MatVec: %v", err)
	}
	if out[0] != 1 {
		t.Errorf("StepUp(4) wraps node 3 to %v, want node 0", out)
	}
}

func TestStepUpRejectsInvalidSizes(t *testing.T) {
	for _, nodes := range []int{0, 1, 3, 6, 12} {
		if _, err := StepUp(nodes); err == nil {
			t.Errorf("StepUp(%d) accepted, want error", nodes)
		}
		if _, err := StepDown(nodes); err == nil {
			t.Errorf("StepDown(%d) accepted, want error", nodes)
		}
	}
}

func TestControlledShiftIsUnitaryPermutation(t *testing.T) {
	for _, qubits := range []int{1, 2, 3, 4} {
		s, err := ControlledShift(qubits)
		if err != nil {
			t.Fatalf("ControlledShift(%d): %v", qubits, err)
		}

		dim := 2 << qubits
		if s.Rows != dim || s.Cols != dim {
			t.Errorf("ControlledShift(%d) has dims %dx%d, want %dx%d", qubits, s.Rows, s.Cols, dim, dim)
		}
		if !s.IsPermutation() {
			t.Errorf("ControlledShift(%d) is not a permutation matrix", qubits)
		}
		if !s.IsUnitary(0) {
			t.Errorf("ControlledShift(%d) is not unitary", qubits)
		}
	}
}

func TestControlledShiftBlocks(t *testing.T) {
	s, err := ControlledShift(2)
	if err != nil {
		t.Fatalf("ControlledShift: %v", err)
	}
	down, err := StepDown(4)
	if err != nil {
		t.Fatalf("StepDown: %v", err)
	}
	up, err := StepUp(4)
	if err != nil {
		t.Fatalf("StepUp: %v", err)
	}

	// Coin |0> block is StepDown, coin |1> block is StepUp.
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if s.At(i, j) != down.At(i, j) {
				t.Errorf("coin-0 block [%d][%d] = %v, want %v", i, j, s.At(i, j), down.At(i, j))
			}
			if s.At(i+4, j+4) != up.At(i, j) {
				t.Errorf("coin-1 block [%d][%d] = %v, want %v", i, j, s.At(i+4, j+4), up.At(i, j))
			}
			if s.At(i, j+4) != 0 || s.At(i+4, j) != 0 {
				t.Errorf("off-diagonal block [%d][%d] is nonzero", i, j)
			}
		}
	}
}

func TestStepOperatorIsUnitary(t *testing.T) {
	for _, coin := range []Coin{CoinHadamard, CoinBalanced} {
		m, err := coin.Matrix()
		if err != nil {
			t.Fatalf("%s.Matrix: %v", coin, err)
		}
		if !m.IsUnitary(1e-12) {
			t.Errorf("coin %s is not unitary", coin)
		}

		step, err := StepOperator(3, m)
		if err != nil {
			t.Fatalf("StepOperator(3, %s): %v", coin, err)
		}
		if !step.IsUnitary(1e-9) {
			t.Errorf("step operator with coin %s is not unitary", coin)
		}
	}
}

func TestStepOperatorRejectsBadCoin(t *testing.T) {
	if _, err := StepOperator(3, linalg.Identity(4)); err == nil {
		t.Error("expected error for 4x4 coin")
	}
	if _, err := ControlledShift(0); err == nil {
		t.Error("expected error for zero position qubits")
	}
}
