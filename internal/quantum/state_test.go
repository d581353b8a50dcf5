package quantum

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/TheMathDoctor/random-walks/internal/linalg"
)

// testRNG returns a deterministic RNG for sampling tests.
func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1))
}

func TestNewStateVector(t *testing.T) {
	s := NewStateVector(3)
	if len(s.Amplitudes) != 8 {
		t.Fatalf("3-qubit state has %d amplitudes, want 8", len(s.Amplitudes))
	}
	if s.Amplitudes[0] != 1 {
		t.Errorf("initial amplitude of |000> = %v, want 1", s.Amplitudes[0])
	}
	for i := 1; i < 8; i++ {
		if s.Amplitudes[i] != 0 {
			t.Errorf("amplitude %d = %v, want 0", i, s.Amplitudes[i])
		}
	}
}

func TestNewBasisState(t *testing.T) {
	s, err := NewBasisState(2, 3)
	if err != nil {
		t.Fatalf("NewBasisState: %v", err)
	}
	if s.Amplitudes[3] != 1 {
		t.Errorf("amplitude of |11> = %v, want 1", s.Amplitudes[3])
	}

	if _, err := NewBasisState(2, 4); err == nil {
		t.Error("expected error for basis index out of range")
	}
	if _, err := NewBasisState(0, 0); err == nil {
		t.Error("expected error for zero qubits")
	}
}

func TestApplyH(t *testing.T) {
	s := NewStateVector(1)
	if err := s.ApplyH(0); err != nil {
		t.Fatalf("ApplyH: %v", err)
	}

	want := 1 / math.Sqrt2
	for i := 0; i < 2; i++ {
		if math.Abs(real(s.Amplitudes[i])-want) > 1e-12 || imag(s.Amplitudes[i]) != 0 {
			t.Errorf("H|0> amplitude %d = %v, want %v", i, s.Amplitudes[i], want)
		}
	}

	// H twice returns to |0>.
	if err := s.ApplyH(0); err != nil {
		t.Fatalf("ApplyH: %v", err)
	}
	if cmplx.Abs(s.Amplitudes[0]-1) > 1e-12 || cmplx.Abs(s.Amplitudes[1]) > 1e-12 {
		t.Errorf("HH|0> = %v, want |0>", s.Amplitudes)
	}
}

func TestApplyX(t *testing.T) {
	s := NewStateVector(2)
	if err := s.ApplyX(1); err != nil {
		t.Fatalf("ApplyX: %v", err)
	}
	if s.Amplitudes[2] != 1 {
		t.Errorf("X(1)|00> amplitude of |10> = %v, want 1", s.Amplitudes[2])
	}
}

func TestApplyXOutOfRange(t *testing.T) {
	s := NewStateVector(2)
	if err := s.ApplyX(2); err == nil {
		t.Error("expected error for qubit out of range")
	}
	if err := s.ApplyH(-1); err == nil {
		t.Error("expected error for negative qubit")
	}
}

func TestApplySingleMatchesApplyH(t *testing.T) {
	f := complex(1/math.Sqrt2, 0)
	h, err := linalg.FromRows([][]complex128{
		{f, f},
		{f, -f},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	a := NewStateVector(2)
	b := NewStateVector(2)
	if err := a.ApplyH(1); err != nil {
		t.Fatalf("ApplyH: %v", err)
	}
	if err := b.ApplySingle(h, 1); err != nil {
		t.Fatalf("ApplySingle: %v", err)
	}
	for i := range a.Amplitudes {
		if cmplx.Abs(a.Amplitudes[i]-b.Amplitudes[i]) > 1e-12 {
			t.Errorf("amplitude %d: ApplyH=%v ApplySingle=%v", i, a.Amplitudes[i], b.Amplitudes[i])
		}
	}
}

func TestApplyUnitaryDimensionCheck(t *testing.T) {
	s := NewStateVector(2)
	if err := s.ApplyUnitary(linalg.Identity(2)); err == nil {
		t.Error("expected dimension error applying 2x2 unitary to 2-qubit state")
	}
}

func TestProbabilitiesSumToOne(t *testing.T) {
	s := NewStateVector(3)
	for q := 0; q < 3; q++ {
		if err := s.ApplyH(q); err != nil {
			t.Fatalf("ApplyH(%d): %v", q, err)
		}
	}
	total := 0.0
	for _, p := range s.Probabilities() {
		total += p
	}
	if math.Abs(total-1) > 1e-12 {
		t.Errorf("probabilities sum to %v, want 1", total)
	}
}

func TestSampleBasisState(t *testing.T) {
	s, err := NewBasisState(2, 2)
	if err != nil {
		t.Fatalf("NewBasisState: %v", err)
	}

	counts, err := s.Sample(testRNG(), 100)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if counts[2] != 100 {
		t.Errorf("sampling |10> gave counts %v, want all 100 on index 2", counts)
	}
}

func TestSampleUniform(t *testing.T) {
	s := NewStateVector(1)
	if err := s.ApplyH(0); err != nil {
		t.Fatalf("ApplyH: %v", err)
	}

	shots := 10000
	counts, err := s.Sample(testRNG(), shots)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	total := counts[0] + counts[1]
	if total != shots {
		t.Fatalf("counts sum to %d, want %d", total, shots)
	}
	// 5 sigma bound for a fair coin over 10000 shots is ~250.
	if d := counts[0] - shots/2; d > 250 || d < -250 {
		t.Errorf("H|0> sampling is badly skewed: %v", counts)
	}
}

func TestSampleRejectsInvalidShots(t *testing.T) {
	s := NewStateVector(1)
	if _, err := s.Sample(testRNG(), 0); err == nil {
		t.Error("expected error for zero shots")
	}
}

func TestSampleRegisterMarginalizes(t *testing.T) {
	// |110>: qubit 0 = 0, qubits 1-2 = 11.
	s, err := NewBasisState(3, 6)
	if err != nil {
		t.Fatalf("NewBasisState: %v", err)
	}

	counts, err := s.SampleRegister(testRNG(), 50, 1, 2)
	if err != nil {
		t.Fatalf("SampleRegister: %v", err)
	}
	if counts[3] != 50 {
		t.Errorf("register counts %v, want all 50 on value 3", counts)
	}

	if _, err := s.SampleRegister(testRNG(), 50, 2, 2); err == nil {
		t.Error("expected range error for register [2,4) on 3 qubits")
	}
}

func TestCircuitRun(t *testing.T) {
	c := NewCircuit(2)
	c.H(0).X(1)

	state, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Expect (|10> + |11>)/√2.
	want := 1 / math.Sqrt2
	if math.Abs(real(state.Amplitudes[2])-want) > 1e-12 ||
		math.Abs(real(state.Amplitudes[3])-want) > 1e-12 {
		t.Errorf("final amplitudes %v, want |10>,|11> at 1/√2", state.Amplitudes)
	}
}

func TestCircuitRunFromBasis(t *testing.T) {
	c := NewCircuit(2)
	c.SetInitialBasis(1)

	state, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if state.Amplitudes[1] != 1 {
		t.Errorf("initial basis ignored: %v", state.Amplitudes)
	}
}

func TestCircuitRunReportsBadOp(t *testing.T) {
	c := NewCircuit(1)
	c.H(3)
	if _, err := c.Run(); err == nil {
		t.Error("expected error from out-of-range gate")
	}
}

func TestCircuitUnitaryOp(t *testing.T) {
	// A full-register X⊗X via dense matrix.
	x, err := linalg.FromRows([][]complex128{
		{0, 1},
		{1, 0},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	xx := linalg.Kron(x, x)

	c := NewCircuit(2)
	c.Unitary(xx)
	state, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if state.Amplitudes[3] != 1 {
		t.Errorf("(X⊗X)|00> = %v, want |11>", state.Amplitudes)
	}
}
