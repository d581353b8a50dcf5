// Package quantum provides a small state-vector circuit simulator:
// enough gate machinery to run coined-walk circuits and sample the
// resulting measurement distribution.
package quantum

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/TheMathDoctor/random-walks/internal/linalg"
)

// ProbTolerance is the allowed deviation of total probability from 1
// before sampling refuses to proceed.
const ProbTolerance = 1e-6

// StateVector holds the amplitudes of an n-qubit register. Qubit 0 is
// the least significant bit of the basis index.
type StateVector struct {
	NumQubits  int
	Amplitudes []complex128
}

// NewStateVector creates an n-qubit register initialized to |0...0>.
func NewStateVector(numQubits int) *StateVector {
	if numQubits <= 0 {
		panic(fmt.Sprintf("quantum: invalid qubit count %d", numQubits))
	}
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{NumQubits: numQubits, Amplitudes: amps}
}

// NewBasisState creates an n-qubit register initialized to |index>.
func NewBasisState(numQubits, index int) (*StateVector, error) {
	if numQubits <= 0 {
		return nil, fmt.Errorf("quantum: invalid qubit count %d", numQubits)
	}
	dim := 1 << numQubits
	if index < 0 || index >= dim {
		return nil, fmt.Errorf("quantum: basis index %d out of range for %d qubits", index, numQubits)
	}
	amps := make([]complex128, dim)
	amps[index] = 1
	return &StateVector{NumQubits: numQubits, Amplitudes: amps}, nil
}

// Clone returns a deep copy of s.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{NumQubits: s.NumQubits, Amplitudes: amps}
}

// ApplyH applies the Hadamard gate to the given qubit.
func (s *StateVector) ApplyH(qubit int) error {
	if err := s.checkQubit(qubit); err != nil {
		return err
	}
	f := complex(1/math.Sqrt2, 0)
	bit := 1 << qubit
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = f * (a0 + a1)
			s.Amplitudes[j] = f * (a0 - a1)
		}
	}
	return nil
}

// ApplyX applies the Pauli X (bit flip) gate to the given qubit.
func (s *StateVector) ApplyX(qubit int) error {
	if err := s.checkQubit(qubit); err != nil {
		return err
	}
	bit := 1 << qubit
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
	return nil
}

// ApplySingle applies an arbitrary 2x2 unitary to the given qubit.
func (s *StateVector) ApplySingle(u *linalg.Matrix, qubit int) error {
	if u.Rows != 2 || u.Cols != 2 {
		return fmt.Errorf("quantum: single-qubit gate must be 2x2, got %dx%d", u.Rows, u.Cols)
	}
	if err := s.checkQubit(qubit); err != nil {
		return err
	}
	bit := 1 << qubit
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = u.At(0, 0)*a0 + u.At(0, 1)*a1
			s.Amplitudes[j] = u.At(1, 0)*a0 + u.At(1, 1)*a1
		}
	}
	return nil
}

// ApplyUnitary applies a dense unitary covering the full register.
// The walk circuits build one full-width step operator per step, so
// only the whole-register case is supported here.
func (s *StateVector) ApplyUnitary(u *linalg.Matrix) error {
	dim := len(s.Amplitudes)
	if u.Rows != dim || u.Cols != dim {
		return fmt.Errorf("quantum: unitary is %dx%d, state has dimension %d", u.Rows, u.Cols, dim)
	}
	out, err := u.MatVec(s.Amplitudes)
	if err != nil {
		return err
	}
	s.Amplitudes = out
	return nil
}

// Probabilities returns |amplitude|^2 for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		re, im := real(a), imag(a)
		probs[i] = re*re + im*im
	}
	return probs
}

// Sample draws shots basis-state indices from the measurement
// distribution and returns counts keyed by basis index.
func (s *StateVector) Sample(rng *rand.Rand, shots int) (map[int]int, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("quantum: shots must be positive, got %d", shots)
	}
	probs := s.Probabilities()
	total := 0.0
	for _, p := range probs {
		total += p
	}
	if math.Abs(total-1) > ProbTolerance {
		return nil, fmt.Errorf("quantum: state norm %f is not 1 (non-unitary evolution?)", total)
	}

	// Cumulative distribution for inverse-transform sampling.
	cdf := make([]float64, len(probs))
	acc := 0.0
	for i, p := range probs {
		acc += p
		cdf[i] = acc
	}
	cdf[len(cdf)-1] = total // guard against accumulated rounding

	counts := make(map[int]int)
	for i := 0; i < shots; i++ {
		r := rng.Float64() * total
		idx := sort.SearchFloat64s(cdf, r)
		if idx >= len(cdf) {
			idx = len(cdf) - 1
		}
		counts[idx]++
	}
	return counts, nil
}

// SampleRegister samples shots measurements and marginalizes each
// outcome onto the numBits-wide register starting at qubit lowBit.
// The walk uses this to read the position register while discarding
// the coin qubit.
func (s *StateVector) SampleRegister(rng *rand.Rand, shots, lowBit, numBits int) (map[int]int, error) {
	if lowBit < 0 || numBits <= 0 || lowBit+numBits > s.NumQubits {
		return nil, fmt.Errorf("quantum: register [%d,%d) out of range for %d qubits", lowBit, lowBit+numBits, s.NumQubits)
	}
	full, err := s.Sample(rng, shots)
	if err != nil {
		return nil, err
	}
	mask := (1 << numBits) - 1
	counts := make(map[int]int)
	for idx, c := range full {
		counts[(idx>>lowBit)&mask] += c
	}
	return counts, nil
}

func (s *StateVector) checkQubit(qubit int) error {
	if qubit < 0 || qubit >= s.NumQubits {
		return fmt.Errorf("quantum: qubit %d out of range for %d-qubit register", qubit, s.NumQubits)
	}
	return nil
}
