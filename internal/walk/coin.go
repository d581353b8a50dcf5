package walk

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/TheMathDoctor/random-walks/internal/linalg"
)

// Coin names a coin operator for the walk.
type Coin string

const (
	// CoinHadamard is the standard Hadamard coin.
	CoinHadamard Coin = "hadamard"

	// CoinBalanced is the balanced (Y-basis) coin 1/√2 [[1, i], [i, 1]],
	// which produces a symmetric walk even from the |0> coin state.
	CoinBalanced Coin = "balanced"
)

// Valid reports whether c names a known coin.
func (c Coin) Valid() bool {
	return c == CoinHadamard || c == CoinBalanced
}

// Matrix returns the 2x2 coin operator.
func (c Coin) Matrix() (*linalg.Matrix, error) {
	f := complex(1/math.Sqrt2, 0)
	switch c {
	case CoinHadamard:
		return linalg.FromRows([][]complex128{
			{f, f},
			{f, -f},
		})
	case CoinBalanced:
		return linalg.FromRows([][]complex128{
			{f, f * 1i},
			{f * 1i, f},
		})
	default:
		return nil, fmt.Errorf("walk: unknown coin %q (valid: hadamard, balanced)", string(c))
	}
}

// CoinState names the initial state of the coin qubit.
type CoinState string

const (
	// CoinStateZero starts the coin in |0>. Under the Hadamard coin this
	// drifts the walker toward lower node indices.
	CoinStateZero CoinState = "zero"

	// CoinStateOne starts the coin in |1>. Under the Hadamard coin this
	// drifts the walker toward higher node indices.
	CoinStateOne CoinState = "one"

	// CoinStateSymmetric starts the coin in (|0> + i|1>)/√2, which keeps
	// the Hadamard walk symmetric about the starting node.
	CoinStateSymmetric CoinState = "symmetric"
)

// Valid reports whether cs names a known coin state.
func (cs CoinState) Valid() bool {
	return cs == CoinStateZero || cs == CoinStateOne || cs == CoinStateSymmetric
}

// coinPrep builds a unitary whose first column is (alpha, beta), so
// applying it to |0> prepares the coin state. Requires
// |alpha|^2 + |beta|^2 = 1.
func coinPrep(alpha, beta complex128) (*linalg.Matrix, error) {
	norm := real(alpha)*real(alpha) + imag(alpha)*imag(alpha) +
		real(beta)*real(beta) + imag(beta)*imag(beta)
	if math.Abs(norm-1) > 1e-9 {
		return nil, fmt.Errorf("walk: coin state (%v, %v) is not normalized", alpha, beta)
	}
	return linalg.FromRows([][]complex128{
		{alpha, -cmplx.Conj(beta)},
		{beta, cmplx.Conj(alpha)},
	})
}

// Amplitudes returns the (alpha, beta) amplitudes of the coin state.
func (cs CoinState) Amplitudes() (complex128, complex128, error) {
	f := complex(1/math.Sqrt2, 0)
	switch cs {
	case CoinStateZero:
		return 1, 0, nil
	case CoinStateOne:
		return 0, 1, nil
	case CoinStateSymmetric:
		return f, f * 1i, nil
	default:
		return 0, 0, fmt.Errorf("walk: unknown coin state %q (valid: zero, one, symmetric)", string(cs))
	}
}
