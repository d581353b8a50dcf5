// Package walk builds coined quantum walks and their classical
// counterparts on a cycle of 2^n nodes, and samples both into
// comparable position distributions.
package walk

import (
	"fmt"

	"github.com/TheMathDoctor/random-walks/internal/linalg"
)

// StepUp returns the N x N cyclic increment permutation: node i maps
// to node (i+1) mod N, so entry [(i+1) mod N][i] is 1. Its transpose
// is its inverse.
func StepUp(nodes int) (*linalg.Matrix, error) {
	if err := checkNodes(nodes); err != nil {
		return nil, err
	}
	m := linalg.New(nodes, nodes)
	for i := 0; i < nodes; i++ {
		m.Set((i+1)%nodes, i, 1)
	}
	return m, nil
}

// StepDown returns the N x N cyclic decrement permutation: node i maps
// to node (i-1) mod N. It is the transpose (and inverse) of StepUp.
func StepDown(nodes int) (*linalg.Matrix, error) {
	if err := checkNodes(nodes); err != nil {
		return nil, err
	}
	m := linalg.New(nodes, nodes)
	for i := 0; i < nodes; i++ {
		m.Set((i-1+nodes)%nodes, i, 1)
	}
	return m, nil
}

// ControlledShift builds the walk shift operator over coin ⊗ position:
//
//	S = |0><0| ⊗ StepDown + |1><1| ⊗ StepUp
//
// for a cycle of 2^positionQubits nodes. The coin qubit selects the
// direction; the result is block diagonal and unitary by construction.
func ControlledShift(positionQubits int) (*linalg.Matrix, error) {
	if positionQubits <= 0 {
		return nil, fmt.Errorf("walk: position qubits must be positive, got %d", positionQubits)
	}
	nodes := 1 << positionQubits

	down, err := StepDown(nodes)
	if err != nil {
		return nil, err
	}
	up, err := StepUp(nodes)
	if err != nil {
		return nil, err
	}

	p0 := linalg.New(2, 2)
	p0.Set(0, 0, 1)
	p1 := linalg.New(2, 2)
	p1.Set(1, 1, 1)

	return linalg.Kron(p0, down).Add(linalg.Kron(p1, up))
}

// StepOperator builds one full walk step S · (C ⊗ I) for the given
// coin matrix over coin ⊗ position.
func StepOperator(positionQubits int, coin *linalg.Matrix) (*linalg.Matrix, error) {
	if coin.Rows != 2 || coin.Cols != 2 {
		return nil, fmt.Errorf("walk: coin must be 2x2, got %dx%d", coin.Rows, coin.Cols)
	}
	shift, err := ControlledShift(positionQubits)
	if err != nil {
		return nil, err
	}
	toss := linalg.Kron(coin, linalg.Identity(1<<positionQubits))
	return shift.Mul(toss)
}

// checkNodes validates a cycle size: positive and a power of two, so
// the position register maps exactly onto qubits.
func checkNodes(nodes int) error {
	if nodes <= 1 {
		return fmt.Errorf("walk: cycle must have at least 2 nodes, got %d", nodes)
	}
	if nodes&(nodes-1) != 0 {
		return fmt.Errorf("walk: cycle size %d is not a power of two", nodes)
	}
	return nil
}
