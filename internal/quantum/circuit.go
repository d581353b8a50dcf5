package quantum

import (
	"fmt"

	"github.com/TheMathDoctor/random-walks/internal/linalg"
)

// opKind discriminates the gate variants a Circuit records.
type opKind int

const (
	opH opKind = iota
	opX
	opSingle
	opUnitary
)

// operation is one recorded gate application.
type operation struct {
	kind   opKind
	qubit  int
	matrix *linalg.Matrix
}

// Circuit is an ordered list of gate applications over a fixed-width
// register. Gates are recorded eagerly and validated when Run builds
// the final state, so a circuit can be assembled without error
// handling at every call site.
type Circuit struct {
	numQubits int
	ops       []operation
	initial   int
}

// NewCircuit creates a circuit over numQubits qubits starting in |0...0>.
func NewCircuit(numQubits int) *Circuit {
	return &Circuit{numQubits: numQubits}
}

// NumQubits returns the register width.
func (c *Circuit) NumQubits() int { return c.numQubits }

// Len returns the number of recorded operations.
func (c *Circuit) Len() int { return len(c.ops) }

// SetInitialBasis sets the initial basis state |index> for Run.
func (c *Circuit) SetInitialBasis(index int) {
	c.initial = index
}

// H records a Hadamard gate on the given qubit.
func (c *Circuit) H(qubit int) *Circuit {
	c.ops = append(c.ops, operation{kind: opH, qubit: qubit})
	return c
}

// X records a Pauli X gate on the given qubit.
func (c *Circuit) X(qubit int) *Circuit {
	c.ops = append(c.ops, operation{kind: opX, qubit: qubit})
	return c
}

// Single records an arbitrary 2x2 unitary on the given qubit.
func (c *Circuit) Single(u *linalg.Matrix, qubit int) *Circuit {
	c.ops = append(c.ops, operation{kind: opSingle, qubit: qubit, matrix: u})
	return c
}

// Unitary records a full-register dense unitary.
func (c *Circuit) Unitary(u *linalg.Matrix) *Circuit {
	c.ops = append(c.ops, operation{kind: opUnitary, matrix: u})
	return c
}

// Run executes the recorded gates in order and returns the final state.
func (c *Circuit) Run() (*StateVector, error) {
	if c.numQubits <= 0 {
		return nil, fmt.Errorf("quantum: circuit has invalid width %d", c.numQubits)
	}
	state, err := NewBasisState(c.numQubits, c.initial)
	if err != nil {
		return nil, err
	}
	for i, op := range c.ops {
		switch op.kind {
		case opH:
			err = state.ApplyH(op.qubit)
		case opX:
			err = state.ApplyX(op.qubit)
		case opSingle:
			err = state.ApplySingle(op.matrix, op.qubit)
		case opUnitary:
			err = state.ApplyUnitary(op.matrix)
		}
		if err != nil {
			return nil, fmt.Errorf("quantum: op %d: %w", i, err)
		}
	}
	return state, nil
}
