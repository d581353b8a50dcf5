// Package simulation provides a multi-experiment test harness for
// validating the statistical behavior of the classical and quantum
// walks.
//
// The simulation exercises the real walk implementations, the circuit
// simulator, and the SQLiteRunStore, no mocks. Scenarios are Go
// builders that run matched classical/quantum pairs over a schedule of
// step counts, persisting every run and capturing the sampled
// distributions for property-based assertions.
//
// Each test gets an isolated SQLite database via t.TempDir() and a
// sandboxed HOME to prevent touching user data.
//
// Usage:
//
//	func TestBallisticSpread(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:           "ballistic-spread",
//	        PositionQubits: 6,
//	        StepSchedule:   []int{4, 8, 12},
//	        Shots:          4096,
//	        Seed:           1,
//	    })
//	    simulation.AssertQuantumSpreadsFaster(t, result, 1)
//	}
package simulation
