package simulation

import (
	"math"
	"testing"

	"github.com/TheMathDoctor/random-walks/internal/walk"
)

// AssertQuantumSpreadsFaster asserts that from the given experiment
// index onward, the quantum distribution has strictly larger standard
// deviation than the classical one. This is the headline property of
// the coined walk: ballistic spread versus diffusive.
func AssertQuantumSpreadsFaster(t *testing.T, result SimulationResult, fromIndex int) {
	t.Helper()
	for i := fromIndex; i < len(result.Experiments); i++ {
		er := result.Experiments[i]
		if er.Classical == nil || er.Quantum == nil {
			t.Errorf("AssertQuantumSpreadsFaster: experiment %d missing a side", i)
			continue
		}
		cs := er.Classical.Distribution.StdDev()
		qs := er.Quantum.Distribution.StdDev()
		if qs <= cs {
			t.Errorf("AssertQuantumSpreadsFaster: steps=%d: quantum stddev %.3f <= classical %.3f", er.Steps, qs, cs)
		}
	}
}

// AssertMeanNear asserts that each run of the given kind has a mean
// within tol of want.
func AssertMeanNear(t *testing.T, result SimulationResult, quantum bool, want, tol float64) {
	t.Helper()
	for _, er := range result.Experiments {
		run := er.Classical
		if quantum {
			run = er.Quantum
		}
		if run == nil {
			continue
		}
		mean := run.Distribution.Mean()
		if math.Abs(mean-want) > tol {
			t.Errorf("AssertMeanNear: steps=%d: mean %.3f not within %.3f of %.3f", er.Steps, mean, tol, want)
		}
	}
}

// AssertClassicalParity asserts that every classical run's support sits
// on nodes whose displacement from the center has the same parity as
// the step count. Only valid when steps < nodes/2, before wraparound
// can fold the support.
func AssertClassicalParity(t *testing.T, result SimulationResult, positionQubits int) {
	t.Helper()
	nodes := 1 << positionQubits
	center := nodes / 2
	for _, er := range result.Experiments {
		if er.Classical == nil {
			continue
		}
		if er.Steps >= nodes/2 {
			t.Errorf("AssertClassicalParity: steps=%d too large for %d nodes, wraparound breaks parity", er.Steps, nodes)
			continue
		}
		for node := range er.Classical.Distribution.Counts {
			if (node-center-er.Steps)%2 != 0 {
				t.Errorf("AssertClassicalParity: steps=%d: node %d violates parity", er.Steps, node)
			}
		}
	}
}

// AssertDistributionsDiverge asserts that the classical and quantum
// distributions of each experiment from fromIndex onward differ by at
// least minTV in total variation distance.
func AssertDistributionsDiverge(t *testing.T, result SimulationResult, fromIndex int, minTV float64) {
	t.Helper()
	for i := fromIndex; i < len(result.Experiments); i++ {
		er := result.Experiments[i]
		if er.Classical == nil || er.Quantum == nil {
			t.Errorf("AssertDistributionsDiverge: experiment %d missing a side", i)
			continue
		}
		tv, err := walk.TotalVariationDistance(er.Classical.Distribution, er.Quantum.Distribution)
		if err != nil {
			t.Errorf("AssertDistributionsDiverge: steps=%d: %v", er.Steps, err)
			continue
		}
		if tv < minTV {
			t.Errorf("AssertDistributionsDiverge: steps=%d: TV distance %.4f < %.4f", er.Steps, tv, minTV)
		}
	}
}

// AssertSpreadGrows asserts that the given kind's standard deviation is
// nondecreasing along the step schedule, within slack.
func AssertSpreadGrows(t *testing.T, result SimulationResult, quantum bool, slack float64) {
	t.Helper()
	prev := -math.MaxFloat64
	for _, er := range result.Experiments {
		run := er.Classical
		if quantum {
			run = er.Quantum
		}
		if run == nil {
			continue
		}
		sd := run.Distribution.StdDev()
		if sd < prev-slack {
			t.Errorf("AssertSpreadGrows: steps=%d: stddev %.3f dropped below previous %.3f", er.Steps, sd, prev)
		}
		if sd > prev {
			prev = sd
		}
	}
}
