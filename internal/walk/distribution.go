package walk

import (
	"fmt"
	"math"
	"sort"
)

// Distribution holds measured position counts over a cycle of Nodes
// nodes. Counts maps node index to the number of shots that landed
// there; nodes with zero counts are omitted.
type Distribution struct {
	Nodes  int         `json:"nodes"`
	Counts map[int]int `json:"counts"`
}

// NewDistribution creates an empty distribution over nodes positions.
func NewDistribution(nodes int) *Distribution {
	return &Distribution{Nodes: nodes, Counts: make(map[int]int)}
}

// TotalShots returns the sum of all counts.
func (d *Distribution) TotalShots() int {
	total := 0
	for _, c := range d.Counts {
		total += c
	}
	return total
}

// Probability returns the empirical probability of the given node.
func (d *Distribution) Probability(node int) float64 {
	total := d.TotalShots()
	if total == 0 {
		return 0
	}
	return float64(d.Counts[node]) / float64(total)
}

// Probabilities returns the full empirical distribution as a dense
// slice indexed by node.
func (d *Distribution) Probabilities() []float64 {
	probs := make([]float64, d.Nodes)
	total := d.TotalShots()
	if total == 0 {
		return probs
	}
	for node, c := range d.Counts {
		if node >= 0 && node < d.Nodes {
			probs[node] = float64(c) / float64(total)
		}
	}
	return probs
}

// Mean returns the mean node index of the distribution.
func (d *Distribution) Mean() float64 {
	total := d.TotalShots()
	if total == 0 {
		return 0
	}
	sum := 0.0
	for node, c := range d.Counts {
		sum += float64(node) * float64(c)
	}
	return sum / float64(total)
}

// StdDev returns the standard deviation of the node index. The spread
// is the headline difference between the two walks: classical grows as
// √steps, the coined walk ballistically.
func (d *Distribution) StdDev() float64 {
	total := d.TotalShots()
	if total == 0 {
		return 0
	}
	mean := d.Mean()
	sum := 0.0
	for node, c := range d.Counts {
		dev := float64(node) - mean
		sum += dev * dev * float64(c)
	}
	return math.Sqrt(sum / float64(total))
}

// SortedNodes returns the node indices with nonzero counts, ascending.
func (d *Distribution) SortedNodes() []int {
	nodes := make([]int, 0, len(d.Counts))
	for n := range d.Counts {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	return nodes
}

// TotalVariationDistance returns the total variation distance between
// two empirical distributions over the same cycle:
// 1/2 Σ |p(x) - q(x)|, in [0, 1].
func TotalVariationDistance(a, b *Distribution) (float64, error) {
	if a.Nodes != b.Nodes {
		return 0, fmt.Errorf("walk: distributions cover different cycles (%d vs %d nodes)", a.Nodes, b.Nodes)
	}
	pa := a.Probabilities()
	pb := b.Probabilities()
	sum := 0.0
	for i := range pa {
		sum += math.Abs(pa[i] - pb[i])
	}
	return sum / 2, nil
}
