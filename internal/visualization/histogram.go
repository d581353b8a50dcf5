// Package visualization renders walk distributions as terminal
// histograms and self-contained HTML reports.
package visualization

import (
	"fmt"
	"strings"

	"github.com/TheMathDoctor/random-walks/internal/walk"
)

// barWidth is the width in cells of a full-scale histogram bar.
const barWidth = 40

// RenderHistogram renders a distribution as a labeled terminal bar
// chart. Only occupied nodes are shown; bars are scaled so the most
// probable node fills barWidth cells.
func RenderHistogram(title string, dist *walk.Distribution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  (%d shots over %d nodes)\n", title, dist.TotalShots(), dist.Nodes)

	nodes := dist.SortedNodes()
	if len(nodes) == 0 {
		b.WriteString("  (no samples)\n")
		return b.String()
	}

	maxCount := 0
	for _, n := range nodes {
		if c := dist.Counts[n]; c > maxCount {
			maxCount = c
		}
	}

	for _, n := range nodes {
		c := dist.Counts[n]
		fmt.Fprintf(&b, "  %4d  %s %d (%.3f)\n", n, bar(c, maxCount), c, dist.Probability(n))
	}
	return b.String()
}

// RenderComparison renders classical and quantum distributions over
// the same cycle as aligned rows, one node per line, with the summary
// statistics the comparison is about.
func RenderComparison(classical, quantum *walk.Distribution) (string, error) {
	if classical.Nodes != quantum.Nodes {
		return "", fmt.Errorf("visualization: distributions cover different cycles (%d vs %d nodes)", classical.Nodes, quantum.Nodes)
	}

	tv, err := walk.TotalVariationDistance(classical, quantum)
	if err != nil {
		return "", err
	}

	occupied := make(map[int]bool)
	for n := range classical.Counts {
		occupied[n] = true
	}
	for n := range quantum.Counts {
		occupied[n] = true
	}

	maxCount := 0
	for n := range occupied {
		if c := classical.Counts[n]; c > maxCount {
			maxCount = c
		}
		if c := quantum.Counts[n]; c > maxCount {
			maxCount = c
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "node   %-*s  %s\n", barWidth+8, "classical", "quantum")
	for n := 0; n < classical.Nodes; n++ {
		if !occupied[n] {
			continue
		}
		cc := classical.Counts[n]
		qc := quantum.Counts[n]
		fmt.Fprintf(&b, "%4d   %-*s  %s %d\n", n, barWidth+8, fmt.Sprintf("%s %d", bar(cc, maxCount), cc), bar(qc, maxCount), qc)
	}

	fmt.Fprintf(&b, "\nclassical: mean=%.2f stddev=%.2f\n", classical.Mean(), classical.StdDev())
	fmt.Fprintf(&b, "quantum:   mean=%.2f stddev=%.2f\n", quantum.Mean(), quantum.StdDev())
	fmt.Fprintf(&b, "total variation distance: %.4f\n", tv)
	return b.String(), nil
}

// bar renders a count as a scaled block bar.
func bar(count, maxCount int) string {
	if maxCount == 0 || count == 0 {
		return ""
	}
	w := count * barWidth / maxCount
	if w == 0 {
		w = 1 // visible dot for small nonzero counts
	}
	return strings.Repeat("█", w)
}
