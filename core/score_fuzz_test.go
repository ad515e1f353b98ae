package core

import (
	"testing"

	"github.com/codecity/codecity/schema"
)

// FuzzHotspotScore checks the score stays in [0,100] and is monotone in
// tool coverage for arbitrary severity counts.
func FuzzHotspotScore(f *testing.F) {
	f.Add(1, 0, 0, 0, 0, 1)
	f.Add(3, 2, 0, 0, 0, 2)
	f.Add(0, 0, 0, 0, 0, 0)
	f.Add(1000, 1000, 1000, 1000, 1000, 50)

	f.Fuzz(func(t *testing.T, nCrit, nHigh, nMed, nLow, nInfo, tools int) {
		if nCrit < 0 || nHigh < 0 || nMed < 0 || nLow < 0 || nInfo < 0 || tools < 0 {
			t.Skip()
		}
		if nCrit > 1_000_000 || nHigh > 1_000_000 || nMed > 1_000_000 || nLow > 1_000_000 || nInfo > 1_000_000 || tools > 10_000 {
			t.Skip()
		}
		dist := map[schema.Severity]int{
			schema.SeverityCritical: nCrit,
			schema.SeverityHigh:     nHigh,
			schema.SeverityMedium:   nMed,
			schema.SeverityLow:      nLow,
			schema.SeverityInfo:     nInfo,
		}
		weights := schema.DefaultSeverityWeights()

		score := HotspotScore(weights, dist, tools)
		if score < 0 || score > 100 {
			t.Fatalf("score %d out of range for dist %v tools %d", score, dist, tools)
		}

		wider := HotspotScore(weights, dist, tools+1)
		if wider < score {
			t.Fatalf("adding a tool lowered the score: %d -> %d", score, wider)
		}
	})
}
