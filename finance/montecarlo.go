package finance

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Monte Carlo path parameters for the analyst lab.
const (
	PathStart    = 100.0
	PathFloor    = 70.0
	ShockMinPct  = -3.0
	ShockMaxPct  = 5.0
	DefaultSteps = 12
)

// SimulatePath draws a NAV path of the given number of points starting at
// PathStart. Every step applies a uniform percentage shock in
// [ShockMinPct, ShockMaxPct) and the value never drops below PathFloor.
// Values are kept at two decimals. A nil src uses the global generator.
func SimulatePath(src rand.Source, steps int) []float64 {
	if steps <= 0 {
		return []float64{}
	}
	shock := distuv.Uniform{Min: ShockMinPct, Max: ShockMaxPct, Src: src}

	path := make([]float64, steps)
	path[0] = PathStart
	for i := 1; i < steps; i++ {
		pct := round2(shock.Rand())
		path[i] = math.Max(PathFloor, round2(path[i-1]*(1+pct/100)))
	}
	return path
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
