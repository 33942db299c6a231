package layout

import "math"

// precision is the number of decimals kept after normalization.
const precision = 5

// place assigns raw coordinates: X within the rank, Y by rank.
func place(layers [][]string, opts Options) map[string]Point {
	raw := make(map[string]Point)
	for rank, layer := range layers {
		dx := opts.Width / float64(len(layer))
		left := opts.XCenter - opts.Width/2
		y := -float64(rank) * opts.YGap
		for i, id := range layer {
			raw[id] = Point{X: left + dx*(float64(i)+0.5), Y: y}
		}
	}
	return raw
}

// normalize min-max scales each axis onto [0,1] and swaps them: the output
// X comes from the raw rank coordinate and the output Y from the position
// within the rank.
func normalize(raw map[string]Point) map[string]Point {
	if len(raw) == 0 {
		return map[string]Point{}
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range raw {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	out := make(map[string]Point, len(raw))
	for id, p := range raw {
		out[id] = Point{
			X: scale(p.Y, minY, maxY),
			Y: scale(p.X, minX, maxX),
		}
	}
	return out
}

// scale maps v from [lo,hi] onto [0,1]. A zero range maps to 0.
func scale(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return round((v - lo) / (hi - lo))
}

func round(v float64) float64 {
	p := math.Pow10(precision)
	return math.Round(v*p) / p
}
