package analytics

import "math"

// Point is one chart-ready entry of a label-keyed series.
type Point struct {
	Key   string
	Value int64
}

// GeoPoint is one chart-ready entry of the per-country series.
type GeoPoint struct {
	Country    string
	Value      int64
	Percentage float64
}

// ToSeries flattens an ordered mapping into chart points, preserving source
// order. Callers wanting a specific visual order sort upstream; the
// transformer itself never reorders.
func ToSeries(counts Counts) []Point {
	out := make([]Point, 0, len(counts))
	for _, c := range counts {
		out = append(out, Point{Key: c.Key, Value: c.Value})
	}
	return out
}

// ToGeoSeries builds the per-country series with each country's share of
// totalClicks, rounded to one decimal. A zero totalClicks yields NaN
// percentages rather than a panic; renderers are expected to guard them.
func ToGeoSeries(geo Counts, totalClicks int64) []GeoPoint {
	out := make([]GeoPoint, 0, len(geo))
	for _, c := range geo {
		pct := 100 * float64(c.Value) / float64(totalClicks)
		out = append(out, GeoPoint{
			Country:    c.Key,
			Value:      c.Value,
			Percentage: roundTenth(pct),
		})
	}
	return out
}

// TopLocation returns the entry with the highest value, the first one winning
// ties. An empty series returns the N/A sentinel so views never special-case
// missing data.
func TopLocation(series []GeoPoint) GeoPoint {
	if len(series) == 0 {
		return GeoPoint{Country: "N/A", Value: 0}
	}
	top := series[0]
	for _, p := range series[1:] {
		if p.Value > top.Value {
			top = p
		}
	}
	return top
}

// TopN returns the first n entries of the server-pre-sorted top links. The
// client trusts the server's descending-clicks order and does not re-sort.
func TopN(links []TopLink, n int) []TopLink {
	if n < 0 {
		n = 0
	}
	if n > len(links) {
		n = len(links)
	}
	return links[:n]
}

func roundTenth(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*10) / 10
}
