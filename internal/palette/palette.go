// Package palette reduces an image's pixels to its K most representative
// colors and scores each one for visual salience.
package palette

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidInput is returned for malformed analyzer arguments (empty
// sample set, k < 1, empty entry list).
var ErrInvalidInput = errors.New("palette: invalid input")

// maxIterations bounds the assign/recompute loop in case convergence stalls
const maxIterations = 50

// Color is a single 8-bit RGB sample.
type Color struct {
	R, G, B uint8
}

// Hex gives back the color as a 6 character uppercase hex string.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Entry is one palette color with its derived metrics. Population is the
// number of input samples (duplicates included) assigned to this color's
// cluster; padded degenerate entries carry a population of zero.
type Entry struct {
	Color      Color
	Population int
	Saturation float64
	Brightness float64
	Vibrancy   float64
}

// weightedColor is a distinct color with its occurrence count. Duplicates in
// the sample set are meaningful: they bias clustering toward common colors.
type weightedColor struct {
	color Color
	count int
}

// Extract partitions samples into k clusters in RGB space and returns the
// rounded cluster centroids as palette entries, most populated first with
// ties broken by ascending centroid index. The result always has exactly k
// entries; images with fewer than k distinct colors repeat centroids.
//
// Seeding is deterministic (most frequent color first, then farthest-point
// selection), so identical input always yields the identical palette.
func Extract(samples []Color, k int) ([]Entry, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample set", ErrInvalidInput)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidInput, k)
	}

	distinct := countColors(samples)

	if len(distinct) <= k {
		entries := make([]Entry, 0, k)
		for _, wc := range distinct {
			entries = append(entries, Entry{Color: wc.color, Population: wc.count})
		}
		return padEntries(entries, k), nil
	}

	centroids := seedCentroids(distinct, k)

	assignment := make([]int, len(distinct))
	for i := range assignment {
		assignment[i] = -1
	}

	for round := 0; round < maxIterations; round++ {
		changes := 0
		for i, wc := range distinct {
			closest := closestCentroid(wc.color, centroids)
			if closest != assignment[i] {
				assignment[i] = closest
				changes++
			}
		}
		if changes == 0 {
			break
		}
		recomputeCentroids(centroids, distinct, assignment)
	}

	populations := make([]int, k)
	for i, wc := range distinct {
		populations[assignment[i]] += wc.count
	}

	entries := make([]Entry, k)
	for i, c := range centroids {
		entries[i] = Entry{Color: c, Population: populations[i]}
	}
	// stable sort keeps ascending centroid index on equal populations
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Population > entries[j].Population
	})
	return entries, nil
}

// countColors collapses the sample set into distinct colors with counts,
// ordered by descending count with ties broken by ascending hex value. The
// ordering fixes the seeding and therefore the whole extraction.
func countColors(samples []Color) []weightedColor {
	counts := make(map[Color]int, len(samples))
	for _, c := range samples {
		counts[c]++
	}

	distinct := make([]weightedColor, 0, len(counts))
	for c, n := range counts {
		distinct = append(distinct, weightedColor{color: c, count: n})
	}
	sort.Slice(distinct, func(i, j int) bool {
		if distinct[i].count != distinct[j].count {
			return distinct[i].count > distinct[j].count
		}
		return distinct[i].color.Hex() < distinct[j].color.Hex()
	})
	return distinct
}

// seedCentroids picks initial centroids without randomness: the most frequent
// color first, then repeatedly the color farthest from every centroid chosen
// so far (farthest-point variant of k-means++ seeding).
func seedCentroids(distinct []weightedColor, k int) []Color {
	centroids := make([]Color, 0, k)
	centroids = append(centroids, distinct[0].color)

	minDist := make([]float64, len(distinct))
	for i, wc := range distinct {
		minDist[i] = distanceSq(wc.color, centroids[0])
	}

	for len(centroids) < k {
		bestIdx := 0
		bestDist := -1.0
		for i, d := range minDist {
			if d > bestDist {
				bestIdx = i
				bestDist = d
			}
		}
		next := distinct[bestIdx].color
		centroids = append(centroids, next)
		for i, wc := range distinct {
			if d := distanceSq(wc.color, next); d < minDist[i] {
				minDist[i] = d
			}
		}
	}
	return centroids
}

// closestCentroid returns the index of the nearest centroid, lowest index
// winning on equal distances.
func closestCentroid(c Color, centroids []Color) int {
	closestIdx := 0
	closestDist := distanceSq(c, centroids[0])
	for i := 1; i < len(centroids); i++ {
		if d := distanceSq(c, centroids[i]); d < closestDist {
			closestIdx = i
			closestDist = d
		}
	}
	return closestIdx
}

// recomputeCentroids moves each centroid to the count-weighted mean of its
// assigned colors. Empty clusters keep their previous centroid.
func recomputeCentroids(centroids []Color, distinct []weightedColor, assignment []int) {
	k := len(centroids)
	var rSum, gSum, bSum = make([]float64, k), make([]float64, k), make([]float64, k)
	weight := make([]float64, k)

	for i, wc := range distinct {
		idx := assignment[i]
		w := float64(wc.count)
		rSum[idx] += float64(wc.color.R) * w
		gSum[idx] += float64(wc.color.G) * w
		bSum[idx] += float64(wc.color.B) * w
		weight[idx] += w
	}

	for i := 0; i < k; i++ {
		if weight[i] == 0 {
			continue
		}
		centroids[i] = Color{
			R: roundChannel(rSum[i] / weight[i]),
			G: roundChannel(gSum[i] / weight[i]),
			B: roundChannel(bSum[i] / weight[i]),
		}
	}
}

func roundChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

// padEntries repeats centroids until the palette has exactly k entries.
// Fewer distinct colors than k is accepted, not an error.
func padEntries(entries []Entry, k int) []Entry {
	n := len(entries)
	for i := 0; len(entries) < k; i++ {
		dup := entries[i%n]
		dup.Population = 0
		entries = append(entries, dup)
	}
	return entries
}

// distanceSq is the squared euclidean distance in RGB space. The square
// root is skipped since distances are only compared to each other.
func distanceSq(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}
