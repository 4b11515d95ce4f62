package imagehash

import "sort"

// mean returns the arithmetic mean of the samples. An empty sample set is a
// programming error (hash sizes are validated before sampling) and panics.
func mean(samples []float64) float64 {
	if len(samples) == 0 {
		panic("imagehash: mean of empty sample set")
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// median returns the median of the samples, averaging the two middle values
// for even-length input. An empty sample set panics, as with mean.
func median(samples []float64) float64 {
	if len(samples) == 0 {
		panic("imagehash: median of empty sample set")
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
