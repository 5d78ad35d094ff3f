// Package analysis computes the survey aggregates: headline counts, value
// distributions and the domain by membership cross-tabulation.
package analysis

import (
	"sort"

	"incosedss/internal/table"

	"github.com/montanaflynn/stats"
)

// NotAvailable is reported as the top value of an empty distribution.
const NotAvailable = "N/A"

// Bucket is one distinct value and how many rows carry it
type Bucket struct {
	Label   string
	Count   int
	Missing bool
}

// Distribution is the value frequency of one field. Buckets are ordered by
// count descending; equal counts keep the order in which values first appear.
type Distribution struct {
	Field   string
	Buckets []Bucket
	Total   int
}

// NewDistribution counts every distinct value of a series. Missing cells are
// counted together under one bucket so bucket counts always sum to the row count.
func NewDistribution(s *table.Series) Distribution {
	// an answer spelled like the missing label still counts as answered
	type key struct {
		label   string
		missing bool
	}
	index := make(map[key]int)
	var buckets []Bucket
	for i := 0; i < s.Len(); i++ {
		k := key{label: s.Value(i), missing: s.IsMissing(i)}
		pos, ok := index[k]
		if !ok {
			pos = len(buckets)
			index[k] = pos
			buckets = append(buckets, Bucket{Label: k.label, Missing: k.missing})
		}
		buckets[pos].Count++
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	return Distribution{Field: s.Name, Buckets: buckets, Total: s.Len()}
}

// Top returns the most frequent answered value, or NotAvailable
func (d Distribution) Top() string {
	top := d.TopN(1)
	if len(top) == 0 {
		return NotAvailable
	}
	return top[0]
}

// TopN returns up to n of the most frequent answered values
func (d Distribution) TopN(n int) []string {
	var out []string
	for _, b := range d.Buckets {
		if len(out) >= n {
			break
		}
		if b.Missing {
			continue
		}
		out = append(out, b.Label)
	}
	return out
}

// Count returns the count of one value, zero when absent
func (d Distribution) Count(label string) int {
	for _, b := range d.Buckets {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}

// Empty reports whether the distribution has no buckets
func (d Distribution) Empty() bool {
	return len(d.Buckets) == 0
}

// Summary describes how concentrated a distribution is
type Summary struct {
	Categories  int
	MeanCount   float64
	MedianCount float64
	TopShare    float64
}

// Summary computes category level statistics over the bucket counts
func (d Distribution) Summary() Summary {
	summary := Summary{Categories: len(d.Buckets)}
	if len(d.Buckets) == 0 || d.Total == 0 {
		return summary
	}

	counts := make(stats.Float64Data, len(d.Buckets))
	for i, b := range d.Buckets {
		counts[i] = float64(b.Count)
	}

	if mean, err := stats.Mean(counts); err == nil {
		summary.MeanCount = mean
	}
	if median, err := stats.Median(counts); err == nil {
		summary.MedianCount = median
	}
	if top := d.Top(); top != NotAvailable {
		summary.TopShare = float64(d.Count(top)) / float64(d.Total)
	}
	return summary
}
