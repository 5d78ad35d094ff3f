package analysis

import (
	"fmt"
	"math"
	"sort"

	"incosedss/internal/table"

	"gonum.org/v1/gonum/stat/distuv"
)

// CrossTab counts rows for every (row value, column value) pair.
// Labels on both axes are sorted.
type CrossTab struct {
	RowField     string
	ColumnField  string
	Rows         []string
	Columns      []string
	Counts       [][]int
	RowTotals    []int
	ColumnTotals []int
	Total        int
}

// NewCrossTab cross-tabulates two series of equal length
func NewCrossTab(rows, columns *table.Series) (CrossTab, error) {
	if rows.Len() != columns.Len() {
		return CrossTab{}, fmt.Errorf("cross-tab series lengths differ: %d vs %d", rows.Len(), columns.Len())
	}

	rowLabels := sortedLabels(rows)
	colLabels := sortedLabels(columns)
	rowIndex := indexOf(rowLabels)
	colIndex := indexOf(colLabels)

	ct := CrossTab{
		RowField:     rows.Name,
		ColumnField:  columns.Name,
		Rows:         rowLabels,
		Columns:      colLabels,
		Counts:       make([][]int, len(rowLabels)),
		RowTotals:    make([]int, len(rowLabels)),
		ColumnTotals: make([]int, len(colLabels)),
	}
	for i := range ct.Counts {
		ct.Counts[i] = make([]int, len(colLabels))
	}

	for i := 0; i < rows.Len(); i++ {
		r := rowIndex[rows.Value(i)]
		c := colIndex[columns.Value(i)]
		ct.Counts[r][c]++
		ct.RowTotals[r]++
		ct.ColumnTotals[c]++
		ct.Total++
	}
	return ct, nil
}

// Count returns the cell for a row and column label
func (ct CrossTab) Count(row, column string) int {
	for i, r := range ct.Rows {
		if r != row {
			continue
		}
		for j, c := range ct.Columns {
			if c == column {
				return ct.Counts[i][j]
			}
		}
	}
	return 0
}

// Association is a chi-square test of independence over a cross-tab
type Association struct {
	ChiSquare        float64
	DegreesOfFreedom int
	PValue           float64
	CramersV         float64
}

// Association tests whether rows and columns are independent. It reports false
// for tables smaller than 2x2.
func (ct CrossTab) Association() (Association, bool) {
	if len(ct.Rows) < 2 || len(ct.Columns) < 2 || ct.Total == 0 {
		return Association{}, false
	}

	n := float64(ct.Total)
	chi2 := 0.0
	for i := range ct.Rows {
		for j := range ct.Columns {
			expected := float64(ct.RowTotals[i]) * float64(ct.ColumnTotals[j]) / n
			if expected == 0 {
				continue
			}
			diff := float64(ct.Counts[i][j]) - expected
			chi2 += diff * diff / expected
		}
	}

	df := (len(ct.Rows) - 1) * (len(ct.Columns) - 1)
	k := math.Min(float64(len(ct.Rows)-1), float64(len(ct.Columns)-1))

	return Association{
		ChiSquare:        chi2,
		DegreesOfFreedom: df,
		PValue:           ChiSquarePValue(chi2, df),
		CramersV:         math.Sqrt(chi2 / (n * k)),
	}, true
}

// ChiSquarePValue computes the upper tail p-value of the chi-square distribution
func ChiSquarePValue(chiSquare float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}

	chiDist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	return 1 - chiDist.CDF(chiSquare)
}

func sortedLabels(s *table.Series) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, v := range s.Values() {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		labels = append(labels, v)
	}
	sort.Strings(labels)
	return labels
}

func indexOf(labels []string) map[string]int {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return index
}
