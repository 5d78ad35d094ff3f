package table

import (
	"sort"
	"strings"

	"incosedss/domain/survey"

	"github.com/go-gota/gota/series"
	"golang.org/x/text/cases"
)

// Series is one column coerced to strings. Missing cells read as
// survey.MissingLabel and are flagged so callers can skip them.
type Series struct {
	Name    string
	values  []string
	missing []bool
}

func newSeries(name string, col series.Series) *Series {
	n := col.Len()
	s := &Series{Name: name, values: make([]string, n), missing: make([]bool, n)}
	for i := 0; i < n; i++ {
		e := col.Elem(i)
		if e.IsNA() {
			s.values[i] = survey.MissingLabel
			s.missing[i] = true
			continue
		}
		s.values[i] = e.String()
	}
	return s
}

// NewSeries builds a series from plain values; an empty value is missing
func NewSeries(name string, values []string) *Series {
	s := &Series{Name: name, values: make([]string, len(values)), missing: make([]bool, len(values))}
	for i, v := range values {
		if v == "" {
			s.values[i] = survey.MissingLabel
			s.missing[i] = true
			continue
		}
		s.values[i] = v
	}
	return s
}

// Len returns the number of values
func (s *Series) Len() int {
	return len(s.values)
}

// Value returns the coerced value at row i
func (s *Series) Value(i int) string {
	return s.values[i]
}

// IsMissing reports whether row i had no response
func (s *Series) IsMissing(i int) bool {
	return s.missing[i]
}

// Values returns every coerced value in row order
func (s *Series) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// CountContaining counts rows whose value contains any of the tokens, ignoring
// case. Missing rows never match.
func (s *Series) CountContaining(tokens ...string) int {
	folder := cases.Fold()
	folded := make([]string, len(tokens))
	for i, token := range tokens {
		folded[i] = folder.String(token)
	}

	count := 0
	for i, v := range s.values {
		if s.missing[i] {
			continue
		}
		value := folder.String(v)
		for _, token := range folded {
			if strings.Contains(value, token) {
				count++
				break
			}
		}
	}
	return count
}

// Distinct returns the sorted distinct non-missing values
func (s *Series) Distinct() []string {
	seen := make(map[string]struct{})
	var out []string
	for i, v := range s.values {
		if s.missing[i] {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
