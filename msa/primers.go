package msa

import (
	"runtime"

	"github.com/feliixx/transprime/primer"
	"golang.org/x/sync/errgroup"
)

// RowMatch holds the occurrences of a pattern in one row of an alignment
type RowMatch struct {
	Row     int
	ID      string
	Matches []primer.Match
	// set when the row couldn't be searched; other rows are not affected
	Err error

	amplicon bool
}

// Found reports whether the pattern occurs in the row
func (r RowMatch) Found() bool {
	return r.Err == nil && len(r.Matches) > 0
}

// Inner returns the region found between the primers by the first match,
// in alignment columns. For a pattern built with primer.Amplicon it is the
// second part of the match; for any other pattern, the whole match.
func (r RowMatch) Inner() (primer.Span, bool) {
	if !r.Found() {
		return primer.Span{}, false
	}
	m := r.Matches[0]
	if r.amplicon {
		return m.Parts[1], true
	}
	return m.Span, true
}

// FindPrimers searches p in every row of the alignment, ignoring the gap
// columns of each row. Rows are searched concurrently by at most workers
// goroutines, or one per CPU if workers <= 0. Results are in row order.
func FindPrimers(a *Alignment, p primer.Pattern, workers int) []RowMatch {

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]RowMatch, a.NumRows())

	var g errgroup.Group
	g.SetLimit(workers)

	for i := range a.Rows {
		i := i
		g.Go(func() error {
			results[i] = findInRow(a, i, p)
			return nil
		})
	}
	// row failures are reported in the results
	_ = g.Wait()

	return results
}

func findInRow(a *Alignment, i int, p primer.Pattern) RowMatch {

	r := RowMatch{Row: i, ID: a.IDs[i], amplicon: p.IsAmplicon()}
	r.Matches, r.Err = primer.FindAll(p, a.Rows[i], a.GapMask(i))
	return r
}
