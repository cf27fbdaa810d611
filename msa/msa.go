// Package msa holds multiple sequence alignments and locates primer pairs
// in each of their rows.
package msa

import (
	"fmt"
)

// IsGap reports whether b is an alignment gap symbol
func IsGap(b byte) bool {
	return b == '-' || b == '.'
}

// Alignment is a set of rows of equal length. Rows are not copied, and
// must not be modified once the alignment is built.
type Alignment struct {
	IDs  []string
	Rows [][]byte
}

// New returns an alignment with the given rows, in order
func New(ids []string, rows [][]byte) (*Alignment, error) {
	if len(ids) != len(rows) {
		return nil, fmt.Errorf("%d ids for %d rows", len(ids), len(rows))
	}
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row %s has length %d, expected %d", ids[i], len(row), len(rows[0]))
		}
	}
	return &Alignment{IDs: ids, Rows: rows}, nil
}

// NumRows returns the number of sequences in the alignment
func (a *Alignment) NumRows() int {
	return len(a.Rows)
}

// Len returns the number of columns of the alignment
func (a *Alignment) Len() int {
	if len(a.Rows) == 0 {
		return 0
	}
	return len(a.Rows[0])
}

// GapMask returns, for each column, whether row i holds a gap
func (a *Alignment) GapMask(i int) []bool {
	row := a.Rows[i]
	mask := make([]bool, len(row))
	for j, b := range row {
		mask[j] = IsGap(b)
	}
	return mask
}

// Degap returns row i without its gaps
func (a *Alignment) Degap(i int) []byte {
	return RemoveGaps(a.Rows[i])
}

// RemoveGaps returns a copy of row without its gap symbols
func RemoveGaps(row []byte) []byte {
	out := make([]byte, 0, len(row))
	for _, b := range row {
		if !IsGap(b) {
			out = append(out, b)
		}
	}
	return out
}

// Slice returns the alignment restricted to columns [start, stop).
// Rows of the result share memory with a.
func (a *Alignment) Slice(start, stop int) (*Alignment, error) {
	if start < 0 || stop > a.Len() || start > stop {
		return nil, fmt.Errorf("invalid columns [%d, %d) for an alignment of length %d", start, stop, a.Len())
	}
	rows := make([][]byte, len(a.Rows))
	for i, row := range a.Rows {
		rows[i] = row[start:stop]
	}
	return &Alignment{IDs: a.IDs, Rows: rows}, nil
}
