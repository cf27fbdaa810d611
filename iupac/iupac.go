// Package iupac stores the nucleotide ambiguity codes: which definite bases
// each symbol stands for, and how symbols complement each other.
//
// Relevant documentation:
//
//	https://www.bioinformatics.org/sms/iupac.html
package iupac

import (
	"bytes"
	"fmt"
)

// one bit per definite base. U shares the T bit.
const (
	A uint8 = 1 << iota
	C
	G
	T
	U = T

	// N stands for any definite base
	N = A | C | G | T
)

var (
	masks      [256]uint8
	complement [256]byte
)

func init() {
	set := func(c byte, bits uint8, comp byte) {
		masks[c] = bits
		masks[c+'a'-'A'] = bits
		complement[c] = comp
		complement[c+'a'-'A'] = comp + 'a' - 'A'
	}
	set('A', A, 'T')
	set('C', C, 'G')
	set('G', G, 'C')
	set('T', T, 'A')
	set('U', U, 'A')
	set('R', A|G, 'Y')
	set('Y', C|T, 'R')
	set('S', C|G, 'S')
	set('W', A|T, 'W')
	set('K', G|T, 'M')
	set('M', A|C, 'K')
	set('B', C|G|T, 'V')
	set('D', A|G|T, 'H')
	set('H', A|C|T, 'D')
	set('V', A|C|G, 'B')
	set('N', N, 'N')
}

// Mask returns the set of definite bases represented by b, or 0 if b
// is not a nucleotide symbol
func Mask(b byte) uint8 {
	return masks[b]
}

// IsSymbol reports whether b belongs to the nucleotide alphabet
func IsSymbol(b byte) bool {
	return masks[b] != 0
}

// IsDefinite reports whether b stands for exactly one base
func IsDefinite(b byte) bool {
	m := masks[b]
	return m != 0 && m&(m-1) == 0
}

// Expand returns the definite bases represented by b, in ACGT order.
// T is returned for U.
func Expand(b byte) []byte {
	m := masks[b]
	out := make([]byte, 0, 4)
	for i, base := range []byte("ACGT") {
		if m&(1<<uint(i)) != 0 {
			out = append(out, base)
		}
	}
	return out
}

// Complement returns the complementary symbol of b, keeping its case.
// 0 is returned for a byte outside the alphabet.
func Complement(b byte) byte {
	return complement[b]
}

// ReverseComplement returns a new sequence holding the reverse complement
// of seq. If seq is RNA (contains an U), A is complemented to U.
// Bytes outside the alphabet are copied unchanged.
func ReverseComplement(seq []byte) []byte {

	rna := bytes.IndexAny(seq, "Uu") != -1

	out := make([]byte, len(seq))
	for i, j := 0, len(seq)-1; j >= 0; i, j = i+1, j-1 {
		b := seq[j]
		c := complement[b]
		switch {
		case c == 0:
			c = b
		case rna && c == 'T':
			c = 'U'
		case rna && c == 't':
			c = 'u'
		}
		out[i] = c
	}
	return out
}

// InvalidSymbolError is returned when a sequence holds a byte outside
// the nucleotide alphabet
type InvalidSymbolError struct {
	Symbol byte
	// 0-based position of the symbol in the sequence
	Pos    int
	Reason string
}

func (e *InvalidSymbolError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid symbol %q at position %d: %s", e.Symbol, e.Pos+1, e.Reason)
	}
	return fmt.Sprintf("invalid symbol %q at position %d; allowed: A C G T U R Y S W K M B D H V N", e.Symbol, e.Pos+1)
}

// Validate checks that every byte of seq is a nucleotide symbol, and
// that the sequence does not mix T and U
func Validate(seq []byte) error {

	firstT, firstU := -1, -1
	for i, b := range seq {
		switch b {
		case 'T', 't':
			if firstT == -1 {
				firstT = i
			}
		case 'U', 'u':
			if firstU == -1 {
				firstU = i
			}
		default:
			if masks[b] == 0 {
				return &InvalidSymbolError{Symbol: b, Pos: i}
			}
		}
	}
	if firstT != -1 && firstU != -1 {
		pos := firstT
		if firstU > firstT {
			pos = firstU
		}
		return &InvalidSymbolError{Symbol: seq[pos], Pos: pos, Reason: "sequence mixes T and U"}
	}
	return nil
}
