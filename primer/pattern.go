// Package primer finds degenerate primers in nucleotide sequences.
//
// A primer is compiled to a Pattern, one set of accepted bases per
// position. Patterns can be concatenated with gaps of arbitrary length, so
// a forward primer and a reverse primer are located by a single search:
//
//	p, err := primer.Amplicon(fwd, rev)
//	matches, err := primer.FindAll(p, alignedRow, gapMask)
//
// and the region between the primers is matches[i].Parts[1].
package primer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/feliixx/transprime/iupac"
)

// MalformedPatternError is returned when a pattern can't be built from a
// sequence
type MalformedPatternError struct {
	Symbol byte
	// 0-based position of Symbol in the sequence
	Pos    int
	Reason string
}

func (e *MalformedPatternError) Error() string {
	if e.Reason != "" {
		return "malformed pattern: " + e.Reason
	}
	return fmt.Sprintf("malformed pattern: unknown symbol %q at position %d", e.Symbol, e.Pos+1)
}

// an element is either a set of bases matching exactly one position, or
// a gap matching between min and max positions of any symbol
type element struct {
	mask uint8
	gap  bool
	min  int
	// negative for an unbounded gap
	max int
}

// Pattern is an ordered list of parts: compiled sequences and gaps.
// The zero value matches nothing.
type Pattern struct {
	elems []element
	// index of the first element of each part
	parts []int
	// set by Amplicon
	amplicon bool
}

// Compile converts a nucleotide sequence to a single part pattern. A
// definite base matches itself, a degenerate base matches any of the bases
// it represents. Matching is case insensitive, and T matches U.
func Compile(seq []byte) (Pattern, error) {

	if len(seq) == 0 {
		return Pattern{}, &MalformedPatternError{Reason: "empty sequence"}
	}

	elems := make([]element, len(seq))
	for i, b := range seq {
		m := iupac.Mask(b)
		if m == 0 {
			return Pattern{}, &MalformedPatternError{Symbol: b, Pos: i}
		}
		elems[i] = element{mask: m}
	}
	return Pattern{elems: elems, parts: []int{0}}, nil
}

// MustCompile is like Compile but panics if seq is not a valid sequence
func MustCompile(seq string) Pattern {
	p, err := Compile([]byte(seq))
	if err != nil {
		panic(err)
	}
	return p
}

// Gap returns a pattern matching between min and max symbols of any kind.
// A negative max means no upper bound.
func Gap(min, max int) Pattern {
	if min < 0 {
		min = 0
	}
	if max >= 0 && max < min {
		max = min
	}
	return Pattern{
		elems: []element{{gap: true, min: min, max: max}},
		parts: []int{0},
	}
}

// Concat returns a pattern matching each of patterns one after the other.
// The parts of the result are the parts of patterns, in order.
func Concat(patterns ...Pattern) Pattern {
	var p Pattern
	for _, q := range patterns {
		for _, start := range q.parts {
			p.parts = append(p.parts, len(p.elems)+start)
		}
		p.elems = append(p.elems, q.elems...)
	}
	return p
}

// Amplicon returns the pattern of the region amplified by a pair of
// primers. Both primers are given 5' to 3', so rev is reverse complemented
// before being compiled. The pattern has three parts: the forward primer,
// an unbounded gap, and the reverse complement of the reverse primer.
func Amplicon(fwd, rev []byte) (Pattern, error) {
	f, err := Compile(fwd)
	if err != nil {
		return Pattern{}, fmt.Errorf("forward primer: %w", err)
	}
	r, err := Compile(iupac.ReverseComplement(rev))
	if err != nil {
		return Pattern{}, fmt.Errorf("reverse primer: %w", err)
	}
	p := Concat(f, Gap(0, -1), r)
	p.amplicon = true
	return p, nil
}

// IsAmplicon reports whether p was built by Amplicon, in which case the
// second part of a match is the region between the primers
func (p Pattern) IsAmplicon() bool {
	return p.amplicon
}

// NumParts returns the number of parts of the pattern
func (p Pattern) NumParts() int {
	return len(p.parts)
}

// MinLen returns the length of the shortest sequence matching p
func (p Pattern) MinLen() int {
	n := 0
	for _, e := range p.elems {
		if e.gap {
			n += e.min
		} else {
			n++
		}
	}
	return n
}

// String returns the pattern as a regular expression, for example
// "AC[AC].*GG"
func (p Pattern) String() string {
	var sb strings.Builder
	for _, e := range p.elems {
		if e.gap {
			sb.WriteByte('.')
			switch {
			case e.min == 0 && e.max < 0:
				sb.WriteByte('*')
			case e.max < 0:
				sb.WriteString("{" + strconv.Itoa(e.min) + ",}")
			case e.min == e.max:
				sb.WriteString("{" + strconv.Itoa(e.min) + "}")
			default:
				sb.WriteString("{" + strconv.Itoa(e.min) + "," + strconv.Itoa(e.max) + "}")
			}
			continue
		}
		bases := iupac.Expand(baseOf(e.mask))
		if len(bases) == 1 {
			sb.WriteByte(bases[0])
			continue
		}
		sb.WriteByte('[')
		sb.Write(bases)
		sb.WriteByte(']')
	}
	return sb.String()
}

// symbol with the given mask, so that iupac.Expand can list its bases
var symbolOfMask [16]byte

func init() {
	for _, b := range []byte("ACGTRYSWKMBDHVN") {
		symbolOfMask[iupac.Mask(b)] = b
	}
}

func baseOf(mask uint8) byte {
	return symbolOfMask[mask&15]
}
