package primer

import (
	"bytes"
	"fmt"

	"github.com/feliixx/transprime/iupac"
)

// Span is a half-open interval [Start, Stop) of positions in a target
type Span struct {
	Start int
	Stop  int
}

// Len returns the number of positions covered by the span
func (s Span) Len() int {
	return s.Stop - s.Start
}

// Match is an occurrence of a pattern in a target
type Match struct {
	Span
	// one span per part of the pattern
	Parts []Span
}

// FindAll returns the successive non-overlapping occurrences of p in
// target, from left to right. At each position the leftmost match is
// kept, and gaps are as long as possible.
//
// Positions i where ignore[i] is true are skipped, as if they were
// removed from target, but spans are reported in target coordinates. A
// nil ignore mask skips nothing.
//
// Only definite bases of target can match a base of the pattern, so an N
// in the target never matches, even against an N of the pattern. A kept
// byte outside the nucleotide alphabet, or a target mixing T and U, fails
// with an *iupac.InvalidSymbolError.
//
// The search takes at most O(len(p) * len(target)^2) steps.
func FindAll(p Pattern, target []byte, ignore []bool) ([]Match, error) {

	if ignore != nil && len(ignore) != len(target) {
		return nil, fmt.Errorf("ignore mask has length %d, target has length %d", len(ignore), len(target))
	}
	if len(p.elems) == 0 {
		return nil, nil
	}

	m, err := newMatcher(p, target, ignore)
	if err != nil {
		return nil, err
	}

	if m.exact != nil {
		return m.findExact(), nil
	}

	var matches []Match
	for at := 0; at < len(m.sym) && at+m.minAfter[0] <= len(m.sym); {
		if !m.match(0, at) {
			at++
			continue
		}
		matches = append(matches, m.current())
		end := m.bounds[len(m.elems)]
		if end > at {
			at = end
		} else {
			at++
		}
	}
	return matches, nil
}

type matcher struct {
	elems []element
	parts []int
	// base mask of each kept position of the target, 0 when the symbol
	// isn't a definite base
	sym []byte
	// target coordinate of each kept position
	pos []int
	// minAfter[k] is the min length matched by elems[k:]
	minAfter []int
	// bounds[k] is the position where elems[k] starts in the current match
	bounds []int
	// the pattern as a byte string, if it holds no gap and no degenerate base
	exact []byte
	// failed has one bit per (k, at) for which elems[k:] are known not to
	// match from at. It does not depend on where the match started, so it
	// is kept for the whole search.
	failed []uint64
	stride int
}

func newMatcher(p Pattern, target []byte, ignore []bool) (*matcher, error) {

	m := &matcher{
		elems:    p.elems,
		parts:    p.parts,
		sym:      make([]byte, 0, len(target)),
		pos:      make([]int, 0, len(target)),
		minAfter: make([]int, len(p.elems)+1),
		bounds:   make([]int, len(p.elems)+1),
	}

	firstT, firstU := -1, -1
	for i, b := range target {
		if ignore != nil && ignore[i] {
			continue
		}
		if !iupac.IsSymbol(b) {
			return nil, &iupac.InvalidSymbolError{Symbol: b, Pos: i}
		}
		switch b {
		case 'T', 't':
			if firstT == -1 {
				firstT = i
			}
		case 'U', 'u':
			if firstU == -1 {
				firstU = i
			}
		}
		var mask uint8
		if iupac.IsDefinite(b) {
			mask = iupac.Mask(b)
		}
		m.sym = append(m.sym, mask)
		m.pos = append(m.pos, i)
	}
	if firstT != -1 && firstU != -1 {
		pos := firstT
		if firstU > firstT {
			pos = firstU
		}
		return nil, &iupac.InvalidSymbolError{Symbol: target[pos], Pos: pos, Reason: "sequence mixes T and U"}
	}

	exact := make([]byte, 0, len(p.elems))
	for k := len(p.elems) - 1; k >= 0; k-- {
		e := p.elems[k]
		if e.gap {
			m.minAfter[k] = m.minAfter[k+1] + e.min
			exact = nil
			continue
		}
		m.minAfter[k] = m.minAfter[k+1] + 1
		if exact != nil && e.mask&(e.mask-1) == 0 {
			exact = append(exact, e.mask)
		} else {
			exact = nil
		}
	}
	if exact != nil {
		// built backward
		for i, j := 0, len(exact)-1; i < j; i, j = i+1, j-1 {
			exact[i], exact[j] = exact[j], exact[i]
		}
		m.exact = exact
		return m, nil
	}

	m.stride = len(m.sym) + 1
	m.failed = make([]uint64, (len(p.elems)+1)*m.stride/64+1)
	return m, nil
}

// Exact-match fast path: bytes.Index jump scanning. Masks of the target
// are compared directly with the single base masks of the pattern.
func (m *matcher) findExact() []Match {
	var matches []Match
	for i := 0; i < len(m.sym); {
		j := bytes.Index(m.sym[i:], m.exact)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(m.exact)
		for k := range m.bounds {
			m.bounds[k] = start + k
		}
		matches = append(matches, m.current())
		i = end
	}
	return matches
}

// match reports whether elems[k:] match the target from position at,
// recording the position of each element in bounds
func (m *matcher) match(k, at int) bool {

	for ; k < len(m.elems) && !m.elems[k].gap; k++ {
		if at >= len(m.sym) || m.sym[at]&m.elems[k].mask == 0 {
			return false
		}
		m.bounds[k] = at
		at++
	}
	m.bounds[k] = at
	if k == len(m.elems) {
		return true
	}

	state := k*m.stride + at
	if m.failed[state/64]&(1<<(state%64)) != 0 {
		return false
	}

	gap := m.elems[k]
	longest := len(m.sym) - at - m.minAfter[k+1]
	if gap.max >= 0 && gap.max < longest {
		longest = gap.max
	}
	for n := longest; n >= gap.min; n-- {
		if m.match(k+1, at+n) {
			m.bounds[k] = at
			return true
		}
	}
	m.failed[state/64] |= 1 << (state % 64)
	return false
}

// current converts the bounds of the last match to target coordinates
func (m *matcher) current() Match {
	end := m.bounds[len(m.elems)]
	match := Match{
		Span:  m.span(m.bounds[0], end),
		Parts: make([]Span, len(m.parts)),
	}
	for j, first := range m.parts {
		partEnd := end
		if j+1 < len(m.parts) {
			partEnd = m.bounds[m.parts[j+1]]
		}
		match.Parts[j] = m.span(m.bounds[first], partEnd)
	}
	return match
}

// span converts kept positions [from, to) to target coordinates. An empty
// span sits right after the kept position preceding it.
func (m *matcher) span(from, to int) Span {
	if to > from {
		return Span{Start: m.pos[from], Stop: m.pos[to-1] + 1}
	}
	p := 0
	if from > 0 {
		p = m.pos[from-1] + 1
	}
	return Span{Start: p, Stop: p}
}
