package transeq

import (
	"fmt"

	"github.com/feliixx/transprime/iupac"
	"github.com/feliixx/transprime/ncbicode"
)

// NumFrames is the number of reading frames of a nucleotide sequence
const NumFrames = 6

// frame names, forward frames first
var frameNames = [NumFrames]string{"1", "2", "3", "-1", "-2", "-3"}

// Policy tells whether a translation has to begin with a start codon,
// or end with a stop codon
type Policy int

const (
	// None keeps the raw translation
	None Policy = iota
	// Require restricts the translation to start at the first start
	// codon, or to end before the first stop codon
	Require
)

// ParsePolicy converts "none" or "require" to a Policy
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "none":
		return None, nil
	case "require":
		return Require, nil
	}
	return None, fmt.Errorf("invalid policy %q, expected 'none' or 'require'", s)
}

func (p Policy) String() string {
	if p == Require {
		return "require"
	}
	return "none"
}

// Frame is the translation of a sequence in one reading frame
type Frame struct {
	// 1, 2, 3, -1, -2 or -3
	Name    string
	Reverse bool
	// position of the first codon on its strand
	Offset  int
	Protein []byte
	// false when the policy in force found no protein in the frame
	Found bool
}

// Translator translates nucleotide sequences with a genetic code
//
// A Translator holds no state besides its configuration, so the same
// value can be used from several goroutines.
type Translator struct {
	Table *ncbicode.Table
	Start Policy
	Stop  Policy
	// Resolve translates degenerate codons with Table.Resolve instead of
	// failing with an InvalidCodonError
	Resolve bool
}

// TranslateSixFrames translates seq in its six reading frames, in this
// order: 1, 2, 3, -1, -2, -3. Reverse frame k is forward frame k of the
// reverse complement of seq.
func TranslateSixFrames(seq []byte, table *ncbicode.Table, start, stop Policy) ([NumFrames]Frame, error) {
	t := Translator{Table: table, Start: start, Stop: stop}
	return t.SixFrames(seq)
}

// SixFrames is like TranslateSixFrames, with the translator's configuration
func (t Translator) SixFrames(seq []byte) (frames [NumFrames]Frame, err error) {

	if err := iupac.Validate(seq); err != nil {
		return frames, err
	}

	rc := iupac.ReverseComplement(seq)
	for i := range frames {
		strand, offset := seq, i
		if i >= 3 {
			strand, offset = rc, i-3
		}
		frames[i], err = t.frame(strand, offset)
		if err != nil {
			return frames, err
		}
		frames[i].Name = frameNames[i]
		frames[i].Reverse = i >= 3
	}
	return frames, nil
}

// Frame translates a single strand starting at offset, with the
// translator's policies. It's up to the caller to reverse complement
// strand for a reverse frame.
func (t Translator) Frame(strand []byte, offset int) (Frame, error) {
	if err := iupac.Validate(strand); err != nil {
		return Frame{}, err
	}
	return t.frame(strand, offset)
}

func (t Translator) frame(strand []byte, offset int) (Frame, error) {

	f := Frame{Offset: offset}

	nCodons := 0
	if len(strand) > offset {
		nCodons = (len(strand) - offset) / 3
	}

	protein := make([]byte, nCodons)
	firstStart := -1

	// read the sequence 3 letters at a time, starting at a specific
	// position corresponding to the frame. The last one or two
	// nucleotides that can't form a codon are dropped
	for i := 0; i < nCodons; i++ {

		pos := offset + 3*i
		codon := strand[pos : pos+3]

		aa, err := t.Table.Lookup(codon)
		if err != nil {
			if !t.Resolve {
				return f, err
			}
			if aa, err = t.Table.Resolve(codon); err != nil {
				return f, err
			}
		} else if firstStart == -1 && t.Start == Require {
			if isStart, _ := t.Table.IsStart(codon); isStart {
				firstStart = i
			}
		}
		protein[i] = aa
	}

	begin := 0
	if t.Start == Require {
		if firstStart == -1 {
			return f, nil
		}
		begin = firstStart
		protein[begin] = ncbicode.StartResidue
	}

	end := len(protein)
	if t.Stop == Require {
		end = -1
		for i := begin; i < len(protein); i++ {
			if protein[i] == ncbicode.Stop {
				end = i
				break
			}
		}
		if end == -1 {
			return f, nil
		}
	}

	f.Protein = protein[begin:end]
	f.Found = true
	return f, nil
}
