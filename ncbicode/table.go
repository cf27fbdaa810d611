package ncbicode

import (
	"fmt"

	"github.com/feliixx/transprime/iupac"
)

const (
	// Stop is the residue of a stop codon
	Stop = '*'
	// Unknown is the residue of a codon that can't be resolved to a
	// single amino acid
	Unknown = 'X'
	// StartResidue is the residue written for a start codon at the
	// beginning of a protein, whatever the codon would encode elsewhere
	StartResidue = 'M'
)

// Table is an NCBI genetic code: the residue encoded by each of the 64
// definite codons, and whether the codon can start a protein
type Table struct {
	ID   int
	Name string

	residues [64]byte
	starts   [64]bool
}

// NCBI order is T, C, A, G, so the raw tables can be indexed directly
var baseIndex [256]int8

func init() {
	for i := range baseIndex {
		baseIndex[i] = -1
	}
	for i, bases := range []string{"Tt", "Cc", "Aa", "Gg"} {
		for j := 0; j < len(bases); j++ {
			baseIndex[bases[j]] = int8(i)
		}
	}
	baseIndex['U'], baseIndex['u'] = 0, 0
}

// InvalidCodonError is returned when a codon is not made of exactly three
// definite nucleotides
type InvalidCodonError struct {
	Codon string
}

func (e *InvalidCodonError) Error() string {
	return fmt.Sprintf("invalid codon %q: expected 3 definite nucleotides", e.Codon)
}

func codonIndex(codon []byte) (int, error) {
	if len(codon) != 3 {
		return 0, &InvalidCodonError{Codon: string(codon)}
	}
	n1, n2, n3 := baseIndex[codon[0]], baseIndex[codon[1]], baseIndex[codon[2]]
	if n1 < 0 || n2 < 0 || n3 < 0 {
		return 0, &InvalidCodonError{Codon: string(codon)}
	}
	return int(n1)<<4 | int(n2)<<2 | int(n3), nil
}

// Lookup returns the residue encoded by codon, or Stop
func (t *Table) Lookup(codon []byte) (byte, error) {
	i, err := codonIndex(codon)
	if err != nil {
		return 0, err
	}
	return t.residues[i], nil
}

// IsStart reports whether codon is flagged as a start codon
func (t *Table) IsStart(codon []byte) (bool, error) {
	i, err := codonIndex(codon)
	if err != nil {
		return false, err
	}
	return t.starts[i], nil
}

// Resolve is like Lookup, but also accepts degenerate codons. A degenerate
// codon resolves to the residue shared by all of its expansions, or to
// Unknown if they encode different residues. For example, with the
// standard code:
//
//	GTN -> 'V'
//	TAR -> '*'
//	ANN -> 'X'
func (t *Table) Resolve(codon []byte) (byte, error) {

	if i, err := codonIndex(codon); err == nil {
		return t.residues[i], nil
	}
	if len(codon) != 3 {
		return 0, &InvalidCodonError{Codon: string(codon)}
	}
	for _, b := range codon {
		if !iupac.IsSymbol(b) {
			return 0, &InvalidCodonError{Codon: string(codon)}
		}
	}

	var residue byte
	for _, n1 := range iupac.Expand(codon[0]) {
		for _, n2 := range iupac.Expand(codon[1]) {
			for _, n3 := range iupac.Expand(codon[2]) {
				r := t.residues[int(baseIndex[n1])<<4|int(baseIndex[n2])<<2|int(baseIndex[n3])]
				if residue == 0 {
					residue = r
				} else if r != residue {
					return Unknown, nil
				}
			}
		}
	}
	return residue, nil
}

// StartCodons returns the start codons of the table, in NCBI order
func (t *Table) StartCodons() []string {
	var codons []string
	for i, start := range t.starts {
		if start {
			codons = append(codons, codonAt(i))
		}
	}
	return codons
}

// StopCodons returns the codons translated to Stop, in NCBI order
func (t *Table) StopCodons() []string {
	var codons []string
	for i, r := range t.residues {
		if r == Stop {
			codons = append(codons, codonAt(i))
		}
	}
	return codons
}

func codonAt(i int) string {
	const bases = "TCAG"
	return string([]byte{bases[i>>4], bases[i>>2&3], bases[i&3]})
}
