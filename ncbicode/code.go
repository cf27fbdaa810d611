// Package ncbicode stores codon <-> AA
// translation.
//
// Relevant documentation:
//
//	https://www.ncbi.nlm.nih.gov/Taxonomy/Utils/wprintgc.cgi?chapter=tgencodes#SG1
package ncbicode

import (
	"fmt"
	"sort"
)

const (
	Standard                                                    = 1
	VertebrateMitochondrial                                     = 2
	YeastMitochondrial                                          = 3
	MoldProtozoanCoelenterateMitochondrialMycoplasmaSpiroplasma = 4
	InvertebrateMitochondrial                                   = 5
	CiliateDasycladaceanHexamita                                = 6
	EchinodermFlatwormMitochondrial                             = 9
	Euplotid                                                    = 10
	BacterialArchaealPlantPlastid                               = 11
	AlternativeYeast                                            = 12
	AscidianMitochondrial                                       = 13
	AlternativeFlatwormMitochondrial                            = 14
	BlepharismaMacronuclear                                     = 15
	ChlorophyceanMitochondrial                                  = 16
	TrematodeMitochondrial                                      = 21
	ScenedesmusObliquusMitochondrial                            = 22
	ThraustochytriumMitochondrial                               = 23
	PterobranchiaMitochondrial                                  = 24
	CandidateDivisionSR1Gracilibacteria                         = 25
	PachysolenTannophilus                                       = 26
	Karyorelict                                                 = 27
	Condylostoma                                                = 28
	Mesodinium                                                  = 29
	Peritrich                                                   = 30
	Blastocrithidia                                             = 31
	BalanophoraceaePlastid                                      = 32
	CephalodiscidaeMitochondrial                                = 33
)

// raw NCBI tables. Codons are listed in this order:
//
//	base 1  TTTTTTTTTTTTTTTTCCCCCCCCCCCCCCCCAAAAAAAAAAAAAAAAGGGGGGGGGGGGGGGG
//	base 2  TTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGG
//	base 3  TCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAG
//
// in the starts row, 'M' flags a start codon
var rawTables = []struct {
	id       int
	name     string
	residues string
	starts   string
}{
	{Standard, "Standard",
		"FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"---M------**--*----M---------------M----------------------------"},
	{VertebrateMitochondrial, "Vertebrate Mitochondrial",
		"FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSS**VVVVAAAADDEEGGGG",
		"----------**--------------------MMMM----------**---M------------"},
	{YeastMitochondrial, "Yeast Mitochondrial",
		"FFLLSSSSYY**CCWWTTTTPPPPHHQQRRRRIIMMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"----------**----------------------MM---------------M------------"},
	{MoldProtozoanCoelenterateMitochondrialMycoplasmaSpiroplasma, "Mold, Protozoan, and Coelenterate Mitochondrial; Mycoplasma; Spiroplasma",
		"FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"--MM------**-------M------------MMMM---------------M------------"},
	{InvertebrateMitochondrial, "Invertebrate Mitochondrial",
		"FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSSSSVVVVAAAADDEEGGGG",
		"---M------**--------------------MMMM---------------M------------"},
	{CiliateDasycladaceanHexamita, "Ciliate, Dasycladacean and Hexamita Nuclear",
		"FFLLSSSSYYQQCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"--------------*--------------------M----------------------------"},
	{EchinodermFlatwormMitochondrial, "Echinoderm and Flatworm Mitochondrial",
		"FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNNKSSSSVVVVAAAADDEEGGGG",
		"----------**-----------------------M---------------M------------"},
	{Euplotid, "Euplotid Nuclear",
		"FFLLSSSSYY**CCCWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"----------**-----------------------M----------------------------"},
	{BacterialArchaealPlantPlastid, "Bacterial, Archaeal and Plant Plastid",
		"FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"---M------**--*----M------------MMMM---------------M------------"},
	{AlternativeYeast, "Alternative Yeast Nuclear",
		"FFLLSSSSYY**CC*WLLLSPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"----------**--*----M---------------M----------------------------"},
	{AscidianMitochondrial, "Ascidian Mitochondrial",
		"FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSSGGVVVVAAAADDEEGGGG",
		"---M------**----------------------MM---------------M------------"},
	{AlternativeFlatwormMitochondrial, "Alternative Flatworm Mitochondrial",
		"FFLLSSSSYYY*CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNNKSSSSVVVVAAAADDEEGGGG",
		"-----------*-----------------------M----------------------------"},
	{BlepharismaMacronuclear, "Blepharisma Macronuclear",
		"FFLLSSSSYY*QCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"----------*---*--------------------M----------------------------"},
	{ChlorophyceanMitochondrial, "Chlorophycean Mitochondrial",
		"FFLLSSSSYY*LCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"----------*---*--------------------M----------------------------"},
	{TrematodeMitochondrial, "Trematode Mitochondrial",
		"FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNNKSSSSVVVVAAAADDEEGGGG",
		"----------**-----------------------M---------------M------------"},
	{ScenedesmusObliquusMitochondrial, "Scenedesmus obliquus Mitochondrial",
		"FFLLSS*SYY*LCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"------*---*---*--------------------M----------------------------"},
	{ThraustochytriumMitochondrial, "Thraustochytrium Mitochondrial",
		"FF*LSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"--*-------**--*-----------------M--M---------------M------------"},
	{PterobranchiaMitochondrial, "Pterobranchia Mitochondrial",
		"FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSSKVVVVAAAADDEEGGGG",
		"---M------**-------M---------------M---------------M------------"},
	{CandidateDivisionSR1Gracilibacteria, "Candidate Division SR1 and Gracilibacteria",
		"FFLLSSSSYY**CCGWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"---M------**-----------------------M---------------M------------"},
	{PachysolenTannophilus, "Pachysolen tannophilus Nuclear",
		"FFLLSSSSYY**CC*WLLLAPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"----------**--*----M---------------M----------------------------"},
	{Karyorelict, "Karyorelict Nuclear",
		"FFLLSSSSYYQQCCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"--------------*--------------------M----------------------------"},
	{Condylostoma, "Condylostoma Nuclear",
		"FFLLSSSSYYQQCCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"----------**--*--------------------M----------------------------"},
	{Mesodinium, "Mesodinium Nuclear",
		"FFLLSSSSYYYYCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"--------------*--------------------M----------------------------"},
	{Peritrich, "Peritrich Nuclear",
		"FFLLSSSSYYEECC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"--------------*--------------------M----------------------------"},
	{Blastocrithidia, "Blastocrithidia Nuclear",
		"FFLLSSSSYYEECCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"----------**-----------------------M----------------------------"},
	{BalanophoraceaePlastid, "Balanophoraceae Plastid",
		"FFLLSSSSYY*WCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
		"---M------*---*----M------------MMMM---------------M------------"},
	{CephalodiscidaeMitochondrial, "Cephalodiscidae Mitochondrial",
		"FFLLSSSSYYY*CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSSKVVVVAAAADDEEGGGG",
		"---M-------*-------M---------------M---------------M------------"},
}

var tables = map[int]*Table{}

func init() {
	for _, raw := range rawTables {
		t := &Table{
			ID:   raw.id,
			Name: raw.name,
		}
		copy(t.residues[:], raw.residues)
		for i := range t.starts {
			t.starts[i] = raw.starts[i] == 'M'
		}
		tables[raw.id] = t
	}
}

// LoadTableCode returns the genetic code identified by its NCBI number.
// 0 is accepted as an alias of the standard code.
//
// The returned table is shared and must not be modified.
func LoadTableCode(code int) (*Table, error) {
	if code == 0 {
		code = Standard
	}
	t, ok := tables[code]
	if !ok {
		return nil, fmt.Errorf("invalid table code: %v", code)
	}
	return t, nil
}

// Codes returns the available NCBI table numbers in increasing order
func Codes() []int {
	codes := make([]int, 0, len(tables))
	for code := range tables {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
