package ncbicode_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/feliixx/transprime/ncbicode"
)

func TestLookup(t *testing.T) {

	standard, err := ncbicode.LoadTableCode(ncbicode.Standard)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		codon    string
		expected byte
	}{
		{"ATG", 'M'},
		{"AUG", 'M'},
		{"aug", 'M'},
		{"GCC", 'A'},
		{"TAA", '*'},
		{"UAG", '*'},
		{"TGA", '*'},
		{"TGG", 'W'},
		{"GGG", 'G'},
		{"TTT", 'F'},
	}

	for _, tt := range tests {
		got, err := standard.Lookup([]byte(tt.codon))
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.codon, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%s: expected %c but got %c", tt.codon, tt.expected, got)
		}
	}
}

func TestLookupInvalidCodon(t *testing.T) {

	standard, _ := ncbicode.LoadTableCode(ncbicode.Standard)

	for _, codon := range []string{"", "AT", "ATGA", "ATN", "MAA", "A-G", "XYZ"} {
		_, err := standard.Lookup([]byte(codon))
		var codonErr *ncbicode.InvalidCodonError
		if !errors.As(err, &codonErr) {
			t.Errorf("%q: expected an InvalidCodonError, got %v", codon, err)
		}
		_, err = standard.IsStart([]byte(codon))
		if !errors.As(err, &codonErr) {
			t.Errorf("%q: IsStart expected an InvalidCodonError, got %v", codon, err)
		}
	}
}

func TestTablesDifferOnlyByData(t *testing.T) {

	standard, _ := ncbicode.LoadTableCode(ncbicode.Standard)
	bacterial, _ := ncbicode.LoadTableCode(ncbicode.BacterialArchaealPlantPlastid)

	if want, got := standard.StopCodons(), bacterial.StopCodons(); !reflect.DeepEqual(want, got) {
		t.Errorf("expected the same stop codons %v but got %v", want, got)
	}
	if want, got := []string{"TTG", "CTG", "ATG"}, standard.StartCodons(); !reflect.DeepEqual(want, got) {
		t.Errorf("standard: expected start codons %v but got %v", want, got)
	}
	if want, got := []string{"TTG", "CTG", "ATT", "ATC", "ATA", "ATG", "GTG"}, bacterial.StartCodons(); !reflect.DeepEqual(want, got) {
		t.Errorf("bacterial: expected start codons %v but got %v", want, got)
	}

	isStart, err := bacterial.IsStart([]byte("GTG"))
	if err != nil || !isStart {
		t.Errorf("GTG should be a start codon in table 11")
	}
	isStart, _ = standard.IsStart([]byte("GTG"))
	if isStart {
		t.Errorf("GTG should not be a start codon in table 1")
	}

	mito, _ := ncbicode.LoadTableCode(ncbicode.VertebrateMitochondrial)
	if want, got := []string{"TAA", "TAG", "AGA", "AGG"}, mito.StopCodons(); !reflect.DeepEqual(want, got) {
		t.Errorf("vertebrate mitochondrial: expected stop codons %v but got %v", want, got)
	}
	if aa, _ := mito.Lookup([]byte("TGA")); aa != 'W' {
		t.Errorf("TGA should be W in table 2, got %c", aa)
	}
}

func TestResolve(t *testing.T) {

	standard, _ := ncbicode.LoadTableCode(ncbicode.Standard)

	tests := []struct {
		codon    string
		expected byte
	}{
		{"ATG", 'M'},
		{"GTN", 'V'},
		{"TAR", '*'},
		{"TRA", '*'},
		{"ANN", 'X'},
		{"NNN", 'X'},
		{"CTN", 'L'},
		{"YTR", 'L'},
		{"YTN", 'X'},
		{"gcn", 'A'},
	}

	for _, tt := range tests {
		got, err := standard.Resolve([]byte(tt.codon))
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.codon, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%s: expected %c but got %c", tt.codon, tt.expected, got)
		}
	}

	for _, codon := range []string{"AT", "A-G", "AEG"} {
		if _, err := standard.Resolve([]byte(codon)); err == nil {
			t.Errorf("%q: expected an error", codon)
		}
	}
}

func TestLoadTableCode(t *testing.T) {

	zero, err := ncbicode.LoadTableCode(0)
	if err != nil {
		t.Fatal(err)
	}
	if zero.ID != ncbicode.Standard {
		t.Errorf("table 0 should alias the standard code, got %d", zero.ID)
	}

	for _, code := range []int{-1, 7, 8, 17, 20, 34} {
		if _, err := ncbicode.LoadTableCode(code); err == nil {
			t.Errorf("table %d should not exist", code)
		}
	}

	codes := ncbicode.Codes()
	if len(codes) != 27 {
		t.Errorf("expected 27 tables but got %d", len(codes))
	}
	for _, code := range codes {
		table, err := ncbicode.LoadTableCode(code)
		if err != nil {
			t.Fatal(err)
		}
		for _, codon := range allCodons() {
			aa, err := table.Lookup([]byte(codon))
			if err != nil || aa == 0 {
				t.Errorf("table %d: codon %s is not mapped", code, codon)
			}
		}
	}
}

func allCodons() []string {
	var codons []string
	for _, n1 := range "ACGT" {
		for _, n2 := range "ACGT" {
			for _, n3 := range "ACGT" {
				codons = append(codons, string([]rune{n1, n2, n3}))
			}
		}
	}
	return codons
}
