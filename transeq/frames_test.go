package transeq_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/feliixx/transprime/iupac"
	"github.com/feliixx/transprime/ncbicode"
	"github.com/feliixx/transprime/transeq"
)

func loadTable(t testing.TB, code int) *ncbicode.Table {
	t.Helper()
	table, err := ncbicode.LoadTableCode(code)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestTranslateSixFramesPolicies(t *testing.T) {

	standard := loadTable(t, ncbicode.Standard)
	seq := []byte("AUGGCCUAAUAG")

	tests := []struct {
		name      string
		start     transeq.Policy
		stop      transeq.Policy
		wantFound bool
		expected  string
	}{
		{name: "raw", start: transeq.None, stop: transeq.None, wantFound: true, expected: "MA**"},
		{name: "stop required", start: transeq.None, stop: transeq.Require, wantFound: true, expected: "MA"},
		{name: "start and stop required", start: transeq.Require, stop: transeq.Require, wantFound: true, expected: "MA"},
		{name: "start required", start: transeq.Require, stop: transeq.None, wantFound: true, expected: "MA**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := transeq.TranslateSixFrames(seq, standard, tt.start, tt.stop)
			if err != nil {
				t.Fatal(err)
			}
			f := frames[0]
			if f.Name != "1" || f.Reverse || f.Offset != 0 {
				t.Errorf("unexpected frame 0 description: %+v", f)
			}
			if f.Found != tt.wantFound {
				t.Errorf("expected found=%v but got %v", tt.wantFound, f.Found)
			}
			if want, got := tt.expected, string(f.Protein); want != got {
				t.Errorf("expected %s but got %s", want, got)
			}
		})
	}
}

func TestTranslateSixFramesRawLengths(t *testing.T) {

	standard := loadTable(t, ncbicode.Standard)
	r := rand.New(rand.NewSource(42))

	for length := 0; length < 40; length++ {

		seq := randomSequence(r, length)
		frames, err := transeq.TranslateSixFrames(seq, standard, transeq.None, transeq.None)
		if err != nil {
			t.Fatal(err)
		}

		for i, f := range frames {
			offset := i % 3
			want := 0
			if length > offset {
				want = (length - offset) / 3
			}
			if !f.Found {
				t.Errorf("len %d frame %s: raw translation should always be found", length, f.Name)
			}
			if len(f.Protein) != want {
				t.Errorf("len %d frame %s: expected %d residues but got %d", length, f.Name, want, len(f.Protein))
			}
		}
	}
}

func TestReverseFramesAreForwardFramesOfReverseComplement(t *testing.T) {

	bacterial := loadTable(t, ncbicode.BacterialArchaealPlantPlastid)
	r := rand.New(rand.NewSource(7))

	for n := 0; n < 50; n++ {

		seq := randomSequence(r, r.Intn(200))
		rc := iupac.ReverseComplement(seq)

		for _, policy := range []transeq.Policy{transeq.None, transeq.Require} {

			frames, err := transeq.TranslateSixFrames(seq, bacterial, policy, policy)
			if err != nil {
				t.Fatal(err)
			}
			rcFrames, err := transeq.TranslateSixFrames(rc, bacterial, policy, policy)
			if err != nil {
				t.Fatal(err)
			}
			for k := 0; k < 3; k++ {
				if !bytes.Equal(frames[3+k].Protein, rcFrames[k].Protein) || frames[3+k].Found != rcFrames[k].Found {
					t.Errorf("%s: frame %s differs from frame %s of the reverse complement", seq, frames[3+k].Name, rcFrames[k].Name)
				}
			}
		}
	}
}

func TestStartStopRequiredProteins(t *testing.T) {

	r := rand.New(rand.NewSource(1))

	for _, code := range ncbicode.Codes() {

		table := loadTable(t, code)
		for n := 0; n < 20; n++ {

			frames, err := transeq.TranslateSixFrames(randomSequence(r, 300), table, transeq.Require, transeq.Require)
			if err != nil {
				t.Fatal(err)
			}
			for _, f := range frames {
				if !f.Found {
					continue
				}
				if len(f.Protein) == 0 || f.Protein[0] != ncbicode.StartResidue {
					t.Errorf("table %d frame %s: protein %s should begin with M", code, f.Name, f.Protein)
				}
				if bytes.IndexByte(f.Protein, ncbicode.Stop) != -1 {
					t.Errorf("table %d frame %s: protein %s holds a stop", code, f.Name, f.Protein)
				}
			}
		}
	}
}

func TestFirstStartThenFirstStop(t *testing.T) {

	standard := loadTable(t, ncbicode.Standard)
	bacterial := loadTable(t, ncbicode.BacterialArchaealPlantPlastid)

	tests := []struct {
		name      string
		table     *ncbicode.Table
		seq       string
		start     transeq.Policy
		stop      transeq.Policy
		wantFound bool
		expected  string
	}{
		{
			name:      "stop before start is skipped",
			table:     standard,
			seq:       "TAAGCCATGAAATGGTGATAA",
			start:     transeq.Require,
			stop:      transeq.Require,
			wantFound: true,
			expected:  "MKW",
		},
		{
			name:      "second start kept as is",
			table:     standard,
			seq:       "ATGATGTAA",
			start:     transeq.Require,
			stop:      transeq.Require,
			wantFound: true,
			expected:  "MM",
		},
		{
			name:      "alternative start recoded to M",
			table:     bacterial,
			seq:       "GCCGTGAAATAA",
			start:     transeq.Require,
			stop:      transeq.Require,
			wantFound: true,
			expected:  "MK",
		},
		{
			name:      "GTG is not a start in the standard code",
			table:     standard,
			seq:       "GCCGTGAAATAA",
			start:     transeq.Require,
			stop:      transeq.Require,
			wantFound: false,
		},
		{
			name:      "no stop after start",
			table:     standard,
			seq:       "TAAATGAAA",
			start:     transeq.Require,
			stop:      transeq.Require,
			wantFound: false,
		},
		{
			name:      "no stop",
			table:     standard,
			seq:       "GCCAAA",
			start:     transeq.None,
			stop:      transeq.Require,
			wantFound: false,
		},
		{
			name:      "stop as first codon",
			table:     standard,
			seq:       "TGAAAA",
			start:     transeq.None,
			stop:      transeq.Require,
			wantFound: true,
			expected:  "",
		},
		{
			name:      "start only keeps internal stops",
			table:     standard,
			seq:       "CCCATGTAAGGG",
			start:     transeq.Require,
			stop:      transeq.None,
			wantFound: true,
			expected:  "M*G",
		},
		{
			name:      "trailing nucleotides dropped",
			table:     standard,
			seq:       "ATGGCCAT",
			start:     transeq.None,
			stop:      transeq.None,
			wantFound: true,
			expected:  "MA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := transeq.TranslateSixFrames([]byte(tt.seq), tt.table, tt.start, tt.stop)
			if err != nil {
				t.Fatal(err)
			}
			if frames[0].Found != tt.wantFound {
				t.Fatalf("expected found=%v but got %v (%s)", tt.wantFound, frames[0].Found, frames[0].Protein)
			}
			if want, got := tt.expected, string(frames[0].Protein); want != got {
				t.Errorf("expected %s but got %s", want, got)
			}
		})
	}
}

func TestEmptySequence(t *testing.T) {

	standard := loadTable(t, ncbicode.Standard)

	frames, err := transeq.TranslateSixFrames(nil, standard, transeq.None, transeq.None)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range frames {
		if !f.Found || len(f.Protein) != 0 {
			t.Errorf("frame %s: expected an empty raw translation, got %+v", f.Name, f)
		}
	}

	frames, err = transeq.TranslateSixFrames([]byte{}, standard, transeq.Require, transeq.Require)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range frames {
		if f.Found || len(f.Protein) != 0 {
			t.Errorf("frame %s: expected no protein, got %+v", f.Name, f)
		}
	}
}

func TestTranslateErrors(t *testing.T) {

	standard := loadTable(t, ncbicode.Standard)

	_, err := transeq.TranslateSixFrames([]byte("ATGXCC"), standard, transeq.None, transeq.None)
	var symErr *iupac.InvalidSymbolError
	if !errors.As(err, &symErr) {
		t.Errorf("expected an InvalidSymbolError, got %v", err)
	}

	_, err = transeq.TranslateSixFrames([]byte("ATGNCC"), standard, transeq.None, transeq.None)
	var codonErr *ncbicode.InvalidCodonError
	if !errors.As(err, &codonErr) {
		t.Errorf("expected an InvalidCodonError, got %v", err)
	}

	translator := transeq.Translator{Table: standard, Resolve: true}
	frames, err := translator.SixFrames([]byte("ATGNCCGGN"))
	if err != nil {
		t.Fatal(err)
	}
	if want, got := "MXG", string(frames[0].Protein); want != got {
		t.Errorf("expected %s but got %s", want, got)
	}
}

func TestParsePolicy(t *testing.T) {

	for s, want := range map[string]transeq.Policy{"": transeq.None, "none": transeq.None, "require": transeq.Require} {
		got, err := transeq.ParsePolicy(s)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q): expected %v but got %v (%v)", s, want, got, err)
		}
		if s != "" && got.String() != s {
			t.Errorf("expected %s but got %s", s, got.String())
		}
	}
	if _, err := transeq.ParsePolicy("always"); err == nil {
		t.Error("expected an error for an unknown policy")
	}
}

func randomSequence(r *rand.Rand, length int) []byte {
	const bases = "ACGT"
	seq := make([]byte, length)
	for i := range seq {
		seq[i] = bases[r.Intn(len(bases))]
	}
	return seq
}
