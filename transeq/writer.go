package transeq

import (
	"bytes"

	"github.com/feliixx/transprime/fasta"
	"github.com/feliixx/transprime/iupac"
	"github.com/feliixx/transprime/ncbicode"
)

const (
	// size of the buffer for writing to file
	maxBufferSize = 1024 * 1024 * 10

	// max line size for sequence
	maxLineSize = fasta.LineSize
)

// suffixes to add to sequence id for each frame
const suffixes = "123456"

// writer formats the translated frames of one sequence at a time
type writer struct {
	buf    *bytes.Buffer
	clean  bool
	trim   bool
	staden bool
}

func newWriter(options Options) *writer {
	return &writer{
		buf:    bytes.NewBuffer(make([]byte, 0, 4096)),
		clean:  options.Clean,
		trim:   options.Trim,
		staden: options.Staden,
	}
}

// translate writes the selected frames of record to the buffer. On
// error, the buffer is left empty.
func (w *writer) translate(t Translator, frames [NumFrames]bool, record fasta.Record) error {

	w.buf.Reset()

	if err := iupac.Validate(record.Seq); err != nil {
		return err
	}

	var rc []byte
	for frameIndex, selected := range frames {

		if !selected {
			continue
		}

		strand, offset := record.Seq, frameIndex
		if frameIndex >= 3 {
			if rc == nil {
				rc = iupac.ReverseComplement(record.Seq)
			}
			strand, offset = rc, frameIndex-3
			if w.staden {
				offset = stadenOffsets(len(record.Seq))[frameIndex-3]
			}
		}

		f, err := t.frame(strand, offset)
		if err != nil {
			w.buf.Reset()
			return err
		}
		if !f.Found {
			continue
		}
		w.writeID(record, frameIndex)
		w.writeProtein(f.Protein)
	}
	return nil
}

// sequence id should look like
// >sequenceID_<frame> comment
func (w *writer) writeID(record fasta.Record, frameIndex int) {
	w.buf.WriteByte('>')
	w.buf.WriteString(record.ID)
	w.buf.WriteByte('_')
	w.buf.WriteByte(suffixes[frameIndex])
	if record.Comment != "" {
		w.buf.WriteByte(' ')
		w.buf.WriteString(record.Comment)
	}
	w.buf.WriteByte('\n')
}

func (w *writer) writeProtein(protein []byte) {

	if w.clean {
		for i, aa := range protein {
			if aa == ncbicode.Stop {
				protein[i] = ncbicode.Unknown
			}
		}
	}
	if w.trim {
		protein = bytes.TrimRight(protein, "X*")
	}

	for start := 0; start < len(protein); start += maxLineSize {
		end := start + maxLineSize
		if end > len(protein) {
			end = len(protein)
		}
		w.buf.Write(protein[start:end])
		w.buf.WriteByte('\n')
	}
}

// bytes returns a copy of the buffer content
func (w *writer) bytes() []byte {
	return append([]byte(nil), w.buf.Bytes()...)
}
