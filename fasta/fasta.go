// Package fasta reads and writes nucleotide and protein sequences in fasta
// format:
//
//	>sequenceID some comments on sequence
//	ACAGGCAGAGACACGACAGACGACGACACAGGAGCAGACAGCAGCAGACGACCACATATT
//	TTTGCGGTCACATGACGACTTCGGCAGCGA
//
// see https://blast.ncbi.nlm.nih.gov/Blast.cgi?CMD=Web&PAGE_TYPE=BlastDocs&DOC_TYPE=BlastHelp
// section 1 for details
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const (
	mb = 1 << 20

	// MaxSeqLength is the longest line the reader accepts
	MaxSeqLength = 100 * mb

	// LineSize is the number of residues per line written by Write
	LineSize = 60
)

// Record is a single fasta entry
type Record struct {
	ID string
	// everything after the first space of the header line, if any
	Comment string
	Seq     []byte
}

// Header returns the record's header line without the leading '>'
func (r Record) Header() string {
	if r.Comment == "" {
		return r.ID
	}
	return r.ID + " " + r.Comment
}

// Reader reads records one at a time
type Reader struct {
	scanner *bufio.Scanner
	// header line of the next record, already consumed
	next    []byte
	hasNext bool
	seqBuf  *bytes.Buffer
	line    int
}

// NewReader returns a Reader reading from r
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxSeqLength)
	return &Reader{
		scanner: scanner,
		seqBuf:  bytes.NewBuffer(make([]byte, 0, 4096)),
	}
}

// Next returns the next record, or io.EOF when the input is exhausted.
// Sequence bytes are copied, so a record stays valid after subsequent
// calls.
func (r *Reader) Next() (Record, error) {

	if !r.hasNext {
		if err := r.readHeader(); err != nil {
			return Record{}, err
		}
	}

	rec := parseHeader(r.next)
	r.hasNext = false
	r.seqBuf.Reset()

	for r.scanner.Scan() {
		r.line++
		line := bytes.TrimRight(r.scanner.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			r.next = append(r.next[:0], line...)
			r.hasNext = true
			break
		}
		// if the line doesn't start with '>', then it's a part of the
		// sequence, so write it to the buffer
		r.seqBuf.Write(bytes.TrimSpace(line))
	}
	if err := r.scanner.Err(); err != nil {
		return Record{}, fmt.Errorf("fail to read fasta input: %w", err)
	}

	rec.Seq = append([]byte(nil), r.seqBuf.Bytes()...)
	return rec, nil
}

func (r *Reader) readHeader() error {
	for r.scanner.Scan() {
		r.line++
		line := bytes.TrimRight(r.scanner.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] != '>' {
			return fmt.Errorf("line %d: expected a fasta header starting with '>', got %.20q", r.line, line)
		}
		r.next = append(r.next[:0], line...)
		return nil
	}
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("fail to read fasta input: %w", err)
	}
	return io.EOF
}

// parse the ID of the sequence. ID is formatted like this:
// >sequenceID comments
func parseHeader(line []byte) Record {
	line = line[1:]
	idEnd := bytes.IndexByte(line, ' ')
	if idEnd == -1 {
		return Record{ID: string(line)}
	}
	return Record{
		ID:      string(line[:idEnd]),
		Comment: string(line[idEnd+1:]),
	}
}

// ReadAll reads every remaining record of r
func ReadAll(r io.Reader) ([]Record, error) {
	var records []Record
	reader := NewReader(r)
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// Write writes rec to w, wrapping the sequence every LineSize residues
func Write(w io.Writer, rec Record) error {

	buf := bytes.NewBuffer(make([]byte, 0, len(rec.Seq)+len(rec.Seq)/LineSize+len(rec.ID)+len(rec.Comment)+4))
	buf.WriteByte('>')
	buf.WriteString(rec.Header())
	buf.WriteByte('\n')
	for start := 0; start < len(rec.Seq); start += LineSize {
		end := start + LineSize
		if end > len(rec.Seq) {
			end = len(rec.Seq)
		}
		buf.Write(rec.Seq[start:end])
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}
