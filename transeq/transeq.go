package transeq

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"runtime"
	"sync"

	"github.com/feliixx/transprime/fasta"
	"github.com/feliixx/transprime/ncbicode"
)

// Options struct to store translation command line args
type Options struct {
	Frame     string `short:"f" long:"frame" value-name:"<code>" description:"Frame to translate. Possible values:\n  [1, 2, 3, F, -1, -2, -3, R, 6]\n F: forward three frames\n R: reverse three frames\n 6: all 6 frames\n" default:"1"`
	Table     int    `short:"t" long:"table" value-name:"<code>" env:"TRANSPRIME_TABLE" description:"NCBI code to use, see https://www.ncbi.nlm.nih.gov/Taxonomy/Utils/wprintgc.cgi?chapter=tgencodes#SG1 for details. Run the 'tables' command for the list of available codes. 0 is an alias of 1, the standard code" default:"1"`
	Start     string `long:"start" value-name:"<policy>" choice:"none" choice:"require" description:"With 'require', a frame is translated from its first start codon, written as 'M'. Frames without start codon are not written" default:"none"`
	Stop      string `long:"stop" value-name:"<policy>" choice:"none" choice:"require" description:"With 'require', a frame is translated up to its first stop codon, excluded. Frames without stop codon are not written" default:"none"`
	Clean     bool   `short:"c" long:"clean" description:"Replace stop codon '*' by 'X'"`
	Staden    bool   `long:"staden" description:"Define frame '-1' as the reverse-complement having the same codon phase as frame 1, instead of using the set of codons starting with the last nucleotide of the sequence"`
	Trim      bool   `short:"T" long:"trim" description:"Removes all 'X' and '*' characters from the right end of the translation. The trimming process starts at the end and continues until the next character is not a 'X' or a '*'"`
	NumWorker int    `short:"n" long:"numcpu" value-name:"<n>" env:"TRANSPRIME_NUMCPU" description:"Number of threads to use, default is number of CPU"`

	Logger *log.Logger `no-flag:"true"`
}

func computeFrames(frameName string) (frames [NumFrames]bool, err error) {

	var frameMap = map[string][NumFrames]bool{
		"1":  {true, false, false, false, false, false},
		"2":  {false, true, false, false, false, false},
		"3":  {false, false, true, false, false, false},
		"F":  {true, true, true, false, false, false},
		"-1": {false, false, false, true, false, false},
		"-2": {false, false, false, false, true, false},
		"-3": {false, false, false, false, false, true},
		"R":  {false, false, false, true, true, true},
		"6":  {true, true, true, true, true, true},
	}

	f, ok := frameMap[frameName]
	if !ok {
		return frames, fmt.Errorf("wrong value for -f | --frame parameter: %s", frameName)
	}
	return f, nil
}

// Staden convention: frame -1 is the reverse-complement of the sequence
// having the same codon phase as frame 1. Frame -2 is the same phase as
// frame 2, frame -3 the same phase as frame 3.
//
// the offsets of the reverse frames depend on the length of the sequence
func stadenOffsets(seqLength int) [3]int {
	switch seqLength % 3 {
	case 1:
		return [3]int{1, 0, 2}
	case 2:
		return [3]int{2, 1, 0}
	}
	return [3]int{0, 2, 1}
}

type job struct {
	index  int
	record fasta.Record
}

type result struct {
	index int
	data  []byte
}

// Translate reads a fasta file, translates each sequence to the
// corresponding protein sequences in the specified frames, and writes
// them to out in the order of the input.
//
// A sequence that can't be translated is reported to the logger and
// skipped. Errors reading the input or writing the output stop the
// translation.
func Translate(inputSequence io.Reader, out io.Writer, options Options) error {

	framesToGenerate, err := computeFrames(options.Frame)
	if err != nil {
		return err
	}

	table, err := ncbicode.LoadTableCode(options.Table)
	if err != nil {
		return err
	}

	start, err := ParsePolicy(options.Start)
	if err != nil {
		return err
	}
	stop, err := ParsePolicy(options.Stop)
	if err != nil {
		return err
	}

	if options.NumWorker <= 0 {
		options.NumWorker = runtime.NumCPU()
	}
	logger := options.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	translator := Translator{
		Table:   table,
		Start:   start,
		Stop:    stop,
		Resolve: true,
	}

	fnaSequences := make(chan job, 10*options.NumWorker)
	results := make(chan result, 10*options.NumWorker)
	readErr := make(chan error, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		readErr <- readSequenceFromFasta(ctx, inputSequence, fnaSequences)
	}()

	var wg sync.WaitGroup
	wg.Add(options.NumWorker)

	for nWorker := 0; nWorker < options.NumWorker; nWorker++ {

		go func() {

			defer wg.Done()

			w := newWriter(options)

			for j := range fnaSequences {

				err := w.translate(translator, framesToGenerate, j.record)
				if err != nil {
					logger.Printf("skipping sequence %s: %v", j.record.ID, err)
				}

				select {
				case results <- result{index: j.index, data: w.bytes()}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	writeErr := writeInOrder(out, results, cancel)

	if err := <-readErr; err != nil {
		return err
	}
	return writeErr
}

// writeInOrder writes the results as soon as all the previous ones are
// written. After a write error, remaining results are drained and dropped.
func writeInOrder(out io.Writer, results <-chan result, cancel context.CancelFunc) error {

	bw := bufio.NewWriterSize(out, maxBufferSize)
	pending := map[int][]byte{}
	next := 0

	var err error
	for r := range results {
		if err != nil {
			continue
		}
		pending[r.index] = r.data
		for {
			data, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if _, err = bw.Write(data); err != nil {
				err = fmt.Errorf("fail to write to output file: %w", err)
				cancel()
				break
			}
		}
	}
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("fail to write to output file: %w", err)
	}
	return nil
}

func readSequenceFromFasta(ctx context.Context, inputSequence io.Reader, fnaSequences chan<- job) error {

	defer close(fnaSequences)

	reader := fasta.NewReader(inputSequence)
	for index := 0; ; index++ {

		record, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		select {
		case fnaSequences <- job{index: index, record: record}:
		case <-ctx.Done():
			return nil
		}
	}
}
