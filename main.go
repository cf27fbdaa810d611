package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/feliixx/transprime/fasta"
	"github.com/feliixx/transprime/msa"
	"github.com/feliixx/transprime/ncbicode"
	"github.com/feliixx/transprime/primer"
	"github.com/feliixx/transprime/transeq"
	"github.com/jessevdk/go-flags"
)

const (
	version  = "0.3.0"
	toolName = "transprime"
)

// GlobalOptions struct to store command line args shared by all commands
type GlobalOptions struct {
	General `group:"general"`
}

// General struct to store general command line args
type General struct {
	Version bool `short:"v" long:"version" description:"Print the tool version and exit"`
	Verbose bool `long:"verbose" description:"Print progress messages on stderr"`
}

// environment is shared by the commands of a parser
type environment struct {
	global *GlobalOptions
	stdout io.Writer
	logger *log.Logger
}

func (e *environment) verbosef(format string, args ...interface{}) {
	if e.global.Verbose {
		e.logger.Printf(format, args...)
	}
}

// Required struct to store required args of the translate command
type Required struct {
	Sequence string `short:"s" long:"sequence" value-name:"<filename>" description:"Nucleotide sequence(s) filename"`
	Outseq   string `short:"o" long:"outseq" value-name:"<filename>" description:"Protein sequence filename"`
}

type translateCommand struct {
	Required        `group:"required"`
	transeq.Options `group:"optional"`

	env *environment
}

func (c *translateCommand) Execute(args []string) error {

	if c.Sequence == "" {
		return fmt.Errorf("missing required parameter -s | --sequence, try %s translate --help for details", toolName)
	}
	if c.Outseq == "" {
		return fmt.Errorf("missing required parameter -o | --outseq, try %s translate --help for details", toolName)
	}

	in, err := os.Open(c.Sequence)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(c.Outseq)
	if err != nil {
		return err
	}
	defer out.Close()

	c.Logger = c.env.logger

	start := time.Now()
	err = transeq.Translate(in, out, c.Options)
	if err != nil {
		return fmt.Errorf("fail to translate file: %w", err)
	}
	c.env.verbosef("translated %s to %s in %v", c.Sequence, c.Outseq, time.Since(start))
	return nil
}

type primersCommand struct {
	Sequence  string `short:"s" long:"sequence" value-name:"<filename>" description:"Aligned nucleotide sequences filename, in fasta format. Gaps are '-' or '.'"`
	Outfile   string `short:"o" long:"outfile" value-name:"<filename>" description:"Output filename, default is the standard output"`
	Forward   string `long:"forward" value-name:"<primer>" description:"Forward primer, 5' to 3'. IUPAC degenerate symbols are accepted"`
	Reverse   string `long:"reverse" value-name:"<primer>" description:"Reverse primer, 5' to 3' on the opposite strand. IUPAC degenerate symbols are accepted"`
	Extract   bool   `short:"x" long:"extract" description:"Write the region between the primers of each sequence in fasta format instead of a table of positions"`
	Degap     bool   `long:"degap" description:"Remove gaps from the regions written with --extract"`
	NumWorker int    `short:"n" long:"numcpu" value-name:"<n>" env:"TRANSPRIME_NUMCPU" description:"Number of threads to use, default is number of CPU"`

	env *environment
}

func (c *primersCommand) Execute(args []string) error {

	if c.Sequence == "" {
		return fmt.Errorf("missing required parameter -s | --sequence, try %s primers --help for details", toolName)
	}
	if c.Forward == "" || c.Reverse == "" {
		return fmt.Errorf("missing required parameter --forward or --reverse, try %s primers --help for details", toolName)
	}

	p, err := primer.Amplicon([]byte(c.Forward), []byte(c.Reverse))
	if err != nil {
		return err
	}

	a, err := readAlignment(c.Sequence)
	if err != nil {
		return err
	}
	c.env.verbosef("searching %s in %d sequences of %d columns", p, a.NumRows(), a.Len())

	results := msa.FindPrimers(a, p, c.NumWorker)

	var out io.Writer = c.env.stdout
	if c.Outfile != "" {
		f, err := os.Create(c.Outfile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	bw := bufio.NewWriter(out)
	if c.Extract {
		err = writeRegions(bw, a, results, c.Degap)
	} else {
		err = writeSpans(bw, results)
	}
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return fmt.Errorf("fail to write to output file: %w", err)
	}

	found := 0
	for _, r := range results {
		if r.Err != nil {
			c.env.logger.Printf("skipping sequence %s: %v", r.ID, r.Err)
		}
		if r.Found() {
			found++
		}
	}
	c.env.verbosef("primers found in %d/%d sequences", found, len(results))
	return nil
}

func readAlignment(filename string) (*msa.Alignment, error) {

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := fasta.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("fail to read alignment: %w", err)
	}

	ids := make([]string, len(records))
	rows := make([][]byte, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
		rows[i] = rec.Seq
	}
	return msa.New(ids, rows)
}

// writeSpans writes one line per sequence, with the columns of the first
// amplicon and of the region between the primers
func writeSpans(w io.Writer, results []msa.RowMatch) error {

	if _, err := fmt.Fprintln(w, "id\tstart\tstop\tinner_start\tinner_stop"); err != nil {
		return err
	}
	for _, r := range results {
		var err error
		switch {
		case r.Err != nil:
			_, err = fmt.Fprintf(w, "%s\terror\t%v\n", r.ID, r.Err)
		case !r.Found():
			_, err = fmt.Fprintf(w, "%s\tno_match\n", r.ID)
		default:
			m := r.Matches[0]
			inner, _ := r.Inner()
			_, err = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", r.ID, m.Start, m.Stop, inner.Start, inner.Stop)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// writeRegions writes the region between the primers of each sequence
// where they are found
func writeRegions(w io.Writer, a *msa.Alignment, results []msa.RowMatch, degap bool) error {

	for _, r := range results {
		inner, ok := r.Inner()
		if !ok {
			continue
		}
		seq := a.Rows[r.Row][inner.Start:inner.Stop]
		if degap {
			seq = msa.RemoveGaps(seq)
		}
		rec := fasta.Record{
			ID:      r.ID,
			Comment: fmt.Sprintf("%d-%d", inner.Start, inner.Stop),
			Seq:     seq,
		}
		if err := fasta.Write(w, rec); err != nil {
			return err
		}
	}
	return nil
}

type tablesCommand struct {
	Codons bool `long:"codons" description:"Also print the start and stop codons of each table"`

	env *environment
}

func (c *tablesCommand) Execute(args []string) error {

	w := bufio.NewWriter(c.env.stdout)
	for _, code := range ncbicode.Codes() {
		table, err := ncbicode.LoadTableCode(code)
		if err != nil {
			return err
		}
		if c.Codons {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", table.ID, table.Name,
				strings.Join(table.StartCodons(), ","),
				strings.Join(table.StopCodons(), ","),
			)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\n", table.ID, table.Name)
	}
	return w.Flush()
}

func newParser(options *GlobalOptions, stdout, stderr io.Writer) *flags.Parser {

	env := &environment{
		global: options,
		stdout: stdout,
		logger: log.New(stderr, toolName+": ", 0),
	}

	p := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	p.SubcommandsOptional = true

	p.AddCommand("translate",
		"Translate nucleotide sequences",
		"Translate nucleic acid sequences to their corresponding peptide sequences, in one or several frames",
		&translateCommand{env: env},
	)
	p.AddCommand("primers",
		"Locate a primer pair in aligned sequences",
		"Locate a degenerate primer pair in each sequence of an alignment, ignoring gaps, and report the region between the primers",
		&primersCommand{env: env},
	)
	p.AddCommand("tables",
		"List the genetic codes",
		"List the available NCBI genetic code tables",
		&tablesCommand{env: env},
	)
	return p
}

func main() {

	var options GlobalOptions
	p := newParser(&options, os.Stdout, os.Stderr)

	_, err := p.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Printf("%s version %s\n\n%v\n", toolName, version, err)
				os.Exit(0)
			}
			fmt.Printf("wrong arguments: %v, try %s --help for more informations\n", err, toolName)
			os.Exit(1)
		}
		fmt.Printf("%s: %v\n", toolName, err)
		os.Exit(1)
	}

	if p.Active == nil {
		if options.Version {
			fmt.Printf("%s version %s\n", toolName, version)
			os.Exit(0)
		}
		fmt.Printf("%s version %s\n\n", toolName, version)
		p.WriteHelp(os.Stdout)
	}
}
