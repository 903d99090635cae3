// Package ingest reads interaction-log exports (CSV and XLSX) and streams
// them as canonical field maps.
package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the streaming CSV parser.
type CSVOptions struct {
	Delimiter  rune // 0 = sniff from the header line
	Comment    rune // comment character (0 = none)
	LazyQuotes bool
}

// StreamCSV reads an export and sends one Row per data line. The first
// line is treated as the header and resolved through the field alias
// table. Caller must consume the row channel; both channels are closed
// when processing completes.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan Row, <-chan error) {
	rowCh := make(chan Row, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		buf := bufio.NewReader(r)
		delim := opts.Delimiter
		if delim == 0 {
			sample, _ := buf.Peek(4096)
			delim = DetectDelimiter(string(sample))
		}

		reader := csv.NewReader(buf)
		reader.Comma = delim
		if opts.Comment != 0 {
			reader.Comment = opts.Comment
		}
		reader.LazyQuotes = opts.LazyQuotes
		reader.FieldsPerRecord = -1 // exports pad rows inconsistently

		var fields []string
		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			if fields == nil {
				fields = resolveHeader(record)
				continue
			}

			row := buildRow(fields, record)
			if row == nil {
				continue
			}

			select {
			case rowCh <- row:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// DetectDelimiter picks the delimiter from a sample of the file. Spanish
// locale exports commonly use ';'; tab-separated dumps also show up.
func DetectDelimiter(sample string) rune {
	if i := strings.IndexByte(sample, '\n'); i >= 0 {
		sample = sample[:i]
	}
	best, bestCount := ',', strings.Count(sample, ",")
	for _, cand := range []rune{';', '\t', '|'} {
		if c := strings.Count(sample, string(cand)); c > bestCount {
			best, bestCount = cand, c
		}
	}
	return best
}
