package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/beyondcx/metrics-cli/internal/normalize"
)

// Row is one export line keyed by canonical field name. Headers the
// pipeline does not recognize are dropped at read time.
type Row map[string]string

// Stream opens an export file and streams its rows, dispatching on the
// file extension. The caller must drain the row channel and then check
// the error channel.
func Stream(ctx context.Context, path string) (<-chan Row, <-chan error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, eris.Wrap(err, "ingest: open file")
		}
		rowCh, errCh := StreamCSV(ctx, f, CSVOptions{LazyQuotes: true})
		out := make(chan Row, 64)
		go func() {
			defer f.Close()
			defer close(out)
			for row := range rowCh {
				select {
				case out <- row:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out, errCh, nil
	case ".xlsx":
		rowCh, errCh := StreamXLSX(ctx, path, XLSXOptions{})
		return rowCh, errCh, nil
	default:
		return nil, nil, eris.Errorf("ingest: unsupported file type %q", filepath.Ext(path))
	}
}

// resolveHeader maps each header cell to its canonical field name, or ""
// for headers the pipeline does not use.
func resolveHeader(header []string) []string {
	fields := make([]string, len(header))
	for i, h := range header {
		if canonical, ok := normalize.CanonicalField(h); ok {
			fields[i] = canonical
		}
	}
	return fields
}

// buildRow pairs cells with their canonical fields. Rows shorter than the
// header are padded implicitly (missing cells stay absent); rows with no
// non-empty recognized cell return nil and are skipped.
func buildRow(fields []string, cells []string) Row {
	row := make(Row, len(fields))
	hasValue := false
	for i, field := range fields {
		if field == "" || i >= len(cells) {
			continue
		}
		v := strings.TrimSpace(cells[i])
		row[field] = v
		if v != "" {
			hasValue = true
		}
	}
	if !hasValue {
		return nil
	}
	return row
}
