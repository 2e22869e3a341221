package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"bookstore-ranking/internal/domains/ingestion/model"
	"bookstore-ranking/internal/shared/utils"
)

// recordReader yields data rows keyed by header name, the way the upload
// files are described: header first, then one record per line.
type recordReader struct {
	csv     *csv.Reader
	columns map[string]int
}

// record is one data row. Missing columns read as "".
type record struct {
	line   int
	fields []string
	cols   map[string]int
}

func (r record) get(col string) string {
	idx, ok := r.cols[col]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return utils.CleanField(r.fields[idx])
}

func (r record) raw() string {
	return strings.Join(r.fields, string(model.Separator))
}

func newRecordReader(src io.Reader) (*recordReader, error) {
	cr := csv.NewReader(src)
	cr.Comma = model.Separator
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", model.ErrUnreadableInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", model.ErrUnreadableInput, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(utils.CleanField(name))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	return &recordReader{csv: cr, columns: columns}, nil
}

// next returns io.EOF at the end of the stream. A *csv.ParseError is wrapped in
// model.ErrMalformedRecord and only concerns that row; any other error ends the stream.
func (r *recordReader) next() (record, error) {
	for {
		fields, err := r.csv.Read()
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return record{line: parseErr.Line}, fmt.Errorf("%w: %w", model.ErrMalformedRecord, err)
			}
			if errors.Is(err, io.EOF) {
				return record{}, io.EOF
			}
			return record{}, fmt.Errorf("%w: %w", model.ErrUnreadableInput, err)
		}

		if isBlank(fields) {
			continue
		}

		line, _ := r.csv.FieldPos(0)
		return record{line: line, fields: fields, cols: r.columns}, nil
	}
}

func (r *recordReader) hasColumn(col string) bool {
	_, ok := r.columns[col]
	return ok
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
