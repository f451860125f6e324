package dataframe

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// readCSV decodes a CSV fragment. The first record is the header. With a
// non-nil expect schema the header must match its field names and cells are
// coerced to the schema kinds; without one every column decodes as String.
func readCSV(data []byte, expect *Schema) (*DataFrame, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file: no header, no rows.
			if expect != nil {
				return New(*expect), nil
			}
			return New(Schema{}), nil
		}
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	// The record slice is reused by the next Read.
	names := make([]string, len(header))
	copy(names, header)

	var schema Schema
	if expect != nil {
		if !headerMatches(names, expect) {
			return nil, &SchemaError{Want: *expect, Got: stringSchema(names)}
		}
		schema = *expect
	} else {
		schema = stringSchema(names)
	}

	df := New(schema)
	for {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		if len(record) != len(schema.Fields) {
			return nil, fmt.Errorf("CSV row %d has %d cells, schema %s has %d",
				df.NumRows()+1, len(record), schema, len(schema.Fields))
		}

		vals := make([]any, len(record))
		for i, cell := range record {
			v, err := coerceCell(cell, schema.Fields[i])
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		df.appendDecoded(int64(df.NumRows()), vals)
	}

	return df, nil
}

func headerMatches(names []string, expect *Schema) bool {
	if len(names) != len(expect.Fields) {
		return false
	}
	for i, name := range names {
		if name != expect.Fields[i].Name {
			return false
		}
	}
	return true
}

func stringSchema(names []string) Schema {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name, Kind: KindString}
	}
	return Schema{Fields: fields}
}

// coerceCell converts a CSV cell to the field's kind. An empty cell in a
// non-string column decodes as null.
func coerceCell(cell string, f Field) (any, error) {
	if f.Kind == KindString {
		return cell, nil
	}

	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil, nil
	}

	switch f.Kind {
	case KindBool:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("column %q: parse bool %q: %w", f.Name, cell, err)
		}
		return b, nil
	case KindInt64:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q: parse int %q: %w", f.Name, cell, err)
		}
		return n, nil
	case KindFloat64:
		x, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q: parse float %q: %w", f.Name, cell, err)
		}
		return x, nil
	case KindBytes:
		return []byte(cell), nil
	default:
		return nil, fmt.Errorf("column %q: unsupported kind %s", f.Name, f.Kind)
	}
}
