package dataframe

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
)

// Format identifies the serialization format of a bucket file.
type Format int

const (
	FormatUnknown Format = iota
	FormatParquet
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatParquet:
		return "parquet"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// DetectFormat determines the format of a fragment from its key extension.
// A .gz compression suffix is stripped first, so "part.csv.gz" detects as CSV.
func DetectFormat(key string) Format {
	lower := strings.TrimSuffix(strings.ToLower(key), ".gz")
	switch {
	case strings.HasSuffix(lower, ".parquet"):
		return FormatParquet
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// ReadFragment decodes one downloaded bucket file into a frame. The key
// selects the decoder by extension; a .gz suffix is decompressed first.
// With a non-nil expect schema, the decoded frame must match it exactly.
func ReadFragment(data []byte, key string, expect *Schema) (*DataFrame, error) {
	if strings.HasSuffix(strings.ToLower(key), ".gz") {
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("open gzip fragment %s: %w", key, err)
		}
		decompressed, err := io.ReadAll(gzr)
		gzr.Close()
		if err != nil {
			return nil, fmt.Errorf("decompress fragment %s: %w", key, err)
		}
		data = decompressed
	}

	var (
		df  *DataFrame
		err error
	)
	switch DetectFormat(key) {
	case FormatParquet:
		df, err = readParquet(data)
	case FormatCSV:
		df, err = readCSV(data, expect)
	default:
		return nil, fmt.Errorf("unsupported fragment format for %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("decode fragment %s: %w", key, err)
	}

	if expect != nil && !df.schema.Equal(*expect) {
		return nil, &SchemaError{Want: *expect, Got: df.schema}
	}
	return df, nil
}
