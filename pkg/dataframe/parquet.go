package dataframe

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// pandasIndexColumn is the serialized row-index column pandas writes into
// parquet files. Its values become the fragment's own index labels and the
// column is dropped from the schema, so per-file indices never reach callers.
const pandasIndexColumn = "__index_level_0__"

// readParquet decodes a parquet fragment by streaming its row groups.
func readParquet(data []byte) (*DataFrame, error) {
	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	fields := file.Schema().Fields()
	schema := Schema{}
	kinds := make([]Kind, len(fields))
	// target maps a physical column to its schema position, -1 for the
	// serialized index column.
	target := make([]int, len(fields))
	for i, f := range fields {
		kind, err := kindOf(f)
		if err != nil {
			return nil, err
		}
		kinds[i] = kind

		if f.Name() == pandasIndexColumn {
			target[i] = -1
			continue
		}
		target[i] = len(schema.Fields)
		schema.Fields = append(schema.Fields, Field{Name: f.Name(), Kind: kind})
	}

	df := New(schema)
	rowBuf := make([]parquet.Row, 1024)
	var nextIdx int64

	for _, rg := range file.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(rowBuf)
			for _, row := range rowBuf[:n] {
				vals := make([]any, len(schema.Fields))
				idx := nextIdx
				for _, val := range row {
					col := val.Column()
					if col < 0 || col >= len(target) {
						continue
					}
					if target[col] == -1 {
						if !val.IsNull() && kinds[col] == KindInt64 {
							idx = decodeValue(val, KindInt64).(int64)
						}
						continue
					}
					if val.IsNull() {
						continue
					}
					vals[target[col]] = decodeValue(val, kinds[col])
				}
				df.appendDecoded(idx, vals)
				nextIdx++
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				rows.Close()
				return nil, fmt.Errorf("read parquet rows: %w", err)
			}
			if n == 0 {
				break
			}
		}
		rows.Close()
	}

	return df, nil
}

// kindOf maps a parquet leaf column to a frame column kind.
func kindOf(f parquet.Field) (Kind, error) {
	if !f.Leaf() {
		return 0, fmt.Errorf("unsupported nested parquet column %q", f.Name())
	}

	typ := f.Type()
	switch typ.Kind() {
	case parquet.Boolean:
		return KindBool, nil
	case parquet.Int32, parquet.Int64:
		return KindInt64, nil
	case parquet.Float, parquet.Double:
		return KindFloat64, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		if lt := typ.LogicalType(); lt != nil && lt.UTF8 != nil {
			return KindString, nil
		}
		return KindBytes, nil
	default:
		return 0, fmt.Errorf("unsupported parquet type %s for column %q", typ, f.Name())
	}
}

// decodeValue converts a parquet value so its Go dynamic type matches the
// column kind (Int32 widens to int64, Float to float64).
func decodeValue(val parquet.Value, kind Kind) any {
	switch val.Kind() {
	case parquet.Boolean:
		return val.Boolean()
	case parquet.Int32:
		return int64(val.Int32())
	case parquet.Int64:
		return val.Int64()
	case parquet.Float:
		return float64(val.Float())
	case parquet.Double:
		return val.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		if kind == KindString {
			return val.String()
		}
		b := val.ByteArray()
		out := make([]byte, len(b))
		copy(out, b)
		return out
	default:
		return nil
	}
}
