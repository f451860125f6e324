// Package dataframe provides the in-memory tabular result produced by the
// dataframe loader: ordered columns, row-major values, and an explicit
// zero-based row index.
package dataframe

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind identifies the value kind of a column.
type Kind int

const (
	KindBool Kind = iota
	KindInt64
	KindFloat64
	KindString
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field describes one column.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered set of columns in a frame.
type Schema struct {
	Fields []Field
}

// Equal reports whether two schemas have the same fields in the same order.
func (s Schema) Equal(other Schema) bool {
	if len(s.Fields) != len(other.Fields) {
		return false
	}
	for i, f := range s.Fields {
		if f != other.Fields[i] {
			return false
		}
	}
	return true
}

// FieldIndex returns the position of the named field, or -1 if absent.
func (s Schema) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (s Schema) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.Name + ":" + f.Kind.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// SchemaError reports a schema mismatch between fragments of one batch.
type SchemaError struct {
	Want Schema
	Got  Schema
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch: want %s, got %s", e.Want, e.Got)
}

// DataFrame is an ordered tabular result. Values are stored row-major; a nil
// cell is a null. The index labels each row with an int64; after Concat it
// is always contiguous starting at zero.
type DataFrame struct {
	schema Schema
	rows   [][]any
	index  []int64
}

// New returns an empty frame with the given schema.
func New(schema Schema) *DataFrame {
	return &DataFrame{schema: schema}
}

// Schema returns the frame's schema.
func (df *DataFrame) Schema() Schema {
	return df.schema
}

// NumRows returns the number of rows.
func (df *DataFrame) NumRows() int {
	return len(df.rows)
}

// NumCols returns the number of columns.
func (df *DataFrame) NumCols() int {
	return len(df.schema.Fields)
}

// Row returns the values of row i in column order.
func (df *DataFrame) Row(i int) []any {
	return df.rows[i]
}

// Index returns the row index labels.
func (df *DataFrame) Index() []int64 {
	return df.index
}

// Column returns all values of the named column.
func (df *DataFrame) Column(name string) ([]any, error) {
	col := df.schema.FieldIndex(name)
	if col < 0 {
		return nil, fmt.Errorf("no column %q in schema %s", name, df.schema)
	}
	vals := make([]any, len(df.rows))
	for i, row := range df.rows {
		vals[i] = row[col]
	}
	return vals, nil
}

// AppendRow appends a row. The number of values must match the schema and
// each non-nil value must match its column's kind; a nil value is a null.
// The new row is labeled with the frame's row count at append time.
func (df *DataFrame) AppendRow(vals ...any) error {
	if len(vals) != len(df.schema.Fields) {
		return fmt.Errorf("row has %d values, schema %s has %d fields",
			len(vals), df.schema, len(df.schema.Fields))
	}
	for i, v := range vals {
		if v == nil {
			continue
		}
		if err := checkKind(df.schema.Fields[i], v); err != nil {
			return err
		}
	}

	row := make([]any, len(vals))
	copy(row, vals)
	df.rows = append(df.rows, row)
	df.index = append(df.index, int64(len(df.rows)-1))
	return nil
}

// appendDecoded appends a decoded row with an explicit index label. Callers
// guarantee arity and kinds match the schema.
func (df *DataFrame) appendDecoded(idx int64, vals []any) {
	df.rows = append(df.rows, vals)
	df.index = append(df.index, idx)
}

func checkKind(f Field, v any) error {
	var ok bool
	switch f.Kind {
	case KindBool:
		_, ok = v.(bool)
	case KindInt64:
		_, ok = v.(int64)
	case KindFloat64:
		_, ok = v.(float64)
	case KindString:
		_, ok = v.(string)
	case KindBytes:
		_, ok = v.([]byte)
	}
	if !ok {
		return fmt.Errorf("column %q expects %s, got %T", f.Name, f.Kind, v)
	}
	return nil
}

// Concat concatenates frames in argument order into a new frame. All frames
// must share an equal schema; a mismatch returns a *SchemaError. The result's
// index is reset to 0..n-1 regardless of the inputs' own labels. Concat of
// zero frames yields an empty zero-column frame.
func Concat(frames ...*DataFrame) (*DataFrame, error) {
	if len(frames) == 0 {
		return New(Schema{}), nil
	}

	schema := frames[0].schema
	total := 0
	for _, f := range frames {
		if !f.schema.Equal(schema) {
			return nil, &SchemaError{Want: schema, Got: f.schema}
		}
		total += len(f.rows)
	}

	out := &DataFrame{
		schema: schema,
		rows:   make([][]any, 0, total),
		index:  make([]int64, total),
	}
	for _, f := range frames {
		out.rows = append(out.rows, f.rows...)
	}
	for i := range out.index {
		out.index[i] = int64(i)
	}
	return out, nil
}

// WriteCSV writes the frame as CSV: a header record, then one record per
// row. Null cells are written as empty strings. The index is not written.
func (df *DataFrame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(df.schema.Fields))
	for i, f := range df.schema.Fields {
		header[i] = f.Name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range df.rows {
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
