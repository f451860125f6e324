package dataframe

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func obsSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "site", Kind: KindString},
		{Name: "count", Kind: KindInt64},
		{Name: "coverage", Kind: KindFloat64},
	}}
}

func TestAppendRow(t *testing.T) {
	df := New(obsSchema())

	if err := df.AppendRow("alpha", int64(3), 0.5); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}
	if err := df.AppendRow("beta", nil, 0.25); err != nil {
		t.Fatalf("AppendRow with null failed: %v", err)
	}

	if df.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", df.NumRows())
	}
	if df.NumCols() != 3 {
		t.Fatalf("NumCols = %d, want 3", df.NumCols())
	}

	row := df.Row(1)
	if row[0] != "beta" || row[1] != nil || row[2] != 0.25 {
		t.Errorf("Row(1) = %v, want [beta <nil> 0.25]", row)
	}

	index := df.Index()
	if len(index) != 2 || index[0] != 0 || index[1] != 1 {
		t.Errorf("Index = %v, want [0 1]", index)
	}
}

func TestAppendRow_ArityMismatch(t *testing.T) {
	df := New(obsSchema())

	err := df.AppendRow("alpha", int64(3))
	if err == nil {
		t.Fatal("expected error for wrong value count")
	}
	if df.NumRows() != 0 {
		t.Errorf("frame modified after failed append: %d rows", df.NumRows())
	}
}

func TestAppendRow_KindMismatch(t *testing.T) {
	df := New(obsSchema())

	err := df.AppendRow("alpha", "three", 0.5)
	if err == nil {
		t.Fatal("expected error for wrong value kind")
	}
	if !strings.Contains(err.Error(), `"count"`) {
		t.Errorf("error should name the column, got: %v", err)
	}
}

func TestConcat_OrderAndIndexReset(t *testing.T) {
	a := New(obsSchema())
	if err := a.AppendRow("a0", int64(1), 1.0); err != nil {
		t.Fatal(err)
	}
	if err := a.AppendRow("a1", int64(2), 2.0); err != nil {
		t.Fatal(err)
	}

	b := New(obsSchema())
	if err := b.AppendRow("b0", int64(3), 3.0); err != nil {
		t.Fatal(err)
	}
	if err := b.AppendRow("b1", int64(4), 4.0); err != nil {
		t.Fatal(err)
	}
	if err := b.AppendRow("b2", int64(5), 5.0); err != nil {
		t.Fatal(err)
	}

	// Give the inputs non-zero-based labels to prove they never leak.
	a.index = []int64{100, 101}
	b.index = []int64{42, 43, 44}

	out, err := Concat(a, b)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}

	if out.NumRows() != 5 {
		t.Fatalf("NumRows = %d, want 5", out.NumRows())
	}

	wantSites := []string{"a0", "a1", "b0", "b1", "b2"}
	for i, want := range wantSites {
		if got := out.Row(i)[0]; got != want {
			t.Errorf("row %d site = %v, want %q", i, got, want)
		}
	}

	for i, idx := range out.Index() {
		if idx != int64(i) {
			t.Errorf("index[%d] = %d, want %d", i, idx, i)
		}
	}
}

func TestConcat_SchemaMismatch(t *testing.T) {
	a := New(obsSchema())
	b := New(Schema{Fields: []Field{{Name: "site", Kind: KindString}}})

	_, err := Concat(a, b)
	if err == nil {
		t.Fatal("expected schema mismatch error")
	}

	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	if !se.Want.Equal(a.Schema()) || !se.Got.Equal(b.Schema()) {
		t.Errorf("SchemaError should carry both schemas, got want=%s got=%s", se.Want, se.Got)
	}
}

func TestConcat_NoFrames(t *testing.T) {
	out, err := Concat()
	if err != nil {
		t.Fatalf("Concat() failed: %v", err)
	}
	if out == nil {
		t.Fatal("Concat() returned nil frame")
	}
	if out.NumRows() != 0 || out.NumCols() != 0 {
		t.Errorf("got %d rows %d cols, want empty zero-column frame", out.NumRows(), out.NumCols())
	}
}

func TestConcat_EmptyFrames(t *testing.T) {
	a := New(obsSchema())
	b := New(obsSchema())

	out, err := Concat(a, b)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	if out.NumRows() != 0 {
		t.Errorf("NumRows = %d, want 0", out.NumRows())
	}
	if !out.Schema().Equal(obsSchema()) {
		t.Errorf("Schema = %s, want %s", out.Schema(), obsSchema())
	}
}

func TestColumn(t *testing.T) {
	df := New(obsSchema())
	if err := df.AppendRow("alpha", int64(1), 0.1); err != nil {
		t.Fatal(err)
	}
	if err := df.AppendRow("beta", int64(2), 0.2); err != nil {
		t.Fatal(err)
	}

	counts, err := df.Column("count")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if len(counts) != 2 || counts[0] != int64(1) || counts[1] != int64(2) {
		t.Errorf("Column(count) = %v, want [1 2]", counts)
	}

	if _, err := df.Column("missing"); err == nil {
		t.Error("expected error for missing column")
	}
}

func TestSchema(t *testing.T) {
	s := obsSchema()

	if !s.Equal(obsSchema()) {
		t.Error("Equal returned false for identical schemas")
	}
	if s.Equal(Schema{}) {
		t.Error("Equal returned true for different schemas")
	}
	if got := s.FieldIndex("coverage"); got != 2 {
		t.Errorf("FieldIndex(coverage) = %d, want 2", got)
	}
	if got := s.FieldIndex("nope"); got != -1 {
		t.Errorf("FieldIndex(nope) = %d, want -1", got)
	}
	want := "[site:string, count:int64, coverage:float64]"
	if s.String() != want {
		t.Errorf("String() = %q, want %q", s.String(), want)
	}
}

func TestWriteCSV(t *testing.T) {
	df := New(obsSchema())
	if err := df.AppendRow("alpha", int64(3), 0.5); err != nil {
		t.Fatal(err)
	}
	if err := df.AppendRow("beta", nil, 1.25); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := df.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "site,count,coverage\nalpha,3,0.5\nbeta,,1.25\n"
	if buf.String() != want {
		t.Errorf("WriteCSV output:\n%q\nwant:\n%q", buf.String(), want)
	}
}
