package lineparser

import (
	"testing"

	"github.com/flowgraph/fabric/scalar"
)

func TestEdgeParserBasic(t *testing.T) {
	p := EdgeParser{}
	lines := SplitLines([]byte("1 2\n3 4\n# skip\n5 6\n"), len("1 2\n3 4\n# skip\n5 6\n"))
	df := NewFrame(p, len(lines))

	n := p.Parse(lines, df)
	if n != 3 {
		t.Fatalf("Parse() rows = %d, want 3", n)
	}
	if got, want := df.Len(), uint64(3); got != want {
		t.Fatalf("frame Len() = %d, want %d", got, want)
	}

	src := df.GetVec("source")
	dst := df.GetVec("dest")
	wantSrc := []int64{1, 3, 5}
	wantDst := []int64{2, 4, 6}
	for i := range wantSrc {
		if src.IntAt(i) != wantSrc[i] {
			t.Errorf("source[%d] = %d, want %d", i, src.IntAt(i), wantSrc[i])
		}
		if dst.IntAt(i) != wantDst[i] {
			t.Errorf("dest[%d] = %d, want %d", i, dst.IntAt(i), wantDst[i])
		}
	}
}

func TestEdgeParserSchema(t *testing.T) {
	p := EdgeParser{}
	df := NewFrame(p, 0)
	schema := df.Schema()
	if len(schema) != 2 || schema[0].Name != "source" || schema[1].Name != "dest" {
		t.Fatalf("schema = %v, want [source dest]", schema)
	}
	for _, c := range schema {
		if c.Type != scalar.I64 {
			t.Errorf("column %s type = %s, want I64", c.Name, c.Type)
		}
	}
}

func TestEdgeParserEmptyFileYieldsZeroLengthColumns(t *testing.T) {
	p := EdgeParser{}
	df := NewFrame(p, 0)
	n := p.Parse(nil, df)
	if n != 0 {
		t.Fatalf("Parse(nil) = %d, want 0", n)
	}
	if df.Len() != 0 {
		t.Fatalf("frame Len() = %d, want 0", df.Len())
	}
	if df.NumCols() != 2 {
		t.Fatalf("NumCols() = %d, want 2", df.NumCols())
	}
}

func TestEdgeParserRejectsOutOfRangeVertex(t *testing.T) {
	p := EdgeParser{}
	line := "99999999999999 2\n"
	lines := SplitLines([]byte(line), len(line))
	df := NewFrame(p, len(lines))

	n := p.Parse(lines, df)
	if n != 0 {
		t.Fatalf("Parse() accepted an out-of-range vertex id, rows = %d", n)
	}
}

func TestSplitLinesStripsTrailingCR(t *testing.T) {
	block := []byte("1 2\r\n3 4\n")
	lines := SplitLines(block, len(block))
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0] != "1 2" {
		t.Fatalf("lines[0] = %q, want %q", lines[0], "1 2")
	}
}

func TestSplitLinesKeepsFinalLineWithoutTrailingNewline(t *testing.T) {
	block := []byte("1 2\n3 4")
	lines := SplitLines(block, len(block))
	if len(lines) != 2 || lines[1] != "3 4" {
		t.Fatalf("lines = %v, want [\"1 2\" \"3 4\"]", lines)
	}
}

func TestEdgeParserIDTypeI32(t *testing.T) {
	p := EdgeParser{IDType: scalar.I32}
	line := "1 2\n"
	lines := SplitLines([]byte(line), len(line))
	df := NewFrame(p, len(lines))

	if n := p.Parse(lines, df); n != 1 {
		t.Fatalf("Parse() rows = %d, want 1", n)
	}
	for _, c := range df.Schema() {
		if c.Type != scalar.I32 {
			t.Errorf("column %s type = %s, want I32", c.Name, c.Type)
		}
	}
}
