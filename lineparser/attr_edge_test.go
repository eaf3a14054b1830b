package lineparser

import (
	"testing"

	"github.com/flowgraph/fabric/scalar"
)

func TestAttrEdgeParserFloat(t *testing.T) {
	p := AttrEdgeParser{AttrType: scalar.F64}
	line := "10  20  3.5\n"
	lines := SplitLines([]byte(line), len(line))
	df := NewFrame(p, len(lines))

	n := p.Parse(lines, df)
	if n != 1 {
		t.Fatalf("Parse() rows = %d, want 1", n)
	}

	src := df.GetVec("source")
	dst := df.GetVec("dest")
	attr := df.GetVec("attr")
	if src.IntAt(0) != 10 {
		t.Errorf("source[0] = %d, want 10", src.IntAt(0))
	}
	if dst.IntAt(0) != 20 {
		t.Errorf("dest[0] = %d, want 20", dst.IntAt(0))
	}
	if got, want := attr.FloatAt(0), 3.5; got != want {
		t.Errorf("attr[0] = %v, want %v", got, want)
	}
}

func TestAttrEdgeParserInt(t *testing.T) {
	p := AttrEdgeParser{AttrType: scalar.I64}
	line := "1 2 42\n"
	lines := SplitLines([]byte(line), len(line))
	df := NewFrame(p, len(lines))

	n := p.Parse(lines, df)
	if n != 1 {
		t.Fatalf("Parse() rows = %d, want 1", n)
	}
	if got := df.GetVec("attr").IntAt(0); got != 42 {
		t.Fatalf("attr[0] = %d, want 42", got)
	}
}

func TestAttrEdgeParserSchema(t *testing.T) {
	p := AttrEdgeParser{AttrType: scalar.F32}
	if p.NumCols() != 3 {
		t.Fatalf("NumCols() = %d, want 3", p.NumCols())
	}
	if p.ColName(2) != "attr" || p.ColType(2) != scalar.F32 {
		t.Fatalf("attr column = (%s, %s), want (attr, F32)", p.ColName(2), p.ColType(2))
	}
}

func TestAttrEdgeParserRejectsMalformedAttribute(t *testing.T) {
	p := AttrEdgeParser{AttrType: scalar.F64}
	line := "1 2 notanumber\n"
	lines := SplitLines([]byte(line), len(line))
	df := NewFrame(p, len(lines))

	n := p.Parse(lines, df)
	if n != 0 {
		t.Fatalf("Parse() accepted a malformed attribute, rows = %d", n)
	}
}

func TestAttrEdgeParserSkipsMissingAttribute(t *testing.T) {
	p := AttrEdgeParser{AttrType: scalar.I32}
	block := "1 2\n3 4 7\n"
	lines := SplitLines([]byte(block), len(block))
	df := NewFrame(p, len(lines))

	n := p.Parse(lines, df)
	if n != 1 {
		t.Fatalf("Parse() rows = %d, want 1", n)
	}
	if got := df.GetVec("source").IntAt(0); got != 3 {
		t.Fatalf("source[0] = %d, want 3", got)
	}
}
