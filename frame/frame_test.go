package frame

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/flowgraph/fabric/scalar"
	"github.com/flowgraph/fabric/vector"
)

func TestAddVecRejectsDuplicateName(t *testing.T) {
	f := New()
	src := vector.New("src", scalar.I32, 4, vector.Local, vector.ANY)
	dup := vector.New("src", scalar.I32, 4, vector.Local, vector.ANY)

	if err := f.AddVec("src", src); err != nil {
		t.Fatalf("unexpected error on first AddVec: %v", err)
	}
	if err := f.AddVec("src", dup); err == nil {
		t.Fatalf("expected error adding duplicate column name, got nil")
	}
}

func TestFrameLenTracksSharedColumnLength(t *testing.T) {
	f := New()
	src := vector.New("src", scalar.I32, 0, vector.Local, vector.ANY)
	src.SetInt(0, 10)
	src.SetInt(1, 20)

	if err := f.AddVec("src", src); err != nil {
		t.Fatalf("AddVec: %v", err)
	}
	if got, want := f.Len(), uint64(2); got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestAppendConcatenatesMatchingSchema(t *testing.T) {
	a := New()
	aSrc := vector.New("src", scalar.I32, 0, vector.Local, vector.ANY)
	aDst := vector.New("dst", scalar.I32, 0, vector.Local, vector.ANY)
	aSrc.SetInt(0, 1)
	aDst.SetInt(0, 2)
	if err := a.AddVec("src", aSrc); err != nil {
		t.Fatalf("AddVec: %v", err)
	}
	if err := a.AddVec("dst", aDst); err != nil {
		t.Fatalf("AddVec: %v", err)
	}

	b := New()
	bSrc := vector.New("src", scalar.I32, 0, vector.Local, vector.ANY)
	bDst := vector.New("dst", scalar.I32, 0, vector.Local, vector.ANY)
	bSrc.SetInt(0, 3)
	bDst.SetInt(0, 4)
	if err := b.AddVec("src", bSrc); err != nil {
		t.Fatalf("AddVec: %v", err)
	}
	if err := b.AddVec("dst", bDst); err != nil {
		t.Fatalf("AddVec: %v", err)
	}

	out := New()
	if err := out.Append(a, b); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if got, want := out.Len(), uint64(2); got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	src := out.GetVec("src")
	if got, want := src.IntAt(0), int64(1); got != want {
		t.Errorf("src[0] = %d, want %d", got, want)
	}
	if got, want := src.IntAt(1), int64(3); got != want {
		t.Errorf("src[1] = %d, want %d", got, want)
	}
}

func TestAppendRejectsSchemaMismatch(t *testing.T) {
	a := New()
	aSrc := vector.New("src", scalar.I32, 0, vector.Local, vector.ANY)
	if err := a.AddVec("src", aSrc); err != nil {
		t.Fatalf("AddVec: %v", err)
	}

	b := New()
	bSrc := vector.New("src", scalar.I64, 0, vector.Local, vector.ANY)
	if err := b.AddVec("src", bSrc); err != nil {
		t.Fatalf("AddVec: %v", err)
	}

	out := New()
	if err := out.Append(a); err != nil {
		t.Fatalf("Append(a): %v", err)
	}
	if err := out.Append(b); err == nil {
		t.Fatalf("expected schema mismatch error, got nil\nout schema: %s\nb schema: %s", spew.Sdump(out.Schema()), spew.Sdump(b.Schema()))
	}
}

func TestGetVecByIndexMatchesInsertionOrder(t *testing.T) {
	f := New()
	src := vector.New("src", scalar.I32, 0, vector.Local, vector.ANY)
	dst := vector.New("dst", scalar.I32, 0, vector.Local, vector.ANY)
	if err := f.AddVec("src", src); err != nil {
		t.Fatalf("AddVec: %v", err)
	}
	if err := f.AddVec("dst", dst); err != nil {
		t.Fatalf("AddVec: %v", err)
	}

	if f.GetVecByIndex(0) != src {
		t.Errorf("GetVecByIndex(0) did not return src")
	}
	if f.GetVecByIndex(1) != dst {
		t.Errorf("GetVecByIndex(1) did not return dst")
	}
	if got, want := f.NumCols(), 2; got != want {
		t.Errorf("NumCols() = %d, want %d", got, want)
	}
}
