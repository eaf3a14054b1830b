package lineparser

import (
	"github.com/flowgraph/fabric/frame"
	"github.com/flowgraph/fabric/scalar"
	"github.com/flowgraph/fabric/vector"
)

// EdgeParser parses two-column edge lists: "<source> <dest>", matching
// edge_parser in the original. Spec.md §4.2 allows vertex ids to be
// either I32 or I64; IDType selects which, defaulting to I64 (the
// original's fg::vertex_id_t is a 64-bit type on a modern build) when
// left at its zero value.
type EdgeParser struct {
	IDType scalar.Type
}

func (EdgeParser) NumCols() int { return 2 }

func (EdgeParser) ColName(i int) string {
	if i == 0 {
		return "source"
	}
	return "dest"
}

func (p EdgeParser) idType() scalar.Type {
	if p.IDType == scalar.I32 {
		return scalar.I32
	}
	return scalar.I64
}

func (p EdgeParser) ColType(int) scalar.Type { return p.idType() }

func (p EdgeParser) Parse(lines []string, df *frame.Frame) int {
	idType := p.idType()
	froms := vector.New("source", idType, len(lines), vector.Local, vector.ANY)
	tos := vector.New("dest", idType, len(lines), vector.Local, vector.ANY)

	entryIdx := 0
	for lineNo, line := range lines {
		from, to, _, ok := scanFirstTwoVertices(lineNo, line)
		if !ok {
			continue
		}
		froms.SetInt(entryIdx, from)
		tos.SetInt(entryIdx, to)
		entryIdx++
	}
	froms.Truncate(entryIdx)
	tos.Truncate(entryIdx)

	mustAppend(df.GetVec("source"), froms)
	mustAppend(df.GetVec("dest"), tos)
	return entryIdx
}
