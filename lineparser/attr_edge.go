package lineparser

import (
	"log/slog"
	"strconv"

	"github.com/flowgraph/fabric/frame"
	"github.com/flowgraph/fabric/scalar"
	"github.com/flowgraph/fabric/vector"
)

// AttrEdgeParser parses three-column attributed edge lists: "<source>
// <dest> <attr>", matching attr_edge_parser<AttrType> in the original.
// AttrType is one of I32/I64/F32/F64, selected via scalar.ParseAttrType.
type AttrEdgeParser struct {
	AttrType scalar.Type
}

func (AttrEdgeParser) NumCols() int { return 3 }

func (AttrEdgeParser) ColName(i int) string {
	switch i {
	case 0:
		return "source"
	case 1:
		return "dest"
	default:
		return "attr"
	}
}

func (p AttrEdgeParser) ColType(i int) scalar.Type {
	if i < 2 {
		return scalar.I64
	}
	return p.AttrType
}

func (p AttrEdgeParser) Parse(lines []string, df *frame.Frame) int {
	froms := vector.New("source", scalar.I64, len(lines), vector.Local, vector.ANY)
	tos := vector.New("dest", scalar.I64, len(lines), vector.Local, vector.ANY)
	attrs := vector.New("attr", p.AttrType, len(lines), vector.Local, vector.ANY)

	entryIdx := 0
	for lineNo, line := range lines {
		from, to, rest, ok := scanFirstTwoVertices(lineNo, line)
		if !ok {
			continue
		}

		i := skipSpace(line, rest)
		if i >= len(line) {
			slog.Warn("parse reject: missing attribute", "line_no", lineNo, "line", line)
			continue
		}

		attrStr := line[i:]
		if p.AttrType.IsFloat() {
			v, err := strconv.ParseFloat(attrStr, 64)
			if err != nil {
				slog.Warn("parse reject: malformed attribute", "line_no", lineNo, "value", attrStr, "err", err)
				continue
			}
			attrs.SetFloat(entryIdx, v)
		} else {
			v, err := strconv.ParseInt(attrStr, 10, 64)
			if err != nil {
				slog.Warn("parse reject: malformed attribute", "line_no", lineNo, "value", attrStr, "err", err)
				continue
			}
			attrs.SetInt(entryIdx, v)
		}

		froms.SetInt(entryIdx, from)
		tos.SetInt(entryIdx, to)
		entryIdx++
	}
	froms.Truncate(entryIdx)
	tos.Truncate(entryIdx)
	attrs.Truncate(entryIdx)

	mustAppend(df.GetVec("source"), froms)
	mustAppend(df.GetVec("dest"), tos)
	mustAppend(df.GetVec("attr"), attrs)
	return entryIdx
}
