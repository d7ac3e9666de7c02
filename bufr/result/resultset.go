// Package result accumulates collected DataFrames across subsets and
// assembles them, per requested field, into a single typed N-dimensional
// DataObject (spec §4.4).
package result

import (
	"github.com/ncep-emc/bufrquery/bufr"
	"github.com/ncep-emc/bufrquery/bufr/bufrerr"
	"github.com/ncep-emc/bufrquery/bufr/collect"
	"github.com/ncep-emc/bufrquery/bufr/target"
	"github.com/ncep-emc/bufrquery/pkg/anymath"
)

// ResultSet is an ordered accumulation of DataFrames, one per subset
// processed, queried after the fact by field name.
type ResultSet struct {
	frames []*collect.DataFrame
}

// New returns an empty ResultSet.
func New() *ResultSet {
	return &ResultSet{}
}

// Append adds a subset's collected frame to the set, in iteration order.
func (rs *ResultSet) Append(frame *collect.DataFrame) {
	rs.frames = append(rs.frames, frame)
}

// Reset discards all accumulated frames.
func (rs *ResultSet) Reset() {
	rs.frames = nil
}

// Len returns the number of frames accumulated (one per subset processed).
func (rs *ResultSet) Len() int {
	return len(rs.frames)
}

// Unit returns the resolved target's physical unit, or "" if the field
// never resolved or carries no unit (spec §9: ResultSet::unit has no
// active body in the source; treated as typeInfo.unit or "").
func (rs *ResultSet) Unit(fieldName string) string {
	idx, ok := rs.targetIdx(fieldName)
	if !ok {
		return ""
	}
	return rs.frames[0].Targets[idx].TypeInfo.Unit
}

func (rs *ResultSet) targetIdx(fieldName string) (int, bool) {
	if len(rs.frames) == 0 {
		return 0, false
	}
	for i, t := range rs.frames[0].Targets {
		if t.Name == fieldName {
			return i, true
		}
	}
	return 0, false
}

// Get assembles the accumulated frames' data for fieldName into a typed
// N-dimensional DataObject (spec §4.4 "get"). groupByFieldName may be ""
// (no group-by check); overrideType may be "" (dispatch on merged
// TypeInfo) or one of "int", "int32", "int64", "float", "double", "string".
func (rs *ResultSet) Get(fieldName, groupByFieldName, overrideType string) (DataObject, error) {
	if len(rs.frames) == 0 {
		return DataObject{}, bufrerr.ErrEmptyResultSet
	}

	targetIdx, ok := rs.targetIdx(fieldName)
	if !ok {
		return DataObject{}, bufrerr.Queryf(bufrerr.ErrFieldNotFound, fieldName)
	}
	t := rs.frames[0].Targets[targetIdx]

	if groupByFieldName != "" {
		gbIdx, ok := rs.targetIdx(groupByFieldName)
		if !ok {
			return DataObject{}, bufrerr.Queryf(bufrerr.ErrFieldNotFound, groupByFieldName)
		}
		gb := rs.frames[0].Targets[gbIdx]
		if !isDimPathPrefix(gb.DimPaths, t.DimPaths) {
			return DataObject{}, bufrerr.Pathf(bufrerr.ErrIncompatibleGroupBy, gb.DimPaths[len(gb.DimPaths)-1], t.DimPaths[len(t.DimPaths)-1])
		}
	}

	dims := rs.computeDims(targetIdx, t)
	info := rs.mergeTypeInfo(targetIdx)

	kind := kindForInfo(info)
	if info.IsString() {
		kind = KindString
	}
	if overrideType != "" {
		k, ok := parseOverrideKind(overrideType)
		if !ok {
			return DataObject{}, bufrerr.Queryf(bufrerr.ErrIncompatibleOverride, overrideType)
		}
		if (k == KindString) != info.IsString() {
			return DataObject{}, bufrerr.Queryf(bufrerr.ErrIncompatibleOverride, overrideType)
		}
		kind = k
	}

	rowLength := 1
	for _, d := range dims[1:] {
		rowLength *= d
	}
	totalRows := len(rs.frames)

	if kind == KindString {
		return rs.assembleStrings(fieldName, groupByFieldName, t, dims, rowLength, totalRows), nil
	}

	data := make([]float64, totalRows*rowLength)
	for i := range data {
		data[i] = bufr.MissingValue
	}

	for fi, frame := range rs.frames {
		field := frame.Fields[targetIdx]
		placeValues(data[fi*rowLength:(fi+1)*rowLength], field.Data, dims, t.DimSeqIdx, field.SeqCounts)
	}

	obj := newNumericDataObject(kind, data, dims, t.DimPaths, fieldName, groupByFieldName)
	return obj, nil
}

// computeDims returns the per-exported-dimension-level maxima, dims[0]
// always being the row count (spec §4.4 step 3). A level whose occurrence
// counts vary across occurrences or frames ("jagged") still gets its true
// maximum here; placeValues pads the shortfall with MissingValue, so no
// separate jagged/contiguous code path is needed.
func (rs *ResultSet) computeDims(targetIdx int, t *target.Target) []int {
	dims := make([]int, len(t.DimPaths))
	dims[0] = len(rs.frames)

	for level := 1; level < len(dims); level++ {
		seqIdx := t.DimSeqIdx[level]
		if seqIdx < 0 {
			dims[level] = 1
			continue
		}
		maxAtLevel := 0
		for _, frame := range rs.frames {
			for _, c := range frame.Fields[targetIdx].SeqCounts[seqIdx+1] {
				if c > maxAtLevel {
					maxAtLevel = c
				}
			}
		}
		if maxAtLevel == 0 {
			maxAtLevel = 1
		}
		dims[level] = maxAtLevel
	}

	return dims
}

// mergeTypeInfo combines every frame's resolved TypeInfo for a target:
// reference takes the minimum, bits and |scale| take the maximum, and unit
// is the first non-empty value seen (spec §4.4 step 4).
func (rs *ResultSet) mergeTypeInfo(targetIdx int) bufr.TypeInfo {
	var merged bufr.TypeInfo
	first := true
	for _, frame := range rs.frames {
		info := frame.Fields[targetIdx].Target.TypeInfo
		if first {
			merged = info
			first = false
			continue
		}
		merged.Reference = anymath.Min.Int64(merged.Reference, info.Reference)
		merged.Bits = int(anymath.Max.Int64(int64(merged.Bits), int64(info.Bits)))
		if abs(info.Scale) > abs(merged.Scale) {
			merged.Scale = info.Scale
		}
		if merged.Unit == "" {
			merged.Unit = info.Unit
		}
		merged.Str = merged.Str || info.Str
		merged.Unsigned = merged.Unsigned && info.Unsigned
		merged.Is64Bit = merged.Is64Bit || info.Is64Bit
	}
	return merged
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// isDimPathPrefix reports whether base's dim-path list is a common prefix
// of full's (component-wise from index 1; index 0 is always the shared "*"
// row dimension), per spec §4.4 step 2.
func isDimPathPrefix(base, full []string) bool {
	if len(base) > len(full) {
		return false
	}
	for i := 1; i < len(base); i++ {
		if base[i] != full[i] {
			return false
		}
	}
	return true
}

// placeValues lays out one frame's flat, stream-order values into a
// rectangular (dims[1:]-shaped) destination row, padding short or absent
// occurrences with MissingValue. It walks the replication levels
// depth-first in the same order the collector appended seqCounts, so it
// is correct for both uniform and ragged occurrence counts without a
// separate jagged/contiguous code path.
func placeValues(dst []float64, src []float64, dims []int, dimSeqIdx []int, seqCounts [][]int) {
	levels := len(dims) - 1
	cursor := make([]int, levels+1)
	srcPos := 0

	strideAt := func(level int) int {
		s := 1
		for l := level + 1; l <= levels; l++ {
			s *= dims[l]
		}
		return s
	}

	var place func(level, destOffset int)
	place = func(level, destOffset int) {
		if level > levels {
			if srcPos < len(src) {
				dst[destOffset] = src[srcPos]
				srcPos++
			}
			return
		}
		seqIdx := dimSeqIdx[level]
		var counts []int
		if seqIdx >= 0 {
			counts = seqCounts[seqIdx+1]
		}
		n := 0
		if cursor[level] < len(counts) {
			n = counts[cursor[level]]
		}
		cursor[level]++
		stride := strideAt(level)
		limit := dims[level]
		if n < limit {
			limit = n
		}
		for i := 0; i < limit; i++ {
			place(level+1, destOffset+i*stride)
		}
	}

	place(1, 0)
}

// assembleStrings handles the string-typed variant: rows are concatenated
// scalar strings (no sub-row dimensionality beyond the row itself),
// matching how Character-typed leaves are collected.
func (rs *ResultSet) assembleStrings(fieldName, groupByFieldName string, t *target.Target, dims []int, rowLength, totalRows int) DataObject {
	strs := make([]string, totalRows*rowLength)
	idx := rs.mustIdx(fieldName)
	for fi, frame := range rs.frames {
		field := frame.Fields[idx]
		for i := 0; i < rowLength && i < len(field.Data); i++ {
			strs[fi*rowLength+i] = decodeChar(field.Data[i], t.TypeInfo.Bits)
		}
	}
	return DataObject{
		FieldName:        fieldName,
		GroupByFieldName: groupByFieldName,
		Dims:             dims,
		DimPaths:         t.DimPaths,
		Kind:             KindString,
		strings:          strs,
	}
}

func (rs *ResultSet) mustIdx(fieldName string) int {
	idx, _ := rs.targetIdx(fieldName)
	return idx
}

// decodeChar unpacks a Character leaf's one-value-per-occurrence payload
// back into text: the provider packs the whole field width into a single
// value as a big-endian byte sequence of bits/8 IA5 (ASCII) bytes,
// reinterpreted here through its integer bit pattern; trailing spaces and
// NULs (the two BUFR blank-fill conventions) are trimmed.
func decodeChar(v float64, bits int) string {
	if v >= bufr.MissingValue {
		return ""
	}
	n := bits / 8
	if n <= 0 {
		return ""
	}
	raw := uint64(v)
	b := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(raw & 0xff)
		raw >>= 8
	}
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}
	return string(b[:end])
}
