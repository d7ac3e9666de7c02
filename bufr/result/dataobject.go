package result

import "github.com/ncep-emc/bufrquery/bufr"

// ElemKind identifies which typed variant a DataObject holds. The set
// mirrors the original's capability-dispatched DataObjectBase variants
// (spec §4.4, "tagged variants rather than inheritance").
type ElemKind int

const (
	KindInt32 ElemKind = iota
	KindInt64
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
)

func (k ElemKind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// DataObject is the typed N-dimensional result of ResultSet.Get: a flat,
// row-major array with its shape and provenance. Exactly one of the typed
// accessors returns a non-nil slice, selected by Kind.
type DataObject struct {
	FieldName        string
	GroupByFieldName string
	Dims             []int
	DimPaths         []string
	Kind             ElemKind

	int32s   []int32
	int64s   []int64
	uint32s  []uint32
	uint64s  []uint64
	float32s []float32
	float64s []float64
	strings  []string
}

func (d *DataObject) Int32s() []int32     { return d.int32s }
func (d *DataObject) Int64s() []int64     { return d.int64s }
func (d *DataObject) Uint32s() []uint32   { return d.uint32s }
func (d *DataObject) Uint64s() []uint64   { return d.uint64s }
func (d *DataObject) Float32s() []float32 { return d.float32s }
func (d *DataObject) Float64s() []float64 { return d.float64s }
func (d *DataObject) Strings() []string   { return d.strings }

// newNumericDataObject dispatches raw float64 data into the typed variant
// named by kind, truncating/rounding as the kind requires. Construction is
// the only place the dispatch happens; every other consumer goes through
// the typed accessors.
func newNumericDataObject(kind ElemKind, data []float64, dims []int, dimPaths []string, fieldName, groupByFieldName string) DataObject {
	obj := DataObject{
		FieldName:        fieldName,
		GroupByFieldName: groupByFieldName,
		Dims:             dims,
		DimPaths:         dimPaths,
		Kind:             kind,
	}
	switch kind {
	case KindInt32:
		obj.int32s = make([]int32, len(data))
		for i, v := range data {
			obj.int32s[i] = int32(v)
		}
	case KindInt64:
		obj.int64s = make([]int64, len(data))
		for i, v := range data {
			obj.int64s[i] = int64(v)
		}
	case KindUint32:
		obj.uint32s = make([]uint32, len(data))
		for i, v := range data {
			obj.uint32s[i] = uint32(v)
		}
	case KindUint64:
		obj.uint64s = make([]uint64, len(data))
		for i, v := range data {
			obj.uint64s[i] = uint64(v)
		}
	case KindFloat32:
		obj.float32s = make([]float32, len(data))
		for i, v := range data {
			obj.float32s[i] = float32(v)
		}
	case KindFloat64:
		obj.float64s = data
	}
	return obj
}

// kindForInfo picks the numeric variant a merged TypeInfo implies: signed
// or unsigned, 32- or 64-bit integer if info.IsInteger(), else 32- or
// 64-bit float.
func kindForInfo(info bufr.TypeInfo) ElemKind {
	wide := info.Is64Bit || info.Bits > 32
	if info.IsInteger() {
		if info.IsSigned() {
			if wide {
				return KindInt64
			}
			return KindInt32
		}
		if wide {
			return KindUint64
		}
		return KindUint32
	}
	if wide {
		return KindFloat64
	}
	return KindFloat32
}

// parseOverrideKind maps the external override-type names spec §4.4 lists
// ("int", "int32", "int64", "float", "double", "string") to an ElemKind.
func parseOverrideKind(overrideType string) (ElemKind, bool) {
	switch overrideType {
	case "int", "int32":
		return KindInt32, true
	case "int64":
		return KindInt64, true
	case "float":
		return KindFloat32, true
	case "double":
		return KindFloat64, true
	case "string":
		return KindString, true
	default:
		return 0, false
	}
}
