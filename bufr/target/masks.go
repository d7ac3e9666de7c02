package target

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// roaringMaskThreshold is the node-index range above which ProcessingMasks
// backs its two bitmasks with a roaring bitmap instead of a plain []bool.
// Most BUFR subset tables have a few hundred nodes; wide archives with very
// deeply nested or highly variant subsets can run into the tens of
// thousands, where a sparse bitmap pays for itself.
const roaringMaskThreshold = 4096

// mask is a sparse-or-dense boolean set over node indices, backed by either
// a plain slice (small ranges) or a roaring bitmap (large ranges).
type mask struct {
	base   int
	dense  []bool
	sparse *roaring.Bitmap
}

func newMask(base, size int) mask {
	if size > roaringMaskThreshold {
		return mask{base: base, sparse: roaring.New()}
	}
	return mask{base: base, dense: make([]bool, size)}
}

func (m *mask) Set(idx int) {
	if m.sparse != nil {
		m.sparse.Add(uint32(idx - m.base))
		return
	}
	m.dense[idx-m.base] = true
}

func (m *mask) Get(idx int) bool {
	if idx < m.base {
		return false
	}
	if m.sparse != nil {
		return m.sparse.Contains(uint32(idx - m.base))
	}
	i := idx - m.base
	if i < 0 || i >= len(m.dense) {
		return false
	}
	return m.dense[i]
}

// ProcessingMasks holds the two boolean node-index masks a resolved target
// set produces: ValueNodeMask marks value-endpoint nodes, PathNodeMask
// marks interior repetition/sequence nodes whose occurrence counts must be
// tracked (spec §3).
type ProcessingMasks struct {
	ValueNodeMask mask
	PathNodeMask  mask
}

// NewProcessingMasks allocates masks covering the node-index range
// [base, base+numNodes).
func NewProcessingMasks(base, numNodes int) *ProcessingMasks {
	return &ProcessingMasks{
		ValueNodeMask: newMask(base, numNodes),
		PathNodeMask:  newMask(base, numNodes),
	}
}
