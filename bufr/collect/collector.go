package collect

import (
	"github.com/ncep-emc/bufrquery/bufr"
	"github.com/ncep-emc/bufrquery/bufr/provider"
	"github.com/ncep-emc/bufrquery/bufr/target"
	"github.com/ncep-emc/bufrquery/bufr/table"
)

// FrameCollector performs the single linear pass over a subset's value
// stream that reconstructs sequence/replication counts and extracts each
// target's values (spec §4.3).
type FrameCollector struct{}

// NewFrameCollector returns a FrameCollector. It holds no state of its own
// — all per-subset state lives in the OffsetArray built fresh inside
// Collect — so a single instance is safe to reuse across subsets.
func NewFrameCollector() *FrameCollector {
	return &FrameCollector{}
}

// Collect walks provider.NVal() cursor positions once, populating a fresh
// DataFrame for targets under masks.
func (c *FrameCollector) Collect(targets target.Targets, masks *target.ProcessingMasks, p provider.DataProvider) *DataFrame {
	inode := p.Inode()
	isc := p.Isc(inode)
	dataTable := table.NewOffsetArray[NodeData](inode, isc-inode+2)

	var currentPath []int
	var currentPathReturns []int
	returnNodeIdx := -1
	lastNonZeroReturnIdx := -1

	nVal := p.NVal()
	for cursor := 1; cursor <= nVal; cursor++ {
		n := p.Inv(cursor)

		if masks.ValueNodeMask.Get(n) {
			nd := dataTable.At(n)
			nd.Values = append(nd.Values, p.Val(cursor))
		}

		// A node that is the first element of a tracked replication's body
		// (n == jmpb(n)+1) recurs exactly once per occurrence in the
		// stream; counting its recurrences reconstructs the occurrence
		// count the binary format never stores explicitly (spec §4.3).
		if jmpb := p.Jmpb(n); jmpb > 0 && masks.PathNodeMask.Get(jmpb) && n == jmpb+1 {
			nd := dataTable.At(n)
			if len(nd.Counts) > 0 {
				nd.Counts[len(nd.Counts)-1]++
			}
		}

		if len(currentPath) >= 1 {
			atStreamEnd := cursor == nVal
			if n == returnNodeIdx ||
				atStreamEnd ||
				(len(currentPath) > 1 && n == currentPath[len(currentPath)-1]+1) {
				for pathIdx := len(currentPathReturns) - 1; pathIdx >= lastNonZeroReturnIdx; pathIdx-- {
					currentPathReturns = currentPathReturns[:len(currentPathReturns)-1]
					seqNodeIdx := currentPath[len(currentPath)-1]
					currentPath = currentPath[:len(currentPath)-1]

					// The over-count correction undoes an increment
					// caused by stepping one node past the last true
					// occurrence while still inside the stream; at the
					// final cursor there is no such spurious step, so
					// the correction does not apply there.
					typSeqNode := p.Typ(seqNodeIdx)
					if !atStreamEnd && (typSeqNode == bufr.TypeDelayedRep || typSeqNode == bufr.TypeDelayedRepStacked) {
						nd := dataTable.At(seqNodeIdx + 1)
						if len(nd.Counts) > 0 {
							nd.Counts[len(nd.Counts)-1]--
						}
					}
				}

				lastNonZeroReturnIdx = len(currentPathReturns) - 1
				if lastNonZeroReturnIdx >= 0 {
					returnNodeIdx = currentPathReturns[lastNonZeroReturnIdx]
				} else {
					returnNodeIdx = 0
				}
			}
		}

		if masks.PathNodeMask.Get(n) && p.Typ(n).IsQueryNode() {
			if p.Typ(n) == bufr.TypeDelayedBinary && p.Val(cursor) == 0 {
				// Absent sub-tree: nothing to push.
			} else {
				currentPath = append(currentPath, n)
				tmpReturnNodeIdx := p.Link(n)
				currentPathReturns = append(currentPathReturns, tmpReturnNodeIdx)

				if tmpReturnNodeIdx != 0 {
					lastNonZeroReturnIdx = len(currentPathReturns) - 1
					returnNodeIdx = tmpReturnNodeIdx
				} else {
					lastNonZeroReturnIdx = 0
					returnNodeIdx = 0

					if cursor != nVal {
						for pathIdx := len(currentPath) - 1; pathIdx >= 0; pathIdx-- {
							returnNodeIdx = p.Link(p.Jmpb(currentPath[pathIdx]))
							lastNonZeroReturnIdx = len(currentPathReturns) - pathIdx - 1
							if returnNodeIdx != 0 {
								break
							}
						}
					}
				}
			}

			nd := dataTable.At(n + 1)
			nd.Counts = append(nd.Counts, 0)
		}
	}

	frame := newDataFrame(targets)
	for idx, targ := range targets {
		if targ.NodeIdx == 0 {
			frame.Fields[idx] = missingField(targ)
			continue
		}

		seqCounts := make([][]int, len(targ.SeqPath)+1)
		seqCounts[0] = []int{1}
		for k, seqNode := range targ.SeqPath {
			seqCounts[k+1] = dataTable.At(seqNode + 1).Counts
		}

		frame.Fields[idx] = DataField{
			Target:    targ,
			Data:      dataTable.At(targ.NodeIdx).Values,
			SeqCounts: seqCounts,
		}
	}

	return frame
}
