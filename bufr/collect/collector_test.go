package collect_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ncep-emc/bufrquery/bufr"
	"github.com/ncep-emc/bufrquery/bufr/collect"
	"github.com/ncep-emc/bufrquery/bufr/provider/memprovider"
	"github.com/ncep-emc/bufrquery/bufr/query"
	"github.com/ncep-emc/bufrquery/bufr/target"
)

// buildSimpleLeaf constructs a one-sequence, one-leaf subset:
// root -> OBS (DelayedRep) -> TEMP (Number), with occurrences counts
// values emitted in stream order, one TEMP value per occurrence.
func buildSimpleLeaf(name string, values []float64) *memprovider.Subset {
	b := memprovider.NewBuilder(name, 1)
	obs := b.Node("OBS", bufr.TypeDelayedRep, 1, 0, bufr.TypeInfo{})
	temp := b.Node("TEMP", bufr.TypeNumber, obs, 0, bufr.TypeInfo{Bits: 12})
	b.Emit(obs, 0)
	for _, v := range values {
		b.Emit(temp, v)
	}
	return b.Build()
}

func resolveAndCollect(t *testing.T, p *memprovider.Provider, queryStr string) *collect.DataFrame {
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("field", queryStr))

	resolver := target.NewTargetResolver()
	targets, masks, err := resolver.Resolve(qs, p)
	require.NoError(t, err)

	fc := collect.NewFrameCollector()
	return fc.Collect(targets, masks, p)
}

func TestCollect_SimpleLeaf(t *testing.T) {
	s := buildSimpleLeaf("FOO", []float64{273.1, 274.2})
	p := memprovider.NewProvider(s)

	frame := resolveAndCollect(t, p, "*/OBS/TEMP")
	require.Len(t, frame.Fields, 1)

	field := frame.Fields[0]
	require.Equal(t, []float64{273.1, 274.2}, field.Data)
	require.Len(t, field.SeqCounts, 2)
	require.Equal(t, []int{1}, field.SeqCounts[0])
	require.Equal(t, []int{2}, field.SeqCounts[1])
}

func TestCollect_FixedReplicationCount(t *testing.T) {
	b := memprovider.NewBuilder("FOO", 1)
	rep := b.Node("OBS", bufr.TypeFixedRep, 1, 0, bufr.TypeInfo{})
	leaf := b.Node("TEMP", bufr.TypeNumber, rep, 0, bufr.TypeInfo{Bits: 12})
	b.Emit(rep, 0)
	for i := 0; i < 4; i++ {
		b.Emit(leaf, float64(i))
	}
	s := b.Build()
	p := memprovider.NewProvider(s)

	frame := resolveAndCollect(t, p, "*/OBS/TEMP")
	field := frame.Fields[0]
	require.Len(t, field.Data, 4)
	require.Equal(t, []int{4}, field.SeqCounts[1])
}

func TestCollect_DelayedBinaryAbsent(t *testing.T) {
	b := memprovider.NewBuilder("FOO", 1)
	gate := b.Node("PRES", bufr.TypeDelayedBinary, 1, 0, bufr.TypeInfo{})
	leaf := b.Node("TEMP", bufr.TypeNumber, gate, 0, bufr.TypeInfo{Bits: 12})
	b.Emit(gate, 0) // absent: v == 0, sub-tree skipped
	_ = leaf
	s := b.Build()
	p := memprovider.NewProvider(s)

	frame := resolveAndCollect(t, p, "*/PRES/TEMP")
	field := frame.Fields[0]
	require.Empty(t, field.Data)
}

func TestCollect_MissingField(t *testing.T) {
	s := buildSimpleLeaf("FOO", []float64{1})
	p := memprovider.NewProvider(s)

	frame := resolveAndCollect(t, p, "*/NOPE")
	field := frame.Fields[0]
	require.Equal(t, []float64{bufr.MissingValue}, field.Data)
	require.Equal(t, [][]int{{1}}, field.SeqCounts)
}
