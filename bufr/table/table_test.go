package table_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ncep-emc/bufrquery/bufr"
	"github.com/ncep-emc/bufrquery/bufr/provider/memprovider"
	"github.com/ncep-emc/bufrquery/bufr/query"
	"github.com/ncep-emc/bufrquery/bufr/table"
)

func buildFooBar() (*memprovider.Provider, int) {
	b := memprovider.NewBuilder("FOO", 1)
	bar1 := b.Node("BAR", bufr.TypeNumber, 1, 0, bufr.TypeInfo{})
	bar2 := b.Node("BAR", bufr.TypeNumber, 1, 0, bufr.TypeInfo{})
	bar3 := b.Node("BAR", bufr.TypeNumber, 1, 0, bufr.TypeInfo{})
	b.Emit(bar1, 10).Emit(bar2, 20).Emit(bar3, 30)
	return memprovider.NewProvider(b.Build()), bar2
}

func TestGetNodeForPath_Indexed(t *testing.T) {
	p, bar2 := buildFooBar()
	tbl := table.NewSubsetTable(p)

	q, err := query.SplitPath("*/BAR[2]")
	require.NoError(t, err)

	node := tbl.GetNodeForPath(q.Path)
	require.NotNil(t, node)
	require.Equal(t, "BAR", node.Name())
	require.Equal(t, bar2, node.NodeIdx)
}

func TestAllNodesForPath_Unindexed(t *testing.T) {
	p, _ := buildFooBar()
	tbl := table.NewSubsetTable(p)

	q, err := query.SplitPath("*/BAR")
	require.NoError(t, err)

	nodes := tbl.AllNodesForPath(q.Path)
	require.Len(t, nodes, 3)
}

func TestAllNodesForPath_NoMatch(t *testing.T) {
	p, _ := buildFooBar()
	tbl := table.NewSubsetTable(p)

	q, err := query.SplitPath("*/NOPE")
	require.NoError(t, err)

	require.Nil(t, tbl.AllNodesForPath(q.Path))
}

func TestDimPaths_SequenceAddsDimension(t *testing.T) {
	b := memprovider.NewBuilder("FOO", 1)
	obs := b.Node("OBS", bufr.TypeDelayedRep, 1, 0, bufr.TypeInfo{})
	temp := b.Node("TEMP", bufr.TypeNumber, obs, 0, bufr.TypeInfo{})
	b.Emit(obs, 0).Emit(temp, 1)
	p := memprovider.NewProvider(b.Build())

	tbl := table.NewSubsetTable(p)
	node := tbl.NodeAt(temp)

	require.Equal(t, []string{"*", "*/OBS"}, node.GetDimPaths())
	require.Equal(t, []int{0, 1}, node.GetDimIdxs())
}
