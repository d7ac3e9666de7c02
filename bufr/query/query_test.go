package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ncep-emc/bufrquery/bufr/query"
)

func TestSplitPath_RoundTrip(t *testing.T) {
	q, err := query.SplitPath("*/OBS/LVL/TEMP[2]")
	require.NoError(t, err)
	require.True(t, q.Subset.IsAnySubset)
	require.Equal(t, []string{"OBS", "LVL", "TEMP"}, namesOf(q.Path))
	require.Equal(t, 2, q.Path[2].Index)

	require.Equal(t, "OBS/LVL/TEMP[2]", query.JoinPath(q.Path))
}

func TestSplitPath_NamedSubset(t *testing.T) {
	q, err := query.SplitPath("NC000001/SEQ/LEAF")
	require.NoError(t, err)
	require.False(t, q.Subset.IsAnySubset)
	require.Equal(t, "NC000001", q.Subset.Name)
}

func TestSplitPath_Invalid(t *testing.T) {
	_, err := query.SplitPath("bareword")
	require.Error(t, err)

	_, err = query.SplitPath("*/SEQ/LEAF[x]")
	require.Error(t, err)

	_, err = query.SplitPath("*//LEAF")
	require.Error(t, err)
}

func TestSplitDimPath(t *testing.T) {
	require.Equal(t, []string{"*", "OBS", "LVL"}, query.SplitDimPath("*/OBS/LVL"))
}

func namesOf(path []*query.QueryComponent) []string {
	out := make([]string, len(path))
	for i, c := range path {
		out[i] = c.Name
	}
	return out
}
