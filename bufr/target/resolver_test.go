package target_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ncep-emc/bufrquery/bufr"
	"github.com/ncep-emc/bufrquery/bufr/bufrerr"
	"github.com/ncep-emc/bufrquery/bufr/provider/memprovider"
	"github.com/ncep-emc/bufrquery/bufr/query"
	"github.com/ncep-emc/bufrquery/bufr/target"
)

func buildThreeBar(t *testing.T) *memprovider.Provider {
	b := memprovider.NewBuilder("FOO", 1)
	bar1 := b.Node("BAR", bufr.TypeNumber, 1, 0, bufr.TypeInfo{})
	bar2 := b.Node("BAR", bufr.TypeNumber, 1, 0, bufr.TypeInfo{})
	bar3 := b.Node("BAR", bufr.TypeNumber, 1, 0, bufr.TypeInfo{})
	b.Emit(bar1, 1).Emit(bar2, 2).Emit(bar3, 3)
	return memprovider.NewProvider(b.Build())
}

func TestResolve_IndexDisambiguation(t *testing.T) {
	p := buildThreeBar(t)
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("field", "FOO/BAR[2]"))

	r := target.NewTargetResolver()
	targets, _, err := r.Resolve(qs, p)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.NotZero(t, targets[0].NodeIdx)
}

func TestResolve_AmbiguousWithoutIndex(t *testing.T) {
	p := buildThreeBar(t)
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("field", "FOO/BAR"))

	r := target.NewTargetResolver()
	_, _, err := r.Resolve(qs, p)
	require.ErrorIs(t, err, bufrerr.ErrAmbiguousQuery)
}

func TestResolve_UnresolvedFieldWarns(t *testing.T) {
	p := buildThreeBar(t)
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("field", "*/NOPE"))

	var warned string
	r := target.NewTargetResolver()
	r.Warn = func(msg string) { warned = msg }

	targets, _, err := r.Resolve(qs, p)
	require.NoError(t, err)
	require.Equal(t, 0, targets[0].NodeIdx)
	require.Contains(t, warned, "NOPE")
}

func TestResolve_CachesPerSubsetName(t *testing.T) {
	p := buildThreeBar(t)
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("field", "FOO/BAR[1]"))

	r := target.NewTargetResolver()
	t1, m1, err := r.Resolve(qs, p)
	require.NoError(t, err)
	t2, m2, err := r.Resolve(qs, p)
	require.NoError(t, err)

	require.Same(t, t1[0], t2[0])
	require.Same(t, m1, m2)
}
