package result_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ncep-emc/bufrquery/bufr"
	"github.com/ncep-emc/bufrquery/bufr/bufrerr"
	"github.com/ncep-emc/bufrquery/bufr/collect"
	"github.com/ncep-emc/bufrquery/bufr/provider"
	"github.com/ncep-emc/bufrquery/bufr/provider/memprovider"
	"github.com/ncep-emc/bufrquery/bufr/query"
	"github.com/ncep-emc/bufrquery/bufr/result"
	"github.com/ncep-emc/bufrquery/bufr/target"
)

// obsTempSubset builds a "*/OBS/TEMP" subset, one DelayedRep sequence OBS
// of a Number leaf TEMP, with one TEMP value per occurrence.
func obsTempSubset(name string, values []float64) *memprovider.Provider {
	b := memprovider.NewBuilder(name, 1)
	obs := b.Node("OBS", bufr.TypeDelayedRep, 1, 0, bufr.TypeInfo{})
	temp := b.Node("TEMP", bufr.TypeNumber, obs, 0, bufr.TypeInfo{Bits: 64, Scale: 1})
	b.Emit(obs, 0)
	for _, v := range values {
		b.Emit(temp, v)
	}
	return memprovider.NewProvider(b.Build())
}

func runPipeline(t *testing.T, qs *query.QuerySet, providers ...provider.DataProvider) *result.ResultSet {
	resolver := target.NewTargetResolver()
	collector := collect.NewFrameCollector()
	rs := result.New()

	for _, p := range providers {
		targets, masks, err := resolver.Resolve(qs, p)
		require.NoError(t, err)
		rs.Append(collector.Collect(targets, masks, p))
	}
	return rs
}

func TestGet_SimpleLeaf(t *testing.T) {
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("temp", "*/OBS/TEMP"))

	p := obsTempSubset("FOO", []float64{273.1, 274.2})
	rs := runPipeline(t, qs, p)

	obj, err := rs.Get("temp", "", "")
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, obj.Dims)
	require.Equal(t, []string{"*", "*/OBS"}, obj.DimPaths)
	require.Equal(t, []float64{273.1, 274.2}, obj.Float64s())
}

func TestGet_JaggedAcrossFrames(t *testing.T) {
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("temp", "*/OBS/TEMP"))

	p1 := obsTempSubset("FOO", []float64{1, 2})
	p2 := obsTempSubset("FOO", []float64{3, 4, 5})
	p3 := obsTempSubset("FOO", []float64{6})
	rs := runPipeline(t, qs, p1, p2, p3)

	obj, err := rs.Get("temp", "", "")
	require.NoError(t, err)
	require.Equal(t, []int{3, 3}, obj.Dims)

	m := bufr.MissingValue
	require.Equal(t, []float64{1, 2, m, 3, 4, 5, 6, m, m}, obj.Float64s())
}

func TestGet_MissingFieldYieldsSentinel(t *testing.T) {
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("nope", "*/NOPE"))

	p := obsTempSubset("FOO", []float64{1})
	rs := runPipeline(t, qs, p)

	obj, err := rs.Get("nope", "", "")
	require.NoError(t, err)
	require.Equal(t, []int{1}, obj.Dims)
	require.Equal(t, result.KindInt32, obj.Kind)
	require.Len(t, obj.Int32s(), 1)
}

func TestGet_FieldNotFound(t *testing.T) {
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("temp", "*/OBS/TEMP"))

	p := obsTempSubset("FOO", []float64{1})
	rs := runPipeline(t, qs, p)

	_, err := rs.Get("missing", "", "")
	require.ErrorIs(t, err, bufrerr.ErrFieldNotFound)
}

func TestGet_EmptyResultSet(t *testing.T) {
	rs := result.New()
	_, err := rs.Get("anything", "", "")
	require.ErrorIs(t, err, bufrerr.ErrEmptyResultSet)
}

func TestGet_OverrideType(t *testing.T) {
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("temp", "*/OBS/TEMP"))

	p := obsTempSubset("FOO", []float64{273, 274})
	rs := runPipeline(t, qs, p)

	obj, err := rs.Get("temp", "", "int32")
	require.NoError(t, err)
	require.Equal(t, result.KindInt32, obj.Kind)
	require.Equal(t, []int32{273, 274}, obj.Int32s())
}

func TestGet_IncompatibleOverrideRejected(t *testing.T) {
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("temp", "*/OBS/TEMP"))

	p := obsTempSubset("FOO", []float64{1})
	rs := runPipeline(t, qs, p)

	_, err := rs.Get("temp", "", "string")
	require.ErrorIs(t, err, bufrerr.ErrIncompatibleOverride)
}

func TestUnit(t *testing.T) {
	qs := query.NewQuerySet()
	require.NoError(t, qs.Add("temp", "*/OBS/TEMP"))

	b := memprovider.NewBuilder("FOO", 1)
	obs := b.Node("OBS", bufr.TypeDelayedRep, 1, 0, bufr.TypeInfo{})
	temp := b.Node("TEMP", bufr.TypeNumber, obs, 0, bufr.TypeInfo{Unit: "K"})
	b.Emit(obs, 0).Emit(temp, 273)
	p := memprovider.NewProvider(b.Build())

	rs := runPipeline(t, qs, p)
	require.Equal(t, "K", rs.Unit("temp"))
	require.Equal(t, "", rs.Unit("nope"))
}
