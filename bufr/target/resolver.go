package target

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ncep-emc/bufrquery/bufr"
	"github.com/ncep-emc/bufrquery/bufr/bufrerr"
	"github.com/ncep-emc/bufrquery/bufr/provider"
	"github.com/ncep-emc/bufrquery/bufr/query"
	"github.com/ncep-emc/bufrquery/bufr/table"
)

// Targets is a resolved vector of Target, in the QuerySet's name order.
type Targets []*Target

// WarnFunc is the injectable warning sink the resolver calls for the
// non-error conditions spec §7 lists ("query does not apply to
// subset", "unresolved path in all sub-queries"). The zero value is a
// no-op discard.
type WarnFunc func(string)

func (w WarnFunc) warn(msg string) {
	if w != nil {
		w(msg)
	}
}

// cacheEntry is what TargetResolver memoizes per subset name.
type cacheEntry struct {
	targets Targets
	masks   *ProcessingMasks
}

// defaultCacheSize bounds the per-subset-name target/mask cache so a long
// session iterating many distinct subset names (a large mixed archive)
// doesn't grow it without bound (spec §5 calls the cache "immutable... safe
// for shared immutable use after warm-up" but says nothing about an upper
// bound on distinct subset names).
const defaultCacheSize = 256

// TargetResolver resolves a QuerySet against successive subsets, memoizing
// resolved Targets and ProcessingMasks per subset name (spec §4.2).
type TargetResolver struct {
	// Strict, when true, rejects an out-of-range occurrence index with
	// ErrIndexOutOfRange instead of silently keeping the full match set
	// (spec §9 open question; default false preserves the original's
	// observed behavior).
	Strict bool
	// Warn receives non-fatal diagnostics (unresolved/inapplicable
	// queries). Defaults to discard.
	Warn WarnFunc

	mu    sync.Mutex
	cache *lru.Cache[string, cacheEntry]
}

// NewTargetResolver constructs a TargetResolver with a bounded per-subset
// cache.
func NewTargetResolver() *TargetResolver {
	cache, _ := lru.New[string, cacheEntry](defaultCacheSize)
	return &TargetResolver{cache: cache}
}

// Resolve returns the Targets and ProcessingMasks for querySet against the
// provider's current subset, building and caching them on first sight of
// this subset name (spec §4.2 "Caching").
func (r *TargetResolver) Resolve(querySet *query.QuerySet, p provider.DataProvider) (Targets, *ProcessingMasks, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.SubsetName()
	if entry, ok := r.cache.Get(name); ok {
		return entry.targets, entry.masks, nil
	}

	numNodes := p.Isc(p.Inode())
	masks := NewProcessingMasks(0, numNodes+1)

	tbl := table.NewSubsetTable(p)

	var targets Targets
	for _, name := range querySet.Names() {
		subQueries := querySet.QueriesFor(name)

		var tableNode *table.BufrNode
		var allNodes []*table.BufrNode
		var found *query.Query
		for _, q := range subQueries {
			if !q.Subset.IsAnySubset && q.Subset.Name != p.SubsetName() {
				continue
			}
			nodes := tbl.AllNodesForPath(q.Path)
			if len(nodes) > 0 {
				allNodes = nodes
				found = q
				break
			}
		}

		if found == nil || len(allNodes) == 0 {
			target := emptyTarget(name, subQueries[0].QueryStr)
			targets = append(targets, target)
			r.Warn.warn(warnUnresolved(name, subQueries, p.SubsetName()))
			continue
		}

		if endComp := found.Path[len(found.Path)-1]; endComp.Index > 0 {
			if endComp.Index <= len(allNodes) {
				allNodes = []*table.BufrNode{allNodes[endComp.Index-1]}
			} else if r.Strict {
				return nil, nil, bufrerr.Queryf(bufrerr.ErrIndexOutOfRange, found.QueryStr)
			}
			// else: keep the full set, matching the original's
			// observed (if suspect) behavior — spec §9.
		}

		if len(allNodes) > 1 {
			return nil, nil, bufrerr.Queryf(bufrerr.ErrAmbiguousQuery, found.QueryStr)
		}
		tableNode = allNodes[0]

		target := buildTarget(name, found, tableNode)
		targets = append(targets, target)

		masks.ValueNodeMask.Set(target.NodeIdx)
		for _, n := range target.SeqPath {
			masks.PathNodeMask.Set(n)
		}
	}

	r.cache.Add(name, cacheEntry{targets: targets, masks: masks})
	return targets, masks, nil
}

func warnUnresolved(name string, subQueries []*query.Query, subsetName string) string {
	var b strings.Builder
	b.WriteString("query ")
	if len(subQueries) == 1 {
		b.WriteString(subQueries[0].QueryStr)
	} else {
		b.WriteByte('[')
		for i, q := range subQueries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(q.QueryStr)
		}
		b.WriteByte(']')
	}
	b.WriteString(" didn't apply to subset ")
	b.WriteString(subsetName)
	b.WriteString(" (field ")
	b.WriteString(name)
	b.WriteByte(')')
	return b.String()
}

func buildTarget(name string, q *query.Query, node *table.BufrNode) *Target {
	pathNodes := node.GetPathNodes()

	path := make([]TargetComponent, len(pathNodes))
	path[0] = TargetComponent{QueryComponent: nil, Branch: 0, Type: bufr.TypeSubset}
	for i := 1; i < len(pathNodes); i++ {
		path[i] = TargetComponent{
			QueryComponent: q.Path[i-1],
			Branch:         pathNodes[i].NodeIdx,
			Type:           pathNodes[i].Type,
		}
	}

	dimPaths := node.GetDimPaths()
	dimSeqIdx := make([]int, len(dimPaths))
	dimSeqIdx[0] = -1

	var seqPath []int
	nextDimLevel := 1
	for i := 1; i < len(path); i++ {
		if !isSeqPathType(path[i].Type) {
			continue
		}
		seqPath = append(seqPath, path[i].Branch)
		if table.DimAdding(path[i].Type) && nextDimLevel < len(dimSeqIdx) {
			dimSeqIdx[nextDimLevel] = len(seqPath) - 1
			nextDimLevel++
		}
	}

	return &Target{
		Name:          name,
		QueryStr:      q.QueryStr,
		NodeIdx:       node.NodeIdx,
		Path:          path,
		SeqPath:       seqPath,
		TypeInfo:      node.TypeInfo,
		DimPaths:      dimPaths,
		ExportDimIdxs: node.GetDimIdxs(),
		DimSeqIdx:     dimSeqIdx,
	}
}
