// Package query holds the structured representation of a BUFR mnemonic
// path query (spec §3, §6) and the minimal literal splitter that turns a
// query string into one. A full query-string grammar is explicitly out of
// scope (spec §1); SplitPath implements only the "name[index]" / "*"
// literal surface spec §6 describes.
package query

import (
	"strconv"
	"strings"

	"github.com/ncep-emc/bufrquery/bufr/bufrerr"
)

// SubsetSpec selects which subset(s) a query applies to: either a specific
// subset name, or "any subset" when IsAnySubset is true.
type SubsetSpec struct {
	Name        string
	IsAnySubset bool
}

// QueryComponent names one path element and an optional 1-based occurrence
// index; Index == 0 means "all occurrences".
type QueryComponent struct {
	Name  string
	Index int
}

// Query is one fully-parsed path query: a subset selector plus an ordered
// sequence of path components, along with the original query string for
// diagnostics.
type Query struct {
	Subset   SubsetSpec
	Path     []*QueryComponent
	QueryStr string
}

// SplitPath parses a query string of the form "*/SEQ/SUBSEQ/LEAF[i]" or
// "SUBSETNAME/SEQ/LEAF[i]" into a Query. The leading component selects the
// subset: "*" for any subset, otherwise a literal subset name. Any path
// component may carry a "[i]" occurrence index (i >= 1).
func SplitPath(queryStr string) (*Query, error) {
	trimmed := strings.TrimPrefix(queryStr, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] == "" {
		return nil, bufrerr.Queryf(bufrerr.ErrInvalidPath, queryStr)
	}

	subset := SubsetSpec{}
	if parts[0] == "*" {
		subset.IsAnySubset = true
	} else {
		subset.Name = parts[0]
	}

	path := make([]*QueryComponent, 0, len(parts)-1)
	for _, comp := range parts[1:] {
		if comp == "" {
			return nil, bufrerr.Queryf(bufrerr.ErrInvalidPath, queryStr)
		}
		name := comp
		index := 0
		if open := strings.IndexByte(comp, '['); open >= 0 {
			if !strings.HasSuffix(comp, "]") {
				return nil, bufrerr.Queryf(bufrerr.ErrInvalidPath, queryStr)
			}
			name = comp[:open]
			idxStr := comp[open+1 : len(comp)-1]
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx <= 0 {
				return nil, bufrerr.Queryf(bufrerr.ErrInvalidPath, queryStr)
			}
			index = idx
		}
		path = append(path, &QueryComponent{Name: name, Index: index})
	}

	return &Query{Subset: subset, Path: path, QueryStr: queryStr}, nil
}

// JoinPath re-renders a Query's path components with "/" separators,
// appending "[i]" to every component that has a non-zero index. The result
// carries no subset selector, so SplitPath("*/" + JoinPath(p)).Path == p
// for any non-empty component list.
func JoinPath(path []*QueryComponent) string {
	var b strings.Builder
	for i, c := range path {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(c.Name)
		if c.Index > 0 {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(c.Index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// SplitDimPath splits a slash-joined dim-path string (e.g. "*/OBS/LVL")
// into its non-empty components. Mirrors the original's
// ResultSet::splitPath.
func SplitDimPath(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
