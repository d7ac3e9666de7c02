// Package provider declares the DataProvider contract the bufr query core
// consumes (spec §6). The bit-level BUFR decoder that implements this
// interface is out of scope for this module; this package also supplies a
// small in-memory reference implementation (see memprovider) used by tests
// and the CLI's "dev inspect" subcommand to build synthetic subsets.
package provider

import "github.com/ncep-emc/bufrquery/bufr"

// DataProvider yields per-node structural metadata and per-cursor values for
// one already-decoded BUFR subset. Node indices run from Inode() through
// Isc(Inode()) inclusive; value-stream cursors run from 1 through NVal()
// inclusive.
type DataProvider interface {
	// Inode returns the first node index of the current subset's table.
	Inode() int
	// Isc returns the last node index reachable from node, inclusive.
	// Called as Isc(Inode()) to get the subset's node-index upper bound.
	Isc(node int) int
	// NVal returns the length of the value stream (1-indexed).
	NVal() int
	// Inv returns the node index referenced by value-stream cursor.
	Inv(cursor int) int
	// Val returns the raw decoded value at a value-stream cursor.
	Val(cursor int) float64
	// Typ returns the structural type of a node.
	Typ(node int) bufr.Type
	// Tag returns a node's mnemonic, framed by its two delimiter
	// characters (e.g. "\"NAME\""); callers strip the framing per
	// spec §4.1.
	Tag(node int) string
	// Jmpb returns the node's "jump-back" parent node index, or 0 if
	// none.
	Jmpb(node int) int
	// Link returns the node index at which an open replication closes,
	// or 0 if it closes with the enclosing sequence.
	Link(node int) int
	// TypeInfo returns the decode-time numeric/string typing of a node.
	TypeInfo(node int) bufr.TypeInfo
	// SubsetName returns the mnemonic identifying the current subset.
	SubsetName() string
}
