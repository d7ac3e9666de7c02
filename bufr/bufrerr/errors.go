// Package bufrerr declares the sentinel errors surfaced by the bufr query
// core (spec §7). Each is a plain sentinel, matched with errors.Is; callers
// that need the offending query string or path should inspect the wrapped
// error text or use errors.Unwrap.
package bufrerr

import (
	"errors"
	"fmt"
)

var (
	// ErrAmbiguousQuery signals that more than one endpoint matched a
	// query's path and no occurrence index was given to disambiguate.
	ErrAmbiguousQuery = errors.New("ambiguous query")

	// ErrFieldNotFound signals that ResultSet.Get was called for a field
	// name that no accumulated frame's target list contains.
	ErrFieldNotFound = errors.New("field not found")

	// ErrIncompatibleGroupBy signals that a requested group-by field's
	// dim-path is not a common prefix of the target field's dim-path.
	ErrIncompatibleGroupBy = errors.New("incompatible group-by field")

	// ErrIncompatibleOverride signals a numeric<->string override type
	// mismatch in ResultSet.Get.
	ErrIncompatibleOverride = errors.New("incompatible override type")

	// ErrEmptyResultSet signals that Get was called before any frames
	// were collected.
	ErrEmptyResultSet = errors.New("result set is empty")

	// ErrInvalidPath signals a malformed query string given to
	// query.SplitPath. A path that finds no node is not an error:
	// SubsetTable.GetNodeForPath returns nil for it.
	ErrInvalidPath = errors.New("invalid path")

	// ErrIndexOutOfRange signals a requested occurrence index exceeded
	// the number of discovered endpoints, when TargetResolver.Strict is
	// enabled. Left disabled by default to match the original's
	// observed behavior (spec §9 open question).
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Queryf wraps a sentinel error with the offending query string.
func Queryf(err error, queryStr string) error {
	return fmt.Errorf("%w: %s", err, queryStr)
}

// Pathf wraps a sentinel error with two dim-paths, for ErrIncompatibleGroupBy.
func Pathf(err error, groupByPath, targetPath string) error {
	return fmt.Errorf("%w: group-by path %q is not a prefix of target path %q",
		err, groupByPath, targetPath)
}
