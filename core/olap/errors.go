package olap

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for OLAP misconfiguration. These signal programmer or
// config errors; callers should abort the operation, not retry.
var (
	// ErrUnknownDimension means an operation referenced a column the table
	// does not have.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrInvalidHierarchyLevel means the target level is not part of the
	// supplied hierarchy.
	ErrInvalidHierarchyLevel = errors.New("invalid hierarchy level")

	// ErrNoMatchingColumns means none of the hierarchy columns exist in
	// the table.
	ErrNoMatchingColumns = errors.New("no matching columns")
)

// unknownDimension wraps ErrUnknownDimension with the offending name and
// the available columns, mirroring the diagnostics the dashboard shows.
func unknownDimension(dimension string, columns []string) error {
	return fmt.Errorf("%w: %q not found, available: [%s]",
		ErrUnknownDimension, dimension, strings.Join(columns, ", "))
}
