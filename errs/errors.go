// Package errs defines the sentinel errors shared across the timeframe packages.
//
// Callers match errors with errors.Is; raise sites wrap these sentinels with
// fmt.Errorf("%w: ...") to attach the offending row/column and the expected
// versus actual shape, so a failure can be diagnosed without re-scanning data.
package errs

import "errors"

// Construction and ingestion errors.
var (
	// ErrInvalidShape indicates malformed row data at construction time:
	// a row whose timestamp and value counts differ, an empty row when
	// empty rows are not permitted, or inconsistent buffer/offset sizes.
	ErrInvalidShape = errors.New("invalid row shape")

	// ErrMixedColumnTypes indicates a legacy column whose cells do not hold
	// one uniform cell type.
	ErrMixedColumnTypes = errors.New("mixed cell types in column")

	// ErrLengthMismatch indicates columns of differing row counts supplied
	// to a single frame.
	ErrLengthMismatch = errors.New("column length mismatch")

	// ErrDuplicateColumn indicates two columns sharing one name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrUnsupportedRowIndex indicates row labels that cannot form an
	// unambiguous label index, such as duplicate labels.
	ErrUnsupportedRowIndex = errors.New("unsupported row index")
)

// Access and transformation errors.
var (
	// ErrIndexOutOfRange indicates a row or timestep position outside the
	// valid range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrIrregularShape indicates a dense rectangular export requested on a
	// ragged array. Padding or truncation is never performed implicitly.
	ErrIrregularShape = errors.New("irregular shape")

	// ErrEmptySelection indicates a time selector that matched zero
	// positions in every row.
	ErrEmptySelection = errors.New("empty time selection")

	// ErrColumnNotFound indicates an unknown column name.
	ErrColumnNotFound = errors.New("column not found")

	// ErrUnknownRowLabel indicates a row label absent from the frame's
	// label index.
	ErrUnknownRowLabel = errors.New("unknown row label")

	// ErrNotTimeSeries indicates a time-series operation requested on a
	// plain scalar column.
	ErrNotTimeSeries = errors.New("not a time-series column")
)

// Snapshot errors.
var (
	// ErrInvalidSnapshot indicates a snapshot payload that is truncated,
	// corrupted, or not a timeframe snapshot.
	ErrInvalidSnapshot = errors.New("invalid snapshot data")
)
