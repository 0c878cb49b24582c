package series

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/timeframe/errs"
	"github.com/arloliu/timeframe/format"
	"github.com/arloliu/timeframe/internal/options"
)

// DataPoint represents a single observation within one row of a column.
type DataPoint struct {
	// Ts is the recorded timestamp; the unit is defined by the caller at ingestion.
	Ts int64
	// Val is the float value observed at Ts.
	Val float64
}

// Row is the per-row view of a column: two parallel 1D sequences.
// It is also the cell type of the legacy nested representation that
// FromRows compacts away.
type Row struct {
	Timestamps []int64
	Values     []float64
}

// Len returns the number of points in the row.
func (r Row) Len() int {
	return len(r.Values)
}

// Array is the backing store for one column of N time series.
//
// The zero value is an empty regular column with no rows. Methods use value
// receivers; an Array is cheap to copy because copies share the immutable
// backing buffers.
type Array struct {
	layout format.Layout
	rows   int
	steps  int // points per row when regular, 0 when ragged

	values     []float64 // regular: rows×steps row-major; ragged: concatenated
	index      []int64   // regular: shared time index of length steps
	timestamps []int64   // ragged: concatenated per-row timestamps, parallel to values
	offsets    []int     // ragged: length rows+1, offsets[0]==0

	sortedIndex bool // every row's time index is non-decreasing
}

// config carries construction options shared by the Array constructors.
type config struct {
	allowEmpty bool
	zeroCopy   bool
}

// Option represents a functional option for the Array constructors.
type Option = options.Option[*config]

// WithEmptyRows permits rows with zero points at construction time.
// By default an empty row fails construction with errs.ErrInvalidShape.
func WithEmptyRows() Option {
	return options.NoError(func(c *config) {
		c.allowEmpty = true
	})
}

// WithZeroCopy makes FromDense and FromRagged alias the caller's buffers
// instead of copying them. The caller must treat the supplied buffers as
// read-only for the lifetime of the Array. Constructors that inherently
// compact (FromRows, FromMatrix) ignore this option.
func WithZeroCopy() Option {
	return options.NoError(func(c *config) {
		c.zeroCopy = true
	})
}

// FromRows compacts a legacy per-row nested representation into an Array.
//
// Regularity is determined in a single O(N·L) pass: rows are regular when
// they share one length and an elementwise-identical time index. This scan
// happens once here and is never repeated by later reads.
//
// Returns errs.ErrInvalidShape when a row's timestamp and value counts
// differ, or when a row is empty and WithEmptyRows was not given.
func FromRows(rows []Row, opts ...Option) (Array, error) {
	var cfg config
	if err := options.Apply(&cfg, opts...); err != nil {
		return Array{}, err
	}

	return fromRows(rows, cfg)
}

func fromRows(rows []Row, cfg config) (Array, error) {
	if len(rows) == 0 {
		return Array{layout: format.LayoutRegular}, nil
	}

	total := 0
	regular := true
	steps := rows[0].Len()

	for i, row := range rows {
		if len(row.Timestamps) != len(row.Values) {
			return Array{}, fmt.Errorf("%w: row %d has %d timestamps but %d values",
				errs.ErrInvalidShape, i, len(row.Timestamps), len(row.Values))
		}
		if row.Len() == 0 && !cfg.allowEmpty {
			return Array{}, fmt.Errorf("%w: row %d is empty", errs.ErrInvalidShape, i)
		}
		if row.Len() != steps {
			regular = false
		}
		total += row.Len()
	}

	if regular {
		for _, row := range rows[1:] {
			if !slices.Equal(row.Timestamps, rows[0].Timestamps) {
				regular = false
				break
			}
		}
	}

	if regular {
		arr := Array{
			layout: format.LayoutRegular,
			rows:   len(rows),
			steps:  steps,
			values: make([]float64, 0, total),
			index:  slices.Clone(rows[0].Timestamps),
		}
		for _, row := range rows {
			arr.values = append(arr.values, row.Values...)
		}
		arr.sortedIndex = slices.IsSorted(arr.index)

		return arr, nil
	}

	arr := Array{
		layout:     format.LayoutRagged,
		rows:       len(rows),
		values:     make([]float64, 0, total),
		timestamps: make([]int64, 0, total),
		offsets:    make([]int, 1, len(rows)+1),
	}
	arr.sortedIndex = true
	for _, row := range rows {
		arr.values = append(arr.values, row.Values...)
		arr.timestamps = append(arr.timestamps, row.Timestamps...)
		arr.offsets = append(arr.offsets, len(arr.values))
		if arr.sortedIndex && !slices.IsSorted(row.Timestamps) {
			arr.sortedIndex = false
		}
	}

	return arr, nil
}

// FromMatrix builds a regular Array from a dense [N][L] value matrix and a
// shared time index. Input slices are always copied.
//
// Returns errs.ErrInvalidShape when any row's length differs from the index
// length, or when the index is empty while rows are present.
func FromMatrix(values [][]float64, index []int64) (Array, error) {
	if len(values) == 0 {
		return Array{layout: format.LayoutRegular}, nil
	}
	if len(index) == 0 {
		return Array{}, fmt.Errorf("%w: empty time index for %d rows", errs.ErrInvalidShape, len(values))
	}

	steps := len(index)
	flat := make([]float64, 0, len(values)*steps)
	for i, row := range values {
		if len(row) != steps {
			return Array{}, fmt.Errorf("%w: row %d has %d values, time index has %d entries",
				errs.ErrInvalidShape, i, len(row), steps)
		}
		flat = append(flat, row...)
	}

	return Array{
		layout:      format.LayoutRegular,
		rows:        len(values),
		steps:       steps,
		values:      flat,
		index:       slices.Clone(index),
		sortedIndex: slices.IsSorted(index),
	}, nil
}

// FromDense builds a regular Array from an already-flattened row-major value
// buffer and a shared time index. With WithZeroCopy the buffers are aliased
// and must be treated as read-only by the caller; by default they are copied.
//
// Returns errs.ErrInvalidShape when len(values) != rows*len(index), or when
// the index is empty while rows are present and WithEmptyRows was not given.
func FromDense(values []float64, rows int, index []int64, opts ...Option) (Array, error) {
	var cfg config
	if err := options.Apply(&cfg, opts...); err != nil {
		return Array{}, err
	}

	if rows < 0 {
		return Array{}, fmt.Errorf("%w: negative row count %d", errs.ErrInvalidShape, rows)
	}
	if rows == 0 {
		return Array{layout: format.LayoutRegular}, nil
	}

	steps := len(index)
	if steps == 0 && !cfg.allowEmpty {
		return Array{}, fmt.Errorf("%w: empty time index for %d rows", errs.ErrInvalidShape, rows)
	}
	if len(values) != rows*steps {
		return Array{}, fmt.Errorf("%w: %d values cannot form %d rows of %d steps",
			errs.ErrInvalidShape, len(values), rows, steps)
	}

	if !cfg.zeroCopy {
		values = slices.Clone(values)
		index = slices.Clone(index)
	}

	return Array{
		layout:      format.LayoutRegular,
		rows:        rows,
		steps:       steps,
		values:      values,
		index:       index,
		sortedIndex: slices.IsSorted(index),
	}, nil
}

// FromRagged builds an Array from concatenated value and timestamp buffers
// with per-row offsets. When every row turns out to share one length and an
// identical time index, the result collapses to the regular layout.
//
// With WithZeroCopy the buffers are aliased and must be treated as read-only
// by the caller; by default they are copied.
//
// Returns errs.ErrInvalidShape when the offsets are malformed (missing
// leading zero, decreasing, or final offset not matching the buffer length),
// when the timestamp and value buffers differ in length, or when a row is
// empty and WithEmptyRows was not given.
func FromRagged(values []float64, timestamps []int64, offsets []int, opts ...Option) (Array, error) {
	var cfg config
	if err := options.Apply(&cfg, opts...); err != nil {
		return Array{}, err
	}

	if len(offsets) < 1 {
		return Array{}, fmt.Errorf("%w: offsets must have at least one element", errs.ErrInvalidShape)
	}
	if offsets[0] != 0 {
		return Array{}, fmt.Errorf("%w: offsets[0] is %d, want 0", errs.ErrInvalidShape, offsets[0])
	}
	if len(timestamps) != len(values) {
		return Array{}, fmt.Errorf("%w: %d timestamps but %d values",
			errs.ErrInvalidShape, len(timestamps), len(values))
	}

	rows := len(offsets) - 1
	for i := 0; i < rows; i++ {
		if offsets[i] > offsets[i+1] {
			return Array{}, fmt.Errorf("%w: offsets decrease at row %d: %d > %d",
				errs.ErrInvalidShape, i, offsets[i], offsets[i+1])
		}
		if offsets[i] == offsets[i+1] && !cfg.allowEmpty {
			return Array{}, fmt.Errorf("%w: row %d is empty", errs.ErrInvalidShape, i)
		}
	}
	if offsets[rows] != len(values) {
		return Array{}, fmt.Errorf("%w: final offset %d does not match %d buffered values",
			errs.ErrInvalidShape, offsets[rows], len(values))
	}

	if rows == 0 {
		return Array{layout: format.LayoutRegular}, nil
	}

	if !cfg.zeroCopy {
		values = slices.Clone(values)
		timestamps = slices.Clone(timestamps)
		offsets = slices.Clone(offsets)
	}

	if steps, regular := raggedIsRegular(timestamps, offsets); regular {
		return Array{
			layout:      format.LayoutRegular,
			rows:        rows,
			steps:       steps,
			values:      values,
			index:       timestamps[:steps],
			sortedIndex: slices.IsSorted(timestamps[:steps]),
		}, nil
	}

	arr := Array{
		layout:     format.LayoutRagged,
		rows:       rows,
		values:     values,
		timestamps: timestamps,
		offsets:    offsets,
	}
	arr.sortedIndex = true
	for i := 0; i < rows; i++ {
		if !slices.IsSorted(timestamps[offsets[i]:offsets[i+1]]) {
			arr.sortedIndex = false
			break
		}
	}

	return arr, nil
}

// raggedIsRegular reports whether concatenated per-row timestamps describe
// rows of one shared length and identical time index, returning that length.
func raggedIsRegular(timestamps []int64, offsets []int) (int, bool) {
	rows := len(offsets) - 1
	steps := offsets[1]

	for i := 1; i < rows; i++ {
		if offsets[i+1]-offsets[i] != steps {
			return 0, false
		}
	}
	shared := timestamps[:steps]
	for i := 1; i < rows; i++ {
		if !slices.Equal(timestamps[offsets[i]:offsets[i+1]], shared) {
			return 0, false
		}
	}

	return steps, true
}

// Rows returns the number of rows (series) in the column.
func (a Array) Rows() int {
	return a.rows
}

// Steps returns the shared row length and true for regular columns.
// For ragged columns it returns (0, false); use RowLens to obtain the
// per-row lengths without scanning the data buffers.
func (a Array) Steps() (int, bool) {
	if a.layout == format.LayoutRagged {
		return 0, false
	}

	return a.steps, true
}

// IsRegular returns true when every row shares one length and an identical
// time index. The flag is stored at construction and recomputed by every
// producing operation, never derived lazily on read.
func (a Array) IsRegular() bool {
	return a.layout != format.LayoutRagged
}

// Layout returns the storage layout tag.
func (a Array) Layout() format.Layout {
	if a.layout == 0 {
		return format.LayoutRegular
	}

	return a.layout
}

// Len returns the total number of points across all rows.
func (a Array) Len() int {
	if a.layout == format.LayoutRagged {
		return len(a.values)
	}

	return a.rows * a.steps
}

// RowLen returns the number of points in row i, or 0 when i is out of range.
func (a Array) RowLen(i int) int {
	if i < 0 || i >= a.rows {
		return 0
	}
	if a.layout == format.LayoutRagged {
		return a.offsets[i+1] - a.offsets[i]
	}

	return a.steps
}

// RowLens returns the per-row length array as a new slice. It is computed
// from the offset bookkeeping alone; the data buffers are not scanned.
func (a Array) RowLens() []int {
	lens := make([]int, a.rows)
	for i := range lens {
		lens[i] = a.RowLen(i)
	}

	return lens
}

// rowBounds returns the [start, end) range of row i in the backing buffers.
// The caller must bounds-check i.
func (a Array) rowBounds(i int) (int, int) {
	if a.layout == format.LayoutRagged {
		return a.offsets[i], a.offsets[i+1]
	}
	start := i * a.steps

	return start, start + a.steps
}

// rowIndex returns the time index of row i as a view into the backing
// buffers. The caller must bounds-check i and must not modify the result.
func (a Array) rowIndex(i int) []int64 {
	if a.layout == format.LayoutRagged {
		return a.timestamps[a.offsets[i]:a.offsets[i+1]]
	}

	return a.index
}

// Row returns row i as two newly allocated 1D sequences.
//
// Returns errs.ErrIndexOutOfRange when i is outside [0, Rows).
func (a Array) Row(i int) (Row, error) {
	if i < 0 || i >= a.rows {
		return Row{}, fmt.Errorf("%w: row %d, array has %d rows", errs.ErrIndexOutOfRange, i, a.rows)
	}

	start, end := a.rowBounds(i)

	return Row{
		Timestamps: slices.Clone(a.rowIndex(i)),
		Values:     slices.Clone(a.values[start:end]),
	}, nil
}

// All returns an iterator over (position, DataPoint) for row i.
// Points are yielded lazily from the backing buffers; no per-row objects
// are materialized. Returns an empty iterator when i is out of range.
func (a Array) All(i int) iter.Seq2[int, DataPoint] {
	if i < 0 || i >= a.rows {
		return func(yield func(int, DataPoint) bool) {}
	}

	start, end := a.rowBounds(i)
	index := a.rowIndex(i)

	return func(yield func(int, DataPoint) bool) {
		for j := start; j < end; j++ {
			if !yield(j-start, DataPoint{Ts: index[j-start], Val: a.values[j]}) {
				return
			}
		}
	}
}

// AllValues returns an iterator over the values of row i.
// Returns an empty iterator when i is out of range.
func (a Array) AllValues(i int) iter.Seq[float64] {
	if i < 0 || i >= a.rows {
		return func(yield func(float64) bool) {}
	}

	start, end := a.rowBounds(i)

	return func(yield func(float64) bool) {
		for j := start; j < end; j++ {
			if !yield(a.values[j]) {
				return
			}
		}
	}
}

// AllTimestamps returns an iterator over the timestamps of row i.
// Returns an empty iterator when i is out of range.
func (a Array) AllTimestamps(i int) iter.Seq[int64] {
	if i < 0 || i >= a.rows {
		return func(yield func(int64) bool) {}
	}

	index := a.rowIndex(i)

	return func(yield func(int64) bool) {
		for _, ts := range index {
			if !yield(ts) {
				return
			}
		}
	}
}

// TimeIndex returns a copy of the shared time index and true for regular
// columns. For ragged columns it returns (nil, false); use Row or
// AllTimestamps for per-row indexes.
func (a Array) TimeIndex() ([]int64, bool) {
	if a.layout == format.LayoutRagged {
		return nil, false
	}

	return slices.Clone(a.index), true
}

// Take returns a new Array containing the given rows in the given order.
// Positions may repeat. Regularity of the result is recomputed, so selecting
// equal-shaped rows out of a ragged column yields a regular Array.
//
// Returns errs.ErrIndexOutOfRange when any position is outside [0, Rows).
func (a Array) Take(positions []int) (Array, error) {
	views := make([]Row, len(positions))
	for k, i := range positions {
		if i < 0 || i >= a.rows {
			return Array{}, fmt.Errorf("%w: row %d, array has %d rows", errs.ErrIndexOutOfRange, i, a.rows)
		}
		start, end := a.rowBounds(i)
		views[k] = Row{Timestamps: a.rowIndex(i), Values: a.values[start:end]}
	}

	// fromRows copies the views into freshly owned buffers.
	return fromRows(views, config{allowEmpty: true})
}

// Clone returns a deep copy of the Array with freshly owned buffers.
func (a Array) Clone() Array {
	clone := a
	clone.values = slices.Clone(a.values)
	clone.index = slices.Clone(a.index)
	clone.timestamps = slices.Clone(a.timestamps)
	clone.offsets = slices.Clone(a.offsets)

	return clone
}

// Data returns the raw value buffer: the row-major matrix for regular
// columns or the concatenated buffer for ragged ones.
//
// The returned slice is a zero-copy view; the caller must not modify it.
func (a Array) Data() []float64 {
	return a.values
}

// TimestampData returns the raw timestamp buffer: the shared time index for
// regular columns or the concatenated per-row buffer for ragged ones.
//
// The returned slice is a zero-copy view; the caller must not modify it.
func (a Array) TimestampData() []int64 {
	if a.layout == format.LayoutRagged {
		return a.timestamps
	}

	return a.index
}

// Offsets returns the per-row offset bookkeeping for ragged columns, or nil
// for regular ones.
//
// The returned slice is a zero-copy view; the caller must not modify it.
func (a Array) Offsets() []int {
	return a.offsets
}
