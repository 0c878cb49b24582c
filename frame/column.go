package frame

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/timeframe/errs"
	"github.com/arloliu/timeframe/format"
	"github.com/arloliu/timeframe/series"
)

// Column represents one named column of a Frame.
//
// The set of implementations is closed: PlainColumn holds one scalar value
// per row, SeriesColumn holds one whole time series per row. The interface
// is a capability contract; callers dispatch with IsSeries/AsSeries
// instead of inspecting concrete types.
type Column interface {
	// Name returns the column name.
	Name() string

	// DType returns the stored logical dtype tag. The tag is assigned at
	// construction and reported in O(1); values are never re-scanned.
	DType() format.DType

	// Len returns the number of rows.
	Len() int

	// IsSeries returns true if the column holds time series.
	IsSeries() bool

	// IsPlain returns true if the column holds per-row scalars.
	IsPlain() bool

	// AsSeries attempts to cast to SeriesColumn, returns false if plain.
	AsSeries() (SeriesColumn, bool)

	// AsPlain attempts to cast to PlainColumn, returns false if series.
	AsPlain() (PlainColumn, bool)

	// take returns a new column containing the given row positions in
	// order. Positions are trusted; the frame bounds-checks them.
	// Unexported to keep the variant set closed.
	take(positions []int) Column
}

// PlainColumn holds one scalar value per row in a typed backing slice.
// The zero value is an empty float64 column.
type PlainColumn struct {
	name  string
	dtype format.DType

	f64 []float64
	i64 []int64
	str []string
}

var _ Column = PlainColumn{}

// NewFloat64Column creates a plain column of float64 scalars.
// The input slice is copied.
func NewFloat64Column(name string, values []float64) PlainColumn {
	return PlainColumn{name: name, dtype: format.DTypeFloat64, f64: slices.Clone(values)}
}

// NewInt64Column creates a plain column of int64 scalars.
// The input slice is copied.
func NewInt64Column(name string, values []int64) PlainColumn {
	return PlainColumn{name: name, dtype: format.DTypeInt64, i64: slices.Clone(values)}
}

// NewStringColumn creates a plain column of string scalars.
// The input slice is copied.
func NewStringColumn(name string, values []string) PlainColumn {
	return PlainColumn{name: name, dtype: format.DTypeString, str: slices.Clone(values)}
}

// Name returns the column name.
func (c PlainColumn) Name() string {
	return c.name
}

// DType returns the scalar dtype tag stored at construction.
func (c PlainColumn) DType() format.DType {
	if c.dtype == format.DTypeInvalid {
		return format.DTypeFloat64
	}

	return c.dtype
}

// Len returns the number of rows.
func (c PlainColumn) Len() int {
	switch c.dtype {
	case format.DTypeInt64:
		return len(c.i64)
	case format.DTypeString:
		return len(c.str)
	default:
		return len(c.f64)
	}
}

// IsSeries returns false; a plain column holds scalars.
func (c PlainColumn) IsSeries() bool { return false }

// IsPlain returns true.
func (c PlainColumn) IsPlain() bool { return true }

// AsSeries always returns false for a plain column.
func (c PlainColumn) AsSeries() (SeriesColumn, bool) {
	return SeriesColumn{}, false
}

// AsPlain returns the column itself.
func (c PlainColumn) AsPlain() (PlainColumn, bool) {
	return c, true
}

// Float64s returns a copy of the backing slice for float64 columns, or nil
// for other dtypes.
func (c PlainColumn) Float64s() []float64 {
	if c.DType() != format.DTypeFloat64 {
		return nil
	}

	return slices.Clone(c.f64)
}

// Int64s returns a copy of the backing slice for int64 columns, or nil for
// other dtypes.
func (c PlainColumn) Int64s() []int64 {
	if c.dtype != format.DTypeInt64 {
		return nil
	}

	return slices.Clone(c.i64)
}

// Strings returns a copy of the backing slice for string columns, or nil
// for other dtypes.
func (c PlainColumn) Strings() []string {
	if c.dtype != format.DTypeString {
		return nil
	}

	return slices.Clone(c.str)
}

// Value returns the scalar at row i boxed as any.
//
// Returns errs.ErrIndexOutOfRange when i is outside [0, Len).
func (c PlainColumn) Value(i int) (any, error) {
	if i < 0 || i >= c.Len() {
		return nil, fmt.Errorf("%w: row %d, column %q has %d rows", errs.ErrIndexOutOfRange, i, c.name, c.Len())
	}

	switch c.dtype {
	case format.DTypeInt64:
		return c.i64[i], nil
	case format.DTypeString:
		return c.str[i], nil
	default:
		return c.f64[i], nil
	}
}

func (c PlainColumn) take(positions []int) Column {
	out := PlainColumn{name: c.name, dtype: c.dtype}
	switch c.dtype {
	case format.DTypeInt64:
		out.i64 = make([]int64, len(positions))
		for k, i := range positions {
			out.i64[k] = c.i64[i]
		}
	case format.DTypeString:
		out.str = make([]string, len(positions))
		for k, i := range positions {
			out.str[k] = c.str[i]
		}
	default:
		out.f64 = make([]float64, len(positions))
		for k, i := range positions {
			out.f64[k] = c.f64[i]
		}
	}

	return out
}

// SeriesColumn holds one whole time series per row, backed by a
// series.Array. It reports the distinct "timeseries" dtype tag so
// schema-aware consumers can recognize it without value inspection.
type SeriesColumn struct {
	name string
	arr  series.Array
}

var _ Column = SeriesColumn{}

// NewSeriesColumn wraps a series.Array as a named frame column.
// The Array's buffers are shared, which is safe because they are immutable
// by contract.
func NewSeriesColumn(name string, arr series.Array) SeriesColumn {
	return SeriesColumn{name: name, arr: arr}
}

// Name returns the column name.
func (c SeriesColumn) Name() string {
	return c.name
}

// DType returns format.DTypeTimeSeries.
func (c SeriesColumn) DType() format.DType {
	return format.DTypeTimeSeries
}

// Len returns the number of rows.
func (c SeriesColumn) Len() int {
	return c.arr.Rows()
}

// IsSeries returns true.
func (c SeriesColumn) IsSeries() bool { return true }

// IsPlain returns false; a series column holds whole time series.
func (c SeriesColumn) IsPlain() bool { return false }

// AsSeries returns the column itself.
func (c SeriesColumn) AsSeries() (SeriesColumn, bool) {
	return c, true
}

// AsPlain always returns false for a series column.
func (c SeriesColumn) AsPlain() (PlainColumn, bool) {
	return PlainColumn{}, false
}

// Array returns the backing series.Array unchanged.
func (c SeriesColumn) Array() series.Array {
	return c.arr
}

// Data returns the raw backing value buffer of the column.
// The returned slice is a zero-copy view; the caller must not modify it.
func (c SeriesColumn) Data() []float64 {
	return c.arr.Data()
}

// Row returns row i as two newly allocated 1D sequences.
func (c SeriesColumn) Row(i int) (series.Row, error) {
	return c.arr.Row(i)
}

// All returns a lazy iterator over the points of row i.
func (c SeriesColumn) All(i int) iter.Seq2[int, series.DataPoint] {
	return c.arr.All(i)
}

// SliceTime returns a new column keeping, for every row, only the points
// matched by the selector.
func (c SeriesColumn) SliceTime(sel series.TimeSelector) (SeriesColumn, error) {
	sliced, err := c.arr.SliceTime(sel)
	if err != nil {
		return SeriesColumn{}, fmt.Errorf("column %q: %w", c.name, err)
	}

	return SeriesColumn{name: c.name, arr: sliced}, nil
}

func (c SeriesColumn) take(positions []int) Column {
	// Positions were bounds-checked by the frame, so Take cannot fail.
	arr, _ := c.arr.Take(positions)

	return SeriesColumn{name: c.name, arr: arr}
}
