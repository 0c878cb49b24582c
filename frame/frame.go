package frame

import (
	"fmt"
	"slices"

	"github.com/arloliu/timeframe/errs"
	"github.com/arloliu/timeframe/format"
	"github.com/arloliu/timeframe/internal/options"
	"github.com/arloliu/timeframe/series"
)

// Frame is a row-aligned table of heterogeneous columns: plain scalar
// columns and time-series columns side by side. Row i of every column refers
// to the same observational unit.
//
// Rows are addressed two ways: by dense position in [0, Len) and by integer
// label through an explicit label index. Labels are arbitrary unique
// integers; they do not need to be sequential or zero-based.
type Frame struct {
	columns map[string]Column
	order   []string

	labels  []int
	byLabel map[int]int // label → position
}

// frameConfig carries construction options for New.
type frameConfig struct {
	labels []int
}

// FrameOption represents a functional option for configuring a new Frame.
type FrameOption = options.Option[*frameConfig]

// WithLabels assigns explicit integer row labels instead of the default
// 0..N-1 range. Labels must be unique and match the row count.
func WithLabels(labels []int) FrameOption {
	return options.NoError(func(c *frameConfig) {
		c.labels = labels
	})
}

// New creates a Frame from ordered columns.
//
// All columns must share one row count (errs.ErrLengthMismatch otherwise)
// and names must be unique. Row labels default to the dense range 0..N-1;
// WithLabels overrides them. Duplicate labels fail with
// errs.ErrUnsupportedRowIndex.
func New(columns []Column, opts ...FrameOption) (*Frame, error) {
	var cfg frameConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	f := &Frame{
		columns: make(map[string]Column, len(columns)),
		order:   make([]string, 0, len(columns)),
	}

	rows := -1
	for _, col := range columns {
		if _, exists := f.columns[col.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, col.Name())
		}
		if rows == -1 {
			rows = col.Len()
		} else if col.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				errs.ErrLengthMismatch, col.Name(), col.Len(), rows)
		}
		f.columns[col.Name()] = col
		f.order = append(f.order, col.Name())
	}
	if rows == -1 {
		rows = 0
	}

	labels := cfg.labels
	if labels == nil {
		labels = make([]int, rows)
		for i := range labels {
			labels[i] = i
		}
	} else {
		if len(labels) != rows {
			return nil, fmt.Errorf("%w: %d labels for %d rows", errs.ErrLengthMismatch, len(labels), rows)
		}
		labels = slices.Clone(labels)
	}

	index, err := buildLabelIndex(labels)
	if err != nil {
		return nil, err
	}
	f.labels = labels
	f.byLabel = index

	return f, nil
}

// buildLabelIndex maps labels to dense positions, rejecting duplicates.
func buildLabelIndex(labels []int) (map[int]int, error) {
	index := make(map[int]int, len(labels))
	for pos, label := range labels {
		if prev, dup := index[label]; dup {
			return nil, fmt.Errorf("%w: duplicate row label %d at positions %d and %d",
				errs.ErrUnsupportedRowIndex, label, prev, pos)
		}
		index[label] = pos
	}

	return index, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.labels)
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.order)
}

// ColumnNames returns the column names in order.
// The returned slice is newly allocated.
func (f *Frame) ColumnNames() []string {
	return slices.Clone(f.order)
}

// Column returns the stored column unchanged, with no conversion.
//
// Returns errs.ErrColumnNotFound for unknown names.
func (f *Frame) Column(name string) (Column, error) {
	col, ok := f.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
	}

	return col, nil
}

// SeriesColumn returns the named column as a SeriesColumn.
//
// Returns errs.ErrColumnNotFound for unknown names and errs.ErrNotTimeSeries
// for plain columns.
func (f *Frame) SeriesColumn(name string) (SeriesColumn, error) {
	col, err := f.Column(name)
	if err != nil {
		return SeriesColumn{}, err
	}
	sc, ok := col.AsSeries()
	if !ok {
		return SeriesColumn{}, fmt.Errorf("%w: column %q has dtype %s",
			errs.ErrNotTimeSeries, name, col.DType())
	}

	return sc, nil
}

// DType returns the logical dtype tag of the named column. The tag is
// stored, so the lookup is O(1) and never scans values.
//
// Returns errs.ErrColumnNotFound for unknown names.
func (f *Frame) DType(name string) (format.DType, error) {
	col, ok := f.columns[name]
	if !ok {
		return format.DTypeInvalid, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
	}

	return col.DType(), nil
}

// DTypes returns the stable column-name → dtype-tag mapping consumed by
// schema-aware components. The map is newly allocated on each call.
func (f *Frame) DTypes() map[string]format.DType {
	dtypes := make(map[string]format.DType, len(f.order))
	for name, col := range f.columns {
		dtypes[name] = col.DType()
	}

	return dtypes
}

// Labels returns a copy of the row labels in position order.
func (f *Frame) Labels() []int {
	return slices.Clone(f.labels)
}

// Position returns the dense position of the given row label.
func (f *Frame) Position(label int) (int, bool) {
	pos, ok := f.byLabel[label]

	return pos, ok
}

// Select returns a new Frame containing the rows with the given labels, in
// the given order. Row alignment across all columns is preserved; labels
// carry over to the result.
//
// Returns errs.ErrUnknownRowLabel for labels absent from the frame.
func (f *Frame) Select(labels ...int) (*Frame, error) {
	positions := make([]int, len(labels))
	for k, label := range labels {
		pos, ok := f.byLabel[label]
		if !ok {
			return nil, fmt.Errorf("%w: %d", errs.ErrUnknownRowLabel, label)
		}
		positions[k] = pos
	}

	return f.takeRows(positions)
}

// SelectAt returns a new Frame containing the rows at the given dense
// positions, in the given order.
//
// Returns errs.ErrIndexOutOfRange for positions outside [0, Len).
func (f *Frame) SelectAt(positions ...int) (*Frame, error) {
	for _, pos := range positions {
		if pos < 0 || pos >= f.Len() {
			return nil, fmt.Errorf("%w: row %d, frame has %d rows", errs.ErrIndexOutOfRange, pos, f.Len())
		}
	}

	return f.takeRows(positions)
}

// Head returns a new Frame with the first n rows. When n exceeds the row
// count the whole frame is copied. Cost is proportional to the rows
// requested, not to the total row count.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > f.Len() {
		n = f.Len()
	}
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}

	// Positions are in range, so takeRows cannot fail.
	out, _ := f.takeRows(positions)

	return out
}

// takeRows builds a new Frame from bounds-checked positions, duplicating
// labels into the result. Duplicate positions would produce duplicate labels
// and are rejected by the label index.
func (f *Frame) takeRows(positions []int) (*Frame, error) {
	labels := make([]int, len(positions))
	for k, pos := range positions {
		labels[k] = f.labels[pos]
	}
	index, err := buildLabelIndex(labels)
	if err != nil {
		return nil, err
	}

	out := &Frame{
		columns: make(map[string]Column, len(f.order)),
		order:   slices.Clone(f.order),
		labels:  labels,
		byLabel: index,
	}
	for name, col := range f.columns {
		out.columns[name] = col.take(positions)
	}

	return out, nil
}

// SliceTime applies a time-axis selector to the named series column and
// returns a new Frame with that column replaced. All other columns are
// shared unchanged, preserving row alignment.
//
// Returns errs.ErrColumnNotFound, errs.ErrNotTimeSeries, or the selector
// errors of series.Array.SliceTime.
func (f *Frame) SliceTime(name string, sel series.TimeSelector) (*Frame, error) {
	sc, err := f.SeriesColumn(name)
	if err != nil {
		return nil, err
	}
	sliced, err := sc.SliceTime(sel)
	if err != nil {
		return nil, err
	}

	return f.replaceColumn(name, sliced), nil
}

// replaceColumn returns a shallow copy of the frame with one column swapped.
func (f *Frame) replaceColumn(name string, col Column) *Frame {
	out := &Frame{
		columns: make(map[string]Column, len(f.order)),
		order:   slices.Clone(f.order),
		labels:  slices.Clone(f.labels),
		byLabel: make(map[int]int, len(f.byLabel)),
	}
	for n, c := range f.columns {
		out.columns[n] = c
	}
	for label, pos := range f.byLabel {
		out.byLabel[label] = pos
	}
	out.columns[name] = col

	return out
}

// Clone returns a deep copy of the Frame. Column backing buffers are
// duplicated, so mutating view accessors of the clone can never reach the
// original.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		columns: make(map[string]Column, len(f.order)),
		order:   slices.Clone(f.order),
		labels:  slices.Clone(f.labels),
		byLabel: make(map[int]int, len(f.byLabel)),
	}
	for label, pos := range f.byLabel {
		out.byLabel[label] = pos
	}
	for name, col := range f.columns {
		if sc, ok := col.AsSeries(); ok {
			out.columns[name] = SeriesColumn{name: sc.name, arr: sc.arr.Clone()}
			continue
		}
		pc, _ := col.AsPlain()
		out.columns[name] = PlainColumn{
			name:  pc.name,
			dtype: pc.dtype,
			f64:   slices.Clone(pc.f64),
			i64:   slices.Clone(pc.i64),
			str:   slices.Clone(pc.str),
		}
	}

	return out
}
