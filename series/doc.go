// Package series implements the columnar backing store for one column of
// time series: N independent rows, each holding a full (timestamp, value)
// sequence.
//
// An Array keeps every row of a column in at most two contiguous buffers
// (one for timestamps, one for values) plus lightweight per-row offset
// bookkeeping, instead of one nested object per cell. Shape queries, dtype
// reporting, and row selection become metadata lookups or bulk copies over
// those buffers; per-row objects are materialized only when a caller asks
// for a specific row.
//
// # Layouts
//
// A column is regular when every row has the same length and an identical
// time index. Regular columns store values as a row-major N×L matrix and a
// single shared time index of length L. Ragged columns store values and
// timestamps as concatenated buffers with an offsets array of length N+1,
// where row i occupies [offsets[i], offsets[i+1]).
//
// Regularity is a derived property: every producing operation recomputes it,
// so a ragged Array whose rows turn out equal collapses back to the regular
// layout and a time-axis slice over ragged data reports its true shape.
//
// # Ownership
//
// Backing buffers are immutable by contract. Every transformation (SliceTime,
// Take, Clone, Matrix) returns newly owned buffers; no returned Array shares
// mutable storage with its source. The explicit zero-copy surfaces are the
// WithZeroCopy construction option and the Data/Offsets/TimestampData
// accessors, all documented as read-only.
//
// # Basic Usage
//
//	rows := []series.Row{
//		{Timestamps: []int64{0, 1, 2}, Values: []float64{1.0, 2.0, 3.0}},
//		{Timestamps: []int64{0, 1, 2}, Values: []float64{4.0, 5.0, 6.0}},
//	}
//	arr, err := series.FromRows(rows)
//	if err != nil {
//		return err
//	}
//
//	steps, regular := arr.Steps() // 3, true
//	window, err := arr.SliceTime(series.SelectRange(1, 3))
//	matrix, err := arr.Matrix()   // [][]float64, regular only
package series
