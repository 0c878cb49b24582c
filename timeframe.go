// Package timeframe provides a columnar container for panel time-series
// data: many independent series (rows), each holding a full time series in a
// single logical cell, alongside static per-row metadata such as class
// labels.
//
// Conventional tabular containers store each time-series cell as an opaque
// nested object, so shape queries, dtype checks, and re-tabularization all
// become per-row loops. Timeframe compacts every time-series column into one
// or two contiguous buffers with per-row offset bookkeeping, exposed through
// a typed column that knows it holds time series: shape and dtype queries
// read stored metadata, row selection and time-axis slicing work directly on
// the buffers, and per-row objects are materialized only on request.
//
// # Core Packages
//
//   - series: the columnar backing store for one time-series column
//     (series.Array), with regular and ragged layouts
//   - frame: the row-aligned table mixing plain scalar columns with
//     time-series columns (frame.Frame)
//   - snapshot: host-facing export/import of the backing buffers with
//     optional compression
//
// # Basic Usage
//
// Compacting a legacy nested frame and working with the result:
//
//	legacy := timeframe.LegacyFrame{
//		Columns: []timeframe.LegacyColumn{
//			{Name: "dim_0", Cells: []any{
//				series.Row{Timestamps: ts, Values: v0},
//				series.Row{Timestamps: ts, Values: v1},
//				series.Row{Timestamps: ts, Values: v2},
//			}},
//			{Name: "class_val", Cells: []any{int64(2), int64(2), int64(1)}},
//		},
//	}
//
//	f, err := timeframe.FromLegacy(legacy)
//	if err != nil {
//		return err
//	}
//
//	f.DTypes() // map["dim_0":timeseries "class_val":int64]
//
//	window, err := f.SliceTime("dim_0", series.SelectRange(5, 10))
//	wide, err := f.Tabularise("dim_0") // dim_0_0 .. dim_0_{L-1}
//
// This package re-exports the most common entry points; use the frame and
// series packages directly for the full API.
package timeframe

import (
	"github.com/arloliu/timeframe/frame"
	"github.com/arloliu/timeframe/series"
)

// Frame is the row-aligned tabular container. See the frame package.
type Frame = frame.Frame

// LegacyFrame is the nested input representation consumed by FromLegacy.
type LegacyFrame = frame.LegacyFrame

// LegacyColumn is one column of the nested input representation.
type LegacyColumn = frame.LegacyColumn

// New creates a Frame from ordered columns. See frame.New.
func New(columns []frame.Column, opts ...frame.FrameOption) (*Frame, error) {
	return frame.New(columns, opts...)
}

// FromLegacy compacts a nested legacy frame into a columnar Frame.
// See frame.FromLegacy.
func FromLegacy(src LegacyFrame, opts ...frame.LegacyOption) (*Frame, error) {
	return frame.FromLegacy(src, opts...)
}

// NewSeries compacts per-row (timestamp, value) sequences into a
// series.Array. See series.FromRows.
func NewSeries(rows []series.Row, opts ...series.Option) (series.Array, error) {
	return series.FromRows(rows, opts...)
}
