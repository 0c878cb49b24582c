// Package frame provides a row-aligned tabular container mixing plain
// scalar columns with time-series columns backed by series.Array.
//
// Each time-series column stores its whole column of series in contiguous
// buffers and reports the distinct "timeseries" dtype tag, so shape queries,
// dtype reporting, and head/info summaries are metadata lookups instead of
// per-row scans over nested cell objects.
//
// A Frame is usually created by compacting a legacy nested representation
// once with FromLegacy:
//
//	legacy := frame.LegacyFrame{
//		Columns: []frame.LegacyColumn{
//			{Name: "signal", Cells: []any{
//				series.Row{Timestamps: ts, Values: v0},
//				series.Row{Timestamps: ts, Values: v1},
//			}},
//			{Name: "label", Cells: []any{int64(2), int64(1)}},
//		},
//	}
//	f, err := frame.FromLegacy(legacy)
//
// Afterwards all operations use the compacted arrays:
//
//	f.DTypes()                                     // {"signal": timeseries, "label": int64}
//	sub, _ := f.Select(1)                          // row selection by label
//	win, _ := f.SliceTime("signal", series.SelectRange(5, 10))
//	wide, _ := f.Tabularise("signal")              // signal_0 .. signal_{L-1}
//
// Row identity is tracked by an explicit label index, so labels may be any
// unique integers; sequential zero-based labels are merely the default.
package frame
