package frame

import (
	"fmt"
	"strings"

	"github.com/arloliu/timeframe/format"
)

// ColumnInfo is the per-column summary reported by Info. It is assembled
// from stored metadata only; no column payload is scanned.
type ColumnInfo struct {
	// Name is the column name.
	Name string
	// DType is the stored logical dtype tag.
	DType format.DType
	// Rows is the row count.
	Rows int
	// Steps is the shared series length for regular series columns,
	// 0 otherwise.
	Steps int
	// Regular reports whether a series column is regular. Always true for
	// plain columns.
	Regular bool
}

// Info returns a per-column summary in column order.
func (f *Frame) Info() []ColumnInfo {
	infos := make([]ColumnInfo, 0, len(f.order))
	for _, name := range f.order {
		col := f.columns[name]
		info := ColumnInfo{
			Name:    name,
			DType:   col.DType(),
			Rows:    col.Len(),
			Regular: true,
		}
		if sc, ok := col.AsSeries(); ok {
			steps, regular := sc.Array().Steps()
			info.Steps = steps
			info.Regular = regular
		}
		infos = append(infos, info)
	}

	return infos
}

// String returns a compact one-line-per-column description of the frame.
func (f *Frame) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Frame(%d rows, %d columns)\n", f.Len(), f.Width())
	for _, info := range f.Info() {
		if info.DType == format.DTypeTimeSeries {
			shape := "ragged"
			if info.Regular {
				shape = fmt.Sprintf("%d steps", info.Steps)
			}
			fmt.Fprintf(&sb, "  %s: %s (%s)\n", info.Name, info.DType, shape)
			continue
		}
		fmt.Fprintf(&sb, "  %s: %s\n", info.Name, info.DType)
	}

	return sb.String()
}

// Tabularise expands the named series column into one float64 column per
// timestep, named name_0 .. name_{L-1}, and returns a new Frame with the
// series column replaced by the expanded columns. All other columns pass
// through unchanged, preserving row alignment.
//
// Only regular series columns have a rectangular expansion; ragged columns
// propagate errs.ErrIrregularShape rather than pad or truncate.
func (f *Frame) Tabularise(name string) (*Frame, error) {
	sc, err := f.SeriesColumn(name)
	if err != nil {
		return nil, err
	}

	arr := sc.Array()
	steps, regular := arr.Steps()
	if !regular {
		// Surface the same error Matrix would raise, with column context.
		_, err := arr.Matrix()

		return nil, fmt.Errorf("column %q: %w", name, err)
	}

	columns := make([]Column, 0, f.Width()+steps-1)
	for _, colName := range f.order {
		if colName != name {
			columns = append(columns, f.columns[colName])
			continue
		}
		for j := 0; j < steps; j++ {
			// Column j is regular and bounds-checked by construction.
			values, _ := arr.Column(j)
			columns = append(columns, NewFloat64Column(fmt.Sprintf("%s_%d", name, j), values))
		}
	}

	return New(columns, WithLabels(f.labels))
}
