package frame

import (
	"fmt"
	"slices"

	"github.com/arloliu/timeframe/errs"
	"github.com/arloliu/timeframe/internal/options"
	"github.com/arloliu/timeframe/series"
)

// LegacyFrame is the nested per-cell-object representation this package
// replaces: every time-series cell is its own (timestamp, value) pair
// sequence, and scalar cells are boxed. FromLegacy compacts it once; after
// that all reads go through the columnar storage.
type LegacyFrame struct {
	// Labels are the source row labels. Nil means the dense 0..N-1 range.
	Labels []int
	// Columns are the source columns in order.
	Columns []LegacyColumn
}

// LegacyColumn is one column of the nested representation. Cells must be
// uniform: every cell a series.Row, or every cell one scalar kind
// (float64, int64, int, or string).
type LegacyColumn struct {
	Name  string
	Cells []any
}

// legacyConfig carries ingestion options for FromLegacy.
type legacyConfig struct {
	aliasLabels bool
	seriesOpts  []series.Option
}

// LegacyOption represents a functional option for FromLegacy.
type LegacyOption = options.Option[*legacyConfig]

// WithLabelAliasing permits FromLegacy to alias the source Labels slice
// instead of copying it. Cell payloads are always compacted into fresh
// columnar buffers regardless of this option, so the source frame is never
// modified either way; the option only skips the defensive label copy.
func WithLabelAliasing() LegacyOption {
	return options.NoError(func(c *legacyConfig) {
		c.aliasLabels = true
	})
}

// WithSeriesOptions forwards construction options, such as
// series.WithEmptyRows, to the per-column compaction.
func WithSeriesOptions(opts ...series.Option) LegacyOption {
	return options.NoError(func(c *legacyConfig) {
		c.seriesOpts = append(c.seriesOpts, opts...)
	})
}

// FromLegacy compacts a nested legacy frame into a columnar Frame.
//
// Every column whose cells are all series.Row values becomes a
// SeriesColumn backed by one series.Array; uniform scalar columns become
// PlainColumns; mixed cell types fail with errs.ErrMixedColumnTypes. The
// O(N·L) regularity scan happens once here, never on later reads.
//
// Row labels may be any unique integers; non-sequential and non-zero-based
// labels are resolved through the frame's label index. Duplicate labels
// fail with errs.ErrUnsupportedRowIndex.
func FromLegacy(src LegacyFrame, opts ...LegacyOption) (*Frame, error) {
	var cfg legacyConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	columns := make([]Column, 0, len(src.Columns))
	for _, lc := range src.Columns {
		col, err := compactColumn(lc, cfg.seriesOpts)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	var frameOpts []FrameOption
	if src.Labels != nil {
		labels := src.Labels
		if !cfg.aliasLabels {
			labels = slices.Clone(labels)
		}
		frameOpts = append(frameOpts, WithLabels(labels))
	}

	return New(columns, frameOpts...)
}

// compactColumn converts one legacy column into its columnar counterpart.
func compactColumn(lc LegacyColumn, seriesOpts []series.Option) (Column, error) {
	if len(lc.Cells) == 0 {
		return NewFloat64Column(lc.Name, nil), nil
	}

	switch lc.Cells[0].(type) {
	case series.Row:
		rows := make([]series.Row, len(lc.Cells))
		for i, cell := range lc.Cells {
			row, ok := cell.(series.Row)
			if !ok {
				return nil, cellTypeError(lc.Name, i, "series cell", cell)
			}
			rows[i] = row
		}
		arr, err := series.FromRows(rows, seriesOpts...)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", lc.Name, err)
		}

		return NewSeriesColumn(lc.Name, arr), nil

	case float64:
		values := make([]float64, len(lc.Cells))
		for i, cell := range lc.Cells {
			v, ok := cell.(float64)
			if !ok {
				return nil, cellTypeError(lc.Name, i, "float64", cell)
			}
			values[i] = v
		}

		return NewFloat64Column(lc.Name, values), nil

	case int, int64:
		values := make([]int64, len(lc.Cells))
		for i, cell := range lc.Cells {
			switch v := cell.(type) {
			case int:
				values[i] = int64(v)
			case int64:
				values[i] = v
			default:
				return nil, cellTypeError(lc.Name, i, "integer", cell)
			}
		}

		return NewInt64Column(lc.Name, values), nil

	case string:
		values := make([]string, len(lc.Cells))
		for i, cell := range lc.Cells {
			v, ok := cell.(string)
			if !ok {
				return nil, cellTypeError(lc.Name, i, "string", cell)
			}
			values[i] = v
		}

		return NewStringColumn(lc.Name, values), nil

	default:
		return nil, fmt.Errorf("%w: column %q cell 0 has unsupported type %T",
			errs.ErrMixedColumnTypes, lc.Name, lc.Cells[0])
	}
}

func cellTypeError(column string, row int, want string, got any) error {
	return fmt.Errorf("%w: column %q cell %d is %T, want %s",
		errs.ErrMixedColumnTypes, column, row, got, want)
}
