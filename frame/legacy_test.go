package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/timeframe/errs"
	"github.com/arloliu/timeframe/format"
	"github.com/arloliu/timeframe/series"
)

func makeLegacy() LegacyFrame {
	ts := []int64{0, 1, 2}

	return LegacyFrame{
		Columns: []LegacyColumn{
			{Name: "signal", Cells: []any{
				series.Row{Timestamps: ts, Values: []float64{1, 2, 3}},
				series.Row{Timestamps: ts, Values: []float64{4, 5, 6}},
			}},
			{Name: "label", Cells: []any{int64(2), int64(1)}},
			{Name: "site", Cells: []any{"a", "b"}},
			{Name: "weight", Cells: []any{0.5, 1.5}},
		},
	}
}

// ==============================================================================
// FromLegacy Tests
// ==============================================================================

func TestFromLegacy(t *testing.T) {
	f, err := FromLegacy(makeLegacy())
	require.NoError(t, err)

	require.Equal(t, 2, f.Len())
	require.Equal(t, []string{"signal", "label", "site", "weight"}, f.ColumnNames())
	require.Equal(t, map[string]format.DType{
		"signal": format.DTypeTimeSeries,
		"label":  format.DTypeInt64,
		"site":   format.DTypeString,
		"weight": format.DTypeFloat64,
	}, f.DTypes())

	sc, err := f.SeriesColumn("signal")
	require.NoError(t, err)
	require.True(t, sc.Array().IsRegular())

	row, err := sc.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, row.Values)
}

func TestFromLegacy_CopySemantics(t *testing.T) {
	legacy := makeLegacy()
	cell := legacy.Columns[0].Cells[0].(series.Row)

	f, err := FromLegacy(legacy)
	require.NoError(t, err)

	// Mutate the compacted frame through its raw buffer view; the legacy
	// source must be left untouched.
	sc, err := f.SeriesColumn("signal")
	require.NoError(t, err)
	sc.Data()[0] = -99

	require.Equal(t, 1.0, cell.Values[0], "legacy source must not alias the compacted buffers")
}

func TestFromLegacy_Labels(t *testing.T) {
	t.Run("NonSequential", func(t *testing.T) {
		legacy := makeLegacy()
		legacy.Labels = []int{5, 17}

		f, err := FromLegacy(legacy)
		require.NoError(t, err, "non-sequential labels are resolved through the label index")
		require.Equal(t, []int{5, 17}, f.Labels())

		sub, err := f.Select(17)
		require.NoError(t, err)
		require.Equal(t, 1, sub.Len())
	})

	t.Run("Duplicate", func(t *testing.T) {
		legacy := makeLegacy()
		legacy.Labels = []int{3, 3}

		_, err := FromLegacy(legacy)
		require.ErrorIs(t, err, errs.ErrUnsupportedRowIndex)
	})

	t.Run("Aliasing", func(t *testing.T) {
		legacy := makeLegacy()
		legacy.Labels = []int{0, 1}

		_, err := FromLegacy(legacy, WithLabelAliasing())
		require.NoError(t, err)
	})
}

func TestFromLegacy_Errors(t *testing.T) {
	t.Run("MixedCells", func(t *testing.T) {
		legacy := LegacyFrame{Columns: []LegacyColumn{
			{Name: "bad", Cells: []any{1.5, "oops"}},
		}}
		_, err := FromLegacy(legacy)
		require.ErrorIs(t, err, errs.ErrMixedColumnTypes)
		require.ErrorContains(t, err, "bad", "error should name the offending column")
	})

	t.Run("MixedSeriesAndScalar", func(t *testing.T) {
		legacy := LegacyFrame{Columns: []LegacyColumn{
			{Name: "bad", Cells: []any{
				series.Row{Timestamps: []int64{0}, Values: []float64{1}},
				2.0,
			}},
		}}
		_, err := FromLegacy(legacy)
		require.ErrorIs(t, err, errs.ErrMixedColumnTypes)
	})

	t.Run("UnsupportedCellType", func(t *testing.T) {
		legacy := LegacyFrame{Columns: []LegacyColumn{
			{Name: "bad", Cells: []any{[]byte("nope")}},
		}}
		_, err := FromLegacy(legacy)
		require.ErrorIs(t, err, errs.ErrMixedColumnTypes)
	})

	t.Run("MalformedSeriesCell", func(t *testing.T) {
		legacy := LegacyFrame{Columns: []LegacyColumn{
			{Name: "sig", Cells: []any{
				series.Row{Timestamps: []int64{0, 1}, Values: []float64{1}},
			}},
		}}
		_, err := FromLegacy(legacy)
		require.ErrorIs(t, err, errs.ErrInvalidShape)
		require.ErrorContains(t, err, "sig")
	})
}

func TestFromLegacy_RaggedColumn(t *testing.T) {
	legacy := LegacyFrame{Columns: []LegacyColumn{
		{Name: "sig", Cells: []any{
			series.Row{Timestamps: []int64{0, 1, 2}, Values: []float64{1, 2, 3}},
			series.Row{Timestamps: []int64{0, 1}, Values: []float64{4, 5}},
		}},
	}}

	f, err := FromLegacy(legacy)
	require.NoError(t, err)

	sc, err := f.SeriesColumn("sig")
	require.NoError(t, err)
	require.False(t, sc.Array().IsRegular())
	require.Equal(t, []int{3, 2}, sc.Array().RowLens())
}

func TestFromLegacy_IntCells(t *testing.T) {
	legacy := LegacyFrame{Columns: []LegacyColumn{
		{Name: "n", Cells: []any{1, 2, 3}},
	}}

	f, err := FromLegacy(legacy)
	require.NoError(t, err)

	col, err := f.Column("n")
	require.NoError(t, err)
	pc, _ := col.AsPlain()
	require.Equal(t, []int64{1, 2, 3}, pc.Int64s(), "plain int cells widen to int64")
}
