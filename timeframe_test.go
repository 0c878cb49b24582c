package timeframe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/timeframe"
	"github.com/arloliu/timeframe/errs"
	"github.com/arloliu/timeframe/format"
	"github.com/arloliu/timeframe/series"
)

// makePanel builds the canonical example: 3 rows, each a 150-step series of
// floats over the shared integer time index 0..149, plus a class label
// column {2, 2, 1}.
func makePanel(truncateRow1 bool) timeframe.LegacyFrame {
	index := make([]int64, 150)
	for j := range index {
		index[j] = int64(j)
	}

	cells := make([]any, 3)
	for i := range cells {
		values := make([]float64, 150)
		for j := range values {
			values[j] = float64(i)*0.25 + float64(j)
		}
		row := series.Row{Timestamps: index, Values: values}
		if truncateRow1 && i == 1 {
			row = series.Row{Timestamps: index[:100], Values: values[:100]}
		}
		cells[i] = row
	}

	return timeframe.LegacyFrame{
		Columns: []timeframe.LegacyColumn{
			{Name: "dim_0", Cells: cells},
			{Name: "class_val", Cells: []any{int64(2), int64(2), int64(1)}},
		},
	}
}

func TestPanel_RegularScenario(t *testing.T) {
	f, err := timeframe.FromLegacy(makePanel(false))
	require.NoError(t, err)

	dtype, err := f.DType("dim_0")
	require.NoError(t, err)
	require.Equal(t, "timeseries", dtype.String())

	sc, err := f.SeriesColumn("dim_0")
	require.NoError(t, err)
	require.Equal(t, 3, sc.Array().Rows())
	steps, regular := sc.Array().Steps()
	require.True(t, regular)
	require.Equal(t, 150, steps)

	window, err := f.SliceTime("dim_0", series.SelectRange(5, 10))
	require.NoError(t, err)

	wc, err := window.SeriesColumn("dim_0")
	require.NoError(t, err)
	steps, regular = wc.Array().Steps()
	require.True(t, regular)
	require.Equal(t, 5, steps)

	// Window values equal the original columns 5..9.
	matrix, err := wc.Array().Matrix()
	require.NoError(t, err)
	full, err := sc.Array().Matrix()
	require.NoError(t, err)
	for i := range matrix {
		require.Equal(t, full[i][5:10], matrix[i])
	}
}

func TestPanel_TruncatedScenario(t *testing.T) {
	f, err := timeframe.FromLegacy(makePanel(true))
	require.NoError(t, err)

	sc, err := f.SeriesColumn("dim_0")
	require.NoError(t, err)
	require.False(t, sc.Array().IsRegular())
	require.Equal(t, []int{150, 100, 150}, sc.Array().RowLens())

	_, err = sc.Array().Matrix()
	require.ErrorIs(t, err, errs.ErrIrregularShape)

	row, err := sc.Row(1)
	require.NoError(t, err)
	require.Len(t, row.Values, 100, "the truncated row still returns exactly its own points")
	require.Len(t, row.Timestamps, 100)
}

func TestPanel_EmptySelectionScenario(t *testing.T) {
	f, err := timeframe.FromLegacy(makePanel(false))
	require.NoError(t, err)

	_, err = f.SliceTime("dim_0", series.SelectAt(1000))
	require.ErrorIs(t, err, errs.ErrEmptySelection)
}

func TestPanel_TabulariseAndSelect(t *testing.T) {
	f, err := timeframe.FromLegacy(makePanel(false))
	require.NoError(t, err)

	sub, err := f.Select(2, 0)
	require.NoError(t, err)
	require.Equal(t, []int{2, 0}, sub.Labels())

	wide, err := sub.Tabularise("dim_0")
	require.NoError(t, err)
	require.Equal(t, 151, wide.Width(), "150 timestep columns plus the label column")

	col, err := wide.Column("dim_0_0")
	require.NoError(t, err)
	require.Equal(t, format.DTypeFloat64, col.DType())
	pc, _ := col.AsPlain()
	require.Equal(t, []float64{0.5, 0.0}, pc.Float64s())
}

func TestNewSeries(t *testing.T) {
	arr, err := timeframe.NewSeries([]series.Row{
		{Timestamps: []int64{0, 1}, Values: []float64{1, 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, arr.Rows())
}
