package series

import (
	"fmt"

	"github.com/arloliu/timeframe/errs"
	"github.com/arloliu/timeframe/format"
)

// Matrix exports the column as a dense [N][L] value matrix.
//
// The rows share one freshly allocated backing buffer but never alias the
// Array's own storage, so callers may mutate the result freely.
//
// A dense rectangular export is undefined for ragged data; rather than pad
// or truncate silently, Matrix fails fast with errs.ErrIrregularShape. Use
// RowLens to inspect the per-row lengths, or SliceTime to carve a window
// that is regular.
func (a Array) Matrix() ([][]float64, error) {
	if a.layout == format.LayoutRagged {
		return nil, fmt.Errorf("%w: dense export of ragged column with %d rows, row lengths %v",
			errs.ErrIrregularShape, a.rows, a.RowLens())
	}

	flat := make([]float64, len(a.values))
	copy(flat, a.values)

	matrix := make([][]float64, a.rows)
	for i := range matrix {
		matrix[i] = flat[i*a.steps : (i+1)*a.steps : (i+1)*a.steps]
	}

	return matrix, nil
}

// Column returns the values at timestep j across all rows as a newly
// allocated slice. Only regular columns have a well-defined timestep cut;
// ragged data fails with errs.ErrIrregularShape.
//
// Returns errs.ErrIndexOutOfRange when j is outside [0, L).
func (a Array) Column(j int) ([]float64, error) {
	if a.layout == format.LayoutRagged {
		return nil, fmt.Errorf("%w: timestep cut of ragged column with %d rows",
			errs.ErrIrregularShape, a.rows)
	}
	if j < 0 || j >= a.steps {
		return nil, fmt.Errorf("%w: timestep %d, column has %d steps", errs.ErrIndexOutOfRange, j, a.steps)
	}

	out := make([]float64, a.rows)
	for i := 0; i < a.rows; i++ {
		out[i] = a.values[i*a.steps+j]
	}

	return out, nil
}
