package series

import (
	"fmt"
	"slices"

	"github.com/arloliu/timeframe/errs"
	"github.com/arloliu/timeframe/format"
	"github.com/arloliu/timeframe/internal/pool"
)

// TimeSelector selects positions within a row by its recorded time index.
//
// The two implementations are SelectRange (a contiguous half-open window of
// timestamp values) and SelectAt (an explicit set of timestamp values). The
// interface is closed: the match method is unexported so SliceTime can rely
// on the complexity guarantees of the known selector kinds.
type TimeSelector interface {
	// match appends the matching positions of index to dst, in ascending
	// position order. A sorted index enables binary search.
	match(index []int64, sorted bool, dst []int) []int
}

// timeRange selects timestamps in the half-open window [start, end).
type timeRange struct {
	start int64
	end   int64
}

// SelectRange returns a selector matching every point whose recorded
// timestamp falls in the half-open window [start, end).
func SelectRange(start, end int64) TimeSelector {
	return timeRange{start: start, end: end}
}

func (r timeRange) match(index []int64, sorted bool, dst []int) []int {
	if r.start >= r.end {
		return dst
	}

	if sorted {
		lo, _ := slices.BinarySearch(index, r.start)
		hi, _ := slices.BinarySearch(index, r.end)
		for j := lo; j < hi; j++ {
			dst = append(dst, j)
		}

		return dst
	}

	for j, ts := range index {
		if ts >= r.start && ts < r.end {
			dst = append(dst, j)
		}
	}

	return dst
}

// timePoints selects timestamps that are members of an explicit set.
type timePoints struct {
	set map[int64]struct{}
}

// SelectAt returns a selector matching every point whose recorded timestamp
// equals one of the given values. Duplicate values are ignored; matched
// positions keep the row's own chronological order.
func SelectAt(timestamps ...int64) TimeSelector {
	set := make(map[int64]struct{}, len(timestamps))
	for _, ts := range timestamps {
		set[ts] = struct{}{}
	}

	return timePoints{set: set}
}

func (p timePoints) match(index []int64, sorted bool, dst []int) []int {
	if len(p.set) == 0 {
		return dst
	}

	// Membership scan is O(L) regardless of sortedness; for the typical
	// small selector this beats per-point binary search plus a sort of the
	// matched positions.
	for j, ts := range index {
		if _, ok := p.set[ts]; ok {
			dst = append(dst, j)
		}
	}

	return dst
}

// SliceTime returns a new Array containing, for every row, only the points
// whose recorded timestamp matches the selector.
//
// For regular columns the shared index is matched once and the dense matrix
// is column-gathered, costing O(N·k) for k matched positions. For ragged
// columns every row is matched independently: binary search per row when the
// indexes are sorted, linear scan otherwise. Regularity of the result is
// recomputed, so a ragged input whose rows match equally collapses to a
// regular result.
//
// The result never shares mutable backing storage with the receiver.
//
// Returns errs.ErrEmptySelection when the selector matches zero positions in
// every row.
func (a Array) SliceTime(sel TimeSelector) (Array, error) {
	if a.rows == 0 {
		return Array{}, fmt.Errorf("%w: array has no rows", errs.ErrEmptySelection)
	}

	if a.layout != format.LayoutRagged {
		return a.sliceTimeRegular(sel)
	}

	return a.sliceTimeRagged(sel)
}

// sliceTimeRegular gathers matched columns of the dense matrix. The shared
// index guarantees every row matches the same positions, so the result stays
// regular.
func (a Array) sliceTimeRegular(sel TimeSelector) (Array, error) {
	scratch, cleanup := pool.GetIntSlice(a.steps)
	defer cleanup()

	matched := sel.match(a.index, a.sortedIndex, scratch[:0])
	if len(matched) == 0 {
		return Array{}, fmt.Errorf("%w: selector matched none of %d time positions",
			errs.ErrEmptySelection, a.steps)
	}

	k := len(matched)
	index := make([]int64, k)
	for c, j := range matched {
		index[c] = a.index[j]
	}

	values := make([]float64, 0, a.rows*k)
	for i := 0; i < a.rows; i++ {
		base := i * a.steps
		for _, j := range matched {
			values = append(values, a.values[base+j])
		}
	}

	return Array{
		layout:      format.LayoutRegular,
		rows:        a.rows,
		steps:       k,
		values:      values,
		index:       index,
		sortedIndex: slices.IsSorted(index),
	}, nil
}

// sliceTimeRagged matches every row independently and rebuilds the ragged
// buffers, collapsing to the regular layout when the matched rows turn out
// equal. Rows with no match become empty rows of the result.
func (a Array) sliceTimeRagged(sel TimeSelector) (Array, error) {
	values := make([]float64, 0, len(a.values))
	timestamps := make([]int64, 0, len(a.timestamps))
	offsets := make([]int, 1, a.rows+1)

	maxLen := 0
	for i := 0; i < a.rows; i++ {
		if l := a.offsets[i+1] - a.offsets[i]; l > maxLen {
			maxLen = l
		}
	}
	scratch, cleanup := pool.GetIntSlice(maxLen)
	defer cleanup()

	for i := 0; i < a.rows; i++ {
		start := a.offsets[i]
		index := a.timestamps[start:a.offsets[i+1]]

		matched := sel.match(index, a.sortedIndex, scratch[:0])
		for _, j := range matched {
			values = append(values, a.values[start+j])
			timestamps = append(timestamps, index[j])
		}
		offsets = append(offsets, len(values))
	}

	if len(values) == 0 {
		return Array{}, fmt.Errorf("%w: selector matched no time positions in any of %d rows",
			errs.ErrEmptySelection, a.rows)
	}

	// The freshly built buffers are owned here, so aliasing them is safe.
	return FromRagged(values, timestamps, offsets, WithZeroCopy(), WithEmptyRows())
}
