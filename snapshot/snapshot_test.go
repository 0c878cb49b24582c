package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/timeframe/errs"
	"github.com/arloliu/timeframe/format"
	"github.com/arloliu/timeframe/series"
)

func makeRegularArray(t *testing.T) series.Array {
	t.Helper()

	arr, err := series.FromRows([]series.Row{
		{Timestamps: []int64{0, 1, 2}, Values: []float64{1.5, 2.5, 3.5}},
		{Timestamps: []int64{0, 1, 2}, Values: []float64{4.5, 5.5, 6.5}},
	})
	require.NoError(t, err)

	return arr
}

func makeRaggedArray(t *testing.T) series.Array {
	t.Helper()

	arr, err := series.FromRows([]series.Row{
		{Timestamps: []int64{0, 1, 2, 3}, Values: []float64{1, 2, 3, 4}},
		{Timestamps: []int64{5, 6}, Values: []float64{7, 8}},
	})
	require.NoError(t, err)

	return arr
}

func requireSameArray(t *testing.T, want, got series.Array) {
	t.Helper()

	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.IsRegular(), got.IsRegular())
	require.Equal(t, want.RowLens(), got.RowLens())
	for i := 0; i < want.Rows(); i++ {
		wantRow, err := want.Row(i)
		require.NoError(t, err)
		gotRow, err := got.Row(i)
		require.NoError(t, err)
		require.Equal(t, wantRow, gotRow, "row %d should round-trip", i)
	}
}

// ==============================================================================
// Snapshot Round-Trip Tests
// ==============================================================================

func TestEncodeDecode_RoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, compression := range compressions {
		t.Run(compression.String(), func(t *testing.T) {
			t.Run("Regular", func(t *testing.T) {
				arr := makeRegularArray(t)
				blob, err := Encode(arr, WithCompression(compression))
				require.NoError(t, err)

				decoded, err := Decode(blob)
				require.NoError(t, err)
				requireSameArray(t, arr, decoded)
			})

			t.Run("Ragged", func(t *testing.T) {
				arr := makeRaggedArray(t)
				blob, err := Encode(arr, WithCompression(compression))
				require.NoError(t, err)

				decoded, err := Decode(blob)
				require.NoError(t, err)
				requireSameArray(t, arr, decoded)
			})
		})
	}
}

func TestEncodeDecode_EmptyArray(t *testing.T) {
	var arr series.Array

	blob, err := Encode(arr)
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	require.Zero(t, decoded.Rows())
	require.True(t, decoded.IsRegular())
}

func TestEncode_InvalidCompression(t *testing.T) {
	_, err := Encode(makeRegularArray(t), WithCompression(format.CompressionType(99)))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported compression")
}

// ==============================================================================
// Snapshot Corruption Tests
// ==============================================================================

func TestDecode_Corruption(t *testing.T) {
	blob, err := Encode(makeRegularArray(t))
	require.NoError(t, err)

	t.Run("Truncated", func(t *testing.T) {
		_, err := Decode(blob[:10])
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
	})

	t.Run("BadMagic", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		bad[0] = 'X'
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
	})

	t.Run("BadVersion", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		bad[4] = 99
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
	})

	t.Run("FlippedPayloadByte", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		bad[len(bad)-1] ^= 0xFF
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot, "digest must catch payload corruption")
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		bad = append(bad, 0x00)
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
	})
}
