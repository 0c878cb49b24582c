package format

type (
	DType           uint8
	Layout          uint8
	CompressionType uint8
)

const (
	DTypeInvalid    DType = 0x0 // DTypeInvalid represents an unknown or unset dtype.
	DTypeFloat64    DType = 0x1 // DTypeFloat64 represents 64-bit float scalars.
	DTypeInt64      DType = 0x2 // DTypeInt64 represents 64-bit integer scalars.
	DTypeString     DType = 0x3 // DTypeString represents string scalars.
	DTypeTimeSeries DType = 0x4 // DTypeTimeSeries represents a column holding whole time series.

	LayoutRegular Layout = 0x1 // LayoutRegular represents a dense N×L matrix with one shared time index.
	LayoutRagged  Layout = 0x2 // LayoutRagged represents concatenated buffers with per-row offsets.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (d DType) String() string {
	switch d {
	case DTypeFloat64:
		return "float64"
	case DTypeInt64:
		return "int64"
	case DTypeString:
		return "string"
	case DTypeTimeSeries:
		return "timeseries"
	default:
		return "invalid"
	}
}

// IsScalar returns true for per-row scalar dtypes.
func (d DType) IsScalar() bool {
	switch d {
	case DTypeFloat64, DTypeInt64, DTypeString:
		return true
	default:
		return false
	}
}

func (l Layout) String() string {
	switch l {
	case LayoutRegular:
		return "Regular"
	case LayoutRagged:
		return "Ragged"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
