// Package compress provides the pluggable compression codecs used by the
// snapshot package when exporting columnar backing buffers.
//
// Payloads here are raw little-endian buffer sections (offsets, timestamps,
// values). Timestamp sections in particular compress very well; value
// sections vary with the data. Codecs are selected by
// format.CompressionType, with CompressionNone as the pass-through default.
package compress

import (
	"fmt"

	"github.com/arloliu/timeframe/format"
)

// Compressor compresses one payload section.
//
// Memory management:
//   - The returned slice is newly allocated and owned by the caller
//     (except for the no-op codec, which passes the input through).
//   - The input slice is not modified.
//   - Internal buffers may be reused across calls for efficiency.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses one payload section previously produced by the
// matching Compressor. It validates the data format and returns an error if
// the payload is corrupted or was compressed with a different algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
