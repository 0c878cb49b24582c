package compress

// ZstdCompressor provides Zstandard compression for snapshot payloads.
//
// Zstd trades compression speed for ratio, which suits snapshots meant for
// cold storage or transfer of large columns. Two implementations back this
// type: the pure-Go klauspost/compress/zstd path used by default, and a
// cgo path via valyala/gozstd selected with the cgozstd build tag for
// deployments that want the reference implementation's throughput.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
