// Package snapshot encodes the backing buffers of a series.Array into a
// single self-describing byte blob and decodes them back.
//
// Serialization of the columnar buffers is the host's concern, not the
// container's; this package is the helper a host calls when it wants to
// persist or ship a column. The blob is a fixed little-endian header
// followed by three payload sections (offsets, timestamps, values), each
// compressed with the codec selected at encode time, plus an xxHash64
// digest of the uncompressed payloads for corruption detection.
//
//	blob, err := snapshot.Encode(arr, snapshot.WithCompression(format.CompressionZstd))
//	...
//	restored, err := snapshot.Decode(blob)
//
// Decoding rebuilds the Array through the zero-copy constructors: the
// decoded buffers are owned by the result, so no extra copy is made.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/timeframe/compress"
	"github.com/arloliu/timeframe/errs"
	"github.com/arloliu/timeframe/format"
	"github.com/arloliu/timeframe/internal/options"
	"github.com/arloliu/timeframe/series"
)

const (
	// headerSize is the fixed byte length of the snapshot header.
	headerSize = 36

	snapshotVersion = 1
)

// magic identifies a timeframe snapshot blob ("TFSN").
var magic = [4]byte{'T', 'F', 'S', 'N'}

// config carries encoding options.
type config struct {
	compression format.CompressionType
}

// Option represents a functional option for Encode.
type Option = options.Option[*config]

// WithCompression selects the codec applied to each payload section.
// The default is format.CompressionNone.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(c *config) error {
		if _, err := compress.GetCodec(compression); err != nil {
			return err
		}
		c.compression = compression

		return nil
	})
}

// Encode serializes the Array's backing buffers into a snapshot blob.
//
// Layout: header (magic, version, layout, compression, rows, steps, payload
// lengths, digest) followed by the offsets, timestamps, and values payloads.
// The digest covers the payloads before compression.
func Encode(arr series.Array, opts ...Option) ([]byte, error) {
	cfg := config{compression: format.CompressionNone}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	rawOffsets := encodeOffsets(arr.Offsets())
	rawTimestamps := encodeInt64s(arr.TimestampData())
	rawValues := encodeFloat64s(arr.Data())

	digest := xxhash.New()
	_, _ = digest.Write(rawOffsets)
	_, _ = digest.Write(rawTimestamps)
	_, _ = digest.Write(rawValues)

	offsetsPayload, err := codec.Compress(rawOffsets)
	if err != nil {
		return nil, fmt.Errorf("compress offsets payload: %w", err)
	}
	tsPayload, err := codec.Compress(rawTimestamps)
	if err != nil {
		return nil, fmt.Errorf("compress timestamp payload: %w", err)
	}
	valPayload, err := codec.Compress(rawValues)
	if err != nil {
		return nil, fmt.Errorf("compress value payload: %w", err)
	}

	steps, _ := arr.Steps()

	blob := make([]byte, 0, headerSize+len(offsetsPayload)+len(tsPayload)+len(valPayload))
	blob = append(blob, magic[:]...)
	blob = append(blob, snapshotVersion, byte(arr.Layout()), byte(cfg.compression), 0)
	blob = binary.LittleEndian.AppendUint32(blob, uint32(arr.Rows()))
	blob = binary.LittleEndian.AppendUint32(blob, uint32(steps))
	blob = binary.LittleEndian.AppendUint32(blob, uint32(len(offsetsPayload)))
	blob = binary.LittleEndian.AppendUint32(blob, uint32(len(tsPayload)))
	blob = binary.LittleEndian.AppendUint32(blob, uint32(len(valPayload)))
	blob = binary.LittleEndian.AppendUint64(blob, digest.Sum64())
	blob = append(blob, offsetsPayload...)
	blob = append(blob, tsPayload...)
	blob = append(blob, valPayload...)

	return blob, nil
}

// Decode reconstructs a series.Array from a snapshot blob.
//
// Returns errs.ErrInvalidSnapshot when the blob is truncated, carries the
// wrong magic or version, fails the digest check, or describes buffers that
// cannot form a valid Array.
func Decode(data []byte) (series.Array, error) {
	if len(data) < headerSize {
		return series.Array{}, fmt.Errorf("%w: %d bytes, header needs %d",
			errs.ErrInvalidSnapshot, len(data), headerSize)
	}
	if [4]byte(data[:4]) != magic {
		return series.Array{}, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidSnapshot, data[:4])
	}
	if data[4] != snapshotVersion {
		return series.Array{}, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, data[4])
	}

	layout := format.Layout(data[5])
	codec, err := compress.GetCodec(format.CompressionType(data[6]))
	if err != nil {
		return series.Array{}, fmt.Errorf("%w: %s", errs.ErrInvalidSnapshot, err)
	}

	rows := int(binary.LittleEndian.Uint32(data[8:12]))
	steps := int(binary.LittleEndian.Uint32(data[12:16]))
	offsetsLen := int(binary.LittleEndian.Uint32(data[16:20]))
	tsLen := int(binary.LittleEndian.Uint32(data[20:24]))
	valLen := int(binary.LittleEndian.Uint32(data[24:28]))
	wantDigest := binary.LittleEndian.Uint64(data[28:36])

	if headerSize+offsetsLen+tsLen+valLen != len(data) {
		return series.Array{}, fmt.Errorf("%w: payload lengths %d+%d+%d do not match %d trailing bytes",
			errs.ErrInvalidSnapshot, offsetsLen, tsLen, valLen, len(data)-headerSize)
	}

	payload := data[headerSize:]
	rawOffsets, err := codec.Decompress(payload[:offsetsLen])
	if err != nil {
		return series.Array{}, fmt.Errorf("%w: offsets payload: %s", errs.ErrInvalidSnapshot, err)
	}
	rawTimestamps, err := codec.Decompress(payload[offsetsLen : offsetsLen+tsLen])
	if err != nil {
		return series.Array{}, fmt.Errorf("%w: timestamp payload: %s", errs.ErrInvalidSnapshot, err)
	}
	rawValues, err := codec.Decompress(payload[offsetsLen+tsLen:])
	if err != nil {
		return series.Array{}, fmt.Errorf("%w: value payload: %s", errs.ErrInvalidSnapshot, err)
	}

	digest := xxhash.New()
	_, _ = digest.Write(rawOffsets)
	_, _ = digest.Write(rawTimestamps)
	_, _ = digest.Write(rawValues)
	if digest.Sum64() != wantDigest {
		return series.Array{}, fmt.Errorf("%w: digest mismatch", errs.ErrInvalidSnapshot)
	}

	values, err := decodeFloat64s(rawValues)
	if err != nil {
		return series.Array{}, err
	}
	timestamps, err := decodeInt64s(rawTimestamps)
	if err != nil {
		return series.Array{}, err
	}

	if layout == format.LayoutRagged {
		offsets, err := decodeOffsets(rawOffsets)
		if err != nil {
			return series.Array{}, err
		}
		arr, err := series.FromRagged(values, timestamps, offsets,
			series.WithZeroCopy(), series.WithEmptyRows())
		if err != nil {
			return series.Array{}, fmt.Errorf("%w: %s", errs.ErrInvalidSnapshot, err)
		}

		return arr, nil
	}

	if len(timestamps) != steps {
		return series.Array{}, fmt.Errorf("%w: %d timestamps for %d steps",
			errs.ErrInvalidSnapshot, len(timestamps), steps)
	}
	arr, err := series.FromDense(values, rows, timestamps,
		series.WithZeroCopy(), series.WithEmptyRows())
	if err != nil {
		return series.Array{}, fmt.Errorf("%w: %s", errs.ErrInvalidSnapshot, err)
	}

	return arr, nil
}

func encodeOffsets(offsets []int) []byte {
	buf := make([]byte, 0, len(offsets)*8)
	for _, off := range offsets {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(off))
	}

	return buf
}

func decodeOffsets(data []byte) ([]int, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("%w: offsets payload length %d not a multiple of 8",
			errs.ErrInvalidSnapshot, len(data))
	}
	offsets := make([]int, len(data)/8)
	for i := range offsets {
		offsets[i] = int(binary.LittleEndian.Uint64(data[i*8:]))
	}

	return offsets, nil
}

func encodeInt64s(values []int64) []byte {
	buf := make([]byte, 0, len(values)*8)
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}

	return buf
}

func decodeInt64s(data []byte) ([]int64, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("%w: timestamp payload length %d not a multiple of 8",
			errs.ErrInvalidSnapshot, len(data))
	}
	values := make([]int64, len(data)/8)
	for i := range values {
		values[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
	}

	return values, nil
}

func encodeFloat64s(values []float64) []byte {
	buf := make([]byte, 0, len(values)*8)
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

func decodeFloat64s(data []byte) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("%w: value payload length %d not a multiple of 8",
			errs.ErrInvalidSnapshot, len(data))
	}
	values := make([]float64, len(data)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}

	return values, nil
}
