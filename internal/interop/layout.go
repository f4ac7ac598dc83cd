// Package interop defines the fixed wire layout used to exchange
// performance records with host applications that pass raw record arrays
// across a language boundary.
//
// Each record occupies exactly 8 bytes: the student ID as a little-endian
// int32 followed by the score as a little-endian IEEE 754 float32, with no
// padding. The layout is deliberately independent of Go struct layout so
// hosts can rely on it.
package interop

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/edulytics/go-classrank/internal/domain"
)

// RecordSize is the encoded size of one performance record in bytes.
const RecordSize = 8

// Errors returned by the codec.
var (
	// ErrTruncatedData indicates that the byte length is not a whole
	// number of records.
	ErrTruncatedData = errors.New("data length is not a multiple of the record size")

	// ErrShortBuffer indicates that a destination buffer cannot hold the
	// encoded records.
	ErrShortBuffer = errors.New("buffer too small for encoded records")
)

// AppendRecord appends the 8-byte encoding of a record to dst and returns
// the extended slice.
func AppendRecord(dst []byte, record domain.PerformanceRecord) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(record.StudentID))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(record.Score))
	return dst
}

// EncodeRecords encodes records into a freshly allocated byte slice.
func EncodeRecords(records []domain.PerformanceRecord) []byte {
	out := make([]byte, 0, len(records)*RecordSize)
	for _, r := range records {
		out = AppendRecord(out, r)
	}
	return out
}

// EncodeRecordsTo encodes records into dst, which must hold at least
// len(records)*RecordSize bytes. It returns the number of bytes written.
func EncodeRecordsTo(dst []byte, records []domain.PerformanceRecord) (int, error) {
	need := len(records) * RecordSize
	if len(dst) < need {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, need, len(dst))
	}
	for i, r := range records {
		off := i * RecordSize
		binary.LittleEndian.PutUint32(dst[off:], uint32(r.StudentID))
		binary.LittleEndian.PutUint32(dst[off+4:], math.Float32bits(r.Score))
	}
	return need, nil
}

// DecodeRecords decodes a byte slice produced by EncodeRecords back into
// performance records. The data length must be a whole number of records.
func DecodeRecords(data []byte) ([]domain.PerformanceRecord, error) {
	if len(data)%RecordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedData, len(data))
	}

	records := make([]domain.PerformanceRecord, len(data)/RecordSize)
	for i := range records {
		off := i * RecordSize
		records[i] = domain.PerformanceRecord{
			StudentID: int32(binary.LittleEndian.Uint32(data[off:])),
			Score:     math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:])),
		}
	}
	return records, nil
}
