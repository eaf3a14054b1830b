// Package compression wraps the lz4 codec used to compress pages behind
// the partitioned cache's local block store (cachestore), grounded on the
// teacher's lz4 usage for compressed column blocks
// (dot5enko-simple-column-db/schema/disk_slab_header.go's CompressionType
// field implies an lz4-family codec; this module makes the codec call
// explicit since the teacher never finished wiring one in).
package compression

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// CompressLz4 writes src to output as an lz4 frame.
func CompressLz4(src []byte, output *bytes.Buffer) error {
	zw := lz4.NewWriter(output)

	zw.Write(src)
	flushErr := zw.Flush()

	if flushErr != nil {
		return flushErr
	}

	return zw.Close()
}

// DecompressLz4 reads an lz4 frame previously produced by CompressLz4 into
// a freshly allocated buffer sized to rawSize.
func DecompressLz4(src []byte, rawSize int) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(src))
	out := make([]byte, rawSize)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, err
	}
	return out, nil
}
