// Package lineio implements the line source (C5): an abstract byte-stream
// producing successive buffers aligned on line boundaries, with plain
// (aligned direct I/O) and gzip variants. Grounded on
// _examples/original_source/matrix/data_io.cpp's file_io/text_file_io/
// gz_file_io hierarchy, and on the teacher's diskio.File for the open/
// close/read shape (dot5enko-simple-column-db io/file_reader.go).
package lineio

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// LineBlockSize is the default read window handed to ReadBlock by the
// ingestion driver (spec.md §4.5: LINE_BLOCK_SIZE = 16 MiB).
const LineBlockSize = 16 * 1024 * 1024

// ErrDecode marks a gzip decompression failure. Per spec.md §7 this is
// fatal to the whole ingestion job; the ingestion driver logs it and
// terminates rather than surfacing a partial frame.
var ErrDecode = errors.New("lineio: decode failure")

// Source is the line-source contract: ReadBlock returns a buffer whose
// first consumed bytes bytes are complete lines (every '\n' included)
// followed by a zero sentinel byte; Eof reports whether the stream is
// exhausted. Once Eof returns true, ReadBlock must not be called again.
type Source interface {
	ReadBlock(wantedBytes int) (buf []byte, consumed int, err error)
	Eof() bool
	Close() error
}

// Open opens path as a line source: the plain aligned-I/O variant, or the
// gzip variant if the name ends in ".gz". A missing/unopenable file logs
// and returns a nil Source per spec.md §4.1's "open failure -> returns
// null source" — not a Go error, matching file_io::create's ptr().
func Open(path string) Source {
	if strings.HasSuffix(path, ".gz") {
		s, err := openGzip(path)
		if err != nil {
			slog.Error("failed to open gzip file", "path", path, "err", err)
			return nil
		}
		return s
	}
	s, err := openPlain(path)
	if err != nil {
		slog.Error("failed to open file", "path", path, "err", err)
		return nil
	}
	return s
}

func decodeFailure(cause error) error {
	return fmt.Errorf("%w: %v", ErrDecode, cause)
}
