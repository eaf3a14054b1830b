package lineio

import (
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// gzipSource decompresses through a carry buffer of at most one page,
// mirroring gz_file_io::read_lines: each call decompresses up to
// wanted+PageSize bytes, and anything past the requested window that
// isn't a complete line becomes next call's carry.
type gzipSource struct {
	f     *os.File
	zr    *gzip.Reader
	carry []byte
	atEOF bool
}

func openGzip(path string) (*gzipSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipSource{f: f, zr: zr}, nil
}

func (s *gzipSource) Eof() bool {
	return s.atEOF && len(s.carry) == 0
}

func (s *gzipSource) ReadBlock(wantedBytes int) ([]byte, int, error) {
	bufSize := wantedBytes + PageSize
	buf := make([]byte, bufSize+1) // +1 for the zero sentinel

	n := copy(buf, s.carry)
	s.carry = s.carry[:0]

	if !s.atEOF {
		target := buf[n:bufSize]
		read, err := io.ReadFull(s.zr, target)
		n += read
		if err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				s.atEOF = true
			} else {
				return nil, 0, decodeFailure(err)
			}
		}
	}

	if n > wantedBytes {
		over := n - wantedBytes
		i := 0
		for ; i < over; i++ {
			if buf[wantedBytes+i] == '\n' {
				i++
				break
			}
		}
		consumed := wantedBytes + i
		carryLen := over - i
		s.carry = append(s.carry[:0], buf[consumed:consumed+carryLen]...)
		buf[consumed] = 0
		return buf[:consumed+1], consumed, nil
	}

	buf[n] = 0
	return buf[:n+1], n, nil
}

func (s *gzipSource) Close() error {
	zerr := s.zr.Close()
	ferr := s.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}
