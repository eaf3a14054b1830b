package lineio

import (
	"fmt"
	"io"
	"os"
)

// plainSource reads a text file through page-aligned windows, scanning
// backward to the last complete line each call, exactly as
// text_file_io::read_lines does in the original. currOff tracks how many
// bytes of the file have been consumed as complete lines so far.
type plainSource struct {
	f        *os.File
	currOff  int64
	fileSize int64
}

func openPlain(path string) (*plainSource, error) {
	f, err := openDirect(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &plainSource{f: f, fileSize: info.Size()}, nil
}

func (s *plainSource) Eof() bool {
	return s.fileSize-s.currOff == 0
}

// ReadBlock rounds the current window to page boundaries, reads it, and
// returns the prefix ending on the last complete '\n' it contains. The
// byte after that newline becomes the zero sentinel.
func (s *plainSource) ReadBlock(wantedBytes int) ([]byte, int, error) {
	if s.Eof() {
		return nil, 0, fmt.Errorf("lineio: ReadBlock called at EOF")
	}

	alignStart := alignDown(s.currOff)
	alignEnd := alignUp(s.currOff + int64(wantedBytes))
	localOff := s.currOff - alignStart
	bufSize := alignEnd - alignStart

	if _, err := s.f.Seek(alignStart, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("lineio: seeking to %d: %w", alignStart, err)
	}

	expected := bufSize
	if alignStart+bufSize > s.fileSize {
		expected = s.fileSize - alignStart
	}

	buf := AlignedBlock(int(bufSize))
	if err := readComplete(s.f, buf[:expected]); err != nil {
		return nil, 0, fmt.Errorf("lineio: reading window at %d: %w", alignStart, err)
	}

	if localOff > 0 && buf[localOff-1] != '\n' {
		panic("lineio: invariant breach: byte before carried line buffer is not '\\n'")
	}

	lineEnd := int(expected) - 1
	if expected == bufSize {
		// The window filled exactly; the final line may continue past it,
		// so back up one more line to stay on a safe boundary.
		lineEnd = int(expected) - 2
	}
	for lineEnd >= int(localOff) && buf[lineEnd] != '\n' {
		lineEnd--
	}
	if lineEnd < int(localOff) {
		if expected == bufSize {
			panic("lineio: invariant breach: no newline found within a full window")
		}
		// This window ran into EOF and its remainder has no trailing
		// newline (spec §8 property 3): the remainder is the final line.
		lineEnd = int(expected) - 1
	}
	lineEnd++ // one past the newline: the sentinel slot

	buf[lineEnd] = 0
	consumed := lineEnd - int(localOff)
	s.currOff += int64(consumed)
	if s.currOff > s.fileSize {
		panic("lineio: invariant breach: curr_off advanced past file_size")
	}

	return buf[localOff : lineEnd+1], consumed, nil
}

// Close closes the underlying file, panicking (InvariantBreach, §7) if the
// source was closed before consuming the whole file, matching the
// original's `assert(curr_off == file_size)` destructor check
// (_examples/original_source/matrix/data_io.cpp, text_file_io::~text_file_io).
func (s *plainSource) Close() error {
	if s.currOff != s.fileSize {
		panic(fmt.Sprintf("lineio: invariant breach: closed at offset %d, file size %d", s.currOff, s.fileSize))
	}
	return s.f.Close()
}

func readComplete(f *os.File, buf []byte) error {
	read := 0
	for read < len(buf) {
		n, err := f.Read(buf[read:])
		if n == 0 && err != nil {
			return err
		}
		read += n
	}
	return nil
}
