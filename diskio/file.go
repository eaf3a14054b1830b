// Package diskio wraps *os.File with the open/close/read-at/write-at shape
// the teacher uses for its slab storage file (dot5enko-simple-column-db
// io/file_reader.go), adapted here to back a tiered column vector's spill
// file (the partitioned cache's block store is memory-only and does not
// use it). Renamed from the
// teacher's package "io" to avoid shadowing the standard library package
// that every other file in this module also needs.
package diskio

import (
	"errors"
	"io"
	"os"
)

type File struct {
	path   string
	file   *os.File
	opened bool
}

func New(path string) *File {
	return &File{path: path}
}

func (f *File) Open(readOnly bool) error {
	var err error
	if readOnly {
		f.file, err = os.OpenFile(f.path, os.O_RDONLY, 0o644)
	} else {
		f.file, err = os.OpenFile(f.path, os.O_CREATE|os.O_RDWR, 0o644)
	}
	if err == nil {
		f.opened = true
	}
	return err
}

func (f *File) Close() error {
	if !f.opened {
		return nil
	}
	f.opened = false
	return f.file.Close()
}

func (f *File) ReadAt(out []byte, off int64) error {
	if !f.opened {
		return errors.New("diskio: file not opened")
	}
	n, err := f.file.ReadAt(out, off)
	if err != nil {
		return err
	}
	if n != len(out) {
		return errors.New("diskio: short read")
	}
	return nil
}

func (f *File) WriteAt(in []byte, off int64) error {
	if !f.opened {
		return errors.New("diskio: file not opened")
	}
	n, err := f.file.WriteAt(in, off)
	if err != nil {
		return err
	}
	if n != len(in) {
		return errors.New("diskio: short write")
	}
	return nil
}

func (f *File) Append(in []byte) error {
	if !f.opened {
		return errors.New("diskio: file not opened")
	}
	_, err := f.file.Write(in)
	return err
}

func (f *File) Size() (int64, error) {
	info, err := f.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (f *File) Path() string { return f.path }

// Writer adapts sequential Append calls to the io.Writer interface, for
// callers (e.g. the tiered column vector's spill encoder) that only ever
// write forward.
func (f *File) Writer() io.Writer { return appendWriter{f} }

type appendWriter struct{ f *File }

func (a appendWriter) Write(p []byte) (int, error) {
	if err := a.f.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
