//go:build linux

package lineio

import (
	"os"

	"golang.org/x/sys/unix"
)

// openDirect opens path for aligned reads with O_DIRECT, matching the
// original's `open(file, O_RDONLY | O_DIRECT)` (_examples/original_source/
// matrix/data_io.cpp text_file_io::create). Filesystems that don't support
// O_DIRECT (tmpfs, overlayfs on some kernels) return EINVAL; the page-
// aligned windowing this package does is correct either way, so on that
// specific error we fall back to a cached open rather than failing the
// whole ingestion job over a kernel-bypass hint the target fs can't honor.
func openDirect(path string) (*os.File, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECT, 0)
	if err == unix.EINVAL {
		return os.Open(path)
	}
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(fd), path), nil
}
