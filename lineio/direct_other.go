//go:build !linux

package lineio

import "os"

// openDirect falls back to a regular buffered open on platforms without
// O_DIRECT; the page-aligned windowing and buffer layout are unchanged,
// only the kernel bypass is lost.
func openDirect(path string) (*os.File, error) {
	return os.Open(path)
}
