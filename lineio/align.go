package lineio

import "unsafe"

// PageSize is the alignment unit for the plain direct-I/O source's
// windowed reads (spec.md §4.1: align_start/align_end round to page
// size). No library in the retrieval pack exposes an O_DIRECT-aware
// aligned allocator — this is the standard Go technique (as used by
// ncw/go-directio and similar packages) for carving a page-aligned slice
// out of a regular heap allocation, since the runtime gives no alignment
// guarantee stronger than pointer-size.
const PageSize = 4096

// AlignedBlock returns a byte slice of the given size whose first byte
// sits at a PageSize boundary.
func AlignedBlock(size int) []byte {
	if size == 0 {
		return nil
	}
	block := make([]byte, size+PageSize)
	a := alignment(block)
	offset := 0
	if a != 0 {
		offset = PageSize - a
	}
	return block[offset : offset+size]
}

func alignment(block []byte) int {
	return int(uintptr(unsafe.Pointer(&block[0])) & uintptr(PageSize-1))
}

func alignDown(off int64) int64 {
	return off &^ (int64(PageSize) - 1)
}

func alignUp(off int64) int64 {
	return (off + int64(PageSize) - 1) &^ (int64(PageSize) - 1)
}
