// Package block provides the in-memory header and staging buffer for a
// single cached page in the partitioned cache's local block store
// (cachestore), grounded on the teacher's DiskHeader and
// RuntimeBlockData[T] (dot5enko-simple-column-db/schema/disk_header.go,
// dot5enko-simple-column-db/block/runtime_data.go). The teacher's header
// framed a compressed column-block for an on-disk slab format; C10's
// cache is memory-resident only (spec.md §1 excludes a persistence
// format as a non-goal), so DiskHeader here carries the same fields
// purely as in-memory page metadata, with no wire encoding.
package block

import "github.com/google/uuid"

// DiskHeader describes one cached, possibly lz4-compressed page: which
// group produced it, where it sits in the address space the cache
// partitions, and how large it is compressed vs. raw.
type DiskHeader struct {
	GroupUid uuid.UUID

	StartOffset    uint64
	CompressedSize uint64

	Compressed bool

	RawSize uint32
}
