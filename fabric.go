// Package fabric ties the ingestion pipeline (C1-C8) and the partitioned
// cache (C9-C10) together behind one Config, grounded on the teacher's
// manager.ManagerConfig (dot5enko-simple-column-db/manager/manager.go):
// a single struct of constructor parameters, no file- or env-based
// loader, matching spec.md §6 ("CLI/config: none at the core layer").
package fabric

import (
	"github.com/flowgraph/fabric/partcache"
	"github.com/flowgraph/fabric/workerpool"
)

// Config carries every knob needed to construct the engine's two core
// subsystems.
type Config struct {
	// Ingestion pool (C4).
	NumaNodes      int
	ThreadsPerNode int

	// Partitioned cache (C9-C10).
	CacheGroups      int
	WorkersPerGroup  int
	CacheBlockSize   uint32
	CacheBufSize     int
	ReqQueueCapacity int
	ReplyQueueCap    int
	TestProbe        bool
}

// DefaultConfig mirrors the sizes the teacher's main.go hardcodes rather
// than deriving from environment discovery: fixed, explicit constructor
// arguments.
func DefaultConfig() Config {
	return Config{
		NumaNodes:        2,
		ThreadsPerNode:   4,
		CacheGroups:      2,
		WorkersPerGroup:  4,
		CacheBlockSize:   1 << 16,
		CacheBufSize:     32,
		ReqQueueCapacity: 256,
		ReplyQueueCap:    256,
		TestProbe:        false,
	}
}

// NewIngestPool builds the NUMA worker pool (C4) from Config.
func (c Config) NewIngestPool() *workerpool.Pool {
	return workerpool.New(c.NumaNodes, c.ThreadsPerNode)
}

// NewCacheContext builds the partitioned cache's Context (C10) from Config.
func (c Config) NewCacheContext() *partcache.Context {
	return partcache.NewContext(partcache.Config{
		NumGroups:       c.CacheGroups,
		WorkersPerGroup: c.WorkersPerGroup,
		BlockSize:       c.CacheBlockSize,
		BufSize:         c.CacheBufSize,
		ReqQueueCap:     c.ReqQueueCapacity,
		ReplyQueueCap:   c.ReplyQueueCap,
		TestProbe:       c.TestProbe,
	})
}
