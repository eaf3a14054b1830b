// Command flowmatrix demonstrates the ingestion pipeline and the
// partitioned cache side by side, in the style of the teacher's main.go
// (dot5enko-simple-column-db/main.go): a few sequential steps logged with
// the standard log package, no flag parsing or subcommands.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/flowgraph/fabric"
	"github.com/flowgraph/fabric/bulkqueue"
	"github.com/flowgraph/fabric/ingest"
	"github.com/flowgraph/fabric/partcache"
)

func writeSampleEdgeFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprint(f, "1 2\n3 4\n# a comment line\n5 6\n7 8\n")
	return err
}

func runIngestDemo(cfg fabric.Config) {
	pool := cfg.NewIngestPool()
	defer pool.Close()

	path := os.TempDir() + "/flowmatrix-demo-edges.txt"
	if err := writeSampleEdgeFile(path); err != nil {
		log.Fatalf("writing sample edge file: %v", err)
	}
	defer os.Remove(path)

	result, err := ingest.ReadEdgeList(pool, []string{path}, true, "")
	if err != nil {
		color.Red("reading edge list: %s", err)
		log.Fatal(err)
	}

	source := result.GetVec("source")
	dest := result.GetVec("dest")
	log.Printf("ingested %d edges", source.Len())
	for i := uint64(0); i < source.Len(); i++ {
		log.Printf("  edge %d: %d -> %d", i, source.IntAt(int(i)), dest.IntAt(int(i)))
	}
}

func runCacheDemo(cfg fabric.Config) {
	ctx := cfg.NewCacheContext()

	const requestsPerWorker = 25
	ctx.Run(func(w *partcache.Worker) {
		reqs := make([]bulkqueue.Request, requestsPerWorker)
		for i := range reqs {
			reqs[i] = bulkqueue.Request{
				Offset:   uint64(w.ID*requestsPerWorker+i) * uint64(cfg.CacheBlockSize),
				Size:     cfg.CacheBlockSize,
				FromPool: true,
			}
		}
		n := w.Access(reqs, bulkqueue.READ)
		log.Printf("cache worker %d received %d replies across groups", w.ID, n)
	})

	log.Printf("cache demo complete: %d groups x %d workers", cfg.CacheGroups, cfg.WorkersPerGroup)
}

func main() {
	cfg := fabric.DefaultConfig()
	cfg.TestProbe = true

	log.Println("=== ingestion demo ===")
	runIngestDemo(cfg)

	log.Println("=== partitioned cache demo ===")
	runCacheDemo(cfg)
}
