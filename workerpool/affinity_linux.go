//go:build linux

package workerpool

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// BindToNode pins the calling worker's OS thread to the CPUs belonging to
// the given NUMA node, approximating the original's numa_bind/
// numa_set_strict with golang.org/x/sys/unix.SchedSetaffinity, since Go has
// no direct libnuma binding. The node-to-CPU mapping divides the machine's
// CPUs into eight equal stripes, whatever node count the caller was built
// with; it is a topology approximation, not a read of the real NUMA
// distance matrix.
func BindToNode(node int32) error {
	if node < 0 {
		return nil
	}
	runtime.LockOSThread()

	ncpu := runtime.NumCPU()
	if ncpu == 0 {
		return nil
	}
	// Conservatively assume up to 8 NUMA nodes' worth of CPU striping; a
	// stripe start beyond the CPU count wraps around modulo the CPU count.
	perNode := ncpu / 8
	if perNode == 0 {
		perNode = 1
	}
	start := int(node) * perNode
	if start >= ncpu {
		start = start % ncpu
	}

	var set unix.CPUSet
	set.Zero()
	for c := start; c < start+perNode && c < ncpu; c++ {
		set.Set(c)
	}
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("workerpool: sched_setaffinity node %d: %w", node, err)
	}
	return nil
}
