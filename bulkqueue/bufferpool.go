package bulkqueue

// BufferPool hands out fixed-size byte slices carved from one backing
// arena, grounded on the teacher's FixedSizeBufferPool
// (dot5enko-simple-column-db manager/cache/fixed_size_buffer.go): a single
// allocation sliced into n buffers, free slots tracked by a buffered
// channel so Get blocks rather than allocating when the pool is exhausted.
// C10 uses one of these per worker to back reply buffers returned to a
// request's origin.
type BufferPool struct {
	arena   []byte
	buffers [][]byte
	free    chan uint16
	bufSize int
}

// NewBufferPool allocates n buffers of bufSize bytes each.
func NewBufferPool(n, bufSize int) *BufferPool {
	arena := make([]byte, n*bufSize)
	buffers := make([][]byte, n)
	for i := 0; i < n; i++ {
		start := i * bufSize
		end := start + bufSize
		buffers[i] = arena[start:end:end]
	}

	free := make(chan uint16, n)
	for i := 0; i < n; i++ {
		free <- uint16(i)
	}

	return &BufferPool{arena: arena, buffers: buffers, free: free, bufSize: bufSize}
}

// Get blocks until a buffer is free, then returns it along with the slot
// id Return needs to release it.
func (p *BufferPool) Get() ([]byte, uint16) {
	id := <-p.free
	return p.buffers[id], id
}

// TryGet is a non-blocking Get: it reports false instead of waiting when
// every buffer is checked out. (partcache.Worker.Access detects a full
// pool with IsFull, not TryGet.)
func (p *BufferPool) TryGet() ([]byte, uint16, bool) {
	select {
	case id := <-p.free:
		return p.buffers[id], id, true
	default:
		return nil, 0, false
	}
}

// IsFull reports whether every buffer is currently checked out.
func (p *BufferPool) IsFull() bool {
	return len(p.free) == 0
}

// Return releases a buffer back to the pool by slot id.
func (p *BufferPool) Return(id uint16) {
	p.free <- id
}

// BufSize returns the fixed size of each buffer.
func (p *BufferPool) BufSize() int { return p.bufSize }
