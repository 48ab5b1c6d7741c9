package raster

import "sync"

// Pool is a thread-safe pool for reusing Buffer instances.
//
// Pool groups buffers by their dimensions and format. Composing a view once
// per displayed frame otherwise allocates a full frame every time.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Buffer
	maxSize int // max buffers per bucket
}

type poolKey struct {
	width  int
	height int
	format Format
}

// NewPool creates a pool that retains at most maxPerBucket buffers of each
// size and format. A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Buffer),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a buffer from the pool or allocates a new one.
// Contents of a reused buffer are unspecified; callers overwrite it.
func (p *Pool) Get(width, height int, format Format) (*Buffer, error) {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		bucket[n-1] = nil
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		return buf, nil
	}
	p.mu.Unlock()

	return NewBuffer(width, height, format)
}

// Put returns a buffer to the pool. The caller must not use buf afterwards.
// If buf is nil or its bucket is full, the buffer is discarded.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}
	key := poolKey{width: buf.width, height: buf.height, format: buf.format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of buffers currently pooled across all buckets.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, bucket := range p.buckets {
		n += len(bucket)
	}
	return n
}

// DefaultPool is the package-level pool used when no pool is configured.
var DefaultPool = NewPool(4)
