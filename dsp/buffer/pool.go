package buffer

import (
	"sync"

	"github.com/cwbudde/algo-audiotest/dsp/core"
)

// Pool provides sync.Pool-based Buffer reuse to reduce GC pressure in
// render loops that allocate a scratch block per iteration. All buffers
// handed out by one Pool share a channel count.
type Pool[S core.Sample] struct {
	numChannels int
	pool        sync.Pool
}

// NewPool returns a Pool for buffers with the given channel count.
func NewPool[S core.Sample](numChannels int) *Pool[S] {
	if numChannels < 0 {
		numChannels = 0
	}

	p := &Pool[S]{numChannels: numChannels}
	p.pool.New = func() any {
		return New[S](p.numChannels, 0)
	}

	return p
}

// Get returns a zeroed Buffer with the requested frame count.
// Callers must return it via Put when done.
func (p *Pool[S]) Get(numFrames int) *Buffer[S] {
	b := p.pool.Get().(*Buffer[S])
	b.Resize(numFrames)

	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool[S]) Put(b *Buffer[S]) {
	if b == nil || b.numChannels != p.numChannels {
		return
	}

	p.pool.Put(b)
}
