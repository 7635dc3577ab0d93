// Package buffer provides the multi-channel audio buffer used throughout the
// module. Samples are stored channel-major in one contiguous slice so that a
// channel is always a plain []S view, which bridges directly into vectorized
// block math. A Pool offers sync.Pool-based reuse for per-block scratch
// buffers in render loops.
package buffer
