package mfcc

import "sync"
import "github.com/pkg/errors"
import "github.com/sirupsen/logrus"

// Handle identifies a live Buffer. The zero Handle is never issued.
type Handle uint64

// Buffer owns the coefficients produced by one Compute call. The caller must
// Release it exactly once; the package never frees or reuses it on its own.
type Buffer struct {
	owner  *allocator
	handle Handle
	frames int
	data   []float32
}

// Handle returns the registry handle of the buffer.
func (b *Buffer) Handle() Handle {
	return b.handle
}

// Float32s returns the coefficients, frame after frame. The slice belongs to
// the buffer and must not be used after Release.
func (b *Buffer) Float32s() []float32 {
	return b.data
}

// Len returns the number of coefficients held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Frames returns how many coefficient vectors the buffer holds.
func (b *Buffer) Frames() int {
	return b.frames
}

// Frame returns the coefficients of frame i.
func (b *Buffer) Frame(i int) []float32 {
	n := len(b.data) / b.frames
	return b.data[i*n : (i+1)*n]
}

// Release returns the buffer to the allocator.
func (b *Buffer) Release() error {
	return Release(b)
}

// Release returns b to the allocator. Releasing twice yields ErrDoubleRelease
// and releasing a buffer that was not produced by Compute yields
// ErrForeignBuffer.
func Release(b *Buffer) error {
	return buffers.release(b)
}

// Live returns the number of buffers that have not been released.
func Live() int {
	return buffers.live()
}

type allocator struct {
	mu      sync.Mutex
	last    Handle
	buffers map[Handle]*Buffer
}

var buffers = newAllocator()

func newAllocator() *allocator {
	return &allocator{buffers: make(map[Handle]*Buffer)}
}

func (a *allocator) alloc(frames, n int) *Buffer {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last++
	b := &Buffer{owner: a, handle: a.last, frames: frames, data: make([]float32, frames*n)}
	a.buffers[b.handle] = b

	log("alloc").WithFields(logrus.Fields{
		"handle": b.handle,
		"frames": frames,
		"n_mfcc": n,
	}).Debug("Buffer allocated")
	return b
}

func (a *allocator) release(b *Buffer) error {
	if b == nil || b.owner != a || b.handle == 0 {
		log("Release").Warn("Release of a buffer this package did not allocate")
		return ErrForeignBuffer
	}
	return a.releaseHandle(b.handle)
}

func (a *allocator) releaseHandle(h Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.buffers[h]
	if !ok {
		if h == 0 || h > a.last {
			return errors.Wrapf(ErrUnknownHandle, "handle %d", h)
		}
		log("Release").WithField("handle", h).Warn("Buffer released twice")
		return errors.Wrapf(ErrDoubleRelease, "handle %d", h)
	}
	delete(a.buffers, h)
	b.data = nil

	log("Release").WithField("handle", h).Debug("Buffer released")
	return nil
}

func (a *allocator) lookup(h Handle) (*Buffer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.buffers[h]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownHandle, "handle %d", h)
	}
	return b, nil
}

func (a *allocator) live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.buffers)
}
