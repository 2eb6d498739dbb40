package stm

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// segmentNode is one node of the region's intrusive doubly-linked list of
// dynamically allocated segments, mirroring original_source/Region.h's
// segment_node. Unlike the C original, freeing this list early would be
// pointless: it is Go-GC'd memory, not malloc'd memory, so it costs nothing
// to simply keep every node alive until the Region itself is unreachable.
type segmentNode struct {
	prev, next *segmentNode
	buf        []byte
}

// Region owns the initial segment, the lock stripe, the global version
// clock, the admission counter, and the dynamic segment list. Its lifetime
// must strictly contain every Transaction created against it.
type Region struct {
	Size  int
	Align int

	initial []byte
	stripe  *LockStripe
	clock   GlobalVersionClock

	currentTxs atomic.Int64
	maxTxs     int64

	segMu   sync.Mutex
	segHead *segmentNode
}

// NewRegion allocates and zero-fills the initial segment, sizes the lock
// stripe, and returns a ready-to-use Region. size must be a positive
// multiple of align; align must be a power of two. stripeSize and maxTxs
// configure the lock stripe width and the commit-phase admission ceiling
// (§4.7 Step 0) respectively.
func NewRegion(size, align, stripeSize int, maxTxs int64) (*Region, error) {
	if size <= 0 || align <= 0 || align&(align-1) != 0 || size%align != 0 {
		return nil, newCreateError(fmt.Errorf("invalid size=%d align=%d", size, align))
	}
	if stripeSize <= 0 {
		return nil, newCreateError(fmt.Errorf("invalid stripe size=%d", stripeSize))
	}

	r := &Region{
		Size:   size,
		Align:  align,
		stripe: NewLockStripe(stripeSize),
		maxTxs: maxTxs,
	}
	if err := r.allocateInitialSegment(size); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Region) allocateInitialSegment(size int) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newCreateError(fmt.Errorf("allocation panicked: %v", p))
		}
	}()
	r.initial = make([]byte, size)
	return nil
}

// Start returns the base address of the initial segment.
func (r *Region) Start() Address {
	return baseAddress(r.initial)
}

// Destroy releases the initial segment and the dynamic segment list. After
// Destroy, the Region must not be used by any live transaction.
func (r *Region) Destroy() {
	r.segMu.Lock()
	r.segHead = nil
	r.segMu.Unlock()
	r.initial = nil
}

// inInitialSegment reports whether addr..addr+n falls within the initial
// segment, and if so returns the byte slice view.
func (r *Region) inInitialSegment(addr Address, n int) ([]byte, bool) {
	base := baseAddress(r.initial)
	if base == 0 {
		return nil, false
	}
	off := int(addr - base)
	if off < 0 || off+n > len(r.initial) {
		return nil, false
	}
	return r.initial[off : off+n], true
}

// inDynamicSegment reports whether addr..addr+n falls within some
// dynamically allocated segment, and if so returns the byte slice view. The
// mutex is held only long enough to snapshot the head pointer; walking the
// chain itself needs no lock because segments are never removed or resized
// during a region's lifetime (§4.6/§9), only appended under segMu, so a
// reader racing with Alloc either sees a node or doesn't and never sees a
// half-linked one.
func (r *Region) inDynamicSegment(addr Address, n int) ([]byte, bool) {
	for node := r.loadSegHead(); node != nil; node = node.next {
		base := baseAddress(node.buf)
		if base == 0 {
			continue
		}
		off := int(addr - base)
		if off >= 0 && off+n <= len(node.buf) {
			return node.buf[off : off+n], true
		}
	}
	return nil, false
}

func (r *Region) loadSegHead() *segmentNode {
	r.segMu.Lock()
	defer r.segMu.Unlock()
	return r.segHead
}

// wordAt resolves a shared address to its backing bytes, searching the
// initial segment first (the common case) and then the dynamic segments.
func (r *Region) wordAt(addr Address, n int) []byte {
	if buf, ok := r.inInitialSegment(addr, n); ok {
		return buf
	}
	if buf, ok := r.inDynamicSegment(addr, n); ok {
		return buf
	}
	panic(fmt.Sprintf("stm: address %#x[:%d] outside any owned segment", uintptr(addr), n))
}

// SegmentCount returns the number of dynamically allocated segments, for
// observability and tests only; it does not affect allocator semantics.
func (r *Region) SegmentCount() int {
	r.segMu.Lock()
	defer r.segMu.Unlock()
	n := 0
	for node := r.segHead; node != nil; node = node.next {
		n++
	}
	return n
}
