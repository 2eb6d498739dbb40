package stm

import "github.com/pingcap/errors"

// AllocResult is the outcome of Alloc, mirroring the three-way enum from the
// original spec (§4.6/§7). AbortAlloc is never produced by this design —
// allocation does not interact with the transactional protocol at all — but
// the value is kept for interface compatibility with hosts that switch on it.
type AllocResult int

const (
	AllocSuccess AllocResult = iota
	AllocNoMem
	AllocAbort
)

// Alloc allocates a fresh, zero-filled dynamic segment of size bytes and
// splices it at the head of the region's segment list under the segment
// list mutex. tx is accepted for interface symmetry with the rest of the
// per-transaction operations but unused: allocation never touches the
// transactional protocol (§4.6).
func Alloc(region *Region, _ *Transaction, size int) (Address, AllocResult) {
	if size <= 0 || size%region.Align != 0 {
		return 0, AllocNoMem
	}

	buf, err := allocateSegment(size)
	if err != nil {
		return 0, AllocNoMem
	}

	node := &segmentNode{buf: buf}

	region.segMu.Lock()
	node.next = region.segHead
	if node.next != nil {
		node.next.prev = node
	}
	region.segHead = node
	region.segMu.Unlock()

	return baseAddress(buf), AllocSuccess
}

func allocateSegment(size int) (buf []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			buf, err = nil, errors.Errorf("stm: segment allocation panicked: %v", p)
		}
	}()
	return make([]byte, size), nil
}

// Free is a no-op: dynamic segments live for the region's lifetime in this
// design (§4.6/§9); they are reclaimed by the Go garbage collector once the
// region itself becomes unreachable at Destroy. Always reports success.
func Free(_ *Region, _ *Transaction, _ Address) bool {
	return true
}
