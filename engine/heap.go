package engine

// heap is an in-memory cell table with reference counting and free-list
// handle reuse. Handles are 1-based; handle 0 is reserved as invalid.
//
// The engine executes on a single thread (one invocation at a time), so the
// heap does no locking.
type heap struct {
	entries  []cell
	freeList []Handle
}

type cell struct {
	value any // string or *Object
	refs  uint32
	valid bool
}

func newHeap() *heap {
	return &heap{
		entries:  make([]cell, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// alloc stores a value with an initial reference count of one.
func (h *heap) alloc(value any) Handle {
	e := cell{
		value: value,
		refs:  1,
		valid: true,
	}

	if len(h.freeList) > 0 {
		handle := h.freeList[len(h.freeList)-1]
		h.freeList = h.freeList[:len(h.freeList)-1]
		h.entries[handle-1] = e
		return handle
	}

	h.entries = append(h.entries, e)
	return Handle(len(h.entries))
}

// get retrieves a cell value by handle.
func (h *heap) get(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	idx := handle - 1
	if int(idx) >= len(h.entries) {
		return nil, false
	}

	e := h.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// retain increments the reference count for a handle.
func (h *heap) retain(handle Handle) bool {
	if handle == 0 {
		return false
	}

	idx := handle - 1
	if int(idx) >= len(h.entries) {
		return false
	}

	e := &h.entries[idx]
	if !e.valid {
		return false
	}

	e.refs++
	return true
}

// release decrements the reference count and returns (value, true) when the
// count reaches zero and the cell is reclaimed.
func (h *heap) release(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	idx := handle - 1
	if int(idx) >= len(h.entries) {
		return nil, false
	}

	e := &h.entries[idx]
	if !e.valid || e.refs == 0 {
		return nil, false
	}

	e.refs--
	if e.refs > 0 {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	h.freeList = append(h.freeList, handle)

	return value, true
}

// refs returns the current reference count for a handle.
func (h *heap) refCount(handle Handle) (uint32, bool) {
	if handle == 0 {
		return 0, false
	}

	idx := handle - 1
	if int(idx) >= len(h.entries) {
		return 0, false
	}

	e := h.entries[idx]
	if !e.valid {
		return 0, false
	}
	return e.refs, true
}

// live returns the number of valid cells.
func (h *heap) live() int {
	count := 0
	for _, e := range h.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// clear invalidates all cells.
func (h *heap) clear() {
	for i := range h.entries {
		h.entries[i].valid = false
		h.entries[i].value = nil
	}
	h.entries = nil
	h.freeList = nil
}
