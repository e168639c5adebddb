package buffer

// Buffer accumulates the bytes of a single request as they arrive from the
// socket, enforcing an upper bound on how much a peer may make us hold.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) *Buffer {
	return &Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of bytes doesn't exceed
// the limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// Bytes returns the accumulated data without copying it.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

func (b *Buffer) Len() int {
	return len(b.memory)
}

// Clear just resets the length, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
