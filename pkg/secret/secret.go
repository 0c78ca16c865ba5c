package secret

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

// ErrLength is returned by FromSlice when the source length does not
// match the container's fixed length.
var ErrLength = errors.New("secret: length mismatch")

// Array is the set of fixed-length byte arrays a Secret can hold.
type Array interface {
	~[16]byte | ~[24]byte | ~[32]byte | ~[48]byte | ~[64]byte
}

type state uint8

const (
	stateLive state = iota
	stateDestroyed
	stateMoved
)

func (s state) String() string {
	switch s {
	case stateLive:
		return "live"
	case stateDestroyed:
		return "destroyed"
	case stateMoved:
		return "moved"
	default:
		return "unknown"
	}
}

// noCopy triggers go vet's copylocks check on any struct that embeds it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Secret holds a fixed-length secret that is zeroed on Destroy.
//
// A Secret must not be copied. Use the *Secret returned by New or
// FromSlice, and call Destroy when the secret is no longer needed.
type Secret[T Array] struct {
	_ noCopy

	// addr points back at the Secret it was created as. A mismatch means
	// the struct was copied.
	addr    *Secret[T]
	buf     *T
	state   state
	cleanup runtime.Cleanup
}

// New moves the contents of src into a new Secret.
//
// IMPORTANT: src is overwritten with zeros. The bytes are swapped, not
// copied, so after New returns the only copy of the secret is the one
// inside the container.
//
// New cannot fail. If the runtime cannot allocate the buffer the process
// dies; a partially constructed Secret never exists.
func New[T Array](src *T) *Secret[T] {
	buf := new(T)
	swap(view(buf), view(src))
	return adopt(buf)
}

// FromSlice moves the contents of src into a new Secret, leaving src
// zeroed. It is the slice form of New for callers whose buffer is not
// a fixed-length array.
//
// If len(src) is not the container's fixed length, FromSlice returns
// ErrLength and src is left untouched.
func FromSlice[T Array](src []byte) (*Secret[T], error) {
	buf := new(T)
	dst := view(buf)
	if len(src) != len(dst) {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrLength, len(src), len(dst))
	}
	swap(dst, src)
	return adopt(buf), nil
}

func adopt[T Array](buf *T) *Secret[T] {
	s := &Secret[T]{buf: buf, state: stateLive}
	s.addr = s
	// buf must not reference s, otherwise s never becomes unreachable.
	s.cleanup = runtime.AddCleanup(s, reclaim[T], buf)
	created.Add(1)
	return s
}

// reclaim runs when a live Secret is garbage collected without Destroy.
func reclaim[T Array](buf *T) {
	wipe(view(buf))
	reclaimed.Add(1)
}

// Len returns the fixed length of the secret in bytes.
func (s *Secret[T]) Len() int {
	return int(unsafe.Sizeof(*new(T)))
}

// Borrow calls fn with a pointer to the secret bytes.
//
// The pointer is only valid until fn returns. Do not retain it, copy the
// array into longer-lived storage, log it, or serialize it. fn must not
// modify the bytes.
//
// Borrow panics if the Secret has been destroyed, moved, or copied.
func (s *Secret[T]) Borrow(fn func(view *T)) {
	s.mustBeLive("Borrow")
	fn(s.buf)
	runtime.KeepAlive(s)
}

// BorrowBytes is Borrow for callers that need a []byte. The same rules
// apply: the slice aliases the container and must not outlive fn.
func (s *Secret[T]) BorrowBytes(fn func(view []byte)) {
	s.mustBeLive("BorrowBytes")
	fn(view(s.buf))
	runtime.KeepAlive(s)
}

// Move transfers ownership of the secret to a new handle without copying
// the bytes. s is left in a terminal state: Destroy on it is a no-op and
// any borrow panics.
func (s *Secret[T]) Move() *Secret[T] {
	s.mustBeLive("Move")
	s.cleanup.Stop()
	buf := s.buf
	s.buf = nil
	s.state = stateMoved
	moved.Add(1)
	return adopt(buf)
}

// Destroy overwrites the secret with zeros and releases the buffer.
// It is safe to call more than once; only the first call on a live
// Secret has any effect. Destroy on a moved Secret does nothing.
func (s *Secret[T]) Destroy() {
	s.copyCheck()
	if s.state != stateLive {
		return
	}
	s.cleanup.Stop()
	wipe(view(s.buf))
	s.buf = nil
	s.state = stateDestroyed
	destroyed.Add(1)
}

// Destroyed reports whether s is no longer live, either because it was
// destroyed or because its contents were moved elsewhere.
func (s *Secret[T]) Destroyed() bool {
	s.copyCheck()
	return s.state != stateLive
}

// String returns a fixed placeholder so a Secret never prints its bytes.
func (s *Secret[T]) String() string {
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v.
func (s *Secret[T]) GoString() string {
	return "secret.Secret[REDACTED]"
}

func (s *Secret[T]) copyCheck() {
	if s.addr == nil {
		panic("secret: use of uninitialized Secret; construct with New or FromSlice")
	}
	if s.addr != s {
		panic("secret: illegal use of copied Secret")
	}
}

func (s *Secret[T]) mustBeLive(op string) {
	s.copyCheck()
	if s.state != stateLive {
		panic(fmt.Sprintf("secret: %s on %s Secret", op, s.state))
	}
}

// view returns a slice aliasing the array p points to.
func view[T Array](p *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p))
}

// swap exchanges a and b in place, one byte at a time, so no whole-buffer
// temporary holds the plaintext.
func swap(a, b []byte) {
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}
