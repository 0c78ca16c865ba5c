// Package secret provides a fixed-size, move-only container for sensitive
// byte data such as encryption keys and passwords.
//
// A [Secret] takes ownership of a caller's buffer by swapping its contents
// into a fresh heap allocation, so the caller's buffer is left holding
// zeros and no third copy of the plaintext is ever made. The bytes are read
// through a scoped borrow and overwritten with zeros when the container is
// destroyed.
//
// # Usage
//
//	var key [32]byte
//	// ... fill key from the environment, a file or a handshake ...
//
//	s := secret.New(&key) // key is now all zeros
//	defer s.Destroy()
//
//	s.Borrow(func(k *[32]byte) {
//	    block, _ := aes.NewCipher(k[:])
//	    // ...
//	})
//
// # Lifetime
//
// Go has no deterministic destructors. Destroy must be called explicitly,
// normally through defer right after construction. Destroy is idempotent
// and zeroes the buffer exactly once. If a container becomes unreachable
// without being destroyed, a runtime cleanup wipes its buffer on a later
// garbage collection; this is counted in [Stats] as Reclaimed and should
// be treated as a leak.
//
// # Copying
//
// A Secret must not be copied after creation. Only *Secret handles are
// handed out. go vet reports struct copies, and a copied value panics on
// first use. Ownership can be transferred explicitly with [Secret.Move].
//
// # Limitations
//
// Protection is best-effort. This package does NOT:
//
//   - lock pages into RAM or keep the secret out of swap
//   - exclude the secret from core dumps or crash reports
//   - defend against page-cache, cold-boot or hardware side channels
//   - provide constant-time comparison or secure random generation
//
// The wipe uses memguard.WipeBytes, which is written so that the compiler
// cannot drop it as a dead store. The Go runtime may still have spilled
// bytes to registers or stack temporaries while a borrow was active.
//
// # Concurrency
//
// A Secret has no internal locking. All borrows must happen-before
// Destroy, and at most one goroutine may destroy or move a container.
package secret
