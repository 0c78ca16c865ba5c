package secret

import "github.com/awnumar/memguard"

// wipe zeroes b. memguard.WipeBytes is not subject to dead-store
// elimination. Tests replace it to count calls.
var wipe = memguard.WipeBytes

// Wipe zeroes b in place with the same primitive Destroy uses. It is meant
// for scratch buffers that held secret material before it was moved into
// a Secret.
func Wipe(b []byte) {
	wipe(b)
}
