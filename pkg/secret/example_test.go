package secret_test

import (
	"crypto/aes"
	"fmt"

	"github.com/systmms/fixedsecret/pkg/secret"
)

func ExampleNew() {
	key := [16]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f}

	s := secret.New(&key)
	defer s.Destroy()

	fmt.Println("caller buffer zeroed:", key == [16]byte{})

	s.Borrow(func(k *[16]byte) {
		block, err := aes.NewCipher(k[:])
		if err != nil {
			panic(err)
		}
		fmt.Println("block size:", block.BlockSize())
	})

	fmt.Println(s)
	// Output:
	// caller buffer zeroed: true
	// block size: 16
	// [REDACTED]
}

func ExampleSecret_Move() {
	var key [32]byte
	key[0] = 0x2a

	owner := secret.New(&key)
	handed := owner.Move()
	defer handed.Destroy()

	fmt.Println("owner destroyed:", owner.Destroyed())
	handed.Borrow(func(k *[32]byte) {
		fmt.Println("first byte:", k[0])
	})
	// Output:
	// owner destroyed: true
	// first byte: 42
}
