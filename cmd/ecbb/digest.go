package main

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

func newHash(name string) (hash.Hash, error) {
	switch name {
	case "sha256":
		return sha256.New(), nil
	case "sha384":
		return sha512.New384(), nil
	case "sha512":
		return sha512.New(), nil
	case "sha3-256":
		return sha3.New256(), nil
	case "sha3-512":
		return sha3.New512(), nil
	case "blake2b-256":
		return blake2b.New256(nil)
	case "blake2b-512":
		return blake2b.New512(nil)
	default:
		return nil, fmt.Errorf("unknown hash %q", name)
	}
}

// digest hashes msg with the named function.
func digest(name string, msg []byte) ([]byte, error) {
	h, err := newHash(name)
	if err != nil {
		return nil, err
	}
	h.Write(msg)
	return h.Sum(nil), nil
}
