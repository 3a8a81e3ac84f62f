// Package filehash selects the digest algorithm the catalog hashes file
// content with. It mirrors the shape of mutagen's synchronization.Digest
// enum and Factory method, applied to the two algorithms this tool needs
// instead of mutagen's own sync-protocol digest set.
package filehash

import (
	"crypto/md5"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Algorithm identifies a digest strategy the catalog can be parameterized
// over. Both algorithms produce an opaque, fixed-width digest; the catalog
// never inspects the digest's internal structure.
type Algorithm uint8

const (
	// MD5 is the fast, non-cryptographic default.
	MD5 Algorithm = iota
	// SHA3_256 is the collision-resistant alternative selected by
	// --paranoid.
	SHA3_256
)

// New returns a fresh hash.Hash for the algorithm. Invoked once per insert
// that requires a full-file hash, the way scanner.hasher.Reset() is reused
// per file in mutagen's scan.go, except here a new hasher is constructed
// rather than reset since the factory is shared across many independent
// reads.
func (a Algorithm) New() hash.Hash {
	switch a {
	case MD5:
		return md5.New()
	case SHA3_256:
		return sha3.New256()
	default:
		panic(fmt.Sprintf("unknown hash algorithm: %d", a))
	}
}

// Size returns the digest width, in bytes, produced by the algorithm.
func (a Algorithm) Size() int {
	switch a {
	case MD5:
		return 16
	case SHA3_256:
		return 32
	default:
		panic(fmt.Sprintf("unknown hash algorithm: %d", a))
	}
}

// String renders the algorithm name for logging and CLI help text.
func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "md5"
	case SHA3_256:
		return "sha3-256"
	default:
		return "unknown"
	}
}

// FromParanoid selects SHA3_256 when paranoid is true, MD5 otherwise,
// matching the --paranoid flag's documented effect.
func FromParanoid(paranoid bool) Algorithm {
	if paranoid {
		return SHA3_256
	}
	return MD5
}
