// Package ident derives stable equipment identifiers from descriptive text.
package ident

import "github.com/google/uuid"

// Size is the width of a derived identifier in bytes.
const Size = 16

// Fold XORs every input byte into slot p%Size. It is a checksum-style fold, not a
// hash: a single differing input byte changes exactly one output byte.
func Fold(b []byte) [Size]byte {
	var round [Size]byte
	for i, c := range b {
		round[i%Size] ^= c
	}
	return round
}

// Derive folds b and reinterprets the result as a UUID. Version and variant bits are
// left as folded, so the value is only a 16-byte key, not an RFC 4122 UUID.
func Derive(b []byte) uuid.UUID {
	return uuid.UUID(Fold(b))
}
