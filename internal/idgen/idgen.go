// Package idgen produces record identifiers.
//
// Identifiers are UUIDv7 values rendered as 32 lowercase hex characters
// without separators. The leading 48 bits are a millisecond timestamp so ids
// sort by creation time; the remainder is random.
package idgen

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// New returns a fresh identifier. It panics only if the OS random source is
// unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("idgen: generate uuid: " + err.Error())
	}
	return hex.EncodeToString(id[:])
}

// Valid reports whether id has the shape produced by New. Records written by
// other tools may carry arbitrary ids, so callers only use this for
// diagnostics.
func Valid(id string) bool {
	if len(id) != 32 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
