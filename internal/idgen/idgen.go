// Package idgen provides short, URL-safe random ids backed by nanoid. They
// stand in for natural identifiers on records that lack one.
package idgen

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// SyntheticMarker is prepended to the random portion of a synthetic id so it
// never collides with a natural identifier of the same shape.
var SyntheticMarker = "_"

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

var fallbackSeq atomic.Uint64

// Generate returns a new random id with the given prefix.
func Generate(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// Synthetic returns prefix followed by SyntheticMarker and a random suffix.
// It never fails: if the random source is unavailable it falls back to a
// clock-and-counter suffix, which is still unique within the process.
func Synthetic(prefix string) string {
	id, err := Generate(prefix + SyntheticMarker)
	if err == nil {
		return id
	}
	n := fallbackSeq.Add(1)
	return prefix + SyntheticMarker + strconv.FormatInt(time.Now().UnixNano(), 36) + strconv.FormatUint(n, 36)
}
