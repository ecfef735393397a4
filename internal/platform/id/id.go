package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// TimeOrdered mints UUIDv7 values: a millisecond timestamp followed by random bits.
type TimeOrdered struct{}

func (TimeOrdered) New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return RandomHex{}.New()
	}
	return v.String()
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
