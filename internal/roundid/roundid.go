// Package roundid generates sortable identifiers for recorded rounds: a
// UUIDv7 rendered as 26 characters of Crockford base32.
package roundid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/coder/quartz"
)

// Length is the number of characters in an id.
const Length = 26

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Source supplies random bits. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Uint64() uint64
}

// Generator issues ids stamped with the clock's current time.
type Generator struct {
	clock quartz.Clock
	src   Source
}

// NewGenerator returns a generator. A nil src draws from crypto/rand.
func NewGenerator(clock quartz.Clock, src Source) *Generator {
	return &Generator{clock: clock, src: src}
}

// New returns a fresh id. Ids from later milliseconds sort after earlier ones.
func (g *Generator) New() string {
	var b [16]byte
	ms := uint64(g.clock.Now().UnixMilli())
	binary.BigEndian.PutUint64(b[0:8], ms<<16)

	if g.src != nil {
		binary.BigEndian.PutUint16(b[6:8], uint16(g.src.Uint64()))
		binary.BigEndian.PutUint64(b[8:16], g.src.Uint64())
	} else if _, err := rand.Read(b[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	b[6] = (b[6] & 0x0f) | 0x70 // version 7
	b[8] = (b[8] & 0x3f) | 0x80 // RFC 4122 variant
	return encode(b)
}

// encode writes the 128 bits as a 130-bit base32 number, so the first
// character carries 3 bits and is always 0-7.
func encode(b [16]byte) string {
	hi := binary.BigEndian.Uint64(b[0:8])
	lo := binary.BigEndian.Uint64(b[8:16])
	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

func decode(id string) ([16]byte, error) {
	var b [16]byte
	if err := Validate(id); err != nil {
		return b, err
	}
	var hi, lo uint64
	for i := 0; i < Length; i++ {
		v := uint64(strings.IndexByte(alphabet, id[i]))
		hi = hi<<5 | lo>>59
		lo = lo<<5 | v
	}
	binary.BigEndian.PutUint64(b[0:8], hi)
	binary.BigEndian.PutUint64(b[8:16], lo)
	return b, nil
}

// Time returns the millisecond timestamp embedded in id.
func Time(id string) (time.Time, error) {
	b, err := decode(id)
	if err != nil {
		return time.Time{}, err
	}
	ms := binary.BigEndian.Uint64(b[0:8]) >> 16
	return time.UnixMilli(int64(ms)), nil
}

// Validate checks the length and alphabet of id.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
