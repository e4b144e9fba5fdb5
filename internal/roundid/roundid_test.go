package roundid

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/dicepoker/internal/randutil"
)

func TestNewIsValidAndCarriesTimestamp(t *testing.T) {
	clock := quartz.NewMock(t)
	g := NewGenerator(clock, nil)

	id := g.New()
	require.NoError(t, Validate(id))

	ts, err := Time(id)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().UnixMilli(), ts.UnixMilli())
}

func TestNewSortsByTime(t *testing.T) {
	clock := quartz.NewMock(t)
	g := NewGenerator(clock, randutil.New(1))

	var prev string
	for range 20 {
		id := g.New()
		if prev != "" {
			assert.Less(t, prev, id)
		}
		prev = id
		clock.Advance(time.Millisecond)
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	clock := quartz.NewMock(t)
	a := NewGenerator(clock, randutil.New(7)).New()
	b := NewGenerator(clock, randutil.New(7)).New()
	c := NewGenerator(clock, randutil.New(8)).New()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestVersionAndVariantBits(t *testing.T) {
	g := NewGenerator(quartz.NewMock(t), randutil.New(3))

	b, err := decode(g.New())
	require.NoError(t, err)
	assert.Equal(t, byte(0x70), b[6]&0xf0)
	assert.Equal(t, byte(0x80), b[8]&0xc0)
}

func TestEncodeRoundTrip(t *testing.T) {
	var b [16]byte
	for i := range b {
		b[i] = byte(0xff - i*7)
	}
	id := encode(b)
	require.Len(t, id, Length)

	got, err := decode(id)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	assert.Equal(t, "7zzzzzzzzzzzzzzzzzzzzzzzzz", encode([16]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"excluded letter", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
