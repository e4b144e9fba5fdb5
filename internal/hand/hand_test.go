package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateDefaultPayouts(t *testing.T) {
	e := NewEvaluator(DefaultPayouts())
	tests := []struct {
		name  string
		faces Faces
		want  Hand
	}{
		{"five of a kind", Faces{1, 1, 1, 1, 1}, Hand{FiveKind, 10}},
		{"four of a kind", Faces{6, 2, 6, 6, 6}, Hand{FourKind, 7}},
		{"full house", Faces{2, 2, 2, 3, 3}, Hand{FullHouse, 5}},
		{"full house unordered", Faces{5, 1, 5, 1, 5}, Hand{FullHouse, 5}},
		{"low straight", Faces{1, 2, 3, 4, 5}, Hand{Straight, 3}},
		{"high straight", Faces{2, 3, 4, 5, 6}, Hand{Straight, 3}},
		{"shuffled straight", Faces{5, 3, 6, 2, 4}, Hand{Straight, 3}},
		{"three of a kind", Faces{1, 1, 1, 2, 3}, Hand{ThreeKind, 1}},
		{"gap is not a straight", Faces{1, 2, 3, 4, 6}, Hand{None, 0}},
		{"two pair", Faces{2, 2, 5, 5, 1}, Hand{None, 0}},
		{"one pair", Faces{4, 4, 1, 2, 6}, Hand{None, 0}},
		{"out of range face", Faces{0, 1, 1, 1, 1}, Hand{None, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Evaluate(tt.faces))
		})
	}
}

func TestEvaluatorUsesConfiguredTable(t *testing.T) {
	payouts := DefaultPayouts()
	payouts[Straight] = 4
	e := NewEvaluator(payouts)

	payouts[Straight] = 99 // the evaluator keeps its own copy
	assert.Equal(t, Hand{Straight, 4}, e.Evaluate(Faces{1, 2, 3, 4, 5}))

	sparse := NewEvaluator(Payouts{FiveKind: 50})
	assert.Equal(t, Hand{ThreeKind, 0}, sparse.Evaluate(Faces{3, 3, 3, 1, 2}))
	assert.False(t, sparse.Evaluate(Faces{3, 3, 3, 1, 2}).Wins())
}

func TestClassifyCoversEveryRoll(t *testing.T) {
	counts := map[Category]int{}
	var f Faces
	var walk func(i int)
	walk = func(i int) {
		if i == Size {
			counts[Classify(f)]++
			return
		}
		for v := 1; v <= 6; v++ {
			f[i] = v
			walk(i + 1)
		}
	}
	walk(0)

	// Known counts over all 6^5 ordered rolls.
	assert.Equal(t, 6, counts[FiveKind])
	assert.Equal(t, 150, counts[FourKind])
	assert.Equal(t, 300, counts[FullHouse])
	assert.Equal(t, 240, counts[Straight])
	assert.Equal(t, 1200, counts[ThreeKind])
	assert.Equal(t, 7776-6-150-300-240-1200, counts[None])
}

func TestPayoutsValidate(t *testing.T) {
	require.NoError(t, DefaultPayouts().Validate())
	assert.Error(t, Payouts{"royal_flush": 100}.Validate())
	assert.Error(t, Payouts{FullHouse: -1}.Validate())
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "full house", FullHouse.Label())
	assert.Equal(t, "none", None.Label())
}

func TestFacesString(t *testing.T) {
	assert.Equal(t, "1 4 1 4 2", Faces{1, 4, 1, 4, 2}.String())
}

func TestIsAllRed(t *testing.T) {
	assert.True(t, IsAllRed(Faces{1, 4, 1, 4, 1}))
	assert.False(t, IsAllRed(Faces{1, 4, 1, 4, 2}))
	assert.True(t, IsAllRed(Faces{4, 4, 4, 4, 4}))
}

func TestFaceSet(t *testing.T) {
	s := NewFaceSet(2, 5, 9)
	assert.Equal(t, []int{2, 5}, s.Faces())
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(9))
	assert.False(t, s.Contains(0))

	_, err := ParseFaceSet([]int{1, 7})
	assert.Error(t, err)

	parsed, err := ParseFaceSet([]int{1, 4})
	require.NoError(t, err)
	assert.Equal(t, DefaultRed, parsed)
}
