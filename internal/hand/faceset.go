package hand

import "fmt"

// FaceSet is a set of face values, one bit per face.
type FaceSet uint8

// DefaultRed holds the faces drawn with red pips.
var DefaultRed = NewFaceSet(1, 4)

func NewFaceSet(faces ...int) FaceSet {
	var s FaceSet
	for _, f := range faces {
		if f >= 1 && f <= 6 {
			s |= 1 << f
		}
	}
	return s
}

// ParseFaceSet is NewFaceSet that rejects values outside 1..6.
func ParseFaceSet(faces []int) (FaceSet, error) {
	for _, f := range faces {
		if f < 1 || f > 6 {
			return 0, fmt.Errorf("face %d is outside 1..6", f)
		}
	}
	return NewFaceSet(faces...), nil
}

func (s FaceSet) Contains(face int) bool {
	return face >= 1 && face <= 6 && s&(1<<face) != 0
}

// All reports whether every face is in the set.
func (s FaceSet) All(faces Faces) bool {
	for _, f := range faces {
		if !s.Contains(f) {
			return false
		}
	}
	return true
}

func (s FaceSet) Faces() []int {
	var out []int
	for f := 1; f <= 6; f++ {
		if s.Contains(f) {
			out = append(out, f)
		}
	}
	return out
}

// IsAllRed is the all-red side bet predicate under the default pip colours.
func IsAllRed(faces Faces) bool {
	return DefaultRed.All(faces)
}
