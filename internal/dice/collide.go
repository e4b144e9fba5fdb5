package dice

// Resolve separates overlapping dice and exchanges impulse between pairs that
// are closing. Every die is treated as a circle of the given radius and equal
// mass. Pairs are visited in increasing index order so the result only
// depends on the input.
func Resolve(dice []*Die, radius, bounce float64) {
	minDist := 2 * radius
	for i := 0; i < len(dice); i++ {
		for j := i + 1; j < len(dice); j++ {
			a, b := dice[i], dice[j]
			delta := b.Pos.Minus(a.Pos)
			dist := delta.Magnitude()
			if dist == 0 || dist >= minDist {
				continue
			}

			n := delta.Times(1 / dist)
			correction := (minDist - dist) / 2
			a.Pos = a.Pos.Minus(n.Times(correction))
			b.Pos = b.Pos.Plus(n.Times(correction))

			// Velocity of b relative to a along a->b; negative means closing.
			relVn := b.Vel.Minus(a.Vel).Dot(n)
			if relVn < 0 {
				adjust := (1 + bounce) / 2 * relVn
				a.Vel = a.Vel.Plus(n.Times(adjust))
				b.Vel = b.Vel.Minus(n.Times(adjust))
			}
		}
	}
}
