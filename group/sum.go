package group

// SumPoints returns the sum of points. An empty input yields the identity.
func SumPoints(g Group, points []Point) Point {
	sum := g.NewPoint()
	for _, p := range points {
		sum = g.NewPoint().Add(sum, p)
	}
	return sum
}

// SumScalars returns the sum of scalars. An empty input yields zero.
func SumScalars(g Group, scalars []Scalar) Scalar {
	sum := g.NewScalar()
	for _, s := range scalars {
		sum = g.NewScalar().Add(sum, s)
	}
	return sum
}

// BaseMult returns s*G for the group generator G.
func BaseMult(g Group, s Scalar) Point {
	return g.NewPoint().ScalarMult(s, g.Generator())
}
