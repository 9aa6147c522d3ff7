package dice

// RollDice rolls count dice with the given number of sides and returns the sum.
// A count or sides of zero or less yields zero, matching how scaling effects
// with zero potency deal no damage.
func RollDice(count, sides int, src Source) int {
	if count <= 0 || sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < count; i++ {
		total += src.Intn(sides) + 1
	}
	return total
}

// OneChanceIn reports true with probability 1/n.
//
// Precondition: n > 0.
func OneChanceIn(n int, src Source) bool {
	return src.Intn(n) == 0
}

// Range returns a uniform random int in [low, high].
//
// Precondition: low <= high.
func Range(low, high int, src Source) int {
	if low > high {
		panic("dice: Range called with low > high")
	}
	return low + src.Intn(high-low+1)
}

// DivRandRound divides num by den, rounding the remainder up with probability
// remainder/den. Over many calls the expected value is exactly num/den, which
// keeps fractional time costs fair between turns.
//
// Precondition: den > 0.
func DivRandRound(num, den int, src Source) int {
	q, rem := num/den, num%den
	if rem > 0 && src.Intn(den) < rem {
		return q + 1
	}
	return q
}

// DivRoundUp divides num by den, always rounding up.
//
// Precondition: den > 0.
func DivRoundUp(num, den int) int {
	return (num + den - 1) / den
}
