package lower

// RestoringDivider emits the combinational unrolling of the restoring
// division algorithm: for
// an unsigned w-bit dividend and divisor, w iterations each shift the
// running remainder left, test it against the divisor, and conditionally
// subtract. A zero divisor yields an all-ones quotient and a remainder
// equal to the dividend, per the documented (non-fault) behavior.
func (b *Builder) RestoringDivider(dividend, divisor []int) (quotient, remainder []int) {
	w := len(dividend)
	quotientBits := make([]int, w)

	zero := make([]int, w)
	for i := range zero {
		zero[i] = b.constBit(0)
	}
	remBits := zero
	divisorIsZero := b.equalBits(divisor, zero)

	for i := w - 1; i >= 0; i-- {
		remBits = b.shiftLeftOneWithFeed(remBits, dividend[i])

		geq := b.notBit(b.lessThan(remBits, divisor))
		diff, _ := b.subBits(remBits, divisor)
		remBits = b.muxWords(geq, diff, remBits)
		quotientBits[i] = geq
	}

	allOnes := make([]int, w)
	for i := range allOnes {
		allOnes[i] = b.constBit(1)
	}
	quotient = b.muxWords(divisorIsZero, allOnes, quotientBits)
	remainder = b.muxWords(divisorIsZero, dividend, remBits)
	return quotient, remainder
}

// shiftLeftOneWithFeed shifts x left by one bit, feeding feed into bit 0
// (the newly vacated LSB) and dropping the top bit, matching the algorithm's
// "shift R left by 1, set R[0]=D[i]" step.
func (b *Builder) shiftLeftOneWithFeed(x []int, feed int) []int {
	out := make([]int, len(x))
	out[0] = feed
	copy(out[1:], x[:len(x)-1])
	return out
}
