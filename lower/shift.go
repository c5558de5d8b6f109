package lower

// shiftDir is the direction a barrelShift moves bits.
type shiftDir int

const (
	shiftLeft shiftDir = iota
	shiftRight
)

// barrelShift emits a log-depth barrel-shift network: one
// MUX stage per bit of the shift amount, each stage conditionally shifting
// by 2^k. arithmetic selects sign-fill for a right shift (Sar); shiftLeft
// always zero-fills regardless of arithmetic.
func (b *Builder) barrelShift(x, amount []int, dir shiftDir, arithmetic bool) []int {
	width := len(x)
	cur := append([]int(nil), x...)

	fillBit := func() int {
		if arithmetic {
			return cur[width-1]
		}
		return b.constBit(0)
	}

	for k, selBit := range amount {
		shiftBy := 1 << uint(k)
		next := make([]int, width)
		for i := 0; i < width; i++ {
			var shifted int
			switch dir {
			case shiftLeft:
				if i-shiftBy >= 0 {
					shifted = cur[i-shiftBy]
				} else {
					shifted = b.constBit(0)
				}
			case shiftRight:
				if i+shiftBy < width {
					shifted = cur[i+shiftBy]
				} else {
					shifted = fillBit()
				}
			}
			next[i] = b.muxBit(selBit, shifted, cur[i])
		}
		cur = next
	}
	return cur
}
