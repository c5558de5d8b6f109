package lower

import "github.com/sarchlab/hdlsim/netlist"

// Popcount emits a log-depth population-count reduction tree:
// a balanced adder tree that sums the bits of x, returning a result wide
// enough to hold len(x).
func (b *Builder) Popcount(x []int) []int {
	if len(x) == 0 {
		return []int{b.constBit(0)}
	}
	resultWidth := bitLength(len(x))
	groups := make([][]int, len(x))
	for i, bit := range x {
		groups[i] = zeroExtendBits(b, []int{bit}, resultWidth)
	}
	for len(groups) > 1 {
		next := make([][]int, 0, (len(groups)+1)/2)
		for i := 0; i+1 < len(groups); i += 2 {
			sum, _ := b.addBits(groups[i], groups[i+1], b.constBit(0))
			next = append(next, sum)
		}
		if len(groups)%2 == 1 {
			next = append(next, groups[len(groups)-1])
		}
		groups = next
	}
	return groups[0]
}

// LeadingZeroCount emits a leading-zero counter over x as a linear chain of
// conditional increments (MSB first search): the bitLength(len(x))-bit count
// of zero bits before the first 1, or len(x) if x is entirely zero.
func (b *Builder) LeadingZeroCount(x []int) []int {
	resultWidth := bitLength(len(x))
	// found tracks, from the MSB down, whether a 1 has been seen yet; count
	// increments only while found is still 0.
	found := b.constBit(0)
	count := make([]int, resultWidth)
	for i := range count {
		count[i] = b.constBit(0)
	}
	one := b.constBits(1, resultWidth)
	for i := len(x) - 1; i >= 0; i-- {
		bitIsOne := x[i]
		stillSearching := b.notBit(found)
		increment := b.binBit(netlist.AND, stillSearching, b.notBit(bitIsOne))
		sum, _ := b.addBits(count, maskWords(b, one, increment), b.constBit(0))
		count = sum
		found = b.binBit(netlist.OR, found, bitIsOne)
	}
	return count
}

// maskWords ANDs every bit of words with the single select bit sel,
// broadcasting it (zero-or-passthrough), used to conditionally add one.
func maskWords(b *Builder, words []int, sel int) []int {
	out := make([]int, len(words))
	for i, w := range words {
		out[i] = b.binBit(netlist.AND, w, sel)
	}
	return out
}

// PriorityEncoder emits the index (LSB-first binary, width = bitLength(N))
// of the highest-priority (lowest-index) asserted bit of x, and a separate
// "any" bit reporting whether any input was asserted at all.
func (b *Builder) PriorityEncoder(x []int) (index []int, any int) {
	resultWidth := bitLength(len(x))
	acc := make([]int, resultWidth)
	for i := range acc {
		acc[i] = b.constBit(0)
	}
	found := b.constBit(0)
	for i := 0; i < len(x); i++ {
		take := b.binBit(netlist.AND, x[i], b.notBit(found))
		idx := b.constBits(uint64(i), resultWidth)
		acc = b.muxWords(take, idx, acc)
		found = b.binBit(netlist.OR, found, x[i])
	}
	return acc, found
}

func zeroExtendBits(b *Builder, x []int, width int) []int {
	out := make([]int, width)
	copy(out, x)
	for i := len(x); i < width; i++ {
		out[i] = b.constBit(0)
	}
	return out
}

// bitLength returns the number of bits needed to represent the integer n
// (0 and 1 both need 1 bit).
func bitLength(n int) int {
	w := 1
	for (1 << uint(w)) <= n {
		w++
	}
	return w
}
