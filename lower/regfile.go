package lower

import "github.com/sarchlab/hdlsim/netlist"

// RegisterFile emits numWords independent word-wide registers sharing one
// write-address decoder: writeAddr is decoded once into one
// one-hot enable per word, each ANDed with writeEnable to gate that word's
// register bank. Returns each word's q nets, LSB-first within a word.
func (b *Builder) RegisterFile(numWords, wordWidth int, writeAddr []int, writeEnable int, writeData []int) [][]int {
	decoded := b.decode(writeAddr, numWords)

	words := make([][]int, numWords)
	for wIdx := 0; wIdx < numWords; wIdx++ {
		wordEnable := b.binBit(netlist.AND, decoded[wIdx], writeEnable)
		words[wIdx] = b.AddRegister(writeData, RegisterSpec{Enable: &wordEnable})
	}
	return words
}

// decode turns a binary address into n one-hot select bits (bit i set iff
// addr == i), by equality-comparing addr against each constant index.
func (b *Builder) decode(addr []int, n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		want := b.constBits(uint64(i), len(addr))
		out[i] = b.equalBits(addr, want)
	}
	return out
}

// ReadPort selects one word from words by readAddr, via a decode + mux
// tree identical in shape to a RegisterFile write path's decoder.
func (b *Builder) ReadPort(words [][]int, readAddr []int) []int {
	if len(words) == 0 {
		return nil
	}
	sel := b.decode(readAddr, len(words))
	acc := words[0]
	for i := 1; i < len(words); i++ {
		acc = b.muxWords(sel[i], words[i], acc)
	}
	return acc
}
