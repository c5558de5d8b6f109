package lower

import (
	"github.com/sarchlab/hdlsim/behavior/expr"
	"github.com/sarchlab/hdlsim/errs"
	"github.com/sarchlab/hdlsim/netlist"
)

// addBits emits a ripple-carry adder: carries propagate LSB->MSB per the
// ordering rule for bit-identical reproducibility. carryIn lets subtract
// reuse the same chain with carryIn=1 and y inverted (two's complement).
func (b *Builder) addBits(x, y []int, carryIn int) (sum []int, carryOut int) {
	n := len(x)
	sum = make([]int, n)
	carry := carryIn
	for i := 0; i < n; i++ {
		axb := b.binBit(netlist.XOR, x[i], y[i])
		sum[i] = b.binBit(netlist.XOR, axb, carry)
		t1 := b.binBit(netlist.AND, axb, carry)
		t2 := b.binBit(netlist.AND, x[i], y[i])
		carry = b.binBit(netlist.OR, t1, t2)
	}
	return sum, carry
}

func (b *Builder) invertBits(x []int) []int {
	out := make([]int, len(x))
	for i, bit := range x {
		out[i] = b.notBit(bit)
	}
	return out
}

// subBits computes x - y via two's-complement addition: x + ^y + 1.
// borrowOut is 1 iff x < y (unsigned): the final carry of that addition is
// 0 exactly when a borrow occurred.
func (b *Builder) subBits(x, y []int) (diff []int, borrowOut int) {
	sum, carry := b.addBits(x, b.invertBits(y), b.constBit(1))
	return sum, b.notBit(carry)
}

// Multiplier emits an array multiplier: each bit of y gates a shifted copy
// of x (the AND-ed partial products), and the partial products are summed
// by a ripple tree, pairing rows 0-1, 2-3, ... at each level. The result is
// truncated to len(x) bits.
func (b *Builder) Multiplier(x, y []int) []int {
	w := len(x)
	rows := make([][]int, len(y))
	for j, yBit := range y {
		row := make([]int, w)
		for i := 0; i < w; i++ {
			if i < j {
				row[i] = b.constBit(0)
			} else {
				row[i] = b.binBit(netlist.AND, x[i-j], yBit)
			}
		}
		rows[j] = row
	}

	for len(rows) > 1 {
		next := make([][]int, 0, (len(rows)+1)/2)
		for i := 0; i+1 < len(rows); i += 2 {
			sum, _ := b.addBits(rows[i], rows[i+1], b.constBit(0))
			next = append(next, sum)
		}
		if len(rows)%2 == 1 {
			next = append(next, rows[len(rows)-1])
		}
		rows = next
	}
	if len(rows) == 0 {
		return b.constBits(0, w)
	}
	return rows[0]
}

// equalBits builds a single bit that is 1 iff every corresponding pair of
// bits in x and y matches: XNOR each pair, AND-reduce the results.
func (b *Builder) equalBits(x, y []int) int {
	if len(x) == 0 {
		return b.constBit(1)
	}
	xnors := make([]int, len(x))
	for i := range x {
		xnors[i] = b.notBit(b.binBit(netlist.XOR, x[i], y[i]))
	}
	return b.reduceTree(xnors, netlist.AND)
}

// lessThan reports x < y (unsigned), reusing the subtractor's borrow flag.
func (b *Builder) lessThan(x, y []int) int {
	_, borrow := b.subBits(x, y)
	return borrow
}

// reduceTree folds bits down to a single net with t, pairing elements
// 0-1, 2-3, ... (left-leaning) at each level, keeping emission order
// bit-identical across runs.
func (b *Builder) reduceTree(bits []int, t netlist.GateType) int {
	if len(bits) == 0 {
		return b.constBit(0)
	}
	level := append([]int(nil), bits...)
	for len(level) > 1 {
		next := make([]int, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, b.binBit(t, level[i], level[i+1]))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	return level[0]
}

func (b *Builder) bitwise(x, y []int, t netlist.GateType) []int {
	out := make([]int, len(x))
	for i := range x {
		out[i] = b.binBit(t, x[i], y[i])
	}
	return out
}

type binNode interface {
	A() expr.Expr
	B() expr.Expr
	Op() expr.BinOp
}

func (b *Builder) lowerBin(e expr.Expr, env Env) ([]int, error) {
	n := e.(binNode)
	x, err := b.Lower(n.A(), env)
	if err != nil {
		return nil, err
	}
	y, err := b.Lower(n.B(), env)
	if err != nil {
		return nil, err
	}

	switch n.Op() {
	case expr.OpAnd:
		return b.bitwise(x, y, netlist.AND), nil
	case expr.OpOr:
		return b.bitwise(x, y, netlist.OR), nil
	case expr.OpXor:
		return b.bitwise(x, y, netlist.XOR), nil
	case expr.OpAdd:
		sum, _ := b.addBits(x, y, b.constBit(0))
		return truncateBits(sum, e.Width()), nil
	case expr.OpSub:
		diff, _ := b.subBits(x, y)
		return truncateBits(diff, e.Width()), nil
	case expr.OpShl:
		return b.barrelShift(x, y, shiftLeft, false), nil
	case expr.OpShr:
		return b.barrelShift(x, y, shiftRight, false), nil
	case expr.OpSar:
		return b.barrelShift(x, y, shiftRight, true), nil
	case expr.OpEq:
		return []int{b.equalBits(x, y)}, nil
	case expr.OpNe:
		return []int{b.notBit(b.equalBits(x, y))}, nil
	case expr.OpLt:
		return []int{b.lessThan(x, y)}, nil
	case expr.OpLe:
		return []int{b.notBit(b.lessThan(y, x))}, nil
	case expr.OpGt:
		return []int{b.lessThan(y, x)}, nil
	case expr.OpGe:
		return []int{b.notBit(b.lessThan(x, y))}, nil
	default:
		return nil, errs.AtPath(errs.UnsupportedPrimitive, "", "lowering: unknown binary op %d", n.Op())
	}
}

func truncateBits(bits []int, width int) []int {
	if len(bits) <= width {
		return bits
	}
	return bits[:width]
}
