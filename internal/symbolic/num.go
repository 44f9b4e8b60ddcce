package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Num is an exact rational number.
type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NFloat converts f through its shortest decimal form, so 0.1 becomes 1/10
// rather than the nearest binary fraction. Non-finite values panic.
func NFloat(f float64) *Num {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("symbolic: non-finite number %v", f))
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		r = new(big.Rat).SetFloat64(f)
	}
	return &Num{val: r}
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) children() []Expr      { return nil }
func (n *Num) rebuild([]Expr) Expr   { return n }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(big.NewRat(-1, 1)) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Sign() int             { return n.val.Sign() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }

// smallInt reports the value as an int when it is an integer of modest size.
func (n *Num) smallInt() (int, bool) {
	if !n.val.IsInt() || !n.val.Num().IsInt64() {
		return 0, false
	}
	v := n.val.Num().Int64()
	if v > 64 || v < -64 {
		return 0, false
	}
	return int(v), true
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	if digits, ok := decimalDigits(n.val.Denom()); ok {
		return n.val.FloatString(digits)
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	if digits, ok := decimalDigits(n.val.Denom()); ok {
		return n.val.FloatString(digits)
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

// decimalDigits returns how many fractional digits print d's reciprocal
// exactly, or false when the expansion does not terminate quickly.
func decimalDigits(d *big.Int) (int, bool) {
	x := new(big.Int).Set(d)
	zero := big.NewInt(0)
	two, five := big.NewInt(2), big.NewInt(5)
	rem := new(big.Int)
	var c2, c5 int
	for rem.Mod(x, two).Cmp(zero) == 0 {
		x.Quo(x, two)
		c2++
	}
	for rem.Mod(x, five).Cmp(zero) == 0 {
		x.Quo(x, five)
		c5++
	}
	digits := max(c2, c5)
	if x.Cmp(big.NewInt(1)) != 0 || digits > 12 {
		return 0, false
	}
	return digits, true
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

func numPowInt(b *Num, e int) *Num {
	result := N(1)
	neg := e < 0
	if neg {
		e = -e
	}
	for i := 0; i < e; i++ {
		result = numMul(result, b)
	}
	if neg {
		return numRecip(result)
	}
	return result
}

func factorial(n int) *Num {
	result := N(1)
	for i := 2; i <= n; i++ {
		result = numMul(result, N(int64(i)))
	}
	return result
}
