package kinetics

import (
	"fmt"
	"sort"

	"github.com/san-kum/rxnrate/internal/symbolic"
)

// Pair is an unordered pair of distinct species, stored with A < B.
type Pair struct {
	A string
	B string
}

func MakePair(x, y string) Pair {
	if y < x {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

func (p Pair) String() string { return p.A + "*" + p.B }

// IntegralTable maps a species pair to the integral of k*X_A*X_B over [0, t].
type IntegralTable map[Pair]symbolic.Expr

// Pairs returns the keys in lexical order.
func (t IntegralTable) Pairs() []Pair {
	pairs := make([]Pair, 0, len(t))
	for p := range t {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

// PairwiseIntegrals integrates k*X_i*X_j from 0 to t for every unordered
// pair of reactant or product species. Spectators do not take part, so a
// reaction with n such species yields n*(n-1)/2 entries.
func PairwiseIntegrals(sys *System, sols map[string]symbolic.Expr, opts Options) (IntegralTable, error) {
	opts = opts.withDefaults()
	active := sys.Active()
	table := make(IntegralTable)
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			pair := Pair{A: active[i], B: active[j]}
			integrand := symbolic.MulOf(sys.K, sols[pair.A], sols[pair.B])
			v, err := symbolic.IntegrateDefinite(integrand, sys.TimeVar)
			if err != nil {
				return nil, &SolveError{Pair: pair, Stage: "integrate", Wrapped: fmt.Errorf("%w: %w", ErrUnintegrable, err)}
			}
			table[pair] = v
			opts.Logger.Debug("integrated pair", "pair", pair.String(), "integral", v.String())
		}
	}
	return table, nil
}
