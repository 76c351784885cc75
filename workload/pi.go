package workload

import (
	"context"
	"math"
	"math/big"

	"golang.org/x/sync/errgroup"
)

// guardDigits absorbs the truncation error accumulated by the series terms.
const guardDigits = 10

// ComputePi returns Pi with the given number of decimals, as "3.1415...".
// It uses Machin's formula, pi = 16*arccot(5) - 4*arccot(239), evaluating both
// series concurrently. progress receives whole percentages of the slower series.
func ComputePi(ctx context.Context, digits int64, progress func(pct int)) (string, error) {
	unity := new(big.Int).Exp(big.NewInt(10), big.NewInt(digits+guardDigits), nil)

	var a5, a239 *big.Int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a5, err = arccot(gctx, 5, unity, digits+guardDigits, progress)
		return err
	})
	g.Go(func() error {
		var err error
		a239, err = arccot(gctx, 239, unity, digits+guardDigits, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	pi := new(big.Int).Mul(a5, big.NewInt(16))
	pi.Sub(pi, new(big.Int).Mul(a239, big.NewInt(4)))
	pi.Quo(pi, new(big.Int).Exp(big.NewInt(10), big.NewInt(guardDigits), nil))

	s := pi.String()
	if digits == 0 {
		return s, nil
	}
	return s[:1] + "." + s[1:], nil
}

// arccot computes unity*arccot(x) with the Taylor series of arctan(1/x).
func arccot(ctx context.Context, x int64, unity *big.Int, precision int64, progress func(int)) (*big.Int, error) {
	bx := big.NewInt(x)
	x2 := big.NewInt(x * x)
	power := new(big.Int).Quo(unity, bx)
	sum := new(big.Int).Set(power)
	term := new(big.Int)

	// each term shrinks by x^2, so about precision/log10(x^2) terms are needed
	total := int64(float64(precision)/(2*math.Log10(float64(x)))) + 1
	lastPct := -1

	n := int64(3)
	for i := int64(1); ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		power.Quo(power, x2)
		term.Quo(power, big.NewInt(n))
		if term.Sign() == 0 {
			break
		}
		if i%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		n += 2

		if progress != nil {
			if pct := int(min(99, i*100/total)); pct != lastPct {
				lastPct = pct
				progress(pct)
			}
		}
	}
	if progress != nil {
		progress(100)
	}
	return sum, nil
}

// Truncate keeps at most limit decimals of a "3.1415..." string.
func Truncate(pi string, limit int) string {
	if len(pi) <= limit+2 {
		return pi
	}
	return pi[:limit+2]
}
