package interval_test

import (
	"testing"

	"github.com/katalvlaran/relnum/interval"
	"github.com/katalvlaran/relnum/numeric"
)

func TestLatticeLaws(t *testing.T) {
	a := interval.Range(numeric.RatFromInt64(0), numeric.RatFromInt64(10))
	b := interval.Range(numeric.RatFromInt64(5), numeric.RatFromInt64(20))

	j := interval.Join(a, b)
	if !interval.Leq(a, j) || !interval.Leq(b, j) {
		t.Fatalf("join %v must be ⊒ both operands", j)
	}
	m := interval.Meet(a, b)
	if !interval.Leq(m, a) || !interval.Leq(m, b) {
		t.Fatalf("meet %v must be ⊑ both operands", m)
	}
	if !interval.Leq(interval.Bottom(), a) {
		t.Fatal("bottom must be ⊑ everything")
	}
	if !interval.Leq(a, interval.Top()) {
		t.Fatal("everything must be ⊑ top")
	}
}

func TestWideningTerminatesOnGrowingSequence(t *testing.T) {
	y := interval.FromInt64(0)
	x := interval.FromInt64(0)
	for i := int64(1); i <= 100; i++ {
		x = interval.Range(numeric.RatFromInt64(0), numeric.RatFromInt64(i))
		next := interval.Widen(y, x)
		if next == y {
			// stabilised before consuming the whole sequence; still sound
			break
		}
		y = next
	}
	if !y.Hi.IsFinite() && !interval.Leq(x, y) {
		t.Fatalf("widened result %v must still contain final iterate %v", y, x)
	}
}

func TestTrimSingletonAtEndpoint(t *testing.T) {
	iv := interval.Range(numeric.RatFromInt64(0), numeric.RatFromInt64(9))
	trimmed := interval.Trim(iv, numeric.RatFromInt64(9))
	if trimmed.Contains(numeric.RatFromInt64(9)) {
		t.Fatal("Trim at upper endpoint must exclude it")
	}
	if !trimmed.Contains(numeric.RatFromInt64(8)) {
		t.Fatal("Trim at upper endpoint must keep interior points")
	}
}
