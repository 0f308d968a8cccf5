package variable_test

import (
	"testing"

	"github.com/katalvlaran/relnum/variable"
)

func TestFactory_FreshIsInjective(t *testing.T) {
	f := variable.NewFactory()
	a := f.Fresh("a", variable.Int(32))
	b := f.Fresh("b", variable.Int(32))

	if a == b {
		t.Fatalf("Fresh returned the same identity twice")
	}
	if a.ID() == b.ID() {
		t.Fatalf("Fresh IDs collided: %d == %d", a.ID(), b.ID())
	}
}

func TestKind_String(t *testing.T) {
	cases := []struct {
		k    variable.Kind
		want string
	}{
		{variable.Int(64), "int64"},
		{variable.Bool(), "bool"},
		{variable.Real(), "real"},
		{variable.Ptr(), "ptr"},
		{variable.ArrayOf(variable.Int(8)), "array<int8>"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("Kind.String() = %q, want %q", got, c.want)
		}
	}
}
