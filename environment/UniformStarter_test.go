package environment

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
)

func TestUniformStarterWithinBounds(t *testing.T) {
	bounds := []r1.Interval{
		{Min: -1.0, Max: 1.0},
		{Min: 3.0, Max: 4.0},
	}
	starter := NewUniformStarter(bounds, 1823)

	for i := 0; i < 100; i++ {
		state := starter.Start()
		if state.Len() != len(bounds) {
			t.Fatalf("got state length %v, want %v", state.Len(),
				len(bounds))
		}

		for j, bound := range bounds {
			if v := state.AtVec(j); v < bound.Min || v > bound.Max {
				t.Fatalf("sample %v: feature %v = %v outside [%v, %v]",
					i, j, v, bound.Min, bound.Max)
			}
		}
	}
}

func TestUniformStarterZeroWidth(t *testing.T) {
	// Zero-width intervals pin features to exact values
	starter := NewUniformStarter([]r1.Interval{
		{Min: 2.5, Max: 2.5},
		{Min: 0.0, Max: 0.0},
	}, 42)

	for i := 0; i < 10; i++ {
		state := starter.Start()
		if state.AtVec(0) != 2.5 || state.AtVec(1) != 0.0 {
			t.Fatalf("sample %v: got state %v, want (2.5, 0)", i,
				state.RawVector().Data)
		}
	}
}
