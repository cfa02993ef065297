package render

import "testing"

func TestTransformApply(t *testing.T) {
	if x, y := Identity().Apply(3, 4); x != 3 || y != 4 {
		t.Errorf("Identity().Apply(3,4) = (%v,%v)", x, y)
	}
	if x, y := Translate(10, -2).Apply(3, 4); x != 13 || y != 2 {
		t.Errorf("Translate(10,-2).Apply(3,4) = (%v,%v)", x, y)
	}
	if x, y := Scale(2, 3).Apply(3, 4); x != 6 || y != 12 {
		t.Errorf("Scale(2,3).Apply(3,4) = (%v,%v)", x, y)
	}
}

func TestTransformMulOrder(t *testing.T) {
	// t.Mul(o) applies o first: scale, then translate
	tr := Translate(10, 0).Mul(Scale(2, 2))
	if x, y := tr.Apply(1, 1); x != 12 || y != 2 {
		t.Errorf("got (%v,%v), want (12,2)", x, y)
	}

	// the other composition translates first
	tr = Scale(2, 2).Mul(Translate(10, 0))
	if x, y := tr.Apply(1, 1); x != 22 || y != 2 {
		t.Errorf("got (%v,%v), want (22,2)", x, y)
	}
}

func TestTransformMulAssociative(t *testing.T) {
	a := Translate(3, 7)
	b := Scale(2, 0.5)
	c := Translate(-1, 4)

	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	for _, p := range [][2]float64{{0, 0}, {1, 1}, {-5, 13}} {
		lx, ly := left.Apply(p[0], p[1])
		rx, ry := right.Apply(p[0], p[1])
		if lx != rx || ly != ry {
			t.Errorf("composition differs at %v: (%v,%v) vs (%v,%v)", p, lx, ly, rx, ry)
		}
	}
}
