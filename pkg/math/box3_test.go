package math

import (
	"math"
	"testing"
)

func TestEmptyBox3(t *testing.T) {
	b := EmptyBox3()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox3 should be empty")
	}
	if b.Size() != (Vec3{}) {
		t.Errorf("empty box size = %v, want zero", b.Size())
	}

	b = b.ExpandByPoint(Vec3{1, 2, 3})
	if b.IsEmpty() {
		t.Fatal("box with one point should not be empty")
	}
	if b.Min != (Vec3{1, 2, 3}) || b.Max != (Vec3{1, 2, 3}) {
		t.Errorf("single point box = %+v", b)
	}
}

func TestBox3Union(t *testing.T) {
	a := Box3{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}
	b := Box3{Min: Vec3{-1, 0.5, 0}, Max: Vec3{0.5, 3, 2}}

	u := a.Union(b)
	if u.Min != (Vec3{-1, 0, 0}) || u.Max != (Vec3{1, 3, 2}) {
		t.Errorf("Union = %+v", u)
	}
	if got := a.Union(EmptyBox3()); got != a {
		t.Errorf("union with empty = %+v, want %+v", got, a)
	}
	if got := EmptyBox3().Union(a); got != a {
		t.Errorf("empty union a = %+v, want %+v", got, a)
	}
}

func TestBox3ContainsPoint(t *testing.T) {
	b := Box3{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}

	tests := []struct {
		name string
		p    Vec3
		want bool
	}{
		{"center", Vec3{0, 0, 0}, true},
		{"on face", Vec3{1, 0, 0}, true},
		{"outside x", Vec3{1.01, 0, 0}, false},
		{"outside z", Vec3{0, 0, -2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ContainsPoint(tt.p); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBox3CenterSize(t *testing.T) {
	b := Box3{Min: Vec3{2, 4, 6}, Max: Vec3{4, 8, 12}}
	if c := b.Center(); c != (Vec3{3, 6, 9}) {
		t.Errorf("Center = %v", c)
	}
	if s := b.Size(); s != (Vec3{2, 4, 6}) {
		t.Errorf("Size = %v", s)
	}
}

func TestBox3Transform(t *testing.T) {
	b := Box3{Min: Vec3{-1, -2, -3}, Max: Vec3{1, 2, 3}}

	moved := b.Transform(Translate(10, 0, 0))
	if moved.Min != (Vec3{9, -2, -3}) || moved.Max != (Vec3{11, 2, 3}) {
		t.Errorf("translated box = %+v", moved)
	}

	// 90 degrees about Y swaps the X and Z extents.
	rotated := b.Transform(RotateY(float32(math.Pi / 2)))
	size := rotated.Size()
	if abs(size.X-6) > 0.001 || abs(size.Z-2) > 0.001 || abs(size.Y-4) > 0.001 {
		t.Errorf("rotated size = %v, want (6, 4, 2)", size)
	}
}
