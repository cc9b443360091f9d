package math3d

import (
	"math"
	"testing"
)

func TestMatrix4Identity(t *testing.T) {
	m := Identity()
	v := V4(1, 2, 3, 1)
	if got := m.MulVector4(v); got != v {
		t.Errorf("Identity * v = %+v, want %+v", got, v)
	}
}

func TestMatrix4Translate(t *testing.T) {
	m := Translate(1, 2, 3)
	v := V4(0, 0, 0, 1)
	got := m.MulVector4(v)
	want := V4(1, 2, 3, 1)
	if got != want {
		t.Errorf("Translate * origin = %+v, want %+v", got, want)
	}
}

func TestMatrix4Mul(t *testing.T) {
	t1 := Translate(1, 0, 0)
	t2 := Translate(0, 1, 0)
	combined := t2.Mul(t1)

	v := V4(0, 0, 0, 1)
	got := combined.MulVector4(v)
	want := V4(1, 1, 0, 1)
	if got != want {
		t.Errorf("combined * origin = %+v, want %+v", got, want)
	}
}

func TestMatrix4ScreenSpace(t *testing.T) {
	const w, h = 800, 600
	m := ScreenSpace(w, h)

	left := m.MulVector4(V4(-1, 0, 0, 1))
	if !approxEqual(left.X, -0.5, 1e-4) {
		t.Errorf("ScreenSpace * (-1,0,0,1): x = %v, want -0.5", left.X)
	}

	right := m.MulVector4(V4(1, 0, 0, 1))
	if !approxEqual(right.X, w-0.5, 1e-4) {
		t.Errorf("ScreenSpace * (1,0,0,1): x = %v, want %v", right.X, w-0.5)
	}
}

func TestMatrix4InvertIdentity(t *testing.T) {
	inv, err := Identity().Invert()
	if err != nil {
		t.Fatalf("Invert(identity) returned error: %v", err)
	}
	if inv != Identity() {
		t.Errorf("Invert(identity) = %+v, want identity", inv)
	}
}

func TestMatrix4InvertRoundTrip(t *testing.T) {
	m := Translate(2, 3, 4).Mul(RotateY(0.7)).Mul(ScaleUniform(2))
	inv, err := m.Invert()
	if err != nil {
		t.Fatalf("Invert returned error: %v", err)
	}

	round := m.Mul(inv)
	id := Identity()
	for i := range round {
		if !approxEqual(round[i], id[i], 1e-3) {
			t.Fatalf("m * inv(m) = %+v, want identity", round)
		}
	}
}

func TestMatrix4InvertSingular(t *testing.T) {
	singular := ScaleXYZ(0, 1, 1)
	_, err := singular.Invert()
	if err == nil {
		t.Fatal("Invert(singular) expected an error, got nil")
	}
}

func TestMatrix4PerspectivePreservesW(t *testing.T) {
	p := Perspective(float32(math.Pi)/3, 1, 0.1, 100)
	v := p.MulVector4(V4(0, 0, -5, 1))
	if !approxEqual(v.W, 5, 1e-4) {
		t.Errorf("Perspective * (0,0,-5,1): w = %v, want 5", v.W)
	}
}
