package texgen

import "testing"

func TestJulia(t *testing.T) {
	shape := DispatchShape{TilesX: 8, TilesY: 8} // 64x64 grid

	tests := []struct {
		name string
		inv  Invocation
		want Color
	}{
		{name: "origin", inv: Invocation{X: 0, Y: 0}, want: Color{R: 0, G: 0, B: 1, A: 1}},
		{name: "center", inv: Invocation{X: 32, Y: 32}, want: Color{R: 0.5, G: 0.5, B: 1, A: 1}},
		{name: "last", inv: Invocation{X: 63, Y: 63}, want: Color{R: 63.0 / 64, G: 63.0 / 64, B: 1, A: 1}},
		{name: "x only", inv: Invocation{X: 16, Y: 0}, want: Color{R: 0.25, G: 0, B: 1, A: 1}},
		{name: "y only", inv: Invocation{X: 0, Y: 48}, want: Color{R: 0, G: 0.75, B: 1, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The coordinates divide exactly, so equality is float-exact.
			if got := Julia(tt.inv, shape); got != tt.want {
				t.Errorf("Julia(%+v) = %+v, want %+v", tt.inv, got, tt.want)
			}
		})
	}
}

func TestJuliaRange(t *testing.T) {
	shape := DispatchShape{TilesX: 2, TilesY: 2}
	w, h := shape.Resolution()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := Julia(Invocation{X: uint32(x), Y: uint32(y)}, shape)
			if c.R < 0 || c.R >= 1 || c.G < 0 || c.G >= 1 {
				t.Fatalf("Julia at (%d,%d): gradient channels %v outside [0,1)", x, y, c)
			}
			if c.B != 1 || c.A != 1 {
				t.Fatalf("Julia at (%d,%d): fixed channels %v, want B=1 A=1", x, y, c)
			}
		}
	}
}

func TestKernelID(t *testing.T) {
	if got := KernelJulia.String(); got != "julia" {
		t.Errorf("KernelJulia.String() = %q, want %q", got, "julia")
	}
	if got := KernelID(99).String(); got != "unknown" {
		t.Errorf("KernelID(99).String() = %q, want %q", got, "unknown")
	}
}

func TestKernelByID(t *testing.T) {
	if k, ok := KernelByID(KernelJulia); !ok || k == nil {
		t.Error("KernelByID(KernelJulia) not found")
	}
	if _, ok := KernelByID(KernelID(99)); ok {
		t.Error("KernelByID(99) unexpectedly found")
	}
}
