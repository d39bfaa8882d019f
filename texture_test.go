package texgen

import "testing"

func TestNewTexture(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr bool
	}{
		{name: "valid", width: 64, height: 64, wantErr: false},
		{name: "non-square", width: 1280, height: 720, wantErr: false},
		{name: "zero width", width: 0, height: 8, wantErr: true},
		{name: "zero height", width: 8, height: 0, wantErr: true},
		{name: "negative", width: -8, height: 8, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := NewTexture(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTexture(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tex.Width() != tt.width || tex.Height() != tt.height {
				t.Errorf("dimensions = %dx%d, want %dx%d", tex.Width(), tex.Height(), tt.width, tt.height)
			}
			if len(tex.Pix()) != tt.width*tt.height*4 {
				t.Errorf("len(Pix()) = %d, want %d", len(tex.Pix()), tt.width*tt.height*4)
			}
		})
	}
}

func TestColorRGBA8(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want [4]uint8
	}{
		{name: "black transparent", in: Color{}, want: [4]uint8{0, 0, 0, 0}},
		{name: "white opaque", in: Color{1, 1, 1, 1}, want: [4]uint8{255, 255, 255, 255}},
		{name: "midpoint rounds up", in: Color{0.5, 0.5, 0.5, 0.5}, want: [4]uint8{128, 128, 128, 128}},
		{name: "63/64", in: Color{63.0 / 64, 63.0 / 64, 1, 1}, want: [4]uint8{251, 251, 255, 255}},
		{name: "7/8", in: Color{0, 0.875, 1, 1}, want: [4]uint8{0, 223, 255, 255}},
		{name: "clamped low", in: Color{-1, 0, 0, 1}, want: [4]uint8{0, 0, 0, 255}},
		{name: "clamped high", in: Color{2, 0, 0, 1}, want: [4]uint8{255, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.RGBA8(); got != tt.want {
				t.Errorf("RGBA8() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextureSetGet(t *testing.T) {
	tex, err := NewTexture(16, 16)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}

	tex.SetColor(3, 5, Color{R: 1, G: 0.5, B: 0, A: 1})
	if got, want := tex.RGBA8At(3, 5), ([4]uint8{255, 128, 0, 255}); got != want {
		t.Errorf("RGBA8At(3,5) = %v, want %v", got, want)
	}

	c := tex.ColorAt(3, 5)
	if c.R != 1 || c.A != 1 {
		t.Errorf("ColorAt(3,5) = %+v, want R=1 A=1", c)
	}

	// Out-of-range writes are discarded, reads return zero.
	tex.SetColor(-1, 0, Color{R: 1})
	tex.SetColor(16, 0, Color{R: 1})
	if got := tex.RGBA8At(16, 0); got != ([4]uint8{}) {
		t.Errorf("RGBA8At(16,0) = %v, want zero", got)
	}
}

func TestTextureFill(t *testing.T) {
	tex, _ := NewTexture(8, 8)
	tex.Fill(Color{R: 0.25, G: 0.5, B: 0.75, A: 1})

	want := Color{R: 0.25, G: 0.5, B: 0.75, A: 1}.RGBA8()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := tex.RGBA8At(x, y); got != want {
				t.Fatalf("RGBA8At(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestTextureClone(t *testing.T) {
	tex, _ := NewTexture(8, 8)
	tex.SetColor(1, 1, Color{R: 1, A: 1})

	clone := tex.Clone()
	clone.SetColor(1, 1, Color{G: 1, A: 1})

	if got := tex.RGBA8At(1, 1); got != ([4]uint8{255, 0, 0, 255}) {
		t.Errorf("original modified through clone: %v", got)
	}
	if got := clone.RGBA8At(1, 1); got != ([4]uint8{0, 255, 0, 255}) {
		t.Errorf("clone pixel = %v, want green", got)
	}
}

func TestTextureToImage(t *testing.T) {
	tex, _ := NewTexture(8, 8)
	tex.SetColor(2, 3, Color{R: 1, G: 1, B: 1, A: 1})

	img := tex.ToImage()
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("bounds = %v, want 8x8", img.Bounds())
	}
	c := img.RGBAAt(2, 3)
	if c.R != 255 || c.G != 255 || c.B != 255 || c.A != 255 {
		t.Errorf("RGBAAt(2,3) = %v, want white", c)
	}
}
