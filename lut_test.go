package hqx

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewLUTDimensions(t *testing.T) {
	tests := []struct {
		name    string
		scale   int
		size    int
		wantErr error
	}{
		{"hq2x", 2, 256 * 64 * 4, nil},
		{"hq3x", 3, 256 * 144 * 4, nil},
		{"hq4x", 4, 256 * 256 * 4, nil},
		{"short", 2, 256 * 63 * 4, ErrLUTDimensions},
		{"wrong scale", 3, 256 * 64 * 4, ErrLUTDimensions},
		{"scale 0", 0, 0, ErrInvalidScale},
		{"scale 5", 5, 256 * 400 * 4, ErrInvalidScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lut, err := NewLUT(tt.scale, make([]byte, tt.size))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewLUT err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && lut.Rows() != 16*tt.scale*tt.scale {
				t.Errorf("Rows() = %d, want %d", lut.Rows(), 16*tt.scale*tt.scale)
			}
		})
	}
}

func TestNewLUTCopiesData(t *testing.T) {
	pix := make([]byte, 256*16*4)
	lut, err := NewLUT(1, pix)
	if err != nil {
		t.Fatal(err)
	}
	pix[0] = 99
	if lut.Raw(Address{})[0] != 0 {
		t.Error("NewLUT aliases caller data")
	}
}

func TestInferLUTScale(t *testing.T) {
	tests := []struct {
		w, h    int
		want    int
		wantErr bool
	}{
		{256, 16, 1, false},
		{256, 64, 2, false},
		{256, 144, 3, false},
		{256, 256, 4, false},
		{255, 64, 0, true},
		{256, 100, 0, true},
	}
	for _, tt := range tests {
		got, err := InferLUTScale(tt.w, tt.h)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("InferLUTScale(%d, %d) = (%d, %v), want %d (err %v)", tt.w, tt.h, got, err, tt.want, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrLUTDimensions) {
			t.Errorf("InferLUTScale error %v is not ErrLUTDimensions", err)
		}
	}
}

func TestLUTFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 64))
	img.SetNRGBA(7, 9, color.NRGBA{10, 20, 30, 40})

	lut, err := LUTFromImage(img, 0)
	if err != nil {
		t.Fatalf("LUTFromImage: %v", err)
	}
	if lut.Scale() != 2 {
		t.Errorf("Scale() = %d, want 2", lut.Scale())
	}
	if got := lut.Raw(Address{Col: 7, Row: 9}); got != [4]uint8{10, 20, 30, 40} {
		t.Errorf("Raw(7,9) = %v, want [10 20 30 40]", got)
	}

	if _, err := LUTFromImage(img, 3); !errors.Is(err, ErrLUTDimensions) {
		t.Errorf("LUTFromImage(scale 3) err = %v, want ErrLUTDimensions", err)
	}
}

func TestLUTFromImageNonNRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 256, 16))
	img.SetRGBA(3, 2, color.RGBA{255, 0, 0, 255})
	lut, err := LUTFromImage(img, 1)
	if err != nil {
		t.Fatalf("LUTFromImage: %v", err)
	}
	if got := lut.Raw(Address{Col: 3, Row: 2}); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("Raw(3,2) = %v", got)
	}
}

func TestLUTClampToEdge(t *testing.T) {
	lut := syntheticLUT(t, 2)
	tests := []struct {
		addr Address
		want [4]uint8
	}{
		{Address{Col: -5, Row: 0}, [4]uint8{255, 0, 0, 0}},
		{Address{Col: 300, Row: 0}, [4]uint8{128, 64, 0, 64}},
		{Address{Col: 0, Row: 1000}, [4]uint8{255, 0, 0, 0}},
		{Address{Col: 1, Row: -1}, [4]uint8{128, 64, 0, 64}},
	}
	for _, tt := range tests {
		if got := lut.Raw(tt.addr); got != tt.want {
			t.Errorf("Raw(%+v) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestLUTWeights(t *testing.T) {
	lut := IdentityLUT(3)
	w := lut.Weights(Address{Col: 17, Row: 100})
	if w != [4]float32{1, 0, 0, 0} {
		t.Errorf("Weights = %v, want [1 0 0 0]", w)
	}
}

func TestLUTCheckWeights(t *testing.T) {
	if err := IdentityLUT(2).CheckWeights(); err != nil {
		t.Errorf("IdentityLUT.CheckWeights() = %v", err)
	}

	pix := make([]byte, 256*16*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 1
	}
	pix[(2*256+5)*4] = 0
	lut, err := NewLUT(1, pix)
	if err != nil {
		t.Fatal(err)
	}
	if err := lut.CheckWeights(); !errors.Is(err, ErrZeroWeights) {
		t.Errorf("CheckWeights() = %v, want ErrZeroWeights", err)
	}
}

func TestLUTImage(t *testing.T) {
	lut := syntheticLUT(t, 2)
	img := lut.Image()
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 64 {
		t.Fatalf("Image bounds = %v, want 256x64", b)
	}
	back, err := LUTFromImage(img, 2)
	if err != nil {
		t.Fatal(err)
	}
	if string(back.Bytes()) != string(lut.Bytes()) {
		t.Error("LUT -> image -> LUT changed the table")
	}
}
