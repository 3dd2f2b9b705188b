package hqx

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	imageio "github.com/gogpu/hqx/internal/image"
)

func TestImageSaveLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.png")
	src := noiseImage(t, 13, 7)
	if err := src.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	back, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	// noiseImage uses multiples of 1/255, so 8-bit storage is lossless.
	if !back.Equal(src) {
		t.Error("PNG round trip changed the image")
	}
}

func TestDecodeLUTInfersScale(t *testing.T) {
	lut := syntheticLUT(t, 3)
	var buf bytes.Buffer
	if err := imageio.EncodePNG(&buf, lut.Image()); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeLUT(&buf, 0)
	if err != nil {
		t.Fatalf("DecodeLUT: %v", err)
	}
	if got.Scale() != 3 {
		t.Errorf("Scale() = %d, want 3", got.Scale())
	}
	if !bytes.Equal(got.Bytes(), lut.Bytes()) {
		t.Error("decoded LUT differs from encoded table")
	}
}

func writeLUT(t *testing.T, dir string, lut *LUT) string {
	t.Helper()
	path := filepath.Join(dir, LUTFileName(lut.Scale()))
	if err := imageio.SavePNG(path, lut.Image()); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLUTScaleMismatch(t *testing.T) {
	path := writeLUT(t, t.TempDir(), IdentityLUT(2))
	if _, err := LoadLUT(path, 4); !errors.Is(err, ErrLUTDimensions) {
		t.Errorf("LoadLUT(scale 4) err = %v, want ErrLUTDimensions", err)
	}
	if _, err := LoadLUT(path, 2); err != nil {
		t.Errorf("LoadLUT(scale 2) = %v", err)
	}
}

func TestLoadLUTMissing(t *testing.T) {
	_, err := LoadLUT(filepath.Join(t.TempDir(), "hq2x.png"), 2)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadLUT(missing) err = %v, want os.ErrNotExist", err)
	}
}

func TestLUTFileName(t *testing.T) {
	if got := LUTFileName(4); got != "hq4x.png" {
		t.Errorf("LUTFileName(4) = %q", got)
	}
}

func TestLoadLUTSet(t *testing.T) {
	dir := t.TempDir()
	writeLUT(t, dir, IdentityLUT(2))
	writeLUT(t, dir, syntheticLUT(t, 4))

	set, err := LoadLUTSet(dir)
	if err != nil {
		t.Fatalf("LoadLUTSet: %v", err)
	}
	if got := set.Scales(); !reflect.DeepEqual(got, []int{1, 2, 4}) {
		t.Errorf("Scales() = %v, want [1 2 4]", got)
	}
	if set[4].Raw(Address{Col: 9})[1] != 64 {
		t.Error("hq4x LUT not loaded from disk")
	}
}

func TestLoadLUTSetEmpty(t *testing.T) {
	if _, err := LoadLUTSet(t.TempDir()); err == nil {
		t.Error("LoadLUTSet(empty dir) should fail")
	}
}

func TestLoadLUTCached(t *testing.T) {
	ClearLUTCache()
	t.Cleanup(ClearLUTCache)

	path := writeLUT(t, t.TempDir(), syntheticLUT(t, 2))
	first, err := LoadLUT(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	second, err := LoadLUT(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	again, err := LoadLUT(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	if again != first {
		t.Error("second LoadLUT with the same scale should hit the cache")
	}
	if second == first {
		t.Error("a different requested scale is a different cache key")
	}
}
