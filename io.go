package hqx

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/hqx/internal/cache"
	imageio "github.com/gogpu/hqx/internal/image"
)

// lutCacheSize bounds the number of decoded LUT assets kept in memory.
const lutCacheSize = 16

// lutKey identifies a LUT file version. A rewritten file gets a new key.
type lutKey struct {
	path    string
	scale   int
	size    int64
	modTime time.Time
}

var lutCache = cache.New[lutKey, *LUT](lutCacheSize)

// LoadImage reads a source image file (PNG, JPEG, BMP, TIFF or WebP).
func LoadImage(path string) (*Image, error) {
	img, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// DecodeImage decodes a source image, auto-detecting the format.
func DecodeImage(r io.Reader) (*Image, error) {
	img, _, err := imageio.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// EncodePNG writes the image as an opaque 8-bit PNG.
func (m *Image) EncodePNG(w io.Writer) error {
	return imageio.EncodePNG(w, m.ToNRGBA())
}

// SavePNG writes the image to a PNG file.
func (m *Image) SavePNG(path string) error {
	return imageio.SavePNG(path, m.ToNRGBA())
}

// LoadLUT reads a LUT asset. If scale is 0 it is inferred from the image
// height; otherwise the image must match the given scale.
//
// Decoded LUTs are cached by path, scale, size and modification time, so
// repeated loads of an unchanged asset return the same *LUT.
func LoadLUT(path string, scale int) (*LUT, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("hqx: load LUT: %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("hqx: load LUT: %w", err)
	}
	key := lutKey{path: abs, scale: scale, size: fi.Size(), modTime: fi.ModTime()}
	return lutCache.GetOrLoad(key, func() (*LUT, error) {
		Logger().Debug("hqx: decoding LUT", "path", abs)
		return loadLUTFile(abs, scale)
	})
}

// ClearLUTCache drops all cached LUT assets.
func ClearLUTCache() {
	lutCache.Clear()
}

func loadLUTFile(path string, scale int) (*LUT, error) {
	img, err := imageio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("hqx: load LUT: %w", err)
	}
	lut, err := LUTFromImage(img, scale)
	if err != nil {
		return nil, fmt.Errorf("hqx: load LUT %s: %w", filepath.Base(path), err)
	}
	return lut, nil
}

// DecodeLUT decodes a LUT asset from r. See LoadLUT for scale handling.
func DecodeLUT(r io.Reader, scale int) (*LUT, error) {
	img, _, err := imageio.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("hqx: decode LUT: %w", err)
	}
	return LUTFromImage(img, scale)
}

// LUTFileName returns the conventional asset name for a scale ("hq2x.png").
func LUTFileName(scale int) string {
	return fmt.Sprintf("hq%dx.png", scale)
}

// LUTSet holds one LUT per scale, as shipped with the reference assets.
type LUTSet map[int]*LUT

// LoadLUTSet loads hq2x.png, hq3x.png and hq4x.png from dir. Missing files
// are skipped; at least one LUT must be present. The set always contains
// an identity LUT for scale 1.
func LoadLUTSet(dir string) (LUTSet, error) {
	set := LUTSet{1: IdentityLUT(1)}
	for s := 2; s <= MaxScale; s++ {
		path := filepath.Join(dir, LUTFileName(s))
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			Logger().Debug("hqx: LUT not found", "path", path)
			continue
		}
		lut, err := LoadLUT(path, s)
		if err != nil {
			return nil, err
		}
		set[s] = lut
	}
	if len(set) == 1 {
		return nil, fmt.Errorf("hqx: no LUT assets in %s", dir)
	}
	return set, nil
}

// Scales returns the scales present in the set in ascending order.
func (s LUTSet) Scales() []int {
	var out []int
	for i := MinScale; i <= MaxScale; i++ {
		if _, ok := s[i]; ok {
			out = append(out, i)
		}
	}
	return out
}
