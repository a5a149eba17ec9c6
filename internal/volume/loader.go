package volume

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Registered decoders for the slice-stack formats we accept.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// sliceExtensions lists the filename extensions considered part of a
// slice stack; anything else in the directory is ignored.
var sliceExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// LoadDir assembles a volume from a directory of 2D image files, sorted by
// filename, stacked along Z. A pixel is foreground when any colour channel
// is nonzero. All slices must share the same dimensions.
func LoadDir(dir string) (*Volume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read slice directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if sliceExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no slice images found in %s", dir)
	}
	sort.Strings(names)

	var vol *Volume
	for z, name := range names {
		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("slice %s: %w", name, err)
		}
		b := img.Bounds()
		if vol == nil {
			vol = New(b.Dx(), b.Dy(), len(names))
		} else if b.Dx() != vol.NX || b.Dy() != vol.NY {
			return nil, fmt.Errorf("slice %s is %dx%d, want %dx%d", name, b.Dx(), b.Dy(), vol.NX, vol.NY)
		}
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				vol.Set(x, y, z, r|g|bl != 0)
			}
		}
	}
	return vol, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}
