package pipeline

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	// codecs registered for image.Decode; webp/bmp/tiff decode only
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Yash-Popcorn/applovin-market-intelligence/pkg/util"
)

const jpegQuality = 90

// writeComposite encodes the palette composite next to its siblings in the
// color_palettes results directory. JPEG input stays JPEG; every other
// source format is written as PNG since gif/webp/bmp/tiff have no encoder
// here.
func writeComposite(img image.Image, format, resultsDir, stem string) (string, error) {
	dir := filepath.Join(resultsDir, paletteDirName)
	if err := util.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	ext := "png"
	if format == "jpeg" {
		ext = "jpg"
	}
	outPath := filepath.Join(dir, stem+"_with_palette."+ext)

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer f.Close()

	switch ext {
	case "jpg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return "", fmt.Errorf("%w: encoding %s: %v", ErrWrite, outPath, err)
	}
	return outPath, nil
}
