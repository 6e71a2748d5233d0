package palette

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
)

// sampleSize is the longest edge images are shrunk to before sampling.
// Clustering cost grows with distinct colors, not image size, so a small
// working copy is plenty for dominant-color extraction.
const sampleSize = 128

// SamplesFromImage flattens a decoded image into RGB samples for clustering.
// Large images are downsampled first and fully transparent pixels are
// ignored. The returned slice may be empty for a fully transparent image.
func SamplesFromImage(img image.Image) []Color {
	bounds := img.Bounds()
	if uint(bounds.Dx()) > sampleSize || uint(bounds.Dy()) > sampleSize {
		img = resize.Thumbnail(sampleSize, sampleSize, img, resize.Lanczos3)
		bounds = img.Bounds()
	}

	samples := make([]Color, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			samples = append(samples, Color{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
			})
		}
	}
	return samples
}

// RenderStrip appends a horizontal color strip below the original image,
// divided into equal-width segments in palette order. The last segment
// absorbs the rounding remainder. Pure construction: writing the composite
// anywhere is the caller's business.
func RenderStrip(original image.Image, entries []Entry, stripHeight int) image.Image {
	bounds := original.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	out := image.NewRGBA(image.Rect(0, 0, width, height+stripHeight))
	draw.Draw(out, image.Rect(0, 0, width, height), original, bounds.Min, draw.Src)

	if len(entries) == 0 || stripHeight <= 0 {
		return out
	}

	segWidth := width / len(entries)
	for i, e := range entries {
		x0 := i * segWidth
		x1 := x0 + segWidth
		if i == len(entries)-1 {
			x1 = width
		}
		fill := image.NewUniform(color.RGBA{R: e.Color.R, G: e.Color.G, B: e.Color.B, A: 255})
		draw.Draw(out, image.Rect(x0, height, x1, height+stripHeight), fill, image.Point{}, draw.Src)
	}
	return out
}
