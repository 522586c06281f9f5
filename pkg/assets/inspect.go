package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"
)

// colorDifferenceThreshold is roughly one unit of 8-bit color after RGBA scaling
const colorDifferenceThreshold = 256

// inspect decodes an image object. It returns nil when the image is usable.
// Formats without a registered decoder are not inspected.
func inspect(ctx context.Context, store Store, name string) *Problem {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return nil
	}

	r, err := store.Open(ctx, name)
	if err != nil {
		return &Problem{Kind: UnreadableImage, Detail: err.Error()}
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return &Problem{Kind: UnreadableImage, Detail: fmt.Sprintf("failed to decode: %v", err)}
	}
	if differing, total := sampleVariation(img); total > 0 && float64(differing)/float64(total) < 0.01 {
		return &Problem{Kind: BlankImage, Detail: fmt.Sprintf("image appears to be a solid color (only %d/%d sampled pixels differ)", differing, total)}
	}
	return nil
}

// sampleVariation samples a 10x10 grid and counts pixels that differ from
// the top-left pixel
func sampleVariation(img image.Image) (differing, total int) {
	bounds := img.Bounds()
	const sampleSize = 10
	stepX := max(bounds.Dx()/sampleSize, 1)
	stepY := max(bounds.Dy()/sampleSize, 1)

	r1, g1, b1, a1 := img.At(bounds.Min.X, bounds.Min.Y).RGBA()
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			total++
			r2, g2, b2, a2 := img.At(x, y).RGBA()
			if differs(r1, r2) || differs(g1, g2) || differs(b1, b2) || differs(a1, a2) {
				differing++
			}
		}
	}
	return differing, total
}

func differs(a, b uint32) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d > colorDifferenceThreshold
}
