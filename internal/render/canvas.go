// Package render draws map-anchored markers onto a raster canvas and
// encodes the produced frames.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Canvas is a square world canvas frames are drawn onto. Zoom feeds
// the modifier's zoom scaling; it does not change the canvas size.
type Canvas struct {
	Img  *image.RGBA
	Size int
	Zoom float64
}

// NewCanvas allocates a square canvas filled with the background
// color.
func NewCanvas(size int, zoom float64, background color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	return &Canvas{Img: img, Size: size, Zoom: zoom}
}

// Clear repaints the whole canvas with the background color, reusing
// the allocation between frames.
func (c *Canvas) Clear(background color.Color) {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
}

// WriteWebP encodes the canvas as a lossy WebP frame.
func (c *Canvas) WriteWebP(path string, quality float32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close frame file")
		}
	}()

	return webp.Encode(f, c.Img, &webp.Options{Lossless: false, Quality: quality})
}

// LoadIcon reads and decodes a marker icon image from disk. Any
// format with a registered decoder is accepted.
func LoadIcon(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	log.Debug().Str("path", path).Str("format", format).Msg("Marker icon loaded")
	return img, nil
}

// scaleIcon resizes the icon to a square of the given side. CatmullRom
// keeps small icons crisp at the cost of speed, which is irrelevant at
// marker sizes.
func scaleIcon(icon image.Image, side int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), icon, icon.Bounds(), draw.Over, nil)

	return dst
}
