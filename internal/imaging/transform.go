// Package imaging implements the image transform pipeline: decode,
// fit-within-box resampling, re-encode, and optional metadata carry-over.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/disintegration/gift"

	// Register decoders beyond JPEG so uploads in other common formats
	// are accepted. Output is always JPEG or PNG.
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is an output encoding supported by Transform.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// ParseFormat maps a configuration string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: unsupported output format %q", ErrInvalidParameter, s)
	}
}

// Options controls a single transform: the bounding box the output must
// fit in, the encode quality (JPEG only), the output format, and whether
// embedded metadata should be carried over when the formats allow it.
type Options struct {
	MaxWidth         int
	MaxHeight        int
	Quality          int
	Format           Format
	PreserveMetadata bool
}

func (o Options) validate() error {
	if o.MaxWidth <= 0 || o.MaxHeight <= 0 {
		return fmt.Errorf("%w: bounding box must be positive, got %dx%d", ErrInvalidParameter, o.MaxWidth, o.MaxHeight)
	}
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("%w: quality must be in [1,100], got %d", ErrInvalidParameter, o.Quality)
	}
	if o.Format != FormatJPEG && o.Format != FormatPNG {
		return fmt.Errorf("%w: unsupported output format %q", ErrInvalidParameter, o.Format)
	}
	return nil
}

// Transform reads the image at inputPath, scales it down to fit within the
// configured bounding box preserving aspect ratio, and writes the re-encoded
// result to outputPath. Images already inside the box are not upscaled.
//
// Exactly one output file exists on success; none exists on failure — a
// partially written output is removed on every error path.
func Transform(inputPath, outputPath string, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, inputPath)
		}
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	src, srcFormat, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dst := resizeToFit(src, opts.MaxWidth, opts.MaxHeight)
	if opts.Format == FormatJPEG {
		// JPEG has no alpha channel; flatten translucent sources first.
		dst = flatten(dst)
	}

	if err := writeImage(outputPath, dst, opts); err != nil {
		return err
	}

	if opts.PreserveMetadata && opts.Format == FormatJPEG && srcFormat == "jpeg" {
		// Best effort: a source without EXIF, or a copy failure, leaves
		// the output valid but without metadata.
		copyJPEGMetadata(inputPath, outputPath)
	}

	return nil
}

// resizeToFit scales the image down so neither dimension exceeds the box,
// using Lanczos resampling. Images already within the box pass through.
func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return src
	}

	g := gift.New(gift.ResizeToFit(maxWidth, maxHeight, gift.LanczosResampling))
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

// flatten composites the image over a white background, dropping alpha.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}

	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

// writeImage encodes the image to outputPath, removing the output file on
// any failure so no partial file survives.
func writeImage(outputPath string, img image.Image, opts Options) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: failed to create output: %v", ErrEncode, err)
	}

	switch opts.Format {
	case FormatJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: opts.Quality})
	case FormatPNG:
		err = png.Encode(out, img)
	}
	if err != nil {
		_ = out.Close()
		_ = os.Remove(outputPath)
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(outputPath)
		return fmt.Errorf("%w: failed to flush output: %v", ErrEncode, err)
	}

	return nil
}
