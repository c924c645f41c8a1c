package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func buildAPP1(payload []byte) []byte {
	length := len(payload) + 2
	seg := []byte{markerPrefix, markerAPP1, byte(length >> 8), byte(length & 0xFF)}
	return append(seg, payload...)
}

func TestSpliceAndExtractEXIF(t *testing.T) {
	t.Parallel()

	jpegData := encodeJPEG(t, 64, 64)
	segment := buildAPP1(append([]byte("Exif\x00\x00"), []byte("fake exif payload")...))

	spliced := spliceEXIF(jpegData, segment)
	if spliced == nil {
		t.Fatal("spliceEXIF returned nil for a valid jpeg")
	}
	if len(spliced) != len(jpegData)+len(segment) {
		t.Errorf("spliced length %d, want %d", len(spliced), len(jpegData)+len(segment))
	}

	got := exifSegment(spliced)
	if !bytes.Equal(got, segment) {
		t.Error("extracted EXIF segment does not match the spliced one")
	}

	// The spliced stream must still decode.
	if _, err := jpeg.Decode(bytes.NewReader(spliced)); err != nil {
		t.Errorf("spliced jpeg no longer decodes: %v", err)
	}
}

func TestExifSegmentAbsent(t *testing.T) {
	t.Parallel()

	if seg := exifSegment(encodeJPEG(t, 32, 32)); seg != nil {
		t.Errorf("expected nil for jpeg without EXIF, got %d bytes", len(seg))
	}
}

func TestSpliceEXIFRejectsNonJPEG(t *testing.T) {
	t.Parallel()

	if out := spliceEXIF([]byte("not a jpeg"), buildAPP1([]byte("Exif\x00\x00"))); out != nil {
		t.Error("expected nil for non-jpeg input")
	}
}

func TestTransformPreservesEXIF(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	segment := buildAPP1(append([]byte("Exif\x00\x00"), []byte("camera data")...))
	withEXIF := spliceEXIF(encodeJPEG(t, 500, 400), segment)
	if withEXIF == nil {
		t.Fatal("failed to build EXIF-carrying test image")
	}

	input := filepath.Join(dir, "in.jpg")
	output := filepath.Join(dir, "out.jpg")
	if err := os.WriteFile(input, withEXIF, 0o644); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}

	opts := Options{
		MaxWidth:         300,
		MaxHeight:        300,
		Quality:          85,
		Format:           FormatJPEG,
		PreserveMetadata: true,
	}
	if err := Transform(input, output, opts); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	outData, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !bytes.Equal(exifSegment(outData), segment) {
		t.Error("EXIF segment was not carried into the output verbatim")
	}
}

func TestTransformDropsEXIFWhenDisabled(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	segment := buildAPP1(append([]byte("Exif\x00\x00"), []byte("camera data")...))
	withEXIF := spliceEXIF(encodeJPEG(t, 500, 400), segment)

	input := filepath.Join(dir, "in.jpg")
	output := filepath.Join(dir, "out.jpg")
	if err := os.WriteFile(input, withEXIF, 0o644); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}

	opts := Options{MaxWidth: 300, MaxHeight: 300, Quality: 85, Format: FormatJPEG}
	if err := Transform(input, output, opts); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	outData, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if exifSegment(outData) != nil {
		t.Error("EXIF segment should be dropped when PreserveMetadata is off")
	}
}
