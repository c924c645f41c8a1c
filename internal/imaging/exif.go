package imaging

import (
	"encoding/binary"
	"os"
)

// JPEG marker bytes relevant to metadata handling.
const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8 // start of image
	markerAPP0   = 0xE0 // JFIF
	markerAPP1   = 0xE1 // EXIF lives here
	markerSOS    = 0xDA // start of scan, entropy-coded data follows
)

var exifHeader = []byte("Exif\x00\x00")

// copyJPEGMetadata carries the EXIF APP1 segment of the source JPEG into
// the destination JPEG verbatim. It is best effort: if the source has no
// EXIF segment, or either file cannot be rewritten, the destination is
// left as-is (valid, just without metadata).
func copyJPEGMetadata(srcPath, dstPath string) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return
	}

	segment := exifSegment(src)
	if segment == nil {
		return
	}

	dst, err := os.ReadFile(dstPath)
	if err != nil {
		return
	}

	spliced := spliceEXIF(dst, segment)
	if spliced == nil {
		return
	}

	_ = os.WriteFile(dstPath, spliced, 0o644)
}

// exifSegment returns the complete EXIF APP1 segment (marker, length, and
// payload) of a JPEG byte stream, or nil if none exists before the scan data.
func exifSegment(data []byte) []byte {
	segments := scanSegments(data)
	for _, seg := range segments {
		if data[seg.start+1] != markerAPP1 {
			continue
		}
		payload := data[seg.start+4 : seg.end]
		if len(payload) >= len(exifHeader) && string(payload[:len(exifHeader)]) == string(exifHeader) {
			return data[seg.start:seg.end]
		}
	}
	return nil
}

// spliceEXIF inserts an APP1 segment into a JPEG byte stream, after the SOI
// marker and any APP0 (JFIF) segment. Returns nil if the stream is not a JPEG.
func spliceEXIF(data, segment []byte) []byte {
	if len(data) < 2 || data[0] != markerPrefix || data[1] != markerSOI {
		return nil
	}

	insertAt := 2
	for _, seg := range scanSegments(data) {
		if data[seg.start+1] != markerAPP0 {
			break
		}
		insertAt = seg.end
	}

	out := make([]byte, 0, len(data)+len(segment))
	out = append(out, data[:insertAt]...)
	out = append(out, segment...)
	out = append(out, data[insertAt:]...)
	return out
}

type segmentSpan struct {
	start, end int
}

// scanSegments walks the marker segments between SOI and SOS. Each span
// covers marker through end of payload. Malformed streams yield the spans
// parsed so far.
func scanSegments(data []byte) []segmentSpan {
	if len(data) < 2 || data[0] != markerPrefix || data[1] != markerSOI {
		return nil
	}

	var spans []segmentSpan
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != markerPrefix {
			break
		}
		marker := data[pos+1]
		if marker == markerSOS {
			break
		}
		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		end := pos + 2 + length
		if length < 2 || end > len(data) {
			break
		}
		spans = append(spans, segmentSpan{start: pos, end: end})
		pos = end
	}
	return spans
}
