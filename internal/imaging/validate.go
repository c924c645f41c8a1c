package imaging

import (
	"image"
	"os"
)

// IsValid reports whether the file at path is a fully decodable image.
// It performs a complete structural decode, not just header sniffing, and
// never returns an error: any failure, including a missing file or a
// truncated stream, reports false.
func IsValid(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() {
		_ = f.Close()
	}()

	_, _, err = image.Decode(f)
	return err == nil
}
