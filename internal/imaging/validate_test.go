package imaging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edfarias/picrelay/internal/imaging"
)

func TestIsValid(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.jpg")
	writeJPEG(t, valid, 64, 64)

	corrupt := filepath.Join(dir, "corrupt.jpg")
	if err := os.WriteFile(corrupt, []byte("garbage bytes"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	data, err := os.ReadFile(valid)
	if err != nil {
		t.Fatalf("failed to read valid image: %v", err)
	}
	truncated := filepath.Join(dir, "truncated.jpg")
	if err := os.WriteFile(truncated, data[:20], 0o644); err != nil {
		t.Fatalf("failed to write truncated file: %v", err)
	}

	testCases := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "valid jpeg", path: valid, expected: true},
		{name: "corrupt file", path: corrupt, expected: false},
		{name: "truncated file", path: truncated, expected: false},
		{name: "missing file", path: filepath.Join(dir, "nope.jpg"), expected: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := imaging.IsValid(tc.path); got != tc.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tc.name, got, tc.expected)
			}
		})
	}
}
