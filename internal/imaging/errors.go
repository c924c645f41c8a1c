package imaging

import "errors"

// Error kinds returned by Transform and friends. Callers branch on these
// with errors.Is; the wrapped message carries the underlying detail.
var (
	// ErrNotFound indicates the input file does not exist.
	ErrNotFound = errors.New("input image not found")

	// ErrInvalidParameter indicates transform options outside their
	// allowed range. Returned before any filesystem access.
	ErrInvalidParameter = errors.New("invalid transform parameter")

	// ErrDecode indicates the input is not a decodable image.
	ErrDecode = errors.New("image decode failed")

	// ErrEncode indicates the output could not be encoded or written.
	ErrEncode = errors.New("image encode failed")
)
