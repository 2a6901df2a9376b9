package snapshot

import "errors"

// Common snapshot errors.
var (
	// ErrMalformedSnapshot is returned when the snapshot file exists but
	// cannot be decoded into valid reminder records. The wrapped error
	// carries the specific decode failure.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrUnsupportedVersion is returned when the snapshot file declares a
	// document version this build does not understand.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)
