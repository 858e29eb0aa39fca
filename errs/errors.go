// Package errs defines the sentinel errors shared across erased-cells
// packages.
//
// Callers should match errors with errors.Is since call sites wrap these
// sentinels with contextual detail, e.g.:
//
//	v, err := cells.Get[uint8](value)
//	if errors.Is(err, errs.ErrNarrowing) {
//	    // value does not fit into a uint8
//	}
package errs

import "errors"

var (
	// ErrNarrowing indicates a conversion toward an encoding that cannot
	// losslessly represent the source value space.
	ErrNarrowing = errors.New("invalid narrowing conversion")

	// ErrUnsupportedCellType indicates a foreign type code that cannot be
	// mapped onto the closed set of supported cell types.
	ErrUnsupportedCellType = errors.New("unsupported cell type")

	// ErrUnknownCellType indicates a cell type name or code that failed to
	// parse.
	ErrUnknownCellType = errors.New("unknown cell type")

	// ErrInvalidMagic indicates encoded data that does not start with the
	// expected magic marker.
	ErrInvalidMagic = errors.New("invalid magic marker")

	// ErrInvalidPayload indicates encoded data that is truncated or
	// otherwise structurally malformed.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrChecksumMismatch indicates encoded data whose trailer checksum does
	// not match its content.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidCompressionType indicates an unrecognized compression type
	// code.
	ErrInvalidCompressionType = errors.New("invalid compression type")
)
