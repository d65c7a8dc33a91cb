package gopherweb

import (
	"errors"
	"fmt"
)

/*
 * Error taxonomy. Connection handling distinguishes the request
 * errors below from plain transport failures: a malformed request is
 * dropped silently (Gopher has no way to report an error before a
 * valid selector is known), while menu and path errors surface to the
 * client as a type 3 error line.
 */
var (
	// ErrMalformedRequest covers an unparseable or oversized first
	// line and a peer that closes before completing one.
	ErrMalformedRequest = errors.New("malformed request line")

	// ErrInvalidMenuField reports forbidden control bytes in a menu
	// field. Entry constructors sanitize instead of failing; this is
	// returned only by the strict validation path.
	ErrInvalidMenuField = errors.New("invalid menu field")

	// ErrPathTraversal reports a directory request that would
	// resolve outside the sandboxed root.
	ErrPathTraversal = errors.New("path escapes directory root")

	// ErrInvalidWidth reports a non-positive layout width. With a
	// validated configuration this is unreachable at runtime.
	ErrInvalidWidth = errors.New("width must be positive")
)

func invalidWidth(width int) error {
	return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
}
