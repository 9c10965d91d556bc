// Package errkind holds the error taxonomy shared by every package of this module.
//
// Errors returned by the library wrap exactly one of the sentinels below, so that
// callers can branch on the kind of failure with errors.Is.
package errkind

import errorsmod "cosmossdk.io/errors"

// Codespace is the codespace under which the errors are registered.
const Codespace = "paillier"

var (
	// ErrNotInvertible is returned when a required modular inverse does not exist.
	ErrNotInvertible = errorsmod.Register(Codespace, 1, "no modular inverse")
	// ErrInvalidParameter is returned for bit lengths that are too small, or
	// candidate sets that cannot be used to build a proof.
	ErrInvalidParameter = errorsmod.Register(Codespace, 2, "invalid parameter")
	// ErrMalformedInput is returned when a ciphertext was not produced under the given key,
	// or when a serialized value cannot be parsed.
	ErrMalformedInput = errorsmod.Register(Codespace, 3, "malformed input")
)
