package dkg

import (
	"errors"
	"fmt"
)

// Protocol failures.
var (
	// ErrInvalidKey is returned when a phase-1 commitment does not open to
	// the revealed public point, or when a knowledge proof fails.
	ErrInvalidKey = errors.New("dkg: invalid key")

	// ErrInvalidSS is returned when a received share fails the Feldman
	// check, or when a sender's zeroth coefficient commitment differs from
	// the public point it revealed.
	ErrInvalidSS = errors.New("dkg: invalid secret share")
)

// Reserved for the signing protocol built on top of the generated key. Key
// generation never returns them.
var (
	ErrInvalidCom   = errors.New("dkg: invalid commitment")
	ErrInvalidSig   = errors.New("dkg: invalid signature")
	ErrPhase5BadSum = errors.New("dkg: phase 5 bad sum")
	ErrPhase6Error  = errors.New("dkg: phase 6 error")
)

// Contract violations by the caller.
var (
	ErrLengthMismatch    = errors.New("dkg: input length does not match share count")
	ErrInvalidParameters = errors.New("dkg: invalid parameters")
	ErrInvalidPartyIndex = errors.New("dkg: party index out of range")
	ErrTooFewShares      = errors.New("dkg: too few shares to reconstruct")
	ErrDuplicateIndex    = errors.New("dkg: duplicate party index")
)

// CulpritError reports a failed batch check together with the 1-based
// indices of every party whose input failed it. The whole batch is rejected
// either way.
type CulpritError struct {
	Err     error
	Parties []int
}

// Error implements the error interface.
func (e *CulpritError) Error() string {
	return fmt.Sprintf("%v: parties %v", e.Err, e.Parties)
}

// Unwrap returns the sentinel the batch failed with.
func (e *CulpritError) Unwrap() error {
	return e.Err
}

// Culprits returns the failing party indices carried by err, or nil.
func Culprits(err error) []int {
	var ce *CulpritError
	if errors.As(err, &ce) {
		return ce.Parties
	}
	return nil
}

func lengthError(what string, got, want int) error {
	return fmt.Errorf("%w: %d %s, want %d", ErrLengthMismatch, got, what, want)
}
