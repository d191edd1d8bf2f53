package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("duplicate account id")
	ErrInvalidAccount   = errors.New("invalid account record")
	ErrInvalidGrant     = errors.New("invalid grant")
	ErrStorage          = errors.New("credential storage failure")
	ErrSessionInit      = errors.New("session initialisation failed")
	ErrSessionNotJoined = errors.New("session is not joined")
	ErrSessionStopped   = errors.New("session is stopped")
	ErrSinkWrite        = errors.New("log sink write failed")
	ErrInvalidChannel   = errors.New("invalid channel name")
)

func errGrant(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidGrant, reason)
}
