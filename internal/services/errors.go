package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound deliberately covers "does not exist", "not the owner" and
// "wrong status". Collapsing them keeps responses from leaking whether a
// piece of content exists.
var ErrNotFound = errors.New("not found")

var (
	ErrProfileNotFound    = errors.New("child profile not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBlocked        = errors.New("account is blocked")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// PartialRemovalError reports that a story was removed but the bulk
// report transition failed. The removal stands; the reports stay pending
// until an administrator re-runs the removal, which is idempotent.
type PartialRemovalError struct {
	StoryID uuid.UUID
	Err     error
}

func (e *PartialRemovalError) Error() string {
	return fmt.Sprintf("story %s removed but its reports were not marked processed: %v", e.StoryID, e.Err)
}

func (e *PartialRemovalError) Unwrap() error { return e.Err }
