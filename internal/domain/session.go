package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrLoginRequired indicates that the operation needs an authenticated session.
var ErrLoginRequired = errors.New("please login first")

// Session holds the authenticated account of the running process.
//
// The zero value is an anonymous session.
type Session struct {
	ID            uuid.UUID `json:"id"`
	AccountNumber string    `json:"account_number"`
	StartedAt     time.Time `json:"started_at"`
}

// NewSession returns a session authenticated as the given account.
func NewSession(accountNumber string) Session {
	return Session{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		StartedAt:     time.Now().UTC(),
	}
}

// Authenticated reports whether the session holds an account.
func (s Session) Authenticated() bool {
	return s.AccountNumber != ""
}

// Clear makes the session anonymous.
func (s *Session) Clear() {
	*s = Session{}
}
