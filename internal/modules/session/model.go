// README: Anonymous session identifiers.
package session

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session id")

// HeaderName carries the session id on every API request and response.
const HeaderName = "X-Session-ID"

func NewID() string {
	return uuid.NewString()
}

// Normalize returns the canonical form of a session id, or ErrInvalidSession.
func Normalize(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidSession
	}
	return u.String(), nil
}
