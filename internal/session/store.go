package session

import (
	"errors"

	"github.com/bimmerbailey/sanictl/internal/mask"
)

// ErrSessionNotFound is returned by Get when no map is stored under the
// given session ID (spec §6, error surface).
var ErrSessionNotFound = errors.New("session not found")

// Store persists RehydrationMaps keyed by a caller-supplied session ID.
// Put, Get, and Delete must each be atomic with respect to one another on
// a given key; no caller may observe a partial write (spec §4.6, §5).
type Store interface {
	Put(sessionID string, m *mask.RehydrationMap) error
	Get(sessionID string) (*mask.RehydrationMap, error)
	Delete(sessionID string) error
}
