package session

import (
	sess "github.com/abhisek/tablez/internal/session"
)

// sessionInitMsg is sent when the questions have been drawn.
type sessionInitMsg struct {
	Session *sess.Session
	Err     error
}
