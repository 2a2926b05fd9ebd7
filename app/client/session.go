package client

import (
	"sync"

	"inkwell/app/models"
)

// Session holds the credential of the signed in user. It is set on login
// or registration and cleared on logout or when the API rejects the
// credential. A zero Session is signed out.
type Session struct {
	mutex sync.RWMutex
	token string
	user  *models.User
}

// NewSession returns a signed out session.
func NewSession() *Session {
	return &Session{}
}

// Set stores the credential and the user it belongs to.
func (s *Session) Set(token string, user *models.User) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.token = token
	s.user = user
}

// Clear forgets the credential.
func (s *Session) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.token = ""
	s.user = nil
}

// Token returns the bearer credential, or "" when signed out.
func (s *Session) Token() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.token
}

// User returns a copy of the signed in user, or nil.
func (s *Session) User() *models.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a credential is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
