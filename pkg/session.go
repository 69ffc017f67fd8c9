package pkg

import (
	"fmt"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
)

// Session is one SSH connection playing its own game
type Session struct {
	ID      int
	Name    string
	User    string
	Remote  string
	Started time.Time
}

// NewSession names a session with a random pet name, like "wise-otter"
func NewSession(id int, user, remote string) *Session {
	return &Session{
		ID:      id,
		Name:    Nickname(petname.Generate(2, "-")),
		User:    user,
		Remote:  remote,
		Started: time.Now(),
	}
}

func (s *Session) String() string {
	return fmt.Sprintf("#%d %s (%s)", s.ID, s.Name, s.User)
}

// Duration is how long the session has been connected
func (s *Session) Duration() time.Duration {
	return time.Since(s.Started)
}
