package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
)

// Server hosts termtris over SSH. Every interactive session gets its own client process running
// in a pseudo-terminal, so games share nothing.
type Server struct {
	*ssh.Server

	// Binary is the termtris client started for each session, Args are passed before the
	// session's name
	Binary string
	Args   []string

	Logger *log.Logger

	// OnJoin and OnLeave are called from the session's goroutine
	OnJoin  func(*Session)
	OnLeave func(*Session)

	mtx      sync.Mutex
	sessions map[int]*Session
	nextID   int
}

func NewServer(addr, binary string) *Server {
	s := &Server{
		Binary:   binary,
		Logger:   log.New(io.Discard, "", 0),
		sessions: make(map[int]*Session),
	}

	s.Server = &ssh.Server{
		Addr:        addr,
		IdleTimeout: ServerIdleTimeout,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	return s
}

// SetHostKey loads the server's private key from a PEM file
func (s *Server) SetHostKey(path string) error {
	if err := s.SetOption(ssh.HostKeyFile(path)); err != nil {
		return fmt.Errorf("failed to load host key %s: %w", path, err)
	}
	return nil
}

// Sessions lists the connected sessions, oldest first
func (s *Server) Sessions() []*Session {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID < sessions[j].ID
	})
	return sessions
}

func (s *Server) addSession(user, remote string) *Session {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.nextID++
	session := NewSession(s.nextID, user, remote)
	s.sessions[session.ID] = session
	return session
}

func (s *Server) removeSession(session *Session) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.sessions, session.ID)
}

// Command builds the client process of a session. The client inherits the server's
// environment with TERM set to the terminal the player requested.
func (s *Server) Command(ctx context.Context, session *Session, term string) *exec.Cmd {
	args := append([]string(nil), s.Args...)
	args = append(args, "-name", session.Name)

	cmd := exec.CommandContext(ctx, s.Binary, args...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", term))
	return cmd
}

func setWinsize(f *os.File, w, h int) error {
	return pty.Setsize(f, &pty.Winsize{Rows: uint16(h), Cols: uint16(w)})
}

func (s *Server) handle(sshSession ssh.Session) {
	ptyReq, winCh, isPty := sshSession.Pty()
	if !isPty {
		io.WriteString(sshSession, "failed to start termtris: non-interactive terminals are not supported\n")

		sshSession.Exit(1)
		return
	}

	session := s.addSession(sshSession.User(), sshSession.RemoteAddr().String())
	defer s.removeSession(session)

	s.Logger.Printf("%s connected from %s", session, session.Remote)
	if s.OnJoin != nil {
		s.OnJoin(session)
	}

	cmdCtx, cancelCmd := context.WithCancel(sshSession.Context())
	defer cancelCmd()

	cmd := s.Command(cmdCtx, session, ptyReq.Term)

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(ptyReq.Window.Height), Cols: uint16(ptyReq.Window.Width)})
	if err != nil {
		s.Logger.Printf("%s: failed to start %s: %s", session, s.Binary, err)
		io.WriteString(sshSession, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))

		sshSession.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			if err := setWinsize(f, win.Width, win.Height); err != nil {
				s.Logger.Printf("%s: failed to resize: %s", session, err)
			}
		}
	}()

	go func() {
		io.Copy(f, sshSession)
	}()
	io.Copy(sshSession, f)

	err = cmd.Wait()
	cancelCmd()

	s.Logger.Printf("%s disconnected after %s", session, session.Duration().Round(time.Second))
	if s.OnLeave != nil {
		s.OnLeave(session)
	}

	sshSession.Exit(exitStatus(err))
}

func exitStatus(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
