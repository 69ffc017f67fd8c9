package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gliderlabs/ssh"

	"github.com/qnkhuat/termtris/pkg"
)

const (
	LogTimeFormat = "2006-01-02 15:04:05"
)

var (
	listenAddress string
	termtrisPath  string
	hostKeyPath   string
	logPath       string
	idleTimeout   time.Duration
	noFlash       bool
)

func init() {
	homeDir, _ := os.UserHomeDir()

	flag.StringVar(&listenAddress, "listen", pkg.SshPort, "host SSH server on network address")
	flag.StringVar(&termtrisPath, "termtris", "termtris", "path to termtris client")
	flag.StringVar(&hostKeyPath, "hostkey", path.Join(homeDir, ".ssh", "id_rsa"), "SSH host key, a temporary key is generated when missing")
	flag.StringVar(&logPath, "log", "", "path to log file, stdout when empty")
	flag.DurationVar(&idleTimeout, "idle-timeout", pkg.ServerIdleTimeout, "disconnect idle sessions after")
	flag.BoolVar(&noFlash, "no-flash", false, "remove completed lines without flashing them")
}

func main() {
	flag.Parse()

	if logPath != "" {
		if err := pkg.InitLog(logPath, "SERVER: "); err != nil {
			log.Fatal(err)
		}
	}

	binary, err := exec.LookPath(termtrisPath)
	if err != nil {
		log.Fatalf("failed to find termtris client: %s", err)
	}

	server := pkg.NewServer(listenAddress, binary)
	server.IdleTimeout = idleTimeout
	server.Logger = log.Default()
	if noFlash {
		server.Args = append(server.Args, "-no-flash")
	}

	if _, err := os.Stat(hostKeyPath); err == nil {
		if err := server.SetHostKey(hostKeyPath); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Printf("Host key %s not found, using a temporary key", hostKeyPath)
	}

	joined := color.New(color.FgGreen).SprintfFunc()
	left := color.New(color.FgYellow).SprintfFunc()
	server.OnJoin = func(s *pkg.Session) {
		fmt.Println(time.Now().Format(LogTimeFormat), joined("+ %s joined from %s", s.Name, s.Remote))
	}
	server.OnLeave = func(s *pkg.Session) {
		fmt.Println(time.Now().Format(LogTimeFormat), left("- %s left after %s", s.Name, s.Duration().Round(time.Second)))
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("failed to serve: %s", err)
		}
	}()

	color.New(color.FgCyan, color.Bold).Print("termtris")
	fmt.Printf(" listening on %s, launching %s\n", listenAddress, binary)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	<-sigc

	log.Printf("Shutting down with %d sessions", len(server.Sessions()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Close()
	}
}
