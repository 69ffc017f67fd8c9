package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/qnkhuat/termtris/pkg"
	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/game"
	"github.com/qnkhuat/termtris/pkg/gui"
)

var (
	logPath    string
	themeName  string
	themesPath string
	nickname   string
	seed       int64
	noFlash    bool
	logVerbose bool
)

func init() {
	flag.StringVar(&logPath, "log", "./termtris.log", "path to log file")
	flag.StringVar(&themeName, "theme", gui.ThemeBasic.Name, "color theme")
	flag.StringVar(&themesPath, "themes", "", "JSON file with additional themes")
	flag.StringVar(&nickname, "name", "", "name shown next to the board")
	flag.Int64Var(&seed, "seed", 0, "piece sequence seed, random when 0")
	flag.BoolVar(&noFlash, "no-flash", false, "remove completed lines without flashing them")
	flag.BoolVar(&logVerbose, "verbose", false, "enable verbose logging")
}

func loadTheme(name, path string) (gui.Theme, error) {
	themes := gui.Themes
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return gui.Theme{}, fmt.Errorf("failed to open themes: %w", err)
		}
		defer f.Close()

		custom, err := gui.ReadThemes(f)
		if err != nil {
			return gui.Theme{}, err
		}
		themes = append(custom, themes...)
	}

	return gui.ImportThemes(name, themes)
}

func main() {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("failed to start termtris: non-interactive terminals are not supported")
	}

	theme, err := loadTheme(themeName, themesPath)
	if err != nil {
		log.Fatalf("failed to load theme: %s", err)
	}

	if err := pkg.InitLog(logPath, "CLIENT: "); err != nil {
		log.Fatal(err)
	}

	cfg := game.DefaultConfig()
	cfg.LineClearAnimation = !noFlash
	cfg.Seed = seed
	cfg.Events = game.LogEvents(log.Default(), logVerbose)

	var runner *game.Runner
	ui := gui.NewGUI(theme, pkg.Nickname(nickname), func(a event.GameAction) bool {
		return runner.Do(a)
	})
	var renderer game.Renderer = ui
	if logVerbose {
		renderer = game.LogFinalBoard(ui, log.Default())
	}
	runner = game.NewRunner(game.NewGame(cfg), renderer, log.Default())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("Started %s", nickname)

	go func() {
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("runner stopped: %s", err)
		}
		ui.Stop()
	}()

	if err := ui.Run(ctx); err != nil {
		log.Fatalf("failed to run application: %s", err)
	}

	cancel()
	<-runner.Done()
}
