// Package main runs the device in a terminal. Q, W and E are the three
// buttons, + and - change the sim speed, Esc quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/geo"
	"github.com/MRamiBalles/sdop/internal/host"
	"github.com/MRamiBalles/sdop/internal/infra/storage"
	"github.com/MRamiBalles/sdop/internal/input"
	"github.com/MRamiBalles/sdop/internal/platform/audio"
	"github.com/MRamiBalles/sdop/internal/platform/clock"
	"github.com/MRamiBalles/sdop/internal/platform/logger"
)

// Device pixels per terminal cell.
const (
	cellW = 2
	cellH = 8
)

type Game struct {
	screen    tcell.Screen
	session   *host.Session
	player    *audio.Player
	audioInit bool
	logger    *logger.Logger
}

func NewGame(ctx context.Context, savePath, logPath string, mute bool) (*Game, error) {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	appLogger := logger.NewLoggerWithWriter(logFile)

	device, err := storage.OpenFileDevice(savePath)
	if err != nil {
		return nil, err
	}

	g := &Game{logger: appLogger}

	opts := host.Options{
		GameID:       "tui",
		Device:       device,
		Clock:        clock.Real{},
		SaveInterval: 10 * time.Second,
		Logger:       appLogger,
	}
	if !mute {
		g.player = audio.NewPlayer()
		if err := g.player.Initialize(); err != nil {
			// Non-fatal, the device runs without sound.
			appLogger.Warn("Audio initialization failed: " + err.Error())
		} else {
			g.audioInit = true
			opts.Player = g.player
		}
	}

	g.session, err = host.Boot(ctx, opts)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	g.screen = screen
	return g, nil
}

// handleInput returns false when the player quits.
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			g.session.Press(input.Left)
		case 'w', 'W':
			g.session.Press(input.Middle)
		case 'e', 'E':
			g.session.Press(input.Right)
		case '+':
			g.scaleBy(2)
		case '-':
			g.scaleBy(0.5)
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) scaleBy(f float32) {
	next := g.session.TimeScale() * f
	if next < 1 {
		next = 1
	}
	if err := g.session.SetTimeScale(next); err != nil {
		g.logger.Warn(err.Error())
	}
}

func (g *Game) draw(f display.Frame) {
	bg, fg := tcell.ColorBlack, tcell.ColorWhite
	if f.Inverted {
		bg, fg = fg, bg
	}
	style := tcell.StyleDefault.Background(bg).Foreground(fg)
	border := tcell.StyleDefault.Foreground(tcell.ColorGray)

	g.screen.Clear()
	cols, rows := geo.Width/cellW, geo.Height/cellH

	for y := 0; y <= rows+1; y++ {
		for x := 0; x <= cols+1; x++ {
			switch {
			case y == 0 || y == rows+1:
				g.screen.SetContent(x, y, '─', nil, border)
			case x == 0 || x == cols+1:
				g.screen.SetContent(x, y, '│', nil, border)
			default:
				g.screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}

	put := func(px, py float32, s string) {
		cx, cy := int(px)/cellW+1, int(py)/cellH+1
		for i, r := range s {
			if cx+i < 1 || cx+i > cols || cy < 1 || cy > rows {
				continue
			}
			g.screen.SetContent(cx+i, cy, r, nil, style)
		}
	}
	for _, s := range f.Sprites {
		put(s.Pos.X, s.Pos.Y, spriteGlyph(s.Name))
	}
	for _, t := range f.Texts {
		put(t.Pos.X, t.Pos.Y, t.Body)
	}

	status := fmt.Sprintf("%s  x%g  [Q][W][E] +/- Esc", f.Scene, g.session.TimeScale())
	for i, r := range status {
		g.screen.SetContent(i, rows+2, r, nil, tcell.StyleDefault)
	}
	g.screen.Show()
}

func spriteGlyph(name string) string {
	switch {
	case name == "poop":
		return "@"
	case len(name) > 4 && name[:4] == "pet_":
		return "&"
	case name == "":
		return "?"
	}
	return name[:1]
}

func (g *Game) run(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			if err := g.session.Step(ctx, now.Sub(last)); err != nil {
				g.logger.Error("Step failed: " + err.Error())
			}
			last = now
			g.draw(g.session.Frame())
		}
	}
}

func (g *Game) cleanup() {
	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.session.Save(saveCtx); err != nil {
		g.logger.Error("Final save failed: " + err.Error())
	}
	if g.audioInit {
		g.player.Cleanup()
	}
	g.screen.Fini()
}

func main() {
	savePath := flag.String("save", "./data/sdop-tui.bin", "save device file")
	logPath := flag.String("log", "sdop-tui.log", "log file")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	ctx := context.Background()
	game, err := NewGame(ctx, *savePath, *logPath, *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run(ctx)
}
