// Command snake plays the game in the terminal. It is a thin driver
// over the engine: keys become direction requests, the loop's ticker
// advances the snake, and the view redraws from committed snapshots.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jrubins/snake/game"
	"github.com/jrubins/snake/loop"
)

var (
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	bodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	appleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	frameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	lostStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type snapshotMsg struct {
	snap game.Snapshot
	ok   bool
}

type model struct {
	loop    *loop.Loop
	updates <-chan game.Snapshot
	snap    game.Snapshot
}

func initialModel(l *loop.Loop) model {
	return model{
		loop:    l,
		updates: l.Updates(),
	}
}

func waitForUpdate(updates <-chan game.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		return snapshotMsg{snap: snap, ok: ok}
	}
}

func (m model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.loop.RequestDirection(game.Up)
		case "down", "j":
			m.loop.RequestDirection(game.Down)
		case "left", "h":
			m.loop.RequestDirection(game.Left)
		case "right", "l":
			m.loop.RequestDirection(game.Right)
		}
		return m, nil

	case snapshotMsg:
		if !msg.ok {
			// Loop finished; the last snapshot stays on screen until quit.
			return m, nil
		}
		m.snap = msg.snap
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	rendered := ""
	for row := 0; row < game.BoardSize; row++ {
		line := ""
		for col := 0; col < game.BoardSize; col++ {
			switch m.snap.Cells[row*game.BoardSize+col] {
			case game.SnakeHead:
				line += headStyle.Render("█") + " "
			case game.SnakeBody:
				line += bodyStyle.Render("█") + " "
			case game.Apple:
				line += appleStyle.Render("●") + " "
			default:
				line += ". "
			}
		}
		rendered += line + "\n"
	}

	s := frameStyle.Render(rendered) + "\n"
	if m.snap.Lost {
		s += lostStyle.Render("game over") + "\n"
	}
	s += helpStyle.Render("arrows/hjkl move · q quits") + "\n"
	return s
}

func main() {
	tick := flag.Duration("tick", loop.DefaultTickInterval, "Interval between snake moves")
	seed := flag.Int64("seed", 0, "Apple placement seed (0 = current time)")
	logPath := flag.String("log", "", "File for engine logs (default discard; stderr would fight the TUI)")
	flag.Parse()

	logW := io.Writer(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logW = f
	}
	logger := slog.New(slog.NewTextHandler(logW, nil))

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	l := loop.New(loop.Config{
		TickInterval: *tick,
		Rng:          rand.New(rand.NewSource(s)),
		Logger:       logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	p := tea.NewProgram(initialModel(l), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Failed to run TUI: %v", err)
	}
}
