/*
Package terminal renders a game session in the terminal and turns key presses into commands.

The maze is drawn into a bordered box whose inner size becomes the session viewport, so the
level always fills the terminal. A render ticker redraws at the frame rate, independent of the
physics tick.
*/
package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beka-birhanu/gravity-maze/config"
	"github.com/beka-birhanu/gravity-maze/game"
	"github.com/beka-birhanu/gravity-maze/gravity"
	"github.com/beka-birhanu/gravity-maze/physics"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const helpText = "[::b]←↑↓→[::-] gravity  [::b]R[::-] retry  [::b]Q[::-] quit"

// Session is the part of a game session the UI drives.
type Session interface {
	Submit(game.Command) bool
	Resize(width, height float64) bool
	Latest() game.Frame
}

// Palette holds the drawing colours.
type Palette struct {
	Wall       tcell.Color
	Player     tcell.Color
	PlayerHit  tcell.Color
	Goal       tcell.Color
	Hazard     tcell.Color
	Background tcell.Color
}

// PaletteFrom converts hex colours from configuration.
func PaletteFrom(p config.Palette) Palette {
	return Palette{
		Wall:       tcell.GetColor(p.Wall),
		Player:     tcell.GetColor(p.Player),
		PlayerHit:  tcell.GetColor(p.Hazard),
		Goal:       tcell.GetColor(p.Goal),
		Hazard:     tcell.GetColor(p.Hazard),
		Background: tcell.GetColor(p.Background),
	}
}

// UI is the terminal front end of one session.
type UI struct {
	app           *tview.Application
	board         *tview.Box
	hud           *tview.TextView
	session       Session
	palette       Palette
	frameInterval time.Duration

	viewW, viewH int // Only touched from the draw goroutine
}

// New builds the UI. screen may be nil to use the real terminal.
func New(session Session, palette Palette, frameInterval time.Duration, screen tcell.Screen) *UI {
	u := &UI{
		app:           tview.NewApplication(),
		session:       session,
		palette:       palette,
		frameInterval: frameInterval,
	}
	if screen != nil {
		u.app.SetScreen(screen)
	}

	u.board = tview.NewBox().
		SetBorder(true).
		SetTitle(" GRAVITY MAZE ").
		SetBackgroundColor(palette.Background)
	u.board.SetDrawFunc(u.drawBoard)

	u.hud = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(u.board, 0, 1, true).
		AddItem(u.hud, 2, 0, false)

	u.app.SetRoot(layout, true)
	u.app.SetInputCapture(u.handleKey)
	return u
}

// Run blocks until the user quits or ctx ends.
func (u *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go u.renderLoop(ctx)
	go func() {
		<-ctx.Done()
		u.app.Stop()
	}()

	return u.app.Run()
}

// Stop closes the UI.
func (u *UI) Stop() {
	u.app.Stop()
}

func (u *UI) renderLoop(ctx context.Context) {
	ticker := time.NewTicker(u.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frame := u.session.Latest()
			u.app.QueueUpdateDraw(func() {
				u.hud.SetText(hudText(frame))
			})
		}
	}
}

func (u *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	cmd, ok := commandFor(event)
	if !ok {
		return event
	}

	u.session.Submit(cmd)
	if cmd.Kind == game.CommandQuit {
		u.app.Stop()
	}
	return nil
}

// drawBoard draws the latest frame inside the board border. A changed inner size is
// forwarded to the session as the new viewport.
func (u *UI) drawBoard(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	innerX, innerY, innerW, innerH := x+1, y+1, width-2, height-2
	if innerW <= 0 || innerH <= 0 {
		return innerX, innerY, max(innerW, 0), max(innerH, 0)
	}

	if innerW != u.viewW || innerH != u.viewH {
		if u.session.Resize(float64(innerW), float64(innerH)*YScale) {
			u.viewW, u.viewH = innerW, innerH
		}
	}

	frame := u.session.Latest()
	raster := Rasterize(frame, innerW, innerH)
	base := tcell.StyleDefault.Background(u.palette.Background)

	for row := 0; row < innerH; row++ {
		for col := 0; col < innerW; col++ {
			g := raster.At(col, row)
			if g.Rune == 0 {
				screen.SetContent(innerX+col, innerY+row, ' ', nil, base)
				continue
			}
			screen.SetContent(innerX+col, innerY+row, g.Rune, nil, base.Foreground(u.colorFor(g, frame)))
		}
	}

	if msg := frame.Snapshot.Message; msg != "" {
		color := u.palette.Goal
		if frame.Snapshot.Status == game.GameOver.String() {
			color = u.palette.Hazard
		}
		tview.Print(screen, "[::b] "+msg+" ", innerX, innerY+innerH/2, innerW, tview.AlignCenter, color)
	}

	return innerX, innerY, innerW, innerH
}

func (u *UI) colorFor(g Glyph, f game.Frame) tcell.Color {
	switch g.Tag {
	case physics.TagWall:
		return u.palette.Wall
	case physics.TagGoal:
		return u.palette.Goal
	case physics.TagHazard:
		return u.palette.Hazard
	case physics.TagPlayer:
		if f.Snapshot.PlayerHit {
			return u.palette.PlayerHit
		}
		return u.palette.Player
	}
	return tcell.ColorWhite
}

// commandFor maps a key press to a game command.
func commandFor(event *tcell.EventKey) (game.Command, bool) {
	switch event.Key() {
	case tcell.KeyUp:
		return game.Tilt(gravity.Up), true
	case tcell.KeyDown:
		return game.Tilt(gravity.Down), true
	case tcell.KeyLeft:
		return game.Tilt(gravity.Left), true
	case tcell.KeyRight:
		return game.Tilt(gravity.Right), true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.Quit(), true
	case tcell.KeyRune:
		switch event.Rune() {
		case 'r', 'R':
			return game.Retry(), true
		case 'q', 'Q':
			return game.Quit(), true
		}
	}
	return game.Command{}, false
}

func hudText(f game.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]LEVEL %d[::-]   DEATHS %d", f.Snapshot.Level, f.Snapshot.Deaths)
	switch {
	case f.Snapshot.Message != "":
		fmt.Fprintf(&b, "   [::b]%s[::-]", f.Snapshot.Message)
	default:
		b.WriteString("   [red]avoid the red traps[-]")
	}
	b.WriteString("\n")
	b.WriteString(helpText)
	return b.String()
}
