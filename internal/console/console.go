// Package console hosts the app in a terminal. It draws whatever the view
// router renders and turns mouse clicks and key presses into clicks.
package console

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/pefman/alpha-counter/internal/game"
	"github.com/pefman/alpha-counter/internal/view"
)

var (
	styleBase     = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(201, 167, 83)).Bold(true)
	styleHeading  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(154, 164, 178)).Underline(true)
	styleButton   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(201, 167, 83))
	styleDisabled = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	styleFocus    = tcell.StyleDefault.Reverse(true)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const helpLine = "click or Tab/Enter to choose · q to quit"

// hitBox is where a button was drawn on the last frame.
type hitBox struct {
	x0, x1, y int
	click     view.Click
	disabled  bool
	node      view.Node
}

type quitEvent struct{}

type App struct {
	screen tcell.Screen
	store  *game.Store
	router *view.Router
	log    zerolog.Logger

	snap    game.Snapshot
	hits    []hitBox
	focus   int
	status  string
	pressed bool
}

// New wraps an initialised screen.
func New(screen tcell.Screen, store *game.Store, router *view.Router, log zerolog.Logger) *App {
	return &App{
		screen: screen,
		store:  store,
		router: router,
		log:    log.With().Str("component", "console").Logger(),
		focus:  -1,
	}
}

// Run draws the current state and processes events until the user quits,
// ctx is cancelled or the screen is finalised. The caller owns Init/Fini.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	unsubscribe := a.store.Subscribe(func(snap game.Snapshot) {
		// Listeners run on the transacting goroutine; drawing stays on ours.
		if err := a.screen.PostEvent(tcell.NewEventInterrupt(snap)); err != nil {
			a.log.Warn().Err(err).Uint64("version", snap.Version).Msg("dropped redraw")
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{}))
		case <-done:
		}
	}()

	a.draw(a.store.Current())
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := a.handle(ev); quit {
			return nil
		}
	}
}

func (a *App) handle(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.draw(a.snap)
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case quitEvent:
			return true
		case game.Snapshot:
			if data.Version >= a.snap.Version {
				a.status = ""
				a.draw(data)
			}
		}
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyTab, tcell.KeyRight, tcell.KeyDown:
		a.moveFocus(1)
	case tcell.KeyBacktab, tcell.KeyLeft, tcell.KeyUp:
		a.moveFocus(-1)
	case tcell.KeyEnter:
		if a.focus >= 0 && a.focus < len(a.hits) {
			a.activate(a.hits[a.focus])
		}
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return true
		}
	}
	return false
}

// Only the press edge of button 1 counts as a click.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	if !down {
		a.pressed = false
		return
	}
	if a.pressed {
		return
	}
	a.pressed = true
	x, y := ev.Position()
	for i, h := range a.hits {
		if y == h.y && x >= h.x0 && x < h.x1 {
			a.focus = i
			a.activate(h)
			return
		}
	}
}

func (a *App) activate(h hitBox) {
	if h.disabled {
		a.setStatus("Both players must pick a character first")
		return
	}
	if _, err := a.router.Dispatch(h.click); err != nil {
		a.log.Debug().Err(err).Str("control", string(h.click.Control)).Msg("click rejected")
		a.setStatus(err.Error())
	}
}

func (a *App) setStatus(s string) {
	a.status = s
	a.draw(a.snap)
}

func (a *App) moveFocus(step int) {
	n := len(a.hits)
	if n == 0 {
		return
	}
	i := a.focus
	for k := 0; k < n; k++ {
		i = (i + step + n) % n
		if !a.hits[i].disabled {
			a.focus = i
			break
		}
	}
	a.draw(a.snap)
}
