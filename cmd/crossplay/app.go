package main

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/crossplay/internal/config"
	"github.com/dshills/crossplay/internal/grid"
	"github.com/dshills/crossplay/internal/input"
	"github.com/dshills/crossplay/internal/input/key"
	"github.com/dshills/crossplay/internal/logging"
)

// errQuit is posted to the event loop to stop it.
var errQuit = errors.New("quit")

// reloadEvent carries settings from the config watcher to the event loop.
type reloadEvent struct {
	settings config.Settings
}

type app struct {
	screen tcell.Screen
	host   *termHost
	engine *input.Engine
	logger *logging.Logger
}

func newApp(screen tcell.Screen, p *grid.Puzzle, s config.Settings, logger *logging.Logger) (*app, error) {
	a := &app{
		screen: screen,
		host:   newTermHost(p, s.Input.EditMode),
		logger: logger,
	}
	a.host.changed = a.wake

	eng, err := input.New(a.host, s.InputConfig(), input.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	a.engine = eng

	eng.Hooks().Register(input.FuncHook{
		PostKeyEventFunc: func(ev key.Event, handled bool, _ input.State) {
			if handled {
				a.host.setLastKey(ev.String())
			}
		},
	}, "status", input.HookPriorityLow)
	if s.LogLevel() == logging.LevelDebug {
		eng.Hooks().Register(input.LoggingHook{Logger: logger.WithComponent("keys")}, "logging", input.HookPriorityHigh)
	}
	return a, nil
}

// wake asks the event loop to redraw. Safe from any goroutine.
func (a *app) wake() {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// quit stops the event loop. Safe from any goroutine.
func (a *app) quit() {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(errQuit))
}

// reload hands new settings to the event loop.
func (a *app) reload(s config.Settings) {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(reloadEvent{settings: s}))
}

func (a *app) apply(s config.Settings) {
	if err := a.engine.Reconfigure(s.InputConfig()); err != nil {
		a.logger.Warn("reconfigure: %v", err)
		a.host.setMessage("config rejected: " + err.Error())
		return
	}
	a.host.SetEditMode(s.Input.EditMode)
	a.logger.SetLevel(s.LogLevel())
	a.host.setMessage("config reloaded")
}

// run processes terminal events until quit. It closes the engine, which
// commits letters still waiting in the typing queue.
func (a *app) run() {
	defer func() {
		if err := a.engine.Close(); err != nil {
			a.logger.Warn("closing engine: %v", err)
		}
		snap := a.engine.Metrics().Snapshot()
		a.logger.Info("keys=%d handled=%d letters=%d jumps=%d p99=%s",
			snap.KeyEventsTotal, snap.KeysHandled, snap.LettersTyped, snap.ClueJumps, snap.P99Latency)
	}()

	a.redraw()
	for {
		switch ev := a.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyCtrlQ {
				return
			}
			if k, ok := key.FromTcell(ev); ok {
				a.engine.HandleEvent(k)
			}
		case *tcell.EventInterrupt:
			switch data := ev.Data().(type) {
			case error:
				if errors.Is(data, errQuit) {
					return
				}
			case reloadEvent:
				a.apply(data.settings)
			}
		}
		a.redraw()
	}
}

func (a *app) redraw() {
	draw(a.screen, a.host.view(), a.engine.Keybind())
}
