// Package driver runs the console event loop: it reads commands and button
// presses line by line and feeds them to the engine.
package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/they4kman/pisweep/game"
	"github.com/they4kman/pisweep/input"
	"github.com/they4kman/pisweep/screen"
)

const prompt = "Enter 6-bit (or 's'=start, 'a'=flag, 'd'=director, 'p'=print, 'q'=quit): "

var (
	ErrNoGame     = errors.New("game not started yet, press 's' first")
	ErrNoDirector = errors.New("no director configured")
)

type Config struct {
	In  io.Reader
	Out io.Writer

	// NewEngine builds the engine the first time a game is started. Later
	// starts reset it.
	NewEngine func() (*game.Engine, error)

	// Drawn after every change, if set
	Screen *screen.Manager

	Director game.Director
	// Let the director play each game to the end as soon as it starts
	AutoPlay      bool
	AutoPlayDelay time.Duration
}

type Console struct {
	config   Config
	engine   *game.Engine
	flagMode bool
}

func New(config Config) *Console {
	return &Console{config: config}
}

// Engine returns the running engine, or nil before the first start
func (console *Console) Engine() *game.Engine {
	return console.engine
}

func (console *Console) FlagMode() bool {
	return console.flagMode
}

// Run handles lines from In until a quit command, the end of input, or ctx is
// cancelled. Bad lines are reported on Out and do not stop the loop.
func (console *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(console.config.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	fmt.Fprint(console.config.Out, prompt)
	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return errors.Wrap(err, "reading input")
				default:
					return nil
				}
			}

			quit, err := console.Handle(ctx, line)
			if err != nil {
				fmt.Fprintf(console.config.Out, "Error: %v\n", err)
				log.WithError(err).WithField("line", line).Debug("Rejected input")
			}
			if quit {
				return nil
			}

			fmt.Fprint(console.config.Out, prompt)
		}
	}
}

// Handle runs a single line, and reports whether it asked to quit
func (console *Console) Handle(ctx context.Context, line string) (quit bool, err error) {
	command, err := input.ParseCommand(line)
	if err != nil {
		return false, err
	}

	switch command.Type {
	case input.Quit:
		return true, nil

	case input.Start:
		return false, console.start(ctx)

	case input.ToggleFlagMode:
		console.flagMode = !console.flagMode
		fmt.Fprintf(console.config.Out, "Flag mode: %v\n", console.flagMode)

	case input.Print:
		return false, console.draw()

	case input.DirectorStep:
		if console.engine == nil {
			return false, ErrNoGame
		}
		if console.config.Director == nil {
			return false, ErrNoDirector
		}
		if !console.act() {
			fmt.Fprintln(console.config.Out, "Director has nothing left to do")
		}
		return false, console.draw()

	case input.Press:
		if console.engine == nil {
			return false, ErrNoGame
		}
		return false, console.press(command.Row, command.Col)
	}

	return false, nil
}

func (console *Console) start(ctx context.Context) error {
	if console.engine == nil {
		engine, err := console.config.NewEngine()
		if err != nil {
			return errors.Wrap(err, "creating game")
		}
		console.engine = engine
		console.engine.Start()
		fmt.Fprintln(console.config.Out, "Game started!")
	} else {
		console.engine.Reset()
		fmt.Fprintln(console.config.Out, "New game started!")
	}

	if console.config.Director != nil {
		console.config.Director.Init(console.engine)
	}
	if err := console.draw(); err != nil {
		return err
	}

	if console.config.AutoPlay && console.config.Director != nil {
		return console.autoPlay(ctx)
	}
	return nil
}

func (console *Console) autoPlay(ctx context.Context) error {
	for console.act() {
		if err := console.draw(); err != nil {
			return err
		}

		if console.config.AutoPlayDelay > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(console.config.AutoPlayDelay):
			}
		}
	}
	return nil
}

// act runs one director step, announcing the result if it ends the game
func (console *Console) act() bool {
	wasOver := console.engine.IsOver()
	acted := console.config.Director.Act()
	console.announce(wasOver)
	return acted
}

func (console *Console) press(row, col int) error {
	wasOver := console.engine.IsOver()
	if err := console.engine.Press(row, col, console.flagMode); err != nil {
		return err
	}
	console.announce(wasOver)
	return console.draw()
}

func (console *Console) announce(wasOver bool) {
	if wasOver || !console.engine.IsOver() {
		return
	}

	switch console.engine.State() {
	case game.Won:
		fmt.Fprintln(console.config.Out, "You Win!")
	case game.Lost:
		fmt.Fprintln(console.config.Out, "Game Over")
	}
}

func (console *Console) draw() error {
	if console.config.Screen == nil {
		return nil
	}
	return console.config.Screen.Draw(console.config.Out)
}
