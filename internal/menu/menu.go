// Package menu is the interactive controller of the console client: a
// state machine that reads a choice, runs one operation to completion and
// returns to the main menu.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/mahasiswa/internal/client"
	"github.com/aanand-mishra/mahasiswa/internal/console"
	"github.com/aanand-mishra/mahasiswa/internal/messages"
	"github.com/aanand-mishra/mahasiswa/internal/types"
)

// Store is the record transport the controller talks to.
// *client.Client implements it.
type Store interface {
	List(ctx context.Context, f client.Filter) ([]types.Mahasiswa, error)
	Get(ctx context.Context, id string) (types.Mahasiswa, error)
	Create(ctx context.Context, m types.Mahasiswa) (types.Mahasiswa, error)
	Update(ctx context.Context, id string, m types.Mahasiswa) error
	Delete(ctx context.Context, id string) error
}

// App holds everything the loop and its operations need. It is built once
// at startup and passed nowhere else.
type App struct {
	store Store
	con   *console.Console
	msg   *messages.Catalog
	log   *slog.Logger

	state State
}

// New creates the controller in the MainMenu state.
func New(store Store, con *console.Console, msg *messages.Catalog, log *slog.Logger) *App {
	return &App{
		store: store,
		con:   con,
		msg:   msg,
		log:   log,
		state: MainMenu,
	}
}

// State returns the current state.
func (a *App) State() State {
	return a.state
}

// Run drives the loop until the operator exits or the input ends.
// Operation failures are rendered and never returned; only an input error
// other than end of input is.
func (a *App) Run(ctx context.Context) error {
	a.con.Header(a.msg.T(messages.Welcome))

	for a.state != Exiting {
		err := a.step(ctx)
		if errors.Is(err, io.EOF) {
			a.log.Debug("input closed, exiting", slog.String("state", a.state.String()))
			a.con.Println()
			a.state = Exiting
			break
		}
		if err != nil {
			return fmt.Errorf("menu: %s: %w", a.state, err)
		}
	}

	a.con.Println(a.msg.T(messages.Exiting))
	return nil
}

// step runs the current state once and moves to the next one.
func (a *App) step(ctx context.Context) error {
	from := a.state

	switch a.state {
	case MainMenu:
		return a.mainMenu()

	case AddingStudent, ViewingAll, Searching, Editing, Deleting:
		if err := a.operation(a.state)(ctx); err != nil {
			return err
		}
		// Add waits for Enter on its own.
		if a.state != AddingStudent {
			if err := a.con.Wait(a.msg.T(messages.PressEnter)); err != nil {
				return err
			}
		}
		a.state, _ = Next(a.state, "")

	default:
		a.log.Error("unexpected state", slog.String("state", a.state.String()))
		a.con.Failure(a.msg.T(messages.UnknownState))
		a.state = MainMenu
	}

	a.log.Debug("state transition",
		slog.String("from", from.String()),
		slog.String("to", a.state.String()))
	return nil
}

func (a *App) operation(s State) func(context.Context) error {
	switch s {
	case AddingStudent:
		return a.addStudent
	case ViewingAll:
		return a.viewAll
	case Searching:
		return a.search
	case Editing:
		return a.edit
	default:
		return a.deleteStudent
	}
}

func (a *App) mainMenu() error {
	a.con.Println()
	a.con.Header(a.msg.T(messages.MainMenuHeader))
	for _, o := range mainMenuOptions {
		a.con.Printf("%s. %s\n", o.key, a.msg.T(o.label))
	}

	choice, err := a.con.Prompt(a.msg.T(messages.ChooseOption))
	if err != nil {
		return err
	}

	next, ok := Next(MainMenu, choice)
	if !ok {
		a.con.Failure(a.msg.T(messages.InvalidOption))
	}
	if next != MainMenu {
		a.log.Debug("option selected", slog.String("choice", choice), slog.String("to", next.String()))
	}
	a.state = next
	return nil
}

// --- rendering helpers ---

func (a *App) title(labelKey string) {
	a.con.Println()
	a.con.Header("--- " + a.msg.T(labelKey) + " ---")
}

func (a *App) invalidInput(reasonKey string) {
	a.con.Failure(a.msg.T(messages.InvalidInput, a.msg.T(reasonKey)))
}

func (a *App) renderList(headerKey string, list []types.Mahasiswa) {
	a.con.Println(a.msg.T(headerKey))
	for i, m := range list {
		a.con.Printf("%d. %s\n", i+1, a.msg.Record(m))
	}
}

// apiError renders an unexpected failure with the status when there is one.
func (a *App) apiError(actionKey string, err error) {
	a.log.Error("api call failed",
		slog.String("action", actionKey),
		slog.Int("status", client.StatusOf(err)),
		slog.String("error", err.Error()))
	a.con.Failure(a.msg.T(messages.APIError, a.msg.T(actionKey), a.msg.Status(client.StatusOf(err))))
}
