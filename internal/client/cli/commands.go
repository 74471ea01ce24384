package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/authz"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/common"
)

var globalCommands = []string{"go <path>", "login", "register", "logout", "whoami", "stats", "exit"}

func (a *App) help() []string {
	cmds := append([]string(nil), globalCommands...)
	if a.view != nil {
		cmds = append(cmds, a.view.help()...)
	}
	return cmds
}

func (a *App) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "go":
		if len(args) == 0 {
			a.println("Usage: go <path>")
			return nil
		}
		return a.goTo(ctx, args[0])
	case "login":
		return a.Login(ctx)
	case "register":
		return a.Register(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "stats":
		return a.Stats(ctx)
	}

	if a.view != nil {
		if handled, err := a.view.handle(ctx, cmd, args); handled {
			return err
		}
	}
	return errUnknownCommand
}

// Login prompts for credentials and, on success, moves to the landing view
// of the user's role. Failures are shown inline.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	res, err := a.auth.Login(ctx, email, password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		a.println("Incorrect email or password")
		return err
	case errors.Is(err, services.ErrUnknownRole):
		a.println("Unable to determine user role")
		return err
	case err != nil:
		a.log.Error(ctx, "login failed", "err", err)
		a.println("Login failed:", err)
		return err
	}

	a.printf("Welcome, %s!\n", services.Capitalize(res.Identity.Name))
	return a.goTo(ctx, res.Landing)
}

// Register prompts for the account fields and moves to the login view on
// success. Server messages are shown when the API provides them.
func (a *App) Register(ctx context.Context) error {
	var r models.Registration
	var err error

	if r.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if r.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if r.Password, err = getPassword(a.reader, a.out); err != nil {
		return err
	}
	if r.Telephone, err = getSimpleText(a.reader, "Enter telephone", a.out); err != nil {
		return err
	}

	if err := a.auth.Register(ctx, r); err != nil {
		if ve, ok := common.AsValidationError(err); ok && len(ve.Messages) > 0 {
			a.println("Registration failed:", strings.Join(ve.Messages, "; "))
		} else {
			a.println("Registration failed")
		}
		a.log.Warn(ctx, "register failed", "err", err)
		return err
	}

	a.dialogs.Success(ctx, "Registration complete", "Your account has been created.")
	return a.goTo(ctx, authz.LoginPath)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "err", err)
		return err
	}
	a.println("Logged out")
	return a.goTo(ctx, authz.FallbackPath)
}

func (a *App) Whoami(ctx context.Context) error {
	id, ok := a.auth.Current(ctx)
	if !ok {
		a.println("Not logged in")
		return nil
	}
	RenderTable(a.out, []string{"Field", "Value"}, [][]string{
		{"id", orDash(id.SubjectID)},
		{"name", orDash(id.Name)},
		{"email", orDash(id.Email)},
		{"role", orDash(string(id.Role))},
	})
	return nil
}

// Stats prints the client-side request counters.
func (a *App) Stats(context.Context) error {
	samples, err := a.metrics.Counters()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, []string{s.Name, orDash(s.Labels), fmt.Sprint(s.Value)})
	}
	RenderTable(a.out, []string{"Metric", "Labels", "Value"}, rows)
	return nil
}
