package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/storefront/internal/client/authz"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/metrics"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errTooManyRedirects = errors.New("too many redirects")

// Deps are the collaborators of the CLI.
type Deps struct {
	In  io.Reader
	Out io.Writer
	Log logging.Logger

	Auth       services.AuthService
	Catalog    services.CatalogService
	Gate       *authz.Gate
	API        *client.HTTPClient
	Navigation *Navigation
	Metrics    *metrics.Metrics
}

type App struct {
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger

	auth    services.AuthService
	catalog services.CatalogService
	gate    *authz.Gate
	api     *client.HTTPClient
	nav     *Navigation
	metrics *metrics.Metrics
	dialogs *terminalDialogs

	location string
	view     view
}

func NewApp(d Deps) *App {
	reader := bufio.NewReader(d.In)
	return &App{
		reader:  reader,
		out:     d.Out,
		log:     d.Log,
		auth:    d.Auth,
		catalog: d.Catalog,
		gate:    d.Gate,
		api:     d.API,
		nav:     d.Navigation,
		metrics: d.Metrics,
		dialogs: &terminalDialogs{reader: reader, out: d.Out},
	}
}

// Run opens the landing view and blocks in the REPL until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the storefront CLI (type 'help' for commands)")
	_ = a.goTo(ctx, authz.FallbackPath)
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// status is the prompt suffix: location plus the current identity.
func (a *App) status(ctx context.Context) string {
	s := a.location
	if id, ok := a.auth.Current(ctx); ok {
		name := id.Name
		if name == "" {
			name = id.Email
		}
		s += fmt.Sprintf(" (%s %s)", name, id.Role)
	}
	return s
}

// goTo authorizes path and opens its view, following gate redirects.
func (a *App) goTo(ctx context.Context, path string) error {
	for hops := 0; hops < 3; hops++ {
		out := a.gate.Authorize(ctx, path)
		if out.Decision != authz.Permit {
			a.log.Debug(ctx, "navigation redirected", "from", path, "to", out.Target, "decision", out.Decision.String())
			path = out.Target
			continue
		}

		v, err := a.buildView(out.Route, out.Params)
		if err != nil {
			a.println("Error:", err)
			return err
		}
		a.location = path
		a.view = v
		return v.enter(ctx)
	}
	return errTooManyRedirects
}

// settle applies navigation queued while the last command ran.
func (a *App) settle(ctx context.Context) {
	if a.nav == nil {
		return
	}
	if path, ok := a.nav.take(); ok {
		a.println("Session ended, returning to", path)
		_ = a.goTo(ctx, path)
	}
}
