// Package authz decides whether a view may render for the current identity.
//
// The decision itself is the pure function Decide; Gate adds route lookup
// and reads the identity through an IdentitySource. Nothing is remembered
// between calls: every navigation is evaluated from scratch.
package authz

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/identity"
)

type Decision int

const (
	Permit Decision = iota
	RedirectLogin
	RedirectFallback
)

func (d Decision) String() string {
	switch d {
	case Permit:
		return "permit"
	case RedirectLogin:
		return "redirect-login"
	case RedirectFallback:
		return "redirect-fallback"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Decide applies the gate rules for a guarded view. No identity yields
// RedirectLogin. An identity whose role differs from a non-empty required
// role yields RedirectFallback. Anything else is permitted.
func Decide(required identity.Role, id *identity.Identity) Decision {
	if id == nil {
		return RedirectLogin
	}
	if required != "" && id.Role != required {
		return RedirectFallback
	}
	return Permit
}

// IdentitySource yields the current identity, if any.
type IdentitySource interface {
	Decode(ctx context.Context) (*identity.Identity, bool)
}

// Outcome is the result of authorizing one navigation.
type Outcome struct {
	Decision Decision
	// Route is the matched route; the zero Route when nothing matched.
	Route  Route
	Params map[string]string
	// Target is where to go instead when Decision is not Permit.
	Target string
}

type Gate struct {
	ids    IdentitySource
	routes []Route
}

func NewGate(ids IdentitySource, routes []Route) *Gate {
	return &Gate{ids: ids, routes: routes}
}

// Authorize resolves path against the route table and decides. Public routes
// are permitted without reading the session. Paths that match no route are
// sent to FallbackPath.
func (g *Gate) Authorize(ctx context.Context, path string) Outcome {
	for _, r := range g.routes {
		params, ok := r.Match(path)
		if !ok {
			continue
		}

		out := Outcome{Decision: Permit, Route: r, Params: params}
		if !r.Guarded {
			return out
		}

		id, _ := g.ids.Decode(ctx)
		out.Decision = Decide(r.RequiredRole, id)
		switch out.Decision {
		case RedirectLogin:
			out.Target = LoginPath
		case RedirectFallback:
			out.Target = FallbackPath
		}
		return out
	}

	return Outcome{Decision: RedirectFallback, Target: FallbackPath}
}
