// Package services contains application services for the storefront client.
// This file defines the authentication service: login, registration,
// logout and the current identity.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/authz"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/identity"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnknownRole        = errors.New("unable to determine user role")
)

// AuthClient is the part of the gateway used for authentication.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, r models.Registration) error
}

// TokenStore is the write side of the session store.
type TokenStore interface {
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// IdentitySource yields the identity behind the stored token.
type IdentitySource interface {
	Decode(ctx context.Context) (*identity.Identity, bool)
}

// LoginResult tells who logged in and where to go next.
type LoginResult struct {
	Identity *identity.Identity
	Landing  string
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token, store it and pick the
//     landing view by role (admin to the products admin, user to the
//     public entry point).
//   - Register: create an account; the caller moves to the login view.
//   - Logout: drop the stored token.
//   - Current: the identity decoded from the stored token, if any.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, r models.Registration) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*identity.Identity, bool)
}

type authService struct {
	client  AuthClient
	tokens  TokenStore
	decoder IdentitySource
}

func NewAuthService(c AuthClient, tokens TokenStore, decoder IdentitySource) AuthService {
	return &authService{client: c, tokens: tokens, decoder: decoder}
}

// Login fails with ErrInvalidCredentials for any rejection by the server
// and passes ErrUnavailable through. A token whose role is neither admin
// nor user stays stored and yields ErrUnknownRole.
func (a *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	if err := a.tokens.SetToken(ctx, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	id, ok := a.decoder.Decode(ctx)
	if !ok {
		return nil, ErrUnknownRole
	}

	switch id.Role {
	case identity.RoleAdmin:
		return &LoginResult{Identity: id, Landing: authz.ProductsAdminPath}, nil
	case identity.RoleUser:
		return &LoginResult{Identity: id, Landing: authz.FallbackPath}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, id.Role)
	}
}

func (a *authService) Register(ctx context.Context, r models.Registration) error {
	if err := a.client.Register(ctx, r); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.tokens.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*identity.Identity, bool) {
	return a.decoder.Decode(ctx)
}
