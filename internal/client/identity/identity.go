// Package identity derives the current user's identity from the session
// credential. Tokens are decoded without signature verification: the
// client only reads the claims, the server remains the authority on
// validity and expiry.
package identity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Known reports whether r is one of the roles the storefront issues.
func (r Role) Known() bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the decoded claim set of a session token.
type Identity struct {
	SubjectID string
	Name      string
	Email     string
	Role      Role
	// Claims holds every claim of the payload, including the ones above.
	Claims map[string]any
}

// UserID returns the subject as a numeric user id.
func (i *Identity) UserID() (int64, error) {
	id, err := strconv.ParseInt(i.SubjectID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("subject %q is not a user id: %w", i.SubjectID, err)
	}
	return id, nil
}

// Parse decodes the payload of a JWT without verifying its signature or
// expiry. The subject may be encoded as a JSON string or number.
func Parse(token string) (*Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	return &Identity{
		SubjectID: claimString(claims["sub"]),
		Name:      claimString(claims["name"]),
		Email:     claimString(claims["email"]),
		Role:      Role(claimString(claims["role"])),
		Claims:    claims,
	}, nil
}

func claimString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}

// TokenSource is the read side of the session store.
type TokenSource interface {
	GetToken() (string, bool)
}

// Decoder recomputes the identity from the session store on every call.
type Decoder struct {
	tokens TokenSource
	log    logging.Logger
}

func NewDecoder(tokens TokenSource, log logging.Logger) *Decoder {
	return &Decoder{tokens: tokens, log: log}
}

// Decode returns the identity behind the stored token. It reports false
// when there is no token or the token cannot be decoded; decode failures
// are logged and never returned.
func (d *Decoder) Decode(ctx context.Context) (*Identity, bool) {
	token, ok := d.tokens.GetToken()
	if !ok {
		return nil, false
	}

	id, err := Parse(token)
	if err != nil {
		d.log.Warn(ctx, "failed to decode session token", "err", err)
		return nil, false
	}
	return id, true
}
