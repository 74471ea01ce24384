package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/identity"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

// memTokens is an in-memory session store.
type memTokens struct {
	token  string
	setErr error
}

func (m *memTokens) SetToken(_ context.Context, token string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.token = token
	return nil
}

func (m *memTokens) Clear(context.Context) error {
	m.token = ""
	return nil
}

func (m *memTokens) GetToken() (string, bool) { return m.token, m.token != "" }

func decoderFor(tokens *memTokens) *identity.Decoder {
	return identity.NewDecoder(tokens, logging.Nop())
}
