// Package session owns the client's single session credential: the signed
// access token returned by the login endpoint.
//
// The credential is process-wide state with an explicit lifecycle:
//   - Load reads the persisted token once at application start;
//   - SetToken (login), Clear (logout, or a 401 seen by the gateway) mutate it;
//   - nothing tears it down: the token survives restarts until cleared.
//
// Store is safe for concurrent use. Reads are served from memory; every
// mutation is written through to the local database first.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/storefront/internal/dbx"
)

// TokenKey is the fixed key the credential is persisted under.
const TokenKey = "access_token"

type Store struct {
	db      *sql.DB
	newRepo func(dbx.DBTX) credentials.Repository

	mu    sync.RWMutex
	token string
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
		newRepo: func(tx dbx.DBTX) credentials.Repository {
			return credentials.NewSQLiteRepository(tx)
		},
	}
}

// Load replaces the in-memory credential with the persisted one, if any.
func (s *Store) Load(ctx context.Context) error {
	token, found, err := s.newRepo(s.db).Get(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if found {
		s.token = token
	} else {
		s.token = ""
	}
	return nil
}

// SetToken persists token as the only stored credential. An empty token is
// an implicit Clear.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.Put(ctx, TokenKey, token)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// GetToken returns the current credential; ok is false when there is none.
func (s *Store) GetToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Clear drops the credential. The in-memory copy is dropped even when the
// database delete fails, so a rejected token is never sent again.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.newRepo(s.db).Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
