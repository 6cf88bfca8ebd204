package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clinicadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/clinicadmin/internal/common"
	"github.com/dmitrijs2005/clinicadmin/internal/cryptox"
	"github.com/dmitrijs2005/clinicadmin/internal/dbx"
)

const saltSize = 16

// ErrEmptySecret is returned by NewStore without a sealing secret.
var ErrEmptySecret = errors.New("session secret is empty")

// Store is the persistent Session. Values are sealed with AES-GCM under a
// key derived from the configured secret and a random per-install salt, so a
// copied database file is useless without the secret.
type Store struct {
	db   *sql.DB
	repo metadata.Repository
	key  []byte
}

type sealedValue struct {
	Value json.RawMessage `json:"v"`
}

// NewStore opens the session kept in db, creating the install salt on first
// use.
func NewStore(ctx context.Context, db *sql.DB, secret string) (*Store, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	repo := metadata.NewSQLiteRepository(db)

	salt, err := repo.Get(ctx, saltKey)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(saltSize)
		if err := repo.Set(ctx, saltKey, salt); err != nil {
			return nil, err
		}
	}

	return &Store{
		db:   db,
		repo: repo,
		key:  cryptox.DeriveMasterKey([]byte(secret), salt),
	}, nil
}

func (s *Store) Token(ctx context.Context, key string) (string, error) {
	var token string
	ok, err := s.load(ctx, tokenPrefix+key, &token)
	if err != nil || !ok {
		return "", err
	}
	return token, nil
}

// SetToken stores token under key; an empty token removes it.
func (s *Store) SetToken(ctx context.Context, key, token string) error {
	if token == "" {
		return s.repo.Delete(ctx, tokenPrefix+key)
	}
	return s.save(ctx, tokenPrefix+key, token)
}

// Clear removes tokens and stashed records in one transaction. The install
// salt stays.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, prefix := range []string{tokenPrefix, stashPrefix} {
			if _, err := repo.DeletePrefix(ctx, prefix); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Stash(ctx context.Context, resource string, v any) error {
	return s.save(ctx, stashPrefix+resource, v)
}

func (s *Store) Stashed(ctx context.Context, resource string, v any) (bool, error) {
	return s.load(ctx, stashPrefix+resource, v)
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	sealed, err := cryptox.Seal(sealedValue{Value: raw}, s.key)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}

	return s.repo.Set(ctx, key, sealed)
}

func (s *Store) load(ctx context.Context, key string, v any) (bool, error) {
	sealed, err := s.repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if sealed == nil {
		return false, nil
	}

	var sv sealedValue
	if err := cryptox.Open(sealed, s.key, &sv); err != nil {
		return false, fmt.Errorf("%w: cannot unseal %s (secret changed?): %v", common.ErrInvalidToken, key, err)
	}

	if err := json.Unmarshal(sv.Value, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
