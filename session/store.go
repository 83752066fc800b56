// ABOUTME: Durable local session store backed by badger
// ABOUTME: Persists the bearer token, identity snapshot, and per-install id
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/roomly-app/roomly/models"
)

const (
	keyToken     = "roomly_token"
	keyUser      = "roomly_user"
	keyInstallID = "install_id"
)

// Store is the client's durable local state. It holds nothing the server
// does not own; losing it only forces a fresh auth exchange.
type Store struct {
	db *badger.DB
}

// DefaultPath returns the XDG data location of the store.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "roomly", "state")
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Token returns the stored bearer token, or "" when none exists. Implements
// api.TokenSource.
func (s *Store) Token() string {
	raw, err := s.get(keyToken)
	if err != nil {
		return ""
	}
	return string(raw)
}

func (s *Store) SetToken(token string) error {
	return s.set(keyToken, []byte(token))
}

// Identity returns the stored identity snapshot, or nil when none exists.
// A snapshot that no longer parses is cleared and treated as absent.
func (s *Store) Identity() *models.Identity {
	raw, err := s.get(keyUser)
	if err != nil {
		return nil
	}
	var id models.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		_ = s.delete(keyUser)
		return nil
	}
	return &id
}

func (s *Store) SetIdentity(id models.Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return s.set(keyUser, raw)
}

// ClearIdentity drops the stored snapshot, keeping the token untouched.
func (s *Store) ClearIdentity() error {
	return s.delete(keyUser)
}

// InstallID returns a stable per-install identifier, generating one on first
// use. It only labels debug snapshots; nothing functional keys off it.
func (s *Store) InstallID() string {
	if raw, err := s.get(keyInstallID); err == nil {
		return string(raw)
	}
	id := uuid.NewString()
	if err := s.set(keyInstallID, []byte(id)); err != nil {
		return id
	}
	return id
}

func (s *Store) get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return out, nil
}

func (s *Store) set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
