package session

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"minicrm/internal/domain"
	"minicrm/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrNoSession         = errors.New("no session")
	ErrIncompleteSession = errors.New("session needs both token and user")
)

// KVStore is the persistent key-value backend.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Store keeps the bearer token and user record for each browser, plus the
// last rendered collection of each view. Sessions never expire here; a token
// is trusted until the API rejects it.
type Store struct {
	kv      KVStore
	viewTTL time.Duration
}

func NewStore(kv KVStore, viewTTL time.Duration) *Store {
	return &Store{kv: kv, viewTTL: viewTTL}
}

// Save persists the session under a fresh handle and returns the handle.
func (s *Store) Save(ctx context.Context, sess domain.Session) (string, error) {
	if !sess.Valid() {
		return "", ErrIncompleteSession
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	handle := uuid.NewString()
	if err := s.kv.Set(ctx, sessionKey(handle), data, 0); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return handle, nil
}

func (s *Store) Load(ctx context.Context, handle string) (*domain.Session, error) {
	if handle == "" {
		return nil, ErrNoSession
	}

	data, err := s.kv.Get(ctx, sessionKey(handle))
	if errors.Is(err, repository.ErrKeyNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrNoSession, err)
	}
	if !sess.Valid() {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *Store) Clear(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	return s.kv.Delete(ctx, sessionKey(handle))
}

// LoadView decodes the cached collection of a view into dst. It reports
// false when nothing is cached.
func (s *Store) LoadView(ctx context.Context, sess *domain.Session, view string, dst any) (bool, error) {
	data, err := s.kv.Get(ctx, viewKey(sess, view))
	if errors.Is(err, repository.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode view %s: %w", view, err)
	}
	return true, nil
}

func (s *Store) StoreView(ctx context.Context, sess *domain.Session, view string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode view %s: %w", view, err)
	}
	return s.kv.Set(ctx, viewKey(sess, view), data, s.viewTTL)
}

func sessionKey(handle string) string {
	return "session:" + digest(handle)
}

func viewKey(sess *domain.Session, view string) string {
	return "view:" + digest(sess.Token)[:32] + ":" + view
}

// digest keeps raw handles and tokens out of the store.
func digest(s string) string {
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
