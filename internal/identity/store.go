package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Efrem-Yohanis/playwright-playground/internal/common"
	"github.com/Efrem-Yohanis/playwright-playground/internal/kvstore"
	"github.com/Efrem-Yohanis/playwright-playground/internal/logging"
)

// Store owns two blobs in the key-value store: the registry of all
// identities ("<prefix>-users", an ordered JSON array) and the current
// session pointer ("<prefix>-user", a single JSON object).
//
// The current identity is hydrated once at construction and then cached in
// memory. Store is not safe for concurrent use; the application model is a
// single interactive session.
type Store struct {
	kv         kvstore.Store
	log        logging.Logger
	usersKey   string
	currentKey string

	now     func() time.Time
	current *Identity

	// subscribers are notified after every successful change of the
	// current identity, including logout (nil identity).
	subscribers []func(ctx context.Context, cur *Identity)
}

// NewStore hydrates the session pointer from storage. A missing pointer
// means no one is signed in; a malformed one is a loud error.
func NewStore(ctx context.Context, kv kvstore.Store, log logging.Logger, prefix string) (*Store, error) {
	s := &Store{
		kv:         kv,
		log:        log.With("store", "identity"),
		usersKey:   prefix + "-users",
		currentKey: prefix + "-user",
		now:        time.Now,
	}

	b, err := kv.Get(ctx, s.currentKey)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return s, nil
		}
		return nil, fmt.Errorf("hydrating session: %w", err)
	}

	var cur Identity
	if err := json.Unmarshal(b, &cur); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	s.current = &cur

	return s, nil
}

// Subscribe registers fn to run after every change of the current identity.
// The callback receives nil on logout.
func (s *Store) Subscribe(fn func(ctx context.Context, cur *Identity)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(ctx context.Context) {
	for _, fn := range s.subscribers {
		fn(ctx, s.Current())
	}
}

// Current returns a copy of the signed-in identity, or nil.
func (s *Store) Current() *Identity {
	if s.current == nil {
		return nil
	}
	cur := *s.current
	return &cur
}

// All returns the full registry in insertion order. An absent registry blob
// is an empty registry.
func (s *Store) All(ctx context.Context) ([]Identity, error) {
	b, err := s.kv.Get(ctx, s.usersKey)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading identities: %w", err)
	}

	var all []Identity
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("decoding identities: %w", err)
	}
	return all, nil
}

// Register creates a new identity and signs it in. It returns false when the
// id is already taken; the registry is never overwritten.
func (s *Store) Register(ctx context.Context, id string) (bool, error) {
	all, err := s.All(ctx)
	if err != nil {
		return false, err
	}

	for _, u := range all {
		if u.ID == id {
			return false, nil
		}
	}

	u := Identity{ID: id, CreatedAt: s.now().UTC()}
	all = append(all, u)

	b, err := json.Marshal(all)
	if err != nil {
		return false, fmt.Errorf("encoding identities: %w", err)
	}
	if err := s.kv.Set(ctx, s.usersKey, b); err != nil {
		return false, fmt.Errorf("saving identities: %w", err)
	}

	if err := s.setCurrent(ctx, &u); err != nil {
		return false, err
	}

	s.log.Info(ctx, "identity registered", "id", id)
	s.notify(ctx)
	return true, nil
}

// Login signs in an existing identity by exact id match. On a miss it
// returns false and leaves the current identity untouched.
func (s *Store) Login(ctx context.Context, id string) (bool, error) {
	all, err := s.All(ctx)
	if err != nil {
		return false, err
	}

	for _, u := range all {
		if u.ID == id {
			if err := s.setCurrent(ctx, &u); err != nil {
				return false, err
			}
			s.log.Info(ctx, "signed in", "id", id)
			s.notify(ctx)
			return true, nil
		}
	}

	return false, nil
}

// Logout clears the session pointer. It is idempotent.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.currentKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.current = nil
	s.notify(ctx)
	return nil
}

func (s *Store) setCurrent(ctx context.Context, u *Identity) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.kv.Set(ctx, s.currentKey, b); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	s.current = u
	return nil
}
