package codes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Efrem-Yohanis/playwright-playground/internal/common"
	"github.com/Efrem-Yohanis/playwright-playground/internal/identity"
	"github.com/Efrem-Yohanis/playwright-playground/internal/kvstore"
	"github.com/Efrem-Yohanis/playwright-playground/internal/logging"
)

// Store provides CRUD over snippet entries scoped to the signed-in identity.
//
// All entries of all users live in one blob ("<prefix>-codes"); every
// mutation is a read-modify-write of the whole collection. The store keeps
// an in-memory list of the current user's entries, rebuilt from storage
// after every mutation and whenever the identity changes. The blob is the
// source of truth, never the cache.
//
// Across processes the blob is last-writer-wins; there is no merge. Like
// the identity store, Store assumes a single interactive session.
type Store struct {
	kv  kvstore.Store
	ids *identity.Store
	log logging.Logger
	key string

	now   func() time.Time
	cache []Entry
}

// NewStore builds the snippet store and subscribes it to identity changes
// so the cache always tracks the signed-in user. The initial load for an
// already-hydrated session happens here too.
func NewStore(ctx context.Context, kv kvstore.Store, ids *identity.Store, log logging.Logger, prefix string) (*Store, error) {
	s := &Store{
		kv:  kv,
		ids: ids,
		log: log.With("store", "codes"),
		key: prefix + "-codes",
		now: time.Now,
	}

	ids.Subscribe(func(ctx context.Context, _ *identity.Identity) {
		if err := s.Reload(ctx); err != nil {
			s.log.Error(ctx, "reloading snippets after identity change", "err", err)
		}
	})

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload rebuilds the cache from storage: filter to the current user, sort
// by UpdatedAt descending (stable, so same-timestamp entries keep their
// stored order). With no one signed in the cache is empty.
func (s *Store) Reload(ctx context.Context) error {
	cur := s.ids.Current()
	if cur == nil {
		s.cache = nil
		return nil
	}

	all, err := s.loadAll(ctx)
	if err != nil {
		return err
	}

	mine := make([]Entry, 0, len(all))
	for _, e := range all {
		if e.UserID == cur.ID {
			mine = append(mine, e)
		}
	}

	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].UpdatedAt.After(mine[j].UpdatedAt)
	})

	s.cache = mine
	return nil
}

// Entries returns the cached list for the current user, most recently
// updated first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.cache))
	copy(out, s.cache)
	return out
}

// Save creates a snippet owned by the current identity.
func (s *Store) Save(ctx context.Context, title, code string) (*Entry, error) {
	cur := s.ids.Current()
	if cur == nil {
		return nil, common.ErrNotAuthenticated
	}

	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	e := Entry{
		ID:        uuid.NewString(),
		UserID:    cur.ID,
		Title:     title,
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}

	all = append(all, e)
	if err := s.persist(ctx, all); err != nil {
		return nil, err
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "snippet saved", "id", e.ID)
	return &e, nil
}

// Update rewrites title and code of an entry the current identity owns and
// refreshes its UpdatedAt. A wrong id, or an id owned by someone else,
// yields common.ErrNotFound with storage untouched.
func (s *Store) Update(ctx context.Context, id, title, code string) (*Entry, error) {
	cur := s.ids.Current()
	if cur == nil {
		return nil, common.ErrNotAuthenticated
	}

	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range all {
		if e.ID == id && e.UserID == cur.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, common.ErrNotFound
	}

	all[idx].Title = title
	all[idx].Code = code
	all[idx].UpdatedAt = s.now().UTC()

	if err := s.persist(ctx, all); err != nil {
		return nil, err
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	e := all[idx]
	s.log.Debug(ctx, "snippet updated", "id", e.ID)
	return &e, nil
}

// Delete removes an entry the current identity owns. It reports false when
// nothing matched; storage is rewritten only on an actual removal.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	cur := s.ids.Current()
	if cur == nil {
		return false, common.ErrNotAuthenticated
	}

	all, err := s.loadAll(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]Entry, 0, len(all))
	for _, e := range all {
		if e.ID == id && e.UserID == cur.ID {
			continue
		}
		kept = append(kept, e)
	}

	if len(kept) == len(all) {
		return false, nil
	}

	if err := s.persist(ctx, kept); err != nil {
		return false, err
	}
	if err := s.Reload(ctx); err != nil {
		return false, err
	}

	s.log.Debug(ctx, "snippet deleted", "id", id)
	return true, nil
}

// GetByID looks an entry up in the cache, which is already scoped to the
// current user. It never touches storage.
func (s *Store) GetByID(id string) (*Entry, error) {
	for _, e := range s.cache {
		if e.ID == id {
			out := e
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *Store) loadAll(ctx context.Context) ([]Entry, error) {
	b, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading snippets: %w", err)
	}

	var all []Entry
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("decoding snippets: %w", err)
	}
	return all, nil
}

func (s *Store) persist(ctx context.Context, all []Entry) error {
	b, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encoding snippets: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("saving snippets: %w", err)
	}
	return nil
}
