// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package conversation

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const languageKeyPrefix = "session_lang:"

// DefaultLanguageTTL is used when the store is opened with a zero TTL.
const DefaultLanguageTTL = 24 * time.Hour

// LanguageStore remembers the detected language of each conversation so
// detection runs once per session. Entries expire after the TTL.
type LanguageStore struct {
	db       *badger.DB
	ttl      time.Duration
	inMemory bool
}

// OpenLanguageStore opens a Badger store at path, or an in-memory one when
// path is empty.
func OpenLanguageStore(path string, ttl time.Duration) (*LanguageStore, error) {
	if ttl <= 0 {
		ttl = DefaultLanguageTTL
	}

	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open language store: %w", err)
	}
	return &LanguageStore{db: db, ttl: ttl, inMemory: path == ""}, nil
}

// Get returns the stored language for the session.
func (s *LanguageStore) Get(sessionID string) (string, bool, error) {
	var lang string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(languageKeyPrefix + sessionID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			lang = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get session language: %w", err)
	}
	return lang, true, nil
}

// Set stores the language for the session, restarting its TTL.
func (s *LanguageStore) Set(sessionID, lang string) error {
	if sessionID == "" {
		return errors.New("session id cannot be empty")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(languageKeyPrefix+sessionID), []byte(lang)).WithTTL(s.ttl)
		return txn.SetEntry(e)
	})
}

// RunGC reclaims value log space until Badger reports nothing left to
// rewrite. In-memory stores have no value log.
func (s *LanguageStore) RunGC() error {
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run value log GC: %w", err)
		}
	}
}

// Close closes the underlying database.
func (s *LanguageStore) Close() error {
	return s.db.Close()
}
