package keystore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	badger "github.com/dgraph-io/badger/v4"

	"ciphmsg/internal/domain"
	"ciphmsg/internal/util/memzero"
)

const (
	keyPrefix    = "ck/"
	namespaceLen = 8
)

// Store holds conversation keys for one wallet identity. Reads hit an
// in-memory cache first; writes go through to Badger.
type Store struct {
	db *badger.DB

	mu    sync.RWMutex
	cache map[string]domain.ConversationKey
}

// Open opens (creating if needed) the key store for walletAddress under dir.
func Open(dir, walletAddress string) (*Store, error) {
	path := filepath.Join(dir, "keys-"+namespace(walletAddress))
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, err
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, cache: make(map[string]domain.ConversationKey)}, nil
}

// Get returns the key for a conversation, if one is stored.
func (s *Store) Get(conversationID string) (domain.ConversationKey, bool, error) {
	s.mu.RLock()
	if k, ok := s.cache[conversationID]; ok {
		s.mu.RUnlock()
		return k, true, nil
	}
	s.mu.RUnlock()

	var k domain.ConversationKey
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + conversationID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &k)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.ConversationKey{}, false, nil
	}
	if err != nil {
		return domain.ConversationKey{}, false, err
	}

	s.mu.Lock()
	s.cache[conversationID] = k
	s.mu.Unlock()
	return k, true, nil
}

// Put stores a conversation key.
func (s *Store) Put(k domain.ConversationKey) error {
	raw, err := json.Marshal(k)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+k.ConversationID), raw)
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cache[k.ConversationID] = k
	s.mu.Unlock()
	return nil
}

// Has reports whether a key exists for the conversation.
func (s *Store) Has(conversationID string) (bool, error) {
	_, ok, err := s.Get(conversationID)
	return ok, err
}

// Clear removes every stored key for this identity.
func (s *Store) Clear() error {
	if err := s.db.DropAll(); err != nil {
		return err
	}
	s.mu.Lock()
	s.wipeCache()
	s.mu.Unlock()
	return nil
}

// Close flushes and closes the underlying store.
func (s *Store) Close() error {
	s.mu.Lock()
	s.wipeCache()
	s.mu.Unlock()
	return s.db.Close()
}

// wipeCache zeroes cached key material and resets the cache. Caller holds mu.
func (s *Store) wipeCache() {
	for id, k := range s.cache {
		memzero.ZeroKey(&k.Key)
		s.cache[id] = k
	}
	s.cache = make(map[string]domain.ConversationKey)
}

// namespace returns the stable store suffix for a wallet address.
func namespace(walletAddress string) string {
	if len(walletAddress) <= namespaceLen {
		return walletAddress
	}
	return walletAddress[len(walletAddress)-namespaceLen:]
}

// Compile-time assertion that Store implements domain.KeyStore.
var _ domain.KeyStore = (*Store)(nil)
