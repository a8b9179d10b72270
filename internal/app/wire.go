package app

import (
	"os"

	"go.uber.org/zap"

	"ciphmsg/internal/domain"
	"ciphmsg/internal/keystore"
	"ciphmsg/internal/ledger"
	conversationsvc "ciphmsg/internal/services/conversation"
	identitysvc "ciphmsg/internal/services/identity"
	messagesvc "ciphmsg/internal/services/message"
)

// Wire bundles the stores, clients, and high-level services for the CLI.
type Wire struct {
	Log           *zap.Logger
	Ledger        domain.LedgerClient
	Keys          *keystore.Store
	Identity      *identitysvc.Service
	Conversations *conversationsvc.Service
	Messages      *messagesvc.Service
}

// NewWire constructs the dependency graph from cfg for one wallet identity.
func NewWire(cfg Config, walletAddress string) (*Wire, error) {
	log, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, err
	}

	lc := ledger.New(cfg.IndexerURL, nil, cfg.QueryTimeout, log)

	keys, err := keystore.Open(cfg.DataDir, walletAddress)
	if err != nil {
		return nil, err
	}

	return &Wire{
		Log:           log,
		Ledger:        lc,
		Keys:          keys,
		Identity:      identitysvc.New(keystore.NewIdentityStore(cfg.DataDir)),
		Conversations: conversationsvc.New(lc, cfg.QueryLimit, log),
		Messages:      messagesvc.New(keys, lc, cfg.QueryLimit, log),
	}, nil
}

// Close releases resources held by the wire.
func (w *Wire) Close() error {
	_ = w.Log.Sync()
	return w.Keys.Close()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
