// Package domain defines the core types and interfaces shared across ciphmsg:
// ledger entries, decoded handshakes, reconstructed conversations, derived
// conversation keys, and the store/client contracts the services depend on.
package domain
